// Copyright 2016 The Gini Authors. All rights reserved.  Use of this source
// code is governed by a license that can be found in the License file.

// Package lxu implements fast extraction of two-literal common
// sub-expressions over a sparse cube/variable matrix.
//
// A Matrix holds one variable per node value and one cube per product term
// of the input covers.  Candidate double-cube divisors are built from pairs
// of cubes of the same cover and are merged by content through a chained
// hash table.  Candidate single-cube divisors are pairs of variables whose
// columns coincide.  Both kinds live in max-heaps keyed by a combined
// logical/physical weight.  Run repeatedly takes the best divisor, rewrites
// the matrix and patches the affected candidates.
//
// All objects are addressed by typed int32 handles into arenas owned by the
// Matrix; handle 0 is null.
package lxu
