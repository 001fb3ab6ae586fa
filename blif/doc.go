// Copyright 2016 The Gini Authors. All rights reserved.  Use of this source
// code is governed by a license that can be found in the License file.

// Package blif reads and writes logic networks in the Berkeley Logic
// Interchange Format.
//
// Only the flat subset is supported: .model, .inputs, .outputs, .names,
// .latch and .end.  A cover whose rows end in 0 is read as the off-set of
// its node.  Comments start with '#' and a trailing '\' continues a line.
package blif
