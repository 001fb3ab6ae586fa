// Copyright 2016 The Gini Authors. All rights reserved.  Use of this source
// code is governed by a license that can be found in the License file.

// Package fx extracts common sub-expressions from the covers of a logic
// network.
//
// Extraction is restricted to two-literal divisors: double-cube divisors
// (the cube-free part shared by pairs of cubes, such as ab+c' taken out of
// abd+c'd) and single-cube divisors of two literals (such as xy occurring in
// several cubes).  Each extraction adds a node to the network, rewrites the
// cubes which contain the divisor and charges the saving to a weight which
// combines the literal count with an optional placement cost.
//
// Covers are given in positional notation by package mvc and grouped by
// node in a Data.  Package network builds a Data from a logic network and
// applies a Result back to it.
//
// Placement-aware weighting runs an external placer over a netlist derived
// from the network (see Placement).  When Beta is 0, the default, no placer
// is ever run.
package fx
