// Copyright 2016 The Gini Authors. All rights reserved.  Use of this source
// code is governed by a license that can be found in the License file.

// Package placer runs an external placement program on a node netlist.
//
// A netlist is written to <dir>/euclidNNN.sat as one line per node
//
//	var <id> <fanin> <fanin> ...\t<fanin> ...
//
// where tab separated groups are the cubes of the node, followed by a
// final "end" line.  The command is invoked with the base name euclidNNN
// as its last argument and must leave <dir>/euclidNNN.pl, a UCLA pl style
// file with one "<name> <x> <y>" line per node in netlist order.
package placer
