// Copyright 2016 The Gini Authors. All rights reserved.  Use of this source
// code is governed by a license that can be found in the License file.

// Package mvc provides multi-valued covers in positional cube notation.
//
// A cover is a sum of cubes over a sequence of fanins, each fanin having a
// fixed number of values (its width).  A cube has one bit per fanin value.
// A set bit means the value is allowed, so a fanin with all bits set is a
// don't care and a fanin with no bits set makes the cube empty.
//
// Binary covers are the special case where every width is 2.  For a binary
// fanin x, the bits "01" (only value 1 allowed) denote the literal x and "10"
// denote x'.  FromSOP and SOP convert between that case and the usual
// '0', '1', '-' rows.
package mvc
