// Copyright 2016 The Gini Authors. All rights reserved.  Use of this source
// code is governed by a license that can be found in the License file.

// Package network provides binary logic networks of sum-of-products nodes
// with latches, and their translation to and from extraction data.
package network
