// Copyright 2016 The Gini Authors. All rights reserved.  Use of this source
// code is governed by a license that can be found in the License file.

// Package gen contains generators of random covers and random logic
// networks.
//
// Generated covers are free of duplicated and contained cubes, so they are
// valid extraction inputs.
package gen
