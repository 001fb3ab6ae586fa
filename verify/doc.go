// Copyright 2016 The Gini Authors. All rights reserved.  Use of this source
// code is governed by a license that can be found in the License file.

// Package verify checks the combinational equivalence of two networks.
//
// Sources (primary inputs and latch outputs) and sinks (primary outputs
// and latch inputs) are matched by name.  The SAT method builds one miter
// per sink and solves it with gini, running the sinks concurrently.  The
// BDD method builds both networks in a single rudd manager.
package verify
