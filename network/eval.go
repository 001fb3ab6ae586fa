// Copyright 2016 The Gini Authors. All rights reserved.  Use of this source
// code is governed by a license that can be found in the License file.

package network

import (
	"github.com/irifrance/fx/mvc"
	"github.com/pkg/errors"
)

// Sources returns the primary inputs followed by the latch outputs.
func (n *Network) Sources() []int {
	src := append([]int(nil), n.Inputs...)
	for _, l := range n.Latches {
		src = append(src, l.Output)
	}
	return src
}

// Sinks returns the primary outputs followed by the latch inputs.
func (n *Network) Sinks() []int {
	snk := append([]int(nil), n.Outputs...)
	for _, l := range n.Latches {
		snk = append(snk, l.Input)
	}
	return snk
}

// Eval evaluates n on an assignment of Sources() and returns the values of
// Sinks().
func (n *Network) Eval(in []bool) ([]bool, error) {
	src := n.Sources()
	if len(in) != len(src) {
		return nil, errors.Errorf("%d values for %d sources", len(in), len(src))
	}
	order, err := n.TopoOrder()
	if err != nil {
		return nil, err
	}
	vals := make([]bool, len(n.Nodes))
	for i, s := range src {
		vals[s] = in[i]
	}
	for _, i := range order {
		nd := n.Nodes[i]
		if nd.IsSource() {
			continue
		}
		v := EvalCover(nd.Cover, func(j int) bool { return vals[nd.Fanins[j]] })
		vals[i] = v == nd.Phase
	}
	snk := n.Sinks()
	out := make([]bool, len(snk))
	for i, s := range snk {
		out[i] = vals[s]
	}
	return out, nil
}

// EvalCover evaluates the binary cover cv where fanin j has value in(j).
func EvalCover(cv *mvc.Cover, in func(j int) bool) bool {
	for _, q := range cv.Cubes {
		sat := true
		for j := 0; j < cv.NumFanins() && sat; j++ {
			v := 0
			if in(j) {
				v = 1
			}
			sat = cv.Has(q, j, v)
		}
		if sat {
			return true
		}
	}
	return false
}
