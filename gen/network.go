// Copyright 2016 The Gini Authors. All rights reserved.  Use of this source
// code is governed by a license that can be found in the License file.

package gen

import (
	"fmt"

	"github.com/irifrance/fx/network"
)

// Params sizes a random network.
type Params struct {
	Inputs  int
	Latches int
	Nodes   int
	Fanins  int // maximum fanins of a node
	Cubes   int // maximum cubes of a node
	Lits    int // maximum literals of a cube
	MinLits int // minimum literals of a cube, at most Lits
}

// DefaultParams gives a network small enough to verify exhaustively.
var DefaultParams = Params{
	Inputs: 8,
	Nodes:  12,
	Fanins: 5,
	Cubes:  6,
	Lits:   3}

// Network generates an acyclic network of p.Nodes nodes, each drawing its
// fanins among the sources and the earlier nodes.  Nodes without fanouts
// are the outputs.  About a quarter of the covers are off-sets.
func Network(p Params) *network.Network {
	if p.Inputs < 1 {
		p.Inputs = 1
	}
	n := network.New("gen")
	var sigs []int
	for i := 0; i < p.Inputs; i++ {
		k, _ := n.AddInput(fmt.Sprintf("i%d", i))
		sigs = append(sigs, k)
	}
	for i := 0; i < p.Latches; i++ {
		k, _ := n.AddLatch(-1, fmt.Sprintf("l%d", i), network.Init0)
		sigs = append(sigs, k)
	}
	fanout := make(map[int]bool)
	var nodes []int
	for i := 0; i < p.Nodes; i++ {
		k, _ := n.AddNode(fmt.Sprintf("n%d", i))
		nf := 1 + intn(max(p.Fanins, 1))
		if nf > len(sigs) {
			nf = len(sigs)
		}
		fanins := pick(sigs, nf)
		for _, f := range fanins {
			fanout[f] = true
		}
		rc := NewRandCuber(max(p.Lits, 1), nf)
		rc.SetMinSize(p.MinLits)
		cv := Cover(rc, nf, 1+intn(max(p.Cubes, 1)))
		if err := n.SetCover(k, fanins, cv, intn(4) != 0); err != nil {
			panic(err)
		}
		sigs = append(sigs, k)
		nodes = append(nodes, k)
	}
	for i := 0; i < p.Latches; i++ {
		out := p.Inputs + i
		in := out
		if len(nodes) > 0 {
			in = nodes[intn(len(nodes))]
		}
		fanout[in] = true
		if err := n.SetLatchInput(out, in); err != nil {
			panic(err)
		}
	}
	for _, k := range nodes {
		if !fanout[k] {
			n.AddOutput(k)
		}
	}
	return n
}

// pick returns k distinct elements of sigs in increasing order.
func pick(sigs []int, k int) []int {
	mu.Lock()
	perm := rng.Perm(len(sigs))
	mu.Unlock()
	res := make([]int, k)
	for i := range res {
		res[i] = sigs[perm[i]]
	}
	for i := 1; i < k; i++ {
		for j := i; j > 0 && res[j] < res[j-1]; j-- {
			res[j], res[j-1] = res[j-1], res[j]
		}
	}
	return res
}
