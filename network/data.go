// Copyright 2016 The Gini Authors. All rights reserved.  Use of this source
// code is governed by a license that can be found in the License file.

package network

import (
	"github.com/irifrance/fx"
	"github.com/irifrance/fx/mvc"
	"github.com/pkg/errors"
	"github.com/samber/lo"
)

// Data returns the covers of n for extraction.  Node i has values 2i and
// 2i+1; its cover sits on 2i+1 if it is an on-set and on 2i otherwise.
// The covers are shared with n.
func (n *Network) Data() *fx.Data {
	d := &fx.Data{
		Covers:     make([]*mvc.Cover, 2*len(n.Nodes)),
		NodeValues: make([]int, len(n.Nodes)+1),
		Fanins:     make([][]int, len(n.Nodes)),
		Types:      n.types()}
	for i, nd := range n.Nodes {
		d.NodeValues[i+1] = 2 * (i + 1)
		d.Fanins[i] = nd.Fanins
		if nd.Cover == nil {
			continue
		}
		d.Covers[2*i+phase(nd)] = nd.Cover
	}
	return d
}

func phase(nd *Node) int {
	if nd.Phase {
		return 1
	}
	return 0
}

func (n *Network) types() []fx.NodeType {
	ts := lo.Map(n.Nodes, func(nd *Node, _ int) fx.NodeType {
		return nd.Type
	})
	for _, l := range n.Latches {
		if l.Input >= 0 && ts[l.Input] == fx.Internal {
			ts[l.Input] = fx.LatchIn
		}
	}
	for _, o := range n.Outputs {
		if ts[o] == fx.Internal || ts[o] == fx.LatchIn {
			ts[o] = fx.PO
		}
	}
	return ts
}

// Apply rewrites n with the result of extracting from n.Data().  New
// nodes are named _fx0, _fx1 and so on, skipping names in use.
func (n *Network) Apply(res *fx.Result) error {
	nOld := len(n.Nodes)
	if len(res.Fanins) < nOld+res.NodesNew || len(res.Covers) < 2*(nOld+res.NodesNew) {
		return errors.Wrapf(ErrResult, "%d fanins and %d covers for %d+%d nodes",
			len(res.Fanins), len(res.Covers), nOld, res.NodesNew)
	}
	for i := 0; i < nOld; i++ {
		if res.Fanins[i] == nil {
			continue
		}
		nd := n.Nodes[i]
		cv := res.Covers[2*i+phase(nd)]
		if nd.IsSource() || cv == nil {
			return errors.Wrapf(ErrResult, "node %s", nd.Name)
		}
	}
	for k := 0; k < res.NodesNew; k++ {
		if _, err := n.AddNode(n.freshName("_fx%d", k)); err != nil {
			return err
		}
	}
	for i := range n.Nodes {
		if res.Fanins[i] == nil {
			continue
		}
		nd := n.Nodes[i]
		cv := res.Covers[2*i+1]
		if i < nOld {
			cv = res.Covers[2*i+phase(nd)]
		}
		if cv == nil {
			return errors.Wrapf(ErrResult, "node %s has no cover", nd.Name)
		}
		if err := n.SetCover(i, res.Fanins[i], cv, i >= nOld || nd.Phase); err != nil {
			return err
		}
	}
	return nil
}

// LiteralCount returns the number of literals of the covers of n.
func (n *Network) LiteralCount() int {
	return lo.SumBy(n.Nodes, func(nd *Node) int {
		if nd.Cover == nil {
			return 0
		}
		return nd.Cover.NumLits()
	})
}

// Stats gives the size of a network.
type Stats struct {
	Inputs  int
	Outputs int
	Latches int
	Nodes   int
	Cubes   int
	Lits    int
}

// Stats returns the size of n.  Nodes counts the nodes with a cover.
func (n *Network) Stats() Stats {
	covered := lo.Filter(n.Nodes, func(nd *Node, _ int) bool {
		return nd.Cover != nil
	})
	return Stats{
		Inputs:  len(n.Inputs),
		Outputs: len(n.Outputs),
		Latches: len(n.Latches),
		Nodes:   len(covered),
		Cubes: lo.SumBy(covered, func(nd *Node) int {
			return nd.Cover.Len()
		}),
		Lits: n.LiteralCount()}
}
