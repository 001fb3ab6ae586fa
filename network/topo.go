// Copyright 2016 The Gini Authors. All rights reserved.  Use of this source
// code is governed by a license that can be found in the License file.

package network

import "github.com/pkg/errors"

// TopoOrder returns the nodes of n, every node after its fanins.  Sources
// come first in index order.
func (n *Network) TopoOrder() ([]int, error) {
	const (
		white = iota
		grey
		black
	)
	color := make([]uint8, len(n.Nodes))
	order := make([]int, 0, len(n.Nodes))
	for i, nd := range n.Nodes {
		if nd.IsSource() {
			color[i] = black
			order = append(order, i)
		}
	}
	type frame struct {
		node, next int
	}
	var stack []frame
	for root := range n.Nodes {
		if color[root] != white {
			continue
		}
		color[root] = grey
		stack = append(stack[:0], frame{node: root})
		for len(stack) > 0 {
			top := &stack[len(stack)-1]
			fs := n.Nodes[top.node].Fanins
			if top.next == len(fs) {
				color[top.node] = black
				order = append(order, top.node)
				stack = stack[:len(stack)-1]
				continue
			}
			f := fs[top.next]
			top.next++
			switch color[f] {
			case grey:
				return nil, errors.Wrapf(ErrCombLoop, "through %s", n.Nodes[f].Name)
			case white:
				color[f] = grey
				stack = append(stack, frame{node: f})
			}
		}
	}
	return order, nil
}
