// Copyright 2016 The Gini Authors. All rights reserved.  Use of this source
// code is governed by a license that can be found in the License file.

package verify

import "github.com/irifrance/fx/network"

// ops builds boolean functions with handles of type L.
type ops[L any] interface {
	and(ls []L) L
	or(ls []L) L
	not(l L) L
}

// cone builds the functions of nodes of a network on demand.  The sources
// must be set in memo before use.
type cone[L any] struct {
	n    *network.Network
	o    ops[L]
	memo map[int]L
}

func newCone[L any](n *network.Network, o ops[L]) *cone[L] {
	return &cone[L]{n: n, o: o, memo: make(map[int]L)}
}

func (c *cone[L]) at(i int) L {
	if l, ok := c.memo[i]; ok {
		return l
	}
	nd := c.n.Nodes[i]
	fs := make([]L, len(nd.Fanins))
	for j, f := range nd.Fanins {
		fs[j] = c.at(f)
	}
	cv := nd.Cover
	terms := make([]L, 0, cv.Len())
	var lits []L
outer:
	for _, q := range cv.Cubes {
		lits = lits[:0]
		for j := range fs {
			v0, v1 := cv.Has(q, j, 0), cv.Has(q, j, 1)
			switch {
			case v0 && v1:
			case v1:
				lits = append(lits, fs[j])
			case v0:
				lits = append(lits, c.o.not(fs[j]))
			default:
				continue outer
			}
		}
		terms = append(terms, c.o.and(lits))
	}
	l := c.o.or(terms)
	if !nd.Phase {
		l = c.o.not(l)
	}
	c.memo[i] = l
	return l
}
