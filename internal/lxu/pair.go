// Copyright 2016 The Gini Authors. All rights reserved.  Use of this source
// code is governed by a license that can be found in the License file.

package lxu

import (
	"encoding/binary"
)

// Pair is a pair of distinct cubes of the same cover.  c1 is the cube
// holding the smallest var not shared by both.
type Pair struct {
	v      VarID
	c1, c2 CubeID
	nBase  int32
	n1, n2 int32

	div        DivID
	prev, next PairID // pairs of div
}

// gain is the number of literals saved by rewriting the pair with its
// divisor.
func (p *Pair) gain() int {
	return int(p.n1 + p.n2 - 1 + p.nBase)
}

func (m *Matrix) p(id PairID) *Pair {
	return m.pairs.at(int32(id))
}

// pairSlot indexes the triangular pair table of a var by local cube
// indices.
func pairSlot(i, j int32) int32 {
	if i > j {
		i, j = j, i
	}
	return j*(j-1)/2 + i
}

func (m *Matrix) lookupPair(a, b CubeID) PairID {
	ca, cb := m.c(a), m.c(b)
	v := m.v(ca.v)
	if v.pairs == nil {
		return PairNull
	}
	return v.pairs[pairSlot(ca.local, cb.local)]
}

func (m *Matrix) setPair(a, b CubeID, p PairID) {
	ca, cb := m.c(a), m.c(b)
	v := m.v(ca.v)
	v.pairs[pairSlot(ca.local, cb.local)] = p
}

// residue walks the rows of a and b and appends to dst the vars which are
// not shared, positive for a and negated for b, in increasing var order.
// It returns the extended dst and the number of shared vars.
func (m *Matrix) residue(a, b CubeID, dst []int32) ([]int32, int) {
	nBase := 0
	l1, l2 := m.c(a).litHead, m.c(b).litHead
	for l1 != LitNull || l2 != LitNull {
		switch {
		case l2 == LitNull || (l1 != LitNull && m.l(l1).v < m.l(l2).v):
			dst = append(dst, int32(m.l(l1).v))
			l1 = m.l(l1).rnext
		case l1 == LitNull || m.l(l2).v < m.l(l1).v:
			dst = append(dst, -int32(m.l(l2).v))
			l2 = m.l(l2).rnext
		default:
			nBase++
			l1 = m.l(l1).rnext
			l2 = m.l(l2).rnext
		}
	}
	return dst, nBase
}

// canonical orders a and b so that the first cube holds the smallest
// unshared var, returning the residue relative to that order.
func (m *Matrix) canonical(a, b CubeID, dst []int32) (CubeID, CubeID, []int32, int) {
	res, nBase := m.residue(a, b, dst)
	if len(res) != 0 && res[0] < 0 {
		for i := range res {
			res[i] = -res[i]
		}
		a, b = b, a
	}
	return a, b, res, nBase
}

func residueSides(res []int32) (n1, n2 int) {
	for _, r := range res {
		if r > 0 {
			n1++
		} else {
			n2++
		}
	}
	return
}

func absVar(r int32) VarID {
	if r < 0 {
		return VarID(-r)
	}
	return VarID(r)
}

// oneNode reports whether every var of res is a value of the same node.
// Such a divisor is a disjunction of values of one node and is never
// extracted.
func (m *Matrix) oneNode(res []int32) bool {
	if len(res) == 0 {
		return false
	}
	nd := m.v(absVar(res[0])).node
	for _, r := range res[1:] {
		if m.v(absVar(r)).node != nd {
			return false
		}
	}
	return true
}

func (m *Matrix) hashResidue(res []int32) uint64 {
	buf := m.hbuf[:0]
	for _, r := range res {
		buf = binary.LittleEndian.AppendUint32(buf, uint32(r))
	}
	m.hbuf = buf
	return m.hash(buf)
}

func residueEqual(a, b []int32) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// pairResidue recomputes the residue of an existing pair into dst.
func (m *Matrix) pairResidue(id PairID, dst []int32) []int32 {
	p := m.p(id)
	res, _ := m.residue(p.c1, p.c2, dst)
	return res
}
