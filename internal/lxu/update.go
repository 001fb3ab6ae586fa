// Copyright 2016 The Gini Authors. All rights reserved.  Use of this source
// code is governed by a license that can be found in the License file.

package lxu

import "sort"

// newNode adds the two vars of a new node: the complement placeholder
// VarC and the divisor var VarD.
func (m *Matrix) newNode() (vc, vd VarID) {
	nd := m.nNodes + m.nNew
	m.nNew++
	vc = m.AddVar(nd, 0, Internal)
	vd = m.AddVar(nd, 1, Internal)
	m.v(vc).isNew = true
	m.v(vd).isNew = true
	return
}

// updateDouble extracts double divisor did, which has been taken off its
// heap.  It returns the number of rewritten cubes.
func (m *Matrix) updateDouble(did DivID) int {
	dv := m.d(did)
	type kd struct {
		keep, drop CubeID
		num        int32
	}
	var ps []kd
	for pid := dv.head; pid != PairNull; pid = m.p(pid).next {
		p := m.p(pid)
		keep, drop := p.c1, p.c2
		if m.c(keep).num > m.c(drop).num {
			keep, drop = drop, keep
		}
		ps = append(ps, kd{keep, drop, m.c(keep).num})
	}
	sort.Slice(ps, func(i, j int) bool { return ps[i].num < ps[j].num })

	vc, vd := m.newNode()
	m.placeNew(dv.pos)
	first := m.p(dv.head)
	c1, c2 := first.c1, first.c2
	cn1 := m.AddCube(vd, 0)
	cn2 := m.AddCube(vd, 1)
	res, _ := m.residue(c1, c2, m.res1[:0])
	m.res1 = res
	for _, r := range res {
		if r > 0 {
			m.AddLiteral(cn1, VarID(r))
		} else {
			m.AddLiteral(cn2, VarID(-r))
		}
	}

	m.cring.start()
	m.vring.start()
	m.vring.add(vc)
	m.vring.add(vd)
	dropped := make(map[CubeID]bool, len(ps))
	var drops []CubeID
	for _, e := range ps {
		if m.cring.has(e.keep) || m.cring.has(e.drop) || dropped[e.keep] || dropped[e.drop] {
			continue
		}
		m.cring.add(e.keep)
		m.cleanOldDoubles(did, e.keep)
		m.cleanOldDoubles(did, e.drop)
		l1, l2 := m.c(e.keep).litHead, m.c(e.drop).litHead
		for l1 != LitNull || l2 != LitNull {
			switch {
			case l2 == LitNull || (l1 != LitNull && m.l(l1).v < m.l(l2).v):
				next := m.l(l1).rnext
				m.vring.add(m.l(l1).v)
				m.DelLiteral(l1)
				l1 = next
			case l1 == LitNull || m.l(l2).v < m.l(l1).v:
				next := m.l(l2).rnext
				m.vring.add(m.l(l2).v)
				m.DelLiteral(l2)
				l2 = next
			default:
				n1, n2 := m.l(l1).rnext, m.l(l2).rnext
				m.vring.add(m.l(l2).v)
				m.DelLiteral(l2)
				l1, l2 = n1, n2
			}
		}
		m.AddLiteral(e.keep, vd)
		dropped[e.drop] = true
		drops = append(drops, e.drop)
	}
	m.cring.stop()
	m.vring.stop()
	m.delDouble(did)
	for _, c := range drops {
		m.delCube(c)
	}
	m.finishUpdate()
	return len(drops)
}

// updateSingle extracts single sid, which has been taken off its heap.
// It returns the number of rewritten cubes.
func (m *Matrix) updateSingle(sid SingleID) int {
	s := m.s(sid)
	v1, v2, at := s.v1, s.v2, s.pos
	m.delSingle(sid)

	vc, vd := m.newNode()
	m.placeNew(at)
	cn := m.AddCube(vd, 0)

	m.cring.start()
	m.vring.start()
	m.vring.add(vc)
	m.vring.add(vd)
	m.vring.add(v1)
	m.vring.add(v2)
	l1, l2 := m.v(v1).litHead, m.v(v2).litHead
	for l1 != LitNull && l2 != LitNull {
		a, b := m.l(l1).cnum, m.l(l2).cnum
		switch {
		case a < b:
			l1 = m.l(l1).cnext
		case b < a:
			l2 = m.l(l2).cnext
		default:
			c := m.l(l1).c
			n1, n2 := m.l(l1).cnext, m.l(l2).cnext
			m.cring.add(c)
			m.cleanOldDoubles(DivNull, c)
			m.DelLiteral(l1)
			m.DelLiteral(l2)
			m.AddLiteral(c, vd)
			l1, l2 = n1, n2
		}
	}
	m.AddLiteral(cn, v1)
	m.AddLiteral(cn, v2)
	m.cring.stop()
	m.vring.stop()
	n := m.cring.len()
	m.finishUpdate()
	return n
}

// finishUpdate pairs the rewritten cubes on the cube ring, refreshes the
// singles of the vars on the var ring and drains both rings.
func (m *Matrix) finishUpdate() {
	if !m.cfg.OnlySingles {
		for _, c := range m.cring.items {
			m.addNewDoubles(c)
		}
	}
	var dirty []VarID
	if !m.cfg.OnlyDoubles {
		m.cleanOldSingles()
		dirty = append(dirty, m.vring.items...)
	}
	m.cring.unmark()
	m.vring.unmark()
	for _, v := range dirty {
		m.ComputeSinglesOne(v)
	}
}
