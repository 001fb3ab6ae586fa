// Copyright 2016 The Gini Authors. All rights reserved.  Use of this source
// code is governed by a license that can be found in the License file.

package lxu

// Single is a single-cube divisor: two vars of different nodes whose
// columns coincide in at least two cubes.
type Single struct {
	num     int32
	hnum    int
	v1, v2  VarID // v1 < v2
	lweight int
	pweight float64
	weight  float64
	pos     point

	prev, next SingleID
}

func (m *Matrix) s(id SingleID) *Single {
	return m.singles.at(int32(id))
}

type singleItems struct{ m *Matrix }

func (h singleItems) key(id int32) float64    { return h.m.singles.items[id].weight }
func (h singleItems) hnum(id int32) int        { return h.m.singles.items[id].hnum }
func (h singleItems) setHNum(id int32, n int) { h.m.singles.items[id].hnum = n }

// CountCoincidence returns the number of cubes containing both u and v.
func (m *Matrix) CountCoincidence(u, v VarID) int {
	n := 0
	l1, l2 := m.v(u).litHead, m.v(v).litHead
	for l1 != LitNull && l2 != LitNull {
		a, b := m.l(l1).cnum, m.l(l2).cnum
		switch {
		case a < b:
			l1 = m.l(l1).cnext
		case b < a:
			l2 = m.l(l2).cnext
		default:
			n++
			l1 = m.l(l1).cnext
			l2 = m.l(l2).cnext
		}
	}
	return n
}

func (m *Matrix) addSingle(v1, v2 VarID, w int) SingleID {
	if v1 > v2 {
		v1, v2 = v2, v1
	}
	id := SingleID(m.singles.alloc())
	m.singleNum++
	s := m.s(id)
	s.num = m.singleNum
	s.v1, s.v2 = v1, v2
	s.lweight = w
	s.prev = m.singleTail
	if m.singleTail != SingleNull {
		m.s(m.singleTail).next = id
	} else {
		m.singleHead = id
	}
	m.singleTail = id
	m.singleIdx[[2]VarID{v1, v2}] = id
	m.reweighSingle(id)
	m.hs.Insert(int32(id))
	return id
}

func (m *Matrix) delSingle(id SingleID) {
	s := m.s(id)
	if s.hnum != 0 {
		m.hs.Delete(int32(id))
	}
	if s.prev != SingleNull {
		m.s(s.prev).next = s.next
	} else {
		m.singleHead = s.next
	}
	if s.next != SingleNull {
		m.s(s.next).prev = s.prev
	} else {
		m.singleTail = s.prev
	}
	delete(m.singleIdx, [2]VarID{s.v1, s.v2})
	m.singles.release(int32(id))
}

func (m *Matrix) reweighSingle(id SingleID) {
	if m.beta != 0 && m.place.ready() {
		m.placeSingle(id)
	}
	s := m.s(id)
	s.weight = m.combine(s.lweight, s.pweight)
}

func (m *Matrix) hasSingle(u, v VarID) bool {
	if u > v {
		u, v = v, u
	}
	_, ok := m.singleIdx[[2]VarID{u, v}]
	return ok
}

// ComputeSinglesOne adds a single for every var below v which shares a
// cube with v, is not a value of the same node, has no single with v yet
// and coincides with v often enough.
func (m *Matrix) ComputeSinglesOne(v VarID) {
	m.vring.start()
	for l := m.v(v).litHead; l != LitNull; l = m.l(l).cnext {
		for k := m.l(l).rprev; k != LitNull; k = m.l(k).rprev {
			u := m.l(k).v
			if m.vring.has(u) || m.sameNode(u, v) || m.hasSingle(u, v) {
				continue
			}
			m.vring.add(u)
		}
	}
	m.vring.stop()
	for _, u := range m.vring.items {
		w := m.CountCoincidence(u, v) - 2
		if w >= 0 {
			m.addSingle(u, v, w)
		}
	}
	m.vring.unmark()
}

// cleanOldSingles recomputes every single touching a var on the var ring
// and deletes those whose weight dropped below zero.
func (m *Matrix) cleanOldSingles() {
	for id := m.singleHead; id != SingleNull; {
		s := m.s(id)
		next := s.next
		if !m.vring.has(s.v1) && !m.vring.has(s.v2) {
			id = next
			continue
		}
		w := m.CountCoincidence(s.v1, s.v2) - 2
		if w < 0 {
			m.delSingle(id)
			id = next
			continue
		}
		s.lweight = w
		m.reweighSingle(id)
		m.hs.Update(int32(id))
		id = next
	}
}

// Singles returns the number of live single divisors.
func (m *Matrix) Singles() int {
	return m.singles.stats.Live
}
