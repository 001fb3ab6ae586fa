// Copyright 2016 The Gini Authors. All rights reserved.  Use of this source
// code is governed by a license that can be found in the License file.

package lxu

import (
	"github.com/pkg/errors"
)

// number of buckets of the double divisor table, prime.
const tableSize = 10007

// Double is a double-cube divisor: the cube-free residue shared by one or
// more pairs.
type Double struct {
	num     int32
	hnum    int
	key     uint64
	lweight int
	pweight float64
	weight  float64
	pos     point

	head, tail PairID
	nPairs     int32
	next       DivID // bucket chain
}

func (m *Matrix) d(id DivID) *Double {
	return m.doubles.at(int32(id))
}

type doubleItems struct{ m *Matrix }

func (h doubleItems) key(id int32) float64    { return h.m.doubles.items[id].weight }
func (h doubleItems) hnum(id int32) int        { return h.m.doubles.items[id].hnum }
func (h doubleItems) setHNum(id int32, n int) { h.m.doubles.items[id].hnum = n }

// AddDivisor creates the pair of cubes a and b, which must belong to the
// same cover, and merges it into the divisor with the same residue,
// creating that divisor if needed.  Pairs whose residue lies within a
// single node are skipped.
func (m *Matrix) AddDivisor(a, b CubeID) error {
	if m.c(a).v != m.c(b).v {
		invariant("pair of cubes %s %s from different covers", a, b)
	}
	c1, c2, res, nBase := m.canonical(a, b, m.res1[:0])
	m.res1 = res
	n1, n2 := residueSides(res)
	switch {
	case n1 == 0 && n2 == 0:
		return errors.Wrapf(ErrDuplicateCube, "cubes %s %s of %s", a, b, m.c(a).v)
	case n1 == 0 || n2 == 0:
		return errors.Wrapf(ErrNotSCCFree, "cubes %s %s of %s", a, b, m.c(a).v)
	}
	if m.oneNode(res) {
		return nil
	}
	key := m.hashResidue(res)
	bucket := key % uint64(len(m.table))

	pid := PairID(m.pairs.alloc())
	p := m.p(pid)
	p.v = m.c(c1).v
	p.c1, p.c2 = c1, c2
	p.nBase = int32(nBase)
	p.n1, p.n2 = int32(n1), int32(n2)
	if m.lookupPair(c1, c2) != PairNull {
		invariant("pair %s %s exists", c1, c2)
	}
	m.setPair(c1, c2, pid)
	m.stats.PairsAdded++

	var did DivID
	for d := m.table[bucket]; d != DivNull; d = m.d(d).next {
		dv := m.d(d)
		if dv.key != key {
			continue
		}
		m.res2 = m.pairResidue(dv.head, m.res2[:0])
		if residueEqual(m.res1, m.res2) {
			did = d
			break
		}
	}
	if did == DivNull {
		did = DivID(m.doubles.alloc())
		m.divNum++
		dv := m.d(did)
		dv.num = m.divNum
		dv.key = key
		if !m.cfg.NoChargeDivisor {
			dv.lweight = -(n1 + n2)
		}
		dv.next = m.table[bucket]
		m.table[bucket] = did
		m.linkPair(did, pid)
		m.reweighDouble(did)
		m.hd.Insert(int32(did))
		return nil
	}
	m.linkPair(did, pid)
	m.reweighDouble(did)
	m.hd.Update(int32(did))
	return nil
}

func (m *Matrix) linkPair(did DivID, pid PairID) {
	dv, p := m.d(did), m.p(pid)
	p.div = did
	p.prev = dv.tail
	p.next = PairNull
	if dv.tail != PairNull {
		m.p(dv.tail).next = pid
	} else {
		dv.head = pid
	}
	dv.tail = pid
	dv.nPairs++
	dv.lweight += p.gain()
}

func (m *Matrix) unlinkPair(pid PairID) {
	p := m.p(pid)
	dv := m.d(p.div)
	if p.prev != PairNull {
		m.p(p.prev).next = p.next
	} else {
		dv.head = p.next
	}
	if p.next != PairNull {
		m.p(p.next).prev = p.prev
	} else {
		dv.tail = p.prev
	}
	dv.nPairs--
	dv.lweight -= p.gain()
	p.div = DivNull
}

// freePair clears the table entry of an unlinked pair and frees it.
func (m *Matrix) freePair(pid PairID) {
	p := m.p(pid)
	m.setPair(p.c1, p.c2, PairNull)
	m.pairs.release(int32(pid))
}

// delDouble removes a divisor from the heap and the table and frees it
// together with its pairs.
func (m *Matrix) delDouble(did DivID) {
	dv := m.d(did)
	if dv.hnum != 0 {
		m.hd.Delete(int32(did))
	}
	bucket := dv.key % uint64(len(m.table))
	if m.table[bucket] == did {
		m.table[bucket] = dv.next
	} else {
		d := m.table[bucket]
		for d != DivNull && m.d(d).next != did {
			d = m.d(d).next
		}
		if d == DivNull {
			invariant("divisor %d not in bucket %d", dv.num, bucket)
		}
		m.d(d).next = dv.next
	}
	for pid := dv.head; pid != PairNull; {
		next := m.p(pid).next
		m.freePair(pid)
		pid = next
	}
	m.doubles.release(int32(did))
}

// reweighDouble recomputes the combined weight of did.  The caller fixes
// the heap.
func (m *Matrix) reweighDouble(did DivID) {
	if m.beta != 0 && m.place.ready() {
		m.placeDouble(did)
	}
	dv := m.d(did)
	dv.weight = m.combine(dv.lweight, dv.pweight)
}

// combine returns the heap key of a divisor.  The conversions keep the
// products from being fused so that the key is reproducible.
func (m *Matrix) combine(lweight int, pweight float64) float64 {
	return float64(m.alpha*float64(lweight)) + float64(m.beta*pweight)
}

// cleanOldDoubles removes every pair of cube c which does not belong to
// divisor keep, deleting divisors left without pairs.
func (m *Matrix) cleanOldDoubles(keep DivID, c CubeID) {
	v := m.v(m.c(c).v)
	if v.pairs == nil {
		return
	}
	for _, t := range v.local {
		if t == CubeNull || t == c {
			continue
		}
		pid := m.lookupPair(c, t)
		if pid == PairNull {
			continue
		}
		did := m.p(pid).div
		if did == keep {
			continue
		}
		m.unlinkPair(pid)
		m.freePair(pid)
		if m.d(did).nPairs == 0 {
			m.delDouble(did)
			continue
		}
		m.reweighDouble(did)
		m.hd.Update(int32(did))
	}
}

// addNewDoubles pairs cube c with the other cubes of its cover.  Of two
// cubes both on the cube ring, only the newer one adds the pair.
func (m *Matrix) addNewDoubles(c CubeID) {
	cv := m.c(c)
	v := m.v(cv.v)
	if v.pairs == nil || cv.nLits == 0 {
		return
	}
	num := cv.num
	for _, t := range v.local {
		if t == CubeNull || t == c {
			continue
		}
		tc := m.c(t)
		if tc.nLits == 0 {
			continue
		}
		if m.cring.has(t) && tc.num >= num {
			continue
		}
		if m.lookupPair(c, t) != PairNull {
			continue
		}
		if err := m.AddDivisor(t, c); err != nil {
			invariant("%v", err)
		}
	}
}

// Doubles returns the number of live double divisors.
func (m *Matrix) Doubles() int {
	return m.doubles.stats.Live
}
