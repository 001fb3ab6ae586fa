// Copyright 2016 The Gini Authors. All rights reserved.  Use of this source
// code is governed by a license that can be found in the License file.

package lxu

import (
	"github.com/pkg/errors"
)

// Check verifies the invariants of m which hold between extraction steps:
// row and column order, list and count consistency, pair table entries,
// divisor and single weights, heap order and drained rings.
func (m *Matrix) Check() error {
	if !m.cring.drained() || !m.vring.drained() {
		return errors.New("ring not drained")
	}
	if err := m.checkLists(); err != nil {
		return err
	}
	if err := m.checkDoubles(); err != nil {
		return err
	}
	if err := m.checkSingles(); err != nil {
		return err
	}
	if err := m.hd.check(); err != nil {
		return errors.Wrap(err, "double heap")
	}
	if err := m.hs.check(); err != nil {
		return errors.Wrap(err, "single heap")
	}
	return nil
}

func (m *Matrix) checkLists() error {
	nCubes, nLits := 0, 0
	for c := m.cubeHead; c != CubeNull; c = m.c(c).next {
		if !m.cubes.isLive(int32(c)) {
			return errors.Errorf("dead cube %s in cube list", c)
		}
		nCubes++
		cv := m.c(c)
		n := int32(0)
		last := VarNull
		for l := cv.litHead; l != LitNull; l = m.l(l).rnext {
			lt := m.l(l)
			if lt.c != c || lt.cnum != cv.num {
				return errors.Errorf("literal %d of %s points to %s", l, c, lt.c)
			}
			if lt.v <= last {
				return errors.Errorf("%s: %s after %s", c, lt.v, last)
			}
			last = lt.v
			n++
		}
		if n != cv.nLits {
			return errors.Errorf("%s: %d literals, count %d", c, n, cv.nLits)
		}
		nLits += int(n)
	}
	if nCubes != m.nCubes || nLits != m.nLits {
		return errors.Errorf("counted %d cubes %d literals, have %d %d", nCubes, nLits, m.nCubes, m.nLits)
	}
	for v := 1; v <= m.NumVars(); v++ {
		vid := VarID(v)
		vr := m.v(vid)
		n := int32(0)
		last := int32(0)
		for l := vr.litHead; l != LitNull; l = m.l(l).cnext {
			lt := m.l(l)
			if lt.v != vid {
				return errors.Errorf("%s: column holds literal of %s", vid, lt.v)
			}
			if lt.cnum <= last {
				return errors.Errorf("%s: cube %d after %d", vid, lt.cnum, last)
			}
			last = lt.cnum
			n++
		}
		if n != vr.nLits {
			return errors.Errorf("%s: %d literals, count %d", vid, n, vr.nLits)
		}
		k := int32(0)
		for c := vr.cubeHead; c != CubeNull; c = m.c(c).vnext {
			if m.c(c).v != vid {
				return errors.Errorf("%s owned by %s in list of %s", c, m.c(c).v, vid)
			}
			if vr.local != nil && vr.local[m.c(c).local] != c {
				return errors.Errorf("%s: local slot %d", c, m.c(c).local)
			}
			k++
		}
		if k != vr.nCubes {
			return errors.Errorf("%s: %d cubes, count %d", vid, k, vr.nCubes)
		}
	}
	return nil
}

func (m *Matrix) checkDoubles() error {
	var err error
	nPairs := 0
	m.doubles.each(func(i int32, dv *Double) {
		if err != nil {
			return
		}
		did := DivID(i)
		if dv.hnum == 0 {
			err = errors.Errorf("divisor %d not in heap", dv.num)
			return
		}
		w := 0
		if !m.cfg.NoChargeDivisor {
			n1, n2 := residueSides(m.pairResidue(dv.head, nil))
			w = -(n1 + n2)
		}
		ref := m.pairResidue(dv.head, nil)
		n := int32(0)
		for pid := dv.head; pid != PairNull; pid = m.p(pid).next {
			p := m.p(pid)
			if p.div != did {
				err = errors.Errorf("divisor %d holds pair of divisor %d", dv.num, p.div)
				return
			}
			if m.lookupPair(p.c1, p.c2) != pid {
				err = errors.Errorf("pair %s %s not in table", p.c1, p.c2)
				return
			}
			if !residueEqual(ref, m.pairResidue(pid, nil)) {
				err = errors.Errorf("divisor %d holds pairs of different residues", dv.num)
				return
			}
			w += p.gain()
			n++
		}
		if n == 0 || n != dv.nPairs {
			err = errors.Errorf("divisor %d: %d pairs, count %d", dv.num, n, dv.nPairs)
			return
		}
		if w != dv.lweight {
			err = errors.Errorf("divisor %d: weight %d, pairs give %d", dv.num, dv.lweight, w)
			return
		}
		if dv.weight != m.combine(dv.lweight, dv.pweight) {
			err = errors.Errorf("divisor %d: stale combined weight", dv.num)
			return
		}
		nPairs += int(n)
	})
	if err != nil {
		return err
	}
	if nPairs != m.pairs.stats.Live {
		return errors.Errorf("%d linked pairs, %d live", nPairs, m.pairs.stats.Live)
	}
	return nil
}

func (m *Matrix) checkSingles() error {
	n := 0
	for id := m.singleHead; id != SingleNull; id = m.s(id).next {
		s := m.s(id)
		if s.hnum == 0 {
			return errors.Errorf("single %s %s not in heap", s.v1, s.v2)
		}
		if w := m.CountCoincidence(s.v1, s.v2) - 2; w != s.lweight {
			return errors.Errorf("single %s %s: weight %d, coincidence gives %d", s.v1, s.v2, s.lweight, w)
		}
		if s.weight != m.combine(s.lweight, s.pweight) {
			return errors.Errorf("single %s %s: stale combined weight", s.v1, s.v2)
		}
		if m.singleIdx[[2]VarID{s.v1, s.v2}] != id {
			return errors.Errorf("single %s %s not indexed", s.v1, s.v2)
		}
		n++
	}
	if n != len(m.singleIdx) || n != m.singles.stats.Live {
		return errors.Errorf("%d singles listed, %d indexed, %d live", n, len(m.singleIdx), m.singles.stats.Live)
	}
	return nil
}
