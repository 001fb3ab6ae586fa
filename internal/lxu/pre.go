// Copyright 2016 The Gini Authors. All rights reserved.  Use of this source
// code is governed by a license that can be found in the License file.

package lxu

import "github.com/pkg/errors"

// diff returns the number of vars in exactly one of a and b.
func (m *Matrix) diff(a, b CubeID) int {
	n := 0
	l1, l2 := m.c(a).litHead, m.c(b).litHead
	for l1 != LitNull || l2 != LitNull {
		switch {
		case l2 == LitNull || (l1 != LitNull && m.l(l1).v < m.l(l2).v):
			n++
			l1 = m.l(l1).rnext
		case l1 == LitNull || m.l(l2).v < m.l(l1).v:
			n++
			l2 = m.l(l2).rnext
		default:
			l1 = m.l(l1).rnext
			l2 = m.l(l2).rnext
		}
	}
	return n
}

// eachPair calls f on every pair of cubes of every cover, in var order
// and then in cube order, until f returns an error.
func (m *Matrix) eachPair(f func(a, b CubeID) error) error {
	for v := 1; v <= m.NumVars(); v++ {
		loc := m.v(VarID(v)).local
		for i := range loc {
			for j := i + 1; j < len(loc); j++ {
				if err := f(loc[i], loc[j]); err != nil {
					return err
				}
			}
		}
	}
	return nil
}

// preprocess adds the pairsMax pairs with the smallest difference.  Pairs are
// bucketed by difference, and the bucket at which the running count
// reaches pairsMax is taken partially, in pair order.
func (m *Matrix) preprocess(pairsMax int) error {
	var hist []int
	err := m.eachPair(func(a, b CubeID) error {
		d := m.diff(a, b)
		switch d {
		case 0:
			return errors.Wrapf(ErrDuplicateCube, "cubes %s %s of %s", a, b, m.c(a).v)
		case 1:
			return errors.Wrapf(ErrNotSCCFree, "cubes %s %s of %s", a, b, m.c(a).v)
		}
		for len(hist) <= d {
			hist = append(hist, 0)
		}
		hist[d]++
		return nil
	})
	if err != nil {
		return err
	}
	cutNum, cutQuant := len(hist), 0
	sum := 0
	for k, n := range hist {
		sum += n
		if sum >= pairsMax {
			cutNum = k
			cutQuant = n - (sum - pairsMax)
			break
		}
	}
	m.log.WithField("cutoff", cutNum).WithField("quant", cutQuant).Debug("pairs preprocessed")
	taken := 0
	return m.eachPair(func(a, b CubeID) error {
		d := m.diff(a, b)
		switch {
		case d < cutNum:
		case d == cutNum && taken < cutQuant:
			taken++
		default:
			return nil
		}
		return m.AddDivisor(a, b)
	})
}
