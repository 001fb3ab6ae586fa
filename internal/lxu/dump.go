// Copyright 2016 The Gini Authors. All rights reserved.  Use of this source
// code is governed by a license that can be found in the License file.

package lxu

import (
	"fmt"
	"io"
)

// Dump writes a readable listing of the cubes, doubles and singles of m.
func (m *Matrix) Dump(w io.Writer) {
	fmt.Fprintf(w, "vars %d cubes %d lits %d doubles %d singles %d\n",
		m.NumVars(), m.nCubes, m.nLits, m.Doubles(), m.Singles())
	for v := 1; v <= m.NumVars(); v++ {
		vr := m.v(VarID(v))
		if vr.nCubes == 0 {
			continue
		}
		fmt.Fprintf(w, "%s node %d.%d %s:", VarID(v), vr.node, vr.index, vr.typ)
		for c := vr.cubeHead; c != CubeNull; c = m.c(c).vnext {
			fmt.Fprintf(w, " %v", m.CubeVars(c))
		}
		fmt.Fprintln(w)
	}
	m.doubles.each(func(i int32, dv *Double) {
		fmt.Fprintf(w, "double %d w %g (%d) pairs %d:", dv.num, dv.weight, dv.lweight, dv.nPairs)
		for pid := dv.head; pid != PairNull; pid = m.p(pid).next {
			p := m.p(pid)
			fmt.Fprintf(w, " %s/%s", p.c1, p.c2)
		}
		fmt.Fprintln(w)
	})
	for id := m.singleHead; id != SingleNull; id = m.s(id).next {
		s := m.s(id)
		fmt.Fprintf(w, "single %s %s w %g (%d)\n", s.v1, s.v2, s.weight, s.lweight)
	}
}
