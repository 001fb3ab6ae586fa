// Copyright 2016 The Gini Authors. All rights reserved.  Use of this source
// code is governed by a license that can be found in the License file.

package lxu

import (
	"sort"

	"github.com/irifrance/fx/mvc"
	"github.com/pkg/errors"
)

// New builds the matrix of in.  Every value becomes a var, every cube of
// a non-nil cover becomes a cube, and the initial divisors are computed.
//
// A cube has a literal on the var of fanin value j exactly when bit j is
// cleared in the positional cube.  The result of a run is read back with
// Output.
func New(in *Input, cfg Config) (m *Matrix, err error) {
	defer recoverInvariant(&err)
	if err := checkInput(in); err != nil {
		return nil, err
	}
	if cfg.Alpha == 0 {
		cfg.Alpha = 1
	}
	if cfg.PairsStoreMax == 0 {
		cfg.PairsStoreMax = DefaultPairsStoreMax
	}
	nNodes := len(in.NodeValues) - 1
	nValues := in.NodeValues[nNodes]
	store, total, nCubes := 0, 0, 0
	for _, cv := range in.Covers {
		if cv == nil {
			continue
		}
		n := len(cv.Cubes)
		store += n * n
		total += n * (n - 1) / 2
		nCubes += n
	}
	if store > cfg.PairsStoreMax {
		return nil, errors.Wrapf(ErrTooLarge, "pair storage %d exceeds %d", store, cfg.PairsStoreMax)
	}
	m = newMatrix(nValues, nCubes)
	m.in = in
	m.cfg = cfg
	m.nNodes = nNodes
	m.nValues = nValues
	m.alpha = cfg.Alpha
	m.beta = cfg.Beta
	if cfg.Log != nil {
		m.log = cfg.Log
	}
	if cfg.Placer != nil {
		m.place = &placement{p: cfg.Placer}
	}
	for nd := 0; nd < nNodes; nd++ {
		typ := Internal
		if nd < len(in.Types) {
			typ = in.Types[nd]
		}
		for j := in.NodeValues[nd]; j < in.NodeValues[nd+1]; j++ {
			m.AddVar(nd, j-in.NodeValues[nd], typ)
		}
	}
	var atoms []VarID
	for val, cv := range in.Covers {
		if cv == nil || len(cv.Cubes) == 0 {
			continue
		}
		nd := m.v(VarID(val + 1)).node
		vid := VarID(val + 1)
		if !cfg.OnlySingles {
			m.allocPairs(vid, len(cv.Cubes))
		}
		for k, q := range cv.Cubes {
			atoms, err = m.atoms(cv, in.Fanins[nd], q, atoms[:0])
			if err != nil {
				return nil, errors.Wrapf(err, "value %d cube %d", val, k)
			}
			c := m.AddCube(vid, k)
			for _, a := range atoms {
				m.AddLiteral(c, a)
			}
		}
	}
	m.stats.PairsTotal = total
	if !cfg.OnlySingles {
		if cfg.PairsMax > 0 && total > cfg.PairsMax {
			err = m.preprocess(cfg.PairsMax)
		} else {
			err = m.addAllPairs()
		}
		if err != nil {
			return nil, err
		}
	}
	if !cfg.OnlyDoubles {
		for v := 1; v <= m.NumVars(); v++ {
			m.ComputeSinglesOne(VarID(v))
		}
	}
	m.stats.LitsBefore = m.nLits
	m.created = true
	return m, nil
}

func checkInput(in *Input) error {
	if len(in.NodeValues) == 0 || in.NodeValues[0] != 0 {
		return errors.Wrap(ErrBadCover, "node values must start at 0")
	}
	nNodes := len(in.NodeValues) - 1
	for n := 0; n < nNodes; n++ {
		if in.NodeValues[n+1] < in.NodeValues[n] {
			return errors.Wrapf(ErrBadCover, "node %d has negative value count", n)
		}
	}
	if len(in.Covers) != in.NodeValues[nNodes] {
		return errors.Wrapf(ErrBadCover, "%d covers for %d values", len(in.Covers), in.NodeValues[nNodes])
	}
	for val, cv := range in.Covers {
		if cv == nil {
			continue
		}
		nd := sort.SearchInts(in.NodeValues, val+1) - 1
		if nd >= len(in.Fanins) || len(in.Fanins[nd]) != cv.NumFanins() {
			return errors.Wrapf(ErrBadCover, "value %d: fanins do not match cover", val)
		}
		for _, f := range in.Fanins[nd] {
			if f < 0 || f >= nNodes {
				return errors.Wrapf(ErrBadCover, "value %d: fanin node %d", val, f)
			}
		}
	}
	return nil
}

// atoms appends to dst the vars of the cleared bits of q in increasing
// order.
func (m *Matrix) atoms(cv *mvc.Cover, fanins []int, q mvc.Cube, dst []VarID) ([]VarID, error) {
	if len(q) != (cv.Bits()+63)/64 {
		return nil, errors.Wrapf(ErrBadCover, "cube has %d words", len(q))
	}
	nv := m.in.NodeValues
	for i, f := range fanins {
		w := nv[f+1] - nv[f]
		if w != cv.Widths[i] {
			return nil, errors.Wrapf(ErrBadCover, "fanin %d has %d values, width %d", i, w, cv.Widths[i])
		}
		if cv.IsEmpty(q, i) {
			return nil, errors.Wrapf(ErrEmptyLiteral, "fanin %d", i)
		}
		for j := 0; j < w; j++ {
			if !cv.Has(q, i, j) {
				dst = append(dst, VarID(nv[f]+j+1))
			}
		}
	}
	sort.Slice(dst, func(i, j int) bool { return dst[i] < dst[j] })
	for i := 1; i < len(dst); i++ {
		if dst[i-1] == dst[i] {
			return nil, errors.Wrapf(ErrLiteralOrder, "repeated %s", dst[i])
		}
	}
	return dst, nil
}

func (m *Matrix) addAllPairs() error {
	return m.eachPair(m.AddDivisor)
}

// Output reconstructs the covers.  An original node whose cubes gained no
// literal on an extracted var is reported unchanged.
func (m *Matrix) Output() *Output {
	nExt := m.nNew
	if m.cfg.NodesExt > 0 {
		nExt = m.cfg.NodesExt
	}
	out := &Output{
		Covers:   make([]*mvc.Cover, m.nValues+2*nExt),
		Fanins:   make([][]int, m.nNodes+nExt),
		NodesNew: m.nNew,
		Steps:    m.steps,
		Stats:    m.Stats()}
	for nd := 0; nd < m.nNodes; nd++ {
		vars := m.nodeVars(nd)
		if !m.gainedNew(vars) {
			continue
		}
		m.rebuild(nd, vars, out)
	}
	for k := 0; k < m.nNew; k++ {
		m.rebuild(m.nNodes+k, m.nodeVars(m.nNodes+k), out)
	}
	return out
}

func (m *Matrix) gainedNew(vars []VarID) bool {
	for _, v := range vars {
		for c := m.v(v).cubeHead; c != CubeNull; c = m.c(c).vnext {
			t := m.c(c).litTail
			if t != LitNull && int(m.l(t).v) > m.nValues {
				return true
			}
		}
	}
	return false
}

// rebuild writes the covers and fanins of node nd to out.
func (m *Matrix) rebuild(nd int, vars []VarID, out *Output) {
	m.vring.start()
	for _, v := range vars {
		for c := m.v(v).cubeHead; c != CubeNull; c = m.c(c).vnext {
			for l := m.c(c).litHead; l != LitNull; l = m.l(l).rnext {
				u := m.l(l).v
				m.vring.add(m.nodeVars(int(m.v(u).node))[0])
			}
		}
	}
	m.vring.stop()
	fanins := make([]int, 0, m.vring.len())
	for _, u := range m.vring.items {
		fanins = append(fanins, int(m.v(u).node))
	}
	m.vring.unmark()
	sort.Ints(fanins)
	widths := make([]int, len(fanins))
	at := make(map[int]int, len(fanins))
	for i, f := range fanins {
		widths[i] = len(m.nodeVars(f))
		at[f] = i
	}
	for _, v := range vars {
		vr := m.v(v)
		if vr.nCubes == 0 {
			continue
		}
		if !vr.isNew && m.in.Covers[vr.value] == nil {
			continue
		}
		cv := mvc.New(widths...)
		for c := vr.cubeHead; c != CubeNull; c = m.c(c).vnext {
			q := cv.NewCube()
			for l := m.c(c).litHead; l != LitNull; l = m.l(l).rnext {
				u := m.v(m.l(l).v)
				j := int(u.index)
				if u.isNew {
					j ^= 1
				}
				cv.Clear(q, at[int(u.node)], j)
			}
			cv.Add(q)
		}
		out.Covers[vr.value] = cv
	}
	out.Fanins[nd] = fanins
}

// Stats returns the statistics of the run so far.
func (m *Matrix) Stats() Stats {
	st := m.stats
	st.Vars = m.NumVars()
	st.LitsAfter = m.nLits
	st.Mem = AllocationStats{}
	st.Mem.add(m.cubes.stats)
	st.Mem.add(m.lits.stats)
	st.Mem.add(m.pairs.stats)
	st.Mem.add(m.doubles.stats)
	st.Mem.add(m.singles.stats)
	return st
}
