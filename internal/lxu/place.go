// Copyright 2016 The Gini Authors. All rights reserved.  Use of this source
// code is governed by a license that can be found in the License file.

package lxu

import (
	"context"

	"github.com/irifrance/fx/internal/placer"
	"github.com/pkg/errors"
)

// Placer assigns a point to every node of a netlist.
type Placer interface {
	Place(ctx context.Context, nl *placer.Netlist) ([]placer.Point, error)
}

// placement holds node positions.  Both values of a binary node, and the
// two vars of an extracted node, share the node position.
type placement struct {
	p      Placer
	pos    []point
	ok     bool
	rounds int
	last   int // step of the last placement
}

func (p *placement) ready() bool {
	return p != nil && p.ok
}

func (m *Matrix) varPos(v VarID) point {
	nd := int(m.v(v).node)
	if nd < len(m.place.pos) {
		return m.place.pos[nd]
	}
	return point{}
}

func (m *Matrix) cubePos(c CubeID) point {
	return m.varPos(m.c(c).v)
}

// nodeVars returns the vars of node nd.
func (m *Matrix) nodeVars(nd int) []VarID {
	if nd < m.nNodes {
		lo, hi := m.in.NodeValues[nd], m.in.NodeValues[nd+1]
		res := make([]VarID, 0, hi-lo)
		for v := lo; v < hi; v++ {
			res = append(res, VarID(v+1))
		}
		return res
	}
	k := nd - m.nNodes
	return []VarID{m.newVar(k, 0), m.newVar(k, 1)}
}

func (m *Matrix) newVar(k, i int) VarID {
	return VarID(m.nValues + 2*k + i + 1)
}

// Netlist returns the node netlist of the current matrix.
func (m *Matrix) Netlist() *placer.Netlist {
	n := m.nNodes + m.nNew
	nl := &placer.Netlist{Nodes: make([]placer.Node, n)}
	for nd := 0; nd < n; nd++ {
		pn := &nl.Nodes[nd]
		pn.ID = nd
		for _, v := range m.nodeVars(nd) {
			for c := m.v(v).cubeHead; c != CubeNull; c = m.c(c).vnext {
				var fs []int
				for l := m.c(c).litHead; l != LitNull; l = m.l(l).rnext {
					fs = append(fs, int(m.v(m.l(l).v).node))
				}
				pn.Cubes = append(pn.Cubes, fs)
			}
		}
	}
	return nl
}

// replace runs the placer and recomputes every weight.
func (m *Matrix) replace(ctx context.Context) error {
	nl := m.Netlist()
	pts, err := m.place.p.Place(ctx, nl)
	if err != nil {
		return err
	}
	if len(pts) != len(nl.Nodes) {
		return &placer.Error{Op: "read", Err: errors.Wrapf(placer.ErrShort, "got %d want %d", len(pts), len(nl.Nodes))}
	}
	pos := make([]point, len(pts))
	for i, p := range pts {
		pos[i] = point{p.X, p.Y}
	}
	m.place.pos = pos
	m.place.ok = true
	m.place.rounds++
	m.stats.Placements++
	m.reweighAll()
	return nil
}

// reweighAll recomputes all weights and rebuilds both heaps.
func (m *Matrix) reweighAll() {
	m.doubles.each(func(i int32, _ *Double) {
		m.reweighDouble(DivID(i))
	})
	m.singles.each(func(i int32, _ *Single) {
		m.reweighSingle(SingleID(i))
	})
	m.hd.rebuild()
	m.hs.rebuild()
}

// netBoxes returns the bounding box of the net of v, the driver and the
// owners of the cubes containing v, and the same box without the sinks
// in skip.
func (m *Matrix) netBoxes(v VarID, skip map[CubeID]bool) (full, reduced bbox) {
	d := m.varPos(v)
	full.add(d)
	reduced.add(d)
	for l := m.v(v).litHead; l != LitNull; l = m.l(l).cnext {
		c := m.l(l).c
		p := m.cubePos(c)
		full.add(p)
		if !skip[c] {
			reduced.add(p)
		}
	}
	return
}

// physical returns the wirelength saved when the nets of vars lose the
// sinks in consumed, less the cost of a new node connected to the
// reduced nets and to the points in users, and where to put that node.
func (m *Matrix) physical(vars []VarID, consumed []map[CubeID]bool, users []point) (float64, point) {
	boxes := make([]bbox, 0, len(vars)+1)
	gain := 0.0
	for i, v := range vars {
		full, reduced := m.netBoxes(v, consumed[i])
		gain += full.hpwl() - reduced.hpwl()
		boxes = append(boxes, reduced)
	}
	var ub bbox
	for _, p := range users {
		ub.add(p)
	}
	boxes = append(boxes, ub)
	at, cost := relocate2(boxes)
	return gain - cost, at
}

func (m *Matrix) placeDouble(did DivID) {
	dv := m.d(did)
	res := m.pairResidue(dv.head, nil)
	vars := make([]VarID, len(res))
	consumed := make([]map[CubeID]bool, len(res))
	for i, r := range res {
		vars[i] = absVar(r)
		consumed[i] = make(map[CubeID]bool)
	}
	var users []point
	for pid := dv.head; pid != PairNull; pid = m.p(pid).next {
		p := m.p(pid)
		for i, r := range res {
			if r > 0 {
				consumed[i][p.c1] = true
			} else {
				consumed[i][p.c2] = true
			}
		}
		users = append(users, m.cubePos(p.c1))
	}
	w, at := m.physical(vars, consumed, users)
	dv = m.d(did)
	dv.pweight = w
	dv.pos = at
}

func (m *Matrix) placeSingle(sid SingleID) {
	s := m.s(sid)
	cs := m.coincident(s.v1, s.v2)
	skip := make(map[CubeID]bool, len(cs))
	users := make([]point, len(cs))
	for i, c := range cs {
		skip[c] = true
		users[i] = m.cubePos(c)
	}
	w, at := m.physical([]VarID{s.v1, s.v2}, []map[CubeID]bool{skip, skip}, users)
	s = m.s(sid)
	s.pweight = w
	s.pos = at
}

// coincident returns the cubes containing both u and v.
func (m *Matrix) coincident(u, v VarID) []CubeID {
	var res []CubeID
	l1, l2 := m.v(u).litHead, m.v(v).litHead
	for l1 != LitNull && l2 != LitNull {
		a, b := m.l(l1).cnum, m.l(l2).cnum
		switch {
		case a < b:
			l1 = m.l(l1).cnext
		case b < a:
			l2 = m.l(l2).cnext
		default:
			res = append(res, m.l(l1).c)
			l1 = m.l(l1).cnext
			l2 = m.l(l2).cnext
		}
	}
	return res
}

// placeNew records the position of a newly extracted node.
func (m *Matrix) placeNew(at point) {
	if m.place == nil {
		return
	}
	for len(m.place.pos) < m.nNodes+m.nNew-1 {
		m.place.pos = append(m.place.pos, point{})
	}
	m.place.pos = append(m.place.pos, at)
}
