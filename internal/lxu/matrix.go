// Copyright 2016 The Gini Authors. All rights reserved.  Use of this source
// code is governed by a license that can be found in the License file.

package lxu

import (
	"io"

	"github.com/cespare/xxhash/v2"
	"github.com/sirupsen/logrus"
)

// Var is a column of the matrix: one value of a node.
type Var struct {
	value int32 // index in the output value layout
	node  int32
	index int32 // value index within node
	typ   NodeType
	isNew bool

	// cubes of the cover of this value
	cubeHead, cubeTail CubeID
	nCubes             int32

	// pair storage, local cube index -> cube, triangular pair table
	local []CubeID
	pairs []PairID

	// column
	litHead, litTail LitID
	nLits            int32
}

// Cube is a row of the matrix: one product term of the cover of its var.
type Cube struct {
	num   int32 // creation order, orders columns
	v     VarID
	local int32

	prev, next   CubeID // all cubes
	vprev, vnext CubeID // cubes of v

	litHead, litTail LitID
	nLits            int32
}

// Lit is the incidence of a var in a cube.
type Lit struct {
	c    CubeID
	v    VarID
	cnum int32

	rprev, rnext LitID // row
	cprev, cnext LitID // column
}

// Matrix is the sparse cube/var matrix together with the divisor tables
// and heaps used by fast extraction.
type Matrix struct {
	vars    arena[Var]
	cubes   arena[Cube]
	lits    arena[Lit]
	pairs   arena[Pair]
	doubles arena[Double]
	singles arena[Single]

	cubeHead, cubeTail CubeID
	nCubes             int
	nLits              int
	cubeNum            int32

	// double divisors
	table  []DivID
	divNum int32
	hd     *heap

	// single divisors
	singleIdx              map[[2]VarID]SingleID
	singleHead, singleTail SingleID
	singleNum              int32
	hs                     *heap

	cring ring[CubeID]
	vring ring[VarID]

	// scratch
	res1, res2 []int32
	hbuf       []byte
	hash       func([]byte) uint64 // residue key

	nNodes  int
	nValues int
	nNew    int
	in      *Input
	cfg     Config
	alpha   float64
	beta    float64
	log     logrus.FieldLogger
	place   *placement
	steps   []Step
	stats   Stats
	created bool
}

func newMatrix(nVars, nCubes int) *Matrix {
	m := &Matrix{
		vars:      newArena[Var](nVars),
		cubes:     newArena[Cube](nCubes),
		lits:      newArena[Lit](4 * nCubes),
		pairs:     newArena[Pair](nCubes),
		doubles:   newArena[Double](nCubes),
		singles:   newArena[Single](nVars),
		table:     make([]DivID, tableSize),
		singleIdx: make(map[[2]VarID]SingleID),
		hash:      xxhash.Sum64,
		log:       discard()}
	m.hd = newHeap(doubleItems{m}, nCubes)
	m.hs = newHeap(singleItems{m}, nVars)
	return m
}

func (m *Matrix) v(id VarID) *Var {
	return m.vars.at(int32(id))
}

func (m *Matrix) c(id CubeID) *Cube {
	return m.cubes.at(int32(id))
}

func (m *Matrix) l(id LitID) *Lit {
	return m.lits.at(int32(id))
}

// NumVars returns the number of variables.
func (m *Matrix) NumVars() int {
	return len(m.vars.items) - 1
}

// NumCubes returns the number of live cubes.
func (m *Matrix) NumCubes() int {
	return m.nCubes
}

// NumLits returns the number of live literals.
func (m *Matrix) NumLits() int {
	return m.nLits
}

// AddVar adds a variable for value index of node.
func (m *Matrix) AddVar(node, index int, typ NodeType) VarID {
	id := VarID(m.vars.alloc())
	v := m.v(id)
	v.value = int32(id) - 1
	v.node = int32(node)
	v.index = int32(index)
	v.typ = typ
	return id
}

// AddCube adds a cube to the cover of v with the given local index.
func (m *Matrix) AddCube(v VarID, local int) CubeID {
	id := CubeID(m.cubes.alloc())
	m.cubeNum++
	c := m.c(id)
	c.num = m.cubeNum
	c.v = v
	c.local = int32(local)

	c.prev = m.cubeTail
	if m.cubeTail != CubeNull {
		m.c(m.cubeTail).next = id
	} else {
		m.cubeHead = id
	}
	m.cubeTail = id

	vr := m.v(v)
	c.vprev = vr.cubeTail
	if vr.cubeTail != CubeNull {
		m.c(vr.cubeTail).vnext = id
	} else {
		vr.cubeHead = id
	}
	vr.cubeTail = id
	vr.nCubes++
	if vr.local != nil {
		if vr.local[local] != CubeNull {
			invariant("%s: local cube %d taken", v, local)
		}
		vr.local[local] = id
	}
	m.nCubes++
	return id
}

// delCube removes an empty cube.
func (m *Matrix) delCube(id CubeID) {
	c := m.c(id)
	if c.nLits != 0 {
		invariant("%s: delete of cube with %d literals", id, c.nLits)
	}
	if c.prev != CubeNull {
		m.c(c.prev).next = c.next
	} else {
		m.cubeHead = c.next
	}
	if c.next != CubeNull {
		m.c(c.next).prev = c.prev
	} else {
		m.cubeTail = c.prev
	}
	vr := m.v(c.v)
	if c.vprev != CubeNull {
		m.c(c.vprev).vnext = c.vnext
	} else {
		vr.cubeHead = c.vnext
	}
	if c.vnext != CubeNull {
		m.c(c.vnext).vprev = c.vprev
	} else {
		vr.cubeTail = c.vprev
	}
	vr.nCubes--
	if vr.local != nil {
		vr.local[c.local] = CubeNull
	}
	m.nCubes--
	m.cubes.release(int32(id))
}

// AddLiteral adds a literal on v to cube c.  Rows are kept in increasing
// var order and columns in increasing cube order, so v must exceed every
// var of c and c must be newer than every cube of v.
func (m *Matrix) AddLiteral(cid CubeID, vid VarID) LitID {
	id := LitID(m.lits.alloc())
	c, v, l := m.c(cid), m.v(vid), m.l(id)
	if c.litTail != LitNull && m.l(c.litTail).v >= vid {
		invariant("%s: literal %s after %s", cid, vid, m.l(c.litTail).v)
	}
	if v.litTail != LitNull && m.l(v.litTail).cnum >= c.num {
		invariant("%s: cube %d after %d", vid, c.num, m.l(v.litTail).cnum)
	}
	l.c = cid
	l.v = vid
	l.cnum = c.num

	l.rprev = c.litTail
	if c.litTail != LitNull {
		m.l(c.litTail).rnext = id
	} else {
		c.litHead = id
	}
	c.litTail = id
	c.nLits++

	l.cprev = v.litTail
	if v.litTail != LitNull {
		m.l(v.litTail).cnext = id
	} else {
		v.litHead = id
	}
	v.litTail = id
	v.nLits++

	m.nLits++
	return id
}

// DelLiteral unlinks and frees a literal.
func (m *Matrix) DelLiteral(id LitID) {
	l := m.l(id)
	c, v := m.c(l.c), m.v(l.v)
	if l.rprev != LitNull {
		m.l(l.rprev).rnext = l.rnext
	} else {
		c.litHead = l.rnext
	}
	if l.rnext != LitNull {
		m.l(l.rnext).rprev = l.rprev
	} else {
		c.litTail = l.rprev
	}
	c.nLits--

	if l.cprev != LitNull {
		m.l(l.cprev).cnext = l.cnext
	} else {
		v.litHead = l.cnext
	}
	if l.cnext != LitNull {
		m.l(l.cnext).cprev = l.cprev
	} else {
		v.litTail = l.cprev
	}
	v.nLits--

	m.nLits--
	m.lits.release(int32(id))
}

// allocPairs sets up pair storage for a var with n cubes.
func (m *Matrix) allocPairs(vid VarID, n int) {
	v := m.v(vid)
	v.local = make([]CubeID, n)
	v.pairs = make([]PairID, n*(n-1)/2)
}

// CubeVars returns the vars of the literals of c in row order.
func (m *Matrix) CubeVars(c CubeID) []VarID {
	var res []VarID
	for l := m.c(c).litHead; l != LitNull; l = m.l(l).rnext {
		res = append(res, m.l(l).v)
	}
	return res
}

// VarCubes returns the cubes of the cover of v.
func (m *Matrix) VarCubes(v VarID) []CubeID {
	var res []CubeID
	for c := m.v(v).cubeHead; c != CubeNull; c = m.c(c).vnext {
		res = append(res, c)
	}
	return res
}

// sameNode reports whether u and v are values of the same node.
func (m *Matrix) sameNode(u, v VarID) bool {
	return m.v(u).node == m.v(v).node
}

func discard() logrus.FieldLogger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	l.SetLevel(logrus.PanicLevel)
	return l
}
