// Copyright 2016 The Gini Authors. All rights reserved.  Use of this source
// code is governed by a license that can be found in the License file.

package lxu

import (
	"bytes"
	"context"
	"math/rand"
	"strings"
	"testing"

	"github.com/irifrance/fx/mvc"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type binNode struct {
	fanins []int
	rows   []string
}

// binInput builds a binary network of nIn inputs followed by nodes.  Node
// i has values 2i and 2i+1; the on-set cover sits on value 2i+1.
func binInput(nIn int, nodes ...binNode) *Input {
	n := nIn + len(nodes)
	in := &Input{
		NodeValues: make([]int, n+1),
		Covers:     make([]*mvc.Cover, 2*n),
		Fanins:     make([][]int, n),
		Types:      make([]NodeType, n)}
	for i := range in.NodeValues {
		in.NodeValues[i] = 2 * i
	}
	for i := 0; i < nIn; i++ {
		in.Types[i] = PI
	}
	for k, nd := range nodes {
		id := nIn + k
		in.Fanins[id] = nd.fanins
		in.Covers[2*id+1] = mvc.MustSOP(len(nd.fanins), nd.rows...)
	}
	return in
}

// scenario: f1 = ab+ac, f2 = ab+bc, f3 = ac+bc
func threeCovers() *Input {
	return binInput(3,
		binNode{[]int{0, 1, 2}, []string{"11-", "1-1"}},
		binNode{[]int{0, 1, 2}, []string{"11-", "-11"}},
		binNode{[]int{0, 1, 2}, []string{"1-1", "-11"}})
}

func TestOutputUnchanged(t *testing.T) {
	in := threeCovers()
	m, err := New(in, Config{NodesExt: 3})
	require.NoError(t, err)
	require.NoError(t, m.Check())
	out := m.Output()
	assert.Len(t, out.Covers, len(in.Covers)+6)
	for i, c := range out.Covers {
		assert.Nil(t, c, "value %d", i)
	}
	for i, f := range out.Fanins {
		assert.Nil(t, f, "node %d", i)
	}
	assert.Equal(t, 12, out.Stats.LitsBefore)
}

func TestDoubleScenario(t *testing.T) {
	in := threeCovers()
	// every divisor saves 2 literals and costs 2 for its own node
	m, err := New(in, Config{OnlyDoubles: true, NodesExt: 1, Check: true})
	require.NoError(t, err)
	assert.Equal(t, 3, m.Doubles())
	assert.Equal(t, 0, m.Singles())
	assert.Equal(t, 0, m.d(DivID(m.hd.ReadMax())).lweight)
	require.NoError(t, m.Run(context.Background()))
	out := m.Output()
	assert.Equal(t, 0, out.NodesNew)
	for _, c := range out.Covers {
		assert.Nil(t, c)
	}

	m, err = New(in, Config{OnlyDoubles: true, UseZero: true, NodesExt: 1, Check: true})
	require.NoError(t, err)
	require.NoError(t, m.Run(context.Background()))
	out = m.Output()
	require.Equal(t, 1, out.NodesNew)
	require.Len(t, out.Steps, 1)
	st := out.Steps[0]
	assert.Equal(t, KindDouble, st.Kind)
	assert.Equal(t, 0, st.LWeight)
	assert.Equal(t, 12, st.Lits)

	// first divisor found, b+c from f1, wins the tie
	f1 := out.Covers[7]
	require.NotNil(t, f1)
	assert.Equal(t, []int{0, 6}, out.Fanins[3])
	assert.Equal(t, []string{"11"}, f1.SOP())
	assert.Nil(t, out.Covers[9])
	assert.Nil(t, out.Covers[11])
	assert.Nil(t, out.Covers[12])
	d := out.Covers[13]
	require.NotNil(t, d)
	assert.Equal(t, []int{1, 2}, out.Fanins[6])
	assert.Equal(t, []string{"1-", "-1"}, d.SOP())

	// uncharged weights count the divisor cubes as saved
	m, err = New(in, Config{OnlyDoubles: true, NodesExt: 1, NoChargeDivisor: true, Check: true})
	require.NoError(t, err)
	require.NoError(t, m.Run(context.Background()))
	out = m.Output()
	require.Len(t, out.Steps, 1)
	st = out.Steps[0]
	assert.Equal(t, 2, st.LWeight)
	assert.Equal(t, 12-st.LWeight+2, st.Lits)

	m, err = New(in, Config{OnlyDoubles: true, UseZero: true, NodesExt: 0})
	require.NoError(t, err)
	require.NoError(t, m.Run(context.Background()))
	out = m.Output()
	assert.Equal(t, 0, out.NodesNew)
	assert.Len(t, out.Covers, len(in.Covers))
	for _, c := range out.Covers {
		assert.Nil(t, c)
	}
}

// f1 = xy+z, f2 = xy+w
func TestSingleScenario(t *testing.T) {
	in := binInput(4,
		binNode{[]int{0, 1, 2}, []string{"11-", "--1"}},
		binNode{[]int{0, 1, 3}, []string{"11-", "--1"}})
	m, err := New(in, Config{OnlySingles: true, NodesExt: -1})
	require.NoError(t, err)
	require.Equal(t, 1, m.Singles())
	s := m.s(SingleID(m.hs.ReadMax()))
	assert.Equal(t, 0, s.lweight)
	require.NoError(t, m.Run(context.Background()))
	out := m.Output()
	assert.Equal(t, 0, out.NodesNew)
	for _, c := range out.Covers {
		assert.Nil(t, c)
	}

	m, err = New(in, Config{OnlySingles: true, UseZero: true, NodesExt: -1, Check: true})
	require.NoError(t, err)
	require.NoError(t, m.Run(context.Background()))
	out = m.Output()
	require.Equal(t, 1, out.NodesNew)
	assert.Len(t, out.Covers, len(in.Covers)+2)
	assert.Equal(t, 6, out.Steps[0].Lits)
	// f1 = n + z over fanins z, n
	assert.Equal(t, []int{2, 6}, out.Fanins[4])
	assert.Equal(t, []string{"-1", "1-"}, out.Covers[9].SOP())
	assert.Equal(t, []int{3, 6}, out.Fanins[5])
	assert.Equal(t, []string{"-1", "1-"}, out.Covers[11].SOP())
	assert.Equal(t, []int{0, 1}, out.Fanins[6])
	assert.Equal(t, []string{"11"}, out.Covers[13].SOP())
	assert.Nil(t, out.Covers[12])
}

func TestMergeDivisors(t *testing.T) {
	// f1 = ab+ac, f2 = db+dc share b+c; f3 = ab+ad has a different one
	in := binInput(4,
		binNode{[]int{0, 1, 2}, []string{"11-", "1-1"}},
		binNode{[]int{1, 2, 3}, []string{"1-1", "-11"}},
		binNode{[]int{0, 1, 3}, []string{"11-", "1-1"}})
	m, err := New(in, Config{OnlyDoubles: true})
	require.NoError(t, err)
	require.NoError(t, m.Check())
	assert.Equal(t, 2, m.Doubles())
	d := m.d(DivID(m.hd.ReadMax()))
	assert.Equal(t, int32(2), d.nPairs)
	// two pairs saving 2 each, less the 2 literals of b+c
	assert.Equal(t, 2, d.lweight)
}

func TestBucketCollisions(t *testing.T) {
	m := newMatrix(8, 8)
	m.alpha = 1
	m.table = make([]DivID, 1)
	vars := make([]VarID, 8)
	for i := range vars {
		vars[i] = m.AddVar(i, 0, Internal)
	}
	cube := func(f VarID, local int, lits ...int) CubeID {
		c := m.AddCube(f, local)
		for _, l := range lits {
			m.AddLiteral(c, vars[l])
		}
		return c
	}
	m.allocPairs(vars[6], 2)
	m.allocPairs(vars[7], 2)
	a := cube(vars[6], 0, 0, 1)
	b := cube(vars[6], 1, 0, 2)
	c := cube(vars[7], 0, 3, 4)
	d := cube(vars[7], 1, 3, 5)
	require.NoError(t, m.AddDivisor(a, b))
	require.NoError(t, m.AddDivisor(c, d))
	assert.Equal(t, 2, m.Doubles())
	assert.Equal(t, m.table[0], DivID(2))
	assert.Equal(t, m.d(2).next, DivID(1))
	require.NoError(t, m.Check())
	m.delDouble(1)
	assert.Equal(t, DivNull, m.d(2).next)
	require.NoError(t, m.Check())
}

func TestKeyCollisions(t *testing.T) {
	m := newMatrix(9, 8)
	m.alpha = 1
	m.hash = func([]byte) uint64 { return 42 }
	vars := make([]VarID, 9)
	for i := range vars {
		vars[i] = m.AddVar(i, 0, Internal)
	}
	cube := func(f VarID, local int, lits ...int) CubeID {
		c := m.AddCube(f, local)
		for _, l := range lits {
			m.AddLiteral(c, vars[l])
		}
		return c
	}
	for _, f := range vars[6:] {
		m.allocPairs(f, 2)
	}
	// x1+x2, x4+x5 and again x1+x2, all under one key
	a := cube(vars[6], 0, 0, 1)
	b := cube(vars[6], 1, 0, 2)
	c := cube(vars[7], 0, 3, 4)
	d := cube(vars[7], 1, 3, 5)
	e := cube(vars[8], 0, 1, 3)
	f := cube(vars[8], 1, 2, 3)
	require.NoError(t, m.AddDivisor(a, b))
	require.NoError(t, m.AddDivisor(c, d))
	assert.Equal(t, 2, m.Doubles())
	require.NoError(t, m.AddDivisor(e, f))
	assert.Equal(t, 2, m.Doubles())
	d1, d2 := m.p(m.lookupPair(a, b)).div, m.p(m.lookupPair(c, d)).div
	assert.NotEqual(t, d1, d2)
	assert.Equal(t, d1, m.p(m.lookupPair(e, f)).div)
	assert.Equal(t, int32(2), m.d(d1).nPairs)
	assert.Equal(t, int32(1), m.d(d2).nPairs)
	assert.Equal(t, m.d(d1).key, m.d(d2).key)
	require.NoError(t, m.Check())
}

func TestInputErrors(t *testing.T) {
	for _, tt := range []struct {
		name string
		in   *Input
		cfg  Config
		err  error
	}{
		{
			name: "duplicate",
			in:   binInput(2, binNode{[]int{0, 1}, []string{"1-", "1-"}}),
			err:  ErrDuplicateCube,
		},
		{
			name: "containment",
			in:   binInput(2, binNode{[]int{0, 1}, []string{"1-", "11"}}),
			err:  ErrNotSCCFree,
		},
		{
			name: "containment preprocessed",
			in:   binInput(3, binNode{[]int{0, 1, 2}, []string{"1--", "11-", "-01"}}),
			cfg:  Config{PairsMax: 1},
			err:  ErrNotSCCFree,
		},
		{
			name: "too large",
			in:   binInput(2, binNode{[]int{0, 1}, []string{"1-", "-1"}}),
			cfg:  Config{PairsStoreMax: 3},
			err:  ErrTooLarge,
		},
		{
			name: "repeated fanin",
			in:   binInput(2, binNode{[]int{0, 0}, []string{"11"}}),
			err:  ErrLiteralOrder,
		},
		{
			name: "bad fanins",
			in: func() *Input {
				in := binInput(2, binNode{[]int{0, 1}, []string{"11"}})
				in.Fanins[2] = []int{0}
				return in
			}(),
			err: ErrBadCover,
		},
	} {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.in, tt.cfg)
			assert.Equal(t, tt.err, errors.Cause(err))
		})
	}
}

func TestEmptyLiteral(t *testing.T) {
	in := binInput(2, binNode{[]int{0, 1}, []string{"11"}})
	cv := in.Covers[5]
	cv.Clear(cv.Cubes[0], 0, 0)
	cv.Clear(cv.Cubes[0], 0, 1)
	_, err := New(in, Config{})
	assert.Equal(t, ErrEmptyLiteral, errors.Cause(err))
}

func TestPreprocess(t *testing.T) {
	// ab ac cd bd: diffs (0,1)=2 (0,2)=4 (0,3)=2 (1,2)=2 (1,3)=4 (2,3)=2
	in := binInput(4, binNode{[]int{0, 1, 2, 3}, []string{"11--", "1-1-", "--11", "-1-1"}})
	m, err := New(in, Config{OnlyDoubles: true, PairsMax: 3})
	require.NoError(t, err)
	require.NoError(t, m.Check())
	assert.Equal(t, 6, m.stats.PairsTotal)
	assert.Equal(t, 3, m.stats.PairsAdded)
	loc := m.v(10).local
	for _, p := range [][2]int{{0, 1}, {0, 3}, {1, 2}} {
		assert.NotEqual(t, PairNull, m.lookupPair(loc[p[0]], loc[p[1]]), "%v", p)
	}
	for _, p := range [][2]int{{2, 3}, {0, 2}, {1, 3}} {
		assert.Equal(t, PairNull, m.lookupPair(loc[p[0]], loc[p[1]]), "%v", p)
	}
}

func TestInvariantRecovered(t *testing.T) {
	m := newMatrix(2, 2)
	u := m.AddVar(0, 0, Internal)
	v := m.AddVar(1, 0, Internal)
	c := m.AddCube(u, 0)
	m.AddLiteral(c, v)
	err := func() (err error) {
		defer recoverInvariant(&err)
		m.AddLiteral(c, u)
		return nil
	}()
	assert.Equal(t, ErrInternal, errors.Cause(err))

	var r ring[VarID]
	r.start()
	r.add(3)
	err = func() (err error) {
		defer recoverInvariant(&err)
		r.start()
		return nil
	}()
	assert.Equal(t, ErrInternal, errors.Cause(err))
	r.unmark()
	assert.True(t, r.drained())
}

// randInput returns a random binary network whose covers are
// duplicate and containment free.
func randInput(rnd *rand.Rand, nIn, nNodes, maxCubes int) *Input {
	var nodes []binNode
	for k := 0; k < nNodes; k++ {
		perm := rnd.Perm(nIn)
		nf := 2 + rnd.Intn(nIn-1)
		fanins := append([]int(nil), perm[:nf]...)
		sortInts(fanins)
		cv := mvc.MustSOP(nf)
		nc := 1 + rnd.Intn(maxCubes)
		row := make([]byte, nf)
		for len(cv.Cubes) < nc {
			for i := range row {
				row[i] = "01--"[rnd.Intn(4)]
			}
			q := mvc.MustSOP(nf, string(row)).Cubes[0]
			cv.Add(q)
			if cv.Validate() != nil {
				cv.Cubes = cv.Cubes[:len(cv.Cubes)-1]
				if rnd.Intn(8) == 0 {
					break
				}
			}
		}
		nodes = append(nodes, binNode{fanins, cv.SOP()})
	}
	return binInput(nIn, nodes...)
}

func sortInts(a []int) {
	for i := 1; i < len(a); i++ {
		for j := i; j > 0 && a[j] < a[j-1]; j-- {
			a[j], a[j-1] = a[j-1], a[j]
		}
	}
}

func TestRandomInvariants(t *testing.T) {
	rnd := rand.New(rand.NewSource(7))
	for i := 0; i < 40; i++ {
		in := randInput(rnd, 6, 8, 6)
		for _, cfg := range []Config{
			{NodesExt: -1},
			{NodesExt: -1, UseZero: true},
			{NodesExt: -1, OnlyDoubles: true},
			{NodesExt: -1, OnlySingles: true},
			{NodesExt: 3, PairsMax: 4},
		} {
			cfg.Check = true
			m, err := New(in, cfg)
			require.NoError(t, err)
			require.NoError(t, m.Check())
			lits := m.NumLits()
			m.cfg.OnStep = func(st Step) {
				// every step saves exactly its logical weight
				assert.Equal(t, lits-st.LWeight, st.Lits, "%+v", st)
				assert.GreaterOrEqual(t, st.LWeight, 0)
				lits = st.Lits
			}
			require.NoError(t, m.Run(context.Background()))
			out := m.Output()
			assert.LessOrEqual(t, out.Stats.LitsAfter, out.Stats.LitsBefore)
			if cfg.NodesExt > 0 {
				assert.LessOrEqual(t, out.NodesNew, cfg.NodesExt)
				assert.Len(t, out.Covers, len(in.Covers)+2*cfg.NodesExt)
			} else {
				assert.Len(t, out.Covers, len(in.Covers)+2*out.NodesNew)
			}
			for k := 0; k < out.NodesNew; k++ {
				d := out.Covers[len(in.Covers)+2*k+1]
				require.NotNil(t, d)
				assert.NoError(t, d.Validate())
			}
		}
	}
}

func TestTrace(t *testing.T) {
	var buf bytes.Buffer
	m, err := New(threeCovers(), Config{OnlyDoubles: true, UseZero: true, NodesExt: 1, Trace: &buf})
	require.NoError(t, err)
	require.NoError(t, m.Run(context.Background()))
	assert.Equal(t, 2, strings.Count(buf.String(), "vars "))
	assert.Contains(t, buf.String(), "double ")
}
