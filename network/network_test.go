// Copyright 2016 The Gini Authors. All rights reserved.  Use of this source
// code is governed by a license that can be found in the License file.

package network

import (
	"context"
	"testing"

	"github.com/irifrance/fx"
	"github.com/irifrance/fx/mvc"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// productOfSums builds f = ac + ad + bc + bd.
func productOfSums(t *testing.T) *Network {
	t.Helper()
	n := New("pos")
	var in []int
	for _, s := range []string{"a", "b", "c", "d"} {
		i, err := n.AddInput(s)
		require.NoError(t, err)
		in = append(in, i)
	}
	f, err := n.AddNode("f")
	require.NoError(t, err)
	require.NoError(t, n.SetCover(f, in, mvc.MustSOP(4, "1-1-", "1--1", "-11-", "-1-1"), true))
	require.NoError(t, n.AddOutput(f))
	return n
}

func allAssignments(n int) [][]bool {
	res := make([][]bool, 0, 1<<uint(n))
	for m := 0; m < 1<<uint(n); m++ {
		a := make([]bool, n)
		for i := range a {
			a[i] = m&(1<<uint(i)) != 0
		}
		res = append(res, a)
	}
	return res
}

func TestData(t *testing.T) {
	n := productOfSums(t)
	d := n.Data()
	assert.Equal(t, 5, d.NumNodes())
	assert.Equal(t, 10, d.NumValues())
	assert.Nil(t, d.Covers[8])
	assert.Same(t, n.Nodes[4].Cover, d.Covers[9])
	assert.Equal(t, []fx.NodeType{fx.PI, fx.PI, fx.PI, fx.PI, fx.PO}, d.Types)
}

func TestDataOffSet(t *testing.T) {
	n := productOfSums(t)
	n.Nodes[4].Phase = false
	d := n.Data()
	assert.NotNil(t, d.Covers[8])
	assert.Nil(t, d.Covers[9])
}

func TestExtractApply(t *testing.T) {
	for _, ph := range []bool{true, false} {
		n := productOfSums(t)
		n.Nodes[4].Phase = ph
		orig := n.Copy()
		res, err := fx.Extract(context.Background(), n.Data(), fx.DefaultOptions())
		require.NoError(t, err)
		require.NotZero(t, res.NodesNew)
		require.NoError(t, n.Apply(res))
		require.NoError(t, n.Check())
		assert.Less(t, n.LiteralCount(), orig.LiteralCount())
		assert.Len(t, n.Nodes, 5+res.NodesNew)
		_, ok := n.Lookup("_fx0")
		assert.True(t, ok)
		for _, a := range allAssignments(4) {
			want, err := orig.Eval(a)
			require.NoError(t, err)
			got, err := n.Eval(a)
			require.NoError(t, err)
			assert.Equal(t, want, got, "phase %v inputs %v", ph, a)
		}
	}
}

func TestApplyMismatch(t *testing.T) {
	n := productOfSums(t)
	err := n.Apply(&fx.Result{NodesNew: 1})
	assert.Equal(t, ErrResult, errors.Cause(err))
}

func TestFreshName(t *testing.T) {
	n := New("names")
	_, err := n.AddInput("_fx0")
	require.NoError(t, err)
	assert.Equal(t, "_fx1", n.freshName("_fx%d", 0))
	_, err = n.AddInput("_fx0")
	assert.Equal(t, ErrDuplicateName, errors.Cause(err))
}

func TestTopoOrder(t *testing.T) {
	n := New("loop")
	a, _ := n.AddInput("a")
	g, _ := n.AddNode("g")
	h, _ := n.AddNode("h")
	require.NoError(t, n.SetCover(g, []int{a, h}, mvc.MustSOP(2, "11"), true))
	require.NoError(t, n.SetCover(h, []int{a}, mvc.MustSOP(1, "0"), true))
	order, err := n.TopoOrder()
	require.NoError(t, err)
	assert.Equal(t, []int{a, h, g}, order)

	require.NoError(t, n.SetCover(h, []int{g}, mvc.MustSOP(1, "0"), true))
	_, err = n.TopoOrder()
	assert.Equal(t, ErrCombLoop, errors.Cause(err))
	assert.Error(t, n.Check())
}

func TestLatches(t *testing.T) {
	n := New("seq")
	a, _ := n.AddInput("a")
	g, _ := n.AddNode("g")
	q, err := n.AddLatch(g, "q", Init0)
	require.NoError(t, err)
	require.NoError(t, n.SetCover(g, []int{a, q}, mvc.MustSOP(2, "10", "01"), true))
	require.NoError(t, n.AddOutput(q))
	assert.Equal(t, []int{a, q}, n.Sources())
	assert.Equal(t, []int{q, g}, n.Sinks())
	out, err := n.Eval([]bool{true, false})
	require.NoError(t, err)
	assert.Equal(t, []bool{false, true}, out)
	assert.Equal(t, []fx.NodeType{fx.PI, fx.LatchIn, fx.LatchOut}, n.Data().Types)
	assert.Equal(t, Stats{Inputs: 1, Outputs: 1, Latches: 1, Nodes: 1, Cubes: 2, Lits: 4}, n.Stats())
}

func TestSetCoverErrors(t *testing.T) {
	n := New("bad")
	a, _ := n.AddInput("a")
	g, _ := n.AddNode("g")
	err := n.SetCover(g, []int{a, a}, mvc.MustSOP(1, "1"), true)
	assert.Equal(t, ErrFanins, errors.Cause(err))
	err = n.SetCover(g, []int{7}, mvc.MustSOP(1, "1"), true)
	assert.Equal(t, ErrUndefined, errors.Cause(err))
	err = n.SetCover(g, []int{a}, mvc.New(3), true)
	assert.Equal(t, ErrNotBinary, errors.Cause(err))
	assert.Error(t, n.SetCover(a, nil, mvc.New(), true))
}
