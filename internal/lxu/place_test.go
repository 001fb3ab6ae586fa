// Copyright 2016 The Gini Authors. All rights reserved.  Use of this source
// code is governed by a license that can be found in the License file.

package lxu

import (
	"context"
	"math/rand"
	"testing"

	"github.com/irifrance/fx/internal/placer"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// gridPlacer puts node i on a grid and counts calls.
type gridPlacer struct {
	calls int
	sizes []int
	fail  error
}

func (g *gridPlacer) Place(ctx context.Context, nl *placer.Netlist) ([]placer.Point, error) {
	g.calls++
	g.sizes = append(g.sizes, len(nl.Nodes))
	if g.fail != nil {
		return nil, &placer.Error{Op: "run", Err: g.fail}
	}
	pts := make([]placer.Point, len(nl.Nodes))
	for i := range pts {
		pts[i] = placer.Point{X: float64(i % 4), Y: float64(i / 4)}
	}
	return pts, nil
}

func TestPlacementWeights(t *testing.T) {
	rnd := rand.New(rand.NewSource(11))
	in := randInput(rnd, 6, 8, 5)
	g := &gridPlacer{}
	m, err := New(in, Config{NodesExt: -1, Beta: 0.5, Interval: 2, Placer: g, Check: true})
	require.NoError(t, err)
	require.NoError(t, m.Run(context.Background()))
	require.NotZero(t, g.calls)
	assert.Equal(t, 14, g.sizes[0])
	n := len(m.steps)
	assert.Equal(t, 1+n/2, g.calls, "steps %d", n)
	for i := 1; i < len(g.sizes); i++ {
		assert.Greater(t, g.sizes[i], g.sizes[i-1])
	}
	assert.Len(t, m.place.pos, m.nNodes+m.nNew)
}

func TestPlacementFailure(t *testing.T) {
	boom := errors.New("no placer")
	in := threeCovers()

	g := &gridPlacer{fail: boom}
	m, err := New(in, Config{NodesExt: -1, OnlyDoubles: true, Beta: 1, Placer: g})
	require.NoError(t, err)
	err = m.Run(context.Background())
	var pe *placer.Error
	require.True(t, errors.As(err, &pe))
	assert.Equal(t, boom, errors.Cause(err))
	assert.Empty(t, m.steps)
	require.NoError(t, m.Check())

	g = &gridPlacer{fail: boom}
	m, err = New(in, Config{NodesExt: -1, OnlyDoubles: true, UseZero: true, Beta: 1, Placer: g, Fallback: true, Check: true})
	require.NoError(t, err)
	require.NoError(t, m.Run(context.Background()))
	assert.Equal(t, 1, g.calls)
	assert.Zero(t, m.beta)
	assert.NotEmpty(t, m.steps)
}

func TestNetlist(t *testing.T) {
	m, err := New(threeCovers(), Config{})
	require.NoError(t, err)
	nl := m.Netlist()
	require.Len(t, nl.Nodes, 6)
	assert.Empty(t, nl.Nodes[0].Cubes)
	assert.Equal(t, [][]int{{0, 1}, {0, 2}}, nl.Nodes[3].Cubes)
	assert.Equal(t, [][]int{{0, 2}, {1, 2}}, nl.Nodes[5].Cubes)
}
