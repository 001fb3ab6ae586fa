// Copyright 2016 The Gini Authors. All rights reserved.  Use of this source
// code is governed by a license that can be found in the License file.

package metrics

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/irifrance/fx"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollector(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := New(reg)
	c.Observe(fx.Step{Kind: fx.KindDouble, Weight: 3, LWeight: 3, Lits: 10})
	c.Observe(fx.Step{Kind: fx.KindSingle, Weight: 1, LWeight: 1, Lits: 9})
	c.Observe(fx.Step{Kind: fx.KindDouble, Weight: 2, LWeight: 2, Lits: 7})
	assert.Equal(t, 2.0, testutil.ToFloat64(c.steps.WithLabelValues("double")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.steps.WithLabelValues("single")))
	assert.Equal(t, 5.0, testutil.ToFloat64(c.saved.WithLabelValues("double")))
	assert.Equal(t, 7.0, testutil.ToFloat64(c.lits))

	c.Finish(&fx.Result{NodesNew: 3, Stats: fx.Stats{LitsAfter: 6, Placements: 2}})
	assert.Equal(t, 3.0, testutil.ToFloat64(c.nodes))
	assert.Equal(t, 6.0, testutil.ToFloat64(c.lits))
	assert.Equal(t, 2.0, testutil.ToFloat64(c.placements))

	path := filepath.Join(t.TempDir(), "fx.prom")
	require.NoError(t, WriteFile(path, reg))
	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(b), `fx_steps_total{kind="double"} 2`)
	assert.Contains(t, string(b), "fx_runs_total 1")
}
