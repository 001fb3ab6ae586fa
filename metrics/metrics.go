// Copyright 2016 The Gini Authors. All rights reserved.  Use of this source
// code is governed by a license that can be found in the License file.

// Package metrics exposes extraction runs as prometheus metrics.
package metrics

import (
	"github.com/irifrance/fx"
	"github.com/prometheus/client_golang/prometheus"
)

const KindLabel = "kind"

// Collector holds the metrics of extraction runs.
type Collector struct {
	steps      *prometheus.CounterVec
	saved      *prometheus.CounterVec
	weight     *prometheus.HistogramVec
	lits       prometheus.Gauge
	nodes      prometheus.Gauge
	placements prometheus.Counter
	runs       prometheus.Counter
}

// New creates a collector and registers it with reg.
func New(reg prometheus.Registerer) *Collector {
	c := &Collector{
		steps: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "fx_steps_total",
				Help: "Number of extracted divisors",
			},
			[]string{KindLabel},
		),
		saved: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "fx_literals_saved_total",
				Help: "Sum of the logical weights of extracted divisors",
			},
			[]string{KindLabel},
		),
		weight: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "fx_divisor_weight",
				Help:    "Combined weight of extracted divisors",
				Buckets: prometheus.ExponentialBuckets(1, 2, 10),
			},
			[]string{KindLabel},
		),
		lits: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "fx_literals",
				Help: "Literals of the network after the last step",
			},
		),
		nodes: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "fx_new_nodes",
				Help: "Nodes created by the last run",
			},
		),
		placements: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "fx_placements_total",
				Help: "Number of placer invocations",
			},
		),
		runs: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "fx_runs_total",
				Help: "Number of completed extraction runs",
			},
		),
	}
	reg.MustRegister(c.steps, c.saved, c.weight, c.lits, c.nodes, c.placements, c.runs)
	return c
}

// Observe records a step.  It may be used as fx.Options.OnStep.
func (c *Collector) Observe(st fx.Step) {
	k := st.Kind.String()
	c.steps.WithLabelValues(k).Inc()
	c.saved.WithLabelValues(k).Add(float64(st.LWeight))
	c.weight.WithLabelValues(k).Observe(st.Weight)
	c.lits.Set(float64(st.Lits))
}

// Finish records the result of a run.
func (c *Collector) Finish(res *fx.Result) {
	c.runs.Inc()
	c.nodes.Set(float64(res.NodesNew))
	c.lits.Set(float64(res.Stats.LitsAfter))
	c.placements.Add(float64(res.Stats.Placements))
}

// WriteFile writes the metrics gathered by g to path in the text format.
func WriteFile(path string, g prometheus.Gatherer) error {
	return prometheus.WriteToTextfile(path, g)
}
