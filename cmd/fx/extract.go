// Copyright 2016 The Gini Authors. All rights reserved.  Use of this source
// code is governed by a license that can be found in the License file.

package main

import (
	"bufio"
	"os"

	"github.com/irifrance/fx"
	"github.com/irifrance/fx/metrics"
	"github.com/irifrance/fx/verify"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

type extractOptions struct {
	fx.Options
	out         string
	verify      bool
	metricsFile string
	trace       string
}

func newExtractCmd(ro *rootOptions) *cobra.Command {
	o := &extractOptions{Options: fx.DefaultOptions()}
	cmd := &cobra.Command{
		Use:   "extract IN.blif",
		Short: "Extract double-cube and single-cube divisors",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return o.run(cmd, ro.log, args[0])
		},
	}
	fs := cmd.Flags()
	fs.StringVarP(&o.out, "output", "o", "", "output BLIF file, stdout if empty")
	fs.BoolVar(&o.OnlySingles, "only-singles", false, "extract only single-cube divisors")
	fs.BoolVar(&o.OnlyDoubles, "only-doubles", false, "extract only double-cube divisors")
	fs.BoolVar(&o.UseZero, "use-zero", false, "also extract divisors of weight 0")
	fs.BoolVar(&o.UseCompl, "use-compl", false, "extract complements (unsupported)")
	fs.IntVar(&o.NodesExt, "nodes", o.NodesExt, "maximum number of new nodes, negative for no limit")
	fs.IntVar(&o.PairsMax, "pairs-max", o.PairsMax, "keep only the closest cube pairs above this count, 0 for all")
	fs.IntVar(&o.PairsStoreMax, "pairs-store-max", o.PairsStoreMax, "fail above this pair storage")
	fs.BoolVar(&o.NoChargeDivisor, "no-charge-divisor", false, "leave the literals of new double-cube nodes out of their weight")
	fs.Float64Var(&o.Alpha, "alpha", o.Alpha, "weight of the literal savings")
	fs.Float64Var(&o.Beta, "beta", 0, "weight of the wire length savings")
	fs.StringVar(&o.Placement.PlacerCommand, "placer", "", "placer command, run with the netlist base name appended")
	fs.IntVar(&o.Placement.Interval, "place-interval", 0, "steps between placements, 0 to place once")
	fs.StringVar(&o.Placement.Dir, "place-dir", ".", "directory of the placer files")
	fs.BoolVar(&o.Placement.Fallback, "place-fallback", false, "continue with logical weights if the placer fails")
	fs.BoolVar(&o.Placement.Keep, "place-keep", false, "keep the placer files")
	fs.BoolVar(&o.Check, "check", false, "check internal invariants after every step")
	fs.BoolVar(&o.verify, "verify", false, "check the result is equivalent to the input")
	fs.StringVar(&o.metricsFile, "metrics-file", "", "write prometheus metrics to this file")
	fs.StringVar(&o.trace, "trace", "", "write the extraction state after every step to this file")
	return cmd
}

func (o *extractOptions) run(cmd *cobra.Command, log *logrus.Logger, in string) error {
	ctx := cmd.Context()
	n, err := readNetwork(in)
	if err != nil {
		return err
	}
	orig := n.Copy()
	opts := o.Options
	opts.Logger = log
	if o.trace != "" {
		f, err := os.Create(o.trace)
		if err != nil {
			return err
		}
		defer f.Close()
		bw := bufio.NewWriter(f)
		defer bw.Flush()
		opts.Trace = bw
	}
	var reg *prometheus.Registry
	var col *metrics.Collector
	if o.metricsFile != "" {
		reg = prometheus.NewRegistry()
		col = metrics.New(reg)
		opts.OnStep = col.Observe
	}
	res, err := fx.Extract(ctx, n.Data(), opts)
	if err != nil {
		return err
	}
	if err := n.Apply(res); err != nil {
		return err
	}
	log.WithFields(logrus.Fields{
		"nodes":   res.NodesNew,
		"singles": res.Stats.Singles,
		"doubles": res.Stats.Doubles,
		"before":  orig.LiteralCount(),
		"after":   n.LiteralCount(),
	}).Info("extracted")
	if o.verify {
		cx, err := verify.Equivalent(ctx, orig, n, verify.Options{Log: log})
		if err != nil {
			return err
		}
		if cx != nil {
			return errors.Errorf("verify: %s differs on %v", cx.Sink, cx.Inputs)
		}
		log.Info("verified")
	}
	if col != nil {
		col.Finish(res)
		if err := metrics.WriteFile(o.metricsFile, reg); err != nil {
			return err
		}
	}
	return writeNetwork(cmd.OutOrStdout(), o.out, n)
}
