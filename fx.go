// Copyright 2016 The Gini Authors. All rights reserved.  Use of this source
// code is governed by a license that can be found in the License file.

package fx

import (
	"context"
	"io"

	"github.com/irifrance/fx/internal/lxu"
	"github.com/irifrance/fx/internal/placer"
	"github.com/irifrance/fx/mvc"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// NodeType tags the nodes of a Data.
type NodeType = lxu.NodeType

const (
	Internal = lxu.Internal
	PI       = lxu.PI
	LatchOut = lxu.LatchOut
	PO       = lxu.PO
	LatchIn  = lxu.LatchIn
)

// Step describes one extraction, Kind its divisor kind and Stats a whole
// run.
type (
	Step  = lxu.Step
	Kind  = lxu.Kind
	Stats = lxu.Stats
)

const (
	KindSingle = lxu.KindSingle
	KindDouble = lxu.KindDouble
)

// DefaultPairsStoreMax bounds the storage of cube pairs, the sum over
// covers of the squared number of cubes.
const DefaultPairsStoreMax = lxu.DefaultPairsStoreMax

// Data holds the covers of a network.
//
// Node n has the values NodeValues[n] to NodeValues[n+1]-1.  A binary node
// has two values, the on-set cover being attached to the second one.
// Covers is indexed by value and a nil cover is left alone.  Fanins[n]
// lists the fanin nodes of n in the order of the positions of its covers.
type Data struct {
	Covers     []*mvc.Cover
	NodeValues []int
	Fanins     [][]int
	Types      []NodeType
}

// NumNodes returns the number of nodes of d.
func (d *Data) NumNodes() int {
	if len(d.NodeValues) == 0 {
		return 0
	}
	return len(d.NodeValues) - 1
}

// NumValues returns the number of values of d.
func (d *Data) NumValues() int {
	if len(d.NodeValues) == 0 {
		return 0
	}
	return d.NodeValues[len(d.NodeValues)-1]
}

// Placement configures placement-aware weighting.
type Placement struct {
	// PlacerCommand is run in Dir with the netlist base name appended,
	// and must write <base>.pl next to <base>.sat.
	PlacerCommand string
	// Interval is the number of steps between placements.  0 places once.
	Interval int
	Dir      string
	// Fallback continues with logical weights only if the placer fails.
	Fallback bool
	// Keep leaves the netlist and position files in Dir.
	Keep bool
}

// Options controls Extract.
type Options struct {
	OnlySingles bool
	OnlyDoubles bool
	// UseZero also extracts divisors of weight 0.
	UseZero bool
	// UseCompl is not supported and makes Extract fail.
	UseCompl bool
	// NodesExt is the maximum number of new nodes, negative for no limit.
	NodesExt int
	// PairsMax keeps only the PairsMax closest cube pairs when there are
	// more; 0 keeps all.
	PairsMax        int
	PairsStoreMax   int
	// NoChargeDivisor leaves the literals of a new double-cube node out of
	// the weight of its divisor.  Such weights overstate the saving by the
	// size of the divisor, and extraction may then grow the network.
	NoChargeDivisor bool
	Alpha           float64
	Beta            float64
	Placement       Placement
	Logger          logrus.FieldLogger
	OnStep          func(Step)
	// Check verifies the internal invariants after every step.
	Check bool
	// Trace receives a listing of the extraction state before the first
	// step and after each step.
	Trace io.Writer
}

// DefaultOptions returns the options of an unlimited run on logical
// weights.
func DefaultOptions() Options {
	return Options{
		NodesExt:      -1,
		PairsMax:      30000,
		PairsStoreMax: DefaultPairsStoreMax,
		Alpha:         1}
}

// Result is the outcome of Extract.
type Result struct {
	// Covers has two values more than Data.Covers per new node.  New node
	// k has values NumValues+2k and NumValues+2k+1, the latter holding its
	// cover.  A nil entry is unchanged.
	Covers []*mvc.Cover
	// Fanins has one entry per node, old and new.  A nil entry is unchanged.
	Fanins   [][]int
	NodesNew int
	Steps    []Step
	Stats    Stats
}

// Extract runs extraction on d.  d is not modified.
func Extract(ctx context.Context, d *Data, opts Options) (*Result, error) {
	if opts.UseCompl {
		return nil, ErrComplUnsupported
	}
	cfg := lxu.Config{
		OnlySingles:     opts.OnlySingles,
		OnlyDoubles:     opts.OnlyDoubles,
		UseZero:         opts.UseZero,
		NodesExt:        opts.NodesExt,
		PairsMax:        opts.PairsMax,
		PairsStoreMax:   opts.PairsStoreMax,
		NoChargeDivisor: opts.NoChargeDivisor,
		Alpha:           opts.Alpha,
		Beta:            opts.Beta,
		Interval:        opts.Placement.Interval,
		Fallback:        opts.Placement.Fallback,
		Log:             opts.Logger,
		OnStep:          opts.OnStep,
		Check:           opts.Check,
		Trace:           opts.Trace}
	if opts.Beta != 0 {
		if opts.Placement.PlacerCommand == "" {
			return nil, ErrNoPlacer
		}
		p := placer.New(opts.Placement.PlacerCommand, opts.Placement.Dir)
		p.Keep = opts.Placement.Keep
		if opts.Logger != nil {
			p.Log = opts.Logger
		}
		cfg.Placer = p
	}
	in := &lxu.Input{
		Covers:     d.Covers,
		NodeValues: d.NodeValues,
		Fanins:     d.Fanins,
		Types:      d.Types}
	out, err := lxu.Extract(ctx, in, cfg)
	if err != nil {
		return nil, errors.Wrap(err, "fx")
	}
	return &Result{
		Covers:   out.Covers,
		Fanins:   out.Fanins,
		NodesNew: out.NodesNew,
		Steps:    out.Steps,
		Stats:    out.Stats}, nil
}
