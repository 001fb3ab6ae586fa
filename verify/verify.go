// Copyright 2016 The Gini Authors. All rights reserved.  Use of this source
// code is governed by a license that can be found in the License file.

package verify

import (
	"context"
	"runtime"
	"sort"

	"github.com/irifrance/fx/network"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

var (
	ErrInterface = errors.New("networks have different inputs or outputs")
	ErrBDD       = errors.New("bdd failure")
)

// Method selects a decision procedure.
type Method int

const (
	SAT Method = iota
	BDD
)

func (m Method) String() string {
	if m == BDD {
		return "bdd"
	}
	return "sat"
}

// Options controls Equivalent.
type Options struct {
	Method Method
	// Jobs bounds the number of concurrent SAT checks, 0 meaning
	// GOMAXPROCS.  BDD checks are sequential.
	Jobs int
	Log  logrus.FieldLogger
}

// Counterexample is an assignment of the sources on which a sink differs.
type Counterexample struct {
	Sink   string
	Inputs map[string]bool
}

// sink is a pair of corresponding sinks.
type sink struct {
	name string
	a, b int
}

// pairing matches the sources and sinks of a and b by name.  Latch inputs
// are named after their latch outputs.
type pairing struct {
	a, b   *network.Network
	srcA   []int
	srcB   []int
	sinks  []sink
	srcPos map[string]int
}

func pair(a, b *network.Network) (*pairing, error) {
	p := &pairing{a: a, b: b, srcA: a.Sources(), srcPos: make(map[string]int)}
	srcB := b.Sources()
	if len(srcB) != len(p.srcA) {
		return nil, errors.Wrapf(ErrInterface, "%d and %d sources", len(p.srcA), len(srcB))
	}
	for i, s := range p.srcA {
		p.srcPos[a.Nodes[s].Name] = i
	}
	p.srcB = make([]int, len(p.srcA))
	for _, s := range srcB {
		i, ok := p.srcPos[b.Nodes[s].Name]
		if !ok {
			return nil, errors.Wrapf(ErrInterface, "source %s", b.Nodes[s].Name)
		}
		p.srcB[i] = s
	}
	na, nb := sinkNames(a), sinkNames(b)
	if len(na) != len(nb) {
		return nil, errors.Wrapf(ErrInterface, "%d and %d sinks", len(na), len(nb))
	}
	at := make(map[string]int, len(nb))
	for _, s := range nb {
		at[s.name] = s.a
	}
	for _, s := range na {
		j, ok := at[s.name]
		if !ok {
			return nil, errors.Wrapf(ErrInterface, "sink %s", s.name)
		}
		p.sinks = append(p.sinks, sink{name: s.name, a: s.a, b: j})
	}
	return p, nil
}

func sinkNames(n *network.Network) []sink {
	var res []sink
	for _, o := range n.Outputs {
		res = append(res, sink{name: n.Nodes[o].Name, a: o})
	}
	for _, l := range n.Latches {
		res = append(res, sink{name: n.Nodes[l.Output].Name + "$in", a: l.Input})
	}
	return res
}

// Equivalent checks that a and b compute the same function at every sink,
// sinks being matched by name.  It returns nil if they do and otherwise a
// counterexample for the first sink of a which differs.
func Equivalent(ctx context.Context, a, b *network.Network, opts Options) (*Counterexample, error) {
	for _, n := range []*network.Network{a, b} {
		if err := n.Check(); err != nil {
			return nil, errors.Wrapf(err, "verify %s", n.Name)
		}
	}
	p, err := pair(a, b)
	if err != nil {
		return nil, err
	}
	log := opts.Log
	if log == nil {
		log = logrus.StandardLogger()
	}
	log.WithFields(logrus.Fields{
		"method":  opts.Method,
		"sources": len(p.srcA),
		"sinks":   len(p.sinks)}).Debug("verify")
	if opts.Method == BDD {
		return p.bdd()
	}
	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}
	return p.sat(ctx, jobs)
}

func (p *pairing) counterexample(s sink, val func(i int) bool) *Counterexample {
	cx := &Counterexample{Sink: s.name, Inputs: make(map[string]bool, len(p.srcA))}
	for i, src := range p.srcA {
		cx.Inputs[p.a.Nodes[src].Name] = val(i)
	}
	return cx
}

// first returns the counterexample with the lowest sink index.
func first(cxs map[int]*Counterexample) *Counterexample {
	if len(cxs) == 0 {
		return nil
	}
	ks := make([]int, 0, len(cxs))
	for k := range cxs {
		ks = append(ks, k)
	}
	sort.Ints(ks)
	return cxs[ks[0]]
}
