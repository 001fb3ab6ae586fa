// Copyright 2016 The Gini Authors. All rights reserved.  Use of this source
// code is governed by a license that can be found in the License file.

package lxu

import (
	"io"
	"time"

	"github.com/irifrance/fx/mvc"
	"github.com/sirupsen/logrus"
)

// DefaultPairsStoreMax bounds the pair table storage, the sum over covers
// of the squared number of cubes.
const DefaultPairsStoreMax = 50000000

// Input is the cover data of a network.
type Input struct {
	// Covers is indexed by value.  A nil cover is not optimized.
	Covers []*mvc.Cover
	// NodeValues[n] is the first value of node n; len is nodes+1.
	NodeValues []int
	// Fanins[n] are the fanin nodes of node n in cover position order.
	Fanins [][]int
	// Types is optional.
	Types []NodeType
}

// Config controls a run.
type Config struct {
	OnlySingles     bool
	OnlyDoubles     bool
	UseZero         bool
	NodesExt        int  // 0: none, < 0: unlimited
	PairsMax        int  // <= 0: no preprocessing
	PairsStoreMax   int  // 0: DefaultPairsStoreMax
	NoChargeDivisor bool // keep the new node's own literals out of a double's weight
	Alpha           float64
	Beta            float64
	Interval        int // steps between placements, 0: place once
	Placer          Placer
	Fallback        bool
	Log             logrus.FieldLogger
	OnStep          func(Step)
	Check           bool
	Trace           io.Writer // matrix dump before the first and after every step
}

// Kind is the kind of an extracted divisor.
type Kind uint8

const (
	KindSingle Kind = iota
	KindDouble
)

func (k Kind) String() string {
	if k == KindSingle {
		return "single"
	}
	return "double"
}

// Step describes one extraction.
type Step struct {
	N       int
	Kind    Kind
	Weight  float64
	LWeight int
	PWeight float64
	Node    int // index of the new node among new nodes
	Cubes   int // rewritten cubes
	Lits    int // live literals after the step
	Elapsed time.Duration
}

// Stats summarises a run.
type Stats struct {
	Vars       int
	LitsBefore int
	LitsAfter  int
	PairsTotal int
	PairsAdded int
	Singles    int
	Doubles    int
	Placements int
	Mem        AllocationStats
}

// Output is the result of a run.
type Output struct {
	// Covers extends Input.Covers with two values per new node.  A nil
	// entry is unchanged.
	Covers []*mvc.Cover
	// Fanins has one entry per node, old and new; nil is unchanged.
	Fanins   [][]int
	NodesNew int
	Steps    []Step
	Stats    Stats
}
