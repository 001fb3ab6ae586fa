// Copyright 2016 The Gini Authors. All rights reserved.  Use of this source
// code is governed by a license that can be found in the License file.

package network

import (
	"fmt"

	"github.com/irifrance/fx"
	"github.com/irifrance/fx/mvc"
	"github.com/pkg/errors"
)

var (
	ErrDuplicateName = errors.New("duplicate node name")
	ErrUndefined     = errors.New("undefined node")
	ErrNotBinary     = errors.New("cover is not binary")
	ErrFanins        = errors.New("fanins do not match cover")
	ErrCombLoop      = errors.New("combinational loop")
	ErrResult        = errors.New("result does not match network")
)

// Latch initial values.
const (
	Init0 = iota
	Init1
	InitDontCare
	InitUnknown
)

// Node is a node of a network.  Cover is nil for a primary input or a
// latch output.  Otherwise Cover is over Fanins and is the on-set of the
// node if Phase is set, its off-set if not.
type Node struct {
	Name   string
	Type   fx.NodeType
	Fanins []int
	Cover  *mvc.Cover
	Phase  bool
}

// IsSource reports whether n has no cover.
func (n *Node) IsSource() bool {
	return n.Type == fx.PI || n.Type == fx.LatchOut
}

// Latch connects the node Input to the latch output node Output.
type Latch struct {
	Input  int
	Output int
	Init   int
}

// Network is a binary logic network.  Nodes are referred to by index.
type Network struct {
	Name    string
	Nodes   []*Node
	Inputs  []int
	Outputs []int
	Latches []Latch

	names map[string]int
}

// New creates an empty network.
func New(name string) *Network {
	return &Network{Name: name, names: make(map[string]int)}
}

func (n *Network) add(name string, typ fx.NodeType) (int, error) {
	if n.names == nil {
		n.names = make(map[string]int)
	}
	if _, ok := n.names[name]; ok {
		return -1, errors.Wrap(ErrDuplicateName, name)
	}
	i := len(n.Nodes)
	n.Nodes = append(n.Nodes, &Node{Name: name, Type: typ})
	n.names[name] = i
	return i, nil
}

// AddInput adds a primary input.
func (n *Network) AddInput(name string) (int, error) {
	i, err := n.add(name, fx.PI)
	if err != nil {
		return -1, err
	}
	n.Inputs = append(n.Inputs, i)
	return i, nil
}

// AddNode adds an internal node without a cover.  SetCover gives it one.
func (n *Network) AddNode(name string) (int, error) {
	return n.add(name, fx.Internal)
}

// SetCover sets the fanins and the cover of the internal node i.
func (n *Network) SetCover(i int, fanins []int, cv *mvc.Cover, phase bool) error {
	if i < 0 || i >= len(n.Nodes) {
		return errors.Wrapf(ErrUndefined, "node %d", i)
	}
	nd := n.Nodes[i]
	if nd.IsSource() {
		return errors.Errorf("%s: cannot set the cover of a source node", nd.Name)
	}
	if !cv.IsBinary() {
		return errors.Wrap(ErrNotBinary, nd.Name)
	}
	if cv.NumFanins() != len(fanins) {
		return errors.Wrapf(ErrFanins, "%s: %d fanins, cover over %d", nd.Name, len(fanins), cv.NumFanins())
	}
	for _, f := range fanins {
		if f < 0 || f >= len(n.Nodes) {
			return errors.Wrapf(ErrUndefined, "%s: fanin %d", nd.Name, f)
		}
	}
	nd.Fanins = append([]int(nil), fanins...)
	nd.Cover = cv
	nd.Phase = phase
	return nil
}

// AddLatch adds a latch from node in to a new latch output node named out.
// in may be -1 and connected later with SetLatchInput.
func (n *Network) AddLatch(in int, out string, init int) (int, error) {
	if in < -1 || in >= len(n.Nodes) {
		return -1, errors.Wrapf(ErrUndefined, "latch input %d", in)
	}
	o, err := n.add(out, fx.LatchOut)
	if err != nil {
		return -1, err
	}
	n.Latches = append(n.Latches, Latch{Input: in, Output: o, Init: init})
	return o, nil
}

// SetLatchInput connects node in to the latch whose output is out.
func (n *Network) SetLatchInput(out, in int) error {
	if in < 0 || in >= len(n.Nodes) {
		return errors.Wrapf(ErrUndefined, "latch input %d", in)
	}
	for k := range n.Latches {
		if n.Latches[k].Output == out {
			n.Latches[k].Input = in
			return nil
		}
	}
	return errors.Wrapf(ErrUndefined, "no latch drives %d", out)
}

// AddOutput marks node i as a primary output.
func (n *Network) AddOutput(i int) error {
	if i < 0 || i >= len(n.Nodes) {
		return errors.Wrapf(ErrUndefined, "output %d", i)
	}
	n.Outputs = append(n.Outputs, i)
	return nil
}

// Lookup returns the index of the node called name.
func (n *Network) Lookup(name string) (int, bool) {
	i, ok := n.names[name]
	return i, ok
}

// freshName returns an unused name built from format and increasing
// integers starting at k.
func (n *Network) freshName(format string, k int) string {
	for {
		s := fmt.Sprintf(format, k)
		if _, ok := n.names[s]; !ok {
			return s
		}
		k++
	}
}

// Copy returns a deep copy of n.
func (n *Network) Copy() *Network {
	d := New(n.Name)
	d.Nodes = make([]*Node, len(n.Nodes))
	for i, nd := range n.Nodes {
		c := *nd
		c.Fanins = append([]int(nil), nd.Fanins...)
		if nd.Cover != nil {
			c.Cover = nd.Cover.Copy()
		}
		d.Nodes[i] = &c
		d.names[c.Name] = i
	}
	d.Inputs = append([]int(nil), n.Inputs...)
	d.Outputs = append([]int(nil), n.Outputs...)
	d.Latches = append([]Latch(nil), n.Latches...)
	return d
}

// Check verifies that every internal node has a binary cover over its
// fanins, that every latch has an input and that the network is acyclic.
func (n *Network) Check() error {
	for _, l := range n.Latches {
		if l.Input < 0 {
			return errors.Wrapf(ErrUndefined, "input of latch %s", n.Nodes[l.Output].Name)
		}
	}
	for _, nd := range n.Nodes {
		if nd.IsSource() {
			continue
		}
		if nd.Cover == nil {
			return errors.Wrap(ErrUndefined, nd.Name)
		}
		if !nd.Cover.IsBinary() {
			return errors.Wrap(ErrNotBinary, nd.Name)
		}
		if nd.Cover.NumFanins() != len(nd.Fanins) {
			return errors.Wrap(ErrFanins, nd.Name)
		}
	}
	_, err := n.TopoOrder()
	return err
}
