// Copyright 2016 The Gini Authors. All rights reserved.  Use of this source
// code is governed by a license that can be found in the License file.

package verify

import (
	"github.com/dalzilio/rudd"
	"github.com/pkg/errors"
)

type bddOps struct {
	b *rudd.BDD
}

func (o bddOps) and(ls []rudd.Node) rudd.Node {
	return o.b.And(ls...)
}

func (o bddOps) or(ls []rudd.Node) rudd.Node {
	return o.b.Or(ls...)
}

func (o bddOps) not(n rudd.Node) rudd.Node {
	return o.b.Not(n)
}

// bdd builds both networks over one manager, source i being variable i.
func (p *pairing) bdd() (*Counterexample, error) {
	nv := len(p.srcA)
	if nv == 0 {
		nv = 1
	}
	b, err := rudd.New(nv, rudd.Nodesize(10000), rudd.Cachesize(5000))
	if err != nil {
		return nil, errors.Wrap(ErrBDD, err.Error())
	}
	ca, cb := newCone[rudd.Node](p.a, bddOps{b}), newCone[rudd.Node](p.b, bddOps{b})
	for i := range p.srcA {
		ca.memo[p.srcA[i]] = b.Ithvar(i)
		cb.memo[p.srcB[i]] = b.Ithvar(i)
	}
	for _, s := range p.sinks {
		fa, fb := ca.at(s.a), cb.at(s.b)
		if fa == nil || fb == nil {
			return nil, errors.Wrapf(ErrBDD, "%s: %s", s.name, b.Error())
		}
		if b.Equal(fa, fb) {
			continue
		}
		vals, err := witness(b, b.Apply(fa, fb, rudd.OPxor))
		if err != nil {
			return nil, err
		}
		return p.counterexample(s, func(i int) bool { return vals[i] }), nil
	}
	return nil, nil
}

// witness returns an assignment satisfying n, which is not False.
// Variables not on the path are false.
func witness(b *rudd.BDD, n rudd.Node) ([]bool, error) {
	type succ struct {
		level, low, high int
	}
	nodes := make(map[int]succ)
	err := b.Allnodes(func(id, level, low, high int) error {
		nodes[id] = succ{level, low, high}
		return nil
	}, n)
	if err != nil {
		return nil, errors.Wrap(ErrBDD, err.Error())
	}
	vals := make([]bool, b.Varnum())
	id := *n
	for id > 1 {
		s := nodes[id]
		if s.low != 0 {
			id = s.low
			continue
		}
		vals[s.level] = true
		id = s.high
	}
	if id != 1 {
		return nil, errors.Wrap(ErrBDD, "no witness")
	}
	return vals, nil
}
