// Copyright 2016 The Gini Authors. All rights reserved.  Use of this source
// code is governed by a license that can be found in the License file.

package verify

import (
	"context"
	"sync"

	"github.com/go-air/gini"
	"github.com/go-air/gini/logic"
	"github.com/go-air/gini/z"
	"golang.org/x/sync/errgroup"
)

type satOps struct {
	c *logic.C
}

func (o satOps) and(ls []z.Lit) z.Lit {
	return o.c.Ands(ls...)
}

func (o satOps) or(ls []z.Lit) z.Lit {
	return o.c.Ors(ls...)
}

func (o satOps) not(l z.Lit) z.Lit {
	return l.Not()
}

// sat checks each sink with its own miter and solver.
func (p *pairing) sat(ctx context.Context, jobs int) (*Counterexample, error) {
	var mu sync.Mutex
	cxs := make(map[int]*Counterexample)
	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(jobs)
	for k, s := range p.sinks {
		k, s := k, s
		eg.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			cx := p.satSink(s)
			if cx != nil {
				mu.Lock()
				cxs[k] = cx
				mu.Unlock()
			}
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return first(cxs), nil
}

func (p *pairing) satSink(s sink) *Counterexample {
	c := logic.NewC()
	ca, cb := newCone[z.Lit](p.a, satOps{c}), newCone[z.Lit](p.b, satOps{c})
	ins := make([]z.Lit, len(p.srcA))
	for i := range ins {
		ins[i] = c.Lit()
		ca.memo[p.srcA[i]] = ins[i]
		cb.memo[p.srcB[i]] = ins[i]
	}
	m := c.Xor(ca.at(s.a), cb.at(s.b))
	g := gini.New()
	c.ToCnfFrom(g, m)
	g.Assume(m)
	if g.Solve() != 1 {
		return nil
	}
	return p.counterexample(s, func(i int) bool {
		if ins[i].Var() > g.MaxVar() {
			return false
		}
		return g.Value(ins[i])
	})
}
