// Copyright 2016 The Gini Authors. All rights reserved.  Use of this source
// code is governed by a license that can be found in the License file.

package lxu

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// Extract builds the matrix of in, runs extraction and returns the
// rewritten covers.
func Extract(ctx context.Context, in *Input, cfg Config) (*Output, error) {
	m, err := New(in, cfg)
	if err != nil {
		return nil, err
	}
	if err := m.Run(ctx); err != nil {
		return nil, err
	}
	return m.Output(), nil
}

// best returns the divisor to extract next, or false if no divisor
// clears the threshold.  Singles win ties.
func (m *Matrix) best() (Kind, int32, bool) {
	sid, did := m.hs.ReadMax(), m.hd.ReadMax()
	if sid == 0 && did == 0 {
		return 0, 0, false
	}
	kind, id := KindSingle, sid
	switch {
	case sid == 0:
		kind, id = KindDouble, did
	case did != 0 && m.d(DivID(did)).weight > m.s(SingleID(sid)).weight:
		kind, id = KindDouble, did
	}
	w := m.weight(kind, id)
	if w > 0 || (m.cfg.UseZero && w >= 0) {
		return kind, id, true
	}
	return 0, 0, false
}

func (m *Matrix) weight(kind Kind, id int32) float64 {
	if kind == KindSingle {
		return m.s(SingleID(id)).weight
	}
	return m.d(DivID(id)).weight
}

// Run extracts divisors until none clears the threshold or NodesExt new
// nodes exist.
func (m *Matrix) Run(ctx context.Context) (err error) {
	defer recoverInvariant(&err)
	if m.cfg.OnlySingles && m.cfg.OnlyDoubles {
		return nil
	}
	start := time.Now()
	if m.cfg.Trace != nil {
		m.Dump(m.cfg.Trace)
	}
	for m.cfg.NodesExt < 0 || m.nNew < m.cfg.NodesExt {
		if err := ctx.Err(); err != nil {
			return errors.Wrap(err, "extract")
		}
		if err := m.maybePlace(ctx); err != nil {
			return err
		}
		kind, id, ok := m.best()
		if !ok {
			break
		}
		st := Step{N: len(m.steps), Kind: kind, Node: m.nNew}
		if kind == KindSingle {
			s := m.s(SingleID(id))
			st.Weight, st.LWeight, st.PWeight = s.weight, s.lweight, s.pweight
			m.hs.GetMax()
			st.Cubes = m.updateSingle(SingleID(id))
			m.stats.Singles++
		} else {
			d := m.d(DivID(id))
			st.Weight, st.LWeight, st.PWeight = d.weight, d.lweight, d.pweight
			m.hd.GetMax()
			st.Cubes = m.updateDouble(DivID(id))
			m.stats.Doubles++
		}
		st.Lits = m.nLits
		st.Elapsed = time.Since(start)
		m.steps = append(m.steps, st)
		m.log.WithFields(logrus.Fields{
			"step":    st.N,
			"kind":    st.Kind,
			"weight":  st.Weight,
			"lweight": st.LWeight,
			"pweight": st.PWeight,
			"lits":    st.Lits,
			"elapsed": st.Elapsed}).Debug("extracted")
		if m.cfg.OnStep != nil {
			m.cfg.OnStep(st)
		}
		if m.cfg.Trace != nil {
			m.Dump(m.cfg.Trace)
		}
		if m.cfg.Check {
			if err := m.Check(); err != nil {
				return errors.Wrapf(ErrInternal, "after step %d: %v", st.N, err)
			}
		}
	}
	return nil
}

// maybePlace runs the placer before the first step and then every
// Interval steps.
func (m *Matrix) maybePlace(ctx context.Context) error {
	if m.place == nil || m.beta == 0 {
		return nil
	}
	n := len(m.steps)
	switch {
	case !m.place.ok && m.place.rounds == 0:
	case m.cfg.Interval > 0 && n > 0 && n%m.cfg.Interval == 0 && n != m.place.last:
	default:
		return nil
	}
	m.place.last = n
	err := m.replace(ctx)
	if err == nil {
		return nil
	}
	if !m.cfg.Fallback {
		return err
	}
	m.log.WithError(err).Warn("placement failed, using logical weights only")
	m.beta = 0
	m.place.ok = false
	m.reweighAll()
	return nil
}
