// Copyright 2016 The Gini Authors. All rights reserved.  Use of this source
// code is governed by a license that can be found in the License file.

package lxu

// ring is a transient, insertion ordered working set of handles.  A ring
// is filled between start and stop and must be drained by unmark before
// it is started again.
type ring[T ~int32] struct {
	mark  []bool
	items []T
	open  bool
}

func (r *ring[T]) start() {
	if r.open || len(r.items) != 0 {
		invariant("ring started before being drained")
	}
	r.open = true
}

func (r *ring[T]) stop() {
	r.open = false
}

func (r *ring[T]) has(id T) bool {
	return int(id) < len(r.mark) && r.mark[id]
}

// add adds id if it is not yet marked and reports whether it was added.
func (r *ring[T]) add(id T) bool {
	if !r.open {
		invariant("add to closed ring")
	}
	if r.has(id) {
		return false
	}
	if int(id) >= len(r.mark) {
		w := 2*int(id) + 1
		m := make([]bool, w)
		copy(m, r.mark)
		r.mark = m
	}
	r.mark[id] = true
	r.items = append(r.items, id)
	return true
}

func (r *ring[T]) len() int {
	return len(r.items)
}

// unmark drains the ring.
func (r *ring[T]) unmark() {
	for _, id := range r.items {
		r.mark[id] = false
	}
	r.items = r.items[:0]
	r.open = false
}

func (r *ring[T]) drained() bool {
	return !r.open && len(r.items) == 0
}
