// Copyright 2016 The Gini Authors. All rights reserved.  Use of this source
// code is governed by a license that can be found in the License file.

package lxu

// AllocationStats counts allocations of one arena.
type AllocationStats struct {
	Allocs int
	Frees  int
	Live   int
	Peak   int
}

func (s *AllocationStats) add(o AllocationStats) {
	s.Allocs += o.Allocs
	s.Frees += o.Frees
	s.Live += o.Live
	s.Peak += o.Peak
}

// arena stores objects of one kind.  Index 0 is reserved for null.  Freed
// slots are recycled last in first out.
type arena[T any] struct {
	items []T
	live  []bool
	free  []int32
	stats AllocationStats
}

func newArena[T any](capHint int) arena[T] {
	a := arena[T]{
		items: make([]T, 1, capHint+1),
		live:  make([]bool, 1, capHint+1)}
	return a
}

// alloc returns a zeroed slot.  Pointers obtained by at() before a call
// to alloc may be invalidated.
func (a *arena[T]) alloc() int32 {
	var zero T
	var i int32
	if n := len(a.free); n != 0 {
		i = a.free[n-1]
		a.free = a.free[:n-1]
		a.items[i] = zero
	} else {
		i = int32(len(a.items))
		a.items = append(a.items, zero)
		a.live = append(a.live, false)
	}
	a.live[i] = true
	a.stats.Allocs++
	a.stats.Live++
	if a.stats.Live > a.stats.Peak {
		a.stats.Peak = a.stats.Live
	}
	return i
}

func (a *arena[T]) at(i int32) *T {
	return &a.items[i]
}

func (a *arena[T]) isLive(i int32) bool {
	return i > 0 && int(i) < len(a.live) && a.live[i]
}

func (a *arena[T]) release(i int32) {
	if !a.isLive(i) {
		invariant("double free of slot %d", i)
	}
	a.live[i] = false
	a.free = append(a.free, i)
	a.stats.Frees++
	a.stats.Live--
}

// each calls f on every live slot in index order.
func (a *arena[T]) each(f func(i int32, t *T)) {
	for i := 1; i < len(a.items); i++ {
		if a.live[i] {
			f(int32(i), &a.items[i])
		}
	}
}
