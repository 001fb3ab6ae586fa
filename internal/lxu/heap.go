// Copyright 2016 The Gini Authors. All rights reserved.  Use of this source
// code is governed by a license that can be found in the License file.

package lxu

import "github.com/pkg/errors"

// heapItems gives a heap access to the key and the heap slot (HNum) of
// the objects it orders.
type heapItems interface {
	key(id int32) float64
	hnum(id int32) int
	setHNum(id int32, n int)
}

// heap is a binary max-heap over handles.  Slot 0 is unused so that the
// children of slot i are 2i and 2i+1.  Every element records its slot,
// which lets any element be deleted or re-keyed in place.
type heap struct {
	tree  []int32
	items heapItems
}

func newHeap(items heapItems, capHint int) *heap {
	return &heap{
		tree:  make([]int32, 1, capHint+1),
		items: items}
}

// Len returns the number of elements.
func (h *heap) Len() int {
	return len(h.tree) - 1
}

func (h *heap) grow() {
	t := make([]int32, len(h.tree), 2*cap(h.tree))
	copy(t, h.tree)
	h.tree = t
}

func (h *heap) put(n int, id int32) {
	h.tree[n] = id
	h.items.setHNum(id, n)
}

// Insert adds id, whose key must already be set.
func (h *heap) Insert(id int32) {
	if h.items.hnum(id) != 0 {
		invariant("heap insert of element in slot %d", h.items.hnum(id))
	}
	if len(h.tree) == cap(h.tree) {
		h.grow()
	}
	h.tree = append(h.tree, 0)
	h.put(len(h.tree)-1, id)
	h.up(len(h.tree) - 1)
}

// Delete removes id.
func (h *heap) Delete(id int32) {
	n := h.items.hnum(id)
	if n < 1 || n >= len(h.tree) || h.tree[n] != id {
		invariant("heap delete of element not in heap")
	}
	last := len(h.tree) - 1
	h.items.setHNum(id, 0)
	if n == last {
		h.tree = h.tree[:last]
		return
	}
	h.put(n, h.tree[last])
	h.tree = h.tree[:last]
	h.fix(n)
}

// Update restores the heap order after the key of id changed.
func (h *heap) Update(id int32) {
	n := h.items.hnum(id)
	if n < 1 || n >= len(h.tree) || h.tree[n] != id {
		invariant("heap update of element not in heap")
	}
	h.fix(n)
}

// ReadMax returns the element with the largest key, or 0 if empty.
func (h *heap) ReadMax() int32 {
	if len(h.tree) < 2 {
		return 0
	}
	return h.tree[1]
}

// GetMax removes and returns the element with the largest key, or 0 if
// empty.
func (h *heap) GetMax() int32 {
	id := h.ReadMax()
	if id != 0 {
		h.Delete(id)
	}
	return id
}

func (h *heap) fix(n int) {
	if n > 1 && h.items.key(h.tree[n]) > h.items.key(h.tree[n/2]) {
		h.up(n)
		return
	}
	h.down(n)
}

func (h *heap) up(n int) {
	id := h.tree[n]
	k := h.items.key(id)
	for n > 1 {
		p := n / 2
		if k <= h.items.key(h.tree[p]) {
			break
		}
		h.put(n, h.tree[p])
		n = p
	}
	h.put(n, id)
}

func (h *heap) down(n int) {
	id := h.tree[n]
	k := h.items.key(id)
	sz := len(h.tree)
	for {
		c := 2 * n
		if c >= sz {
			break
		}
		if c+1 < sz && h.items.key(h.tree[c+1]) > h.items.key(h.tree[c]) {
			c++
		}
		if h.items.key(h.tree[c]) <= k {
			break
		}
		h.put(n, h.tree[c])
		n = c
	}
	h.put(n, id)
}

// check verifies the heap order and the slot back pointers.
func (h *heap) check() error {
	for n := 1; n < len(h.tree); n++ {
		id := h.tree[n]
		if h.items.hnum(id) != n {
			return errors.Errorf("heap slot %d holds %d with hnum %d", n, id, h.items.hnum(id))
		}
		for _, c := range [2]int{2 * n, 2*n + 1} {
			if c < len(h.tree) && h.items.key(h.tree[c]) > h.items.key(id) {
				return errors.Errorf("heap slot %d key %g below child %d key %g", n, h.items.key(id), c, h.items.key(h.tree[c]))
			}
		}
	}
	return nil
}

// rebuild restores the heap order after any number of keys changed.
func (h *heap) rebuild() {
	for n := h.Len() / 2; n >= 1; n-- {
		h.down(n)
	}
}
