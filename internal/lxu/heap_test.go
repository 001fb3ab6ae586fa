// Copyright 2016 The Gini Authors. All rights reserved.  Use of this source
// code is governed by a license that can be found in the License file.

package lxu

import (
	"math/rand"
	"testing"
)

type testItems struct {
	keys  []float64
	hnums []int
}

func (t *testItems) key(id int32) float64    { return t.keys[id] }
func (t *testItems) hnum(id int32) int        { return t.hnums[id] }
func (t *testItems) setHNum(id int32, n int) { t.hnums[id] = n }

func TestHeapRandom(t *testing.T) {
	const N = 200
	items := &testItems{keys: make([]float64, N+1), hnums: make([]int, N+1)}
	h := newHeap(items, 1)
	in := make([]bool, N+1)
	rnd := rand.New(rand.NewSource(3))
	for i := 0; i < 5000; i++ {
		id := int32(1 + rnd.Intn(N))
		switch {
		case !in[id]:
			items.keys[id] = float64(rnd.Intn(50))
			h.Insert(id)
			in[id] = true
		case rnd.Intn(3) == 0:
			h.Delete(id)
			in[id] = false
		default:
			items.keys[id] = float64(rnd.Intn(50))
			h.Update(id)
		}
		if err := h.check(); err != nil {
			t.Fatalf("op %d: %v", i, err)
		}
	}
	last := 1e9
	for h.Len() > 0 {
		id := h.GetMax()
		if items.keys[id] > last {
			t.Fatalf("GetMax out of order: %g after %g", items.keys[id], last)
		}
		last = items.keys[id]
		if items.hnums[id] != 0 {
			t.Errorf("popped element keeps slot %d", items.hnums[id])
		}
	}
	if h.ReadMax() != 0 {
		t.Errorf("empty heap has max")
	}
}

func TestHeapRebuild(t *testing.T) {
	items := &testItems{keys: make([]float64, 33), hnums: make([]int, 33)}
	h := newHeap(items, 4)
	for i := int32(1); i <= 32; i++ {
		items.keys[i] = float64(i)
		h.Insert(i)
	}
	for i := 1; i <= 32; i++ {
		items.keys[i] = float64(-i)
	}
	h.rebuild()
	if err := h.check(); err != nil {
		t.Fatal(err)
	}
	if h.ReadMax() != 1 {
		t.Errorf("max %d, want 1", h.ReadMax())
	}
}

func TestRelocate(t *testing.T) {
	p, c := relocate([]interval{{0, 1}, {2, 3}, {10, 10}})
	if p != 2 || c != 9 {
		t.Errorf("relocate: got %g %g", p, c)
	}
	p, c = relocate([]interval{{0, 5}, {1, 2}})
	if c != 0 || p < 1 || p > 2 {
		t.Errorf("overlap: got %g %g", p, c)
	}
	at, cost := relocate2([]bbox{{x0: 0, x1: 0, y0: 0, y1: 0, n: 1}, {x0: 4, x1: 4, y0: 2, y1: 2, n: 1}, {}})
	if cost != 6 || at.x != 0 || at.y != 0 {
		t.Errorf("relocate2: got %v %g", at, cost)
	}
}
