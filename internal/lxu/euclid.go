// Copyright 2016 The Gini Authors. All rights reserved.  Use of this source
// code is governed by a license that can be found in the License file.

package lxu

import (
	"math"
	"sort"
)

type point struct {
	x, y float64
}

// bbox is the bounding box of a set of points.
type bbox struct {
	x0, x1, y0, y1 float64
	n              int
}

func (b *bbox) add(p point) {
	if b.n == 0 {
		b.x0, b.x1, b.y0, b.y1 = p.x, p.x, p.y, p.y
		b.n = 1
		return
	}
	b.x0 = math.Min(b.x0, p.x)
	b.x1 = math.Max(b.x1, p.x)
	b.y0 = math.Min(b.y0, p.y)
	b.y1 = math.Max(b.y1, p.y)
	b.n++
}

// hpwl is the half perimeter of b.
func (b *bbox) hpwl() float64 {
	if b.n == 0 {
		return 0
	}
	return (b.x1 - b.x0) + (b.y1 - b.y0)
}

type interval struct {
	lo, hi float64
}

// relocate returns a point p minimising the sum over ivs of the distance
// from p to each interval, together with that sum.  The sum is convex and
// piecewise linear with slope -len(ivs) left of every endpoint, each
// endpoint raising the slope by one, so a minimum lies at the
// len(ivs)-th smallest endpoint.
func relocate(ivs []interval) (float64, float64) {
	if len(ivs) == 0 {
		return 0, 0
	}
	ends := make([]float64, 0, 2*len(ivs))
	for _, iv := range ivs {
		ends = append(ends, iv.lo, iv.hi)
	}
	sort.Float64s(ends)
	p := ends[len(ivs)-1]
	cost := 0.0
	for _, iv := range ivs {
		switch {
		case p < iv.lo:
			cost += iv.lo - p
		case p > iv.hi:
			cost += p - iv.hi
		}
	}
	return p, cost
}

// relocate2 places a new point against boxes independently in x and y.
func relocate2(boxes []bbox) (point, float64) {
	xs := make([]interval, 0, len(boxes))
	ys := make([]interval, 0, len(boxes))
	for i := range boxes {
		b := &boxes[i]
		if b.n == 0 {
			continue
		}
		xs = append(xs, interval{b.x0, b.x1})
		ys = append(ys, interval{b.y0, b.y1})
	}
	px, cx := relocate(xs)
	py, cy := relocate(ys)
	return point{px, py}, cx + cy
}
