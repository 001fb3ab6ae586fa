// Copyright 2016 The Gini Authors. All rights reserved.  Use of this source
// code is governed by a license that can be found in the License file.

package mvc

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
)

// Errors returned by Validate and FromSOP.
var (
	ErrEmptyLiteral  = errors.New("cube has a fanin with no allowed value")
	ErrDuplicateCube = errors.New("cover contains duplicated cubes")
	ErrContainment   = errors.New("cover is not single-cube-containment free")
	ErrBadWidth      = errors.New("fanin width must be at least 2")
	ErrBadRow        = errors.New("malformed sop row")
)

// Cube is a positional cube: one bit per fanin value.
type Cube []uint64

// Cover is a sum of positional cubes over fanins of the given widths.
type Cover struct {
	Widths []int
	Cubes  []Cube
	offs   []int
	bits   int
}

// New creates an empty cover over fanins with the given widths.
func New(widths ...int) *Cover {
	c := &Cover{Widths: append([]int(nil), widths...)}
	c.init()
	return c
}

func (c *Cover) init() {
	c.offs = make([]int, len(c.Widths)+1)
	for i, w := range c.Widths {
		if w < 2 {
			panic(fmt.Sprintf("mvc: fanin %d has width %d", i, w))
		}
		c.offs[i+1] = c.offs[i] + w
	}
	c.bits = c.offs[len(c.Widths)]
}

func (c *Cover) ready() {
	if c.offs == nil || len(c.offs) != len(c.Widths)+1 {
		c.init()
	}
}

// Bits returns the number of positional bits of a cube of c.
func (c *Cover) Bits() int {
	c.ready()
	return c.bits
}

// Offset returns the position of the first bit of fanin i.
func (c *Cover) Offset(i int) int {
	c.ready()
	return c.offs[i]
}

// Len returns the number of cubes.
func (c *Cover) Len() int {
	return len(c.Cubes)
}

// NumFanins returns the number of fanins.
func (c *Cover) NumFanins() int {
	return len(c.Widths)
}

// NewCube returns a cube with every bit set (the tautology cube).
func (c *Cover) NewCube() Cube {
	n := c.Bits()
	q := make(Cube, (n+63)/64)
	for i := 0; i < n; i++ {
		q[i>>6] |= 1 << uint(i&63)
	}
	return q
}

// Add appends q to c.
func (c *Cover) Add(q Cube) {
	c.Cubes = append(c.Cubes, q)
}

// Has reports whether value v of fanin i is allowed in q.
func (c *Cover) Has(q Cube, i, v int) bool {
	p := c.Offset(i) + v
	return q[p>>6]&(1<<uint(p&63)) != 0
}

// Set allows value v of fanin i in q.
func (c *Cover) Set(q Cube, i, v int) {
	p := c.Offset(i) + v
	q[p>>6] |= 1 << uint(p&63)
}

// Clear forbids value v of fanin i in q.
func (c *Cover) Clear(q Cube, i, v int) {
	p := c.Offset(i) + v
	q[p>>6] &^= 1 << uint(p&63)
}

// IsDontCare reports whether all values of fanin i are allowed in q.
func (c *Cover) IsDontCare(q Cube, i int) bool {
	for v := 0; v < c.Widths[i]; v++ {
		if !c.Has(q, i, v) {
			return false
		}
	}
	return true
}

// IsEmpty reports whether fanin i has no allowed value in q.
func (c *Cover) IsEmpty(q Cube, i int) bool {
	for v := 0; v < c.Widths[i]; v++ {
		if c.Has(q, i, v) {
			return false
		}
	}
	return true
}

// NumLits returns the number of literals of c, counting one literal
// for each fanin of each cube which is not a don't care.
func (c *Cover) NumLits() int {
	n := 0
	for _, q := range c.Cubes {
		for i := range c.Widths {
			if !c.IsDontCare(q, i) {
				n++
			}
		}
	}
	return n
}

// Copy returns a deep copy of c.
func (c *Cover) Copy() *Cover {
	d := New(c.Widths...)
	d.Cubes = make([]Cube, len(c.Cubes))
	for i, q := range c.Cubes {
		d.Cubes[i] = append(Cube(nil), q...)
	}
	return d
}

// Equal reports whether c and d have the same widths and the same
// cubes in the same order.
func (c *Cover) Equal(d *Cover) bool {
	if c == nil || d == nil {
		return c == d
	}
	if len(c.Widths) != len(d.Widths) || len(c.Cubes) != len(d.Cubes) {
		return false
	}
	for i := range c.Widths {
		if c.Widths[i] != d.Widths[i] {
			return false
		}
	}
	for i := range c.Cubes {
		if !cubeEqual(c.Cubes[i], d.Cubes[i]) {
			return false
		}
	}
	return true
}

func cubeEqual(a, b Cube) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// contains reports whether every bit of b is set in a.
func contains(a, b Cube) bool {
	for i := range a {
		if b[i]&^a[i] != 0 {
			return false
		}
	}
	return true
}

// Validate checks that no cube has an empty fanin, that no two cubes
// are equal and that no cube contains another.
func (c *Cover) Validate() error {
	for k, q := range c.Cubes {
		if len(q) != (c.Bits()+63)/64 {
			return errors.Errorf("cube %d: bad length %d", k, len(q))
		}
		for i := range c.Widths {
			if c.IsEmpty(q, i) {
				return errors.Wrapf(ErrEmptyLiteral, "cube %d fanin %d", k, i)
			}
		}
	}
	for i := range c.Cubes {
		for j := i + 1; j < len(c.Cubes); j++ {
			a, b := c.Cubes[i], c.Cubes[j]
			if cubeEqual(a, b) {
				return errors.Wrapf(ErrDuplicateCube, "cubes %d and %d", i, j)
			}
			if contains(a, b) || contains(b, a) {
				return errors.Wrapf(ErrContainment, "cubes %d and %d", i, j)
			}
		}
	}
	return nil
}

// CubeString returns the positional representation of q, one group of
// bits per fanin separated by spaces, for instance "01 11 10".
func (c *Cover) CubeString(q Cube) string {
	var sb strings.Builder
	for i, w := range c.Widths {
		if i > 0 {
			sb.WriteByte(' ')
		}
		for v := 0; v < w; v++ {
			if c.Has(q, i, v) {
				sb.WriteByte('1')
			} else {
				sb.WriteByte('0')
			}
		}
	}
	return sb.String()
}

func (c *Cover) String() string {
	if c == nil {
		return "<nil>"
	}
	parts := make([]string, len(c.Cubes))
	for i, q := range c.Cubes {
		parts[i] = c.CubeString(q)
	}
	return "{" + strings.Join(parts, " | ") + "}"
}
