// Copyright 2016 The Gini Authors. All rights reserved.  Use of this source
// code is governed by a license that can be found in the License file.

package mvc

import (
	"github.com/pkg/errors"
)

// FromSOP creates a binary cover over n fanins from rows of '0', '1'
// and '-' characters, one character per fanin.
func FromSOP(n int, rows ...string) (*Cover, error) {
	ws := make([]int, n)
	for i := range ws {
		ws[i] = 2
	}
	c := New(ws...)
	for k, row := range rows {
		if len(row) != n {
			return nil, errors.Wrapf(ErrBadRow, "row %d %q has %d columns, want %d", k, row, len(row), n)
		}
		q := c.NewCube()
		for i := 0; i < n; i++ {
			switch row[i] {
			case '0':
				c.Clear(q, i, 1)
			case '1':
				c.Clear(q, i, 0)
			case '-':
			default:
				return nil, errors.Wrapf(ErrBadRow, "row %d %q column %d", k, row, i)
			}
		}
		c.Add(q)
	}
	return c, nil
}

// MustSOP is like FromSOP but panics on error.
func MustSOP(n int, rows ...string) *Cover {
	c, err := FromSOP(n, rows...)
	if err != nil {
		panic(err)
	}
	return c
}

// IsBinary reports whether every fanin of c has width 2.
func (c *Cover) IsBinary() bool {
	for _, w := range c.Widths {
		if w != 2 {
			return false
		}
	}
	return true
}

// SOP returns the rows of a binary cover.  A fanin with no allowed value
// is rendered as '?', which FromSOP rejects.
func (c *Cover) SOP() []string {
	if !c.IsBinary() {
		panic("mvc: SOP of a multi-valued cover")
	}
	rows := make([]string, len(c.Cubes))
	buf := make([]byte, len(c.Widths))
	for k, q := range c.Cubes {
		for i := range c.Widths {
			v0, v1 := c.Has(q, i, 0), c.Has(q, i, 1)
			switch {
			case v0 && v1:
				buf[i] = '-'
			case v1:
				buf[i] = '1'
			case v0:
				buf[i] = '0'
			default:
				buf[i] = '?'
			}
		}
		rows[k] = string(buf)
	}
	return rows
}
