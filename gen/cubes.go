// Copyright 2016 The Gini Authors. All rights reserved.  Use of this source
// code is governed by a license that can be found in the License file.

package gen

import (
	"github.com/irifrance/fx/mvc"
)

// RandCuber generates random sum-of-products rows.
type RandCuber interface {
	RandCube(dst []byte) []byte
	// SetMinSize raises the least number of literals of a row, up to the
	// maximum.
	SetMinSize(s int)
}

// NewRandCuber creates a RandCuber of rows over nFanins fanins with between
// 1 and maxSize literals.
func NewRandCuber(maxSize, nFanins int) RandCuber {
	if maxSize > nFanins {
		maxSize = nFanins
	}
	return &cubes{
		minSize: 1,
		maxSize: maxSize,
		nFanins: nFanins}
}

type cubes struct {
	minSize int
	maxSize int
	nFanins int
}

func (c *cubes) SetMinSize(s int) {
	if s > c.maxSize {
		s = c.maxSize
	}
	if s < 1 {
		s = 1
	}
	c.minSize = s
}

func (c *cubes) RandCube(dst []byte) []byte {
	dst = dst[:0]
	for i := 0; i < c.nFanins; i++ {
		dst = append(dst, '-')
	}
	if c.nFanins == 0 {
		return dst
	}
	sz := c.minSize + intn(c.maxSize-c.minSize+1)
	for i := 0; i < sz; i++ {
		j := intn(c.nFanins)
		for dst[j] != '-' {
			j = (j + 1) % c.nFanins
		}
		dst[j] = byte('0' + intn(2))
	}
	return dst
}

// rowContains reports whether every minterm of b is in a.
func rowContains(a, b string) bool {
	for i := 0; i < len(a); i++ {
		if a[i] != '-' && a[i] != b[i] {
			return false
		}
	}
	return true
}

// Cover generates a cover of at most nCubes rows from c, dropping rows
// which contain or are contained in an earlier row.
func Cover(c RandCuber, nFanins, nCubes int) *mvc.Cover {
	var rows []string
	var buf []byte
outer:
	for k := 0; k < nCubes; k++ {
		buf = c.RandCube(buf)
		r := string(buf)
		for _, s := range rows {
			if rowContains(s, r) || rowContains(r, s) {
				continue outer
			}
		}
		rows = append(rows, r)
	}
	return mvc.MustSOP(nFanins, rows...)
}
