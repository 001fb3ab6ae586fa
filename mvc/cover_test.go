// Copyright 2016 The Gini Authors. All rights reserved.  Use of this source
// code is governed by a license that can be found in the License file.

package mvc

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSOPRoundTrip(t *testing.T) {
	rows := []string{"1-0", "01-", "--1"}
	c, err := FromSOP(3, rows...)
	require.NoError(t, err)
	assert.Equal(t, 3, c.Len())
	assert.Equal(t, rows, c.SOP())
	assert.Equal(t, 5, c.NumLits())
	assert.Equal(t, "01 11 10", c.CubeString(c.Cubes[0]))
}

func TestFromSOPErrors(t *testing.T) {
	_, err := FromSOP(2, "1")
	assert.Equal(t, ErrBadRow, errors.Cause(err))
	_, err = FromSOP(2, "1x")
	assert.Equal(t, ErrBadRow, errors.Cause(err))
}

func TestValidate(t *testing.T) {
	for _, tt := range []struct {
		name string
		rows []string
		want error
	}{
		{name: "ok", rows: []string{"11-", "1-1", "-11"}},
		{name: "duplicate", rows: []string{"11-", "11-"}, want: ErrDuplicateCube},
		{name: "containment", rows: []string{"11-", "1--"}, want: ErrContainment},
	} {
		t.Run(tt.name, func(t *testing.T) {
			c := MustSOP(3, tt.rows...)
			assert.Equal(t, tt.want, errors.Cause(c.Validate()))
		})
	}
}

func TestValidateEmptyLiteral(t *testing.T) {
	c := New(3, 2)
	q := c.NewCube()
	c.Clear(q, 0, 0)
	c.Clear(q, 0, 1)
	c.Clear(q, 0, 2)
	c.Add(q)
	assert.True(t, c.IsEmpty(q, 0))
	assert.True(t, c.IsDontCare(q, 1))
	assert.Equal(t, ErrEmptyLiteral, errors.Cause(c.Validate()))
}

func TestWideCube(t *testing.T) {
	ws := make([]int, 40)
	for i := range ws {
		ws[i] = 2
	}
	c := New(ws...)
	assert.Equal(t, 80, c.Bits())
	q := c.NewCube()
	assert.Len(t, q, 2)
	c.Clear(q, 39, 0)
	assert.False(t, c.Has(q, 39, 0))
	assert.True(t, c.Has(q, 39, 1))
	c.Add(q)
	d := c.Copy()
	assert.True(t, c.Equal(d))
	c.Set(d.Cubes[0], 39, 0)
	assert.False(t, c.Equal(d))
}
