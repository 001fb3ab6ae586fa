// Copyright 2016 The Gini Authors. All rights reserved.  Use of this source
// code is governed by a license that can be found in the License file.

package placer

import (
	"bytes"
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pkg/errors"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteNetlist(t *testing.T) {
	nl := &Netlist{Nodes: []Node{
		{ID: 0},
		{ID: 1},
		{ID: 2, Cubes: [][]int{{0, 1}, {1}}},
	}}
	var buf bytes.Buffer
	require.NoError(t, WriteNetlist(&buf, nl))
	assert.Equal(t, "var 0\nvar 1\nvar 2 0 1\t1\nend\n", buf.String())
}

func TestReadPositions(t *testing.T) {
	for _, tt := range []struct {
		name string
		in   string
		n    int
		want []Point
		err  error
	}{
		{
			name: "header and comments",
			in:   "UCLA pl 1.0\n# comment\n\nn0 1 2\nn1 3.5 0 : N\n",
			n:    2,
			want: []Point{{1, 2}, {3.5, 0}},
		},
		{
			name: "clamped",
			in:   "n0 -0.25 1\n",
			n:    1,
			want: []Point{{0, 1}},
		},
		{
			name: "negative",
			in:   "n0 -3 1\n",
			n:    1,
			err:  ErrNegative,
		},
		{
			name: "short",
			in:   "n0 1 1\n",
			n:    2,
			err:  ErrShort,
		},
		{
			name: "long",
			in:   "n0 1 1\nn1 2 2\n",
			n:    1,
			err:  ErrLong,
		},
		{
			name: "syntax",
			in:   "n0 x 1\n",
			n:    1,
			err:  ErrSyntax,
		},
	} {
		t.Run(tt.name, func(t *testing.T) {
			pts, err := ReadPositions(strings.NewReader(tt.in), tt.n)
			if tt.err != nil {
				assert.Equal(t, tt.err, errors.Cause(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, pts)
		})
	}
}

// fakeRunner reads the netlist from fs and writes node i at (i, 2i).
// With partial set it writes a truncated position file before failing.
type fakeRunner struct {
	fs      afero.Fs
	runs    []string
	fail    error
	partial bool
}

func (f *fakeRunner) Run(ctx context.Context, dir, base string) error {
	f.runs = append(f.runs, base)
	if f.partial {
		if err := afero.WriteFile(f.fs, filepath.Join(dir, base+".pl"), []byte("UCLA pl 1.0\nn0 0"), 0644); err != nil {
			return err
		}
	}
	if f.fail != nil {
		return f.fail
	}
	data, err := afero.ReadFile(f.fs, filepath.Join(dir, base+".sat"))
	if err != nil {
		return err
	}
	var out bytes.Buffer
	out.WriteString("UCLA pl 1.0\n")
	i := 0
	for _, line := range strings.Split(string(data), "\n") {
		if !strings.HasPrefix(line, "var ") {
			continue
		}
		fmt.Fprintf(&out, "n%d %d %d\n", i, i, 2*i)
		i++
	}
	return afero.WriteFile(f.fs, filepath.Join(dir, base+".pl"), out.Bytes(), 0644)
}

func TestPlace(t *testing.T) {
	fs := afero.NewMemMapFs()
	r := &fakeRunner{fs: fs}
	p := &Placer{Fs: fs, Dir: "/work", Runner: r}
	nl := &Netlist{Nodes: []Node{{ID: 0}, {ID: 1}, {ID: 2, Cubes: [][]int{{0, 1}}}}}
	pts, err := p.Place(context.Background(), nl)
	require.NoError(t, err)
	assert.Equal(t, []Point{{0, 0}, {1, 2}, {2, 4}}, pts)
	_, err = p.Place(context.Background(), nl)
	require.NoError(t, err)
	assert.Equal(t, []string{"euclid000", "euclid001"}, r.runs)

	ok, err := afero.Exists(fs, "/work/euclid000.sat")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestPlaceKeep(t *testing.T) {
	fs := afero.NewMemMapFs()
	p := &Placer{Fs: fs, Dir: "/work", Runner: &fakeRunner{fs: fs}, Keep: true}
	_, err := p.Place(context.Background(), &Netlist{Nodes: []Node{{ID: 0}}})
	require.NoError(t, err)
	for _, name := range []string{"/work/euclid000.sat", "/work/euclid000.pl"} {
		ok, err := afero.Exists(fs, name)
		require.NoError(t, err)
		assert.True(t, ok, name)
	}
}

func TestPlaceErrors(t *testing.T) {
	boom := errors.New("boom")
	fs := afero.NewMemMapFs()
	p := &Placer{Fs: fs, Dir: "/work", Runner: &fakeRunner{fs: fs, fail: boom}}
	_, err := p.Place(context.Background(), &Netlist{Nodes: []Node{{ID: 0}}})
	var pe *Error
	require.True(t, errors.As(err, &pe))
	assert.Equal(t, "run", pe.Op)
	assert.Equal(t, boom, errors.Cause(err))

	p.Runner = &Command{Line: ""}
	_, err = p.Place(context.Background(), &Netlist{Nodes: []Node{{ID: 0}}})
	require.True(t, errors.As(err, &pe))
	assert.Equal(t, ErrEmptyCommand, errors.Cause(err))
}

func TestPlaceFailureCleanup(t *testing.T) {
	fs := afero.NewMemMapFs()
	boom := errors.New("exit status 1")
	p := &Placer{Fs: fs, Dir: "/work", Runner: &fakeRunner{fs: fs, fail: boom, partial: true}}
	_, err := p.Place(context.Background(), &Netlist{Nodes: []Node{{ID: 0}}})
	assert.Equal(t, boom, errors.Cause(err))
	for _, name := range []string{"/work/euclid000.sat", "/work/euclid000.pl"} {
		ok, err := afero.Exists(fs, name)
		require.NoError(t, err)
		assert.False(t, ok, name)
	}
}
