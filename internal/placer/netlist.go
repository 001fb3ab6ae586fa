// Copyright 2016 The Gini Authors. All rights reserved.  Use of this source
// code is governed by a license that can be found in the License file.

package placer

import (
	"bufio"
	"io"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// Tolerance is how far below zero a coordinate may be before it is
// rejected.  Coordinates within tolerance are clamped to zero.
const Tolerance = 0.5

var (
	ErrNegative     = errors.New("negative coordinate")
	ErrShort        = errors.New("fewer positions than nodes")
	ErrLong         = errors.New("more positions than nodes")
	ErrSyntax       = errors.New("malformed position line")
	ErrEmptyCommand = errors.New("empty placer command")
)

// Node is a netlist node with the fanin node ids of each of its cubes.
type Node struct {
	ID    int
	Cubes [][]int
}

// Netlist is the input of a placement.
type Netlist struct {
	Nodes []Node
}

// Point is a placed position.
type Point struct {
	X, Y float64
}

// WriteNetlist writes nl to w.
func WriteNetlist(w io.Writer, nl *Netlist) error {
	bw := bufio.NewWriter(w)
	var buf []byte
	for _, nd := range nl.Nodes {
		buf = append(buf[:0], "var "...)
		buf = strconv.AppendInt(buf, int64(nd.ID), 10)
		for i, c := range nd.Cubes {
			if i == 0 {
				buf = append(buf, ' ')
			} else {
				buf = append(buf, '\t')
			}
			for j, f := range c {
				if j > 0 {
					buf = append(buf, ' ')
				}
				buf = strconv.AppendInt(buf, int64(f), 10)
			}
		}
		buf = append(buf, '\n')
		if _, err := bw.Write(buf); err != nil {
			return err
		}
	}
	if _, err := bw.WriteString("end\n"); err != nil {
		return err
	}
	return bw.Flush()
}

// ReadPositions reads n positions from r.
func ReadPositions(r io.Reader, n int) ([]Point, error) {
	res := make([]Point, 0, n)
	sc := bufio.NewScanner(r)
	ln := 0
	for sc.Scan() {
		ln++
		line := strings.TrimSpace(sc.Text())
		if line == "" || line[0] == '#' || strings.HasPrefix(line, "UCLA") {
			continue
		}
		fs := strings.Fields(line)
		if len(fs) < 3 {
			return nil, errors.Wrapf(ErrSyntax, "line %d", ln)
		}
		if len(res) == n {
			return nil, errors.Wrapf(ErrLong, "line %d", ln)
		}
		var p Point
		var err error
		if p.X, err = coord(fs[1]); err != nil {
			return nil, errors.Wrapf(err, "line %d", ln)
		}
		if p.Y, err = coord(fs[2]); err != nil {
			return nil, errors.Wrapf(err, "line %d", ln)
		}
		res = append(res, p)
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	if len(res) < n {
		return nil, errors.Wrapf(ErrShort, "got %d want %d", len(res), n)
	}
	return res, nil
}

func coord(s string) (float64, error) {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, errors.Wrapf(ErrSyntax, "coordinate %q", s)
	}
	if f < -Tolerance {
		return 0, errors.Wrapf(ErrNegative, "%g", f)
	}
	if f < 0 {
		f = 0
	}
	return f, nil
}
