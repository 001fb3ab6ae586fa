// Copyright 2016 The Gini Authors. All rights reserved.  Use of this source
// code is governed by a license that can be found in the License file.

package blif

import (
	"bufio"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	mapset "github.com/deckarep/golang-set/v2"
	"github.com/irifrance/fx/mvc"
	"github.com/irifrance/fx/network"
	"github.com/pkg/errors"
)

var (
	ErrUnsupported = errors.New("unsupported construct")
	ErrMixedPhase  = errors.New("rows of a cover have different outputs")
	ErrRow         = errors.New("malformed cover row")
	ErrRedefined   = errors.New("signal defined twice")
	ErrUndefined   = errors.New("signal used but not defined")
	ErrLatch       = errors.New("malformed latch")
	ErrNoModel     = errors.New("no model")
)

// ParseError is a read error at a line.
type ParseError struct {
	Line int
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("blif:%d: %v", e.Line, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

func (e *ParseError) Cause() error {
	return e.Err
}

type names struct {
	line int
	ios  []string // inputs then output
	rows []string
	out  byte
}

type latch struct {
	line    int
	in, out string
	init    int
}

type reader struct {
	sc      *bufio.Scanner
	line    int
	next    int
	model   string
	inputs  []string
	outputs []string
	names   []*names
	latches []latch
	defined mapset.Set[string]
	used    mapset.Set[string]
}

func (r *reader) errorf(line int, err error, format string, args ...interface{}) error {
	return &ParseError{Line: line, Err: errors.Wrapf(err, format, args...)}
}

// logical returns the next non-empty line, comments stripped and
// continuations joined, and the line number where it starts.
func (r *reader) logical() ([]string, int, error) {
	var buf strings.Builder
	start := 0
	for r.sc.Scan() {
		r.next++
		s := r.sc.Text()
		if i := strings.IndexByte(s, '#'); i >= 0 {
			s = s[:i]
		}
		s = strings.TrimRight(s, " \t\r")
		cont := strings.HasSuffix(s, "\\")
		if cont {
			s = s[:len(s)-1]
		}
		if start == 0 && strings.TrimSpace(s) == "" && !cont {
			continue
		}
		if start == 0 {
			start = r.next
		}
		buf.WriteString(s)
		buf.WriteByte(' ')
		if !cont {
			return strings.Fields(buf.String()), start, nil
		}
	}
	if err := r.sc.Err(); err != nil {
		return nil, 0, err
	}
	if start != 0 {
		return strings.Fields(buf.String()), start, nil
	}
	return nil, 0, io.EOF
}

func (r *reader) define(line int, s string) error {
	if !r.defined.Add(s) {
		return r.errorf(line, ErrRedefined, "%s", s)
	}
	return nil
}

// Read reads the first model of a BLIF file.
func Read(rd io.Reader) (*network.Network, error) {
	r := &reader{
		sc:      bufio.NewScanner(rd),
		defined: mapset.NewSet[string](),
		used:    mapset.NewSet[string]()}
	r.sc.Buffer(make([]byte, 64*1024), 16*1024*1024)
	if err := r.parse(); err != nil {
		return nil, err
	}
	return r.build()
}

func (r *reader) parse() error {
	var cur *names
	seenModel := false
	for {
		fs, line, err := r.logical()
		if err == io.EOF {
			break
		}
		if err != nil {
			return err
		}
		r.line = line
		if !strings.HasPrefix(fs[0], ".") {
			if cur == nil {
				return r.errorf(line, ErrRow, "row outside of .names")
			}
			if err := r.row(cur, fs); err != nil {
				return err
			}
			continue
		}
		cur = nil
		switch fs[0] {
		case ".model":
			if seenModel {
				return nil
			}
			seenModel = true
			if len(fs) > 1 {
				r.model = fs[1]
			}
		case ".inputs":
			for _, s := range fs[1:] {
				if err := r.define(line, s); err != nil {
					return err
				}
			}
			r.inputs = append(r.inputs, fs[1:]...)
		case ".outputs":
			r.outputs = append(r.outputs, fs[1:]...)
			for _, s := range fs[1:] {
				r.used.Add(s)
			}
		case ".names":
			if len(fs) < 2 {
				return r.errorf(line, ErrRow, ".names without output")
			}
			cur = &names{line: line, ios: fs[1:], out: '1'}
			if err := r.define(line, fs[len(fs)-1]); err != nil {
				return err
			}
			for _, s := range fs[1 : len(fs)-1] {
				r.used.Add(s)
			}
			r.names = append(r.names, cur)
		case ".latch":
			l, err := r.latch(fs[1:])
			if err != nil {
				return err
			}
			if err := r.define(line, l.out); err != nil {
				return err
			}
			r.used.Add(l.in)
			r.latches = append(r.latches, l)
		case ".end":
			return nil
		default:
			return r.errorf(line, ErrUnsupported, "%s", fs[0])
		}
	}
	if !seenModel && len(r.names) == 0 && len(r.inputs) == 0 {
		return &ParseError{Line: r.next, Err: ErrNoModel}
	}
	return nil
}

func (r *reader) row(cur *names, fs []string) error {
	nIn := len(cur.ios) - 1
	var in, out string
	switch {
	case nIn == 0 && len(fs) == 1:
		out = fs[0]
	case nIn > 0 && len(fs) == 2:
		in, out = fs[0], fs[1]
	default:
		return r.errorf(r.line, ErrRow, "%q", strings.Join(fs, " "))
	}
	if len(in) != nIn || (out != "0" && out != "1") {
		return r.errorf(r.line, ErrRow, "%q for %d inputs", strings.Join(fs, " "), nIn)
	}
	if len(cur.rows) > 0 && out[0] != cur.out {
		return r.errorf(r.line, ErrMixedPhase, "%s", cur.ios[nIn])
	}
	cur.out = out[0]
	cur.rows = append(cur.rows, in)
	return nil
}

func (r *reader) latch(args []string) (latch, error) {
	l := latch{line: r.line, init: network.InitUnknown}
	var init string
	switch len(args) {
	case 2:
	case 3:
		init = args[2]
	case 4:
	case 5:
		init = args[4]
	default:
		return l, r.errorf(r.line, ErrLatch, "%d arguments", len(args))
	}
	l.in, l.out = args[0], args[1]
	if init != "" {
		v, err := strconv.Atoi(init)
		if err != nil || v < network.Init0 || v > network.InitUnknown {
			return l, r.errorf(r.line, ErrLatch, "initial value %q", init)
		}
		l.init = v
	}
	return l, nil
}

func (r *reader) build() (*network.Network, error) {
	if missing := r.used.Difference(r.defined); missing.Cardinality() > 0 {
		ms := missing.ToSlice()
		sort.Strings(ms)
		return nil, &ParseError{Line: r.next, Err: errors.Wrapf(ErrUndefined, "%s", strings.Join(ms, " "))}
	}
	n := network.New(r.model)
	for _, s := range r.inputs {
		if _, err := n.AddInput(s); err != nil {
			return nil, err
		}
	}
	for _, nm := range r.names {
		if _, err := n.AddNode(nm.ios[len(nm.ios)-1]); err != nil {
			return nil, err
		}
	}
	for _, l := range r.latches {
		if _, err := n.AddLatch(-1, l.out, l.init); err != nil {
			return nil, &ParseError{Line: l.line, Err: err}
		}
	}
	for _, l := range r.latches {
		in, _ := n.Lookup(l.in)
		out, _ := n.Lookup(l.out)
		if err := n.SetLatchInput(out, in); err != nil {
			return nil, &ParseError{Line: l.line, Err: err}
		}
	}
	for _, nm := range r.names {
		if err := r.cover(n, nm); err != nil {
			return nil, err
		}
	}
	for _, s := range r.outputs {
		i, _ := n.Lookup(s)
		if err := n.AddOutput(i); err != nil {
			return nil, err
		}
	}
	if err := n.Check(); err != nil {
		return nil, err
	}
	return n, nil
}

func (r *reader) cover(n *network.Network, nm *names) error {
	nIn := len(nm.ios) - 1
	fanins := make([]int, nIn)
	for i, s := range nm.ios[:nIn] {
		fanins[i], _ = n.Lookup(s)
	}
	cv, err := mvc.FromSOP(nIn, nm.rows...)
	if err != nil {
		return &ParseError{Line: nm.line, Err: err}
	}
	out, _ := n.Lookup(nm.ios[nIn])
	if err := n.SetCover(out, fanins, cv, nm.out == '1'); err != nil {
		return &ParseError{Line: nm.line, Err: err}
	}
	return nil
}
