// Copyright 2016 The Gini Authors. All rights reserved.  Use of this source
// code is governed by a license that can be found in the License file.

package placer

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os/exec"
	"path/filepath"

	"github.com/mattn/go-shellwords"
	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"
)

// Error is returned for any failure of a placement.
type Error struct {
	Op  string // write, run or read
	Err error
}

func (e *Error) Error() string {
	return "placer " + e.Op + ": " + e.Err.Error()
}

func (e *Error) Unwrap() error {
	return e.Err
}

func (e *Error) Cause() error {
	return e.Err
}

// Runner runs a placement of <dir>/<base>.sat into <dir>/<base>.pl.
type Runner interface {
	Run(ctx context.Context, dir, base string) error
}

// Command runs a shell-like command line with the base name appended.
type Command struct {
	Line   string
	Stdout io.Writer
	Stderr io.Writer
}

func (c *Command) Run(ctx context.Context, dir, base string) error {
	args, err := shellwords.Parse(c.Line)
	if err != nil {
		return err
	}
	if len(args) == 0 {
		return ErrEmptyCommand
	}
	args = append(args, base)
	cmd := exec.CommandContext(ctx, args[0], args[1:]...)
	cmd.Dir = dir
	cmd.Stdout = c.Stdout
	cmd.Stderr = c.Stderr
	return cmd.Run()
}

// Placer writes netlists, runs its Runner and reads back positions
// through Fs.
type Placer struct {
	Fs     afero.Fs
	Dir    string
	Runner Runner
	Log    logrus.FieldLogger
	Keep   bool // keep the .sat and .pl files

	seq int
}

// New creates a placer running command in dir on the OS file system.
func New(command, dir string) *Placer {
	if dir == "" {
		dir = "."
	}
	return &Placer{
		Fs:     afero.NewOsFs(),
		Dir:    dir,
		Runner: &Command{Line: command},
		Log:    logrus.StandardLogger()}
}

// Place places the nodes of nl, returning one point per node in order.
func (p *Placer) Place(ctx context.Context, nl *Netlist) ([]Point, error) {
	base := fmt.Sprintf("euclid%03d", p.seq)
	p.seq++
	sat := filepath.Join(p.Dir, base+".sat")
	pl := filepath.Join(p.Dir, base+".pl")
	if err := p.write(sat, nl); err != nil {
		return nil, &Error{Op: "write", Err: err}
	}
	if !p.Keep {
		defer p.Fs.Remove(sat)
		defer p.Fs.Remove(pl)
	}
	if p.Log != nil {
		p.Log.WithField("netlist", sat).Debug("running placer")
	}
	if err := p.Runner.Run(ctx, p.Dir, base); err != nil {
		return nil, &Error{Op: "run", Err: err}
	}
	f, err := p.Fs.Open(pl)
	if err != nil {
		return nil, &Error{Op: "read", Err: err}
	}
	defer f.Close()
	pts, err := ReadPositions(bufio.NewReader(f), len(nl.Nodes))
	if err != nil {
		return nil, &Error{Op: "read", Err: err}
	}
	return pts, nil
}

func (p *Placer) write(path string, nl *Netlist) error {
	f, err := p.Fs.Create(path)
	if err != nil {
		return err
	}
	if err := WriteNetlist(f, nl); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
