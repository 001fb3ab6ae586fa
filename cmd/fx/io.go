// Copyright 2016 The Gini Authors. All rights reserved.  Use of this source
// code is governed by a license that can be found in the License file.

package main

import (
	"compress/bzip2"
	"compress/gzip"
	"io"
	"os"
	"strings"

	"github.com/irifrance/fx/blif"
	"github.com/irifrance/fx/network"
	"github.com/pkg/errors"
)

type readCloser struct {
	io.Reader
	f *os.File
}

func (r *readCloser) Close() error {
	return r.f.Close()
}

// path2Reader opens p, decompressing .gz and .bz2 files.  "-" is stdin.
func path2Reader(p string) (io.ReadCloser, error) {
	if p == "-" {
		return io.NopCloser(os.Stdin), nil
	}
	f, e := os.Open(p)
	if e != nil {
		return nil, e
	}
	if strings.HasSuffix(p, ".gz") {
		r, e := gzip.NewReader(f)
		if e != nil {
			f.Close()
			return nil, e
		}
		return &readCloser{Reader: r, f: f}, nil
	}
	if strings.HasSuffix(p, ".bz2") {
		return &readCloser{Reader: bzip2.NewReader(f), f: f}, nil
	}
	return f, nil
}

func readNetwork(p string) (*network.Network, error) {
	r, err := path2Reader(p)
	if err != nil {
		return nil, err
	}
	defer r.Close()
	n, err := blif.Read(r)
	if err != nil {
		return nil, errors.Wrap(err, p)
	}
	return n, nil
}

// writeNetwork writes n to p, or to w if p is empty or "-".
func writeNetwork(w io.Writer, p string, n *network.Network) error {
	if p == "" || p == "-" {
		return blif.Write(w, n)
	}
	f, err := os.Create(p)
	if err != nil {
		return err
	}
	if err := blif.Write(f, n); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
