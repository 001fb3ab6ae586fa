// Copyright 2016 The Gini Authors. All rights reserved.  Use of this source
// code is governed by a license that can be found in the License file.

package blif

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/irifrance/fx/network"
	"github.com/pkg/errors"
)

// lineMax is the width past which name lists are continued.
const lineMax = 78

// Write writes n as a BLIF model.  Covers are written in node index order.
func Write(w io.Writer, n *network.Network) error {
	bw := bufio.NewWriter(w)
	name := n.Name
	if name == "" {
		name = "fx"
	}
	fmt.Fprintf(bw, ".model %s\n", name)
	writeNames(bw, ".inputs", n, n.Inputs)
	writeNames(bw, ".outputs", n, n.Outputs)
	for _, l := range n.Latches {
		if l.Input < 0 {
			return errors.Wrapf(ErrLatch, "latch %s has no input", n.Nodes[l.Output].Name)
		}
		fmt.Fprintf(bw, ".latch %s %s %d\n", n.Nodes[l.Input].Name, n.Nodes[l.Output].Name, l.Init)
	}
	for i, nd := range n.Nodes {
		if nd.Cover == nil {
			continue
		}
		ios := append(append([]int(nil), nd.Fanins...), i)
		writeNames(bw, ".names", n, ios)
		if nd.Cover.Len() == 0 && !nd.Phase {
			// empty off-set
			bw.WriteString(strings.Repeat("-", len(nd.Fanins)))
			if len(nd.Fanins) > 0 {
				bw.WriteByte(' ')
			}
			bw.WriteString("1\n")
			continue
		}
		out := " 1"
		if !nd.Phase {
			out = " 0"
		}
		if len(nd.Fanins) == 0 {
			out = out[1:]
		}
		for _, row := range nd.Cover.SOP() {
			bw.WriteString(row)
			bw.WriteString(out)
			bw.WriteByte('\n')
		}
	}
	bw.WriteString(".end\n")
	return bw.Flush()
}

func writeNames(bw *bufio.Writer, cmd string, n *network.Network, ids []int) {
	bw.WriteString(cmd)
	col := len(cmd)
	for _, i := range ids {
		s := n.Nodes[i].Name
		if col+1+len(s) > lineMax && col > len(cmd) {
			bw.WriteString(" \\\n")
			col = 0
		}
		bw.WriteByte(' ')
		bw.WriteString(s)
		col += 1 + len(s)
	}
	bw.WriteByte('\n')
}
