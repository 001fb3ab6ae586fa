// Copyright 2016 The Gini Authors. All rights reserved.  Use of this source
// code is governed by a license that can be found in the License file.

package main

import (
	"github.com/irifrance/fx/gen"
	"github.com/spf13/cobra"
)

func newGenCmd(ro *rootOptions) *cobra.Command {
	p := gen.DefaultParams
	var seed int64
	var out string
	cmd := &cobra.Command{
		Use:   "gen",
		Short: "Generate a random network",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			gen.Seed(seed)
			n := gen.Network(p)
			ro.log.WithField("stats", n.Stats()).Debug("generated")
			return writeNetwork(cmd.OutOrStdout(), out, n)
		},
	}
	fs := cmd.Flags()
	fs.IntVar(&p.Inputs, "inputs", p.Inputs, "primary inputs")
	fs.IntVar(&p.Latches, "latches", p.Latches, "latches")
	fs.IntVar(&p.Nodes, "nodes", p.Nodes, "internal nodes")
	fs.IntVar(&p.Fanins, "fanins", p.Fanins, "maximum fanins per node")
	fs.IntVar(&p.Cubes, "cubes", p.Cubes, "maximum cubes per node")
	fs.IntVar(&p.Lits, "lits", p.Lits, "maximum literals per cube")
	fs.IntVar(&p.MinLits, "min-lits", p.MinLits, "minimum literals per cube")
	fs.Int64Var(&seed, "seed", 33, "random seed")
	fs.StringVarP(&out, "output", "o", "", "output BLIF file, stdout if empty")
	return cmd
}
