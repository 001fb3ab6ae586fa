// Copyright 2016 The Gini Authors. All rights reserved.  Use of this source
// code is governed by a license that can be found in the License file.

package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newStatsCmd(ro *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "stats IN.blif",
		Short: "Print the size of a network",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := readNetwork(args[0])
			if err != nil {
				return err
			}
			st := n.Stats()
			fmt.Fprintf(cmd.OutOrStdout(), "%s: inputs=%d outputs=%d latches=%d nodes=%d cubes=%d lits=%d\n",
				n.Name, st.Inputs, st.Outputs, st.Latches, st.Nodes, st.Cubes, st.Lits)
			return nil
		},
	}
}
