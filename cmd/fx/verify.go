// Copyright 2016 The Gini Authors. All rights reserved.  Use of this source
// code is governed by a license that can be found in the License file.

package main

import (
	"fmt"
	"sort"

	"github.com/irifrance/fx/verify"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

var errNotEquivalent = errors.New("not equivalent")

func newVerifyCmd(ro *rootOptions) *cobra.Command {
	var bdd bool
	var jobs int
	cmd := &cobra.Command{
		Use:   "verify A.blif B.blif",
		Short: "Check two networks are combinationally equivalent",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := readNetwork(args[0])
			if err != nil {
				return err
			}
			b, err := readNetwork(args[1])
			if err != nil {
				return err
			}
			opts := verify.Options{Jobs: jobs, Log: ro.log}
			if bdd {
				opts.Method = verify.BDD
			}
			cx, err := verify.Equivalent(cmd.Context(), a, b, opts)
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			if cx == nil {
				fmt.Fprintln(w, "equivalent")
				return nil
			}
			fmt.Fprintf(w, "%s differs on\n", cx.Sink)
			names := make([]string, 0, len(cx.Inputs))
			for s := range cx.Inputs {
				names = append(names, s)
			}
			sort.Strings(names)
			for _, s := range names {
				v := 0
				if cx.Inputs[s] {
					v = 1
				}
				fmt.Fprintf(w, "  %s=%d\n", s, v)
			}
			return errNotEquivalent
		},
	}
	cmd.Flags().BoolVar(&bdd, "bdd", false, "use BDDs instead of SAT")
	cmd.Flags().IntVar(&jobs, "jobs", 0, "concurrent SAT checks, 0 for GOMAXPROCS")
	return cmd
}
