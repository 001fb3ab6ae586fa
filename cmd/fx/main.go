// Copyright 2016 The Gini Authors. All rights reserved.  Use of this source
// code is governed by a license that can be found in the License file.

// Command fx extracts common sub-expressions from BLIF networks.
package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

type rootOptions struct {
	config string
	debug  bool
	log    *logrus.Logger
}

func newRootCmd() *cobra.Command {
	o := &rootOptions{log: logrus.New()}
	cmd := &cobra.Command{
		Use:          "fx",
		Short:        "Fast extraction of two-literal common sub-expressions",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if o.config != "" {
				if err := applyConfig(cmd.Flags(), o.config); err != nil {
					return err
				}
			}
			o.log.SetOutput(cmd.ErrOrStderr())
			if o.debug {
				o.log.SetLevel(logrus.DebugLevel)
			}
			return nil
		},
	}
	cmd.PersistentFlags().StringVar(&o.config, "config", "", "yaml file of flag values, overridden by explicit flags")
	cmd.PersistentFlags().BoolVar(&o.debug, "debug", false, "use debug log level")
	cmd.AddCommand(
		newExtractCmd(o),
		newVerifyCmd(o),
		newStatsCmd(o),
		newGenCmd(o))
	return cmd
}

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()
	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}
