// Copyright (c) 2025, The WTANet Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// wtanet is the command-line interface for running winner-take-all spiking
// network simulations from a YAML configuration file.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var version = "0.1.0-dev"

func main() {
	rootCmd := &cobra.Command{
		Use:   "wtanet",
		Short: "wtanet - winner-take-all spiking network simulator",
		Long: `wtanet simulates a recurrently connected population of LIF neurons
performing winner-take-all competition: each neuron excites itself and
inhibits all others, so the neuron receiving the strongest external input
converges to spiking every step while every competitor is silenced.`,
	}

	rootCmd.AddCommand(
		newRunCmd(),
		newVersionCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
