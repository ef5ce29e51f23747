// Copyright (c) 2025, The WTANet Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/emer/etable/etable"
	"github.com/emer/etable/etensor"
	"github.com/spf13/cobra"
)

func newRunCmd() *cobra.Command {
	var cfgFile string
	var steps int
	var quiet bool

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run a winner-take-all simulation",
		Long: `Run steps the configured layer with the configured constant external
input current, printing a spike raster per step and reporting the winning
neuron at the end.  Without a config file the canonical 5-neuron
competition (vth=10, exc=5, inh=-5) is run.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := LoadConfig(cfgFile)
			if err != nil {
				return err
			}
			if steps > 0 {
				cfg.Steps = steps
			}
			if err := cfg.Validate(); err != nil {
				return err
			}
			return runSim(&cfg, quiet)
		},
	}
	cmd.Flags().StringVarP(&cfgFile, "config", "c", "", "YAML config file (default: built-in 5-neuron setup)")
	cmd.Flags().IntVar(&steps, "steps", 0, "override number of steps from config")
	cmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "suppress the per-step raster")
	return cmd
}

func runSim(cfg *Config, quiet bool) error {
	ly, err := cfg.NewLayer()
	if err != nil {
		return err
	}
	n := ly.NNeurons()

	var in *etensor.Float32
	if len(cfg.Input) > 0 {
		in = etensor.NewFloat32(ly.Shp.Shp, nil, ly.Shp.Nms)
		copy(in.Values, cfg.Input)
	}

	dt := &etable.Table{}
	sch := etable.Schema{
		{Name: "Step", Type: etensor.INT64, CellShape: nil, DimNames: nil},
		{Name: "Spikes", Type: etensor.FLOAT32, CellShape: []int{n}, DimNames: nil},
		{Name: "Vm", Type: etensor.FLOAT32, CellShape: []int{n}, DimNames: nil},
		{Name: "NSpikes", Type: etensor.FLOAT32, CellShape: nil, DimNames: nil},
	}
	dt.SetFromSchema(sch, cfg.Steps)

	vmt := etensor.NewFloat32([]int{n}, nil, nil)
	var vms []float32
	for stp := 0; stp < cfg.Steps; stp++ {
		spks, err := ly.Step(in)
		if err != nil {
			return err
		}
		ly.UnitVals(&vms, "Vm")
		copy(vmt.Values, vms)
		dt.SetCellFloat("Step", stp, float64(stp+1))
		dt.SetCellTensor("Spikes", stp, spks)
		dt.SetCellTensor("Vm", stp, vmt)
		dt.SetCellFloat("NSpikes", stp, float64(ly.Stats.NSpikes))
		if !quiet {
			fmt.Printf("%4d  %s\n", stp+1, rasterLine(spks.Values))
		}
	}

	wi, wsum := ly.Winner()
	fmt.Printf("winner: neuron %d with %v spikes in %d steps\n", wi, wsum, cfg.Steps)

	if cfg.CSV != "" {
		f, err := os.Create(cfg.CSV)
		if err != nil {
			return fmt.Errorf("creating csv output: %w", err)
		}
		dt.WriteCSVHeaders(f, etable.Tab)
		for ri := 0; ri < dt.Rows; ri++ {
			dt.WriteCSVRow(f, ri, etable.Tab)
		}
		if err := f.Close(); err != nil {
			return fmt.Errorf("writing csv output: %w", err)
		}
	}
	return nil
}

func rasterLine(spks []float32) string {
	var b strings.Builder
	for _, s := range spks {
		if s > 0 {
			b.WriteByte('|')
		} else {
			b.WriteByte('.')
		}
	}
	return b.String()
}
