// Copyright (c) 2025, The WTANet Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"os"

	"github.com/wtanet/wtanet/lif"
	"github.com/wtanet/wtanet/wta"
	"gopkg.in/yaml.v3"
)

// Config contains all the simulation settings, loadable from a YAML file.
// Zero values fall back to the defaults from DefaultConfig.
type Config struct {
	// Shape is the neuron grid shape, e.g., [5] or [8, 8].
	Shape []int `yaml:"shape"`

	// Vth is the firing threshold on the membrane potential (> 0).
	Vth float32 `yaml:"vth"`

	// ExcWt is the self-excitation weight (> 0).
	ExcWt float32 `yaml:"exc_weight"`

	// InhWt is the lateral inhibition weight (<= 0).
	InhWt float32 `yaml:"inh_weight"`

	// Du is the per-step synaptic current decay rate in [0,1].
	Du float32 `yaml:"du"`

	// Dv is the per-step membrane potential decay rate in [0,1].
	Dv float32 `yaml:"dv"`

	// Reset is the reset policy for neurons that fired: "zero" or "subtract".
	Reset string `yaml:"reset"`

	// Gain multiplies the external input current.
	Gain float32 `yaml:"gain"`

	// Steps is the number of simulation steps to run.
	Steps int `yaml:"steps"`

	// Input is the constant external current per neuron, in flat row-major
	// order.  Empty means zero input everywhere; otherwise the length must
	// equal the number of neurons.
	Input []float32 `yaml:"input"`

	// Dense selects the explicit N x N weight matrix instead of the
	// equivalent O(1) scalar kernel.
	Dense bool `yaml:"dense"`

	// CSV is an optional output file for the per-step log (TSV format).
	CSV string `yaml:"csv"`
}

// DefaultConfig returns the canonical 5-neuron competition setup.
func DefaultConfig() Config {
	return Config{
		Shape: []int{5},
		Vth:   10,
		ExcWt: 5,
		InhWt: -5,
		Du:    1,
		Dv:    0,
		Reset: "zero",
		Gain:  1,
		Steps: 50,
		Input: []float32{7, 9, 12, 8, 10},
	}
}

// LoadConfig loads configuration from the given YAML file, layered over the
// defaults.  An empty path returns the defaults; a missing file is an error.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("reading config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config %s: %w", path, err)
	}
	return cfg, nil
}

// RstMode returns the lif reset mode named by the Reset field.
func (cfg *Config) RstMode() (lif.RstMode, error) {
	switch cfg.Reset {
	case "", "zero":
		return lif.RstZero, nil
	case "subtract":
		return lif.RstSubtract, nil
	}
	return lif.RstZero, fmt.Errorf("unknown reset mode %q (want \"zero\" or \"subtract\")", cfg.Reset)
}

// Validate checks config consistency beyond what layer construction covers.
func (cfg *Config) Validate() error {
	if cfg.Steps < 1 {
		return fmt.Errorf("steps must be >= 1, got %d", cfg.Steps)
	}
	if _, err := cfg.RstMode(); err != nil {
		return err
	}
	n := 1
	for _, d := range cfg.Shape {
		n *= d
	}
	if len(cfg.Input) != 0 && len(cfg.Input) != n {
		return fmt.Errorf("input has %d values, layer has %d neurons", len(cfg.Input), n)
	}
	return nil
}

// NewLayer builds a wta.Layer from the config.
func (cfg *Config) NewLayer() (*wta.Layer, error) {
	ly, err := wta.NewLayer("WTA", cfg.Shape, cfg.Vth, cfg.ExcWt, cfg.InhWt)
	if err != nil {
		return nil, err
	}
	ly.LIF.Du = cfg.Du
	ly.LIF.Dv = cfg.Dv
	rst, err := cfg.RstMode()
	if err != nil {
		return nil, err
	}
	ly.LIF.Rst = rst
	ly.Inp.Gain = cfg.Gain
	ly.UpdateParams()
	if err := ly.LIF.Validate(); err != nil {
		return nil, err
	}
	if cfg.Dense {
		dw, err := wta.NewDense(ly.NNeurons(), cfg.ExcWt, cfg.InhWt)
		if err != nil {
			return nil, err
		}
		if err := ly.SetConns(dw); err != nil {
			return nil, err
		}
	}
	return ly, nil
}
