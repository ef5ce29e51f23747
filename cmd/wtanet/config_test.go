// Copyright (c) 2025, The WTANet Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/wtanet/wtanet/lif"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate: %v", err)
	}
	ly, err := cfg.NewLayer()
	if err != nil {
		t.Fatalf("NewLayer from defaults: %v", err)
	}
	if ly.NNeurons() != 5 {
		t.Errorf("default layer has %d neurons, want 5", ly.NNeurons())
	}
}

func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "wta.yaml")
	data := []byte(`shape: [3]
vth: 8
exc_weight: 4
inh_weight: -4
reset: subtract
steps: 10
input: [1, 2, 3]
`)
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("loaded config should validate: %v", err)
	}
	if cfg.Vth != 8 || cfg.ExcWt != 4 || cfg.InhWt != -4 || cfg.Steps != 10 {
		t.Errorf("config fields not loaded: %+v", cfg)
	}
	// defaults survive for fields the file omits
	if cfg.Du != 1 || cfg.Gain != 1 {
		t.Errorf("omitted fields should keep defaults: Du=%v Gain=%v", cfg.Du, cfg.Gain)
	}
	rst, err := cfg.RstMode()
	if err != nil || rst != lif.RstSubtract {
		t.Errorf("reset mode: got %v, %v", rst, err)
	}
}

func TestLoadConfigMissing(t *testing.T) {
	if _, err := LoadConfig("/nonexistent/wta.yaml"); err == nil {
		t.Errorf("expected error for missing config file")
	}
	cfg, err := LoadConfig("")
	if err != nil {
		t.Errorf("empty path should return defaults, got %v", err)
	}
	if cfg.Steps != 50 {
		t.Errorf("empty path defaults wrong: %+v", cfg)
	}
}

func TestValidateErrors(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Steps = 0
	if err := cfg.Validate(); err == nil {
		t.Errorf("steps=0 should fail")
	}

	cfg = DefaultConfig()
	cfg.Reset = "clamp"
	if err := cfg.Validate(); err == nil {
		t.Errorf("unknown reset mode should fail")
	}

	cfg = DefaultConfig()
	cfg.Input = []float32{1, 2}
	if err := cfg.Validate(); err == nil {
		t.Errorf("input length mismatch should fail")
	}
}

func TestRunSim(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Steps = 20
	cfg.CSV = filepath.Join(t.TempDir(), "log.tsv")
	if err := runSim(&cfg, true); err != nil {
		t.Fatalf("runSim failed: %v", err)
	}
	fi, err := os.Stat(cfg.CSV)
	if err != nil {
		t.Fatalf("csv log not written: %v", err)
	}
	if fi.Size() == 0 {
		t.Errorf("csv log is empty")
	}
}
