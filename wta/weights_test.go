// Copyright (c) 2025, The WTANet Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package wta

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/emer/emergent/prjn"
	"github.com/emer/etable/etensor"
)

func TestDenseBuild(t *testing.T) {
	dw, err := NewDense(4, 5, -5)
	if err != nil {
		t.Fatalf("NewDense failed: %v", err)
	}
	for ri := 0; ri < 4; ri++ {
		for si := 0; si < 4; si++ {
			wt := dw.Wt(ri, si)
			if ri == si && wt != 5 {
				t.Errorf("W[%d][%d] = %v, want 5 on diagonal", ri, si, wt)
			}
			if ri != si && wt != -5 {
				t.Errorf("W[%d][%d] = %v, want -5 off diagonal", ri, si, wt)
			}
		}
	}
}

func TestDenseIdempotent(t *testing.T) {
	a, err := NewDense(7, 5, -5)
	if err != nil {
		t.Fatalf("NewDense failed: %v", err)
	}
	b, err := NewDense(7, 5, -5)
	if err != nil {
		t.Fatalf("NewDense failed: %v", err)
	}
	for i := range a.Wts {
		if a.Wts[i] != b.Wts[i] {
			t.Errorf("rebuild not bit-identical at %d: %v vs %v", i, a.Wts[i], b.Wts[i])
		}
	}
}

func TestDenseErrors(t *testing.T) {
	if _, err := NewDense(0, 5, -5); !errors.Is(err, ErrInvalidShape) {
		t.Errorf("n=0: got %v, want ErrInvalidShape", err)
	}
	if _, err := NewDense(4, 0, -5); !errors.Is(err, ErrInvalidWeight) {
		t.Errorf("exc=0: got %v, want ErrInvalidWeight", err)
	}
	if _, err := NewDense(4, -5, -5); !errors.Is(err, ErrInvalidWeight) {
		t.Errorf("exc<0: got %v, want ErrInvalidWeight", err)
	}
	if _, err := NewDense(4, 5, 5); !errors.Is(err, ErrInvalidWeight) {
		t.Errorf("inh>0: got %v, want ErrInvalidWeight", err)
	}
}

// TestDensePattern builds the canonical topology from emergent connectivity
// patterns (one-to-one excitation, full-minus-self inhibition) and checks it
// matches the direct builder exactly.
func TestDensePattern(t *testing.T) {
	shp := etensor.NewShape([]int{4}, nil, nil)
	full := prjn.NewFull()
	dw, err := NewDensePattern(shp, prjn.NewOneToOne(), full, 5, -5)
	if err != nil {
		t.Fatalf("NewDensePattern failed: %v", err)
	}
	trg, _ := NewDense(4, 5, -5)
	for i := range dw.Wts {
		if dw.Wts[i] != trg.Wts[i] {
			t.Errorf("pattern build differs from direct build at %d: %v vs %v", i, dw.Wts[i], trg.Wts[i])
		}
	}
}

func TestScalarDenseEquivalence(t *testing.T) {
	n := 10
	dw, err := NewDense(n, 5, -5)
	if err != nil {
		t.Fatalf("NewDense failed: %v", err)
	}
	sw, err := NewScalar(n, 5, -5)
	if err != nil {
		t.Fatalf("NewScalar failed: %v", err)
	}

	rnd := rand.New(rand.NewSource(3))
	for trial := 0; trial < 10; trial++ {
		spikes := make([]float32, n)
		for i := range spikes {
			if rnd.Intn(2) == 1 {
				spikes[i] = 1
			}
		}
		dcur := make([]float32, n)
		scur := make([]float32, n)
		dw.Apply(spikes, dcur)
		sw.Apply(spikes, scur)
		CmprFloats(scur, dcur, "Scalar vs Dense recurrent current", t)
	}
}

// TestLayerDenseConns runs the same single-strong-input scenario on a layer
// using the explicit dense matrix instead of the scalar kernel.
func TestLayerDenseConns(t *testing.T) {
	ly := MakeTestLayer(t, 5)
	dw, err := NewDense(5, 5, -5)
	if err != nil {
		t.Fatalf("NewDense failed: %v", err)
	}
	if err := ly.SetConns(dw); err != nil {
		t.Fatalf("SetConns failed: %v", err)
	}
	in := ConstInput(ly, 1, 12)
	for stp := 0; stp < 10; stp++ {
		if _, err := ly.Step(in); err != nil {
			t.Fatalf("Step failed: %v", err)
		}
	}
	var sums []float32
	ly.UnitVals(&sums, "SpikeSum")
	CmprFloats(sums, []float32{0, 10, 0, 0, 0}, "dense conns spike sums", t)
}

func TestSetConnsMismatch(t *testing.T) {
	ly := MakeTestLayer(t, 5)
	dw, _ := NewDense(4, 5, -5)
	if err := ly.SetConns(dw); !errors.Is(err, ErrShapeMismatch) {
		t.Errorf("SetConns size mismatch: got %v, want ErrShapeMismatch", err)
	}
}
