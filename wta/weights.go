// Copyright (c) 2025, The WTANet Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package wta

import (
	"errors"
	"fmt"

	"github.com/chewxy/math32"
	"github.com/emer/emergent/prjn"
	"github.com/emer/etable/etensor"
)

var (
	// ErrInvalidShape is returned for shapes that do not yield at least one neuron.
	ErrInvalidShape = errors.New("wta: invalid shape")

	// ErrInvalidWeight is returned for weight parameters outside the WTA
	// invariant: positive self-excitation, non-positive lateral inhibition.
	ErrInvalidWeight = errors.New("wta: invalid weight")

	// ErrShapeMismatch is returned when a delivered input tensor does not
	// match the configured layer shape.  Inputs are never broadcast or
	// truncated.
	ErrShapeMismatch = errors.New("wta: shape mismatch")
)

// ValidWts returns an error if the excitatory / inhibitory weight pair
// violates the competition invariant: exc must be a positive finite number
// (a firing neuron reinforces itself) and inh must be a non-positive finite
// number (it suppresses every competitor).  The canonical parameters are
// exc = 5, inh = -5.
func ValidWts(exc, inh float32) error {
	if !(exc > 0) || math32.IsNaN(exc) || math32.IsInf(exc, 0) {
		return fmt.Errorf("%w: exc weight must be a positive finite number, got %g", ErrInvalidWeight, exc)
	}
	if inh > 0 || math32.IsNaN(inh) || math32.IsInf(inh, 0) {
		return fmt.Errorf("%w: inh weight must be a non-positive finite number, got %g", ErrInvalidWeight, inh)
	}
	return nil
}

// Conns is the recurrent connectivity of a layer, as a capability: it turns
// the previous step's spike vector into a recurrent current contribution.
// Representations other than a dense matrix (e.g., the O(1) Scalar kernel)
// can be substituted without changing the Layer's stepping contract.
type Conns interface {
	// N returns the number of neurons this connectivity covers.
	N() int

	// Apply accumulates the recurrent current cur += W · spikes.
	// Both slices must have length N.  Apply only adds -- the caller owns
	// zeroing cur.
	Apply(spikes, cur []float32)
}

//////////////////////////////////////////////////////////////////////////////////////
//  Dense

// Dense is an explicit N x N recurrent weight matrix, row-major with the
// receiving neuron as the outer index: Wts[ri*Nn+si] is the weight from
// sending neuron si onto receiving neuron ri.
type Dense struct {
	Nn  int       `desc:"number of neurons"`
	Wts []float32 `view:"-" desc:"weight values, receiver-major, length Nn*Nn"`
}

// NewDense returns a dense matrix with exc on the diagonal (self-excitation)
// and inh everywhere off the diagonal (lateral inhibition).  This is the
// minimal connectivity realizing winner-take-all competition.  It is a pure
// function of its inputs: identical parameters give bit-identical matrices.
func NewDense(n int, exc, inh float32) (*Dense, error) {
	if n < 1 {
		return nil, fmt.Errorf("%w: need at least 1 neuron, got %d", ErrInvalidShape, n)
	}
	if err := ValidWts(exc, inh); err != nil {
		return nil, err
	}
	dw := &Dense{Nn: n, Wts: make([]float32, n*n)}
	for ri := 0; ri < n; ri++ {
		for si := 0; si < n; si++ {
			if ri == si {
				dw.Wts[ri*n+si] = exc
			} else {
				dw.Wts[ri*n+si] = inh
			}
		}
	}
	return dw, nil
}

// NewDensePattern returns a dense matrix built from emergent connectivity
// patterns: excitation over excPat and inhibition over inhPat, evaluated on
// the given layer shape.  NewDense is equivalent to OneToOne excitation plus
// Full (SelfCon off) inhibition; structured topologies (e.g., local
// neighborhoods) substitute here without changing the Layer.
func NewDensePattern(shp *etensor.Shape, excPat, inhPat prjn.Pattern, exc, inh float32) (*Dense, error) {
	n := shp.Len()
	if n < 1 {
		return nil, fmt.Errorf("%w: shape %v has no neurons", ErrInvalidShape, shp.Shp)
	}
	if err := ValidWts(exc, inh); err != nil {
		return nil, err
	}
	dw := &Dense{Nn: n, Wts: make([]float32, n*n)}
	dw.SetPattern(shp, excPat, exc)
	dw.SetPattern(shp, inhPat, inh)
	return dw, nil
}

// SetPattern assigns wt to every connection of the given pattern, evaluated
// recurrently on shp (the layer connects to itself).  Existing weights at
// connected entries are overwritten; unconnected entries are untouched.
func (dw *Dense) SetPattern(shp *etensor.Shape, pat prjn.Pattern, wt float32) {
	_, _, cons := pat.Connect(shp, shp, true)
	n := dw.Nn
	cbits := cons.Values
	for ri := 0; ri < n; ri++ {
		rbi := ri * n
		for si := 0; si < n; si++ {
			if !cbits.Index(rbi + si) {
				continue
			}
			dw.Wts[rbi+si] = wt
		}
	}
}

func (dw *Dense) N() int {
	return dw.Nn
}

func (dw *Dense) Apply(spikes, cur []float32) {
	n := dw.Nn
	for ri := 0; ri < n; ri++ {
		row := dw.Wts[ri*n : (ri+1)*n]
		var sum float32
		for si, s := range spikes {
			if s == 0 {
				continue
			}
			sum += row[si] * s
		}
		cur[ri] += sum
	}
}

// Wt returns the weight from sending neuron si onto receiving neuron ri.
func (dw *Dense) Wt(ri, si int) float32 {
	return dw.Wts[ri*dw.Nn+si]
}

//////////////////////////////////////////////////////////////////////////////////////
//  Scalar

// Scalar is the O(1)-storage form of the uniform WTA connectivity: a scalar
// self-excitation term plus a scalar global-inhibition term.  For a spike
// vector s it computes exactly what the dense matrix would:
//
//	cur[i] += Exc*s[i] + Inh*(sum(s) - s[i])
//
// This is the default for layers, avoiding N^2 storage.
type Scalar struct {
	Nn  int     `desc:"number of neurons"`
	Exc float32 `desc:"self-excitation weight, > 0"`
	Inh float32 `desc:"lateral inhibition weight applied from every other neuron, <= 0"`
}

// NewScalar returns the scalar connectivity kernel for n neurons.
func NewScalar(n int, exc, inh float32) (*Scalar, error) {
	if n < 1 {
		return nil, fmt.Errorf("%w: need at least 1 neuron, got %d", ErrInvalidShape, n)
	}
	if err := ValidWts(exc, inh); err != nil {
		return nil, err
	}
	return &Scalar{Nn: n, Exc: exc, Inh: inh}, nil
}

func (sw *Scalar) N() int {
	return sw.Nn
}

func (sw *Scalar) Apply(spikes, cur []float32) {
	var tot float32
	for _, s := range spikes {
		tot += s
	}
	for i, s := range spikes {
		cur[i] += sw.Exc*s + sw.Inh*(tot-s)
	}
}
