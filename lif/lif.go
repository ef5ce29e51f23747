// Copyright (c) 2025, The WTANet Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package lif provides the discrete-time leaky integrate-and-fire (LIF)
neuron model used in the wta layer.

The model has two per-neuron state variables, synaptic current u and
membrane potential v, each with its own decay rate, updated once per
simulation step t:

	u[t] = u[t-1] * (1 - Du) + a[t]
	v[t] = v[t-1] * (1 - Dv) + u[t] + Bias
	spike = v[t] >= Vth

where a[t] is the total input current delivered this step.  A neuron that
spikes has its potential reset according to the Rst policy (to zero by
default, or reduced by Vth in subtract mode); non-spiking neurons retain
their potential unchanged.

With the default Du = 1 the current does not persist across steps, so u is
just this step's input, and with the default Dv = 0 the potential is a pure
integrator: v accumulates input until it reaches threshold.  Setting
Dv > 0 gives the classic leak toward the resting value of 0.  Inhibitory
(negative) input can drive v below 0 -- no floor is imposed, so a heavily
inhibited neuron takes correspondingly longer to recover.
*/
package lif

import (
	"fmt"

	"github.com/chewxy/math32"
	"github.com/goki/ki/kit"
)

// Params are the parameters for a population of LIF neurons.
// All neurons in a layer share one Params.
type Params struct {
	Du   float32 `def:"1" min:"0" max:"1" desc:"per-step decay rate for the synaptic current u -- 1 means the current from a given step does not carry over to the next step at all (u is just that step's input), 0 means no decay"`
	Dv   float32 `def:"0" min:"0" max:"1" desc:"per-step decay rate for the membrane potential v -- 0 means pure integration with no leak, larger values leak the potential toward the resting value of 0"`
	Vth  float32 `def:"10" min:"0" desc:"firing threshold on the membrane potential -- must be > 0"`
	Bias float32 `def:"0" desc:"constant bias current added into the potential every step"`
	Rst  RstMode `desc:"reset policy applied to the potential of a neuron that fired"`
}

func (lp *Params) Defaults() {
	lp.Du = 1
	lp.Dv = 0
	lp.Vth = 10
	lp.Bias = 0
	lp.Rst = RstZero
	lp.Update()
}

// Update must be called after any changes to parameters
func (lp *Params) Update() {
}

// Validate returns an error if parameters are outside the ranges where the
// model is well behaved.  Call at construction time -- the per-step update
// functions do not guard against bad parameters.
func (lp *Params) Validate() error {
	if !(lp.Vth > 0) || math32.IsNaN(lp.Vth) || math32.IsInf(lp.Vth, 0) {
		return fmt.Errorf("lif.Params: Vth must be a positive finite number, got %g", lp.Vth)
	}
	if lp.Du < 0 || lp.Du > 1 || math32.IsNaN(lp.Du) {
		return fmt.Errorf("lif.Params: Du must be in [0,1], got %g", lp.Du)
	}
	if lp.Dv < 0 || lp.Dv > 1 || math32.IsNaN(lp.Dv) {
		return fmt.Errorf("lif.Params: Dv must be in [0,1], got %g", lp.Dv)
	}
	if math32.IsNaN(lp.Bias) || math32.IsInf(lp.Bias, 0) {
		return fmt.Errorf("lif.Params: Bias must be finite, got %g", lp.Bias)
	}
	return nil
}

// CurrentFromInput updates the synaptic current u from this step's total
// input current a, applying the Du decay to the prior value.
func (lp *Params) CurrentFromInput(u *float32, a float32) {
	*u = *u*(1-lp.Du) + a
}

// VmFromCurrent updates the membrane potential v from the current u,
// applying the Dv decay to the prior value and adding the bias.
func (lp *Params) VmFromCurrent(v *float32, u float32) {
	*v = *v*(1-lp.Dv) + u + lp.Bias
}

// Fire tests v against the threshold and applies the reset policy if it
// fired, returning true for a spike.  All neurons at or above threshold
// fire -- simultaneous crossings all spike in the same step, and
// competition between them is resolved over subsequent steps by the
// layer's inhibition, not here.
// In RstSubtract mode a potential that accumulated past 2*Vth remains
// above threshold after the subtraction and fires again next step.
func (lp *Params) Fire(v *float32) bool {
	if *v < lp.Vth {
		return false
	}
	switch lp.Rst {
	case RstSubtract:
		*v -= lp.Vth
	default:
		*v = 0
	}
	return true
}

//////////////////////////////////////////////////////////////////////////////////////
//  RstMode

// RstMode is the reset policy applied to the membrane potential of a
// neuron that fired.
type RstMode int

//go:generate stringer -type=RstMode

var KiT_RstMode = kit.Enums.AddEnum(RstModeN, kit.NotBitFlag, nil)

func (ev RstMode) MarshalJSON() ([]byte, error)  { return kit.EnumMarshalJSON(ev) }
func (ev *RstMode) UnmarshalJSON(b []byte) error { return kit.EnumUnmarshalJSON(ev, b) }

// The reset modes
const (
	// RstZero resets the potential of a neuron that fired back to 0,
	// discarding any accumulation beyond the threshold.
	RstZero RstMode = iota

	// RstSubtract subtracts Vth from the potential of a neuron that fired,
	// retaining accumulation beyond the threshold.
	RstSubtract

	RstModeN
)
