// Copyright (c) 2025, The WTANet Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package wta

import (
	"fmt"
	"unsafe"

	"github.com/goki/mat32"
)

// NeuronVarStart is the byte offset of fields in the Neuron structure
// where the float32 named variables start.  The Neuron has no non-float32
// infrastructure fields, so this is 0.
const NeuronVarStart = 0

// wta.Neuron holds all of the neuron (unit) level state variables.
// All variables accessible via the variable-name interface must be float32
// and start at the top, in contiguous order.
type Neuron struct {

	// external input current delivered this step (0 if none was delivered)
	Ext float32

	// total input current this step = InpGain * Ext + recurrent current from
	// the previous step's spikes (+ noise if enabled)
	Ge float32

	// synaptic current u -- integrates Ge with the lif Du decay.  With the
	// default Du = 1 this is just this step's Ge.
	Isyn float32

	// membrane potential v -- integrates Isyn with the lif Dv decay, reset
	// on spiking.  Can go below 0 under inhibition -- no floor is imposed.
	Vm float32

	// whether the neuron spiked this step (0 or 1)
	Spike float32

	// spike value committed at the end of the previous step -- this is the
	// value the recurrent connectivity reads, never the current step's Spike
	PrvSpike float32

	// current inter-spike interval -- counts up since last spike.  Starts at
	// -1 when initialized, meaning no spike has occurred yet.
	ISI float32

	// total number of spikes since initialization
	SpikeSum float32
}

var NeuronVars = []string{"Ext", "Ge", "Isyn", "Vm", "Spike", "PrvSpike", "ISI", "SpikeSum"}

var NeuronVarsMap map[string]int

func init() {
	NeuronVarsMap = make(map[string]int, len(NeuronVars))
	for i, v := range NeuronVars {
		NeuronVarsMap[v] = i
	}
}

func (nrn *Neuron) VarNames() []string {
	return NeuronVars
}

// NeuronVarIdxByName returns the index of the variable in the Neuron, or error
func NeuronVarIdxByName(varNm string) (int, error) {
	i, ok := NeuronVarsMap[varNm]
	if !ok {
		return -1, fmt.Errorf("Neuron VarByName: variable name: %v not valid", varNm)
	}
	return i, nil
}

// VarByIndex returns variable using index (0 = first variable in NeuronVars list)
func (nrn *Neuron) VarByIndex(idx int) float32 {
	fv := (*float32)(unsafe.Pointer(uintptr(unsafe.Pointer(nrn)) + uintptr(NeuronVarStart+4*idx)))
	return *fv
}

// VarByName returns variable by name, or error
func (nrn *Neuron) VarByName(varNm string) (float32, error) {
	i, err := NeuronVarIdxByName(varNm)
	if err != nil {
		return mat32.NaN(), err
	}
	return nrn.VarByIndex(i), nil
}
