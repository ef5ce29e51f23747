// Copyright (c) 2025, The WTANet Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package wta implements a winner-take-all (WTA) layer of spiking neurons.

A Layer is a population of LIF neurons (see the lif package) with fixed
recurrent connectivity in which each neuron excites itself and inhibits
every other neuron.  Driven by external input current, the population
converges on a state where the neuron(s) receiving the strongest input keep
spiking while every competitor is suppressed -- there is no central argmax
anywhere, the selection emerges from the dynamics.

The layer is stepped explicitly by the host: each Step call takes one
tick's external input current tensor (nil = all zero) and returns the
binary spike tensor for that tick.  Recurrent current within a step is
always computed from the spikes committed at the end of the previous step,
never the current one.
*/
package wta

import (
	"fmt"
	"strings"
	"unsafe"

	"github.com/c2h5oh/datasize"
	"github.com/emer/emergent/erand"
	"github.com/emer/etable/etensor"
	"github.com/emer/etable/minmax"
	"github.com/goki/mat32"
	"github.com/wtanet/wtanet/lif"
)

// InputParams specify how external input current drives the layer.
type InputParams struct {
	Gain float32 `def:"1" min:"0" desc:"gain multiplier on external input current -- the scalar equivalent of a uniform diagonal input weight matrix"`
}

func (ip *InputParams) Update() {
}

func (ip *InputParams) Defaults() {
	ip.Gain = 1
}

// NoiseParams specify optional noise added to the total input current each
// step.  Off by default.  With equal external inputs the layer is perfectly
// symmetric and all neurons fire in lockstep forever; input noise is the
// way to break such ties and let a unique winner emerge.
type NoiseParams struct {
	erand.RndParams
	On bool `desc:"add noise to the total input current of each neuron every step"`
}

func (np *NoiseParams) Update() {
}

func (np *NoiseParams) Defaults() {
	np.On = false
	np.Dist = erand.Gaussian
	np.Mean = 0
	np.Var = 0.01
}

// Stats are per-step aggregate values over the layer, updated during Step.
type Stats struct {
	Ge      minmax.AvgMax32 `inactive:"+" desc:"average and max total input current"`
	Vm      minmax.AvgMax32 `inactive:"+" desc:"average and max membrane potential (post reset)"`
	NSpikes float32         `inactive:"+" desc:"number of neurons that spiked this step"`
}

func (st *Stats) Init() {
	st.Ge.Init()
	st.Vm.Init()
	st.NSpikes = 0
}

// wta.Layer is a single winner-take-all population of LIF neurons with
// fixed recurrent connectivity.  Shape and parameters are set at
// construction; the neuron state and the retained previous-spike vector are
// the only mutable state, and only Step mutates them.
type Layer struct {
	Nm      string        `desc:"name of the layer"`
	Shp     etensor.Shape `desc:"shape of the neuron grid -- row major, e.g., Y then X for 2D -- immutable after construction"`
	LIF     lif.Params    `view:"inline" desc:"LIF neuron model parameters, shared by all neurons"`
	Inp     InputParams   `view:"inline" desc:"external input parameters"`
	Noise   NoiseParams   `view:"inline" desc:"optional per-step input noise, for symmetry breaking"`
	Wts     Conns         `view:"-" desc:"fixed recurrent connectivity -- Scalar kernel by default, Dense substitutable"`
	Neurons []Neuron      `desc:"slice of neurons, flat row-major ordering per Shp"`

	// PrvSpikes is the spike vector committed at the end of the previous
	// step -- the sole input to the recurrent current computation.
	// All zero on the first step after initialization.
	PrvSpikes []float32 `view:"-"`

	// GeTmp is scratch space for accumulating recurrent current each step.
	GeTmp []float32 `view:"-"`

	Stats Stats `desc:"aggregate values for the most recent step"`
	Time  Time  `desc:"tick counters"`
}

// NewLayer returns a new WTA layer with the given neuron grid shape,
// firing threshold vth, self-excitation weight exc (> 0) and lateral
// inhibition weight inh (<= 0).  All other parameters get their defaults
// and can be adjusted before stepping (call UpdateParams after).
// Errors are configuration errors: fail fast, do not start stepping.
func NewLayer(name string, shape []int, vth, exc, inh float32) (*Layer, error) {
	ly := &Layer{Nm: name}
	if err := ly.SetShape(shape); err != nil {
		return nil, err
	}
	ly.Defaults()
	ly.LIF.Vth = vth
	if err := ly.LIF.Validate(); err != nil {
		return nil, err
	}
	ws, err := NewScalar(ly.Shp.Len(), exc, inh)
	if err != nil {
		return nil, err
	}
	ly.Wts = ws
	ly.Build()
	ly.InitActs()
	return ly, nil
}

func (ly *Layer) Name() string { return ly.Nm }

// Shape returns the neuron grid shape.
func (ly *Layer) Shape() *etensor.Shape { return &ly.Shp }

// NNeurons returns the total number of neurons N (product of shape dims).
func (ly *Layer) NNeurons() int { return ly.Shp.Len() }

// SetShape sets the layer shape with default dimension names.
// Every dimension must be a positive integer.
func (ly *Layer) SetShape(shape []int) error {
	if len(shape) == 0 {
		return fmt.Errorf("%w: empty shape", ErrInvalidShape)
	}
	for _, d := range shape {
		if d < 1 {
			return fmt.Errorf("%w: dimension %d in shape %v", ErrInvalidShape, d, shape)
		}
	}
	var dnms []string
	if len(shape) == 2 {
		dnms = []string{"Y", "X"}
	}
	ly.Shp.SetShape(shape, nil, dnms) // row major default
	return nil
}

func (ly *Layer) Defaults() {
	ly.LIF.Defaults()
	ly.Inp.Defaults()
	ly.Noise.Defaults()
}

// UpdateParams updates all params given any changes that might have been
// made to individual values
func (ly *Layer) UpdateParams() {
	ly.LIF.Update()
	ly.Inp.Update()
	ly.Noise.Update()
}

// SetConns replaces the recurrent connectivity, e.g., with a Dense matrix
// built from connection patterns.  The size must match the layer.
func (ly *Layer) SetConns(ws Conns) error {
	if ws.N() != ly.Shp.Len() {
		return fmt.Errorf("%w: layer %v has %d neurons, conns cover %d", ErrShapeMismatch, ly.Nm, ly.Shp.Len(), ws.N())
	}
	ly.Wts = ws
	return nil
}

// Build allocates the neuron state from the current shape.
// Called automatically by NewLayer.
func (ly *Layer) Build() {
	nn := ly.Shp.Len()
	ly.Neurons = make([]Neuron, nn)
	ly.PrvSpikes = make([]float32, nn)
	ly.GeTmp = make([]float32, nn)
}

// InitActs initializes all neuron state to resting values (0 potential, no
// spikes, ISI at -1) and clears the retained previous-spike vector and
// counters.  The next Step is a first step again.
func (ly *Layer) InitActs() {
	for ni := range ly.Neurons {
		nrn := &ly.Neurons[ni]
		nrn.Ext = 0
		nrn.Ge = 0
		nrn.Isyn = 0
		nrn.Vm = 0
		nrn.Spike = 0
		nrn.PrvSpike = 0
		nrn.ISI = -1
		nrn.SpikeSum = 0
	}
	for i := range ly.PrvSpikes {
		ly.PrvSpikes[i] = 0
	}
	ly.Stats.Init()
	ly.Time.Reset()
}

// Step advances the layer by one tick.  ext is the external input current,
// which must match the layer shape exactly -- nil means no input was
// delivered this tick and is treated as all-zero current.  The returned
// tensor is the binary spike vector for this tick, shaped like the layer.
//
// The per-step sequence, in fixed order: recurrent current from the
// previous step's committed spikes; total current = gained external +
// recurrent (+ noise); LIF current and potential update; threshold test
// and reset; commit of state and previous-spike vector; emission.
func (ly *Layer) Step(ext *etensor.Float32) (*etensor.Float32, error) {
	if ext != nil && !ext.Shape.IsEqual(&ly.Shp) {
		return nil, fmt.Errorf("%w: layer %v shape %v, input shape %v", ErrShapeMismatch, ly.Nm, ly.Shp.Shp, ext.Shape.Shp)
	}
	for i := range ly.GeTmp {
		ly.GeTmp[i] = 0
	}
	ly.Wts.Apply(ly.PrvSpikes, ly.GeTmp)
	ly.Stats.Init()
	for ni := range ly.Neurons {
		nrn := &ly.Neurons[ni]
		nrn.Ext = 0
		if ext != nil {
			nrn.Ext = ext.Values[ni]
		}
		ge := ly.Inp.Gain*nrn.Ext + ly.GeTmp[ni]
		if ly.Noise.On {
			ge += float32(ly.Noise.Gen(-1))
		}
		nrn.Ge = ge
		ly.LIF.CurrentFromInput(&nrn.Isyn, nrn.Ge)
		ly.LIF.VmFromCurrent(&nrn.Vm, nrn.Isyn)
		if ly.LIF.Fire(&nrn.Vm) {
			nrn.Spike = 1
			nrn.SpikeSum++
			nrn.ISI = 0
			ly.Stats.NSpikes++
		} else {
			nrn.Spike = 0
			if nrn.ISI >= 0 {
				nrn.ISI++
			}
		}
		ly.Stats.Ge.UpdateVal(nrn.Ge, ni)
		ly.Stats.Vm.UpdateVal(nrn.Vm, ni)
	}
	ly.Stats.Ge.CalcAvg()
	ly.Stats.Vm.CalcAvg()

	// commit before emission: the spikes we return are exactly the spikes
	// the next step's recurrent computation will read
	out := etensor.NewFloat32(ly.Shp.Shp, nil, ly.Shp.Nms)
	for ni := range ly.Neurons {
		nrn := &ly.Neurons[ni]
		nrn.PrvSpike = nrn.Spike
		ly.PrvSpikes[ni] = nrn.Spike
		out.Values[ni] = nrn.Spike
	}
	ly.Time.CycleInc()
	return out, nil
}

// Winner returns the flat index of the neuron with the most spikes so far,
// and its spike count.  Meaningful once the competition has settled; with a
// symmetric tie there is no unique winner and the first index is returned.
func (ly *Layer) Winner() (int, float32) {
	wi := 0
	var mx float32
	for ni := range ly.Neurons {
		if ly.Neurons[ni].SpikeSum > mx {
			mx = ly.Neurons[ni].SpikeSum
			wi = ni
		}
	}
	return wi, mx
}

// UnitVals fills vals with the values of the given neuron variable, for all
// neurons in flat order, resizing as needed.  On an invalid variable name
// vals is filled with NaN and the error returned.
func (ly *Layer) UnitVals(vals *[]float32, varNm string) error {
	nn := len(ly.Neurons)
	if *vals == nil || cap(*vals) < nn {
		*vals = make([]float32, nn)
	}
	*vals = (*vals)[:nn]
	vidx, err := NeuronVarIdxByName(varNm)
	if err != nil {
		nan := mat32.NaN()
		for i := range *vals {
			(*vals)[i] = nan
		}
		return err
	}
	for i := range ly.Neurons {
		(*vals)[i] = ly.Neurons[i].VarByIndex(vidx)
	}
	return nil
}

// SizeReport returns a string with the memory allocation sizes of the layer.
func (ly *Layer) SizeReport() string {
	var b strings.Builder
	nn := len(ly.Neurons)
	nmem := nn * int(unsafe.Sizeof(Neuron{}))
	wmem := 0
	if dw, ok := ly.Wts.(*Dense); ok {
		wmem = 4 * len(dw.Wts)
	}
	fmt.Fprintf(&b, "%14s:\t Neurons: %d\t NeurMem: %v\t ConMem: %v\n", ly.Nm, nn,
		(datasize.ByteSize)(nmem).HumanReadable(), (datasize.ByteSize)(wmem).HumanReadable())
	return b.String()
}
