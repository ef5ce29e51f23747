// Copyright (c) 2025, The WTANet Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package wtanet is the overall repository for a winner-take-all (WTA) spiking
network simulation engine implemented in the Go language (golang).

This top-level of the repository has no functional code -- everything is
organized into the following sub-repositories:

* lif: the discrete-time leaky integrate-and-fire (LIF) neuron model,
as a standalone parameter + update-function package, with separate decay
constants for synaptic current and membrane potential, a firing threshold,
and a configurable reset policy.

* wta: the core winner-take-all layer: a population of LIF neurons with
fixed recurrent connectivity (each neuron excites itself and inhibits all
others), stepped once per simulation tick.  External input current goes in,
binary spikes come out, and the competitive dynamics converge on the
neuron(s) with the strongest input.

* examples: these compile into runnable programs.  examples/wta5 runs a
small 5-neuron competition and logs spike rasters and membrane potentials.

* cmd/wtanet: command-line interface for running simulations from a YAML
configuration file.
*/
package wtanet
