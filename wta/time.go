// Copyright (c) 2025, The WTANet Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package wta

// wta.Time contains the timing state for a running layer.  The layer has no
// internal clock: it advances only when the host delivers a tick (a Step
// call), and each tick advances simulated time by TimePerCyc.
type Time struct {

	// accumulated amount of time the layer has been running,
	// in simulation-time (not real world time), in seconds.
	Time float32

	// cycle counter: number of steps taken since reset.
	Cycle int

	// total cycle count across the lifetime of the layer -- not reset.
	CycleTot int

	// amount of time to increment per cycle.
	TimePerCyc float32 `def:"0.001"`
}

// NewTime returns a new Time struct with default parameters
func NewTime() *Time {
	tm := &Time{}
	tm.Defaults()
	return tm
}

// Defaults sets default values
func (tm *Time) Defaults() {
	tm.TimePerCyc = 0.001
}

// Reset resets the counters all back to zero
func (tm *Time) Reset() {
	tm.Time = 0
	tm.Cycle = 0
	if tm.TimePerCyc == 0 {
		tm.Defaults()
	}
}

// CycleInc increments at the cycle level
func (tm *Time) CycleInc() {
	tm.Cycle++
	tm.CycleTot++
	tm.Time += tm.TimePerCyc
}
