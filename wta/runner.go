// Copyright (c) 2025, The WTANet Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package wta

import (
	"context"

	"github.com/emer/etable/etensor"
)

// Runner drives a Layer from a host-provided channel boundary: each value
// received on the input channel is one tick's external input current (nil =
// no input delivered, i.e., zero current), and the resulting spike tensor
// for that tick is sent on the output channel.  Stepping is strictly
// sequential -- one tick completes fully, commit included, before its
// spikes are emitted and the next tick is read.
//
// Run returns nil when the input channel is closed, ctx.Err() when the
// context is canceled, and the Step error on a contract violation such as
// a shape mismatch.
type Runner struct {
	Lay *Layer `desc:"the layer being driven"`
}

func NewRunner(ly *Layer) *Runner {
	return &Runner{Lay: ly}
}

func (rr *Runner) Run(ctx context.Context, in <-chan *etensor.Float32, out chan<- *etensor.Float32) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ext, ok := <-in:
			if !ok {
				return nil
			}
			spks, err := rr.Lay.Step(ext)
			if err != nil {
				return err
			}
			select {
			case <-ctx.Done():
				return ctx.Err()
			case out <- spks:
			}
		}
	}
}
