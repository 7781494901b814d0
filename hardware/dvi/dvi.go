// This file is part of DVItx.
//
// DVItx is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// DVItx is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with DVItx.  If not, see <https://www.gnu.org/licenses/>.

// Package dvi assembles the TMDS serializer with a source of pixels and any
// number of consumers of the serial bit stream. It is the top level of the
// transmitter hardware.
//
// The package does not display or store anything itself. BitReceiver
// implementations are added to perform those tasks; for example
// digest.Stream or recorder.Recorder.
package dvi

import (
	"fmt"

	"github.com/jetsetilly/dvitx/hardware/clocks"
	"github.com/jetsetilly/dvitx/hardware/signal"
	"github.com/jetsetilly/dvitx/hardware/tmds"
)

// PixelSource produces one pixel sample per pixel-domain tick. The boolean
// return value is true when the returned sample is the first of a new frame.
//
// Generation of the pixel stream is outside the transmitter; test pattern
// generators in the patterns package are the PixelSources used by this
// project.
type PixelSource interface {
	NextPixel() (signal.PixelSample, bool)
	Reset()
}

// BitReceiver implementations consume every word emitted at the shift rate.
type BitReceiver interface {
	SerialBits(signal.SerialBits) error
}

// FrameTrigger implementations are notified at the start of every frame.
// BitReceivers that also implement FrameTrigger receive the notification
// before the first word of the frame.
type FrameTrigger interface {
	NewFrame() error
}

// Transmitter drives the serializer from a PixelSource and distributes the
// serial stream to the registered BitReceivers.
type Transmitter struct {
	Ser *tmds.Serializer

	src       PixelSource
	receivers []BitReceiver

	// number of shift ticks into the current pixel. a new pixel is pulled
	// from the source when the count returns to zero
	shift int

	pixels uint64

	// frames started and frames completed. the first frame-start of the
	// stream begins frame one but completes nothing
	frames    int
	completed int
}

// NewTransmitter creates a transmitter for the given source, rate mode and
// colour depth.
func NewTransmitter(src PixelSource, mode clocks.RateMode, depth int) (*Transmitter, error) {
	ser, err := tmds.NewSerializer(mode, depth)
	if err != nil {
		return nil, err
	}

	return &Transmitter{
		Ser: ser,
		src: src,
	}, nil
}

func (tx *Transmitter) String() string {
	return fmt.Sprintf("frame=%d pixel=%d %s", tx.frames, tx.pixels, tx.Ser.String())
}

// AddBitReceiver registers an (additional) implementation of BitReceiver.
func (tx *Transmitter) AddBitReceiver(r BitReceiver) {
	tx.receivers = append(tx.receivers, r)
}

// Reset the transmitter, the serializer and the pixel source to their
// initial states.
func (tx *Transmitter) Reset() {
	tx.Ser.Reset()
	tx.src.Reset()
	tx.shift = 0
	tx.pixels = 0
	tx.frames = 0
	tx.completed = 0
}

// Frames returns the number of frames started so far.
func (tx *Transmitter) Frames() int {
	return tx.frames
}

// Pixels returns the number of pixel ticks stepped so far.
func (tx *Transmitter) Pixels() uint64 {
	return tx.pixels
}

// StepShift advances the pipeline by one shift-domain tick, pulling a new
// pixel from the source when the tick is at the pixel boundary. The emitted
// word is returned as well as forwarded to the receivers.
func (tx *Transmitter) StepShift() (signal.SerialBits, error) {
	if tx.shift == 0 {
		sample, newFrame := tx.src.NextPixel()
		if newFrame {
			if tx.pixels > 0 {
				tx.completed++
			}
			tx.frames++
			for _, r := range tx.receivers {
				if f, ok := r.(FrameTrigger); ok {
					if err := f.NewFrame(); err != nil {
						return signal.SerialBits{}, err
					}
				}
			}
		}
		tx.Ser.PixelTick(sample)
		tx.pixels++
	}

	bits := tx.Ser.ShiftTick()

	tx.shift++
	if tx.shift >= tx.Ser.Mode().Ratio() {
		tx.shift = 0
	}

	for _, r := range tx.receivers {
		if err := r.SerialBits(bits); err != nil {
			return signal.SerialBits{}, err
		}
	}

	return bits, nil
}

// StepPixel advances the pipeline by one pixel-domain tick: one pixel from
// the source and the full ratio of shift-domain ticks.
func (tx *Transmitter) StepPixel() error {
	for i := 0; i < tx.Ser.Mode().Ratio(); i++ {
		if _, err := tx.StepShift(); err != nil {
			return err
		}
	}
	return nil
}

// StepFrame advances the pipeline until the current frame has completed,
// which is when the first pixel of the following frame is transmitted.
func (tx *Transmitter) StepFrame() error {
	target := tx.completed + 1
	for tx.completed < target {
		if err := tx.StepPixel(); err != nil {
			return err
		}
	}
	return nil
}

// Run the pipeline one pixel at a time until the continueCheck function
// returns false or an error.
func (tx *Transmitter) Run(continueCheck func() (bool, error)) error {
	if continueCheck == nil {
		continueCheck = func() (bool, error) { return true, nil }
	}

	for {
		cont, err := continueCheck()
		if err != nil {
			return err
		}
		if !cont {
			return nil
		}
		if err := tx.StepPixel(); err != nil {
			return err
		}
	}
}

// RunFrames runs the pipeline for the specified number of complete frames.
func (tx *Transmitter) RunFrames(numFrames int) error {
	for i := 0; i < numFrames; i++ {
		if err := tx.StepFrame(); err != nil {
			return err
		}
	}
	return nil
}
