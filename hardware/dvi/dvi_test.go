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

package dvi_test

import (
	"testing"

	"github.com/jetsetilly/dvitx/hardware/clocks"
	"github.com/jetsetilly/dvitx/hardware/dvi"
	"github.com/jetsetilly/dvitx/hardware/signal"
	"github.com/jetsetilly/dvitx/patterns"
	"github.com/jetsetilly/dvitx/test"
)

// countReceiver counts words and frame triggers.
type countReceiver struct {
	words  int
	frames int
}

func (c *countReceiver) SerialBits(_ signal.SerialBits) error {
	c.words++
	return nil
}

func (c *countReceiver) NewFrame() error {
	c.frames++
	return nil
}

func TestReceiverPlumbing(t *testing.T) {
	src := patterns.NewColorBars(patterns.TestCard)
	tx, err := dvi.NewTransmitter(src, clocks.DDR, 8)
	test.ExpectedSuccess(t, err)

	count := &countReceiver{}
	tx.AddBitReceiver(count)

	err = tx.RunFrames(2)
	test.ExpectedSuccess(t, err)

	// every pixel produces exactly Ratio() words
	test.Equate(t, count.words, int(tx.Pixels())*clocks.DDR.Ratio())
	test.Equate(t, count.frames, tx.Frames())

	// two completed frames plus the first pixel of the third
	test.Equate(t, int(tx.Pixels()), patterns.TestCard.PixelsPerFrame()*2+1)
}

func TestStepShift(t *testing.T) {
	src := patterns.NewSolid(patterns.TestCard, 0x00, 0x00, 0x00)
	tx, err := dvi.NewTransmitter(src, clocks.SDR, 8)
	test.ExpectedSuccess(t, err)

	// ten StepShift calls is one StepPixel
	for i := 0; i < 10; i++ {
		_, err := tx.StepShift()
		test.ExpectedSuccess(t, err)
	}
	test.Equate(t, int(tx.Pixels()), 1)
}

func TestResetDeterminism(t *testing.T) {
	src := patterns.NewRamp(patterns.TestCard)
	tx, err := dvi.NewTransmitter(src, clocks.SDR, 8)
	test.ExpectedSuccess(t, err)

	first := make([]uint8, 0, 100)
	for i := 0; i < 100; i++ {
		b, _ := tx.StepShift()
		first = append(first, b.Pack())
	}

	tx.Reset()
	test.Equate(t, int(tx.Pixels()), 0)

	for i := 0; i < 100; i++ {
		b, _ := tx.StepShift()
		test.Equate(t, b.Pack(), first[i])
	}
}
