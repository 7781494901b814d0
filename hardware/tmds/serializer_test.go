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

// this file is an internal test so that the shift and clock-pattern
// registers can be inspected and perturbed directly

package tmds

import (
	"testing"

	"github.com/jetsetilly/dvitx/hardware/clocks"
	"github.com/jetsetilly/dvitx/hardware/signal"
	"github.com/jetsetilly/dvitx/test"
)

func TestNewSerializer(t *testing.T) {
	_, err := NewSerializer(clocks.SDR, 8)
	test.ExpectedSuccess(t, err)

	_, err = NewSerializer(clocks.DDR, 1)
	test.ExpectedSuccess(t, err)

	// contract violations are reported once, at construction
	_, err = NewSerializer(clocks.SDR, 0)
	test.ExpectedFailure(t, err)

	_, err = NewSerializer(clocks.SDR, 9)
	test.ExpectedFailure(t, err)

	_, err = NewSerializer(clocks.RateMode(99), 8)
	test.ExpectedFailure(t, err)
}

// output is deterministic before the first pixel tick: colour registers are
// zero and the clock register carries the canonical pattern
func TestInitialState(t *testing.T) {
	ser, err := NewSerializer(clocks.SDR, 8)
	test.ExpectedSuccess(t, err)

	clockBits := []uint8{1, 1, 1, 1, 1, 0, 0, 0, 0, 0}
	for i := 0; i < 10; i++ {
		b := ser.ShiftTick()
		test.Equate(t, b.Red, 0)
		test.Equate(t, b.Green, 0)
		test.Equate(t, b.Blue, 0)
		test.Equate(t, b.Clock, clockBits[i])
	}
}

// a latched symbol is emitted over exactly ten single-rate shift ticks, one
// bit per tick, least significant bit first
func TestSingleRateSerialization(t *testing.T) {
	ser, err := NewSerializer(clocks.SDR, 8)
	test.ExpectedSuccess(t, err)

	ser.PixelTick(signal.PixelSample{Red: 0x00, Green: 0xff, Blue: 0x00})

	// red encodes to 0100000000 and green to 1000000000 (see the channel
	// golden vectors)
	var redSym, greenSym uint16
	for i := 0; i < 10; i++ {
		b := ser.ShiftTick()
		redSym |= uint16(b.Red) << i
		greenSym |= uint16(b.Green) << i
	}
	test.Equate(t, redSym, 0b0100000000)
	test.Equate(t, greenSym, 0b1000000000)
}

// the same symbol is emitted over exactly five double-rate ticks, two bits
// per tick, in the same bit order grouped in pairs
func TestDoubleRateSerialization(t *testing.T) {
	ser, err := NewSerializer(clocks.DDR, 8)
	test.ExpectedSuccess(t, err)

	ser.PixelTick(signal.PixelSample{Red: 0x00, Green: 0xff, Blue: 0x00})

	var redSym, greenSym uint16
	clockFields := []uint8{0b11, 0b11, 0b01, 0b00, 0b00}
	for i := 0; i < 5; i++ {
		b := ser.ShiftTick()
		redSym |= uint16(b.Red) << (i * 2)
		greenSym |= uint16(b.Green) << (i * 2)
		test.Equate(t, b.Clock, clockFields[i])
	}
	test.Equate(t, redSym, 0b0100000000)
	test.Equate(t, greenSym, 0b1000000000)
}

// successive symbols do not bleed into each other: every bit of every
// symbol is emitted exactly once
func TestBackToBackSymbols(t *testing.T) {
	ser, err := NewSerializer(clocks.SDR, 8)
	test.ExpectedSuccess(t, err)

	data := []uint8{0x00, 0x5a, 0xff, 0x01}
	for _, v := range data {
		ser.PixelTick(signal.PixelSample{Blue: v})

		expected := uint16(ser.latch[blue])
		var sym uint16
		for i := 0; i < 10; i++ {
			b := ser.ShiftTick()
			sym |= uint16(b.Blue) << i
		}
		test.Equate(t, sym, expected)

		// and the recovered symbol decodes to the sample value
		rec, _, blank := Decode(Symbol(sym))
		test.Equate(t, blank, false)
		test.Equate(t, rec, v)
	}
}

func TestWiden(t *testing.T) {
	ser, _ := NewSerializer(clocks.SDR, 4)
	test.Equate(t, ser.widen(0b1010), 0b10101111)
	test.Equate(t, ser.widen(0b0101), 0b01010000)

	ser, _ = NewSerializer(clocks.SDR, 1)
	test.Equate(t, ser.widen(0), 0x00)
	test.Equate(t, ser.widen(1), 0xff)

	// exactly eight bits passes through unchanged
	ser, _ = NewSerializer(clocks.SDR, 8)
	test.Equate(t, ser.widen(0xa5), 0xa5)
}

// the sync monitor does nothing while the clock register is aligned
func TestSyncMonitorQuiescent(t *testing.T) {
	ser, err := NewSerializer(clocks.DDR, 8)
	test.ExpectedSuccess(t, err)

	for p := 0; p < 1000; p++ {
		ser.PixelTick(signal.PixelSample{Red: uint8(p), Blank: p%8 == 0})
		for i := 0; i < 5; i++ {
			_ = ser.ShiftTick()
			test.Equate(t, ser.misaligned, false)
			test.Equate(t, ser.drift, 0)
		}
	}
}

// a perturbed clock register that still passes the boundary slice check is
// recovered by the normal boundary reload, without the sync monitor firing
func TestResyncByBoundaryReload(t *testing.T) {
	ser, err := NewSerializer(clocks.SDR, 8)
	test.ExpectedSuccess(t, err)

	// rotation by nine leaves bits 4:3 matching the canonical pattern
	ser.clock = rotate(uint16(ClockPattern), 9)

	// the first boundary reloads the canonical pattern. a full pixel of
	// rotation later the register is canonical again and the monitor has
	// not fired
	ser.PixelTick(signal.PixelSample{})
	for j := 0; j < 10; j++ {
		_ = ser.ShiftTick()
		test.Equate(t, ser.drift, 0)
	}
	test.Equate(t, ser.clock, uint16(ClockPattern))
}

// a perturbed clock register that fails the boundary check is forcibly
// reloaded after at most 127 ticks of continued misalignment
func TestResyncWindow(t *testing.T) {
	for _, mode := range []clocks.RateMode{clocks.SDR, clocks.DDR} {
		ser, err := NewSerializer(mode, 8)
		test.ExpectedSuccess(t, err)

		// settle into normal operation
		for p := 0; p < 3; p++ {
			ser.PixelTick(signal.PixelSample{})
			for i := 0; i < mode.Ratio(); i++ {
				_ = ser.ShiftTick()
			}
		}

		// perturb to a rotation that can never pass the slice check
		ser.clock = rotate(uint16(ClockPattern), 5)

		// the canonical pattern must be observed again within the grace
		// window plus the ticks before misalignment is first noticed at a
		// boundary
		observed := false
		for i := 0; i < resyncWindow+mode.Ratio(); i++ {
			if ser.tick == 0 {
				ser.PixelTick(signal.PixelSample{})
			}
			_ = ser.ShiftTick()
			if ser.clock == uint16(ClockPattern) {
				observed = true
				break // for loop
			}
		}
		test.Equate(t, observed, true)
	}
}

// after a forced reload the serializer converges back to full boundary
// alignment and stays there
func TestResyncConvergence(t *testing.T) {
	for _, mode := range []clocks.RateMode{clocks.SDR, clocks.DDR} {
		ser, err := NewSerializer(mode, 8)
		test.ExpectedSuccess(t, err)

		ser.clock = rotate(uint16(ClockPattern), 1)

		// enough ticks for several grace windows
		for i := 0; i < 20*resyncWindow; i++ {
			if ser.tick == 0 {
				ser.PixelTick(signal.PixelSample{})
			}
			_ = ser.ShiftTick()
		}

		// run to the next boundary and check the emitted clock bits are the
		// canonical pattern again
		for ser.tick != 0 {
			_ = ser.ShiftTick()
		}
		ser.PixelTick(signal.PixelSample{})

		var pattern uint16
		step := mode.BitsPerTick()
		for i := 0; i < mode.Ratio(); i++ {
			b := ser.ShiftTick()
			pattern |= uint16(b.Clock) << (i * step)
		}
		test.Equate(t, pattern, uint16(ClockPattern))
	}
}

// Reset returns the serializer to its construction state
func TestReset(t *testing.T) {
	ser, err := NewSerializer(clocks.DDR, 8)
	test.ExpectedSuccess(t, err)

	for p := 0; p < 100; p++ {
		ser.PixelTick(signal.PixelSample{Red: 0x12, Green: 0x34, Blue: 0x56})
		for i := 0; i < 5; i++ {
			_ = ser.ShiftTick()
		}
	}

	ser.Reset()

	fresh, err := NewSerializer(clocks.DDR, 8)
	test.ExpectedSuccess(t, err)

	for p := 0; p < 10; p++ {
		ser.PixelTick(signal.PixelSample{Red: 0xab})
		fresh.PixelTick(signal.PixelSample{Red: 0xab})
		for i := 0; i < 5; i++ {
			a := ser.ShiftTick()
			b := fresh.ShiftTick()
			test.Equate(t, a.Pack(), b.Pack())
		}
	}
}
