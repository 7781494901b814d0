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

package tmds

import (
	"fmt"

	"github.com/jetsetilly/dvitx/curated"
	"github.com/jetsetilly/dvitx/hardware/clocks"
	"github.com/jetsetilly/dvitx/hardware/signal"
	"github.com/jetsetilly/dvitx/logger"
)

// Error patterns returned by NewSerializer.
const (
	UnsupportedDepth = "tmds: unsupported colour depth (%d)"
	UnsupportedMode  = "tmds: unsupported rate mode (%d)"
)

// number of shift-domain ticks the sync monitor will tolerate a misaligned
// clock-pattern register before forcing a reload.
const resyncWindow = 127

// indices into the colour arrays of the Serializer.
const (
	red int = iota
	green
	blue
	numChannels
)

// Serializer drives the three channel encoders once per pixel-domain tick
// and serializes the latched symbols at the shift-domain rate, together with
// the clock-pattern stream.
//
// The caller must drive the two domains at the fixed ratio for the rate
// mode: Ratio() calls to ShiftTick() for every call to PixelTick(). The
// latch handover is the only communication between the domains: PixelTick()
// publishes three symbols and the next shift-domain boundary consumes them.
type Serializer struct {
	mode  clocks.RateMode
	depth int

	// one encoder per colour channel
	channels [numChannels]Channel

	// symbols published by the most recent PixelTick(), waiting for the next
	// latch boundary
	latch [numChannels]Symbol

	// the shift registers. reg holds the currently-serializing symbols;
	// clock holds a rotation of the canonical clock pattern
	reg   [numChannels]uint16
	clock uint16

	// count of shift-domain ticks within the current pixel. the latch
	// boundary is tick zero
	tick int

	// sync monitor. misaligned is set when the boundary check of the clock
	// register fails; drift counts shift ticks spent misaligned
	misaligned bool
	drift      int
}

// NewSerializer creates a serializer for the given rate mode and colour
// depth. Depth is the width in bits of the incoming colour values; values
// narrower than eight bits are widened by replicating the most significant
// bit into the vacated low-order bits.
func NewSerializer(mode clocks.RateMode, depth int) (*Serializer, error) {
	if depth < 1 || depth > 8 {
		return nil, curated.Errorf(UnsupportedDepth, depth)
	}
	if !mode.IsValid() {
		return nil, curated.Errorf(UnsupportedMode, int(mode))
	}

	ser := &Serializer{
		mode:  mode,
		depth: depth,
	}
	ser.Reset()

	return ser, nil
}

func (ser *Serializer) String() string {
	return fmt.Sprintf("tick=%d/%d r=%010b g=%010b b=%010b clk=%010b drift=%d",
		ser.tick, ser.mode.Ratio(),
		ser.reg[red], ser.reg[green], ser.reg[blue],
		ser.clock, ser.drift)
}

// Mode returns the rate mode the serializer was created with.
func (ser *Serializer) Mode() clocks.RateMode {
	return ser.mode
}

// Depth returns the colour depth the serializer was created with.
func (ser *Serializer) Depth() int {
	return ser.depth
}

// Reset reinitialises every register to its documented default: clock
// register to the canonical pattern, colour registers and disparity counters
// to zero. Output is deterministic from the first shift tick after a reset.
func (ser *Serializer) Reset() {
	for i := range ser.channels {
		ser.channels[i].Reset()
		ser.latch[i] = 0
		ser.reg[i] = 0
	}
	ser.clock = uint16(ClockPattern)
	ser.tick = 0
	ser.misaligned = false
	ser.drift = 0
}

// Disparity returns the running disparities of the red, green and blue
// channel encoders.
func (ser *Serializer) Disparity() (int, int, int) {
	return ser.channels[red].Disparity(), ser.channels[green].Disparity(), ser.channels[blue].Disparity()
}

// widen a colour value of the configured depth to eight bits. the most
// significant bit of the value is replicated into the vacated low-order
// bits.
func (ser *Serializer) widen(v uint8) uint8 {
	if ser.depth == 8 {
		return v
	}

	v &= (1 << ser.depth) - 1
	w := v << (8 - ser.depth)
	if v&(1<<(ser.depth-1)) != 0 {
		w |= (1 << (8 - ser.depth)) - 1
	}
	return w
}

// PixelTick encodes the three colour channels of the sample and publishes
// the symbols for the next latch boundary. Call exactly once per
// pixel-domain tick.
//
// The red and green channels always carry control code 00. The blue channel
// carries vsync and hsync.
func (ser *Serializer) PixelTick(sample signal.PixelSample) {
	var ctrl ControlCode
	if sample.HSync {
		ctrl |= 0x01
	}
	if sample.VSync {
		ctrl |= 0x02
	}

	ser.latch[red] = ser.channels[red].Encode(ser.widen(sample.Red), 0x00, sample.Blank)
	ser.latch[green] = ser.channels[green].Encode(ser.widen(sample.Green), 0x00, sample.Blank)
	ser.latch[blue] = ser.channels[blue].Encode(ser.widen(sample.Blue), ctrl, sample.Blank)
}

// the two bit slice of the clock-pattern register used by the sync monitor
// to decide whether the register is correctly aligned at the latch boundary.
func clockSlice(v uint16) uint16 {
	return (v >> 3) & 0x03
}

// rotate a ten bit register right by n bits. the bits shifted out at the
// bottom reappear at the top.
func rotate(v uint16, n int) uint16 {
	return ((v >> n) | (v << (SymbolBits - n))) & SymbolMask
}

// ShiftTick emits the next word of the serial stream. Call exactly Ratio()
// times per call to PixelTick().
//
// At the latch boundary the colour registers are reloaded with the published
// symbols and, if the sync monitor agrees the clock register is aligned, the
// clock register is reloaded with the canonical pattern. At all other ticks
// the registers rotate. A clock register that stays misaligned for the full
// grace window is forcibly reloaded; see the sync monitor commentary below.
func (ser *Serializer) ShiftTick() signal.SerialBits {
	if ser.tick == 0 {
		ser.reg[red] = uint16(ser.latch[red])
		ser.reg[green] = uint16(ser.latch[green])
		ser.reg[blue] = uint16(ser.latch[blue])

		// boundary check. when aligned the reload below is indistinguishable
		// from a full rotation of the canonical pattern. when misaligned the
		// register is left to rotate freely and the grace window begins
		if clockSlice(ser.clock) == clockSlice(uint16(ClockPattern)) {
			ser.clock = uint16(ClockPattern)
			ser.misaligned = false
			ser.drift = 0
		} else {
			ser.misaligned = true
		}
	}

	step := ser.mode.BitsPerTick()
	mask := uint16(1)<<step - 1

	bits := signal.SerialBits{
		Red:   uint8(ser.reg[red] & mask),
		Green: uint8(ser.reg[green] & mask),
		Blue:  uint8(ser.reg[blue] & mask),
		Clock: uint8(ser.clock & mask),
	}

	ser.reg[red] = rotate(ser.reg[red], step)
	ser.reg[green] = rotate(ser.reg[green], step)
	ser.reg[blue] = rotate(ser.reg[blue], step)
	ser.clock = rotate(ser.clock, step)

	ser.tick++
	if ser.tick >= ser.mode.Ratio() {
		ser.tick = 0
	}

	// sync monitor. a transient glitch that knocks the clock register out of
	// phase is given resyncWindow ticks to come right on its own. if it does
	// not, the register is forced back to the canonical pattern. the forced
	// reload lands at an arbitrary point in the pixel so full phase recovery
	// can take more than one grace window, but because the window length is
	// coprime to both shift ratios the boundary check is guaranteed to
	// eventually pass, at which point the normal reload takes over
	if ser.misaligned {
		ser.drift++
		if ser.drift >= resyncWindow {
			logger.Log("tmds", "clock register misaligned beyond grace window, forcing reload")
			ser.clock = uint16(ClockPattern)
			ser.drift = 0
		}
	}

	return bits
}
