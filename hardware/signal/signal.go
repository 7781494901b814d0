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

// Package signal exposes the types passed between the pixel producing
// machine and the TMDS pipeline; and between the TMDS pipeline and whatever
// is consuming the serial bit stream.
package signal

import (
	"fmt"
	"strings"
)

// PixelSample represents the data arriving at the transmitter once per
// pixel-domain tick. Colour values narrower than eight bits are widened by
// the serializer; see the colour depth argument to tmds.NewSerializer().
//
// During blanking the colour values are ignored and the HSync and VSync
// flags select the control token for the blue channel.
type PixelSample struct {
	Red   uint8
	Green uint8
	Blue  uint8
	HSync bool
	VSync bool
	Blank bool
}

func (s PixelSample) String() string {
	b := strings.Builder{}
	if s.VSync {
		b.WriteString("VSYNC ")
	}
	if s.HSync {
		b.WriteString("HSYNC ")
	}
	if s.Blank {
		b.WriteString("BLANK ")
	}
	b.WriteString(fmt.Sprintf("rgb=%02x%02x%02x", s.Red, s.Green, s.Blue))
	return b.String()
}

// SerialBits is the word emitted by the serializer once per shift-domain
// tick. Each field is one bit wide in single-rate mode and two bits wide in
// double-rate mode. Bit 0 is the first bit on the wire.
type SerialBits struct {
	Red   uint8
	Green uint8
	Blue  uint8
	Clock uint8
}

func (b SerialBits) String() string {
	return fmt.Sprintf("r=%02b g=%02b b=%02b clk=%02b", b.Red, b.Green, b.Blue, b.Clock)
}

// Pack squeezes a SerialBits word into a single byte. The layout is used by
// the recorder file format and the stream digest: red in bits 0-1, green in
// bits 2-3, blue in bits 4-5, clock in bits 6-7.
func (b SerialBits) Pack() uint8 {
	return (b.Red & 0x03) | (b.Green&0x03)<<2 | (b.Blue&0x03)<<4 | (b.Clock&0x03)<<6
}

// Unpack is the inverse of the Pack() function.
func Unpack(v uint8) SerialBits {
	return SerialBits{
		Red:   v & 0x03,
		Green: (v >> 2) & 0x03,
		Blue:  (v >> 4) & 0x03,
		Clock: (v >> 6) & 0x03,
	}
}
