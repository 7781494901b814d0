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
	"math/bits"
)

// Channel encodes one colour channel of the video stream. The only state is
// the running disparity counter: the net count of one bits over zero bits
// transmitted since the last blanking period, in units of half the
// difference.
//
// The zero value is a Channel ready for use.
type Channel struct {
	disparity int
}

func (ch *Channel) String() string {
	return fmt.Sprintf("disparity=%+d", ch.disparity)
}

// Reset returns the channel to its initial state.
func (ch *Channel) Reset() {
	ch.disparity = 0
}

// Disparity returns the current running disparity of the channel.
func (ch *Channel) Disparity() int {
	return ch.disparity
}

// Encode converts an eight bit sample into a ten bit symbol, updating the
// running disparity. During blanking (blank is true) the sample is ignored,
// the control code selects one of the four fixed tokens and the disparity is
// reset to zero.
//
// Encode is a total function. It never fails, whatever the arguments.
func (ch *Channel) Encode(data uint8, ctrl ControlCode, blank bool) Symbol {
	if blank {
		ch.disparity = 0
		return ControlToken(ctrl)
	}

	// build the two nine bit candidate encodings. bit 8 of each candidate is
	// the marker bit that records which chain was used. bit 0 is copied from
	// the data; every subsequent bit is the data bit XORed (or XNORed) with
	// the previous chain bit
	xor := uint16(data) & 0x01
	xnor := uint16(data) & 0x01
	for i := 1; i < 8; i++ {
		b := (uint16(data) >> i) & 0x01
		xor |= (b ^ ((xor >> (i - 1)) & 0x01)) << i
		xnor |= (0x01 ^ b ^ ((xnor >> (i - 1)) & 0x01)) << i
	}
	xor |= 0x100

	// the XNOR chain produces fewer transitions when the data is one-heavy.
	// the tie at four ones is broken by bit 0 of the data
	chosen := xor
	ones := bits.OnesCount8(data)
	if ones > 4 || (ones == 4 && data&0x01 == 0x00) {
		chosen = xnor
	}

	marker := int((chosen >> 8) & 0x01)

	// net ones-minus-zeros of the eight payload bits alone, in half units.
	// always in the range [-4, +4]
	wordDisparity := bits.OnesCount16(chosen&0x0ff) - 4

	// the final stage decides whether to transmit the payload as-is or
	// complemented, so that the running disparity is pushed back towards
	// zero. the selection and update rules below are the classical TMDS
	// DC-balancing rules and are deliberately written out literally
	var sym uint16

	switch {
	case ch.disparity == 0 || wordDisparity == 0:
		if marker == 1 {
			sym = 0x100 | (chosen & 0x0ff)
			ch.disparity += wordDisparity
		} else {
			sym = 0x200 | (^chosen & 0x0ff)
			ch.disparity -= wordDisparity
		}

	case (ch.disparity > 0) == (wordDisparity > 0):
		// payload bias is in the same direction as the accumulated bias.
		// transmit complemented
		sym = 0x200 | (uint16(marker) << 8) | (^chosen & 0x0ff)
		ch.disparity += marker - wordDisparity

	default:
		// payload bias opposes the accumulated bias. transmit as-is
		sym = chosen & 0x1ff
		ch.disparity -= 1 - marker
		ch.disparity += wordDisparity
	}

	return Symbol(sym)
}
