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

package tmds_test

import (
	"math/rand"
	"testing"

	"github.com/jetsetilly/dvitx/hardware/tmds"
	"github.com/jetsetilly/dvitx/test"
)

// the four control tokens in control code order. these values are fixed by
// the DVI specification
var controlTokens = []uint16{
	0b1101010100,
	0b0010101011,
	0b0101010100,
	0b1010101011,
}

func TestControlTokens(t *testing.T) {
	ch := &tmds.Channel{}

	// drive the disparity away from zero first so we can see the reset
	_ = ch.Encode(0x00, 0x00, false)
	test.Equate(t, ch.Disparity() != 0, true)

	// four consecutive blanking ticks cycling through the control codes
	for c, tok := range controlTokens {
		sym := ch.Encode(0xff, tmds.ControlCode(c), true)
		test.Equate(t, uint16(sym), tok)
		test.Equate(t, ch.Disparity(), 0)
	}
}

// golden vector, derived by hand from the encoding rules. data 0x00 builds
// an XOR chain of 0x100 (all payload bits zero, marker set) with a word
// disparity of -4. starting from zero disparity the symbol is transmitted
// as-is with the "01" prefix
func TestGoldenVector(t *testing.T) {
	ch := &tmds.Channel{}

	sym := ch.Encode(0x00, 0x00, false)
	test.Equate(t, uint16(sym), 0b0100000000)
	test.Equate(t, ch.Disparity(), -4)

	// second 0x00: accumulated bias and payload bias are both negative so
	// the payload is transmitted complemented
	sym = ch.Encode(0x00, 0x00, false)
	test.Equate(t, uint16(sym), 0b1111111111)
	test.Equate(t, ch.Disparity(), 1)

	// third 0x00: biases now oppose. payload transmitted as-is
	sym = ch.Encode(0x00, 0x00, false)
	test.Equate(t, uint16(sym), 0b0100000000)
	test.Equate(t, ch.Disparity(), -3)
}

func TestGoldenVectorOnes(t *testing.T) {
	ch := &tmds.Channel{}

	// data 0xff selects the XNOR chain (payload 0xff, marker clear). from
	// zero disparity the payload is transmitted complemented with the "10"
	// prefix
	sym := ch.Encode(0xff, 0x00, false)
	test.Equate(t, uint16(sym), 0b1000000000)
	test.Equate(t, ch.Disparity(), -4)
}

// every symbol produced during active video must decode back to the data
// that produced it, for every data value and from every reachable disparity
// state
func TestRoundTrip(t *testing.T) {
	ch := &tmds.Channel{}

	// fresh channel for every value
	for v := 0; v < 256; v++ {
		ch.Reset()
		sym := ch.Encode(uint8(v), 0x00, false)
		data, _, blank := tmds.Decode(sym)
		test.Equate(t, blank, false)
		test.Equate(t, data, uint8(v))
	}

	// a long run through a single channel, visiting many disparity states
	ch.Reset()
	rnd := rand.New(rand.NewSource(1))
	for i := 0; i < 100000; i++ {
		v := uint8(rnd.Intn(256))
		sym := ch.Encode(v, 0x00, false)
		data, _, blank := tmds.Decode(sym)
		test.Equate(t, blank, false)
		test.Equate(t, data, v)
	}
}

func TestDecodeControlTokens(t *testing.T) {
	for c, tok := range controlTokens {
		_, ctrl, blank := tmds.Decode(tmds.Symbol(tok))
		test.Equate(t, blank, true)
		test.Equate(t, int(ctrl), c)
	}
}

// disparity is reset to exactly zero by any blanking tick, whatever the
// prior state and control code
func TestDisparityReset(t *testing.T) {
	ch := &tmds.Channel{}
	rnd := rand.New(rand.NewSource(2))

	for i := 0; i < 1000; i++ {
		// arbitrary prior state
		for j := 0; j < rnd.Intn(8); j++ {
			_ = ch.Encode(uint8(rnd.Intn(256)), 0x00, false)
		}

		_ = ch.Encode(uint8(rnd.Intn(256)), tmds.ControlCode(rnd.Intn(4)), true)
		test.Equate(t, ch.Disparity(), 0)
	}
}

// the running disparity must never diverge, however long the run of
// non-blanking ticks. the DC-balancing rules keep it within a small fixed
// bound
func TestDisparityBound(t *testing.T) {
	ch := &tmds.Channel{}
	rnd := rand.New(rand.NewSource(3))

	for i := 0; i < 1000000; i++ {
		_ = ch.Encode(uint8(rnd.Intn(256)), 0x00, false)
		d := ch.Disparity()
		if d < -5 || d > 5 {
			t.Fatalf("running disparity diverged (%d after %d symbols)", d, i+1)
		}
	}

	// worst-case stimulus: runs of extreme values
	ch.Reset()
	for i := 0; i < 1000; i++ {
		_ = ch.Encode(0x00, 0x00, false)
		_ = ch.Encode(0xff, 0x00, false)
		d := ch.Disparity()
		if d < -5 || d > 5 {
			t.Fatalf("running disparity diverged (%d)", d)
		}
	}
}

func TestEncodeIsTotal(t *testing.T) {
	ch := &tmds.Channel{}

	// control codes outside the two bit range are masked, not rejected
	sym := ch.Encode(0x00, 0xff, true)
	test.Equate(t, uint16(sym), controlTokens[3])
	test.Equate(t, ch.Disparity(), 0)
}
