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

import "fmt"

// Symbol is a ten bit TMDS symbol held in the low bits of a uint16. Bit 0 is
// the first bit on the wire.
type Symbol uint16

// SymbolMask masks a uint16 down to the ten bits of a Symbol.
const SymbolMask = 0x03ff

// SymbolBits is the width of a Symbol.
const SymbolBits = 10

func (sym Symbol) String() string {
	return fmt.Sprintf("%010b", uint16(sym&SymbolMask))
}

// ControlCode is the two bit code transmitted in place of pixel data during
// blanking. The red and green channels always carry code 00; the blue
// channel carries vsync in bit 1 and hsync in bit 0.
type ControlCode uint8

// controlTokens are the four fixed symbols transmitted during blanking,
// indexed by ControlCode. The bit patterns are part of the DVI specification
// and are written here MSB first.
var controlTokens = [4]Symbol{
	0b1101010100, // 00
	0b0010101011, // 01
	0b0101010100, // 10
	0b1010101011, // 11
}

// ControlToken returns the fixed symbol for a control code. Only the low two
// bits of the code are considered.
func ControlToken(ctrl ControlCode) Symbol {
	return controlTokens[ctrl&0x03]
}

// ClockPattern is the canonical value of the clock-pattern register. The
// clock channel transmits an endless rotation of this pattern, producing a
// square wave at the pixel rate: five one bits followed by five zero bits.
const ClockPattern Symbol = 0b0000011111
