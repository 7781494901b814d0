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

// Decode is the inverse of the Channel Encode() function. If the symbol is
// one of the four control tokens then blank is true and ctrl identifies the
// token. Otherwise the original eight bit sample is recovered: bit 9 says
// whether the payload was transmitted complemented and bit 8 says which
// candidate chain built it.
//
// Decode is stateless. Unlike encoding, decoding does not depend on the
// running disparity, which is what makes the round-trip property testable
// symbol by symbol.
func Decode(sym Symbol) (data uint8, ctrl ControlCode, blank bool) {
	sym &= SymbolMask

	for c, tok := range controlTokens {
		if sym == tok {
			return 0, ControlCode(c), true
		}
	}

	payload := uint8(sym & 0x0ff)
	if sym&0x200 == 0x200 {
		payload = ^payload
	}

	data = payload & 0x01
	if sym&0x100 == 0x100 {
		// payload is an XOR chain
		for i := 1; i < 8; i++ {
			data |= (((payload >> i) ^ (payload >> (i - 1))) & 0x01) << i
		}
	} else {
		// payload is an XNOR chain
		for i := 1; i < 8; i++ {
			data |= ((0x01 ^ (payload >> i) ^ (payload >> (i - 1))) & 0x01) << i
		}
	}

	return data, 0, false
}
