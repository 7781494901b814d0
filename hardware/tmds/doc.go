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

// Package tmds implements the transition-minimised differential signalling
// encoding used on a DVI/HDMI link, and the serializer that turns encoded
// symbols into the bit stream that would appear on the wire.
//
// The Channel type encodes one colour channel. During active video an eight
// bit sample becomes a ten bit symbol chosen to minimise transitions and to
// keep the running disparity of the channel near zero. During blanking one
// of four fixed control tokens is transmitted and the disparity is reset.
//
// The Serializer type owns three Channel instances, one for each colour,
// plus the clock-pattern register. It is driven by two tick functions:
// PixelTick() once per pixel and ShiftTick() five or ten times per pixel,
// depending on the rate mode. Each ShiftTick() emits one or two bits per
// channel, least-significant bit first.
//
// Bit numbering convention throughout the package: bit 0 is the least
// significant bit of the word and the first bit on the wire.
//
// Persistent hardware registers - the disparity counters and the shift
// registers - are fields of the Channel and Serializer instances. There is
// no global state; every instance is independent.
package tmds
