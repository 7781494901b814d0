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

// Package clocks describes the relationship between the two tick domains
// that drive the TMDS pipeline: the pixel domain and the shift domain.
//
// The two domains are not threads. They are two totally-ordered sequences of
// tick events related by a fixed integer ratio and the caller is responsible
// for driving them at exactly that ratio: for every call to the serializer's
// PixelTick() function there must be Ratio() calls to ShiftTick().
package clocks

import (
	"strings"

	"github.com/jetsetilly/dvitx/curated"
)

// RateMode selects how many bits per channel are emitted on each
// shift-domain tick.
type RateMode int

// Valid RateMode values. SDR emits one bit per tick at ten times the pixel
// rate; DDR emits two bits per tick at five times the pixel rate.
const (
	SDR RateMode = iota
	DDR
)

// NotARateMode is the error pattern returned by ParseRateMode.
const NotARateMode = "clocks: not a rate mode (%s)"

func (mode RateMode) String() string {
	switch mode {
	case SDR:
		return "SDR"
	case DDR:
		return "DDR"
	}
	return "undefined"
}

// Ratio returns the number of shift-domain ticks per pixel-domain tick.
func (mode RateMode) Ratio() int {
	switch mode {
	case SDR:
		return 10
	case DDR:
		return 5
	}
	return 0
}

// BitsPerTick returns the number of bits emitted per channel on each
// shift-domain tick.
func (mode RateMode) BitsPerTick() int {
	switch mode {
	case SDR:
		return 1
	case DDR:
		return 2
	}
	return 0
}

// IsValid returns false for RateMode values outside the declared set.
func (mode RateMode) IsValid() bool {
	return mode == SDR || mode == DDR
}

// ParseRateMode converts a string to a RateMode.
func ParseRateMode(mode string) (RateMode, error) {
	switch strings.ToUpper(mode) {
	case "SDR":
		return SDR, nil
	case "DDR":
		return DDR, nil
	}
	return -1, curated.Errorf(NotARateMode, mode)
}
