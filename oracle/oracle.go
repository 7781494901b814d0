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

// Package oracle checks a captured serial stream against the channel coding
// rules. It locates the symbol boundary from the clock channel, reassembles
// the ten bit symbols of each colour channel and confirms that every symbol
// is the one a freshly seeded encoder would have produced.
//
// The oracle works from the capture alone. It has no knowledge of the pixel
// source that produced the capture, so what it proves is that the stream is
// a well formed TMDS stream, not that the pictures in it are correct.
package oracle

import (
	"fmt"
	"io"

	"github.com/jetsetilly/dvitx/curated"
	"github.com/jetsetilly/dvitx/hardware/tmds"
	"github.com/jetsetilly/dvitx/recorder"
)

// Sentinal error patterns returned by functions in the oracle package.
const (
	NoSymbolLock     = "oracle: no symbol lock: clock channel never matches the clock pattern"
	SymbolMismatch   = "oracle: symbol %d: %s channel: stream has %s but encoder produces %s"
	DisparityBound   = "oracle: symbol %d: %s channel: running disparity %d out of bounds"
	ControlConflict  = "oracle: symbol %d: %s channel carries control code %#02b during blanking"
	BlankingConflict = "oracle: symbol %d: %s channel disagrees with the blue channel about blanking"
)

var channelNames = [3]string{"red", "green", "blue"}

// Report summarises a verified capture.
type Report struct {
	Words   int
	Symbols int

	// bit offset into the stream at which the symbol boundary was found
	Phase int

	ActiveSymbols   int
	BlankingSymbols int
}

func (rep Report) String() string {
	return fmt.Sprintf("%d words, %d symbols (phase %d): %d active, %d blanking",
		rep.Words, rep.Symbols, rep.Phase, rep.ActiveSymbols, rep.BlankingSymbols)
}

// Verify reads an entire capture and checks it. The returned Report is valid
// even when an error is returned, describing how far the check progressed.
func Verify(plb *recorder.Playback) (Report, error) {
	rep := Report{}

	// unspool the capture into per channel bit streams. the LSB of each two
	// bit field is the earlier bit on the wire
	step := plb.Mode().BitsPerTick()
	var stream [4][]uint8

	for {
		w, err := plb.NextBits()
		if err == io.EOF {
			break
		}
		if err != nil {
			return rep, err
		}
		rep.Words++

		for s := 0; s < step; s++ {
			stream[0] = append(stream[0], (w.Red>>s)&0x01)
			stream[1] = append(stream[1], (w.Green>>s)&0x01)
			stream[2] = append(stream[2], (w.Blue>>s)&0x01)
			stream[3] = append(stream[3], (w.Clock>>s)&0x01)
		}
	}

	phase, err := symbolLock(stream[3])
	if err != nil {
		return rep, err
	}
	rep.Phase = phase

	// a reference encoder per colour channel. the capture begins at the reset
	// state so the reference disparity tracks the transmitter exactly
	var ref [3]tmds.Channel

	numSymbols := (len(stream[3]) - phase) / tmds.SymbolBits
	rep.Symbols = numSymbols

	for i := 0; i < numSymbols; i++ {
		var sym [3]tmds.Symbol
		for ch := 0; ch < 3; ch++ {
			sym[ch] = assemble(stream[ch], phase+i*tmds.SymbolBits)
		}

		// blanking is signalled on all channels at once
		_, _, blank := tmds.Decode(sym[2])

		if blank {
			rep.BlankingSymbols++
		} else {
			rep.ActiveSymbols++
		}

		for ch := 0; ch < 3; ch++ {
			data, ctrl, chBlank := tmds.Decode(sym[ch])

			if chBlank != blank {
				return rep, curated.Errorf(BlankingConflict, i, channelNames[ch])
			}
			if chBlank && ch != 2 && ctrl != 0 {
				// only the blue channel carries sync information
				return rep, curated.Errorf(ControlConflict, i, channelNames[ch], ctrl)
			}

			enc := ref[ch].Encode(data, ctrl, chBlank)
			if enc != sym[ch] {
				return rep, curated.Errorf(SymbolMismatch, i, channelNames[ch],
					sym[ch].String(), enc.String())
			}

			d := ref[ch].Disparity()
			if d < -5 || d > 5 {
				return rep, curated.Errorf(DisparityBound, i, channelNames[ch], d)
			}
		}
	}

	return rep, nil
}

// symbolLock finds the bit offset of the symbol boundary by looking for the
// clock pattern in the clock channel. every full symbol window at the
// returned offset matches the pattern.
func symbolLock(clock []uint8) (int, error) {
	for phase := 0; phase < tmds.SymbolBits; phase++ {
		n := (len(clock) - phase) / tmds.SymbolBits
		if n == 0 {
			break
		}

		locked := true
		for i := 0; i < n; i++ {
			if assemble(clock, phase+i*tmds.SymbolBits) != tmds.ClockPattern {
				locked = false
				break
			}
		}
		if locked {
			return phase, nil
		}
	}

	return 0, curated.Errorf(NoSymbolLock)
}

// assemble reconstitutes a symbol from ten consecutive bits of a channel
// stream, the earliest bit being the LSB of the symbol.
func assemble(stream []uint8, offset int) tmds.Symbol {
	var v uint16
	for b := 0; b < tmds.SymbolBits; b++ {
		v |= uint16(stream[offset+b]) << b
	}
	return tmds.Symbol(v)
}
