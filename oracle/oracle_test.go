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

package oracle_test

import (
	"bytes"
	"testing"

	"github.com/jetsetilly/dvitx/curated"
	"github.com/jetsetilly/dvitx/hardware/clocks"
	"github.com/jetsetilly/dvitx/hardware/dvi"
	"github.com/jetsetilly/dvitx/oracle"
	"github.com/jetsetilly/dvitx/patterns"
	"github.com/jetsetilly/dvitx/recorder"
	"github.com/jetsetilly/dvitx/test"
)

// length of the capture header laid down by the recorder
const headerLen = 8

func capture(t *testing.T, pattern string, mode clocks.RateMode) *bytes.Buffer {
	t.Helper()

	src, err := patterns.New(pattern, patterns.TestCard)
	test.ExpectedSuccess(t, err)

	tx, err := dvi.NewTransmitter(src, mode, 8)
	test.ExpectedSuccess(t, err)

	b := &bytes.Buffer{}
	rec, err := recorder.NewRecorder(b, mode, 8)
	test.ExpectedSuccess(t, err)
	tx.AddBitReceiver(rec)

	err = tx.RunFrames(2)
	test.ExpectedSuccess(t, err)

	return b
}

func TestWellFormedCapture(t *testing.T) {
	for _, mode := range []clocks.RateMode{clocks.SDR, clocks.DDR} {
		for _, pattern := range []string{"bars", "ramp", "black"} {
			b := capture(t, pattern, mode)

			plb, err := recorder.NewPlayback(bytes.NewReader(b.Bytes()))
			test.ExpectedSuccess(t, err)

			rep, err := oracle.Verify(plb)
			test.ExpectedSuccess(t, err)

			test.Equate(t, rep.Phase, 0)
			test.Equate(t, rep.Symbols*mode.Ratio(), rep.Words)
			test.ExpectedSuccess(t, rep.ActiveSymbols > 0)
			test.ExpectedSuccess(t, rep.BlankingSymbols > 0)
		}
	}
}

func TestCorruptColourChannel(t *testing.T) {
	b := capture(t, "bars", clocks.SDR)
	raw := b.Bytes()

	// flip a red channel bit inside a blanking symbol. pixel eight is the
	// first pixel of the horizontal blanking interval
	raw[headerLen+8*10] ^= 0x01

	plb, err := recorder.NewPlayback(bytes.NewReader(raw))
	test.ExpectedSuccess(t, err)

	_, err = oracle.Verify(plb)
	test.ExpectedFailure(t, err)
}

func TestCorruptClockChannel(t *testing.T) {
	b := capture(t, "bars", clocks.SDR)
	raw := b.Bytes()

	// flip a clock bit. the symbol boundary can no longer be found
	raw[headerLen+42] ^= 0x40

	plb, err := recorder.NewPlayback(bytes.NewReader(raw))
	test.ExpectedSuccess(t, err)

	_, err = oracle.Verify(plb)
	test.ExpectedFailure(t, err)
	test.ExpectedSuccess(t, curated.Is(err, oracle.NoSymbolLock))
}
