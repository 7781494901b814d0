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

package patterns_test

import (
	"testing"

	"github.com/jetsetilly/dvitx/curated"
	"github.com/jetsetilly/dvitx/patterns"
	"github.com/jetsetilly/dvitx/test"
)

func TestFrameGeometry(t *testing.T) {
	tm := patterns.TestCard
	test.Equate(t, tm.TotalWidth(), 12)
	test.Equate(t, tm.TotalHeight(), 7)
	test.Equate(t, tm.PixelsPerFrame(), 84)

	src := patterns.NewSolid(tm, 0x80, 0x80, 0x80)

	var active, blank, hsync, vsync, newFrames int
	for i := 0; i < tm.PixelsPerFrame()*2; i++ {
		s, nf := src.NextPixel()
		if nf {
			newFrames++
		}
		if s.Blank {
			blank++
		} else {
			active++
		}
		if s.HSync {
			hsync++
		}
		if s.VSync {
			vsync++
		}
	}

	// two frames of samples
	test.Equate(t, newFrames, 2)
	test.Equate(t, active, 2*tm.ActiveWidth*tm.ActiveHeight)
	test.Equate(t, blank, 2*(tm.PixelsPerFrame()-tm.ActiveWidth*tm.ActiveHeight))

	// hsync asserts for HSyncWidth ticks on every scanline; vsync for
	// VSyncWidth whole scanlines per frame
	test.Equate(t, hsync, 2*tm.HSyncWidth*tm.TotalHeight())
	test.Equate(t, vsync, 2*tm.VSyncWidth*tm.TotalWidth())
}

func TestActiveSamplesAreNotBlank(t *testing.T) {
	src := patterns.NewRamp(patterns.TestCard)

	for i := 0; i < patterns.TestCard.PixelsPerFrame(); i++ {
		s, _ := src.NextPixel()
		if !s.Blank {
			// sync is never asserted during the active area
			test.Equate(t, s.HSync, false)
			test.Equate(t, s.VSync, false)
		}
	}
}

func TestDeterminism(t *testing.T) {
	a := patterns.NewColorBars(patterns.TestCard)
	b := patterns.NewColorBars(patterns.TestCard)

	for i := 0; i < patterns.TestCard.PixelsPerFrame()*3; i++ {
		sa, fa := a.NextPixel()
		sb, fb := b.NextPixel()
		test.Equate(t, sa.String(), sb.String())
		test.Equate(t, fa, fb)
	}

	// reset returns the generator to the top of the frame
	a.Reset()
	s, nf := a.NextPixel()
	test.Equate(t, nf, true)
	test.Equate(t, s.Blank, false)
}

func TestNew(t *testing.T) {
	for _, n := range []string{"bars", "ramp", "white", "black"} {
		src, err := patterns.New(n, patterns.TestCard)
		test.ExpectedSuccess(t, err)
		test.ExpectedSuccess(t, src != nil)
	}

	_, err := patterns.New("plasma", patterns.TestCard)
	test.ExpectedFailure(t, err)
	test.ExpectedSuccess(t, curated.Is(err, patterns.NotAPattern))
}
