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

package patterns

import (
	"fmt"
	"strings"

	"github.com/jetsetilly/dvitx/curated"
)

// NotATiming is the error pattern returned by TimingByName.
const NotATiming = "patterns: not a timing (%s)"

// Timing describes the frame geometry walked by the pattern generators.
// Every scanline is ActiveWidth visible pixels followed by the horizontal
// front porch, sync pulse and back porch; every frame is ActiveHeight
// visible scanlines followed by the vertical equivalents. Sync and blanking
// flags in the generated samples follow directly from the geometry.
type Timing struct {
	Name string

	ActiveWidth int
	HFrontPorch int
	HSyncWidth  int
	HBackPorch  int

	ActiveHeight int
	VFrontPorch  int
	VSyncWidth   int
	VBackPorch   int
}

func (tm Timing) String() string {
	return fmt.Sprintf("%s (%dx%d of %dx%d)", tm.Name,
		tm.ActiveWidth, tm.ActiveHeight, tm.TotalWidth(), tm.TotalHeight())
}

// TotalWidth returns the number of pixel ticks per scanline, including the
// blanking interval.
func (tm Timing) TotalWidth() int {
	return tm.ActiveWidth + tm.HFrontPorch + tm.HSyncWidth + tm.HBackPorch
}

// TotalHeight returns the number of scanlines per frame, including the
// blanking interval.
func (tm Timing) TotalHeight() int {
	return tm.ActiveHeight + tm.VFrontPorch + tm.VSyncWidth + tm.VBackPorch
}

// PixelsPerFrame returns the number of pixel ticks per frame.
func (tm Timing) PixelsPerFrame() int {
	return tm.TotalWidth() * tm.TotalHeight()
}

// VGA is the 640x480 timing used by the original hardware.
var VGA = Timing{
	Name:         "640x480",
	ActiveWidth:  640,
	HFrontPorch:  16,
	HSyncWidth:   96,
	HBackPorch:   48,
	ActiveHeight: 480,
	VFrontPorch:  10,
	VSyncWidth:   2,
	VBackPorch:   33,
}

// TimingByName returns the timing with the given name.
func TimingByName(name string) (Timing, error) {
	switch strings.ToLower(name) {
	case "640x480", "vga":
		return VGA, nil
	case "testcard":
		return TestCard, nil
	}
	return Timing{}, curated.Errorf(NotATiming, name)
}

// TestCard is a small timing for unit tests. Eight by four active pixels in
// a twelve by seven frame.
var TestCard = Timing{
	Name:         "testcard",
	ActiveWidth:  8,
	HFrontPorch:  1,
	HSyncWidth:   2,
	HBackPorch:   1,
	ActiveHeight: 4,
	VFrontPorch:  1,
	VSyncWidth:   1,
	VBackPorch:   1,
}
