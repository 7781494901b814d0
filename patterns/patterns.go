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

// Package patterns provides deterministic test pattern generators. Each
// generator implements the dvi.PixelSource interface, walking a frame
// geometry described by a Timing value and colouring the active area.
//
// The transmitter treats pixel generation as an external concern; these
// generators exist so that the pipeline can be exercised, measured and
// regression tested without a real video source.
package patterns

import (
	"strings"

	"github.com/jetsetilly/dvitx/curated"
	"github.com/jetsetilly/dvitx/hardware/dvi"
	"github.com/jetsetilly/dvitx/hardware/signal"
)

// NotAPattern is the error pattern returned by New.
const NotAPattern = "patterns: not a pattern (%s)"

// generator walks the coordinates of the frame geometry. the colour of the
// active area is deferred to the colour function of the specific pattern.
type generator struct {
	timing Timing
	x      int
	y      int
}

func (g *generator) Reset() {
	g.x = 0
	g.y = 0
}

// next returns the sample at the current coordinates and advances. the
// boolean return value is true for the first pixel of a frame.
func (g *generator) next(colour func(x, y int) (uint8, uint8, uint8)) (signal.PixelSample, bool) {
	newFrame := g.x == 0 && g.y == 0

	s := signal.PixelSample{
		HSync: g.x >= g.timing.ActiveWidth+g.timing.HFrontPorch &&
			g.x < g.timing.ActiveWidth+g.timing.HFrontPorch+g.timing.HSyncWidth,
		VSync: g.y >= g.timing.ActiveHeight+g.timing.VFrontPorch &&
			g.y < g.timing.ActiveHeight+g.timing.VFrontPorch+g.timing.VSyncWidth,
		Blank: g.x >= g.timing.ActiveWidth || g.y >= g.timing.ActiveHeight,
	}

	if !s.Blank {
		s.Red, s.Green, s.Blue = colour(g.x, g.y)
	}

	g.x++
	if g.x >= g.timing.TotalWidth() {
		g.x = 0
		g.y++
		if g.y >= g.timing.TotalHeight() {
			g.y = 0
		}
	}

	return s, newFrame
}

// ColorBars produces seven vertical SMPTE style colour bars.
type ColorBars struct {
	generator
}

// NewColorBars creates a colour bar pattern with the given timing.
func NewColorBars(timing Timing) *ColorBars {
	return &ColorBars{generator: generator{timing: timing}}
}

var barColours = [7][3]uint8{
	{192, 192, 192}, // gray
	{192, 192, 0},   // yellow
	{0, 192, 192},   // cyan
	{0, 192, 0},     // green
	{192, 0, 192},   // magenta
	{192, 0, 0},     // red
	{0, 0, 192},     // blue
}

// NextPixel implements the dvi.PixelSource interface.
func (p *ColorBars) NextPixel() (signal.PixelSample, bool) {
	return p.next(func(x, _ int) (uint8, uint8, uint8) {
		barWidth := p.timing.ActiveWidth / len(barColours)
		if barWidth < 1 {
			barWidth = 1
		}
		idx := x / barWidth
		if idx >= len(barColours) {
			idx = len(barColours) - 1
		}
		return barColours[idx][0], barColours[idx][1], barColours[idx][2]
	})
}

// Ramp produces a horizontal red ramp, a vertical green ramp and a diagonal
// blue ramp. Useful for checking that no channel has been swapped or
// mirrored.
type Ramp struct {
	generator
}

// NewRamp creates a ramp pattern with the given timing.
func NewRamp(timing Timing) *Ramp {
	return &Ramp{generator: generator{timing: timing}}
}

// NextPixel implements the dvi.PixelSource interface.
func (p *Ramp) NextPixel() (signal.PixelSample, bool) {
	return p.next(func(x, y int) (uint8, uint8, uint8) {
		r := uint8(x * 255 / p.timing.ActiveWidth)
		g := uint8(y * 255 / p.timing.ActiveHeight)
		b := uint8((x + y) * 255 / (p.timing.ActiveWidth + p.timing.ActiveHeight))
		return r, g, b
	})
}

// Solid produces a single colour over the whole active area.
type Solid struct {
	generator
	Red, Green, Blue uint8
}

// NewSolid creates a solid colour pattern with the given timing.
func NewSolid(timing Timing, r, g, b uint8) *Solid {
	return &Solid{
		generator: generator{timing: timing},
		Red:       r,
		Green:     g,
		Blue:      b,
	}
}

// NextPixel implements the dvi.PixelSource interface.
func (p *Solid) NextPixel() (signal.PixelSample, bool) {
	return p.next(func(_, _ int) (uint8, uint8, uint8) {
		return p.Red, p.Green, p.Blue
	})
}

// PatternList is the list of pattern names accepted by New.
const PatternList = "bars, ramp, white, black"

// New creates the named pattern with the given timing.
func New(name string, timing Timing) (dvi.PixelSource, error) {
	switch strings.ToLower(name) {
	case "bars":
		return NewColorBars(timing), nil
	case "ramp":
		return NewRamp(timing), nil
	case "white":
		return NewSolid(timing, 255, 255, 255), nil
	case "black":
		return NewSolid(timing, 0, 0, 0), nil
	}
	return nil, curated.Errorf(NotAPattern, name)
}
