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

// Package preview opens an SDL window and shows the picture carried by the
// serial stream. The picture is recovered by decoding the stream, not by
// copying pixels from the pattern generator, so what is on screen is what a
// sink device would see.
package preview

import (
	"github.com/veandco/go-sdl2/sdl"

	"github.com/jetsetilly/dvitx/curated"
	"github.com/jetsetilly/dvitx/hardware/clocks"
	"github.com/jetsetilly/dvitx/hardware/signal"
	"github.com/jetsetilly/dvitx/hardware/tmds"
	"github.com/jetsetilly/dvitx/patterns"
)

// QuitRequest is returned by SerialBits() once the window has been closed or
// the quit key has been pressed.
const QuitRequest = "preview: quit requested"

const windowTitle = "DVItx"

// number of bytes per pixel in the texture.
const pixelDepth = 4

// SdlPreview is an implementation of the dvi.BitReceiver interface. Serial
// words are reassembled into symbols, decoded and plotted; the texture is
// presented at every frame trigger.
type SdlPreview struct {
	timing patterns.Timing
	step   int

	window   *sdl.Window
	renderer *sdl.Renderer
	texture  *sdl.Texture

	pixels []byte
	pitch  int

	// symbol reassembly
	reg      [3]uint16
	numBits  int
	position int

	quit bool
}

// NewSdlPreview is the preferred method of initialisation for the SdlPreview
// type.
func NewSdlPreview(timing patterns.Timing, mode clocks.RateMode, scale int) (*SdlPreview, error) {
	if scale < 1 {
		scale = 1
	}

	scr := &SdlPreview{
		timing: timing,
		step:   mode.BitsPerTick(),
		pitch:  timing.ActiveWidth * pixelDepth,
		pixels: make([]byte, timing.ActiveWidth*timing.ActiveHeight*pixelDepth),
	}

	var err error

	// set up sdl
	err = sdl.Init(sdl.INIT_EVERYTHING)
	if err != nil {
		return nil, curated.Errorf("preview: %v", err)
	}

	scr.window, err = sdl.CreateWindow(windowTitle,
		int32(sdl.WINDOWPOS_UNDEFINED), int32(sdl.WINDOWPOS_UNDEFINED),
		int32(timing.ActiveWidth*scale), int32(timing.ActiveHeight*scale),
		uint32(sdl.WINDOW_SHOWN))
	if err != nil {
		return nil, curated.Errorf("preview: %v", err)
	}

	scr.renderer, err = sdl.CreateRenderer(scr.window, -1, uint32(sdl.RENDERER_ACCELERATED))
	if err != nil {
		return nil, curated.Errorf("preview: %v", err)
	}

	scr.texture, err = scr.renderer.CreateTexture(uint32(sdl.PIXELFORMAT_ABGR8888),
		int(sdl.TEXTUREACCESS_STREAMING),
		int32(timing.ActiveWidth), int32(timing.ActiveHeight))
	if err != nil {
		return nil, curated.Errorf("preview: %v", err)
	}

	scr.renderer.Clear()
	scr.renderer.Present()

	return scr, nil
}

// Destroy the window and the SDL resources behind it.
func (scr *SdlPreview) Destroy() {
	if scr.texture != nil {
		_ = scr.texture.Destroy()
	}
	if scr.renderer != nil {
		_ = scr.renderer.Destroy()
	}
	if scr.window != nil {
		_ = scr.window.Destroy()
	}
	sdl.Quit()
}

// SerialBits implements the dvi.BitReceiver interface.
func (scr *SdlPreview) SerialBits(bits signal.SerialBits) error {
	if scr.quit {
		return curated.Errorf(QuitRequest)
	}

	ch := [3]uint8{bits.Red, bits.Green, bits.Blue}

	for s := 0; s < scr.step; s++ {
		for i := range scr.reg {
			scr.reg[i] |= uint16((ch[i]>>s)&0x01) << scr.numBits
		}
		scr.numBits++
	}

	if scr.numBits < tmds.SymbolBits {
		return nil
	}

	scr.plot()

	scr.reg = [3]uint16{}
	scr.numBits = 0
	scr.position++

	return nil
}

// plot the symbol triplet that has just been reassembled.
func (scr *SdlPreview) plot() {
	x := scr.position % scr.timing.TotalWidth()
	y := scr.position / scr.timing.TotalWidth()
	if x >= scr.timing.ActiveWidth || y >= scr.timing.ActiveHeight {
		return
	}

	r, _, blank := tmds.Decode(tmds.Symbol(scr.reg[0]))
	g, _, _ := tmds.Decode(tmds.Symbol(scr.reg[1]))
	b, _, _ := tmds.Decode(tmds.Symbol(scr.reg[2]))
	if blank {
		// an active position carrying a control token is a coding error but
		// the preview is not the place to report it
		return
	}

	i := (y*scr.timing.ActiveWidth + x) * pixelDepth
	scr.pixels[i] = r
	scr.pixels[i+1] = g
	scr.pixels[i+2] = b
	scr.pixels[i+3] = 255
}

// NewFrame implements the dvi.FrameTrigger interface.
func (scr *SdlPreview) NewFrame() error {
	scr.position = 0

	if err := scr.texture.Update(nil, scr.pixels, scr.pitch); err != nil {
		return curated.Errorf("preview: %v", err)
	}
	if err := scr.renderer.Copy(scr.texture, nil, nil); err != nil {
		return curated.Errorf("preview: %v", err)
	}
	scr.renderer.Present()

	scr.service()

	return nil
}

// service the SDL event queue.
func (scr *SdlPreview) service() {
	for ev := sdl.PollEvent(); ev != nil; ev = sdl.PollEvent() {
		switch ev := ev.(type) {
		case *sdl.QuitEvent:
			scr.quit = true

		case *sdl.KeyboardEvent:
			if ev.Type == sdl.KEYDOWN {
				switch ev.Keysym.Sym {
				case sdl.K_q, sdl.K_ESCAPE:
					scr.quit = true
				}
			}
		}
	}
}
