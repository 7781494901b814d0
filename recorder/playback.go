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

package recorder

import (
	"bufio"
	"io"
	"os"
	"strings"

	"github.com/jetsetilly/dvitx/curated"
	"github.com/jetsetilly/dvitx/hardware/clocks"
	"github.com/jetsetilly/dvitx/hardware/signal"
	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
)

// Playback reads a capture stream word by word.
type Playback struct {
	input *bufio.Reader

	mode  clocks.RateMode
	depth int

	closers []io.Closer
}

// NewPlayback reads a capture stream from an existing io.Reader. The header
// is read and validated immediately.
func NewPlayback(input io.Reader) (*Playback, error) {
	plb := &Playback{input: bufio.NewReader(input)}

	hdr := make([]byte, headerLen)
	if _, err := io.ReadFull(plb.input, hdr); err != nil {
		return nil, curated.Errorf(PlaybackError, err)
	}

	if string(hdr[:len(magic)]) != magic {
		return nil, curated.Errorf(PlaybackError, "not a capture file")
	}
	if hdr[len(magic)] != formatVersion {
		return nil, curated.Errorf(PlaybackError, "unsupported capture version")
	}

	plb.mode = clocks.RateMode(hdr[len(magic)+1])
	plb.depth = int(hdr[len(magic)+2])

	if !plb.mode.IsValid() {
		return nil, curated.Errorf(PlaybackError, "bad rate mode in capture header")
	}
	if plb.depth < 1 || plb.depth > 8 {
		return nil, curated.Errorf(PlaybackError, "bad colour depth in capture header")
	}

	return plb, nil
}

// Open a capture file previously written with Create. Decompression is
// chosen according to the file extension, as it is when recording.
func Open(filename string) (*Playback, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, curated.Errorf(PlaybackError, err)
	}

	var r io.Reader = f
	closers := []io.Closer{f}

	switch {
	case strings.HasSuffix(filename, ".gz"):
		gz, err := gzip.NewReader(f)
		if err != nil {
			_ = f.Close()
			return nil, curated.Errorf(PlaybackError, err)
		}
		r = gz
		closers = []io.Closer{gz, f}
	case strings.HasSuffix(filename, ".zst"):
		zs, err := zstd.NewReader(f)
		if err != nil {
			_ = f.Close()
			return nil, curated.Errorf(PlaybackError, err)
		}
		rc := zs.IOReadCloser()
		r = rc
		closers = []io.Closer{rc, f}
	}

	plb, err := NewPlayback(r)
	if err != nil {
		for _, c := range closers {
			_ = c.Close()
		}
		return nil, err
	}
	plb.closers = closers

	return plb, nil
}

// Mode returns the rate mode recorded in the capture header.
func (plb *Playback) Mode() clocks.RateMode {
	return plb.mode
}

// Depth returns the colour depth recorded in the capture header.
func (plb *Playback) Depth() int {
	return plb.depth
}

// NextBits returns the next word of the capture. Returns io.EOF, undecorated,
// at the end of the stream.
func (plb *Playback) NextBits() (signal.SerialBits, error) {
	b, err := plb.input.ReadByte()
	if err != nil {
		if err == io.EOF {
			return signal.SerialBits{}, io.EOF
		}
		return signal.SerialBits{}, curated.Errorf(PlaybackError, err)
	}
	return signal.Unpack(b), nil
}

// Close the playback.
func (plb *Playback) Close() error {
	for _, c := range plb.closers {
		if err := c.Close(); err != nil {
			return curated.Errorf(PlaybackError, err)
		}
	}
	plb.closers = nil
	return nil
}
