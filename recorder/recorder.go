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

// Package recorder captures the serial bit stream to a file and plays it back
// again. One byte is written per shift tick, each byte holding the two bits
// of the three colour channels and of the clock channel for that tick.
//
// A capture of more than a few frames is highly repetitive so files are
// transparently compressed. The compression method is selected by the file
// extension: ".gz" for gzip, ".zst" for zstandard, anything else is stored
// raw.
package recorder

import (
	"io"
	"os"
	"strings"

	"github.com/jetsetilly/dvitx/curated"
	"github.com/jetsetilly/dvitx/hardware/clocks"
	"github.com/jetsetilly/dvitx/hardware/signal"
	"github.com/jetsetilly/dvitx/logger"
	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
)

// Sentinal error patterns returned by functions in the recorder package.
const (
	RecordingError = "recorder: %v"
	PlaybackError  = "playback: %v"
)

// header laid down at the start of every capture file.
const (
	magic         = "DVITX"
	formatVersion = 1
	headerLen     = len(magic) + 3
)

// Recorder is an implementation of the dvi.BitReceiver interface. Every word
// of the serial stream is appended to the capture file.
type Recorder struct {
	output io.Writer

	// the innermost writers that need closing, in close order
	closers []io.Closer
}

// NewRecorder writes a capture stream to an existing io.Writer. The header is
// written immediately.
func NewRecorder(output io.Writer, mode clocks.RateMode, depth int) (*Recorder, error) {
	rec := &Recorder{output: output}

	hdr := append([]byte(magic), formatVersion, byte(mode), byte(depth))
	if _, err := rec.output.Write(hdr); err != nil {
		return nil, curated.Errorf(RecordingError, err)
	}

	return rec, nil
}

// Create a capture file. The compression method is chosen according to the
// file extension.
func Create(filename string, mode clocks.RateMode, depth int) (*Recorder, error) {
	f, err := os.Create(filename)
	if err != nil {
		return nil, curated.Errorf(RecordingError, err)
	}

	var w io.Writer = f
	closers := []io.Closer{f}

	switch {
	case strings.HasSuffix(filename, ".gz"):
		gz := gzip.NewWriter(f)
		w = gz
		closers = []io.Closer{gz, f}
	case strings.HasSuffix(filename, ".zst"):
		zs, err := zstd.NewWriter(f)
		if err != nil {
			_ = f.Close()
			return nil, curated.Errorf(RecordingError, err)
		}
		w = zs
		closers = []io.Closer{zs, f}
	}

	rec, err := NewRecorder(w, mode, depth)
	if err != nil {
		for _, c := range closers {
			_ = c.Close()
		}
		return nil, err
	}
	rec.closers = closers

	logger.Logf("recorder", "recording to %s (%s depth=%d)", filename, mode, depth)

	return rec, nil
}

// SerialBits implements the dvi.BitReceiver interface.
func (rec *Recorder) SerialBits(bits signal.SerialBits) error {
	if _, err := rec.output.Write([]byte{bits.Pack()}); err != nil {
		return curated.Errorf(RecordingError, err)
	}
	return nil
}

// Close the capture, flushing any compression buffers. Must be called for
// compressed captures to be valid.
func (rec *Recorder) Close() error {
	for _, c := range rec.closers {
		if err := c.Close(); err != nil {
			return curated.Errorf(RecordingError, err)
		}
	}
	rec.closers = nil
	return nil
}
