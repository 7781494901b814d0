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

package digest

import (
	"encoding/binary"
	"fmt"

	"github.com/cespare/xxhash/v2"
	"github.com/jetsetilly/dvitx/hardware/signal"
)

// Stream is an implementation of the dvi.BitReceiver interface. It hashes
// every word of the serial stream, one packed byte per word, and produces a
// new fingerprint at every frame boundary. It does not store or display the
// stream anywhere.
//
// Note that xxhash is fine for this application because this is not a
// cryptographic task.
type Stream struct {
	hash     *xxhash.Digest
	sum      uint64
	frameNum int
}

// NewStream is the preferred method of initialisation for the Stream type.
func NewStream() *Stream {
	dig := &Stream{hash: xxhash.New()}
	dig.ResetDigest()
	return dig
}

// Hash implements the Digest interface.
func (dig *Stream) Hash() string {
	return fmt.Sprintf("%016x", dig.sum)
}

// ResetDigest implements the Digest interface.
func (dig *Stream) ResetDigest() {
	dig.sum = 0
	dig.frameNum = 0
	dig.hash.Reset()
}

// NewFrame implements the dvi.FrameTrigger interface. The fingerprint of the
// finished frame becomes the seed of the next frame, chaining the frames
// together.
func (dig *Stream) NewFrame() error {
	dig.sum = dig.hash.Sum64()
	dig.frameNum++

	dig.hash.Reset()
	var chain [8]byte
	binary.BigEndian.PutUint64(chain[:], dig.sum)
	if _, err := dig.hash.Write(chain[:]); err != nil {
		return err
	}

	return nil
}

// SerialBits implements the dvi.BitReceiver interface.
func (dig *Stream) SerialBits(bits signal.SerialBits) error {
	_, err := dig.hash.Write([]byte{bits.Pack()})
	return err
}
