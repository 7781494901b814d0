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

package regression

import (
	"fmt"
	"io"
	"strconv"

	"github.com/jetsetilly/dvitx/curated"
	"github.com/jetsetilly/dvitx/database"
	"github.com/jetsetilly/dvitx/digest"
	"github.com/jetsetilly/dvitx/hardware/clocks"
	"github.com/jetsetilly/dvitx/hardware/dvi"
	"github.com/jetsetilly/dvitx/patterns"
)

const streamEntryID = "stream"

const (
	streamFieldPattern int = iota
	streamFieldTiming
	streamFieldMode
	streamFieldDepth
	streamFieldNumFrames
	streamFieldDigest
	numStreamFields
)

// StreamRegression runs a pattern generator through the transmitter and
// compares the stream digest with the recorded reference.
type StreamRegression struct {
	Pattern   string
	Timing    string
	Mode      clocks.RateMode
	Depth     int
	NumFrames int

	streamDigest string
}

func deserialiseStreamEntry(fields []string) (database.Entry, error) {
	if len(fields) != numStreamFields {
		return nil, curated.Errorf("stream regression: wrong number of fields")
	}

	reg := &StreamRegression{
		Pattern:      fields[streamFieldPattern],
		Timing:       fields[streamFieldTiming],
		streamDigest: fields[streamFieldDigest],
	}

	var err error

	reg.Mode, err = clocks.ParseRateMode(fields[streamFieldMode])
	if err != nil {
		return nil, err
	}

	reg.Depth, err = strconv.Atoi(fields[streamFieldDepth])
	if err != nil {
		return nil, curated.Errorf("stream regression: invalid depth field (%s)", fields[streamFieldDepth])
	}

	reg.NumFrames, err = strconv.Atoi(fields[streamFieldNumFrames])
	if err != nil {
		return nil, curated.Errorf("stream regression: invalid frames field (%s)", fields[streamFieldNumFrames])
	}

	return reg, nil
}

// ID implements the database.Entry interface.
func (reg *StreamRegression) ID() string {
	return streamEntryID
}

func (reg *StreamRegression) String() string {
	return fmt.Sprintf("[%s] %s %s %s depth=%d frames=%d", reg.ID(),
		reg.Pattern, reg.Timing, reg.Mode, reg.Depth, reg.NumFrames)
}

// Serialise implements the database.Entry interface.
func (reg *StreamRegression) Serialise() (database.SerialisedEntry, error) {
	return database.SerialisedEntry{
		reg.Pattern,
		reg.Timing,
		reg.Mode.String(),
		strconv.Itoa(reg.Depth),
		strconv.Itoa(reg.NumFrames),
		reg.streamDigest,
	}, nil
}

// CleanUp implements the database.Entry interface.
func (reg *StreamRegression) CleanUp() error {
	return nil
}

func (reg *StreamRegression) regress(newRegression bool, _ io.Writer) (bool, error) {
	timing, err := patterns.TimingByName(reg.Timing)
	if err != nil {
		return false, err
	}

	src, err := patterns.New(reg.Pattern, timing)
	if err != nil {
		return false, err
	}

	tx, err := dvi.NewTransmitter(src, reg.Mode, reg.Depth)
	if err != nil {
		return false, err
	}

	dig := digest.NewStream()
	tx.AddBitReceiver(dig)

	if err := tx.RunFrames(reg.NumFrames); err != nil {
		return false, err
	}

	if newRegression {
		reg.streamDigest = dig.Hash()
		return true, nil
	}

	return dig.Hash() == reg.streamDigest, nil
}
