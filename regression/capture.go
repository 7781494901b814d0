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
	"github.com/jetsetilly/dvitx/oracle"
	"github.com/jetsetilly/dvitx/recorder"
)

const captureEntryID = "capture"

const (
	captureFieldFilename int = iota
	captureFieldNumWords
	numCaptureFields
)

// CaptureRegression checks a capture file against the channel coding rules.
// The number of words in the capture is recorded when the entry is added,
// guarding against the file being truncated or replaced.
type CaptureRegression struct {
	Filename string

	numWords int
}

func deserialiseCaptureEntry(fields []string) (database.Entry, error) {
	if len(fields) != numCaptureFields {
		return nil, curated.Errorf("capture regression: wrong number of fields")
	}

	reg := &CaptureRegression{Filename: fields[captureFieldFilename]}

	var err error

	reg.numWords, err = strconv.Atoi(fields[captureFieldNumWords])
	if err != nil {
		return nil, curated.Errorf("capture regression: invalid words field (%s)", fields[captureFieldNumWords])
	}

	return reg, nil
}

// ID implements the database.Entry interface.
func (reg *CaptureRegression) ID() string {
	return captureEntryID
}

func (reg *CaptureRegression) String() string {
	return fmt.Sprintf("[%s] %s words=%d", reg.ID(), reg.Filename, reg.numWords)
}

// Serialise implements the database.Entry interface.
func (reg *CaptureRegression) Serialise() (database.SerialisedEntry, error) {
	return database.SerialisedEntry{
		reg.Filename,
		strconv.Itoa(reg.numWords),
	}, nil
}

// CleanUp implements the database.Entry interface. The capture file is left
// in place; it belongs to the user, not to the database.
func (reg *CaptureRegression) CleanUp() error {
	return nil
}

func (reg *CaptureRegression) regress(newRegression bool, _ io.Writer) (bool, error) {
	plb, err := recorder.Open(reg.Filename)
	if err != nil {
		return false, err
	}
	defer plb.Close()

	rep, err := oracle.Verify(plb)
	if err != nil {
		return false, err
	}

	if newRegression {
		reg.numWords = rep.Words
		return true, nil
	}

	return rep.Words == reg.numWords, nil
}
