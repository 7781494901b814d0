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

package regression_test

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jetsetilly/dvitx/hardware/clocks"
	"github.com/jetsetilly/dvitx/hardware/dvi"
	"github.com/jetsetilly/dvitx/patterns"
	"github.com/jetsetilly/dvitx/recorder"
	"github.com/jetsetilly/dvitx/regression"
	"github.com/jetsetilly/dvitx/test"
)

// point the database at a temporary file for the duration of the test.
func tempDB(t *testing.T) {
	t.Helper()
	prev := regression.DBPath
	regression.DBPath = filepath.Join(t.TempDir(), "regressionDB")
	t.Cleanup(func() { regression.DBPath = prev })
}

func TestStreamRegression(t *testing.T) {
	tempDB(t)

	output := &bytes.Buffer{}

	reg := &regression.StreamRegression{
		Pattern:   "bars",
		Timing:    "testcard",
		Mode:      clocks.SDR,
		Depth:     8,
		NumFrames: 2,
	}

	err := regression.RegressAdd(output, reg)
	test.ExpectedSuccess(t, err)

	// entry survives a round-trip through the database file
	output.Reset()
	err = regression.RegressList(output)
	test.ExpectedSuccess(t, err)
	test.ExpectedSuccess(t, strings.Contains(output.String(), "bars"))
	test.ExpectedSuccess(t, strings.Contains(output.String(), "Total: 1"))

	output.Reset()
	err = regression.RegressRun(output, nil)
	test.ExpectedSuccess(t, err)
	test.ExpectedSuccess(t, strings.Contains(output.String(), "1 succeed, 0 fail"))
}

// the default database path has a directory portion that will not exist on
// first use. an add must create it and the database file must exist on disk
// once the add has reported success
func TestDefaultDBPathCreated(t *testing.T) {
	wd, err := os.Getwd()
	test.ExpectedSuccess(t, err)
	test.ExpectedSuccess(t, os.Chdir(t.TempDir()))
	t.Cleanup(func() { _ = os.Chdir(wd) })

	output := &bytes.Buffer{}

	reg := &regression.StreamRegression{
		Pattern:   "black",
		Timing:    "testcard",
		Mode:      clocks.SDR,
		Depth:     8,
		NumFrames: 1,
	}
	test.ExpectedSuccess(t, regression.RegressAdd(output, reg))
	test.ExpectedSuccess(t, strings.Contains(output.String(), "added:"))

	_, err = os.Stat(regression.DBPath)
	test.ExpectedSuccess(t, err)
}

func TestCaptureRegression(t *testing.T) {
	tempDB(t)

	fn := filepath.Join(t.TempDir(), "capture.dvitx.gz")

	src := patterns.NewRamp(patterns.TestCard)
	tx, err := dvi.NewTransmitter(src, clocks.DDR, 8)
	test.ExpectedSuccess(t, err)

	rec, err := recorder.Create(fn, clocks.DDR, 8)
	test.ExpectedSuccess(t, err)
	tx.AddBitReceiver(rec)

	test.ExpectedSuccess(t, tx.RunFrames(1))
	test.ExpectedSuccess(t, rec.Close())

	output := &bytes.Buffer{}
	err = regression.RegressAdd(output, &regression.CaptureRegression{Filename: fn})
	test.ExpectedSuccess(t, err)

	output.Reset()
	err = regression.RegressRun(output, nil)
	test.ExpectedSuccess(t, err)
	test.ExpectedSuccess(t, strings.Contains(output.String(), "1 succeed, 0 fail"))
}

func TestRegressDelete(t *testing.T) {
	tempDB(t)

	output := &bytes.Buffer{}

	reg := &regression.StreamRegression{
		Pattern:   "black",
		Timing:    "testcard",
		Mode:      clocks.SDR,
		Depth:     8,
		NumFrames: 1,
	}
	test.ExpectedSuccess(t, regression.RegressAdd(output, reg))

	// a negative response leaves the entry in place
	err := regression.RegressDelete(output, strings.NewReader("n\n"), "0")
	test.ExpectedSuccess(t, err)

	output.Reset()
	test.ExpectedSuccess(t, regression.RegressList(output))
	test.ExpectedSuccess(t, strings.Contains(output.String(), "Total: 1"))

	err = regression.RegressDelete(output, strings.NewReader("y\n"), "0")
	test.ExpectedSuccess(t, err)

	output.Reset()
	test.ExpectedSuccess(t, regression.RegressList(output))
	test.ExpectedSuccess(t, strings.Contains(output.String(), "database is empty"))

	// deleting a key that does not exist is an error
	err = regression.RegressDelete(output, strings.NewReader("y\n"), "99")
	test.ExpectedFailure(t, err)
}
