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

package performance_test

import (
	"bytes"
	"runtime"
	"strings"
	"testing"
	"time"

	"github.com/jetsetilly/dvitx/hardware/clocks"
	"github.com/jetsetilly/dvitx/patterns"
	"github.com/jetsetilly/dvitx/performance"
	"github.com/jetsetilly/dvitx/test"
)

func TestParseProfile(t *testing.T) {
	p, err := performance.ParseProfile("none")
	test.ExpectedSuccess(t, err)
	test.Equate(t, int(p), int(performance.ProfileNone))

	p, err = performance.ParseProfile("cpu,mem")
	test.ExpectedSuccess(t, err)
	test.Equate(t, int(p), int(performance.ProfileAll))

	_, err = performance.ParseProfile("gpu")
	test.ExpectedFailure(t, err)
}

func TestCheck(t *testing.T) {
	if testing.Short() {
		t.Skip("performance check has a fixed leadtime")
	}

	numGoroutines := runtime.NumGoroutine()

	output := &bytes.Buffer{}
	err := performance.Check(output, performance.ProfileNone,
		"bars", patterns.TestCard, clocks.SDR, 8, "250ms")
	test.ExpectedSuccess(t, err)
	test.ExpectedSuccess(t, strings.Contains(output.String(), "fps"))

	// both timer signals must have been delivered and the run loop must not
	// have left a sender behind
	leaked := true
	for i := 0; i < 100; i++ {
		if runtime.NumGoroutine() <= numGoroutines {
			leaked = false
			break // for loop
		}
		time.Sleep(10 * time.Millisecond)
	}
	test.Equate(t, leaked, false)
}
