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

package modalflag_test

import (
	"testing"

	"github.com/jetsetilly/dvitx/modalflag"
	"github.com/jetsetilly/dvitx/test"
)

func TestNoModes(t *testing.T) {
	md := &modalflag.Modes{}
	md.NewArgs([]string{})

	p, err := md.Parse()
	test.ExpectedSuccess(t, err)
	test.Equate(t, int(p), int(modalflag.ParseContinue))
	test.Equate(t, md.Mode(), "")
}

func TestDefaultSubMode(t *testing.T) {
	md := &modalflag.Modes{}
	md.NewArgs([]string{})
	md.AddSubModes("RUN", "ORACLE")

	p, err := md.Parse()
	test.ExpectedSuccess(t, err)
	test.Equate(t, int(p), int(modalflag.ParseContinue))
	test.Equate(t, md.Mode(), "RUN")
}

func TestSubModeSelection(t *testing.T) {
	md := &modalflag.Modes{}
	md.NewArgs([]string{"oracle", "capture.dvitx"})
	md.AddSubModes("RUN", "ORACLE")

	p, err := md.Parse()
	test.ExpectedSuccess(t, err)
	test.Equate(t, int(p), int(modalflag.ParseContinue))
	test.Equate(t, md.Mode(), "ORACLE")

	// the sub-mode argument has been consumed. the remaining argument is
	// available to the next layer
	md.NewMode()
	p, err = md.Parse()
	test.ExpectedSuccess(t, err)
	test.Equate(t, int(p), int(modalflag.ParseContinue))
	test.Equate(t, md.GetArg(0), "capture.dvitx")
}

func TestFlags(t *testing.T) {
	md := &modalflag.Modes{}
	md.NewArgs([]string{"-frames", "5", "-pattern", "ramp"})

	frames := md.AddInt("frames", 1, "number of frames")
	pattern := md.AddString("pattern", "bars", "test pattern")

	p, err := md.Parse()
	test.ExpectedSuccess(t, err)
	test.Equate(t, int(p), int(modalflag.ParseContinue))
	test.Equate(t, *frames, 5)
	test.Equate(t, *pattern, "ramp")
}

func TestUnrecognisedFlag(t *testing.T) {
	md := &modalflag.Modes{}
	md.NewArgs([]string{"-no-such-flag"})

	p, err := md.Parse()
	test.ExpectedFailure(t, err)
	test.Equate(t, int(p), int(modalflag.ParseError))
}

func TestModePath(t *testing.T) {
	md := &modalflag.Modes{}
	md.NewArgs([]string{"regress", "run"})
	md.AddSubModes("RUN", "REGRESS")

	_, err := md.Parse()
	test.ExpectedSuccess(t, err)
	test.Equate(t, md.Mode(), "REGRESS")

	md.NewMode()
	md.AddSubModes("RUN", "ADD", "DELETE", "LIST")
	_, err = md.Parse()
	test.ExpectedSuccess(t, err)
	test.Equate(t, md.Mode(), "RUN")
	test.Equate(t, md.Path(), "REGRESS/RUN")
}
