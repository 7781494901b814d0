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

package performance

import (
	"os"
	"runtime"
	"runtime/pprof"
	"strings"

	"github.com/jetsetilly/dvitx/curated"
)

// Profile is used to specify the type of profiles to generate.
type Profile int

// List of valid Profile values.
const (
	ProfileNone Profile = 0
	ProfileCPU  Profile = 1 << iota
	ProfileMem
	ProfileAll = ProfileCPU | ProfileMem
)

// ParseProfile converts a string of profile names, separated by commas, to a
// Profile value.
func ParseProfile(s string) (Profile, error) {
	p := ProfileNone

	for _, f := range strings.Split(s, ",") {
		switch strings.ToLower(strings.TrimSpace(f)) {
		case "none", "":
			// leave profile unchanged
		case "cpu":
			p |= ProfileCPU
		case "mem":
			p |= ProfileMem
		case "all":
			p = ProfileAll
		default:
			return ProfileNone, curated.Errorf("profiling: unrecognised profile (%s)", f)
		}
	}

	return p, nil
}

// RunProfiler runs the supplied function, generating the requested profile
// types. The tag is used to build the profile filenames.
func RunProfiler(profile Profile, tag string, run func() error) error {
	if profile&ProfileCPU == ProfileCPU {
		f, err := os.Create(tag + "_cpu.profile")
		if err != nil {
			return curated.Errorf("profiling: %v", err)
		}
		defer f.Close()

		if err := pprof.StartCPUProfile(f); err != nil {
			return curated.Errorf("profiling: %v", err)
		}
		defer pprof.StopCPUProfile()
	}

	err := run()
	if err != nil {
		return err
	}

	if profile&ProfileMem == ProfileMem {
		f, err := os.Create(tag + "_mem.profile")
		if err != nil {
			return curated.Errorf("profiling: %v", err)
		}
		defer f.Close()

		runtime.GC()
		if err := pprof.WriteHeapProfile(f); err != nil {
			return curated.Errorf("profiling: %v", err)
		}
	}

	return nil
}
