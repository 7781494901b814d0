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

// Package modalflag layers a simple sub-mode system on top of the flag
// package in the standard library. A mode is a command line argument that
// selects a branch of the program, each branch with its own set of flags
// and possibly further sub-modes.
//
// The basic pattern is:
//
//	md := &modalflag.Modes{Output: os.Stdout}
//	md.NewArgs(os.Args[1:])
//	md.AddSubModes("RUN", "ORACLE")
//
//	p, err := md.Parse()
//	// handle p and err
//
//	switch md.Mode() {
//	case "RUN":
//		...
//	}
//
// After a mode has been selected, NewMode() prepares the Modes instance for
// the flags of that mode and Parse() is called again.
package modalflag
