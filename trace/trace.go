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

// Package trace is a small interactive monitor for the transmitter. The
// pipeline is stepped one shift tick, one pixel or one frame at a time, with
// the state of the serializer printed after every step. The internal state
// of the whole transmitter can be dumped to a graphviz file for closer
// study.
package trace

import (
	"bytes"
	"fmt"
	"os"

	"github.com/bradleyjkemp/memviz"

	"github.com/jetsetilly/dvitx/curated"
	"github.com/jetsetilly/dvitx/hardware/dvi"
)

// name of the file written by the dump command.
const dumpFilename = "dvitx_state.dot"

const help = "s: shift tick  p: pixel  f: frame  d: dump state  h: help  q: quit"

// Trace runs the interactive monitor until the quit key is pressed. The
// controlling terminal is placed in cbreak mode for the duration.
func Trace(tx *dvi.Transmitter) error {
	pt := &terminal{}
	if err := pt.initialise(os.Stdin, os.Stdout); err != nil {
		return err
	}

	pt.cbreakMode()
	defer pt.canonicalMode()

	fmt.Printf("%s\n", help)
	fmt.Printf("%s\n", tx.String())

	for {
		k, err := pt.readKey()
		if err != nil {
			return err
		}

		switch k {
		case 's':
			if _, err := tx.StepShift(); err != nil {
				return err
			}

		case 'p':
			if err := tx.StepPixel(); err != nil {
				return err
			}

		case 'f':
			if err := tx.StepFrame(); err != nil {
				return err
			}

		case 'd':
			if err := dump(tx); err != nil {
				return err
			}
			fmt.Printf("state written to %s\n", dumpFilename)
			continue

		case 'h', '?':
			fmt.Printf("%s\n", help)
			continue

		case 'q':
			return nil

		default:
			continue
		}

		fmt.Printf("%s\n", tx.String())
	}
}

// dump writes the transmitter state to a graphviz file.
func dump(tx *dvi.Transmitter) error {
	b := &bytes.Buffer{}
	memviz.Map(b, tx)

	if err := os.WriteFile(dumpFilename, b.Bytes(), 0644); err != nil {
		return curated.Errorf("trace: %v", err)
	}

	return nil
}
