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

package trace

import (
	"os"

	"github.com/pkg/term/termios"
	"golang.org/x/sys/unix"

	"github.com/jetsetilly/dvitx/curated"
)

// terminal is a thin wrapper around "github.com/pkg/term/termios", switching
// the controlling terminal between canonical and cbreak modes.
type terminal struct {
	input  *os.File
	output *os.File

	canAttr    unix.Termios
	cbreakAttr unix.Termios
}

func (pt *terminal) initialise(input, output *os.File) error {
	if input == nil || output == nil {
		return curated.Errorf("trace: terminal requires input and output files")
	}

	pt.input = input
	pt.output = output

	if err := termios.Tcgetattr(pt.input.Fd(), &pt.canAttr); err != nil {
		return curated.Errorf("trace: %v", err)
	}

	pt.cbreakAttr = pt.canAttr
	termios.Cfmakecbreak(&pt.cbreakAttr)

	return nil
}

// canonicalMode puts terminal into normal, everyday canonical mode.
func (pt *terminal) canonicalMode() {
	_ = termios.Tcsetattr(pt.input.Fd(), termios.TCIFLUSH, &pt.canAttr)
}

// cbreakMode puts terminal into cbreak mode, input is available one key at a
// time without echo.
func (pt *terminal) cbreakMode() {
	_ = termios.Tcsetattr(pt.input.Fd(), termios.TCIFLUSH, &pt.cbreakAttr)
}

// readKey blocks until a single key is available.
func (pt *terminal) readKey() (byte, error) {
	k := make([]byte, 1)
	if _, err := pt.input.Read(k); err != nil {
		return 0, curated.Errorf("trace: %v", err)
	}
	return k[0], nil
}
