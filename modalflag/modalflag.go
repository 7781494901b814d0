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

package modalflag

import (
	"flag"
	"fmt"
	"io"
	"strings"
)

const modeSeparator = "/"

// Modes provides a convenient way of handling sub-moded command line
// arguments. The Output field should be specified before calling Parse() or
// help messages will not be visible.
type Modes struct {
	// where to print output (help messages etc). defaults to io.Discard
	Output io.Writer

	// the underlying flag structure. a new flagset is created on every call
	// to NewArgs() and NewMode()
	flags *flag.FlagSet

	// the argument list as specified by the NewArgs() function and an index
	// into it, advanced when a sub-mode argument is consumed
	args    []string
	argsIdx int

	// the list of sub-modes specified since the last NewMode()
	subModes []string

	// the series of sub-modes found over subsequent calls to Parse(). never
	// reset
	path []string

	// additional verbose help for the current mode
	additionalHelp string
}

func (md *Modes) String() string {
	return md.Path()
}

// Mode returns the last mode to be encountered.
func (md *Modes) Mode() string {
	if len(md.path) == 0 {
		return ""
	}
	return md.path[len(md.path)-1]
}

// Path returns a string of all the modes encountered during parsing.
func (md *Modes) Path() string {
	return strings.Join(md.path, modeSeparator)
}

// NewArgs initialises the Modes instance with a list of arguments (from the
// command line for example).
func (md *Modes) NewArgs(args []string) {
	md.args = args
	md.argsIdx = 0

	// by definition, a newly initialised Modes struct begins with a new mode
	md.NewMode()
}

// NewMode indicates that further arguments should be considered part of a
// new mode.
func (md *Modes) NewMode() {
	md.subModes = md.subModes[:0]
	md.flags = flag.NewFlagSet("", flag.ContinueOnError)
	md.additionalHelp = ""
}

// AdditionalHelp adds extended help text, displayed in addition to the
// regular help on available flags.
func (md *Modes) AdditionalHelp(help string) {
	md.additionalHelp = help
}

// ParseResult is returned from the Parse() function.
type ParseResult int

// Valid ParseResult values.
const (
	// Continue with command line processing. If sub-modes were specified
	// before the call to Parse() then the Mode() function should be checked.
	ParseContinue ParseResult = iota

	// Help was requested and has been printed.
	ParseHelp

	// An error has occurred and is returned as the second return value.
	ParseError
)

// Parse the current layer of arguments. Help messages are handled by the
// function; the ParseHelp return value indicates that nothing further needs
// to be displayed to the user.
func (md *Modes) Parse() (ParseResult, error) {
	output := md.Output
	if output == nil {
		output = io.Discard
	}

	// the flag package wants to write usage information itself. capture it
	// so that it only appears when help has actually been requested
	usage := &strings.Builder{}
	md.flags.SetOutput(usage)

	err := md.flags.Parse(md.args[md.argsIdx:])
	if err != nil {
		if err == flag.ErrHelp {
			md.printHelp(output, usage.String())
			return ParseHelp, nil
		}
		return ParseError, err
	}

	if len(md.subModes) > 0 {
		arg := strings.ToUpper(md.flags.Arg(0))

		// check to see if the first argument is in the list of sub-modes. if
		// it isn't then the first listed sub-mode is the default
		mode := md.subModes[0]
		for i := range md.subModes {
			if md.subModes[i] == arg {
				mode = arg
				md.argsIdx += md.numParsed() + 1
				break // for loop
			}
		}

		md.path = append(md.path, mode)
	}

	return ParseContinue, nil
}

// the number of arguments consumed by the flags of the most recent Parse().
func (md *Modes) numParsed() int {
	return len(md.args[md.argsIdx:]) - md.flags.NArg()
}

func (md *Modes) printHelp(output io.Writer, usage string) {
	if len(md.subModes) > 0 {
		fmt.Fprintf(output, "available sub-modes for %s: %s\n", md.Path(), strings.Join(md.subModes, ", "))
		fmt.Fprintf(output, "    default: %s\n", md.subModes[0])
	}
	if usage != "" {
		fmt.Fprint(output, usage)
	}
	if md.additionalHelp != "" {
		fmt.Fprintf(output, "\n%s\n", md.additionalHelp)
	}
}

// RemainingArgs returns the arguments that are not flags or a listed
// sub-mode, after a call to Parse().
func (md *Modes) RemainingArgs() []string {
	return md.flags.Args()
}

// GetArg returns the numbered argument that isn't a flag or listed sub-mode.
func (md *Modes) GetArg(i int) string {
	return md.flags.Arg(i)
}

// AddSubModes adds to the list of sub-modes for the next call to Parse().
// The first sub-mode in the list is the default sub-mode. Sub-mode
// comparisons are case insensitive.
func (md *Modes) AddSubModes(submodes ...string) {
	for _, s := range submodes {
		md.subModes = append(md.subModes, strings.ToUpper(s))
	}
}

// AddBool flag for next call to Parse().
func (md *Modes) AddBool(name string, value bool, usage string) *bool {
	return md.flags.Bool(name, value, usage)
}

// AddInt flag for next call to Parse().
func (md *Modes) AddInt(name string, value int, usage string) *int {
	return md.flags.Int(name, value, usage)
}

// AddString flag for next call to Parse().
func (md *Modes) AddString(name string, value string, usage string) *string {
	return md.flags.String(name, value, usage)
}
