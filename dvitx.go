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

package main

import (
	"fmt"
	"os"

	"github.com/jetsetilly/dvitx/curated"
	"github.com/jetsetilly/dvitx/digest"
	"github.com/jetsetilly/dvitx/hardware/clocks"
	"github.com/jetsetilly/dvitx/hardware/dvi"
	"github.com/jetsetilly/dvitx/logger"
	"github.com/jetsetilly/dvitx/modalflag"
	"github.com/jetsetilly/dvitx/oracle"
	"github.com/jetsetilly/dvitx/patterns"
	"github.com/jetsetilly/dvitx/performance"
	"github.com/jetsetilly/dvitx/preview"
	"github.com/jetsetilly/dvitx/recorder"
	"github.com/jetsetilly/dvitx/regression"
	"github.com/jetsetilly/dvitx/trace"
	"github.com/jetsetilly/dvitx/version"
)

func main() {
	md := &modalflag.Modes{Output: os.Stdout}
	md.NewArgs(os.Args[1:])
	md.AddSubModes("RUN", "ORACLE", "REGRESS", "PERFORMANCE", "TRACE", "PREVIEW", "VERSION")

	p, err := md.Parse()
	switch p {
	case modalflag.ParseHelp:
		os.Exit(0)
	case modalflag.ParseError:
		fmt.Printf("* error: %v\n", err)
		os.Exit(10)
	}

	switch md.Mode() {
	case "RUN":
		err = run(md)

	case "ORACLE":
		err = verify(md)

	case "REGRESS":
		err = regress(md)

	case "PERFORMANCE":
		err = perform(md)

	case "TRACE":
		err = monitor(md)

	case "PREVIEW":
		err = display(md)

	case "VERSION":
		err = showVersion(md)
	}

	if err != nil {
		fmt.Printf("* error in %s mode: %s\n", md.String(), err)
		os.Exit(20)
	}
}

// newTransmitter builds the pipeline common to several modes from the common
// command line flags.
func newTransmitter(pattern, timingName, modeName string, depth int) (*dvi.Transmitter, patterns.Timing, clocks.RateMode, error) {
	timing, err := patterns.TimingByName(timingName)
	if err != nil {
		return nil, patterns.Timing{}, clocks.SDR, err
	}

	mode, err := clocks.ParseRateMode(modeName)
	if err != nil {
		return nil, patterns.Timing{}, clocks.SDR, err
	}

	src, err := patterns.New(pattern, timing)
	if err != nil {
		return nil, patterns.Timing{}, clocks.SDR, err
	}

	tx, err := dvi.NewTransmitter(src, mode, depth)
	if err != nil {
		return nil, patterns.Timing{}, clocks.SDR, err
	}

	return tx, timing, mode, nil
}

func run(md *modalflag.Modes) error {
	md.NewMode()

	pattern := md.AddString("pattern", "bars", "test pattern: "+patterns.PatternList)
	timing := md.AddString("timing", "640x480", "frame timing")
	modeName := md.AddString("mode", "SDR", "serialization rate: SDR, DDR")
	depth := md.AddInt("depth", 8, "colour depth per channel (1 to 8)")
	frames := md.AddInt("frames", 10, "number of frames to transmit")
	record := md.AddString("record", "", "record the serial stream to file (.gz and .zst compress)")
	log := md.AddBool("log", false, "echo debugging log to stdout")

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	if *log {
		logger.SetEcho(os.Stdout)
	} else {
		logger.SetEcho(nil)
	}

	tx, _, mode, err := newTransmitter(*pattern, *timing, *modeName, *depth)
	if err != nil {
		return err
	}

	dig := digest.NewStream()
	tx.AddBitReceiver(dig)

	if *record != "" {
		rec, err := recorder.Create(*record, mode, *depth)
		if err != nil {
			return err
		}
		defer rec.Close()
		tx.AddBitReceiver(rec)
	}

	if err := tx.RunFrames(*frames); err != nil {
		return err
	}

	fmt.Printf("%d frames, %d pixels, %d words\n", *frames, tx.Pixels(), tx.Pixels()*uint64(mode.Ratio()))
	fmt.Printf("stream digest: %s\n", dig.Hash())

	return nil
}

func verify(md *modalflag.Modes) error {
	md.NewMode()

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	if len(md.RemainingArgs()) != 1 {
		return fmt.Errorf("capture file required for %s mode", md)
	}

	plb, err := recorder.Open(md.GetArg(0))
	if err != nil {
		return err
	}
	defer plb.Close()

	rep, err := oracle.Verify(plb)
	if err != nil {
		fmt.Printf("%s\n", rep)
		return err
	}

	fmt.Printf("ok: %s\n", rep)

	return nil
}

func regress(md *modalflag.Modes) error {
	md.NewMode()
	md.AddSubModes("RUN", "LIST", "ADD", "DELETE")

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	switch md.Mode() {
	case "RUN":
		md.NewMode()

		p, err := md.Parse()
		if err != nil || p != modalflag.ParseContinue {
			return err
		}

		return regression.RegressRun(os.Stdout, md.RemainingArgs())

	case "LIST":
		md.NewMode()

		p, err := md.Parse()
		if err != nil || p != modalflag.ParseContinue {
			return err
		}

		return regression.RegressList(os.Stdout)

	case "ADD":
		md.NewMode()

		pattern := md.AddString("pattern", "bars", "test pattern: "+patterns.PatternList)
		timing := md.AddString("timing", "640x480", "frame timing")
		modeName := md.AddString("mode", "SDR", "serialization rate: SDR, DDR")
		depth := md.AddInt("depth", 8, "colour depth per channel (1 to 8)")
		frames := md.AddInt("frames", 2, "number of frames to transmit")
		capture := md.AddString("capture", "", "add a capture entry for the named file instead")

		p, err := md.Parse()
		if err != nil || p != modalflag.ParseContinue {
			return err
		}

		if *capture != "" {
			return regression.RegressAdd(os.Stdout, &regression.CaptureRegression{Filename: *capture})
		}

		mode, err := clocks.ParseRateMode(*modeName)
		if err != nil {
			return err
		}

		return regression.RegressAdd(os.Stdout, &regression.StreamRegression{
			Pattern:   *pattern,
			Timing:    *timing,
			Mode:      mode,
			Depth:     *depth,
			NumFrames: *frames,
		})

	case "DELETE":
		md.NewMode()

		p, err := md.Parse()
		if err != nil || p != modalflag.ParseContinue {
			return err
		}

		if len(md.RemainingArgs()) != 1 {
			return fmt.Errorf("database key required for %s mode", md)
		}

		return regression.RegressDelete(os.Stdout, os.Stdin, md.GetArg(0))
	}

	return nil
}

func perform(md *modalflag.Modes) error {
	md.NewMode()

	pattern := md.AddString("pattern", "bars", "test pattern: "+patterns.PatternList)
	timingName := md.AddString("timing", "640x480", "frame timing")
	modeName := md.AddString("mode", "SDR", "serialization rate: SDR, DDR")
	depth := md.AddInt("depth", 8, "colour depth per channel (1 to 8)")
	duration := md.AddString("duration", "5s", "duration of the measurement period")
	profile := md.AddString("profile", "none", "profiles to generate: cpu, mem, all")

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	timing, err := patterns.TimingByName(*timingName)
	if err != nil {
		return err
	}

	mode, err := clocks.ParseRateMode(*modeName)
	if err != nil {
		return err
	}

	prf, err := performance.ParseProfile(*profile)
	if err != nil {
		return err
	}

	return performance.Check(os.Stdout, prf, *pattern, timing, mode, *depth, *duration)
}

func monitor(md *modalflag.Modes) error {
	md.NewMode()

	pattern := md.AddString("pattern", "bars", "test pattern: "+patterns.PatternList)
	timing := md.AddString("timing", "640x480", "frame timing")
	modeName := md.AddString("mode", "SDR", "serialization rate: SDR, DDR")
	depth := md.AddInt("depth", 8, "colour depth per channel (1 to 8)")

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	tx, _, _, err := newTransmitter(*pattern, *timing, *modeName, *depth)
	if err != nil {
		return err
	}

	return trace.Trace(tx)
}

func display(md *modalflag.Modes) error {
	md.NewMode()

	pattern := md.AddString("pattern", "bars", "test pattern: "+patterns.PatternList)
	timingName := md.AddString("timing", "640x480", "frame timing")
	modeName := md.AddString("mode", "SDR", "serialization rate: SDR, DDR")
	depth := md.AddInt("depth", 8, "colour depth per channel (1 to 8)")
	scale := md.AddInt("scale", 1, "window scaling")

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	tx, timing, mode, err := newTransmitter(*pattern, *timingName, *modeName, *depth)
	if err != nil {
		return err
	}

	scr, err := preview.NewSdlPreview(timing, mode, *scale)
	if err != nil {
		return err
	}
	defer scr.Destroy()

	tx.AddBitReceiver(scr)

	err = tx.Run(nil)
	if err != nil && curated.Is(err, preview.QuitRequest) {
		return nil
	}

	return err
}

func showVersion(md *modalflag.Modes) error {
	md.NewMode()

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	ver, rev, _ := version.Version()
	fmt.Printf("%s %s (%s)\n", version.ApplicationName, ver, rev)

	return nil
}
