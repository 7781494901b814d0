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
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/jetsetilly/dvitx/curated"
	"github.com/jetsetilly/dvitx/hardware/clocks"
	"github.com/jetsetilly/dvitx/hardware/dvi"
	"github.com/jetsetilly/dvitx/patterns"
	"github.com/jetsetilly/dvitx/statsview"
)

// sentinal error returned by the Run() loop.
var timedOut = errors.New("performance timed out")

// number of pixels to step between checks of the timer channel. checking a
// channel is relatively expensive so we don't do it on every pixel.
const performanceBrake = 1000

// Check the performance of the transmitter pipeline.
//
// The pipeline will run for the specified duration and will create a cpu
// and/or memory profile as defined by the Profile argument.
func Check(output io.Writer, profile Profile, pattern string, timing patterns.Timing, mode clocks.RateMode, depth int, duration string) error {
	src, err := patterns.New(pattern, timing)
	if err != nil {
		return err
	}

	tx, err := dvi.NewTransmitter(src, mode, depth)
	if err != nil {
		return err
	}

	// parse supplied duration
	dur, err := time.ParseDuration(duration)
	if err != nil {
		return curated.Errorf("performance: %v", err)
	}

	statsview.Launch(output)

	// the number of pixels transmitted before the measurement period began
	var startPixels uint64

	runner := func() error {
		// timerChan signals false at the end of the leadtime and true at the
		// end of the measurement period. buffered for both signals so the
		// timer callbacks can never block on a run loop that has already
		// returned
		timerChan := make(chan bool, 2)

		// a two second leadtime allows the go runtime to settle down before
		// measurement begins
		go func() {
			time.AfterFunc(2*time.Second, func() {
				timerChan <- false
				time.AfterFunc(dur, func() {
					timerChan <- true
				})
			})
		}()

		brake := 0

		return tx.Run(func() (bool, error) {
			brake++
			if brake >= performanceBrake {
				brake = 0

				select {
				case v := <-timerChan:
					if v {
						return false, timedOut
					}
					startPixels = tx.Pixels()
				default:
				}
			}
			return true, nil
		})
	}

	err = RunProfiler(profile, "performance", runner)
	if err != nil && !errors.Is(err, timedOut) {
		return curated.Errorf("performance: %v", err)
	}

	numPixels := tx.Pixels() - startPixels
	numWords := numPixels * uint64(mode.Ratio())

	pixelsPerFrame := uint64(timing.PixelsPerFrame())
	fps := float64(numPixels) / float64(pixelsPerFrame) / dur.Seconds()

	fmt.Fprintf(output, "%.2f fps (%d pixels, %d words in %.2f seconds)\n",
		fps, numPixels, numWords, dur.Seconds())

	return nil
}
