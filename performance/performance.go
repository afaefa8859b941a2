// This file is part of NightDriver-Pi.
//
// NightDriver-Pi is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// NightDriver-Pi is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with NightDriver-Pi.  If not, see <https://www.gnu.org/licenses/>.

package performance

import (
	"fmt"
	"io"
	"time"

	"github.com/rbergen/NightDriver-Pi/curated"
	"github.com/rbergen/NightDriver-Pi/display"
	"github.com/rbergen/NightDriver-Pi/ledbuffer"
	"github.com/rbergen/NightDriver-Pi/matrixdraw"
)

// Check the performance of the draw loop against the supplied matrix.
//
// A synthetic producer stands in for the network master, generating frames
// at the requested rate. The loop will run for the specified duration and
// will create a cpu profile, a memory profile (or a combination of those)
// as defined by the Profile argument.
func Check(output io.Writer, profile Profile, matrix display.Matrix, hz float64, duration string) error {
	if hz <= 0 {
		return curated.Errorf("performance: frame rate must be positive (%f)", hz)
	}

	dur, err := time.ParseDuration(duration)
	if err != nil {
		return curated.Errorf("performance: %v", err)
	}

	mgr := ledbuffer.NewManager(ledbuffer.DefaultMaxBuffers)
	rnd := matrixdraw.NewRenderer()
	sch := matrixdraw.NewScheduler(rnd)

	if _, ok := matrix.(display.Swapper); ok {
		sch.SetSwapOnVSync(true)
	}

	// the producer generates frames at the requested rate, each due the
	// moment it is pushed. it ends with the measurement timer
	interval := time.Duration(float64(time.Second) / hz)
	producerEnd := make(chan bool)
	go func() {
		pixels := make([]uint8, matrix.Width()*matrix.Height()*3)
		tick := time.NewTicker(interval)
		defer tick.Stop()

		var frame uint8
		for {
			select {
			case <-producerEnd:
				return
			case <-tick.C:
			}

			// a color ramp that shifts every frame. cheap to generate and
			// obviously animated if a window is attached
			frame++
			for i := range pixels {
				pixels[i] = uint8(i) + frame
			}

			buf, err := ledbuffer.NewBuffer(time.Now(), pixels)
			if err != nil {
				return
			}
			mgr.PushNewestBuffer(buf)
		}
	}()

	timer := time.AfterFunc(dur, sch.Interrupt)

	err = RunProfiler(profile, "performance", func() error {
		return sch.RunDrawLoop(mgr, matrix)
	})

	timer.Stop()
	close(producerEnd)

	if err != nil {
		return curated.Errorf("performance: %v", err)
	}

	numFrames := int(mgr.Stats().Popped)
	fps, accuracy := CalcFPS(numFrames, dur.Seconds(), hz)
	output.Write([]byte(fmt.Sprintf("%.2f fps (%d frames in %.2f seconds) %.1f%%\n", fps, numFrames, dur.Seconds(), accuracy)))

	return nil
}
