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

package matrixdraw

import (
	"sync/atomic"
	"time"

	"github.com/rbergen/NightDriver-Pi/curated"
	"github.com/rbergen/NightDriver-Pi/display"
	"github.com/rbergen/NightDriver-Pi/ledbuffer"
)

// DefaultMaximumWait is how long the draw loop will sleep when no buffer
// is due. It bounds the time between interrupt checks.
const DefaultMaximumWait = 10000 * time.Microsecond

// BufferSource is the consumption contract the draw loop requires of the
// buffer queue. ledbuffer.Manager satisfies it.
type BufferSource interface {
	// AgeOfOldestBuffer returns the age in seconds of the oldest pending
	// buffer. Zero or negative means due now
	AgeOfOldestBuffer() float64

	// PopOldestBuffer removes and returns the oldest pending buffer. The
	// second return value is false if no buffer was available at call
	// time, which is a valid outcome
	PopOldestBuffer() (*ledbuffer.Buffer, bool)
}

// Scheduler owns the draw loop. It decides when the next frame is due,
// idles efficiently when none is, and hands due frames to the Renderer.
type Scheduler struct {
	rnd *Renderer

	// raised by Interrupt() and polled once per loop iteration
	interrupt atomic.Bool

	// when enabled, a popped buffer is discarded without drawing if the
	// buffer behind it is also already due. freshness over completeness.
	// when disabled, backlogged buffers are drawn as fast as possible to
	// catch up with real time
	burnExtraFrames bool

	// the longest the loop will sleep before re-checking the queue and the
	// interrupt flag
	maximumWait time.Duration

	// present each completed frame via display.Swapper, if the matrix
	// implements it
	swapOnVSync bool

	// replaced in tests
	sleep func(time.Duration)
}

// NewScheduler is the preferred method of initialisation for the Scheduler
// type. The default policy matches the hardware display: backlog is drawn
// rather than burned and frames are not explicitly swapped.
func NewScheduler(rnd *Renderer) *Scheduler {
	return &Scheduler{
		rnd:         rnd,
		maximumWait: DefaultMaximumWait,
		sleep:       time.Sleep,
	}
}

// SetBurnExtraFrames enables or disables the discarding of backlogged
// frames.
func (sch *Scheduler) SetBurnExtraFrames(burn bool) {
	sch.burnExtraFrames = burn
}

// SetMaximumWait changes the ceiling on the loop's idle sleep.
func (sch *Scheduler) SetMaximumWait(d time.Duration) {
	sch.maximumWait = d
}

// SetSwapOnVSync enables or disables the explicit presentation of each
// frame after it has drawn. It has no effect if the matrix does not
// implement display.Swapper.
func (sch *Scheduler) SetSwapOnVSync(swap bool) {
	sch.swapOnVSync = swap
}

// Interrupt asks the draw loop to end. It is safe to call from any
// goroutine, including a signal handler, and is honoured at the top of the
// next loop iteration. A draw that is underway always runs to completion.
func (sch *Scheduler) Interrupt() {
	sch.interrupt.Store(true)
}

// Interrupted returns true once Interrupt() has been called.
func (sch *Scheduler) Interrupted() bool {
	return sch.interrupt.Load()
}

// RunDrawLoop consumes buffers from the BufferSource and draws them on the
// matrix as they mature. It blocks until Interrupt() is called, returning
// nil, or until a draw fails, returning the error. A draw failure means
// the master and this display disagree about the matrix dimensions, which
// will not heal on its own.
func (sch *Scheduler) RunDrawLoop(src BufferSource, matrix display.Matrix) error {
	svc, _ := matrix.(display.Servicer)

	for !sch.interrupt.Load() {
		// window events are serviced every iteration, even when the
		// producer has gone silent. without this a windowed matrix would
		// stop responding the moment frames stop arriving
		if svc != nil {
			svc.Service()
		}

		for src.AgeOfOldestBuffer() <= 0 {
			// the age check and the pop are not atomic with respect to
			// other consumers. a pop that comes back empty means somebody
			// drained the queue first, so just look again
			buf, ok := src.PopOldestBuffer()
			if !ok {
				continue
			}

			// if the buffer behind the one we just popped is also due we
			// are running a backlog. the burn policy says to throw the
			// older frame away and let the newer one represent the stream
			if sch.burnExtraFrames && src.AgeOfOldestBuffer() <= 0 {
				continue
			}

			if err := sch.rnd.DrawFrame(buf, matrix); err != nil {
				return curated.Errorf("draw loop: %v", err)
			}

			if sch.swapOnVSync {
				if swp, ok := matrix.(display.Swapper); ok {
					if err := swp.Swap(); err != nil {
						return curated.Errorf("draw loop: %v", err)
					}
				}
			}
		}

		// sleep until the next buffer matures but never longer than the
		// maximum wait, so that the interrupt flag is checked at least
		// that often. the age is queried afresh because draws take time
		wait := src.AgeOfOldestBuffer() * float64(time.Second/time.Microsecond)
		if wait > float64(sch.maximumWait/time.Microsecond) {
			wait = float64(sch.maximumWait / time.Microsecond)
		}
		if wait > 0 {
			sch.sleep(time.Duration(wait) * time.Microsecond)
		}
	}

	return nil
}
