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
	"testing"
	"time"

	"github.com/rbergen/NightDriver-Pi/curated"
	"github.com/rbergen/NightDriver-Pi/ledbuffer"
	"github.com/rbergen/NightDriver-Pi/test"
)

// fakeSource is a scripted BufferSource. each queued buffer has a fixed
// age; the onAge callback runs on every age query and is how tests mutate
// the script and interrupt the scheduler.
type fakeSource struct {
	buffers  []*ledbuffer.Buffer
	ages     []float64
	failPops int
	popCalls int
	onAge    func(src *fakeSource)
}

func (src *fakeSource) AgeOfOldestBuffer() float64 {
	if src.onAge != nil {
		src.onAge(src)
	}
	if len(src.buffers) == 0 {
		return ledbuffer.EmptyAge
	}
	return src.ages[0]
}

func (src *fakeSource) PopOldestBuffer() (*ledbuffer.Buffer, bool) {
	src.popCalls++
	if src.failPops > 0 {
		src.failPops--
		return nil, false
	}
	if len(src.buffers) == 0 {
		return nil, false
	}
	buf := src.buffers[0]
	src.buffers = src.buffers[1:]
	src.ages = src.ages[1:]
	return buf, true
}

// interruptWhenDrained wires a fakeSource to interrupt the scheduler as
// soon as its queue is empty, ending the draw loop cleanly.
func interruptWhenDrained(sch *Scheduler) func(src *fakeSource) {
	return func(src *fakeSource) {
		if len(src.buffers) == 0 {
			sch.Interrupt()
		}
	}
}

func TestReadinessGating(t *testing.T) {
	rnd := NewRenderer()
	sch := NewScheduler(rnd)
	matrix := newFakeMatrix(2, 2)

	src := &fakeSource{
		buffers: []*ledbuffer.Buffer{solidFrame(t, 2, 2, 1)},
		ages:    []float64{0.5},
	}
	src.onAge = interruptWhenDrained(sch)

	popsBeforeMaturity := -1
	sch.sleep = func(d time.Duration) {
		if popsBeforeMaturity == -1 {
			popsBeforeMaturity = src.popCalls

			// the buffer matures during the first sleep
			src.ages[0] = 0
		}
	}

	test.ExpectedSuccess(t, sch.RunDrawLoop(src, matrix))

	// nothing was popped while the buffer was still in the future
	test.Equate(t, popsBeforeMaturity, 0)

	// and the buffer was drawn once it matured
	test.Equate(t, src.popCalls, 1)
	test.Equate(t, matrix.writes, 4)
}

func TestEmptyPopRace(t *testing.T) {
	rnd := NewRenderer()
	sch := NewScheduler(rnd)
	matrix := newFakeMatrix(2, 2)

	// the first pop comes back empty even though the age check said a
	// buffer was due. the loop must absorb this and try again
	src := &fakeSource{
		buffers:  []*ledbuffer.Buffer{solidFrame(t, 2, 2, 1)},
		ages:     []float64{0},
		failPops: 1,
	}
	src.onAge = interruptWhenDrained(sch)
	sch.sleep = func(d time.Duration) {}

	test.ExpectedSuccess(t, sch.RunDrawLoop(src, matrix))
	test.Equate(t, src.popCalls, 2)
	test.Equate(t, matrix.writes, 4)
}

func TestBurnExtraFrames(t *testing.T) {
	rnd := NewRenderer()
	sch := NewScheduler(rnd)
	sch.SetBurnExtraFrames(true)
	matrix := newFakeMatrix(1, 1)

	// two buffers, both overdue. with the burn policy enabled the older
	// one must be discarded without ever reaching the matrix
	src := &fakeSource{
		buffers: []*ledbuffer.Buffer{
			solidFrame(t, 1, 1, 10),
			solidFrame(t, 1, 1, 20),
		},
		ages: []float64{-0.1, -0.05},
	}
	src.onAge = interruptWhenDrained(sch)
	sch.sleep = func(d time.Duration) {}

	test.ExpectedSuccess(t, sch.RunDrawLoop(src, matrix))

	// only the newer buffer was drawn
	test.Equate(t, matrix.writes, 1)
	test.Equate(t, matrix.pixels[0][0], 20)
}

func TestBacklogWithoutBurn(t *testing.T) {
	rnd := NewRenderer()
	sch := NewScheduler(rnd)
	matrix := newFakeMatrix(1, 1)

	// same backlog as TestBurnExtraFrames but with the default policy:
	// every buffer is drawn, oldest first
	src := &fakeSource{
		buffers: []*ledbuffer.Buffer{
			solidFrame(t, 1, 1, 10),
			solidFrame(t, 1, 1, 20),
		},
		ages: []float64{-0.1, -0.05},
	}
	src.onAge = interruptWhenDrained(sch)
	sch.sleep = func(d time.Duration) {}

	test.ExpectedSuccess(t, sch.RunDrawLoop(src, matrix))
	test.Equate(t, matrix.writes, 2)
	test.Equate(t, matrix.pixels[0][0], 20)
}

func TestWaitBound(t *testing.T) {
	rnd := NewRenderer()
	sch := NewScheduler(rnd)
	matrix := newFakeMatrix(1, 1)

	// the only buffer is due an hour from now. the loop's sleeps must be
	// clamped to the maximum wait so the interrupt flag stays responsive
	src := &fakeSource{
		buffers: []*ledbuffer.Buffer{solidFrame(t, 1, 1, 1)},
		ages:    []float64{3600},
	}

	var sleeps []time.Duration
	sch.sleep = func(d time.Duration) {
		sleeps = append(sleeps, d)
		if len(sleeps) >= 3 {
			sch.Interrupt()
		}
	}

	test.ExpectedSuccess(t, sch.RunDrawLoop(src, matrix))
	test.Equate(t, src.popCalls, 0)

	if len(sleeps) < 3 {
		t.Fatalf("expected at least 3 sleeps (got %d)", len(sleeps))
	}
	for _, d := range sleeps {
		if d > DefaultMaximumWait {
			t.Errorf("sleep of %v exceeds the maximum wait of %v", d, DefaultMaximumWait)
		}
	}
}

// serviceMatrix is a fakeMatrix that also counts Service() calls.
type serviceMatrix struct {
	*fakeMatrix
	services int
}

func (mtx *serviceMatrix) Service() {
	mtx.services++
}

func TestServicing(t *testing.T) {
	rnd := NewRenderer()
	sch := NewScheduler(rnd)
	matrix := &serviceMatrix{fakeMatrix: newFakeMatrix(1, 1)}

	// an empty queue. the matrix must be serviced on every iteration even
	// though nothing is ever drawn
	src := &fakeSource{}

	iterations := 0
	sch.sleep = func(d time.Duration) {
		iterations++
		if iterations >= 3 {
			sch.Interrupt()
		}
	}

	test.ExpectedSuccess(t, sch.RunDrawLoop(src, matrix))
	test.Equate(t, matrix.services, 3)
	test.Equate(t, matrix.writes, 0)
}

func TestDrawErrorEndsLoop(t *testing.T) {
	rnd := NewRenderer()
	sch := NewScheduler(rnd)
	matrix := newFakeMatrix(2, 2)

	// a frame that disagrees with the matrix dimensions is fatal
	src := &fakeSource{
		buffers: []*ledbuffer.Buffer{solidFrame(t, 1, 1, 1)},
		ages:    []float64{0},
	}
	sch.sleep = func(d time.Duration) {}

	err := sch.RunDrawLoop(src, matrix)
	test.ExpectedFailure(t, err)
	test.ExpectedSuccess(t, curated.Has(err, SizeMismatch))
	test.Equate(t, matrix.writes, 0)
}
