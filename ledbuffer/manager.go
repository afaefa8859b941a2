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

package ledbuffer

import (
	"math"
	"sync"
	"time"
)

// EmptyAge is the age reported by the Manager when it holds no buffers. It
// is large enough that any sensible wait ceiling will clamp it.
const EmptyAge = math.MaxFloat64

// DefaultMaxBuffers is a queue depth suitable for a master that schedules
// frames a few seconds ahead at common frame rates.
const DefaultMaxBuffers = 500

// Stats is a snapshot of the Manager's counters.
type Stats struct {
	// number of buffers accepted by PushNewestBuffer()
	Pushed uint64

	// number of buffers handed out by PopOldestBuffer()
	Popped uint64

	// number of buffers discarded because the queue was full when a newer
	// buffer arrived
	Evicted uint64
}

// Manager is a bounded queue of Buffers ordered oldest first. It is safe
// for concurrent use: the network side pushes while the draw loop pops.
type Manager struct {
	crit sync.Mutex

	buffers    []*Buffer
	maxBuffers int

	stats Stats

	// replaced in tests
	clock func() time.Time
}

// NewManager creates a Manager that holds at most maxBuffers buffers.
func NewManager(maxBuffers int) *Manager {
	return &Manager{
		buffers:    make([]*Buffer, 0, maxBuffers),
		maxBuffers: maxBuffers,
		clock:      time.Now,
	}
}

// PushNewestBuffer adds a buffer to the back of the queue. If the queue is
// full the oldest buffer is evicted to make room; the display is behind and
// the stale frame is the least valuable one.
func (mgr *Manager) PushNewestBuffer(buf *Buffer) {
	mgr.crit.Lock()
	defer mgr.crit.Unlock()

	if len(mgr.buffers) >= mgr.maxBuffers {
		copy(mgr.buffers, mgr.buffers[1:])
		mgr.buffers = mgr.buffers[:len(mgr.buffers)-1]
		mgr.stats.Evicted++
	}

	mgr.buffers = append(mgr.buffers, buf)
	mgr.stats.Pushed++
}

// PopOldestBuffer removes and returns the oldest buffer in the queue. The
// second return value is false if the queue was empty at call time, which
// is a valid outcome and not an error.
func (mgr *Manager) PopOldestBuffer() (*Buffer, bool) {
	mgr.crit.Lock()
	defer mgr.crit.Unlock()

	if len(mgr.buffers) == 0 {
		return nil, false
	}

	buf := mgr.buffers[0]
	copy(mgr.buffers, mgr.buffers[1:])
	mgr.buffers = mgr.buffers[:len(mgr.buffers)-1]
	mgr.stats.Popped++

	return buf, true
}

// AgeOfOldestBuffer returns the age in seconds of the oldest buffer in the
// queue. Zero or negative means the buffer is due for presentation. If the
// queue is empty, EmptyAge is returned.
func (mgr *Manager) AgeOfOldestBuffer() float64 {
	mgr.crit.Lock()
	defer mgr.crit.Unlock()

	if len(mgr.buffers) == 0 {
		return EmptyAge
	}

	return mgr.buffers[0].Age(mgr.clock())
}

// Len returns the number of buffers currently in the queue.
func (mgr *Manager) Len() int {
	mgr.crit.Lock()
	defer mgr.crit.Unlock()

	return len(mgr.buffers)
}

// Stats returns a snapshot of the Manager's counters.
func (mgr *Manager) Stats() Stats {
	mgr.crit.Lock()
	defer mgr.crit.Unlock()

	return mgr.stats
}
