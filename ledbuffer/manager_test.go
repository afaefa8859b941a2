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
	"testing"
	"time"

	"github.com/rbergen/NightDriver-Pi/test"
)

// mustBuffer creates a buffer for the supplied presentation time, with a
// single pixel encoding the supplied id in the red channel.
func mustBuffer(t *testing.T, presentation time.Time, id uint8) *Buffer {
	t.Helper()

	buf, err := NewBuffer(presentation, []uint8{id, 0, 0})
	test.ExpectedSuccess(t, err)
	return buf
}

func TestAgeOfOldestBuffer(t *testing.T) {
	now := time.Now()

	mgr := NewManager(4)
	mgr.clock = func() time.Time { return now }

	// an empty manager reports a very large age
	test.Equate(t, mgr.AgeOfOldestBuffer() == EmptyAge, true)

	// a buffer due half a second from now
	mgr.PushNewestBuffer(mustBuffer(t, now.Add(500*time.Millisecond), 1))
	test.ApproxEquate(t, mgr.AgeOfOldestBuffer(), 0.5, 0.001)

	// time passes and the buffer matures
	now = now.Add(time.Second)
	test.ApproxEquate(t, mgr.AgeOfOldestBuffer(), -0.5, 0.001)
}

func TestPopOrder(t *testing.T) {
	now := time.Now()

	mgr := NewManager(4)
	mgr.clock = func() time.Time { return now }

	mgr.PushNewestBuffer(mustBuffer(t, now, 1))
	mgr.PushNewestBuffer(mustBuffer(t, now.Add(time.Second), 2))
	test.Equate(t, mgr.Len(), 2)

	buf, ok := mgr.PopOldestBuffer()
	test.Equate(t, ok, true)
	red, _, _ := buf.Pixel(0)
	test.Equate(t, red, 1)

	buf, ok = mgr.PopOldestBuffer()
	test.Equate(t, ok, true)
	red, _, _ = buf.Pixel(0)
	test.Equate(t, red, 2)

	// popping an empty manager is a valid outcome, not an error
	_, ok = mgr.PopOldestBuffer()
	test.Equate(t, ok, false)
	test.Equate(t, mgr.Len(), 0)
}

func TestEviction(t *testing.T) {
	now := time.Now()

	mgr := NewManager(2)
	mgr.clock = func() time.Time { return now }

	mgr.PushNewestBuffer(mustBuffer(t, now, 1))
	mgr.PushNewestBuffer(mustBuffer(t, now.Add(time.Second), 2))
	mgr.PushNewestBuffer(mustBuffer(t, now.Add(2*time.Second), 3))

	// the queue never exceeds its capacity and the oldest buffer has been
	// evicted to make room
	test.Equate(t, mgr.Len(), 2)

	buf, ok := mgr.PopOldestBuffer()
	test.Equate(t, ok, true)
	red, _, _ := buf.Pixel(0)
	test.Equate(t, red, 2)

	stats := mgr.Stats()
	test.Equate(t, stats.Pushed, 3)
	test.Equate(t, stats.Popped, 1)
	test.Equate(t, stats.Evicted, 1)
}
