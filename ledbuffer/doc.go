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

// Package ledbuffer defines the frames of LED color data that flow through
// the application, the wire format that carries them from the master, and
// the Manager that queues them until their presentation time.
//
// A Buffer is one complete frame: a timestamp saying when the frame should
// appear on the matrix and one RGB triple for every pixel. Buffers arrive
// over the network ahead of time and wait in the Manager. The Manager
// reports the "age" of its oldest buffer: the number of seconds until
// (positive) or since (zero or negative) that buffer's presentation moment.
// An age of zero or less means the buffer is due.
//
// The Manager is a bounded FIFO. When a new buffer arrives and the queue is
// full, the oldest buffer is evicted. Freshness is preferred over
// completeness: a display that has fallen behind should catch up, not
// faithfully replay stale frames.
package ledbuffer
