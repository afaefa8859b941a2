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

// Package matrixdraw paces frames onto the matrix. It is the consumer end
// of the application: the network side fills the buffer manager and the
// Scheduler in this package empties it at the right moments.
//
// The Scheduler runs a two phase loop. While the oldest buffer in the
// queue is due (age of zero or less) buffers are popped and drawn as fast
// as the Renderer allows. Once nothing is due the loop sleeps until either
// the next buffer matures or a wait ceiling expires, whichever is sooner.
// The ceiling guarantees the loop notices an interrupt within a bounded
// time even when the producer has gone silent.
//
// The Renderer transfers one buffer onto the matrix, mirroring the image
// horizontally: source column x lands on matrix column width-1-x. The
// matrix hangs with its connector on the right, which puts its first
// column on the viewer's right hand side. It also derives the
// instantaneous frame rate from the interval between consecutive draws,
// readable at any time through FPS().
package matrixdraw
