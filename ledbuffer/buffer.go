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
	"time"

	"github.com/rbergen/NightDriver-Pi/curated"
)

// NotRGBData is returned by NewBuffer() if the pixel data does not divide
// into RGB triples.
const NotRGBData = "ledbuffer: pixel data length %d is not a multiple of 3"

// Buffer is one frame of LED color data together with the moment the frame
// is intended to appear on the matrix.
//
// The pixel data is stored as it appears on the wire: three bytes (red,
// green, blue) per pixel in row-major order. A Buffer is immutable once
// created.
type Buffer struct {
	channel uint16
	seconds uint64
	micros  uint64
	pixels  []uint8
}

// NewBuffer creates a Buffer from a presentation time and packed RGB pixel
// data. The pixel data must divide into triples.
func NewBuffer(presentation time.Time, pixels []uint8) (*Buffer, error) {
	if len(pixels)%3 != 0 {
		return nil, curated.Errorf(NotRGBData, len(pixels))
	}

	return &Buffer{
		seconds: uint64(presentation.Unix()),
		micros:  uint64(presentation.Nanosecond() / 1000),
		pixels:  pixels,
	}, nil
}

// Channel identifies which display the master intended the frame for.
func (buf *Buffer) Channel() uint16 {
	return buf.channel
}

// PixelCount returns the number of pixels in the frame.
func (buf *Buffer) PixelCount() int {
	return len(buf.pixels) / 3
}

// Pixel returns the RGB color of the pixel at linear index i.
func (buf *Buffer) Pixel(i int) (red, green, blue uint8) {
	return buf.pixels[i*3], buf.pixels[i*3+1], buf.pixels[i*3+2]
}

// PresentationTime is the moment the frame is intended to appear on the
// matrix.
func (buf *Buffer) PresentationTime() time.Time {
	return time.Unix(int64(buf.seconds), int64(buf.micros)*1000)
}

// Age returns the number of seconds until the frame's presentation moment,
// relative to the supplied time. Zero or negative means the frame is due.
func (buf *Buffer) Age(now time.Time) float64 {
	return buf.PresentationTime().Sub(now).Seconds()
}
