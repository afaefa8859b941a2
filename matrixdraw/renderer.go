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
	"math"
	"sync/atomic"
	"time"

	"github.com/rbergen/NightDriver-Pi/curated"
	"github.com/rbergen/NightDriver-Pi/display"
	"github.com/rbergen/NightDriver-Pi/ledbuffer"
)

// SizeMismatch is returned by DrawFrame() when the number of pixels in a
// frame does not match the dimensions of the matrix. It indicates a
// configuration mismatch between the master and this display and is not
// recoverable.
const SizeMismatch = "draw: size mismatch between frame and matrix (frame has %d pixels, matrix wants %d)"

// added to the inter-frame delta to avoid a division by zero when two
// frames draw on the same clock reading. the value is DBL_EPSILON.
const deltaEpsilon = 2.220446049250313e-16

// Renderer transfers individual frames onto the matrix and measures the
// frame rate while doing so.
//
// The timing state (timestamp of the previous draw, latest FPS value) is
// owned by the Renderer instance. Only one goroutine may call DrawFrame()
// but FPS() can be read from anywhere.
type Renderer struct {
	// timestamp of the previous DrawFrame(). the zero value means no frame
	// has been drawn yet
	lastDraw time.Time

	// latest instantaneous frame rate. stored as math.Float64bits
	fps atomic.Uint64

	// replaced in tests
	clock func() time.Time
}

// NewRenderer is the preferred method of initialisation for the Renderer
// type.
func NewRenderer() *Renderer {
	return &Renderer{
		clock: time.Now,
	}
}

// DrawFrame transfers one frame of color data onto the matrix and updates
// the frame rate measurement.
//
// The frame must contain exactly one pixel per matrix pixel. On a size
// mismatch the matrix is left untouched and a curated error with the
// SizeMismatch pattern is returned. There is no partial draw: once the
// precondition holds, every pixel is written.
func (rnd *Renderer) DrawFrame(buf *ledbuffer.Buffer, matrix display.Matrix) error {
	width := matrix.Width()
	height := matrix.Height()

	if buf.PixelCount() != width*height {
		return curated.Errorf(SizeMismatch, buf.PixelCount(), width*height)
	}

	now := rnd.clock()
	delta := now.Sub(rnd.lastDraw).Seconds() + deltaEpsilon
	rnd.lastDraw = now
	rnd.fps.Store(math.Float64bits(1.0 / delta))

	// the frame is mirrored horizontally as it goes onto the matrix. see
	// the package documentation for why
	for x := 0; x < width; x++ {
		for y := 0; y < height; y++ {
			red, green, blue := buf.Pixel(y*width + x)
			matrix.SetPixel(width-1-x, y, red, green, blue)
		}
	}

	return nil
}

// FPS returns the frame rate derived from the interval between the two
// most recent draws. It is an instantaneous value, not a windowed average.
// Before the second frame has drawn the value is meaningless (close to
// zero).
func (rnd *Renderer) FPS() float64 {
	return math.Float64frombits(rnd.fps.Load())
}
