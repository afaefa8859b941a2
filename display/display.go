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

// Package display defines the capabilities a physical or simulated LED
// matrix must expose to the draw loop. Implementations of the Matrix
// interface do the actual work of lighting pixels; the sdlmatrix
// sub-package presents the matrix in a desktop window for development
// without hardware.
package display

// Matrix is the surface the draw loop renders onto. Width and Height are
// fixed for the lifetime of the matrix.
type Matrix interface {
	Width() int
	Height() int

	// SetPixel changes the color of a single pixel. Coordinates outside the
	// matrix dimensions are a programming error and implementations are
	// free to panic on them.
	SetPixel(x, y int, red, green, blue uint8)
}

// Swapper is an optional capability of a Matrix. Implementations that
// buffer pixel writes expose Swap() to present the completed frame on the
// next vsync. Matrices that light pixels immediately (real LED hardware)
// do not implement Swapper.
type Swapper interface {
	Swap() error
}

// Servicer is an optional capability of a Matrix. Implementations backed
// by a windowing system expose Service() to handle window events. The draw
// loop calls Service() once per iteration, on its own goroutine, whether
// or not a frame was drawn.
type Servicer interface {
	Service()
}

// Nil is a Matrix with dimensions but no output. It is used by the
// performance mode and whenever the program runs headless.
type Nil struct {
	W int
	H int
}

// Width implements the Matrix interface.
func (mtx Nil) Width() int {
	return mtx.W
}

// Height implements the Matrix interface.
func (mtx Nil) Height() int {
	return mtx.H
}

// SetPixel implements the Matrix interface. The pixel is discarded.
func (mtx Nil) SetPixel(x, y int, red, green, blue uint8) {
}
