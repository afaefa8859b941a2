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

// Package sdlmatrix emulates the LED matrix in an SDL window. Every LED
// becomes a square of scale*scale screen pixels.
//
// SDL is not thread safe so the goroutine that created the Matrix must be
// the one that calls SetPixel(), Swap() and Service(). In practice that is
// the goroutine running the draw loop, locked to the main thread.
package sdlmatrix

import (
	"github.com/veandco/go-sdl2/sdl"

	"github.com/rbergen/NightDriver-Pi/version"
)

// number of bytes per pixel (indicating PIXELFORMAT)
const pixelDepth = 4

// Matrix is the SDL implementation of display.Matrix. It also implements
// display.Swapper: pixels written with SetPixel() accumulate in an
// offscreen buffer and appear in the window on the next Swap().
type Matrix struct {
	width  int
	height int

	window   *sdl.Window
	renderer *sdl.Renderer
	texture  *sdl.Texture

	pixels []byte

	// called when the user closes the window. may be nil
	onQuit func()
}

// NewMatrix is the preferred method of initialisation for the Matrix type.
// Width and height are in LEDs, scale is the size of one LED in screen
// pixels.
func NewMatrix(width, height, scale int) (*Matrix, error) {
	mtx := &Matrix{
		width:  width,
		height: height,
		pixels: make([]byte, width*height*pixelDepth),
	}

	err := sdl.Init(sdl.INIT_VIDEO)
	if err != nil {
		return nil, err
	}

	mtx.window, err = sdl.CreateWindow(version.ApplicationName,
		sdl.WINDOWPOS_UNDEFINED, sdl.WINDOWPOS_UNDEFINED,
		int32(width*scale), int32(height*scale), sdl.WINDOW_SHOWN)
	if err != nil {
		return nil, err
	}

	mtx.renderer, err = sdl.CreateRenderer(mtx.window, -1, sdl.RENDERER_ACCELERATED|sdl.RENDERER_PRESENTVSYNC)
	if err != nil {
		return nil, err
	}

	// everything applied to the renderer will be scaled
	err = mtx.renderer.SetScale(float32(scale), float32(scale))
	if err != nil {
		return nil, err
	}

	mtx.texture, err = mtx.renderer.CreateTexture(sdl.PIXELFORMAT_ABGR8888, sdl.TEXTUREACCESS_STREAMING, int32(width), int32(height))
	if err != nil {
		return nil, err
	}

	// start with a black matrix rather than window manager garbage
	err = mtx.Swap()
	if err != nil {
		return nil, err
	}

	return mtx, nil
}

// SetQuitCallback registers the function to call when the user closes the
// window. The callback runs on the goroutine that calls Swap().
func (mtx *Matrix) SetQuitCallback(onQuit func()) {
	mtx.onQuit = onQuit
}

// Width implements display.Matrix.
func (mtx *Matrix) Width() int {
	return mtx.width
}

// Height implements display.Matrix.
func (mtx *Matrix) Height() int {
	return mtx.height
}

// SetPixel implements display.Matrix. The new color is not visible until
// the next Swap().
func (mtx *Matrix) SetPixel(x, y int, red, green, blue uint8) {
	i := (y*mtx.width + x) * pixelDepth
	if i < 0 || i >= len(mtx.pixels) {
		return
	}
	mtx.pixels[i] = red
	mtx.pixels[i+1] = green
	mtx.pixels[i+2] = blue
	mtx.pixels[i+3] = 255
}

// Swap implements display.Swapper. It presents the accumulated pixel
// buffer in the window.
func (mtx *Matrix) Swap() error {
	err := mtx.texture.Update(nil, mtx.pixels, mtx.width*pixelDepth)
	if err != nil {
		return err
	}
	err = mtx.renderer.Copy(mtx.texture, nil, nil)
	if err != nil {
		return err
	}
	mtx.renderer.Present()

	return nil
}

// Service implements display.Servicer. It drains the SDL event queue,
// invoking the quit callback if the window has been closed. The event
// queue must be drained regularly or the window manager will flag the
// window as unresponsive.
func (mtx *Matrix) Service() {
	for ev := sdl.PollEvent(); ev != nil; ev = sdl.PollEvent() {
		switch ev.(type) {
		case *sdl.QuitEvent:
			if mtx.onQuit != nil {
				mtx.onQuit()
			}
		}
	}
}

// Destroy releases all SDL resources held by the Matrix. The Matrix must
// not be used afterwards.
func (mtx *Matrix) Destroy() {
	if mtx.texture != nil {
		mtx.texture.Destroy()
	}
	if mtx.renderer != nil {
		mtx.renderer.Destroy()
	}
	if mtx.window != nil {
		mtx.window.Destroy()
	}
	sdl.Quit()
}
