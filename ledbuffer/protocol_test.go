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
	"bytes"
	"encoding/binary"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/rbergen/NightDriver-Pi/curated"
	"github.com/rbergen/NightDriver-Pi/test"
)

func TestDatagram(t *testing.T) {
	presentation := time.Unix(1700000000, 123456000)

	buf, err := NewBuffer(presentation, []uint8{1, 2, 3, 4, 5, 6})
	test.ExpectedSuccess(t, err)

	w := &bytes.Buffer{}
	test.ExpectedSuccess(t, buf.Write(w))

	dec, err := Read(w)
	test.ExpectedSuccess(t, err)
	test.Equate(t, dec.PixelCount(), 2)
	test.Equate(t, dec.PresentationTime().Equal(presentation), true)

	red, green, blue := dec.Pixel(1)
	test.Equate(t, red, 4)
	test.Equate(t, green, 5)
	test.Equate(t, blue, 6)
}

func TestUnknownCommand(t *testing.T) {
	w := &bytes.Buffer{}
	hdr := make([]uint8, headerLength)
	binary.LittleEndian.PutUint16(hdr[0:], 0x99)
	w.Write(hdr)

	_, err := Read(w)
	test.ExpectedFailure(t, err)
	test.ExpectedSuccess(t, curated.Is(err, UnknownCommand))
}

func TestShortDatagram(t *testing.T) {
	// header promises more pixel data than the stream carries
	w := &bytes.Buffer{}
	hdr := make([]uint8, headerLength)
	binary.LittleEndian.PutUint16(hdr[0:], CmdPixelData)
	binary.LittleEndian.PutUint32(hdr[4:], 10)
	w.Write(hdr)
	w.Write([]uint8{1, 2, 3})

	_, err := Read(w)
	test.ExpectedFailure(t, err)
	test.ExpectedSuccess(t, curated.Is(err, ShortDatagram))
}

func TestCleanEOF(t *testing.T) {
	// a stream that ends between datagrams is not an error condition
	_, err := Read(&bytes.Buffer{})
	test.ExpectedSuccess(t, errors.Is(err, io.EOF))
	test.Equate(t, curated.IsAny(err), false)
}

func TestBadPixelCount(t *testing.T) {
	w := &bytes.Buffer{}
	hdr := make([]uint8, headerLength)
	binary.LittleEndian.PutUint16(hdr[0:], CmdPixelData)
	binary.LittleEndian.PutUint32(hdr[4:], 0)
	w.Write(hdr)

	_, err := Read(w)
	test.ExpectedFailure(t, err)
	test.ExpectedSuccess(t, curated.Is(err, BadPixelCount))
}

func TestNotRGBData(t *testing.T) {
	_, err := NewBuffer(time.Now(), []uint8{1, 2, 3, 4})
	test.ExpectedFailure(t, err)
	test.ExpectedSuccess(t, curated.Is(err, NotRGBData))
}
