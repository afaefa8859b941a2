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
	"encoding/binary"
	"errors"
	"io"

	"github.com/rbergen/NightDriver-Pi/curated"
)

// The wire format is the one the NightDriver master speaks: a fixed little
// endian header followed by three bytes of color data per pixel.
//
//	uint16  command (CmdPixelData)
//	uint16  channel
//	uint32  pixel count
//	uint64  presentation time, whole seconds
//	uint64  presentation time, microsecond remainder
//	[]byte  red, green, blue per pixel

// CmdPixelData is the only command this implementation understands. Other
// commands exist in the protocol (compressed frames, clock sync) but the
// master only sends them when negotiated.
const CmdPixelData = 0x03

// headerLength is the number of bytes in a datagram before the pixel data.
const headerLength = 24

// MaxPixelCount bounds the pixel count field of an incoming datagram. A
// value above this is taken as framing corruption rather than a plausible
// frame.
const MaxPixelCount = 1 << 20

// List of errors returned when decoding a datagram.
const (
	UnknownCommand = "protocol: unknown command (%#04x)"
	BadPixelCount  = "protocol: implausible pixel count (%d)"
	ShortDatagram  = "protocol: short datagram: %v"
)

// Read decodes one datagram from the supplied io.Reader and returns it as a
// Buffer. A stream that ends cleanly on a datagram boundary returns io.EOF
// unadorned; a stream that ends mid-datagram is an error.
func Read(r io.Reader) (*Buffer, error) {
	hdr := make([]uint8, headerLength)
	if _, err := io.ReadFull(r, hdr); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, err
		}
		return nil, curated.Errorf(ShortDatagram, err)
	}

	command := binary.LittleEndian.Uint16(hdr[0:])
	if command != CmdPixelData {
		return nil, curated.Errorf(UnknownCommand, command)
	}

	count := binary.LittleEndian.Uint32(hdr[4:])
	if count == 0 || count > MaxPixelCount {
		return nil, curated.Errorf(BadPixelCount, count)
	}

	buf := &Buffer{
		channel: binary.LittleEndian.Uint16(hdr[2:]),
		seconds: binary.LittleEndian.Uint64(hdr[8:]),
		micros:  binary.LittleEndian.Uint64(hdr[16:]),
		pixels:  make([]uint8, count*3),
	}

	if _, err := io.ReadFull(r, buf.pixels); err != nil {
		return nil, curated.Errorf(ShortDatagram, err)
	}

	return buf, nil
}

// Write encodes the Buffer as one datagram to the supplied io.Writer. It is
// the inverse of Read() and is used by the synthetic frame producer and by
// tests.
func (buf *Buffer) Write(w io.Writer) error {
	hdr := make([]uint8, headerLength)
	binary.LittleEndian.PutUint16(hdr[0:], CmdPixelData)
	binary.LittleEndian.PutUint16(hdr[2:], buf.channel)
	binary.LittleEndian.PutUint32(hdr[4:], uint32(buf.PixelCount()))
	binary.LittleEndian.PutUint64(hdr[8:], buf.seconds)
	binary.LittleEndian.PutUint64(hdr[16:], buf.micros)

	if _, err := w.Write(hdr); err != nil {
		return curated.Errorf("protocol: %v", err)
	}
	if _, err := w.Write(buf.pixels); err != nil {
		return curated.Errorf("protocol: %v", err)
	}

	return nil
}
