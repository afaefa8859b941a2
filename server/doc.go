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

// Package server is the network side of the application. It accepts TCP
// connections from the NightDriver master and decodes the stream of frame
// datagrams each connection carries, feeding every decoded frame to the
// buffer manager. Several masters may be connected at once although in a
// typical installation there is only one.
//
// The server is deliberately dumb: it does not pace, filter or
// acknowledge. Timing decisions belong to the matrixdraw package and
// capacity decisions to the ledbuffer package.
package server
