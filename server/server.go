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

package server

import (
	"errors"
	"io"
	"net"
	"sync"

	"github.com/rbergen/NightDriver-Pi/curated"
	"github.com/rbergen/NightDriver-Pi/ledbuffer"
	"github.com/rbergen/NightDriver-Pi/logger"
)

// DefaultAddr is the address the NightDriver master expects a display to
// listen on.
const DefaultAddr = ":49152"

// Server accepts connections from the NightDriver master and pushes the
// frames it receives into a buffer manager.
type Server struct {
	listener net.Listener
	mgr      *ledbuffer.Manager

	// ensures Close() is effective when called more than once
	closeOnce sync.Once
}

// NewServer is the preferred method of initialisation for the Server type.
// The listening socket is opened immediately but connections are not
// accepted until Run() is called.
func NewServer(addr string, mgr *ledbuffer.Manager) (*Server, error) {
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, curated.Errorf("server: %v", err)
	}

	return &Server{
		listener: listener,
		mgr:      mgr,
	}, nil
}

// Addr returns the address the server is listening on. Useful when the
// server was created with an ephemeral port.
func (srv *Server) Addr() net.Addr {
	return srv.listener.Addr()
}

// Run accepts connections until Close() is called, serving each one on its
// own goroutine. It blocks. A Close() induced return is not an error.
func (srv *Server) Run() error {
	logger.Logf("server", "listening on %s", srv.listener.Addr())

	for {
		conn, err := srv.listener.Accept()
		if err != nil {
			if errors.Is(err, net.ErrClosed) {
				return nil
			}
			return curated.Errorf("server: %v", err)
		}

		go srv.serve(conn)
	}
}

// Close stops the accept loop and unblocks Run(). Connections already
// being served drain naturally when their peers disconnect.
func (srv *Server) Close() {
	srv.closeOnce.Do(func() {
		srv.listener.Close()
	})
}

// serve reads frame datagrams from a single connection until the peer
// disconnects or sends something unintelligible. a decode error drops the
// connection because the stream has lost framing and there is no way to
// resynchronise
func (srv *Server) serve(conn net.Conn) {
	defer conn.Close()

	logger.Logf("server", "connection from %s", conn.RemoteAddr())

	for {
		buf, err := ledbuffer.Read(conn)
		if err != nil {
			if errors.Is(err, io.EOF) {
				logger.Logf("server", "%s disconnected", conn.RemoteAddr())
			} else {
				logger.Logf("server", "dropping %s: %v", conn.RemoteAddr(), err)
			}
			return
		}

		srv.mgr.PushNewestBuffer(buf)
	}
}
