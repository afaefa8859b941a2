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

package logger_test

import (
	"testing"

	"github.com/rbergen/NightDriver-Pi/logger"
	"github.com/rbergen/NightDriver-Pi/test"
)

func TestLogger(t *testing.T) {
	logger.Clear()

	tw := &test.Writer{}

	logger.Write(tw)
	test.Equate(t, tw.Compare(""), true)

	logger.Log("test", "this is a test")
	logger.Write(tw)
	test.Equate(t, tw.Compare("test: this is a test\n"), true)

	// clear the test.Writer buffer before continuing, makes comparisons
	// easier to manage
	tw.Clear()

	logger.Log("test2", "this is another test")
	logger.Write(tw)
	test.Equate(t, tw.Compare("test: this is a test\ntest2: this is another test\n"), true)

	// asking for too many entries in a Tail() should be okay
	tw.Clear()
	logger.Tail(tw, 100)
	test.Equate(t, tw.Compare("test: this is a test\ntest2: this is another test\n"), true)

	// asking for exactly the correct number of entries is okay
	tw.Clear()
	logger.Tail(tw, 2)
	test.Equate(t, tw.Compare("test: this is a test\ntest2: this is another test\n"), true)

	// asking for fewer entries is okay too
	tw.Clear()
	logger.Tail(tw, 1)
	test.Equate(t, tw.Compare("test2: this is another test\n"), true)

	// and no entries
	tw.Clear()
	logger.Tail(tw, 0)
	test.Equate(t, tw.Compare(""), true)
}

func TestRepeatCollapse(t *testing.T) {
	logger.Clear()

	tw := &test.Writer{}

	logger.Log("test", "same message")
	logger.Log("test", "same message")
	logger.Log("test", "same message")
	logger.Write(tw)
	test.Equate(t, tw.Compare("test: same message (repeat x3)\n"), true)

	// a different entry breaks the collapse
	tw.Clear()
	logger.Log("test", "different message")
	logger.Write(tw)
	test.Equate(t, tw.Compare("test: same message (repeat x3)\ntest: different message\n"), true)
}

func TestEcho(t *testing.T) {
	logger.Clear()

	tw := &test.Writer{}

	logger.Log("test", "before echo")
	logger.SetEcho(tw, true)
	test.Equate(t, tw.Compare("test: before echo\n"), true)

	logger.Log("test", "after echo")
	test.Equate(t, tw.Compare("test: before echo\ntest: after echo\n"), true)

	logger.SetEcho(nil, false)
}
