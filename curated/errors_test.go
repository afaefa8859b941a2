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

package curated_test

import (
	"testing"

	"github.com/rbergen/NightDriver-Pi/curated"
	"github.com/rbergen/NightDriver-Pi/test"
)

func TestPatternMatching(t *testing.T) {
	e := curated.Errorf("foo: %d", 10)
	test.Equate(t, e.Error(), "foo: 10")
	test.ExpectedSuccess(t, curated.Is(e, "foo: %d"))
	test.ExpectedFailure(t, curated.Is(e, "bar: %d"))

	// wrapping a curated error in another curated error
	f := curated.Errorf("bar: %v", e)
	test.Equate(t, f.Error(), "bar: foo: 10")
	test.ExpectedSuccess(t, curated.Has(f, "foo: %d"))
	test.ExpectedFailure(t, curated.Is(f, "foo: %d"))
}

func TestDeduplication(t *testing.T) {
	// adjacent duplicate message parts are removed
	e := curated.Errorf("draw: %v", curated.Errorf("draw: oops"))
	test.Equate(t, e.Error(), "draw: oops")
}

func TestNil(t *testing.T) {
	test.ExpectedFailure(t, curated.IsAny(nil))
	test.ExpectedFailure(t, curated.Is(nil, "foo"))
	test.ExpectedFailure(t, curated.Has(nil, "foo"))
}
