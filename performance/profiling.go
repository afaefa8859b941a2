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

package performance

import (
	"os"
	"runtime"
	"runtime/pprof"

	"github.com/rbergen/NightDriver-Pi/curated"
)

// Profile selects which profiles RunProfiler() generates.
type Profile int

// List of valid Profile values.
const (
	ProfileNone Profile = 0
	ProfileCPU  Profile = 1 << (iota - 1)
	ProfileMem
	ProfileAll = ProfileCPU | ProfileMem
)

// UnknownProfile is returned by ParseProfile() for input it does not
// recognise.
const UnknownProfile = "performance: unknown profile (%s)"

// ParseProfile converts the command line representation of a profile
// selection into a Profile value.
func ParseProfile(profile string) (Profile, error) {
	switch profile {
	case "none":
		return ProfileNone, nil
	case "cpu":
		return ProfileCPU, nil
	case "mem":
		return ProfileMem, nil
	case "all":
		return ProfileAll, nil
	}
	return ProfileNone, curated.Errorf(UnknownProfile, profile)
}

// RunProfiler runs the supplied function, wrapped in whichever profilers
// the Profile value asks for. The tag is used to name the profile files.
func RunProfiler(profile Profile, tag string, run func() error) error {
	if profile&ProfileCPU == ProfileCPU {
		f, err := os.Create(tag + "_cpu.profile")
		if err != nil {
			return curated.Errorf("performance: %v", err)
		}
		defer f.Close()

		err = pprof.StartCPUProfile(f)
		if err != nil {
			return curated.Errorf("performance: %v", err)
		}
		defer pprof.StopCPUProfile()
	}

	err := run()
	if err != nil {
		return err
	}

	if profile&ProfileMem == ProfileMem {
		f, err := os.Create(tag + "_mem.profile")
		if err != nil {
			return curated.Errorf("performance: %v", err)
		}
		defer f.Close()

		// the garbage collector run makes the heap profile reflect live
		// allocations rather than whatever happens to be uncollected
		runtime.GC()

		err = pprof.WriteHeapProfile(f)
		if err != nil {
			return curated.Errorf("performance: %v", err)
		}
	}

	return nil
}
