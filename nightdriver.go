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

package main

import (
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"time"

	"github.com/rbergen/NightDriver-Pi/display"
	"github.com/rbergen/NightDriver-Pi/display/sdlmatrix"
	"github.com/rbergen/NightDriver-Pi/ledbuffer"
	"github.com/rbergen/NightDriver-Pi/logger"
	"github.com/rbergen/NightDriver-Pi/matrixdraw"
	"github.com/rbergen/NightDriver-Pi/modalflag"
	"github.com/rbergen/NightDriver-Pi/performance"
	"github.com/rbergen/NightDriver-Pi/server"
	"github.com/rbergen/NightDriver-Pi/statsview"
	"github.com/rbergen/NightDriver-Pi/version"
)

func init() {
	// SDL requires that window creation and rendering happen on the main
	// thread. the draw loop therefore runs in main() itself, with
	// everything else on goroutines
	runtime.LockOSThread()
}

func main() {
	md := &modalflag.Modes{Output: os.Stdout}
	md.NewArgs(os.Args[1:])
	md.NewMode()
	md.AddSubModes("RUN", "PERFORMANCE", "VERSION")

	p, err := md.Parse()
	switch p {
	case modalflag.ParseHelp:
		os.Exit(0)

	case modalflag.ParseError:
		fmt.Printf("* error: %v\n", err)
		os.Exit(10)
	}

	switch md.Mode() {
	case "RUN":
		err = run(md)

	case "PERFORMANCE":
		err = perform(md)

	case "VERSION":
		err = showVersion(md)
	}

	if err != nil {
		fmt.Printf("* error in %s mode: %s\n", md.String(), err)
		os.Exit(20)
	}
}

func run(md *modalflag.Modes) error {
	md.NewMode()

	addr := md.AddString("addr", server.DefaultAddr, "address to listen on for master connections")
	width := md.AddInt("width", 64, "width of the matrix in LEDs")
	height := md.AddInt("height", 32, "height of the matrix in LEDs")
	scale := md.AddInt("scale", 8, "size of one LED in window pixels")
	buffers := md.AddInt("buffers", ledbuffer.DefaultMaxBuffers, "maximum number of queued frames")
	burn := md.AddBool("burn", false, "discard backlogged frames instead of drawing them")
	maxWait := md.AddInt("maxwait", int(matrixdraw.DefaultMaximumWait/time.Microsecond), "ceiling on the draw loop's idle sleep (microseconds)")
	log := md.AddBool("log", false, "echo debugging log to stdout")
	stats := md.AddBool("stats", false, "run stats server")

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	if *log {
		logger.SetEcho(os.Stdout, true)
	} else {
		logger.SetEcho(nil, false)
	}

	if *stats {
		if statsview.Available() {
			statsview.Launch(os.Stdout)
		} else {
			fmt.Println("* stats server not available. compile with statsview build tag")
		}
	}

	matrix, err := sdlmatrix.NewMatrix(*width, *height, *scale)
	if err != nil {
		return err
	}
	defer matrix.Destroy()

	mgr := ledbuffer.NewManager(*buffers)
	rnd := matrixdraw.NewRenderer()

	sch := matrixdraw.NewScheduler(rnd)
	sch.SetBurnExtraFrames(*burn)
	sch.SetMaximumWait(time.Duration(*maxWait) * time.Microsecond)
	sch.SetSwapOnVSync(true)

	// closing the window ends the draw loop
	matrix.SetQuitCallback(sch.Interrupt)

	srv, err := server.NewServer(*addr, mgr)
	if err != nil {
		return err
	}
	defer srv.Close()

	go func() {
		if err := srv.Run(); err != nil {
			logger.Logf("main", "%v", err)
			sch.Interrupt()
		}
	}()

	// ctrl-c also ends the draw loop. the loop notices within its maximum
	// wait so there is no need for anything more forceful
	intChan := make(chan os.Signal, 1)
	signal.Notify(intChan, os.Interrupt)
	go func() {
		<-intChan
		fmt.Println("\r")
		sch.Interrupt()
	}()

	// periodic telemetry for anyone echoing the log
	telemetryEnd := make(chan bool)
	defer close(telemetryEnd)
	go func() {
		tick := time.NewTicker(5 * time.Second)
		defer tick.Stop()
		for {
			select {
			case <-telemetryEnd:
				return
			case <-tick.C:
				s := mgr.Stats()
				logger.Logf("main", "%.2f fps (%d queued, %d evicted)", rnd.FPS(), mgr.Len(), s.Evicted)
			}
		}
	}()

	return sch.RunDrawLoop(mgr, matrix)
}

func perform(md *modalflag.Modes) error {
	md.NewMode()

	width := md.AddInt("width", 64, "width of the matrix in LEDs")
	height := md.AddInt("height", 32, "height of the matrix in LEDs")
	scale := md.AddInt("scale", 8, "size of one LED in window pixels")
	hz := md.AddFloat64("hz", 30.0, "frame rate of the synthetic frame producer")
	duration := md.AddString("duration", "5s", "run duration")
	profile := md.AddString("profile", "none", "run profiler: cpu, mem, all, none")
	windowed := md.AddBool("display", false, "display frames in a window")
	log := md.AddBool("log", false, "echo debugging log to stdout")

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	if *log {
		logger.SetEcho(os.Stdout, true)
	} else {
		logger.SetEcho(nil, false)
	}

	prf, err := performance.ParseProfile(*profile)
	if err != nil {
		return err
	}

	var matrix display.Matrix
	if *windowed {
		mtx, err := sdlmatrix.NewMatrix(*width, *height, *scale)
		if err != nil {
			return err
		}
		defer mtx.Destroy()
		matrix = mtx
	} else {
		matrix = display.Nil{W: *width, H: *height}
	}

	return performance.Check(os.Stdout, prf, matrix, *hz, *duration)
}

func showVersion(md *modalflag.Modes) error {
	md.NewMode()

	revision := md.AddBool("v", false, "show revision information")

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	ver, rev, _ := version.Version()
	fmt.Printf("%s (%s)\n", version.ApplicationName, ver)
	if *revision {
		if rev == "" {
			fmt.Println("no revision information")
		} else {
			fmt.Println(rev)
		}
	}

	return nil
}
