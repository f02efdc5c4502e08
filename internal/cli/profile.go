package cli

import (
	"fmt"
	"os"
	"runtime"
	"runtime/pprof"
	"runtime/trace"

	"github.com/yaklabco/autosarlint/internal/logging"
)

// startProfiling starts the profilers requested by flags. The returned
// function stops them and writes the heap profile; it is safe to call when
// no profiler was requested.
func startProfiling(flags *runFlags) (func(), error) {
	var stops []func()
	stopAll := func() {
		for i := len(stops) - 1; i >= 0; i-- {
			stops[i]()
		}
	}

	if flags.cpuprofile != "" {
		f, err := os.Create(flags.cpuprofile)
		if err != nil {
			return nil, fmt.Errorf("create CPU profile: %w", err)
		}
		if err := pprof.StartCPUProfile(f); err != nil {
			_ = f.Close()
			return nil, fmt.Errorf("start CPU profile: %w", err)
		}
		stops = append(stops, func() {
			pprof.StopCPUProfile()
			_ = f.Close()
		})
	}

	if flags.trace != "" {
		f, err := os.Create(flags.trace)
		if err != nil {
			stopAll()
			return nil, fmt.Errorf("create trace: %w", err)
		}
		if err := trace.Start(f); err != nil {
			_ = f.Close()
			stopAll()
			return nil, fmt.Errorf("start trace: %w", err)
		}
		stops = append(stops, func() {
			trace.Stop()
			_ = f.Close()
		})
	}

	if flags.memprofile != "" {
		path := flags.memprofile
		stops = append(stops, func() {
			if err := writeHeapProfile(path); err != nil {
				logging.Default().Warn("memory profile not written", logging.FieldPath, path, logging.FieldError, err)
			}
		})
	}

	return stopAll, nil
}

func writeHeapProfile(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	runtime.GC()
	if err := pprof.WriteHeapProfile(f); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}
