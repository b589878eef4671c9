package util

import (
	"os"
	"runtime"
)

// SystemInfo contains information about the host system.
type SystemInfo struct {
	Hostname string
	NumCPU   int
	OS       string
	Arch     string
}

// GetSystemInfo collects system information.
func GetSystemInfo() SystemInfo {
	hostname, _ := os.Hostname()
	return SystemInfo{
		Hostname: hostname,
		NumCPU:   runtime.NumCPU(),
		OS:       runtime.GOOS,
		Arch:     runtime.GOARCH,
	}
}

// LogicalCores returns the number of logical CPU cores.
func LogicalCores() int {
	return runtime.NumCPU()
}

// DefaultProbeConcurrency returns a sensible bound for parallel ffmpeg
// probe invocations: half the logical cores, clamped to [1, maxProbes].
func DefaultProbeConcurrency(maxProbes int) int {
	n := LogicalCores() / 2
	if n < 1 {
		n = 1
	}
	if maxProbes > 0 && n > maxProbes {
		n = maxProbes
	}
	return n
}
