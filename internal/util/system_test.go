package util

import (
	"testing"
)

func TestLogicalCores(t *testing.T) {
	cores := LogicalCores()
	if cores < 1 {
		t.Errorf("LogicalCores() = %d, expected at least 1", cores)
	}
}

func TestDefaultProbeConcurrency(t *testing.T) {
	tests := []struct {
		name      string
		maxProbes int
	}{
		{"capped at 8", 8},
		{"capped at 1", 1},
		{"uncapped", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DefaultProbeConcurrency(tt.maxProbes)
			if got < 1 {
				t.Errorf("DefaultProbeConcurrency(%d) = %d, expected at least 1", tt.maxProbes, got)
			}
			if tt.maxProbes > 0 && got > tt.maxProbes {
				t.Errorf("DefaultProbeConcurrency(%d) = %d, exceeds cap", tt.maxProbes, got)
			}
		})
	}
}

func TestGetSystemInfo(t *testing.T) {
	info := GetSystemInfo()
	if info.NumCPU < 1 {
		t.Errorf("NumCPU = %d, expected at least 1", info.NumCPU)
	}
	if info.OS == "" {
		t.Error("OS should not be empty")
	}
	if info.Arch == "" {
		t.Error("Arch should not be empty")
	}
}
