package extraction

import (
	"testing"
	"time"
)

func TestFallbackSeek(t *testing.T) {
	duration := 40 * time.Minute

	tests := []struct {
		name     string
		original time.Duration
		want     time.Duration
	}{
		{"before midpoint moves to midpoint", 10 * time.Minute, 20 * time.Minute},
		{"at midpoint moves to quarter", 20 * time.Minute, 10 * time.Minute},
		{"after midpoint moves to quarter", 35 * time.Minute, 10 * time.Minute},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := fallbackSeek(tt.original, duration); got != tt.want {
				t.Errorf("fallbackSeek(%v) = %v, want %v", tt.original, got, tt.want)
			}
		})
	}
}
