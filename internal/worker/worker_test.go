package worker

import (
	"context"
	"testing"
	"time"
)

func TestSemaphoreAcquireRelease(t *testing.T) {
	s := NewSemaphore(2)
	ctx := context.Background()

	if err := s.Acquire(ctx); err != nil {
		t.Fatalf("first acquire: %v", err)
	}
	if err := s.Acquire(ctx); err != nil {
		t.Fatalf("second acquire: %v", err)
	}

	// Third acquire must block until a permit is released.
	done := make(chan struct{})
	go func() {
		if err := s.Acquire(ctx); err != nil {
			t.Errorf("blocked acquire: %v", err)
		}
		close(done)
	}()

	select {
	case <-done:
		t.Fatal("acquire succeeded with no permits available")
	case <-time.After(20 * time.Millisecond):
	}

	s.Release()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("acquire did not proceed after release")
	}
}

func TestSemaphoreAcquireCancelled(t *testing.T) {
	s := NewSemaphore(1)
	ctx := context.Background()
	if err := s.Acquire(ctx); err != nil {
		t.Fatalf("acquire: %v", err)
	}

	cancelled, cancel := context.WithCancel(context.Background())
	cancel()
	if err := s.Acquire(cancelled); err == nil {
		t.Error("expected context error from cancelled acquire")
	}
}

func TestNewSemaphoreClampsCount(t *testing.T) {
	s := NewSemaphore(0)
	if err := s.Acquire(context.Background()); err != nil {
		t.Fatalf("zero-count semaphore should have one permit: %v", err)
	}
}

func TestDecodePermits(t *testing.T) {
	tests := []struct {
		name     string
		cores    int
		hardware bool
		want     int
	}{
		{"hardware capped", 32, true, 2},
		{"software half cores", 8, false, 4},
		{"software floor", 1, false, 1},
		{"software ceiling", 64, false, 8},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DecodePermits(tt.cores, tt.hardware); got != tt.want {
				t.Errorf("DecodePermits(%d, %v) = %d, want %d", tt.cores, tt.hardware, got, tt.want)
			}
		})
	}
}
