// Package worker provides concurrency primitives for bounding parallel
// ffmpeg invocations.
package worker

import "context"

// Semaphore provides a counting semaphore for controlling concurrency.
// It limits concurrent decode processes so a batch cannot saturate the
// host's CPU or GPU decode sessions.
type Semaphore struct {
	permits chan struct{}
}

// NewSemaphore creates a new semaphore with the given number of permits.
func NewSemaphore(count int) *Semaphore {
	if count <= 0 {
		count = 1
	}
	s := &Semaphore{
		permits: make(chan struct{}, count),
	}
	for i := 0; i < count; i++ {
		s.permits <- struct{}{}
	}
	return s
}

// Acquire blocks until a permit is available or the context is done.
func (s *Semaphore) Acquire(ctx context.Context) error {
	select {
	case <-s.permits:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Release returns a permit to the semaphore.
func (s *Semaphore) Release() {
	select {
	case s.permits <- struct{}{}:
	default:
		// Semaphore is full, this shouldn't happen in normal use
	}
}

// Chan returns the underlying permit channel for use with select.
func (s *Semaphore) Chan() <-chan struct{} {
	return s.permits
}

// DecodePermits sizes the decode semaphore. Hardware accelerators have a
// small fixed number of decode sessions, so the cap is lower than for
// CPU decoding.
func DecodePermits(logicalCores int, hardware bool) int {
	if hardware {
		return 2
	}
	permits := logicalCores / 2
	if permits < 1 {
		permits = 1
	}
	if permits > 8 {
		permits = 8
	}
	return permits
}
