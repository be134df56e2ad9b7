package clock

import (
	"sync"
	"time"
)

// VirtualClock is a controllable clock for deterministic testing.
// Time only moves when Advance or Set is called, so tests never wait
// for real time to pass.
//
// Thread-safe for concurrent use.
type VirtualClock struct {
	mu      sync.RWMutex
	current Millis
}

// NewVirtualClock creates a VirtualClock starting at the given instant.
func NewVirtualClock(start Millis) *VirtualClock {
	return &VirtualClock{
		current: start,
	}
}

// Now returns the current virtual instant.
func (c *VirtualClock) Now() Millis {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.current
}

// Since returns the virtual duration elapsed since m.
func (c *VirtualClock) Since(m Millis) time.Duration {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return time.Duration(c.current-m) * time.Millisecond
}

// Advance moves the virtual clock forward by the given duration.
// Panics if d is negative.
func (c *VirtualClock) Advance(d time.Duration) {
	if d < 0 {
		panic("clock: cannot advance by negative duration")
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.current += Millis(d.Milliseconds())
}

// Set sets the virtual clock to an exact instant.
// Panics if m is before the current instant.
func (c *VirtualClock) Set(m Millis) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if m < c.current {
		panic("clock: cannot set time to the past")
	}
	c.current = m
}
