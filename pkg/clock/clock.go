package clock

import (
	"time"

	internalclock "github.com/SmitUplenchwar2687/Tempo/internal/clock"
)

// Millis is an instant expressed as milliseconds since the Unix epoch.
type Millis = internalclock.Millis

// Clock abstracts access to the current time.
type Clock = internalclock.Clock

// SystemClock reads the host wall-clock.
type SystemClock = internalclock.SystemClock

// Constant is a Clock frozen at a single instant.
type Constant = internalclock.Constant

// Func adapts a plain function to the Clock interface.
type Func = internalclock.Func

// VirtualClock is a controllable clock for deterministic testing.
type VirtualClock = internalclock.VirtualClock

// System is a shared wall-clock instance.
var System = internalclock.System

// NewSystemClock creates a wall-clock backed Clock.
func NewSystemClock() *SystemClock {
	return internalclock.NewSystemClock()
}

// NewConstant creates a Clock that always reads at.
func NewConstant(at Millis) *Constant {
	return internalclock.NewConstant(at)
}

// NewVirtualClock creates a VirtualClock starting at the given instant.
func NewVirtualClock(start Millis) *VirtualClock {
	return internalclock.NewVirtualClock(start)
}

// FromTime converts a time.Time to Millis.
func FromTime(t time.Time) Millis {
	return internalclock.FromTime(t)
}

// EpochSeconds reads the clock once and returns the instant in whole
// seconds, rounding to nearest with ties away from zero.
func EpochSeconds(c Clock) int64 {
	return internalclock.EpochSeconds(c)
}
