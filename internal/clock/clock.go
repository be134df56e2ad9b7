package clock

import "time"

// Millis is an instant expressed as milliseconds since the Unix epoch.
// It is the only time representation Tempo's APIs exchange.
type Millis int64

// FromTime converts a time.Time to Millis, discarding any monotonic reading.
func FromTime(t time.Time) Millis {
	return Millis(t.UnixMilli())
}

// Time converts the instant back to a time.Time in UTC.
func (m Millis) Time() time.Time {
	return time.UnixMilli(int64(m)).UTC()
}

// Seconds converts the instant to whole seconds since the epoch, rounding
// to nearest with ties away from zero (1499ms -> 1s, 1500ms -> 2s).
func (m Millis) Seconds() int64 {
	if m >= 0 {
		return (int64(m) + 500) / 1000
	}
	return (int64(m) - 500) / 1000
}

// Clock abstracts access to the current time. All time-dependent code in
// Tempo depends on this interface instead of calling time.Now() directly,
// so tests can substitute a fixed or virtual time source.
type Clock interface {
	// Now returns the current instant in milliseconds since the epoch.
	Now() Millis
}

// SystemClock reads the host wall-clock. It is not monotonic: readings can
// move backwards if the host clock is adjusted.
type SystemClock struct{}

// NewSystemClock creates a wall-clock backed Clock.
func NewSystemClock() *SystemClock {
	return &SystemClock{}
}

func (c *SystemClock) Now() Millis {
	return Millis(time.Now().UnixMilli())
}

// System is a shared wall-clock instance for callers that don't need to
// construct their own. Consumers should still receive a Clock by injection;
// System is only the convenient default to inject.
var System Clock = NewSystemClock()

// Constant is a Clock frozen at a single instant. The zero value reads the
// Unix epoch (0ms). Intended for tests that need repeatable readings.
type Constant struct {
	at Millis
}

// NewConstant creates a Clock that always reads at.
func NewConstant(at Millis) *Constant {
	return &Constant{at: at}
}

func (c *Constant) Now() Millis {
	return c.at
}

// Func adapts a plain function to the Clock interface.
type Func func() Millis

func (f Func) Now() Millis {
	return f()
}

// EpochSeconds reads the clock exactly once and returns the instant in
// whole seconds, using the Millis rounding rule.
func EpochSeconds(c Clock) int64 {
	return c.Now().Seconds()
}
