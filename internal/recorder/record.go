package recorder

import (
	"github.com/SmitUplenchwar2687/Tempo/internal/clock"
)

// Reading is a single captured clock observation.
type Reading struct {
	Source  string       `json:"source"`  // e.g., "system", "virtual"
	Millis  clock.Millis `json:"millis"`  // instant in ms since epoch
	Seconds int64        `json:"seconds"` // derived whole seconds
}

// Take samples the clock once and derives the whole-second reading.
func Take(source string, c clock.Clock) Reading {
	m := c.Now()
	return Reading{
		Source:  source,
		Millis:  m,
		Seconds: m.Seconds(),
	}
}
