package replay

import (
	"github.com/SmitUplenchwar2687/Tempo/internal/clock"
	"github.com/SmitUplenchwar2687/Tempo/internal/recorder"
)

// Filter defines criteria for selecting readings during replay.
type Filter struct {
	Sources []string     // Only include these sources (empty = all)
	From    clock.Millis // Only include readings at or after this instant (0 = no limit)
	To      clock.Millis // Only include readings before this instant (0 = no limit)
}

// Match returns true if the reading passes the filter.
func (f *Filter) Match(rd recorder.Reading) bool {
	if len(f.Sources) > 0 && !contains(f.Sources, rd.Source) {
		return false
	}
	if f.From > 0 && rd.Millis < f.From {
		return false
	}
	if f.To > 0 && rd.Millis >= f.To {
		return false
	}
	return true
}

func contains(ss []string, s string) bool {
	for _, v := range ss {
		if v == s {
			return true
		}
	}
	return false
}
