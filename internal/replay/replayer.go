package replay

import (
	"context"
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/SmitUplenchwar2687/Tempo/internal/clock"
	"github.com/SmitUplenchwar2687/Tempo/internal/recorder"
)

// Replayer replays a recorded reading stream through a virtual clock at a
// configurable speed, reporting the shape of the stream as it goes.
type Replayer struct {
	readings []recorder.Reading
	clock    *clock.VirtualClock
	filter   Filter
	speed    float64 // 1.0 = real-time, 10.0 = 10x, 0 = instant
}

// Result captures one replayed reading.
type Result struct {
	Reading recorder.Reading `json:"reading"`
	At      clock.Millis     `json:"at"`  // virtual instant when the reading was replayed
	Gap     clock.Millis     `json:"gap"` // millis since the previous replayed reading
}

// Summary aggregates replay statistics.
type Summary struct {
	TotalReadings int                      `json:"total_readings"`
	Filtered      int                      `json:"filtered"`
	Replayed      int                      `json:"replayed"`
	SpanMillis    clock.Millis             `json:"span_millis"`  // first-to-last replayed instant
	MaxGapMillis  clock.Millis             `json:"max_gap_millis"`
	Regressions   int                      `json:"regressions"` // readings whose instant went backwards
	WallDuration  time.Duration            `json:"wall_duration"`
	PerSource     map[string]SourceSummary `json:"per_source"`
}

// SourceSummary has per-source stats.
type SourceSummary struct {
	Count int          `json:"count"`
	First clock.Millis `json:"first"`
	Last  clock.Millis `json:"last"`
}

// New creates a new replayer.
func New(vc *clock.VirtualClock, speed float64, filter Filter) *Replayer {
	if speed < 0 {
		speed = 0
	}
	return &Replayer{
		clock:  vc,
		speed:  speed,
		filter: filter,
	}
}

// Load reads clock readings from a JSON reader.
func (r *Replayer) Load(reader io.Reader) error {
	readings, err := recorder.LoadJSON(reader)
	if err != nil {
		return fmt.Errorf("loading readings: %w", err)
	}
	r.readings = readings
	return nil
}

// LoadReadings sets the readings directly.
func (r *Replayer) LoadReadings(readings []recorder.Reading) {
	r.readings = make([]recorder.Reading, len(readings))
	copy(r.readings, readings)
}

// Run replays all loaded readings through the virtual clock.
// The callback is called for each replayed reading.
// Returns a summary of the replay.
func (r *Replayer) Run(ctx context.Context, cb func(Result)) (*Summary, error) {
	if len(r.readings) == 0 {
		return nil, fmt.Errorf("no readings loaded")
	}

	// Regressions are judged against recorded order, before sorting.
	regressions := 0
	for i := 1; i < len(r.readings); i++ {
		if r.readings[i].Millis < r.readings[i-1].Millis {
			regressions++
		}
	}

	sorted := make([]recorder.Reading, len(r.readings))
	copy(sorted, r.readings)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Millis < sorted[j].Millis
	})

	var filtered []recorder.Reading
	for _, rd := range sorted {
		if r.filter.Match(rd) {
			filtered = append(filtered, rd)
		}
	}

	summary := &Summary{
		TotalReadings: len(sorted),
		Filtered:      len(filtered),
		Regressions:   regressions,
		PerSource:     make(map[string]SourceSummary),
	}
	if len(filtered) == 0 {
		return summary, nil
	}

	wallStart := time.Now()

	for i, rd := range filtered {
		select {
		case <-ctx.Done():
			return summary, ctx.Err()
		default:
		}

		// Advance virtual time to match the reading's offset in the stream.
		var gap clock.Millis
		if i > 0 {
			gap = rd.Millis - filtered[i-1].Millis
			if gap > 0 {
				if r.speed > 0 {
					// Sleep for scaled wall-clock time for visual effect.
					scaledGap := time.Duration(float64(gap) * float64(time.Millisecond) / r.speed)
					if scaledGap > time.Millisecond {
						select {
						case <-ctx.Done():
							return summary, ctx.Err()
						case <-time.After(scaledGap):
						}
					}
				}
				r.clock.Advance(time.Duration(gap) * time.Millisecond)
			}
		}

		summary.Replayed++
		if gap > summary.MaxGapMillis {
			summary.MaxGapMillis = gap
		}

		ss, ok := summary.PerSource[rd.Source]
		if !ok {
			ss.First = rd.Millis
		}
		ss.Count++
		ss.Last = rd.Millis
		summary.PerSource[rd.Source] = ss

		if cb != nil {
			cb(Result{
				Reading: rd,
				At:      r.clock.Now(),
				Gap:     gap,
			})
		}
	}

	summary.SpanMillis = filtered[len(filtered)-1].Millis - filtered[0].Millis
	summary.WallDuration = time.Since(wallStart)

	return summary, nil
}
