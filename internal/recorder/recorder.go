package recorder

import (
	"encoding/json"
	"io"
	"os"
	"sync"
)

// Recorder captures clock readings for later export or replay.
// Thread-safe for concurrent use.
type Recorder struct {
	mu       sync.Mutex
	readings []Reading
	writer   io.Writer // optional: stream readings as they arrive
}

// New creates a new Recorder. If w is non-nil, readings are also
// written to w as newline-delimited JSON as they arrive.
func New(w io.Writer) *Recorder {
	return &Recorder{
		writer: w,
	}
}

// Record captures a single reading.
func (r *Recorder) Record(rd Reading) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.readings = append(r.readings, rd)

	if r.writer != nil {
		if err := json.NewEncoder(r.writer).Encode(rd); err != nil {
			return err
		}
	}
	return nil
}

// Readings returns a copy of all recorded readings.
func (r *Recorder) Readings() []Reading {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]Reading, len(r.readings))
	copy(out, r.readings)
	return out
}

// Len returns the number of recorded readings.
func (r *Recorder) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.readings)
}

// ExportJSON writes all readings to the given writer as a JSON array.
func (r *Recorder) ExportJSON(w io.Writer) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(r.readings)
}

// ExportFile writes all readings to a file as a JSON array.
func (r *Recorder) ExportFile(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return r.ExportJSON(f)
}

// LoadJSON reads clock readings from a JSON array.
func LoadJSON(r io.Reader) ([]Reading, error) {
	var readings []Reading
	if err := json.NewDecoder(r).Decode(&readings); err != nil {
		return nil, err
	}
	return readings, nil
}

// LoadFile reads clock readings from a JSON file.
func LoadFile(path string) ([]Reading, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return LoadJSON(f)
}
