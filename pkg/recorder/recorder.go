package recorder

import (
	"io"

	internalrecorder "github.com/SmitUplenchwar2687/Tempo/internal/recorder"
)

// Reading is a single captured clock sample.
type Reading = internalrecorder.Reading

// Recorder captures clock readings for later export or replay.
type Recorder = internalrecorder.Recorder

// New creates a new Recorder.
func New(w io.Writer) *Recorder {
	return internalrecorder.New(w)
}

// LoadJSON reads clock readings from a JSON array.
func LoadJSON(r io.Reader) ([]Reading, error) {
	return internalrecorder.LoadJSON(r)
}

// LoadFile reads clock readings from a JSON file.
func LoadFile(path string) ([]Reading, error) {
	return internalrecorder.LoadFile(path)
}
