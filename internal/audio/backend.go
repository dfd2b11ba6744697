package audio

import "fmt"

// Sample is an opaque decoded-audio handle owned by the Library. Its
// concrete type belongs to the Backend that produced it.
type Sample interface{}

// Backend decodes audio files into playable samples and renders them.
type Backend interface {
	// Decode reads and decodes the file at path into a Sample.
	Decode(path string) (Sample, error)

	// Play renders the sample at the given volume (0.0 to 1.0) on the
	// dedicated playback channel, preempting whatever is currently
	// rendering there.
	Play(sample Sample, volume float64) error
}

// DecodeError reports a sound file that could not be decoded. The file is
// skipped and the load continues.
type DecodeError struct {
	Path string
	Err  error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("could not decode %s: %v", e.Path, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// nopBackend keeps the app functional in silent mode when no sound device
// is available: files still load by name, playback does nothing.
type nopBackend struct{}

// NewNopBackend returns a backend that decodes everything to a placeholder
// and plays nothing.
func NewNopBackend() Backend {
	return nopBackend{}
}

type nopSample struct{}

func (nopBackend) Decode(path string) (Sample, error) {
	return nopSample{}, nil
}

func (nopBackend) Play(sample Sample, volume float64) error {
	return nil
}
