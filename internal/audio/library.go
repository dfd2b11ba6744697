package audio

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"go.uber.org/zap"
)

// SoundExtensions is the fixed allow-list of recognized audio containers.
var SoundExtensions = []string{".wav", ".mp3", ".ogg", ".m4a"}

// RecognizedExtension reports whether ext (lowercase, with dot) is a
// recognized audio container.
func RecognizedExtension(ext string) bool {
	for _, e := range SoundExtensions {
		if ext == e {
			return true
		}
	}
	return false
}

// Library owns the set of loaded sound samples keyed by name (payload
// filename without extension). The set is replaced atomically on reload:
// concurrent Play calls see either the old complete set or the new one.
type Library struct {
	mu      sync.RWMutex
	samples map[string]Sample

	dir     string
	backend Backend
	log     *zap.Logger
}

// NewLibrary creates a library over the given sounds directory. Call
// Reload to populate it.
func NewLibrary(dir string, backend Backend, log *zap.Logger) *Library {
	return &Library{
		samples: make(map[string]Sample),
		dir:     dir,
		backend: backend,
		log:     log,
	}
}

// Dir returns the sounds directory the library loads from.
func (l *Library) Dir() string {
	return l.dir
}

// Reload scans the sounds directory non-recursively for recognized audio
// files and decodes each into a sample. A per-file decode failure skips
// that file and is reported in the returned slice; it never aborts the
// load. On name collision the last-loaded file wins (documented behavior,
// not a bug). Returns the number of loaded samples.
func (l *Library) Reload() (int, []error) {
	entries, err := os.ReadDir(l.dir)
	if err != nil {
		if os.IsNotExist(err) {
			l.swap(make(map[string]Sample))
			return 0, nil
		}
		return l.Len(), []error{err}
	}

	next := make(map[string]Sample)
	var errs []error

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		ext := strings.ToLower(filepath.Ext(entry.Name()))
		if !RecognizedExtension(ext) {
			continue
		}

		path := filepath.Join(l.dir, entry.Name())
		sample, err := l.backend.Decode(path)
		if err != nil {
			errs = append(errs, &DecodeError{Path: path, Err: err})
			l.log.Warn("skipping sound file",
				zap.String("path", path),
				zap.Error(err))
			continue
		}

		name := strings.TrimSuffix(entry.Name(), filepath.Ext(entry.Name()))
		next[name] = sample
	}

	l.swap(next)
	return len(next), errs
}

// Play renders the named sample at the given volume on the dedicated
// channel. An absent name is a no-op, not an error, so stale selections
// are tolerated.
func (l *Library) Play(name string, volume float64) error {
	if name == "" {
		return nil
	}

	l.mu.RLock()
	sample, ok := l.samples[name]
	l.mu.RUnlock()
	if !ok {
		return nil
	}

	return l.backend.Play(sample, volume)
}

// Has reports whether a sample with the given name is currently loaded.
func (l *Library) Has(name string) bool {
	l.mu.RLock()
	defer l.mu.RUnlock()
	_, ok := l.samples[name]
	return ok
}

// List returns the loaded sample names, sorted for stable display.
func (l *Library) List() []string {
	l.mu.RLock()
	defer l.mu.RUnlock()

	names := make([]string, 0, len(l.samples))
	for name := range l.samples {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Len returns the number of loaded samples.
func (l *Library) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.samples)
}

func (l *Library) swap(next map[string]Sample) {
	l.mu.Lock()
	l.samples = next
	l.mu.Unlock()
}
