package audio

import (
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// watchSettle coalesces bursts of filesystem events (a download finishing
// produces several) into a single reload.
const watchSettle = 500 * time.Millisecond

// Watcher reloads callers when audio files in the sounds directory change,
// so an install or a manual file drop shows up without pressing refresh.
type Watcher struct {
	fs        *fsnotify.Watcher
	done      chan struct{}
	closeOnce sync.Once
}

// WatchDirectory starts watching dir and invokes onChange after changes to
// recognized audio files have settled. Other files in the directory, such
// as descriptor sidecars, do not affect the loaded sample set and are
// ignored.
func WatchDirectory(dir string, onChange func(), log *zap.Logger) (*Watcher, error) {
	fs, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := fs.Add(dir); err != nil {
		fs.Close()
		return nil, err
	}

	w := &Watcher{fs: fs, done: make(chan struct{})}
	go w.run(onChange, log)
	return w, nil
}

func (w *Watcher) run(onChange func(), log *zap.Logger) {
	settle := time.NewTimer(watchSettle)
	if !settle.Stop() {
		<-settle.C
	}

	for {
		select {
		case event, ok := <-w.fs.Events:
			if !ok {
				return
			}
			if !relevantChange(event.Name) {
				continue
			}
			settle.Reset(watchSettle)

		case err, ok := <-w.fs.Errors:
			if !ok {
				return
			}
			log.Warn("sounds directory watch error", zap.Error(err))

		case <-settle.C:
			onChange()

		case <-w.done:
			return
		}
	}
}

// Close stops the watcher. Safe to call more than once.
func (w *Watcher) Close() {
	w.closeOnce.Do(func() {
		close(w.done)
		w.fs.Close()
	})
}

func relevantChange(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return RecognizedExtension(ext)
}
