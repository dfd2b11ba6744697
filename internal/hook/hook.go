package hook

import (
	"sync"
	"time"

	gohook "github.com/robotn/gohook"
	"go.uber.org/zap"

	"github.com/keycl/keycl/internal/dispatch"
)

// SubmitFunc hands a key event to the dispatch pipeline. It must not
// block; the dispatcher's Submit satisfies this.
type SubmitFunc func(dispatch.Event) bool

// Source runs the OS-level keyboard hook and forwards key-down events.
type Source struct {
	submit SubmitFunc
	log    *zap.Logger

	mu      sync.Mutex
	running bool
	done    chan struct{}
}

// NewSource creates a hook source that forwards events through submit.
func NewSource(submit SubmitFunc, log *zap.Logger) *Source {
	return &Source{
		submit: submit,
		log:    log,
	}
}

// Start installs the global keyboard hook and begins forwarding key-down
// events on a dedicated goroutine. Calling Start on a running source is
// a no-op.
func (s *Source) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.running {
		return
	}
	s.running = true
	s.done = make(chan struct{})

	events := gohook.Start()
	go s.forward(events, s.done)
	s.log.Info("Keyboard hook started")
}

// Stop removes the keyboard hook. Safe to call on a stopped source.
func (s *Source) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.running {
		return
	}
	s.running = false
	close(s.done)
	gohook.End()
	s.log.Info("Keyboard hook stopped")
}

func (s *Source) forward(events chan gohook.Event, done chan struct{}) {
	for {
		select {
		case <-done:
			return
		case ev, ok := <-events:
			if !ok {
				return
			}
			if ev.Kind != gohook.KeyDown {
				continue
			}
			key := gohook.RawcodetoKeychar(ev.Rawcode)
			if key == "" {
				continue
			}
			delivered := s.submit(dispatch.Event{Key: key, When: time.Now()})
			if !delivered {
				s.log.Debug("Key event dropped, dispatcher queue full",
					zap.String("key", key))
			}
		}
	}
}
