package dispatch

import (
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
)

// DefaultDebounce is the minimum interval between accepted key triggers.
// It bounds the playback-trigger rate independent of typing speed; treat it
// as a latency tunable, not a correctness contract.
const DefaultDebounce = 30 * time.Millisecond

// queueSize bounds the in-process event channel between the OS hook thread
// and the dispatcher loop. Overflow drops events rather than blocking the
// hook callback.
const queueSize = 64

// Event is one raw key-press notification.
type Event struct {
	Key  string    // opaque key identifier as reported by the hook
	When time.Time // press time; zero means "now"
}

// Player renders a named sound. *audio.Library satisfies it.
type Player interface {
	Play(name string, volume float64) error
}

// Dispatcher consumes key-press events and plays the currently selected
// sound. It is either Active (consume loop running) or Inactive.
type Dispatcher struct {
	state  *State
	player Player
	log    *zap.Logger

	debounce time.Duration
	now      func() time.Time

	mu     sync.Mutex
	active bool
	events chan Event
	done   chan struct{}

	// lastTrigger is touched only by the consume loop (or by tests
	// driving handle directly).
	lastTrigger time.Time

	dropped atomic.Uint64
}

// NewDispatcher creates an inactive dispatcher.
func NewDispatcher(state *State, player Player, log *zap.Logger) *Dispatcher {
	return &Dispatcher{
		state:    state,
		player:   player,
		log:      log,
		debounce: DefaultDebounce,
		now:      time.Now,
	}
}

// SetDebounce sets the minimum inter-trigger interval.
func (d *Dispatcher) SetDebounce(interval time.Duration) {
	d.mu.Lock()
	d.debounce = interval
	d.mu.Unlock()
}

// Start transitions Inactive -> Active. Calling Start while Active is a
// no-op.
func (d *Dispatcher) Start() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.active {
		return
	}
	d.events = make(chan Event, queueSize)
	d.done = make(chan struct{})
	d.active = true
	go d.loop(d.events, d.done)
}

// Stop transitions Active -> Inactive. Calling Stop while Inactive is a
// no-op.
func (d *Dispatcher) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if !d.active {
		return
	}
	close(d.done)
	d.active = false
}

// Active reports whether the dispatcher is consuming events.
func (d *Dispatcher) Active() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.active
}

// Submit enqueues a key-press event. It never blocks: while Inactive or
// with a full queue the event is dropped and Submit returns false. Safe to
// call from the OS hook thread.
func (d *Dispatcher) Submit(ev Event) bool {
	d.mu.Lock()
	if !d.active {
		d.mu.Unlock()
		return false
	}
	events := d.events
	d.mu.Unlock()

	select {
	case events <- ev:
		return true
	default:
		d.dropped.Add(1)
		return false
	}
}

// Dropped returns how many events were discarded due to queue overflow.
func (d *Dispatcher) Dropped() uint64 {
	return d.dropped.Load()
}

func (d *Dispatcher) loop(events <-chan Event, done <-chan struct{}) {
	for {
		select {
		case <-done:
			return
		case ev := <-events:
			d.handle(ev)
		}
	}
}

// handle runs the per-event pipeline: enabled gate, modifier exclusion,
// debounce, playback. Playback errors are logged and stop here; this code
// is ultimately fed from an OS hook callback that must not be destabilized.
func (d *Dispatcher) handle(ev Event) {
	if !d.state.Enabled() {
		return
	}

	key := NormalizeKey(ev.Key)
	if Excluded(key) {
		return
	}

	when := ev.When
	if when.IsZero() {
		when = d.now()
	}

	d.mu.Lock()
	debounce := d.debounce
	d.mu.Unlock()

	if !d.lastTrigger.IsZero() && when.Sub(d.lastTrigger) < debounce {
		return
	}
	d.lastTrigger = when

	name := d.state.Current()
	if err := d.player.Play(name, d.state.Volume()); err != nil {
		d.log.Warn("key sound playback failed",
			zap.String("sound", name),
			zap.Error(err))
	}
}
