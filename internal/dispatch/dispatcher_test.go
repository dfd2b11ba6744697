package dispatch

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"go.uber.org/zap"
)

type fakePlayer struct {
	mu    sync.Mutex
	calls []playCall
	err   error
}

type playCall struct {
	name   string
	volume float64
}

func (p *fakePlayer) Play(name string, volume float64) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.calls = append(p.calls, playCall{name: name, volume: volume})
	return p.err
}

func (p *fakePlayer) count() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.calls)
}

func newTestDispatcher() (*Dispatcher, *fakePlayer, *State) {
	state := NewState(true, "click", 0.5)
	player := &fakePlayer{}
	d := NewDispatcher(state, player, zap.NewNop())
	return d, player, state
}

func TestExcludedKeysNeverTrigger(t *testing.T) {
	d, player, _ := newTestDispatcher()

	keys := []string{
		"shift", "left shift", "right shift",
		"ctrl", "right ctrl", "control",
		"alt", "Alt Gr",
		"cmd", "command", "left win", "meta",
		"tab", "caps lock", "CapsLock",
	}

	base := time.Now()
	for i, key := range keys {
		// Space events far apart so debounce cannot mask a failure.
		d.handle(Event{Key: key, When: base.Add(time.Duration(i) * time.Second)})
	}

	if player.count() != 0 {
		t.Errorf("Excluded keys triggered %d plays, expected 0", player.count())
	}
}

func TestDisabledGateDiscardsEverything(t *testing.T) {
	d, player, state := newTestDispatcher()
	state.SetEnabled(false)

	d.handle(Event{Key: "a", When: time.Now()})
	d.handle(Event{Key: "b", When: time.Now().Add(time.Second)})

	if player.count() != 0 {
		t.Errorf("Disabled dispatcher triggered %d plays, expected 0", player.count())
	}
}

func TestDebounceSuppressesBursts(t *testing.T) {
	d, player, _ := newTestDispatcher()
	base := time.Now()

	// Burst strictly inside the 30ms window: only the first plays.
	d.handle(Event{Key: "a", When: base})
	d.handle(Event{Key: "b", When: base.Add(10 * time.Millisecond)})
	d.handle(Event{Key: "c", When: base.Add(20 * time.Millisecond)})

	if player.count() != 1 {
		t.Fatalf("Expected 1 play for a sub-debounce burst, got %d", player.count())
	}

	// Exactly at the interval counts as accepted.
	d.handle(Event{Key: "d", When: base.Add(30 * time.Millisecond)})
	if player.count() != 2 {
		t.Fatalf("Event at the debounce boundary should trigger, got %d plays", player.count())
	}

	// Well beyond the interval triggers again.
	d.handle(Event{Key: "e", When: base.Add(100 * time.Millisecond)})
	if player.count() != 3 {
		t.Errorf("Expected 3 plays total, got %d", player.count())
	}
}

func TestDebounceMeasuresFromLastAcceptedTrigger(t *testing.T) {
	d, player, _ := newTestDispatcher()
	base := time.Now()

	d.handle(Event{Key: "a", When: base})
	// Discarded, must not reset the window.
	d.handle(Event{Key: "b", When: base.Add(20 * time.Millisecond)})
	// 35ms after the accepted trigger: plays.
	d.handle(Event{Key: "c", When: base.Add(35 * time.Millisecond)})

	if player.count() != 2 {
		t.Errorf("Expected 2 plays, got %d", player.count())
	}
}

func TestConfigurableDebounce(t *testing.T) {
	d, player, _ := newTestDispatcher()
	d.SetDebounce(100 * time.Millisecond)
	base := time.Now()

	d.handle(Event{Key: "a", When: base})
	d.handle(Event{Key: "b", When: base.Add(50 * time.Millisecond)})

	if player.count() != 1 {
		t.Errorf("Expected widened debounce to suppress second event, got %d plays", player.count())
	}
}

func TestPlaysSelectionAndVolume(t *testing.T) {
	d, player, state := newTestDispatcher()
	state.SetCurrent("typewriter")
	state.SetVolume(0.7)

	d.handle(Event{Key: "a", When: time.Now()})

	if player.count() != 1 {
		t.Fatalf("Expected 1 play, got %d", player.count())
	}
	if player.calls[0].name != "typewriter" {
		t.Errorf("Expected sound 'typewriter', got %q", player.calls[0].name)
	}
	if player.calls[0].volume != 0.7 {
		t.Errorf("Expected volume 0.7, got %v", player.calls[0].volume)
	}
}

func TestPlaybackErrorIsContained(t *testing.T) {
	d, player, _ := newTestDispatcher()
	player.err = fmt.Errorf("decode blew up")

	// Must not panic or propagate; the trigger still counts for debounce.
	base := time.Now()
	d.handle(Event{Key: "a", When: base})
	d.handle(Event{Key: "b", When: base.Add(5 * time.Millisecond)})

	if player.count() != 1 {
		t.Errorf("Failed trigger should still hold the debounce window, got %d plays", player.count())
	}
}

func TestStartStopIdempotent(t *testing.T) {
	d, _, _ := newTestDispatcher()

	if d.Active() {
		t.Fatal("Dispatcher should start Inactive")
	}

	d.Start()
	d.Start()
	if !d.Active() {
		t.Fatal("Dispatcher should be Active after Start")
	}

	d.Stop()
	d.Stop()
	if d.Active() {
		t.Fatal("Dispatcher should be Inactive after Stop")
	}
}

func TestSubmitWhileInactive(t *testing.T) {
	d, player, _ := newTestDispatcher()

	if d.Submit(Event{Key: "a"}) {
		t.Error("Submit should report false while Inactive")
	}
	if player.count() != 0 {
		t.Errorf("Inactive dispatcher played %d sounds", player.count())
	}
}

func TestSubmitDeliversToLoop(t *testing.T) {
	d, player, _ := newTestDispatcher()
	d.Start()
	defer d.Stop()

	if !d.Submit(Event{Key: "a", When: time.Now()}) {
		t.Fatal("Submit should accept events while Active")
	}

	deadline := time.Now().Add(2 * time.Second)
	for player.count() == 0 {
		if time.Now().After(deadline) {
			t.Fatal("Event was never dispatched to the player")
		}
		time.Sleep(5 * time.Millisecond)
	}
}
