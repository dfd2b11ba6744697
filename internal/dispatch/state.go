package dispatch

import "sync"

// State is the process-wide dispatch state. It is read on every filtered
// key event and written on user actions, so a coarse RWMutex is enough.
// The current selection is a non-owning reference by name; it may point at
// a sound that is no longer loaded and is re-resolved at play time.
type State struct {
	mu      sync.RWMutex
	enabled bool
	current string
	volume  float64
}

// NewState creates dispatch state with the given initial values. Volume is
// clamped on the way in like every other write.
func NewState(enabled bool, current string, volume float64) *State {
	return &State{
		enabled: enabled,
		current: current,
		volume:  clamp(volume),
	}
}

// Enabled reports whether key-press playback is on.
func (s *State) Enabled() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.enabled
}

// SetEnabled turns key-press playback on or off.
func (s *State) SetEnabled(enabled bool) {
	s.mu.Lock()
	s.enabled = enabled
	s.mu.Unlock()
}

// Toggle flips the enabled gate and returns the new value.
func (s *State) Toggle() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.enabled = !s.enabled
	return s.enabled
}

// Current returns the selected sound name, empty when none is selected.
func (s *State) Current() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// SetCurrent selects a sound by name. A stale name is tolerated: playback
// of a name the library no longer holds is a no-op.
func (s *State) SetCurrent(name string) {
	s.mu.Lock()
	s.current = name
	s.mu.Unlock()
}

// Volume returns the playback volume in [0.0, 1.0].
func (s *State) Volume() float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.volume
}

// SetVolume sets the playback volume, clamped to [0.0, 1.0].
func (s *State) SetVolume(volume float64) {
	s.mu.Lock()
	s.volume = clamp(volume)
	s.mu.Unlock()
}

func clamp(v float64) float64 {
	if v < 0.0 {
		return 0.0
	}
	if v > 1.0 {
		return 1.0
	}
	return v
}
