package config

import (
	"time"

	"fyne.io/fyne/v2"

	"github.com/keycl/keycl/internal/platform"
)

// Theme presets for the UI
type ThemePreset string

const (
	ThemeDark   ThemePreset = "dark"
	ThemeLight  ThemePreset = "light"
	ThemeSystem ThemePreset = "system"
)

// Settings keys for Fyne preferences
const (
	KeyVolume       = "volume"
	KeyEnabled      = "enabled"
	KeyCurrentSound = "current_sound"
	KeyTheme        = "theme"
	KeyDebounceMS   = "debounce_ms"
	KeySoundsDir    = "sounds_directory"
)

// Default values
const (
	DefaultVolume     = 0.5
	DefaultEnabled    = true
	DefaultTheme      = ThemeDark
	DefaultDebounceMS = 30
	MaxDebounceMS     = 500
)

// Settings manages application configuration. Every setter persists
// immediately via the preferences store (write-through).
type Settings struct {
	app fyne.App
}

// NewSettings creates a new settings manager
func NewSettings(app fyne.App) *Settings {
	return &Settings{app: app}
}

// GetVolume returns the configured playback volume in [0.0, 1.0]
func (s *Settings) GetVolume() float64 {
	return clampVolume(s.app.Preferences().FloatWithFallback(KeyVolume, DefaultVolume))
}

// SetVolume sets the playback volume, clamped to [0.0, 1.0]
func (s *Settings) SetVolume(volume float64) {
	s.app.Preferences().SetFloat(KeyVolume, clampVolume(volume))
}

// GetEnabled returns whether key-press playback is enabled
func (s *Settings) GetEnabled() bool {
	return s.app.Preferences().BoolWithFallback(KeyEnabled, DefaultEnabled)
}

// SetEnabled sets whether key-press playback is enabled
func (s *Settings) SetEnabled(enabled bool) {
	s.app.Preferences().SetBool(KeyEnabled, enabled)
}

// GetCurrentSound returns the selected sound name, empty when none is selected
func (s *Settings) GetCurrentSound() string {
	return s.app.Preferences().String(KeyCurrentSound)
}

// SetCurrentSound sets the selected sound name
func (s *Settings) SetCurrentSound(name string) {
	s.app.Preferences().SetString(KeyCurrentSound, name)
}

// GetTheme returns the configured theme preset
func (s *Settings) GetTheme() ThemePreset {
	theme := s.app.Preferences().String(KeyTheme)
	if theme == "" {
		s.SetTheme(DefaultTheme)
		return DefaultTheme
	}
	return ThemePreset(theme)
}

// SetTheme sets the theme preset
func (s *Settings) SetTheme(theme ThemePreset) {
	s.app.Preferences().SetString(KeyTheme, string(theme))
}

// GetThemeOptions returns available theme presets
func (s *Settings) GetThemeOptions() []ThemePreset {
	return []ThemePreset{ThemeDark, ThemeLight, ThemeSystem}
}

// GetDebounce returns the minimum interval between accepted key triggers.
// The 30ms default is a latency tunable, not a hard contract.
func (s *Settings) GetDebounce() time.Duration {
	ms := s.app.Preferences().IntWithFallback(KeyDebounceMS, DefaultDebounceMS)
	return time.Duration(clampDebounce(ms)) * time.Millisecond
}

// SetDebounce sets the debounce interval
func (s *Settings) SetDebounce(d time.Duration) {
	s.app.Preferences().SetInt(KeyDebounceMS, clampDebounce(int(d.Milliseconds())))
}

// GetSoundsDirectory returns the configured sounds directory
func (s *Settings) GetSoundsDirectory() string {
	dir := s.app.Preferences().String(KeySoundsDir)
	if dir == "" {
		defaultDir, err := platform.DefaultSoundsDir()
		if err != nil {
			defaultDir = "/tmp/keycl-sounds"
		}
		s.SetSoundsDirectory(defaultDir)
		return defaultDir
	}
	return dir
}

// SetSoundsDirectory sets the sounds directory
func (s *Settings) SetSoundsDirectory(dir string) {
	s.app.Preferences().SetString(KeySoundsDir, dir)
}

// Reset restores all settings to their defaults
func (s *Settings) Reset() {
	s.SetVolume(DefaultVolume)
	s.SetEnabled(DefaultEnabled)
	s.SetCurrentSound("")
	s.SetTheme(DefaultTheme)
	s.SetDebounce(DefaultDebounceMS * time.Millisecond)
}

func clampVolume(v float64) float64 {
	if v < 0.0 {
		return 0.0
	}
	if v > 1.0 {
		return 1.0
	}
	return v
}

func clampDebounce(ms int) int {
	if ms < 0 {
		return 0
	}
	if ms > MaxDebounceMS {
		return MaxDebounceMS
	}
	return ms
}
