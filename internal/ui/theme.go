package ui

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/theme"

	"github.com/keycl/keycl/internal/config"
)

// PresetTheme pins the fyne theme variant to the user's preset so the
// window does not follow the desktop appearance unless asked to.
type PresetTheme struct {
	variant fyne.ThemeVariant
}

// NewPresetTheme creates a theme for the given preset. The system preset
// returns nil, meaning the default theme should stay in place.
func NewPresetTheme(preset config.ThemePreset) fyne.Theme {
	switch preset {
	case config.ThemeDark:
		return &PresetTheme{variant: theme.VariantDark}
	case config.ThemeLight:
		return &PresetTheme{variant: theme.VariantLight}
	default:
		return nil
	}
}

// ApplyTheme installs the theme matching the preset on the application.
func ApplyTheme(app fyne.App, preset config.ThemePreset) {
	if t := NewPresetTheme(preset); t != nil {
		app.Settings().SetTheme(t)
		return
	}
	app.Settings().SetTheme(theme.DefaultTheme())
}

// Color returns theme colors with the variant forced to the preset
func (t *PresetTheme) Color(name fyne.ThemeColorName, _ fyne.ThemeVariant) color.Color {
	return theme.DefaultTheme().Color(name, t.variant)
}

// Font returns theme fonts
func (t *PresetTheme) Font(style fyne.TextStyle) fyne.Resource {
	return theme.DefaultTheme().Font(style)
}

// Icon returns theme icons
func (t *PresetTheme) Icon(name fyne.ThemeIconName) fyne.Resource {
	return theme.DefaultTheme().Icon(name)
}

// Size returns theme sizes
func (t *PresetTheme) Size(name fyne.ThemeSizeName) float32 {
	return theme.DefaultTheme().Size(name)
}
