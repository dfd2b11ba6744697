package ui

import (
	"fmt"
	"strconv"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"github.com/keycl/keycl/internal/config"
)

// SettingsDialog represents the settings configuration dialog
type SettingsDialog struct {
	settings *config.Settings
	app      fyne.App
	window   fyne.Window
	dialog   *dialog.ConfirmDialog
	onSaved  func()

	// UI components
	volumeSlider   *widget.Slider
	volumeValue    *widget.Label
	themeSelect    *widget.Select
	debounceEntry  *widget.Entry
	soundsDirEntry *widget.Entry
}

// NewSettingsDialog creates a new settings dialog
func NewSettingsDialog(settings *config.Settings, app fyne.App, window fyne.Window, onSaved func()) *SettingsDialog {
	sd := &SettingsDialog{
		settings: settings,
		app:      app,
		window:   window,
		onSaved:  onSaved,
	}

	sd.createUI()
	return sd
}

// Show displays the settings dialog
func (sd *SettingsDialog) Show() {
	sd.loadCurrentSettings()
	sd.dialog.Show()
}

// createUI creates the settings dialog UI
func (sd *SettingsDialog) createUI() {
	// Playback volume
	sd.volumeValue = widget.NewLabel("")
	sd.volumeSlider = widget.NewSlider(0, 100)
	sd.volumeSlider.Step = 1
	sd.volumeSlider.OnChanged = func(value float64) {
		sd.volumeValue.SetText(fmt.Sprintf("%d%%", int(value)))
	}
	volumeRow := container.NewBorder(nil, nil, nil, sd.volumeValue, sd.volumeSlider)

	// Theme preset selection
	themeOptions := []string{}
	for _, preset := range sd.settings.GetThemeOptions() {
		themeOptions = append(themeOptions, string(preset))
	}
	sd.themeSelect = widget.NewSelect(themeOptions, nil)

	// Debounce interval
	sd.debounceEntry = widget.NewEntry()
	sd.debounceEntry.SetPlaceHolder(fmt.Sprintf("0-%d", config.MaxDebounceMS))

	// Sounds directory
	sd.soundsDirEntry = widget.NewEntry()
	sd.soundsDirEntry.SetPlaceHolder("Sounds directory path")
	browseDirBtn := widget.NewButton("Browse", sd.onBrowseDirectory)
	soundsDirRow := container.NewBorder(nil, nil, nil, browseDirBtn, sd.soundsDirEntry)

	resetBtn := widget.NewButton("Reset to Defaults", sd.onReset)
	resetBtn.Importance = widget.LowImportance

	// Create form
	form := container.NewVBox(
		widget.NewLabel("Playback Settings"),
		widget.NewSeparator(),

		widget.NewLabel("Volume:"),
		volumeRow,

		widget.NewLabel("Key Debounce (ms):"),
		sd.debounceEntry,

		widget.NewLabel("Sounds Directory:"),
		soundsDirRow,

		widget.NewSeparator(),
		widget.NewLabel("Interface Settings"),
		widget.NewSeparator(),

		widget.NewLabel("Theme:"),
		sd.themeSelect,

		widget.NewSeparator(),
		resetBtn,
	)

	// Create dialog with buttons
	sd.dialog = dialog.NewCustomConfirm(
		"Settings",
		"Save",
		"Cancel",
		form,
		sd.onSave,
		sd.window,
	)

	sd.dialog.Resize(fyne.NewSize(440, 480))
}

// loadCurrentSettings loads current settings into the UI
func (sd *SettingsDialog) loadCurrentSettings() {
	volume := sd.settings.GetVolume() * 100
	sd.volumeSlider.SetValue(volume)
	sd.volumeValue.SetText(fmt.Sprintf("%d%%", int(volume)))
	sd.themeSelect.SetSelected(string(sd.settings.GetTheme()))
	sd.debounceEntry.SetText(strconv.Itoa(int(sd.settings.GetDebounce().Milliseconds())))
	sd.soundsDirEntry.SetText(sd.settings.GetSoundsDirectory())
}

// onBrowseDirectory handles directory browsing
func (sd *SettingsDialog) onBrowseDirectory() {
	dialog.ShowFolderOpen(func(uri fyne.ListableURI, err error) {
		if err != nil || uri == nil {
			return
		}
		sd.soundsDirEntry.SetText(uri.Path())
	}, sd.window)
}

// onReset restores defaults and reloads the form
func (sd *SettingsDialog) onReset() {
	sd.settings.Reset()
	sd.loadCurrentSettings()
}

// onSave handles saving the settings
func (sd *SettingsDialog) onSave(confirmed bool) {
	if !confirmed {
		return
	}

	sd.settings.SetVolume(sd.volumeSlider.Value / 100)

	if sd.themeSelect.Selected != "" {
		sd.settings.SetTheme(config.ThemePreset(sd.themeSelect.Selected))
	}

	if sd.debounceEntry.Text != "" {
		if ms, err := strconv.Atoi(sd.debounceEntry.Text); err == nil {
			sd.settings.SetDebounce(time.Duration(ms) * time.Millisecond)
		}
	}

	if sd.soundsDirEntry.Text != "" {
		sd.settings.SetSoundsDirectory(sd.soundsDirEntry.Text)
	}

	if sd.onSaved != nil {
		sd.onSaved()
	}
}
