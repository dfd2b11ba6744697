package ui

import (
	"context"
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/widget"
	"go.uber.org/zap"

	"github.com/keycl/keycl/internal/audio"
	"github.com/keycl/keycl/internal/config"
	"github.com/keycl/keycl/internal/dispatch"
	"github.com/keycl/keycl/internal/model"
	"github.com/keycl/keycl/internal/platform"
	"github.com/keycl/keycl/internal/soundpack"
)

// UI constants
const (
	RootWindowWidth  = 420
	RootWindowHeight = 560
)

// Services bundles everything the main window drives.
type Services struct {
	Library    *audio.Library
	State      *dispatch.State
	Dispatcher *dispatch.Dispatcher
	Client     *soundpack.Client
	Installer  *soundpack.Installer
	Settings   *config.Settings
	Log        *zap.Logger
}

// RootUI represents the main window
type RootUI struct {
	window fyne.Window
	app    fyne.App
	svc    Services

	statusLabel  *widget.Label
	enableCheck  *widget.Check
	volumeSlider *widget.Slider
	volumeLabel  *widget.Label
	soundList    *widget.List

	sounds []string

	onStateChange func()
}

// NewRootUI creates and initializes the main window
func NewRootUI(window fyne.Window, app fyne.App, svc Services) *RootUI {
	ui := &RootUI{
		window: window,
		app:    app,
		svc:    svc,
		sounds: svc.Library.List(),
	}

	window.SetTitle("KeyCL")
	window.Resize(fyne.NewSize(RootWindowWidth, RootWindowHeight))

	ui.setupUI()
	ui.refreshStatus()
	return ui
}

// SetStateChangeCallback registers a hook fired whenever enabled state,
// selection, or the sound set changes. The tray menu uses it to rebuild.
func (ui *RootUI) SetStateChangeCallback(cb func()) {
	ui.onStateChange = cb
}

// setupUI creates and arranges all window components
func (ui *RootUI) setupUI() {
	ui.statusLabel = widget.NewLabel("")
	ui.statusLabel.TextStyle = fyne.TextStyle{Bold: true}

	ui.enableCheck = widget.NewCheck("Play sound on key press", func(enabled bool) {
		ui.svc.State.SetEnabled(enabled)
		ui.svc.Settings.SetEnabled(enabled)
		ui.refreshStatus()
		ui.notifyStateChange()
	})
	ui.enableCheck.SetChecked(ui.svc.State.Enabled())

	ui.volumeLabel = widget.NewLabel("")
	ui.volumeSlider = widget.NewSlider(0, 100)
	ui.volumeSlider.Step = 1
	ui.volumeSlider.SetValue(ui.svc.State.Volume() * 100)
	ui.volumeSlider.OnChanged = func(value float64) {
		ui.svc.State.SetVolume(value / 100)
		ui.svc.Settings.SetVolume(value / 100)
		ui.refreshStatus()
	}

	ui.soundList = widget.NewList(
		func() int { return len(ui.sounds) },
		func() fyne.CanvasObject { return ui.createSoundRow() },
		func(id widget.ListItemID, obj fyne.CanvasObject) { ui.updateSoundRow(id, obj) },
	)

	refreshBtn := widget.NewButton("Refresh", ui.onRefresh)
	browseBtn := widget.NewButton("Browse Online", ui.onBrowseOnline)
	installBtn := widget.NewButton("Install from File", ui.onInstallFromFile)
	folderBtn := widget.NewButton("Open Folder", ui.onOpenFolder)
	settingsBtn := widget.NewButton("Settings", ui.onShowSettings)
	settingsBtn.Importance = widget.LowImportance
	aboutBtn := widget.NewButton("About", ui.onShowAbout)
	aboutBtn.Importance = widget.LowImportance

	topPanel := container.NewVBox(
		ui.statusLabel,
		ui.enableCheck,
		container.NewBorder(nil, nil, widget.NewLabel("Volume"), ui.volumeLabel, ui.volumeSlider),
		widget.NewSeparator(),
	)

	bottomPanel := container.NewVBox(
		widget.NewSeparator(),
		container.NewGridWithColumns(2, refreshBtn, browseBtn),
		container.NewGridWithColumns(2, installBtn, folderBtn),
		container.NewGridWithColumns(2, settingsBtn, aboutBtn),
	)

	content := container.NewBorder(
		topPanel,     // top
		bottomPanel,  // bottom
		nil,          // left
		nil,          // right
		ui.soundList, // center
	)

	ui.window.SetContent(content)
}

// createSoundRow builds the template row for the sound list
func (ui *RootUI) createSoundRow() fyne.CanvasObject {
	name := widget.NewLabel("sound name")
	name.Truncation = fyne.TextTruncateEllipsis
	testBtn := widget.NewButton("Test", nil)
	selectBtn := widget.NewButton("Select", nil)
	return container.NewBorder(nil, nil, nil, container.NewHBox(testBtn, selectBtn), name)
}

// updateSoundRow binds a list row to the sound at the given index
func (ui *RootUI) updateSoundRow(id widget.ListItemID, obj fyne.CanvasObject) {
	if id >= len(ui.sounds) {
		return
	}
	soundName := ui.sounds[id]

	row := obj.(*fyne.Container)
	name := row.Objects[0].(*widget.Label)
	buttons := row.Objects[1].(*fyne.Container)
	testBtn := buttons.Objects[0].(*widget.Button)
	selectBtn := buttons.Objects[1].(*widget.Button)

	if soundName == ui.svc.State.Current() {
		name.SetText(soundName + "  (active)")
	} else {
		name.SetText(soundName)
	}

	testBtn.OnTapped = func() {
		if err := ui.svc.Library.Play(soundName, ui.svc.State.Volume()); err != nil {
			ui.svc.Log.Warn("Test playback failed",
				zap.String("sound", soundName), zap.Error(err))
		}
	}
	selectBtn.OnTapped = func() {
		ui.selectSound(soundName)
	}
}

// selectSound makes the named sound the active one and persists the choice.
func (ui *RootUI) selectSound(name string) {
	ui.svc.State.SetCurrent(name)
	ui.svc.Settings.SetCurrentSound(name)
	ui.soundList.Refresh()
	ui.refreshStatus()
	ui.notifyStateChange()
}

// ReloadSounds re-reads the library contents into the list. Safe to call
// from any goroutine.
func (ui *RootUI) ReloadSounds() {
	sounds := ui.svc.Library.List()
	fyne.Do(func() {
		ui.sounds = sounds
		ui.soundList.Refresh()
		ui.refreshStatus()
	})
	ui.notifyStateChange()
}

// refreshStatus updates the header line and volume caption
func (ui *RootUI) refreshStatus() {
	current := ui.svc.State.Current()
	if current == "" {
		current = "none"
	}
	state := "enabled"
	if !ui.svc.State.Enabled() {
		state = "disabled"
	}
	ui.statusLabel.SetText(fmt.Sprintf("Active sound: %s (%s)", current, state))
	ui.volumeLabel.SetText(fmt.Sprintf("%d%%", int(ui.svc.State.Volume()*100)))
}

// onRefresh rescans the sounds directory
func (ui *RootUI) onRefresh() {
	go func() {
		count, errs := ui.svc.Library.Reload()
		ui.svc.Log.Info("Library refreshed",
			zap.Int("sounds", count), zap.Int("errors", len(errs)))
		ui.ReloadSounds()
	}()
}

// onBrowseOnline opens the online package browser
func (ui *RootUI) onBrowseOnline() {
	NewBrowserDialog(ui.window, ui.svc).Show()
}

// onInstallFromFile installs a sound package from a local descriptor file
func (ui *RootUI) onInstallFromFile() {
	fileDialog := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil || reader == nil {
			return
		}
		path := reader.URI().Path()
		reader.Close()

		go func() {
			installed, err := ui.svc.Installer.InstallFromFile(context.Background(), path)
			if err != nil {
				ui.svc.Log.Warn("Install from file failed",
					zap.String("path", path), zap.Error(err))
				fyne.Do(func() {
					dialog.ShowError(fmt.Errorf("install failed: %w", err), ui.window)
				})
				return
			}
			ui.ReloadSounds()
			fyne.Do(func() {
				dialog.ShowInformation("Installed",
					fmt.Sprintf("Installed %q", installed.Title), ui.window)
			})
		}()
	}, ui.window)
	fileDialog.SetFilter(storage.NewExtensionFileFilter([]string{soundpack.PackageExtension}))
	fileDialog.Show()
}

// onOpenFolder reveals the sounds directory in the system file manager
func (ui *RootUI) onOpenFolder() {
	dir := ui.svc.Settings.GetSoundsDirectory()
	if err := platform.OpenFolder(dir); err != nil {
		ui.svc.Log.Warn("Failed to open sounds folder",
			zap.String("dir", dir), zap.Error(err))
		dialog.ShowError(fmt.Errorf("could not open %s: %w", dir, err), ui.window)
	}
}

// onShowAbout shows the about dialog
func (ui *RootUI) onShowAbout() {
	dialog.ShowInformation("About KeyCL",
		"KeyCL plays a sound on every key press.\n\n"+
			"Drop audio files into the sounds folder or install\n"+
			".keyclsound packages from the online library.",
		ui.window)
}

// onShowSettings opens the settings dialog
func (ui *RootUI) onShowSettings() {
	NewSettingsDialog(ui.svc.Settings, ui.app, ui.window, ui.onSettingsSaved).Show()
}

// onSettingsSaved propagates saved settings into the running services
func (ui *RootUI) onSettingsSaved() {
	ui.svc.State.SetVolume(ui.svc.Settings.GetVolume())
	ui.svc.Dispatcher.SetDebounce(ui.svc.Settings.GetDebounce())
	ApplyTheme(ui.app, ui.svc.Settings.GetTheme())
	ui.volumeSlider.SetValue(ui.svc.State.Volume() * 100)
	ui.refreshStatus()
}

// OnPackageInstalled is wired as the installer callback: it selects the
// freshly installed sound and refreshes the list.
func (ui *RootUI) OnPackageInstalled(pkg *model.InstalledPackage) {
	ui.svc.Settings.SetCurrentSound(pkg.Name)
	ui.svc.State.SetCurrent(pkg.Name)
	ui.ReloadSounds()
}

func (ui *RootUI) notifyStateChange() {
	if ui.onStateChange != nil {
		ui.onStateChange()
	}
}
