package ui

import (
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/driver/desktop"
	"go.uber.org/zap"

	"github.com/keycl/keycl/internal/platform"
)

// Quick volume presets shown in the tray menu, in percent.
var trayVolumePresets = []int{25, 50, 75, 100}

// Tray manages the system tray icon and its menu. The menu is rebuilt
// whenever dispatch state or the sound set changes so checkmarks stay
// accurate.
type Tray struct {
	app    desktop.App
	window fyne.Window
	root   *RootUI
	svc    Services
	log    *zap.Logger
}

// SetupTray installs the system tray menu when the platform supports one.
// Returns nil on platforms without tray support.
func SetupTray(app fyne.App, window fyne.Window, root *RootUI, svc Services) *Tray {
	desk, ok := app.(desktop.App)
	if !ok {
		svc.Log.Info("System tray not supported on this platform")
		return nil
	}

	tray := &Tray{
		app:    desk,
		window: window,
		root:   root,
		svc:    svc,
		log:    svc.Log,
	}
	tray.Rebuild()
	root.SetStateChangeCallback(tray.Rebuild)
	return tray
}

// Rebuild regenerates the tray menu from current state. Safe to call from
// any goroutine.
func (t *Tray) Rebuild() {
	fyne.Do(func() {
		t.app.SetSystemTrayMenu(t.buildMenu())
	})
}

func (t *Tray) buildMenu() *fyne.Menu {
	items := []*fyne.MenuItem{
		fyne.NewMenuItem("Open KeyCL", func() {
			t.window.Show()
			t.window.RequestFocus()
		}),
		fyne.NewMenuItemSeparator(),
		t.enableItem(),
		fyne.NewMenuItemSeparator(),
	}

	items = append(items, t.volumeItems()...)
	items = append(items, fyne.NewMenuItemSeparator())
	items = append(items, t.soundItems()...)
	items = append(items,
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Refresh Sounds", func() {
			go func() {
				t.svc.Library.Reload()
				t.root.ReloadSounds()
			}()
		}),
		fyne.NewMenuItem("Open Sounds Folder", func() {
			dir := t.svc.Settings.GetSoundsDirectory()
			if err := platform.OpenFolder(dir); err != nil {
				t.log.Warn("Failed to open sounds folder",
					zap.String("dir", dir), zap.Error(err))
			}
		}),
	)

	return fyne.NewMenu("KeyCL", items...)
}

// enableItem toggles key-press playback
func (t *Tray) enableItem() *fyne.MenuItem {
	item := fyne.NewMenuItem("Enabled", func() {
		enabled := t.svc.State.Toggle()
		t.svc.Settings.SetEnabled(enabled)
		t.root.ReloadSounds()
	})
	item.Checked = t.svc.State.Enabled()
	return item
}

// volumeItems offers quick volume presets
func (t *Tray) volumeItems() []*fyne.MenuItem {
	currentPct := int(t.svc.State.Volume() * 100)
	items := make([]*fyne.MenuItem, 0, len(trayVolumePresets))
	for _, pct := range trayVolumePresets {
		preset := pct // Capture for closure
		item := fyne.NewMenuItem(fmt.Sprintf("Volume %d%%", preset), func() {
			volume := float64(preset) / 100
			t.svc.State.SetVolume(volume)
			t.svc.Settings.SetVolume(volume)
			t.Rebuild()
		})
		item.Checked = currentPct == preset
		items = append(items, item)
	}
	return items
}

// soundItems lists installed sounds for quick selection
func (t *Tray) soundItems() []*fyne.MenuItem {
	sounds := t.svc.Library.List()
	if len(sounds) == 0 {
		item := fyne.NewMenuItem("No sounds installed", nil)
		item.Disabled = true
		return []*fyne.MenuItem{item}
	}

	current := t.svc.State.Current()
	items := make([]*fyne.MenuItem, 0, len(sounds))
	for _, name := range sounds {
		soundName := name // Capture for closure
		item := fyne.NewMenuItem(soundName, func() {
			t.svc.State.SetCurrent(soundName)
			t.svc.Settings.SetCurrentSound(soundName)
			t.root.ReloadSounds()
		})
		item.Checked = soundName == current
		items = append(items, item)
	}
	return items
}
