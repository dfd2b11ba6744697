package main

import (
	"fmt"

	"fyne.io/fyne/v2/app"
	"go.uber.org/zap"

	"github.com/keycl/keycl/internal/audio"
	"github.com/keycl/keycl/internal/config"
	"github.com/keycl/keycl/internal/dispatch"
	"github.com/keycl/keycl/internal/hook"
	"github.com/keycl/keycl/internal/logger"
	"github.com/keycl/keycl/internal/platform"
	"github.com/keycl/keycl/internal/soundpack"
	"github.com/keycl/keycl/internal/ui"
)

// Version is set during build via -ldflags "-X main.version=X.Y.Z"
var version = "dev"

const (
	AppID   = "com.keycl.keycl"
	AppName = "KeyCL"
)

func main() {
	fmt.Printf("%s v%s starting...\n", AppName, version)

	// Create new Fyne app
	myApp := app.NewWithID(AppID)

	settings := config.NewSettings(myApp)

	soundsDir := settings.GetSoundsDirectory()
	log := logger.New(logger.Config{Dir: soundsDir})
	defer log.Sync()

	if err := platform.CreateDirectoryIfNotExists(soundsDir); err != nil {
		log.Error("Failed to ensure sounds dir", zap.String("dir", soundsDir), zap.Error(err))
	}

	// Apply configured theme
	ui.ApplyTheme(myApp, settings.GetTheme())

	windowTitle := fmt.Sprintf("%s v%s", AppName, version)
	myWindow := myApp.NewWindow(windowTitle)

	// Initialize audio. Without a sound device the app still runs, it
	// just plays nothing.
	var backend audio.Backend
	if beepBackend, err := audio.NewBeepBackend(); err != nil {
		log.Error("Sound device unavailable, running silent", zap.Error(err))
		backend = audio.NewNopBackend()
	} else {
		backend = beepBackend
	}

	library := audio.NewLibrary(soundsDir, backend, log)
	count, errs := library.Reload()
	log.Info("Sound library loaded", zap.Int("sounds", count), zap.Int("errors", len(errs)))

	// Dispatch pipeline
	state := dispatch.NewState(settings.GetEnabled(), settings.GetCurrentSound(), settings.GetVolume())
	dispatcher := dispatch.NewDispatcher(state, library, log)
	dispatcher.SetDebounce(settings.GetDebounce())
	dispatcher.Start()
	defer dispatcher.Stop()

	// Sound package services
	client := soundpack.NewClient("", log)
	installer := soundpack.NewInstaller(soundsDir, client, library, log)

	// UI
	svc := ui.Services{
		Library:    library,
		State:      state,
		Dispatcher: dispatcher,
		Client:     client,
		Installer:  installer,
		Settings:   settings,
		Log:        log,
	}
	rootUI := ui.NewRootUI(myWindow, myApp, svc)
	installer.SetInstallCallback(rootUI.OnPackageInstalled)
	ui.SetupTray(myApp, myWindow, rootUI, svc)

	// Watch the sounds directory so manual file drops show up without a
	// manual refresh.
	watcher, err := audio.WatchDirectory(soundsDir, func() {
		library.Reload()
		rootUI.ReloadSounds()
	}, log)
	if err != nil {
		log.Warn("Directory watch unavailable", zap.String("dir", soundsDir), zap.Error(err))
	} else {
		defer watcher.Close()
	}

	// Global keyboard hook
	source := hook.NewSource(dispatcher.Submit, log)
	source.Start()
	defer source.Stop()

	// Closing the window hides it; the app stays resident in the tray
	// and exits only through the tray's Quit item.
	myWindow.SetCloseIntercept(myWindow.Hide)

	// Show and run
	myWindow.ShowAndRun()
}
