package ui

// Package ui implements the fyne desktop interface: the main window with
// sound selection and playback controls, the online package browser, the
// settings dialog, and the system tray menu. UI code never touches the
// network or the sound device directly; it drives the audio, dispatch,
// and soundpack services and reacts to their callbacks.
