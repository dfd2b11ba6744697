package dispatch

// Package dispatch implements the key-to-sound pipeline: process-wide
// dispatch state (enabled gate, current selection, volume) and the
// dispatcher that filters, debounces, and plays key-press events. The OS
// hook thread hands events to a bounded channel; the dispatcher consumes
// them on its own goroutine, so hook callbacks never block and filter
// logic is testable without a real keyboard.
