package hook

// Package hook bridges the operating system's global keyboard hook into
// the dispatch pipeline. It owns the hook goroutine so callers never
// block on OS event delivery, and translates raw key codes into the
// readable names the dispatcher filters on.
