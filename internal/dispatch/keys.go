package dispatch

import "strings"

// excludedKeys are modifier and lock keys that must never trigger playback.
// Matching is by containment so platform variants like "left shift" or
// "right ctrl" are excluded too.
var excludedKeys = []string{
	"shift",
	"ctrl",
	"control",
	"alt",
	"cmd",
	"command",
	"meta",
	"win",
	"tab",
	"caps lock",
	"capslock",
}

// NormalizeKey lowercases and trims a raw key identifier from the hook.
func NormalizeKey(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// Excluded reports whether a normalized key identifier matches the
// modifier/lock exclusion set.
func Excluded(name string) bool {
	for _, excluded := range excludedKeys {
		if strings.Contains(name, excluded) {
			return true
		}
	}
	return false
}
