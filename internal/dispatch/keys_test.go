package dispatch

import "testing"

func TestNormalizeKey(t *testing.T) {
	cases := map[string]string{
		"  A ":       "a",
		"Shift":      "shift",
		"CAPS LOCK":  "caps lock",
		"space":      "space",
		"Left Shift": "left shift",
	}

	for in, want := range cases {
		if got := NormalizeKey(in); got != want {
			t.Errorf("NormalizeKey(%q): expected %q, got %q", in, want, got)
		}
	}
}

func TestExcluded(t *testing.T) {
	excluded := []string{
		"shift", "left shift", "right shift",
		"ctrl", "control", "right ctrl",
		"alt", "alt gr",
		"cmd", "command", "meta", "win", "left win",
		"tab", "caps lock", "capslock",
	}
	for _, key := range excluded {
		if !Excluded(key) {
			t.Errorf("Expected %q to be excluded", key)
		}
	}

	allowed := []string{"a", "z", "1", "space", "enter", "backspace", "f5", "-"}
	for _, key := range allowed {
		if Excluded(key) {
			t.Errorf("Expected %q to be allowed", key)
		}
	}
}
