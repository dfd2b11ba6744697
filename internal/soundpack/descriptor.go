package soundpack

import (
	"bufio"
	"encoding/json"
	"net/url"
	"path"
	"regexp"
	"strings"

	"github.com/keycl/keycl/internal/audio"
	"github.com/keycl/keycl/internal/model"
)

// Package file constants
const (
	// PackageExtension is the descriptor file extension, used both for
	// online library entries and for installed sidecars.
	PackageExtension = ".keyclsound"

	// DefaultPayloadExtension is used when a source URL carries no
	// recognized audio extension.
	DefaultPayloadExtension = ".mp3"

	// FallbackBaseName replaces titles that sanitize down to nothing.
	FallbackBaseName = "sound"
)

var (
	reservedPathChars = regexp.MustCompile(`[\\/:*?"<>|]+`)
	innerWhitespace   = regexp.MustCompile(`\s+`)
)

// ParseDescriptor parses .keyclsound text into a normalized descriptor.
// Structured JSON is attempted first; on any failure the text is re-read as
// line-oriented `key: value` pairs. Unknown keys are ignored, tags encoded
// as a comma string are split, and missing fields receive their defaults,
// so callers always see one fully-populated record shape. Packages stay
// hand-editable as plain text while machine-generated JSON keeps working.
func ParseDescriptor(text string) model.PackageDescriptor {
	text = strings.TrimSpace(text)

	var desc model.PackageDescriptor
	if err := json.Unmarshal([]byte(text), &desc); err != nil {
		desc = parseKeyValueLines(text)
	}

	desc.ApplyDefaults()
	return desc
}

// parseKeyValueLines is the loose-format fallback: one `key: value` pair
// per line, keys case-insensitive.
func parseKeyValueLines(text string) model.PackageDescriptor {
	var desc model.PackageDescriptor

	scanner := bufio.NewScanner(strings.NewReader(text))
	for scanner.Scan() {
		rawKey, rawValue, found := strings.Cut(scanner.Text(), ":")
		if !found {
			continue
		}

		value := strings.TrimSpace(rawValue)
		switch strings.ToLower(strings.TrimSpace(rawKey)) {
		case "title":
			desc.Title = value
		case "author":
			desc.Author = value
		case "description":
			desc.Description = value
		case "tags":
			desc.Tags = model.SplitTags(value)
		case "url":
			desc.SourceURL = value
		}
	}

	return desc
}

// SerializeDescriptor renders the canonical structured form written as an
// installed sidecar: indented JSON with all five fields present, whatever
// format the descriptor was parsed from.
func SerializeDescriptor(desc model.PackageDescriptor) ([]byte, error) {
	desc.ApplyDefaults()
	return json.MarshalIndent(desc, "", "  ")
}

// SanitizeTitle turns a display title into a filesystem-safe base name:
// reserved path characters become underscores, internal whitespace is
// collapsed, and an empty result falls back to "sound".
func SanitizeTitle(title string) string {
	name := strings.TrimSpace(title)
	name = reservedPathChars.ReplaceAllString(name, "_")
	name = innerWhitespace.ReplaceAllString(name, " ")
	name = strings.TrimSpace(name)
	if name == "" {
		return FallbackBaseName
	}
	return name
}

// PayloadExtension picks the installed audio extension from the source
// URL's suffix when it is on the audio allow-list, defaulting to .mp3.
func PayloadExtension(rawURL string) string {
	suffix := rawURL
	if parsed, err := url.Parse(rawURL); err == nil {
		suffix = parsed.Path
	}

	ext := strings.ToLower(path.Ext(suffix))
	if audio.RecognizedExtension(ext) {
		return ext
	}
	return DefaultPayloadExtension
}
