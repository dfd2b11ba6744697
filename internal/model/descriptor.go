package model

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Default values applied to descriptors after parsing
const (
	DefaultTitle = "Untitled Sound"
)

// TagList holds descriptor tags. Hand-written packages often encode tags as
// a single comma separated string, machine-generated ones as a JSON array;
// both decode into the same normalized list.
type TagList []string

// UnmarshalJSON accepts either a JSON array of strings or a single
// comma separated string.
func (t *TagList) UnmarshalJSON(data []byte) error {
	var list []string
	if err := json.Unmarshal(data, &list); err == nil {
		*t = list
		return nil
	}

	var joined string
	if err := json.Unmarshal(data, &joined); err != nil {
		return fmt.Errorf("tags must be an array or a comma separated string")
	}
	*t = SplitTags(joined)
	return nil
}

// MarshalJSON always emits a JSON array, never null.
func (t TagList) MarshalJSON() ([]byte, error) {
	if t == nil {
		return []byte("[]"), nil
	}
	return json.Marshal([]string(t))
}

// SplitTags splits a comma separated tag string into a trimmed list,
// dropping empty entries.
func SplitTags(s string) TagList {
	parts := strings.Split(s, ",")
	tags := make(TagList, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			tags = append(tags, trimmed)
		}
	}
	return tags
}

// PackageDescriptor is the normalized record parsed from a .keyclsound
// package. Every field has a defined default; a descriptor is never
// partially absent after ApplyDefaults.
type PackageDescriptor struct {
	Title       string  `json:"title"`
	Author      string  `json:"author"`
	Description string  `json:"description"`
	Tags        TagList `json:"tags"`
	SourceURL   string  `json:"url"`
}

// ApplyDefaults fills missing fields with their documented defaults.
func (d *PackageDescriptor) ApplyDefaults() {
	if strings.TrimSpace(d.Title) == "" {
		d.Title = DefaultTitle
	}
	if d.Tags == nil {
		d.Tags = TagList{}
	}
}

// Equal reports field-by-field equality.
func (d PackageDescriptor) Equal(other PackageDescriptor) bool {
	if d.Title != other.Title || d.Author != other.Author ||
		d.Description != other.Description || d.SourceURL != other.SourceURL {
		return false
	}
	if len(d.Tags) != len(other.Tags) {
		return false
	}
	for i := range d.Tags {
		if d.Tags[i] != other.Tags[i] {
			return false
		}
	}
	return true
}
