package domain

import (
	"encoding/json"
	"slices"
)

// PathList is a JSON array of paths. Decoding drops elements that are not non-empty strings.
type PathList []string

// MarshalJSON encodes a nil list as an empty array.
func (l PathList) MarshalJSON() ([]byte, error) {
	if l == nil {
		return []byte("[]"), nil
	}
	return marshalVerbatim([]string(l))
}

// UnmarshalJSON implements json.Unmarshaler.
func (l *PathList) UnmarshalJSON(data []byte) error {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	out := make(PathList, 0, len(raw))
	for _, r := range raw {
		var s string
		if json.Unmarshal(r, &s) != nil || s == "" {
			continue
		}
		out = append(out, s)
	}
	*l = out
	return nil
}

// Contains reports whether p is in the list.
func (l PathList) Contains(p string) bool {
	return slices.Contains(l, p)
}

// Bookmarks maps bookmark names to paths. Decoding drops non-string values.
type Bookmarks map[string]string

// MarshalJSON encodes a nil map as an empty object.
func (b Bookmarks) MarshalJSON() ([]byte, error) {
	if b == nil {
		return []byte("{}"), nil
	}
	return marshalVerbatim(map[string]string(b))
}

// UnmarshalJSON implements json.Unmarshaler.
func (b *Bookmarks) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	out := make(Bookmarks, len(raw))
	for name, r := range raw {
		var s string
		if json.Unmarshal(r, &s) != nil || s == "" {
			continue
		}
		out[name] = s
	}
	*b = out
	return nil
}

// Settings is a free-form map of user preferences.
type Settings map[string]any

// MarshalJSON encodes a nil map as an empty object.
func (s Settings) MarshalJSON() ([]byte, error) {
	if s == nil {
		return []byte("{}"), nil
	}
	return marshalVerbatim(map[string]any(s))
}

// DefaultSettings returns the preferences used when the user has not set a value.
func DefaultSettings() Settings {
	return Settings{
		"theme":                "liquid_glass",
		"font_size":            11,
		"font_family":          "Segoe UI",
		"blur_enabled":         true,
		"shadow_enabled":       true,
		"confirm_delete":       true,
		"use_trash":            true,
		"double_click_open":    true,
		"show_hidden":          false,
		"remember_location":    true,
		"auto_refresh":         true,
		"refresh_interval":     5,
		"view_mode":            "list",
		"icon_size":            32,
		"alternating_rows":     true,
		"show_sidebar":         true,
		"sidebar_width":        250,
		"show_toolbar":         true,
		"toolbar_style":        "text_beside_icon",
		"debug_mode":           false,
		"show_file_extensions": true,
	}
}

// HistoryEntry records a visited path.
type HistoryEntry struct {
	Path      string    `json:"path"`
	Timestamp Timestamp `json:"timestamp"`
}

// History is an oldest-first list of entries. Decoding drops elements without a string path.
type History []HistoryEntry

// MarshalJSON encodes a nil history as an empty array.
func (h History) MarshalJSON() ([]byte, error) {
	if h == nil {
		return []byte("[]"), nil
	}
	return marshalVerbatim([]HistoryEntry(h))
}

// UnmarshalJSON implements json.Unmarshaler.
func (h *History) UnmarshalJSON(data []byte) error {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	out := make(History, 0, len(raw))
	for _, r := range raw {
		var e struct {
			Path      *string   `json:"path"`
			Timestamp Timestamp `json:"timestamp"`
		}
		if json.Unmarshal(r, &e) != nil || e.Path == nil || *e.Path == "" {
			continue
		}
		out = append(out, HistoryEntry{Path: *e.Path, Timestamp: e.Timestamp})
	}
	*h = out
	return nil
}

// Newest returns the last n entries, oldest first. A limit of zero or less returns everything.
func (h History) Newest(n int) History {
	if n <= 0 || n >= len(h) {
		return slices.Clone(h)
	}
	return slices.Clone(h[len(h)-n:])
}

// Without returns h minus every entry for path.
func (h History) Without(path string) History {
	return slices.DeleteFunc(slices.Clone(h), func(e HistoryEntry) bool {
		return e.Path == path
	})
}
