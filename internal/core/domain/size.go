package domain

import (
	"encoding/json"
	"maps"
	"math"
)

// DefaultMtimeTolerance is the largest mtime drift, in seconds, that still counts as unchanged.
const DefaultMtimeTolerance = 0.001

// PendingText is shown in place of a size while it is being computed.
const PendingText = "computing…"

// SizeEntry is the last measured size of a folder together with the folder mtime at measurement.
type SizeEntry struct {
	Size    int64     `json:"size"`
	Mtime   float64   `json:"mtime"`
	Updated Timestamp `json:"updated"`
}

// FreshAt reports whether the entry is still valid for a folder whose live mtime is mtime.
func (e SizeEntry) FreshAt(mtime, tolerance float64) bool {
	return math.Abs(mtime-e.Mtime) <= tolerance
}

// Same reports whether both entries record the same measurement.
func (e SizeEntry) Same(other SizeEntry) bool {
	return e.Size == other.Size && e.Mtime == other.Mtime
}

// SizeIndex maps absolute folder paths to their size entries.
// Decoding drops entries that lack a non-negative integral size or a numeric mtime.
type SizeIndex map[string]SizeEntry

// MarshalJSON encodes a nil index as an empty object.
func (x SizeIndex) MarshalJSON() ([]byte, error) {
	if x == nil {
		return []byte("{}"), nil
	}
	return marshalVerbatim(map[string]SizeEntry(x))
}

// UnmarshalJSON implements json.Unmarshaler.
func (x *SizeIndex) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	out := make(SizeIndex, len(raw))
	for path, r := range raw {
		var e struct {
			Size    *float64  `json:"size"`
			Mtime   *float64  `json:"mtime"`
			Updated Timestamp `json:"updated"`
		}
		if json.Unmarshal(r, &e) != nil || e.Size == nil || e.Mtime == nil {
			continue
		}
		if *e.Size < 0 || *e.Size != math.Trunc(*e.Size) {
			continue
		}
		out[path] = SizeEntry{Size: int64(*e.Size), Mtime: *e.Mtime, Updated: e.Updated}
	}
	*x = out
	return nil
}

// Clone returns a shallow copy of the index.
func (x SizeIndex) Clone() SizeIndex {
	if x == nil {
		return SizeIndex{}
	}
	return maps.Clone(x)
}

// SizeCell is what a file list shows in its size column.
type SizeCell struct {
	// Text is the display string, or PendingText while computing.
	Text string
	// Tooltip carries the exact byte count when known.
	Tooltip string
	// Bytes is the known size, or -1 while computing.
	Bytes int64
	// Pending is true while the size is being computed.
	Pending bool
}

// Row is one entry of a directory listing.
type Row struct {
	Name  string
	Path  string
	IsDir bool
	Size  SizeCell
}
