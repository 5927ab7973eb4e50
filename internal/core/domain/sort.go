package domain

import (
	"cmp"
	"slices"
	"strings"
)

// SortKey selects the order of a directory listing.
type SortKey string

const (
	// SortByName orders rows by case-insensitive name.
	SortByName SortKey = "name"
	// SortBySize orders rows by size, largest first. Unknown sizes sort last.
	SortBySize SortKey = "size"
)

// ParseSortKey converts a flag value to a SortKey, defaulting to name.
func ParseSortKey(s string) SortKey {
	if SortKey(strings.ToLower(s)) == SortBySize {
		return SortBySize
	}
	return SortByName
}

// SortRows orders rows in place. Directories always come before files.
func SortRows(rows []Row, by SortKey) {
	slices.SortStableFunc(rows, func(a, b Row) int {
		if a.IsDir != b.IsDir {
			if a.IsDir {
				return -1
			}
			return 1
		}
		if by == SortBySize {
			if c := cmp.Compare(b.Size.Bytes, a.Size.Bytes); c != 0 {
				return c
			}
		}
		return cmp.Compare(strings.ToLower(a.Name), strings.ToLower(b.Name))
	})
}
