package ports

import "go.trai.ch/glass/internal/core/domain"

// SizeCache answers folder size queries from memory, validated against the live folder mtime.
//
//go:generate go run go.uber.org/mock/mockgen -source=size_cache.go -destination=mocks/mock_size_cache.go -package=mocks
type SizeCache interface {
	// Get returns the cached size of path if the entry exists and is still fresh.
	Get(path string) (int64, bool)

	// Set records size for path and persists the cache unless nothing changed.
	Set(path string, size int64) bool

	// Entry returns the raw entry for path without freshness validation.
	Entry(path string) (domain.SizeEntry, bool)
}
