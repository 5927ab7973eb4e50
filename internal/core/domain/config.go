package domain

import "runtime"

const (
	// DefaultHistoryLimit is the number of history entries kept.
	DefaultHistoryLimit = 100
	// DefaultRecentLimit is the number of recent files kept.
	DefaultRecentLimit = 50
)

// Config holds the runtime configuration.
type Config struct {
	// DataDir is the directory holding the dataset files.
	DataDir string
	// Workers bounds the number of concurrent folder walks.
	Workers int
	// MtimeTolerance is the allowed mtime drift in seconds before a cached size is stale.
	MtimeTolerance float64
	// HistoryLimit caps the history dataset.
	HistoryLimit int
	// RecentLimit caps the recent files dataset.
	RecentLimit int
	// LogLevel is one of debug, info, warn, error.
	LogLevel string
	// Ignore lists directory base names the walker does not descend into.
	Ignore []string
}

// DefaultConfig returns the configuration used when no file is present.
func DefaultConfig(dataDir string) *Config {
	return &Config{
		DataDir:        dataDir,
		Workers:        runtime.NumCPU(),
		MtimeTolerance: DefaultMtimeTolerance,
		HistoryLimit:   DefaultHistoryLimit,
		RecentLimit:    DefaultRecentLimit,
		LogLevel:       "info",
	}
}
