// Package config provides the configuration loader for glass.
package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"go.trai.ch/glass/internal/core/domain"
	"go.trai.ch/glass/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

const (
	// EnvConfigPath overrides the location of the config file.
	EnvConfigPath = "GLASS_CONFIG"
	// EnvDataDir overrides the data directory from the config file.
	EnvDataDir = "GLASS_DATA_DIR"
)

// Loader implements ports.ConfigLoader using a YAML file.
// The file is read once; later calls return the same result.
type Loader struct {
	path    string
	dataDir string
	log     ports.Logger

	once sync.Once
	cfg  *domain.Config
	err  error
}

// NewLoader creates a Loader that resolves the config file and data directory
// from the environment, falling back to the user config directory.
func NewLoader(log ports.Logger) *Loader {
	root, err := os.UserConfigDir()
	if err != nil {
		root = "."
	}

	path := os.Getenv(EnvConfigPath)
	if path == "" {
		path = domain.DefaultConfigPath(root)
	}

	dataDir := os.Getenv(EnvDataDir)
	if dataDir == "" {
		dataDir = domain.DefaultDataPath(root)
	}

	return NewFileLoader(path, dataDir, log)
}

// NewFileLoader creates a Loader for the given config file. defaultDataDir is used
// unless the file or GLASS_DATA_DIR sets a data directory.
func NewFileLoader(path, defaultDataDir string, log ports.Logger) *Loader {
	return &Loader{
		path:    ExpandHome(path),
		dataDir: defaultDataDir,
		log:     log,
	}
}

// Path returns the config file location.
func (l *Loader) Path() string {
	return l.path
}

// Load reads the configuration, returning defaults when the file does not exist.
func (l *Loader) Load() (*domain.Config, error) {
	l.once.Do(func() {
		l.cfg, l.err = Load(l.path, l.dataDir)
		if l.err != nil {
			return
		}
		if dir := os.Getenv(EnvDataDir); dir != "" {
			l.cfg.DataDir = ExpandHome(dir)
		}
		l.log.Debug("config loaded", "path", l.path, "data_dir", l.cfg.DataDir)
	})
	if l.err != nil {
		return nil, l.err
	}
	cfg := *l.cfg
	cfg.Ignore = append([]string(nil), l.cfg.Ignore...)
	return &cfg, nil
}

// Load reads a configuration file from the given path and applies it over the defaults.
// A missing file yields the defaults.
func Load(path, defaultDataDir string) (*domain.Config, error) {
	cfg := domain.DefaultConfig(ExpandHome(defaultDataDir))

	data, err := os.ReadFile(path) //nolint:gosec // path is provided by user
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return cfg, nil
		}
		return nil, zerr.With(zerr.Wrap(err, domain.ErrConfigReadFailed.Error()), "path", path)
	}

	var file Configfile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrConfigParseFailed.Error()), "path", path)
	}

	if err := apply(cfg, &file); err != nil {
		return nil, zerr.With(err, "path", path)
	}
	return cfg, nil
}

func apply(cfg *domain.Config, file *Configfile) error {
	if file.DataDir != nil && *file.DataDir != "" {
		cfg.DataDir = ExpandHome(*file.DataDir)
	}
	if file.Workers != nil {
		if *file.Workers < 0 {
			return zerr.With(zerr.Wrap(domain.ErrInvalidConfig, "workers must not be negative"), "workers", *file.Workers)
		}
		if *file.Workers > 0 {
			cfg.Workers = *file.Workers
		}
	}
	if file.MtimeTolerance != nil {
		if *file.MtimeTolerance < 0 {
			return zerr.With(zerr.Wrap(domain.ErrInvalidConfig, "mtime_tolerance must not be negative"), "mtime_tolerance", *file.MtimeTolerance)
		}
		cfg.MtimeTolerance = *file.MtimeTolerance
	}
	if file.HistoryLimit != nil {
		if *file.HistoryLimit <= 0 {
			return zerr.With(zerr.Wrap(domain.ErrInvalidConfig, "history_limit must be positive"), "history_limit", *file.HistoryLimit)
		}
		cfg.HistoryLimit = *file.HistoryLimit
	}
	if file.RecentLimit != nil {
		if *file.RecentLimit <= 0 {
			return zerr.With(zerr.Wrap(domain.ErrInvalidConfig, "recent_limit must be positive"), "recent_limit", *file.RecentLimit)
		}
		cfg.RecentLimit = *file.RecentLimit
	}
	if file.LogLevel != nil {
		cfg.LogLevel = strings.ToLower(strings.TrimSpace(*file.LogLevel))
	}
	for _, name := range file.Ignore {
		if name = strings.TrimSpace(name); name != "" {
			cfg.Ignore = append(cfg.Ignore, name)
		}
	}
	return nil
}

// ExpandHome replaces a leading ~ with the user's home directory.
func ExpandHome(p string) string {
	if p == "" {
		return p
	}
	if strings.HasPrefix(p, "~/") || p == "~" {
		home, err := os.UserHomeDir()
		if err == nil {
			if p == "~" {
				return home
			}
			return filepath.Join(home, strings.TrimPrefix(p, "~/"))
		}
	}
	return p
}
