package config

// Configfile represents the structure of the config.yaml file.
// Pointer fields distinguish an omitted key from an explicit zero.
type Configfile struct {
	DataDir        *string  `yaml:"data_dir"`
	Workers        *int     `yaml:"workers"`
	MtimeTolerance *float64 `yaml:"mtime_tolerance"`
	HistoryLimit   *int     `yaml:"history_limit"`
	RecentLimit    *int     `yaml:"recent_limit"`
	LogLevel       *string  `yaml:"log_level"`
	Ignore         []string `yaml:"ignore"`
}
