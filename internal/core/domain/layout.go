package domain

import "path/filepath"

const (
	// AppDirName is the name of the per-user application directory.
	AppDirName = "glass"

	// DataDirName is the name of the dataset directory inside the application directory.
	DataDirName = "data"

	// ConfigFileName is the name of the configuration file.
	ConfigFileName = "config.yaml"

	// DatasetExt is the extension of every dataset file.
	DatasetExt = ".json"

	// BackupExt is appended to a dataset file name to form its backup.
	BackupExt = ".bak"

	// DirPerm is the default permission for directories (rwxr-x---).
	DirPerm = 0o750

	// FilePerm is the default permission for files (rw-r--r--).
	FilePerm = 0o644
)

// DefaultDataPath returns the dataset directory below the given user config root.
// It joins root, glass, and data.
func DefaultDataPath(root string) string {
	return filepath.Join(root, AppDirName, DataDirName)
}

// DefaultConfigPath returns the config file location below the given user config root.
// It joins root, glass, and config.yaml.
func DefaultConfigPath(root string) string {
	return filepath.Join(root, AppDirName, ConfigFileName)
}
