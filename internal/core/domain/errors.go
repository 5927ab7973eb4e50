package domain

import "go.trai.ch/zerr"

var (
	// ErrEmptyPath is returned when an operation receives an empty path.
	ErrEmptyPath = zerr.New("path must not be empty")

	// ErrUnknownDataset is returned when a dataset name is not registered.
	ErrUnknownDataset = zerr.New("unknown dataset")

	// ErrStoreCreateFailed is returned when the data directory cannot be created.
	ErrStoreCreateFailed = zerr.New("failed to create data directory")

	// ErrStoreReadFailed is returned when a dataset file cannot be read.
	ErrStoreReadFailed = zerr.New("failed to read dataset")

	// ErrStoreUnmarshalFailed is returned when a dataset file holds malformed JSON.
	ErrStoreUnmarshalFailed = zerr.New("failed to unmarshal dataset")

	// ErrStoreMarshalFailed is returned when a dataset value cannot be marshaled.
	ErrStoreMarshalFailed = zerr.New("failed to marshal dataset")

	// ErrStoreBackupFailed is returned when the previous dataset content cannot be backed up.
	ErrStoreBackupFailed = zerr.New("failed to back up dataset")

	// ErrStoreWriteFailed is returned when a dataset file cannot be written.
	ErrStoreWriteFailed = zerr.New("failed to write dataset")

	// ErrStoreVerifyFailed is returned when a written dataset file is missing or empty on read-back.
	ErrStoreVerifyFailed = zerr.New("dataset verification failed")

	// ErrConfigReadFailed is returned when the config file cannot be read.
	ErrConfigReadFailed = zerr.New("failed to read config file")

	// ErrConfigParseFailed is returned when the config file cannot be parsed.
	ErrConfigParseFailed = zerr.New("failed to parse config file")

	// ErrInvalidConfig is returned when a config value is out of range.
	ErrInvalidConfig = zerr.New("invalid config value")

	// ErrWalkFailed is returned when a directory tree could not be fully enumerated.
	ErrWalkFailed = zerr.New("failed to walk directory")

	// ErrNotADirectory is returned when a listing is requested for a regular file.
	ErrNotADirectory = zerr.New("not a directory")

	// ErrExportFailed is returned when user data cannot be exported.
	ErrExportFailed = zerr.New("failed to export user data")

	// ErrImportFailed is returned when user data cannot be imported.
	ErrImportFailed = zerr.New("failed to import user data")

	// ErrSettingNotSet is returned when a setting has neither a stored nor a default value.
	ErrSettingNotSet = zerr.New("setting is not set")

	// ErrCommandFailed is returned by the CLI when an operation reports failure.
	ErrCommandFailed = zerr.New("command failed")
)
