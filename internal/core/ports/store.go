package ports

import "go.trai.ch/glass/internal/core/domain"

// DataStore persists named JSON datasets, one file per dataset.
//
//go:generate go run go.uber.org/mock/mockgen -source=store.go -destination=mocks/mock_store.go -package=mocks
type DataStore interface {
	// Init creates the data directory and writes defaults for missing datasets.
	Init() error

	// Read decodes the dataset into v. It returns false and leaves v untouched
	// when the file is missing, unreadable or malformed.
	Read(name domain.Dataset, v any) bool

	// Write replaces the dataset with v, keeping the previous content as a backup.
	Write(name domain.Dataset, v any) error

	// Clear resets the dataset to its empty default.
	Clear(name domain.Dataset) error

	// Path returns the file path of the dataset.
	Path(name domain.Dataset) string

	// Stats describes every dataset file.
	Stats() []domain.DatasetStat
}
