package domain

// Dataset names a persisted JSON collection. Each dataset lives in its own file.
type Dataset string

const (
	// DatasetFavorites holds favorite folder paths.
	DatasetFavorites Dataset = "favorites"
	// DatasetSettings holds user settings.
	DatasetSettings Dataset = "settings"
	// DatasetHistory holds navigation history.
	DatasetHistory Dataset = "history"
	// DatasetBookmarks maps bookmark names to paths.
	DatasetBookmarks Dataset = "bookmarks"
	// DatasetRecentFiles holds recently opened files.
	DatasetRecentFiles Dataset = "recent_files"
	// DatasetStartup holds items opened on launch.
	DatasetStartup Dataset = "startup"
	// DatasetFolderSizes holds the persisted folder size cache.
	DatasetFolderSizes Dataset = "folder_sizes"
)

// DatasetKind is the JSON shape of a dataset.
type DatasetKind int

const (
	// KindList is a JSON array.
	KindList DatasetKind = iota
	// KindMap is a JSON object.
	KindMap
)

var datasetKinds = map[Dataset]DatasetKind{
	DatasetFavorites:   KindList,
	DatasetSettings:    KindMap,
	DatasetHistory:     KindList,
	DatasetBookmarks:   KindMap,
	DatasetRecentFiles: KindList,
	DatasetStartup:     KindList,
	DatasetFolderSizes: KindMap,
}

// Datasets returns every registered dataset in a stable order.
func Datasets() []Dataset {
	return append(UserDatasets(), DatasetFolderSizes)
}

// UserDatasets returns the datasets that belong to the user and take part in export and import.
func UserDatasets() []Dataset {
	return []Dataset{
		DatasetFavorites,
		DatasetSettings,
		DatasetHistory,
		DatasetBookmarks,
		DatasetRecentFiles,
		DatasetStartup,
	}
}

// Valid reports whether d is a registered dataset.
func (d Dataset) Valid() bool {
	_, ok := datasetKinds[d]
	return ok
}

// Kind returns the JSON shape of the dataset.
func (d Dataset) Kind() DatasetKind {
	return datasetKinds[d]
}

// FileName returns the file name of the dataset inside the data directory.
func (d Dataset) FileName() string {
	return string(d) + DatasetExt
}

// BackupName returns the file name of the dataset backup.
func (d Dataset) BackupName() string {
	return d.FileName() + BackupExt
}

// DefaultJSON returns the type-appropriate empty document for the dataset.
func (d Dataset) DefaultJSON() []byte {
	if d.Kind() == KindMap {
		return []byte("{}")
	}
	return []byte("[]")
}

// DatasetStat describes the on-disk state of a dataset file.
type DatasetStat struct {
	Name      Dataset `json:"name"`
	File      string  `json:"file"`
	SizeBytes int64   `json:"size_bytes"`
	Exists    bool    `json:"exists"`
	Checksum  string  `json:"checksum,omitempty"`
}
