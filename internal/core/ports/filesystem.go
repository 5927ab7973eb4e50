package ports

import (
	"context"
	"os"
)

// FileSystem is the filesystem surface used by the size cache and scheduler.
//
//go:generate go run go.uber.org/mock/mockgen -source=filesystem.go -destination=mocks/mock_filesystem.go -package=mocks
type FileSystem interface {
	// Exists reports whether path exists.
	Exists(path string) bool

	// ModTime returns the modification time of path in seconds since the epoch.
	ModTime(path string) (float64, error)

	// DirSize sums the sizes of every file below root. Unreadable entries are skipped.
	// A non-nil error means the total is partial.
	DirSize(ctx context.Context, root string) (int64, error)

	// ReadDir lists the immediate children of dir.
	ReadDir(dir string) ([]os.DirEntry, error)

	// Stat describes path.
	Stat(path string) (os.FileInfo, error)
}
