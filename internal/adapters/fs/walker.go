// Package fs provides the file system adapter used to measure folders.
package fs

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"sync/atomic"

	"go.trai.ch/glass/internal/core/domain"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
)

const (
	minWalkers = 16
	maxWalkers = 128
)

// FileSystem implements ports.FileSystem on the local disk.
type FileSystem struct {
	ignores []string
	limit   int
}

// New creates a FileSystem that does not descend into directories whose base name
// matches one of the ignore patterns.
func New(ignores []string) *FileSystem {
	return &FileSystem{
		ignores: append([]string(nil), ignores...),
		limit:   walkParallelism(),
	}
}

// walkParallelism favours more goroutines than CPUs since walking is I/O bound.
func walkParallelism() int {
	n := runtime.NumCPU() * 4
	if n < minWalkers {
		return minWalkers
	}
	if n > maxWalkers {
		return maxWalkers
	}
	return n
}

// DirSize sums the sizes of every file below root. The immediate subdirectories of root
// are walked concurrently. Entries that cannot be read contribute nothing and do not stop
// the walk. A non-nil error means root itself could not be listed and the total is partial.
func (f *FileSystem) DirSize(ctx context.Context, root string) (int64, error) {
	info, err := os.Stat(root)
	if err != nil {
		return 0, zerr.With(zerr.Wrap(err, domain.ErrWalkFailed.Error()), "path", root)
	}
	if !info.IsDir() {
		return info.Size(), nil
	}

	// ReadDir may return the entries read before an error.
	entries, readErr := os.ReadDir(root)

	var total atomic.Int64
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(f.limit)

	for _, entry := range entries {
		path := filepath.Join(root, entry.Name())
		if entry.IsDir() {
			if f.ignored(entry.Name()) {
				continue
			}
			g.Go(func() error {
				total.Add(f.treeSize(ctx, path))
				return nil
			})
			continue
		}
		total.Add(entrySize(path, entry))
	}
	_ = g.Wait()

	if readErr != nil {
		return total.Load(), zerr.With(zerr.Wrap(readErr, domain.ErrWalkFailed.Error()), "path", root)
	}
	return total.Load(), nil
}

// treeSize walks root sequentially, skipping anything that errors.
func (f *FileSystem) treeSize(ctx context.Context, root string) int64 {
	var total int64
	_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if ctx.Err() != nil {
			return filepath.SkipAll
		}
		if d.IsDir() {
			if path != root && f.ignored(d.Name()) {
				return filepath.SkipDir
			}
			return nil
		}
		total += entrySize(path, d)
		return nil
	})
	return total
}

// ignored reports whether a directory name matches one of the ignore patterns.
func (f *FileSystem) ignored(name string) bool {
	for _, ignore := range f.ignores {
		if matched, _ := filepath.Match(ignore, name); matched {
			return true
		}
	}
	return false
}

// entrySize returns the size of a regular file, following symlinks to files.
// Anything else, or anything that cannot be stat'ed, counts as zero.
func entrySize(path string, d fs.DirEntry) int64 {
	var info fs.FileInfo
	var err error
	if d.Type()&fs.ModeSymlink != 0 {
		info, err = os.Stat(path)
	} else {
		info, err = d.Info()
	}
	if err != nil || !info.Mode().IsRegular() {
		return 0
	}
	return info.Size()
}

// Exists reports whether path exists.
func (f *FileSystem) Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// ModTime returns the modification time of path in seconds since the epoch.
func (f *FileSystem) ModTime(path string) (float64, error) {
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return 0, zerr.With(err, "path", path)
		}
		return 0, zerr.With(zerr.Wrap(err, "failed to stat path"), "path", path)
	}
	return float64(info.ModTime().UnixNano()) / 1e9, nil
}

// Stat describes path, following symlinks.
func (f *FileSystem) Stat(path string) (os.FileInfo, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, "failed to stat path"), "path", path)
	}
	return info, nil
}

// ReadDir lists the immediate children of dir.
func (f *FileSystem) ReadDir(dir string) ([]os.DirEntry, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, "failed to stat directory"), "path", dir)
	}
	if !info.IsDir() {
		return nil, zerr.With(zerr.Wrap(domain.ErrNotADirectory, "failed to list directory"), "path", dir)
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		return entries, zerr.With(zerr.Wrap(err, "failed to read directory"), "path", dir)
	}
	return entries, nil
}
