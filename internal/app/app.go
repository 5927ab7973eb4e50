// Package app implements the application layer for glass.
package app

import (
	"context"
	"errors"
	"io/fs"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"go.trai.ch/glass/internal/adapters/tui"
	"go.trai.ch/glass/internal/core/domain"
	"go.trai.ch/glass/internal/core/ports"
	"go.trai.ch/glass/internal/engine/scheduler"
	"go.trai.ch/glass/internal/engine/sizecache"
	"go.trai.ch/glass/internal/engine/userdata"
	"go.trai.ch/zerr"
)

// App represents the main application logic. The user data operations are
// promoted from the embedded Manager.
type App struct {
	*userdata.Manager

	cache      *sizecache.Cache
	scheduler  *scheduler.Scheduler
	fs         ports.FileSystem
	store      ports.DataStore
	telemetry  ports.Telemetry
	logger     ports.Logger
	teaOptions []tea.ProgramOption
}

// New creates a new App instance.
func New(
	cache *sizecache.Cache,
	sched *scheduler.Scheduler,
	data *userdata.Manager,
	fsys ports.FileSystem,
	store ports.DataStore,
	tel ports.Telemetry,
	log ports.Logger,
) *App {
	return &App{
		Manager:   data,
		cache:     cache,
		scheduler: sched,
		fs:        fsys,
		store:     store,
		telemetry: tel,
		logger:    log,
	}
}

// WithTeaOptions adds bubbletea program options to the App.
// This is primarily used for testing to disable input/output.
func (a *App) WithTeaOptions(opts ...tea.ProgramOption) *App {
	a.teaOptions = append(a.teaOptions, opts...)
	return a
}

// CachedSize returns the cached size of a folder if it is still valid.
func (a *App) CachedSize(path string) (int64, bool) {
	return a.cache.Get(path)
}

// SetCachedSize records the size of a folder.
func (a *App) SetCachedSize(path string, size int64) bool {
	return a.cache.Set(path, size)
}

// RequestSize starts a background computation for path. onDone is dispatched
// on the UI context when the size is cached.
func (a *App) RequestSize(path string, onDone func()) bool {
	return a.scheduler.Request(path, onDone)
}

// MeasureSize returns the size of path, walking it when the cache has no valid
// entry. Files report their own size and are never cached.
func (a *App) MeasureSize(ctx context.Context, path string) (int64, error) {
	info, err := a.fs.Stat(path)
	if err != nil {
		return 0, err
	}
	if !info.IsDir() {
		return info.Size(), nil
	}
	if size, ok := a.cache.Get(path); ok {
		return size, nil
	}
	return a.scheduler.Measure(ctx, path)
}

// Activity reports the folder walks in flight.
func (a *App) Activity() domain.Activity {
	return a.telemetry.Activity()
}

// SizeCell returns the size column for a folder. On a cache miss it requests the
// computation and returns the pending placeholder.
func (a *App) SizeCell(path string, onDone func()) domain.SizeCell {
	if size, ok := a.cache.Get(path); ok {
		return domain.SizeCell{
			Text:    domain.DisplaySize(size),
			Tooltip: domain.ExactSize(size),
			Bytes:   size,
		}
	}
	a.scheduler.Request(path, onDone)
	return domain.SizeCell{Text: domain.PendingText, Bytes: -1, Pending: true}
}

// List returns the entries of dir. Files carry their own size. Folder sizes come
// from SizeCell, and onDone is dispatched with the folder path once a pending
// size is known. An unreadable directory returns the entries read before the error.
func (a *App) List(dir string, onDone func(path string)) ([]domain.Row, error) {
	entries, err := a.fs.ReadDir(dir)
	if entries == nil && err != nil {
		return nil, err
	}

	rows := make([]domain.Row, 0, len(entries))
	for _, entry := range entries {
		row := domain.Row{
			Name:  entry.Name(),
			Path:  filepath.Join(dir, entry.Name()),
			IsDir: entry.IsDir(),
		}
		if row.IsDir {
			var cb func()
			if onDone != nil {
				path := row.Path
				cb = func() { onDone(path) }
			}
			row.Size = a.SizeCell(row.Path, cb)
		} else {
			row.Size = fileCell(entry)
		}
		rows = append(rows, row)
	}
	return rows, err
}

func fileCell(entry fs.DirEntry) domain.SizeCell {
	info, err := entry.Info()
	if err != nil {
		return domain.SizeCell{Bytes: -1}
	}
	size := info.Size()
	return domain.SizeCell{
		Text:    domain.HumanReadable(size),
		Tooltip: domain.ExactSize(size),
		Bytes:   size,
	}
}

// SortRows orders rows by name or size, folders first.
func (a *App) SortRows(rows []domain.Row, by domain.SortKey) {
	domain.SortRows(rows, by)
}

// WaitForSizes blocks until every requested size is computed and its callbacks
// have run, when the dispatcher can report that.
func (a *App) WaitForSizes() {
	a.scheduler.Wait()
	if f, ok := a.scheduler.Dispatcher().(ports.Flusher); ok {
		f.Flush()
	}
}

// CacheStats returns the number of cached folder sizes and the cache file.
func (a *App) CacheStats() (int, string) {
	return a.cache.Len(), a.store.Path(domain.DatasetFolderSizes)
}

// ClearCache drops every cached folder size.
func (a *App) ClearCache() bool {
	return a.cache.Clear()
}

// Browse runs the terminal browser in dir until the user quits. Size callbacks
// are delivered on the browser's event loop while it runs.
func (a *App) Browse(ctx context.Context, dir string) error {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return zerr.With(zerr.Wrap(err, "failed to resolve directory"), "path", dir)
	}

	model := tui.NewModel(a, abs)
	opts := append([]tea.ProgramOption{tea.WithContext(ctx)}, a.teaOptions...)
	program := tea.NewProgram(model, opts...)

	prev := a.scheduler.SetDispatcher(tui.NewDispatcher(program))
	defer a.scheduler.SetDispatcher(prev)

	a.AddHistory(abs)
	if _, err := program.Run(); err != nil {
		if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
			return nil
		}
		return zerr.Wrap(err, "browser failed")
	}
	return nil
}

// Close stops the default dispatcher and ends the telemetry session. Walks still
// running finish in the background and their callbacks are dropped.
func (a *App) Close() error {
	if c, ok := a.scheduler.Dispatcher().(interface{ Close() }); ok {
		c.Close()
	}
	return a.telemetry.Close()
}
