// Package userdata implements the user's favorites, bookmarks, settings, history,
// recent files and startup items on top of the data store.
package userdata

import (
	"maps"
	"slices"
	"sync"
	"time"

	"go.trai.ch/glass/internal/core/domain"
	"go.trai.ch/glass/internal/core/ports"
)

// Manager performs read-modify-write cycles against the data store. Mutations
// return false and log when the store rejects the write.
type Manager struct {
	store        ports.DataStore
	log          ports.Logger
	historyLimit int
	recentLimit  int
	now          func() time.Time

	mu sync.Mutex
}

// NewManager creates a Manager. Limits of zero or less fall back to the defaults.
func NewManager(store ports.DataStore, log ports.Logger, historyLimit, recentLimit int) *Manager {
	if historyLimit <= 0 {
		historyLimit = domain.DefaultHistoryLimit
	}
	if recentLimit <= 0 {
		recentLimit = domain.DefaultRecentLimit
	}
	return &Manager{
		store:        store,
		log:          log,
		historyLimit: historyLimit,
		recentLimit:  recentLimit,
		now:          time.Now,
	}
}

func (m *Manager) paths(name domain.Dataset) domain.PathList {
	l := domain.PathList{}
	m.store.Read(name, &l)
	return l
}

func (m *Manager) write(name domain.Dataset, v any) bool {
	if err := m.store.Write(name, v); err != nil {
		m.log.Error(err, "dataset", string(name))
		return false
	}
	return true
}

func (m *Manager) clear(name domain.Dataset) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.store.Clear(name); err != nil {
		m.log.Error(err, "dataset", string(name))
		return false
	}
	return true
}

// addPath appends p to a path list unless it is empty or already present.
func (m *Manager) addPath(name domain.Dataset, p string) bool {
	if p == "" {
		return false
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	l := m.paths(name)
	if l.Contains(p) {
		return false
	}
	return m.write(name, append(l, p))
}

// removePath drops p from a path list. It returns false when p was not present.
func (m *Manager) removePath(name domain.Dataset, p string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	l := m.paths(name)
	if !l.Contains(p) {
		return false
	}
	return m.write(name, slices.DeleteFunc(l, func(s string) bool { return s == p }))
}

// Favorites returns the favorite folders in the order they were added.
func (m *Manager) Favorites() []string {
	return m.paths(domain.DatasetFavorites)
}

// AddFavorite adds p to the favorites.
func (m *Manager) AddFavorite(p string) bool {
	return m.addPath(domain.DatasetFavorites, p)
}

// RemoveFavorite removes p from the favorites.
func (m *Manager) RemoveFavorite(p string) bool {
	return m.removePath(domain.DatasetFavorites, p)
}

// IsFavorite reports whether p is a favorite.
func (m *Manager) IsFavorite(p string) bool {
	return m.paths(domain.DatasetFavorites).Contains(p)
}

// ClearFavorites removes every favorite.
func (m *Manager) ClearFavorites() bool {
	return m.clear(domain.DatasetFavorites)
}

// Bookmarks returns the bookmark names and their paths.
func (m *Manager) Bookmarks() map[string]string {
	var b domain.Bookmarks
	m.store.Read(domain.DatasetBookmarks, &b)
	if b == nil {
		return map[string]string{}
	}
	return b
}

// AddBookmark stores p under name, replacing any bookmark with the same name.
func (m *Manager) AddBookmark(name, p string) bool {
	if name == "" || p == "" {
		return false
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	b := domain.Bookmarks(m.Bookmarks())
	b[name] = p
	return m.write(domain.DatasetBookmarks, b)
}

// RemoveBookmark deletes the bookmark called name.
func (m *Manager) RemoveBookmark(name string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	b := domain.Bookmarks(m.Bookmarks())
	if _, ok := b[name]; !ok {
		return false
	}
	delete(b, name)
	return m.write(domain.DatasetBookmarks, b)
}

// ClearBookmarks removes every bookmark.
func (m *Manager) ClearBookmarks() bool {
	return m.clear(domain.DatasetBookmarks)
}

// Settings returns the stored settings without defaults.
func (m *Manager) Settings() domain.Settings {
	var s domain.Settings
	m.store.Read(domain.DatasetSettings, &s)
	if s == nil {
		return domain.Settings{}
	}
	return s
}

// EffectiveSettings returns the stored settings laid over the defaults.
func (m *Manager) EffectiveSettings() domain.Settings {
	s := domain.DefaultSettings()
	maps.Copy(s, m.Settings())
	return s
}

// Setting returns the stored value for key, or def when it is unset.
func (m *Manager) Setting(key string, def any) any {
	if v, ok := m.Settings()[key]; ok {
		return v
	}
	return def
}

// SetSetting stores v under key.
func (m *Manager) SetSetting(key string, v any) bool {
	if key == "" {
		return false
	}
	return m.UpdateSettings(domain.Settings{key: v})
}

// UpdateSettings merges values into the stored settings.
func (m *Manager) UpdateSettings(values domain.Settings) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	s := m.Settings()
	maps.Copy(s, values)
	return m.write(domain.DatasetSettings, s)
}

// ClearSettings removes every stored setting, leaving the defaults in effect.
func (m *Manager) ClearSettings() bool {
	return m.clear(domain.DatasetSettings)
}

func (m *Manager) history() domain.History {
	var h domain.History
	m.store.Read(domain.DatasetHistory, &h)
	return h
}

// History returns the newest limit entries, oldest first. A limit of zero or
// less returns every entry.
func (m *Manager) History(limit int) domain.History {
	return m.history().Newest(limit)
}

// AddHistory records a visit to p now. The oldest entries are dropped once the
// history exceeds its limit.
func (m *Manager) AddHistory(p string) bool {
	if p == "" {
		return false
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	h := append(m.history(), domain.HistoryEntry{Path: p, Timestamp: domain.NewTimestamp(m.now())})
	return m.write(domain.DatasetHistory, h.Newest(m.historyLimit))
}

// ClearHistory removes every history entry.
func (m *Manager) ClearHistory() bool {
	return m.clear(domain.DatasetHistory)
}

func (m *Manager) recent() domain.History {
	var h domain.History
	m.store.Read(domain.DatasetRecentFiles, &h)
	return h
}

// RecentFiles returns the newest limit recent files, oldest first. A limit of
// zero or less returns every entry.
func (m *Manager) RecentFiles(limit int) domain.History {
	return m.recent().Newest(limit)
}

// AddRecentFile moves p to the newest position, dropping the oldest entries
// beyond the limit.
func (m *Manager) AddRecentFile(p string) bool {
	if p == "" {
		return false
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	h := append(m.recent().Without(p), domain.HistoryEntry{Path: p, Timestamp: domain.NewTimestamp(m.now())})
	return m.write(domain.DatasetRecentFiles, h.Newest(m.recentLimit))
}

// ClearRecentFiles removes every recent file.
func (m *Manager) ClearRecentFiles() bool {
	return m.clear(domain.DatasetRecentFiles)
}

// StartupItems returns the items opened on launch.
func (m *Manager) StartupItems() []string {
	return m.paths(domain.DatasetStartup)
}

// AddStartupItem adds p to the startup items.
func (m *Manager) AddStartupItem(p string) bool {
	return m.addPath(domain.DatasetStartup, p)
}

// RemoveStartupItem removes p from the startup items.
func (m *Manager) RemoveStartupItem(p string) bool {
	return m.removePath(domain.DatasetStartup, p)
}

// ClearStartupItems removes every startup item.
func (m *Manager) ClearStartupItems() bool {
	return m.clear(domain.DatasetStartup)
}

// Stats describes every dataset file.
func (m *Manager) Stats() []domain.DatasetStat {
	return m.store.Stats()
}
