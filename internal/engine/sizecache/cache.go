// Package sizecache keeps folder sizes in memory, validated against the live folder mtime
// and persisted through the data store.
package sizecache

import (
	"sync"
	"time"

	"go.trai.ch/glass/internal/core/domain"
	"go.trai.ch/glass/internal/core/ports"
)

// Cache implements ports.SizeCache.
//
// An entry is valid only while the folder's live mtime matches the recorded one within
// the tolerance. Only the folder's own mtime is compared, so a change deep in the tree
// that does not touch it goes unnoticed. The cache is best effort, not a guarantee.
type Cache struct {
	store     ports.DataStore
	fs        ports.FileSystem
	log       ports.Logger
	tolerance float64
	now       func() time.Time

	loadOnce sync.Once
	mu       sync.RWMutex
	entries  domain.SizeIndex

	// gen numbers snapshots under mu. persistMu serializes writes and persisted is
	// the newest generation on disk, so an older snapshot never overwrites a newer one.
	gen       uint64
	persistMu sync.Mutex
	persisted uint64
}

// New creates a Cache. Entries are loaded from the store on first use or by Load.
func New(store ports.DataStore, fs ports.FileSystem, log ports.Logger, tolerance float64) *Cache {
	if tolerance < 0 {
		tolerance = domain.DefaultMtimeTolerance
	}
	return &Cache{
		store:     store,
		fs:        fs,
		log:       log,
		tolerance: tolerance,
		now:       time.Now,
		entries:   domain.SizeIndex{},
	}
}

// Load reads the persisted index into memory. Only the first call has an effect.
func (c *Cache) Load() {
	c.loadOnce.Do(func() {
		index := domain.SizeIndex{}
		if c.store.Read(domain.DatasetFolderSizes, &index) {
			c.log.Debug("folder size cache loaded", "entries", len(index))
		}

		c.mu.Lock()
		c.entries = index
		c.mu.Unlock()
	})
}

// Get returns the cached size of path. It misses when there is no entry, when path
// no longer exists, or when the live mtime has drifted beyond the tolerance.
func (c *Cache) Get(path string) (int64, bool) {
	c.Load()

	c.mu.RLock()
	entry, ok := c.entries[path]
	c.mu.RUnlock()
	if !ok {
		return 0, false
	}

	mtime, err := c.fs.ModTime(path)
	if err != nil {
		return 0, false
	}
	if !entry.FreshAt(mtime, c.tolerance) {
		return 0, false
	}
	return entry.Size, true
}

// Entry returns the raw entry for path without checking freshness.
func (c *Cache) Entry(path string) (domain.SizeEntry, bool) {
	c.Load()

	c.mu.RLock()
	defer c.mu.RUnlock()
	entry, ok := c.entries[path]
	return entry, ok
}

// Set records size for path with the folder's current mtime, or 0 if it vanished.
// When the existing entry already has the same size and mtime nothing is written.
// It returns false only when persisting fails; the in-memory entry is kept either way.
func (c *Cache) Set(path string, size int64) bool {
	c.Load()

	if size < 0 {
		size = 0
	}
	mtime, err := c.fs.ModTime(path)
	if err != nil {
		mtime = 0
	}
	entry := domain.SizeEntry{
		Size:    size,
		Mtime:   mtime,
		Updated: domain.NewTimestamp(c.now()),
	}

	c.mu.Lock()
	if old, ok := c.entries[path]; ok && old.Same(entry) {
		c.mu.Unlock()
		return true
	}
	c.entries[path] = entry
	c.gen++
	gen := c.gen
	snapshot := c.entries.Clone()
	c.mu.Unlock()

	err = c.persist(gen, func() error {
		return c.store.Write(domain.DatasetFolderSizes, snapshot)
	})
	if err != nil {
		c.log.Error(err, "path", path)
		return false
	}
	return true
}

// persist runs write unless a newer snapshot is already on disk. Readers never
// wait for it since mu is not held.
func (c *Cache) persist(gen uint64, write func() error) error {
	c.persistMu.Lock()
	defer c.persistMu.Unlock()

	if gen <= c.persisted {
		return nil
	}
	if err := write(); err != nil {
		return err
	}
	c.persisted = gen
	return nil
}

// Len returns the number of entries, fresh or stale.
func (c *Cache) Len() int {
	c.Load()

	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// Clear drops every entry and persists the empty index.
func (c *Cache) Clear() bool {
	c.Load()

	c.mu.Lock()
	c.entries = domain.SizeIndex{}
	c.gen++
	gen := c.gen
	c.mu.Unlock()

	err := c.persist(gen, func() error {
		return c.store.Clear(domain.DatasetFolderSizes)
	})
	if err != nil {
		c.log.Error(err)
		return false
	}
	return true
}
