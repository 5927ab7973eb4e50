// Package jsonstore persists named datasets as pretty-printed JSON files.
package jsonstore

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"reflect"
	"sync"

	"github.com/cespare/xxhash/v2"
	"github.com/otiai10/copy"
	"go.trai.ch/glass/internal/core/domain"
	"go.trai.ch/glass/internal/core/ports"
	"go.trai.ch/zerr"
)

// Store implements ports.DataStore with one file per dataset.
type Store struct {
	dir string
	log ports.Logger
	mu  sync.Mutex
}

// NewStore creates a Store rooted at dir. Call Init before first use.
func NewStore(dir string, log ports.Logger) *Store {
	return &Store{
		dir: filepath.Clean(dir),
		log: log,
	}
}

// Dir returns the data directory.
func (s *Store) Dir() string {
	return s.dir
}

// Path returns the file path of the dataset.
func (s *Store) Path(name domain.Dataset) string {
	return filepath.Join(s.dir, name.FileName())
}

// Init creates the data directory and writes the empty default of every missing dataset.
func (s *Store) Init() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.MkdirAll(s.dir, domain.DirPerm); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrStoreCreateFailed.Error()), "dir", s.dir)
	}

	for _, name := range domain.Datasets() {
		path := s.Path(name)
		_, err := os.Stat(path)
		if err == nil {
			continue
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return zerr.With(zerr.Wrap(err, domain.ErrStoreReadFailed.Error()), "path", path)
		}
		if err := s.replace(name, name.DefaultJSON()); err != nil {
			return err
		}
		s.log.Info("dataset initialized", "name", string(name))
	}
	return nil
}

// Read decodes the dataset into v, which must be a non-nil pointer.
// On a missing, unreadable or malformed file it logs, leaves v untouched and returns false.
func (s *Store) Read(name domain.Dataset, v any) bool {
	if !name.Valid() {
		s.log.Error(zerr.With(zerr.Wrap(domain.ErrUnknownDataset, "invalid dataset name"), "name", string(name)))
		return false
	}

	path := s.Path(name)
	//nolint:gosec // Path is built from the data directory and a registered dataset name
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			s.log.Debug("dataset missing, using default", "name", string(name))
			return false
		}
		s.log.Error(zerr.With(zerr.Wrap(err, domain.ErrStoreReadFailed.Error()), "path", path))
		return false
	}

	// Decode into a fresh value so a failed decode never leaves v half-filled.
	target := reflect.ValueOf(v)
	if target.Kind() != reflect.Pointer || target.IsNil() {
		s.log.Error(zerr.With(zerr.Wrap(domain.ErrStoreUnmarshalFailed, "decode target must be a non-nil pointer"), "name", string(name)))
		return false
	}
	fresh := reflect.New(target.Elem().Type())
	if err := json.Unmarshal(data, fresh.Interface()); err != nil {
		s.log.Warn("dataset corrupt, using default",
			"name", string(name),
			"error", zerr.Wrap(err, domain.ErrStoreUnmarshalFailed.Error()),
		)
		return false
	}
	target.Elem().Set(fresh.Elem())
	return true
}

// Write serializes v and replaces the dataset file. The previous content is copied
// to the .bak sibling first, and the new content is renamed into place.
func (s *Store) Write(name domain.Dataset, v any) error {
	if !name.Valid() {
		return zerr.With(zerr.Wrap(domain.ErrUnknownDataset, "invalid dataset name"), "name", string(name))
	}

	data, err := encode(v)
	if err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrStoreMarshalFailed.Error()), "name", string(name))
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.MkdirAll(s.dir, domain.DirPerm); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrStoreCreateFailed.Error()), "dir", s.dir)
	}
	if err := s.backup(name); err != nil {
		return err
	}
	return s.replace(name, data)
}

// Clear resets the dataset to its empty default.
func (s *Store) Clear(name domain.Dataset) error {
	if !name.Valid() {
		return zerr.With(zerr.Wrap(domain.ErrUnknownDataset, "invalid dataset name"), "name", string(name))
	}
	return s.Write(name, json.RawMessage(name.DefaultJSON()))
}

// Stats describes every dataset file.
func (s *Store) Stats() []domain.DatasetStat {
	s.mu.Lock()
	defer s.mu.Unlock()

	stats := make([]domain.DatasetStat, 0, len(domain.Datasets()))
	for _, name := range domain.Datasets() {
		path := s.Path(name)
		stat := domain.DatasetStat{Name: name, File: path}

		//nolint:gosec // Path is built from the data directory and a registered dataset name
		data, err := os.ReadFile(path)
		if err == nil {
			stat.Exists = true
			stat.SizeBytes = int64(len(data))
			stat.Checksum = fmt.Sprintf("%016x", xxhash.Sum64(data))
		} else if !errors.Is(err, fs.ErrNotExist) {
			s.log.Warn("dataset unreadable", "name", string(name), "error", err)
		}
		stats = append(stats, stat)
	}
	return stats
}

func (s *Store) backup(name domain.Dataset) error {
	path := s.Path(name)
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return zerr.With(zerr.Wrap(err, domain.ErrStoreBackupFailed.Error()), "path", path)
	}

	bak := filepath.Join(s.dir, name.BackupName())
	if err := copy.Copy(path, bak, copy.Options{PreserveTimes: true, Sync: true}); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrStoreBackupFailed.Error()), "path", bak)
	}
	return nil
}

// replace writes data to a temp file in the data directory and renames it over the dataset.
func (s *Store) replace(name domain.Dataset, data []byte) error {
	path := s.Path(name)

	tmp, err := os.CreateTemp(s.dir, name.FileName()+".*.tmp")
	if err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrStoreWriteFailed.Error()), "path", path)
	}
	tmpName := tmp.Name()
	defer func() {
		_ = os.Remove(tmpName)
	}()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return zerr.With(zerr.Wrap(err, domain.ErrStoreWriteFailed.Error()), "path", path)
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		return zerr.With(zerr.Wrap(err, domain.ErrStoreWriteFailed.Error()), "path", path)
	}
	if err := tmp.Close(); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrStoreWriteFailed.Error()), "path", path)
	}
	if err := os.Chmod(tmpName, domain.FilePerm); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrStoreWriteFailed.Error()), "path", path)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrStoreWriteFailed.Error()), "path", path)
	}

	info, err := os.Stat(path)
	if err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrStoreVerifyFailed.Error()), "path", path)
	}
	if info.Size() == 0 {
		return zerr.With(zerr.Wrap(domain.ErrStoreVerifyFailed, "dataset file is empty"), "path", path)
	}

	s.log.Debug("dataset written", "name", string(name), "bytes", info.Size())
	return nil
}

// encode renders v as indented UTF-8 JSON without HTML escaping.
func encode(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
