package userdata

import (
	"bytes"
	"encoding/json"
	"maps"
	"os"
	"slices"

	"go.trai.ch/glass/internal/core/domain"
	"go.trai.ch/zerr"
)

const exportDateKey = "export_date"

// Export writes every user dataset and the export time to a single JSON document at path.
func (m *Manager) Export(path string) bool {
	if err := m.export(path); err != nil {
		m.log.Error(err)
		return false
	}
	m.log.Info("exported user data", "path", path)
	return true
}

func (m *Manager) export(path string) error {
	if path == "" {
		return zerr.Wrap(domain.ErrEmptyPath, domain.ErrExportFailed.Error())
	}

	doc := make(map[string]any, len(domain.UserDatasets())+1)
	for _, name := range domain.UserDatasets() {
		doc[string(name)] = m.dataset(name)
	}
	doc[exportDateKey] = domain.NewTimestamp(m.now())

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrExportFailed.Error()), "path", path)
	}
	if err := os.WriteFile(path, buf.Bytes(), domain.FilePerm); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrExportFailed.Error()), "path", path)
	}
	return nil
}

// dataset reads a user dataset into its typed form.
func (m *Manager) dataset(name domain.Dataset) any {
	switch name {
	case domain.DatasetSettings:
		return m.Settings()
	case domain.DatasetBookmarks:
		return domain.Bookmarks(m.Bookmarks())
	case domain.DatasetHistory:
		return m.history()
	case domain.DatasetRecentFiles:
		return m.recent()
	default:
		return m.paths(name)
	}
}

// Import loads a document written by Export. Without merge, each dataset present in
// the document replaces the stored one. With merge, lists are unioned, maps are
// overlaid and the history limits are applied again. Unknown keys are ignored.
func (m *Manager) Import(path string, merge bool) bool {
	if err := m.importFrom(path, merge); err != nil {
		m.log.Error(err)
		return false
	}
	m.log.Info("imported user data", "path", path, "merge", merge)
	return true
}

func (m *Manager) importFrom(path string, merge bool) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrImportFailed.Error()), "path", path)
	}
	var doc map[string]json.RawMessage
	if err := json.Unmarshal(data, &doc); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrImportFailed.Error()), "path", path)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	var errs error
	for _, name := range domain.UserDatasets() {
		raw, ok := doc[string(name)]
		if !ok {
			continue
		}
		v, err := m.incoming(name, raw, merge)
		if err != nil {
			m.log.Warn("skipping malformed dataset", "dataset", string(name), "error", err)
			continue
		}
		if err := m.store.Write(name, v); err != nil {
			errs = zerr.Wrap(err, domain.ErrImportFailed.Error())
			m.log.Error(err, "dataset", string(name))
		}
	}
	return errs
}

// incoming decodes one imported dataset and, when merging, combines it with the
// stored one.
func (m *Manager) incoming(name domain.Dataset, raw json.RawMessage, merge bool) (any, error) {
	switch name {
	case domain.DatasetSettings:
		var in domain.Settings
		if err := json.Unmarshal(raw, &in); err != nil {
			return nil, err
		}
		if !merge {
			return in, nil
		}
		s := m.Settings()
		maps.Copy(s, in)
		return s, nil

	case domain.DatasetBookmarks:
		var in domain.Bookmarks
		if err := json.Unmarshal(raw, &in); err != nil {
			return nil, err
		}
		if !merge {
			return in, nil
		}
		b := domain.Bookmarks(m.Bookmarks())
		maps.Copy(b, in)
		return b, nil

	case domain.DatasetHistory:
		var in domain.History
		if err := json.Unmarshal(raw, &in); err != nil {
			return nil, err
		}
		if merge {
			in = unionHistory(m.history(), in, sameVisit)
		}
		return in.Newest(m.historyLimit), nil

	case domain.DatasetRecentFiles:
		var in domain.History
		if err := json.Unmarshal(raw, &in); err != nil {
			return nil, err
		}
		if merge {
			in = unionHistory(m.recent(), in, samePath)
		}
		return in.Newest(m.recentLimit), nil

	default:
		var in domain.PathList
		if err := json.Unmarshal(raw, &in); err != nil {
			return nil, err
		}
		if merge {
			in = unionPaths(m.paths(name), in)
		}
		return in, nil
	}
}

// unionPaths appends the paths of b missing from a, keeping the order of both.
func unionPaths(a, b domain.PathList) domain.PathList {
	out := slices.Clone(a)
	for _, p := range b {
		if !out.Contains(p) {
			out = append(out, p)
		}
	}
	return out
}

func sameVisit(a, b domain.HistoryEntry) bool {
	return a.Path == b.Path && a.Timestamp.Equal(b.Timestamp.Time)
}

func samePath(a, b domain.HistoryEntry) bool {
	return a.Path == b.Path
}

// unionHistory appends the entries of b to a. Entries of a that equal one from b
// are dropped first, so each entry appears once.
func unionHistory(a, b domain.History, equal func(x, y domain.HistoryEntry) bool) domain.History {
	out := slices.Clone(a)
	for _, e := range b {
		out = slices.DeleteFunc(out, func(x domain.HistoryEntry) bool { return equal(x, e) })
		out = append(out, e)
	}
	return out
}
