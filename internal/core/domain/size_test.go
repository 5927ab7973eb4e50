package domain_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/glass/internal/core/domain"
)

func TestSizeEntry_FreshAt(t *testing.T) {
	e := domain.SizeEntry{Size: 100, Mtime: 1000.0}

	assert.True(t, e.FreshAt(1000.0, domain.DefaultMtimeTolerance))
	assert.True(t, e.FreshAt(1000.0005, domain.DefaultMtimeTolerance))
	assert.False(t, e.FreshAt(1000.5, domain.DefaultMtimeTolerance))
	assert.False(t, e.FreshAt(999.0, domain.DefaultMtimeTolerance))
}

func TestSizeEntry_Same(t *testing.T) {
	e := domain.SizeEntry{Size: 100, Mtime: 1000.0}

	assert.True(t, e.Same(domain.SizeEntry{Size: 100, Mtime: 1000.0}))
	assert.False(t, e.Same(domain.SizeEntry{Size: 101, Mtime: 1000.0}))
	assert.False(t, e.Same(domain.SizeEntry{Size: 100, Mtime: 1000.1}))
}

func TestSizeIndex_Decode(t *testing.T) {
	input := `{
		"/ok": {"size": 100, "mtime": 1000.25, "updated": "2024-05-01T10:11:12.5"},
		"/negative": {"size": -1, "mtime": 1.0, "updated": ""},
		"/fraction": {"size": 1.5, "mtime": 1.0, "updated": ""},
		"/string": {"size": "100", "mtime": 1.0, "updated": ""},
		"/no-mtime": {"size": 10},
		"/scalar": 42
	}`

	var x domain.SizeIndex
	require.NoError(t, json.Unmarshal([]byte(input), &x))
	require.Len(t, x, 1)
	assert.Equal(t, int64(100), x["/ok"].Size)
	assert.InDelta(t, 1000.25, x["/ok"].Mtime, 0)
}

func TestSizeIndex_MarshalShape(t *testing.T) {
	data, err := json.Marshal(domain.SizeIndex(nil))
	require.NoError(t, err)
	assert.JSONEq(t, `{}`, string(data))

	data, err = json.Marshal(domain.SizeIndex{"/p": {Size: 7, Mtime: 12.5}})
	require.NoError(t, err)

	var raw map[string]map[string]any
	require.NoError(t, json.Unmarshal(data, &raw))
	assert.InDelta(t, 7, raw["/p"]["size"], 0)
	assert.InDelta(t, 12.5, raw["/p"]["mtime"], 0)
	assert.Contains(t, raw["/p"], "updated")
}

func TestSizeIndex_Clone(t *testing.T) {
	x := domain.SizeIndex{"/a": {Size: 1}}
	c := x.Clone()
	c["/b"] = domain.SizeEntry{Size: 2}

	assert.Len(t, x, 1)
	assert.NotNil(t, domain.SizeIndex(nil).Clone())
}

func TestDataset(t *testing.T) {
	assert.True(t, domain.DatasetFavorites.Valid())
	assert.False(t, domain.Dataset("nope").Valid())
	assert.Equal(t, "recent_files.json", domain.DatasetRecentFiles.FileName())
	assert.Equal(t, "favorites.json.bak", domain.DatasetFavorites.BackupName())
	assert.Equal(t, "[]", string(domain.DatasetHistory.DefaultJSON()))
	assert.Equal(t, "{}", string(domain.DatasetFolderSizes.DefaultJSON()))
	assert.Len(t, domain.Datasets(), len(domain.UserDatasets())+1)
	assert.NotContains(t, domain.UserDatasets(), domain.DatasetFolderSizes)
}
