package userdata_test

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/glass/internal/adapters/jsonstore"
	"go.trai.ch/glass/internal/adapters/logger"
	"go.trai.ch/glass/internal/core/domain"
	"go.trai.ch/glass/internal/core/ports/mocks"
	"go.trai.ch/glass/internal/engine/userdata"
	"go.uber.org/mock/gomock"
)

var quiet = logger.NewWithWriter(io.Discard)

func newManager(t *testing.T) (*userdata.Manager, *jsonstore.Store) {
	t.Helper()
	store := jsonstore.NewStore(filepath.Join(t.TempDir(), "data"), quiet)
	return userdata.NewManager(store, quiet, 0, 0), store
}

func readFile(t *testing.T, store *jsonstore.Store, name domain.Dataset) string {
	t.Helper()
	data, err := os.ReadFile(store.Path(name))
	require.NoError(t, err)
	return string(data)
}

func TestManager_Favorites_Scenario(t *testing.T) {
	m, store := newManager(t)

	assert.Equal(t, []string{}, m.Favorites())

	assert.True(t, m.AddFavorite("/a"))
	assert.JSONEq(t, `["/a"]`, readFile(t, store, domain.DatasetFavorites))

	assert.False(t, m.AddFavorite("/a"), "duplicate")
	assert.True(t, m.IsFavorite("/a"))

	assert.True(t, m.RemoveFavorite("/a"))
	assert.JSONEq(t, `[]`, readFile(t, store, domain.DatasetFavorites))
	assert.False(t, m.RemoveFavorite("/a"))
	assert.False(t, m.IsFavorite("/a"))
}

func TestManager_Favorites_RejectsEmptyPath(t *testing.T) {
	m, _ := newManager(t)
	assert.False(t, m.AddFavorite(""))
	assert.Empty(t, m.Favorites())
}

func TestManager_Favorites_DropsCorruptEntries(t *testing.T) {
	m, store := newManager(t)
	require.NoError(t, store.Init())
	require.NoError(t, os.WriteFile(store.Path(domain.DatasetFavorites), []byte(`["/a", 42, null, "", "/b"]`), 0o600))

	assert.Equal(t, []string{"/a", "/b"}, m.Favorites())
}

func TestManager_ClearFavorites(t *testing.T) {
	m, store := newManager(t)
	require.True(t, m.AddFavorite("/a"))
	require.True(t, m.AddFavorite("/b"))

	assert.True(t, m.ClearFavorites())
	assert.JSONEq(t, `[]`, readFile(t, store, domain.DatasetFavorites))
}

func TestManager_Bookmarks(t *testing.T) {
	m, store := newManager(t)

	assert.Empty(t, m.Bookmarks())
	assert.True(t, m.AddBookmark("home", "/home/u"))
	assert.True(t, m.AddBookmark("home", "/home/v"), "same name overwrites")
	assert.True(t, m.AddBookmark("tmp", "/tmp"))
	assert.False(t, m.AddBookmark("", "/x"))

	assert.Equal(t, map[string]string{"home": "/home/v", "tmp": "/tmp"}, m.Bookmarks())

	assert.True(t, m.RemoveBookmark("tmp"))
	assert.False(t, m.RemoveBookmark("tmp"))
	assert.JSONEq(t, `{"home":"/home/v"}`, readFile(t, store, domain.DatasetBookmarks))

	assert.True(t, m.ClearBookmarks())
	assert.Empty(t, m.Bookmarks())
}

func TestManager_Settings(t *testing.T) {
	m, _ := newManager(t)

	assert.Equal(t, "fallback", m.Setting("theme", "fallback"))
	assert.True(t, m.SetSetting("theme", "dark"))
	assert.Equal(t, "dark", m.Setting("theme", "fallback"))

	assert.True(t, m.UpdateSettings(domain.Settings{"font_size": 14, "show_hidden": true}))
	s := m.Settings()
	assert.Equal(t, "dark", s["theme"])
	assert.InDelta(t, 14, s["font_size"], 0)
	assert.Equal(t, true, s["show_hidden"])

	eff := m.EffectiveSettings()
	assert.Equal(t, "dark", eff["theme"])
	assert.Equal(t, "list", eff["view_mode"], "defaults fill unset keys")

	assert.False(t, m.SetSetting("", 1))

	assert.True(t, m.ClearSettings())
	assert.Empty(t, m.Settings())
	assert.Equal(t, "liquid_glass", m.EffectiveSettings()["theme"])
}

func TestManager_History_CapsToLimit(t *testing.T) {
	m, _ := newManager(t)
	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	var tick int
	m.SetClock(func() time.Time {
		tick++
		return base.Add(time.Duration(tick) * time.Second)
	})

	for i := range 105 {
		require.True(t, m.AddHistory(fmt.Sprintf("/p%d", i)))
	}

	h := m.History(0)
	require.Len(t, h, domain.DefaultHistoryLimit)
	assert.Equal(t, "/p5", h[0].Path, "oldest survivor first")
	assert.Equal(t, "/p104", h[len(h)-1].Path)

	last := m.History(3)
	require.Len(t, last, 3)
	assert.Equal(t, []string{"/p102", "/p103", "/p104"}, []string{last[0].Path, last[1].Path, last[2].Path})
	assert.True(t, base.Add(105*time.Second).Equal(last[2].Timestamp.Time))

	assert.False(t, m.AddHistory(""))
	assert.True(t, m.ClearHistory())
	assert.Empty(t, m.History(0))
}

func TestManager_History_CustomLimit(t *testing.T) {
	store := jsonstore.NewStore(filepath.Join(t.TempDir(), "data"), quiet)
	m := userdata.NewManager(store, quiet, 2, 0)

	require.True(t, m.AddHistory("/a"))
	require.True(t, m.AddHistory("/b"))
	require.True(t, m.AddHistory("/c"))

	h := m.History(0)
	require.Len(t, h, 2)
	assert.Equal(t, "/b", h[0].Path)
}

func TestManager_RecentFiles_MovesToNewest(t *testing.T) {
	m, _ := newManager(t)

	require.True(t, m.AddRecentFile("/a"))
	require.True(t, m.AddRecentFile("/b"))
	require.True(t, m.AddRecentFile("/a"))

	r := m.RecentFiles(0)
	require.Len(t, r, 2)
	assert.Equal(t, "/b", r[0].Path)
	assert.Equal(t, "/a", r[1].Path)

	for i := range 60 {
		require.True(t, m.AddRecentFile(fmt.Sprintf("/f%d", i)))
	}
	r = m.RecentFiles(0)
	require.Len(t, r, domain.DefaultRecentLimit)
	assert.Equal(t, "/f10", r[0].Path)
	assert.Len(t, m.RecentFiles(5), 5)

	assert.True(t, m.ClearRecentFiles())
	assert.Empty(t, m.RecentFiles(0))
}

func TestManager_StartupItems(t *testing.T) {
	m, _ := newManager(t)

	assert.True(t, m.AddStartupItem("/opt/tool"))
	assert.False(t, m.AddStartupItem("/opt/tool"))
	assert.True(t, m.AddStartupItem("/usr/bin/other"))
	assert.Equal(t, []string{"/opt/tool", "/usr/bin/other"}, m.StartupItems())

	assert.True(t, m.RemoveStartupItem("/opt/tool"))
	assert.Equal(t, []string{"/usr/bin/other"}, m.StartupItems())

	assert.True(t, m.ClearStartupItems())
	assert.Empty(t, m.StartupItems())
}

func TestManager_WriteFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := mocks.NewMockDataStore(ctrl)
	m := userdata.NewManager(store, quiet, 0, 0)

	store.EXPECT().Read(domain.DatasetFavorites, gomock.Any()).Return(false)
	store.EXPECT().Write(domain.DatasetFavorites, gomock.Any()).Return(errors.New("read-only file system"))
	assert.False(t, m.AddFavorite("/a"))

	store.EXPECT().Clear(domain.DatasetHistory).Return(errors.New("read-only file system"))
	assert.False(t, m.ClearHistory())
}

func TestManager_Stats(t *testing.T) {
	m, store := newManager(t)
	require.NoError(t, store.Init())

	stats := m.Stats()
	require.Len(t, stats, len(domain.Datasets()))
	for _, st := range stats {
		assert.True(t, st.Exists, st.Name)
	}
}
