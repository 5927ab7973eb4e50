package tui_test

import (
	"errors"
	"testing"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/glass/internal/adapters/tui"
	"go.trai.ch/glass/internal/core/domain"
)

// fakeSource serves fixed listings and records user data calls.
type fakeSource struct {
	listings  map[string][]domain.Row
	sizes     map[string]domain.SizeCell
	callbacks map[string]func(string)
	requests  map[string]func()
	activity  domain.Activity
	listErr   error
	favorites map[string]bool
	history   []string
	recent    []string
}

func newFakeSource() *fakeSource {
	return &fakeSource{
		listings:  make(map[string][]domain.Row),
		sizes:     make(map[string]domain.SizeCell),
		callbacks: make(map[string]func(string)),
		requests:  make(map[string]func()),
		favorites: make(map[string]bool),
	}
}

func (f *fakeSource) List(dir string, onDone func(string)) ([]domain.Row, error) {
	rows := append([]domain.Row(nil), f.listings[dir]...)
	for _, row := range rows {
		if row.IsDir && row.Size.Pending {
			f.callbacks[row.Path] = onDone
		}
	}
	return rows, f.listErr
}

func (f *fakeSource) SizeCell(path string, onDone func()) domain.SizeCell {
	cell := f.sizes[path]
	if cell.Pending {
		f.requests[path] = onDone
	}
	return cell
}

func (f *fakeSource) Activity() domain.Activity { return f.activity }

func (f *fakeSource) IsFavorite(path string) bool { return f.favorites[path] }

func (f *fakeSource) AddFavorite(path string) bool {
	f.favorites[path] = true
	return true
}

func (f *fakeSource) RemoveFavorite(path string) bool {
	delete(f.favorites, path)
	return true
}

func (f *fakeSource) AddHistory(path string) bool {
	f.history = append(f.history, path)
	return true
}

func (f *fakeSource) AddRecentFile(path string) bool {
	f.recent = append(f.recent, path)
	return true
}

func pendingCell() domain.SizeCell {
	return domain.SizeCell{Text: domain.PendingText, Bytes: -1, Pending: true}
}

func knownCell(n int64) domain.SizeCell {
	return domain.SizeCell{Text: domain.DisplaySize(n), Tooltip: domain.ExactSize(n), Bytes: n}
}

func homeSource() *fakeSource {
	src := newFakeSource()
	src.listings["/home"] = []domain.Row{
		{Name: "notes.txt", Path: "/home/notes.txt", Size: knownCell(10)},
		{Name: "music", Path: "/home/music", IsDir: true, Size: pendingCell()},
		{Name: "docs", Path: "/home/docs", IsDir: true, Size: knownCell(2048)},
	}
	src.listings["/home/docs"] = []domain.Row{
		{Name: "a.pdf", Path: "/home/docs/a.pdf", Size: knownCell(2048)},
	}
	src.listings["/"] = []domain.Row{
		{Name: "home", Path: "/home", IsDir: true, Size: knownCell(1 << 20)},
	}
	return src
}

func key(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "backspace":
		return tea.KeyMsg{Type: tea.KeyBackspace}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func send(t *testing.T, m *tui.Model, msg tea.Msg) tea.Cmd {
	t.Helper()
	updated, cmd := m.Update(msg)
	require.Same(t, m, updated)
	return cmd
}

func names(rows []domain.Row) []string {
	out := make([]string, len(rows))
	for i, row := range rows {
		out[i] = row.Name
	}
	return out
}

func TestModel_Init_LoadsDirectory(t *testing.T) {
	src := homeSource()
	m := tui.NewModel(src, "/home")

	cmd := m.Init()

	assert.NotNil(t, cmd, "a pending size starts the spinner")
	assert.True(t, m.Ticking())
	assert.Equal(t, []string{"docs", "music", "notes.txt"}, names(m.Rows), "folders first, then by name")
	assert.Contains(t, m.View(), domain.PendingText)
	assert.Contains(t, m.View(), "2.00 KB")
}

func TestModel_Init_NothingPending(t *testing.T) {
	src := homeSource()
	m := tui.NewModel(src, "/home/docs")

	assert.Nil(t, m.Init())
	assert.False(t, m.Ticking())
}

func TestModel_ResolvesSizeOnCallback(t *testing.T) {
	src := homeSource()
	m := tui.NewModel(src, "/home")
	m.Init()

	onDone := src.callbacks["/home/music"]
	require.NotNil(t, onDone)

	src.sizes["/home/music"] = knownCell(30 * domain.GiB)
	send(t, m, tui.Invoke(func() { onDone("/home/music") }))

	assert.NotContains(t, m.View(), domain.PendingText)
	assert.Contains(t, m.View(), "25+ GB")

	// The spinner stops on its next tick.
	assert.Nil(t, send(t, m, spinner.TickMsg{}))
	assert.False(t, m.Ticking())
}

func TestModel_StaleSizeIsRequestedAgain(t *testing.T) {
	src := homeSource()
	m := tui.NewModel(src, "/home")
	m.Init()
	onDone := src.callbacks["/home/music"]

	// The folder changed while it was walked, so the cache has no valid entry yet.
	src.sizes["/home/music"] = pendingCell()
	send(t, m, tui.Invoke(func() { onDone("/home/music") }))
	assert.Contains(t, m.View(), domain.PendingText)

	again := src.requests["/home/music"]
	require.NotNil(t, again, "the new walk reports back to the model")

	src.sizes["/home/music"] = knownCell(4096)
	send(t, m, tui.Invoke(again))
	assert.NotContains(t, m.View(), domain.PendingText)
	assert.Contains(t, m.View(), "4.00 KB")

	assert.Nil(t, send(t, m, spinner.TickMsg{}))
	assert.False(t, m.Ticking())
}

func TestModel_ShowsActivity(t *testing.T) {
	src := homeSource()
	src.activity = domain.Activity{Running: []string{"size /home/music", "size /tmp"}, Done: 3, Failed: 1}
	m := tui.NewModel(src, "/home")
	m.Init()

	view := m.View()
	assert.Contains(t, view, "walking 2 folders")
	assert.Contains(t, view, "3 done")
	assert.Contains(t, view, "1 incomplete")

	src.activity = domain.Activity{Running: []string{}, Done: 4, Failed: 1}
	src.sizes["/home/music"] = knownCell(1)
	onDone := src.callbacks["/home/music"]
	send(t, m, tui.Invoke(func() { onDone("/home/music") }))
	assert.NotContains(t, m.View(), "walking")
}

func TestModel_StaleCallbackIsIgnored(t *testing.T) {
	src := homeSource()
	m := tui.NewModel(src, "/home")
	m.Init()
	onDone := src.callbacks["/home/music"]

	send(t, m, key("enter")) // into docs
	require.Equal(t, "/home/docs", m.Dir)

	src.sizes["/home/music"] = knownCell(1)
	send(t, m, tui.Invoke(func() { onDone("/home/music") }))
	assert.Equal(t, []string{"a.pdf"}, names(m.Rows))
}

func TestModel_Navigation(t *testing.T) {
	src := homeSource()
	m := tui.NewModel(src, "/home")
	m.Init()

	send(t, m, key("enter"))
	assert.Equal(t, "/home/docs", m.Dir)
	assert.Equal(t, []string{"/home/docs"}, src.history)

	send(t, m, key("backspace"))
	assert.Equal(t, "/home", m.Dir)

	send(t, m, key("backspace"))
	assert.Equal(t, "/", m.Dir)

	send(t, m, key("backspace"))
	assert.Equal(t, "/", m.Dir, "root has no parent")
	assert.Equal(t, []string{"/home/docs", "/home", "/"}, src.history)
}

func TestModel_OpenFileAddsRecent(t *testing.T) {
	src := homeSource()
	m := tui.NewModel(src, "/home")
	m.Init()

	send(t, m, key("down"))
	send(t, m, key("down"))
	send(t, m, key("enter"))

	assert.Equal(t, "/home", m.Dir)
	assert.Equal(t, []string{"/home/notes.txt"}, src.recent)
	assert.Contains(t, m.Status, "notes.txt")
}

func TestModel_ToggleFavorite(t *testing.T) {
	src := homeSource()
	m := tui.NewModel(src, "/home")
	m.Init()

	send(t, m, key("f"))
	assert.True(t, src.favorites["/home/docs"])
	assert.Contains(t, m.View(), "★")

	send(t, m, key("f"))
	assert.False(t, src.favorites["/home/docs"])
	assert.NotContains(t, m.View(), "★")

	send(t, m, key("down"))
	send(t, m, key("down"))
	send(t, m, key("f"))
	assert.Empty(t, src.favorites, "files cannot be favorites")
}

func TestModel_SortBySizeKeepsSelection(t *testing.T) {
	src := homeSource()
	src.listings["/home"] = []domain.Row{
		{Name: "a", Path: "/home/a", IsDir: true, Size: knownCell(1)},
		{Name: "b", Path: "/home/b", IsDir: true, Size: knownCell(300)},
		{Name: "c", Path: "/home/c", IsDir: true, Size: pendingCell()},
	}
	m := tui.NewModel(src, "/home")
	m.Init()

	send(t, m, key("s"))
	assert.Equal(t, domain.SortBySize, m.SortBy)
	assert.Equal(t, []string{"b", "a", "c"}, names(m.Rows), "pending sizes sort last")
	assert.Equal(t, "a", m.Rows[m.SelectedIdx].Name)

	src.sizes["/home/c"] = knownCell(500)
	onDone := src.callbacks["/home/c"]
	send(t, m, tui.Invoke(func() { onDone("/home/c") }))
	assert.Equal(t, []string{"c", "b", "a"}, names(m.Rows))
	assert.Equal(t, "a", m.Rows[m.SelectedIdx].Name)

	send(t, m, key("s"))
	assert.Equal(t, []string{"a", "b", "c"}, names(m.Rows))
}

func TestModel_SlidingWindow(t *testing.T) {
	src := newFakeSource()
	for _, n := range "abcdefghij" {
		name := string(n)
		src.listings["/x"] = append(src.listings["/x"], domain.Row{Name: name, Path: "/x/" + name, Size: knownCell(1)})
	}
	m := tui.NewModel(src, "/x")
	m.Init()
	send(t, m, tea.WindowSizeMsg{Width: 80, Height: 10})
	require.Equal(t, 5, m.ListHeight)

	for range 5 {
		send(t, m, key("down"))
	}
	assert.Equal(t, 5, m.SelectedIdx)
	assert.Equal(t, 1, m.ListOffset)

	for range 20 {
		send(t, m, key("j"))
	}
	assert.Equal(t, 9, m.SelectedIdx)
	assert.Equal(t, 5, m.ListOffset)

	for range 5 {
		send(t, m, key("up"))
	}
	assert.Equal(t, 4, m.SelectedIdx)
	assert.Equal(t, 4, m.ListOffset)
}

func TestModel_ListError(t *testing.T) {
	src := newFakeSource()
	src.listErr = errors.New("permission denied")
	m := tui.NewModel(src, "/root")
	m.Init()

	assert.Contains(t, m.View(), "permission denied")
}

func TestModel_Quit(t *testing.T) {
	m := tui.NewModel(newFakeSource(), "/")
	m.Init()

	cmd := send(t, m, key("q"))
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}
