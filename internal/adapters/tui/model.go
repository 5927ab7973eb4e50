package tui

import (
	"path/filepath"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"go.trai.ch/glass/internal/core/domain"
)

// Source provides the listings and user data the browser works on.
type Source interface {
	// List returns the rows of dir. onDone is dispatched with the folder path
	// once a pending folder size is known.
	List(dir string, onDone func(path string)) ([]domain.Row, error)
	// SizeCell returns the size column for a folder.
	SizeCell(path string, onDone func()) domain.SizeCell
	IsFavorite(path string) bool
	AddFavorite(path string) bool
	RemoveFavorite(path string) bool
	AddHistory(path string) bool
	AddRecentFile(path string) bool
	// Activity reports the folder walks in flight.
	Activity() domain.Activity
}

// Model is the Bubble Tea model of the folder browser.
type Model struct {
	Dir         string
	Rows        []domain.Row
	Favorites   map[string]bool
	SortBy      domain.SortKey
	SelectedIdx int
	ListOffset  int
	ListHeight  int
	Width       int
	Status      string
	Err         error

	source   Source
	spinner  spinner.Model
	ticking  bool
	activity domain.Activity
}

// Init loads the starting directory.
func (m *Model) Init() tea.Cmd {
	return m.load()
}

// load lists Dir and starts the spinner when a size is pending.
func (m *Model) load() tea.Cmd {
	rows, err := m.source.List(m.Dir, m.resolve)
	m.Err = err
	m.Rows = rows
	domain.SortRows(m.Rows, m.SortBy)

	m.Favorites = make(map[string]bool)
	for _, row := range m.Rows {
		if row.IsDir && m.source.IsFavorite(row.Path) {
			m.Favorites[row.Path] = true
		}
	}

	m.SelectedIdx = 0
	m.ListOffset = 0
	m.activity = m.source.Activity()
	return m.tick()
}

// resolve runs on the event loop once the size of path is cached. An entry that
// went stale in the meantime is requested again and resolved on the next round.
func (m *Model) resolve(path string) {
	for i := range m.Rows {
		if m.Rows[i].Path != path {
			continue
		}
		m.Rows[i].Size = m.source.SizeCell(path, func() { m.resolve(path) })
		if m.SortBy == domain.SortBySize {
			m.sort()
		}
		return
	}
}

// sort reorders the rows and keeps the cursor on the same entry.
func (m *Model) sort() {
	selected := m.selectedPath()
	domain.SortRows(m.Rows, m.SortBy)
	for i, row := range m.Rows {
		if row.Path == selected {
			m.SelectedIdx = i
			break
		}
	}
	m.ensureVisible()
}

func (m *Model) pending() bool {
	for _, row := range m.Rows {
		if row.Size.Pending {
			return true
		}
	}
	return false
}

func (m *Model) tick() tea.Cmd {
	if m.ticking || !m.pending() {
		return nil
	}
	m.ticking = true
	return m.spinner.Tick
}

func (m *Model) selectedPath() string {
	if row, ok := m.selected(); ok {
		return row.Path
	}
	return ""
}

func (m *Model) selected() (domain.Row, bool) {
	if m.SelectedIdx >= 0 && m.SelectedIdx < len(m.Rows) {
		return m.Rows[m.SelectedIdx], true
	}
	return domain.Row{}, false
}

func (m *Model) ensureVisible() {
	if m.ListHeight <= 0 {
		return
	}
	if m.SelectedIdx < m.ListOffset {
		m.ListOffset = m.SelectedIdx
	} else if m.SelectedIdx >= m.ListOffset+m.ListHeight {
		m.ListOffset = m.SelectedIdx - m.ListHeight + 1
	}
}

func (m *Model) open(dir string) tea.Cmd {
	m.Dir = dir
	m.Status = ""
	if !m.source.AddHistory(dir) {
		m.Status = "could not record history"
	}
	return m.load()
}

// Update handles incoming messages and updates the model state.
//
//nolint:cyclop // key dispatch
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case invokeMsg:
		msg.fn()
		m.activity = m.source.Activity()
		return m, m.tick()

	case spinner.TickMsg:
		m.activity = m.source.Activity()
		if !m.pending() {
			m.ticking = false
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.ListHeight = max(msg.Height-headerHeight-footerHeight, 1)
		m.ensureVisible()

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "k", "up":
			if m.SelectedIdx > 0 {
				m.SelectedIdx--
				m.ensureVisible()
			}
		case "j", "down":
			if m.SelectedIdx < len(m.Rows)-1 {
				m.SelectedIdx++
				m.ensureVisible()
			}
		case "enter", "l", "right":
			row, ok := m.selected()
			if !ok {
				break
			}
			if row.IsDir {
				return m, m.open(row.Path)
			}
			if m.source.AddRecentFile(row.Path) {
				m.Status = "added " + row.Name + " to recent files"
			}
		case "backspace", "h", "left":
			parent := filepath.Dir(m.Dir)
			if parent != m.Dir {
				return m, m.open(parent)
			}
		case "f":
			m.toggleFavorite()
		case "s":
			if m.SortBy == domain.SortByName {
				m.SortBy = domain.SortBySize
			} else {
				m.SortBy = domain.SortByName
			}
			m.sort()
		case "r":
			return m, m.load()
		}
	}

	return m, nil
}

func (m *Model) toggleFavorite() {
	row, ok := m.selected()
	if !ok || !row.IsDir {
		return
	}
	if m.Favorites[row.Path] {
		if m.source.RemoveFavorite(row.Path) {
			delete(m.Favorites, row.Path)
			m.Status = "removed " + row.Name + " from favorites"
		}
		return
	}
	if m.source.AddFavorite(row.Path) {
		m.Favorites[row.Path] = true
		m.Status = "added " + row.Name + " to favorites"
	}
}
