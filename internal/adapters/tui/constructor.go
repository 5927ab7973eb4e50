// Package tui provides the terminal folder browser.
package tui

import (
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/lipgloss"
	"go.trai.ch/glass/internal/core/domain"
)

// headerHeight is the number of lines above the listing: title, path and a blank line.
const headerHeight = 3

// footerHeight is the number of lines below the listing.
const footerHeight = 2

// NewModel creates a browser model rooted at dir.
func NewModel(source Source, dir string) *Model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(colorIris)

	return &Model{
		Dir:       dir,
		SortBy:    domain.SortByName,
		Favorites: make(map[string]bool),
		source:    source,
		spinner:   s,
	}
}
