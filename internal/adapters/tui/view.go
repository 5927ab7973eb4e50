package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"go.trai.ch/glass/internal/core/domain"
)

const sizeColumnWidth = 14

// View renders the listing.
func (m *Model) View() string {
	var s strings.Builder

	s.WriteString(titleStyle.Render("GLASS"))
	s.WriteString(pathStyle.Render(m.Dir))
	s.WriteString("\n\n")

	if m.Err != nil {
		s.WriteString(errorStyle.Render(m.Err.Error()) + "\n")
	}
	if len(m.Rows) == 0 && m.Err == nil {
		s.WriteString(helpStyle.Render("  (empty)") + "\n")
	}

	end := len(m.Rows)
	if m.ListHeight > 0 {
		end = min(m.ListOffset+m.ListHeight, len(m.Rows))
	}
	for i := m.ListOffset; i < end; i++ {
		s.WriteString(m.row(i) + "\n")
	}

	s.WriteString("\n")
	if line := m.activityLine(); line != "" {
		s.WriteString(pendingStyle.Render(line) + "\n")
	}
	if m.Status != "" {
		s.WriteString(helpStyle.Render(m.Status) + "  ")
	}
	s.WriteString(helpStyle.Render(fmt.Sprintf(
		"↑/↓ move · enter open · ⌫ up · s sort: %s · f favorite · r reload · q quit", m.SortBy)))

	return s.String()
}

func (m *Model) row(i int) string {
	row := m.Rows[i]

	name := row.Name
	if row.IsDir {
		name = dirStyle.Render(name + "/")
	}
	if m.Favorites[row.Path] {
		name += " " + favoriteStyle.Render("★")
	}

	size := row.Size.Text
	if row.Size.Pending {
		size = pendingStyle.Render(m.spinner.View() + " " + domain.PendingText)
	}
	size = lipgloss.PlaceHorizontal(sizeColumnWidth, lipgloss.Right, size)

	line := size + "  " + name
	if i == m.SelectedIdx {
		return selectedStyle.Render("> ") + line
	}
	return "  " + line
}

// activityLine summarizes the walks still running, or is empty when there are none.
func (m *Model) activityLine() string {
	running := len(m.activity.Running)
	if running == 0 {
		return ""
	}
	line := fmt.Sprintf("%s walking %d folder", m.spinner.View(), running)
	if running > 1 {
		line += "s"
	}
	if m.activity.Done > 0 {
		line += fmt.Sprintf(" · %d done", m.activity.Done)
	}
	if m.activity.Failed > 0 {
		line += fmt.Sprintf(" · %d incomplete", m.activity.Failed)
	}
	return line
}
