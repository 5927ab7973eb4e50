package tui

import tea "github.com/charmbracelet/bubbletea"

// Invoke wraps fn the way Dispatcher does, for driving Update directly.
func Invoke(fn func()) tea.Msg {
	return invokeMsg{fn: fn}
}

// Ticking reports whether the spinner is animating.
func (m *Model) Ticking() bool {
	return m.ticking
}
