package tui

import tea "github.com/charmbracelet/bubbletea"

// invokeMsg carries a function to run inside Update.
type invokeMsg struct {
	fn func()
}

// Dispatcher runs functions on a Bubble Tea program's event loop. It implements
// ports.Dispatcher.
type Dispatcher struct {
	program *tea.Program
}

// NewDispatcher creates a Dispatcher for program.
func NewDispatcher(program *tea.Program) *Dispatcher {
	return &Dispatcher{program: program}
}

// Dispatch posts fn to the program. It waits for the event loop to accept the
// message, not for fn to run. Once the program has exited the message is dropped.
func (d *Dispatcher) Dispatch(fn func()) {
	if fn == nil {
		return
	}
	d.program.Send(invokeMsg{fn: fn})
}
