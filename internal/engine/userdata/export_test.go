package userdata

import "time"

// SetClock replaces the clock used for history and export timestamps.
func (m *Manager) SetClock(now func() time.Time) {
	m.now = now
}
