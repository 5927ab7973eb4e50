package sizecache

import "time"

// SetClock replaces the clock used for the updated timestamp.
func (c *Cache) SetClock(now func() time.Time) {
	c.now = now
}
