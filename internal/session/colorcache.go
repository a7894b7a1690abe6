// pattern: Functional Core (assignment) + Imperative Shell (clock)

package session

import (
	"sync"
	"time"
)

// Clock supplies the current time. Injected so cache expiry is
// testable without sleeping.
type Clock func() time.Time

// ColorCache assigns stable display colors to user names for the
// users list. Entries expire after the TTL and get reassigned on next
// use. An explicit object owned by the screen that needs it; never
// shared module state.
type ColorCache struct {
	ttl     time.Duration
	clock   Clock
	palette []string

	mu      sync.Mutex
	entries map[string]colorEntry
	next    int
}

type colorEntry struct {
	color    string
	assigned time.Time
}

// NewColorCache builds a cache over the given palette of color values
// (hex strings from the active flavor). A nil clock means time.Now.
func NewColorCache(ttl time.Duration, palette []string, clock Clock) *ColorCache {
	if clock == nil {
		clock = time.Now
	}
	return &ColorCache{
		ttl:     ttl,
		clock:   clock,
		palette: palette,
		entries: make(map[string]colorEntry),
	}
}

// Color returns the color assigned to name, assigning the next palette
// color when the name is new or its entry has expired.
func (c *ColorCache) Color(name string) string {
	if len(c.palette) == 0 {
		return ""
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.clock()
	if e, ok := c.entries[name]; ok && now.Sub(e.assigned) < c.ttl {
		return e.color
	}

	color := c.palette[c.next%len(c.palette)]
	c.next++
	c.entries[name] = colorEntry{color: color, assigned: now}
	return color
}

// Len returns the number of live entries. Expired entries are only
// evicted lazily on access, so this counts stored entries.
func (c *ColorCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}
