package testutil

import (
	"sync"
	"time"

	"github.com/shelfwise/lending-lifecycle-go/lending"
)

// Clock is a steppable lending.Clock for tests. It only moves when the test
// advances it, so lease elapse boundaries can be pinned exactly.
type Clock struct {
	mu  sync.Mutex
	now time.Time
}

// NewClockAt creates a clock frozen at the given instant.
func NewClockAt(t time.Time) *Clock {
	return &Clock{now: lending.ToTimestamp(t)}
}

// Now returns the clock's current instant.
func (c *Clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.now
}

// Advance moves the clock forward by d and returns the new instant.
func (c *Clock) Advance(d time.Duration) time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.now = c.now.Add(d)

	return c.now
}

// Set pins the clock to the given instant.
func (c *Clock) Set(t time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.now = lending.ToTimestamp(t)
}

var _ lending.Clock = (*Clock)(nil)
