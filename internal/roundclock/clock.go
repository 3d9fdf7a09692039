package roundclock

import (
	"sync"
	"time"
)

// Clock drives round transitions on a fixed period. It is the only
// trigger: nothing else ends a round early, and stopping the clock is
// the only way to halt the game.
type Clock struct {
	mu       sync.Mutex
	period   time.Duration
	closesAt time.Time
	stop     chan struct{}
	stopOnce sync.Once
}

func New(period time.Duration) *Clock {
	return &Clock{
		period: period,
		stop:   make(chan struct{}),
	}
}

// Start launches the scheduling loop in its own goroutine. The deadline
// is reset before each invocation of onTick, so the callback observes a
// full period remaining for the round it opens.
func (c *Clock) Start(onTick func()) {
	c.mu.Lock()
	c.closesAt = time.Now().Add(c.period)
	c.mu.Unlock()
	go c.run(onTick)
}

func (c *Clock) run(onTick func()) {
	ticker := time.NewTicker(c.period)
	defer ticker.Stop()
	for {
		select {
		case <-c.stop:
			return
		case <-ticker.C:
			c.mu.Lock()
			c.closesAt = time.Now().Add(c.period)
			c.mu.Unlock()
			onTick()
		}
	}
}

// Stop tears down the timer. Safe to call more than once.
func (c *Clock) Stop() {
	c.stopOnce.Do(func() { close(c.stop) })
}

func (c *Clock) Period() time.Duration {
	return c.period
}

// Remaining reports the time until the next tick, clamped to zero so a
// delayed callback never surfaces a negative countdown.
func (c *Clock) Remaining() time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()
	remaining := time.Until(c.closesAt)
	if remaining < 0 {
		return 0
	}
	return remaining
}
