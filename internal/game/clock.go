package game

import "time"

// Clock reports the time since the session started, in seconds. It only moves
// forward when advanced, and stands still while paused.
type Clock struct {
	now      func() time.Time
	origin   time.Time
	current  float64
	started  bool
	paused   bool
	pausedAt time.Time
}

func NewClock(now func() time.Time) *Clock {
	if now == nil {
		now = time.Now
	}
	return &Clock{now: now}
}

// Start sets the session origin delay from now. Calling it again has no effect.
func (c *Clock) Start(delay time.Duration) {
	if c.started {
		return
	}
	c.started = true
	c.origin = c.now().Add(delay)
	c.current = c.now().Sub(c.origin).Seconds()
}

// Origin is the absolute start of the session.
func (c *Clock) Origin() time.Time {
	return c.origin
}

// Advance samples the wall clock and returns the new relative time.
func (c *Clock) Advance() float64 {
	if !c.started || c.paused {
		return c.current
	}
	t := c.now().Sub(c.origin).Seconds()
	if t > c.current {
		c.current = t
	}
	return c.current
}

// Relative returns the relative time as of the last Advance.
func (c *Clock) Relative() float64 {
	return c.current
}

func (c *Clock) Pause() {
	if c.paused {
		return
	}
	c.paused = true
	c.pausedAt = c.now()
}

func (c *Clock) Resume() {
	if !c.paused {
		return
	}
	c.paused = false
	c.origin = c.origin.Add(c.now().Sub(c.pausedAt))
}

func (c *Clock) Paused() bool {
	return c.paused
}
