package world

// DefaultWrapTicks is the tick ceiling used by the classic frame timer.
const DefaultWrapTicks = 10000

// Clock is a frame tick counter that optionally wraps at a ceiling.
// A zero ceiling means the counter never wraps.
type Clock struct {
	now  int
	wrap int
}

// NewClock creates a clock starting at tick 0.
func NewClock(wrap int) *Clock {
	return &Clock{wrap: max(wrap, 0)}
}

// Tick advances the clock by n ticks. The clock never runs backwards, so a
// negative n is ignored.
func (c *Clock) Tick(n int) {
	if n <= 0 {
		return
	}
	c.now += n
	if c.wrap > 0 {
		c.now %= c.wrap
	}
}

// Now returns the current tick.
func (c *Clock) Now() int {
	return c.now
}

// Elapsed returns ticks since start, accounting for at most one wraparound.
func (c *Clock) Elapsed(start int) int {
	if start <= c.now || c.wrap == 0 {
		return c.now - start
	}
	return c.now + (c.wrap - start)
}

// Advance returns the tick n ticks after t, wrapped like the clock itself.
func (c *Clock) Advance(t, n int) int {
	t += max(n, 0)
	if c.wrap > 0 {
		t %= c.wrap
	}
	return t
}
