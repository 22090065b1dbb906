package timing

import "time"

// Clock maps a host's global elapsed time to one layer's local time.
// Each layer can own a Clock, so pausing or rate-scaling one layer leaves
// the others untouched. The zero Clock runs at rate 1.
type Clock struct {
	Offset time.Duration
	Rate   float64 // 0 means 1
	Paused bool
	At     time.Duration // Local time held while paused
}

// Local converts global elapsed time to local time.
func (c Clock) Local(global time.Duration) time.Duration {
	if c.Paused {
		return c.At
	}
	rate := c.Rate
	if rate == 0 {
		rate = 1
	}
	return c.Offset + time.Duration(float64(global)*rate)
}

// Pause freezes the clock at its local time for global.
func (c Clock) Pause(global time.Duration) Clock {
	if c.Paused {
		return c
	}
	c.At = c.Local(global)
	c.Paused = true
	return c
}

// Resume continues from the frozen local time at global.
func (c Clock) Resume(global time.Duration) Clock {
	if !c.Paused {
		return c
	}
	c.Paused = false
	c.Offset = 0
	c.Offset = c.At - c.Local(global)
	return c
}

// WithRate changes the rate without a jump in local time at global.
func (c Clock) WithRate(global time.Duration, rate float64) Clock {
	if c.Paused {
		c.Rate = rate
		return c
	}
	now := c.Local(global)
	c.Rate = rate
	c.Offset = 0
	c.Offset = now - c.Local(global)
	return c
}
