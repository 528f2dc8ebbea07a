package sim

// Clock is the monotonic simulation time in seconds. It only moves when the
// simulation steps.
type Clock struct {
	t float64
}

func (c *Clock) Now() float64 { return c.t }

func (c *Clock) Advance(dt float64) { c.t += dt }
