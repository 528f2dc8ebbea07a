package sim

// RespawnGuard resets a player that stays below Height-FallThreshold for
// Delay seconds without interruption.
type RespawnGuard struct {
	Height        float64
	FallThreshold float64
	Delay         float64

	falling bool
	since   float64
}

func NewRespawnGuard(height float64) RespawnGuard {
	return RespawnGuard{Height: height, FallThreshold: 20, Delay: 8}
}

func (g *RespawnGuard) Threshold() float64 { return g.Height - g.FallThreshold }

// Check observes the capsule start height at time now and reports whether the
// player must respawn. Rising above the threshold disarms the timer.
func (g *RespawnGuard) Check(startY, now float64) bool {
	if startY > g.Threshold() {
		g.falling = false
		return false
	}
	if !g.falling {
		g.falling = true
		g.since = now
	}
	if now-g.since >= g.Delay {
		g.falling = false
		return true
	}
	return false
}

// Falling reports whether the timer is armed and since when.
func (g *RespawnGuard) Falling() (bool, float64) { return g.falling, g.since }

// Rearm moves the respawn point and clears the timer.
func (g *RespawnGuard) Rearm(height float64) {
	g.Height = height
	g.falling = false
}
