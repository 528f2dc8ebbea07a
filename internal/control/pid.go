package control

import "math"

// PID steers a scalar error towards zero. Seek runs one on the heading error
// and integrates its output as a turn rate.
type PID struct {
	Kp, Ki, Kd float64

	// Limit clamps the output and the integral term; 0 means unbounded.
	Limit float64

	integral float64
	prevErr  float64
	prevT    float64
	first    bool
}

func NewPID(kp, ki, kd float64) *PID {
	return &PID{Kp: kp, Ki: ki, Kd: kd, first: true}
}

func (p *PID) clamp(v float64) float64 {
	if p.Limit <= 0 {
		return v
	}
	return math.Max(-p.Limit, math.Min(p.Limit, v))
}

// Update returns the output for err observed at time t. The first call and
// calls that do not advance t are proportional only.
func (p *PID) Update(err, t float64) float64 {
	if p.first {
		p.prevErr, p.prevT, p.first = err, t, false
		return p.clamp(p.Kp * err)
	}

	dt := t - p.prevT
	if dt <= 0 {
		return p.clamp(p.Kp * err)
	}

	p.integral += err * dt
	if p.Ki != 0 && p.Limit > 0 {
		p.integral = math.Max(-p.Limit/math.Abs(p.Ki), math.Min(p.Limit/math.Abs(p.Ki), p.integral))
	}
	derivative := (err - p.prevErr) / dt
	p.prevErr, p.prevT = err, t

	return p.clamp(p.Kp*err + p.Ki*p.integral + p.Kd*derivative)
}

// Reset forgets the integral and the previous error; Seek calls it on every
// waypoint switch.
func (p *PID) Reset() {
	p.integral = 0
	p.prevErr = 0
	p.first = true
}

func (p *PID) GetParams() map[string]float64 {
	return map[string]float64{
		"Kp":    p.Kp,
		"Ki":    p.Ki,
		"Kd":    p.Kd,
		"Limit": p.Limit,
	}
}

func (p *PID) SetParam(name string, value float64) {
	switch name {
	case "Kp":
		p.Kp = value
	case "Ki":
		p.Ki = value
	case "Kd":
		p.Kd = value
	case "Limit":
		p.Limit = value
	}
}
