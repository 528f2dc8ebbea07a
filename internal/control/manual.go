package control

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/san-kum/kinesim/internal/input"
)

// Manual passes keys and actions set by an interactive front end.
// Throws and teleports are delivered once and then cleared.
type Manual struct {
	Keys    map[string]bool
	Azimuth float64

	throw    *Throw
	teleport *mgl64.Vec3
}

func NewManual() *Manual {
	return &Manual{Keys: make(map[string]bool)}
}

func (m *Manual) Press(key string)   { m.Keys[key] = true }
func (m *Manual) Release(key string) { delete(m.Keys, key) }

// ReleaseAll drops every held key. Terminals report presses but not
// releases, so front ends call this after each frame.
func (m *Manual) ReleaseAll() {
	for k := range m.Keys {
		delete(m.Keys, k)
	}
}

// Turn rotates the camera by delta radians.
func (m *Manual) Turn(delta float64) { m.Azimuth += delta }

func (m *Manual) QueueThrow(aim mgl64.Vec3, held float64) {
	m.throw = &Throw{Aim: aim, Held: held}
}

func (m *Manual) QueueTeleport(feet mgl64.Vec3) {
	m.teleport = &feet
}

func (m *Manual) Command(obs Observation) Command {
	cmd := Command{
		Input:    input.FromKeys(m.Keys),
		Azimuth:  m.Azimuth,
		Throw:    m.throw,
		Teleport: m.teleport,
	}
	m.throw = nil
	m.teleport = nil
	return cmd
}
