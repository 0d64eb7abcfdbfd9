// Package orbit turns mouse drags and arrow keys into an object orientation.
package orbit

import (
	"github.com/chewxy/math32"

	"github.com/dennwc/glsl-primer/mat4"
)

const (
	// a drag across the whole window turns the object by this many degrees
	dragRange = 180
	// key rotation speed, degrees per second
	keySpeed = 90
	maxTheta = 90
)

// Angles is an orientation in degrees: Phi around the vertical axis, Theta tilting toward the viewer.
type Angles struct {
	Phi   float32
	Theta float32
}

func (a *Angles) turn(dphi, dtheta float32) {
	a.Phi = math32.Mod(a.Phi+dphi, 360)
	if a.Phi < 0 {
		a.Phi += 360
	}
	if a.Phi >= 360 { // rounding of a tiny negative angle
		a.Phi = 0
	}
	a.Theta = min(max(a.Theta+dtheta, -maxTheta), maxTheta)
}

// Matrix returns the rotation for the angles: first around Y by Phi, then around X by Theta.
func (a Angles) Matrix() mat4.Mat4 {
	const rad = math32.Pi / 180
	return mat4.RotX(a.Theta * rad).Mul(mat4.RotY(a.Phi * rad))
}

// Mouse tracks left button drags.
type Mouse struct {
	lastX, lastY float64
	lastLeft     bool
}

// Update feeds the current cursor position, left button state and window size,
// turning a while the left button is dragged.
func (m *Mouse) Update(a *Angles, x, y float64, left bool, width, height int) {
	if left && m.lastLeft && width > 0 && height > 0 {
		a.turn(
			float32(dragRange*(x-m.lastX)/float64(width)),
			float32(dragRange*(y-m.lastY)/float64(height)),
		)
	}
	m.lastLeft = left
	m.lastX, m.lastY = x, y
}

// Keys tracks the time between polls of the arrow keys.
type Keys struct {
	last    float64
	started bool
}

// Update feeds the current time in seconds and arrow key states,
// turning a at a constant speed while keys are held.
func (k *Keys) Update(a *Angles, now float64, left, right, up, down bool) {
	dt := float32(now - k.last)
	if !k.started {
		dt = 0
		k.started = true
	}
	k.last = now
	var dphi, dtheta float32
	if right {
		dphi += dt * keySpeed
	}
	if left {
		dphi -= dt * keySpeed
	}
	if up {
		dtheta += dt * keySpeed
	}
	if down {
		dtheta -= dt * keySpeed
	}
	a.turn(dphi, dtheta)
}
