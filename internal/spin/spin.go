// Package spin animates the model's own rotation: impulses add angular
// velocity, which then settles back to rest on a critically damped spring.
package spin

import (
	"github.com/charmbracelet/harmonica"
	"github.com/taigrr/orbitview/pkg/math3d"
)

const (
	// frequency sets how fast velocity settles; damping 1 never overshoots.
	frequency = 4.0
	damping   = 1.0

	// restVelocity is the speed below which an axis snaps to rest.
	restVelocity = 1e-6
)

// Axis is one rotation angle with its velocity in radians per frame.
type Axis struct {
	Position float64
	Velocity float64

	spring harmonica.Spring
	accel  float64 // the spring's own velocity while it drives Velocity to 0
}

func newAxis(fps int) Axis {
	return Axis{spring: harmonica.NewSpring(harmonica.FPS(fps), frequency, damping)}
}

func (a *Axis) update() {
	a.Position += a.Velocity
	a.Velocity, a.accel = a.spring.Update(a.Velocity, a.accel, 0)
	if abs(a.Velocity) < restVelocity && abs(a.accel) < restVelocity {
		a.Velocity, a.accel = 0, 0
	}
}

func abs(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}

// State is the spin of a model around its local X (pitch), Y (yaw) and
// Z (roll) axes.
type State struct {
	Pitch, Yaw, Roll Axis
	fps              int
}

// New creates a resting spin stepped fps times per second.
func New(fps int) *State {
	s := &State{fps: fps}
	s.Reset()
	return s
}

// ApplyImpulse adds angular velocity to each axis.
func (s *State) ApplyImpulse(pitch, yaw, roll float64) {
	s.Pitch.Velocity += pitch
	s.Yaw.Velocity += yaw
	s.Roll.Velocity += roll
}

// Update advances one frame.
func (s *State) Update() {
	s.Pitch.update()
	s.Yaw.update()
	s.Roll.update()
}

// Reset returns every axis to zero angle and zero velocity.
func (s *State) Reset() {
	s.Pitch = newAxis(s.fps)
	s.Yaw = newAxis(s.fps)
	s.Roll = newAxis(s.fps)
}

// Moving reports whether any axis still has velocity.
func (s *State) Moving() bool {
	return s.Pitch.Velocity != 0 || s.Yaw.Velocity != 0 || s.Roll.Velocity != 0
}

// Transform returns the model rotation, pitch applied last.
func (s *State) Transform() math3d.Mat4 {
	return math3d.RotateX(s.Pitch.Position).
		Mul(math3d.RotateY(s.Yaw.Position)).
		Mul(math3d.RotateZ(s.Roll.Position))
}
