// Package controls turns pointer input into a camera that orbits, pans and
// zooms around a target point.
package controls

import (
	"math"

	"github.com/taigrr/orbitview/pkg/math3d"
)

// MinRadius is the closest the camera may get to its target.
const MinRadius = 0.1

// Camera is the view the controls drive. The controls never own it.
type Camera interface {
	// Right and Up are the camera's world-space basis vectors.
	Right() math3d.Vec3
	Up() math3d.Vec3
	SetPosition(pos math3d.Vec3)
	// LookAt points the camera's forward axis at target.
	LookAt(target math3d.Vec3)
}

// Params configures OrbitControls. Angles are in radians.
type Params struct {
	Radius float64 // initial distance from the target
	Pitch  float64 // polar angle, measured from +Y
	Yaw    float64 // azimuth around +Y, 0 on +Z

	OrbitSpeed float64 // radians per pixel of drag
	PanSpeed   float64 // world units per pixel, per unit of radius
	ZoomSpeed  float64 // world units per scroll step
}

// DefaultParams returns the parameters used when none are given.
func DefaultParams() Params {
	return Params{
		Radius:     1.0,
		OrbitSpeed: 0.01,
		PanSpeed:   0.001,
		ZoomSpeed:  0.25,
	}
}

// state is everything OrbitControls mutates.
type state struct {
	camera Camera

	spherical math3d.Spherical
	target    math3d.Vec3

	currPos math3d.Vec2
	prevPos math3d.Vec2

	button Button
	scroll float64

	orbitSpeed float64
	panSpeed   float64
	zoomSpeed  float64
}

// OrbitControls moves a Camera around a target point.
//
// Left drag orbits, right drag pans the target in the camera plane and the
// scroll wheel zooms. The first button pressed owns the gesture until it is
// released; other presses are ignored meanwhile.
//
// Events and updates must come from the same goroutine.
type OrbitControls struct {
	s state
}

// New creates controls for camera. The camera is not touched until the first
// OnUpdate.
func New(camera Camera, params Params) *OrbitControls {
	return &OrbitControls{s: state{
		camera:     camera,
		spherical:  math3d.NewSpherical(params.Radius, params.Yaw, params.Pitch),
		orbitSpeed: params.OrbitSpeed,
		panSpeed:   params.PanSpeed,
		zoomSpeed:  params.ZoomSpeed,
	}}
}

// OnMouseEvent records a pointer event. Nothing moves until OnUpdate.
func (o *OrbitControls) OnMouseEvent(ev MouseEvent) {
	s := &o.s
	s.currPos = ev.Position

	switch ev.Type {
	case ButtonPressed:
		if s.button == ButtonNone {
			s.button = ev.Button
		}
	case ButtonReleased:
		if ev.Button == s.button {
			s.button = ButtonNone
		}
	case Scrolled:
		// Latest wins; scrolls are not summed between frames.
		s.scroll = ev.Scroll.Y
	}
}

// PointerMoved records a pointer move to pos.
func (o *OrbitControls) PointerMoved(pos math3d.Vec2) {
	o.OnMouseEvent(MouseEvent{Type: PointerMoved, Position: pos})
}

// ButtonPressed records a press of b at pos.
func (o *OrbitControls) ButtonPressed(b Button, pos math3d.Vec2) {
	o.OnMouseEvent(MouseEvent{Type: ButtonPressed, Position: pos, Button: b})
}

// ButtonReleased records a release of b at pos.
func (o *OrbitControls) ButtonReleased(b Button, pos math3d.Vec2) {
	o.OnMouseEvent(MouseEvent{Type: ButtonReleased, Position: pos, Button: b})
}

// Scrolled records a vertical scroll of dy at pos.
func (o *OrbitControls) Scrolled(pos math3d.Vec2, dy float64) {
	o.OnMouseEvent(MouseEvent{Type: Scrolled, Position: pos, Scroll: math3d.V2(0, dy)})
}

// OnUpdate folds the input gathered since the previous call into the camera
// pose and writes it to the camera.
//
// Motion follows pointer deltas, not time, so delta is ignored.
func (o *OrbitControls) OnUpdate(_ float64) {
	s := &o.s

	offset := s.currPos.Sub(s.prevPos)

	if s.button == ButtonLeft {
		s.spherical.Phi -= offset.X * s.orbitSpeed
		s.spherical.Theta += offset.Y * s.orbitSpeed
	}

	if s.scroll != 0 {
		s.spherical.Radius = math.Max(MinRadius, s.spherical.Radius-s.scroll*s.zoomSpeed)
		s.scroll = 0
	}

	if s.button == ButtonRight {
		speed := s.panSpeed * s.spherical.Radius
		right := s.camera.Right().Scale(offset.X)
		up := s.camera.Up().Scale(offset.Y)
		s.target = s.target.Sub(right.Sub(up).Scale(speed))
	}

	s.prevPos = s.currPos

	s.spherical.MakeSafe()
	s.camera.SetPosition(s.target.Add(s.spherical.ToVec3()))
	s.camera.LookAt(s.target)
}

// Target returns the point being orbited.
func (o *OrbitControls) Target() math3d.Vec3 {
	return o.s.target
}

// Spherical returns the camera offset from the target.
func (o *OrbitControls) Spherical() math3d.Spherical {
	return o.s.spherical
}
