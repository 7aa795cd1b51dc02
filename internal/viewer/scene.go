// Package viewer composes a mesh, a camera and orbit controls into a scene
// and drives it from terminal or window input.
package viewer

import (
	"image/color"
	"math"
	"math/rand/v2"

	"github.com/rs/zerolog"
	"github.com/taigrr/orbitview/internal/spin"
	"github.com/taigrr/orbitview/pkg/controls"
	"github.com/taigrr/orbitview/pkg/math3d"
	"github.com/taigrr/orbitview/pkg/models"
	"github.com/taigrr/orbitview/pkg/render"
)

const (
	gridSize   = 4.0
	gridStep   = 0.5
	axisLength = 1.0
	markerSize = 0.15

	// spinImpulse bounds each axis of a random spin, in radians per frame.
	spinImpulse = 0.15
)

var (
	meshColor   = render.RGB(0, 255, 128)
	gridColor   = render.RGB(70, 70, 90)
	targetColor = render.ColorYellow
)

// Options are the scene's display settings.
type Options struct {
	Background color.RGBA
	FPS        int
	Grid       bool
	HUD        bool
}

// Stats describes the last rendered frame.
type Stats struct {
	Model      string
	Edges      int
	EdgesDrawn int
	Camera     math3d.Vec3
	Target     math3d.Vec3
	Radius     float64
}

// Scene owns everything one viewer frame needs. It is not safe for
// concurrent use; frontends drive it from a single goroutine.
type Scene struct {
	mesh  *models.Mesh
	edges [][2]int

	fb       *render.Framebuffer
	camera   *render.Camera
	wire     *render.Wireframe
	controls *controls.OrbitControls
	spin     *spin.State

	params controls.Params
	opts   Options
	log    zerolog.Logger

	pointer    math3d.Vec2 // last position fed to the controls
	edgesDrawn int
}

// NewScene builds a scene for mesh on a width x height pixel framebuffer.
// The mesh is centered on the origin and scaled to fit the grid.
func NewScene(mesh *models.Mesh, width, height int, params controls.Params, opts Options, log zerolog.Logger) *Scene {
	mesh.FitToUnit(2)

	fb := render.NewFramebuffer(width, height)
	camera := render.NewCamera()
	s := &Scene{
		mesh:     mesh,
		edges:    mesh.Edges(),
		fb:       fb,
		camera:   camera,
		wire:     render.NewWireframe(camera, fb),
		controls: controls.New(camera, params),
		spin:     spin.New(opts.FPS),
		params:   params,
		opts:     opts,
		log:      log,
	}
	s.setAspect()

	log.Info().
		Str("model", mesh.Name).
		Int("vertices", mesh.VertexCount()).
		Int("triangles", mesh.TriangleCount()).
		Int("edges", len(s.edges)).
		Msg("scene ready")
	return s
}

func (s *Scene) setAspect() {
	if s.fb.Height > 0 {
		s.camera.SetAspectRatio(float64(s.fb.Width) / float64(s.fb.Height))
	}
}

// Resize changes the framebuffer size in pixels.
func (s *Scene) Resize(width, height int) {
	if width == s.fb.Width && height == s.fb.Height {
		return
	}
	s.fb.Resize(width, height)
	s.setAspect()
	s.log.Debug().Int("width", width).Int("height", height).Msg("resize")
}

// Controls returns the orbit controls that input should be fed to.
func (s *Scene) Controls() *controls.OrbitControls { return s.controls }

// Framebuffer returns the rendered frame.
func (s *Scene) Framebuffer() *render.Framebuffer { return s.fb }

// Camera returns the camera driven by the controls.
func (s *Scene) Camera() *render.Camera { return s.camera }

// Options returns the current display settings.
func (s *Scene) Options() Options { return s.opts }

// ToggleGrid shows or hides the ground grid.
func (s *Scene) ToggleGrid() { s.opts.Grid = !s.opts.Grid }

// ToggleHUD shows or hides the HUD.
func (s *Scene) ToggleHUD() { s.opts.HUD = !s.opts.HUD }

// Spin gives the model a random push.
func (s *Scene) Spin() {
	s.spin.ApplyImpulse(
		(rand.Float64()-0.5)*2*spinImpulse,
		(rand.Float64()-0.5)*2*spinImpulse,
		(rand.Float64()-0.5)*2*spinImpulse,
	)
}

// Pointer forwards a pointer event to the controls.
func (s *Scene) Pointer(ev controls.MouseEvent) {
	s.pointer = ev.Position
	s.controls.OnMouseEvent(ev)
}

// Reset stops the spin and puts the camera back at its starting pose. The new
// controls start at the last pointer position so the next drag has no jump.
func (s *Scene) Reset() {
	s.spin.Reset()
	s.controls = controls.New(s.camera, s.params)
	s.controls.PointerMoved(s.pointer)
	s.controls.OnUpdate(0)
	s.log.Debug().Msg("view reset")
}

// Frame advances the controls and the spin by one step and redraws.
func (s *Scene) Frame(dt float64) {
	s.controls.OnUpdate(dt)
	s.spin.Update()

	s.fb.Clear(s.opts.Background)
	if s.opts.Grid {
		s.wire.DrawGrid(gridSize, gridStep, gridColor)
		s.wire.DrawAxes(axisLength)
	}
	s.wire.DrawPoint(s.controls.Target(), markerSize, targetColor)
	s.edgesDrawn = s.wire.DrawEdges(s.mesh.Vertices, s.edges, s.spin.Transform(), meshColor)
}

// Stats reports on the last frame.
func (s *Scene) Stats() Stats {
	return Stats{
		Model:      s.mesh.Name,
		Edges:      len(s.edges),
		EdgesDrawn: s.edgesDrawn,
		Camera:     s.camera.Position,
		Target:     s.controls.Target(),
		Radius:     s.controls.Spherical().Radius,
	}
}

// frameSeconds clamps a frame delta so a stall does not become one huge step.
func frameSeconds(dt float64) float64 {
	return math.Min(dt, 0.1)
}
