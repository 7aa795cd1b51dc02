package render

import (
	"math"

	"github.com/taigrr/orbitview/pkg/math3d"
)

// Wireframe draws 3D line geometry into a framebuffer through a camera.
type Wireframe struct {
	camera *Camera
	fb     *Framebuffer
}

// NewWireframe creates a wireframe renderer.
func NewWireframe(camera *Camera, fb *Framebuffer) *Wireframe {
	return &Wireframe{
		camera: camera,
		fb:     fb,
	}
}

// DrawLine3D draws the part of the segment p1-p2 that lies inside the view
// volume. It reports whether anything was drawn.
func (w *Wireframe) DrawLine3D(p1, p2 math3d.Vec3, color Color) bool {
	a, b, ok := clipSegment(w.camera.ToClip(p1), w.camera.ToClip(p2))
	if !ok {
		return false
	}

	x1, y1 := w.toPixel(a)
	x2, y2 := w.toPixel(b)
	w.fb.DrawLine(x1, y1, x2, y2, color)
	return true
}

func (w *Wireframe) toPixel(clip math3d.Vec4) (int, int) {
	ndc := clip.PerspectiveDivide()
	x := (ndc.X + 1) * 0.5 * float64(w.fb.Width-1)
	y := (1 - ndc.Y) * 0.5 * float64(w.fb.Height-1)
	return int(math.Round(x)), int(math.Round(y))
}

// clipSegment clips a clip-space segment against -w <= x, y, z <= w.
func clipSegment(a, b math3d.Vec4) (math3d.Vec4, math3d.Vec4, bool) {
	t0, t1 := 0.0, 1.0

	planes := [6]func(v math3d.Vec4) float64{
		func(v math3d.Vec4) float64 { return v.W + v.X },
		func(v math3d.Vec4) float64 { return v.W - v.X },
		func(v math3d.Vec4) float64 { return v.W + v.Y },
		func(v math3d.Vec4) float64 { return v.W - v.Y },
		func(v math3d.Vec4) float64 { return v.W + v.Z },
		func(v math3d.Vec4) float64 { return v.W - v.Z },
	}

	for _, dist := range planes {
		da, db := dist(a), dist(b)
		switch {
		case da < 0 && db < 0:
			return a, b, false
		case da < 0:
			t0 = math.Max(t0, da/(da-db))
		case db < 0:
			t1 = math.Min(t1, da/(da-db))
		}
		if t0 > t1 {
			return a, b, false
		}
	}

	return lerp4(a, b, t0), lerp4(a, b, t1), true
}

func lerp4(a, b math3d.Vec4, t float64) math3d.Vec4 {
	s := 1 - t
	return math3d.V4(a.X*s+b.X*t, a.Y*s+b.Y*t, a.Z*s+b.Z*t, a.W*s+b.W*t)
}

// DrawEdges draws each edge between transformed vertices and returns how
// many were at least partly visible.
func (w *Wireframe) DrawEdges(vertices []math3d.Vec3, edges [][2]int, transform math3d.Mat4, color Color) int {
	world := make([]math3d.Vec3, len(vertices))
	for i, v := range vertices {
		world[i] = transform.MulVec3(v)
	}

	drawn := 0
	for _, e := range edges {
		if w.DrawLine3D(world[e[0]], world[e[1]], color) {
			drawn++
		}
	}
	return drawn
}

// DrawAxes draws the world X, Y and Z axes from the origin in red, green
// and blue.
func (w *Wireframe) DrawAxes(length float64) {
	origin := math3d.Zero3()
	w.DrawLine3D(origin, math3d.V3(length, 0, 0), ColorRed)
	w.DrawLine3D(origin, math3d.V3(0, length, 0), ColorGreen)
	w.DrawLine3D(origin, math3d.V3(0, 0, length), ColorBlue)
}

// DrawGrid draws a square grid on the y=0 plane centered on the origin.
func (w *Wireframe) DrawGrid(size, step float64, color Color) {
	if step <= 0 {
		return
	}
	half := size / 2
	n := int(math.Floor(size/step + 1e-9))
	for i := 0; i <= n; i++ {
		p := -half + float64(i)*step
		w.DrawLine3D(math3d.V3(p, 0, -half), math3d.V3(p, 0, half), color)
		w.DrawLine3D(math3d.V3(-half, 0, p), math3d.V3(half, 0, p), color)
	}
}

// DrawPoint marks pos with a small 3D cross.
func (w *Wireframe) DrawPoint(pos math3d.Vec3, size float64, color Color) {
	h := size / 2
	w.DrawLine3D(pos.Sub(math3d.V3(h, 0, 0)), pos.Add(math3d.V3(h, 0, 0)), color)
	w.DrawLine3D(pos.Sub(math3d.V3(0, h, 0)), pos.Add(math3d.V3(0, h, 0)), color)
	w.DrawLine3D(pos.Sub(math3d.V3(0, 0, h)), pos.Add(math3d.V3(0, 0, h)), color)
}
