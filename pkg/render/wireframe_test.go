package render

import (
	"image/color"
	"path/filepath"
	"testing"

	uv "github.com/charmbracelet/ultraviolet"
	"github.com/taigrr/orbitview/pkg/math3d"
)

func countColor(fb *Framebuffer, c color.RGBA) int {
	n := 0
	for _, p := range fb.Pixels {
		if p == c {
			n++
		}
	}
	return n
}

func TestDrawLineEndpoints(t *testing.T) {
	tests := []struct {
		name           string
		x0, y0, x1, y1 int
		want           int
	}{
		{"horizontal", 1, 2, 8, 2, 8},
		{"vertical", 3, 7, 3, 0, 8},
		{"diagonal", 0, 0, 5, 5, 6},
		{"single point", 4, 4, 4, 4, 1},
		{"clipped by bounds", -5, 1, 4, 1, 5},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			fb := NewFramebuffer(10, 10)
			fb.DrawLine(tc.x0, tc.y0, tc.x1, tc.y1, ColorWhite)
			if got := countColor(fb, ColorWhite); got != tc.want {
				t.Errorf("lit %d pixels, want %d", got, tc.want)
			}
			if fb.GetPixel(tc.x1, tc.y1) != ColorWhite {
				t.Errorf("end point (%d, %d) not lit", tc.x1, tc.y1)
			}
		})
	}
}

func TestFramebufferResize(t *testing.T) {
	fb := NewFramebuffer(4, 4)
	fb.Resize(2, 3)
	if fb.Width != 2 || fb.Height != 3 || len(fb.Pixels) != 6 {
		t.Fatalf("after shrink: %dx%d, %d pixels", fb.Width, fb.Height, len(fb.Pixels))
	}
	fb.Resize(10, 10)
	if len(fb.Pixels) != 100 {
		t.Fatalf("after grow: %d pixels", len(fb.Pixels))
	}
	fb.SetPixel(9, 9, ColorRed)
	if fb.GetPixel(9, 9) != ColorRed || fb.GetPixel(10, 9) != (color.RGBA{}) {
		t.Error("pixel access after resize")
	}
}

func TestSavePNG(t *testing.T) {
	fb := NewFramebuffer(3, 2)
	fb.Clear(ColorBlue)
	path := filepath.Join(t.TempDir(), "frame.png")
	if err := fb.SavePNG(path); err != nil {
		t.Fatalf("SavePNG: %v", err)
	}
	if err := fb.SavePNG(filepath.Join(t.TempDir(), "missing", "frame.png")); err == nil {
		t.Error("expected error for missing directory")
	}
}

func TestFramebufferDrawHalfBlocks(t *testing.T) {
	fb := NewFramebuffer(3, 4)
	fb.SetPixel(1, 0, ColorRed)
	fb.SetPixel(1, 1, ColorGreen)

	scr := uv.NewScreenBuffer(5, 3)
	fb.Draw(scr, uv.Rect(1, 1, 4, 2))

	cell := scr.CellAt(2, 1)
	if cell == nil || cell.Content != halfBlock {
		t.Fatalf("cell at (2, 1) = %+v", cell)
	}
	if cell.Style.Fg != ColorRed || cell.Style.Bg != ColorGreen {
		t.Errorf("fg %v bg %v, want red over green", cell.Style.Fg, cell.Style.Bg)
	}
	if other := scr.CellAt(2, 2); other != nil && other.Content == halfBlock {
		t.Error("drew outside the target area")
	}
}

func testWireframe() (*Wireframe, *Framebuffer) {
	fb := NewFramebuffer(80, 60)
	cam := NewCamera()
	cam.SetAspectRatio(80.0 / 60.0)
	cam.SetPosition(math3d.V3(0, 0, 5))
	cam.LookAt(math3d.Zero3())
	return NewWireframe(cam, fb), fb
}

func TestDrawLine3DClipsBehindCamera(t *testing.T) {
	w, fb := testWireframe()

	// Crosses the camera plane: only the part in front is drawn.
	if !w.DrawLine3D(math3d.V3(0, 0, 0), math3d.V3(0, 0, 50), ColorWhite) {
		t.Error("segment through the view reported invisible")
	}
	if fb.GetPixel(0, 0) == ColorWhite {
		t.Error("clipped segment leaked to the corner")
	}

	fb.Clear(ColorBlack)
	if w.DrawLine3D(math3d.V3(-1, 0, 10), math3d.V3(1, 0, 10), ColorWhite) {
		t.Error("segment behind the camera reported visible")
	}
	if countColor(fb, ColorWhite) != 0 {
		t.Error("segment behind the camera was drawn")
	}
}

func TestDrawEdges(t *testing.T) {
	w, fb := testWireframe()
	verts := []math3d.Vec3{{X: -1}, {X: 1}, {Y: 1}}
	edges := [][2]int{{0, 1}, {1, 2}, {0, 2}}

	if got := w.DrawEdges(verts, edges, math3d.Identity(), ColorYellow); got != 3 {
		t.Errorf("drew %d edges, want 3", got)
	}
	if countColor(fb, ColorYellow) == 0 {
		t.Error("nothing drawn")
	}

	fb.Clear(ColorBlack)
	away := math3d.Translate(math3d.V3(0, 0, 100))
	if got := w.DrawEdges(verts, edges, away, ColorYellow); got != 0 {
		t.Errorf("drew %d edges behind the camera", got)
	}
}

func TestDrawGridAndAxes(t *testing.T) {
	fb := NewFramebuffer(80, 60)
	cam := NewCamera()
	cam.SetAspectRatio(80.0 / 60.0)
	cam.SetPosition(math3d.V3(3, 4, 5))
	cam.LookAt(math3d.Zero3())
	w := NewWireframe(cam, fb)

	w.DrawGrid(4, 1, ColorGray)
	w.DrawGrid(4, 0, ColorGray)
	w.DrawAxes(1)
	w.DrawPoint(math3d.Zero3(), 0.2, ColorCyan)

	for name, c := range map[string]color.RGBA{"grid": ColorGray, "x axis": ColorRed, "y axis": ColorGreen, "z axis": ColorBlue} {
		if countColor(fb, c) == 0 {
			t.Errorf("%s not drawn", name)
		}
	}
}
