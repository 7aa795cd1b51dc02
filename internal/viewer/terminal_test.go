package viewer

import (
	"math"
	"path/filepath"
	"strings"
	"testing"

	uv "github.com/charmbracelet/ultraviolet"
	"github.com/rs/zerolog"
)

func testLoop(t *testing.T) *terminalLoop {
	t.Helper()
	return &terminalLoop{
		scene:  testScene(t),
		hud:    NewHUD(),
		mapper: PointerMapper{Scale: 1},
		opts:   TerminalOptions{FPS: 60, PointerScale: 1, SnapshotDir: t.TempDir()},
		log:    zerolog.Nop(),
	}
}

func TestTerminalLoopQuit(t *testing.T) {
	l := testLoop(t)
	if !l.handle(uv.KeyPressEvent{Code: uv.KeyEscape}) {
		t.Error("esc did not quit")
	}
	if l.handle(uv.KeyPressEvent{Code: 'g', Text: "g"}) {
		t.Error("g quit")
	}
	if l.scene.Options().Grid {
		t.Error("g did not toggle the grid")
	}
}

func TestTerminalLoopResize(t *testing.T) {
	l := testLoop(t)
	l.handle(uv.WindowSizeEvent{Width: 40, Height: 12})

	fb := l.scene.Framebuffer()
	if fb.Width != 40 || fb.Height != 24 {
		t.Errorf("framebuffer %dx%d, want 40x24", fb.Width, fb.Height)
	}
}

func TestTerminalLoopDrag(t *testing.T) {
	l := testLoop(t)
	start := l.scene.Controls().Spherical()

	l.handle(uv.MouseMotionEvent{X: 10, Y: 5})
	l.scene.Frame(0)
	l.handle(uv.MouseClickEvent{X: 10, Y: 5, Button: uv.MouseLeft})
	l.handle(uv.MouseMotionEvent{X: 30, Y: 5})
	l.scene.Frame(0)
	l.handle(uv.MouseReleaseEvent{X: 30, Y: 5})
	l.handle(uv.MouseMotionEvent{X: 50, Y: 5})
	l.scene.Frame(0)

	got := l.scene.Controls().Spherical()
	if want := start.Phi - 20*0.01; math.Abs(got.Phi-want) > 1e-12 {
		t.Errorf("phi = %v, want %v", got.Phi, want)
	}
	if got.Theta != start.Theta {
		t.Errorf("theta moved on a horizontal drag: %v -> %v", start.Theta, got.Theta)
	}
}

func TestTerminalLoopWheel(t *testing.T) {
	l := testLoop(t)
	l.handle(uv.MouseWheelEvent{Button: uv.MouseWheelUp})
	l.scene.Frame(0)

	if got := l.scene.Controls().Spherical().Radius; got != 3.75 {
		t.Errorf("radius = %v, want 3.75", got)
	}
}

func TestTerminalLoopSnapshot(t *testing.T) {
	l := testLoop(t)
	l.scene.Frame(0)
	l.handle(uv.KeyPressEvent{Code: 's', Text: "s"})

	files, err := filepath.Glob(filepath.Join(l.opts.SnapshotDir, "orbitview-*.png"))
	if err != nil {
		t.Fatal(err)
	}
	if len(files) != 1 {
		t.Errorf("snapshots = %v, want one", files)
	}
}

func TestTerminalLoopDraw(t *testing.T) {
	l := testLoop(t)
	l.handle(uv.WindowSizeEvent{Width: 60, Height: 20})
	l.scene.Frame(0)

	scr := uv.NewScreenBuffer(60, 20)
	l.Draw(scr, scr.Bounds())
	if top := rowText(scr, 0, 60); !strings.Contains(top, "FPS") {
		t.Errorf("HUD missing from top row %q", top)
	}

	l.handle(uv.KeyPressEvent{Code: '/', Mod: uv.ModShift, Text: "?"})
	scr = uv.NewScreenBuffer(60, 20)
	l.Draw(scr, scr.Bounds())
	if top := rowText(scr, 0, 60); strings.Contains(top, "FPS") {
		t.Errorf("HUD still drawn after toggling off: %q", top)
	}
}
