// Package window runs a viewer scene in a desktop window.
package window

import (
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/rs/zerolog"
	"github.com/taigrr/orbitview/internal/viewer"
)

// Options configures Run.
type Options struct {
	Title         string
	Width, Height int
	FPS           int
	SnapshotDir   string
}

// Run opens a window showing scene and blocks until it closes.
func Run(scene *viewer.Scene, opts Options, log zerolog.Logger) error {
	g := &game{
		scene: scene,
		hud:   viewer.NewHUD(),
		opts:  opts,
		log:   log,
		dt:    1 / float64(opts.FPS),
	}

	ebiten.SetWindowTitle(opts.Title)
	ebiten.SetWindowSize(opts.Width, opts.Height)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetTPS(opts.FPS)

	if err := ebiten.RunGame(g); err != nil && !errors.Is(err, ebiten.Termination) {
		return fmt.Errorf("run window: %w", err)
	}
	return nil
}

type game struct {
	scene *viewer.Scene
	hud   *viewer.HUD
	opts  Options
	log   zerolog.Logger
	dt    float64

	pointer viewer.PointerState
	img     *ebiten.Image
}

func (g *game) Update() error {
	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyEscape), inpututil.IsKeyJustPressed(ebiten.KeyQ):
		return ebiten.Termination
	case inpututil.IsKeyJustPressed(ebiten.KeySpace):
		g.scene.Spin()
	case inpututil.IsKeyJustPressed(ebiten.KeyR):
		g.scene.Reset()
	case inpututil.IsKeyJustPressed(ebiten.KeyG):
		g.scene.ToggleGrid()
	case inpututil.IsKeyJustPressed(ebiten.KeySlash), inpututil.IsKeyJustPressed(ebiten.KeyH):
		g.scene.ToggleHUD()
	case inpututil.IsKeyJustPressed(ebiten.KeyS):
		g.snapshot()
	}

	curr := poll()
	for _, ev := range viewer.PointerEvents(g.pointer, curr) {
		g.scene.Pointer(ev)
	}
	g.pointer = curr

	g.scene.Frame(g.dt)
	g.hud.Tick()
	return nil
}

func poll() viewer.PointerState {
	x, y := ebiten.CursorPosition()
	_, wy := ebiten.Wheel()
	return viewer.PointerState{
		X:      float64(x),
		Y:      float64(y),
		Left:   ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft),
		Right:  ebiten.IsMouseButtonPressed(ebiten.MouseButtonRight),
		Middle: ebiten.IsMouseButtonPressed(ebiten.MouseButtonMiddle),
		WheelY: wy,
	}
}

func (g *game) snapshot() {
	name := fmt.Sprintf("orbitview-%s.png", time.Now().Format("20060102-150405"))
	path := filepath.Join(g.opts.SnapshotDir, name)
	if err := g.scene.Framebuffer().SavePNG(path); err != nil {
		g.log.Error().Err(err).Str("path", path).Msg("snapshot failed")
		return
	}
	g.log.Info().Str("path", path).Msg("snapshot saved")
}

func (g *game) Draw(screen *ebiten.Image) {
	fb := g.scene.Framebuffer()
	if g.img == nil || g.img.Bounds().Dx() != fb.Width || g.img.Bounds().Dy() != fb.Height {
		if g.img != nil {
			g.img.Deallocate()
		}
		g.img = ebiten.NewImage(fb.Width, fb.Height)
	}
	g.img.WritePixels(fb.ToImage().Pix)
	screen.DrawImage(g.img, nil)

	if g.scene.Options().HUD {
		top, bottom := g.hud.Lines(g.scene.Stats())
		ebitenutil.DebugPrint(screen, top)
		ebitenutil.DebugPrintAt(screen, bottom, 0, fb.Height-16)
	}
}

func (g *game) Layout(outsideWidth, outsideHeight int) (int, int) {
	w, h := max(outsideWidth, 1), max(outsideHeight, 1)
	g.scene.Resize(w, h)
	return w, h
}
