package viewer

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	uv "github.com/charmbracelet/ultraviolet"
	"github.com/rs/zerolog"
	"github.com/taigrr/orbitview/internal/logging"
)

const (
	mouseOn  = "\x1b[?1003h\x1b[?1006h" // any-event tracking, SGR coordinates
	mouseOff = "\x1b[?1003l\x1b[?1006l"
)

// TerminalOptions configures RunTerminal.
type TerminalOptions struct {
	FPS          int
	PointerScale float64

	// SnapshotDir receives PNGs saved with the s key.
	SnapshotDir string
}

// RunTerminal shows scene full screen in the terminal until ctx is done or
// the user quits. Input and frames are handled on the calling goroutine.
func RunTerminal(ctx context.Context, scene *Scene, opts TerminalOptions, log zerolog.Logger) error {
	term := uv.DefaultTerminal()
	term.SetLogger(logging.Printf{Logger: log})

	width, height, err := term.GetSize()
	if err != nil {
		return fmt.Errorf("get terminal size: %w", err)
	}
	if err := term.Start(); err != nil {
		return fmt.Errorf("start terminal: %w", err)
	}

	term.EnterAltScreen()
	term.HideCursor()
	term.Resize(width, height)
	fmt.Fprint(os.Stdout, mouseOn)

	defer func() {
		fmt.Fprint(os.Stdout, mouseOff)
		term.ExitAltScreen()
		term.ShowCursor()
		if err := term.Shutdown(context.Background()); err != nil {
			log.Warn().Err(err).Msg("terminal shutdown")
		}
	}()

	scene.Resize(width, height*2)
	t := &terminalLoop{
		scene:  scene,
		hud:    NewHUD(),
		mapper: PointerMapper{Scale: opts.PointerScale},
		opts:   opts,
		log:    log,
	}

	ticker := time.NewTicker(time.Second / time.Duration(opts.FPS))
	defer ticker.Stop()
	last := time.Now()

	for {
		select {
		case <-ctx.Done():
			return nil

		case ev, ok := <-term.Events():
			if !ok {
				return nil
			}
			if size, isResize := ev.(uv.WindowSizeEvent); isResize {
				term.Erase()
				term.Resize(size.Width, size.Height)
			}
			if t.handle(ev) {
				return nil
			}

		case now := <-ticker.C:
			dt := frameSeconds(now.Sub(last).Seconds())
			last = now

			t.scene.Frame(dt)
			t.hud.Tick()
			term.Draw(t)
			if err := term.Display(); err != nil {
				return fmt.Errorf("display: %w", err)
			}
		}
	}
}

// terminalLoop is the terminal frontend's state between frames.
type terminalLoop struct {
	scene  *Scene
	hud    *HUD
	mapper PointerMapper
	opts   TerminalOptions
	log    zerolog.Logger
}

// handle applies one terminal event and reports whether to quit.
func (t *terminalLoop) handle(ev uv.Event) bool {
	switch ev := ev.(type) {
	case uv.WindowSizeEvent:
		t.scene.Resize(ev.Width, ev.Height*2)
		return false

	case uv.KeyPressEvent:
		return t.apply(KeyAction(ev))
	}

	if mev, ok := t.mapper.Translate(ev); ok {
		t.scene.Pointer(mev)
	}
	return false
}

func (t *terminalLoop) apply(a Action) bool {
	switch a {
	case ActionQuit:
		return true
	case ActionSpin:
		t.scene.Spin()
	case ActionReset:
		t.scene.Reset()
	case ActionToggleHUD:
		t.scene.ToggleHUD()
	case ActionToggleGrid:
		t.scene.ToggleGrid()
	case ActionSnapshot:
		t.snapshot()
	}
	return false
}

func (t *terminalLoop) snapshot() {
	name := fmt.Sprintf("orbitview-%s.png", time.Now().Format("20060102-150405"))
	path := filepath.Join(t.opts.SnapshotDir, name)
	if err := t.scene.Framebuffer().SavePNG(path); err != nil {
		t.log.Error().Err(err).Str("path", path).Msg("snapshot failed")
		return
	}
	t.log.Info().Str("path", path).Msg("snapshot saved")
}

// Draw implements uv.Drawable: the framebuffer, then the HUD on top.
func (t *terminalLoop) Draw(scr uv.Screen, area uv.Rectangle) {
	t.scene.Framebuffer().Draw(scr, area)
	if t.scene.Options().HUD {
		hudView{hud: t.hud, stats: t.scene.Stats()}.Draw(scr, area)
	}
}
