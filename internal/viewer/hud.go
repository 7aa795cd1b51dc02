package viewer

import (
	"fmt"
	"time"

	uv "github.com/charmbracelet/ultraviolet"
	"github.com/taigrr/orbitview/pkg/render"
)

var (
	hudStyle    = uv.Style{Fg: render.ColorWhite, Bg: render.ColorBlack}
	hudFPSStyle = uv.Style{Fg: render.ColorGreen, Bg: render.ColorBlack}
	hudDimStyle = uv.Style{Fg: render.ColorGray, Bg: render.ColorBlack}
)

// HUD shows frame rate, model and camera details over the scene.
type HUD struct {
	fps       float64
	fpsFrames int
	fpsTime   time.Time
	now       func() time.Time
}

// NewHUD creates a HUD with its FPS counter started.
func NewHUD() *HUD {
	h := &HUD{now: time.Now}
	h.fpsTime = h.now()
	return h
}

// Tick counts a frame. The FPS figure refreshes once a second.
func (h *HUD) Tick() {
	h.fpsFrames++
	now := h.now()
	elapsed := now.Sub(h.fpsTime)
	if elapsed >= time.Second {
		h.fps = float64(h.fpsFrames) / elapsed.Seconds()
		h.fpsFrames = 0
		h.fpsTime = now
	}
}

// FPS returns the last measured frame rate.
func (h *HUD) FPS() float64 { return h.fps }

// Lines formats the HUD as a top and a bottom line.
func (h *HUD) Lines(st Stats) (top, bottom string) {
	top = fmt.Sprintf(" %.0f FPS  %s  %d/%d edges ", h.fps, st.Model, st.EdgesDrawn, st.Edges)
	bottom = fmt.Sprintf(" cam (%.2f, %.2f, %.2f)  target (%.2f, %.2f, %.2f)  r %.2f ",
		st.Camera.X, st.Camera.Y, st.Camera.Z,
		st.Target.X, st.Target.Y, st.Target.Z,
		st.Radius)
	return top, bottom
}

// hudView draws a HUD onto a terminal screen.
type hudView struct {
	hud   *HUD
	stats Stats
}

// Draw implements uv.Drawable.
func (v hudView) Draw(scr uv.Screen, area uv.Rectangle) {
	if area.Dy() <= 0 {
		return
	}
	top, bottom := v.hud.Lines(v.stats)

	fpsLen := len(fmt.Sprintf(" %.0f FPS", v.hud.fps))
	x := drawText(scr, area.Min.X, area.Min.Y, area.Max.X, top[:fpsLen], hudFPSStyle)
	drawText(scr, x, area.Min.Y, area.Max.X, top[fpsLen:], hudStyle)

	if area.Dy() > 1 {
		drawText(scr, area.Min.X, area.Max.Y-1, area.Max.X, bottom, hudDimStyle)
	}
}

// drawText writes s one cell per rune from (x, y), stopping at maxX. It
// returns the column after the last cell written.
func drawText(scr uv.Screen, x, y, maxX int, s string, style uv.Style) int {
	for _, r := range s {
		if x >= maxX {
			break
		}
		scr.SetCell(x, y, &uv.Cell{Content: string(r), Width: 1, Style: style})
		x++
	}
	return x
}
