package viewer

import (
	uv "github.com/charmbracelet/ultraviolet"
	"github.com/taigrr/orbitview/pkg/controls"
	"github.com/taigrr/orbitview/pkg/math3d"
)

// Action is a viewer command bound to a key.
type Action int

const (
	ActionNone Action = iota
	ActionQuit
	ActionSpin
	ActionReset
	ActionToggleHUD
	ActionToggleGrid
	ActionSnapshot
)

// KeyAction maps a terminal key press to an Action.
func KeyAction(ev uv.KeyPressEvent) Action {
	switch {
	case ev.MatchString("esc", "ctrl+c", "q"):
		return ActionQuit
	case ev.MatchString("space"):
		return ActionSpin
	case ev.MatchString("r"):
		return ActionReset
	case ev.MatchString("?", "shift+/"):
		return ActionToggleHUD
	case ev.MatchString("g"):
		return ActionToggleGrid
	case ev.MatchString("s"):
		return ActionSnapshot
	}
	return ActionNone
}

// PointerMapper turns terminal mouse events into controller events.
//
// Terminal coordinates are cells; each cell is one framebuffer pixel wide and
// two tall, and Scale multiplies both so a drag covers a useful angle.
type PointerMapper struct {
	Scale float64

	// pressed is the button the terminal last reported down. Some terminals
	// send releases without a button.
	pressed controls.Button
}

func (m *PointerMapper) position(mouse uv.Mouse) math3d.Vec2 {
	return math3d.V2(float64(mouse.X)*m.Scale, float64(2*mouse.Y)*m.Scale)
}

func mapButton(b uv.MouseButton) controls.Button {
	switch b {
	case uv.MouseLeft:
		return controls.ButtonLeft
	case uv.MouseRight:
		return controls.ButtonRight
	case uv.MouseMiddle:
		return controls.ButtonMiddle
	}
	return controls.ButtonNone
}

// Translate converts ev. ok is false for events the controls do not take.
func (m *PointerMapper) Translate(ev uv.Event) (out controls.MouseEvent, ok bool) {
	switch ev := ev.(type) {
	case uv.MouseClickEvent:
		b := mapButton(ev.Button)
		if b == controls.ButtonNone {
			return out, false
		}
		m.pressed = b
		return controls.MouseEvent{Type: controls.ButtonPressed, Position: m.position(uv.Mouse(ev)), Button: b}, true

	case uv.MouseReleaseEvent:
		b := mapButton(ev.Button)
		if b == controls.ButtonNone {
			b = m.pressed
		}
		if b == controls.ButtonNone {
			return out, false
		}
		if b == m.pressed {
			m.pressed = controls.ButtonNone
		}
		return controls.MouseEvent{Type: controls.ButtonReleased, Position: m.position(uv.Mouse(ev)), Button: b}, true

	case uv.MouseMotionEvent:
		return controls.MouseEvent{Type: controls.PointerMoved, Position: m.position(uv.Mouse(ev))}, true

	case uv.MouseWheelEvent:
		var dy float64
		switch ev.Button {
		case uv.MouseWheelUp:
			dy = 1
		case uv.MouseWheelDown:
			dy = -1
		default:
			return out, false
		}
		return controls.MouseEvent{
			Type:     controls.Scrolled,
			Position: m.position(uv.Mouse(ev)),
			Scroll:   math3d.V2(0, dy),
		}, true
	}
	return out, false
}

// PointerState is one poll of a windowed pointer: position in pixels, held
// buttons and the wheel movement since the previous poll.
type PointerState struct {
	X, Y                float64
	Left, Right, Middle bool
	WheelY              float64
}

// PointerEvents returns the controller events that explain the change from
// prev to curr: a move first, then releases and presses, then the wheel.
func PointerEvents(prev, curr PointerState) []controls.MouseEvent {
	var evs []controls.MouseEvent
	pos := math3d.V2(curr.X, curr.Y)

	if curr.X != prev.X || curr.Y != prev.Y {
		evs = append(evs, controls.MouseEvent{Type: controls.PointerMoved, Position: pos})
	}

	buttons := []struct {
		b       controls.Button
		was, is bool
	}{
		{controls.ButtonLeft, prev.Left, curr.Left},
		{controls.ButtonRight, prev.Right, curr.Right},
		{controls.ButtonMiddle, prev.Middle, curr.Middle},
	}
	for _, btn := range buttons {
		if btn.was && !btn.is {
			evs = append(evs, controls.MouseEvent{Type: controls.ButtonReleased, Position: pos, Button: btn.b})
		}
	}
	for _, btn := range buttons {
		if !btn.was && btn.is {
			evs = append(evs, controls.MouseEvent{Type: controls.ButtonPressed, Position: pos, Button: btn.b})
		}
	}

	if curr.WheelY != 0 {
		evs = append(evs, controls.MouseEvent{Type: controls.Scrolled, Position: pos, Scroll: math3d.V2(0, curr.WheelY)})
	}
	return evs
}
