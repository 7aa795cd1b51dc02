package controls

import (
	"fmt"

	"github.com/taigrr/orbitview/pkg/math3d"
)

// Button identifies a pointer button.
type Button int

const (
	ButtonNone Button = iota
	ButtonLeft
	ButtonRight
	ButtonMiddle
)

func (b Button) String() string {
	switch b {
	case ButtonNone:
		return "none"
	case ButtonLeft:
		return "left"
	case ButtonRight:
		return "right"
	case ButtonMiddle:
		return "middle"
	default:
		return fmt.Sprintf("button(%d)", int(b))
	}
}

// EventType is the kind of a MouseEvent.
type EventType int

const (
	PointerMoved EventType = iota
	ButtonPressed
	ButtonReleased
	Scrolled
)

func (t EventType) String() string {
	switch t {
	case PointerMoved:
		return "moved"
	case ButtonPressed:
		return "pressed"
	case ButtonReleased:
		return "released"
	case Scrolled:
		return "scrolled"
	default:
		return fmt.Sprintf("event(%d)", int(t))
	}
}

// MouseEvent is a single pointer sample delivered by an input frontend.
//
// Position is in pixels. Button is only meaningful for press and release,
// Scroll only for Scrolled, where Scroll.Y is the signed vertical wheel delta
// (positive zooms in).
type MouseEvent struct {
	Type     EventType
	Position math3d.Vec2
	Button   Button
	Scroll   math3d.Vec2
}
