// orbitview - orbit, pan and zoom around a 3D model
//
// Controls:
//
//	Left drag   - Orbit around the target
//	Right drag  - Pan the target in the view plane
//	Scroll      - Zoom toward or away from the target
//	Space       - Spin the model
//	R           - Reset view and spin
//	G           - Toggle ground grid and axes
//	S           - Save a PNG snapshot
//	?           - Toggle HUD overlay
//	Esc / Q     - Quit
package main

import (
	"context"
	"os"
	"syscall"

	"github.com/charmbracelet/fang"
)

var version = "dev"

func main() {
	err := fang.Execute(
		context.Background(),
		newRootCmd(),
		fang.WithVersion(version),
		fang.WithNotifySignal(os.Interrupt, syscall.SIGTERM),
	)
	if err != nil {
		os.Exit(1)
	}
}
