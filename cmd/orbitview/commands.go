package main

import (
	"fmt"
	"io"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/taigrr/orbitview/internal/config"
	"github.com/taigrr/orbitview/internal/logging"
	"github.com/taigrr/orbitview/internal/viewer"
	"github.com/taigrr/orbitview/internal/viewer/window"
	"github.com/taigrr/orbitview/pkg/models"
)

const controlsHelp = `Controls:
  Left drag   orbit around the target
  Right drag  pan the target
  Scroll      zoom
  Space       spin the model
  R           reset view and spin
  G           toggle grid
  S           save a PNG snapshot
  ?           toggle HUD
  Esc, Q      quit`

type rootOptions struct {
	configFile  string
	snapshotDir string
}

func newRootCmd() *cobra.Command {
	var o rootOptions

	root := &cobra.Command{
		Use:   "orbitview [model.glb|model.gltf]",
		Short: "Orbit, pan and zoom around a 3D model in your terminal",
		Long: `orbitview shows a wireframe of a glTF model, or a cube when none is
given, and moves the camera around it with the mouse.

` + controlsHelp,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTerminal(cmd, args, &o)
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&o.configFile, "config", "", "config file (default is orbitview.yaml in ., $XDG_CONFIG_HOME/orbitview or ~/.config/orbitview)")
	pf.StringVar(&o.snapshotDir, "snapshot-dir", ".", "directory for PNG snapshots")
	config.RegisterFlags(pf)

	root.AddCommand(
		newWindowCmd(&o),
		newConfigCmd(&o),
	)
	return root
}

func newWindowCmd(o *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "window [model.glb|model.gltf]",
		Short: "View the model in a desktop window",
		Long:  "Open the viewer in a desktop window instead of the terminal.\n\n" + controlsHelp,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWindow(cmd, args, o)
		},
	}
}

func newConfigCmd(o *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration as YAML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(o.configFile, cmd.Flags())
			if err != nil {
				return err
			}
			return cfg.WriteYAML(cmd.OutOrStdout())
		},
	}
}

// session is what both frontends need before they start.
type session struct {
	cfg    *config.Config
	log    zerolog.Logger
	closer io.Closer
	mesh   *models.Mesh
}

func setup(cmd *cobra.Command, args []string, o *rootOptions) (*session, error) {
	cfg, err := config.Load(o.configFile, cmd.Flags())
	if err != nil {
		return nil, err
	}

	log, closer, err := logging.New(cfg.Log.Level, cfg.Log.File)
	if err != nil {
		return nil, err
	}

	mesh, err := loadModel(args)
	if err != nil {
		closer.Close()
		return nil, err
	}

	log.Info().Str("config", cfg.Source).Str("model", mesh.Name).Msg("starting")
	return &session{cfg: cfg, log: log, closer: closer, mesh: mesh}, nil
}

// loadModel loads the model named in args, or a cube without one.
func loadModel(args []string) (*models.Mesh, error) {
	if len(args) == 0 {
		return models.NewCube(2), nil
	}
	mesh, err := models.Load(args[0])
	if err != nil {
		return nil, fmt.Errorf("load model: %w", err)
	}
	return mesh, nil
}

func (s *session) sceneOptions() viewer.Options {
	bg, _ := s.cfg.Viewer.BackgroundColor() // checked by config.Load
	return viewer.Options{
		Background: bg,
		FPS:        s.cfg.Viewer.FPS,
		Grid:       s.cfg.Viewer.Grid,
		HUD:        s.cfg.Viewer.HUD,
	}
}

func runTerminal(cmd *cobra.Command, args []string, o *rootOptions) error {
	s, err := setup(cmd, args, o)
	if err != nil {
		return err
	}
	defer s.closer.Close()

	// RunTerminal sizes the framebuffer to the terminal.
	scene := viewer.NewScene(s.mesh, 1, 1, s.cfg.Controls.Params(), s.sceneOptions(), s.log)
	return viewer.RunTerminal(cmd.Context(), scene, viewer.TerminalOptions{
		FPS:          s.cfg.Viewer.FPS,
		PointerScale: s.cfg.Viewer.PointerScale,
		SnapshotDir:  o.snapshotDir,
	}, s.log)
}

func runWindow(cmd *cobra.Command, args []string, o *rootOptions) error {
	s, err := setup(cmd, args, o)
	if err != nil {
		return err
	}
	defer s.closer.Close()

	w, h := s.cfg.Window.Width, s.cfg.Window.Height
	scene := viewer.NewScene(s.mesh, w, h, s.cfg.Controls.Params(), s.sceneOptions(), s.log)
	return window.Run(scene, window.Options{
		Title:       "orbitview - " + s.mesh.Name,
		Width:       w,
		Height:      h,
		FPS:         s.cfg.Viewer.FPS,
		SnapshotDir: o.snapshotDir,
	}, s.log)
}
