package config

import (
	"bytes"
	"image/color"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/spf13/pflag"
)

// isolate points every config search path at an empty directory.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("HOME", dir)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "xdg"))
	t.Chdir(dir)
	return dir
}

func writeFile(t *testing.T, path, body string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
}

var ignoreSource = cmpopts.IgnoreFields(Config{}, "Source")

func TestLoadDefaults(t *testing.T) {
	isolate(t)

	cfg, err := Load("", nil)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if diff := cmp.Diff(Default(), *cfg, ignoreSource); diff != "" {
		t.Errorf("defaults mismatch (-want +got):\n%s", diff)
	}
	if cfg.Source != "" {
		t.Errorf("Source = %q with no config file", cfg.Source)
	}
}

func TestLoadSearchPath(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "xdg", "orbitview", "orbitview.yaml")
	writeFile(t, path, "viewer:\n  fps: 30\n  grid: false\ncontrols:\n  radius: 12\n")

	cfg, err := Load("", nil)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	want := Default()
	want.Viewer.FPS = 30
	want.Viewer.Grid = false
	want.Controls.Radius = 12
	if diff := cmp.Diff(want, *cfg, ignoreSource); diff != "" {
		t.Errorf("config mismatch (-want +got):\n%s", diff)
	}
	if cfg.Source != path {
		t.Errorf("Source = %q, want %q", cfg.Source, path)
	}
}

func TestLoadPrecedence(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "custom.yaml")
	writeFile(t, path, "viewer:\n  fps: 30\n  background: \"1,2,3\"\nlog:\n  level: debug\n")

	t.Setenv("ORBITVIEW_VIEWER_FPS", "45")
	t.Setenv("ORBITVIEW_WINDOW_WIDTH", "640")

	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	RegisterFlags(fs)
	if err := fs.Parse([]string{"--fps=90", "--pitch=45"}); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path, fs)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	want := Default()
	want.Viewer.FPS = 90             // flag beats env and file
	want.Viewer.Background = "1,2,3" // file beats default
	want.Window.Width = 640          // env beats default
	want.Controls.PitchDegrees = 45
	want.Log.Level = "debug"
	if diff := cmp.Diff(want, *cfg, ignoreSource); diff != "" {
		t.Errorf("config mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadMissingExplicitFile(t *testing.T) {
	dir := isolate(t)
	if _, err := Load(filepath.Join(dir, "nope.yaml"), nil); err == nil {
		t.Error("expected error for missing --config file")
	}
}

func TestLoadRejectsInvalid(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "bad.yaml")
	writeFile(t, path, "viewer:\n  background: \"red\"\n")

	_, err := Load(path, nil)
	if err == nil || !strings.Contains(err.Error(), "viewer.background") {
		t.Errorf("err = %v, want background error", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{"defaults", func(c *Config) {}, ""},
		{"zero fps", func(c *Config) { c.Viewer.FPS = 0 }, "viewer.fps"},
		{"negative pointer scale", func(c *Config) { c.Viewer.PointerScale = -1 }, "pointer_scale"},
		{"bad background", func(c *Config) { c.Viewer.Background = "1,2" }, "viewer.background"},
		{"background out of range", func(c *Config) { c.Viewer.Background = "0,0,300" }, "out of range"},
		{"zero window", func(c *Config) { c.Window.Height = 0 }, "window size"},
		{"unknown level", func(c *Config) { c.Log.Level = "loud" }, "log.level"},
		{"upper-case level", func(c *Config) { c.Log.Level = "WARN" }, ""},
		{"negative speeds are allowed", func(c *Config) { c.Controls.OrbitSpeed = -1 }, ""},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			c := Default()
			tc.mutate(&c)
			err := c.Validate()
			switch {
			case tc.wantErr == "" && err != nil:
				t.Errorf("unexpected error: %v", err)
			case tc.wantErr != "" && (err == nil || !strings.Contains(err.Error(), tc.wantErr)):
				t.Errorf("err = %v, want it to mention %q", err, tc.wantErr)
			}
		})
	}
}

func TestBackgroundColor(t *testing.T) {
	c := ViewerConfig{Background: " 10, 20 ,30 "}
	got, err := c.BackgroundColor()
	if err != nil {
		t.Fatal(err)
	}
	if got != (color.RGBA{10, 20, 30, 255}) {
		t.Errorf("BackgroundColor() = %v", got)
	}
}

func TestParams(t *testing.T) {
	p := Default().Controls.Params()
	if p.Radius != 4 || p.OrbitSpeed != 0.01 || p.PanSpeed != 0.001 || p.ZoomSpeed != 0.25 {
		t.Errorf("Params() = %+v", p)
	}
	if math.Abs(p.Pitch-math.Pi/3) > 1e-12 || math.Abs(p.Yaw-math.Pi/6) > 1e-12 {
		t.Errorf("angles = %v, %v; want π/3, π/6", p.Pitch, p.Yaw)
	}
}

func TestWriteYAMLRoundTrip(t *testing.T) {
	dir := isolate(t)

	want := Default()
	want.Viewer.FPS = 24
	want.Log.File = "/tmp/orbitview.log"

	var buf bytes.Buffer
	if err := want.WriteYAML(&buf); err != nil {
		t.Fatalf("WriteYAML: %v", err)
	}
	if strings.Contains(buf.String(), "source") {
		t.Errorf("Source leaked into YAML:\n%s", buf.String())
	}

	path := filepath.Join(dir, "written.yaml")
	writeFile(t, path, buf.String())
	got, err := Load(path, nil)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if diff := cmp.Diff(want, *got, ignoreSource); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}
