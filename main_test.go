package main

import (
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/df07/go-lux-pathtracer/pkg/config"
	"github.com/df07/go-lux-pathtracer/pkg/core"
	"github.com/df07/go-lux-pathtracer/pkg/scene"
)

func TestCreateScene(t *testing.T) {
	tests := []struct {
		name        string
		sceneType   string
		expectError bool
	}{
		// Built-in scenes
		{"default scene", "default", false},
		{"spheregrid scene", "spheregrid", false},

		// JSON scenes (by path)
		{"direct JSON path", "scenes/glass-shell.json", false},

		// Invalid scenes
		{"unknown scene", "nonexistent", true},
		{"invalid JSON path", "scenes/nonexistent.json", true},
		{"empty scene name", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			scene, err := createScene(tt.sceneType)

			if tt.expectError {
				if err == nil {
					t.Errorf("Expected error for scene type '%s', but got none", tt.sceneType)
				}
				if scene != nil {
					t.Errorf("Expected nil scene for invalid scene type '%s', got %T", tt.sceneType, scene)
				}
			} else {
				if err != nil {
					t.Errorf("Unexpected error for scene type '%s': %v", tt.sceneType, err)
				}
				if scene == nil {
					t.Fatalf("Expected scene for valid scene type '%s', got nil", tt.sceneType)
				}
				if scene.SamplingConfig.Width <= 0 || scene.SamplingConfig.Height <= 0 {
					t.Errorf("Scene sampling dimensions should be positive, got %+v", scene.SamplingConfig)
				}
				if len(scene.Objects()) == 0 {
					t.Errorf("Scene '%s' should have objects", tt.sceneType)
				}
			}
		})
	}
}

func TestSceneName(t *testing.T) {
	tests := []struct {
		sceneType string
		expected  string
	}{
		{"default", "default"},
		{"spheregrid", "spheregrid"},
		{"scenes/glass-shell.json", "glass-shell"},
	}

	for _, tt := range tests {
		if got := sceneName(tt.sceneType); got != tt.expected {
			t.Errorf("Expected %s for %s, got %s", tt.expected, tt.sceneType, got)
		}
	}
}

func TestParseFlags_OverrideConfig(t *testing.T) {
	cfg := config.Default()
	cfg.Samples = 64

	opts, _, err := parseFlags([]string{"-scene", "spheregrid", "-width", "320"}, cfg)
	if err != nil {
		t.Fatalf("parseFlags failed: %v", err)
	}
	if opts.Scene != "spheregrid" || opts.Width != 320 {
		t.Errorf("Expected flags applied, got %+v", opts.Config)
	}
	if opts.Samples != 64 {
		t.Errorf("Expected samples from config, got %d", opts.Samples)
	}
}

func TestRenderConfig_SceneDefaults(t *testing.T) {
	s, err := createScene("default")
	if err != nil {
		t.Fatalf("createScene failed: %v", err)
	}

	cfg := config.Default()
	rc := renderConfig(cfg, s)
	if rc.Width != 200 || rc.Height != 100 || rc.SamplesPerPixel != 100 || rc.MaxDepth != 50 {
		t.Errorf("Expected the default scene's 200x100 / 100 spp / depth 50, got %+v", rc)
	}

	cfg.Samples = 4
	cfg.Height = 50
	rc = renderConfig(cfg, s)
	if rc.SamplesPerPixel != 4 || rc.Height != 50 || rc.Width != 200 {
		t.Errorf("Expected explicit values to win, got %+v", rc)
	}
}

func TestRun_WritesRender(t *testing.T) {
	cfg := config.Default()
	cfg.Width = 16
	cfg.Height = 8
	cfg.Samples = 2
	cfg.MaxDepth = 5
	cfg.ThumbnailWidth = 4
	cfg.OutputDir = t.TempDir()

	if err := run(cfg); err != nil {
		t.Fatalf("run failed: %v", err)
	}

	renders, err := filepath.Glob(filepath.Join(cfg.OutputDir, "default", "render_*.png"))
	if err != nil || len(renders) != 2 {
		t.Fatalf("Expected a render and a thumbnail, got %v (%v)", renders, err)
	}

	for _, path := range renders {
		file, err := os.Open(path)
		if err != nil {
			t.Fatalf("Failed to open %s: %v", path, err)
		}
		img, err := png.Decode(file)
		file.Close()
		if err != nil {
			t.Fatalf("Failed to decode %s: %v", path, err)
		}
		width := img.Bounds().Dx()
		if width != 16 && width != 4 {
			t.Errorf("Unexpected width %d for %s", width, path)
		}
	}
}

func TestParseFlags_Help(t *testing.T) {
	for _, arg := range []string{"-h", "-help", "--help"} {
		t.Run(arg, func(t *testing.T) {
			opts, fs, err := parseFlags([]string{arg}, config.Default())
			if err != nil {
				t.Fatalf("Expected help to parse cleanly, got %v", err)
			}
			if !opts.help {
				t.Errorf("Expected %s to request help", arg)
			}
			if fs == nil {
				t.Error("Expected the flag set for printing help")
			}
		})
	}

	if _, _, err := parseFlags([]string{"-bogus"}, config.Default()); err == nil {
		t.Error("Expected error for unknown flag")
	}
}

func TestFitCamera_MissingAspectRatio(t *testing.T) {
	path := filepath.Join(t.TempDir(), "noaspect.json")
	sceneJSON := `{
  "camera": {"center": {"x": 0, "y": 0, "z": 0}, "lookAt": {"x": 0, "y": 0, "z": -1},
             "up": {"x": 0, "y": 1, "z": 0}, "vfov": 90},
  "objects": [{"type": "sphere", "center": {"x": 0, "y": 0, "z": -1}, "radius": 0.5,
               "material": {"type": "lambert", "albedo": {"x": 0.5, "y": 0.5, "z": 0.5}}}]
}`
	if err := os.WriteFile(path, []byte(sceneJSON), 0644); err != nil {
		t.Fatalf("Failed to write scene: %v", err)
	}

	s, err := createScene(path)
	if err != nil {
		t.Fatalf("createScene failed: %v", err)
	}
	rc := renderConfig(config.Default(), s)
	fitCamera(s, rc, false)

	expected := float32(rc.Width) / float32(rc.Height)
	if s.CameraConfig.AspectRatio != expected {
		t.Errorf("Expected aspect ratio %f from the frame, got %f", expected, s.CameraConfig.AspectRatio)
	}
	if s.Camera.Horizontal.Equals(core.Vec3{}) {
		t.Fatal("Expected a non-degenerate horizontal span")
	}
	if s.Camera.GetRay(0, 0.5).Direction.Equals(s.Camera.GetRay(1, 0.5).Direction) {
		t.Error("Expected left and right edges to get different rays")
	}
}

func TestFitCamera_KeepsSceneAspect(t *testing.T) {
	s := scene.NewDefaultScene()
	rc := renderConfig(config.Default(), s)
	rc.Width = 100
	rc.Height = 100

	fitCamera(s, rc, false)
	if s.CameraConfig.AspectRatio != 2 {
		t.Errorf("Expected the scene's own aspect ratio 2 to be kept, got %f", s.CameraConfig.AspectRatio)
	}

	fitCamera(s, rc, true)
	if s.CameraConfig.AspectRatio != 1 {
		t.Errorf("Expected an overridden frame size to set aspect ratio 1, got %f", s.CameraConfig.AspectRatio)
	}
}
