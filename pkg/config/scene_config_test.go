package config

import (
	"image/color"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefaultSceneConfigIsValid(t *testing.T) {
	cfg := DefaultSceneConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config should be valid, got %v", err)
	}
	if cfg.Particles.Car.Count != 10 || cfg.Particles.Vehicle.Count != 20 {
		t.Errorf("expected particle counts 10/20, got %d/%d", cfg.Particles.Car.Count, cfg.Particles.Vehicle.Count)
	}
}

func TestShippedSceneYAMLMatchesDefaults(t *testing.T) {
	cfg, err := LoadSceneConfig(filepath.Join("..", "..", "data", "scene.yaml"))
	if err != nil {
		t.Fatalf("failed to load data/scene.yaml: %v", err)
	}
	def := DefaultSceneConfig()
	if cfg.Viewport != def.Viewport {
		t.Errorf("viewport mismatch: %+v vs %+v", cfg.Viewport, def.Viewport)
	}
	if cfg.Layout != def.Layout {
		t.Errorf("layout mismatch: %+v vs %+v", cfg.Layout, def.Layout)
	}
	if cfg.Roles != def.Roles {
		t.Errorf("roles mismatch: %+v vs %+v", cfg.Roles, def.Roles)
	}
	if len(cfg.Elements) != len(def.Elements) {
		t.Errorf("expected %d elements, got %d", len(def.Elements), len(cfg.Elements))
	}
}

func TestLoadSceneConfig(t *testing.T) {
	tests := []struct {
		name        string
		yamlContent string
		wantErr     bool
		errContains string
		validate    func(*testing.T, *SceneConfig)
	}{
		{
			name: "partial override keeps defaults",
			yamlContent: `
viewport:
  width: 1000
  height: 800
`,
			validate: func(t *testing.T, cfg *SceneConfig) {
				if cfg.Viewport.Width != 1000 || cfg.Viewport.Height != 800 {
					t.Errorf("expected viewport 1000x800, got %dx%d", cfg.Viewport.Width, cfg.Viewport.Height)
				}
				if cfg.Layout.CarStopInset != 550 {
					t.Errorf("expected default carStopInset 550, got %f", cfg.Layout.CarStopInset)
				}
				if cfg.Roles.Vehicle != "#plane" {
					t.Errorf("expected default vehicle role, got %q", cfg.Roles.Vehicle)
				}
			},
		},
		{
			name: "elements replaced as a whole",
			yamlContent: `
elements:
  - { id: sky, shape: rect }
  - { id: scene, parent: sky }
`,
			validate: func(t *testing.T, cfg *SceneConfig) {
				if len(cfg.Elements) != 2 {
					t.Fatalf("expected 2 elements, got %d", len(cfg.Elements))
				}
				if cfg.Elements[1].Parent != "sky" {
					t.Errorf("expected parent sky, got %q", cfg.Elements[1].Parent)
				}
			},
		},
		{
			name:        "zero viewport",
			yamlContent: "viewport: { width: 0, height: 600 }",
			wantErr:     true,
			errContains: "viewport",
		},
		{
			name:        "inverted cloud duration",
			yamlContent: "clouds: { duration: { min: 20, max: 10 } }",
			wantErr:     true,
			errContains: "clouds.duration",
		},
		{
			name:        "particle opacity out of range",
			yamlContent: "particles: { car: { opacity: { min: 0.5, max: 3 } } }",
			wantErr:     true,
			errContains: "opacity",
		},
		{
			name:        "bad role selector",
			yamlContent: "roles: { car: car }",
			wantErr:     true,
			errContains: "selector",
		},
		{
			name: "child declared before parent",
			yamlContent: `
elements:
  - { id: car, parent: scene }
  - { id: scene }
`,
			wantErr:     true,
			errContains: "declared before",
		},
		{
			name: "duplicate id",
			yamlContent: `
elements:
  - { id: car }
  - { id: car }
`,
			wantErr:     true,
			errContains: "duplicate",
		},
		{
			name:        "unknown shape",
			yamlContent: "elements: [ { id: car, shape: star } ]",
			wantErr:     true,
			errContains: "shape",
		},
		{
			name:        "unknown color",
			yamlContent: "elements: [ { id: car, color: notacolor } ]",
			wantErr:     true,
			errContains: "color",
		},
		{
			name:        "malformed yaml",
			yamlContent: "viewport: [",
			wantErr:     true,
			errContains: "failed to parse",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "scene.yaml")
			if err := os.WriteFile(path, []byte(tt.yamlContent), 0644); err != nil {
				t.Fatalf("failed to write temp config: %v", err)
			}

			cfg, err := LoadSceneConfig(path)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error containing %q, got nil", tt.errContains)
				}
				if !strings.Contains(err.Error(), tt.errContains) {
					t.Errorf("expected error containing %q, got %v", tt.errContains, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if tt.validate != nil {
				tt.validate(t, cfg)
			}
		})
	}
}

func TestLoadSceneConfigMissingFile(t *testing.T) {
	_, err := LoadSceneConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	if err == nil || !strings.Contains(err.Error(), "failed to read") {
		t.Errorf("expected read error, got %v", err)
	}
}

func TestParseColor(t *testing.T) {
	tests := []struct {
		in      string
		want    color.RGBA
		wantErr bool
	}{
		{in: "#ff8000", want: color.RGBA{R: 0xff, G: 0x80, A: 0xff}},
		{in: "#10203040", want: color.RGBA{R: 0x10, G: 0x20, B: 0x30, A: 0x40}},
		{in: "white", want: color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}},
		{in: "SkyBlue", want: color.RGBA{R: 0x87, G: 0xce, B: 0xeb, A: 0xff}},
		{in: "#fff", wantErr: true},
		{in: "#zzzzzz", wantErr: true},
		{in: "blurple", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseColor(tt.in)
			if tt.wantErr {
				if err == nil {
					t.Errorf("expected error for %q", tt.in)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("ParseColor(%q) = %+v, want %+v", tt.in, got, tt.want)
			}
		})
	}
}
