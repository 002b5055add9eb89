package app

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/decker502/flyscene/pkg/embedded"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "scene.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadConfigFromEmbedded(t *testing.T) {
	embedded.Init(fstest.MapFS{
		DefaultConfigPath: {Data: []byte("viewport: { width: 900, height: 700, title: embedded }\n")},
	})
	defer embedded.Init(nil)

	cfg, err := LoadConfig("", 0, 0)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Viewport.Width != 900 || cfg.Viewport.Title != "embedded" {
		t.Errorf("unexpected viewport %+v", cfg.Viewport)
	}

	cfg, err = LoadConfig("", 1000, 800)
	if err != nil {
		t.Fatalf("LoadConfig with override: %v", err)
	}
	if cfg.Viewport.Width != 1000 || cfg.Viewport.Height != 800 {
		t.Errorf("override not applied: %+v", cfg.Viewport)
	}
}

func TestLoadConfigErrors(t *testing.T) {
	embedded.Init(nil)
	if _, err := LoadConfig("", 0, 0); err == nil {
		t.Error("expected error when embedded data is not initialized")
	}

	bad := writeConfig(t, "viewport: { width: -1, height: 10 }\n")
	if _, err := LoadConfig(bad, 0, 0); err == nil || !strings.Contains(err.Error(), "viewport") {
		t.Errorf("expected viewport validation error, got %v", err)
	}
}

func TestNewAppAndReload(t *testing.T) {
	path := writeConfig(t, "viewport: { width: 1000, height: 800 }\n")

	a, err := NewApp(Config{ConfigPath: path, Seed: 7, Verbose: true})
	if err != nil {
		t.Fatalf("NewApp: %v", err)
	}
	defer a.Close()

	if w, h := a.Layout(1920, 1080); w != 1000 || h != 800 {
		t.Errorf("Layout = %dx%d, want 1000x800", w, h)
	}
	if got := a.Stage().Sequencer.Layout().CarStop; got != 450 {
		t.Errorf("car stop = %g, want 450", got)
	}

	first := a.Stage()
	first.Advance(3)

	// 新配置修改了布局，但视口沿用窗口创建时的尺寸
	if err := os.WriteFile(path, []byte("viewport: { width: 640, height: 480 }\nlayout: { carStopInset: 500 }\n"), 0644); err != nil {
		t.Fatalf("rewrite: %v", err)
	}
	if err := a.Reload(); err != nil {
		t.Fatalf("Reload: %v", err)
	}
	if a.Stage() == first {
		t.Fatal("Reload should build a new stage")
	}
	if w, h := a.Layout(0, 0); w != 1000 || h != 800 {
		t.Errorf("viewport should survive reload, got %dx%d", w, h)
	}
	if got := a.Stage().Sequencer.Layout().CarStop; got != 500 {
		t.Errorf("reloaded car stop = %g, want 500", got)
	}
	if a.Stage().Engine.Time() != 0 {
		t.Error("reloaded stage should start from the beginning")
	}

	// 无效配置：保留当前场景
	current := a.Stage()
	if err := os.WriteFile(path, []byte("viewport: ["), 0644); err != nil {
		t.Fatalf("rewrite: %v", err)
	}
	if err := a.Reload(); err == nil {
		t.Error("expected reload error for malformed config")
	}
	if a.Stage() != current {
		t.Error("failed reload should keep the current stage")
	}
}
