package framedump

import (
	"context"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"golang.org/x/image/colornames"

	"github.com/decker502/flyscene/internal/tween"
	"github.com/decker502/flyscene/pkg/components"
	"github.com/decker502/flyscene/pkg/config"
	"github.com/decker502/flyscene/pkg/scene"
	"github.com/decker502/flyscene/pkg/sequencer"
	"github.com/decker502/flyscene/pkg/utils"
)

var red = color.RGBA{R: 0xff, A: 0xff}

func near(a, b color.RGBA) bool {
	d := func(x, y uint8) bool {
		if x > y {
			return x-y <= 2
		}
		return y-x <= 2
	}
	return d(a.R, b.R) && d(a.G, b.G) && d(a.B, b.B) && d(a.A, b.A)
}

func TestRenderImage(t *testing.T) {
	bg := scene.Node{
		ID: "sky", Shape: components.ShapeRect, Width: 10, Height: 10,
		Fill: color.RGBA{B: 0xff, A: 0xff}, Opacity: 1,
		IsBackground: true, Stripe: color.RGBA{G: 0xff, A: 0xff}, StripeWidth: 2, HorizonY: 5,
	}

	tests := []struct {
		name  string
		nodes []scene.Node
		x, y  int
		want  color.RGBA
	}{
		{"empty frame is cleared", nil, 3, 3, colornames.Whitesmoke},
		{"rect inside", []scene.Node{{Shape: components.ShapeRect, X: 2, Y: 2, Width: 4, Height: 4, Fill: red, Opacity: 1}}, 3, 3, red},
		{"rect outside", []scene.Node{{Shape: components.ShapeRect, X: 2, Y: 2, Width: 4, Height: 4, Fill: red, Opacity: 1}}, 8, 8, colornames.Whitesmoke},
		{"transparent node skipped", []scene.Node{{Shape: components.ShapeRect, Width: 10, Height: 10, Fill: red, Opacity: 0}}, 3, 3, colornames.Whitesmoke},
		{"ellipse center", []scene.Node{{Shape: components.ShapeEllipse, Width: 10, Height: 10, Fill: red, Opacity: 1}}, 5, 5, red},
		{"ellipse corner", []scene.Node{{Shape: components.ShapeEllipse, Width: 10, Height: 10, Fill: red, Opacity: 1}}, 0, 0, colornames.Whitesmoke},
		{"background above horizon", []scene.Node{bg}, 1, 2, bg.Fill},
		{"background stripe", []scene.Node{bg}, 1, 7, bg.Stripe},
		{"background gap", []scene.Node{bg}, 3, 7, bg.Fill},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			img := RenderImage(tt.nodes, 10, 10, false)
			if got := img.RGBAAt(tt.x, tt.y); !near(got, tt.want) {
				t.Errorf("pixel (%d,%d) = %v, want %v", tt.x, tt.y, got, tt.want)
			}
		})
	}
}

func TestRenderImageOffscreen(t *testing.T) {
	nodes := []scene.Node{
		{Shape: components.ShapeRect, X: -50, Y: -50, Width: 20, Height: 20, Fill: red, Opacity: 1},
		{Shape: components.ShapeEllipse, X: 200, Y: 4, Width: 20, Height: 20, Fill: red, Opacity: 1, Label: "X"},
		{Shape: components.ShapeRect, X: -5, Y: -5, Width: 8, Height: 8, Fill: red, Opacity: 1},
	}
	img := RenderImage(nodes, 10, 10, true)
	if got := img.RGBAAt(1, 1); !near(got, red) {
		t.Errorf("partially visible rect not drawn: %v", got)
	}
	if got := img.RGBAAt(9, 9); !near(got, colornames.Whitesmoke) {
		t.Errorf("offscreen shapes leaked into frame: %v", got)
	}
}

func newStage(t *testing.T) *sequencer.Stage {
	t.Helper()
	stage, err := sequencer.NewStage(config.DefaultSceneConfig(), utils.NewRandomSource(7))
	if err != nil {
		t.Fatalf("NewStage: %v", err)
	}
	return stage
}

func TestExport(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "frames")
	stage := newStage(t)

	paths, err := Export(context.Background(), stage, Options{Dir: dir, FPS: 10, Start: 0.5, End: 1, Workers: 2})
	if err != nil {
		t.Fatalf("Export: %v", err)
	}
	// 0.5, 0.6, ..., 1.0
	if len(paths) != 6 {
		t.Fatalf("got %d frames, want 6", len(paths))
	}
	for i, p := range paths {
		if want := filepath.Join(dir, "frame_0000"+string(rune('0'+i))+".png"); p != want {
			t.Errorf("paths[%d] = %s, want %s", i, p, want)
		}
		f, err := os.Open(p)
		if err != nil {
			t.Fatalf("open %s: %v", p, err)
		}
		cfg, err := png.DecodeConfig(f)
		f.Close()
		if err != nil {
			t.Fatalf("decode %s: %v", p, err)
		}
		if cfg.Width != 1280 || cfg.Height != 720 {
			t.Errorf("%s is %dx%d, want 1280x720", p, cfg.Width, cfg.Height)
		}
	}
}

func TestExportEvery(t *testing.T) {
	stage := newStage(t)
	paths, err := Export(context.Background(), stage, Options{Dir: t.TempDir(), FPS: 10, End: 1, Every: 5, Workers: 1})
	if err != nil {
		t.Fatalf("Export: %v", err)
	}
	// 帧 0、5、10
	if len(paths) != 3 {
		t.Errorf("got %d frames, want 3", len(paths))
	}
}

func TestExportErrors(t *testing.T) {
	tests := []struct {
		name string
		opts Options
	}{
		{"missing dir", Options{}},
		{"negative start", Options{Dir: "x", Start: -1}},
		{"end before start", Options{Dir: "x", Start: 2, End: 1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.opts.Dir != "" {
				tt.opts.Dir = filepath.Join(t.TempDir(), tt.opts.Dir)
			}
			if _, err := Export(context.Background(), newStage(t), tt.opts); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestExportCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := Export(ctx, newStage(t), Options{Dir: t.TempDir(), FPS: 10, End: 1}); err == nil {
		t.Error("expected context error")
	}
}

func TestExportWritesFinishedScene(t *testing.T) {
	stage := newStage(t)
	// Every 足够大时只剩下播放完成的那一帧
	paths, err := Export(context.Background(), stage, Options{Dir: t.TempDir(), FPS: 10, Start: 20, Every: 1000, Workers: 1})
	if err != nil {
		t.Fatalf("Export: %v", err)
	}
	if len(paths) != 1 {
		t.Fatalf("got %d frames, want only the final one", len(paths))
	}
	if !stage.Sequencer.Done() {
		t.Fatal("export should run until the master timeline completes")
	}
	if now := stage.Engine.Time(); now < stage.Sequencer.Master().Duration()-1e-6 {
		t.Errorf("last frame taken at %.2fs, before the scene finished", now)
	}

	sky, _ := stage.Document.ByID("sky")
	if bgX, _ := sky.GetProperty(tween.PropBackgroundX); bgX != sequencer.CleanupBackgroundX {
		t.Errorf("final backgroundPositionX = %g, want %d", bgX, sequencer.CleanupBackgroundX)
	}
	if _, err := os.Stat(paths[0]); err != nil {
		t.Errorf("final frame missing: %v", err)
	}
}
