package termview

import (
	"image/color"
	"strings"
	"testing"

	"github.com/gdamore/tcell/v2"

	"github.com/decker502/flyscene/pkg/components"
	"github.com/decker502/flyscene/pkg/config"
	"github.com/decker502/flyscene/pkg/scene"
	"github.com/decker502/flyscene/pkg/sequencer"
	"github.com/decker502/flyscene/pkg/utils"
)

func TestRasterizeScalesNodes(t *testing.T) {
	red := color.RGBA{R: 255, A: 255}
	nodes := []scene.Node{
		{ID: "box", Shape: components.ShapeRect, X: 100, Y: 100, Width: 200, Height: 100, Fill: red, Opacity: 1, Glyph: 'C'},
		{ID: "ghost", Shape: components.ShapeRect, X: 0, Y: 0, Width: 100, Height: 100, Opacity: 0.1, Glyph: 'G'},
	}
	// 1000x500 → 100x50，缩放 0.1
	g := Rasterize(nodes, 1000, 500, 100, 50)

	for y := 0; y < g.Rows; y++ {
		for x := 0; x < g.Cols; x++ {
			inside := x >= 10 && x < 30 && y >= 10 && y < 20
			c := g.At(x, y)
			if inside && (c.Rune != 'C' || c.Fg != red) {
				t.Fatalf("cell (%d,%d) should belong to box, got %q", x, y, c.Rune)
			}
			if !inside && c.Rune != ' ' {
				t.Fatalf("cell (%d,%d) should be empty, got %q", x, y, c.Rune)
			}
		}
	}
}

func TestRasterizeBackgroundStripes(t *testing.T) {
	sky := color.RGBA{B: 255, A: 255}
	grass := color.RGBA{G: 255, A: 255}
	bg := scene.Node{
		Shape: components.ShapeRect, Width: 100, Height: 100, Fill: sky, Opacity: 1,
		IsBackground: true, Stripe: grass, StripeWidth: 10, HorizonY: 50,
	}
	g := Rasterize([]scene.Node{bg}, 100, 100, 100, 100)

	if c := g.At(5, 10); c.Bg != sky {
		t.Errorf("above horizon should be sky, got %v", c.Bg)
	}
	if c := g.At(5, 60); c.Bg != grass {
		t.Errorf("stripe below horizon should be grass, got %v", c.Bg)
	}
	if c := g.At(15, 60); c.Bg != sky {
		t.Errorf("gap between stripes should be sky, got %v", c.Bg)
	}

	bg.BackgroundX = -10
	g = Rasterize([]scene.Node{bg}, 100, 100, 100, 100)
	if c := g.At(5, 60); c.Bg != sky {
		t.Errorf("scrolled stripes should move left, got %v at x=5", c.Bg)
	}
}

func TestRasterizeEllipseCorners(t *testing.T) {
	n := scene.Node{Shape: components.ShapeEllipse, X: 0, Y: 0, Width: 40, Height: 20, Opacity: 1, Glyph: '~'}
	g := Rasterize([]scene.Node{n}, 40, 20, 40, 20)
	if g.At(0, 0).Rune != ' ' {
		t.Error("ellipse corner should stay empty")
	}
	if g.At(20, 10).Rune != '~' {
		t.Error("ellipse center should be filled")
	}
}

func TestRasterizeDegenerateSizes(t *testing.T) {
	g := Rasterize(nil, 0, 0, 10, 5)
	if len(g.Cells) != 50 {
		t.Fatalf("expected 50 cells, got %d", len(g.Cells))
	}
	if g.At(0, 0).Rune != ' ' {
		t.Error("empty grid should be blank")
	}
}

func TestFrameOnSimulationScreen(t *testing.T) {
	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatalf("Init: %v", err)
	}
	defer screen.Fini()
	screen.SetSize(80, 24)

	cfg := config.DefaultSceneConfig()
	stage, err := sequencer.NewStage(cfg, utils.NewRandomSource(3))
	if err != nil {
		t.Fatalf("NewStage: %v", err)
	}
	stage.Advance(6)

	Frame(screen, stage, float64(cfg.Viewport.Width), float64(cfg.Viewport.Height))
	screen.Show()

	var status strings.Builder
	for x := 0; x < 80; x++ {
		r, _, _, _ := screen.GetContent(x, 23)
		status.WriteRune(r)
	}
	if !strings.Contains(status.String(), "phase: walk") {
		t.Errorf("status line should show the walk phase, got %q", status.String())
	}

	found := false
	for y := 0; y < 23 && !found; y++ {
		for x := 0; x < 80; x++ {
			if r, _, _, _ := screen.GetContent(x, y); r == 'C' {
				found = true
				break
			}
		}
	}
	if !found {
		t.Error("car glyph should be visible after it stops")
	}
}

func TestStatus(t *testing.T) {
	stage, err := sequencer.NewStage(config.DefaultSceneConfig(), utils.NewRandomSource(9))
	if err != nil {
		t.Fatalf("NewStage: %v", err)
	}
	if s := Status(stage); !strings.Contains(s, "waiting") || !strings.Contains(s, "seed 9") {
		t.Errorf("unexpected initial status %q", s)
	}
	for i := 0; i < 30*60; i++ {
		stage.Advance(1.0 / 60)
	}
	if s := Status(stage); !strings.Contains(s, "done") {
		t.Errorf("expected done status, got %q", s)
	}
}
