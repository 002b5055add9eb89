package sequencer

import (
	"math"
	"testing"

	"github.com/decker502/flyscene/internal/tween"
	"github.com/decker502/flyscene/pkg/config"
	"github.com/decker502/flyscene/pkg/scene"
	"github.com/decker502/flyscene/pkg/utils"
)

const frame = 1.0 / 60

func testConfig(width, height int) *config.SceneConfig {
	cfg := config.DefaultSceneConfig()
	cfg.Viewport.Width = width
	cfg.Viewport.Height = height
	return cfg
}

// newTestSequencer 构建未启动的编排器（固定种子）
func newTestSequencer(t *testing.T, width, height int) (*Sequencer, *tween.Engine) {
	t.Helper()
	cfg := testConfig(width, height)
	doc, err := scene.NewDocumentFromConfig(cfg)
	if err != nil {
		t.Fatalf("NewDocumentFromConfig: %v", err)
	}
	engine := tween.NewEngine()
	seq, err := New(Options{Engine: engine, Document: doc, Config: cfg, Random: utils.NewRandomSource(42)})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return seq, engine
}

// runFor 以 60 FPS 推进 seconds 秒，每帧后调用 after（可为 nil）
func runFor(engine *tween.Engine, seconds float64, after func()) {
	frames := int(math.Ceil(seconds / frame))
	for i := 0; i < frames; i++ {
		engine.Tick(frame)
		if after != nil {
			after()
		}
	}
}

func prop(el *scene.Element, name string) float64 {
	v, _ := el.GetProperty(name)
	return v
}

func approx(a, b float64) bool {
	return math.Abs(a-b) < 1e-6
}
