package sequencer

import (
	"fmt"

	"github.com/decker502/flyscene/internal/tween"
	"github.com/decker502/flyscene/pkg/config"
	"github.com/decker502/flyscene/pkg/scene"
	"github.com/decker502/flyscene/pkg/utils"
)

// Stage 一次完整播放所需的全部对象：引擎、文档和编排器
//
// 窗口、终端预览和帧导出都通过 Stage 驱动同一套场景。
type Stage struct {
	Config    *config.SceneConfig
	Engine    *tween.Engine
	Document  *scene.Document
	Sequencer *Sequencer
	Random    *utils.RandomSource
}

// NewStage 根据配置构建文档和编排器，并开始播放主时间轴
func NewStage(cfg *config.SceneConfig, rng *utils.RandomSource) (*Stage, error) {
	if cfg == nil {
		cfg = config.DefaultSceneConfig()
	}
	if rng == nil {
		rng = utils.NewTimeSeededRandomSource()
	}

	doc, err := scene.NewDocumentFromConfig(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to build scene document: %w", err)
	}
	engine := tween.NewEngine()
	seq, err := New(Options{Engine: engine, Document: doc, Config: cfg, Random: rng})
	if err != nil {
		return nil, fmt.Errorf("failed to create sequencer: %w", err)
	}
	if err := seq.Start(); err != nil {
		return nil, err
	}

	return &Stage{Config: cfg, Engine: engine, Document: doc, Sequencer: seq, Random: rng}, nil
}

// Advance 推进 dt 秒
func (st *Stage) Advance(dt float64) {
	st.Engine.Tick(dt)
}

// Snapshot 当前帧的绘制数据
func (st *Stage) Snapshot() []scene.Node {
	return st.Document.Snapshot()
}
