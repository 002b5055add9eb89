// Package app 提供场景窗口的核心包装器
//
// 负责加载配置、构建 Stage（引擎 + 文档 + 编排器）、驱动帧循环，
// 以及在配置文件变化时重新构建整个场景。
package app

import (
	"fmt"
	"image/color"
	"io"
	"log"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/decker502/flyscene/pkg/config"
	"github.com/decker502/flyscene/pkg/embedded"
	"github.com/decker502/flyscene/pkg/sequencer"
	"github.com/decker502/flyscene/pkg/systems"
	"github.com/decker502/flyscene/pkg/utils"
)

// DefaultConfigPath 内置配置在嵌入文件系统中的路径
const DefaultConfigPath = "data/scene.yaml"

// Config 定义应用启动配置
type Config struct {
	// Verbose 启用详细日志输出
	Verbose bool
	// ConfigPath 场景配置文件路径，为空则使用内置配置
	ConfigPath string
	// Watch 监听配置文件，修改后重新播放（仅对 ConfigPath 生效）
	Watch bool
	// Seed 随机种子，0 表示使用当前时间
	Seed int64
	// Width / Height 覆盖配置中的视口尺寸（0 表示不覆盖）
	Width  int
	Height int
	// Labels 在元素上绘制文字标签
	Labels bool
}

// App 实现 ebiten.Game 接口
type App struct {
	cfg     Config
	scene   *config.SceneConfig
	stage   *sequencer.Stage
	render  *systems.RenderSystem
	watcher *config.ConfigWatcher
}

// NewApp 加载配置并构建场景
//
// 使用内置配置时，调用此函数前必须先调用 embedded.Init()。
func NewApp(cfg Config) (*App, error) {
	// 配置日志输出
	if !cfg.Verbose {
		log.SetOutput(io.Discard)
		log.SetFlags(0)
	}

	sceneCfg, err := LoadConfig(cfg.ConfigPath, cfg.Width, cfg.Height)
	if err != nil {
		return nil, err
	}

	stage, err := sequencer.NewStage(sceneCfg, newRandom(cfg.Seed))
	if err != nil {
		return nil, fmt.Errorf("场景构建失败: %w", err)
	}

	a := &App{
		cfg:    cfg,
		scene:  sceneCfg,
		stage:  stage,
		render: systems.NewRenderSystem(stage.Document, cfg.Labels),
	}

	if cfg.Watch && cfg.ConfigPath != "" {
		w, err := config.NewConfigWatcher(cfg.ConfigPath)
		if err != nil {
			return nil, fmt.Errorf("配置监听失败: %w", err)
		}
		a.watcher = w
	}

	log.Printf("[App] Scene ready: %dx%d, seed %d", sceneCfg.Viewport.Width, sceneCfg.Viewport.Height, stage.Random.Seed())
	return a, nil
}

// LoadConfig 读取场景配置：path 为空时使用内置 data/scene.yaml
// width/height 非零时覆盖视口尺寸。
func LoadConfig(path string, width, height int) (*config.SceneConfig, error) {
	var (
		cfg *config.SceneConfig
		err error
	)
	if path == "" {
		data, readErr := embedded.ReadFile(DefaultConfigPath)
		if readErr != nil {
			return nil, fmt.Errorf("内置配置读取失败: %w", readErr)
		}
		cfg, err = config.ParseSceneConfig(data)
	} else {
		cfg, err = config.LoadSceneConfig(path)
	}
	if err != nil {
		return nil, fmt.Errorf("场景配置加载失败: %w", err)
	}

	if width > 0 {
		cfg.Viewport.Width = width
	}
	if height > 0 {
		cfg.Viewport.Height = height
	}
	return cfg, nil
}

func newRandom(seed int64) *utils.RandomSource {
	if seed == 0 {
		return utils.NewTimeSeededRandomSource()
	}
	return utils.NewRandomSource(seed)
}

// Update 推进场景
// 每个 tick 调用一次（通常每秒 60 次）
func (a *App) Update() error {
	a.pollWatcher()
	a.stage.Advance(1.0 / float64(ebiten.TPS()))
	return nil
}

// pollWatcher 非阻塞地检查配置变化
func (a *App) pollWatcher() {
	if a.watcher == nil {
		return
	}
	select {
	case path, ok := <-a.watcher.Events:
		if !ok {
			a.watcher = nil
			return
		}
		if err := a.Reload(); err != nil {
			log.Printf("[App] Reload of %s failed, keeping current scene: %v", path, err)
		}
	case err, ok := <-a.watcher.Errors:
		if ok {
			log.Printf("[App] Config watcher error: %v", err)
		}
	default:
	}
}

// Reload 重新加载配置并从头播放
// 失败时保留当前场景。视口尺寸在窗口创建后不再改变，沿用启动时的值。
func (a *App) Reload() error {
	cfg, err := LoadConfig(a.cfg.ConfigPath, a.scene.Viewport.Width, a.scene.Viewport.Height)
	if err != nil {
		return err
	}
	stage, err := sequencer.NewStage(cfg, newRandom(a.cfg.Seed))
	if err != nil {
		return fmt.Errorf("场景构建失败: %w", err)
	}
	a.scene = cfg
	a.stage = stage
	a.render.SetDocument(stage.Document)
	log.Printf("[App] Scene reloaded")
	return nil
}

// Draw 绘制场景
func (a *App) Draw(screen *ebiten.Image) {
	screen.Fill(color.Black)
	a.render.Draw(screen)
}

// DrawFinalScreen 实现 FinalScreenDrawer 接口
// 用于控制全屏时的缩放和 letterbox 颜色
func (a *App) DrawFinalScreen(screen ebiten.FinalScreen, offscreen *ebiten.Image, geoM ebiten.GeoM) {
	screen.Fill(color.Black)
	op := &ebiten.DrawImageOptions{}
	op.GeoM = geoM
	op.Filter = ebiten.FilterLinear
	screen.DrawImage(offscreen, op)
}

// Layout 返回逻辑屏幕尺寸（启动时确定，窗口缩放由 Ebitengine 处理）
func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	return a.scene.Viewport.Width, a.scene.Viewport.Height
}

// Title 窗口标题
func (a *App) Title() string {
	return a.scene.Viewport.Title
}

// Stage 当前场景
func (a *App) Stage() *sequencer.Stage {
	return a.stage
}

// IsVerbose 返回是否启用了详细日志
func (a *App) IsVerbose() bool {
	return a.cfg.Verbose
}

// Close 释放配置监听
func (a *App) Close() error {
	if a.watcher == nil {
		return nil
	}
	return a.watcher.Close()
}
