// flyscene 在窗口中播放飞离场景
//
// Usage:
//
//	go run . [flags]
//
// Flags:
//
//	--config <path>   场景配置文件（默认使用内置 data/scene.yaml）
//	--watch           监听配置文件，修改后从头播放
//	--seed <n>        随机种子（0 = 当前时间）
//	--width/--height  覆盖视口尺寸
//	--labels          在元素上绘制文字标签
//	--verbose         输出详细日志
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/decker502/flyscene/pkg/app"
	"github.com/decker502/flyscene/pkg/embedded"
)

var (
	configFlag  = flag.String("config", "", "Scene config file (default: embedded data/scene.yaml)")
	watchFlag   = flag.Bool("watch", false, "Reload the scene when the config file changes")
	seedFlag    = flag.Int64("seed", 0, "Random seed (0 = time based)")
	widthFlag   = flag.Int("width", 0, "Override viewport width")
	heightFlag  = flag.Int("height", 0, "Override viewport height")
	labelsFlag  = flag.Bool("labels", true, "Draw element labels")
	verboseFlag = flag.Bool("verbose", false, "Enable verbose logging")
)

func main() {
	flag.Parse()

	embedded.Init(dataFS)

	a, err := app.NewApp(app.Config{
		Verbose:    *verboseFlag,
		ConfigPath: *configFlag,
		Watch:      *watchFlag,
		Seed:       *seedFlag,
		Width:      *widthFlag,
		Height:     *heightFlag,
		Labels:     *labelsFlag,
	})
	if err != nil {
		// 非 verbose 模式下日志已被丢弃，错误直接写到 stderr
		fmt.Fprintf(os.Stderr, "flyscene: %v\n", err)
		os.Exit(1)
	}
	defer a.Close()

	w, h := a.Layout(0, 0)
	ebiten.SetWindowSize(w, h)
	ebiten.SetWindowTitle(a.Title())

	if err := ebiten.RunGame(a); err != nil {
		fmt.Fprintf(os.Stderr, "flyscene: %v\n", err)
		os.Exit(1)
	}
}
