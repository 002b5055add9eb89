// flydump 不打开窗口，把飞离场景逐帧导出为 PNG 序列
//
// Usage:
//
//	go run ./cmd/flydump [flags]
//
// Flags:
//
//	--config <path>   场景配置文件（默认使用内置默认场景）
//	--out <dir>       输出目录（默认 frames）
//	--fps <n>         模拟帧率
//	--from/--to       导出的时间范围（秒，--to 0 = 到播放结束）
//	--every <n>       每 n 帧写出一张
//	--workers <n>     并行编码数（0 = CPU 数）
//	--seed <n>        随机种子（0 = 当前时间）
//	--labels          绘制元素文字标签
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"

	"github.com/decker502/flyscene/internal/framedump"
	"github.com/decker502/flyscene/pkg/config"
	"github.com/decker502/flyscene/pkg/sequencer"
	"github.com/decker502/flyscene/pkg/utils"
)

var (
	configFlag  = flag.String("config", "", "Scene config file (default: built-in scene)")
	outFlag     = flag.String("out", "frames", "Output directory")
	fpsFlag     = flag.Int("fps", 30, "Simulation frame rate")
	fromFlag    = flag.Float64("from", 0, "First exported time in seconds")
	toFlag      = flag.Float64("to", 0, "Last exported time in seconds (0 = until the scene finishes)")
	everyFlag   = flag.Int("every", 1, "Write every n-th frame")
	workersFlag = flag.Int("workers", 0, "Parallel PNG encoders (0 = NumCPU)")
	seedFlag    = flag.Int64("seed", 0, "Random seed (0 = time based)")
	labelsFlag  = flag.Bool("labels", true, "Draw element labels")
)

func main() {
	flag.Parse()

	cfg := config.DefaultSceneConfig()
	if *configFlag != "" {
		loaded, err := config.LoadSceneConfig(*configFlag)
		if err != nil {
			log.Fatalf("flydump: %v", err)
		}
		cfg = loaded
	}

	rng := utils.NewTimeSeededRandomSource()
	if *seedFlag != 0 {
		rng = utils.NewRandomSource(*seedFlag)
	}

	stage, err := sequencer.NewStage(cfg, rng)
	if err != nil {
		log.Fatalf("flydump: %v", err)
	}
	for _, w := range stage.Sequencer.Warnings() {
		log.Printf("[FlyDump] Warning: %v", w)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	paths, err := framedump.Export(ctx, stage, framedump.Options{
		Dir:     *outFlag,
		FPS:     *fpsFlag,
		Start:   *fromFlag,
		End:     *toFlag,
		Every:   *everyFlag,
		Workers: *workersFlag,
		Labels:  *labelsFlag,
	})
	if err != nil {
		log.Fatalf("flydump: %v", err)
	}
	fmt.Printf("wrote %d frames to %s (seed %d)\n", len(paths), *outFlag, rng.Seed())
}
