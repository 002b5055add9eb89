// flyterm 在终端里播放飞离场景（字符画预览）
//
// Usage:
//
//	go run ./cmd/flyterm [flags]
//
// Flags:
//
//	--config <path>   场景配置文件（默认使用内置默认场景）
//	--seed <n>        随机种子（0 = 当前时间）
//	--fps <n>         刷新频率
//	--speed <x>       播放速度倍率
//	--exit            播放完成后自动退出
//	--verbose         输出详细日志到 stderr（会干扰画面，建议重定向）
//
// Controls:
//
//	Q/Escape/Ctrl-C   - Quit
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"

	"github.com/gdamore/tcell/v2"

	"github.com/decker502/flyscene/internal/termview"
	"github.com/decker502/flyscene/pkg/config"
	"github.com/decker502/flyscene/pkg/sequencer"
	"github.com/decker502/flyscene/pkg/utils"
)

var (
	configFlag  = flag.String("config", "", "Scene config file (default: built-in scene)")
	seedFlag    = flag.Int64("seed", 0, "Random seed (0 = time based)")
	fpsFlag     = flag.Int("fps", 30, "Refresh rate")
	speedFlag   = flag.Float64("speed", 1, "Playback speed multiplier")
	exitFlag    = flag.Bool("exit", false, "Exit when the scene finishes")
	verboseFlag = flag.Bool("verbose", false, "Enable verbose logging")
)

func main() {
	flag.Parse()
	if !*verboseFlag {
		log.SetOutput(io.Discard)
	}

	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "flyterm: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg := config.DefaultSceneConfig()
	if *configFlag != "" {
		loaded, err := config.LoadSceneConfig(*configFlag)
		if err != nil {
			return err
		}
		cfg = loaded
	}

	rng := utils.NewTimeSeededRandomSource()
	if *seedFlag != 0 {
		rng = utils.NewRandomSource(*seedFlag)
	}

	stage, err := sequencer.NewStage(cfg, rng)
	if err != nil {
		return err
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("failed to create terminal screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("failed to initialize terminal screen: %w", err)
	}
	defer screen.Fini()
	screen.Clear()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	err = termview.Run(ctx, screen, stage, termview.Options{
		FPS:        *fpsFlag,
		Speed:      *speedFlag,
		ExitOnDone: *exitFlag,
	})
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
