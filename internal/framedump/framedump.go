// Package framedump 无窗口地逐帧导出场景为 PNG 序列
package framedump

import (
	"context"
	"fmt"
	"image/png"
	"log"
	"os"
	"path/filepath"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/decker502/flyscene/pkg/scene"
	"github.com/decker502/flyscene/pkg/sequencer"
)

// Options 导出参数
type Options struct {
	// Dir 输出目录，不存在时自动创建
	Dir string
	// FPS 模拟帧率，默认 30
	FPS int
	// Start 开始写出的时间（秒）
	Start float64
	// End 停止时间（秒）；<= 0 表示主时间轴完成为止
	End float64
	// Every 每隔多少个模拟帧写出一张，默认 1
	Every int
	// Workers 并行编码 goroutine 数，默认 CPU 数
	Workers int
	// Labels 是否绘制元素文字
	Labels bool
}

// 主时间轴不结束时的兜底上限（秒）
const maxDuration = 120.0

// Export 在调用方 goroutine 中推进 stage，把快照交给编码 goroutine 写成 PNG
//
// 返回按帧序排列的文件路径。任意一帧写出失败或 ctx 取消都会终止导出。
func Export(ctx context.Context, stage *sequencer.Stage, opts Options) ([]string, error) {
	if opts.Dir == "" {
		return nil, fmt.Errorf("output directory is required")
	}
	if opts.FPS <= 0 {
		opts.FPS = 30
	}
	if opts.Every <= 0 {
		opts.Every = 1
	}
	if opts.Workers <= 0 {
		opts.Workers = runtime.NumCPU()
	}
	if opts.Start < 0 {
		return nil, fmt.Errorf("invalid start time %.2f", opts.Start)
	}
	if opts.End > 0 && opts.End < opts.Start {
		return nil, fmt.Errorf("end time %.2f before start time %.2f", opts.End, opts.Start)
	}
	if err := os.MkdirAll(opts.Dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	w := stage.Config.Viewport.Width
	h := stage.Config.Viewport.Height
	dt := 1.0 / float64(opts.FPS)
	limit := opts.End
	if limit <= 0 {
		limit = maxDuration
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(opts.Workers)

	var paths []string
	for frame := 0; ; frame++ {
		now := float64(frame) * dt
		if now > limit+1e-9 {
			break
		}
		// 播放完成后的第一帧总是写出，之后停止
		done := opts.End <= 0 && stage.Sequencer.Done()
		if now+1e-9 >= opts.Start && (frame%opts.Every == 0 || done) {
			if gctx.Err() != nil {
				break
			}
			path := filepath.Join(opts.Dir, fmt.Sprintf("frame_%05d.png", len(paths)))
			paths = append(paths, path)
			nodes := stage.Snapshot()
			g.Go(func() error {
				return writeFrame(path, nodes, w, h, opts.Labels)
			})
		}
		if done {
			break
		}
		stage.Advance(dt)
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	log.Printf("[FrameDump] Wrote %d frames to %s (%.2fs simulated)", len(paths), opts.Dir, stage.Engine.Time())
	return paths, nil
}

func writeFrame(path string, nodes []scene.Node, w, h int, labels bool) error {
	img := RenderImage(nodes, w, h, labels)
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create frame %s: %w", path, err)
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("failed to encode frame %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to close frame %s: %w", path, err)
	}
	return nil
}
