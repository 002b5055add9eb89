package termview

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/decker502/flyscene/pkg/sequencer"
)

// Options 终端预览参数
type Options struct {
	// FPS 刷新频率，默认 30
	FPS int
	// Speed 播放速度倍率，默认 1
	Speed float64
	// ExitOnDone 主时间轴完成后自动退出
	ExitOnDone bool
}

// Run 在 screen 上播放场景，直到按下 Esc / q / Ctrl-C、ctx 取消或（可选）播放完成
//
// screen 必须已经 Init；Run 不负责 Fini。
func Run(ctx context.Context, screen tcell.Screen, stage *sequencer.Stage, opts Options) error {
	if opts.FPS <= 0 {
		opts.FPS = 30
	}
	if opts.Speed <= 0 {
		opts.Speed = 1
	}
	dt := 1.0 / float64(opts.FPS)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	events := make(chan tcell.Event, 16)
	go func() {
		for {
			ev := screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-ctx.Done():
				return
			}
		}
	}()

	ticker := time.NewTicker(time.Duration(float64(time.Second) * dt))
	defer ticker.Stop()

	vw := float64(stage.Config.Viewport.Width)
	vh := float64(stage.Config.Viewport.Height)
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev := <-events:
			switch ev := ev.(type) {
			case *tcell.EventKey:
				if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC || ev.Rune() == 'q' {
					log.Printf("[TermView] Quit requested")
					return nil
				}
			case *tcell.EventResize:
				screen.Sync()
			}
		case <-ticker.C:
			stage.Advance(dt * opts.Speed)
			Frame(screen, stage, vw, vh)
			screen.Show()
			if opts.ExitOnDone && stage.Sequencer.Done() {
				return nil
			}
		}
	}
}

// Frame 绘制一帧：场景占满除最后一行外的区域，最后一行为状态栏
func Frame(screen tcell.Screen, stage *sequencer.Stage, viewportW, viewportH float64) {
	cols, rows := screen.Size()
	if rows < 2 {
		return
	}
	g := Rasterize(stage.Snapshot(), viewportW, viewportH, cols, rows-1)
	Draw(screen, g)
	DrawStatus(screen, rows-1, Status(stage))
}

// Status 状态栏文字
func Status(stage *sequencer.Stage) string {
	phase := "waiting"
	if p, ok := stage.Sequencer.CurrentPhase(); ok {
		phase = p.String()
	}
	if stage.Sequencer.Done() {
		phase = "done"
	}
	return fmt.Sprintf(" t=%5.2fs / %.1fs  phase: %-11s  seed %d  [q] quit",
		stage.Engine.Time(), stage.Sequencer.Master().Duration(), phase, stage.Random.Seed())
}
