package tween

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// TimelineVars 时间轴回调
type TimelineVars struct {
	OnStart    func()
	OnUpdate   func()
	OnComplete func()
}

// Timeline 按相对时间偏移组合补间和子时间轴
//
// 子动画按插入顺序求值；插入位置默认为当前时间轴末尾，
// "+=0.5" 表示末尾之后 0.5 秒，"-=0.5" 表示与末尾重叠 0.5 秒，
// 纯数字表示绝对时间。
type Timeline struct {
	engine   *Engine
	vars     TimelineVars
	children []Animation
	parent   *Timeline
	start    float64
	infinite bool // 根时间轴永不结束

	started   bool
	completed bool
}

// Add 把动画插入时间轴
func (tl *Timeline) Add(a Animation, position string) error {
	at, err := tl.resolvePosition(position)
	if err != nil {
		return err
	}
	if !a.attach(tl) {
		return fmt.Errorf("animation already belongs to a timeline")
	}
	a.setStartTime(at + a.delay())
	tl.children = append(tl.children, a)
	return nil
}

// To 创建补间并插入时间轴
func (tl *Timeline) To(targets []Target, vars Vars, position string) (*Tween, error) {
	t := tl.engine.NewTween(targets, vars)
	if err := tl.Add(t, position); err != nil {
		return nil, err
	}
	return t, nil
}

// Duration 所有子动画结束时间的最大值
func (tl *Timeline) Duration() float64 {
	end := 0.0
	for _, c := range tl.children {
		end = math.Max(end, c.startTime()+c.TotalDuration())
	}
	return end
}

// TotalDuration 时间轴不支持重复，与 Duration 相同
func (tl *Timeline) TotalDuration() float64 {
	if tl.infinite {
		return math.Inf(1)
	}
	return tl.Duration()
}

// Children 返回子动画（按插入顺序）
func (tl *Timeline) Children() []Animation {
	return tl.children
}

// StartTime 在父时间轴中的开始时间
func (tl *Timeline) StartTime() float64 {
	return tl.start
}

// Started 是否已经开始播放
func (tl *Timeline) Started() bool {
	return tl.started
}

// Completed 是否已经播放完成
func (tl *Timeline) Completed() bool {
	return tl.completed
}

func (tl *Timeline) startTime() float64     { return tl.start }
func (tl *Timeline) setStartTime(v float64) { tl.start = v }
func (tl *Timeline) delay() float64         { return 0 }
func (tl *Timeline) done() bool             { return tl.completed }

func (tl *Timeline) attach(parent *Timeline) bool {
	if tl.parent != nil || tl == parent {
		return false
	}
	tl.parent = parent
	return true
}

func (tl *Timeline) render(local float64) {
	if tl.completed || local < 0 {
		return
	}
	if !tl.started {
		tl.started = true
		if tl.vars.OnStart != nil {
			tl.vars.OnStart()
		}
	}

	allDone := true
	for _, c := range tl.children {
		if c.done() {
			continue
		}
		if cl := local - c.startTime(); cl >= 0 {
			c.render(cl)
		}
		if !c.done() {
			allDone = false
		}
	}

	if tl.vars.OnUpdate != nil {
		tl.vars.OnUpdate()
	}

	if !tl.infinite && allDone && local >= tl.Duration() {
		tl.completed = true
		if tl.vars.OnComplete != nil {
			tl.vars.OnComplete()
		}
	}
}

// prune 移除已结束的子动画（只用于根时间轴）
func (tl *Timeline) prune() {
	kept := tl.children[:0]
	for _, c := range tl.children {
		if !c.done() {
			kept = append(kept, c)
		}
	}
	for i := len(kept); i < len(tl.children); i++ {
		tl.children[i] = nil
	}
	tl.children = kept
}

// resolvePosition 解析插入位置
func (tl *Timeline) resolvePosition(position string) (float64, error) {
	end := tl.Duration()
	position = strings.TrimSpace(position)
	if position == "" {
		return end, nil
	}

	if strings.HasPrefix(position, "+=") || strings.HasPrefix(position, "-=") {
		offset, err := strconv.ParseFloat(position[2:], 64)
		if err != nil {
			return 0, fmt.Errorf("invalid timeline position %q: %w", position, err)
		}
		if position[0] == '-' {
			offset = -offset
		}
		return math.Max(0, end+offset), nil
	}

	at, err := strconv.ParseFloat(position, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid timeline position %q: %w", position, err)
	}
	return math.Max(0, at), nil
}
