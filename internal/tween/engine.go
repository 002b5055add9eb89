package tween

import (
	"fmt"
	"math"
)

// MaxStep 单次求值推进的最长时间（秒）
//
// 更长的 Tick 会拆成若干个等长子步，每个子步结束都会插入回调中新建的补间，
// 这样一次跳过多个阶段时，跟随类补间仍按各自阶段的时间顺序生效。
const MaxStep = 0.1

// Engine 全局动画时钟
//
// 所有通过 To/Play 调度的动画都挂在根时间轴上，由 Tick 统一推进。
// Tick 期间新建的动画放进待插入队列，在本帧结束后以当前时间为起点
// 加入根时间轴，下一帧开始求值。
type Engine struct {
	root    *Timeline
	time    float64
	frame   uint64
	ticking bool
	pending []Animation
	tweens  []*Tween // 尚未结束的补间，供 KillTweensOf 查找
}

// NewEngine 创建动画引擎
func NewEngine() *Engine {
	e := &Engine{}
	e.root = &Timeline{engine: e, infinite: true}
	e.root.started = true
	return e
}

// Time 引擎时钟（秒）
func (e *Engine) Time() float64 {
	return e.time
}

// Frame 已经推进的帧数
func (e *Engine) Frame() uint64 {
	return e.frame
}

// Tick 推进 dt 秒并求值所有动画，dt 超过 MaxStep 时分子步推进
func (e *Engine) Tick(dt float64) {
	if dt < 0 {
		dt = 0
	}
	e.frame++

	start := e.time
	steps := int(math.Ceil(dt / MaxStep))
	if steps < 1 {
		steps = 1
	}
	for i := 1; i < steps; i++ {
		e.time = start + dt*float64(i)/float64(steps)
		e.step()
	}
	e.time = start + dt
	e.step()
}

func (e *Engine) step() {
	e.ticking = true
	e.root.render(e.time)
	e.ticking = false

	e.flushPending()
	e.root.prune()
	e.pruneTweens()
}

// NewTween 创建未调度的补间（用于放入时间轴）
func (e *Engine) NewTween(targets []Target, vars Vars) *Tween {
	t := newTween(e, targets, vars)
	e.tweens = append(e.tweens, t)
	return t
}

// NewTimeline 创建未调度的时间轴
func (e *Engine) NewTimeline(vars TimelineVars) *Timeline {
	return &Timeline{engine: e, vars: vars}
}

// To 创建补间并立即调度（从当前时间开始，加上 Delay）
func (e *Engine) To(targets []Target, vars Vars) *Tween {
	t := e.NewTween(targets, vars)
	// 新建补间一定能挂到根时间轴上
	_ = e.Play(t)
	return t
}

// Play 把动画调度到根时间轴的当前时间
func (e *Engine) Play(a Animation) error {
	if !a.attach(e.root) {
		return fmt.Errorf("animation already scheduled")
	}
	a.setStartTime(e.time + a.delay())
	if e.ticking {
		e.pending = append(e.pending, a)
		return nil
	}
	e.root.children = append(e.root.children, a)
	return nil
}

// Set 立即赋值，不产生动画
func (e *Engine) Set(targets []Target, props Props) {
	for _, target := range targets {
		for name, v := range props {
			current, ok := target.GetProperty(name)
			if !ok {
				continue
			}
			target.SetProperty(name, v.resolve(current))
		}
	}
}

// GetProperty 读取属性当前值（目标不支持时返回 0）
func (e *Engine) GetProperty(target Target, name string) float64 {
	v, _ := target.GetProperty(name)
	return v
}

// KillTweensOf 取消正在进行的、作用于 target 指定属性的补间
//
// 只处理"进行中"的补间：已开始的，或直接调度在根时间轴上尚未结束的。
// 时间轴里尚未开始的步骤不受影响。names 为空时取消该目标的所有属性。
// 返回受影响的补间数量。
func (e *Engine) KillTweensOf(target Target, names ...string) int {
	count := 0
	for _, t := range e.tweens {
		if t.done() || !e.inFlight(t) {
			continue
		}
		if t.removeProps(target, names) {
			count++
		}
	}
	return count
}

// ActiveTweensOf 返回作用于 target 的进行中补间数量
func (e *Engine) ActiveTweensOf(target Target) int {
	count := 0
	for _, t := range e.tweens {
		if !t.done() && e.inFlight(t) && t.touches(target) {
			count++
		}
	}
	return count
}

func (e *Engine) inFlight(t *Tween) bool {
	return t.started || t.parent == e.root
}

func (e *Engine) flushPending() {
	if len(e.pending) == 0 {
		return
	}
	e.root.children = append(e.root.children, e.pending...)
	for i := range e.pending {
		e.pending[i] = nil
	}
	e.pending = e.pending[:0]
}

func (e *Engine) pruneTweens() {
	kept := e.tweens[:0]
	for _, t := range e.tweens {
		if !t.done() {
			kept = append(kept, t)
		}
	}
	for i := len(kept); i < len(e.tweens); i++ {
		e.tweens[i] = nil
	}
	e.tweens = kept
}
