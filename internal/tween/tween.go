package tween

import (
	"log"
	"math"
	"sort"
)

// RepeatForever 无限重复
const RepeatForever = -1

// Vars 补间参数
type Vars struct {
	Props    Props
	Duration float64 // 单次时长（秒）
	Ease     string  // 缓动名称，见 ParseEase
	Delay    float64 // 相对插入位置的延迟（秒）
	Repeat   int     // 额外重复次数，RepeatForever 表示无限
	Yoyo     bool    // 奇数次重复时反向播放

	OnStart    func()
	OnUpdate   func()
	OnComplete func()
}

// Animation 可以被放进时间轴的动画（Tween 或 Timeline）
type Animation interface {
	// Duration 单次播放时长
	Duration() float64
	// TotalDuration 包含重复在内的总时长，无限重复时为 +Inf
	TotalDuration() float64

	startTime() float64
	setStartTime(t float64)
	delay() float64
	attach(parent *Timeline) bool
	render(local float64)
	done() bool
}

// propTween 单个目标的单个属性
type propTween struct {
	target Target
	name   string
	value  Value
	start  float64
	end    float64
	valid  bool
}

// Tween 对一个或多个目标的属性做插值
type Tween struct {
	engine  *Engine
	targets []Target
	vars    Vars
	ease    EaseFunc
	props   []*propTween
	parent  *Timeline
	start   float64

	started   bool
	completed bool
	killed    bool
}

func newTween(e *Engine, targets []Target, vars Vars) *Tween {
	ease, err := ParseEase(vars.Ease)
	if err != nil {
		log.Printf("[Tween] Warning: %v, falling back to %s", err, DefaultEase)
		ease, _ = ParseEase(DefaultEase)
	}

	names := make([]string, 0, len(vars.Props))
	for name := range vars.Props {
		names = append(names, name)
	}
	sort.Strings(names)

	t := &Tween{
		engine:  e,
		targets: targets,
		vars:    vars,
		ease:    ease,
	}
	for _, target := range targets {
		for _, name := range names {
			t.props = append(t.props, &propTween{target: target, name: name, value: vars.Props[name]})
		}
	}
	return t
}

// Targets 返回补间的目标
func (t *Tween) Targets() []Target {
	return t.targets
}

// Vars 返回创建时的参数
func (t *Tween) Vars() Vars {
	return t.vars
}

// Duration 单次时长
func (t *Tween) Duration() float64 {
	return math.Max(0, t.vars.Duration)
}

// TotalDuration 包含重复的总时长
func (t *Tween) TotalDuration() float64 {
	if t.vars.Repeat < 0 {
		return math.Inf(1)
	}
	return t.Duration() * float64(t.vars.Repeat+1)
}

// IsActive 已开始且未结束
func (t *Tween) IsActive() bool {
	return t.started && !t.completed && !t.killed
}

// Started 是否已经开始
func (t *Tween) Started() bool {
	return t.started
}

// Completed 是否已经播放完成
func (t *Tween) Completed() bool {
	return t.completed
}

// Killed 是否被 KillTweensOf 取消
func (t *Tween) Killed() bool {
	return t.killed
}

func (t *Tween) startTime() float64     { return t.start }
func (t *Tween) setStartTime(v float64) { t.start = v }
func (t *Tween) delay() float64         { return t.vars.Delay }
func (t *Tween) done() bool             { return t.completed || t.killed }

func (t *Tween) attach(parent *Timeline) bool {
	if t.parent != nil {
		return false
	}
	t.parent = parent
	return true
}

// init 在第一次渲染时读取起始值（相对增量以此时的值为基准）
func (t *Tween) init() {
	for _, pt := range t.props {
		start, ok := pt.target.GetProperty(pt.name)
		if !ok {
			continue
		}
		pt.start = start
		pt.end = pt.value.resolve(start)
		pt.valid = true
	}
}

func (t *Tween) render(local float64) {
	if t.done() || local < 0 {
		return
	}

	if !t.started {
		t.started = true
		t.init()
		if t.vars.OnStart != nil {
			t.vars.OnStart()
		}
		// 回调中可能取消了自己
		if t.killed {
			return
		}
	}

	finished := local >= t.TotalDuration()
	p := t.progressAt(local, finished)
	t.apply(p, finished)

	if t.vars.OnUpdate != nil {
		t.vars.OnUpdate()
	}

	if finished {
		t.completed = true
		if t.vars.OnComplete != nil {
			t.vars.OnComplete()
		}
	}
}

// progressAt 计算线性进度（处理重复与往返）
func (t *Tween) progressAt(local float64, finished bool) float64 {
	dur := t.Duration()
	if dur <= 0 {
		return 1
	}
	if finished {
		if t.vars.Yoyo && t.vars.Repeat%2 == 1 {
			return 0
		}
		return 1
	}
	iteration := math.Floor(local / dur)
	p := local/dur - iteration
	if t.vars.Yoyo && int64(iteration)%2 == 1 {
		p = 1 - p
	}
	return p
}

func (t *Tween) apply(p float64, finished bool) {
	ratio := p
	switch p {
	case 0, 1:
	default:
		ratio = t.ease(p)
	}

	for _, pt := range t.props {
		if !pt.valid {
			continue
		}
		if isDiscrete(pt.name) {
			if pt.end != 0 || finished {
				pt.target.SetProperty(pt.name, pt.end)
			}
			continue
		}
		if ratio == 1 {
			pt.target.SetProperty(pt.name, pt.end)
			continue
		}
		pt.target.SetProperty(pt.name, pt.start+(pt.end-pt.start)*ratio)
	}
}

// removeProps 移除指定目标的属性，全部移除后补间被取消
func (t *Tween) removeProps(target Target, names []string) bool {
	removed := false
	kept := t.props[:0]
	for _, pt := range t.props {
		if pt.target == target && matchesName(pt.name, names) {
			removed = true
			continue
		}
		kept = append(kept, pt)
	}
	t.props = kept
	if removed && len(t.props) == 0 {
		t.killed = true
	}
	return removed
}

func (t *Tween) touches(target Target) bool {
	for _, pt := range t.props {
		if pt.target == target {
			return true
		}
	}
	return false
}

func matchesName(name string, names []string) bool {
	if len(names) == 0 {
		return true
	}
	for _, n := range names {
		if n == name {
			return true
		}
	}
	return false
}
