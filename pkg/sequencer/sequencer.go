// Package sequencer 飞离场景的时间轴编排
//
// Sequencer 持有按角色解析的元素、构造时计算好的布局、两批尾气粒子，
// 并把八个阶段拼接成唯一的主时间轴。播放过程中所有补间回调都转换成
// Event，经 dispatch 分发到粒子、背景滚动和镜头等副作用上。
//
// 使用方式：
//
//	seq, err := sequencer.New(sequencer.Options{Engine: engine, Document: doc, Config: cfg})
//	if err != nil { ... }
//	seq.Start()
//	// 每帧: engine.Tick(dt)
package sequencer

import (
	"fmt"
	"log"

	"github.com/decker502/flyscene/internal/tween"
	"github.com/decker502/flyscene/pkg/components"
	"github.com/decker502/flyscene/pkg/config"
	"github.com/decker502/flyscene/pkg/ecs"
	"github.com/decker502/flyscene/pkg/scene"
	"github.com/decker502/flyscene/pkg/utils"
)

// Options 构造参数
type Options struct {
	Engine   *tween.Engine
	Document *scene.Document
	// Config 为 nil 时使用 config.DefaultSceneConfig()
	Config *config.SceneConfig
	// Random 为 nil 时使用当前时间作为种子
	Random *utils.RandomSource
	// Viewport 为零值时取文档尺寸
	Viewport Viewport
}

// Sequencer 场景编排器
type Sequencer struct {
	engine *tween.Engine
	doc    *scene.Document
	cfg    *config.SceneConfig
	rng    *utils.RandomSource

	roles  Roles
	layout Layout

	particlesLive map[ParticleKind]bool
	// loops 云朵和粒子的无限循环补间
	loops []*tween.Tween

	master *tween.Timeline
	phases []*tween.Timeline

	reactions map[eventKey]func()
	observers []Observer
	warnings  []error
	started   bool
	// current 最近开始的阶段，-1 表示尚未开始
	current PhaseID
}

// New 解析元素、计算布局、设置初始状态、创建粒子并构建主时间轴
//
// 主时间轴此时尚未播放，需要调用 Start。云朵漂浮在这里就已开始。
func New(opts Options) (*Sequencer, error) {
	if opts.Engine == nil {
		return nil, ErrEngineUnavailable
	}
	if opts.Document == nil {
		return nil, fmt.Errorf("document is required")
	}
	cfg := opts.Config
	if cfg == nil {
		cfg = config.DefaultSceneConfig()
	}
	rng := opts.Random
	if rng == nil {
		rng = utils.NewTimeSeededRandomSource()
	}

	roles, err := resolveRoles(opts.Document, cfg.Roles)
	if err != nil {
		return nil, err
	}
	if roles.Background.Background() == nil {
		log.Printf("[Sequencer] Warning: background element %q has no stripe pattern, scrolling has no visible effect", roles.Background.ID())
	}

	vp := opts.Viewport
	if vp.Width <= 0 || vp.Height <= 0 {
		vp = Viewport{Width: opts.Document.Width(), Height: opts.Document.Height()}
	}

	s := &Sequencer{
		engine:        opts.Engine,
		doc:           opts.Document,
		cfg:           cfg,
		rng:           rng,
		roles:         roles,
		layout:        ComputeLayout(vp, cfg.Layout),
		particlesLive: make(map[ParticleKind]bool),
		current:       -1,
	}
	s.reactions = s.reactionTable()

	s.initializeElements()
	if err := s.createParticles(); err != nil {
		return nil, err
	}
	if err := s.buildMasterTimeline(); err != nil {
		return nil, err
	}

	log.Printf("[Sequencer] Ready: viewport %.0fx%.0f, car stop %.0f, vehicle (%.0f, %.0f), %d clouds, seed %d",
		vp.Width, vp.Height, s.layout.CarStop, s.layout.VehicleX, s.layout.VehicleY, len(roles.Clouds), rng.Seed())
	return s, nil
}

// initializeElements 设置初始状态并启动云朵漂浮
func (s *Sequencer) initializeElements() {
	l := s.layout
	s.engine.Set(s.roles.targets(RoleCar), tween.Props{tween.PropX: tween.Abs(l.CarStartX)})
	s.engine.Set(s.roles.targets(RoleCharacter), tween.Props{
		tween.PropDisplay: tween.Abs(0),
		tween.PropOpacity: tween.Abs(0),
		tween.PropX:       tween.Abs(l.CharacterStartX),
	})
	s.engine.Set(s.roles.targets(RoleDecorativeImage), tween.Props{
		tween.PropOpacity: tween.Abs(0),
		tween.PropScale:   tween.Abs(0.8),
	})
	s.engine.Set(s.roles.targets(RoleScene), tween.Props{tween.PropX: tween.Abs(0)})
	s.engine.Set(s.roles.targets(RoleVehicle), tween.Props{
		tween.PropX: tween.Abs(l.VehicleX),
		tween.PropY: tween.Abs(l.VehicleY),
	})

	for _, cloud := range s.roles.Clouds {
		t := s.engine.To([]tween.Target{cloud}, tween.Vars{
			Props:    tween.Props{tween.PropY: tween.By(s.cfg.Clouds.Rise)},
			Duration: s.rng.Range(s.cfg.Clouds.Duration.Min, s.cfg.Clouds.Duration.Max),
			Repeat:   tween.RepeatForever,
			Yoyo:     true,
			Ease:     "power1.inOut",
		})
		s.loops = append(s.loops, t)
	}
}

// reactionTable 事件到副作用的分发表
func (s *Sequencer) reactionTable() map[eventKey]func() {
	return map[eventKey]func(){
		{PhaseApproach, EventStart, 0}: func() { s.animateParticles(ParticleCar) },
		{PhaseApproach, EventUpdate, 0}: func() {
			s.updateBackground(s.engine.GetProperty(s.roles.Car, tween.PropX), TagCar)
		},
		{PhaseWalk, EventPhaseStart, -1}: func() { s.stopBackgroundMovement() },
		{PhaseTakeoff, EventStart, 1}:    func() { s.animateParticles(ParticleVehicle) },
		{PhaseTakeoff, EventUpdate, 1}: func() {
			s.updateBackground(s.engine.GetProperty(s.roles.Vehicle, tween.PropX), TagVehicleTakeoff)
		},
		{PhaseFlight, EventUpdate, 0}: func() {
			s.updateBackground(s.engine.GetProperty(s.roles.Vehicle, tween.PropX), TagVehicleFlight)
			s.moveCamera()
		},
		{PhaseExit, EventComplete, 0}: func() {
			s.engine.Set(s.roles.targets(RoleVehicle, RoleCharacter), tween.Props{tween.PropDisplay: tween.Abs(0)})
			s.resetCamera()
		},
		{PhaseFinalDrive, EventUpdate, 0}: func() { s.updateBackgroundParallax() },
	}
}

// dispatch 所有播放事件的唯一入口
func (s *Sequencer) dispatch(ev Event) {
	ev.Time = s.engine.Time()
	switch ev.Kind {
	case EventPhaseStart:
		s.current = ev.Phase
		log.Printf("[Sequencer] Phase %s started at %.2fs", ev.Phase, ev.Time)
	case EventPhaseComplete:
		log.Printf("[Sequencer] Phase %s complete at %.2fs", ev.Phase, ev.Time)
	}

	if react, ok := s.reactions[eventKey{ev.Phase, ev.Kind, ev.Step}]; ok {
		react()
	}
	for _, obs := range s.observers {
		obs(ev)
	}
}

// Subscribe 订阅播放事件（在帧循环 goroutine 中同步调用）
func (s *Sequencer) Subscribe(obs Observer) {
	s.observers = append(s.observers, obs)
}

// Start 播放主时间轴，只能调用一次
func (s *Sequencer) Start() error {
	if s.started {
		return ErrAlreadyStarted
	}
	if err := s.engine.Play(s.master); err != nil {
		return fmt.Errorf("failed to start master timeline: %w", err)
	}
	s.started = true
	log.Printf("[Sequencer] Master timeline started (%.1fs, %d phases)", s.master.Duration(), len(s.phases))
	return nil
}

// Started 是否已经调用过 Start
func (s *Sequencer) Started() bool { return s.started }

// Done 主时间轴是否播放完成
func (s *Sequencer) Done() bool { return s.master.Completed() }

// CurrentPhase 最近开始的阶段；主时间轴尚未开始时 ok=false
func (s *Sequencer) CurrentPhase() (PhaseID, bool) {
	return s.current, s.current >= 0
}

// Layout 构造时计算的布局
func (s *Sequencer) Layout() Layout { return s.layout }

// Roles 解析出的元素
func (s *Sequencer) Roles() Roles { return s.roles }

// Master 主时间轴
func (s *Sequencer) Master() *tween.Timeline { return s.master }

// Phases 八个阶段的子时间轴（按播放顺序）
func (s *Sequencer) Phases() []*tween.Timeline { return s.phases }

// Phase 返回指定阶段的子时间轴
func (s *Sequencer) Phase(id PhaseID) *tween.Timeline {
	if id < 0 || int(id) >= len(s.phases) {
		return nil
	}
	return s.phases[id]
}

// Particles 指定发射体的粒子（创建顺序）
func (s *Sequencer) Particles(kind ParticleKind) []*scene.Element {
	em := s.doc.EntityManager()
	var out []*scene.Element
	for _, id := range ecs.GetEntitiesWith1[*components.ParticleComponent](em) {
		pc, _ := ecs.GetComponent[*components.ParticleComponent](em, id)
		if pc.Kind != string(kind) {
			continue
		}
		if el, ok := s.doc.Element(id); ok {
			out = append(out, el)
		}
	}
	return out
}

// Loops 云朵和粒子的无限循环补间
func (s *Sequencer) Loops() []*tween.Tween { return s.loops }

// Warnings 构建时发现的越界属性值（不会中止构建）
func (s *Sequencer) Warnings() []error { return s.warnings }
