package sequencer

import (
	"fmt"
	"log"

	"github.com/decker502/flyscene/internal/tween"
)

const (
	// CleanupOpacity 收尾阶段装饰图的不透明度终点。
	// 超出 [0, 1]，构建时会记录警告，写入元素时被限制为 1。
	CleanupOpacity = 3
	// CleanupBackgroundX 收尾阶段背景归位的偏移
	CleanupBackgroundX = 210
	// FinalDriveBackgroundShift 车驶离时背景额外滚动的距离
	FinalDriveBackgroundShift = -600
)

// stepDef 阶段内的一个补间
type stepDef struct {
	targets  []Role
	props    tween.Props
	duration float64
	ease     string
	delay    float64
	// position 在阶段时间轴中的插入位置（"" 为末尾，"+=x"/"-=x" 相对末尾）
	position string
}

// phaseDef 一个阶段的声明
type phaseDef struct {
	id    PhaseID
	steps []stepDef
}

// phaseDefinitions 八个阶段的固定脚本
func phaseDefinitions(l Layout) []phaseDef {
	character := []Role{RoleCharacter}
	flyers := []Role{RoleVehicle, RoleCharacter}

	return []phaseDef{
		{id: PhaseApproach, steps: []stepDef{
			{targets: []Role{RoleCar}, props: tween.Props{tween.PropX: tween.Abs(l.CarStop)}, duration: 5, ease: "power2.inOut"},
		}},
		{id: PhaseWalk, steps: []stepDef{
			{targets: character, props: tween.Props{tween.PropDisplay: tween.Abs(1), tween.PropOpacity: tween.Abs(1)}, duration: 0.3, ease: "power1.in"},
			// 十步离散缓动模拟脚步
			{targets: character, props: tween.Props{tween.PropX: tween.Abs(l.BoardingX)}, duration: 4.7, ease: "steps(10)"},
		}},
		{id: PhaseTakeoff, steps: []stepDef{
			{targets: character, props: tween.Props{tween.PropY: tween.By(-45)}, duration: 1, ease: "power1.inOut"},
			{targets: []Role{RoleVehicle}, props: tween.Props{tween.PropY: tween.By(-40)}, duration: 1, ease: "power1.in", position: "-=0.5"},
		}},
		{id: PhaseFlight, steps: []stepDef{
			{targets: flyers, props: tween.Props{tween.PropX: tween.By(300), tween.PropY: tween.By(-100)}, duration: 7, ease: "power1.inOut"},
		}},
		{id: PhaseExit, steps: []stepDef{
			{targets: flyers, props: tween.Props{tween.PropX: tween.By(800), tween.PropY: tween.By(-400)}, duration: 2, ease: "power2.in"},
			// 空补间：停顿
			{duration: 0.5},
		}},
		{id: PhaseFinalDrive, steps: []stepDef{
			{targets: []Role{RoleCar}, props: tween.Props{tween.PropX: tween.By(800)}, duration: 2, ease: "power2.in"},
			{targets: []Role{RoleBackground}, props: tween.Props{tween.PropBackgroundX: tween.By(FinalDriveBackgroundShift)}, duration: 2, ease: "power2.inOut", position: "-=2"},
		}},
		{id: PhaseReveal, steps: []stepDef{
			{targets: []Role{RoleDecorativeImage}, props: tween.Props{tween.PropOpacity: tween.Abs(1), tween.PropScale: tween.Abs(1)}, duration: 0.8, ease: "back.out(1.7)", position: "+=0.5"},
		}},
		{id: PhaseCleanup, steps: []stepDef{
			{targets: []Role{RoleDecorativeImage}, props: tween.Props{tween.PropOpacity: tween.Abs(CleanupOpacity), tween.PropScale: tween.Abs(0.9)}, duration: 0.5, ease: "power2.in", delay: 2},
			{targets: []Role{RoleBackground}, props: tween.Props{tween.PropBackgroundX: tween.Abs(CleanupBackgroundX)}, duration: 1.5, ease: "power2.inOut", position: "-=0.5"},
		}},
	}
}

// buildPhase 把阶段声明展开成独立的子时间轴
// 每个步骤的回调只生成事件，交给 dispatch 处理。
func (s *Sequencer) buildPhase(def phaseDef) (*tween.Timeline, error) {
	tl := s.engine.NewTimeline(tween.TimelineVars{
		OnStart:    func() { s.dispatch(Event{Phase: def.id, Kind: EventPhaseStart, Step: -1}) },
		OnComplete: func() { s.dispatch(Event{Phase: def.id, Kind: EventPhaseComplete, Step: -1}) },
	})

	for i, st := range def.steps {
		if err := tween.ValidateProps(st.props); err != nil {
			log.Printf("[Sequencer] Warning: %s step %d: %v (clamped on write)", def.id, i, err)
			s.warnings = append(s.warnings, fmt.Errorf("%s step %d: %w", def.id, i, err))
		}

		vars := tween.Vars{
			Props:      st.props,
			Duration:   st.duration,
			Ease:       st.ease,
			Delay:      st.delay,
			OnStart:    func() { s.dispatch(Event{Phase: def.id, Kind: EventStart, Step: i}) },
			OnUpdate:   func() { s.dispatch(Event{Phase: def.id, Kind: EventUpdate, Step: i}) },
			OnComplete: func() { s.dispatch(Event{Phase: def.id, Kind: EventComplete, Step: i}) },
		}
		if vars.Ease == "" {
			vars.Ease = "none"
		}
		if _, err := tl.To(s.roles.targets(st.targets...), vars, st.position); err != nil {
			return nil, fmt.Errorf("failed to build %s step %d: %w", def.id, i, err)
		}
	}
	return tl, nil
}

// buildMasterTimeline 按固定顺序把八个阶段首尾相接
func (s *Sequencer) buildMasterTimeline() error {
	s.master = s.engine.NewTimeline(tween.TimelineVars{
		OnComplete: func() {
			log.Printf("[Sequencer] Master timeline complete at %.2fs", s.engine.Time())
		},
	})

	for _, def := range phaseDefinitions(s.layout) {
		tl, err := s.buildPhase(def)
		if err != nil {
			return err
		}
		if err := s.master.Add(tl, ""); err != nil {
			return fmt.Errorf("failed to append phase %s: %w", def.id, err)
		}
		s.phases = append(s.phases, tl)
	}
	return nil
}
