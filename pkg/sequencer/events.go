package sequencer

import "fmt"

// PhaseID 主时间轴上的八个阶段，按播放顺序编号
type PhaseID int

const (
	PhaseApproach   PhaseID = iota // 车驶入并停下
	PhaseWalk                      // 角色下车走向飞行器
	PhaseTakeoff                   // 登机、起飞
	PhaseFlight                    // 飞行，镜头跟随
	PhaseExit                      // 飞出屏幕
	PhaseFinalDrive                // 车驶离
	PhaseReveal                    // 装饰图淡入
	PhaseCleanup                   // 收尾
)

// PhaseCount 阶段数量
const PhaseCount = 8

var phaseNames = [PhaseCount]string{
	"approach", "walk", "takeoff", "flight", "exit", "final-drive", "reveal", "cleanup",
}

func (p PhaseID) String() string {
	if p < 0 || int(p) >= PhaseCount {
		return fmt.Sprintf("phase(%d)", int(p))
	}
	return phaseNames[p]
}

// EventKind 事件类型
type EventKind int

const (
	EventStart         EventKind = iota // 某个步骤开始
	EventUpdate                         // 某个步骤的一帧
	EventComplete                       // 某个步骤结束
	EventPhaseStart                     // 阶段开始
	EventPhaseComplete                  // 阶段结束
)

func (k EventKind) String() string {
	switch k {
	case EventStart:
		return "start"
	case EventUpdate:
		return "update"
	case EventComplete:
		return "complete"
	case EventPhaseStart:
		return "phase-start"
	case EventPhaseComplete:
		return "phase-complete"
	}
	return fmt.Sprintf("event(%d)", int(k))
}

// Event 播放过程中产生的事件
//
// 所有补间回调都只生成 Event 并交给 Sequencer.dispatch，
// 副作用（粒子、背景、镜头）集中在分发表里。
type Event struct {
	Phase PhaseID
	Kind  EventKind
	// Step 阶段内的步骤序号；阶段级事件为 -1
	Step int
	// Time 事件发生时的引擎时钟
	Time float64
}

func (e Event) String() string {
	if e.Step < 0 {
		return fmt.Sprintf("%s %s @%.3f", e.Phase, e.Kind, e.Time)
	}
	return fmt.Sprintf("%s[%d] %s @%.3f", e.Phase, e.Step, e.Kind, e.Time)
}

// Observer 事件订阅者
type Observer func(Event)

// eventKey 分发表的键
type eventKey struct {
	phase PhaseID
	kind  EventKind
	step  int
}
