package components

import "github.com/decker502/flyscene/pkg/ecs"

// ParticleComponent 标记尾气粒子
//
// 粒子在启动时批量创建并挂在发射体（车或飞行器）下面，
// 之后由无限循环的补间驱动，播放期间不会销毁。
type ParticleComponent struct {
	// Kind 发射体类型："car" 或 "vehicle"
	Kind string
	// Emitter 发射体实体
	Emitter ecs.EntityID
}
