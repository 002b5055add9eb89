package sequencer

import (
	"log"

	"github.com/decker502/flyscene/internal/tween"
)

// 背景滚动的阶段标签
const (
	TagCar            = "car"
	TagVehicleTakeoff = "vehicle-takeoff"
	TagVehicleFlight  = "vehicle-flight"
)

// speedDivisors 阶段标签对应的速度除数：背景偏移 = -参考位置 / 除数
var speedDivisors = map[string]float64{
	TagCar:            2,
	TagVehicleTakeoff: 1,
	TagVehicleFlight:  0.5,
}

const (
	// backgroundRetarget 每帧重新设定背景目标时的补间时长
	backgroundRetarget = 0.1
	// parallaxShift 视差进度为 1 时单次追加的偏移
	parallaxShift = 200
	cameraSettle  = 0.3
	cameraReset   = 1
)

// updateBackground 根据参考位置重新设定背景偏移
// 未知标签不做任何事，返回 false。
func (s *Sequencer) updateBackground(position float64, tag string) bool {
	divisor, ok := speedDivisors[tag]
	if !ok {
		return false
	}
	s.engine.To(s.roles.targets(RoleBackground), tween.Vars{
		Props:    tween.Props{tween.PropBackgroundX: tween.Abs(-position / divisor)},
		Duration: backgroundRetarget,
		Ease:     "none",
	})
	return true
}

// parallaxProgress 车在停靠点与 ParallaxEnd 之间的进度
func (s *Sequencer) parallaxProgress() float64 {
	carX := s.engine.GetProperty(s.roles.Car, tween.PropX)
	span := s.layout.ParallaxEnd - s.layout.CarStop
	if span == 0 {
		return 0
	}
	return (carX - s.layout.CarStop) / span
}

// updateBackgroundParallax 车驶离时按进度追加背景偏移
func (s *Sequencer) updateBackgroundParallax() {
	progress := s.parallaxProgress()
	s.engine.To(s.roles.targets(RoleBackground), tween.Vars{
		Props:    tween.Props{tween.PropBackgroundX: tween.By(-progress * parallaxShift)},
		Duration: backgroundRetarget,
		Ease:     "none",
	})
}

// cameraTarget 使飞行器与车的中点位于视口水平中心的镜头偏移
func (s *Sequencer) cameraTarget() float64 {
	vehicleX := s.engine.GetProperty(s.roles.Vehicle, tween.PropX)
	carX := s.engine.GetProperty(s.roles.Car, tween.PropX)
	midpoint := (vehicleX + carX) / 2
	return -midpoint + s.layout.ViewportW/2
}

// moveCamera 平移场景容器，跟随飞行器与车的中点
func (s *Sequencer) moveCamera() {
	s.engine.To(s.roles.targets(RoleScene), tween.Vars{
		Props:    tween.Props{tween.PropX: tween.Abs(s.cameraTarget())},
		Duration: cameraSettle,
		Ease:     "power2.out",
	})
}

// resetCamera 镜头回到原点
func (s *Sequencer) resetCamera() {
	s.engine.To(s.roles.targets(RoleScene), tween.Vars{
		Props:    tween.Props{tween.PropX: tween.Abs(0)},
		Duration: cameraReset,
		Ease:     "power2.inOut",
	})
}

// stopBackgroundMovement 取消所有进行中的背景偏移补间，背景停在当前值
func (s *Sequencer) stopBackgroundMovement() int {
	n := s.engine.KillTweensOf(s.roles.Background, tween.PropBackgroundX)
	log.Printf("[Sequencer] Background frozen (%d tweens cancelled)", n)
	return n
}
