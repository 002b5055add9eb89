package sequencer

import "github.com/decker502/flyscene/pkg/config"

// Viewport 视口尺寸，只在构造时读取一次
type Viewport struct {
	Width  float64
	Height float64
}

// Layout 由视口尺寸推导出的关键坐标，构造后不再变化
//
// 视口尺寸之后的变化不会反映到这里；需要新布局时重新构造 Sequencer。
type Layout struct {
	ViewportW float64
	ViewportH float64

	// CarStartX 车的起始X（屏幕外）
	CarStartX float64
	// CarStop 车停下的位置
	CarStop float64
	// CharacterX 角色出现位置
	CharacterX float64
	// CharacterStartX 角色初始X（车门旁）
	CharacterStartX float64
	// VehicleX / VehicleY 飞行器起始位置
	VehicleX float64
	VehicleY float64
	// BoardingX 角色步行的终点
	BoardingX float64
	// ParallaxEnd 最终驶离时视差进度为 1 的车位置
	ParallaxEnd float64
}

// ComputeLayout 根据视口和偏移量计算布局
//
//	1000x800 → CarStop 450, CharacterX 600, Vehicle (570, 300)
func ComputeLayout(vp Viewport, lc config.LayoutConfig) Layout {
	carStop := vp.Width - lc.CarStopInset
	vehicleX := vp.Width - lc.VehicleInsetX
	return Layout{
		ViewportW:       vp.Width,
		ViewportH:       vp.Height,
		CarStartX:       lc.CarStartX,
		CarStop:         carStop,
		CharacterX:      vp.Width - lc.CharacterInset,
		CharacterStartX: carStop - lc.CharacterDoorGap,
		VehicleX:        vehicleX,
		VehicleY:        vp.Height - lc.VehicleInsetY,
		BoardingX:       vehicleX + lc.BoardingOffsetX,
		ParallaxEnd:     vp.Width + lc.ExitOvershoot,
	}
}
