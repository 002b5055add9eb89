package components

import "image/color"

// BackgroundComponent 可横向滚动的条纹背景
//
// PositionX 是背景图案的水平偏移（像素），由背景滚动/视差动画驱动。
type BackgroundComponent struct {
	PositionX   float64
	Stripe      color.RGBA
	StripeWidth float64
	// HorizonY 条纹区域的顶部（相对元素顶部）
	HorizonY float64
}
