package utils

import (
	"image/color"
	"math"
)

// FadeColor 按不透明度缩放颜色（预乘 alpha）
// opacity 超出 [0, 1] 时按边界处理。
func FadeColor(c color.RGBA, opacity float64) color.RGBA {
	if opacity >= 1 {
		return c
	}
	if opacity <= 0 {
		return color.RGBA{}
	}
	scale := func(v uint8) uint8 { return uint8(math.Round(float64(v) * opacity)) }
	return color.RGBA{R: scale(c.R), G: scale(c.G), B: scale(c.B), A: scale(c.A)}
}
