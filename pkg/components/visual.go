package components

import "image/color"

// ShapeKind 元素的绘制形状
type ShapeKind int

const (
	// ShapeNone 纯容器，不绘制自身（如镜头节点）
	ShapeNone ShapeKind = iota
	// ShapeRect 矩形
	ShapeRect
	// ShapeEllipse 椭圆（云朵、粒子）
	ShapeEllipse
)

// ParseShapeKind 把配置中的形状名转换为 ShapeKind
func ParseShapeKind(name string) (ShapeKind, bool) {
	switch name {
	case "", "none":
		return ShapeNone, true
	case "rect":
		return ShapeRect, true
	case "ellipse":
		return ShapeEllipse, true
	}
	return ShapeNone, false
}

// VisualComponent 元素外观
//
// Visible 对应显示开关（隐藏时整棵子树都不绘制），
// Opacity 始终保持在 [0, 1] 内。
type VisualComponent struct {
	Width   float64
	Height  float64
	Fill    color.RGBA
	Shape   ShapeKind
	Opacity float64
	Visible bool

	// Label 窗口渲染时绘制在元素上的文字
	Label string
	// Glyph 终端预览使用的字符
	Glyph rune
}
