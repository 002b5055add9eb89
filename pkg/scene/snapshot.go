package scene

import (
	"image/color"
	"math"

	"github.com/decker502/flyscene/pkg/components"
)

// Node 某一帧中一个可见元素的绘制数据（视口坐标，已合成层级）
//
// Node 是纯值，可以安全地交给其他 goroutine 编码或输出。
type Node struct {
	ID      string
	Depth   int
	Shape   components.ShapeKind
	X       float64 // 左上角
	Y       float64
	Width   float64
	Height  float64
	Fill    color.RGBA
	Opacity float64 // 已乘上所有祖先的不透明度
	Label   string
	Glyph   rune

	// 背景元素才有的字段
	IsBackground bool
	BackgroundX  float64
	Stripe       color.RGBA
	StripeWidth  float64
	HorizonY     float64
}

// Snapshot 按绘制顺序（文档顺序）返回所有可见元素
//
// 隐藏元素的整棵子树都会跳过；位置逐级累加父元素平移，
// 缩放只作用于元素自身，以元素中心为原点。
func (d *Document) Snapshot() []Node {
	type frame struct {
		x, y, opacity float64
	}
	acc := make(map[*Element]frame, d.em.Count())

	out := make([]Node, 0, d.em.Count())
	d.walk(func(el *Element, depth int) bool {
		vis := el.visual()
		if !vis.Visible {
			return false
		}
		base := frame{opacity: 1}
		if p := el.Parent(); p != nil {
			base = acc[p]
		}
		tr := el.transform()
		f := frame{
			x:       base.x + tr.X,
			y:       base.y + tr.Y,
			opacity: base.opacity * vis.Opacity,
		}
		acc[el] = f

		bg := el.Background()
		if vis.Shape == components.ShapeNone && bg == nil {
			return true
		}

		w := vis.Width * tr.Scale
		h := vis.Height * tr.Scale
		n := Node{
			ID:      el.ID(),
			Depth:   depth,
			Shape:   vis.Shape,
			X:       f.x + (vis.Width-w)/2,
			Y:       f.y + (vis.Height-h)/2,
			Width:   w,
			Height:  h,
			Fill:    vis.Fill,
			Opacity: f.opacity,
			Label:   vis.Label,
			Glyph:   vis.Glyph,
		}
		if bg != nil {
			n.IsBackground = true
			n.BackgroundX = bg.PositionX
			n.Stripe = bg.Stripe
			n.StripeWidth = bg.StripeWidth
			n.HorizonY = bg.HorizonY
		}
		out = append(out, n)
		return true
	})
	return out
}

// StripeSpans 背景条纹在元素内的横向区间 [left, right)（相对元素左边缘，已裁剪到元素宽度）
//
// 条纹宽度与间隔都是 StripeWidth，整体随 BackgroundX 平移。
func (n Node) StripeSpans() [][2]float64 {
	if !n.IsBackground || n.StripeWidth <= 0 || n.Width <= 0 {
		return nil
	}
	period := 2 * n.StripeWidth
	offset := math.Mod(n.BackgroundX, period)
	if offset > 0 {
		offset -= period
	}

	var spans [][2]float64
	for left := offset; left < n.Width; left += period {
		l := math.Max(0, left)
		r := math.Min(n.Width, left+n.StripeWidth)
		if r > l {
			spans = append(spans, [2]float64{l, r})
		}
	}
	return spans
}
