package systems

import (
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/basicfont"

	"github.com/decker502/flyscene/pkg/components"
	"github.com/decker502/flyscene/pkg/scene"
	"github.com/decker502/flyscene/pkg/utils"
)

// ellipseRowHeight 椭圆按水平条带近似绘制时每条的高度（像素）
const ellipseRowHeight = 2

// RenderSystem 把场景文档绘制到 Ebitengine 屏幕
//
// 每帧从文档取一次快照，按文档顺序（父元素在前）绘制：
//   - 背景节点：底色 + 随 backgroundPositionX 平移的地面条纹
//   - rect / ellipse：按合成后的不透明度填充
//   - Label 非空时在元素中心绘制文字
type RenderSystem struct {
	doc        *scene.Document
	face       text.Face
	showLabels bool
}

// NewRenderSystem 创建渲染系统
func NewRenderSystem(doc *scene.Document, showLabels bool) *RenderSystem {
	return &RenderSystem{
		doc:        doc,
		face:       text.NewGoXFace(basicfont.Face7x13),
		showLabels: showLabels,
	}
}

// SetDocument 切换绘制的文档（配置热重载后使用）
func (s *RenderSystem) SetDocument(doc *scene.Document) {
	s.doc = doc
}

// Draw 绘制当前帧
func (s *RenderSystem) Draw(screen *ebiten.Image) {
	for _, n := range s.doc.Snapshot() {
		s.drawNode(screen, n)
	}
}

func (s *RenderSystem) drawNode(screen *ebiten.Image, n scene.Node) {
	if n.Opacity <= 0 {
		return
	}
	fill := utils.FadeColor(n.Fill, n.Opacity)

	switch {
	case n.IsBackground:
		fillRect(screen, n.X, n.Y, n.Width, n.Height, fill)
		stripe := utils.FadeColor(n.Stripe, n.Opacity)
		top := n.Y + n.HorizonY
		h := n.Y + n.Height - top
		for _, span := range n.StripeSpans() {
			fillRect(screen, n.X+span[0], top, span[1]-span[0], h, stripe)
		}
	case n.Shape == components.ShapeRect:
		fillRect(screen, n.X, n.Y, n.Width, n.Height, fill)
	case n.Shape == components.ShapeEllipse:
		fillEllipse(screen, n.X, n.Y, n.Width, n.Height, fill)
	}

	if s.showLabels && n.Label != "" {
		op := &text.DrawOptions{}
		op.LayoutOptions.PrimaryAlign = text.AlignCenter
		op.LayoutOptions.SecondaryAlign = text.AlignCenter
		op.GeoM.Translate(n.X+n.Width/2, n.Y+n.Height/2)
		op.ColorScale.ScaleWithColor(utils.FadeColor(color.RGBA{A: 0xff}, n.Opacity))
		text.Draw(screen, n.Label, s.face, op)
	}
}

func fillRect(screen *ebiten.Image, x, y, w, h float64, clr color.Color) {
	if w <= 0 || h <= 0 {
		return
	}
	vector.DrawFilledRect(screen, float32(x), float32(y), float32(w), float32(h), clr, true)
}

func fillEllipse(screen *ebiten.Image, x, y, w, h float64, clr color.Color) {
	if w <= 0 || h <= 0 {
		return
	}
	// 接近正圆时直接画圆
	if math.Abs(w-h) < 1 {
		vector.DrawFilledCircle(screen, float32(x+w/2), float32(y+h/2), float32(w/2), clr, true)
		return
	}
	for _, row := range EllipseRows(x, y, w, h, ellipseRowHeight) {
		fillRect(screen, row.X, row.Y, row.Width, row.Height, clr)
	}
}

// Row 一条水平填充区间
type Row struct {
	X, Y, Width, Height float64
}

// EllipseRows 把椭圆分解为高度为 step 的水平条带
func EllipseRows(x, y, w, h, step float64) []Row {
	if w <= 0 || h <= 0 || step <= 0 {
		return nil
	}
	rx, ry := w/2, h/2
	cx := x + rx

	rows := make([]Row, 0, int(math.Ceil(h/step)))
	for top := 0.0; top < h; top += step {
		height := math.Min(step, h-top)
		// 条带中线到椭圆中心的纵向距离
		dy := (top + height/2) - ry
		ratio := 1 - (dy*dy)/(ry*ry)
		if ratio <= 0 {
			continue
		}
		half := rx * math.Sqrt(ratio)
		rows = append(rows, Row{X: cx - half, Y: y + top, Width: 2 * half, Height: height})
	}
	return rows
}
