package framedump

import (
	"image"
	"image/color"
	"image/draw"
	"math"

	"golang.org/x/image/colornames"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
	"golang.org/x/image/vector"

	"github.com/decker502/flyscene/pkg/components"
	"github.com/decker502/flyscene/pkg/scene"
	"github.com/decker502/flyscene/pkg/utils"
)

// 三次贝塞尔近似四分之一圆的控制点系数
const kappa = 0.5522847498

// RenderImage 把一帧快照光栅化为 w×h 的 RGBA 图像
//
// 不依赖图形上下文，可以在任意 goroutine 中调用。
func RenderImage(nodes []scene.Node, w, h int, labels bool) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), image.NewUniform(colornames.Whitesmoke), image.Point{}, draw.Src)

	r := vector.NewRasterizer(w, h)
	for _, n := range nodes {
		if n.Opacity <= 0 || n.Width <= 0 || n.Height <= 0 {
			continue
		}
		drawNode(img, r, n, labels)
	}
	return img
}

func drawNode(img *image.RGBA, r *vector.Rasterizer, n scene.Node, labels bool) {
	switch {
	case n.IsBackground:
		fillRect(img, r, n.X, n.Y, n.Width, n.Height, utils.FadeColor(n.Fill, n.Opacity))
		top := math.Max(n.Y, n.HorizonY)
		bottom := n.Y + n.Height
		if bottom <= top {
			return
		}
		stripe := utils.FadeColor(n.Stripe, n.Opacity)
		for _, span := range n.StripeSpans() {
			fillRect(img, r, n.X+span[0], top, span[1]-span[0], bottom-top, stripe)
		}
	case n.Shape == components.ShapeRect:
		fillRect(img, r, n.X, n.Y, n.Width, n.Height, utils.FadeColor(n.Fill, n.Opacity))
	case n.Shape == components.ShapeEllipse:
		fillEllipse(img, r, n.X, n.Y, n.Width, n.Height, utils.FadeColor(n.Fill, n.Opacity))
	}

	if labels && n.Label != "" {
		drawLabel(img, n)
	}
}

// fillRect 先裁剪到图像范围再光栅化
func fillRect(img *image.RGBA, r *vector.Rasterizer, x, y, w, h float64, c color.RGBA) {
	b := img.Bounds()
	x0 := math.Max(x, float64(b.Min.X))
	y0 := math.Max(y, float64(b.Min.Y))
	x1 := math.Min(x+w, float64(b.Max.X))
	y1 := math.Min(y+h, float64(b.Max.Y))
	if x1 <= x0 || y1 <= y0 || c.A == 0 {
		return
	}

	r.Reset(b.Dx(), b.Dy())
	r.MoveTo(float32(x0), float32(y0))
	r.LineTo(float32(x1), float32(y0))
	r.LineTo(float32(x1), float32(y1))
	r.LineTo(float32(x0), float32(y1))
	r.ClosePath()
	r.Draw(img, b, image.NewUniform(c), image.Point{})
}

// fillEllipse 用四段三次贝塞尔曲线描出椭圆
func fillEllipse(img *image.RGBA, r *vector.Rasterizer, x, y, w, h float64, c color.RGBA) {
	b := img.Bounds()
	if x+w <= float64(b.Min.X) || y+h <= float64(b.Min.Y) ||
		x >= float64(b.Max.X) || y >= float64(b.Max.Y) || c.A == 0 {
		return
	}

	cx, cy := float32(x+w/2), float32(y+h/2)
	rx, ry := float32(w/2), float32(h/2)
	kx, ky := float32(kappa)*rx, float32(kappa)*ry

	r.Reset(b.Dx(), b.Dy())
	r.MoveTo(cx+rx, cy)
	r.CubeTo(cx+rx, cy+ky, cx+kx, cy+ry, cx, cy+ry)
	r.CubeTo(cx-kx, cy+ry, cx-rx, cy+ky, cx-rx, cy)
	r.CubeTo(cx-rx, cy-ky, cx-kx, cy-ry, cx, cy-ry)
	r.CubeTo(cx+kx, cy-ry, cx+rx, cy-ky, cx+rx, cy)
	r.ClosePath()
	r.Draw(img, b, image.NewUniform(c), image.Point{})
}

func drawLabel(img *image.RGBA, n scene.Node) {
	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(utils.FadeColor(color.RGBA{A: 0xff}, n.Opacity)),
		Face: basicfont.Face7x13,
	}
	adv := d.MeasureString(n.Label)
	cx := n.X + n.Width/2
	cy := n.Y + n.Height/2
	// basicfont 基线在顶端下方 11 像素，字高 13
	d.Dot = fixed.Point26_6{
		X: fixed.I(int(math.Round(cx))) - adv/2,
		Y: fixed.I(int(math.Round(cy - 13.0/2 + 11))),
	}
	d.DrawString(n.Label)
}
