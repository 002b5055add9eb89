// Package termview 在终端中以字符画预览场景
//
// 快照先被栅格化为 Cell 网格（纯数据，便于测试），再写入 tcell.Screen。
// 视口按比例缩放到终端尺寸，最后一行留给状态栏。
package termview

import (
	"image/color"
	"math"

	"github.com/gdamore/tcell/v2"

	"github.com/decker502/flyscene/pkg/components"
	"github.com/decker502/flyscene/pkg/scene"
)

// minVisibleOpacity 低于此不透明度的元素不输出字符
const minVisibleOpacity = 0.25

// Cell 终端中的一个字符格
type Cell struct {
	Rune rune
	Fg   color.RGBA
	Bg   color.RGBA
}

// Grid 字符网格，按行存储
type Grid struct {
	Cols  int
	Rows  int
	Cells []Cell
}

// At 返回 (x, y) 处的字符格
func (g *Grid) At(x, y int) Cell {
	return g.Cells[y*g.Cols+x]
}

func (g *Grid) cell(x, y int) *Cell {
	if x < 0 || y < 0 || x >= g.Cols || y >= g.Rows {
		return nil
	}
	return &g.Cells[y*g.Cols+x]
}

// Rasterize 把快照缩放绘制到 cols×rows 的字符网格
func Rasterize(nodes []scene.Node, viewportW, viewportH float64, cols, rows int) *Grid {
	g := &Grid{Cols: cols, Rows: rows, Cells: make([]Cell, cols*rows)}
	for i := range g.Cells {
		g.Cells[i] = Cell{Rune: ' '}
	}
	if cols <= 0 || rows <= 0 || viewportW <= 0 || viewportH <= 0 {
		return g
	}
	sx := float64(cols) / viewportW
	sy := float64(rows) / viewportH

	for _, n := range nodes {
		if n.Opacity < minVisibleOpacity {
			continue
		}
		x0, y0, x1, y1 := cellBounds(n.X, n.Y, n.Width, n.Height, sx, sy)

		if n.IsBackground {
			horizon := int(math.Floor((n.Y + n.HorizonY) * sy))
			for y := y0; y < y1; y++ {
				for x := x0; x < x1; x++ {
					if c := g.cell(x, y); c != nil {
						c.Rune = ' '
						c.Bg = n.Fill
					}
				}
			}
			for _, span := range n.StripeSpans() {
				sx0, _, sx1, _ := cellBounds(n.X+span[0], 0, span[1]-span[0], 0, sx, sy)
				for y := max(y0, horizon); y < y1; y++ {
					for x := sx0; x < sx1; x++ {
						if c := g.cell(x, y); c != nil {
							c.Bg = n.Stripe
						}
					}
				}
			}
			continue
		}

		glyph := n.Glyph
		if glyph == 0 {
			glyph = '#'
		}
		for y := y0; y < y1; y++ {
			for x := x0; x < x1; x++ {
				if n.Shape == components.ShapeEllipse && !insideEllipse(x, y, n, sx, sy) {
					continue
				}
				c := g.cell(x, y)
				if c == nil {
					continue
				}
				c.Rune = glyph
				c.Fg = n.Fill
			}
		}
	}
	return g
}

// cellBounds 把像素矩形映射为字符格区间 [x0, x1) × [y0, y1)，至少占一格
func cellBounds(x, y, w, h, sx, sy float64) (int, int, int, int) {
	x0 := int(math.Floor(x * sx))
	y0 := int(math.Floor(y * sy))
	x1 := int(math.Ceil((x + w) * sx))
	y1 := int(math.Ceil((y + h) * sy))
	if x1 <= x0 {
		x1 = x0 + 1
	}
	if y1 <= y0 {
		y1 = y0 + 1
	}
	return x0, y0, x1, y1
}

func insideEllipse(cx, cy int, n scene.Node, sx, sy float64) bool {
	// 字符格中心换算回像素坐标
	px := (float64(cx) + 0.5) / sx
	py := (float64(cy) + 0.5) / sy
	rx, ry := n.Width/2, n.Height/2
	if rx <= 0 || ry <= 0 {
		return true
	}
	dx := (px - (n.X + rx)) / rx
	dy := (py - (n.Y + ry)) / ry
	// 小元素在粗网格上容易整体落空，放宽到外接矩形
	if n.Width*sx < 2 || n.Height*sy < 2 {
		return true
	}
	return dx*dx+dy*dy <= 1
}

func toTcell(c color.RGBA) tcell.Color {
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}

// Draw 把网格写入 tcell 屏幕（不调用 Show）
func Draw(screen tcell.Screen, g *Grid) {
	for y := 0; y < g.Rows; y++ {
		for x := 0; x < g.Cols; x++ {
			c := g.At(x, y)
			style := tcell.StyleDefault.Foreground(toTcell(c.Fg)).Background(toTcell(c.Bg))
			screen.SetContent(x, y, c.Rune, nil, style)
		}
	}
}

// DrawStatus 在指定行写入状态文字（超出宽度的部分被截断）
func DrawStatus(screen tcell.Screen, row int, status string) {
	cols, _ := screen.Size()
	style := tcell.StyleDefault.Reverse(true)
	x := 0
	for _, r := range status {
		if x >= cols {
			break
		}
		screen.SetContent(x, row, r, nil, style)
		x++
	}
	for ; x < cols; x++ {
		screen.SetContent(x, row, ' ', nil, style)
	}
}
