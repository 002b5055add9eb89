// Package scene 宿主文档：按 ID/类名查找元素、父子层级、可补间的样式属性
//
// 元素数据保存在 ecs.EntityManager 中，Element 是对实体的轻量句柄，
// 实现 tween.Target，补间引擎通过它读写 x/y/opacity/scale/display
// 以及背景的 backgroundPositionX。
package scene

import (
	"fmt"
	"image/color"
	"log"
	"strings"

	"github.com/decker502/flyscene/pkg/components"
	"github.com/decker502/flyscene/pkg/config"
	"github.com/decker502/flyscene/pkg/ecs"
)

// Spec 创建元素时的初始数据
type Spec struct {
	ID      string
	Classes []string
	Shape   components.ShapeKind
	X       float64
	Y       float64
	Width   float64
	Height  float64
	Fill    color.RGBA
	Label   string
	Glyph   rune
	// Opacity 初始不透明度，零值视为 1
	Opacity float64
	// Hidden 初始隐藏
	Hidden bool
}

// Document 场景文档
type Document struct {
	em     *ecs.EntityManager
	width  float64
	height float64
	byID   map[string]ecs.EntityID
	// handles 每个实体只对应一个句柄，保证同一元素的句柄可以直接比较
	handles map[ecs.EntityID]*Element
}

// NewDocument 创建空文档，width/height 为视口尺寸
func NewDocument(width, height float64) *Document {
	return &Document{
		em:      ecs.NewEntityManager(),
		width:   width,
		height:  height,
		byID:    make(map[string]ecs.EntityID),
		handles: make(map[ecs.EntityID]*Element),
	}
}

// NewDocumentFromConfig 根据配置构建文档
//
// 元素按声明顺序创建（父元素必须先声明），
// 背景角色对应的元素会额外挂上 BackgroundComponent。
func NewDocumentFromConfig(cfg *config.SceneConfig) (*Document, error) {
	doc := NewDocument(float64(cfg.Viewport.Width), float64(cfg.Viewport.Height))

	for i, ec := range cfg.Elements {
		spec, err := specFromConfig(ec)
		if err != nil {
			return nil, fmt.Errorf("element %d: %w", i, err)
		}
		if ec.Parent == "" {
			if _, err := doc.CreateElement(spec); err != nil {
				return nil, fmt.Errorf("element %d: %w", i, err)
			}
			continue
		}
		parent, ok := doc.ByID(ec.Parent)
		if !ok {
			return nil, fmt.Errorf("element %d: parent %q not found", i, ec.Parent)
		}
		if _, err := doc.CreateChild(parent, spec); err != nil {
			return nil, fmt.Errorf("element %d: %w", i, err)
		}
	}

	stripe, err := config.ParseColor(cfg.Background.Stripe)
	if err != nil {
		return nil, fmt.Errorf("background stripe: %w", err)
	}
	for _, el := range doc.Query(cfg.Roles.Background) {
		bg := &components.BackgroundComponent{
			PositionX:   cfg.Background.InitialOffset,
			Stripe:      stripe,
			StripeWidth: cfg.Background.StripeWidth,
			HorizonY:    cfg.Background.HorizonY,
		}
		ecs.AddComponent(doc.em, el.id, bg)
	}

	log.Printf("[Scene] Document built: %d elements", doc.em.Count())
	return doc, nil
}

func specFromConfig(ec config.ElementConfig) (Spec, error) {
	shape, ok := components.ParseShapeKind(ec.Shape)
	if !ok {
		return Spec{}, fmt.Errorf("unknown shape %q", ec.Shape)
	}
	spec := Spec{
		ID:      ec.ID,
		Classes: append([]string(nil), ec.Classes...),
		Shape:   shape,
		X:       ec.X,
		Y:       ec.Y,
		Width:   ec.Width,
		Height:  ec.Height,
		Label:   ec.Label,
	}
	if ec.Color != "" {
		fill, err := config.ParseColor(ec.Color)
		if err != nil {
			return Spec{}, err
		}
		spec.Fill = fill
	}
	if g := []rune(ec.Glyph); len(g) > 0 {
		spec.Glyph = g[0]
	}
	return spec, nil
}

// Width 视口宽度
func (d *Document) Width() float64 { return d.width }

// Height 视口高度
func (d *Document) Height() float64 { return d.height }

// EntityManager 底层实体存储（渲染系统使用）
func (d *Document) EntityManager() *ecs.EntityManager { return d.em }

// CreateElement 创建顶层元素
func (d *Document) CreateElement(spec Spec) (*Element, error) {
	return d.create(0, spec)
}

// CreateChild 在 parent 下创建子元素（追加到子元素列表末尾）
func (d *Document) CreateChild(parent *Element, spec Spec) (*Element, error) {
	if parent == nil || parent.doc != d {
		return nil, fmt.Errorf("parent element does not belong to this document")
	}
	return d.create(parent.id, spec)
}

func (d *Document) create(parent ecs.EntityID, spec Spec) (*Element, error) {
	if spec.ID != "" {
		if _, exists := d.byID[spec.ID]; exists {
			return nil, fmt.Errorf("duplicate element id %q", spec.ID)
		}
	}

	opacity := spec.Opacity
	if opacity == 0 {
		opacity = 1
	}

	id := d.em.CreateEntity()
	node := &components.NodeComponent{ID: spec.ID, Classes: append([]string(nil), spec.Classes...), Parent: parent}
	tr := &components.TransformComponent{X: spec.X, Y: spec.Y, Scale: 1}
	vis := &components.VisualComponent{
		Width:   spec.Width,
		Height:  spec.Height,
		Fill:    spec.Fill,
		Shape:   spec.Shape,
		Opacity: opacity,
		Visible: !spec.Hidden,
		Label:   spec.Label,
		Glyph:   spec.Glyph,
	}
	ecs.AddComponent(d.em, id, node)
	ecs.AddComponent(d.em, id, tr)
	ecs.AddComponent(d.em, id, vis)

	el := &Element{doc: d, id: id}
	d.handles[id] = el
	if spec.ID != "" {
		d.byID[spec.ID] = id
	}

	if parent != 0 {
		p := d.handles[parent].node()
		p.Children = append(p.Children, id)
	}
	return el, nil
}

// Element 实体对应的句柄；实体不存在（包括 0）时返回 false
func (d *Document) Element(id ecs.EntityID) (*Element, bool) {
	if !d.em.Exists(id) {
		return nil, false
	}
	el, ok := d.handles[id]
	return el, ok
}

// roots 顶层元素（创建顺序）
func (d *Document) roots() []ecs.EntityID {
	var out []ecs.EntityID
	for _, id := range ecs.GetEntitiesWith2[*components.NodeComponent, *components.VisualComponent](d.em) {
		if n, _ := ecs.GetComponent[*components.NodeComponent](d.em, id); n.Parent == 0 {
			out = append(out, id)
		}
	}
	return out
}

// ByID 按 ID 查找元素
func (d *Document) ByID(id string) (*Element, bool) {
	eid, ok := d.byID[id]
	if !ok {
		return nil, false
	}
	return d.Element(eid)
}

// QueryClass 按类名查找元素（文档顺序）
func (d *Document) QueryClass(class string) []*Element {
	var out []*Element
	d.walk(func(el *Element, _ int) bool {
		if el.HasClass(class) {
			out = append(out, el)
		}
		return true
	})
	return out
}

// Query 支持 "#id" 和 ".class" 两种选择器
func (d *Document) Query(selector string) []*Element {
	selector = strings.TrimSpace(selector)
	switch {
	case strings.HasPrefix(selector, "#"):
		if el, ok := d.ByID(selector[1:]); ok {
			return []*Element{el}
		}
		return nil
	case strings.HasPrefix(selector, "."):
		return d.QueryClass(selector[1:])
	}
	return nil
}

// Elements 文档顺序（深度优先，子元素按添加顺序）的全部元素
func (d *Document) Elements() []*Element {
	out := make([]*Element, 0, d.em.Count())
	d.walk(func(el *Element, _ int) bool {
		out = append(out, el)
		return true
	})
	return out
}

// walk 深度优先遍历；fn 返回 false 时跳过该元素的子树
func (d *Document) walk(fn func(el *Element, depth int) bool) {
	var visit func(id ecs.EntityID, depth int)
	visit = func(id ecs.EntityID, depth int) {
		el, ok := d.Element(id)
		if !ok || !fn(el, depth) {
			return
		}
		for _, child := range el.node().Children {
			visit(child, depth+1)
		}
	}
	for _, root := range d.roots() {
		visit(root, 0)
	}
}
