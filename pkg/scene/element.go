package scene

import (
	"github.com/decker502/flyscene/internal/tween"
	"github.com/decker502/flyscene/pkg/components"
	"github.com/decker502/flyscene/pkg/ecs"
)

// Element 文档元素句柄，实现 tween.Target
//
// 句柄只记录实体 ID，位置、外观、层级等数据都从实体存储中读取。
type Element struct {
	doc *Document
	id  ecs.EntityID
}

var _ tween.Target = (*Element)(nil)

func (e *Element) node() *components.NodeComponent {
	c, _ := ecs.GetComponent[*components.NodeComponent](e.doc.em, e.id)
	return c
}

func (e *Element) transform() *components.TransformComponent {
	c, _ := ecs.GetComponent[*components.TransformComponent](e.doc.em, e.id)
	return c
}

func (e *Element) visual() *components.VisualComponent {
	c, _ := ecs.GetComponent[*components.VisualComponent](e.doc.em, e.id)
	return c
}

// Entity 对应的实体
func (e *Element) Entity() ecs.EntityID { return e.id }

// ID 元素 ID
func (e *Element) ID() string { return e.node().ID }

// Classes 类名列表
func (e *Element) Classes() []string { return e.node().Classes }

// HasClass 是否包含类名
func (e *Element) HasClass(class string) bool { return e.node().HasClass(class) }

// Parent 父元素，顶层元素返回 nil
func (e *Element) Parent() *Element {
	p, _ := e.doc.Element(e.node().Parent)
	return p
}

// Children 子元素（按添加顺序）
func (e *Element) Children() []*Element {
	ids := e.node().Children
	out := make([]*Element, 0, len(ids))
	for _, id := range ids {
		if el, ok := e.doc.Element(id); ok {
			out = append(out, el)
		}
	}
	return out
}

// Transform 位置与缩放
func (e *Element) Transform() *components.TransformComponent { return e.transform() }

// Visual 外观
func (e *Element) Visual() *components.VisualComponent { return e.visual() }

// Background 背景组件，非背景元素返回 nil
func (e *Element) Background() *components.BackgroundComponent {
	c, _ := ecs.GetComponent[*components.BackgroundComponent](e.doc.em, e.id)
	return c
}

// Visible 显示开关
func (e *Element) Visible() bool { return e.visual().Visible }

// GetProperty 实现 tween.Target
func (e *Element) GetProperty(name string) (float64, bool) {
	tr, vis := e.transform(), e.visual()
	switch name {
	case tween.PropX:
		return tr.X, true
	case tween.PropY:
		return tr.Y, true
	case tween.PropScale:
		return tr.Scale, true
	case tween.PropOpacity:
		return vis.Opacity, true
	case tween.PropDisplay:
		if vis.Visible {
			return 1, true
		}
		return 0, true
	case tween.PropBackgroundX:
		bg := e.Background()
		if bg == nil {
			return 0, false
		}
		return bg.PositionX, true
	}
	return 0, false
}

// SetProperty 实现 tween.Target
// opacity 和 scale 写入时限制在有效范围内。
func (e *Element) SetProperty(name string, value float64) {
	tr, vis := e.transform(), e.visual()
	switch name {
	case tween.PropX:
		tr.X = value
	case tween.PropY:
		tr.Y = value
	case tween.PropScale:
		tr.Scale = tween.ClampProperty(name, value)
	case tween.PropOpacity:
		vis.Opacity = tween.ClampProperty(name, value)
	case tween.PropDisplay:
		vis.Visible = value != 0
	case tween.PropBackgroundX:
		if bg := e.Background(); bg != nil {
			bg.PositionX = value
		}
	}
}
