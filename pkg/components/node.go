package components

import "github.com/decker502/flyscene/pkg/ecs"

// NodeComponent 文档树中的节点信息
type NodeComponent struct {
	// ID 元素 ID（可为空，粒子等动态元素没有 ID）
	ID string
	// Classes 元素的类名列表，用于 ".cloud" 形式的查询
	Classes []string
	// Parent 父元素，0 表示根节点
	Parent ecs.EntityID
	// Children 子元素，按添加顺序
	Children []ecs.EntityID
}

// HasClass 是否包含指定类名
func (n *NodeComponent) HasClass(class string) bool {
	for _, c := range n.Classes {
		if c == class {
			return true
		}
	}
	return false
}
