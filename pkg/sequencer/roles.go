package sequencer

import (
	"github.com/decker502/flyscene/internal/tween"
	"github.com/decker502/flyscene/pkg/config"
	"github.com/decker502/flyscene/pkg/scene"
)

// Role 元素在场景中的角色
type Role string

const (
	RoleCar             Role = "car"
	RoleCharacter       Role = "character"
	RoleVehicle         Role = "vehicle"
	RoleDecorativeImage Role = "decorativeImage"
	RoleScene           Role = "scene"
	RoleBackground      Role = "background"
	RoleClouds          Role = "clouds"
)

// Roles 按角色解析出的元素句柄（不持有所有权，元素属于文档）
type Roles struct {
	Car             *scene.Element
	Character       *scene.Element
	Vehicle         *scene.Element
	DecorativeImage *scene.Element
	Scene           *scene.Element // 镜头平移的容器
	Background      *scene.Element // 带条纹背景的节点
	Clouds          []*scene.Element
}

// resolveRoles 按选择器查找所有角色
// 单元素角色取第一个匹配，找不到时返回 MissingElementError；云朵集合允许为空。
func resolveRoles(doc *scene.Document, rc config.RolesConfig) (Roles, error) {
	var r Roles
	singles := []struct {
		role     Role
		selector string
		dst      **scene.Element
	}{
		{RoleCar, rc.Car, &r.Car},
		{RoleCharacter, rc.Character, &r.Character},
		{RoleVehicle, rc.Vehicle, &r.Vehicle},
		{RoleDecorativeImage, rc.DecorativeImage, &r.DecorativeImage},
		{RoleScene, rc.Scene, &r.Scene},
		{RoleBackground, rc.Background, &r.Background},
	}
	for _, s := range singles {
		found := doc.Query(s.selector)
		if len(found) == 0 {
			return Roles{}, &MissingElementError{Role: s.role, Selector: s.selector}
		}
		*s.dst = found[0]
	}
	r.Clouds = doc.Query(rc.Clouds)
	return r, nil
}

// targets 把角色列表转换为补间目标
func (r *Roles) targets(roles ...Role) []tween.Target {
	var out []tween.Target
	for _, role := range roles {
		switch role {
		case RoleCar:
			out = append(out, r.Car)
		case RoleCharacter:
			out = append(out, r.Character)
		case RoleVehicle:
			out = append(out, r.Vehicle)
		case RoleDecorativeImage:
			out = append(out, r.DecorativeImage)
		case RoleScene:
			out = append(out, r.Scene)
		case RoleBackground:
			out = append(out, r.Background)
		case RoleClouds:
			for _, c := range r.Clouds {
				out = append(out, c)
			}
		}
	}
	return out
}
