package config

import (
	"fmt"
	"image/color"
	"log"
	"os"
	"strconv"
	"strings"

	"golang.org/x/image/colornames"
	"gopkg.in/yaml.v3"
)

// SceneConfig 场景配置
//
// 描述宿主文档（有哪些元素、层级、外观）、布局偏移量、
// 云朵与尾气粒子的随机范围，以及角色到元素选择器的映射。
// 动画脚本本身（八个阶段的时长与缓动）固定在代码中，不在配置里。
//
// 配置文件位置: data/scene.yaml
type SceneConfig struct {
	Viewport   ViewportConfig   `yaml:"viewport"`
	Layout     LayoutConfig     `yaml:"layout"`
	Clouds     CloudConfig      `yaml:"clouds"`
	Particles  ParticlesConfig  `yaml:"particles"`
	Roles      RolesConfig      `yaml:"roles"`
	Background BackgroundConfig `yaml:"background"`
	Elements   []ElementConfig  `yaml:"elements"`
}

// ViewportConfig 窗口尺寸（启动时读取一次，之后不再响应窗口变化）
type ViewportConfig struct {
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
	Title  string `yaml:"title"`
}

// LayoutConfig 布局偏移量（相对视口右边缘/下边缘）
type LayoutConfig struct {
	// CarStartX 车的起始X坐标（屏幕左侧之外）
	CarStartX float64 `yaml:"carStartX"`
	// CarStopInset 车停下的位置距视口右边缘的距离
	CarStopInset float64 `yaml:"carStopInset"`
	// CharacterInset 角色出现位置距视口右边缘的距离
	CharacterInset float64 `yaml:"characterInset"`
	// CharacterDoorGap 角色初始位置在车停靠点左侧的距离
	CharacterDoorGap float64 `yaml:"characterDoorGap"`
	// VehicleInsetX / VehicleInsetY 飞行器起始位置距视口右/下边缘的距离
	VehicleInsetX float64 `yaml:"vehicleInsetX"`
	VehicleInsetY float64 `yaml:"vehicleInsetY"`
	// BoardingOffsetX 角色走到飞行器X坐标右侧多少像素处登机
	BoardingOffsetX float64 `yaml:"boardingOffsetX"`
	// ExitOvershoot 车最终驶离时，视差进度的终点超出视口右边缘的距离
	ExitOvershoot float64 `yaml:"exitOvershoot"`
}

// Range 闭区间 [Min, Max]
type Range struct {
	Min float64 `yaml:"min"`
	Max float64 `yaml:"max"`
}

// CloudConfig 云朵漂浮动画
type CloudConfig struct {
	// Rise 每次漂浮的纵向位移
	Rise float64 `yaml:"rise"`
	// Duration 单程时长的随机范围（秒）
	Duration Range `yaml:"duration"`
}

// ParticleBatchConfig 一批尾气粒子
type ParticleBatchConfig struct {
	Count        int     `yaml:"count"`
	BaseDuration float64 `yaml:"baseDuration"`
	OffsetX      float64 `yaml:"offsetX"`
	OffsetY      Range   `yaml:"offsetY"`
	Opacity      Range   `yaml:"opacity"`
	Scale        Range   `yaml:"scale"`
	// Drift 每轮向左漂移的距离范围
	Drift Range `yaml:"drift"`
	// Jitter 纵向抖动幅度（±Jitter）
	Jitter float64 `yaml:"jitter"`
	Size   float64 `yaml:"size"`
	Color  string  `yaml:"color"`
}

// ParticlesConfig 车和飞行器的粒子配置
type ParticlesConfig struct {
	Car     ParticleBatchConfig `yaml:"car"`
	Vehicle ParticleBatchConfig `yaml:"vehicle"`
}

// RolesConfig 角色到元素选择器的映射（"#id" 或 ".class"）
type RolesConfig struct {
	Car             string `yaml:"car"`
	Character       string `yaml:"character"`
	Vehicle         string `yaml:"vehicle"`
	DecorativeImage string `yaml:"decorativeImage"`
	Scene           string `yaml:"scene"`
	Background      string `yaml:"background"`
	Clouds          string `yaml:"clouds"`
}

// BackgroundConfig 背景条纹
type BackgroundConfig struct {
	Stripe      string  `yaml:"stripe"`
	StripeWidth float64 `yaml:"stripeWidth"`
	HorizonY    float64 `yaml:"horizonY"`
	// InitialOffset 背景初始水平偏移（像素）
	InitialOffset float64 `yaml:"initialOffset"`
}

// ElementConfig 宿主文档中的一个元素
type ElementConfig struct {
	ID      string   `yaml:"id"`
	Parent  string   `yaml:"parent"`
	Classes []string `yaml:"classes"`
	Shape   string   `yaml:"shape"` // none | rect | ellipse
	X       float64  `yaml:"x"`
	Y       float64  `yaml:"y"`
	Width   float64  `yaml:"width"`
	Height  float64  `yaml:"height"`
	Color   string   `yaml:"color"`
	Label   string   `yaml:"label"`
	Glyph   string   `yaml:"glyph"`
}

// LoadSceneConfig 从文件加载场景配置
//
// 参数:
//   - path: 配置文件路径（如 "data/scene.yaml"）
//
// 返回:
//   - *SceneConfig: 加载并验证后的配置
//   - error: 读取、解析或验证失败
func LoadSceneConfig(path string) (*SceneConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scene config: %w", err)
	}
	cfg, err := ParseSceneConfig(data)
	if err != nil {
		return nil, err
	}
	log.Printf("[SceneConfig] Loaded %s (%d elements, viewport %dx%d)", path, len(cfg.Elements), cfg.Viewport.Width, cfg.Viewport.Height)
	return cfg, nil
}

// ParseSceneConfig 解析 YAML 数据
// 文件中未出现的字段保留 DefaultSceneConfig 的值；elements 一旦出现则整体替换。
func ParseSceneConfig(data []byte) (*SceneConfig, error) {
	cfg := DefaultSceneConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse scene config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid scene config: %w", err)
	}
	return cfg, nil
}

// Validate 验证配置有效性
func (c *SceneConfig) Validate() error {
	if c.Viewport.Width <= 0 || c.Viewport.Height <= 0 {
		return fmt.Errorf("viewport must be positive, got %dx%d", c.Viewport.Width, c.Viewport.Height)
	}

	if err := c.Clouds.Duration.validate("clouds.duration"); err != nil {
		return err
	}
	if c.Clouds.Duration.Min <= 0 {
		return fmt.Errorf("clouds.duration.min must be positive, got %.2f", c.Clouds.Duration.Min)
	}

	for name, batch := range map[string]ParticleBatchConfig{"car": c.Particles.Car, "vehicle": c.Particles.Vehicle} {
		if err := batch.validate("particles." + name); err != nil {
			return err
		}
	}

	roles := map[string]string{
		"car":             c.Roles.Car,
		"character":       c.Roles.Character,
		"vehicle":         c.Roles.Vehicle,
		"decorativeImage": c.Roles.DecorativeImage,
		"scene":           c.Roles.Scene,
		"background":      c.Roles.Background,
		"clouds":          c.Roles.Clouds,
	}
	for role, selector := range roles {
		if !strings.HasPrefix(selector, "#") && !strings.HasPrefix(selector, ".") {
			return fmt.Errorf("role %s: selector %q must start with '#' or '.'", role, selector)
		}
	}

	if _, err := ParseColor(c.Background.Stripe); err != nil {
		return fmt.Errorf("background.stripe: %w", err)
	}
	if c.Background.StripeWidth <= 0 {
		return fmt.Errorf("background.stripeWidth must be positive, got %.1f", c.Background.StripeWidth)
	}

	seen := make(map[string]bool, len(c.Elements))
	for i, el := range c.Elements {
		if el.ID != "" {
			if seen[el.ID] {
				return fmt.Errorf("elements[%d]: duplicate id %q", i, el.ID)
			}
			seen[el.ID] = true
		}
		if el.Parent != "" && !seen[el.Parent] {
			return fmt.Errorf("elements[%d]: parent %q must be declared before its children", i, el.Parent)
		}
		if el.Width < 0 || el.Height < 0 {
			return fmt.Errorf("elements[%d]: negative size %.1fx%.1f", i, el.Width, el.Height)
		}
		if el.Color != "" {
			if _, err := ParseColor(el.Color); err != nil {
				return fmt.Errorf("elements[%d]: %w", i, err)
			}
		}
		switch el.Shape {
		case "", "none", "rect", "ellipse":
		default:
			return fmt.Errorf("elements[%d]: unknown shape %q", i, el.Shape)
		}
	}

	return nil
}

func (r Range) validate(field string) error {
	if r.Min > r.Max {
		return fmt.Errorf("%s range invalid: min(%.2f) > max(%.2f)", field, r.Min, r.Max)
	}
	return nil
}

func (b ParticleBatchConfig) validate(field string) error {
	if b.Count < 0 {
		return fmt.Errorf("%s.count must be >= 0, got %d", field, b.Count)
	}
	if b.BaseDuration <= 0 {
		return fmt.Errorf("%s.baseDuration must be positive, got %.2f", field, b.BaseDuration)
	}
	for name, r := range map[string]Range{"offsetY": b.OffsetY, "opacity": b.Opacity, "scale": b.Scale, "drift": b.Drift} {
		if err := r.validate(field + "." + name); err != nil {
			return err
		}
	}
	if b.Opacity.Min < 0 || b.Opacity.Max > 1 {
		return fmt.Errorf("%s.opacity must stay within [0, 1], got [%.2f, %.2f]", field, b.Opacity.Min, b.Opacity.Max)
	}
	if b.Color != "" {
		if _, err := ParseColor(b.Color); err != nil {
			return fmt.Errorf("%s.color: %w", field, err)
		}
	}
	return nil
}

// ParseColor 解析颜色："#rrggbb"、"#rrggbbaa" 或 SVG 颜色名（如 "skyblue"）
func ParseColor(s string) (color.RGBA, error) {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "#") {
		hex := s[1:]
		if len(hex) != 6 && len(hex) != 8 {
			return color.RGBA{}, fmt.Errorf("invalid color %q", s)
		}
		v, err := strconv.ParseUint(hex, 16, 32)
		if err != nil {
			return color.RGBA{}, fmt.Errorf("invalid color %q: %w", s, err)
		}
		if len(hex) == 6 {
			return color.RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 0xff}, nil
		}
		return color.RGBA{R: uint8(v >> 24), G: uint8(v >> 16), B: uint8(v >> 8), A: uint8(v)}, nil
	}
	if c, ok := colornames.Map[strings.ToLower(s)]; ok {
		return c, nil
	}
	return color.RGBA{}, fmt.Errorf("unknown color %q", s)
}
