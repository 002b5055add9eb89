package config

// DefaultSceneConfig 内置默认配置（与 data/scene.yaml 保持一致）
//
// 解析配置文件时以它为底，文件只需写出要覆盖的字段。
func DefaultSceneConfig() *SceneConfig {
	return &SceneConfig{
		Viewport: ViewportConfig{Width: 1280, Height: 720, Title: "Fly Away"},
		Layout: LayoutConfig{
			CarStartX:        -150,
			CarStopInset:     550,
			CharacterInset:   400,
			CharacterDoorGap: 40,
			VehicleInsetX:    430,
			VehicleInsetY:    500,
			BoardingOffsetX:  180,
			ExitOvershoot:    300,
		},
		Clouds: CloudConfig{
			Rise:     20,
			Duration: Range{Min: 10, Max: 20},
		},
		Particles: ParticlesConfig{
			Car: ParticleBatchConfig{
				Count:        10,
				BaseDuration: 1,
				OffsetX:      -10,
				OffsetY:      Range{Min: 0, Max: 10},
				Opacity:      Range{Min: 0.3, Max: 0.7},
				Scale:        Range{Min: 0.5, Max: 1},
				Drift:        Range{Min: 50, Max: 100},
				Jitter:       20,
				Size:         8,
				Color:        "lightgray",
			},
			Vehicle: ParticleBatchConfig{
				Count:        20,
				BaseDuration: 0.5,
				OffsetX:      -30,
				OffsetY:      Range{Min: -10, Max: 10},
				Opacity:      Range{Min: 0.3, Max: 0.7},
				Scale:        Range{Min: 0.5, Max: 1},
				Drift:        Range{Min: 50, Max: 100},
				Jitter:       20,
				Size:         10,
				Color:        "whitesmoke",
			},
		},
		Roles: RolesConfig{
			Car:             "#car",
			Character:       "#character",
			Vehicle:         "#plane",
			DecorativeImage: "#banner",
			Scene:           "#scene",
			Background:      "#sky",
			Clouds:          ".cloud",
		},
		Background: BackgroundConfig{
			Stripe:        "#5d8a3a",
			StripeWidth:   40,
			HorizonY:      560,
			InitialOffset: 0,
		},
		Elements: []ElementConfig{
			{ID: "sky", Shape: "rect", Width: 1280, Height: 720, Color: "skyblue", Glyph: " "},
			{Parent: "sky", Classes: []string{"cloud"}, Shape: "ellipse", X: 120, Y: 80, Width: 160, Height: 60, Color: "white", Glyph: "~"},
			{Parent: "sky", Classes: []string{"cloud"}, Shape: "ellipse", X: 520, Y: 140, Width: 200, Height: 70, Color: "white", Glyph: "~"},
			{Parent: "sky", Classes: []string{"cloud"}, Shape: "ellipse", X: 940, Y: 60, Width: 140, Height: 50, Color: "white", Glyph: "~"},
			{ID: "scene", Parent: "sky", Shape: "none"},
			{ID: "car", Parent: "scene", Shape: "rect", Y: 500, Width: 120, Height: 60, Color: "crimson", Label: "CAR", Glyph: "C"},
			{ID: "character", Parent: "scene", Shape: "rect", Y: 500, Width: 24, Height: 60, Color: "navy", Glyph: "@"},
			{ID: "plane", Parent: "scene", Shape: "rect", Width: 180, Height: 50, Color: "silver", Label: "PLANE", Glyph: ">"},
			{ID: "banner", Parent: "sky", Shape: "rect", X: 460, Y: 260, Width: 360, Height: 120, Color: "gold", Label: "Bon voyage!", Glyph: "#"},
		},
	}
}
