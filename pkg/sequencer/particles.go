package sequencer

import (
	"fmt"
	"image/color"

	"golang.org/x/image/colornames"

	"github.com/decker502/flyscene/internal/tween"
	"github.com/decker502/flyscene/pkg/components"
	"github.com/decker502/flyscene/pkg/config"
	"github.com/decker502/flyscene/pkg/ecs"
	"github.com/decker502/flyscene/pkg/scene"
)

// ParticleKind 尾气粒子的发射体类型
type ParticleKind string

const (
	ParticleCar     ParticleKind = "car"
	ParticleVehicle ParticleKind = "vehicle"
)

// particleGlyph 终端预览中粒子的字符
const particleGlyph = '.'

func (s *Sequencer) batchConfig(kind ParticleKind) config.ParticleBatchConfig {
	if kind == ParticleCar {
		return s.cfg.Particles.Car
	}
	return s.cfg.Particles.Vehicle
}

// createParticles 启动时一次性创建两批粒子，之后不再增减
func (s *Sequencer) createParticles() error {
	for _, batch := range []struct {
		kind   ParticleKind
		parent *scene.Element
	}{
		{ParticleCar, s.roles.Car},
		{ParticleVehicle, s.roles.Vehicle},
	} {
		n := s.batchConfig(batch.kind).Count
		for i := 0; i < n; i++ {
			if _, err := s.createParticle(batch.parent, batch.kind); err != nil {
				return fmt.Errorf("failed to create %s particle %d: %w", batch.kind, i, err)
			}
		}
	}
	return nil
}

// createParticle 在 parent 下创建一个粒子并设置随机初始状态
func (s *Sequencer) createParticle(parent *scene.Element, kind ParticleKind) (*scene.Element, error) {
	bc := s.batchConfig(kind)

	fill := s.particleFill(bc)
	p, err := s.doc.CreateChild(parent, scene.Spec{
		Classes: []string{"particle", string(kind) + "-particle"},
		Shape:   components.ShapeEllipse,
		Width:   bc.Size,
		Height:  bc.Size,
		Fill:    fill,
		Glyph:   particleGlyph,
	})
	if err != nil {
		return nil, err
	}
	ecs.AddComponent(s.doc.EntityManager(), p.Entity(), &components.ParticleComponent{
		Kind:    string(kind),
		Emitter: parent.Entity(),
	})

	s.engine.Set([]tween.Target{p}, tween.Props{
		tween.PropX:       tween.Abs(bc.OffsetX),
		tween.PropY:       tween.Abs(s.rng.Range(bc.OffsetY.Min, bc.OffsetY.Max)),
		tween.PropOpacity: tween.Abs(s.rng.Range(bc.Opacity.Min, bc.Opacity.Max)),
		tween.PropScale:   tween.Abs(s.rng.Range(bc.Scale.Min, bc.Scale.Max)),
	})
	return p, nil
}

// animateParticles 为一批粒子启动无限循环的漂移补间
// 每批只启动一次，由发射体所在阶段的开始事件触发。
func (s *Sequencer) animateParticles(kind ParticleKind) {
	if s.particlesLive[kind] {
		return
	}
	s.particlesLive[kind] = true

	bc := s.batchConfig(kind)
	particles := s.Particles(kind)
	for _, p := range particles {
		t := s.engine.To([]tween.Target{p}, tween.Vars{
			Props: tween.Props{
				tween.PropX:       tween.By(-s.rng.Range(bc.Drift.Min, bc.Drift.Max)),
				tween.PropY:       tween.Abs(s.rng.Range(-bc.Jitter, bc.Jitter)),
				tween.PropOpacity: tween.Abs(0),
				tween.PropScale:   tween.Abs(0),
			},
			Duration: s.rng.Range(bc.BaseDuration*0.5, bc.BaseDuration),
			Ease:     "power1.out",
			Repeat:   tween.RepeatForever,
		})
		s.loops = append(s.loops, t)
	}
}

// particleFill 粒子颜色，未配置时使用浅灰
func (s *Sequencer) particleFill(bc config.ParticleBatchConfig) color.RGBA {
	if bc.Color == "" {
		return colornames.Lightgray
	}
	c, err := config.ParseColor(bc.Color)
	if err != nil {
		return colornames.Lightgray
	}
	return c
}
