package utils

import (
	"math/rand"
	"time"
)

// RandomSource 统一的随机范围工具
//
// 场景里所有随机数（云朵漂浮时长、尾气粒子的偏移/透明度/缩放/时长）
// 都从同一个 RandomSource 取值，测试时传入固定种子即可复现整段动画。
//
// 非并发安全：只在帧循环所在的 goroutine 中使用。
type RandomSource struct {
	rng  *rand.Rand
	seed int64
}

// NewRandomSource 创建指定种子的随机源
func NewRandomSource(seed int64) *RandomSource {
	return &RandomSource{
		rng:  rand.New(rand.NewSource(seed)),
		seed: seed,
	}
}

// NewTimeSeededRandomSource 使用当前时间作为种子（正常运行时使用）
func NewTimeSeededRandomSource() *RandomSource {
	return NewRandomSource(time.Now().UnixNano())
}

// Seed 返回创建时使用的种子，便于日志中记录以复现问题
func (r *RandomSource) Seed() int64 {
	return r.seed
}

// Range 返回 [min, max] 区间内的随机数
// min >= max 时直接返回 min
func (r *RandomSource) Range(min, max float64) float64 {
	if min >= max {
		return min
	}
	return min + r.rng.Float64()*(max-min)
}
