package utils

import "testing"

// TestRandomSource_Range 测试随机值始终落在区间内
func TestRandomSource_Range(t *testing.T) {
	tests := []struct {
		name     string
		min, max float64
	}{
		{"云朵时长", 10, 20},
		{"粒子透明度", 0.3, 0.7},
		{"对称区间", -20, 20},
		{"窄区间", 0.5, 0.5000001},
	}

	r := NewRandomSource(42)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for i := 0; i < 1000; i++ {
				v := r.Range(tt.min, tt.max)
				if v < tt.min || v > tt.max {
					t.Fatalf("Range(%v, %v) = %v, 超出区间", tt.min, tt.max, v)
				}
			}
		})
	}
}

// TestRandomSource_DegenerateRange 测试 min >= max 返回 min
func TestRandomSource_DegenerateRange(t *testing.T) {
	r := NewRandomSource(1)
	if got := r.Range(5, 5); got != 5 {
		t.Errorf("Range(5, 5) = %v, 期望 5", got)
	}
	if got := r.Range(7, 3); got != 7 {
		t.Errorf("Range(7, 3) = %v, 期望 7", got)
	}
}

// TestRandomSource_Deterministic 相同种子产生相同序列
func TestRandomSource_Deterministic(t *testing.T) {
	a := NewRandomSource(2024)
	b := NewRandomSource(2024)
	for i := 0; i < 50; i++ {
		va, vb := a.Range(0, 100), b.Range(0, 100)
		if va != vb {
			t.Fatalf("第 %d 次取值不一致: %v != %v", i, va, vb)
		}
	}
	if a.Seed() != 2024 {
		t.Errorf("Seed() = %d, 期望 2024", a.Seed())
	}
}
