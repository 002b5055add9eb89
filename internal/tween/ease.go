// Package tween 是场景动画使用的补间/时间轴引擎。
//
// 引擎由单一的帧循环驱动（Engine.Tick），所有补间、时间轴、循环动画
// 共享同一个时钟，在同一个 goroutine 中依次求值，不需要任何锁。
//
// 支持的能力：
//   - 立即赋值（Engine.Set）
//   - 带时长/缓动/重复/往返/延迟的属性插值（Engine.To）
//   - 可组合的时间轴，支持 "+=x" / "-=x" 相对位置插入（Timeline.Add）
//   - OnStart / OnUpdate / OnComplete 生命周期回调
//   - 按目标+属性取消进行中的补间（Engine.KillTweensOf）
//   - 读取属性当前插值（Engine.GetProperty）
package tween

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// EaseFunc 缓动函数
// 输入线性进度 t ∈ [0, 1]，返回缓动后的进度（back 系列会短暂超出 [0, 1]）
type EaseFunc func(t float64) float64

// DefaultEase 未指定缓动时使用的曲线
const DefaultEase = "power1.out"

// defaultBackOvershoot back 缓动的默认回弹系数
const defaultBackOvershoot = 1.70158

// Linear 线性缓动（无缓动）
func Linear(t float64) float64 {
	return t
}

// PowerIn 幂次缓入：开始慢，结束快
// power1 对应二次方，power2 对应三次方，以此类推
func PowerIn(power int) EaseFunc {
	exp := float64(power + 1)
	return func(t float64) float64 {
		return math.Pow(t, exp)
	}
}

// PowerOut 幂次缓出：开始快，结束慢
func PowerOut(power int) EaseFunc {
	exp := float64(power + 1)
	return func(t float64) float64 {
		return 1 - math.Pow(1-t, exp)
	}
}

// PowerInOut 幂次缓入缓出：两端慢，中间快
func PowerInOut(power int) EaseFunc {
	exp := float64(power + 1)
	return func(t float64) float64 {
		if t < 0.5 {
			return math.Pow(2*t, exp) / 2
		}
		return 1 - math.Pow(2*(1-t), exp)/2
	}
}

// BackOut 回弹缓出：冲过终点后回落
// 公式：f(t) = 1 + (s+1)(t-1)³ + s(t-1)²
func BackOut(overshoot float64) EaseFunc {
	return func(t float64) float64 {
		u := t - 1
		return 1 + (overshoot+1)*u*u*u + overshoot*u*u
	}
}

// BackIn 回弹缓入：先向反方向后退再加速
func BackIn(overshoot float64) EaseFunc {
	return func(t float64) float64 {
		return (overshoot+1)*t*t*t - overshoot*t*t
	}
}

// Steps 阶梯缓动，把进度离散为 n 段（用来模拟逐步行走）
// t=0 时为 0，t=1 时为 1，中间每 1/n 跳变一次
func Steps(n int) EaseFunc {
	if n < 1 {
		n = 1
	}
	step := 1 / float64(n)
	buckets := float64(n + 1)
	const max = 1 - 1e-8
	return func(t float64) float64 {
		if t < 0 {
			t = 0
		} else if t > max {
			t = max
		}
		return math.Floor(buckets*t) * step
	}
}

// ParseEase 解析缓动名称
//
// 支持的格式：
//   - "none" / "linear"
//   - "power0" ~ "power4"，可带 ".in" / ".out" / ".inOut" 后缀（无后缀等同 .out）
//   - "back.in(1.7)" / "back.out(1.7)"，括号参数可省略
//   - "steps(10)"
//   - 空字符串使用 DefaultEase
func ParseEase(name string) (EaseFunc, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		name = DefaultEase
	}

	base, arg, err := splitEaseArg(name)
	if err != nil {
		return nil, err
	}

	switch {
	case base == "none" || base == "linear" || base == "power0" || strings.HasPrefix(base, "power0."):
		return Linear, nil
	case base == "steps":
		n := 1
		if arg != "" {
			v, err := strconv.Atoi(arg)
			if err != nil || v < 1 {
				return nil, fmt.Errorf("invalid steps count in ease %q", name)
			}
			n = v
		}
		return Steps(n), nil
	case strings.HasPrefix(base, "back"):
		overshoot := defaultBackOvershoot
		if arg != "" {
			v, err := strconv.ParseFloat(arg, 64)
			if err != nil {
				return nil, fmt.Errorf("invalid overshoot in ease %q: %w", name, err)
			}
			overshoot = v
		}
		switch base {
		case "back", "back.out":
			return BackOut(overshoot), nil
		case "back.in":
			return BackIn(overshoot), nil
		}
	case strings.HasPrefix(base, "power"):
		family, dir, _ := strings.Cut(base, ".")
		power, err := strconv.Atoi(strings.TrimPrefix(family, "power"))
		if err != nil || power < 1 || power > 4 {
			return nil, fmt.Errorf("unknown ease %q", name)
		}
		switch dir {
		case "", "out":
			return PowerOut(power), nil
		case "in":
			return PowerIn(power), nil
		case "inOut":
			return PowerInOut(power), nil
		}
	}

	return nil, fmt.Errorf("unknown ease %q", name)
}

// splitEaseArg 拆分 "steps(10)" 形式的名称与参数
func splitEaseArg(name string) (base, arg string, err error) {
	open := strings.IndexByte(name, '(')
	if open < 0 {
		return name, "", nil
	}
	if !strings.HasSuffix(name, ")") {
		return "", "", fmt.Errorf("unbalanced parenthesis in ease %q", name)
	}
	return name[:open], strings.TrimSpace(name[open+1 : len(name)-1]), nil
}
