package tween

import (
	"fmt"
	"math"
)

// 引擎识别的属性名
const (
	PropX           = "x"
	PropY           = "y"
	PropOpacity     = "opacity"
	PropScale       = "scale"
	PropDisplay     = "display" // 离散属性：0 = 隐藏，非 0 = 显示
	PropBackgroundX = "backgroundPositionX"
)

// Target 可被补间的对象
//
// GetProperty 返回属性当前值；目标不支持该属性时 ok=false，
// 此时补间会跳过这个属性。
type Target interface {
	GetProperty(name string) (value float64, ok bool)
	SetProperty(name string, value float64)
}

// Value 补间的终点值，可以是绝对值或相对当前值的增量（"+=" / "-="）
type Value struct {
	amount   float64
	relative bool
}

// Abs 绝对终点值
func Abs(v float64) Value {
	return Value{amount: v}
}

// By 相对增量（By(-40) 等价于 "-=40"）
func By(delta float64) Value {
	return Value{amount: delta, relative: true}
}

// Amount 返回数值部分
func (v Value) Amount() float64 {
	return v.amount
}

// Relative 是否为相对增量
func (v Value) Relative() bool {
	return v.relative
}

// resolve 根据起始值计算终点
func (v Value) resolve(start float64) float64 {
	if v.relative {
		return start + v.amount
	}
	return v.amount
}

// String 便于日志输出
func (v Value) String() string {
	if !v.relative {
		return fmt.Sprintf("%g", v.amount)
	}
	if v.amount < 0 {
		return fmt.Sprintf("-=%g", -v.amount)
	}
	return fmt.Sprintf("+=%g", v.amount)
}

// Props 属性名到终点值的映射
type Props map[string]Value

// propertyRange 有取值范围约束的属性
type propertyRange struct {
	min, max float64
}

var propertyRanges = map[string]propertyRange{
	PropOpacity: {min: 0, max: 1},
	PropScale:   {min: 0, max: math.Inf(1)},
}

// InvalidPropertyValueError 属性值超出有效范围
type InvalidPropertyValueError struct {
	Property string
	Value    float64
	Min      float64
	Max      float64
}

func (e *InvalidPropertyValueError) Error() string {
	return fmt.Sprintf("invalid %s value %g: must be within [%g, %g]", e.Property, e.Value, e.Min, e.Max)
}

// ValidateProperty 检查属性值是否在有效范围内
// 没有范围约束的属性（x、y 等）总是返回 nil
func ValidateProperty(name string, value float64) error {
	r, ok := propertyRanges[name]
	if !ok {
		return nil
	}
	if math.IsNaN(value) || value < r.min || value > r.max {
		return &InvalidPropertyValueError{Property: name, Value: value, Min: r.min, Max: r.max}
	}
	return nil
}

// ValidateProps 检查一组终点值，返回第一个非法的绝对值
// 相对增量在补间开始前无法确定最终值，不做检查
func ValidateProps(props Props) error {
	for name, v := range props {
		if v.relative {
			continue
		}
		if err := ValidateProperty(name, v.amount); err != nil {
			return err
		}
	}
	return nil
}

// ClampProperty 把属性值限制在有效范围内（写入目标时使用）
func ClampProperty(name string, value float64) float64 {
	r, ok := propertyRanges[name]
	if !ok {
		return value
	}
	if math.IsNaN(value) {
		return r.min
	}
	return math.Max(r.min, math.Min(r.max, value))
}

// isDiscrete 离散属性不插值：显示在补间开始时生效，隐藏在结束时生效
func isDiscrete(name string) bool {
	return name == PropDisplay
}
