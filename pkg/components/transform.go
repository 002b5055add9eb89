package components

// TransformComponent 元素相对父元素的平移和统一缩放
type TransformComponent struct {
	X     float64
	Y     float64
	Scale float64 // 1.0 = 原始大小，以元素中心为缩放原点
}
