package components

// TransformComponent 可视元素的变换
//
// 绘制位置 = (X + OffsetX, Y + OffsetY)，以元素中心为锚点。
// 有父元素时，X/Y 相对于父元素中心，父元素的偏移和缩放会叠加到子元素上。
type TransformComponent struct {
	X, Y float64 // 锚点位置

	// OffsetX/OffsetY 由序列器和补间写入的动态偏移（抖动、滑入）
	OffsetX float64
	OffsetY float64

	Scale    float64 // 缩放倍数，1.0 为原始大小
	Rotation float64 // 旋转角度（度，顺时针）
	Opacity  float64 // 不透明度 0.0 ~ 1.0
}

// NewTransform 返回位于 (x, y)、无偏移、完全不透明的变换
func NewTransform(x, y float64) *TransformComponent {
	return &TransformComponent{X: x, Y: y, Scale: 1, Opacity: 1}
}
