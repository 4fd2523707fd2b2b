package components

// GlowComponent 按钮后方的环境光晕
type GlowComponent struct {
	Opacity float64 // 0.0 ~ 1.0
	Blur    float64 // 模糊半径（像素）
	Radius  float64 // 光晕核心半径（像素，模糊前）
}
