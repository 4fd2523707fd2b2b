package utils

import (
	"fmt"
	"math"
)

// Easing Functions (缓动函数)
//
// 所有函数接受一个进度值 t ∈ [0, 1]，返回缓动后的值 ∈ [0, 1]。
// 声明式过渡（标题上移、卡片滑入等）通过名称在配置中引用缓动函数。
//
// 参考：https://easings.net/

// EasingFunc 缓动函数类型
type EasingFunc func(t float64) float64

// EaseLinear 线性缓动（无缓动）
func EaseLinear(t float64) float64 {
	return t
}

// EaseInQuad 二次方缓入
// 公式：f(t) = t²
func EaseInQuad(t float64) float64 {
	return t * t
}

// EaseInCubic 三次方缓入
// 公式：f(t) = t³
func EaseInCubic(t float64) float64 {
	return t * t * t
}

// EaseInQuart 四次方缓入
// 特点：前段几乎静止，末段急剧爆发（引爆蓄力的强度曲线）
// 公式：f(t) = t⁴
func EaseInQuart(t float64) float64 {
	return t * t * t * t
}

// EaseOutCubic 三次方缓出
// 特点：开始快，结束慢
// 公式：f(t) = 1 - (1-t)³
func EaseOutCubic(t float64) float64 {
	return 1 - math.Pow(1-t, 3)
}

// EaseInOutCubic 三次方缓入缓出
// 公式：
//
//	t < 0.5: f(t) = 4t³
//	t >= 0.5: f(t) = 1 - (-2t + 2)³ / 2
func EaseInOutCubic(t float64) float64 {
	if t < 0.5 {
		return 4 * t * t * t
	}
	return 1 - math.Pow(-2*t+2, 3)/2
}

// Lerp 线性插值
// t=0 返回 a，t=1 返回 b
func Lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

// Clamp01 将值限制在 [0, 1]
func Clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// EasingByName 根据名称返回缓动函数
// 名称与 CSS 的 transition-timing-function 对应：
// linear / ease-in / ease-out / ease-in-out，外加 ease-in-quart
func EasingByName(name string) (EasingFunc, error) {
	switch name {
	case "", "linear":
		return EaseLinear, nil
	case "ease-in":
		return EaseInCubic, nil
	case "ease-out":
		return EaseOutCubic, nil
	case "ease-in-out":
		return EaseInOutCubic, nil
	case "ease-in-quart":
		return EaseInQuart, nil
	default:
		return nil, fmt.Errorf("unknown easing %q", name)
	}
}
