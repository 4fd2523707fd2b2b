package components

import (
	"time"

	"github.com/decker502/invites/pkg/utils"
)

// TweenProperty 补间可以驱动的变换属性
type TweenProperty int

const (
	TweenOffsetX TweenProperty = iota
	TweenOffsetY
	TweenScale
	TweenOpacity
)

func (p TweenProperty) String() string {
	switch p {
	case TweenOffsetX:
		return "offsetX"
	case TweenOffsetY:
		return "offsetY"
	case TweenScale:
		return "scale"
	case TweenOpacity:
		return "opacity"
	}
	return "unknown"
}

// Tween 一段声明式过渡：从 From 到 To，历时 Duration，按 Easing 插值
type Tween struct {
	Property TweenProperty
	From     float64
	To       float64
	Duration time.Duration
	Elapsed  time.Duration
	Easing   utils.EasingFunc
}

// TweenComponent 实体上正在进行的补间
// 每个属性同一时刻最多一个补间，新的补间替换旧的
type TweenComponent struct {
	Tweens []Tween
}
