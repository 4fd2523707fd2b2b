package systems

import (
	"time"

	"github.com/decker502/invites/pkg/components"
	"github.com/decker502/invites/pkg/config"
	"github.com/decker502/invites/pkg/ecs"
	"github.com/decker502/invites/pkg/timing"
	"github.com/decker502/invites/pkg/utils"
)

// TweenSystem 推进声明式补间
//
// 序列器只声明目标值（StartTween），逐帧插值全部在这里完成。
type TweenSystem struct {
	entityManager *ecs.EntityManager
}

// NewTweenSystem 创建补间系统
func NewTweenSystem(em *ecs.EntityManager) *TweenSystem {
	return &TweenSystem{entityManager: em}
}

// StartTween 让实体的某个属性从当前值过渡到 to
//
// 同一属性已有补间时直接替换，新补间从当前值出发，不会跳变。
// 时长为 0 时立即写入目标值。
func StartTween(em *ecs.EntityManager, id ecs.EntityID, prop components.TweenProperty, to float64, tr config.Transition) {
	transform, ok := ecs.GetComponent[*components.TransformComponent](em, id)
	if !ok {
		return
	}

	tc, ok := ecs.GetComponent[*components.TweenComponent](em, id)
	if ok {
		tc.Tweens = removeTween(tc.Tweens, prop)
	}

	if tr.Duration <= 0 {
		setProperty(transform, prop, to)
		return
	}

	if !ok {
		tc = &components.TweenComponent{}
		ecs.AddComponent(em, id, tc)
	}
	tc.Tweens = append(tc.Tweens, components.Tween{
		Property: prop,
		From:     getProperty(transform, prop),
		To:       to,
		Duration: tr.Duration,
		Easing:   tr.EasingFunc(),
	})
}

// Update 推进所有补间，结束的补间写入终值后移除
func (s *TweenSystem) Update(dt float64) {
	step := timing.Seconds(dt)
	if step < 0 {
		step = 0
	}

	entities := ecs.GetEntitiesWith2[*components.TweenComponent, *components.TransformComponent](s.entityManager)
	for _, id := range entities {
		tc, _ := ecs.GetComponent[*components.TweenComponent](s.entityManager, id)
		transform, _ := ecs.GetComponent[*components.TransformComponent](s.entityManager, id)

		active := tc.Tweens[:0]
		for _, tw := range tc.Tweens {
			tw.Elapsed += step
			setProperty(transform, tw.Property, sampleTween(tw))
			if tw.Elapsed < tw.Duration {
				active = append(active, tw)
			}
		}
		tc.Tweens = active

		if len(tc.Tweens) == 0 {
			ecs.RemoveComponent[*components.TweenComponent](s.entityManager, id)
		}
	}
}

// sampleTween 计算补间在当前进度的值
func sampleTween(tw components.Tween) float64 {
	if tw.Duration <= 0 || tw.Elapsed >= tw.Duration {
		return tw.To
	}
	ease := tw.Easing
	if ease == nil {
		ease = utils.EaseLinear
	}
	t := float64(tw.Elapsed) / float64(tw.Duration)
	return utils.Lerp(tw.From, tw.To, ease(utils.Clamp01(t)))
}

// TweenRemaining 返回实体上某属性补间的剩余时间，没有补间时返回 0
func TweenRemaining(em *ecs.EntityManager, id ecs.EntityID, prop components.TweenProperty) time.Duration {
	tc, ok := ecs.GetComponent[*components.TweenComponent](em, id)
	if !ok {
		return 0
	}
	for _, tw := range tc.Tweens {
		if tw.Property == prop {
			return tw.Duration - tw.Elapsed
		}
	}
	return 0
}

func removeTween(tweens []components.Tween, prop components.TweenProperty) []components.Tween {
	out := tweens[:0]
	for _, tw := range tweens {
		if tw.Property != prop {
			out = append(out, tw)
		}
	}
	return out
}

func getProperty(t *components.TransformComponent, prop components.TweenProperty) float64 {
	switch prop {
	case components.TweenOffsetX:
		return t.OffsetX
	case components.TweenOffsetY:
		return t.OffsetY
	case components.TweenScale:
		return t.Scale
	case components.TweenOpacity:
		return t.Opacity
	}
	return 0
}

func setProperty(t *components.TransformComponent, prop components.TweenProperty, v float64) {
	switch prop {
	case components.TweenOffsetX:
		t.OffsetX = v
	case components.TweenOffsetY:
		t.OffsetY = v
	case components.TweenScale:
		t.Scale = v
	case components.TweenOpacity:
		t.Opacity = utils.Clamp01(v)
	}
}
