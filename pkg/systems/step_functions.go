package systems

import (
	"github.com/decker502/invites/pkg/components"
	"github.com/decker502/invites/pkg/ecs"
	"github.com/decker502/invites/pkg/game"
)

// volumeEpsilon 低于此值的音量视为 0，吸收 0.01 步长累积的浮点误差
const volumeEpsilon = 1e-9

// VolumeFade 音量淡出步进器
//
// 每次 Step 把音量降低 Decrement；降到 0 时暂停播放并返回 false，
// 调度器据此取消重复计时器。音量永远不会为负。
type VolumeFade struct {
	track     game.AudioTrack
	decrement float64
}

// NewVolumeFade 创建淡出步进器
func NewVolumeFade(track game.AudioTrack, decrement float64) *VolumeFade {
	return &VolumeFade{track: track, decrement: decrement}
}

// Step 执行一步，返回是否需要继续
func (f *VolumeFade) Step() bool {
	if f.track == nil {
		return false
	}
	next := f.track.Volume() - f.decrement
	if next <= volumeEpsilon {
		f.track.SetVolume(0)
		f.track.Pause()
		return false
	}
	f.track.SetVolume(next)
	return true
}

// RateRamp 旋转倍速指数加速步进器
//
// 每次 Step 把实体 SpinComponent 的倍速乘以 Factor，达到 Cap 时停在 Cap 并返回 false。
// 实体或组件已被释放、或倍速不为正时直接结束，不做任何写入。
type RateRamp struct {
	entityManager *ecs.EntityManager
	entity        ecs.EntityID
	factor        float64
	cap           float64
}

// NewRateRamp 创建倍速步进器
func NewRateRamp(em *ecs.EntityManager, entity ecs.EntityID, factor, rateCap float64) *RateRamp {
	return &RateRamp{entityManager: em, entity: entity, factor: factor, cap: rateCap}
}

// Step 执行一步，返回是否需要继续
func (r *RateRamp) Step() bool {
	spin, ok := ecs.GetComponent[*components.SpinComponent](r.entityManager, r.entity)
	if !ok || spin.Rate <= 0 {
		return false
	}
	if spin.Rate >= r.cap {
		spin.Rate = r.cap
		return false
	}
	next := spin.Rate * r.factor
	if next >= r.cap {
		spin.Rate = r.cap
		return false
	}
	spin.Rate = next
	return true
}
