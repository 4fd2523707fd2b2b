package systems

import (
	"math"

	"github.com/decker502/invites/pkg/components"
	"github.com/decker502/invites/pkg/ecs"
)

// SpinSystem 驱动无限循环的匀速旋转
type SpinSystem struct {
	entityManager *ecs.EntityManager
}

// NewSpinSystem 创建旋转系统
func NewSpinSystem(em *ecs.EntityManager) *SpinSystem {
	return &SpinSystem{entityManager: em}
}

// Update 按周期和倍速推进角度
// angle += 360° × dt / period × rate
func (s *SpinSystem) Update(dt float64) {
	if dt <= 0 {
		return
	}
	for _, id := range ecs.GetEntitiesWith1[*components.SpinComponent](s.entityManager) {
		spin, _ := ecs.GetComponent[*components.SpinComponent](s.entityManager, id)
		if spin.Period <= 0 {
			continue
		}
		spin.Angle = math.Mod(spin.Angle+360*dt/spin.Period.Seconds()*spin.Rate, 360)
	}
}
