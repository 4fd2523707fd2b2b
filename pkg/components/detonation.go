package components

import (
	"time"

	"github.com/decker502/invites/pkg/timing"
)

// DetonationPhase 引爆序列阶段，只能向前推进
type DetonationPhase int

const (
	DetonationIdle DetonationPhase = iota
	DetonationCharging
	DetonationDetonated
)

func (p DetonationPhase) String() string {
	switch p {
	case DetonationIdle:
		return "Idle"
	case DetonationCharging:
		return "Charging"
	case DetonationDetonated:
		return "Detonated"
	}
	return "Unknown"
}

// DetonationComponent 引爆序列状态，挂在按钮实体上
type DetonationComponent struct {
	Phase DetonationPhase

	// StartTime 蓄力开始后第一帧的场景时间，HasStart 为 false 时尚未捕获
	StartTime time.Duration
	HasStart  bool

	// FrameRequest 等待执行的帧请求，0 表示没有
	FrameRequest timing.FrameID

	// 最近一帧的计算结果（调试与渲染用）
	Progress  float64
	Intensity float64
}
