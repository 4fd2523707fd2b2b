package components

import "time"

// WelcomeStage 欢迎页入场阶段
type WelcomeStage int

const (
	StageInit WelcomeStage = iota
	StageTitleMoved
	StageCardShown
)

func (s WelcomeStage) String() string {
	switch s {
	case StageInit:
		return "Init"
	case StageTitleMoved:
		return "TitleMoved"
	case StageCardShown:
		return "CardShown"
	}
	return "Unknown"
}

// ExitPhase 退出序列阶段
type ExitPhase int

const (
	ExitNone ExitPhase = iota
	ExitCardHidden
	ExitIconGrown
	ExitIconShrunk
)

func (p ExitPhase) String() string {
	switch p {
	case ExitNone:
		return "None"
	case ExitCardHidden:
		return "CardHidden"
	case ExitIconGrown:
		return "IconGrown"
	case ExitIconShrunk:
		return "IconShrunk"
	}
	return "Unknown"
}

// WelcomeStageComponent 欢迎页状态
// Stage 与 ExitPhase 各自单调递增；退出序列一旦开始，其视觉效果覆盖入场效果
type WelcomeStageComponent struct {
	Stage     WelcomeStage
	ExitPhase ExitPhase

	MountedAt time.Duration // 挂载时的场景时间

	// Entered 退出序列已触发；第一个退出阶段可能要到下一次调度才生效，
	// 重复点击以此为准
	Entered   bool
	EnteredAt time.Duration // 点击 Enter 时的场景时间
	Navigated bool
}
