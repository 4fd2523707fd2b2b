package scenes

import (
	"math/rand/v2"

	"github.com/decker502/invites/pkg/config"
	"github.com/decker502/invites/pkg/game"
	"github.com/decker502/invites/pkg/utils"
)

// SceneContext 场景共享的依赖
//
// AudioManager 和 ResourceManager 可为 nil：缺少时场景跳过音频和图标，
// 只保留视觉序列（测试和无音频设备的环境）。
type SceneContext struct {
	Config          *config.SequenceConfig
	AudioManager    *game.AudioManager
	ResourceManager *game.ResourceManager
	Navigator       game.Navigator
	Input           PointerInput
	Rand            *rand.Rand // nil 表示使用全局随机源

	// Title 欢迎页标题（由路由解析得到）
	Title string

	// OnNavigate 退出序列跳转后调用
	OnNavigate func()
}

// PointerInput 场景读取指针的方式
type PointerInput interface {
	// JustClicked 本帧是否有新的点击/触摸，以及位置
	JustClicked() (bool, float64, float64)
	// Position 当前指针位置（触屏设备没有悬停时返回 -1, -1）
	Position() (float64, float64)
}

// EbitenInput 从 ebiten 读取鼠标和触摸
type EbitenInput struct{}

func (EbitenInput) JustClicked() (bool, float64, float64) {
	ok, x, y := utils.IsJustTouchedOrClicked()
	return ok, float64(x), float64(y)
}

func (EbitenInput) Position() (float64, float64) {
	if utils.IsMobile() {
		return -1, -1
	}
	x, y := utils.GetPointerPosition()
	return float64(x), float64(y)
}

func (c *SceneContext) input() PointerInput {
	if c.Input == nil {
		return EbitenInput{}
	}
	return c.Input
}
