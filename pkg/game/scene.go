package game

import (
	"github.com/hajimehoshi/ebiten/v2"
)

// Scene represents one screen of the application (detonation, welcome).
// Each scene has its own update and rendering logic.
type Scene interface {
	// Update updates the scene logic based on the elapsed time.
	// deltaTime is the time elapsed since the last update in seconds.
	Update(deltaTime float64)

	// Draw renders the scene to the provided screen.
	Draw(screen *ebiten.Image)
}

// Unmounter 是一个可选接口，场景被替换或程序退出时调用
//
// 实现者必须取消所有挂起的帧请求、计时器并暂停音频，
// 之后不再向视觉句柄写入任何状态。
type Unmounter interface {
	Unmount()
}
