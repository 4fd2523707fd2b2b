package components

import "github.com/decker502/invites/pkg/ecs"

// LayerKind 渲染系统用来选择绘制方式的元素类型
type LayerKind int

const (
	LayerVignette LayerKind = iota // 径向暗角（始终可见）
	LayerGlow                      // 按钮光晕
	LayerRing                      // 三色断环
	LayerButton                    // 黑色核心按钮 + 标签
	LayerFlash                     // 引爆后的白色闪光
	LayerIcon                      // 欢迎页旋转背景图标
	LayerTitle                     // 标题文字
	LayerCard                      // 欢迎卡片
)

func (k LayerKind) String() string {
	switch k {
	case LayerVignette:
		return "vignette"
	case LayerGlow:
		return "glow"
	case LayerRing:
		return "ring"
	case LayerButton:
		return "button"
	case LayerFlash:
		return "flash"
	case LayerIcon:
		return "icon"
	case LayerTitle:
		return "title"
	case LayerCard:
		return "card"
	}
	return "unknown"
}

// LayerComponent 渲染层信息
type LayerComponent struct {
	Kind   LayerKind
	Z      int          // 越大越靠前
	Parent ecs.EntityID // 0 表示没有父元素
	Hidden bool
}
