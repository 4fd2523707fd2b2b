package components

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
)

// SpriteComponent 图片元素
// Image 为 nil 时渲染系统使用矢量图形兜底
type SpriteComponent struct {
	Image *ebiten.Image
	Size  float64 // 绘制边长（像素，按较长边缩放）
}

// TextComponent 单行文字
type TextComponent struct {
	Text  string
	Face  *text.GoTextFace
	Color color.RGBA
}

// ButtonComponent 圆形按钮的外观
type ButtonComponent struct {
	Radius      float64
	Label       string
	Face        *text.GoTextFace
	IdleColor   color.RGBA
	ActiveColor color.RGBA // 蓄力时的标签颜色
}

// RingComponent 三色断环
type RingComponent struct {
	Radius    float64
	Thickness float64
	Colors    []color.RGBA // 均分整圈，每段之间留出间隙
}

// CardComponent 欢迎卡片
type CardComponent struct {
	Width, Height float64

	Heading    string
	BodyLines  []string
	EnterLabel string

	HeadingFace *text.GoTextFace
	BodyFace    *text.GoTextFace
	ButtonFace  *text.GoTextFace

	Accent color.RGBA // 标题与描边颜色

	// 相对卡片顶边的排版位置
	HeadingY   float64 // 标题中心
	BodyTop    float64 // 第一行正文中心
	LineHeight float64

	// Enter 按钮相对卡片中心的矩形
	ButtonX, ButtonY float64
	ButtonW, ButtonH float64
}
