package systems

import (
	"image/color"
	"math"
	"sort"

	"github.com/decker502/invites/pkg/components"
	"github.com/decker502/invites/pkg/ecs"
	"github.com/decker502/invites/pkg/utils"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

const (
	// 光晕与暗角在低分辨率下生成，绘制时放大
	textureScale = 0.25

	// 断环每段之间的间隙（度），三段各占 80°
	ringGapDegrees = 40.0

	// 圆弧由折线近似，每段跨越的角度
	arcStepDegrees = 4.0
)

// WorldTransform 元素在屏幕上的最终变换（父元素已叠加）
type WorldTransform struct {
	X, Y     float64
	Scale    float64
	Rotation float64
	Opacity  float64
}

// ResolveWorldTransform 计算实体的屏幕变换
//
// 子元素的位置按父元素缩放后叠加到父元素中心，缩放与不透明度相乘。
// 旋转只叠加自身的 Rotation 与 SpinComponent.Angle，不继承父元素。
func ResolveWorldTransform(em *ecs.EntityManager, id ecs.EntityID) (WorldTransform, bool) {
	tr, ok := ecs.GetComponent[*components.TransformComponent](em, id)
	if !ok {
		return WorldTransform{}, false
	}

	w := WorldTransform{
		X:        tr.X + tr.OffsetX,
		Y:        tr.Y + tr.OffsetY,
		Scale:    tr.Scale,
		Rotation: tr.Rotation,
		Opacity:  tr.Opacity,
	}
	if spin, ok := ecs.GetComponent[*components.SpinComponent](em, id); ok {
		w.Rotation += spin.Angle
	}

	layer, ok := ecs.GetComponent[*components.LayerComponent](em, id)
	if !ok || layer.Parent == 0 || layer.Parent == id {
		return w, true
	}
	parent, ok := ResolveWorldTransform(em, layer.Parent)
	if !ok {
		return w, true
	}

	w.X = parent.X + w.X*parent.Scale
	w.Y = parent.Y + w.Y*parent.Scale
	w.Scale *= parent.Scale
	w.Opacity *= parent.Opacity
	return w, true
}

// glowTexture 某一模糊半径下预先生成的光晕
type glowTexture struct {
	blur  float64
	image *ebiten.Image
}

// RenderSystem 按 Z 顺序绘制所有可视元素
//
// 形状使用 vector 绘制，文字使用 text/v2，光晕使用预先模糊好的纹理：
// 模糊半径在若干档位之间交叉淡化，每帧不做任何像素级计算。
type RenderSystem struct {
	entityManager *ecs.EntityManager
	width, height int

	palette    []color.RGBA
	background color.RGBA

	vignette   *ebiten.Image
	glowLevels []float64
	glowCache  map[float64][]glowTexture // 核心半径 -> 各档位纹理
}

// NewRenderSystem 创建渲染系统
// glowLevels 为光晕模糊档位（升序），palette 为光晕渐变与断环颜色
func NewRenderSystem(em *ecs.EntityManager, width, height int, background color.RGBA, palette []color.RGBA, glowLevels []float64) *RenderSystem {
	return &RenderSystem{
		entityManager: em,
		width:         width,
		height:        height,
		palette:       palette,
		background:    background,
		glowLevels:    glowLevels,
		glowCache:     make(map[float64][]glowTexture),
	}
}

// GlowLevels 在 [from, to] 之间均匀取 n 个模糊档位
func GlowLevels(from, to float64, n int) []float64 {
	if n < 2 || from == to {
		return []float64{from}
	}
	levels := make([]float64, n)
	for i := range levels {
		levels[i] = utils.Lerp(from, to, float64(i)/float64(n-1))
	}
	return levels
}

// GlowWeights 返回 blur 落在哪两个相邻档位上，以及后一档的权重
func GlowWeights(levels []float64, blur float64) (lo, hi int, t float64) {
	if len(levels) == 0 {
		return 0, 0, 0
	}
	if blur <= levels[0] {
		return 0, 0, 0
	}
	last := len(levels) - 1
	if blur >= levels[last] {
		return last, last, 0
	}
	hi = sort.SearchFloat64s(levels, blur)
	lo = hi - 1
	t = (blur - levels[lo]) / (levels[hi] - levels[lo])
	return lo, hi, t
}

// SortedLayers 返回需要绘制的实体，按 Z 升序，相同 Z 按创建顺序
func SortedLayers(em *ecs.EntityManager) []ecs.EntityID {
	ids := ecs.GetEntitiesWith2[*components.LayerComponent, *components.TransformComponent](em)
	visible := ids[:0]
	for _, id := range ids {
		layer, _ := ecs.GetComponent[*components.LayerComponent](em, id)
		if !layer.Hidden {
			visible = append(visible, id)
		}
	}
	sort.SliceStable(visible, func(i, j int) bool {
		li, _ := ecs.GetComponent[*components.LayerComponent](em, visible[i])
		lj, _ := ecs.GetComponent[*components.LayerComponent](em, visible[j])
		return li.Z < lj.Z
	})
	return visible
}

// Draw 绘制背景色和全部可视元素
func (s *RenderSystem) Draw(screen *ebiten.Image) {
	screen.Fill(s.background)
	s.DrawLayers(screen)
}

// DrawLayers 只绘制可视元素，不填充背景
func (s *RenderSystem) DrawLayers(screen *ebiten.Image) {
	s.DrawRange(screen, math.MinInt, math.MaxInt)
}

// DrawRange 绘制 minZ <= Z < maxZ 的元素
// 场景在两段之间插入嵌套内容时使用
func (s *RenderSystem) DrawRange(screen *ebiten.Image, minZ, maxZ int) {
	for _, id := range SortedLayers(s.entityManager) {
		layer, _ := ecs.GetComponent[*components.LayerComponent](s.entityManager, id)
		if layer.Z < minZ || layer.Z >= maxZ {
			continue
		}
		w, ok := ResolveWorldTransform(s.entityManager, id)
		if !ok || w.Opacity <= 0 {
			continue
		}

		switch layer.Kind {
		case components.LayerVignette:
			s.drawVignette(screen, w)
		case components.LayerGlow:
			s.drawGlow(screen, id, w)
		case components.LayerRing:
			s.drawRing(screen, id, w)
		case components.LayerButton:
			s.drawButton(screen, id, w)
		case components.LayerFlash:
			vector.DrawFilledRect(screen, 0, 0, float32(s.width), float32(s.height), withAlpha(color.RGBA{255, 255, 255, 255}, w.Opacity), false)
		case components.LayerIcon:
			s.drawIcon(screen, id, w)
		case components.LayerTitle:
			s.drawTitle(screen, id, w)
		case components.LayerCard:
			s.drawCard(screen, id, w)
		}
	}
}

func (s *RenderSystem) drawVignette(screen *ebiten.Image, w WorldTransform) {
	if s.vignette == nil {
		vw := int(math.Max(1, float64(s.width)*textureScale))
		vh := int(math.Max(1, float64(s.height)*textureScale))
		s.vignette = ebiten.NewImageFromImage(utils.RadialVignette(vw, vh))
	}
	b := s.vignette.Bounds()
	op := &ebiten.DrawImageOptions{Filter: ebiten.FilterLinear}
	op.GeoM.Scale(float64(s.width)/float64(b.Dx()), float64(s.height)/float64(b.Dy()))
	op.ColorScale.ScaleAlpha(float32(w.Opacity))
	screen.DrawImage(s.vignette, op)
}

// glowTextures 返回（必要时生成）某一核心半径的全部档位纹理
func (s *RenderSystem) glowTextures(radius float64) []glowTexture {
	if cached, ok := s.glowCache[radius]; ok {
		return cached
	}
	textures := make([]glowTexture, 0, len(s.glowLevels))
	for _, blur := range s.glowLevels {
		img := utils.GlowDisc(radius*textureScale, blur*textureScale, s.palette)
		textures = append(textures, glowTexture{blur: blur, image: ebiten.NewImageFromImage(img)})
	}
	s.glowCache[radius] = textures
	return textures
}

func (s *RenderSystem) drawGlow(screen *ebiten.Image, id ecs.EntityID, w WorldTransform) {
	glow, ok := ecs.GetComponent[*components.GlowComponent](s.entityManager, id)
	if !ok || glow.Opacity <= 0 || len(s.glowLevels) == 0 {
		return
	}
	textures := s.glowTextures(glow.Radius)
	lo, hi, t := GlowWeights(s.glowLevels, glow.Blur)

	alpha := glow.Opacity * w.Opacity
	s.drawGlowTexture(screen, textures[lo].image, w, alpha*(1-t))
	if hi != lo && t > 0 {
		s.drawGlowTexture(screen, textures[hi].image, w, alpha*t)
	}
}

func (s *RenderSystem) drawGlowTexture(screen, img *ebiten.Image, w WorldTransform, alpha float64) {
	b := img.Bounds()
	op := &ebiten.DrawImageOptions{Filter: ebiten.FilterLinear}
	op.GeoM.Translate(-float64(b.Dx())/2, -float64(b.Dy())/2)
	op.GeoM.Scale(w.Scale/textureScale, w.Scale/textureScale)
	op.GeoM.Translate(w.X, w.Y)
	op.ColorScale.ScaleAlpha(float32(alpha))
	op.Blend = ebiten.BlendLighter
	screen.DrawImage(img, op)
}

func (s *RenderSystem) drawRing(screen *ebiten.Image, id ecs.EntityID, w WorldTransform) {
	ring, ok := ecs.GetComponent[*components.RingComponent](s.entityManager, id)
	if !ok {
		return
	}
	drawBrokenRing(screen, w.X, w.Y, ring.Radius*w.Scale, ring.Thickness*w.Scale, w.Rotation, ring.Colors, w.Opacity)
}

// drawBrokenRing 把整圈均分给每种颜色，每段末尾留出间隙
func drawBrokenRing(screen *ebiten.Image, cx, cy, radius, thickness, rotation float64, colors []color.RGBA, opacity float64) {
	if len(colors) == 0 || radius <= 0 {
		return
	}
	segment := 360.0 / float64(len(colors))
	sweep := segment - ringGapDegrees*3/float64(len(colors))
	if sweep <= 0 {
		sweep = segment / 2
	}
	for i, c := range colors {
		start := rotation + float64(i)*segment
		drawArc(screen, cx, cy, radius, thickness, start, sweep, withAlpha(c, opacity))
	}
}

// drawArc 用折线近似圆弧，0° 指向正上方，顺时针
func drawArc(screen *ebiten.Image, cx, cy, radius, thickness, startDeg, sweepDeg float64, clr color.Color) {
	steps := int(math.Max(1, math.Ceil(sweepDeg/arcStepDegrees)))
	point := func(deg float64) (float32, float32) {
		rad := (deg - 90) * math.Pi / 180
		return float32(cx + radius*math.Cos(rad)), float32(cy + radius*math.Sin(rad))
	}
	x0, y0 := point(startDeg)
	for i := 1; i <= steps; i++ {
		x1, y1 := point(startDeg + sweepDeg*float64(i)/float64(steps))
		vector.StrokeLine(screen, x0, y0, x1, y1, float32(thickness), clr, true)
		x0, y0 = x1, y1
	}
}

func (s *RenderSystem) drawButton(screen *ebiten.Image, id ecs.EntityID, w WorldTransform) {
	button, ok := ecs.GetComponent[*components.ButtonComponent](s.entityManager, id)
	if !ok {
		return
	}
	r := float32(button.Radius * w.Scale)
	vector.DrawFilledCircle(screen, float32(w.X), float32(w.Y), r, withAlpha(color.RGBA{0, 0, 0, 255}, w.Opacity), true)
	vector.StrokeCircle(screen, float32(w.X), float32(w.Y), r, 1, withAlpha(color.RGBA{255, 255, 255, 13}, w.Opacity), true)

	labelColor := button.IdleColor
	if dc, ok := ecs.GetComponent[*components.DetonationComponent](s.entityManager, id); ok && dc.Phase == components.DetonationCharging {
		labelColor = button.ActiveColor
	}
	drawCenteredText(screen, button.Label, button.Face, w.X, w.Y, w.Scale, labelColor, w.Opacity)
}

func (s *RenderSystem) drawIcon(screen *ebiten.Image, id ecs.EntityID, w WorldTransform) {
	if w.Scale <= 0 {
		return
	}
	sprite, ok := ecs.GetComponent[*components.SpriteComponent](s.entityManager, id)
	if ok && sprite.Image != nil {
		b := sprite.Image.Bounds()
		fit := sprite.Size / math.Max(float64(b.Dx()), float64(b.Dy()))
		op := &ebiten.DrawImageOptions{Filter: ebiten.FilterLinear}
		op.GeoM.Translate(-float64(b.Dx())/2, -float64(b.Dy())/2)
		op.GeoM.Scale(fit*w.Scale, fit*w.Scale)
		op.GeoM.Rotate(w.Rotation * math.Pi / 180)
		op.GeoM.Translate(w.X, w.Y)
		op.ColorScale.ScaleAlpha(float32(w.Opacity))
		screen.DrawImage(sprite.Image, op)
		return
	}

	// 图标缺失时画一个大号断环代替
	if ring, ok := ecs.GetComponent[*components.RingComponent](s.entityManager, id); ok {
		drawBrokenRing(screen, w.X, w.Y, ring.Radius*w.Scale, ring.Thickness*w.Scale, w.Rotation, ring.Colors, w.Opacity)
	}
}

func (s *RenderSystem) drawTitle(screen *ebiten.Image, id ecs.EntityID, w WorldTransform) {
	tc, ok := ecs.GetComponent[*components.TextComponent](s.entityManager, id)
	if !ok {
		return
	}
	// 柔和的白色外发光
	for _, d := range [][2]float64{{-2, 0}, {2, 0}, {0, -2}, {0, 2}} {
		drawCenteredText(screen, tc.Text, tc.Face, w.X+d[0], w.Y+d[1], w.Scale, color.RGBA{255, 255, 255, 255}, w.Opacity*0.15)
	}
	drawCenteredText(screen, tc.Text, tc.Face, w.X, w.Y, w.Scale, tc.Color, w.Opacity)
}

func (s *RenderSystem) drawCard(screen *ebiten.Image, id ecs.EntityID, w WorldTransform) {
	card, ok := ecs.GetComponent[*components.CardComponent](s.entityManager, id)
	if !ok {
		return
	}
	left := w.X - card.Width/2
	top := w.Y - card.Height/2

	// 粉色外发光 + 半透明黑底 + 细描边
	for i := 3; i >= 1; i-- {
		grow := float32(i * 8)
		vector.DrawFilledRect(screen, float32(left)-grow, float32(top)-grow, float32(card.Width)+2*grow, float32(card.Height)+2*grow,
			withAlpha(card.Accent, w.Opacity*0.05), true)
	}
	vector.DrawFilledRect(screen, float32(left), float32(top), float32(card.Width), float32(card.Height), withAlpha(color.RGBA{0, 0, 0, 153}, w.Opacity), true)
	vector.StrokeRect(screen, float32(left), float32(top), float32(card.Width), float32(card.Height), 1, withAlpha(color.RGBA{255, 255, 255, 26}, w.Opacity), true)

	drawCenteredText(screen, card.Heading, card.HeadingFace, w.X, top+card.HeadingY, 1, card.Accent, w.Opacity)
	for i, line := range card.BodyLines {
		y := top + card.BodyTop + float64(i)*card.LineHeight
		drawCenteredText(screen, line, card.BodyFace, w.X, y, 1, color.RGBA{209, 213, 219, 255}, w.Opacity)
	}

	bx := w.X + card.ButtonX - card.ButtonW/2
	by := w.Y + card.ButtonY - card.ButtonH/2
	vector.DrawFilledRect(screen, float32(bx), float32(by), float32(card.ButtonW), float32(card.ButtonH), withAlpha(color.RGBA{255, 255, 255, 255}, w.Opacity), true)
	drawCenteredText(screen, card.EnterLabel, card.ButtonFace, w.X+card.ButtonX, w.Y+card.ButtonY, 1, color.RGBA{0, 0, 0, 255}, w.Opacity)
}

// drawCenteredText 以 (x, y) 为中心绘制单行文字
func drawCenteredText(screen *ebiten.Image, str string, face *text.GoTextFace, x, y, scale float64, clr color.RGBA, opacity float64) {
	if face == nil || str == "" || opacity <= 0 {
		return
	}
	op := &text.DrawOptions{}
	op.GeoM.Scale(scale, scale)
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(clr)
	op.ColorScale.ScaleAlpha(float32(opacity))
	op.PrimaryAlign = text.AlignCenter
	op.SecondaryAlign = text.AlignCenter
	text.Draw(screen, str, face, op)
}

// withAlpha 把不透明度乘到颜色的 alpha 上
func withAlpha(c color.RGBA, opacity float64) color.NRGBA {
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: uint8(math.Round(float64(c.A) * utils.Clamp01(opacity)))}
}
