package scenes

import (
	"image/color"
	"log"
	"math"

	"github.com/decker502/invites/pkg/components"
	"github.com/decker502/invites/pkg/config"
	"github.com/decker502/invites/pkg/ecs"
	"github.com/decker502/invites/pkg/systems"
	"github.com/decker502/invites/pkg/utils"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
)

// 欢迎页布局常量
const (
	titleFontSize   = 96.0
	headingFontSize = 24.0
	bodyFontSize    = 16.0
	buttonFontSize  = 16.0

	cardMaxWidth   = 448.0
	cardPadding    = 32.0
	cardHeadingGap = 48.0
	enterButtonH   = 40.0
	enterButtonPad = 24.0

	iconCoverage  = 1.5 // 图标边长 = 1.5 × 屏幕较长边
	iconRingWidth = 40.0
)

// WelcomeScene 引爆后揭示的欢迎页
//
// 作为 DetonationScene 的嵌套内容挂载，也可以单独运行（预览工具）。
type WelcomeScene struct {
	ctx    *SceneContext
	config *config.SequenceConfig

	entityManager *ecs.EntityManager
	tweenSystem   *systems.TweenSystem
	spinSystem    *systems.SpinSystem
	renderSystem  *systems.RenderSystem
	stageSystem   *systems.WelcomeStageSystem

	entities   systems.WelcomeEntities
	background color.RGBA
	input      PointerInput
}

// NewWelcomeScene 创建欢迎页（尚未开始计时，调用 Mount 开始）
func NewWelcomeScene(ctx *SceneContext) *WelcomeScene {
	cfg := ctx.Config
	em := ecs.NewEntityManager()
	palette := paletteColors(cfg.Palette)

	s := &WelcomeScene{
		ctx:           ctx,
		config:        cfg,
		entityManager: em,
		tweenSystem:   systems.NewTweenSystem(em),
		spinSystem:    systems.NewSpinSystem(em),
		renderSystem:  systems.NewRenderSystem(em, cfg.Window.Width, cfg.Window.Height, config.MustColor(cfg.Palette.Background), palette, nil),
		background:    config.MustColor(cfg.Palette.Background),
		input:         ctx.input(),
	}

	cardHeight := s.createEntities(palette)
	s.stageSystem = systems.NewWelcomeStageSystem(em, cfg, s.entities,
		systems.WelcomeLayout{ScreenHeight: float64(cfg.Window.Height), CardHeight: cardHeight},
		ctx.Navigator)
	s.stageSystem.OnNavigate = ctx.OnNavigate

	if ctx.AudioManager != nil {
		track, err := ctx.AudioManager.MusicTrack(cfg.Assets.AmbientMusic, cfg.Welcome.MusicVolume)
		if err != nil {
			log.Printf("[WelcomeScene] Failed to load music %s: %v", cfg.Assets.AmbientMusic, err)
		} else {
			s.stageSystem.SetMusic(track)
		}
	}

	return s
}

// createEntities 创建图标、标题和卡片，返回卡片高度
func (s *WelcomeScene) createEntities(palette []color.RGBA) float64 {
	em := s.entityManager
	cfg := s.config
	w, h := float64(cfg.Window.Width), float64(cfg.Window.Height)
	cx, cy := w/2, h/2

	// 背景图标：初始透明，挂载后开始旋转
	iconSize := iconCoverage * math.Max(w, h)
	icon := em.CreateEntity()
	iconTr := components.NewTransform(cx, cy)
	iconTr.Opacity = 0
	ecs.AddComponent(em, icon, iconTr)
	ecs.AddComponent(em, icon, &components.LayerComponent{Kind: components.LayerIcon, Z: 0})
	ecs.AddComponent(em, icon, &components.SpriteComponent{Image: s.loadIcon(), Size: iconSize})
	ecs.AddComponent(em, icon, &components.RingComponent{Radius: iconSize / 4, Thickness: iconRingWidth, Colors: palette})

	// 标题
	title := em.CreateEntity()
	ecs.AddComponent(em, title, components.NewTransform(cx, cy))
	ecs.AddComponent(em, title, &components.LayerComponent{Kind: components.LayerTitle, Z: 10})
	ecs.AddComponent(em, title, &components.TextComponent{
		Text:  s.ctx.Title,
		Face:  loadFace(titleFontSize, true),
		Color: color.RGBA{255, 255, 255, 255},
	})

	// 卡片：初始位于下方并透明
	card, cardHeight := s.buildCard(w, palette)
	cardEntity := em.CreateEntity()
	cardTr := components.NewTransform(cx, cy)
	cardTr.OffsetY = cfg.Welcome.CardOffset * cardHeight
	cardTr.Opacity = 0
	ecs.AddComponent(em, cardEntity, cardTr)
	ecs.AddComponent(em, cardEntity, &components.LayerComponent{Kind: components.LayerCard, Z: 20})
	ecs.AddComponent(em, cardEntity, card)

	s.entities = systems.WelcomeEntities{Icon: icon, Title: title, Card: cardEntity}
	return cardHeight
}

// buildCard 计算卡片布局：正文按宽度换行，Enter 按钮贴近底部
func (s *WelcomeScene) buildCard(screenWidth float64, palette []color.RGBA) (*components.CardComponent, float64) {
	wc := s.config.Welcome
	width := math.Min(screenWidth*0.9, cardMaxWidth)

	heading := loadFace(headingFontSize, true)
	body := loadFace(bodyFontSize, false)
	button := loadFace(buttonFontSize, true)

	lines := utils.WrapText(wc.CardBody, body, width-2*cardPadding)
	lineHeight := bodyFontSize * 1.6

	buttonW := 120.0
	if button != nil {
		lw, _ := text.Measure(wc.EnterLabel, button, 0)
		buttonW = lw + 2*enterButtonPad
	}

	height := cardPadding + cardHeadingGap + float64(len(lines))*lineHeight + enterButtonPad + enterButtonH + cardPadding
	accent := color.RGBA{0xFE, 0x8E, 0xC1, 0xFF}
	if len(palette) > 0 {
		accent = palette[0]
	}

	return &components.CardComponent{
		Width:       width,
		Height:      height,
		Heading:     wc.CardHeading,
		BodyLines:   lines,
		EnterLabel:  wc.EnterLabel,
		HeadingFace: heading,
		BodyFace:    body,
		ButtonFace:  button,
		Accent:      accent,
		HeadingY:    cardPadding + headingFontSize/2,
		BodyTop:     cardPadding + cardHeadingGap + lineHeight/2,
		LineHeight:  lineHeight,
		ButtonX:     0,
		ButtonY:     height/2 - cardPadding - enterButtonH/2,
		ButtonW:     buttonW,
		ButtonH:     enterButtonH,
	}, height
}

func (s *WelcomeScene) loadIcon() *ebiten.Image {
	rm := s.ctx.ResourceManager
	if rm == nil {
		return nil
	}
	img, err := rm.LoadImage(s.config.Assets.Icon)
	if err != nil {
		log.Printf("[WelcomeScene] Icon unavailable, drawing fallback ring: %v", err)
		return nil
	}
	return img
}

// Mount 开始入场序列
func (s *WelcomeScene) Mount() {
	s.stageSystem.Mount()
}

// Sequencer 返回驱动本场景的序列系统
func (s *WelcomeScene) Sequencer() *systems.WelcomeStageSystem {
	return s.stageSystem
}

// Entities 返回序列驱动的可视元素
func (s *WelcomeScene) Entities() systems.WelcomeEntities {
	return s.entities
}

// EntityManager 返回场景的实体管理器
func (s *WelcomeScene) EntityManager() *ecs.EntityManager {
	return s.entityManager
}

// EnterButtonHit 判断点击是否落在可见的 Enter 按钮上
func (s *WelcomeScene) EnterButtonHit(x, y float64) bool {
	if s.stageSystem.Stage() < components.StageCardShown || s.stageSystem.ExitPhase() != components.ExitNone {
		return false
	}
	card, ok := ecs.GetComponent[*components.CardComponent](s.entityManager, s.entities.Card)
	if !ok {
		return false
	}
	w, ok := systems.ResolveWorldTransform(s.entityManager, s.entities.Card)
	if !ok || w.Opacity < 0.5 {
		return false
	}
	left := w.X + card.ButtonX - card.ButtonW/2
	top := w.Y + card.ButtonY - card.ButtonH/2
	return utils.PointInRect(x, y, left, top, card.ButtonW, card.ButtonH)
}

// HandleClick 处理点击，命中 Enter 按钮时触发退出序列
func (s *WelcomeScene) HandleClick(x, y float64) bool {
	if !s.EnterButtonHit(x, y) {
		return false
	}
	return s.stageSystem.Enter()
}

// Update 更新欢迎页
func (s *WelcomeScene) Update(deltaTime float64) {
	if ok, x, y := s.input.JustClicked(); ok {
		s.HandleClick(x, y)
	}
	s.step(deltaTime)
}

// step 推进序列与动画（不读取输入，嵌套在引爆场景中时由父场景转发点击）
func (s *WelcomeScene) step(deltaTime float64) {
	s.stageSystem.Update(deltaTime)
	s.spinSystem.Update(deltaTime)
	s.tweenSystem.Update(deltaTime)
	s.entityManager.RemoveMarkedEntities()
}

// Draw 绘制背景与全部内容
func (s *WelcomeScene) Draw(screen *ebiten.Image) {
	screen.Fill(s.background)
	s.DrawContent(screen)
}

// DrawContent 只绘制内容（透明背景）
func (s *WelcomeScene) DrawContent(screen *ebiten.Image) {
	s.renderSystem.DrawLayers(screen)
}

// Unmount 停止计时器并暂停音乐
func (s *WelcomeScene) Unmount() {
	s.stageSystem.Unmount()
}

// paletteColors 返回断环与光晕使用的三种颜色
func paletteColors(p config.PaletteConfig) []color.RGBA {
	return []color.RGBA{config.MustColor(p.Pink), config.MustColor(p.Green), config.MustColor(p.Blue)}
}

// loadFace 加载内置字体，失败时返回 nil（文字将不被绘制）
func loadFace(size float64, bold bool) *text.GoTextFace {
	face, err := utils.LoadFont(size, bold)
	if err != nil {
		log.Printf("[Scenes] Failed to load font (size %.0f): %v", size, err)
		return nil
	}
	return face
}
