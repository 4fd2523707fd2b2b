package scenes

import (
	"image/color"
	"log"
	"time"

	"github.com/decker502/invites/pkg/components"
	"github.com/decker502/invites/pkg/config"
	"github.com/decker502/invites/pkg/ecs"
	"github.com/decker502/invites/pkg/systems"
	"github.com/decker502/invites/pkg/utils"
	"github.com/hajimehoshi/ebiten/v2"
)

// 引爆场景的层次
const (
	zVignette = 0
	zContent  = 10 // 嵌套内容在暗角之上、按钮之下
	zGlow     = 20
	zRing     = 25
	zButton   = 30
	zFlash    = 100

	labelFontSize = 24.0

	ringInset     = 3.0 // 断环比按钮大出的距离
	ringThickness = 6.0
	glowInset     = 40.0 // 光晕比按钮大出的距离
	glowLevels    = 5

	hoverGlowOpacity  = 0.4
	hoverFadeDuration = 700 * time.Millisecond
)

// DetonationScene 入口场景：点击按钮蓄力，引爆后揭示欢迎页
type DetonationScene struct {
	ctx    *SceneContext
	config *config.SequenceConfig

	entityManager    *ecs.EntityManager
	tweenSystem      *systems.TweenSystem
	spinSystem       *systems.SpinSystem
	renderSystem     *systems.RenderSystem
	detonationSystem *systems.DetonationSystem

	entities systems.DetonationEntities
	flash    ecs.EntityID
	content  ecs.EntityID // 只有变换：嵌套内容的整体不透明度

	child      *WelcomeScene
	childImage *ebiten.Image

	hovering bool
	input    PointerInput
}

// NewDetonationScene 创建引爆场景
func NewDetonationScene(ctx *SceneContext) *DetonationScene {
	cfg := ctx.Config
	em := ecs.NewEntityManager()
	d := cfg.Detonation

	s := &DetonationScene{
		ctx:           ctx,
		config:        cfg,
		entityManager: em,
		tweenSystem:   systems.NewTweenSystem(em),
		spinSystem:    systems.NewSpinSystem(em),
		renderSystem: systems.NewRenderSystem(em, cfg.Window.Width, cfg.Window.Height,
			config.MustColor(cfg.Palette.Background), paletteColors(cfg.Palette),
			systems.GlowLevels(d.GlowBlurFrom, d.GlowBlurTo, glowLevels)),
		input: ctx.input(),
	}

	s.createEntities()
	s.detonationSystem = systems.NewDetonationSystem(em, d, s.entities, ctx.Rand)
	s.detonationSystem.OnDetonated = s.reveal

	if ctx.AudioManager != nil {
		cue, err := ctx.AudioManager.SoundTrack(cfg.Assets.CueSound, d.CueVolume)
		if err != nil {
			log.Printf("[DetonationScene] Failed to load cue sound %s: %v", cfg.Assets.CueSound, err)
		} else {
			s.detonationSystem.SetCue(cue)
		}
	}

	log.Printf("[DetonationScene] Ready (%dx%d)", cfg.Window.Width, cfg.Window.Height)
	return s
}

func (s *DetonationScene) createEntities() {
	em := s.entityManager
	d := s.config.Detonation
	cx, cy := float64(s.config.Window.Width)/2, float64(s.config.Window.Height)/2

	vignette := em.CreateEntity()
	ecs.AddComponent(em, vignette, components.NewTransform(cx, cy))
	ecs.AddComponent(em, vignette, &components.LayerComponent{Kind: components.LayerVignette, Z: zVignette})

	button := em.CreateEntity()
	ecs.AddComponent(em, button, components.NewTransform(cx, cy))
	ecs.AddComponent(em, button, &components.LayerComponent{Kind: components.LayerButton, Z: zButton})
	ecs.AddComponent(em, button, &components.ButtonComponent{
		Radius:      d.ButtonRadius,
		Label:       d.Label,
		Face:        loadFace(labelFontSize, true),
		IdleColor:   color.RGBA{255, 255, 255, 230},
		ActiveColor: color.RGBA{239, 68, 68, 255},
	})

	// 断环与光晕相对按钮定位，随按钮一起抖动和缩放
	ring := em.CreateEntity()
	ringTr := components.NewTransform(0, 0)
	ringTr.Opacity = 0.9
	ecs.AddComponent(em, ring, ringTr)
	ecs.AddComponent(em, ring, &components.LayerComponent{Kind: components.LayerRing, Z: zRing, Parent: button})
	ecs.AddComponent(em, ring, &components.RingComponent{
		Radius:    d.ButtonRadius + ringInset,
		Thickness: ringThickness,
		Colors:    paletteColors(s.config.Palette),
	})
	ecs.AddComponent(em, ring, &components.SpinComponent{Period: d.IdleSpinPeriod, Rate: 1})

	// 悬停时补间变换不透明度；蓄力时帧回调写 GlowComponent
	glow := em.CreateEntity()
	glowTr := components.NewTransform(0, 0)
	glowTr.Opacity = 0
	ecs.AddComponent(em, glow, glowTr)
	ecs.AddComponent(em, glow, &components.LayerComponent{Kind: components.LayerGlow, Z: zGlow, Parent: button})
	ecs.AddComponent(em, glow, &components.GlowComponent{
		Opacity: 1,
		Blur:    d.GlowBlurFrom,
		Radius:  d.ButtonRadius + glowInset,
	})

	s.entities = systems.DetonationEntities{Button: button, Ring: ring, Glow: glow}
}

// Phase 返回引爆序列阶段
func (s *DetonationScene) Phase() components.DetonationPhase {
	return s.detonationSystem.Phase()
}

// Sequencer 返回驱动蓄力动画的系统
func (s *DetonationScene) Sequencer() *systems.DetonationSystem {
	return s.detonationSystem
}

// Entities 返回按钮组实体
func (s *DetonationScene) Entities() systems.DetonationEntities {
	return s.entities
}

// EntityManager 返回场景的实体管理器
func (s *DetonationScene) EntityManager() *ecs.EntityManager {
	return s.entityManager
}

// Child 返回引爆后挂载的欢迎页，引爆前为 nil
func (s *DetonationScene) Child() *WelcomeScene {
	return s.child
}

// ContentOpacity 返回嵌套内容当前的不透明度
func (s *DetonationScene) ContentOpacity() float64 {
	tr, ok := ecs.GetComponent[*components.TransformComponent](s.entityManager, s.content)
	if !ok {
		return 0
	}
	return tr.Opacity
}

// FlashOpacity 返回白色闪光当前的不透明度
func (s *DetonationScene) FlashOpacity() float64 {
	tr, ok := ecs.GetComponent[*components.TransformComponent](s.entityManager, s.flash)
	if !ok {
		return 0
	}
	return tr.Opacity
}

// ButtonHit 判断点击是否落在按钮上
func (s *DetonationScene) ButtonHit(x, y float64) bool {
	button, ok := ecs.GetComponent[*components.ButtonComponent](s.entityManager, s.entities.Button)
	if !ok {
		return false
	}
	w, ok := systems.ResolveWorldTransform(s.entityManager, s.entities.Button)
	if !ok {
		return false
	}
	return utils.PointInCircle(x, y, w.X, w.Y, button.Radius*w.Scale)
}

// HandleClick 处理点击：待机时点中按钮开始蓄力，引爆后转发给欢迎页
func (s *DetonationScene) HandleClick(x, y float64) {
	if s.child != nil {
		s.child.HandleClick(x, y)
		return
	}
	if s.Phase() == components.DetonationIdle && s.ButtonHit(x, y) {
		s.activate()
	}
}

func (s *DetonationScene) activate() {
	if !s.detonationSystem.Activate() {
		return
	}
	// 悬停补间会与帧回调争用光晕，蓄力开始后由帧回调独占
	em := s.entityManager
	ecs.RemoveComponent[*components.TweenComponent](em, s.entities.Glow)
	if tr, ok := ecs.GetComponent[*components.TransformComponent](em, s.entities.Glow); ok {
		tr.Opacity = 1
	}
}

// updateHover 待机时指针悬停在按钮上，光晕淡入到 0.4
func (s *DetonationScene) updateHover(x, y float64) {
	if s.Phase() != components.DetonationIdle {
		return
	}
	hovering := x >= 0 && y >= 0 && s.ButtonHit(x, y)
	if hovering == s.hovering {
		return
	}
	s.hovering = hovering

	target := 0.0
	if hovering {
		target = hoverGlowOpacity
	}
	systems.StartTween(s.entityManager, s.entities.Glow, components.TweenOpacity, target,
		config.Transition{Duration: hoverFadeDuration, Easing: "ease-in-out"})
}

// Hovering 指针是否停留在按钮上
func (s *DetonationScene) Hovering() bool {
	return s.hovering
}

// reveal 引爆回调：移除按钮，白光淡出，欢迎页淡入
func (s *DetonationScene) reveal() {
	em := s.entityManager
	em.DestroyEntity(s.entities.Button)
	em.DestroyEntity(s.entities.Ring)
	em.DestroyEntity(s.entities.Glow)

	s.flash = em.CreateEntity()
	ecs.AddComponent(em, s.flash, components.NewTransform(0, 0))
	ecs.AddComponent(em, s.flash, &components.LayerComponent{Kind: components.LayerFlash, Z: zFlash})
	systems.StartTween(em, s.flash, components.TweenOpacity, 0, s.config.Reveal.FlashOut)

	s.content = em.CreateEntity()
	contentTr := components.NewTransform(0, 0)
	contentTr.Opacity = 0
	ecs.AddComponent(em, s.content, contentTr)
	systems.StartTween(em, s.content, components.TweenOpacity, 1, s.config.Reveal.ContentIn)

	s.child = NewWelcomeScene(s.ctx)
	s.child.Mount()
	log.Printf("[DetonationScene] Revealing welcome content")
}

// Update 更新场景
func (s *DetonationScene) Update(deltaTime float64) {
	if ok, x, y := s.input.JustClicked(); ok {
		s.HandleClick(x, y)
	}
	if s.child == nil {
		s.updateHover(s.input.Position())
	}

	s.detonationSystem.Update(deltaTime)
	s.spinSystem.Update(deltaTime)
	s.tweenSystem.Update(deltaTime)
	if s.child != nil {
		s.child.step(deltaTime)
	}
	s.entityManager.RemoveMarkedEntities()
}

// Draw 绘制：背景 → 暗角 → 嵌套内容 → 按钮组 → 闪光
func (s *DetonationScene) Draw(screen *ebiten.Image) {
	screen.Fill(config.MustColor(s.config.Palette.Background))
	s.renderSystem.DrawRange(screen, zVignette, zContent)

	if s.child != nil {
		if opacity := s.ContentOpacity(); opacity > 0 {
			s.drawChild(screen, opacity)
		}
	}

	s.renderSystem.DrawRange(screen, zContent, zFlash+1)
}

func (s *DetonationScene) drawChild(screen *ebiten.Image, opacity float64) {
	b := screen.Bounds()
	if s.childImage == nil || s.childImage.Bounds() != b {
		s.childImage = ebiten.NewImage(b.Dx(), b.Dy())
	}
	s.childImage.Clear()
	s.child.DrawContent(s.childImage)

	op := &ebiten.DrawImageOptions{}
	op.ColorScale.ScaleAlpha(float32(opacity))
	screen.DrawImage(s.childImage, op)
}

// Unmount 取消帧请求，并卸载已挂载的欢迎页
func (s *DetonationScene) Unmount() {
	s.detonationSystem.Unmount()
	if s.child != nil {
		s.child.Unmount()
	}
}
