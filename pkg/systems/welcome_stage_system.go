package systems

import (
	"log"

	"github.com/decker502/invites/pkg/components"
	"github.com/decker502/invites/pkg/config"
	"github.com/decker502/invites/pkg/ecs"
	"github.com/decker502/invites/pkg/game"
	"github.com/decker502/invites/pkg/timing"
)

// WelcomeEntities 欢迎序列驱动的可视元素
type WelcomeEntities struct {
	Icon  ecs.EntityID // 旋转背景图标
	Title ecs.EntityID
	Card  ecs.EntityID
}

// WelcomeLayout 把比例参数换算成像素所需的尺寸
type WelcomeLayout struct {
	ScreenHeight float64
	CardHeight   float64
}

// WelcomeStageSystem 欢迎页的入场与退出序列
//
// 入场：挂载后按固定延迟推进 Init → TitleMoved → CardShown。
// 退出：Enter 触发后同时启动音量淡出、旋转加速、三个退出阶段和最终跳转。
// 所有计时器都属于本实例的 Scheduler，卸载时一并停止。
type WelcomeStageSystem struct {
	entityManager *ecs.EntityManager
	welcome       config.WelcomeConfig
	exit          config.ExitConfig
	targetURL     string

	entities WelcomeEntities
	layout   WelcomeLayout
	state    ecs.EntityID

	scheduler *timing.Scheduler
	music     game.AudioTrack // 可为 nil
	navigator game.Navigator

	mounted   bool
	unmounted bool

	// OnNavigate 跳转完成后调用一次（应用据此结束游戏循环）
	OnNavigate func()
}

// NewWelcomeStageSystem 创建欢迎序列系统，需要调用 Mount 才开始计时
func NewWelcomeStageSystem(em *ecs.EntityManager, cfg *config.SequenceConfig, entities WelcomeEntities, layout WelcomeLayout, navigator game.Navigator) *WelcomeStageSystem {
	return &WelcomeStageSystem{
		entityManager: em,
		welcome:       cfg.Welcome,
		exit:          cfg.Exit,
		targetURL:     cfg.TargetURL,
		entities:      entities,
		layout:        layout,
		scheduler:     timing.NewScheduler(),
		navigator:     navigator,
	}
}

// SetMusic 设置循环播放的背景音乐
func (s *WelcomeStageSystem) SetMusic(track game.AudioTrack) {
	s.music = track
}

func (s *WelcomeStageSystem) component() *components.WelcomeStageComponent {
	wc, ok := ecs.GetComponent[*components.WelcomeStageComponent](s.entityManager, s.state)
	if !ok {
		return nil
	}
	return wc
}

// Stage 返回入场阶段
func (s *WelcomeStageSystem) Stage() components.WelcomeStage {
	if wc := s.component(); wc != nil {
		return wc.Stage
	}
	return components.StageInit
}

// ExitPhase 返回退出阶段
func (s *WelcomeStageSystem) ExitPhase() components.ExitPhase {
	if wc := s.component(); wc != nil {
		return wc.ExitPhase
	}
	return components.ExitNone
}

// Navigated 是否已经执行跳转
func (s *WelcomeStageSystem) Navigated() bool {
	wc := s.component()
	return wc != nil && wc.Navigated
}

// ActiveTimers 返回仍在等待的计时器数量
func (s *WelcomeStageSystem) ActiveTimers() int {
	return s.scheduler.Len()
}

// Mount 开始入场序列：播放音乐、启动背景旋转、安排两个阶段计时器
func (s *WelcomeStageSystem) Mount() {
	if s.mounted {
		return
	}
	s.mounted = true

	s.state = s.entityManager.CreateEntity()
	ecs.AddComponent(s.entityManager, s.state, &components.WelcomeStageComponent{
		Stage:     components.StageInit,
		ExitPhase: components.ExitNone,
		MountedAt: s.scheduler.Now(),
	})

	s.startMusic()

	if !ecs.HasComponent[*components.SpinComponent](s.entityManager, s.entities.Icon) {
		ecs.AddComponent(s.entityManager, s.entities.Icon, &components.SpinComponent{
			Period: s.welcome.IconSpinPeriod,
			Rate:   1,
		})
	}

	s.scheduler.After(s.welcome.TitleMoveAt, func() { s.advanceStage(components.StageTitleMoved) })
	s.scheduler.After(s.welcome.CardShowAt, func() { s.advanceStage(components.StageCardShown) })

	log.Printf("[WelcomeStageSystem] Mounted (title at %v, card at %v)", s.welcome.TitleMoveAt, s.welcome.CardShowAt)
}

// startMusic 从头循环播放背景音乐，失败只记录日志
func (s *WelcomeStageSystem) startMusic() {
	if s.music == nil {
		log.Printf("[WelcomeStageSystem] Autoplay prevented: no music track")
		return
	}
	if err := s.music.Rewind(); err != nil {
		log.Printf("[WelcomeStageSystem] Autoplay prevented: %v", err)
		return
	}
	s.music.SetVolume(s.welcome.MusicVolume)
	s.music.Play()
}

// advanceStage 推进入场阶段，只能向前
func (s *WelcomeStageSystem) advanceStage(stage components.WelcomeStage) {
	wc := s.component()
	if wc == nil || stage <= wc.Stage {
		return
	}
	wc.Stage = stage
	log.Printf("[WelcomeStageSystem] Stage -> %s", stage)

	em := s.entityManager
	switch stage {
	case components.StageTitleMoved:
		StartTween(em, s.entities.Title, components.TweenOffsetY, -s.welcome.TitleOffset*s.layout.ScreenHeight, s.welcome.TitleMove)
		StartTween(em, s.entities.Icon, components.TweenOpacity, s.welcome.BackgroundOpacity, s.welcome.BackgroundFade)
	case components.StageCardShown:
		// 退出序列已开始时卡片保持隐藏
		if wc.Entered {
			return
		}
		StartTween(em, s.entities.Card, components.TweenOffsetY, 0, s.welcome.CardSlide)
		StartTween(em, s.entities.Card, components.TweenOpacity, 1, s.welcome.CardSlide)
	}
}

// Enter 触发退出序列
// 只在退出序列尚未开始时有效，重复调用是无操作，返回 false
func (s *WelcomeStageSystem) Enter() bool {
	wc := s.component()
	if !s.mounted || s.unmounted || wc == nil || wc.Entered || wc.ExitPhase != components.ExitNone {
		return false
	}
	wc.Entered = true
	wc.EnteredAt = s.scheduler.Now()

	e := s.exit
	if s.music != nil {
		fade := NewVolumeFade(s.music, e.FadeStep)
		s.scheduler.Every(e.FadeInterval, fade.Step)
	}
	ramp := NewRateRamp(s.entityManager, s.entities.Icon, e.RampFactor, e.RampCap)
	s.scheduler.Every(e.RampInterval, ramp.Step)

	s.scheduler.After(e.CardHiddenAt, func() { s.advanceExit(components.ExitCardHidden) })
	s.scheduler.After(e.IconGrownAt, func() { s.advanceExit(components.ExitIconGrown) })
	s.scheduler.After(e.IconShrunkAt, func() { s.advanceExit(components.ExitIconShrunk) })
	s.scheduler.After(e.NavigateAt, s.navigate)

	log.Printf("[WelcomeStageSystem] Exit sequence started (navigate at +%v)", e.NavigateAt)
	return true
}

// advanceExit 推进退出阶段，只能向前
func (s *WelcomeStageSystem) advanceExit(phase components.ExitPhase) {
	wc := s.component()
	if wc == nil || phase <= wc.ExitPhase {
		return
	}
	wc.ExitPhase = phase
	log.Printf("[WelcomeStageSystem] Exit phase -> %s", phase)

	em := s.entityManager
	e := s.exit
	switch phase {
	case components.ExitCardHidden:
		StartTween(em, s.entities.Card, components.TweenOffsetY, s.welcome.CardOffset*s.layout.CardHeight, e.CardHide)
		StartTween(em, s.entities.Card, components.TweenOpacity, 0, e.CardHide)
	case components.ExitIconGrown:
		StartTween(em, s.entities.Title, components.TweenScale, e.TitleScale, e.TitleShrink)
		StartTween(em, s.entities.Title, components.TweenOpacity, 0, e.TitleShrink)
		StartTween(em, s.entities.Icon, components.TweenScale, e.IconGrowTo, e.IconGrow)
	case components.ExitIconShrunk:
		StartTween(em, s.entities.Icon, components.TweenScale, 0, e.IconShrink)
	}
}

// navigate 跳转到外部地址，只执行一次
func (s *WelcomeStageSystem) navigate() {
	wc := s.component()
	if wc == nil || wc.Navigated {
		return
	}
	wc.Navigated = true

	if s.navigator == nil {
		log.Printf("[WelcomeStageSystem] No navigator, skipping navigation to %s", s.targetURL)
	} else if err := s.navigator.Navigate(s.targetURL); err != nil {
		log.Printf("[WelcomeStageSystem] Navigation failed: %v", err)
	}

	if s.OnNavigate != nil {
		s.OnNavigate()
	}
}

// Update 推进场景时间并触发到期的计时器
func (s *WelcomeStageSystem) Update(dt float64) {
	if !s.mounted || s.unmounted {
		return
	}
	s.scheduler.Advance(timing.Seconds(dt))
}

// Unmount 停止所有计时器并暂停音乐
func (s *WelcomeStageSystem) Unmount() {
	if s.unmounted {
		return
	}
	s.unmounted = true
	s.scheduler.Stop()
	if s.music != nil {
		s.music.Pause()
	}
	log.Printf("[WelcomeStageSystem] Unmounted")
}
