package systems

import (
	"log"
	"math/rand/v2"
	"time"

	"github.com/decker502/invites/pkg/components"
	"github.com/decker502/invites/pkg/config"
	"github.com/decker502/invites/pkg/ecs"
	"github.com/decker502/invites/pkg/game"
	"github.com/decker502/invites/pkg/timing"
)

// DetonationEntities 引爆序列写入的可视元素
type DetonationEntities struct {
	Button ecs.EntityID // 抖动 + 缩放，挂载 DetonationComponent
	Ring   ecs.EntityID // 旋转
	Glow   ecs.EntityID // 光晕不透明度与模糊
}

// DetonationSystem 蓄力引爆序列
//
// 状态机：Idle → Charging → Detonated，只能向前推进。
// 蓄力期间每帧通过 FrameLoop 请求下一帧，直到进度达到 1；
// 引爆后不再请求任何帧，并调用一次 OnDetonated。
type DetonationSystem struct {
	entityManager *ecs.EntityManager
	config        config.DetonationConfig
	entities      DetonationEntities

	clock  timing.Clock
	frames *timing.FrameLoop
	rng    *rand.Rand

	cue       game.AudioTrack // 可为 nil（加载失败或音效关闭）
	unmounted bool

	// OnDetonated 引爆时调用一次（场景据此开始揭示过渡）
	OnDetonated func()
}

// NewDetonationSystem 创建引爆系统，并在按钮实体上挂载 Idle 状态
// rng 为 nil 时抖动使用全局随机源
func NewDetonationSystem(em *ecs.EntityManager, cfg config.DetonationConfig, entities DetonationEntities, rng *rand.Rand) *DetonationSystem {
	ecs.AddComponent(em, entities.Button, &components.DetonationComponent{Phase: components.DetonationIdle})

	return &DetonationSystem{
		entityManager: em,
		config:        cfg,
		entities:      entities,
		frames:        timing.NewFrameLoop(),
		rng:           rng,
	}
}

// SetCue 设置蓄力开始时播放的提示音
func (s *DetonationSystem) SetCue(track game.AudioTrack) {
	s.cue = track
}

func (s *DetonationSystem) state() *components.DetonationComponent {
	dc, ok := ecs.GetComponent[*components.DetonationComponent](s.entityManager, s.entities.Button)
	if !ok {
		return nil
	}
	return dc
}

// Phase 返回当前阶段；按钮实体已释放时视为 Detonated
func (s *DetonationSystem) Phase() components.DetonationPhase {
	if dc := s.state(); dc != nil {
		return dc.Phase
	}
	return components.DetonationDetonated
}

// PendingFrames 返回等待执行的帧请求数量
func (s *DetonationSystem) PendingFrames() int {
	return s.frames.Pending()
}

// Activate 开始蓄力
// 只有 Idle 阶段有效，其他阶段调用是无操作，返回 false
func (s *DetonationSystem) Activate() bool {
	dc := s.state()
	if s.unmounted || dc == nil || dc.Phase != components.DetonationIdle {
		return false
	}

	s.playCue()

	dc.Phase = components.DetonationCharging
	dc.HasStart = false

	// 待机旋转只在 Idle 阶段存在，之后由帧回调直接写入角度
	ecs.RemoveComponent[*components.SpinComponent](s.entityManager, s.entities.Ring)

	dc.FrameRequest = s.frames.RequestFrame(s.animate)
	log.Printf("[DetonationSystem] Charging started (duration: %v)", s.config.Duration)
	return true
}

// playCue 从头播放提示音，失败只记录日志
func (s *DetonationSystem) playCue() {
	if s.cue == nil {
		log.Printf("[DetonationSystem] Cue sound unavailable, continuing without audio")
		return
	}
	if err := s.cue.Rewind(); err != nil {
		log.Printf("[DetonationSystem] Audio play failed: %v", err)
		return
	}
	s.cue.SetVolume(s.config.CueVolume)
	s.cue.Play()
}

// animate 帧回调：计算本帧变换并写入可视元素
func (s *DetonationSystem) animate(now time.Duration) {
	dc := s.state()
	if s.unmounted || dc == nil || dc.Phase != components.DetonationCharging {
		return
	}
	dc.FrameRequest = 0

	if !dc.HasStart {
		dc.StartTime = now
		dc.HasStart = true
	}

	frame := ComputeDetonationFrame(now-dc.StartTime, s.rng, s.config)
	dc.Progress = frame.Progress
	dc.Intensity = frame.Intensity

	if frame.Progress >= 1 {
		s.detonate(dc)
		return
	}

	s.apply(frame)
	dc.FrameRequest = s.frames.RequestFrame(s.animate)
}

func (s *DetonationSystem) apply(frame DetonationFrame) {
	em := s.entityManager
	if button, ok := ecs.GetComponent[*components.TransformComponent](em, s.entities.Button); ok {
		button.OffsetX = frame.ShakeX
		button.OffsetY = frame.ShakeY
		button.Scale = frame.Scale
	}
	if ring, ok := ecs.GetComponent[*components.TransformComponent](em, s.entities.Ring); ok {
		ring.Rotation = frame.Rotation
	}
	if glow, ok := ecs.GetComponent[*components.GlowComponent](em, s.entities.Glow); ok {
		glow.Opacity = frame.GlowOpacity
		glow.Blur = frame.GlowBlur
	}
}

// detonate 终态切换，只会执行一次
func (s *DetonationSystem) detonate(dc *components.DetonationComponent) {
	dc.Phase = components.DetonationDetonated
	log.Printf("[DetonationSystem] Detonated")
	if s.OnDetonated != nil {
		s.OnDetonated()
	}
}

// Update 推进场景时钟并执行本帧的帧请求
func (s *DetonationSystem) Update(dt float64) {
	if s.unmounted {
		return
	}
	s.frames.Tick(s.clock.Advance(timing.Seconds(dt)))
}

// Unmount 取消等待中的帧请求，之后不再写入任何可视元素
func (s *DetonationSystem) Unmount() {
	if s.unmounted {
		return
	}
	s.unmounted = true
	if dc := s.state(); dc != nil && dc.FrameRequest != 0 {
		s.frames.CancelFrame(dc.FrameRequest)
		dc.FrameRequest = 0
	}
	if s.cue != nil && s.cue.IsPlaying() {
		s.cue.Pause()
	}
	log.Printf("[DetonationSystem] Unmounted")
}
