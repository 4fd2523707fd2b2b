package systems

import (
	"math/rand/v2"
	"testing"
	"time"

	"github.com/decker502/invites/pkg/components"
	"github.com/decker502/invites/pkg/config"
	"github.com/decker502/invites/pkg/ecs"
)

type detonationFixture struct {
	em         *ecs.EntityManager
	sys        *DetonationSystem
	ents       DetonationEntities
	cue        *fakeTrack
	detonation int
}

func newDetonationFixture(t *testing.T) *detonationFixture {
	t.Helper()
	em := ecs.NewEntityManager()

	button := em.CreateEntity()
	ecs.AddComponent(em, button, components.NewTransform(640, 360))

	ring := em.CreateEntity()
	ecs.AddComponent(em, ring, components.NewTransform(0, 0))
	ecs.AddComponent(em, ring, &components.SpinComponent{Period: 10 * time.Second, Rate: 1})

	glow := em.CreateEntity()
	ecs.AddComponent(em, glow, components.NewTransform(0, 0))
	ecs.AddComponent(em, glow, &components.GlowComponent{Blur: 30})

	f := &detonationFixture{
		em:   em,
		ents: DetonationEntities{Button: button, Ring: ring, Glow: glow},
		cue:  newFakeTrack(0.5),
	}
	f.sys = NewDetonationSystem(em, config.DefaultSequenceConfig().Detonation, f.ents, rand.New(rand.NewPCG(1, 1)))
	f.sys.SetCue(f.cue)
	f.sys.OnDetonated = func() { f.detonation++ }
	return f
}

func (f *detonationFixture) button() *components.TransformComponent {
	tr, _ := ecs.GetComponent[*components.TransformComponent](f.em, f.ents.Button)
	return tr
}

func (f *detonationFixture) state() *components.DetonationComponent {
	dc, _ := ecs.GetComponent[*components.DetonationComponent](f.em, f.ents.Button)
	return dc
}

// TestDetonationActivate 点击后进入蓄力并从头播放提示音
func TestDetonationActivate(t *testing.T) {
	f := newDetonationFixture(t)

	if f.sys.Phase() != components.DetonationIdle {
		t.Fatalf("initial phase: got %s, want Idle", f.sys.Phase())
	}
	if !f.sys.Activate() {
		t.Fatal("Activate from Idle should succeed")
	}
	if f.sys.Phase() != components.DetonationCharging {
		t.Errorf("phase: got %s, want Charging", f.sys.Phase())
	}
	if f.cue.rewinds != 1 || !f.cue.playing {
		t.Errorf("cue: rewinds=%d playing=%v, want 1/true", f.cue.rewinds, f.cue.playing)
	}
	if f.sys.PendingFrames() != 1 {
		t.Errorf("pending frames: got %d, want 1", f.sys.PendingFrames())
	}
	if ecs.HasComponent[*components.SpinComponent](f.em, f.ents.Ring) {
		t.Error("idle spin should stop once charging starts")
	}
}

// TestDetonationActivateGuard 非 Idle 阶段的点击不改变任何状态
func TestDetonationActivateGuard(t *testing.T) {
	f := newDetonationFixture(t)
	f.sys.Activate()
	f.sys.Update(0.5)

	before := *f.state()
	pending := f.sys.PendingFrames()

	for i := 0; i < 3; i++ {
		if f.sys.Activate() {
			t.Fatal("Activate while Charging should be a no-op")
		}
	}
	if *f.state() != before {
		t.Errorf("state changed: %+v -> %+v", before, *f.state())
	}
	if f.sys.PendingFrames() != pending || f.cue.rewinds != 1 {
		t.Errorf("pending=%d rewinds=%d, want %d/1", f.sys.PendingFrames(), f.cue.rewinds, pending)
	}
}

// TestDetonationFirstFrame 第一帧捕获起始时间，强度为 0
func TestDetonationFirstFrame(t *testing.T) {
	f := newDetonationFixture(t)
	f.sys.Update(1.0) // 空闲一段时间，起始时间不应从场景开始算
	f.sys.Activate()
	f.sys.Update(0)

	dc := f.state()
	if !dc.HasStart || dc.StartTime != time.Second {
		t.Fatalf("start time: has=%v at=%v, want true/1s", dc.HasStart, dc.StartTime)
	}

	button := f.button()
	if button.OffsetX != 0 || button.OffsetY != 0 || button.Scale != 1 {
		t.Errorf("button at elapsed 0: %+v", *button)
	}
	glow, _ := ecs.GetComponent[*components.GlowComponent](f.em, f.ents.Glow)
	if !approxEqual(glow.Opacity, 0.4) || !approxEqual(glow.Blur, 30) {
		t.Errorf("glow at elapsed 0: %+v", *glow)
	}
}

// TestDetonationCompletesOnce 6 秒后恰好引爆一次，之后不再请求帧
func TestDetonationCompletesOnce(t *testing.T) {
	f := newDetonationFixture(t)
	f.sys.Activate()
	f.sys.Update(0)

	for i := 0; i < 59; i++ {
		f.sys.Update(0.1)
	}
	if f.sys.Phase() != components.DetonationCharging {
		t.Fatalf("phase at 5.9s: got %s, want Charging", f.sys.Phase())
	}
	if f.detonation != 0 {
		t.Fatal("detonated too early")
	}
	ring, _ := ecs.GetComponent[*components.TransformComponent](f.em, f.ents.Ring)
	if ring.Rotation <= 0 {
		t.Errorf("ring rotation should accelerate, got %v", ring.Rotation)
	}

	f.sys.Update(0.1)
	if f.sys.Phase() != components.DetonationDetonated {
		t.Fatalf("phase at 6s: got %s, want Detonated", f.sys.Phase())
	}
	if f.state().Intensity != 1 {
		t.Errorf("intensity at 6s: got %v, want 1", f.state().Intensity)
	}

	for i := 0; i < 30; i++ {
		f.sys.Update(0.1)
	}
	if f.detonation != 1 {
		t.Errorf("OnDetonated calls: got %d, want 1", f.detonation)
	}
	if f.sys.PendingFrames() != 0 {
		t.Errorf("pending frames after detonation: got %d, want 0", f.sys.PendingFrames())
	}
	if f.sys.Activate() {
		t.Error("Activate after detonation should be a no-op")
	}
	if f.sys.Phase() != components.DetonationDetonated {
		t.Error("Detonated must be terminal")
	}
}

// TestDetonationLongFrame 单帧跨过终点也只引爆一次
func TestDetonationLongFrame(t *testing.T) {
	f := newDetonationFixture(t)
	f.sys.Activate()
	f.sys.Update(0)
	f.sys.Update(30)
	f.sys.Update(30)

	if f.detonation != 1 || f.sys.Phase() != components.DetonationDetonated {
		t.Errorf("detonations=%d phase=%s", f.detonation, f.sys.Phase())
	}
}

// TestDetonationCueFailure 提示音失败不影响视觉序列
func TestDetonationCueFailure(t *testing.T) {
	t.Run("rewind error", func(t *testing.T) {
		f := newDetonationFixture(t)
		f.cue.rewindErr = errAutoplay

		if !f.sys.Activate() {
			t.Fatal("Activate should succeed even when the cue fails")
		}
		if f.cue.plays != 0 {
			t.Error("cue should not play after a failed rewind")
		}
		f.sys.Update(0)
		f.sys.Update(6)
		if f.sys.Phase() != components.DetonationDetonated {
			t.Errorf("phase: got %s, want Detonated", f.sys.Phase())
		}
	})

	t.Run("no cue", func(t *testing.T) {
		f := newDetonationFixture(t)
		f.sys.SetCue(nil)
		if !f.sys.Activate() {
			t.Fatal("Activate should succeed without a cue")
		}
		if f.sys.Phase() != components.DetonationCharging {
			t.Errorf("phase: got %s, want Charging", f.sys.Phase())
		}
	})
}

// TestDetonationUnmountMidCharge 卸载后帧请求被取消，状态不再变化
func TestDetonationUnmountMidCharge(t *testing.T) {
	f := newDetonationFixture(t)
	f.sys.Activate()
	f.sys.Update(0)
	f.sys.Update(2)
	f.sys.Update(2)

	f.sys.Unmount()
	if f.sys.PendingFrames() != 0 {
		t.Fatalf("pending frames after unmount: got %d, want 0", f.sys.PendingFrames())
	}
	if f.cue.playing {
		t.Error("cue should be paused on unmount")
	}

	button := *f.button()
	state := *f.state()
	ring, _ := ecs.GetComponent[*components.TransformComponent](f.em, f.ents.Ring)
	rotation := ring.Rotation

	for i := 0; i < 10; i++ {
		f.sys.Update(1)
	}

	if *f.button() != button {
		t.Errorf("button written after unmount: %+v -> %+v", button, *f.button())
	}
	if *f.state() != state {
		t.Errorf("state written after unmount: %+v -> %+v", state, *f.state())
	}
	if ring.Rotation != rotation {
		t.Errorf("ring written after unmount: %v -> %v", rotation, ring.Rotation)
	}
	if f.detonation != 0 {
		t.Error("OnDetonated must not fire after unmount")
	}
	if f.sys.Activate() {
		t.Error("Activate after unmount should be a no-op")
	}
}

// TestDetonationReleasedHandles 元素被释放后帧回调不再写入
func TestDetonationReleasedHandles(t *testing.T) {
	f := newDetonationFixture(t)
	f.sys.Activate()
	f.sys.Update(0)

	f.em.DestroyEntity(f.ents.Glow)
	f.em.RemoveMarkedEntities()
	f.sys.Update(1)

	if ecs.HasComponent[*components.GlowComponent](f.em, f.ents.Glow) {
		t.Error("released glow must not be recreated")
	}
	if f.sys.Phase() != components.DetonationCharging {
		t.Errorf("phase: got %s, want Charging", f.sys.Phase())
	}
}
