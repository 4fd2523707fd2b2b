package systems

import (
	"image/color"
	"testing"

	"github.com/decker502/invites/pkg/components"
	"github.com/decker502/invites/pkg/ecs"
	"github.com/decker502/invites/pkg/utils"
	"github.com/hajimehoshi/ebiten/v2"
)

func TestResolveWorldTransform(t *testing.T) {
	em := ecs.NewEntityManager()

	parent := em.CreateEntity()
	ptr := components.NewTransform(640, 360)
	ptr.OffsetX, ptr.OffsetY = 10, -5
	ptr.Scale = 1.5
	ptr.Opacity = 0.5
	ecs.AddComponent(em, parent, ptr)
	ecs.AddComponent(em, parent, &components.LayerComponent{Kind: components.LayerButton})

	child := em.CreateEntity()
	ctr := components.NewTransform(20, 0)
	ctr.Rotation = 30
	ctr.Opacity = 0.8
	ecs.AddComponent(em, child, ctr)
	ecs.AddComponent(em, child, &components.SpinComponent{Angle: 15})
	ecs.AddComponent(em, child, &components.LayerComponent{Kind: components.LayerRing, Parent: parent})

	w, ok := ResolveWorldTransform(em, child)
	if !ok {
		t.Fatal("child should resolve")
	}
	want := WorldTransform{X: 680, Y: 355, Scale: 1.5, Rotation: 45, Opacity: 0.4}
	if !approxEqual(w.X, want.X) || !approxEqual(w.Y, want.Y) || !approxEqual(w.Scale, want.Scale) ||
		!approxEqual(w.Rotation, want.Rotation) || !approxEqual(w.Opacity, want.Opacity) {
		t.Errorf("got %+v, want %+v", w, want)
	}

	// 父元素被释放后按独立元素处理
	em.DestroyEntity(parent)
	em.RemoveMarkedEntities()
	w, _ = ResolveWorldTransform(em, child)
	if w.X != 20 || w.Scale != 1 {
		t.Errorf("orphan child: got %+v", w)
	}

	if _, ok := ResolveWorldTransform(em, parent); ok {
		t.Error("released entity should not resolve")
	}
}

func TestGlowLevelsAndWeights(t *testing.T) {
	levels := GlowLevels(30, 70, 5)
	want := []float64{30, 40, 50, 60, 70}
	for i := range want {
		if !approxEqual(levels[i], want[i]) {
			t.Fatalf("levels: got %v, want %v", levels, want)
		}
	}

	tests := []struct {
		blur   float64
		lo, hi int
		t      float64
	}{
		{10, 0, 0, 0},
		{30, 0, 0, 0},
		{35, 0, 1, 0.5},
		{40, 0, 1, 1},
		{62.5, 3, 4, 0.25},
		{70, 4, 4, 0},
		{90, 4, 4, 0},
	}
	for _, tt := range tests {
		lo, hi, w := GlowWeights(levels, tt.blur)
		if lo != tt.lo || hi != tt.hi || !approxEqual(w, tt.t) {
			t.Errorf("GlowWeights(%v) = %d,%d,%v; want %d,%d,%v", tt.blur, lo, hi, w, tt.lo, tt.hi, tt.t)
		}
	}

	if got := GlowLevels(30, 30, 5); len(got) != 1 {
		t.Errorf("degenerate range: got %v", got)
	}
}

func TestSortedLayers(t *testing.T) {
	em := ecs.NewEntityManager()
	add := func(z int, hidden bool) ecs.EntityID {
		id := em.CreateEntity()
		ecs.AddComponent(em, id, components.NewTransform(0, 0))
		ecs.AddComponent(em, id, &components.LayerComponent{Z: z, Hidden: hidden})
		return id
	}
	top := add(100, false)
	bottom := add(0, false)
	add(50, true)
	middleA := add(20, false)
	middleB := add(20, false)
	em.CreateEntity() // 没有层信息的实体不绘制

	got := SortedLayers(em)
	want := []ecs.EntityID{bottom, middleA, middleB, top}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got %v, want %v", got, want)
		}
	}
}

// TestRenderSystemDraw 绘制全部层类型不应 panic
func TestRenderSystemDraw(t *testing.T) {
	em := ecs.NewEntityManager()
	palette := []color.RGBA{{0xFE, 0x8E, 0xC1, 0xFF}, {0xAF, 0xEC, 0x8F, 0xFF}, {0x98, 0xAF, 0xFD, 0xFF}}
	font, err := utils.LoadFont(16, true)
	if err != nil {
		t.Fatal(err)
	}

	add := func(kind components.LayerKind, extra ...any) ecs.EntityID {
		id := em.CreateEntity()
		ecs.AddComponent(em, id, components.NewTransform(80, 60))
		ecs.AddComponent(em, id, &components.LayerComponent{Kind: kind, Z: int(kind)})
		for _, c := range extra {
			switch v := c.(type) {
			case *components.GlowComponent:
				ecs.AddComponent(em, id, v)
			case *components.RingComponent:
				ecs.AddComponent(em, id, v)
			case *components.ButtonComponent:
				ecs.AddComponent(em, id, v)
			case *components.TextComponent:
				ecs.AddComponent(em, id, v)
			case *components.CardComponent:
				ecs.AddComponent(em, id, v)
			case *components.SpriteComponent:
				ecs.AddComponent(em, id, v)
			}
		}
		return id
	}

	ring := &components.RingComponent{Radius: 30, Thickness: 3, Colors: palette}
	add(components.LayerVignette)
	add(components.LayerGlow, &components.GlowComponent{Opacity: 0.7, Blur: 45, Radius: 30})
	add(components.LayerRing, ring)
	add(components.LayerButton, &components.ButtonComponent{Radius: 28, Label: "???", Face: font, IdleColor: color.RGBA{255, 255, 255, 230}})
	add(components.LayerIcon, &components.SpriteComponent{Size: 200}, ring)
	add(components.LayerTitle, &components.TextComponent{Text: "launch", Face: font, Color: color.RGBA{255, 255, 255, 255}})
	add(components.LayerCard, &components.CardComponent{
		Width: 120, Height: 100, Heading: "WELCOME", BodyLines: []string{"hello"}, EnterLabel: "Enter",
		HeadingFace: font, BodyFace: font, ButtonFace: font, Accent: palette[0],
		ButtonY: 30, ButtonW: 60, ButtonH: 20,
	})
	add(components.LayerFlash)

	rs := NewRenderSystem(em, 160, 120, color.RGBA{5, 5, 5, 255}, palette, GlowLevels(30, 70, 3))
	screen := ebiten.NewImage(160, 120)
	rs.Draw(screen)
	rs.Draw(screen) // 第二次使用缓存的纹理

	if len(rs.glowCache) != 1 || len(rs.glowCache[30]) != 3 {
		t.Errorf("glow cache: %d radii", len(rs.glowCache))
	}
}
