package game

import (
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
)

// MockScene is a mock implementation of the Scene interface for testing.
type MockScene struct {
	updateCalled bool
	drawCalled   bool
	deltaTime    float64
	unmounts     int
}

func (m *MockScene) Update(deltaTime float64) {
	m.updateCalled = true
	m.deltaTime = deltaTime
}

func (m *MockScene) Draw(screen *ebiten.Image) {
	m.drawCalled = true
}

func (m *MockScene) Unmount() {
	m.unmounts++
}

// plainScene does not implement Unmounter.
type plainScene struct{}

func (plainScene) Update(float64)       {}
func (plainScene) Draw(*ebiten.Image) {}

func TestNewSceneManager(t *testing.T) {
	sm := NewSceneManager()
	if sm.GetCurrentScene() != nil {
		t.Error("Expected no scene initially")
	}
}

// TestSceneManagerSwitchToUnmountsPrevious 切换场景时卸载旧场景
func TestSceneManagerSwitchToUnmountsPrevious(t *testing.T) {
	sm := NewSceneManager()
	first := &MockScene{}
	second := &MockScene{}

	sm.SwitchTo(first)
	sm.SwitchTo(first)
	if first.unmounts != 0 {
		t.Errorf("switching to the same scene must not unmount it, got %d", first.unmounts)
	}

	sm.SwitchTo(second)
	if first.unmounts != 1 {
		t.Errorf("previous scene unmounts: got %d, want 1", first.unmounts)
	}
	if sm.GetCurrentScene() != second {
		t.Error("SwitchTo did not set the current scene")
	}

	// 不实现 Unmounter 的场景也能正常切换
	sm.SwitchTo(plainScene{})
	sm.SwitchTo(first)
	if second.unmounts != 1 {
		t.Errorf("second scene unmounts: got %d, want 1", second.unmounts)
	}
}

func TestSceneManagerUpdate(t *testing.T) {
	sm := NewSceneManager()
	mockScene := &MockScene{}
	sm.SwitchTo(mockScene)

	sm.Update(0.016)

	if !mockScene.updateCalled {
		t.Error("Scene's Update method was not called")
	}
	if mockScene.deltaTime != 0.016 {
		t.Errorf("deltaTime: got %v, want 0.016", mockScene.deltaTime)
	}
}

func TestSceneManagerClose(t *testing.T) {
	sm := NewSceneManager()
	mockScene := &MockScene{}
	sm.SwitchTo(mockScene)
	sm.Close()

	if mockScene.unmounts != 1 {
		t.Errorf("unmounts after Close: got %d, want 1", mockScene.unmounts)
	}
	if sm.GetCurrentScene() != nil {
		t.Error("Close should clear the current scene")
	}

	// 没有场景时 Update 不应 panic
	sm.Update(0.016)
}
