package game

import (
	"testing"

	"github.com/quasilyte/gdata/v2"
)

// openTestGdata 在临时 HOME 下打开 gdata
func openTestGdata(t *testing.T, appName string) *gdata.Manager {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	t.Setenv("XDG_DATA_HOME", "")

	m, err := gdata.Open(gdata.Config{AppName: appName})
	if err != nil {
		t.Fatalf("Failed to create gdata manager: %v", err)
	}
	return m
}

// TestDefaultSettings 测试 DefaultSettings() 返回正确的默认值
func TestDefaultSettings(t *testing.T) {
	settings := DefaultSettings()

	if settings.MusicVolume != 1.0 {
		t.Errorf("MusicVolume: got %v, want 1.0", settings.MusicVolume)
	}
	if settings.SoundVolume != 1.0 {
		t.Errorf("SoundVolume: got %v, want 1.0", settings.SoundVolume)
	}
	if !settings.MusicEnabled || !settings.SoundEnabled {
		t.Error("audio should be enabled by default")
	}
	if settings.Fullscreen {
		t.Error("Fullscreen: got true, want false")
	}
}

// TestNewSettingsManagerNilGdata 测试 gdataManager 为 nil 时的降级场景
func TestNewSettingsManagerNilGdata(t *testing.T) {
	sm := NewSettingsManager(nil)

	if sm.GetSettings().MusicVolume != 1.0 {
		t.Errorf("Degraded mode MusicVolume: got %v, want 1.0", sm.GetSettings().MusicVolume)
	}
	if err := sm.Save(); err != nil {
		t.Errorf("Save() in degraded mode should not fail: %v", err)
	}
}

// TestSettingsLoadSave 测试 Load() 和 Save() 往返
func TestSettingsLoadSave(t *testing.T) {
	gdataManager := openTestGdata(t, "invites_test_settings")

	sm1 := NewSettingsManager(gdataManager)
	sm1.SetMusicVolume(0.5)
	sm1.SetSoundVolume(0.6)
	sm1.SetMusicEnabled(false)
	sm1.SetFullscreen(true)

	if err := sm1.Save(); err != nil {
		t.Fatalf("Save() error: %v", err)
	}

	sm2 := NewSettingsManager(gdataManager)
	settings := sm2.GetSettings()

	if settings.MusicVolume != 0.5 {
		t.Errorf("Loaded MusicVolume: got %v, want 0.5", settings.MusicVolume)
	}
	if settings.SoundVolume != 0.6 {
		t.Errorf("Loaded SoundVolume: got %v, want 0.6", settings.SoundVolume)
	}
	if settings.MusicEnabled {
		t.Error("Loaded MusicEnabled: got true, want false")
	}
	if !settings.SoundEnabled {
		t.Error("Loaded SoundEnabled: got false, want true")
	}
	if !settings.Fullscreen {
		t.Error("Loaded Fullscreen: got false, want true")
	}
}

// TestSettingsLoadPartial 旧版本数据缺少字段时保持默认值
func TestSettingsLoadPartial(t *testing.T) {
	gdataManager := openTestGdata(t, "invites_test_settings_partial")
	if err := gdataManager.SaveObjectProp(settingsObject, settingsProperty, []byte("musicVolume: 3\n")); err != nil {
		t.Fatal(err)
	}

	sm := NewSettingsManager(gdataManager)
	if got := sm.GetSettings().MusicVolume; got != 1.0 {
		t.Errorf("out-of-range volume should be clamped to 1.0, got %v", got)
	}
	if !sm.GetSettings().SoundEnabled {
		t.Error("missing soundEnabled should default to true")
	}
}

// TestSettingsLoadCorrupt 损坏的数据回退到默认值
func TestSettingsLoadCorrupt(t *testing.T) {
	gdataManager := openTestGdata(t, "invites_test_settings_corrupt")
	if err := gdataManager.SaveObjectProp(settingsObject, settingsProperty, []byte("musicVolume: [")); err != nil {
		t.Fatal(err)
	}

	sm := NewSettingsManager(gdataManager)
	if err := sm.Load(); err == nil {
		t.Error("Load() should report corrupt data")
	}
	if sm.GetSettings().MusicVolume != 1.0 {
		t.Errorf("corrupt data should fall back to defaults, got %v", sm.GetSettings().MusicVolume)
	}
}

// TestClampVolume 测试音量限制
func TestClampVolume(t *testing.T) {
	tests := []struct {
		input    float64
		expected float64
	}{
		{0.5, 0.5},
		{0.0, 0.0},
		{1.0, 1.0},
		{-0.5, 0.0},
		{1.5, 1.0},
	}

	for _, tt := range tests {
		if got := clampVolume(tt.input); got != tt.expected {
			t.Errorf("clampVolume(%v): got %v, want %v", tt.input, got, tt.expected)
		}
	}
}
