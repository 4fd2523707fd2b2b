package game

import (
	"errors"
	"log"
)

// ErrAudioDisabled 用户在设置中关闭了对应类别的音频
var ErrAudioDisabled = errors.New("audio disabled by settings")

// AudioSource 按路径加载音轨
type AudioSource interface {
	LoadSoundEffect(path string) (AudioTrack, error)
	LoadMusic(path string) (AudioTrack, error)
}

// AudioManager 音频管理器
// 职责：
//   - 通过 AudioSource 加载提示音和背景音乐
//   - 按 SettingsManager 的开关拒绝音轨，并把音量增益套到返回的音轨上
//
// 失败只返回错误，由调用方记录日志后继续执行视觉序列。
type AudioManager struct {
	source          AudioSource
	settingsManager *SettingsManager // 可为 nil（使用默认设置）
	tracks          map[string]AudioTrack
}

// NewAudioManager 创建新的音频管理器
func NewAudioManager(source AudioSource, sm *SettingsManager) *AudioManager {
	return &AudioManager{
		source:          source,
		settingsManager: sm,
		tracks:          make(map[string]AudioTrack),
	}
}

func (am *AudioManager) settings() *Settings {
	if am.settingsManager == nil {
		return DefaultSettings()
	}
	return am.settingsManager.GetSettings()
}

// SoundTrack 返回单次播放的音效音轨，音量为 volume × 音效增益
func (am *AudioManager) SoundTrack(path string, volume float64) (AudioTrack, error) {
	s := am.settings()
	if !s.SoundEnabled {
		return nil, ErrAudioDisabled
	}
	return am.track("sound:"+path, volume, s.SoundVolume, am.source.LoadSoundEffect, path)
}

// MusicTrack 返回循环播放的音乐音轨，音量为 volume × 音乐增益
func (am *AudioManager) MusicTrack(path string, volume float64) (AudioTrack, error) {
	s := am.settings()
	if !s.MusicEnabled {
		return nil, ErrAudioDisabled
	}
	return am.track("music:"+path, volume, s.MusicVolume, am.source.LoadMusic, path)
}

func (am *AudioManager) track(key string, volume, gain float64, load func(string) (AudioTrack, error), path string) (AudioTrack, error) {
	if t, ok := am.tracks[key]; ok {
		t.SetVolume(volume)
		return t, nil
	}

	inner, err := load(path)
	if err != nil {
		return nil, err
	}

	t := newGainTrack(inner, gain)
	t.SetVolume(volume)
	am.tracks[key] = t
	log.Printf("[AudioManager] Loaded %s (volume: %.2f, gain: %.2f)", key, volume, gain)
	return t, nil
}

// PauseAll 暂停所有已加载的音轨（场景卸载、程序退出时调用）
func (am *AudioManager) PauseAll() {
	for _, t := range am.tracks {
		if t.IsPlaying() {
			t.Pause()
		}
	}
}
