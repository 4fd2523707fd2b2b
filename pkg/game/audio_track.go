package game

// AudioTrack 序列器使用的音频播放接口
//
// *audio.Player 天然满足此接口；测试使用内存实现。
type AudioTrack interface {
	Play()
	Pause()
	Rewind() error
	IsPlaying() bool
	SetVolume(volume float64)
	Volume() float64
}

// gainTrack 在设置增益下播放的音轨
//
// Volume() 返回序列器设定的逻辑音量，底层播放器的实际音量 = 逻辑音量 × 增益。
// 这样淡出逻辑只看到自己的数值，不受用户设置影响。
type gainTrack struct {
	AudioTrack
	gain   float64
	volume float64
}

func newGainTrack(inner AudioTrack, gain float64) *gainTrack {
	t := &gainTrack{AudioTrack: inner, gain: clampVolume(gain), volume: inner.Volume()}
	t.SetVolume(t.volume)
	return t
}

// SetVolume 设置逻辑音量
func (t *gainTrack) SetVolume(volume float64) {
	t.volume = clampVolume(volume)
	t.AudioTrack.SetVolume(t.volume * t.gain)
}

// Volume 返回逻辑音量
func (t *gainTrack) Volume() float64 {
	return t.volume
}
