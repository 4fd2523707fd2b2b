package systems

import (
	"errors"
	"math"
)

// fakeTrack 内存音轨，记录播放历史
type fakeTrack struct {
	playing   bool
	volume    float64
	minVolume float64
	rewinds   int
	plays     int
	pauses    int
	rewindErr error
}

func newFakeTrack(volume float64) *fakeTrack {
	return &fakeTrack{volume: volume, minVolume: volume}
}

func (f *fakeTrack) Play() {
	f.plays++
	f.playing = true
}

func (f *fakeTrack) Pause() {
	f.pauses++
	f.playing = false
}

func (f *fakeTrack) Rewind() error {
	if f.rewindErr != nil {
		return f.rewindErr
	}
	f.rewinds++
	return nil
}

func (f *fakeTrack) IsPlaying() bool { return f.playing }

func (f *fakeTrack) SetVolume(v float64) {
	f.volume = v
	f.minVolume = math.Min(f.minVolume, v)
}

func (f *fakeTrack) Volume() float64 { return f.volume }

// fakeNavigator 记录跳转地址
type fakeNavigator struct {
	urls []string
	err  error
}

func (n *fakeNavigator) Navigate(url string) error {
	n.urls = append(n.urls, url)
	return n.err
}

var errAutoplay = errors.New("autoplay blocked")

func approxEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}
