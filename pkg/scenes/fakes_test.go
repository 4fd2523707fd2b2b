package scenes

import (
	"math/rand/v2"

	"github.com/decker502/invites/pkg/config"
)

const frameDt = 1.0 / 60

// fakeInput 脚本化的指针输入：每帧最多消费一次点击
type fakeInput struct {
	clicks [][2]float64
	x, y   float64
}

func newFakeInput() *fakeInput {
	return &fakeInput{x: -1, y: -1}
}

func (f *fakeInput) click(x, y float64) {
	f.clicks = append(f.clicks, [2]float64{x, y})
}

func (f *fakeInput) JustClicked() (bool, float64, float64) {
	if len(f.clicks) == 0 {
		return false, 0, 0
	}
	c := f.clicks[0]
	f.clicks = f.clicks[1:]
	return true, c[0], c[1]
}

func (f *fakeInput) Position() (float64, float64) {
	return f.x, f.y
}

// fakeNavigator 记录跳转地址
type fakeNavigator struct {
	urls []string
}

func (n *fakeNavigator) Navigate(url string) error {
	n.urls = append(n.urls, url)
	return nil
}

// newTestContext 构造无音频、无资源管理器的场景上下文
func newTestContext() (*SceneContext, *fakeInput, *fakeNavigator) {
	input := newFakeInput()
	nav := &fakeNavigator{}
	ctx := &SceneContext{
		Config:    config.DefaultSequenceConfig(),
		Navigator: nav,
		Input:     input,
		Rand:      rand.New(rand.NewPCG(1, 2)),
		Title:     "Launch Party",
	}
	return ctx, input, nav
}

// runFor 以固定帧间隔推进场景
func runFor(update func(float64), seconds float64) {
	frames := int(seconds/frameDt + 0.5)
	for i := 0; i < frames; i++ {
		update(frameDt)
	}
}
