// Package timing 提供场景内的协作式调度原语
//
// 所有时间都以场景时钟为准（由 Update 的 deltaTime 累加），不读取墙钟，
// 因此同一输入序列总是产生相同的结果。调度器和帧循环都归属于单个场景实例，
// 场景卸载时一并停止，不存在全局计时器句柄。
package timing

import (
	"math"
	"time"
)

// Seconds 将游戏循环使用的秒数（float64）转换为 time.Duration
// 四舍五入到纳秒，避免 0.1 之类的浮点误差累积成 99.999ms
func Seconds(s float64) time.Duration {
	return time.Duration(math.Round(s * float64(time.Second)))
}

// Clock 单调递增的场景时钟
type Clock struct {
	now time.Duration
}

// Advance 推进时钟，负值被忽略
func (c *Clock) Advance(dt time.Duration) time.Duration {
	if dt > 0 {
		c.now += dt
	}
	return c.now
}

// Now 返回当前场景时间
func (c *Clock) Now() time.Duration {
	return c.now
}
