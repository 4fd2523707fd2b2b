package components

import "time"

// SpinComponent 持续匀速旋转
//
// 每秒转过 360° / Period × Rate。Rate 是播放倍速，退出序列会把它逐步放大。
type SpinComponent struct {
	Period time.Duration // 倍速为 1 时转一圈的时长
	Rate   float64       // 播放倍速
	Angle  float64       // 当前角度（度，0 ~ 360）
}
