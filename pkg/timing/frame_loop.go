package timing

import (
	"slices"
	"time"
)

// FrameID 帧请求的唯一标识，0 表示无效请求
type FrameID uint64

// FrameCallback 帧回调，参数为本帧的场景时间
type FrameCallback func(now time.Duration)

// FrameLoop 逐帧回调循环
//
// 语义与浏览器的 requestAnimationFrame 一致：
//   - 每次 RequestFrame 只在下一次 Tick 中执行一次
//   - 回调内部再次请求的帧在再下一次 Tick 执行
//   - CancelFrame 之后回调保证不会执行
type FrameLoop struct {
	nextID  FrameID
	pending map[FrameID]FrameCallback
}

// NewFrameLoop 创建空的帧循环
func NewFrameLoop() *FrameLoop {
	return &FrameLoop{
		nextID:  1,
		pending: make(map[FrameID]FrameCallback),
	}
}

// RequestFrame 请求在下一帧执行回调
func (fl *FrameLoop) RequestFrame(cb FrameCallback) FrameID {
	id := fl.nextID
	fl.nextID++
	fl.pending[id] = cb
	return id
}

// CancelFrame 取消尚未执行的帧请求，对已执行或未知的 ID 无操作
func (fl *FrameLoop) CancelFrame(id FrameID) {
	delete(fl.pending, id)
}

// Pending 返回等待执行的帧请求数量
func (fl *FrameLoop) Pending() int {
	return len(fl.pending)
}

// Tick 执行本帧之前提交的所有帧请求（按提交顺序）
func (fl *FrameLoop) Tick(now time.Duration) {
	if len(fl.pending) == 0 {
		return
	}

	ids := make([]FrameID, 0, len(fl.pending))
	for id := range fl.pending {
		ids = append(ids, id)
	}
	slices.Sort(ids)

	for _, id := range ids {
		// 同一批次中较早的回调可能取消了后面的请求
		cb, ok := fl.pending[id]
		if !ok {
			continue
		}
		delete(fl.pending, id)
		cb(now)
	}
}
