package timing

import (
	"testing"
	"time"
)

// TestFrameLoopRunsOncePerRequest 每次请求只执行一次
func TestFrameLoopRunsOncePerRequest(t *testing.T) {
	fl := NewFrameLoop()
	calls := 0
	var seen time.Duration
	fl.RequestFrame(func(now time.Duration) {
		calls++
		seen = now
	})

	fl.Tick(16 * time.Millisecond)
	fl.Tick(32 * time.Millisecond)

	if calls != 1 {
		t.Errorf("calls: got %d, want 1", calls)
	}
	if seen != 16*time.Millisecond {
		t.Errorf("now: got %v, want 16ms", seen)
	}
}

// TestFrameLoopReRequestRunsNextTick 回调内重新请求的帧在下一次 Tick 执行
func TestFrameLoopReRequestRunsNextTick(t *testing.T) {
	fl := NewFrameLoop()
	calls := 0
	var cb FrameCallback
	cb = func(now time.Duration) {
		calls++
		fl.RequestFrame(cb)
	}
	fl.RequestFrame(cb)

	for i := 1; i <= 3; i++ {
		fl.Tick(time.Duration(i) * time.Millisecond)
		if calls != i {
			t.Fatalf("after tick %d: got %d calls, want %d", i, calls, i)
		}
	}
	if fl.Pending() != 1 {
		t.Errorf("Pending: got %d, want 1", fl.Pending())
	}
}

// TestFrameLoopCancel 取消后的请求不执行
func TestFrameLoopCancel(t *testing.T) {
	fl := NewFrameLoop()
	called := false
	id := fl.RequestFrame(func(time.Duration) { called = true })
	fl.CancelFrame(id)
	fl.Tick(time.Millisecond)

	if called {
		t.Error("cancelled frame callback ran")
	}

	// 同一批次中前一个回调取消后一个
	var second FrameID
	fl.RequestFrame(func(time.Duration) { fl.CancelFrame(second) })
	second = fl.RequestFrame(func(time.Duration) { called = true })
	fl.Tick(2 * time.Millisecond)

	if called {
		t.Error("frame cancelled within the same tick ran")
	}
}

func TestClock(t *testing.T) {
	var c Clock
	c.Advance(time.Second)
	c.Advance(-time.Second)
	if c.Now() != time.Second {
		t.Errorf("Now: got %v, want 1s", c.Now())
	}
}
