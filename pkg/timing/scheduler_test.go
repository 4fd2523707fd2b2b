package timing

import (
	"testing"
	"time"
)

// TestSchedulerAfter 测试一次性计时器在到期时刻触发且只触发一次
func TestSchedulerAfter(t *testing.T) {
	s := NewScheduler()
	fired := 0
	s.After(500*time.Millisecond, func() { fired++ })

	s.Advance(499 * time.Millisecond)
	if fired != 0 {
		t.Fatalf("fired at 499ms: got %d, want 0", fired)
	}

	s.Advance(1 * time.Millisecond)
	if fired != 1 {
		t.Fatalf("fired at 500ms: got %d, want 1", fired)
	}

	s.Advance(10 * time.Second)
	if fired != 1 {
		t.Errorf("one-shot fired again: got %d, want 1", fired)
	}
	if s.Len() != 0 {
		t.Errorf("Len after fire: got %d, want 0", s.Len())
	}
}

// TestSchedulerOrder 测试一次 Advance 中多个计时器按到期时间排序触发
func TestSchedulerOrder(t *testing.T) {
	s := NewScheduler()
	var order []string
	var times []time.Duration

	s.After(3500*time.Millisecond, func() { order = append(order, "c"); times = append(times, s.Now()) })
	s.After(0, func() { order = append(order, "a"); times = append(times, s.Now()) })
	s.After(1500*time.Millisecond, func() { order = append(order, "b"); times = append(times, s.Now()) })

	s.Advance(5 * time.Second)

	want := []string{"a", "b", "c"}
	if len(order) != len(want) {
		t.Fatalf("order: got %v, want %v", order, want)
	}
	for i := range want {
		if order[i] != want[i] {
			t.Errorf("order[%d]: got %s, want %s", i, order[i], want[i])
		}
	}

	wantTimes := []time.Duration{0, 1500 * time.Millisecond, 3500 * time.Millisecond}
	for i := range wantTimes {
		if times[i] != wantTimes[i] {
			t.Errorf("Now() inside callback %d: got %v, want %v", i, times[i], wantTimes[i])
		}
	}

	if s.Now() != 5*time.Second {
		t.Errorf("Now after Advance: got %v, want 5s", s.Now())
	}
}

// TestSchedulerSameDueKeepsRegistrationOrder 到期时间相同时按注册顺序触发
func TestSchedulerSameDueKeepsRegistrationOrder(t *testing.T) {
	s := NewScheduler()
	var order []int
	for i := 0; i < 5; i++ {
		i := i
		s.After(time.Second, func() { order = append(order, i) })
	}
	s.Advance(time.Second)

	for i, v := range order {
		if v != i {
			t.Fatalf("order: got %v, want ascending", order)
		}
	}
}

// TestSchedulerEvery 测试重复计时器自行取消
func TestSchedulerEvery(t *testing.T) {
	s := NewScheduler()
	steps := 0
	id := s.Every(100*time.Millisecond, func() bool {
		steps++
		return steps < 3
	})

	s.Advance(250 * time.Millisecond)
	if steps != 2 {
		t.Fatalf("steps at 250ms: got %d, want 2", steps)
	}
	if !s.Active(id) {
		t.Fatal("timer should still be active at 250ms")
	}

	s.Advance(time.Second)
	if steps != 3 {
		t.Errorf("steps after self-cancel: got %d, want 3", steps)
	}
	if s.Active(id) {
		t.Error("timer should be cancelled after returning false")
	}
}

// TestSchedulerCancel 测试取消与 Stop
func TestSchedulerCancel(t *testing.T) {
	s := NewScheduler()
	fired := false
	id := s.After(time.Second, func() { fired = true })

	if !s.Cancel(id) {
		t.Error("Cancel of active timer should return true")
	}
	if s.Cancel(id) {
		t.Error("second Cancel should return false")
	}

	s.Every(time.Millisecond, func() bool { fired = true; return true })
	s.Stop()
	s.Advance(time.Minute)

	if fired {
		t.Error("cancelled timers must not fire")
	}
}

// TestSchedulerCallbackRegistersTimer 回调中注册的零延迟计时器在同一次 Advance 中触发
func TestSchedulerCallbackRegistersTimer(t *testing.T) {
	s := NewScheduler()
	var at time.Duration = -1
	s.After(time.Second, func() {
		s.After(0, func() { at = s.Now() })
	})

	s.Advance(2 * time.Second)
	if at != time.Second {
		t.Errorf("nested timer fired at %v, want 1s", at)
	}
}

// TestSchedulerEveryPanicsOnZeroInterval 非正间隔会死循环，必须拒绝
func TestSchedulerEveryPanicsOnZeroInterval(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("Every(0) should panic")
		}
	}()
	NewScheduler().Every(0, func() bool { return true })
}

func TestSeconds(t *testing.T) {
	tests := []struct {
		name string
		in   float64
		want time.Duration
	}{
		{"零", 0, 0},
		{"十分之一秒", 0.1, 100 * time.Millisecond},
		{"一帧", 1.0 / 60.0, 16666667 * time.Nanosecond},
		{"毫秒", 0.001, time.Millisecond},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Seconds(tt.in); got != tt.want {
				t.Errorf("Seconds(%v) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}
