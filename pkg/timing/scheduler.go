package timing

import (
	"time"
)

// TimerID 计时器唯一标识，0 表示无效计时器
type TimerID uint64

type timer struct {
	id       TimerID
	due      time.Duration
	interval time.Duration // 0 表示一次性计时器
	fire     func()
	step     func() bool
}

// Scheduler 一次性与重复计时器的协作式调度器
//
// 计时器由 Advance 驱动，在同一次 Advance 中到期的多个计时器按到期时间排序触发，
// 到期时间相同的按注册顺序触发。回调内部可以安全地注册或取消计时器。
type Scheduler struct {
	now    time.Duration
	nextID TimerID
	timers map[TimerID]*timer
}

// NewScheduler 创建调度器，时间从 0 开始
func NewScheduler() *Scheduler {
	return &Scheduler{
		nextID: 1,
		timers: make(map[TimerID]*timer),
	}
}

// Now 返回调度器当前时间
func (s *Scheduler) Now() time.Duration {
	return s.now
}

// After 在 delay 之后执行一次 fn
// delay <= 0 的计时器在下一次 Advance（包括 Advance(0)）时触发
func (s *Scheduler) After(delay time.Duration, fn func()) TimerID {
	if delay < 0 {
		delay = 0
	}
	return s.add(&timer{due: s.now + delay, fire: fn})
}

// Every 每隔 interval 执行一次 step，step 返回 false 时计时器自行取消
// 第一次执行发生在注册后的一个 interval 处
func (s *Scheduler) Every(interval time.Duration, step func() bool) TimerID {
	if interval <= 0 {
		panic("timing: non-positive interval for Scheduler.Every")
	}
	return s.add(&timer{due: s.now + interval, interval: interval, step: step})
}

func (s *Scheduler) add(t *timer) TimerID {
	t.id = s.nextID
	s.nextID++
	s.timers[t.id] = t
	return t.id
}

// Cancel 取消计时器，返回是否确实取消了一个活动的计时器
func (s *Scheduler) Cancel(id TimerID) bool {
	if _, ok := s.timers[id]; !ok {
		return false
	}
	delete(s.timers, id)
	return true
}

// Active 检查计时器是否仍在等待触发
func (s *Scheduler) Active(id TimerID) bool {
	_, ok := s.timers[id]
	return ok
}

// Len 返回活动计时器数量
func (s *Scheduler) Len() int {
	return len(s.timers)
}

// Stop 取消全部计时器
func (s *Scheduler) Stop() {
	clear(s.timers)
}

// Advance 推进时间 dt 并触发所有到期的计时器
func (s *Scheduler) Advance(dt time.Duration) {
	if dt < 0 {
		dt = 0
	}
	target := s.now + dt

	for {
		next := s.earliest(target)
		if next == nil {
			break
		}

		s.now = next.due
		if next.interval == 0 {
			delete(s.timers, next.id)
			next.fire()
			continue
		}

		next.due += next.interval
		if !next.step() {
			delete(s.timers, next.id)
		}
	}

	s.now = target
}

// earliest 查找到期时间不晚于 limit 的最早计时器
func (s *Scheduler) earliest(limit time.Duration) *timer {
	var best *timer
	for _, t := range s.timers {
		if t.due > limit {
			continue
		}
		if best == nil || t.due < best.due || (t.due == best.due && t.id < best.id) {
			best = t
		}
	}
	return best
}
