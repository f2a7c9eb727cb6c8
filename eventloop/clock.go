package eventloop

import (
	"sort"
	"sync"
	"time"
)

// Clock 时钟抽象，负责创建定时器.
type Clock interface {
	// Now 返回当前时间.
	Now() time.Time
	// AfterFunc 在 d 之后于任意 goroutine 上调用 f.
	AfterFunc(d time.Duration, f func()) Stopper
}

// Stopper 可取消的定时器.
type Stopper interface {
	// Stop 取消定时器，定时器尚未触发时返回 true.
	Stop() bool
}

// RealClock 基于 time 包的系统时钟.
type RealClock struct{}

// Now 返回系统时间.
func (RealClock) Now() time.Time { return time.Now() }

// AfterFunc 创建系统定时器.
func (RealClock) AfterFunc(d time.Duration, f func()) Stopper {
	return time.AfterFunc(d, f)
}

// ManualClock 手动推进的时钟，用于确定性测试.
//
// 定时器只在 Advance 时触发，按到期时间排序，同一时间按创建顺序.
//
// 示例:
//
//	clock := eventloop.NewManualClock(time.Unix(0, 0))
//	clock.AfterFunc(100*time.Millisecond, fn)
//	clock.Advance(100 * time.Millisecond) // fn 被调用
type ManualClock struct {
	mu     sync.Mutex
	now    time.Time
	seq    uint64
	timers []*manualTimer
}

type manualTimer struct {
	clock *ManualClock
	at    time.Time
	seq   uint64
	f     func()
}

// NewManualClock 创建起始于 start 的手动时钟.
func NewManualClock(start time.Time) *ManualClock {
	return &ManualClock{now: start}
}

// Now 返回当前的手动时间.
func (c *ManualClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

// AfterFunc 注册一个在手动时间推进 d 后触发的定时器.
func (c *ManualClock) AfterFunc(d time.Duration, f func()) Stopper {
	c.mu.Lock()
	defer c.mu.Unlock()

	if d < 0 {
		d = 0
	}
	c.seq++
	t := &manualTimer{clock: c, at: c.now.Add(d), seq: c.seq, f: f}
	c.timers = append(c.timers, t)
	return t
}

// Advance 将时间推进 d，依次触发期间到期的定时器.
//
// 回调在调用方 goroutine 上同步执行，回调中新建的到期定时器同样会被触发.
func (c *ManualClock) Advance(d time.Duration) {
	target := c.Now().Add(d)
	for c.fireNext(target) {
	}
	c.advanceTo(target)
}

func (c *ManualClock) advanceTo(target time.Time) {
	c.mu.Lock()
	if c.now.Before(target) {
		c.now = target
	}
	c.mu.Unlock()
}

// Pending 返回尚未触发的定时器数量.
func (c *ManualClock) Pending() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.timers)
}

// fireNext 触发不晚于 target 的最早定时器，没有可触发的定时器时返回 false.
func (c *ManualClock) fireNext(target time.Time) bool {
	c.mu.Lock()
	if len(c.timers) == 0 {
		c.mu.Unlock()
		return false
	}
	sort.SliceStable(c.timers, func(i, j int) bool {
		if c.timers[i].at.Equal(c.timers[j].at) {
			return c.timers[i].seq < c.timers[j].seq
		}
		return c.timers[i].at.Before(c.timers[j].at)
	})
	next := c.timers[0]
	if next.at.After(target) {
		c.mu.Unlock()
		return false
	}
	c.timers = c.timers[1:]
	if next.at.After(c.now) {
		c.now = next.at
	}
	c.mu.Unlock()

	next.f()
	return true
}

// Stop 移除定时器.
func (t *manualTimer) Stop() bool {
	c := t.clock
	c.mu.Lock()
	defer c.mu.Unlock()

	for i, other := range c.timers {
		if other == t {
			c.timers = append(c.timers[:i], c.timers[i+1:]...)
			return true
		}
	}
	return false
}
