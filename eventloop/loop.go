// Package eventloop 提供单 goroutine 串行执行器.
//
// timing 与 scroll 的所有状态变更和定时器回调都投递到同一个 Loop 上执行，
// 组件内部因此不需要加锁. 投递永不阻塞，回调中可以再次投递任务.
//
// 示例:
//
//	loop := eventloop.New(eventloop.WithName("ui"))
//	defer loop.Close()
//
//	loop.Post(func() { fmt.Println("on loop") })
//	t := loop.AfterFunc(100*time.Millisecond, func() { fmt.Println("later") })
//	t.Stop()
package eventloop

import (
	"runtime/debug"
	"sync"
	"sync/atomic"
	"time"
)

// Loop 串行任务执行器.
type Loop struct {
	opts *options

	mu     sync.Mutex
	queue  *taskQueue
	closed bool

	wake chan struct{}
	done chan struct{}
}

// New 创建并启动事件循环.
func New(opts ...Option) *Loop {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}

	l := &Loop{
		opts:  o,
		queue: newTaskQueue(),
		wake:  make(chan struct{}, 1),
		done:  make(chan struct{}),
	}
	go l.run()
	return l
}

var (
	defaultLoop     *Loop
	defaultLoopOnce sync.Once
)

// Default 返回进程级共享的事件循环，首次调用时启动.
func Default() *Loop {
	defaultLoopOnce.Do(func() {
		defaultLoop = New(WithName("default"))
	})
	return defaultLoop
}

// Clock 返回循环使用的时钟.
func (l *Loop) Clock() Clock {
	return l.opts.clock
}

// Post 投递任务到队尾，循环已关闭时返回 false.
func (l *Loop) Post(task func()) bool {
	if task == nil {
		return false
	}

	l.mu.Lock()
	if l.closed {
		l.mu.Unlock()
		return false
	}
	l.queue.push(task)
	l.mu.Unlock()

	select {
	case l.wake <- struct{}{}:
	default:
	}
	return true
}

// Do 投递任务并等待其执行完毕.
//
// 不能在循环自身的任务中调用，否则会死锁.
func (l *Loop) Do(task func()) bool {
	finished := make(chan struct{})
	if !l.Post(func() {
		defer close(finished)
		task()
	}) {
		return false
	}
	<-finished
	return true
}

// Sync 等待此前投递的任务全部执行完毕.
func (l *Loop) Sync() {
	l.Do(func() {})
}

// AfterFunc 在 d 之后将 fn 投递到循环执行.
//
// 返回的 Timer 在循环内 Stop 后，fn 保证不会再执行.
func (l *Loop) AfterFunc(d time.Duration, fn func()) *Timer {
	t := &Timer{}
	stopper := l.opts.clock.AfterFunc(d, func() {
		l.Post(func() {
			if t.state.CompareAndSwap(timerPending, timerFired) {
				fn()
			}
		})
	})
	t.mu.Lock()
	t.stopper = stopper
	t.mu.Unlock()
	return t
}

// Advance 推进 ManualClock，每触发一个定时器都等待循环处理完毕.
//
// 回调中新建的定时器按推进后的时间计时，结果与真实时钟一致.
// 时钟不是 ManualClock 时 panic.
func (l *Loop) Advance(d time.Duration) {
	mc, ok := l.opts.clock.(*ManualClock)
	if !ok {
		panic("eventloop: Advance requires a ManualClock")
	}

	l.Sync()
	target := mc.Now().Add(d)
	for mc.fireNext(target) {
		l.Sync()
	}
	mc.advanceTo(target)
}

// Close 停止接收任务，等待已投递的任务执行完毕后退出.
//
// 不能在循环自身的任务中调用.
func (l *Loop) Close() {
	l.mu.Lock()
	if l.closed {
		l.mu.Unlock()
		<-l.done
		return
	}
	l.closed = true
	l.mu.Unlock()

	select {
	case l.wake <- struct{}{}:
	default:
	}
	<-l.done
	l.logDebugf("loop %q closed", l.opts.name)
}

// Len 返回等待执行的任务数量.
func (l *Loop) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.queue.len()
}

func (l *Loop) run() {
	defer close(l.done)

	for {
		l.mu.Lock()
		task, ok := l.queue.pop()
		closed := l.closed
		l.mu.Unlock()

		if !ok {
			if closed {
				return
			}
			<-l.wake
			continue
		}
		l.execute(task)
	}
}

// execute 执行单个任务，任务 panic 时记录日志后继续运行.
func (l *Loop) execute(task func()) {
	defer func() {
		if r := recover(); r != nil {
			l.logErrorf("loop %q task panic: %v\n%s", l.opts.name, r, debug.Stack())
		}
	}()
	task()
}

const (
	timerPending int32 = iota
	timerFired
	timerStopped
)

// Timer 循环定时器.
type Timer struct {
	state   atomic.Int32
	mu      sync.Mutex
	stopper Stopper
}

// Stop 取消定时器，回调尚未执行时返回 true.
func (t *Timer) Stop() bool {
	if t == nil || !t.state.CompareAndSwap(timerPending, timerStopped) {
		return false
	}
	t.mu.Lock()
	if t.stopper != nil {
		t.stopper.Stop()
	}
	t.mu.Unlock()
	return true
}

// 日志辅助方法.

func (l *Loop) logDebugf(format string, args ...any) {
	if log := l.opts.logger; log != nil {
		log.Debugf("[EventLoop] "+format, args...)
	}
}

func (l *Loop) logErrorf(format string, args ...any) {
	if log := l.opts.logger; log != nil {
		log.Errorf("[EventLoop] "+format, args...)
	}
}
