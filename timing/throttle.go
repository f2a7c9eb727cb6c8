package timing

import (
	"runtime/debug"
	"time"
)

// Throttler 节流器，冷却期内的调用被丢弃.
type Throttler struct {
	fn    func()
	delay time.Duration
	opts  *options

	// 只在事件循环上访问
	waiting bool
}

// Throttle 创建节流器.
//
// 第一次调用立即执行并进入 delay 的冷却期.
func Throttle(fn func(), delay time.Duration, opts ...Option) *Throttler {
	o := applyOptions(opts)
	if delay <= 0 {
		logWarnf(o, "[Throttle] %s: invalid delay %s, using %s", o.name, delay, DefaultDelay)
		delay = DefaultDelay
	}
	return &Throttler{fn: fn, delay: delay, opts: o}
}

// Call 冷却期外执行 fn.
func (t *Throttler) Call() {
	t.opts.loop.Post(t.call)
}

func (t *Throttler) call() {
	if t.waiting {
		return
	}
	t.waiting = true
	t.run()
	t.opts.loop.AfterFunc(t.delay, func() { t.waiting = false })
}

func (t *Throttler) run() {
	if t.fn == nil {
		return
	}
	defer func() {
		if r := recover(); r != nil {
			logErrorf(t.opts, "[Throttle] %s: panic: %v\n%s", t.opts.name, r, debug.Stack())
		}
	}()
	t.fn()
}
