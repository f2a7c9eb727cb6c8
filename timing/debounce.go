package timing

import (
	"runtime/debug"
	"time"

	"github.com/Tsukikage7/eventkit/eventloop"
)

// Debouncer 防抖器，连续调用只在最后一次调用静默 delay 后执行一次.
type Debouncer struct {
	fn    func()
	delay time.Duration
	opts  *options

	// 只在事件循环上访问
	timer *eventloop.Timer
}

// Debounce 创建防抖器.
//
// delay 非正时使用 DefaultDelay.
func Debounce(fn func(), delay time.Duration, opts ...Option) *Debouncer {
	o := applyOptions(opts)
	if delay <= 0 {
		logWarnf(o, "[Debounce] %s: invalid delay %s, using %s", o.name, delay, DefaultDelay)
		delay = DefaultDelay
	}
	return &Debouncer{fn: fn, delay: delay, opts: o}
}

// Call 重新开始计时.
func (d *Debouncer) Call() {
	d.opts.loop.Post(func() {
		d.timer.Stop()
		d.timer = d.opts.loop.AfterFunc(d.delay, d.run)
	})
}

// Stop 取消尚未执行的调用.
func (d *Debouncer) Stop() {
	d.opts.loop.Post(func() {
		d.timer.Stop()
		d.timer = nil
	})
}

func (d *Debouncer) run() {
	d.timer = nil
	if d.fn == nil {
		return
	}
	defer func() {
		if r := recover(); r != nil {
			logErrorf(d.opts, "[Debounce] %s: panic: %v\n%s", d.opts.name, r, debug.Stack())
		}
	}()
	d.fn()
}
