// Package timing 提供防抖、节流以及二者结合的阶段调度器.
//
// 所有状态变更与回调都在 eventloop.Loop 上串行执行，
// 因此 Trigger/Call 可以在任意 goroutine 上调用.
package timing

import (
	"runtime/debug"
	"time"

	"github.com/Tsukikage7/eventkit/eventloop"
)

// Flattener 阶段调度器，结合节流与防抖.
//
// 一次连续触发（burst）中:
//   - 第一次触发回调 start
//   - 冷却结束后、结束判定前的触发回调 mid
//   - 最后一次触发后静默 delay 回调 end
//
// 示例:
//
//	f := timing.Flatten(timing.Handlers{
//	    Start: func(timing.Phase) { fmt.Println("start") },
//	    End:   func(timing.Phase) { fmt.Println("end") },
//	}, 100*time.Millisecond)
//	f.Trigger()
type Flattener struct {
	handlers Handlers
	delay    time.Duration
	opts     *options

	// 以下字段只在事件循环上访问
	waiting  bool
	cooldown *eventloop.Timer
	pending  *eventloop.Timer
}

// Flatten 创建阶段调度器.
//
// delay 非正时使用 DefaultDelay.
func Flatten(h Handlers, delay time.Duration, opts ...Option) *Flattener {
	o := applyOptions(opts)
	if delay <= 0 {
		logWarnf(o, "[Flatten] %s: invalid delay %s, using %s", o.name, delay, DefaultDelay)
		delay = DefaultDelay
	}
	return &Flattener{
		handlers: h,
		delay:    delay,
		opts:     o,
	}
}

// FlattenFunc 创建所有阶段共用同一回调的调度器.
func FlattenFunc(fn PhaseFunc, delay time.Duration, opts ...Option) *Flattener {
	return Flatten(Handlers{Fallback: fn}, delay, opts...)
}

// New 根据配置创建阶段调度器.
func New(cfg *Config, h Handlers, opts ...Option) (*Flattener, error) {
	if cfg == nil {
		return nil, ErrNilConfig
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return Flatten(h, cfg.Delay, opts...), nil
}

// Delay 返回延迟.
func (f *Flattener) Delay() time.Duration {
	return f.delay
}

// Trigger 记录一次触发.
//
// 可在任意 goroutine 上调用，包括阶段回调内部.
func (f *Flattener) Trigger() {
	f.opts.loop.Post(f.trigger)
}

// Stop 取消冷却与结束判定定时器并重置状态.
//
// 被中断的 burst 不会再回调 end，之后的 Trigger 重新从 start 开始.
func (f *Flattener) Stop() {
	f.opts.loop.Post(f.reset)
}

func (f *Flattener) trigger() {
	if !f.waiting {
		if f.pending == nil {
			f.fire(PhaseStart)
		} else {
			f.fire(PhaseMid)
		}
		f.waiting = true
		f.cooldown = f.opts.loop.AfterFunc(f.delay, f.release)
	}

	f.pending.Stop()
	f.pending = f.opts.loop.AfterFunc(f.delay, f.finish)
}

// release 冷却结束.
func (f *Flattener) release() {
	f.waiting = false
	f.cooldown = nil
}

// finish 静默 delay 后结束当前 burst.
func (f *Flattener) finish() {
	f.pending = nil
	f.fire(PhaseEnd)
}

func (f *Flattener) reset() {
	f.cooldown.Stop()
	f.pending.Stop()
	f.cooldown = nil
	f.pending = nil
	f.waiting = false
	logDebugf(f.opts, "[Flatten] %s: stopped", f.opts.name)
}

// fire 调用阶段回调，回调 panic 不影响调度状态.
func (f *Flattener) fire(p Phase) {
	f.opts.metrics.Counter("flatten_phase_total", map[string]string{
		"name":  f.opts.name,
		"phase": p.String(),
	})

	fn := f.handlers.resolve(p)
	if fn == nil {
		return
	}
	defer func() {
		if r := recover(); r != nil {
			logErrorf(f.opts, "[Flatten] %s: %s callback panic: %v\n%s", f.opts.name, p, r, debug.Stack())
		}
	}()
	fn(p)
}

// 日志辅助方法.

func logDebugf(o *options, format string, args ...any) {
	if o.logger != nil {
		o.logger.Debugf(format, args...)
	}
}

func logWarnf(o *options, format string, args ...any) {
	if o.logger != nil {
		o.logger.Warnf(format, args...)
	}
}

func logErrorf(o *options, format string, args ...any) {
	if o.logger != nil {
		o.logger.Errorf(format, args...)
	}
}
