package scroll

import (
	"time"

	"github.com/Tsukikage7/eventkit/eventloop"
	"github.com/Tsukikage7/eventkit/logger"
	"github.com/Tsukikage7/eventkit/metrics"
)

// Option 观察器配置选项.
type Option func(*options)

type options struct {
	root            Source
	delay           time.Duration
	cancelOnDestroy bool
	loop            *eventloop.Loop
	logger          logger.Logger
	metrics         metrics.Recorder
}

func defaultOptions() *options {
	return &options{
		delay: DefaultDelay,
	}
}

// WithRoot 设置滚动根，默认使用 DefaultViewport().
func WithRoot(root Source) Option {
	return func(o *options) {
		o.root = root
	}
}

// WithDelay 设置阶段判定延迟，非正值使用默认值.
func WithDelay(d time.Duration) Option {
	return func(o *options) {
		if d > 0 {
			o.delay = d
		}
	}
}

// WithConfig 从配置设置延迟与销毁行为.
func WithConfig(cfg *Config) Option {
	return func(o *options) {
		if cfg == nil {
			return
		}
		if cfg.Delay > 0 {
			o.delay = cfg.Delay
		}
		o.cancelOnDestroy = cfg.CancelOnDestroy
	}
}

// WithCancelOnDestroy 设置销毁时是否取消尚未触发的 end 阶段.
//
// 默认 false，销毁前已开始的滚动仍会收到 end.
func WithCancelOnDestroy(cancel bool) Option {
	return func(o *options) {
		o.cancelOnDestroy = cancel
	}
}

// WithLoop 设置事件循环，默认使用 eventloop.Default().
func WithLoop(l *eventloop.Loop) Option {
	return func(o *options) {
		o.loop = l
	}
}

// WithLogger 设置日志记录器.
func WithLogger(log logger.Logger) Option {
	return func(o *options) {
		o.logger = log
	}
}

// WithMetrics 设置指标记录器.
func WithMetrics(r metrics.Recorder) Option {
	return func(o *options) {
		o.metrics = r
	}
}
