package timing

import (
	"github.com/Tsukikage7/eventkit/eventloop"
	"github.com/Tsukikage7/eventkit/logger"
	"github.com/Tsukikage7/eventkit/metrics"
)

// Option 定时控制配置选项.
type Option func(*options)

type options struct {
	name    string
	loop    *eventloop.Loop
	logger  logger.Logger
	metrics metrics.Recorder
}

func defaultOptions() *options {
	return &options{
		name: "flatten",
	}
}

func applyOptions(opts []Option) *options {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}
	if o.loop == nil {
		o.loop = eventloop.Default()
	}
	if o.metrics == nil {
		o.metrics = metrics.Nop()
	}
	return o
}

// WithName 设置名称，用作日志与指标的 name 标签.
func WithName(name string) Option {
	return func(o *options) {
		o.name = name
	}
}

// WithLoop 设置执行回调的事件循环，默认使用 eventloop.Default().
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
