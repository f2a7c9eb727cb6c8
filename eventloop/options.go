package eventloop

import "github.com/Tsukikage7/eventkit/logger"

// Option 事件循环配置选项.
type Option func(*options)

type options struct {
	name   string
	clock  Clock
	logger logger.Logger
}

func defaultOptions() *options {
	return &options{
		name:  "default",
		clock: RealClock{},
	}
}

// WithName 设置循环名称，用于日志.
func WithName(name string) Option {
	return func(o *options) {
		o.name = name
	}
}

// WithClock 设置时钟，测试中使用 ManualClock.
func WithClock(c Clock) Option {
	return func(o *options) {
		if c != nil {
			o.clock = c
		}
	}
}

// WithLogger 设置日志记录器.
func WithLogger(log logger.Logger) Option {
	return func(o *options) {
		o.logger = log
	}
}
