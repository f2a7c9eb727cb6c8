package amqp

import (
	"github.com/Tsukikage7/eventkit/logger"
	"github.com/Tsukikage7/eventkit/metrics"
)

// 交换机类型.
const (
	ExchangeDirect = "direct"
	ExchangeFanout = "fanout"
	ExchangeTopic  = "topic"
)

// Option 目标配置选项.
type Option func(*options)

type options struct {
	routingPrefix string
	exchangeType  string
	durable       bool
	mandatory     bool
	logger        logger.Logger
	metrics       metrics.Recorder
}

func defaultOptions() *options {
	return &options{
		exchangeType: ExchangeTopic,
		durable:      true,
	}
}

// WithRoutingPrefix 设置路由键前缀，路由键为 前缀 + 事件名.
func WithRoutingPrefix(prefix string) Option {
	return func(o *options) {
		o.routingPrefix = prefix
	}
}

// WithExchangeType 设置 Dial 时声明的交换机类型，默认 topic.
func WithExchangeType(kind string) Option {
	return func(o *options) {
		o.exchangeType = kind
	}
}

// WithDurable 设置交换机是否持久化，默认 true.
func WithDurable(durable bool) Option {
	return func(o *options) {
		o.durable = durable
	}
}

// WithMandatory 设置 mandatory 发布标志.
func WithMandatory(mandatory bool) Option {
	return func(o *options) {
		o.mandatory = mandatory
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
