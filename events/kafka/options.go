package kafka

import (
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"

	"github.com/Tsukikage7/eventkit/logger"
	"github.com/Tsukikage7/eventkit/metrics"
)

// Option 目标配置选项.
type Option func(*options)

type options struct {
	logger     logger.Logger
	metrics    metrics.Recorder
	tracer     trace.Tracer
	propagator propagation.TextMapPropagator
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

// WithTracer 设置追踪器，每条消息创建一个 producer span.
func WithTracer(t trace.Tracer) Option {
	return func(o *options) {
		o.tracer = t
	}
}

// WithPropagator 设置写入消息头的追踪上下文传播器，默认使用全局传播器.
func WithPropagator(p propagation.TextMapPropagator) Option {
	return func(o *options) {
		o.propagator = p
	}
}
