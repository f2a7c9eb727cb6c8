package events

import (
	"go.opentelemetry.io/otel/trace"

	"github.com/Tsukikage7/eventkit/logger"
	"github.com/Tsukikage7/eventkit/metrics"
)

// Option 事件管理器配置选项.
type Option func(*options)

type options struct {
	logger      logger.Logger
	metrics     metrics.Recorder
	tracer      trace.Tracer
	defaultMeta map[string]any
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

// WithTracer 设置链路追踪器，每次 Dispatch 创建一个 events.dispatch span.
//
// 示例:
//
//	tp := tracing.MustNewTracer(cfg, "web", "1.0.0")
//	m := events.NewManager(events.WithTracer(tracing.Tracer(tp)))
func WithTracer(t trace.Tracer) Option {
	return func(o *options) {
		o.tracer = t
	}
}

// WithDefaultMeta 设置所有事件的默认元数据.
func WithDefaultMeta(meta map[string]any) Option {
	return func(o *options) {
		o.defaultMeta = meta
	}
}
