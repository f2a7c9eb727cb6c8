// Package tracing 提供链路追踪初始化功能.
//
// NewTracer 创建 OpenTelemetry TracerProvider 并设置为全局 provider，
// events.Manager 与 events/kafka 等组件通过 otel 全局 API 或显式传入的
// trace.Tracer 产生 span.
package tracing

// TracingConfig 链路追踪配置.
type TracingConfig struct {
	// Enabled 是否启用链路追踪
	Enabled bool `json:"enabled" yaml:"enabled" mapstructure:"enabled"`
	// OTLP OTLP配置
	OTLP *OTLPConfig `json:"otlp" yaml:"otlp" mapstructure:"otlp"`
	// SamplingRate 采样率 (0.0-1.0)
	SamplingRate float64 `json:"sampling_rate" yaml:"sampling_rate" mapstructure:"sampling_rate"`
}

// OTLPConfig OTLP配置.
type OTLPConfig struct {
	// Endpoint OTLP Collector端点
	Endpoint string `json:"endpoint" yaml:"endpoint" mapstructure:"endpoint"`
	// Headers 请求头[可选]
	Headers map[string]string `json:"headers" yaml:"headers" mapstructure:"headers"`
}
