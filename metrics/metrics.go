// Package metrics 提供 Prometheus 指标收集功能.
//
// 组件只依赖 Recorder 接口，由 PrometheusCollector 实现:
//
//	collector := metrics.MustNewMetrics(metrics.DefaultConfig())
//	f := timing.FlattenFunc(fn, 250*time.Millisecond, timing.WithMetrics(collector))
//	http.Handle(collector.GetPath(), collector.GetHandler())
package metrics

import "net/http"

// Recorder 组件使用的指标记录接口.
type Recorder interface {
	// Counter 计数器加一.
	Counter(name string, labels map[string]string)
	// Histogram 观察一个直方图样本.
	Histogram(name string, value float64, labels map[string]string)
}

// Gauger 支持仪表盘的 Recorder 额外实现该接口.
type Gauger interface {
	// Gauge 设置仪表盘数值.
	Gauge(name string, value float64, labels map[string]string)
}

// Collector 指标收集器接口.
type Collector interface {
	Recorder
	Gauger

	GetHandler() http.Handler
	GetPath() string
}

// NewMetrics 创建指标收集器.
func NewMetrics(cfg *Config) (*PrometheusCollector, error) {
	if cfg == nil {
		return nil, ErrNilConfig
	}
	return NewPrometheus(cfg)
}

// MustNewMetrics 创建指标收集器，失败时 panic.
func MustNewMetrics(cfg *Config) *PrometheusCollector {
	c, err := NewMetrics(cfg)
	if err != nil {
		panic(err)
	}
	return c
}

type nopRecorder struct{}

func (nopRecorder) Counter(string, map[string]string)            {}
func (nopRecorder) Histogram(string, float64, map[string]string) {}

// Nop 返回不记录任何指标的 Recorder.
func Nop() Recorder { return nopRecorder{} }
