package metrics

import (
	"net/http"
	"sort"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// PrometheusCollector Prometheus 指标收集器实现.
//
// 指标按名称懒注册，第一次出现的 label 集合决定该指标的 label 名称.
// 之后 label 名称不一致的调用会被忽略.
type PrometheusCollector struct {
	config *Config

	counters   map[string]*prometheus.CounterVec
	histograms map[string]*prometheus.HistogramVec
	gauges     map[string]*prometheus.GaugeVec
	mu         sync.RWMutex

	registry *prometheus.Registry
}

// NewPrometheus 创建 Prometheus 指标收集器.
func NewPrometheus(cfg *Config) (*PrometheusCollector, error) {
	if cfg == nil {
		return nil, ErrNilConfig
	}
	if cfg.Namespace == "" {
		cfg.Namespace = "eventkit"
	}

	// 独立注册表，避免与默认注册表冲突
	return &PrometheusCollector{
		config:     cfg,
		counters:   make(map[string]*prometheus.CounterVec),
		histograms: make(map[string]*prometheus.HistogramVec),
		gauges:     make(map[string]*prometheus.GaugeVec),
		registry:   prometheus.NewRegistry(),
	}, nil
}

// Counter 增加计数器.
//
// 使用示例:
//
//	collector.Counter("flatten_phase_total", map[string]string{"name": "scroll", "phase": "start"})
func (c *PrometheusCollector) Counter(name string, labels map[string]string) {
	labelNames := labelKeys(labels)

	c.mu.RLock()
	counter, exists := c.counters[name]
	c.mu.RUnlock()

	if !exists {
		c.mu.Lock()
		if counter, exists = c.counters[name]; !exists {
			counter = prometheus.NewCounterVec(
				prometheus.CounterOpts{
					Namespace: c.config.Namespace,
					Name:      name,
					Help:      "Counter: " + name,
				},
				labelNames,
			)
			if err := c.registry.Register(counter); err == nil {
				c.counters[name] = counter
			} else {
				counter = nil
			}
		}
		c.mu.Unlock()
	}

	if counter == nil {
		return
	}
	if m, err := counter.GetMetricWith(labels); err == nil {
		m.Inc()
	}
}

// Histogram 观察直方图.
//
// 使用示例:
//
//	collector.Histogram("events_dispatch_duration_seconds", 0.002, map[string]string{"name": "saved"})
func (c *PrometheusCollector) Histogram(name string, value float64, labels map[string]string) {
	labelNames := labelKeys(labels)

	c.mu.RLock()
	histogram, exists := c.histograms[name]
	c.mu.RUnlock()

	if !exists {
		c.mu.Lock()
		if histogram, exists = c.histograms[name]; !exists {
			histogram = prometheus.NewHistogramVec(
				prometheus.HistogramOpts{
					Namespace: c.config.Namespace,
					Name:      name,
					Help:      "Histogram: " + name,
					Buckets:   prometheus.DefBuckets,
				},
				labelNames,
			)
			if err := c.registry.Register(histogram); err == nil {
				c.histograms[name] = histogram
			} else {
				histogram = nil
			}
		}
		c.mu.Unlock()
	}

	if histogram == nil {
		return
	}
	if m, err := histogram.GetMetricWith(labels); err == nil {
		m.Observe(value)
	}
}

// Gauge 设置仪表盘.
func (c *PrometheusCollector) Gauge(name string, value float64, labels map[string]string) {
	labelNames := labelKeys(labels)

	c.mu.RLock()
	gauge, exists := c.gauges[name]
	c.mu.RUnlock()

	if !exists {
		c.mu.Lock()
		if gauge, exists = c.gauges[name]; !exists {
			gauge = prometheus.NewGaugeVec(
				prometheus.GaugeOpts{
					Namespace: c.config.Namespace,
					Name:      name,
					Help:      "Gauge: " + name,
				},
				labelNames,
			)
			if err := c.registry.Register(gauge); err == nil {
				c.gauges[name] = gauge
			} else {
				gauge = nil
			}
		}
		c.mu.Unlock()
	}

	if gauge == nil {
		return
	}
	if m, err := gauge.GetMetricWith(labels); err == nil {
		m.Set(value)
	}
}

// labelKeys 返回排序后的 label 名称.
func labelKeys(labels map[string]string) []string {
	names := make([]string, 0, len(labels))
	for k := range labels {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

// Registry 返回底层注册表.
func (c *PrometheusCollector) Registry() *prometheus.Registry {
	return c.registry
}

// GetHandler 返回 metrics 的 HTTP 处理器.
func (c *PrometheusCollector) GetHandler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
}

// GetPath 返回 metrics 路径.
func (c *PrometheusCollector) GetPath() string {
	if c.config.Path == "" {
		return "/metrics"
	}
	return c.config.Path
}
