package metrics

import (
	"io"
	"net/http/httptest"
	"testing"

	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func findFamily(t *testing.T, c *PrometheusCollector, name string) *dto.MetricFamily {
	t.Helper()
	families, err := c.Registry().Gather()
	require.NoError(t, err)
	for _, f := range families {
		if f.GetName() == name {
			return f
		}
	}
	return nil
}

func TestNewMetrics_NilConfig(t *testing.T) {
	c, err := NewMetrics(nil)
	assert.Nil(t, c)
	assert.ErrorIs(t, err, ErrNilConfig)
}

func TestNewPrometheus_DefaultNamespace(t *testing.T) {
	c, err := NewPrometheus(&Config{})
	require.NoError(t, err)
	assert.Equal(t, "/metrics", c.GetPath())

	c.Counter("things_total", nil)
	assert.NotNil(t, findFamily(t, c, "eventkit_things_total"))
}

func TestCounter(t *testing.T) {
	c := MustNewMetrics(DefaultConfig())

	labels := map[string]string{"name": "scroll", "phase": "start"}
	c.Counter("flatten_phase_total", labels)
	c.Counter("flatten_phase_total", labels)
	c.Counter("flatten_phase_total", map[string]string{"name": "scroll", "phase": "end"})

	f := findFamily(t, c, "eventkit_flatten_phase_total")
	require.NotNil(t, f)
	require.Len(t, f.GetMetric(), 2)

	var total float64
	for _, m := range f.GetMetric() {
		total += m.GetCounter().GetValue()
	}
	assert.Equal(t, float64(3), total)
}

func TestCounter_MismatchedLabelsIgnored(t *testing.T) {
	c := MustNewMetrics(DefaultConfig())

	c.Counter("events_dispatch_total", map[string]string{"name": "a"})
	assert.NotPanics(t, func() {
		c.Counter("events_dispatch_total", map[string]string{"other": "b"})
	})

	f := findFamily(t, c, "eventkit_events_dispatch_total")
	require.NotNil(t, f)
	assert.Len(t, f.GetMetric(), 1)
}

func TestHistogramAndGauge(t *testing.T) {
	c := MustNewMetrics(DefaultConfig())

	c.Histogram("events_dispatch_duration_seconds", 0.01, map[string]string{"name": "x"})
	c.Histogram("events_dispatch_duration_seconds", 0.02, map[string]string{"name": "x"})
	c.Gauge("scroll_position", 120, map[string]string{"root": "viewport"})
	c.Gauge("scroll_position", 80, map[string]string{"root": "viewport"})

	h := findFamily(t, c, "eventkit_events_dispatch_duration_seconds")
	require.NotNil(t, h)
	assert.Equal(t, uint64(2), h.GetMetric()[0].GetHistogram().GetSampleCount())

	g := findFamily(t, c, "eventkit_scroll_position")
	require.NotNil(t, g)
	assert.Equal(t, float64(80), g.GetMetric()[0].GetGauge().GetValue())
}

func TestGetHandler(t *testing.T) {
	c := MustNewMetrics(DefaultConfig())
	c.Counter("served_total", map[string]string{"k": "v"})

	rec := httptest.NewRecorder()
	c.GetHandler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))

	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `eventkit_served_total{k="v"} 1`)
}

func TestNop(t *testing.T) {
	r := Nop()
	assert.NotPanics(t, func() {
		r.Counter("x", nil)
		r.Histogram("y", 1, nil)
	})
}
