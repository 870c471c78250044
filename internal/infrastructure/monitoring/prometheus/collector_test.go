package prometheus

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/turtacn/keyip-mcs/internal/infrastructure/monitoring/logging"
)

func newTestCollector(t *testing.T) MetricsCollector {
	t.Helper()
	c, err := NewMetricsCollector(CollectorConfig{Namespace: "test", Subsystem: "unit"}, logging.NewNopLogger())
	require.NoError(t, err)
	return c
}

func scrapeMetrics(t *testing.T, collector MetricsCollector) string {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	w := httptest.NewRecorder()
	collector.Handler().ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	return w.Body.String()
}

// counterValue sums a counter family across its label sets.
func counterValue(t *testing.T, c MetricsCollector, name string) float64 {
	t.Helper()
	families, err := c.Gather()
	require.NoError(t, err)
	for _, f := range families {
		if f.GetName() != name {
			continue
		}
		total := 0.0
		for _, m := range f.GetMetric() {
			total += m.GetCounter().GetValue()
		}
		return total
	}
	return 0
}

func TestNewMetricsCollector_EmptyNamespace(t *testing.T) {
	_, err := NewMetricsCollector(CollectorConfig{}, nil)
	assert.Error(t, err)
}

func TestRegisterCounter_IncAndScrape(t *testing.T) {
	c := newTestCollector(t)
	vec := c.RegisterCounter("widgets_total", "Widgets.", "kind")
	vec.WithLabelValues("a").Inc()
	vec.WithLabelValues("b").Add(2)

	assert.Equal(t, 3.0, counterValue(t, c, "test_unit_widgets_total"))
	assert.Contains(t, scrapeMetrics(t, c), `test_unit_widgets_total{kind="a"} 1`)
}

func TestRegister_IsIdempotent(t *testing.T) {
	c := newTestCollector(t)
	first := c.RegisterCounter("dup_total", "Dup.", "l")
	second := c.RegisterCounter("dup_total", "Dup.", "l")
	first.WithLabelValues("x").Inc()
	second.WithLabelValues("x").Inc()
	assert.Equal(t, 2.0, counterValue(t, c, "test_unit_dup_total"))
}

func TestRegister_TypeMismatchFallsBackToNoop(t *testing.T) {
	c := newTestCollector(t)
	c.RegisterCounter("clash", "Clash.")
	g := c.RegisterGauge("clash", "Clash.")
	assert.NotPanics(t, func() { g.WithLabelValues().Set(3) })
}

func TestNoopCollector(t *testing.T) {
	c := NewNoopCollector()
	assert.NotPanics(t, func() {
		c.RegisterCounter("a", "a").WithLabelValues("x").Inc()
		c.RegisterGauge("b", "b").WithLabelValues().Dec()
		c.RegisterHistogram("c", "c", nil).WithLabelValues().Observe(1)
	})
	families, err := c.Gather()
	assert.NoError(t, err)
	assert.Empty(t, families)
}

func TestTimer(t *testing.T) {
	c := newTestCollector(t)
	h := c.RegisterHistogram("op_seconds", "Op.", nil)
	d := NewTimer(h.WithLabelValues()).ObserveDuration()
	assert.GreaterOrEqual(t, d.Nanoseconds(), int64(0))
	assert.Contains(t, scrapeMetrics(t, c), "test_unit_op_seconds_count 1")
}
