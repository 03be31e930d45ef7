package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitMetrics_Idempotent(t *testing.T) {
	InitMetrics()
	InitMetrics()

	assert.NotNil(t, HTTPRequestsTotal)
	assert.NotNil(t, OrdersCreatedTotal)
	assert.NotNil(t, BookCacheRequests)
	assert.NotNil(t, MessagesPublishedTotal)
}

func TestCounterVec(t *testing.T) {
	InitMetrics()

	c := OrdersCreatedTotal.WithLabelValues("cart")
	before := testutil.ToFloat64(c)
	c.Inc()
	c.Inc()
	assert.Equal(t, before+2, testutil.ToFloat64(c))
}

func TestGauge(t *testing.T) {
	InitMetrics()

	HTTPRequestsInProgress.Inc()
	HTTPRequestsInProgress.Inc()
	HTTPRequestsInProgress.Dec()
	assert.Equal(t, 1.0, gaugeValue(t, HTTPRequestsInProgress))
	HTTPRequestsInProgress.Dec()
}

func TestHistogram(t *testing.T) {
	InitMetrics()

	OrderCreationDuration.Observe(0.02)
	OrderCreationDuration.Observe(0.2)

	var m dto.Metric
	require.NoError(t, OrderCreationDuration.(prometheus.Metric).Write(&m))
	assert.GreaterOrEqual(t, m.GetHistogram().GetSampleCount(), uint64(2))
}

func TestHandler(t *testing.T) {
	InitMetrics()
	HTTPRequestsTotal.WithLabelValues("GET", "/api/books", "200").Inc()

	rec := httptest.NewRecorder()
	Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.True(t, strings.Contains(body, "leafside_http_requests_total"))
	assert.True(t, strings.Contains(body, "go_goroutines"))
}

func gaugeValue(t *testing.T, g prometheus.Gauge) float64 {
	t.Helper()
	var m dto.Metric
	require.NoError(t, g.Write(&m))
	return m.GetGauge().GetValue()
}
