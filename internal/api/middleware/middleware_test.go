package middleware

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/amitayhanson-cloud/salon-platform-sub000/pkg/metrics"
)

type recordingLogger struct {
	lines []string
}

func (l *recordingLogger) Info(format string, v ...interface{}) {
	l.lines = append(l.lines, fmt.Sprintf(format, v...))
}

func newRouter(m *metrics.Metrics, logger Logger) *mux.Router {
	r := mux.NewRouter()
	r.Use(MetricsMiddleware(m), AccessLog(logger))
	r.HandleFunc("/businesses/{businessId}/bookings/{bookingId}", func(w http.ResponseWriter, r *http.Request) {
		if mux.Vars(r)["bookingId"] == "missing" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		_, _ = w.Write([]byte("ok"))
	}).Methods(http.MethodGet)
	return r
}

func TestMetricsMiddleware_UsesRouteTemplate(t *testing.T) {
	m := metrics.NewWithRegistry("test", prometheus.NewRegistry())
	logger := &recordingLogger{}
	router := newRouter(m, logger)

	for _, id := range []string{"b1", "b2", "missing"} {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/businesses/s1/bookings/"+id, nil))
	}

	route := "/businesses/{businessId}/bookings/{bookingId}"
	assert.Equal(t, 2.0, testutil.ToFloat64(m.HTTPRequestsTotal.WithLabelValues(http.MethodGet, route, "200")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.HTTPRequestsTotal.WithLabelValues(http.MethodGet, route, "404")))

	require.Len(t, logger.lines, 3)
	assert.Contains(t, logger.lines[2], "GET /businesses/s1/bookings/missing - 404")
}
