package metrics

import (
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMiddlewareLabelsByRoute(t *testing.T) {
	gin.SetMode(gin.TestMode)
	m := New()
	r := gin.New()
	r.Use(m.Middleware())
	r.GET("/readings/:id", func(c *gin.Context) { c.Status(http.StatusNotFound) })

	for _, id := range []string{"1", "2"} {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/readings/"+id, nil))
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/nope", nil))

	assert.Equal(t, 2.0, testutil.ToFloat64(m.httpRequestsTotal.WithLabelValues("/readings/:id", "404")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.httpRequestsTotal.WithLabelValues("unmatched", "404")))
}

func TestDomainCounters(t *testing.T) {
	m := New()
	m.ReadingIngested(true, false)
	m.ReadingIngested(true, false)
	m.SettingsUpdated("sunset")
	m.PublishFailed()

	assert.Equal(t, 2.0, testutil.ToFloat64(m.readingsIngested.WithLabelValues("true", "false")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.settingsUpdates.WithLabelValues("sunset")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.publishFailures))
}

func TestRoundTripperCountsErrors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/fail" {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		_, _ = io.WriteString(w, "ok")
	}))
	defer srv.Close()

	m := New()
	client := &http.Client{Transport: m.RoundTripper("sunset", nil)}

	resp, err := client.Get(srv.URL + "/ok")
	require.NoError(t, err)
	resp.Body.Close()
	resp, err = client.Get(srv.URL + "/fail")
	require.NoError(t, err)
	resp.Body.Close()

	assert.Equal(t, 1.0, testutil.ToFloat64(m.upstreamErrors.WithLabelValues("sunset")))

	failing := &http.Client{Transport: m.RoundTripper("geocode", roundTripperFunc(func(*http.Request) (*http.Response, error) {
		return nil, errors.New("dial refused")
	}))}
	_, err = failing.Get("http://example.invalid/")
	require.Error(t, err)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.upstreamErrors.WithLabelValues("geocode")))
}

func TestHandlerExposesRegistry(t *testing.T) {
	m := New()
	m.SettingsUpdated("time")

	w := httptest.NewRecorder()
	m.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, strings.Contains(w.Body.String(), `smarthub_settings_updates_total{source="time"} 1`))
}

func TestNilMetricsIsSafe(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.ReadingIngested(true, true)
		m.SettingsUpdated("time")
		m.PublishFailed()
		_ = m.RoundTripper("x", nil)
	})
	w := httptest.NewRecorder()
	m.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
}
