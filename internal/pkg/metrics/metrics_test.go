package metrics_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"orderservice/internal/core/ports"
	"orderservice/internal/pkg/metrics"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubPublisher struct {
	err    error
	events []ports.OrderEvent
}

func (s *stubPublisher) Publish(_ context.Context, event ports.OrderEvent) error {
	s.events = append(s.events, event)
	return s.err
}

func TestInstrumentPublisher(t *testing.T) {
	m := metrics.New(prometheus.NewRegistry())
	next := &stubPublisher{err: errors.New("broker down")}
	publisher := metrics.InstrumentPublisher(next, m)

	err := publisher.Publish(t.Context(), ports.OrderEvent{Operation: "approve", State: "APPROVED"})

	require.EqualError(t, err, "broker down")
	assert.Len(t, next.events, 1)
	assert.InDelta(t, 1.0, testutil.ToFloat64(m.Transitions.WithLabelValues("approve", "APPROVED")), 0)
}

func TestSetOrderCount(t *testing.T) {
	m := metrics.New(prometheus.NewRegistry())

	m.SetOrderCount("APPROVED", 7)
	m.SetOrderCount("APPROVED", 3)

	assert.InDelta(t, 3.0, testutil.ToFloat64(m.Orders.WithLabelValues("APPROVED")), 0)
}

func TestMiddleware_UsesRouteTemplate(t *testing.T) {
	m := metrics.New(prometheus.NewRegistry())
	e := echo.New()
	e.Use(m.Middleware())
	e.GET("/orders/:orderId", func(c echo.Context) error {
		return echo.NewHTTPError(http.StatusNotFound, "order not found")
	})

	for _, id := range []string{"a", "b"} {
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/orders/"+id, nil))
		assert.Equal(t, http.StatusNotFound, rec.Code)
	}

	assert.InDelta(t, 2.0,
		testutil.ToFloat64(m.Requests.WithLabelValues(http.MethodGet, "/orders/:orderId", "404")), 0)
}

func TestHandler_ExposesCollectors(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := metrics.New(reg)
	m.SetOrderCount("CANCELLED", 2)

	rec := httptest.NewRecorder()
	metrics.Handler(reg).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, strings.Contains(rec.Body.String(), `orderservice_orders_stored{state="CANCELLED"} 2`))
}
