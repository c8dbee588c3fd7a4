// Package metrics holds the Prometheus collectors of the order service:
// HTTP traffic, committed state transitions and the number of stored orders
// per state.
package metrics

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"orderservice/internal/core/ports"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "orderservice"

type Metrics struct {
	Requests    *prometheus.CounterVec
	LatencyMS   *prometheus.HistogramVec
	Transitions *prometheus.CounterVec
	Orders      *prometheus.GaugeVec
}

// New registers every collector on reg. Use prometheus.DefaultRegisterer in
// production and a fresh prometheus.NewRegistry() in tests.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests.",
		}, []string{"method", "route", "status"}),
		LatencyMS: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_ms",
			Help:      "HTTP request latency in milliseconds.",
			Buckets:   []float64{5, 10, 25, 50, 100, 250, 500, 1000, 2500, 5000},
		}, []string{"method", "route"}),
		Transitions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "orders",
			Name:      "transitions_total",
			Help:      "Committed order operations by resulting state.",
		}, []string{"operation", "state"}),
		Orders: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "orders",
			Name:      "stored",
			Help:      "Number of stored orders per state.",
		}, []string{"state"}),
	}

	reg.MustRegister(m.Requests, m.LatencyMS, m.Transitions, m.Orders)
	return m
}

// SetOrderCount updates the per-state gauge.
func (m *Metrics) SetOrderCount(state string, count int64) {
	m.Orders.WithLabelValues(state).Set(float64(count))
}

// Middleware records every request under its route template, so
// /api/v1/orders/:orderId is one series regardless of the id. Errors are
// rendered here to learn the final status and are not passed further out.
func (m *Metrics) Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()

			if err := next(c); err != nil {
				c.Error(err)
			}

			route := c.Path()
			if route == "" {
				route = "unmatched"
			}
			method := c.Request().Method
			status := strconv.Itoa(c.Response().Status)

			m.Requests.WithLabelValues(method, route, status).Inc()
			m.LatencyMS.WithLabelValues(method, route).Observe(float64(time.Since(start).Milliseconds()))
			return nil
		}
	}
}

// Handler serves the collectors of g in the Prometheus text format.
func Handler(g prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(g, promhttp.HandlerOpts{})
}

// InstrumentPublisher counts every event handed to next, whether or not next
// delivers it: the event describes a change that is already committed.
func InstrumentPublisher(next ports.OrderEventPublisher, m *Metrics) ports.OrderEventPublisher {
	return instrumentedPublisher{next: next, metrics: m}
}

type instrumentedPublisher struct {
	next    ports.OrderEventPublisher
	metrics *Metrics
}

func (p instrumentedPublisher) Publish(ctx context.Context, event ports.OrderEvent) error {
	p.metrics.Transitions.WithLabelValues(event.Operation, event.State).Inc()
	return p.next.Publish(ctx, event)
}
