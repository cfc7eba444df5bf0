package metrics

import (
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "boutique",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Duration of HTTP requests in seconds.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)

	RequestTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "boutique",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests.",
		},
		[]string{"method", "path", "status"},
	)

	OrdersCreated = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "boutique",
		Name:      "orders_created_total",
		Help:      "Total number of orders created.",
	})
)

var registry = prometheus.NewRegistry()

func init() {
	registry.MustRegister(collectors.NewGoCollector())
	registry.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	registry.MustRegister(RequestDuration, RequestTotal, OrdersCreated)
}

// Middleware records duration and count for every request, labeled by
// the route pattern rather than the raw URL to keep cardinality down.
func Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)

			status := c.Response().Status
			if he, ok := err.(*echo.HTTPError); ok {
				status = he.Code
			}
			path := c.Path()
			if path == "" {
				path = c.Request().URL.Path
			}

			RequestDuration.WithLabelValues(c.Request().Method, path, strconv.Itoa(status)).
				Observe(time.Since(start).Seconds())
			RequestTotal.WithLabelValues(c.Request().Method, path, strconv.Itoa(status)).Inc()
			return err
		}
	}
}

func Handler() echo.HandlerFunc {
	h := promhttp.HandlerFor(registry, promhttp.HandlerOpts{})
	return echo.WrapHandler(h)
}
