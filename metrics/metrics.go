package metrics

import (
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	RequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "HTTP requests by method, route and status.",
	}, []string{"method", "path", "status"})

	RequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "HTTP request latency by method and route.",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path"})

	CheckoutSessions = promauto.NewCounter(prometheus.CounterOpts{
		Name: "checkout_sessions_created_total",
		Help: "Hosted checkout sessions created.",
	})

	FulfilledLines = promauto.NewCounter(prometheus.CounterOpts{
		Name: "fulfillment_lines_total",
		Help: "Cart lines fulfilled from webhook events.",
	})

	SkippedLines = promauto.NewCounter(prometheus.CounterOpts{
		Name: "fulfillment_lines_skipped_total",
		Help: "Cart lines skipped during fulfillment (missing product or stock).",
	})

	SMSFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "sms_failures_total",
		Help: "SMS deliveries the provider rejected.",
	})
)

// Middleware records a counter and latency observation per request.
func Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)

			method := c.Request().Method
			path := c.Path()
			RequestsTotal.WithLabelValues(method, path, strconv.Itoa(c.Response().Status)).Inc()
			RequestDuration.WithLabelValues(method, path).Observe(time.Since(start).Seconds())
			return err
		}
	}
}

// Handler exposes the default registry for scraping.
func Handler() echo.HandlerFunc {
	return echo.WrapHandler(promhttp.Handler())
}
