package middleware

import (
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"videepat_foods/internal/metrics"
)

// PrometheusMetrics считает запросы по шаблону маршрута, а не по URI,
// чтобы id и slug не раздували кардинальность.
func PrometheusMetrics(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		start := time.Now()
		err := next(c)
		if err != nil {
			c.Error(err)
		}
		duration := time.Since(start).Seconds()

		path := c.Path()
		if path == "" {
			path = "unmatched"
		}

		metrics.HTTPRequestsTotal.WithLabelValues(
			c.Request().Method,
			path,
			strconv.Itoa(c.Response().Status),
		).Inc()

		metrics.HTTPRequestDuration.WithLabelValues(
			c.Request().Method,
			path,
		).Observe(duration)

		return nil
	}
}
