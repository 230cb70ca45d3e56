package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/tunewave/backend/internal/metrics"
)

// MetricsMiddleware collects HTTP metrics for Prometheus
func MetricsMiddleware() gin.HandlerFunc {
	m := metrics.Get()

	return func(c *gin.Context) {
		startTime := time.Now()

		c.Next()

		// Use the route template, not the raw path, so /tracks/42 and
		// /tracks/43 share one label set.
		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}

		duration := time.Since(startTime).Seconds()
		// Numeric status as string (e.g. "200", "500") so Grafana
		// queries like status=~"5.." match 5xx errors.
		statusStr := strconv.Itoa(c.Writer.Status())

		m.HTTPRequestsTotal.WithLabelValues(c.Request.Method, path, statusStr).Inc()
		m.HTTPRequestDuration.WithLabelValues(c.Request.Method, path, statusStr).Observe(duration)
	}
}
