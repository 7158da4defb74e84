package middleware

import (
	"log/slog"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/shoplist-app/shoplist/internal/metrics"
)

// RequestLogger logs every request and feeds the latency histogram. The
// metric is labelled with the route pattern, not the raw path, to keep
// cardinality bounded.
func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		duration := time.Since(start)
		status := c.Writer.Status()
		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}

		metrics.RequestDuration.
			WithLabelValues(c.Request.Method, route, strconv.Itoa(status)).
			Observe(duration.Seconds())

		logger := slog.Info
		if status >= 500 {
			logger = slog.Error
		} else if status >= 400 {
			logger = slog.Warn
		}
		logger("request",
			"method", c.Request.Method,
			"route", route,
			"status", status,
			"duration_ms", duration.Milliseconds(),
		)
	}
}
