package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/redsoft-clinic/clinicflow/pkg/metrics"
)

// Metrics records per-request counters and latency. Uses the route template
// (not the raw path) so UUIDs don't explode label cardinality.
func Metrics(collector *metrics.Collector) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		collector.InFlightGauge.Inc()

		c.Next()

		collector.InFlightGauge.Dec()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		status := strconv.Itoa(c.Writer.Status())

		collector.RequestsTotal.WithLabelValues(c.Request.Method, path, status).Inc()
		collector.RequestDuration.WithLabelValues(c.Request.Method, path, status).
			Observe(time.Since(start).Seconds())
	}
}
