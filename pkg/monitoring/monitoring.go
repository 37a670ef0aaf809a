package monitoring

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	RequestCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "endpoint", "status"},
	)

	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests",
			Buckets: []float64{0.1, 0.5, 1, 2, 5},
		},
		[]string{"method", "endpoint"},
	)

	ExtractionCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "question_extractions_total",
			Help: "Question extraction runs by outcome",
		},
		[]string{"outcome"},
	)

	ExtractionPasses = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "question_extraction_passes",
			Help:    "Refinement passes executed per successful extraction",
			Buckets: []float64{1, 2},
		},
	)

	ImportedTests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "backup_imported_tests_total",
			Help: "Backup import results by disposition",
		},
		[]string{"disposition"},
	)
)

func Init() {
	prometheus.MustRegister(RequestCounter)
	prometheus.MustRegister(RequestDuration)
	prometheus.MustRegister(ExtractionCounter)
	prometheus.MustRegister(ExtractionPasses)
	prometheus.MustRegister(ImportedTests)
}

func MetricsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		duration := time.Since(start).Seconds()
		status := c.Writer.Status()

		RequestCounter.WithLabelValues(
			c.Request.Method,
			c.FullPath(),
			strconv.Itoa(status),
		).Inc()

		RequestDuration.WithLabelValues(
			c.Request.Method,
			c.FullPath(),
		).Observe(duration)
	}
}

func PrometheusHandler() gin.HandlerFunc {
	h := promhttp.Handler()
	return func(c *gin.Context) {
		h.ServeHTTP(c.Writer, c.Request)
	}
}
