package web

import (
	"errors"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/parkingwang/oasgen/pkg/oas"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const metricsNamespace = "oasgen"

type metrics struct {
	registry *prometheus.Registry
	builds   *prometheus.CounterVec
	duration prometheus.Histogram
}

func newMetrics() *metrics {
	m := &metrics{
		registry: prometheus.NewRegistry(),
		builds: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: metricsNamespace,
				Name:      "document_builds_total",
				Help:      "Total number of document builds by result",
			},
			[]string{"result"},
		),
		duration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: metricsNamespace,
				Name:      "document_build_duration_seconds",
				Help:      "Document build duration in seconds",
				Buckets:   prometheus.DefBuckets,
			},
		),
	}
	m.registry.MustRegister(
		m.builds,
		m.duration,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// observe 记录一次文档生成 result 为 ok invalid error
func (m *metrics) observe(start time.Time, err error) {
	if m == nil {
		return
	}
	result := "ok"
	if err != nil {
		result = "error"
		var ve *oas.ValidationError
		if errors.As(err, &ve) {
			result = "invalid"
		}
	}
	m.builds.WithLabelValues(result).Inc()
	m.duration.Observe(time.Since(start).Seconds())
}

func (m *metrics) handler() gin.HandlerFunc {
	return gin.WrapH(promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{}))
}
