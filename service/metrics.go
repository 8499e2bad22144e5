package service

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/rushteam/stayrec/core"
)

// Metrics 是引擎的 Prometheus 指标集。
// 用独立 Registry 而不是全局默认值，测试里可以建多个引擎互不串号。
type Metrics struct {
	Registry *prometheus.Registry

	RequestsTotal    *prometheus.CounterVec
	RequestDuration  *prometheus.HistogramVec
	RetrainTotal     *prometheus.CounterVec
	RetrainDuration  prometheus.Histogram
	ContentModelSize prometheus.Gauge
	CollabModelSize  prometheus.Gauge
}

func NewMetrics() *Metrics {
	m := &Metrics{
		Registry: prometheus.NewRegistry(),
		RequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "stayrec",
			Name:      "requests_total",
			Help:      "Recommendation requests by operation and status.",
		}, []string{"op", "status"}),
		RequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "stayrec",
			Name:      "request_duration_seconds",
			Help:      "Recommendation request latency.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"op"}),
		RetrainTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "stayrec",
			Name:      "retrain_total",
			Help:      "Retrain outcomes by model family.",
		}, []string{"family", "status"}),
		RetrainDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "stayrec",
			Name:      "retrain_duration_seconds",
			Help:      "Full retrain duration.",
			Buckets:   []float64{0.1, 0.5, 1, 5, 15, 60, 300},
		}),
		ContentModelSize: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "stayrec",
			Name:      "content_model_hotels",
			Help:      "Hotels in the serving content model generation.",
		}),
		CollabModelSize: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "stayrec",
			Name:      "collab_model_users",
			Help:      "Users in the serving collaborative model generation.",
		}),
	}
	m.Registry.MustRegister(
		m.RequestsTotal,
		m.RequestDuration,
		m.RetrainTotal,
		m.RetrainDuration,
		m.ContentModelSize,
		m.CollabModelSize,
	)
	return m
}

func (e *Engine) observe(op string, status core.Status, start time.Time) {
	e.metrics.RequestsTotal.WithLabelValues(op, string(status)).Inc()
	e.metrics.RequestDuration.WithLabelValues(op).Observe(time.Since(start).Seconds())
}
