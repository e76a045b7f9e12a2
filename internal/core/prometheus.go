package core

import (
	"context"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"missioncontrol/internal/infra/persistence/memory"
)

// PrometheusMetricsRecorder counts operations by outcome and tracks their
// latency in a histogram.
type PrometheusMetricsRecorder struct {
	operations *prometheus.CounterVec
	durations  *prometheus.HistogramVec
}

// NewPrometheusMetricsRecorder registers the operation metrics under
// namespace with reg.
func NewPrometheusMetricsRecorder(reg prometheus.Registerer, namespace string) (*PrometheusMetricsRecorder, error) {
	r := &PrometheusMetricsRecorder{
		operations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "operations_total",
			Help:      "Mission control operations by outcome.",
		}, []string{"operation", "status"}),
		durations: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "operation_duration_seconds",
			Help:      "Mission control operation latency.",
			Buckets:   prometheus.ExponentialBuckets(0.00001, 4, 10),
		}, []string{"operation"}),
	}
	if reg == nil {
		return r, nil
	}
	for _, c := range []prometheus.Collector{r.operations, r.durations} {
		if err := reg.Register(c); err != nil {
			return nil, fmt.Errorf("register operation metrics: %w", err)
		}
	}
	return r, nil
}

// Observe implements MetricsRecorder.
func (r *PrometheusMetricsRecorder) Observe(_ context.Context, operation string, success bool, duration time.Duration) {
	if operation == "" {
		return
	}
	r.operations.WithLabelValues(operation, statusLabel(success)).Inc()
	r.durations.WithLabelValues(operation).Observe(duration.Seconds())
}

// WithPrometheusRegisterer asks OpenService to register Prometheus metrics
// under the configured namespace: the operation recorder, unless another
// recorder was supplied, and a StoreCollector for the new store.
// NewService and NewInMemoryService ignore it.
func WithPrometheusRegisterer(reg prometheus.Registerer) ServiceOption {
	return func(s *Service) {
		s.registerer = reg
	}
}

func (s *Service) registerPrometheus(namespace string) error {
	if s.registerer == nil {
		return nil
	}
	if _, unset := s.metrics.(noopMetrics); unset {
		rec, err := NewPrometheusMetricsRecorder(s.registerer, namespace)
		if err != nil {
			return err
		}
		s.metrics = rec
	}
	if err := s.registerer.Register(NewStoreCollector(namespace, s.store)); err != nil {
		return fmt.Errorf("register store metrics: %w", err)
	}
	return nil
}

// StoreCollector exposes store sizes as gauges. Collect reads the store, so
// Gather must be called from the goroutine that owns it.
type StoreCollector struct {
	store *memory.Store

	missions       *prometheus.Desc
	capacity       *prometheus.Desc
	communications *prometheus.Desc
	commCapacity   *prometheus.Desc
}

// NewStoreCollector describes gauges for store under namespace.
func NewStoreCollector(namespace string, store *memory.Store) *StoreCollector {
	return &StoreCollector{
		store: store,
		missions: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, "", "missions"),
			"Live missions in the store.", nil, nil),
		capacity: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, "", "mission_capacity"),
			"Allocated mission slots.", nil, nil),
		communications: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, "", "communications"),
			"Log entries across all missions.", nil, nil),
		commCapacity: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, "", "communication_capacity"),
			"Allocated log slots across all missions.", nil, nil),
	}
}

// Describe implements prometheus.Collector.
func (c *StoreCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.missions
	ch <- c.capacity
	ch <- c.communications
	ch <- c.commCapacity
}

// Collect implements prometheus.Collector.
func (c *StoreCollector) Collect(ch chan<- prometheus.Metric) {
	stats := c.store.Stats()
	ch <- prometheus.MustNewConstMetric(c.missions, prometheus.GaugeValue, float64(stats.Missions))
	ch <- prometheus.MustNewConstMetric(c.capacity, prometheus.GaugeValue, float64(stats.Capacity))
	ch <- prometheus.MustNewConstMetric(c.communications, prometheus.GaugeValue, float64(stats.Communications))
	ch <- prometheus.MustNewConstMetric(c.commCapacity, prometheus.GaugeValue, float64(stats.CommunicationCapacity))
}
