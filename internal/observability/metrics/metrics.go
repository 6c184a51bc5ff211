// Package metrics exposes Prometheus collectors for the chat pipeline and
// the refill scanner.
package metrics

import "github.com/prometheus/client_golang/prometheus"

// ChatMetrics exposes counters/histograms for the message pipeline.
type ChatMetrics struct {
	messagesTotal   *prometheus.CounterVec
	pipelineLatency *prometheus.HistogramVec
	ordersPlaced    prometheus.Counter
	refillAlerts    prometheus.Counter
}

func NewChatMetrics(reg prometheus.Registerer) *ChatMetrics {
	m := &ChatMetrics{
		messagesTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "pharmacy",
			Subsystem: "chat",
			Name:      "messages_total",
			Help:      "Total chat messages processed",
		}, []string{"intent", "language", "status"}),
		pipelineLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "pharmacy",
			Subsystem: "chat",
			Name:      "pipeline_latency_seconds",
			Help:      "Latency of end-to-end message processing",
			Buckets:   prometheus.DefBuckets,
		}, []string{"intent"}),
		ordersPlaced: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "pharmacy",
			Subsystem: "orders",
			Name:      "placed_total",
			Help:      "Total orders placed through chat confirmation",
		}),
		refillAlerts: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "pharmacy",
			Subsystem: "refill",
			Name:      "alerts_total",
			Help:      "Total refill alerts emitted by the predictor",
		}),
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(m.messagesTotal, m.pipelineLatency, m.ordersPlaced, m.refillAlerts)
	return m
}

func (m *ChatMetrics) ObserveMessage(intent, language, status string) {
	if m == nil {
		return
	}
	m.messagesTotal.WithLabelValues(intent, language, status).Inc()
}

func (m *ChatMetrics) ObserveLatency(intent string, seconds float64) {
	if m == nil {
		return
	}
	m.pipelineLatency.WithLabelValues(intent).Observe(seconds)
}

func (m *ChatMetrics) ObserveOrderPlaced() {
	if m == nil {
		return
	}
	m.ordersPlaced.Inc()
}

func (m *ChatMetrics) ObserveRefillAlert() {
	if m == nil {
		return
	}
	m.refillAlerts.Inc()
}
