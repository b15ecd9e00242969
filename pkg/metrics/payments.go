package metrics

import (
	"strings"

	"github.com/prometheus/client_golang/prometheus"
)

// PaymentMetrics records webhook processing and swipe activity counters.
type PaymentMetrics struct {
	webhookEvents *prometheus.CounterVec
	swipes        *prometheus.CounterVec
	matches       prometheus.Counter
}

// NewPaymentMetrics registers the payment metrics on the provided registerer.
func NewPaymentMetrics(reg prometheus.Registerer) *PaymentMetrics {
	if reg == nil {
		return &PaymentMetrics{}
	}
	webhookEvents := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "payment_webhook_events_total",
		Help: "Cashfree webhook events by type and outcome.",
	}, []string{"event_type", "outcome"})
	swipes := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "swipes_total",
		Help: "Swipe decisions recorded, by action.",
	}, []string{"action"})
	matches := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "matches_created_total",
		Help: "Mutual-like matches created.",
	})
	reg.MustRegister(webhookEvents, swipes, matches)
	return &PaymentMetrics{
		webhookEvents: webhookEvents,
		swipes:        swipes,
		matches:       matches,
	}
}

// ObserveWebhookEvent counts one processed webhook delivery.
func (m *PaymentMetrics) ObserveWebhookEvent(eventType, outcome string) {
	if m == nil || m.webhookEvents == nil {
		return
	}
	m.webhookEvents.WithLabelValues(normalizeLabel(eventType), normalizeLabel(outcome)).Inc()
}

// ObserveSwipe counts one recorded swipe.
func (m *PaymentMetrics) ObserveSwipe(action string) {
	if m == nil || m.swipes == nil {
		return
	}
	m.swipes.WithLabelValues(normalizeLabel(action)).Inc()
}

// ObserveMatch counts one created match.
func (m *PaymentMetrics) ObserveMatch() {
	if m == nil || m.matches == nil {
		return
	}
	m.matches.Inc()
}

func normalizeLabel(value string) string {
	value = strings.TrimSpace(strings.ToLower(value))
	if value == "" {
		return "unknown"
	}
	return value
}
