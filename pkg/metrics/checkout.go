package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// CheckoutMetrics records outcomes of the checkout pipeline.
type CheckoutMetrics struct {
	duration *prometheus.HistogramVec
	success  prometheus.Counter
	failure  *prometheus.CounterVec
	codes    prometheus.Counter
}

// NewCheckoutMetrics registers the checkout metrics on the provided registerer.
func NewCheckoutMetrics(reg prometheus.Registerer) *CheckoutMetrics {
	if reg == nil {
		return &CheckoutMetrics{}
	}
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "checkout_duration_seconds",
		Help:    "Duration of checkout transactions in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"outcome"})
	success := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "checkout_success_total",
		Help: "Successful checkout submissions.",
	})
	failure := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "checkout_failure_total",
		Help: "Failed checkout submissions by stage.",
	}, []string{"stage"})
	codes := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "order_codes_allocated_total",
		Help: "Order codes handed out by the allocator.",
	})
	reg.MustRegister(duration, success, failure, codes)
	return &CheckoutMetrics{
		duration: duration,
		success:  success,
		failure:  failure,
		codes:    codes,
	}
}

// ObserveDuration records a checkout duration for the given outcome.
func (c *CheckoutMetrics) ObserveDuration(outcome string, duration time.Duration) {
	if c == nil || c.duration == nil {
		return
	}
	c.duration.WithLabelValues(outcome).Observe(duration.Seconds())
}

// IncSuccess increments the successful checkout counter.
func (c *CheckoutMetrics) IncSuccess() {
	if c == nil || c.success == nil {
		return
	}
	c.success.Inc()
}

// IncFailure increments the failure counter for the named stage.
func (c *CheckoutMetrics) IncFailure(stage string) {
	if c == nil || c.failure == nil {
		return
	}
	c.failure.WithLabelValues(stage).Inc()
}

// IncCodeAllocated increments the order code allocation counter.
func (c *CheckoutMetrics) IncCodeAllocated() {
	if c == nil || c.codes == nil {
		return
	}
	c.codes.Inc()
}
