package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Registration results recorded by the deployer.
const (
	ResultSuccess = "success"
	ResultFailure = "failure"
	ResultSkipped = "skipped"
)

// DeployerMetrics instruments mail-session registration and unregistration.
type DeployerMetrics struct {
	registrations   *prometheus.CounterVec
	unregistrations *prometheus.CounterVec
	bindings        prometheus.Gauge
}

// NewDeployerMetrics creates a Prometheus-backed deployer metrics instance.
//
// Returns nil if metrics are not enabled (InitRegistry not called); all
// observation methods tolerate a nil receiver.
func NewDeployerMetrics() *DeployerMetrics {
	if !IsEnabled() {
		return nil
	}

	reg := GetRegistry()

	return &DeployerMetrics{
		registrations: promauto.With(reg).NewCounterVec(
			prometheus.CounterOpts{
				Name: "resourced_mail_session_registrations_total",
				Help: "Total number of mail-session registration attempts by result",
			},
			[]string{"result"},
		),
		unregistrations: promauto.With(reg).NewCounterVec(
			prometheus.CounterOpts{
				Name: "resourced_mail_session_unregistrations_total",
				Help: "Total number of mail-session unregistration attempts by result",
			},
			[]string{"result"},
		),
		bindings: promauto.With(reg).NewGauge(
			prometheus.GaugeOpts{
				Name: "resourced_mail_session_bindings",
				Help: "Number of mail-session bindings currently deployed",
			},
		),
	}
}

// ObserveRegistration records one registration attempt.
func (m *DeployerMetrics) ObserveRegistration(result string) {
	if m == nil {
		return
	}
	m.registrations.WithLabelValues(result).Inc()
	if result == ResultSuccess {
		m.bindings.Inc()
	}
}

// ObserveUnregistration records one unregistration attempt.
func (m *DeployerMetrics) ObserveUnregistration(result string) {
	if m == nil {
		return
	}
	m.unregistrations.WithLabelValues(result).Inc()
	if result == ResultSuccess {
		m.bindings.Dec()
	}
}
