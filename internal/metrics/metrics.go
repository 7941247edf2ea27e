// Package metrics defines the Prometheus instrumentation for the API.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the counters exported on /metrics.
type Metrics struct {
	LoginSuccess  prometheus.Counter
	LoginFailure  prometheus.Counter
	TokenRejected prometheus.Counter
	AccessDenied  prometheus.Counter
	OTPRequested  prometheus.Counter
	OTPCompleted  prometheus.Counter
}

// New registers the API counters with the given registerer.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		LoginSuccess: factory.NewCounter(prometheus.CounterOpts{
			Name: "backoffice_login_success_total",
			Help: "Number of successful logins.",
		}),
		LoginFailure: factory.NewCounter(prometheus.CounterOpts{
			Name: "backoffice_login_failure_total",
			Help: "Number of failed login attempts.",
		}),
		TokenRejected: factory.NewCounter(prometheus.CounterOpts{
			Name: "backoffice_token_rejected_total",
			Help: "Number of requests rejected for a missing or invalid session token.",
		}),
		AccessDenied: factory.NewCounter(prometheus.CounterOpts{
			Name: "backoffice_access_denied_total",
			Help: "Number of requests denied by the role or permission gate.",
		}),
		OTPRequested: factory.NewCounter(prometheus.CounterOpts{
			Name: "backoffice_password_reset_requested_total",
			Help: "Number of password-reset OTPs issued.",
		}),
		OTPCompleted: factory.NewCounter(prometheus.CounterOpts{
			Name: "backoffice_password_reset_completed_total",
			Help: "Number of completed password resets.",
		}),
	}
}
