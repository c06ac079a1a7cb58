package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	HTTPRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests.",
		},
		[]string{"service", "method", "path", "status"},
	)

	HTTPRequestDurationSeconds = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"service", "method", "path"},
	)

	SignupsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "account_signups_total",
			Help: "Total number of signup attempts.",
		},
		[]string{"service", "result"},
	)

	LoginsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "account_logins_total",
			Help: "Total number of login attempts.",
		},
		[]string{"service", "result"},
	)

	EventRegistrationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "event_registrations_total",
			Help: "Total number of event registration attempts.",
		},
		[]string{"service", "op", "result"},
	)

	MailDeliveriesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mail_deliveries_total",
			Help: "Total number of outbound mail attempts.",
		},
		[]string{"service", "kind", "result"},
	)

	ResetRateLimitedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "password_reset_rate_limited_total",
			Help: "Password reset requests rejected by the rate limiter.",
		},
		[]string{"service"},
	)
)

func MustRegister(serviceName string) {
	HTTPRequestsTotal = HTTPRequestsTotal.MustCurryWith(prometheus.Labels{"service": serviceName})
	HTTPRequestDurationSeconds = HTTPRequestDurationSeconds.MustCurryWith(prometheus.Labels{"service": serviceName}).(*prometheus.HistogramVec)
	SignupsTotal = SignupsTotal.MustCurryWith(prometheus.Labels{"service": serviceName})
	LoginsTotal = LoginsTotal.MustCurryWith(prometheus.Labels{"service": serviceName})
	EventRegistrationsTotal = EventRegistrationsTotal.MustCurryWith(prometheus.Labels{"service": serviceName})
	MailDeliveriesTotal = MailDeliveriesTotal.MustCurryWith(prometheus.Labels{"service": serviceName})
	ResetRateLimitedTotal = ResetRateLimitedTotal.MustCurryWith(prometheus.Labels{"service": serviceName})

	prometheus.MustRegister(
		HTTPRequestsTotal,
		HTTPRequestDurationSeconds,
		SignupsTotal,
		LoginsTotal,
		EventRegistrationsTotal,
		MailDeliveriesTotal,
		ResetRateLimitedTotal,
	)
}
