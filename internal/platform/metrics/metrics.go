package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "kanso",
			Name:      "http_requests_total",
			Help:      "HTTP requests by route, method and status.",
		},
		[]string{"route", "method", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "kanso",
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by route and method.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"route", "method"},
	)

	CheckInUpsertsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "kanso",
			Name:      "checkin_upserts_total",
			Help:      "Check-in upserts by outcome (inserted, updated, conflict_resolved).",
		},
		[]string{"outcome"},
	)

	RateLimitedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "kanso",
			Name:      "rate_limited_requests_total",
			Help:      "Requests rejected by the rate limiter.",
		},
	)

	RemindersArmedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "kanso",
			Name:      "reminders_armed_total",
			Help:      "Reminder timers armed.",
		},
	)

	RemindersDeliveredTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "kanso",
			Name:      "reminders_delivered_total",
			Help:      "Reminder deliveries by result (sent, failed, dropped, unsupported).",
		},
		[]string{"result"},
	)
)
