// Package metrics defines the Prometheus metrics of the job board API.
// Metrics register with the default registry on import and are served by
// promhttp at /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "findjob"

// HTTPRequestsTotal counts handled requests.
// Labels: method, route (gin full path), status (numeric code).
var HTTPRequestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "http_requests_total",
		Help:      "Total number of HTTP requests handled.",
	},
	[]string{"method", "route", "status"},
)

// HTTPRequestDuration measures handler latency.
var HTTPRequestDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "http_request_duration_seconds",
		Help:      "Duration of HTTP requests.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"method", "route"},
)

// JobsCreatedTotal counts job posts created.
var JobsCreatedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "jobs_created_total",
		Help:      "Total number of job posts created.",
	},
)

// JobStatusChangesTotal counts posting transitions.
// Label: to (the new status).
var JobStatusChangesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "job_status_changes_total",
		Help:      "Total number of job post status transitions.",
	},
	[]string{"to"},
)

// ApplicationsTotal counts application lifecycle events.
// Label: status (pending on submit, approved or rejected on decision).
var ApplicationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "applications_total",
		Help:      "Total number of applications submitted or decided, by resulting status.",
	},
	[]string{"status"},
)

// NotificationsCreatedTotal counts in-app notifications recorded.
// Label: type (email or system).
var NotificationsCreatedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "notifications_created_total",
		Help:      "Total number of notifications recorded.",
	},
	[]string{"type"},
)

// EmailsTotal counts email delivery outcomes.
// Label: result (sent, failed, dropped).
var EmailsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "emails_total",
		Help:      "Total number of emails by delivery result.",
	},
	[]string{"result"},
)

// EmailQueueDepth is the number of emails waiting for a worker.
var EmailQueueDepth = promauto.NewGauge(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "email_queue_depth",
		Help:      "Current number of emails pending in the dispatcher queue.",
	},
)
