// Package metrics defines the custom Prometheus metrics for the scribehub
// API. It is the single source of truth for metric names, labels, and help
// strings. Metrics register with the default registry at import time via
// promauto; the router exposes them on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "scribehub"

// UsersRegisteredTotal counts successful signups.
var UsersRegisteredTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "users_registered_total",
		Help:      "Total number of accounts created.",
	},
)

// LoginsTotal counts login attempts.
// Label:
//   - result: "ok" or "failed"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, labelled by result.",
	},
	[]string{"result"},
)

// ResourcesCreatedTotal counts created resource instances.
// Label:
//   - resource: "post", "author", "genre", "book", "task"
var ResourcesCreatedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "resources_created_total",
		Help:      "Total number of resources created, by resource type.",
	},
	[]string{"resource"},
)

// GetOrCreateTotal counts nested author/genre resolutions.
// Labels:
//   - entity: "author" or "genre"
//   - result: "reused" (existing record matched) or "created"
var GetOrCreateTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "library_get_or_create_total",
		Help:      "Total number of get-or-create resolutions for shared catalog entities.",
	},
	[]string{"entity", "result"},
)

// ObserveGetOrCreate records a single get-or-create resolution.
func ObserveGetOrCreate(entity string, created bool) {
	result := "reused"
	if created {
		result = "created"
	}
	GetOrCreateTotal.WithLabelValues(entity, result).Inc()
}
