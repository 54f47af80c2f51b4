// Package metrics defines and registers all custom Prometheus metrics for
// the CRM API. It is the single source of truth for metric names, labels,
// and help strings. Metrics register with the default registry at package
// load via promauto.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "crm"

// LoginsTotal counts login attempts by outcome.
// Label:
//   - outcome: "success", "invalid", "locked"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by outcome.",
	},
	[]string{"outcome"},
)

// AccessDeniedTotal counts authorization denials.
// Label:
//   - operation: where the denial happened (currently "route" for RBAC gates)
var AccessDeniedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "access_denied_total",
		Help:      "Total number of authorization denials, by operation.",
	},
	[]string{"operation"},
)

// LeadQueryDuration measures how long a lead list query takes end-to-end.
// Label:
//   - scope: "isolated" (caller) or "all" (admin/super)
var LeadQueryDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "lead_query_duration_seconds",
		Help:      "Duration of lead list queries from handler entry to response.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"scope"},
)

// AuditQueueDepth tracks the number of audit events waiting in each
// recorder worker channel.
// Label:
//   - worker_id: numeric worker index (e.g. "0", "1", …)
var AuditQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "audit_queue_depth",
		Help:      "Current number of audit events pending in each recorder worker channel.",
	},
	[]string{"worker_id"},
)

// UsersCreatedTotal counts newly created user accounts.
// Label:
//   - role: "super", "admin", or "caller"
var UsersCreatedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "users_created_total",
		Help:      "Total number of user accounts created, by role.",
	},
	[]string{"role"},
)
