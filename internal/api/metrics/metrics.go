// Package metrics defines all custom Prometheus metrics for the VolleyBot
// admin API. It is the single source of truth for metric names, labels, and
// help strings. Metrics register with the default registry at import time;
// the router exposes them on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "volleybot_admin"

// LoginsTotal counts Telegram login attempts.
// Label:
//   - result: "success", "invalid_signature", "expired", "replayed",
//     "forbidden" or "error"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of Telegram login attempts, by result.",
	},
	[]string{"result"},
)

// TokenRefreshesTotal counts refresh-token rotations.
// Label:
//   - result: "success" or "rejected"
var TokenRefreshesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "token_refreshes_total",
		Help:      "Total number of access-token refreshes, by result.",
	},
	[]string{"result"},
)

// SettingsMutationsTotal counts successful settings mutations.
// Labels:
//   - entity: "template", "schedule" or "admin_id"
//   - action: "create", "update" or "delete"
var SettingsMutationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "settings_mutations_total",
		Help:      "Total number of successful settings mutations, by entity and action.",
	},
	[]string{"entity", "action"},
)
