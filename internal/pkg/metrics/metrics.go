// Package metrics defines and registers the custom Prometheus metrics of the
// inventory API. It is the single source of truth for metric names, labels and
// help strings.
//
// All collectors are registered with the default registry at package init via
// promauto; HTTP request metrics come from echoprometheus in the router.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "inventory"

// ── Auth metrics ──────────────────────────────────────────────────────────────

// LoginAttemptsTotal counts login attempts.
// Label:
//   - result: "success", "invalid_credentials" or "error"
var LoginAttemptsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "login_attempts_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// AuthenticationFailuresTotal counts bearer tokens rejected by the authentication gate.
// Label:
//   - reason: "invalid_token", "revoked" or "account_gone"
var AuthenticationFailuresTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "authentication_failures_total",
		Help:      "Total number of requests rejected while resolving a bearer token.",
	},
	[]string{"reason"},
)

// AuthorizationDenialsTotal counts requests denied after authentication.
// Label:
//   - gate: "role" (route-level role gate) or "ownership" (per-record policy)
var AuthorizationDenialsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "authorization_denials_total",
		Help:      "Total number of authorization denials, by gate.",
	},
	[]string{"gate"},
)

// ── Equipment metrics ─────────────────────────────────────────────────────────

// EquipmentOperationsTotal counts successful equipment mutations.
// Label:
//   - operation: "create", "update" or "delete"
var EquipmentOperationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "equipment_operations_total",
		Help:      "Total number of successful equipment mutations, by operation.",
	},
	[]string{"operation"},
)
