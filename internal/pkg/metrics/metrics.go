// Package metrics defines and registers all custom Prometheus metrics for the
// marketplace API. It is the single source of truth for metric names, labels,
// and help strings.
//
// Metrics are registered with the default Prometheus registry on import.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "marketplace"

// ── Auth metrics ──────────────────────────────────────────────────────────────

// AuthAttemptsTotal counts register/login attempts.
// Labels:
//   - operation: "register" or "login"
//   - result: "success", "invalid", "conflict", "inactive", "error"
var AuthAttemptsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "auth_attempts_total",
		Help:      "Total number of registration and login attempts, by outcome.",
	},
	[]string{"operation", "result"},
)

// SessionsResolvedTotal counts session lookups.
// Label:
//   - outcome: "authenticated", "invalid_token", "revoked", "user_not_found", "inactive", "store_error"
var SessionsResolvedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "sessions_resolved_total",
		Help:      "Total number of session resolutions, by outcome.",
	},
	[]string{"outcome"},
)

// ── Record store metrics ──────────────────────────────────────────────────────

// StoreRequestDuration measures round trips to the record store.
// Labels:
//   - table: record store table name
//   - operation: "list", "get", "create", "update"
var StoreRequestDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "store_request_duration_seconds",
		Help:      "Duration of record store API requests.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"table", "operation"},
)

// StoreErrorsTotal counts failed record store requests.
var StoreErrorsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "store_errors_total",
		Help:      "Total number of record store requests that failed.",
	},
	[]string{"table", "operation"},
)

// ── Content metrics ───────────────────────────────────────────────────────────

// ContentCacheTotal counts content cache lookups.
// Label:
//   - result: "hit", "miss" or "error"
var ContentCacheTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "content_cache_total",
		Help:      "Total number of content cache lookups, labelled by result.",
	},
	[]string{"result"},
)

// VouchersGeneratedTotal counts booking vouchers rendered.
var VouchersGeneratedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "vouchers_generated_total",
		Help:      "Total number of booking voucher PDFs generated.",
	},
)
