// Package metrics defines the custom Prometheus metrics of the catalog API.
// HTTP request metrics come from the echoprometheus middleware; everything
// domain specific is declared here.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "catalog"

// ── Auth metrics ──────────────────────────────────────────────────────────────

// LoginsTotal counts login attempts.
// Label:
//   - result: "success" or "failure"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// TokenValidationsTotal counts bearer token checks on protected routes.
// Label:
//   - result: "valid", "invalid", "expired" or "missing"
var TokenValidationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "token_validations_total",
		Help:      "Total number of bearer token validations, by result.",
	},
	[]string{"result"},
)

// ── Catalog metrics ───────────────────────────────────────────────────────────

// CatalogWritesTotal counts create, update and delete requests.
// Labels:
//   - catalog: "books", "films", …
//   - operation: "create", "update" or "delete"
//   - result: "ok" or "error"
var CatalogWritesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "catalog_writes_total",
		Help:      "Total number of catalog write requests.",
	},
	[]string{"catalog", "operation", "result"},
)

// CacheLookupsTotal counts read-through cache lookups by id.
// Labels:
//   - collection: the backing collection
//   - result: "hit" or "miss"
var CacheLookupsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "cache_lookups_total",
		Help:      "Total number of entity cache lookups, by result.",
	},
	[]string{"collection", "result"},
)

// ── Mail metrics ──────────────────────────────────────────────────────────────

// MailNotificationsTotal counts notification mail outcomes.
// Label:
//   - result: "sent", "failed" or "dropped" (queue full)
var MailNotificationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "mail_notifications_total",
		Help:      "Total number of notification mails, by outcome.",
	},
	[]string{"result"},
)

// MailQueueDepth is the number of mails waiting for a worker.
var MailQueueDepth = promauto.NewGauge(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "mail_queue_depth",
		Help:      "Current number of notification mails waiting to be sent.",
	},
)
