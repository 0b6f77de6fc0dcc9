// Package metrics defines and registers all custom Prometheus metrics for
// the Minerva dashboard gateway. It is the single source of truth for metric
// names, labels, and help strings.
//
// Metrics register themselves with the default registry at import time; the
// router exposes them on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "minerva_gateway"

// LoginsTotal counts login attempts by outcome.
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

// GuardDenialsTotal counts navigations blocked by a route guard.
// Labels:
//   - guard:  "session" (unauthenticated) or "capability" (authorization)
var GuardDenialsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "guard_denials_total",
		Help:      "Total number of requests blocked by a route guard.",
	},
	[]string{"guard"},
)

// SessionExpirationsTotal counts sessions cleared because the backend
// rejected a previously valid token.
var SessionExpirationsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "session_expirations_total",
		Help:      "Total number of sessions forcibly cleared after token rejection.",
	},
)

// FeedBridgesActive tracks the number of live browser<->backend feed bridges.
var FeedBridgesActive = promauto.NewGauge(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "feed_bridges_active",
		Help:      "Current number of open real-time feed bridges.",
	},
)

// FeedFramesTotal counts websocket frames relayed through the bridge.
// Label:
//   - direction: "inbound" (backend->browser) or "outbound" (browser->backend)
var FeedFramesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "feed_frames_total",
		Help:      "Total number of websocket frames relayed, by direction.",
	},
	[]string{"direction"},
)
