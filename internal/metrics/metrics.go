package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// NotificationsAdded tracks notifications accepted into the store
	NotificationsAdded = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "agriswayam_notifications_added_total",
			Help: "Total number of notifications accepted into the store",
		},
		[]string{"type", "priority"},
	)

	// NotificationsSuppressed tracks notifications rejected by the visibility filter
	NotificationsSuppressed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "agriswayam_notifications_suppressed_total",
			Help: "Total number of notifications suppressed by preferences",
		},
		[]string{"type", "reason"},
	)

	// NotificationsPruned tracks expired notifications removed by the sweep
	NotificationsPruned = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "agriswayam_notifications_pruned_total",
			Help: "Total number of expired notifications removed by the pruning sweep",
		},
	)

	// UnreadNotifications tracks the store's current unread count
	UnreadNotifications = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "agriswayam_notifications_unread",
			Help: "Current number of unread notifications",
		},
	)

	// BrowserDeliveries tracks popups dispatched to the browser channel
	BrowserDeliveries = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "agriswayam_browser_deliveries_total",
			Help: "Total number of notifications dispatched to the browser channel",
		},
	)

	// EventsConsumed tracks broker events processed by outcome
	EventsConsumed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "agriswayam_events_consumed_total",
			Help: "Total number of farm events consumed from the broker",
		},
		[]string{"kind", "outcome"},
	)

	// RateLimitExceeded tracks rejected trigger requests
	RateLimitExceeded = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "agriswayam_rate_limit_exceeded_total",
			Help: "Total number of rate limit exceeded events",
		},
		[]string{"farmer_id"},
	)
)
