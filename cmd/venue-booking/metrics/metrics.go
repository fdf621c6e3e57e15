// Package metrics holds the Prometheus collectors of the booking service.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	Transitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "venue_booking_event_transitions_total",
			Help: "Event lifecycle transitions by resulting status",
		},
		[]string{"status"},
	)

	VenueChanges = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "venue_booking_venue_changes_total",
			Help: "Venue change requests by outcome",
		},
		[]string{"outcome"},
	)

	Reclassified = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "venue_booking_reclassified_events_total",
			Help: "Approved events moved to a classification by the reclassification job",
		},
		[]string{"classification"},
	)

	ReclassifyDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "venue_booking_reclassify_duration_seconds",
			Help:    "Duration of reclassification runs",
			Buckets: prometheus.ExponentialBuckets(0.01, 2, 10),
		},
	)

	NotificationFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "venue_booking_notification_failures_total",
			Help: "Notifications that could not be published",
		},
		[]string{"kind"},
	)
)

// Handler exposes the default registry.
func Handler() http.Handler {
	return promhttp.Handler()
}
