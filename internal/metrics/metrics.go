package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

const prefix = "clock_"

var (
	registerOnce sync.Once

	// ChimesPlayed counts completed chime playbacks by kind.
	ChimesPlayed = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: prefix + "chimes_played_total",
			Help: "Chime playbacks completed, by chime kind",
		},
		[]string{"kind"},
	)

	// ChimesSkipped counts triggers dropped because playback was still busy.
	ChimesSkipped = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: prefix + "chimes_skipped_total",
			Help: "Chime triggers skipped because the previous playback was still running",
		},
	)

	// PollFailures counts soft failures of the external data sources.
	PollFailures = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: prefix + "poll_failures_total",
			Help: "External fetch failures, by source",
		},
		[]string{"source"},
	)

	AlertsNotified = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: prefix + "alerts_notified_total",
			Help: "Weather alerts pushed to the notification channel",
		},
	)

	NotifyFailures = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: prefix + "notify_failures_total",
			Help: "Notification pushes that failed",
		},
	)
)

// Register installs the collectors into the default registry. Safe to call
// more than once.
func Register() {
	registerOnce.Do(func() {
		prometheus.MustRegister(
			ChimesPlayed,
			ChimesSkipped,
			PollFailures,
			AlertsNotified,
			NotifyFailures,
		)
	})
}
