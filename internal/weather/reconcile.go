package weather

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/dlawton/chimeclock/internal/metrics"
	"github.com/dlawton/chimeclock/internal/notify"
)

const notifyApplication = "BigBen Weather Alerts"

// Reconciler diffs the provider's active-alert feed against the alerts we
// have already pushed, notifies once per new alert, and prunes entries the
// provider no longer reports. Runs are serialized: a new pass never starts
// while a prior persist is pending.
type Reconciler struct {
	mu       sync.Mutex
	log      *zap.Logger
	store    AlertStore
	feed     AlertFeed
	notifier notify.Notifier
}

func NewReconciler(log *zap.Logger, store AlertStore, feed AlertFeed, notifier notify.Notifier) *Reconciler {
	return &Reconciler{
		log:      log,
		store:    store,
		feed:     feed,
		notifier: notifier,
	}
}

// Reconcile runs one pass. A feed failure aborts without touching the store;
// a store failure degrades (load: empty set, save: in-memory only) and the
// pass still delivers notifications.
func (r *Reconciler) Reconcile(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	seen, err := r.store.Load(ctx)
	if err != nil {
		r.log.Warn("alert_store_load_failed", zap.Error(err))
		seen = nil
	}

	active, err := r.feed.Active(ctx)
	if err != nil {
		return fmt.Errorf("alert feed: %w", err)
	}

	for _, a := range active {
		if a.Status != "Actual" {
			continue
		}
		if containsAlert(seen, a) {
			continue
		}
		seen = append(seen, a)
		r.log.Info("alert_new",
			zap.String("id", a.ID),
			zap.String("event", a.Event),
			zap.String("severity", a.Severity),
		)
		r.send(ctx, a)
	}

	// Keep only alerts still in the feed; expired or withdrawn ones may fire
	// again if the provider reissues them.
	kept := seen[:0]
	for _, a := range seen {
		if containsAlert(active, a) {
			kept = append(kept, a)
		}
	}

	if err := r.store.Save(ctx, kept); err != nil {
		// In-memory dedup for this cycle already happened; only durability
		// across restarts is lost.
		r.log.Warn("alert_store_save_failed", zap.Error(err))
	}
	return nil
}

func (r *Reconciler) send(ctx context.Context, a Alert) {
	priority := notify.Normal
	if a.Severity == "Severe" {
		priority = notify.Emergency
	}

	msg := ""
	if a.MessageType == "Update" {
		msg = "UPDATED ALERT\n"
	}
	msg += fmt.Sprintf("From %s to %s\n%s",
		a.Onset.Format(time.ANSIC), a.Expires.Format(time.ANSIC), a.Headline)

	err := r.notifier.Send(ctx, notify.Notification{
		Message:     msg,
		Priority:    priority,
		Application: notifyApplication,
		Event:       a.Event,
	})
	if err != nil {
		// Fire and forget: the alert stays marked seen either way.
		r.log.Warn("alert_notify_failed", zap.String("id", a.ID), zap.Error(err))
		metrics.NotifyFailures.Inc()
		return
	}
	metrics.AlertsNotified.Inc()
}
