package weather

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/dlawton/chimeclock/internal/notify"
)

// ---- fakes ----

type memStore struct {
	alerts  []Alert
	loadErr error
	saveErr error
	saves   int
}

func (m *memStore) Load(ctx context.Context) ([]Alert, error) {
	if m.loadErr != nil {
		return nil, m.loadErr
	}
	out := make([]Alert, len(m.alerts))
	copy(out, m.alerts)
	return out, nil
}

func (m *memStore) Save(ctx context.Context, alerts []Alert) error {
	m.saves++
	if m.saveErr != nil {
		return m.saveErr
	}
	m.alerts = make([]Alert, len(alerts))
	copy(m.alerts, alerts)
	return nil
}

type fakeFeed struct {
	alerts []Alert
	err    error
}

func (f *fakeFeed) Active(ctx context.Context) ([]Alert, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.alerts, nil
}

type captureNotifier struct {
	sent []notify.Notification
	err  error
}

func (c *captureNotifier) Send(ctx context.Context, n notify.Notification) error {
	c.sent = append(c.sent, n)
	return c.err
}

func galeWarning() Alert {
	onset := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	return Alert{
		ID:          "urn:oid:1",
		Status:      "Actual",
		Severity:    "Severe",
		MessageType: "Alert",
		Onset:       onset,
		Expires:     onset.Add(6 * time.Hour),
		Event:       "Gale Warning",
		Headline:    "Gale Warning issued for coastal waters",
	}
}

// ---- tests ----

func TestReconcile_NotifiesOncePerAlert(t *testing.T) {
	a := galeWarning()
	store := &memStore{}
	feed := &fakeFeed{alerts: []Alert{a}}
	nt := &captureNotifier{}
	r := NewReconciler(zap.NewNop(), store, feed, nt)

	if err := r.Reconcile(context.Background()); err != nil {
		t.Fatal(err)
	}
	if len(nt.sent) != 1 {
		t.Fatalf("want 1 notification, got %d", len(nt.sent))
	}
	if !strings.Contains(nt.sent[0].Message, a.Headline) {
		t.Fatalf("message missing headline: %q", nt.sent[0].Message)
	}
	if nt.sent[0].Priority != notify.Emergency {
		t.Fatalf("severe alert priority = %d, want emergency", nt.sent[0].Priority)
	}
	if nt.sent[0].Event != "Gale Warning" {
		t.Fatalf("event = %q", nt.sent[0].Event)
	}

	// Identical second cycle: no further notifications.
	if err := r.Reconcile(context.Background()); err != nil {
		t.Fatal(err)
	}
	if len(nt.sent) != 1 {
		t.Fatalf("dedup failed: %d notifications", len(nt.sent))
	}
}

func TestReconcile_NonSevereIsNormalPriority(t *testing.T) {
	a := galeWarning()
	a.Severity = "Moderate"
	nt := &captureNotifier{}
	r := NewReconciler(zap.NewNop(), &memStore{}, &fakeFeed{alerts: []Alert{a}}, nt)

	if err := r.Reconcile(context.Background()); err != nil {
		t.Fatal(err)
	}
	if len(nt.sent) != 1 || nt.sent[0].Priority != notify.Normal {
		t.Fatalf("want normal priority, got %+v", nt.sent)
	}
}

func TestReconcile_UpdatePrefixesMessage(t *testing.T) {
	a := galeWarning()
	a.MessageType = "Update"
	nt := &captureNotifier{}
	r := NewReconciler(zap.NewNop(), &memStore{}, &fakeFeed{alerts: []Alert{a}}, nt)

	if err := r.Reconcile(context.Background()); err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(nt.sent[0].Message, "UPDATED ALERT\n") {
		t.Fatalf("message not prefixed: %q", nt.sent[0].Message)
	}
}

func TestReconcile_SkipsNonActual(t *testing.T) {
	a := galeWarning()
	a.Status = "Test"
	nt := &captureNotifier{}
	r := NewReconciler(zap.NewNop(), &memStore{}, &fakeFeed{alerts: []Alert{a}}, nt)

	if err := r.Reconcile(context.Background()); err != nil {
		t.Fatal(err)
	}
	if len(nt.sent) != 0 {
		t.Fatalf("test alert notified: %+v", nt.sent)
	}
}

func TestReconcile_PurgeThenReappearFiresAgain(t *testing.T) {
	a := galeWarning()
	store := &memStore{}
	feed := &fakeFeed{alerts: []Alert{a}}
	nt := &captureNotifier{}
	r := NewReconciler(zap.NewNop(), store, feed, nt)

	if err := r.Reconcile(context.Background()); err != nil {
		t.Fatal(err)
	}

	// Provider withdraws the alert: it must be purged from the store.
	feed.alerts = nil
	if err := r.Reconcile(context.Background()); err != nil {
		t.Fatal(err)
	}
	if len(store.alerts) != 0 {
		t.Fatalf("withdrawn alert not purged: %+v", store.alerts)
	}

	// It reappears: notify again.
	feed.alerts = []Alert{a}
	if err := r.Reconcile(context.Background()); err != nil {
		t.Fatal(err)
	}
	if len(nt.sent) != 2 {
		t.Fatalf("want 2 notifications, got %d", len(nt.sent))
	}
}

func TestReconcile_FeedFailureLeavesStoreAlone(t *testing.T) {
	a := galeWarning()
	store := &memStore{alerts: []Alert{a}}
	feed := &fakeFeed{err: errors.New("boom")}
	r := NewReconciler(zap.NewNop(), store, feed, &captureNotifier{})

	if err := r.Reconcile(context.Background()); err == nil {
		t.Fatal("expected error from feed failure")
	}
	if store.saves != 0 {
		t.Fatalf("store written on feed failure (%d saves)", store.saves)
	}
	if len(store.alerts) != 1 {
		t.Fatalf("prior dedup state lost: %+v", store.alerts)
	}
}

func TestReconcile_LoadFailureDegradesToEmpty(t *testing.T) {
	a := galeWarning()
	store := &memStore{loadErr: errors.New("corrupt")}
	nt := &captureNotifier{}
	r := NewReconciler(zap.NewNop(), store, &fakeFeed{alerts: []Alert{a}}, nt)

	if err := r.Reconcile(context.Background()); err != nil {
		t.Fatal(err)
	}
	// With no readable history everything in the feed counts as new.
	if len(nt.sent) != 1 {
		t.Fatalf("want 1 notification, got %d", len(nt.sent))
	}
}

func TestReconcile_SaveFailureDoesNotAbort(t *testing.T) {
	a := galeWarning()
	store := &memStore{saveErr: errors.New("disk full")}
	nt := &captureNotifier{}
	r := NewReconciler(zap.NewNop(), store, &fakeFeed{alerts: []Alert{a}}, nt)

	if err := r.Reconcile(context.Background()); err != nil {
		t.Fatalf("save failure must not abort the cycle: %v", err)
	}
	if len(nt.sent) != 1 {
		t.Fatalf("notification lost on save failure")
	}
}

func TestReconcile_AmendedRecordCountsAsNew(t *testing.T) {
	a := galeWarning()
	store := &memStore{alerts: []Alert{a}}
	amended := a
	amended.Headline = "Gale Warning extended through Sunday"
	nt := &captureNotifier{}
	r := NewReconciler(zap.NewNop(), store, &fakeFeed{alerts: []Alert{amended}}, nt)

	if err := r.Reconcile(context.Background()); err != nil {
		t.Fatal(err)
	}
	if len(nt.sent) != 1 {
		t.Fatalf("amended alert not renotified")
	}
}
