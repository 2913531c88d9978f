package weather

import (
	"context"
	"time"
)

// Alert is one active advisory from the alert provider's feed.
type Alert struct {
	ID          string    `json:"id"`
	Status      string    `json:"status"`      // "Actual" or test/exercise values
	Severity    string    `json:"severity"`    // "Severe", "Moderate", ...
	MessageType string    `json:"messageType"` // "Alert" or "Update"
	Onset       time.Time `json:"onset"`
	Expires     time.Time `json:"expires"`
	Event       string    `json:"event"`
	Headline    string    `json:"headline"`
}

// Equal compares the whole record, not just the id. Providers reissue an id
// with amended text or a new window; such an alert counts as new.
func (a Alert) Equal(b Alert) bool {
	return a.ID == b.ID &&
		a.Status == b.Status &&
		a.Severity == b.Severity &&
		a.MessageType == b.MessageType &&
		a.Onset.Equal(b.Onset) &&
		a.Expires.Equal(b.Expires) &&
		a.Event == b.Event &&
		a.Headline == b.Headline
}

func containsAlert(list []Alert, a Alert) bool {
	for _, x := range list {
		if x.Equal(a) {
			return true
		}
	}
	return false
}

// AlertStore persists the set of alerts already delivered. Load degrades to
// an empty set when the backing storage is missing or unreadable; the error
// is for logging only.
type AlertStore interface {
	Load(ctx context.Context) ([]Alert, error)
	Save(ctx context.Context, alerts []Alert) error
}

// AlertFeed returns the provider's currently active alerts.
type AlertFeed interface {
	Active(ctx context.Context) ([]Alert, error)
}
