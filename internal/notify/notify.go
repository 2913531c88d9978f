package notify

import "context"

// Priority is the Prowl urgency scale.
type Priority int

const (
	VeryLow   Priority = -2
	Low       Priority = -1
	Normal    Priority = 0
	High      Priority = 1
	Emergency Priority = 2
)

type Notification struct {
	Message     string
	Priority    Priority
	Application string
	Event       string
	URL         string // optional
}

type Notifier interface {
	Send(ctx context.Context, n Notification) error
}

type Multi []Notifier

func (m Multi) Send(ctx context.Context, n Notification) error {
	var firstErr error
	for _, nt := range m {
		if nt == nil {
			continue
		}
		if err := nt.Send(ctx, n); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
