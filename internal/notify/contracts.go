package notify

import "context"

// Notifier receives courier status changes. Implementations are best-effort:
// callers fire and forget, and a lost notification is not an error the
// status update itself can fail on.
type Notifier interface {
	StatusChanged(ctx context.Context, ev StatusEvent) error
}

// Sink delivers a rendered notification to the user. Delivery beyond the
// sink (permissions, channels, devices) is outside this service.
type Sink interface {
	Send(ctx context.Context, owner, title, body string) error
}

// SeenStore remembers the last status a notification was delivered for,
// keyed by courier id. It gates the at-most-once behavior: a status equal to
// the last seen one is not re-notified.
type SeenStore interface {
	LastStatus(ctx context.Context, courierID int64) (string, error)
	SetLastStatus(ctx context.Context, courierID int64, status string) error
}
