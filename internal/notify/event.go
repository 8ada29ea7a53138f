package notify

import (
	"fmt"
	"time"

	"courier-track/internal/domain"

	"github.com/segmentio/ksuid"
)

// StatusEvent describes a single courier status change.
type StatusEvent struct {
	EventID    string               `json:"event_id"`
	CourierID  int64                `json:"courier_id"`
	Number     string               `json:"courier_number"`
	Owner      string               `json:"owner"`
	Status     domain.CourierStatus `json:"status"`
	OccurredAt time.Time            `json:"occurred_at"`
}

// NewStatusEvent builds an event with a fresh ksuid.
func NewStatusEvent(c *domain.Courier, status domain.CourierStatus, at time.Time) StatusEvent {
	return StatusEvent{
		EventID:    ksuid.New().String(),
		CourierID:  c.ID,
		Number:     c.Number,
		Owner:      c.OwnerUsername,
		Status:     status,
		OccurredAt: at,
	}
}

// Message renders the user-facing notification body.
func (e StatusEvent) Message() string {
	return fmt.Sprintf("Courier #%s is now %s", e.Number, e.Status)
}
