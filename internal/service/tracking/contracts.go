package tracking

import (
	"context"

	"courier-track/internal/domain"
)

// courierRepository defines storage operations required by the tracking layer.
type courierRepository interface {
	Create(ctx context.Context, c *domain.Courier) (int64, error)
	Get(ctx context.Context, id int64) (*domain.Courier, error)
	UpdateStatus(ctx context.Context, id int64, status domain.CourierStatus) (bool, error)
	ListAll(ctx context.Context) ([]domain.Courier, error)
	ListByOwner(ctx context.Context, username string) ([]domain.Courier, error)
	Location(ctx context.Context, courierID int64) (string, bool, error)
	DeliveryPerson(ctx context.Context, courierID int64) (*domain.DeliveryPerson, error)
}

// navGateway resolves a tracking link for a courier's stored location.
type navGateway interface {
	TrackingLink(ctx context.Context, location string) (string, error)
}
