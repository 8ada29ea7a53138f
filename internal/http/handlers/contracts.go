package handlers

import (
	"context"

	"courier-track/internal/domain"
	authsvc "courier-track/internal/service/auth"
	"courier-track/internal/service/tracking"
)

type authUsecase interface {
	Register(ctx context.Context, username, password, phone string) (int64, error)
	Login(ctx context.Context, username, password string) (domain.Session, string, error)
}

// NewAuthUsecase wires an auth Service into an authUsecase.
func NewAuthUsecase(service *authsvc.Service) authUsecase {
	return service
}

type courierUsecase interface {
	Create(ctx context.Context, c *domain.Courier) (int64, error)
	UpdateStatus(ctx context.Context, id int64, status domain.CourierStatus) error
	ListAll(ctx context.Context) ([]domain.Courier, error)
	ListForOwner(ctx context.Context, session domain.Session) ([]domain.Courier, error)
	Location(ctx context.Context, id int64) (string, error)
	DeliveryPerson(ctx context.Context, id int64) (*domain.DeliveryPerson, error)
	TrackingLink(ctx context.Context, id int64) (string, error)
}

// NewCourierUsecase wires a tracking Service into a courierUsecase.
func NewCourierUsecase(service *tracking.Service) courierUsecase {
	return service
}
