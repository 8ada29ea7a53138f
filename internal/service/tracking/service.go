package tracking

import (
	"context"
	"strings"
	"time"

	"courier-track/internal/apperr"
	"courier-track/internal/domain"
	"courier-track/internal/logx"
	"courier-track/internal/notify"
)

// Service coordinates courier tracking business logic.
type Service struct {
	repo             courierRepository
	notifier         notify.Notifier
	nav              navGateway
	logger           logx.Logger
	operationTimeout time.Duration
	now              func() time.Time
}

// NewService creates and configures a tracking Service. The notifier and nav
// gateway may be nil; the corresponding features degrade gracefully.
func NewService(r courierRepository, notifier notify.Notifier, nav navGateway, logger logx.Logger, timeout time.Duration) *Service {
	if timeout <= 0 {
		timeout = 3 * time.Second
	}
	if notifier == nil {
		notifier = notify.NopNotifier{}
	}
	if logger == nil {
		logger = logx.Nop()
	}
	return &Service{
		repo:             r,
		notifier:         notifier,
		nav:              nav,
		logger:           logger,
		operationTimeout: timeout,
		now:              func() time.Time { return time.Now().UTC() },
	}
}

func (s *Service) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, s.operationTimeout)
}

func validateCreate(c *domain.Courier) error {
	if c == nil {
		return apperr.Invalid
	}
	if strings.TrimSpace(c.Number) == "" {
		return apperr.Invalid
	}
	if strings.TrimSpace(c.OwnerUsername) == "" {
		return apperr.Invalid
	}
	if strings.TrimSpace(c.LocationURL) == "" {
		return apperr.Invalid
	}
	if c.Status == "" {
		c.Status = domain.StatusPickedUp
	}
	if !c.Status.Valid() {
		return apperr.Invalid
	}
	return nil
}

// Create persists a new courier (and its location) and returns the generated id.
func (s *Service) Create(ctx context.Context, c *domain.Courier) (int64, error) {
	if err := validateCreate(c); err != nil {
		return 0, err
	}
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	id, err := s.repo.Create(ctx, c)
	if err != nil {
		return 0, err
	}

	s.logger.Info("courier created",
		logx.String("event", "courier_created"),
		logx.Int64("courier_id", id),
		logx.String("courier_number", c.Number),
		logx.String("owner", c.OwnerUsername),
	)
	return id, nil
}

// UpdateStatus sets a courier's status and fires the status-changed
// notification. The notification is best-effort: a notifier failure is
// logged and never surfaces to the caller once the write has landed.
func (s *Service) UpdateStatus(ctx context.Context, id int64, status domain.CourierStatus) error {
	if id <= 0 || !status.Valid() {
		return apperr.Invalid
	}
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	c, err := s.repo.Get(ctx, id)
	if err != nil {
		return err
	}
	if c == nil {
		return apperr.NotFound
	}

	ok, err := s.repo.UpdateStatus(ctx, id, status)
	if err != nil {
		return err
	}
	if !ok {
		return apperr.NotFound
	}

	ev := notify.NewStatusEvent(c, status, s.now())
	if err := s.notifier.StatusChanged(ctx, ev); err != nil {
		s.logger.Warn("status notification failed",
			logx.Int64("courier_id", id),
			logx.String("status", string(status)),
			logx.Any("err", err),
		)
	}

	s.logger.Info("courier status updated",
		logx.String("event", "courier_status_updated"),
		logx.Int64("courier_id", id),
		logx.String("status", string(status)),
	)
	return nil
}

// ListAll returns every courier, in insertion order.
func (s *Service) ListAll(ctx context.Context) ([]domain.Courier, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()
	return s.repo.ListAll(ctx)
}

// ListForOwner returns the couriers owned by the session's user.
func (s *Service) ListForOwner(ctx context.Context, session domain.Session) ([]domain.Courier, error) {
	if strings.TrimSpace(session.Username) == "" {
		return nil, apperr.Invalid
	}
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()
	return s.repo.ListByOwner(ctx, session.Username)
}

// Location returns a courier's stored location string.
func (s *Service) Location(ctx context.Context, id int64) (string, error) {
	if id <= 0 {
		return "", apperr.Invalid
	}
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	loc, found, err := s.repo.Location(ctx, id)
	if err != nil {
		return "", err
	}
	if !found {
		return "", apperr.NotFound
	}
	return loc, nil
}

// DeliveryPerson returns the delivery-person contact for a courier.
func (s *Service) DeliveryPerson(ctx context.Context, id int64) (*domain.DeliveryPerson, error) {
	if id <= 0 {
		return nil, apperr.Invalid
	}
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	p, err := s.repo.DeliveryPerson(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, apperr.NotFound
	}
	return p, nil
}

// TrackingLink resolves a navigation link for a courier's stored location.
func (s *Service) TrackingLink(ctx context.Context, id int64) (string, error) {
	loc, err := s.Location(ctx, id)
	if err != nil {
		return "", err
	}
	if loc == "" {
		return "", apperr.NotFound
	}
	if s.nav == nil {
		return loc, nil
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()
	return s.nav.TrackingLink(ctx, loc)
}
