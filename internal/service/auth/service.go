package auth

import (
	"context"
	"strings"
	"time"

	"courier-track/internal/apperr"
	"courier-track/internal/domain"
	"courier-track/internal/logx"

	"golang.org/x/crypto/bcrypt"
)

// Service coordinates account registration and authentication.
type Service struct {
	repo             userRepository
	tokens           tokenIssuer
	logger           logx.Logger
	operationTimeout time.Duration
}

// NewService creates and configures an auth Service.
func NewService(r userRepository, tokens tokenIssuer, logger logx.Logger, timeout time.Duration) *Service {
	if timeout <= 0 {
		timeout = 3 * time.Second
	}
	if logger == nil {
		logger = logx.Nop()
	}
	return &Service{repo: r, tokens: tokens, logger: logger, operationTimeout: timeout}
}

func (s *Service) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, s.operationTimeout)
}

func validateRegister(username, password string) error {
	if strings.TrimSpace(username) == "" {
		return apperr.Invalid
	}
	if password == "" {
		return apperr.Invalid
	}
	return nil
}

// Register creates a regular user account and returns its generated id.
// A taken username surfaces as apperr.Conflict.
func (s *Service) Register(ctx context.Context, username, password, phone string) (int64, error) {
	if err := validateRegister(username, password); err != nil {
		return 0, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return 0, err
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	id, err := s.repo.Create(ctx, &domain.User{
		Username:     strings.TrimSpace(username),
		PasswordHash: string(hash),
		Phone:        strings.TrimSpace(phone),
	})
	if err != nil {
		return 0, err
	}

	s.logger.Info("user registered",
		logx.String("event", "user_registered"),
		logx.String("username", strings.TrimSpace(username)),
		logx.Int64("user_id", id),
	)
	return id, nil
}

// Login verifies credentials and returns the session plus a signed token.
// An unknown username and a wrong password are indistinguishable to the caller.
func (s *Service) Login(ctx context.Context, username, password string) (domain.Session, string, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	u, err := s.repo.GetByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		return domain.Session{}, "", err
	}
	if u == nil {
		return domain.Session{}, "", apperr.Unauthorized
	}
	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) != nil {
		return domain.Session{}, "", apperr.Unauthorized
	}

	session := domain.Session{Username: u.Username, Admin: u.Admin}
	token, err := s.tokens.Issue(session)
	if err != nil {
		return domain.Session{}, "", err
	}
	return session, token, nil
}

// SeedAdmin inserts the default admin account if it does not exist yet.
// An existing "admin" row is never overwritten.
func (s *Service) SeedAdmin(ctx context.Context, password, phone string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()
	return s.repo.EnsureAdmin(ctx, string(hash), phone)
}
