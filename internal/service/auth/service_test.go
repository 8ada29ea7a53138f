package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"courier-track/internal/apperr"
	"courier-track/internal/domain"

	"golang.org/x/crypto/bcrypt"
)

type mockUserRepo struct {
	createFn        func(ctx context.Context, u *domain.User) (int64, error)
	getByUsernameFn func(ctx context.Context, username string) (*domain.User, error)
	ensureAdminFn   func(ctx context.Context, passwordHash, phone string) error
}

func (m *mockUserRepo) Create(ctx context.Context, u *domain.User) (int64, error) {
	return m.createFn(ctx, u)
}

func (m *mockUserRepo) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	return m.getByUsernameFn(ctx, username)
}

func (m *mockUserRepo) EnsureAdmin(ctx context.Context, passwordHash, phone string) error {
	return m.ensureAdminFn(ctx, passwordHash, phone)
}

type stubIssuer struct{ token string }

func (s stubIssuer) Issue(domain.Session) (string, error) { return s.token, nil }

func hashOf(t *testing.T, password string) string {
	t.Helper()
	h, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	return string(h)
}

func TestService_Register_Success(t *testing.T) {
	t.Parallel()

	var stored *domain.User
	repo := &mockUserRepo{
		createFn: func(ctx context.Context, u *domain.User) (int64, error) {
			stored = u
			return 7, nil
		},
	}
	service := NewService(repo, stubIssuer{}, nil, time.Second)

	id, err := service.Register(context.Background(), "alice", "pw1", "555")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if id != 7 {
		t.Fatalf("expected id 7, got %d", id)
	}
	if stored == nil || stored.Username != "alice" {
		t.Fatalf("expected stored user alice, got %#v", stored)
	}
	if stored.PasswordHash == "pw1" || stored.PasswordHash == "" {
		t.Fatalf("password must be stored hashed, got %q", stored.PasswordHash)
	}
	if bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("pw1")) != nil {
		t.Fatal("stored hash does not match the password")
	}
}

func TestService_Register_EmptyInput(t *testing.T) {
	t.Parallel()

	repo := &mockUserRepo{
		createFn: func(ctx context.Context, u *domain.User) (int64, error) {
			t.Fatal("repo must not be called on invalid input")
			return 0, nil
		},
	}
	service := NewService(repo, stubIssuer{}, nil, time.Second)

	if _, err := service.Register(context.Background(), "  ", "pw", ""); !errors.Is(err, apperr.Invalid) {
		t.Fatalf("expected Invalid, got %v", err)
	}
	if _, err := service.Register(context.Background(), "alice", "", ""); !errors.Is(err, apperr.Invalid) {
		t.Fatalf("expected Invalid, got %v", err)
	}
}

func TestService_Register_DuplicateUsername(t *testing.T) {
	t.Parallel()

	repo := &mockUserRepo{
		createFn: func(ctx context.Context, u *domain.User) (int64, error) {
			return 0, apperr.Conflict
		},
	}
	service := NewService(repo, stubIssuer{}, nil, time.Second)

	_, err := service.Register(context.Background(), "alice", "pw", "")
	if !errors.Is(err, apperr.Conflict) {
		t.Fatalf("expected Conflict, got %v", err)
	}
}

func TestService_Login_Success(t *testing.T) {
	t.Parallel()

	repo := &mockUserRepo{
		getByUsernameFn: func(ctx context.Context, username string) (*domain.User, error) {
			return &domain.User{
				ID: 1, Username: "alice", PasswordHash: hashOf(t, "pw1"), Admin: false,
			}, nil
		},
	}
	service := NewService(repo, stubIssuer{token: "tok"}, nil, time.Second)

	session, token, err := service.Login(context.Background(), "alice", "pw1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if session.Username != "alice" || session.Admin {
		t.Fatalf("unexpected session %#v", session)
	}
	if token != "tok" {
		t.Fatalf("expected token tok, got %q", token)
	}
}

func TestService_Login_WrongPassword(t *testing.T) {
	t.Parallel()

	repo := &mockUserRepo{
		getByUsernameFn: func(ctx context.Context, username string) (*domain.User, error) {
			return &domain.User{Username: "alice", PasswordHash: hashOf(t, "pw1")}, nil
		},
	}
	service := NewService(repo, stubIssuer{}, nil, time.Second)

	_, _, err := service.Login(context.Background(), "alice", "wrong")
	if !errors.Is(err, apperr.Unauthorized) {
		t.Fatalf("expected Unauthorized, got %v", err)
	}
}

func TestService_Login_UnknownUser(t *testing.T) {
	t.Parallel()

	repo := &mockUserRepo{
		getByUsernameFn: func(ctx context.Context, username string) (*domain.User, error) {
			return nil, nil
		},
	}
	service := NewService(repo, stubIssuer{}, nil, time.Second)

	_, _, err := service.Login(context.Background(), "ghost", "pw")
	if !errors.Is(err, apperr.Unauthorized) {
		t.Fatalf("expected Unauthorized, got %v", err)
	}
}

func TestService_Login_RepoError(t *testing.T) {
	t.Parallel()

	wantErr := errors.New("boom")
	repo := &mockUserRepo{
		getByUsernameFn: func(ctx context.Context, username string) (*domain.User, error) {
			return nil, wantErr
		},
	}
	service := NewService(repo, stubIssuer{}, nil, time.Second)

	_, _, err := service.Login(context.Background(), "alice", "pw")
	if !errors.Is(err, wantErr) {
		t.Fatalf("expected repo error, got %v", err)
	}
}

func TestService_SeedAdmin_HashesPassword(t *testing.T) {
	t.Parallel()

	var gotHash string
	repo := &mockUserRepo{
		ensureAdminFn: func(ctx context.Context, passwordHash, phone string) error {
			gotHash = passwordHash
			return nil
		},
	}
	service := NewService(repo, stubIssuer{}, nil, time.Second)

	if err := service.SeedAdmin(context.Background(), "admin123", "1234567890"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if bcrypt.CompareHashAndPassword([]byte(gotHash), []byte("admin123")) != nil {
		t.Fatal("seeded admin hash does not match the password")
	}
}
