//go:build integration

package repository_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"

	"courier-track/internal/apperr"
	"courier-track/internal/domain"
	"courier-track/internal/repository"
)

type UserRepositorySuite struct {
	suite.Suite
	repo *repository.UserRepo
}

func (s *UserRepositorySuite) SetupSuite() {
	s.Require().NotNil(tcPool, "tcPool must be initialized in TestMain")
	s.repo = repository.NewUserRepo(tcPool)
}

func (s *UserRepositorySuite) SetupTest() {
	_, err := tcPool.Exec(context.Background(), `TRUNCATE users RESTART IDENTITY CASCADE`)
	s.Require().NoError(err)
}

func (s *UserRepositorySuite) TestCreateAndGet() {
	ctx := context.Background()

	id, err := s.repo.Create(ctx, &domain.User{
		Username:     "alice",
		PasswordHash: "$2a$10$hash",
		Phone:        "555-0100",
	})
	s.Require().NoError(err)
	s.Positive(id)

	got, err := s.repo.GetByUsername(ctx, "alice")
	s.Require().NoError(err)
	s.Require().NotNil(got)

	s.Equal(id, got.ID)
	s.Equal("alice", got.Username)
	s.Equal("$2a$10$hash", got.PasswordHash)
	s.Equal("555-0100", got.Phone)
	s.False(got.Admin)
}

func (s *UserRepositorySuite) TestCreate_DuplicateUsername() {
	ctx := context.Background()

	_, err := s.repo.Create(ctx, &domain.User{Username: "alice", PasswordHash: "h1"})
	s.Require().NoError(err)

	_, err = s.repo.Create(ctx, &domain.User{Username: "alice", PasswordHash: "h2"})
	s.ErrorIs(err, apperr.Conflict)
}

func (s *UserRepositorySuite) TestGetByUsername_Missing() {
	got, err := s.repo.GetByUsername(context.Background(), "nobody")
	s.Require().NoError(err)
	s.Nil(got)
}

func (s *UserRepositorySuite) TestEnsureAdmin_InsertsOnce() {
	ctx := context.Background()

	s.Require().NoError(s.repo.EnsureAdmin(ctx, "hash-one", "1234567890"))

	admin, err := s.repo.GetByUsername(ctx, "admin")
	s.Require().NoError(err)
	s.Require().NotNil(admin)
	s.True(admin.Admin)
	s.Equal("hash-one", admin.PasswordHash)

	// a second seed never overwrites the existing row
	s.Require().NoError(s.repo.EnsureAdmin(ctx, "hash-two", "000"))

	again, err := s.repo.GetByUsername(ctx, "admin")
	s.Require().NoError(err)
	s.Require().NotNil(again)
	s.Equal("hash-one", again.PasswordHash)
	s.Equal("1234567890", again.Phone)
}

func TestUserRepositorySuite(t *testing.T) {
	suite.Run(t, new(UserRepositorySuite))
}
