package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"courier-track/internal/apperr"
	"courier-track/internal/domain"
	"courier-track/internal/logx"
)

type fakeAuthUsecase struct {
	registerFn func(ctx context.Context, username, password, phone string) (int64, error)
	loginFn    func(ctx context.Context, username, password string) (domain.Session, string, error)
}

func (f *fakeAuthUsecase) Register(ctx context.Context, username, password, phone string) (int64, error) {
	return f.registerFn(ctx, username, password, phone)
}

func (f *fakeAuthUsecase) Login(ctx context.Context, username, password string) (domain.Session, string, error) {
	return f.loginFn(ctx, username, password)
}

func TestAuthHandler_Register(t *testing.T) {
	t.Parallel()

	uc := &fakeAuthUsecase{
		registerFn: func(_ context.Context, username, password, phone string) (int64, error) {
			assert.Equal(t, "alice", username)
			assert.Equal(t, "secret", password)
			assert.Equal(t, "555-0100", phone)
			return 7, nil
		},
	}
	h := NewAuthHandler(uc, logx.Nop())

	body := `{"username":"alice","password":"secret","confirm_password":"secret","phone":"555-0100"}`
	req := httptest.NewRequest(http.MethodPost, "/register", strings.NewReader(body))
	rec := httptest.NewRecorder()

	h.Register(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "/user/7", rec.Header().Get("Location"))

	var resp map[string]int64
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, int64(7), resp["id"])
}

func TestAuthHandler_Register_PasswordMismatch(t *testing.T) {
	t.Parallel()

	called := false
	uc := &fakeAuthUsecase{
		registerFn: func(context.Context, string, string, string) (int64, error) {
			called = true
			return 0, nil
		},
	}
	h := NewAuthHandler(uc, logx.Nop())

	body := `{"username":"alice","password":"secret","confirm_password":"other"}`
	req := httptest.NewRequest(http.MethodPost, "/register", strings.NewReader(body))
	rec := httptest.NewRecorder()

	h.Register(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.False(t, called)
}

func TestAuthHandler_Register_Conflict(t *testing.T) {
	t.Parallel()

	uc := &fakeAuthUsecase{
		registerFn: func(context.Context, string, string, string) (int64, error) {
			return 0, apperr.Conflict
		},
	}
	h := NewAuthHandler(uc, logx.Nop())

	body := `{"username":"alice","password":"secret","confirm_password":"secret"}`
	req := httptest.NewRequest(http.MethodPost, "/register", strings.NewReader(body))
	rec := httptest.NewRecorder()

	h.Register(rec, req)

	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestAuthHandler_Register_BadJSON(t *testing.T) {
	t.Parallel()

	h := NewAuthHandler(&fakeAuthUsecase{}, logx.Nop())

	req := httptest.NewRequest(http.MethodPost, "/register", strings.NewReader("{not json"))
	rec := httptest.NewRecorder()

	h.Register(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAuthHandler_Login(t *testing.T) {
	t.Parallel()

	uc := &fakeAuthUsecase{
		loginFn: func(_ context.Context, username, password string) (domain.Session, string, error) {
			assert.Equal(t, "bob", username)
			assert.Equal(t, "pw", password)
			return domain.Session{Username: "bob", Admin: true}, "token-123", nil
		},
	}
	h := NewAuthHandler(uc, logx.Nop())

	req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(`{"username":"bob","password":"pw"}`))
	rec := httptest.NewRecorder()

	h.Login(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp loginResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "token-123", resp.Token)
	assert.Equal(t, "bob", resp.Username)
	assert.True(t, resp.Admin)
}

func TestAuthHandler_Login_BadCredentials(t *testing.T) {
	t.Parallel()

	uc := &fakeAuthUsecase{
		loginFn: func(context.Context, string, string) (domain.Session, string, error) {
			return domain.Session{}, "", apperr.Unauthorized
		},
	}
	h := NewAuthHandler(uc, logx.Nop())

	req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(`{"username":"bob","password":"wrong"}`))
	rec := httptest.NewRecorder()

	h.Login(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
