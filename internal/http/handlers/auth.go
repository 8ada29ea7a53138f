package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"courier-track/internal/apperr"
	"courier-track/internal/logx"
)

// AuthHandler serves registration and login endpoints.
type AuthHandler struct {
	uc     authUsecase
	logger logx.Logger
}

// NewAuthHandler wires an authUsecase into HTTP handlers.
func NewAuthHandler(uc authUsecase, logger logx.Logger) *AuthHandler {
	if logger == nil {
		logger = logx.Nop()
	}
	return &AuthHandler{uc: uc, logger: logger}
}

// Register handles POST /register.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if ok := decodeJSON(h.logger, w, r, &req); !ok {
		return
	}
	if strings.TrimSpace(req.Username) == "" || req.Password == "" {
		writeError(h.logger, w, r, http.StatusBadRequest, "username and password are required")
		return
	}
	if req.Password != req.ConfirmPassword {
		writeError(h.logger, w, r, http.StatusBadRequest, "passwords do not match")
		return
	}

	id, err := h.uc.Register(r.Context(), req.Username, req.Password, req.Phone)
	switch {
	case err == nil:
		w.Header().Set("Location", "/user/"+strconv.FormatInt(id, 10))
		writeJSON(h.logger, w, r, http.StatusCreated, map[string]any{"id": id})
	case errors.Is(err, apperr.Invalid):
		writeError(h.logger, w, r, http.StatusBadRequest, "invalid input")
	case errors.Is(err, apperr.Conflict):
		writeError(h.logger, w, r, http.StatusConflict, "username already exists")
	default:
		writeError(h.logger, w, r, http.StatusInternalServerError, "internal error")
	}
}

// Login handles POST /login.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if ok := decodeJSON(h.logger, w, r, &req); !ok {
		return
	}

	session, token, err := h.uc.Login(r.Context(), req.Username, req.Password)
	switch {
	case err == nil:
		writeJSON(h.logger, w, r, http.StatusOK, loginResponse{
			Token:    token,
			Username: session.Username,
			Admin:    session.Admin,
		})
	case errors.Is(err, apperr.Unauthorized):
		writeError(h.logger, w, r, http.StatusUnauthorized, "invalid credentials")
	default:
		writeError(h.logger, w, r, http.StatusInternalServerError, "internal error")
	}
}
