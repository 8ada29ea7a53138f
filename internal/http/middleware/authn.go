package middleware

import (
	"context"
	"io"
	"net/http"
	"strings"

	"courier-track/internal/domain"
	"courier-track/internal/logx"
)

type ctxKey int

const sessionKey ctxKey = iota

// TokenParser validates a session token and returns the session it carries.
type TokenParser interface {
	Parse(raw string) (domain.Session, error)
}

// SessionFromContext returns the session placed by Authenticate, if any.
func SessionFromContext(ctx context.Context) (domain.Session, bool) {
	s, ok := ctx.Value(sessionKey).(domain.Session)
	return s, ok
}

// ContextWithSession stores a session in the context the same way
// Authenticate does.
func ContextWithSession(ctx context.Context, s domain.Session) context.Context {
	return context.WithValue(ctx, sessionKey, s)
}

// Authenticate parses the Bearer token and stores the session in the request
// context. Requests without a valid token get a 401.
func Authenticate(parser TokenParser, logger logx.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw := bearerToken(r)
			if raw == "" {
				deny(w, http.StatusUnauthorized, `{"error":"missing token"}`, logger)
				return
			}
			session, err := parser.Parse(raw)
			if err != nil {
				logger.Debug("token rejected", logx.Any("err", err))
				deny(w, http.StatusUnauthorized, `{"error":"invalid token"}`, logger)
				return
			}
			next.ServeHTTP(w, r.WithContext(ContextWithSession(r.Context(), session)))
		})
	}
}

// RequireAdmin rejects sessions without the admin role. Must run after Authenticate.
func RequireAdmin(logger logx.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			session, ok := SessionFromContext(r.Context())
			if !ok {
				deny(w, http.StatusUnauthorized, `{"error":"missing token"}`, logger)
				return
			}
			if !session.Admin {
				logger.Warn("admin route denied", logx.String("username", session.Username))
				deny(w, http.StatusForbidden, `{"error":"admin only"}`, logger)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func bearerToken(r *http.Request) string {
	h := r.Header.Get("Authorization")
	const prefix = "Bearer "
	if len(h) > len(prefix) && strings.EqualFold(h[:len(prefix)], prefix) {
		return strings.TrimSpace(h[len(prefix):])
	}
	return ""
}

func deny(w http.ResponseWriter, status int, body string, logger logx.Logger) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := io.WriteString(w, body); err != nil {
		logger.Debug("deny response write failed", logx.Any("err", err))
	}
}
