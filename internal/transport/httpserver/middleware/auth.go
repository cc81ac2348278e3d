package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	admindomain "church-app-go/internal/domain/admin"
	"church-app-go/pkg/logger"
)

type contextKey int

const accountKey contextKey = iota

// Authenticator resolves a session token to an admin account.
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (*admindomain.Account, error)
}

// AdminAuth guards routes behind the session cookie set at login.
type AdminAuth struct {
	auth   Authenticator
	cookie string
	log    logger.Logger
}

func NewAdminAuth(auth Authenticator, cookieName string, log logger.Logger) *AdminAuth {
	if cookieName == "" {
		cookieName = "token"
	}
	return &AdminAuth{auth: auth, cookie: cookieName, log: log}
}

func (a *AdminAuth) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := ""
		if c, err := r.Cookie(a.cookie); err == nil {
			token = strings.TrimSpace(c.Value)
		}
		if token == "" {
			writeError(w, http.StatusUnauthorized, "no_token", "Access denied. No token provided.")
			return
		}

		account, err := a.auth.Authenticate(r.Context(), token)
		if err != nil {
			switch {
			case errors.Is(err, admindomain.ErrForbidden):
				a.log.BusinessError("auth: non-admin rejected", err, "path", r.URL.Path)
				writeError(w, http.StatusForbidden, "forbidden", "Access denied. Admin privileges required.")
			case errors.Is(err, admindomain.ErrAccountNotFound):
				a.log.BusinessError("auth: account not found", err, "path", r.URL.Path)
				writeError(w, http.StatusUnauthorized, "account_not_found", "User not found")
			case errors.Is(err, admindomain.ErrUnauthenticated):
				a.log.BusinessError("auth: invalid token", err, "path", r.URL.Path)
				writeError(w, http.StatusUnauthorized, "invalid_token", "Invalid token")
			default:
				a.log.InternalError("auth: authenticate failed", err, "path", r.URL.Path)
				writeError(w, http.StatusInternalServerError, "internal_error", "Internal server error")
			}
			return
		}

		next.ServeHTTP(w, r.WithContext(WithAccount(r.Context(), account)))
	})
}

func WithAccount(ctx context.Context, account *admindomain.Account) context.Context {
	return context.WithValue(ctx, accountKey, account)
}

func AccountFromContext(ctx context.Context) (*admindomain.Account, bool) {
	account, ok := ctx.Value(accountKey).(*admindomain.Account)
	if !ok || account == nil {
		return nil, false
	}
	return account, true
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]interface{}{
		"success": false,
		"code":    code,
		"message": message,
	})
}
