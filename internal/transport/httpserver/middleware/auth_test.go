package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	admindomain "church-app-go/internal/domain/admin"
	"church-app-go/pkg/logger"
)

type fakeAuthenticator map[string]error

func (f fakeAuthenticator) Authenticate(ctx context.Context, token string) (*admindomain.Account, error) {
	if err, ok := f[token]; ok {
		return nil, err
	}
	return &admindomain.Account{ID: "a-1", Email: "admin@church.example", Role: admindomain.RoleAdmin}, nil
}

func TestAdminAuthStatuses(t *testing.T) {
	auth := fakeAuthenticator{
		"editor":  admindomain.ErrForbidden,
		"ghost":   admindomain.ErrAccountNotFound,
		"expired": admindomain.ErrUnauthenticated,
		"broken":  errors.New("db down"),
	}
	var seen *admindomain.Account
	h := NewAdminAuth(auth, "token", logger.Discard()).Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen, _ = AccountFromContext(r.Context())
		w.WriteHeader(http.StatusNoContent)
	}))

	cases := []struct {
		name   string
		cookie string
		want   int
	}{
		{name: "no cookie", want: http.StatusUnauthorized},
		{name: "blank cookie", cookie: "  ", want: http.StatusUnauthorized},
		{name: "non admin", cookie: "editor", want: http.StatusForbidden},
		{name: "unknown account", cookie: "ghost", want: http.StatusUnauthorized},
		{name: "invalid token", cookie: "expired", want: http.StatusUnauthorized},
		{name: "store failure", cookie: "broken", want: http.StatusInternalServerError},
		{name: "admin", cookie: "good", want: http.StatusNoContent},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			seen = nil
			req := httptest.NewRequest(http.MethodGet, "/church/members", nil)
			if tc.cookie != "" {
				req.AddCookie(&http.Cookie{Name: "token", Value: tc.cookie})
			}
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)

			if rec.Code != tc.want {
				t.Fatalf("expected %d, got %d", tc.want, rec.Code)
			}
			if tc.want == http.StatusNoContent && (seen == nil || seen.ID != "a-1") {
				t.Fatalf("expected account in context, got %+v", seen)
			}
		})
	}
}
