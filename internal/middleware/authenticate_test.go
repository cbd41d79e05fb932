package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Stewz00/school-service/internal/model"
	"github.com/Stewz00/school-service/internal/service"
	"github.com/stretchr/testify/assert"
)

type fakeValidator struct {
	tokens map[string]*model.Account
	err    error
}

func (f *fakeValidator) ValidateToken(ctx context.Context, token string) (*service.Claims, error) {
	if f.err != nil {
		return nil, f.err
	}
	if _, ok := f.tokens[token]; !ok {
		return nil, service.ErrInvalidToken
	}
	c := &service.Claims{SessionID: token}
	return c, nil
}

func (f *fakeValidator) CurrentAccount(ctx context.Context, claims *service.Claims) (*model.Account, error) {
	return f.tokens[claims.SessionID], nil
}

func TestAuthenticateAndRequireRole(t *testing.T) {
	v := &fakeValidator{tokens: map[string]*model.Account{
		"admin-token":   {ID: 1, Role: model.RoleSuperAdmin},
		"student-token": {ID: 2, Role: model.RoleStudent},
	}}

	final := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		a, ok := AccountFromContext(r.Context())
		if !ok || TokenFromContext(r.Context()) == "" {
			w.WriteHeader(http.StatusTeapot)
			return
		}
		w.Header().Set("X-Account", string(a.Role))
		w.WriteHeader(http.StatusOK)
	})
	h := Authenticate(v)(RequireRole(model.RoleSuperAdmin, model.RoleAdmin)(final))

	tests := []struct {
		name   string
		header string
		want   int
	}{
		{name: "no header", header: "", want: http.StatusUnauthorized},
		{name: "malformed header", header: "Token admin-token", want: http.StatusUnauthorized},
		{name: "unknown token", header: "Bearer nope", want: http.StatusUnauthorized},
		{name: "wrong role", header: "Bearer student-token", want: http.StatusForbidden},
		{name: "allowed", header: "bearer admin-token", want: http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/admin/pending", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			h.ServeHTTP(w, req)
			assert.Equal(t, tt.want, w.Code)
		})
	}
}

func TestAuthenticate_ExpiredAndStoreErrors(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK) })

	tests := []struct {
		name string
		err  error
		want int
		body string
	}{
		{name: "expired", err: service.ErrTokenExpired, want: http.StatusUnauthorized, body: "Token has expired"},
		{name: "store down", err: errors.New("connection refused"), want: http.StatusInternalServerError, body: "Internal server error"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/auth/me", nil)
			req.Header.Set("Authorization", "Bearer x")
			w := httptest.NewRecorder()
			Authenticate(&fakeValidator{err: tt.err})(next).ServeHTTP(w, req)
			assert.Equal(t, tt.want, w.Code)
			assert.Contains(t, w.Body.String(), tt.body)
		})
	}
}
