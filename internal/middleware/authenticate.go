package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/Stewz00/school-service/internal/model"
	"github.com/Stewz00/school-service/internal/service"
)

// TokenValidator is the part of the auth service the middleware needs
type TokenValidator interface {
	ValidateToken(ctx context.Context, token string) (*service.Claims, error)
	CurrentAccount(ctx context.Context, claims *service.Claims) (*model.Account, error)
}

type ctxKey int

const (
	accountKey ctxKey = iota
	tokenKey
)

// Authenticate requires a valid bearer access token and stores the account
// behind it in the request context
func Authenticate(v TokenValidator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := BearerToken(r)
			if token == "" {
				writeError(w, "No token provided", http.StatusUnauthorized)
				return
			}

			claims, err := v.ValidateToken(r.Context(), token)
			if err != nil {
				unauthorized(w, err)
				return
			}
			account, err := v.CurrentAccount(r.Context(), claims)
			if err != nil {
				unauthorized(w, err)
				return
			}

			ctx := context.WithValue(r.Context(), accountKey, account)
			ctx = context.WithValue(ctx, tokenKey, token)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireRole rejects authenticated accounts whose role is not listed
func RequireRole(roles ...model.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			account, ok := AccountFromContext(r.Context())
			if !ok {
				writeError(w, "Authentication required", http.StatusUnauthorized)
				return
			}
			for _, role := range roles {
				if account.Role == role {
					next.ServeHTTP(w, r)
					return
				}
			}
			writeError(w, "You do not have permission to perform this action", http.StatusForbidden)
		})
	}
}

func AccountFromContext(ctx context.Context) (*model.Account, bool) {
	a, ok := ctx.Value(accountKey).(*model.Account)
	return a, ok && a != nil
}

// TokenFromContext returns the bearer token accepted by Authenticate
func TokenFromContext(ctx context.Context) string {
	t, _ := ctx.Value(tokenKey).(string)
	return t
}

// BearerToken extracts the token from an "Authorization: Bearer <token>" header
func BearerToken(r *http.Request) string {
	parts := strings.Fields(r.Header.Get("Authorization"))
	if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
		return parts[1]
	}
	return ""
}

func unauthorized(w http.ResponseWriter, err error) {
	msg := "Invalid token"
	if errors.Is(err, service.ErrTokenExpired) {
		msg = "Token has expired"
	} else if !errors.Is(err, service.ErrInvalidToken) {
		writeError(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	writeError(w, msg, http.StatusUnauthorized)
}

func writeError(w http.ResponseWriter, message string, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]string{"detail": message})
}
