package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStrictRateLimiter(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	tests := []struct {
		name           string
		remoteAddr     string
		requests       int
		wantStatusCode int
	}{
		{name: "within limit", remoteAddr: "10.0.0.1:12345", requests: 5, wantStatusCode: http.StatusOK},
		{name: "exceed limit", remoteAddr: "10.0.0.2:12345", requests: 15, wantStatusCode: http.StatusTooManyRequests},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			limiter := StrictRateLimiter()(handler)

			var lastStatus int
			for i := 0; i < tt.requests; i++ {
				req := httptest.NewRequest(http.MethodPost, "/auth/login", nil)
				req.RemoteAddr = tt.remoteAddr
				w := httptest.NewRecorder()

				limiter.ServeHTTP(w, req)
				lastStatus = w.Code
			}

			assert.Equal(t, tt.wantStatusCode, lastStatus)
		})
	}
}
