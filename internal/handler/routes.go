package handler

import (
	"net/http"

	"github.com/Stewz00/school-service/internal/logging"
	"github.com/Stewz00/school-service/internal/middleware"
	"github.com/Stewz00/school-service/internal/model"
	"github.com/Stewz00/school-service/internal/service"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
)

type Deps struct {
	Auth      *service.AuthService
	Approvals *service.ApprovalService
	Profiles  *service.ProfileService
	Log       logging.Logger

	// Limiter and StrictLimiter default to the per-IP limits in middleware.
	Limiter       func(http.Handler) http.Handler
	StrictLimiter func(http.Handler) http.Handler
}

// NewRouter wires every HTTP route of the service
func NewRouter(d Deps) *chi.Mux {
	if d.Limiter == nil {
		d.Limiter = middleware.RateLimiter()
	}
	if d.StrictLimiter == nil {
		d.StrictLimiter = middleware.StrictRateLimiter()
	}

	authHandler := NewAuthHandler(d.Auth, d.Log)
	adminHandler := NewAdminHandler(d.Approvals, d.Auth, d.Log)
	profileHandler := NewProfileHandler(d.Profiles, d.Log)

	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(d.Limiter)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Credential endpoints get the strict limit
	r.Group(func(r chi.Router) {
		r.Use(d.StrictLimiter)
		r.Post("/auth/register", authHandler.Register)
		r.Post("/auth/login", authHandler.Login)
		r.Post("/auth/refresh", authHandler.Refresh)
	})

	r.Group(func(r chi.Router) {
		r.Use(middleware.Authenticate(d.Auth))
		r.Post("/auth/logout", authHandler.Logout)
		r.Get("/auth/me", authHandler.Me)

		r.Get("/profile/{kind}/location", profileHandler.GetLocation)
		r.Put("/profile/{kind}/location", profileHandler.UpdateLocation)

		r.Route("/admin", func(r chi.Router) {
			r.Use(middleware.RequireRole(model.RoleSuperAdmin, model.RoleAdmin))
			r.Get("/pending", adminHandler.Pending)
			r.Post("/accounts/{id}/approve", adminHandler.Approve)
			r.Post("/accounts/{id}/reject", adminHandler.Reject)
			r.Post("/teachers", adminHandler.CreateTeacher)
		})
	})

	return r
}
