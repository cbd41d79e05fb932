package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/Stewz00/school-service/internal/logging"
	"github.com/Stewz00/school-service/internal/middleware"
	"github.com/Stewz00/school-service/internal/model"
	"github.com/Stewz00/school-service/internal/service"
)

type AuthHandler struct {
	authService *service.AuthService
	log         logging.Logger
}

func NewAuthHandler(authService *service.AuthService, log logging.Logger) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		log:         log,
	}
}

type RegisterRequest struct {
	Email           string       `json:"email"`
	Password        string       `json:"password"`
	PasswordConfirm string       `json:"password_confirm"`
	Name            string       `json:"name"`
	FatherName      string       `json:"father_name"`
	Gender          model.Gender `json:"gender"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResponse struct {
	User             AccountResponse `json:"user"`
	Access           string          `json:"access"`
	Refresh          string          `json:"refresh"`
	AccessExpiresAt  time.Time       `json:"access_expires_at"`
	RefreshExpiresAt time.Time       `json:"refresh_expires_at"`
}

type RefreshRequest struct {
	Refresh string `json:"refresh"`
}

type RefreshResponse struct {
	Access          string    `json:"access"`
	AccessExpiresAt time.Time `json:"access_expires_at"`
}

// Register handles student self-registration. The account starts pending approval.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		sendJSONError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	account, err := h.authService.Register(r.Context(), service.RegisterInput{
		Email:           req.Email,
		Password:        req.Password,
		PasswordConfirm: req.PasswordConfirm,
		Name:            req.Name,
		FatherName:      req.FatherName,
		Gender:          req.Gender,
	})
	if err != nil {
		sendServiceError(w, r, h.log, err)
		return
	}

	sendJSON(w, toAccountResponse(account), http.StatusCreated)
}

// Login authenticates by email and password and returns an access/refresh token pair
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		sendJSONError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	res, err := h.authService.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		sendServiceError(w, r, h.log, err)
		return
	}

	sendJSON(w, LoginResponse{
		User:             toAccountResponse(res.Account),
		Access:           res.Tokens.Access,
		Refresh:          res.Tokens.Refresh,
		AccessExpiresAt:  res.Tokens.AccessExpiresAt,
		RefreshExpiresAt: res.Tokens.RefreshExpiresAt,
	}, http.StatusOK)
}

// Refresh exchanges a refresh token for a new access token
func (h *AuthHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	var req RefreshRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Refresh == "" {
		sendJSONError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	access, expires, err := h.authService.Refresh(r.Context(), req.Refresh)
	if err != nil {
		sendServiceError(w, r, h.log, err)
		return
	}

	sendJSON(w, RefreshResponse{Access: access, AccessExpiresAt: expires}, http.StatusOK)
}

// Logout revokes the session behind the bearer token
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.authService.Logout(r.Context(), middleware.TokenFromContext(r.Context())); err != nil {
		sendServiceError(w, r, h.log, err)
		return
	}

	sendJSON(w, map[string]string{"message": "Logged out successfully"}, http.StatusOK)
}

// Me returns the authenticated account
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	account, _ := middleware.AccountFromContext(r.Context())
	sendJSON(w, toAccountResponse(account), http.StatusOK)
}
