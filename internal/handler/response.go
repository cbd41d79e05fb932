package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/Stewz00/school-service/internal/logging"
	"github.com/Stewz00/school-service/internal/model"
	"github.com/Stewz00/school-service/internal/repository"
	"github.com/Stewz00/school-service/internal/service"
)

// ErrorResponse is the body of every non-2xx response
type ErrorResponse struct {
	Detail string `json:"detail"`
}

// AccountResponse is the public view of an account. It never carries the password hash.
type AccountResponse struct {
	ID              int64                `json:"id"`
	Email           string               `json:"email"`
	Name            string               `json:"name"`
	FatherName      string               `json:"father_name"`
	Gender          model.Gender         `json:"gender"`
	Role            model.Role           `json:"role"`
	IsActive        bool                 `json:"is_active"`
	ApprovalStatus  model.ApprovalStatus `json:"approval_status"`
	RejectionReason string               `json:"rejection_reason,omitempty"`
	Created         time.Time            `json:"created_at"`
	LastLogin       *time.Time           `json:"last_login,omitempty"`
}

func toAccountResponse(a *model.Account) AccountResponse {
	return AccountResponse{
		ID:              a.ID,
		Email:           a.Email,
		Name:            a.Name,
		FatherName:      a.FatherName,
		Gender:          a.Gender,
		Role:            a.Role,
		IsActive:        a.IsActive,
		ApprovalStatus:  a.ApprovalStatus,
		RejectionReason: a.RejectionReason,
		Created:         a.Created,
		LastLogin:       a.LastLogin,
	}
}

func sendJSON(w http.ResponseWriter, body any, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(body)
}

// Helper function to send JSON error responses
func sendJSONError(w http.ResponseWriter, message string, code int) {
	sendJSON(w, ErrorResponse{Detail: message}, code)
}

// sendServiceError maps service and repository errors onto HTTP statuses.
// Anything unrecognised is logged and reported as a 500 without detail.
func sendServiceError(w http.ResponseWriter, r *http.Request, log logging.Logger, err error) {
	var code int
	switch {
	case errors.Is(err, service.ErrValidation),
		errors.Is(err, service.ErrRejectionReason):
		code = http.StatusBadRequest
	case errors.Is(err, repository.ErrDuplicateEmail),
		errors.Is(err, service.ErrNotPending):
		code = http.StatusConflict
	case errors.Is(err, service.ErrInvalidCredentials),
		errors.Is(err, service.ErrInvalidToken),
		errors.Is(err, service.ErrTokenExpired):
		code = http.StatusUnauthorized
	case errors.Is(err, service.ErrForbidden):
		code = http.StatusForbidden
	case errors.Is(err, service.ErrAccountNotFound):
		code = http.StatusNotFound
	default:
		log.Error(r.Context(), "request failed", "path", r.URL.Path, "error", err)
		sendJSONError(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	sendJSONError(w, err.Error(), code)
}
