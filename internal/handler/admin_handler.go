package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/Stewz00/school-service/internal/logging"
	"github.com/Stewz00/school-service/internal/middleware"
	"github.com/Stewz00/school-service/internal/service"
	"github.com/go-chi/chi/v5"
)

type AdminHandler struct {
	approvals *service.ApprovalService
	auth      *service.AuthService
	log       logging.Logger
}

func NewAdminHandler(approvals *service.ApprovalService, auth *service.AuthService, log logging.Logger) *AdminHandler {
	return &AdminHandler{approvals: approvals, auth: auth, log: log}
}

type RejectRequest struct {
	Reason string `json:"reason"`
}

// Pending lists student registrations awaiting approval
func (h *AdminHandler) Pending(w http.ResponseWriter, r *http.Request) {
	accounts, err := h.approvals.ListPending(r.Context())
	if err != nil {
		sendServiceError(w, r, h.log, err)
		return
	}

	out := make([]AccountResponse, 0, len(accounts))
	for _, a := range accounts {
		out = append(out, toAccountResponse(a))
	}
	sendJSON(w, out, http.StatusOK)
}

func (h *AdminHandler) Approve(w http.ResponseWriter, r *http.Request) {
	id, ok := accountIDParam(w, r)
	if !ok {
		return
	}
	actor, _ := middleware.AccountFromContext(r.Context())

	account, err := h.approvals.Approve(r.Context(), actor, id)
	if err != nil {
		sendServiceError(w, r, h.log, err)
		return
	}
	sendJSON(w, toAccountResponse(account), http.StatusOK)
}

func (h *AdminHandler) Reject(w http.ResponseWriter, r *http.Request) {
	id, ok := accountIDParam(w, r)
	if !ok {
		return
	}
	var req RejectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		sendJSONError(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	actor, _ := middleware.AccountFromContext(r.Context())

	account, err := h.approvals.Reject(r.Context(), actor, id, req.Reason)
	if err != nil {
		sendServiceError(w, r, h.log, err)
		return
	}
	sendJSON(w, toAccountResponse(account), http.StatusOK)
}

// CreateTeacher provisions an approved teacher account
func (h *AdminHandler) CreateTeacher(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		sendJSONError(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	actor, _ := middleware.AccountFromContext(r.Context())

	account, err := h.auth.CreateTeacher(r.Context(), actor, service.RegisterInput{
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

func accountIDParam(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		sendJSONError(w, "Invalid account id", http.StatusBadRequest)
		return 0, false
	}
	return id, true
}
