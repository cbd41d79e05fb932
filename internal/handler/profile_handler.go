package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/Stewz00/school-service/internal/logging"
	"github.com/Stewz00/school-service/internal/middleware"
	"github.com/Stewz00/school-service/internal/model"
	"github.com/Stewz00/school-service/internal/service"
	"github.com/go-chi/chi/v5"
)

type ProfileHandler struct {
	profiles *service.ProfileService
	log      logging.Logger
}

func NewProfileHandler(profiles *service.ProfileService, log logging.Logger) *ProfileHandler {
	return &ProfileHandler{profiles: profiles, log: log}
}

// GetLocation returns the area/district/village of a student or teacher profile.
// Without ?account_id= it targets the caller's own profile.
func (h *ProfileHandler) GetLocation(w http.ResponseWriter, r *http.Request) {
	actor, kind, id, ok := h.target(w, r)
	if !ok {
		return
	}

	loc, err := h.profiles.GetLocation(r.Context(), actor, kind, id)
	if err != nil {
		sendServiceError(w, r, h.log, err)
		return
	}
	sendJSON(w, loc, http.StatusOK)
}

func (h *ProfileHandler) UpdateLocation(w http.ResponseWriter, r *http.Request) {
	actor, kind, id, ok := h.target(w, r)
	if !ok {
		return
	}
	var req model.Location
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		sendJSONError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	loc, err := h.profiles.UpdateLocation(r.Context(), actor, kind, id, req)
	if err != nil {
		sendServiceError(w, r, h.log, err)
		return
	}
	sendJSON(w, loc, http.StatusOK)
}

func (h *ProfileHandler) target(w http.ResponseWriter, r *http.Request) (*model.Account, model.ProfileKind, int64, bool) {
	actor, _ := middleware.AccountFromContext(r.Context())
	kind := model.ProfileKind(chi.URLParam(r, "kind"))
	if !kind.Valid() {
		sendJSONError(w, "Unknown profile kind", http.StatusNotFound)
		return nil, "", 0, false
	}

	id := actor.ID
	if raw := r.URL.Query().Get("account_id"); raw != "" {
		parsed, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || parsed <= 0 {
			sendJSONError(w, "Invalid account id", http.StatusBadRequest)
			return nil, "", 0, false
		}
		id = parsed
	}
	return actor, kind, id, true
}
