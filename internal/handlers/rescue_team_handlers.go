package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"reliefhub-backend/internal/models"
	"reliefhub-backend/internal/services"
	"reliefhub-backend/internal/store"
	"reliefhub-backend/pkg/httputil"
)

// RescueTeamHandlers handles HTTP requests for rescue team accounts.
type RescueTeamHandlers struct {
	teamService *services.RescueTeamService
}

func NewRescueTeamHandlers(teamSvc *services.RescueTeamService) *RescueTeamHandlers {
	return &RescueTeamHandlers{
		teamService: teamSvc,
	}
}

// HandleRegister handles POST /api/auth/rescue-team/register.
func (h *RescueTeamHandlers) HandleRegister(w http.ResponseWriter, r *http.Request) {
	var req models.RegisterRescueTeamRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	defer r.Body.Close()

	team, err := h.teamService.Register(r.Context(), req)
	if err != nil {
		log.Printf("RescueTeam register handler failed for %s: %v", req.Email, err)
		switch {
		case errors.Is(err, services.ErrTeamAlreadyExists):
			httputil.RespondError(w, http.StatusConflict, err.Error())
		case errors.Is(err, services.ErrValidation):
			httputil.RespondError(w, http.StatusBadRequest, err.Error())
		default:
			httputil.RespondError(w, http.StatusInternalServerError, "Registration failed due to an internal error")
		}
		return
	}

	httputil.RespondJSON(w, http.StatusCreated, team)
}

// HandleList handles GET /api/auth/rescue-team.
func (h *RescueTeamHandlers) HandleList(w http.ResponseWriter, r *http.Request) {
	teams, err := h.teamService.List(r.Context())
	if err != nil {
		log.Printf("RescueTeam list handler failed: %v", err)
		httputil.RespondError(w, http.StatusInternalServerError, "Failed to fetch rescue teams")
		return
	}
	httputil.RespondJSON(w, http.StatusOK, teams)
}

// HandleGetByID handles GET /api/auth/rescue-team/{teamID}.
func (h *RescueTeamHandlers) HandleGetByID(w http.ResponseWriter, r *http.Request) {
	teamID, err := uuid.Parse(chi.URLParam(r, "teamID"))
	if err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid rescue team ID format")
		return
	}

	team, err := h.teamService.GetByID(r.Context(), teamID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			httputil.RespondError(w, http.StatusNotFound, "Rescue team not found")
			return
		}
		log.Printf("RescueTeam get handler failed for %s: %v", teamID, err)
		httputil.RespondError(w, http.StatusInternalServerError, "Failed to fetch rescue team")
		return
	}
	httputil.RespondJSON(w, http.StatusOK, team)
}
