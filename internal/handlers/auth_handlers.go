package handlers

import (
	"context"
	"errors"
	"log"
	"net/http"

	"reliefhub-backend/internal/auth"
	"reliefhub-backend/internal/models"
	"reliefhub-backend/internal/services"
	"reliefhub-backend/internal/store"
	"reliefhub-backend/pkg/httputil"
)

// AuthService defines the interface expected from the auth service.
// This promotes loose coupling and testability.
type AuthService interface {
	Register(ctx context.Context, req models.RegisterRequest) (string, *models.ChatUser, error)
	Login(ctx context.Context, email, password string) (string, *models.ChatUser, error)
	Profile(ctx context.Context, actorID string, role models.Role) (*models.ChatUser, error)
}

type AuthHandler struct {
	authService AuthService
}

func NewAuthHandler(authSvc AuthService) *AuthHandler {
	return &AuthHandler{
		authService: authSvc,
	}
}

// HandleRegister handles the POST /api/auth/register request.
func (h *AuthHandler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	var req models.RegisterRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	defer r.Body.Close()

	token, actor, err := h.authService.Register(r.Context(), req)
	if err != nil {
		log.Printf("Register handler failed for email %s: %v", req.Email, err)
		switch {
		case errors.Is(err, services.ErrUserAlreadyExists):
			httputil.RespondError(w, http.StatusBadRequest, err.Error())
		case errors.Is(err, services.ErrValidation):
			httputil.RespondError(w, http.StatusBadRequest, err.Error())
		default:
			httputil.RespondError(w, http.StatusInternalServerError, "Registration failed due to an internal error")
		}
		return
	}

	httputil.RespondJSON(w, http.StatusCreated, models.AuthResponse{
		Token: token,
		User:  *actor,
	})
}

// HandleLogin handles the POST /api/auth/login request. One endpoint
// serves all account types.
func (h *AuthHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	defer r.Body.Close()

	if req.Email == "" || req.Password == "" {
		httputil.RespondError(w, http.StatusBadRequest, "Email and password are required")
		return
	}

	token, actor, err := h.authService.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		log.Printf("Login handler failed for email %s: %v", req.Email, err)
		switch {
		case errors.Is(err, services.ErrInvalidCredentials):
			httputil.RespondError(w, http.StatusUnauthorized, err.Error())
		default:
			httputil.RespondError(w, http.StatusInternalServerError, "Login failed due to an internal error")
		}
		return
	}

	httputil.RespondJSON(w, http.StatusOK, models.AuthResponse{
		Token: token,
		User:  *actor,
	})
}

// HandleMe handles GET /api/auth/me: the authenticated actor's current
// database state, as opposed to the snapshot frozen in the token.
func (h *AuthHandler) HandleMe(w http.ResponseWriter, r *http.Request) {
	actor, ok := auth.ActorFromContext(r.Context())
	if !ok {
		httputil.RespondError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	profile, err := h.authService.Profile(r.Context(), actor.ID, actor.Role)
	if err != nil {
		switch {
		case errors.Is(err, store.ErrNotFound):
			httputil.RespondError(w, http.StatusNotFound, "Account no longer exists")
		case errors.Is(err, services.ErrValidation):
			httputil.RespondError(w, http.StatusBadRequest, err.Error())
		default:
			log.Printf("Profile handler failed for actor %s: %v", actor.ID, err)
			httputil.RespondError(w, http.StatusInternalServerError, "Failed to fetch profile")
		}
		return
	}

	httputil.RespondJSON(w, http.StatusOK, profile)
}
