package handlers

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"reliefhub-backend/internal/auth"
	"reliefhub-backend/internal/config"
	"reliefhub-backend/internal/models"
	"reliefhub-backend/internal/services"
	"reliefhub-backend/pkg/httputil"
)

// ChatService defines the interface expected from the chat service.
// This promotes loose coupling and testability.
type ChatService interface {
	PostMessage(ctx context.Context, content string, sender *models.ChatUser, isAnnouncement bool) (*models.ChatMessage, error)
	GetHistory(ctx context.Context, page, limit int) (*models.ChatPage, error)
	GetHistoryRange(ctx context.Context, start, end time.Time) ([]models.ChatMessage, error)
}

type ChatHandlers struct {
	chatService ChatService
	cfg         *config.Config
}

func NewChatHandlers(chatSvc ChatService, cfg *config.Config) *ChatHandlers {
	return &ChatHandlers{
		chatService: chatSvc,
		cfg:         cfg,
	}
}

// HandleGetMessages handles GET /api/chat?page=&limit=.
func (h *ChatHandlers) HandleGetMessages(w http.ResponseWriter, r *http.Request) {
	page := queryInt(r, "page", 1)
	limit := queryInt(r, "limit", 50)

	chatPage, err := h.chatService.GetHistory(r.Context(), page, limit)
	if err != nil {
		log.Printf("GetMessages handler failed: %v", err)
		httputil.RespondError(w, http.StatusInternalServerError, "Failed to fetch chat messages")
		return
	}

	httputil.RespondJSON(w, http.StatusOK, chatPage)
}

// HandlePostMessage handles POST /api/chat. The authoritative sender is
// the token actor resolved by the auth middleware; the request body's
// sender is honored only when the server explicitly runs in
// client-sender-trust mode and no token actor exists (demo deployments).
func (h *ChatHandlers) HandlePostMessage(w http.ResponseWriter, r *http.Request) {
	var req models.PostMessageRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	defer r.Body.Close()

	sender, ok := auth.ActorFromContext(r.Context())
	if !ok && h.cfg.TrustClientSender && req.Sender != nil {
		log.Printf("WARN: PostMessage using client-supplied sender %q (trust mode)", req.Sender.Name)
		sender = req.Sender
	}

	msg, err := h.chatService.PostMessage(r.Context(), req.Content, sender, req.IsAnnouncement)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrEmptyContent):
			httputil.RespondError(w, http.StatusBadRequest, err.Error())
		case errors.Is(err, services.ErrUnauthenticated):
			httputil.RespondError(w, http.StatusUnauthorized, err.Error())
		case errors.Is(err, services.ErrForbidden):
			httputil.RespondError(w, http.StatusForbidden, "Access denied. Only admin and rescue-team users can post messages.")
		default:
			log.Printf("PostMessage handler failed: %v", err)
			httputil.RespondError(w, http.StatusInternalServerError, "Failed to send message")
		}
		return
	}

	httputil.RespondJSON(w, http.StatusCreated, msg)
}

// HandleGetHistory handles GET /api/chat/history?startDate=&endDate=.
// Dates are RFC3339; both bounds are required and inclusive.
func (h *ChatHandlers) HandleGetHistory(w http.ResponseWriter, r *http.Request) {
	startStr := r.URL.Query().Get("startDate")
	endStr := r.URL.Query().Get("endDate")
	if startStr == "" || endStr == "" {
		httputil.RespondError(w, http.StatusBadRequest, "startDate and endDate query parameters are required")
		return
	}

	start, err := time.Parse(time.RFC3339, startStr)
	if err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid startDate; expected RFC3339 timestamp")
		return
	}
	end, err := time.Parse(time.RFC3339, endStr)
	if err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid endDate; expected RFC3339 timestamp")
		return
	}

	messages, err := h.chatService.GetHistoryRange(r.Context(), start, end)
	if err != nil {
		log.Printf("GetHistory handler failed: %v", err)
		httputil.RespondError(w, http.StatusInternalServerError, "Failed to fetch chat history")
		return
	}

	httputil.RespondJSON(w, http.StatusOK, messages)
}

// queryInt parses an integer query parameter, falling back on a default
// for missing or malformed values rather than rejecting the request.
func queryInt(r *http.Request, key string, fallback int) int {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return v
}
