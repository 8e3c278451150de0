package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"

	"reliefhub-backend/internal/chat"
	"reliefhub-backend/internal/mentions"
	"reliefhub-backend/internal/models"
	"reliefhub-backend/internal/store"
)

// Custom errors for the chat service
var (
	ErrEmptyContent       = errors.New("message content is required")
	ErrUnauthenticated    = errors.New("authentication required to send messages")
	ErrForbidden          = errors.New("only admin and rescue-team users can post messages")
	ErrStorageUnavailable = errors.New("chat storage unavailable")
)

// Broadcaster pushes an accepted message to all connected viewers.
// Implemented by realtime.Hub; injected so the service owns the single
// ingestion path and tests can observe publishes.
type Broadcaster interface {
	Publish(msg *models.ChatMessage) error
}

const (
	defaultPageSize = 50
	maxPageSize     = 200
)

// ChatService orchestrates posting and reading community chat messages:
// it validates, authorizes, tags mentions, persists, and then fans out.
type ChatService struct {
	store       store.Store
	broadcaster Broadcaster
}

func NewChatService(s store.Store, b Broadcaster) *ChatService {
	return &ChatService{
		store:       s,
		broadcaster: b,
	}
}

// PostMessage validates and persists a new message from sender, then
// broadcasts it. The order of effects is fixed: nothing is broadcast
// unless the append succeeded, and a broadcast failure after a successful
// append is logged but never surfaced, because at that point the message
// is already durable.
//
// A nil sender is an anonymous caller. isAnnouncement from a non-admin is
// quietly cleared rather than rejected.
func (s *ChatService) PostMessage(ctx context.Context, content string, sender *models.ChatUser, isAnnouncement bool) (*models.ChatMessage, error) {
	if strings.TrimSpace(content) == "" {
		return nil, ErrEmptyContent
	}
	if sender == nil {
		return nil, ErrUnauthenticated
	}
	if !chat.CanPost(sender) {
		return nil, ErrForbidden
	}

	// Mentions are always recomputed server-side against the live
	// directory; whatever the client tagged is ignored. Directory failure
	// only degrades tagging, it does not block the post.
	var dir mentions.Directory
	participants, err := s.store.ListChatParticipants(ctx)
	if err != nil {
		log.Printf("WARN: [ChatService] mention directory unavailable, posting without mentions: %v", err)
	} else {
		dir = mentions.NewDirectory(participants)
	}

	msg := models.ChatMessage{
		ID:             uuid.New(),
		Sender:         *sender,
		Content:        content,
		Mentions:       mentions.Parse(content, dir),
		IsAnnouncement: isAnnouncement && chat.CanAnnounce(sender),
		IsSuper:        sender.Role == models.RoleAdmin,
	}

	persisted, err := s.store.AppendChatMessage(ctx, msg)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}

	if s.broadcaster != nil {
		if err := s.broadcaster.Publish(persisted); err != nil {
			log.Printf("WARN: [ChatService] broadcast failed for message %s (already persisted): %v", persisted.ID, err)
		}
	}

	return persisted, nil
}

// GetHistory returns one page of chat history. Reads are public; only
// posting is role-gated.
func (s *ChatService) GetHistory(ctx context.Context, page, limit int) (*models.ChatPage, error) {
	if page < 1 {
		page = 1
	}
	if limit <= 0 {
		limit = defaultPageSize
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}

	chatPage, err := s.store.PageChatMessages(ctx, page, limit)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}
	return chatPage, nil
}

// GetHistoryRange returns all messages with start <= timestamp <= end,
// ascending.
func (s *ChatService) GetHistoryRange(ctx context.Context, start, end time.Time) ([]models.ChatMessage, error) {
	messages, err := s.store.ChatMessagesInRange(ctx, start, end)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}
	return messages, nil
}
