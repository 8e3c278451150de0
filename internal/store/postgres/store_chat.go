package postgres

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"reliefhub-backend/internal/models"
	"reliefhub-backend/internal/store"
)

// Chat messages live in a single append-only table. The sender snapshot
// and the mention list are denormalized JSONB, matching the message's
// audit-trail semantics: a later role or name change never rewrites what
// was said and by whom.

// AppendChatMessage persists a new chat message and returns the stored
// record. A zero ID or timestamp is assigned server-side. Any database
// failure is reported as store.ErrUnavailable; appends are never retried
// here.
func (s *PostgresStore) AppendChatMessage(ctx context.Context, msg models.ChatMessage) (*models.ChatMessage, error) {
	if msg.ID == uuid.Nil {
		msg.ID = uuid.New()
	}
	if msg.Timestamp.IsZero() {
		msg.Timestamp = time.Now().UTC()
	}
	if msg.Mentions == nil {
		msg.Mentions = []models.Mention{}
	}

	senderJSON, err := json.Marshal(msg.Sender)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal sender snapshot: %w", err)
	}
	mentionsJSON, err := json.Marshal(msg.Mentions)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal mentions: %w", err)
	}

	query := `
		INSERT INTO chat_messages (id, sender, content, mentions, is_super, is_announcement, ts)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err = s.db.Exec(ctx, query,
		msg.ID,
		senderJSON,
		msg.Content,
		mentionsJSON,
		msg.IsSuper,
		msg.IsAnnouncement,
		msg.Timestamp,
	)
	if err != nil {
		log.Printf("ERROR [PostgresStore] AppendChatMessage: insert failed for message %s: %v", msg.ID, err)
		return nil, fmt.Errorf("%w: appending chat message: %v", store.ErrUnavailable, err)
	}

	return &msg, nil
}

// PageChatMessages returns one page of chat history. Page 1 is the
// newest pageSize-window of the log; within the page, messages are
// re-ordered chronologically for display.
func (s *PostgresStore) PageChatMessages(ctx context.Context, page, limit int) (*models.ChatPage, error) {
	if page < 1 {
		page = 1
	}
	offset := (page - 1) * limit

	var total int
	if err := s.db.QueryRow(ctx, `SELECT COUNT(*) FROM chat_messages`).Scan(&total); err != nil {
		log.Printf("ERROR [PostgresStore] PageChatMessages: count failed: %v", err)
		return nil, fmt.Errorf("%w: counting chat messages: %v", store.ErrUnavailable, err)
	}

	query := `
		SELECT id, sender, content, mentions, is_super, is_announcement, ts
		FROM chat_messages
		ORDER BY ts DESC
		LIMIT $1 OFFSET $2`

	rows, err := s.db.Query(ctx, query, limit, offset)
	if err != nil {
		log.Printf("ERROR [PostgresStore] PageChatMessages: query failed: %v", err)
		return nil, fmt.Errorf("%w: paging chat messages: %v", store.ErrUnavailable, err)
	}
	defer rows.Close()

	messages, err := scanChatMessages(rows)
	if err != nil {
		return nil, err
	}

	// Rows arrive newest-first; flip to chronological for display.
	for i, j := 0, len(messages)-1; i < j; i, j = i+1, j-1 {
		messages[i], messages[j] = messages[j], messages[i]
	}

	totalPages := 0
	if limit > 0 {
		totalPages = (total + limit - 1) / limit
	}

	return &models.ChatPage{
		Messages:    messages,
		TotalPages:  totalPages,
		CurrentPage: page,
	}, nil
}

// ChatMessagesInRange returns messages with start <= ts <= end, ascending.
func (s *PostgresStore) ChatMessagesInRange(ctx context.Context, start, end time.Time) ([]models.ChatMessage, error) {
	query := `
		SELECT id, sender, content, mentions, is_super, is_announcement, ts
		FROM chat_messages
		WHERE ts >= $1 AND ts <= $2
		ORDER BY ts ASC`

	rows, err := s.db.Query(ctx, query, start, end)
	if err != nil {
		log.Printf("ERROR [PostgresStore] ChatMessagesInRange: query failed: %v", err)
		return nil, fmt.Errorf("%w: querying chat history range: %v", store.ErrUnavailable, err)
	}
	defer rows.Close()

	return scanChatMessages(rows)
}

type chatRows interface {
	Next() bool
	Scan(dest ...any) error
	Err() error
}

func scanChatMessages(rows chatRows) ([]models.ChatMessage, error) {
	messages := []models.ChatMessage{}
	for rows.Next() {
		var (
			msg          models.ChatMessage
			senderJSON   []byte
			mentionsJSON []byte
		)
		if err := rows.Scan(&msg.ID, &senderJSON, &msg.Content, &mentionsJSON, &msg.IsSuper, &msg.IsAnnouncement, &msg.Timestamp); err != nil {
			return nil, fmt.Errorf("%w: scanning chat message: %v", store.ErrUnavailable, err)
		}
		if err := json.Unmarshal(senderJSON, &msg.Sender); err != nil {
			return nil, fmt.Errorf("failed to parse sender snapshot: %w", err)
		}
		if err := json.Unmarshal(mentionsJSON, &msg.Mentions); err != nil {
			return nil, fmt.Errorf("failed to parse mentions: %w", err)
		}
		messages = append(messages, msg)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating chat messages: %v", store.ErrUnavailable, err)
	}
	return messages, nil
}
