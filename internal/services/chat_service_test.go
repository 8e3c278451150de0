package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"reliefhub-backend/internal/models"
	"reliefhub-backend/internal/store"
)

// fakeChatStore is an in-memory stand-in for the chat-facing slice of
// store.Store. Embedding the interface keeps it compile-compatible while
// only the methods the chat service touches are implemented.
type fakeChatStore struct {
	store.Store

	participants    []models.ChatUser
	participantsErr error
	appendErr       error
	log             []models.ChatMessage
}

func (f *fakeChatStore) ListChatParticipants(ctx context.Context) ([]models.ChatUser, error) {
	if f.participantsErr != nil {
		return nil, f.participantsErr
	}
	return f.participants, nil
}

func (f *fakeChatStore) AppendChatMessage(ctx context.Context, msg models.ChatMessage) (*models.ChatMessage, error) {
	if f.appendErr != nil {
		return nil, f.appendErr
	}
	if msg.Timestamp.IsZero() {
		msg.Timestamp = time.Now().UTC()
	}
	f.log = append(f.log, msg)
	return &f.log[len(f.log)-1], nil
}

func (f *fakeChatStore) PageChatMessages(ctx context.Context, page, limit int) (*models.ChatPage, error) {
	total := len(f.log)
	totalPages := (total + limit - 1) / limit
	start := total - page*limit
	end := start + limit
	if end < 0 {
		end = 0
	}
	if start < 0 {
		start = 0
	}
	window := make([]models.ChatMessage, end-start)
	copy(window, f.log[start:end])
	return &models.ChatPage{Messages: window, TotalPages: totalPages, CurrentPage: page}, nil
}

func (f *fakeChatStore) ChatMessagesInRange(ctx context.Context, start, end time.Time) ([]models.ChatMessage, error) {
	var out []models.ChatMessage
	for _, msg := range f.log {
		if !msg.Timestamp.Before(start) && !msg.Timestamp.After(end) {
			out = append(out, msg)
		}
	}
	return out, nil
}

// fakeBroadcaster records every published message.
type fakeBroadcaster struct {
	published []*models.ChatMessage
	err       error
}

func (f *fakeBroadcaster) Publish(msg *models.ChatMessage) error {
	if f.err != nil {
		return f.err
	}
	f.published = append(f.published, msg)
	return nil
}

var (
	chatAdmin  = models.ChatUser{ID: "admin1", Name: "Admin", Role: models.RoleAdmin}
	chatRescue = models.ChatUser{ID: "rescue1", Name: "Rescue Team Alpha", Role: models.RoleRescueTeam, TeamID: "rescue1"}
	chatCivic  = models.ChatUser{ID: "user1", Name: "Jane", Role: models.RoleUser}
)

func TestPostMessage_EmptyContentRejected(t *testing.T) {
	fs := &fakeChatStore{}
	svc := NewChatService(fs, &fakeBroadcaster{})

	for _, content := range []string{"", "   ", "\n\t"} {
		_, err := svc.PostMessage(context.Background(), content, &chatAdmin, false)
		assert.ErrorIs(t, err, ErrEmptyContent)
	}
	assert.Empty(t, fs.log, "no message may be persisted")
}

func TestPostMessage_AnonymousRejected(t *testing.T) {
	fs := &fakeChatStore{}
	bc := &fakeBroadcaster{}
	svc := NewChatService(fs, bc)

	_, err := svc.PostMessage(context.Background(), "hello", nil, false)
	assert.ErrorIs(t, err, ErrUnauthenticated)
	assert.Empty(t, fs.log)
	assert.Empty(t, bc.published)
}

func TestPostMessage_RegularUserForbidden(t *testing.T) {
	fs := &fakeChatStore{}
	bc := &fakeBroadcaster{}
	svc := NewChatService(fs, bc)

	_, err := svc.PostMessage(context.Background(), "hello", &chatCivic, false)
	assert.ErrorIs(t, err, ErrForbidden)
	assert.Empty(t, fs.log, "forbidden post must leave the log unchanged")
	assert.Empty(t, bc.published)
}

func TestPostMessage_AdminAnnouncement(t *testing.T) {
	fs := &fakeChatStore{}
	bc := &fakeBroadcaster{}
	svc := NewChatService(fs, bc)

	msg, err := svc.PostMessage(context.Background(), "Welcome team", &chatAdmin, true)
	require.NoError(t, err)

	assert.True(t, msg.IsAnnouncement)
	assert.True(t, msg.IsSuper)
	assert.Equal(t, "Welcome team", msg.Content)
	assert.Equal(t, chatAdmin, msg.Sender)
	assert.NotEqual(t, uuid.Nil, msg.ID)

	require.Len(t, fs.log, 1)
	require.Len(t, bc.published, 1)
	assert.Equal(t, msg, bc.published[0])
}

func TestPostMessage_RescueTeamAnnouncementDegrades(t *testing.T) {
	fs := &fakeChatStore{}
	svc := NewChatService(fs, &fakeBroadcaster{})

	msg, err := svc.PostMessage(context.Background(), "supplies running low", &chatRescue, true)
	require.NoError(t, err)

	// Only admins announce; the flag is cleared, not rejected.
	assert.False(t, msg.IsAnnouncement)
	assert.False(t, msg.IsSuper)
}

func TestPostMessage_MentionsRecomputedServerSide(t *testing.T) {
	fs := &fakeChatStore{participants: []models.ChatUser{chatAdmin, chatRescue, chatCivic}}
	svc := NewChatService(fs, &fakeBroadcaster{})

	msg, err := svc.PostMessage(context.Background(), "@Rescue Team Alpha please respond", &chatAdmin, false)
	require.NoError(t, err)

	require.Len(t, msg.Mentions, 1)
	assert.Equal(t, models.Mention{
		UserID:        "rescue1",
		Username:      "Rescue Team Alpha",
		StartPosition: 0,
		EndPosition:   17,
	}, msg.Mentions[0])
}

func TestPostMessage_RoundTripPreservesMentions(t *testing.T) {
	fs := &fakeChatStore{participants: []models.ChatUser{chatAdmin, chatRescue}}
	svc := NewChatService(fs, &fakeBroadcaster{})

	posted, err := svc.PostMessage(context.Background(), "@Rescue Team Alpha status?", &chatAdmin, false)
	require.NoError(t, err)

	got, err := svc.GetHistoryRange(context.Background(),
		posted.Timestamp.Add(-time.Minute), posted.Timestamp.Add(time.Minute))
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, posted.Mentions, got[0].Mentions)
	assert.Equal(t, posted.ID, got[0].ID)
}

func TestPostMessage_DirectoryFailureDegradesToNoMentions(t *testing.T) {
	fs := &fakeChatStore{participantsErr: errors.New("db down")}
	bc := &fakeBroadcaster{}
	svc := NewChatService(fs, bc)

	msg, err := svc.PostMessage(context.Background(), "@Rescue Team Alpha please respond", &chatAdmin, false)
	require.NoError(t, err, "directory failure must not block the post")
	assert.Empty(t, msg.Mentions)
	assert.Len(t, bc.published, 1)
}

func TestPostMessage_StorageFailureSuppressesBroadcast(t *testing.T) {
	fs := &fakeChatStore{appendErr: errors.New("connection refused")}
	bc := &fakeBroadcaster{}
	svc := NewChatService(fs, bc)

	_, err := svc.PostMessage(context.Background(), "hello", &chatAdmin, false)
	assert.ErrorIs(t, err, ErrStorageUnavailable)
	assert.Empty(t, bc.published, "nothing may be broadcast when the append failed")
}

func TestPostMessage_BroadcastFailureDoesNotSurface(t *testing.T) {
	fs := &fakeChatStore{}
	bc := &fakeBroadcaster{err: errors.New("hub closed")}
	svc := NewChatService(fs, bc)

	msg, err := svc.PostMessage(context.Background(), "hello", &chatAdmin, false)
	require.NoError(t, err, "the message is durable; a fan-out failure is not the caller's problem")
	require.Len(t, fs.log, 1)
	assert.Equal(t, msg.ID, fs.log[0].ID)
}

func TestPostMessage_NilBroadcaster(t *testing.T) {
	fs := &fakeChatStore{}
	svc := NewChatService(fs, nil)

	_, err := svc.PostMessage(context.Background(), "hello", &chatAdmin, false)
	assert.NoError(t, err)
}

func TestPostMessage_TimestampsNonDecreasing(t *testing.T) {
	fs := &fakeChatStore{}
	svc := NewChatService(fs, nil)

	first, err := svc.PostMessage(context.Background(), "first", &chatAdmin, false)
	require.NoError(t, err)
	second, err := svc.PostMessage(context.Background(), "second", &chatAdmin, false)
	require.NoError(t, err)

	assert.False(t, second.Timestamp.Before(first.Timestamp),
		"a later message may never be stamped before an earlier one")
}

func TestGetHistory_IdempotentWithoutWrites(t *testing.T) {
	fs := &fakeChatStore{}
	for i := 0; i < 3; i++ {
		_, err := fs.AppendChatMessage(context.Background(), models.ChatMessage{Sender: chatAdmin, Content: "msg"})
		require.NoError(t, err)
	}
	svc := NewChatService(fs, nil)

	before, err := svc.GetHistory(context.Background(), 1, 2)
	require.NoError(t, err)
	after, err := svc.GetHistory(context.Background(), 1, 2)
	require.NoError(t, err)

	assert.Equal(t, before, after, "repeated reads without writes must return the same page")
}

func TestGetHistory_ClampsPaging(t *testing.T) {
	fs := &fakeChatStore{}
	for i := 0; i < 3; i++ {
		_, err := fs.AppendChatMessage(context.Background(), models.ChatMessage{Sender: chatAdmin, Content: "msg"})
		require.NoError(t, err)
	}
	svc := NewChatService(fs, nil)

	page, err := svc.GetHistory(context.Background(), 0, -5)
	require.NoError(t, err)
	assert.Equal(t, 1, page.CurrentPage)
	assert.Len(t, page.Messages, 3)

	page, err = svc.GetHistory(context.Background(), 1, maxPageSize+1)
	require.NoError(t, err)
	assert.Equal(t, 1, page.TotalPages)
}

func TestGetHistoryRange_InclusiveBounds(t *testing.T) {
	fs := &fakeChatStore{}
	base := time.Date(2025, time.March, 10, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 3; i++ {
		_, err := fs.AppendChatMessage(context.Background(), models.ChatMessage{
			Sender:    chatAdmin,
			Content:   "msg",
			Timestamp: base.Add(time.Duration(i) * time.Hour),
		})
		require.NoError(t, err)
	}
	svc := NewChatService(fs, nil)

	messages, err := svc.GetHistoryRange(context.Background(), base, base.Add(time.Hour))
	require.NoError(t, err)
	assert.Len(t, messages, 2, "both endpoints are inclusive")
}
