package models

import (
	"time"

	"github.com/google/uuid"
)

// Role identifies what an actor is allowed to do in the system.
// Roles are assigned at signup and never change afterwards.
type Role string

const (
	RoleAdmin      Role = "admin"
	RoleRescueTeam Role = "rescue-team"
	RoleUser       Role = "user"
)

// ChatUser is the identity projection the chat subsystem works with.
// It is a snapshot of the actor at a point in time, not a live reference:
// messages embed a copy, so later profile changes never rewrite history.
type ChatUser struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Email  string `json:"email,omitempty"`
	Avatar string `json:"avatar,omitempty"`
	Role   Role   `json:"role"`
	TeamID string `json:"teamId,omitempty"`
}

// Mention is a position-addressed reference to another user inside a
// message's content. Positions form the half-open range
// [StartPosition, EndPosition) and are fixed at message creation.
type Mention struct {
	UserID        string `json:"userId"`
	Username      string `json:"username"`
	StartPosition int    `json:"startPosition"`
	EndPosition   int    `json:"endPosition"`
}

// ChatMessage is a single entry in the append-only community chat log.
// Messages are never edited or deleted once persisted.
type ChatMessage struct {
	ID             uuid.UUID `json:"id"`
	Sender         ChatUser  `json:"sender"`
	Content        string    `json:"content"`
	Mentions       []Mention `json:"mentions"`
	IsSuper        bool      `json:"isSuper"`
	IsAnnouncement bool      `json:"isAnnouncement"`
	Timestamp      time.Time `json:"timestamp"`
}

// ChatPage is one page of chat history. Messages are in chronological
// order within the page; page 1 is the newest window of the log.
type ChatPage struct {
	Messages    []ChatMessage `json:"messages"`
	TotalPages  int           `json:"totalPages"`
	CurrentPage int           `json:"currentPage"`
}
