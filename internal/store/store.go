package store

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"reliefhub-backend/internal/models"
)

// ErrNotFound is returned when a specific record is not found.
var ErrNotFound = errors.New("record not found")

// ErrUnavailable wraps failures to reach the backing database. The store
// never retries; callers surface the failure to the client.
var ErrUnavailable = errors.New("storage unavailable")

// UpdateBlogParams contains parameters for updating a disaster report.
// Pointer fields allow partial updates.
type UpdateBlogParams struct {
	ID             uuid.UUID
	Title          *string
	Content        *string
	Image          *string
	Severity       *models.Severity
	Location       *string
	Keywords       *string
	DonationTarget *float64
}

// Store defines the interface for database operations.
// This allows for mocking in tests and potential DB backend switching.
type Store interface {
	// User operations
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	GetUserByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	CreateUser(ctx context.Context, user *models.User) error

	// Rescue team operations
	CreateRescueTeam(ctx context.Context, team *models.RescueTeam) error
	GetRescueTeamByEmail(ctx context.Context, email string) (*models.RescueTeam, error)
	GetRescueTeamByID(ctx context.Context, id uuid.UUID) (*models.RescueTeam, error)
	ListRescueTeams(ctx context.Context) ([]models.RescueTeam, error)

	// Disaster report operations
	CreateBlog(ctx context.Context, blog *models.Blog) error
	GetBlogByID(ctx context.Context, id uuid.UUID) (*models.Blog, error)
	ListBlogs(ctx context.Context) ([]models.Blog, error)
	ListBlogsByAuthor(ctx context.Context, authorName string) ([]models.Blog, error)
	UpdateBlog(ctx context.Context, arg UpdateBlogParams) (*models.Blog, error)
	DeleteBlog(ctx context.Context, id uuid.UUID) error
	AssignTeamToBlog(ctx context.Context, blogID, teamID uuid.UUID) (*models.Blog, *models.RescueTeam, error)
	AddDonation(ctx context.Context, blogID uuid.UUID, amount float64) (*models.Blog, error)

	// Chat message operations. The message log is append-only: there is no
	// update or delete, and page 1 is the newest window counted backward
	// from the most recent message.
	AppendChatMessage(ctx context.Context, msg models.ChatMessage) (*models.ChatMessage, error)
	PageChatMessages(ctx context.Context, page, limit int) (*models.ChatPage, error)
	ChatMessagesInRange(ctx context.Context, start, end time.Time) ([]models.ChatMessage, error)

	// ListChatParticipants returns the mention directory: every addressable
	// identity (users and rescue teams) projected as chat actors.
	ListChatParticipants(ctx context.Context) ([]models.ChatUser, error)
}
