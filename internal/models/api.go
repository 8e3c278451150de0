package models

import (
	"time"

	"github.com/google/uuid"
)

// --- Request Structs ---

// RegisterRequest defines the expected body for user signup.
type RegisterRequest struct {
	Name     string `json:"name" validate:"required,max=120"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8,max=72"`
}

// LoginRequest defines the expected body for the login endpoint.
// One login serves both regular users and rescue teams.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// RegisterRescueTeamRequest defines the body for rescue team registration.
// Certificate and profile picture arrive as already-stored paths.
type RegisterRescueTeamRequest struct {
	TeamName           string    `json:"teamName" validate:"required,max=120"`
	Email              string    `json:"email" validate:"required,email"`
	Phone              string    `json:"phone" validate:"required,max=32"`
	Password           string    `json:"password" validate:"required,min=8,max=72"`
	Description        string    `json:"description" validate:"required"`
	TeamSize           int       `json:"teamSize" validate:"required,min=1"`
	DeployedDate       time.Time `json:"deployedDate" validate:"required"`
	CertificatePath    string    `json:"certificatePath" validate:"required"`
	ProfilePicturePath string    `json:"profilePicturePath" validate:"required"`
}

// PostMessageRequest defines the body for posting a chat message.
// Mentions are recomputed server-side; client-supplied ones are ignored.
// Sender is an untrusted display hint, only honored when the server runs
// with client-sender trust enabled (demo mode) and no token actor exists.
type PostMessageRequest struct {
	Content        string    `json:"content"`
	Mentions       []Mention `json:"mentions,omitempty"`
	Sender         *ChatUser `json:"sender,omitempty"`
	IsAnnouncement bool      `json:"isAnnouncement,omitempty"`
}

// CreateBlogRequest defines the body for creating a disaster report.
type CreateBlogRequest struct {
	Title          string    `json:"title" validate:"required,max=200"`
	Content        string    `json:"content" validate:"required"`
	Image          string    `json:"image" validate:"required"`
	Severity       Severity  `json:"severity" validate:"required,oneof=urgent ongoing past"`
	Location       string    `json:"location" validate:"required"`
	Keywords       string    `json:"keywords" validate:"required"`
	AuthorName     string    `json:"authorName" validate:"required"`
	Date           time.Time `json:"date" validate:"required"`
	DonationTarget float64   `json:"donationTarget" validate:"required,gt=0"`
}

// UpdateBlogRequest defines the body for updating a disaster report.
// Pointer fields allow partial updates.
type UpdateBlogRequest struct {
	Title          *string   `json:"title,omitempty"`
	Content        *string   `json:"content,omitempty"`
	Image          *string   `json:"image,omitempty"`
	Severity       *Severity `json:"severity,omitempty"`
	Location       *string   `json:"location,omitempty"`
	Keywords       *string   `json:"keywords,omitempty"`
	DonationTarget *float64  `json:"donationTarget,omitempty"`
}

// AssignTeamRequest defines the body for assigning a rescue team to a report.
type AssignTeamRequest struct {
	TeamID uuid.UUID `json:"teamId"`
}

// DonateRequest records a completed donation against a report. Payment
// capture itself happens at the payment provider; this only moves the
// progress counter.
type DonateRequest struct {
	Amount float64 `json:"amount" validate:"required,gt=0"`
}

// --- Response Structs ---

// AuthResponse defines the response body for successful authentication.
type AuthResponse struct {
	Token string   `json:"token"`
	User  ChatUser `json:"user"`
}

// RescueTeamResponse defines the public view of a rescue team.
type RescueTeamResponse struct {
	ID                 uuid.UUID  `json:"id"`
	TeamName           string     `json:"teamName"`
	Email              string     `json:"email"`
	Phone              string     `json:"phone,omitempty"`
	Description        string     `json:"description"`
	TeamSize           int        `json:"teamSize"`
	DeployedDate       time.Time  `json:"deployedDate"`
	ProfilePicturePath string     `json:"profilePicturePath,omitempty"`
	AssignedBlogID     *uuid.UUID `json:"assignedBlogId,omitempty"`
	AssignedBlogTitle  *string    `json:"assignedBlogTitle,omitempty"`
}

// AssignmentResponse returns both sides of a team assignment.
type AssignmentResponse struct {
	Blog Blog               `json:"blog"`
	Team RescueTeamResponse `json:"team"`
}

// ErrorResponse defines the standard structure for API errors.
type ErrorResponse struct {
	Error string `json:"error"`
}
