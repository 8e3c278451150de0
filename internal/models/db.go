package models

import (
	"time"

	"github.com/google/uuid"
)

// User represents a regular (non-team) account in the database.
type User struct {
	ID             uuid.UUID `db:"id"`
	Name           string    `db:"name"`
	Email          string    `db:"email"`
	HashedPassword string    `db:"hashed_password"`
	Role           Role      `db:"role"`
	Avatar         *string   `db:"avatar"`
	CreatedAt      time.Time `db:"created_at"`
	UpdatedAt      time.Time `db:"updated_at"`
}

// RescueTeam represents a registered rescue team account. Certificate and
// profile picture are stored as opaque paths; upload handling lives outside
// this service.
type RescueTeam struct {
	ID                 uuid.UUID  `db:"id"`
	TeamName           string     `db:"team_name"`
	Email              string     `db:"email"`
	Phone              string     `db:"phone"`
	HashedPassword     string     `db:"hashed_password"`
	Description        string     `db:"description"`
	TeamSize           int        `db:"team_size"`
	DeployedDate       time.Time  `db:"deployed_date"`
	CertificatePath    string     `db:"certificate_path"`
	ProfilePicturePath string     `db:"profile_picture_path"`
	AssignedBlogID     *uuid.UUID `db:"assigned_blog_id"`
	AssignedBlogTitle  *string    `db:"assigned_blog_title"`
	CreatedAt          time.Time  `db:"created_at"`
	UpdatedAt          time.Time  `db:"updated_at"`
}

// Severity classifies how current a disaster report is.
type Severity string

const (
	SeverityUrgent  Severity = "urgent"
	SeverityOngoing Severity = "ongoing"
	SeverityPast    Severity = "past"
)

// Blog is a disaster report post shown on the public blog and map.
type Blog struct {
	ID              uuid.UUID  `db:"id"`
	Title           string     `db:"title"`
	Content         string     `db:"content"`
	Image           string     `db:"image"`
	Severity        Severity   `db:"severity"`
	Location        string     `db:"location"`
	Keywords        string     `db:"keywords"`
	AuthorName      string     `db:"author_name"`
	Date            time.Time  `db:"date"`
	DonationTarget  float64    `db:"donation_target"`
	DonationCurrent float64    `db:"donation_current"`
	AssignedTeamID  *uuid.UUID `db:"assigned_team_id"`
	CreatedAt       time.Time  `db:"created_at"`
	UpdatedAt       time.Time  `db:"updated_at"`
}

// ChatUserFor projects a User into the snapshot the chat subsystem embeds
// in messages.
func (u *User) ChatUserFor() ChatUser {
	cu := ChatUser{
		ID:    u.ID.String(),
		Name:  u.Name,
		Email: u.Email,
		Role:  u.Role,
	}
	if u.Avatar != nil {
		cu.Avatar = *u.Avatar
	}
	return cu
}

// ChatUserFor projects a RescueTeam into a chat actor snapshot. The team's
// own ID doubles as the TeamID so team-scoped views can group its messages.
func (t *RescueTeam) ChatUserFor() ChatUser {
	return ChatUser{
		ID:     t.ID.String(),
		Name:   t.TeamName,
		Email:  t.Email,
		Avatar: t.ProfilePicturePath,
		Role:   RoleRescueTeam,
		TeamID: t.ID.String(),
	}
}
