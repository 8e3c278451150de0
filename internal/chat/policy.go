// Package chat holds the pure rules of the community chat: who may post,
// who may announce, and how a message list projects into a rendered
// timeline. No I/O happens here.
package chat

import "reliefhub-backend/internal/models"

// CanPost reports whether the actor may post to the community chat.
// Anonymous callers and plain users are read-only.
func CanPost(actor *models.ChatUser) bool {
	if actor == nil {
		return false
	}
	return actor.Role == models.RoleAdmin || actor.Role == models.RoleRescueTeam
}

// CanAnnounce reports whether the actor may flag a message as an
// announcement. Only admins can; a non-admin asking for an announcement
// gets a normal message, not an error.
func CanAnnounce(actor *models.ChatUser) bool {
	return actor != nil && actor.Role == models.RoleAdmin
}
