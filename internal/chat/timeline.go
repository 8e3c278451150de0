package chat

import (
	"sort"
	"time"

	"reliefhub-backend/internal/models"
)

// Segment is one piece of a rendered message: either plain text or a
// mention span. Mention segments display as "@"+Username regardless of the
// exact characters the span covered in the raw content.
type Segment struct {
	Text    string
	Mention *models.Mention
}

// Segments splits a message's content around its mention spans, in
// position order. A mention pointing at a since-deleted or renamed user
// still renders; it is a display artifact, not a live reference.
func Segments(msg models.ChatMessage) []Segment {
	if len(msg.Mentions) == 0 {
		return []Segment{{Text: msg.Content}}
	}

	sorted := make([]models.Mention, len(msg.Mentions))
	copy(sorted, msg.Mentions)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].StartPosition < sorted[j].StartPosition
	})

	var parts []Segment
	last := 0
	for i := range sorted {
		m := sorted[i]
		if m.StartPosition > last {
			parts = append(parts, Segment{Text: msg.Content[last:m.StartPosition]})
		}
		parts = append(parts, Segment{Text: "@" + m.Username, Mention: &sorted[i]})
		// The stored EndPosition excludes the "@" offset, so the raw token
		// "@"+name runs one byte past it. Resume after the full token.
		last = m.StartPosition + 1 + len(m.Username)
		if last > len(msg.Content) {
			last = len(msg.Content)
		}
	}
	if last < len(msg.Content) {
		parts = append(parts, Segment{Text: msg.Content[last:]})
	}
	return parts
}

// DayGroup is a run of consecutive messages sharing a calendar day,
// rendered under a single date separator.
type DayGroup struct {
	Date     time.Time
	Messages []models.ChatMessage
}

// GroupByDay splits a chronologically ordered message list into per-day
// groups. Day boundaries are taken in the timestamps' own locations.
func GroupByDay(messages []models.ChatMessage) []DayGroup {
	var groups []DayGroup
	for _, msg := range messages {
		y, m, d := msg.Timestamp.Date()
		day := time.Date(y, m, d, 0, 0, 0, 0, msg.Timestamp.Location())
		if n := len(groups); n > 0 && groups[n-1].Date.Equal(day) {
			groups[n-1].Messages = append(groups[n-1].Messages, msg)
			continue
		}
		groups = append(groups, DayGroup{Date: day, Messages: []models.ChatMessage{msg}})
	}
	return groups
}

// StyleClass returns the rendering class for a message, mirroring the
// client's precedence: announcements outrank the admin style, which
// outranks per-role styles.
func StyleClass(msg models.ChatMessage) string {
	switch {
	case msg.IsAnnouncement:
		return "announcement"
	case msg.IsSuper:
		return "admin"
	case msg.Sender.Role == models.RoleRescueTeam:
		return "rescue-team"
	default:
		return "user"
	}
}
