// Package mentions extracts @name references from raw chat text against a
// directory of addressable users. Parsing never fails: text that does not
// resolve to a known name is simply left untagged.
package mentions

import (
	"sort"
	"strings"

	"reliefhub-backend/internal/models"
)

// Directory maps exact, case-sensitive user names to their identities.
type Directory map[string]models.ChatUser

// NewDirectory builds a Directory from a list of chat users. Later entries
// with a duplicate name win; names are expected to be unique upstream.
func NewDirectory(users []models.ChatUser) Directory {
	dir := make(Directory, len(users))
	for _, u := range users {
		dir[u.Name] = u
	}
	return dir
}

// names returns directory names sorted longest first, so that when one
// known name is a prefix of another ("Admin" vs "Admin Team") the longer
// one is tried first. Ties break lexicographically to keep output stable.
func (d Directory) names() []string {
	out := make([]string, 0, len(d))
	for name := range d {
		out = append(out, name)
	}
	sort.Slice(out, func(i, j int) bool {
		if len(out[i]) != len(out[j]) {
			return len(out[i]) > len(out[j])
		}
		return out[i] < out[j]
	})
	return out
}

// Parse scans content for "@" followed by a run of letters, digits and
// spaces, and resolves each run against the directory. Because names may
// contain spaces, a run like "Rescue Team Alpha please respond" is matched
// by the longest known name that prefixes it (longest-known-name-wins).
// Each run is bounded at the next "@" or end of string so adjacent
// mentions are detected independently.
//
// A matched name yields a Mention with StartPosition at the "@" and
// EndPosition = StartPosition + len(name), the half-open span the client
// renderer replaces with the highlighted "@name". Unmatched runs yield
// nothing. Returned mentions are ordered by StartPosition and never
// overlap.
func Parse(content string, dir Directory) []models.Mention {
	if len(dir) == 0 {
		return nil
	}

	byLength := dir.names()

	var out []models.Mention
	for i := 0; i < len(content); {
		if content[i] != '@' {
			i++
			continue
		}

		run := candidateRun(content[i+1:])
		if run == "" {
			i++
			continue
		}

		matched := false
		for _, name := range byLength {
			if !strings.HasPrefix(run, name) {
				continue
			}
			user := dir[name]
			out = append(out, models.Mention{
				UserID:        user.ID,
				Username:      user.Name,
				StartPosition: i,
				EndPosition:   i + len(name),
			})
			// Resume after the matched name so a following "@..." is
			// still seen.
			i += 1 + len(name)
			matched = true
			break
		}
		if !matched {
			i++
		}
	}
	return out
}

// candidateRun returns the maximal leading run of mentionable characters:
// ASCII letters, digits and spaces, stopping at the next "@".
func candidateRun(s string) string {
	end := 0
	for end < len(s) && isNameChar(s[end]) {
		end++
	}
	return strings.TrimRight(s[:end], " ")
}

func isNameChar(c byte) bool {
	return c == ' ' ||
		(c >= 'a' && c <= 'z') ||
		(c >= 'A' && c <= 'Z') ||
		(c >= '0' && c <= '9')
}
