package models

import (
	"strings"
	"time"
)

type Note struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
}

// Matches reports whether term occurs in the title or content, ignoring case.
// An empty term matches every note.
func (n Note) Matches(term string) bool {
	if term == "" {
		return true
	}
	term = strings.ToLower(term)
	return strings.Contains(strings.ToLower(n.Title), term) ||
		strings.Contains(strings.ToLower(n.Content), term)
}

// Preview returns the first max runes of the content followed by "..." when
// truncated.
func (n Note) Preview(max int) string {
	r := []rune(n.Content)
	if len(r) <= max {
		return n.Content
	}
	return string(r[:max]) + "..."
}
