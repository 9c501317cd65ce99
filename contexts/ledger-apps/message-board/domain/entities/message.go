package entities

import (
	"strings"
	"time"
)

const MaxContentLength = 1024

type Message struct {
	MessageID string
	Author    string
	Content   string
	PostedAt  time.Time
	UpdatedAt time.Time
}

// ValidContent reports whether content is non-empty after trimming and
// within the board's length bound.
func ValidContent(content string) bool {
	trimmed := strings.TrimSpace(content)
	return trimmed != "" && len(trimmed) <= MaxContentLength
}
