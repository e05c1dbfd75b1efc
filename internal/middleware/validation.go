package middleware

import (
	"errors"
	"unicode/utf8"

	"github.com/google/uuid"
)

// ValidateMessageContent validates an incoming chat message. maxLen is a
// rune count; zero means the default of 5000.
func ValidateMessageContent(content string, maxLen int) error {
	if maxLen <= 0 {
		maxLen = 5000
	}
	if len(content) == 0 {
		return errors.New("message cannot be empty")
	}
	if !utf8.ValidString(content) {
		return errors.New("message must be valid UTF-8")
	}
	if utf8.RuneCountInString(content) > maxLen {
		return errors.New("message exceeds maximum length")
	}
	return nil
}

// ValidateSessionID validates a session token. An empty token is valid:
// it requests a fresh session.
func ValidateSessionID(id string) error {
	if id == "" {
		return nil
	}
	if _, err := uuid.Parse(id); err != nil {
		return errors.New("invalid session ID format")
	}
	return nil
}
