// Package model defines data structures for the intake platform.
package model

import (
	"time"
)

// Company is the business line an inquiry is directed to.
type Company string

const (
	CompanyKossodo  Company = "kossodo"  // equipment sales
	CompanyKossomet Company = "kossomet" // technical services
)

// Valid reports whether c is one of the known business lines.
func (c Company) Valid() bool {
	return c == CompanyKossodo || c == CompanyKossomet
}

// Status represents the lifecycle state of a conversation.
type Status string

const (
	StatusActive      Status = "active"
	StatusCompleted   Status = "completed"
	StatusExpired     Status = "expired"
	StatusTransferred Status = "transferred"
)

// Terminal reports whether a conversation in this status can no longer
// accept turns. A new conversation is created instead of resurrecting it.
func (s Status) Terminal() bool {
	return s != StatusActive
}

// Conversation represents one intake session. SessionID is the opaque
// token handed to the client; Company stays empty until the router phase
// commits to a business line.
type Conversation struct {
	ID        int64     `json:"id"`
	SessionID string    `json:"session_id"`
	Company   Company   `json:"company,omitempty"`
	Status    Status    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Eager-loaded by GetBySession.
	Messages []Message `json:"messages,omitempty"`
	Contact  *Contact  `json:"contact,omitempty"`
	Inquiry  *Inquiry  `json:"inquiry,omitempty"`
}

// ConversationResponse is the admin view of a full conversation.
type ConversationResponse struct {
	SessionID string    `json:"session_id"`
	Company   Company   `json:"company,omitempty"`
	Status    Status    `json:"status"`
	Messages  []Message `json:"messages"`
	CreatedAt time.Time `json:"created_at"`
}
