package model

import (
	"time"
)

// Role represents the role of a message sender.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Message represents one persisted turn half. Messages are append-only
// and ordered by creation time; they form the durable transcript used to
// rebuild model-visible history every turn.
type Message struct {
	ID             int64     `json:"id"`
	ConversationID int64     `json:"conversation_id"`
	Role           Role      `json:"role"`
	Content        string    `json:"content"`
	CreatedAt      time.Time `json:"created_at"`
}

// ChatRequest is the request to send a message to the intake agent.
type ChatRequest struct {
	Message   string `json:"message"`
	SessionID string `json:"session_id,omitempty"`
}

// ChatResponse is the agent's reply for one turn.
type ChatResponse struct {
	SessionID string `json:"session_id"`
	Message   string `json:"message"`
	Status    Status `json:"conversation_status"`
}
