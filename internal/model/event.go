package model

import (
	"time"
)

// IntakeEvent is published when an intake finishes so advisor tooling can
// pick it up. Contact and Inquiry are snapshots at completion time.
type IntakeEvent struct {
	ID        string    `json:"id"`
	SessionID string    `json:"session_id"`
	Company   Company   `json:"company,omitempty"`
	Contact   *Contact  `json:"contact,omitempty"`
	Inquiry   *Inquiry  `json:"inquiry,omitempty"`
	Summary   string    `json:"summary,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}
