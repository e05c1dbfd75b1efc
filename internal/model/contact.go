package model

import (
	"time"
)

// Contact holds the client data captured during intake. At most one per
// conversation; fields are filled in incrementally and a set field is only
// overwritten by a new non-empty value.
type Contact struct {
	ID             int64     `json:"id"`
	ConversationID int64     `json:"conversation_id"`
	Name           string    `json:"name,omitempty"`
	Phone          string    `json:"phone,omitempty"`
	Email          string    `json:"email,omitempty"`
	CompanyName    string    `json:"company_name,omitempty"`
	RUCDNI         string    `json:"ruc_dni,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// ContactFields is a partial update: empty fields are left untouched.
type ContactFields struct {
	Name        string
	Phone       string
	Email       string
	CompanyName string
	RUCDNI      string
}

// Empty reports whether no field carries a value.
func (f ContactFields) Empty() bool {
	return f.Name == "" && f.Phone == "" && f.Email == "" && f.CompanyName == "" && f.RUCDNI == ""
}

// Inquiry is the model-synthesized restatement of what the client needs.
// At most one per conversation; a new description replaces the old one
// entirely.
type Inquiry struct {
	ID             int64     `json:"id"`
	ConversationID int64     `json:"conversation_id"`
	Description    string    `json:"description"`
	CreatedAt      time.Time `json:"created_at"`
}
