package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/grupokossodo/intake-agent/internal/model"
)

// GetContact returns the contact captured for a conversation, or ErrNotFound.
func (s *Store) GetContact(ctx context.Context, conversationID int64) (*model.Contact, error) {
	var c model.Contact
	err := s.db.QueryRowContext(ctx,
		`SELECT id, conversation_id, name, phone, email, company_name, ruc_dni, created_at, updated_at
		 FROM contacts WHERE conversation_id = ?`, conversationID,
	).Scan(&c.ID, &c.ConversationID, &c.Name, &c.Phone, &c.Email, &c.CompanyName, &c.RUCDNI,
		&c.CreatedAt, &c.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get contact: %w", err)
	}
	return &c, nil
}

// UpsertContact merges the provided fields into the conversation's contact,
// creating it on first call. Empty fields never erase existing data.
func (s *Store) UpsertContact(ctx context.Context, conversationID int64, fields model.ContactFields) (*model.Contact, error) {
	ts := now()
	existing, err := s.GetContact(ctx, conversationID)
	switch {
	case errors.Is(err, ErrNotFound):
		res, err := s.db.ExecContext(ctx,
			`INSERT INTO contacts (conversation_id, name, phone, email, company_name, ruc_dni, created_at, updated_at)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			conversationID, fields.Name, fields.Phone, fields.Email, fields.CompanyName, fields.RUCDNI, ts, ts,
		)
		if err != nil {
			return nil, fmt.Errorf("create contact: %w", err)
		}
		id, err := res.LastInsertId()
		if err != nil {
			return nil, fmt.Errorf("create contact: %w", err)
		}
		return &model.Contact{
			ID:             id,
			ConversationID: conversationID,
			Name:           fields.Name,
			Phone:          fields.Phone,
			Email:          fields.Email,
			CompanyName:    fields.CompanyName,
			RUCDNI:         fields.RUCDNI,
			CreatedAt:      ts,
			UpdatedAt:      ts,
		}, nil
	case err != nil:
		return nil, err
	}

	merge := func(current, incoming string) string {
		if incoming != "" {
			return incoming
		}
		return current
	}
	existing.Name = merge(existing.Name, fields.Name)
	existing.Phone = merge(existing.Phone, fields.Phone)
	existing.Email = merge(existing.Email, fields.Email)
	existing.CompanyName = merge(existing.CompanyName, fields.CompanyName)
	existing.RUCDNI = merge(existing.RUCDNI, fields.RUCDNI)
	existing.UpdatedAt = ts

	_, err = s.db.ExecContext(ctx,
		`UPDATE contacts SET name = ?, phone = ?, email = ?, company_name = ?, ruc_dni = ?, updated_at = ?
		 WHERE conversation_id = ?`,
		existing.Name, existing.Phone, existing.Email, existing.CompanyName, existing.RUCDNI, ts,
		conversationID,
	)
	if err != nil {
		return nil, fmt.Errorf("update contact: %w", err)
	}
	return existing, nil
}

// GetInquiry returns the inquiry recorded for a conversation, or ErrNotFound.
func (s *Store) GetInquiry(ctx context.Context, conversationID int64) (*model.Inquiry, error) {
	var q model.Inquiry
	err := s.db.QueryRowContext(ctx,
		`SELECT id, conversation_id, description, created_at
		 FROM inquiries WHERE conversation_id = ?`, conversationID,
	).Scan(&q.ID, &q.ConversationID, &q.Description, &q.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get inquiry: %w", err)
	}
	return &q, nil
}

// UpsertInquiry records the inquiry description for a conversation. Unlike
// contacts, a new description replaces the previous one entirely.
func (s *Store) UpsertInquiry(ctx context.Context, conversationID int64, description string) (*model.Inquiry, error) {
	existing, err := s.GetInquiry(ctx, conversationID)
	switch {
	case errors.Is(err, ErrNotFound):
		ts := now()
		res, err := s.db.ExecContext(ctx,
			`INSERT INTO inquiries (conversation_id, description, created_at) VALUES (?, ?, ?)`,
			conversationID, description, ts,
		)
		if err != nil {
			return nil, fmt.Errorf("create inquiry: %w", err)
		}
		id, err := res.LastInsertId()
		if err != nil {
			return nil, fmt.Errorf("create inquiry: %w", err)
		}
		return &model.Inquiry{ID: id, ConversationID: conversationID, Description: description, CreatedAt: ts}, nil
	case err != nil:
		return nil, err
	}

	_, err = s.db.ExecContext(ctx,
		`UPDATE inquiries SET description = ? WHERE conversation_id = ?`,
		description, conversationID,
	)
	if err != nil {
		return nil, fmt.Errorf("update inquiry: %w", err)
	}
	existing.Description = description
	return existing, nil
}
