package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/grupokossodo/intake-agent/internal/model"
)

// CreateConversation creates a new active conversation for a session token.
func (s *Store) CreateConversation(ctx context.Context, sessionID string) (*model.Conversation, error) {
	ts := now()
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO conversations (session_id, company, status, created_at, updated_at)
		 VALUES (?, '', ?, ?, ?)`,
		sessionID, model.StatusActive, ts, ts,
	)
	if err != nil {
		return nil, fmt.Errorf("create conversation: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("create conversation: %w", err)
	}

	return &model.Conversation{
		ID:        id,
		SessionID: sessionID,
		Status:    model.StatusActive,
		CreatedAt: ts,
		UpdatedAt: ts,
	}, nil
}

// GetBySession returns the conversation for a session token with messages,
// contact and inquiry eager-loaded. Returns ErrNotFound for an unknown token.
func (s *Store) GetBySession(ctx context.Context, sessionID string) (*model.Conversation, error) {
	conv, err := s.scanConversation(s.db.QueryRowContext(ctx,
		`SELECT id, session_id, company, status, created_at, updated_at
		 FROM conversations WHERE session_id = ?`, sessionID))
	if err != nil {
		return nil, err
	}
	return s.loadRelated(ctx, conv)
}

// GetConversation returns a conversation by surrogate id, eager-loaded.
func (s *Store) GetConversation(ctx context.Context, id int64) (*model.Conversation, error) {
	conv, err := s.scanConversation(s.db.QueryRowContext(ctx,
		`SELECT id, session_id, company, status, created_at, updated_at
		 FROM conversations WHERE id = ?`, id))
	if err != nil {
		return nil, err
	}
	return s.loadRelated(ctx, conv)
}

func (s *Store) scanConversation(row *sql.Row) (*model.Conversation, error) {
	var conv model.Conversation
	err := row.Scan(&conv.ID, &conv.SessionID, &conv.Company, &conv.Status,
		&conv.CreatedAt, &conv.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scan conversation: %w", err)
	}
	return &conv, nil
}

func (s *Store) loadRelated(ctx context.Context, conv *model.Conversation) (*model.Conversation, error) {
	messages, err := s.ListMessages(ctx, conv.ID)
	if err != nil {
		return nil, err
	}
	conv.Messages = messages

	contact, err := s.GetContact(ctx, conv.ID)
	if err != nil && !errors.Is(err, ErrNotFound) {
		return nil, err
	}
	conv.Contact = contact

	inquiry, err := s.GetInquiry(ctx, conv.ID)
	if err != nil && !errors.Is(err, ErrNotFound) {
		return nil, err
	}
	conv.Inquiry = inquiry

	return conv, nil
}

// SetCompany records the business line for an active conversation and
// refreshes its last-update timestamp.
func (s *Store) SetCompany(ctx context.Context, id int64, company model.Company) error {
	return s.updateActive(ctx, id,
		`UPDATE conversations SET company = ?, updated_at = ? WHERE id = ? AND status = ?`,
		company, now(), id, model.StatusActive)
}

// SetStatus transitions an active conversation to the given status.
// Terminal conversations are never reopened.
func (s *Store) SetStatus(ctx context.Context, id int64, status model.Status) error {
	return s.updateActive(ctx, id,
		`UPDATE conversations SET status = ?, updated_at = ? WHERE id = ? AND status = ?`,
		status, now(), id, model.StatusActive)
}

// Expire marks an active conversation as expired for inactivity.
func (s *Store) Expire(ctx context.Context, id int64) error {
	return s.SetStatus(ctx, id, model.StatusExpired)
}

// Touch refreshes the conversation's last-update timestamp.
func (s *Store) Touch(ctx context.Context, id int64) error {
	return s.updateActive(ctx, id,
		`UPDATE conversations SET updated_at = ? WHERE id = ? AND status = ?`,
		now(), id, model.StatusActive)
}

func (s *Store) updateActive(ctx context.Context, id int64, query string, args ...any) error {
	res, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update conversation: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update conversation: %w", err)
	}
	if n == 0 {
		var status model.Status
		err := s.db.QueryRowContext(ctx,
			`SELECT status FROM conversations WHERE id = ?`, id).Scan(&status)
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		if err != nil {
			return fmt.Errorf("update conversation: %w", err)
		}
		return ErrConversationClosed
	}
	return nil
}

// IsIdleExpired reports whether an active conversation sat without updates
// longer than the configured idle threshold.
func (s *Store) IsIdleExpired(conv *model.Conversation) bool {
	if conv.Status != model.StatusActive {
		return false
	}
	return time.Since(conv.UpdatedAt) > s.idleTimeout
}
