package store

import (
	"context"
	"fmt"

	"github.com/grupokossodo/intake-agent/internal/model"
)

// AppendMessage appends a message to a conversation's transcript and
// refreshes the conversation's last-update timestamp. Messages are never
// mutated or deleted afterwards.
func (s *Store) AppendMessage(ctx context.Context, conversationID int64, role model.Role, content string) (*model.Message, error) {
	ts := now()
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO messages (conversation_id, role, content, created_at) VALUES (?, ?, ?, ?)`,
		conversationID, role, content, ts,
	)
	if err != nil {
		return nil, fmt.Errorf("append message: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("append message: %w", err)
	}

	// A turn counts as activity for idle-expiry purposes.
	_, err = s.db.ExecContext(ctx,
		`UPDATE conversations SET updated_at = ? WHERE id = ?`, ts, conversationID)
	if err != nil {
		return nil, fmt.Errorf("append message: %w", err)
	}

	return &model.Message{
		ID:             id,
		ConversationID: conversationID,
		Role:           role,
		Content:        content,
		CreatedAt:      ts,
	}, nil
}

// ListMessages returns a conversation's transcript in creation order.
func (s *Store) ListMessages(ctx context.Context, conversationID int64) ([]model.Message, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, conversation_id, role, content, created_at
		 FROM messages WHERE conversation_id = ? ORDER BY created_at, id`,
		conversationID,
	)
	if err != nil {
		return nil, fmt.Errorf("list messages: %w", err)
	}
	defer rows.Close()

	var messages []model.Message
	for rows.Next() {
		var m model.Message
		if err := rows.Scan(&m.ID, &m.ConversationID, &m.Role, &m.Content, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan message: %w", err)
		}
		messages = append(messages, m)
	}
	return messages, rows.Err()
}
