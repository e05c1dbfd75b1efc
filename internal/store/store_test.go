package store

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/grupokossodo/intake-agent/internal/model"
)

func setupTestStore(t *testing.T, idle time.Duration) *Store {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	// The in-memory database vanishes if the pool opens a second connection.
	db.SetMaxOpenConns(1)

	s, err := New(db, idle)
	require.NoError(t, err)
	return s
}

func TestCreateAndGetBySession(t *testing.T) {
	s := setupTestStore(t, time.Minute)
	ctx := context.Background()

	conv, err := s.CreateConversation(ctx, "sess-1")
	require.NoError(t, err)
	require.Equal(t, model.StatusActive, conv.Status)
	require.Empty(t, conv.Company)

	got, err := s.GetBySession(ctx, "sess-1")
	require.NoError(t, err)
	require.Equal(t, conv.ID, got.ID)
	require.Empty(t, got.Messages)
	require.Nil(t, got.Contact)
	require.Nil(t, got.Inquiry)

	_, err = s.GetBySession(ctx, "missing")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestMessagesOrderedAndEagerLoaded(t *testing.T) {
	s := setupTestStore(t, time.Minute)
	ctx := context.Background()

	conv, err := s.CreateConversation(ctx, "sess-1")
	require.NoError(t, err)

	_, err = s.AppendMessage(ctx, conv.ID, model.RoleUser, "hola")
	require.NoError(t, err)
	_, err = s.AppendMessage(ctx, conv.ID, model.RoleAssistant, "buenas")
	require.NoError(t, err)
	_, err = s.AppendMessage(ctx, conv.ID, model.RoleUser, "necesito una balanza")
	require.NoError(t, err)

	got, err := s.GetBySession(ctx, "sess-1")
	require.NoError(t, err)
	require.Len(t, got.Messages, 3)
	require.Equal(t, model.RoleUser, got.Messages[0].Role)
	require.Equal(t, "hola", got.Messages[0].Content)
	require.Equal(t, "necesito una balanza", got.Messages[2].Content)
}

func TestContactUpsertMergesByPresence(t *testing.T) {
	s := setupTestStore(t, time.Minute)
	ctx := context.Background()

	conv, err := s.CreateConversation(ctx, "sess-1")
	require.NoError(t, err)

	_, err = s.UpsertContact(ctx, conv.ID, model.ContactFields{Phone: "987654321"})
	require.NoError(t, err)

	c, err := s.UpsertContact(ctx, conv.ID, model.ContactFields{Name: "Ana"})
	require.NoError(t, err)
	require.Equal(t, "Ana", c.Name)
	require.Equal(t, "987654321", c.Phone)

	// Empty fields never erase existing data.
	c, err = s.UpsertContact(ctx, conv.ID, model.ContactFields{Email: "ana@x.com"})
	require.NoError(t, err)
	require.Equal(t, "Ana", c.Name)
	require.Equal(t, "987654321", c.Phone)
	require.Equal(t, "ana@x.com", c.Email)
}

func TestInquiryUpsertReplaces(t *testing.T) {
	s := setupTestStore(t, time.Minute)
	ctx := context.Background()

	conv, err := s.CreateConversation(ctx, "sess-1")
	require.NoError(t, err)

	_, err = s.UpsertInquiry(ctx, conv.ID, "X")
	require.NoError(t, err)

	q, err := s.UpsertInquiry(ctx, conv.ID, "Y")
	require.NoError(t, err)
	require.Equal(t, "Y", q.Description)

	got, err := s.GetInquiry(ctx, conv.ID)
	require.NoError(t, err)
	require.Equal(t, "Y", got.Description)
}

func TestStatusTransitionsAreMonotone(t *testing.T) {
	s := setupTestStore(t, time.Minute)
	ctx := context.Background()

	conv, err := s.CreateConversation(ctx, "sess-1")
	require.NoError(t, err)

	require.NoError(t, s.SetStatus(ctx, conv.ID, model.StatusCompleted))

	err = s.SetStatus(ctx, conv.ID, model.StatusActive)
	require.ErrorIs(t, err, ErrConversationClosed)

	err = s.SetCompany(ctx, conv.ID, model.CompanyKossodo)
	require.ErrorIs(t, err, ErrConversationClosed)

	err = s.SetStatus(ctx, 9999, model.StatusCompleted)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestIdleExpiry(t *testing.T) {
	s := setupTestStore(t, 50*time.Millisecond)

	conv := &model.Conversation{Status: model.StatusActive, UpdatedAt: time.Now().Add(-time.Second)}
	require.True(t, s.IsIdleExpired(conv))

	conv.UpdatedAt = time.Now()
	require.False(t, s.IsIdleExpired(conv))

	// Non-active conversations never report idle expiry.
	conv.Status = model.StatusCompleted
	conv.UpdatedAt = time.Now().Add(-time.Hour)
	require.False(t, s.IsIdleExpired(conv))
}

func TestAppendMessageCountsAsActivity(t *testing.T) {
	s := setupTestStore(t, time.Minute)
	ctx := context.Background()

	conv, err := s.CreateConversation(ctx, "sess-1")
	require.NoError(t, err)

	// Backdate, then append: updated_at must move forward again.
	_, err = s.db.ExecContext(ctx,
		`UPDATE conversations SET updated_at = ? WHERE id = ?`,
		time.Now().UTC().Add(-time.Hour), conv.ID)
	require.NoError(t, err)

	_, err = s.AppendMessage(ctx, conv.ID, model.RoleUser, "sigo aqui")
	require.NoError(t, err)

	got, err := s.GetBySession(ctx, "sess-1")
	require.NoError(t, err)
	require.False(t, s.IsIdleExpired(got))
}

func TestExpire(t *testing.T) {
	s := setupTestStore(t, time.Minute)
	ctx := context.Background()

	conv, err := s.CreateConversation(ctx, "sess-1")
	require.NoError(t, err)
	require.NoError(t, s.Expire(ctx, conv.ID))

	got, err := s.GetBySession(ctx, "sess-1")
	require.NoError(t, err)
	require.Equal(t, model.StatusExpired, got.Status)
	require.True(t, errors.Is(s.Expire(ctx, conv.ID), ErrConversationClosed))
}
