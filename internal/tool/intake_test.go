package tool

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/grupokossodo/intake-agent/internal/model"
	"github.com/grupokossodo/intake-agent/internal/store"
)

func setupRegistry(t *testing.T) (*Registry, *store.Store, int64) {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	db.SetMaxOpenConns(1)

	st, err := store.New(db, time.Minute)
	require.NoError(t, err)

	conv, err := st.CreateConversation(context.Background(), "sess-1")
	require.NoError(t, err)

	return NewRegistry(st), st, conv.ID
}

func TestDeclarationsPerPhase(t *testing.T) {
	r, _, _ := setupRegistry(t)

	router := r.DeclarationsFor("")
	require.Len(t, router, 1)
	require.Equal(t, ToolSetCompany, router[0].Name)

	kossodo := r.DeclarationsFor(model.CompanyKossodo)
	require.Len(t, kossodo, 3)
	names := []string{kossodo[0].Name, kossodo[1].Name, kossodo[2].Name}
	require.ElementsMatch(t, []string{ToolSaveContact, ToolSaveInquiry, ToolEndConversation}, names)

	kossomet := r.DeclarationsFor(model.CompanyKossomet)
	require.Len(t, kossomet, 3)
}

func TestSetCompanyNormalizesAndPersists(t *testing.T) {
	r, st, convID := setupRegistry(t)
	ctx := context.Background()

	res, err := r.Dispatch(ctx, ToolSetCompany, convID, map[string]any{"company": "  KOSSODO "})
	require.NoError(t, err)
	require.True(t, res.Success)
	require.Equal(t, "kossodo", res.Data["company"])

	conv, err := st.GetBySession(ctx, "sess-1")
	require.NoError(t, err)
	require.Equal(t, model.CompanyKossodo, conv.Company)
}

func TestSetCompanyRejectsUnknownValue(t *testing.T) {
	r, _, convID := setupRegistry(t)

	res, err := r.Dispatch(context.Background(), ToolSetCompany, convID, map[string]any{"company": "acme"})
	require.NoError(t, err)
	require.False(t, res.Success)
}

func TestSetCompanyMissingConversation(t *testing.T) {
	r, _, _ := setupRegistry(t)

	res, err := r.Dispatch(context.Background(), ToolSetCompany, 9999, map[string]any{"company": "kossodo"})
	require.NoError(t, err)
	require.False(t, res.Success)
	require.Equal(t, "Conversation not found.", res.Message)
}

func TestSaveContactRequiresAnyField(t *testing.T) {
	r, _, convID := setupRegistry(t)
	ctx := context.Background()

	res, err := r.Dispatch(ctx, ToolSaveContact, convID, map[string]any{})
	require.NoError(t, err)
	require.False(t, res.Success)

	res, err = r.Dispatch(ctx, ToolSaveContact, convID, map[string]any{"phone": "987654321"})
	require.NoError(t, err)
	require.True(t, res.Success)
	require.Equal(t, "987654321", res.Data["phone"])

	// Snapshot in the result reflects the merged state.
	res, err = r.Dispatch(ctx, ToolSaveContact, convID, map[string]any{"name": "Ana"})
	require.NoError(t, err)
	require.True(t, res.Success)
	require.Equal(t, "Ana", res.Data["name"])
	require.Equal(t, "987654321", res.Data["phone"])
}

func TestSaveInquiryRejectsEmpty(t *testing.T) {
	r, _, convID := setupRegistry(t)
	ctx := context.Background()

	res, err := r.Dispatch(ctx, ToolSaveInquiry, convID, map[string]any{"description": "   "})
	require.NoError(t, err)
	require.False(t, res.Success)

	res, err = r.Dispatch(ctx, ToolSaveInquiry, convID, map[string]any{"description": "dos balanzas analíticas"})
	require.NoError(t, err)
	require.True(t, res.Success)
	require.Equal(t, "dos balanzas analíticas", res.Data["description"])
}

func TestEndConversationCompletes(t *testing.T) {
	r, st, convID := setupRegistry(t)
	ctx := context.Background()

	res, err := r.Dispatch(ctx, ToolEndConversation, convID, map[string]any{"summary": "listo"})
	require.NoError(t, err)
	require.True(t, res.Success)
	require.Equal(t, "listo", res.Data["summary"])

	conv, err := st.GetBySession(ctx, "sess-1")
	require.NoError(t, err)
	require.Equal(t, model.StatusCompleted, conv.Status)
}

func TestDispatchUnknownToolIsRejection(t *testing.T) {
	r, _, convID := setupRegistry(t)

	res, err := r.Dispatch(context.Background(), "launch_rocket", convID, nil)
	require.NoError(t, err)
	require.False(t, res.Success)
}

func TestResultPayloadShape(t *testing.T) {
	res := Result{Success: true, Message: "ok", Data: map[string]any{"a": 1}}
	payload := res.Payload()
	require.Equal(t, true, payload["success"])
	require.Equal(t, "ok", payload["message"])
	require.Equal(t, map[string]any{"a": 1}, payload["data"])
}
