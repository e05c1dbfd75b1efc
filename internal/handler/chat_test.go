package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/grupokossodo/intake-agent/internal/agent"
	"github.com/grupokossodo/intake-agent/internal/model"
	"github.com/grupokossodo/intake-agent/pkg/logger"
)

type fakeProcessor struct {
	result  *agent.Result
	err     error
	gotMsg  string
	gotSess string
}

func (f *fakeProcessor) ProcessMessage(_ context.Context, message, sessionID string) (*agent.Result, error) {
	f.gotMsg = message
	f.gotSess = sessionID
	return f.result, f.err
}

func postChat(t *testing.T, h *ChatHandler, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, json.NewEncoder(&buf).Encode(body))
	req := httptest.NewRequest(http.MethodPost, "/api/v1/chat", &buf)
	rec := httptest.NewRecorder()
	h.Chat(rec, req)
	return rec
}

func TestChatOK(t *testing.T) {
	sid := "7a9f33d2-6f07-4b52-a6a9-1f2f56c4b7de"
	proc := &fakeProcessor{result: &agent.Result{
		SessionID: sid,
		Message:   "Hola, ¿en qué puedo ayudarte?",
		Status:    model.StatusActive,
	}}
	h := NewChatHandler(proc, logger.NewNop(), 0)

	rec := postChat(t, h, model.ChatRequest{Message: "  hola  ", SessionID: sid})
	require.Equal(t, http.StatusOK, rec.Code)

	var resp model.ChatResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, sid, resp.SessionID)
	assert.Equal(t, model.StatusActive, resp.Status)

	// Whitespace trimmed before the turn runs.
	assert.Equal(t, "hola", proc.gotMsg)
	assert.Equal(t, sid, proc.gotSess)
}

func TestChatMalformedSessionTokenStartsFresh(t *testing.T) {
	proc := &fakeProcessor{result: &agent.Result{
		SessionID: "7a9f33d2-6f07-4b52-a6a9-1f2f56c4b7de",
		Message:   "Hola",
		Status:    model.StatusActive,
	}}
	h := NewChatHandler(proc, logger.NewNop(), 0)

	rec := postChat(t, h, model.ChatRequest{Message: "hola", SessionID: "not-a-uuid"})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "", proc.gotSess)
}

func TestChatRejectsEmptyMessage(t *testing.T) {
	h := NewChatHandler(&fakeProcessor{}, logger.NewNop(), 0)

	rec := postChat(t, h, model.ChatRequest{Message: "   "})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestChatRejectsOversizedMessage(t *testing.T) {
	h := NewChatHandler(&fakeProcessor{}, logger.NewNop(), 10)

	rec := postChat(t, h, model.ChatRequest{Message: strings.Repeat("a", 11)})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestChatRejectsMalformedBody(t *testing.T) {
	h := NewChatHandler(&fakeProcessor{}, logger.NewNop(), 0)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/chat", strings.NewReader("{not json"))
	rec := httptest.NewRecorder()
	h.Chat(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestChatTurnFailure(t *testing.T) {
	proc := &fakeProcessor{err: errors.New("boom")}
	h := NewChatHandler(proc, logger.NewNop(), 0)

	rec := postChat(t, h, model.ChatRequest{Message: "hola"})
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
