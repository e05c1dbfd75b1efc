package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/grupokossodo/intake-agent/internal/agent"
	"github.com/grupokossodo/intake-agent/internal/middleware"
	"github.com/grupokossodo/intake-agent/internal/model"
	"github.com/grupokossodo/intake-agent/pkg/logger"
)

// TurnProcessor runs one intake turn. Implemented by agent.Agent.
type TurnProcessor interface {
	ProcessMessage(ctx context.Context, message, sessionID string) (*agent.Result, error)
}

// ChatHandler exposes the intake turn endpoint.
type ChatHandler struct {
	agent         TurnProcessor
	log           *logger.Logger
	maxMessageLen int
}

// NewChatHandler creates a ChatHandler. maxMessageLen bounds the accepted
// user message length in runes.
func NewChatHandler(a TurnProcessor, log *logger.Logger, maxMessageLen int) *ChatHandler {
	if maxMessageLen <= 0 {
		maxMessageLen = 5000
	}
	return &ChatHandler{agent: a, log: log, maxMessageLen: maxMessageLen}
}

// Chat handles POST /api/v1/chat.
func (h *ChatHandler) Chat(w http.ResponseWriter, r *http.Request) {
	var req model.ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	message := strings.TrimSpace(req.Message)
	if err := middleware.ValidateMessageContent(message, h.maxMessageLen); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	// A malformed token is treated like an unknown one: the turn starts a
	// fresh session instead of failing.
	sessionID := strings.TrimSpace(req.SessionID)
	if err := middleware.ValidateSessionID(sessionID); err != nil {
		sessionID = ""
	}

	res, err := h.agent.ProcessMessage(r.Context(), message, sessionID)
	if err != nil {
		h.log.Error("turn failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "failed to process message")
		return
	}

	writeJSON(w, http.StatusOK, model.ChatResponse{
		SessionID: res.SessionID,
		Message:   res.Message,
		Status:    res.Status,
	})
}
