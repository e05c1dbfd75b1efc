package handler

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/grupokossodo/intake-agent/internal/model"
	"github.com/grupokossodo/intake-agent/internal/store"
	"github.com/grupokossodo/intake-agent/pkg/logger"
)

// ConversationHandler exposes the read-only admin surface over captured
// intakes.
type ConversationHandler struct {
	store *store.Store
	log   *logger.Logger
}

// NewConversationHandler creates a ConversationHandler.
func NewConversationHandler(st *store.Store, log *logger.Logger) *ConversationHandler {
	return &ConversationHandler{store: st, log: log}
}

// Get handles GET /api/v1/conversations/{sessionID}.
func (h *ConversationHandler) Get(w http.ResponseWriter, r *http.Request) {
	conv, ok := h.lookup(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, model.ConversationResponse{
		SessionID: conv.SessionID,
		Company:   conv.Company,
		Status:    conv.Status,
		Messages:  conv.Messages,
		CreatedAt: conv.CreatedAt,
	})
}

// GetContact handles GET /api/v1/conversations/{sessionID}/contact.
func (h *ConversationHandler) GetContact(w http.ResponseWriter, r *http.Request) {
	conv, ok := h.lookup(w, r)
	if !ok {
		return
	}
	if conv.Contact == nil {
		writeError(w, http.StatusNotFound, "no contact captured")
		return
	}
	writeJSON(w, http.StatusOK, conv.Contact)
}

// GetInquiry handles GET /api/v1/conversations/{sessionID}/inquiry.
func (h *ConversationHandler) GetInquiry(w http.ResponseWriter, r *http.Request) {
	conv, ok := h.lookup(w, r)
	if !ok {
		return
	}
	if conv.Inquiry == nil {
		writeError(w, http.StatusNotFound, "no inquiry captured")
		return
	}
	writeJSON(w, http.StatusOK, conv.Inquiry)
}

func (h *ConversationHandler) lookup(w http.ResponseWriter, r *http.Request) (*model.Conversation, bool) {
	sessionID := chi.URLParam(r, "sessionID")
	if sessionID == "" {
		writeError(w, http.StatusBadRequest, "session id is required")
		return nil, false
	}

	conv, err := h.store.GetBySession(r.Context(), sessionID)
	if errors.Is(err, store.ErrNotFound) {
		writeError(w, http.StatusNotFound, "conversation not found")
		return nil, false
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to load conversation")
		return nil, false
	}
	return conv, true
}
