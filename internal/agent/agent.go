// Package agent runs the per-turn orchestration loop: session resolution,
// prompt and tool selection by routing state, and the bounded
// generate-dispatch cycle against the model gateway.
package agent

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/grupokossodo/intake-agent/internal/events"
	"github.com/grupokossodo/intake-agent/internal/llm"
	"github.com/grupokossodo/intake-agent/internal/model"
	"github.com/grupokossodo/intake-agent/internal/prompt"
	"github.com/grupokossodo/intake-agent/internal/store"
	"github.com/grupokossodo/intake-agent/internal/tool"
	"github.com/grupokossodo/intake-agent/pkg/logger"
	"github.com/grupokossodo/intake-agent/pkg/metrics"
)

// Agent processes intake turns. One Agent serves all sessions; per-session
// turns are serialized internally.
type Agent struct {
	store    *store.Store
	llm      llm.Client
	tools    *tool.Registry
	events   events.Publisher
	log      *logger.Logger
	maxIters int
	locks    *sessionLocks
}

// Result is the outcome of one processed turn.
type Result struct {
	SessionID string
	Message   string
	Status    model.Status
}

// New creates an Agent. maxToolIterations bounds the generate-dispatch
// cycle per turn.
func New(st *store.Store, client llm.Client, tools *tool.Registry, pub events.Publisher, log *logger.Logger, maxToolIterations int) *Agent {
	if maxToolIterations <= 0 {
		maxToolIterations = 10
	}
	return &Agent{
		store:    st,
		llm:      client,
		tools:    tools,
		events:   pub,
		log:      log,
		maxIters: maxToolIterations,
		locks:    newSessionLocks(),
	}
}

// ProcessMessage runs one full intake turn: resolve the session, persist the
// user message, drive the model until it yields text or the iteration cap
// hits, persist the reply, and return it with the conversation status.
func (a *Agent) ProcessMessage(ctx context.Context, message, sessionID string) (*Result, error) {
	release := a.locks.acquire(sessionID)
	defer release()

	conv, err := a.resolveSession(ctx, sessionID)
	if err != nil {
		metrics.TurnFailures.Inc()
		return nil, err
	}
	log := a.log.WithSession(conv.SessionID)

	if _, err := a.store.AppendMessage(ctx, conv.ID, model.RoleUser, message); err != nil {
		metrics.TurnFailures.Inc()
		return nil, fmt.Errorf("persist user message: %w", err)
	}

	text, lastTool, endedByTool, err := a.runTurn(ctx, conv, message, log)
	if err != nil {
		metrics.TurnFailures.Inc()
		return nil, err
	}

	if text == "" {
		if lastTool != "" {
			// Reload for company: set_company may have routed mid-turn.
			if fresh, err := a.store.GetBySession(ctx, conv.SessionID); err == nil {
				conv = fresh
			}
			text = closingLine(lastTool, conv.Company)
		} else if looksLikeContactData(message) {
			text = fallbackConfirmData
		} else {
			text = fallbackGeneric
		}
	}

	if _, err := a.store.AppendMessage(ctx, conv.ID, model.RoleAssistant, text); err != nil {
		metrics.TurnFailures.Inc()
		return nil, fmt.Errorf("persist assistant message: %w", err)
	}

	final, err := a.store.GetBySession(ctx, conv.SessionID)
	if err != nil {
		metrics.TurnFailures.Inc()
		return nil, fmt.Errorf("reload conversation: %w", err)
	}

	if endedByTool {
		a.publishCompletion(ctx, final, log)
	}

	metrics.TurnsTotal.WithLabelValues(string(final.Status)).Inc()
	return &Result{
		SessionID: final.SessionID,
		Message:   text,
		Status:    final.Status,
	}, nil
}

// resolveSession maps an incoming session token to the active conversation
// the turn will run against. A blank or unknown token, a terminal
// conversation, or an idle-expired one all yield a fresh conversation under
// a new token; the caller's stale token is never reused.
func (a *Agent) resolveSession(ctx context.Context, sessionID string) (*model.Conversation, error) {
	if sessionID != "" {
		conv, err := a.store.GetBySession(ctx, sessionID)
		switch {
		case err == nil && conv.Status == model.StatusActive:
			if !a.store.IsIdleExpired(conv) {
				return conv, nil
			}
			if err := a.store.Expire(ctx, conv.ID); err != nil {
				return nil, fmt.Errorf("expire idle conversation: %w", err)
			}
			metrics.ConversationsExpired.Inc()
			a.log.WithSession(sessionID).Info("conversation expired for inactivity")
		case err == nil:
			// Terminal conversation, fall through to a fresh one.
		case !errors.Is(err, store.ErrNotFound):
			return nil, fmt.Errorf("resolve session: %w", err)
		}
	}

	token := uuid.New().String()
	conv, err := a.store.CreateConversation(ctx, token)
	if err != nil {
		return nil, fmt.Errorf("create conversation: %w", err)
	}
	return conv, nil
}

// runTurn drives the generation loop and returns the reply text (possibly
// empty), the name of the last tool executed, and whether end_conversation
// succeeded during the turn.
func (a *Agent) runTurn(ctx context.Context, conv *model.Conversation, message string, log *logger.Logger) (text, lastTool string, endedByTool bool, err error) {
	history, err := a.store.ListMessages(ctx, conv.ID)
	if err != nil {
		return "", "", false, fmt.Errorf("load history: %w", err)
	}
	// The user message was just persisted; it enters the contents as the
	// pending unit, not as history.
	if len(history) > 0 {
		history = history[:len(history)-1]
	}

	company := conv.Company
	systemPrompt := prompt.ForCompany(company)
	decls := a.tools.DeclarationsFor(company)
	contents := llm.BuildInitialContents(toChatHistory(history), message)

	resp, err := a.generate(ctx, systemPrompt, contents, decls, looksLikeContactData(message))
	if err != nil {
		return "", "", false, err
	}

	var collected strings.Builder
	for i := 0; i < a.maxIters && resp.Type == llm.TypeFunctionCall; i++ {
		if resp.TextBeforeCalls != "" {
			if collected.Len() > 0 {
				collected.WriteString("\n")
			}
			collected.WriteString(resp.TextBeforeCalls)
		}

		for _, call := range resp.Calls {
			res, err := a.tools.Dispatch(ctx, call.Name, conv.ID, call.Args)
			if err != nil {
				return "", "", false, fmt.Errorf("dispatch %s: %w", call.Name, err)
			}
			lastTool = call.Name
			if call.Name == tool.ToolEndConversation && res.Success {
				endedByTool = true
			}
			contents = llm.AppendFunctionExchange(contents, call.Name, call.Args, res.Payload())

			// A successful routing call switches the prompt and tool set
			// for the rest of this same turn.
			if call.Name == tool.ToolSetCompany && res.Success {
				fresh, err := a.store.GetConversation(ctx, conv.ID)
				if err != nil {
					return "", "", false, fmt.Errorf("reload after routing: %w", err)
				}
				company = fresh.Company
				systemPrompt = prompt.ForCompany(company)
				decls = a.tools.DeclarationsFor(company)
				log.Info("conversation routed", zap.String("company", string(company)))
			}
		}

		resp, err = a.generate(ctx, systemPrompt, contents, decls, false)
		if err != nil {
			return "", "", false, err
		}
	}

	text = strings.TrimSpace(resp.Content)
	if text == "" {
		text = strings.TrimSpace(collected.String())
	}

	if text == "" && lastTool == "" {
		text, lastTool, err = a.retryWithHint(ctx, systemPrompt, contents, decls, conv.ID, log)
		if err != nil {
			return "", "", false, err
		}
		if lastTool == tool.ToolEndConversation {
			endedByTool = true
		}
	}

	return text, lastTool, endedByTool, nil
}

// retryWithHint reissues the generation once with the contact-data hint
// appended to a copy of the contents. The hint never reaches the durable
// transcript; if the retry asks for tool calls they are executed against
// the original contents so the hint does not leak into the context either.
func (a *Agent) retryWithHint(ctx context.Context, systemPrompt string, contents []llm.Content, decls []llm.ToolDecl, conversationID int64, log *logger.Logger) (string, string, error) {
	log.Warn("empty model response, retrying with hint")

	resp, err := a.generate(ctx, systemPrompt, contents, decls, true)
	if err != nil {
		return "", "", err
	}

	if resp.Type != llm.TypeFunctionCall {
		return strings.TrimSpace(resp.Content), "", nil
	}

	var lastTool string
	for _, call := range resp.Calls {
		res, err := a.tools.Dispatch(ctx, call.Name, conversationID, call.Args)
		if err != nil {
			return "", "", fmt.Errorf("dispatch %s: %w", call.Name, err)
		}
		lastTool = call.Name
		contents = llm.AppendFunctionExchange(contents, call.Name, call.Args, res.Payload())
	}

	resp, err = a.generate(ctx, systemPrompt, contents, decls, false)
	if err != nil {
		return "", "", err
	}
	return strings.TrimSpace(resp.Content), lastTool, nil
}

// generate issues one gateway call, optionally appending the non-persisted
// contact hint to a copy of the contents.
func (a *Agent) generate(ctx context.Context, systemPrompt string, contents []llm.Content, decls []llm.ToolDecl, withHint bool) (*llm.Response, error) {
	if withHint {
		hinted := make([]llm.Content, len(contents), len(contents)+1)
		copy(hinted, contents)
		contents = append(hinted, contactHint())
	}
	resp, err := a.llm.Generate(ctx, systemPrompt, contents, decls)
	if err != nil {
		return nil, fmt.Errorf("generate (%s): %w", a.llm.Name(), err)
	}
	return resp, nil
}

func (a *Agent) publishCompletion(ctx context.Context, conv *model.Conversation, log *logger.Logger) {
	event := &model.IntakeEvent{
		ID:        uuid.New().String(),
		SessionID: conv.SessionID,
		Company:   conv.Company,
		Contact:   conv.Contact,
		Inquiry:   conv.Inquiry,
		CreatedAt: time.Now().UTC(),
	}
	if conv.Inquiry != nil {
		event.Summary = conv.Inquiry.Description
	}
	if err := a.events.PublishIntake(ctx, event); err != nil {
		log.Warn("publish intake event failed", zap.Error(err))
	}
}

func toChatHistory(messages []model.Message) []llm.ChatMessage {
	history := make([]llm.ChatMessage, 0, len(messages))
	for _, m := range messages {
		history = append(history, llm.ChatMessage{Role: string(m.Role), Content: m.Content})
	}
	return history
}
