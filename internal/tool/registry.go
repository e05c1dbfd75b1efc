// Package tool defines the actions the model can request during intake and
// the registry that scopes them per routing phase.
package tool

import (
	"context"
	"strings"

	"github.com/grupokossodo/intake-agent/internal/llm"
	"github.com/grupokossodo/intake-agent/internal/model"
	"github.com/grupokossodo/intake-agent/internal/store"
	"github.com/grupokossodo/intake-agent/pkg/metrics"
)

// Result is the outcome of one tool dispatch. A rejected call (Success
// false) is not an error: it is fed back to the model as the function
// response so it can self-correct on the next iteration.
type Result struct {
	Success bool
	Message string
	Data    map[string]any
}

// Payload is the function-response body submitted back to the provider.
func (r Result) Payload() map[string]any {
	return map[string]any{
		"success": r.Success,
		"message": r.Message,
		"data":    r.Data,
	}
}

// Tool binds a declaration to its handler. Handlers only ever touch the
// conversation bound to the current turn.
type Tool struct {
	Name        string
	Description string
	Params      map[string]llm.ToolParam
	Required    []string
	Handler     func(ctx context.Context, conversationID int64, args map[string]any) (Result, error)
}

// Decl returns the provider-facing declaration.
func (t *Tool) Decl() llm.ToolDecl {
	return llm.ToolDecl{
		Name:        t.Name,
		Description: t.Description,
		Params:      t.Params,
		Required:    t.Required,
	}
}

// Tool groups per routing phase. Both specialists expose the same set; the
// router phase only exposes routing.
var (
	routerTools     = []string{ToolSetCompany}
	specialistTools = []string{ToolSaveContact, ToolSaveInquiry, ToolEndConversation}
)

// Registry holds name->tool bindings, populated at construction.
type Registry struct {
	store *store.Store
	tools map[string]*Tool
}

// NewRegistry creates the registry with the built-in intake tools.
func NewRegistry(st *store.Store) *Registry {
	r := &Registry{
		store: st,
		tools: make(map[string]*Tool),
	}
	r.registerBuiltins()
	return r
}

func (r *Registry) register(t *Tool) {
	r.tools[t.Name] = t
}

// DeclarationsFor returns the tool declarations visible at the given
// routing stage: the router group while company is unset, the specialist
// group afterwards.
func (r *Registry) DeclarationsFor(company model.Company) []llm.ToolDecl {
	names := routerTools
	if company.Valid() {
		names = specialistTools
	}

	decls := make([]llm.ToolDecl, 0, len(names))
	for _, name := range names {
		if t, ok := r.tools[name]; ok {
			decls = append(decls, t.Decl())
		}
	}
	return decls
}

// Dispatch executes a tool by name against the turn's conversation. An
// unknown name is a rejection, not an error; a returned error means the
// turn must abort.
func (r *Registry) Dispatch(ctx context.Context, name string, conversationID int64, args map[string]any) (Result, error) {
	t, ok := r.tools[name]
	if !ok {
		return Result{Success: false, Message: "Unknown tool: " + name}, nil
	}

	res, err := t.Handler(ctx, conversationID, args)
	if err != nil {
		return Result{}, err
	}
	metrics.RecordToolCall(name, res.Success)
	return res, nil
}

// strArg extracts a trimmed string argument; anything else reads as empty.
func strArg(args map[string]any, key string) string {
	v, ok := args[key]
	if !ok {
		return ""
	}
	s, ok := v.(string)
	if !ok {
		return ""
	}
	return strings.TrimSpace(s)
}
