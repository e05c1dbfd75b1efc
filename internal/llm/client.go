// Package llm provides the provider-agnostic generation gateway: content
// units, tool declarations, and a normalized tagged response.
package llm

import (
	"context"
)

// Content roles. Provider convention: assistant turns and tool invocations
// are "model", everything submitted to the model (including tool results)
// is "user".
const (
	RoleUser  = "user"
	RoleModel = "model"
)

// FunctionCall is a structured action the model asked the host to execute.
type FunctionCall struct {
	Name string
	Args map[string]any
}

// FunctionResponse carries a tool's result payload back to the model.
type FunctionResponse struct {
	Name     string
	Response map[string]any
}

// Part is one element of a content unit. Exactly one field is set.
type Part struct {
	Text             string
	FunctionCall     *FunctionCall
	FunctionResponse *FunctionResponse
}

// Content is one role-tagged unit of the ordered sequence submitted to the
// provider per generation call.
type Content struct {
	Role  string
	Parts []Part
}

// ChatMessage is a stored transcript message in provider-neutral form.
type ChatMessage struct {
	Role    string
	Content string
}

// ToolParam describes one parameter of a tool schema.
type ToolParam struct {
	Type        string
	Description string
	Enum        []string
}

// ToolDecl is a plain {name, description, parameters} tool schema.
type ToolDecl struct {
	Name        string
	Description string
	Params      map[string]ToolParam
	Required    []string
}

// ResponseType tags the normalized generation result.
type ResponseType string

const (
	TypeText         ResponseType = "text"
	TypeFunctionCall ResponseType = "function_call"
)

// Response is the normalized generation result. When the provider returns
// any function-call parts, ALL of them are collected in order and the
// response is tagged TypeFunctionCall; interleaved text is preserved in
// TextBeforeCalls so it is not silently dropped. An empty provider reply
// normalizes to TypeText with empty Content.
type Response struct {
	Type            ResponseType
	Content         string
	Calls           []FunctionCall
	TextBeforeCalls string
}

// Client is the interface for LLM providers.
type Client interface {
	// Generate issues exactly one generation call.
	Generate(ctx context.Context, systemPrompt string, contents []Content, tools []ToolDecl) (*Response, error)

	// Name returns the provider name.
	Name() string
}
