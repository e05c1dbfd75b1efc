package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/sashabaranov/go-openai"

	"github.com/grupokossodo/intake-agent/pkg/metrics"
)

const defaultOpenAIModel = "gpt-4o-mini"

// OpenAIClient is the OpenAI LLM client.
type OpenAIClient struct {
	client *openai.Client
	model  string
}

// NewOpenAIClient creates a new OpenAI client.
func NewOpenAIClient(apiKey, model string) (*OpenAIClient, error) {
	if apiKey == "" {
		return nil, errors.New("OpenAI API key is required")
	}
	if model == "" {
		model = defaultOpenAIModel
	}

	return &OpenAIClient{client: openai.NewClient(apiKey), model: model}, nil
}

// Name returns the provider name.
func (c *OpenAIClient) Name() string {
	return "openai"
}

// Generate issues one chat completion with the full accumulated content.
func (c *OpenAIClient) Generate(ctx context.Context, systemPrompt string, contents []Content, tools []ToolDecl) (*Response, error) {
	start := time.Now()

	messages := []openai.ChatCompletionMessage{{
		Role:    openai.ChatMessageRoleSystem,
		Content: systemPrompt,
	}}
	messages = append(messages, toOpenAIMessages(contents)...)

	req := openai.ChatCompletionRequest{
		Model:    c.model,
		Messages: messages,
	}
	if len(tools) > 0 {
		req.Tools = toOpenAITools(tools)
	}

	resp, err := c.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return nil, err
	}

	metrics.LLMRequestDuration.WithLabelValues(c.Name()).Observe(time.Since(start).Seconds())

	return normalizeOpenAI(resp), nil
}

// toOpenAIMessages maps gateway content onto the chat completion shape.
// Function calls become assistant tool_calls; function responses become
// tool-role messages. Call IDs are synthesized positionally since the pairs
// in gateway content are strictly adjacent.
func toOpenAIMessages(contents []Content) []openai.ChatCompletionMessage {
	var messages []openai.ChatCompletionMessage
	callSeq := 0
	pending := make(map[string][]string) // tool name -> queued call IDs

	for _, ct := range contents {
		var text string
		var toolCalls []openai.ToolCall
		var toolResults []*FunctionResponse

		for _, p := range ct.Parts {
			switch {
			case p.FunctionCall != nil:
				id := fmt.Sprintf("call_%d_%s", callSeq, p.FunctionCall.Name)
				callSeq++
				pending[p.FunctionCall.Name] = append(pending[p.FunctionCall.Name], id)
				args, _ := json.Marshal(p.FunctionCall.Args)
				toolCalls = append(toolCalls, openai.ToolCall{
					ID:   id,
					Type: openai.ToolTypeFunction,
					Function: openai.FunctionCall{
						Name:      p.FunctionCall.Name,
						Arguments: string(args),
					},
				})
			case p.FunctionResponse != nil:
				toolResults = append(toolResults, p.FunctionResponse)
			default:
				text += p.Text
			}
		}

		switch {
		case len(toolCalls) > 0:
			messages = append(messages, openai.ChatCompletionMessage{
				Role:      openai.ChatMessageRoleAssistant,
				Content:   text,
				ToolCalls: toolCalls,
			})
		case len(toolResults) > 0:
			for _, fr := range toolResults {
				id := "call_0_" + fr.Name
				if q := pending[fr.Name]; len(q) > 0 {
					id, pending[fr.Name] = q[0], q[1:]
				}
				payload, _ := json.Marshal(fr.Response)
				messages = append(messages, openai.ChatCompletionMessage{
					Role:       openai.ChatMessageRoleTool,
					ToolCallID: id,
					Content:    string(payload),
				})
			}
		default:
			role := openai.ChatMessageRoleAssistant
			if ct.Role == RoleUser {
				role = openai.ChatMessageRoleUser
			}
			messages = append(messages, openai.ChatCompletionMessage{Role: role, Content: text})
		}
	}
	return messages
}

func toOpenAITools(tools []ToolDecl) []openai.Tool {
	out := make([]openai.Tool, 0, len(tools))
	for _, t := range tools {
		props := make(map[string]any, len(t.Params))
		for name, p := range t.Params {
			prop := map[string]any{
				"type":        "string",
				"description": p.Description,
			}
			if len(p.Enum) > 0 {
				prop["enum"] = p.Enum
			}
			props[name] = prop
		}
		out = append(out, openai.Tool{
			Type: openai.ToolTypeFunction,
			Function: &openai.FunctionDefinition{
				Name:        t.Name,
				Description: t.Description,
				Parameters: map[string]any{
					"type":       "object",
					"properties": props,
					"required":   t.Required,
				},
			},
		})
	}
	return out
}

func normalizeOpenAI(resp openai.ChatCompletionResponse) *Response {
	if len(resp.Choices) == 0 {
		return &Response{Type: TypeText, Content: ""}
	}

	msg := resp.Choices[0].Message
	if len(msg.ToolCalls) == 0 {
		return &Response{Type: TypeText, Content: msg.Content}
	}

	calls := make([]FunctionCall, 0, len(msg.ToolCalls))
	for _, tc := range msg.ToolCalls {
		args := make(map[string]any)
		if tc.Function.Arguments != "" {
			// Malformed arguments degrade to an empty map; the tool rejects
			// them and the model sees the rejection next iteration.
			_ = json.Unmarshal([]byte(tc.Function.Arguments), &args)
		}
		calls = append(calls, FunctionCall{Name: tc.Function.Name, Args: args})
	}
	return &Response{Type: TypeFunctionCall, Calls: calls, TextBeforeCalls: msg.Content}
}
