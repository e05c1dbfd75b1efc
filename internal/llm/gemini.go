package llm

import (
	"context"
	"errors"
	"time"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"github.com/grupokossodo/intake-agent/pkg/metrics"
)

const defaultGeminiModel = "gemini-2.0-flash"

// GeminiClient is the Google Gemini LLM client.
type GeminiClient struct {
	client *genai.Client
	model  string
}

// NewGeminiClient creates a new Gemini client.
func NewGeminiClient(ctx context.Context, apiKey, model string) (*GeminiClient, error) {
	if apiKey == "" {
		return nil, errors.New("Gemini API key is required")
	}
	if model == "" {
		model = defaultGeminiModel
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, err
	}

	return &GeminiClient{client: client, model: model}, nil
}

// Name returns the provider name.
func (c *GeminiClient) Name() string {
	return "gemini"
}

// Close releases the underlying API client.
func (c *GeminiClient) Close() error {
	return c.client.Close()
}

// Generate issues one generation call with the full accumulated content.
func (c *GeminiClient) Generate(ctx context.Context, systemPrompt string, contents []Content, tools []ToolDecl) (*Response, error) {
	start := time.Now()

	m := c.client.GenerativeModel(c.model)
	m.SystemInstruction = &genai.Content{Parts: []genai.Part{genai.Text(systemPrompt)}}
	if len(tools) > 0 {
		m.Tools = []*genai.Tool{{FunctionDeclarations: toGeminiDeclarations(tools)}}
	}

	gc := toGeminiContents(contents)
	if len(gc) == 0 {
		return nil, errors.New("empty contents")
	}

	// The chat session carries everything but the last unit as history; the
	// last unit's parts are the message being sent.
	cs := m.StartChat()
	cs.History = gc[:len(gc)-1]
	resp, err := cs.SendMessage(ctx, gc[len(gc)-1].Parts...)
	if err != nil {
		return nil, err
	}

	metrics.LLMRequestDuration.WithLabelValues(c.Name()).Observe(time.Since(start).Seconds())

	return normalizeGemini(resp), nil
}

func toGeminiDeclarations(tools []ToolDecl) []*genai.FunctionDeclaration {
	decls := make([]*genai.FunctionDeclaration, 0, len(tools))
	for _, t := range tools {
		props := make(map[string]*genai.Schema, len(t.Params))
		for name, p := range t.Params {
			props[name] = &genai.Schema{
				Type:        genai.TypeString,
				Description: p.Description,
				Enum:        p.Enum,
			}
		}
		decls = append(decls, &genai.FunctionDeclaration{
			Name:        t.Name,
			Description: t.Description,
			Parameters: &genai.Schema{
				Type:       genai.TypeObject,
				Properties: props,
				Required:   t.Required,
			},
		})
	}
	return decls
}

func toGeminiContents(contents []Content) []*genai.Content {
	out := make([]*genai.Content, 0, len(contents))
	for _, ct := range contents {
		gc := &genai.Content{Role: ct.Role}
		for _, p := range ct.Parts {
			switch {
			case p.FunctionCall != nil:
				gc.Parts = append(gc.Parts, genai.FunctionCall{
					Name: p.FunctionCall.Name,
					Args: p.FunctionCall.Args,
				})
			case p.FunctionResponse != nil:
				gc.Parts = append(gc.Parts, genai.FunctionResponse{
					Name:     p.FunctionResponse.Name,
					Response: p.FunctionResponse.Response,
				})
			default:
				gc.Parts = append(gc.Parts, genai.Text(p.Text))
			}
		}
		out = append(out, gc)
	}
	return out
}

func normalizeGemini(resp *genai.GenerateContentResponse) *Response {
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return &Response{Type: TypeText, Content: ""}
	}

	var text string
	var calls []FunctionCall
	for _, part := range resp.Candidates[0].Content.Parts {
		switch p := part.(type) {
		case genai.Text:
			text += string(p)
		case genai.FunctionCall:
			calls = append(calls, FunctionCall{Name: p.Name, Args: p.Args})
		}
	}

	if len(calls) > 0 {
		return &Response{Type: TypeFunctionCall, Calls: calls, TextBeforeCalls: text}
	}
	return &Response{Type: TypeText, Content: text}
}
