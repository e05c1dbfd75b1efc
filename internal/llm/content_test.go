package llm

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBuildInitialContents(t *testing.T) {
	history := []ChatMessage{
		{Role: "user", Content: "hola"},
		{Role: "assistant", Content: "buenas, ¿en qué te ayudo?"},
	}

	contents := BuildInitialContents(history, "necesito calibrar una balanza")
	require.Len(t, contents, 3)

	require.Equal(t, RoleUser, contents[0].Role)
	require.Equal(t, "hola", contents[0].Parts[0].Text)
	require.Equal(t, RoleModel, contents[1].Role)
	require.Equal(t, RoleUser, contents[2].Role)
	require.Equal(t, "necesito calibrar una balanza", contents[2].Parts[0].Text)
}

func TestBuildInitialContentsEmptyHistory(t *testing.T) {
	contents := BuildInitialContents(nil, "hola")
	require.Len(t, contents, 1)
	require.Equal(t, RoleUser, contents[0].Role)
}

func TestAppendFunctionExchangeAlternation(t *testing.T) {
	contents := BuildInitialContents(nil, "mi correo es ana@x.com")

	args := map[string]any{"email": "ana@x.com"}
	result := map[string]any{"success": true, "message": "saved"}
	contents = AppendFunctionExchange(contents, "save_contact", args, result)

	require.Len(t, contents, 3)

	// A call unit is always immediately followed by its result unit.
	call := contents[1]
	require.Equal(t, RoleModel, call.Role)
	require.NotNil(t, call.Parts[0].FunctionCall)
	require.Equal(t, "save_contact", call.Parts[0].FunctionCall.Name)

	res := contents[2]
	require.Equal(t, RoleUser, res.Role)
	require.NotNil(t, res.Parts[0].FunctionResponse)
	require.Equal(t, "save_contact", res.Parts[0].FunctionResponse.Name)
	require.Equal(t, result, res.Parts[0].FunctionResponse.Response)
}

func TestAppendFunctionExchangeMultipleCallsStayPaired(t *testing.T) {
	contents := BuildInitialContents(nil, "datos")
	contents = AppendFunctionExchange(contents, "save_contact", nil, map[string]any{"success": true})
	contents = AppendFunctionExchange(contents, "save_inquiry", nil, map[string]any{"success": true})

	require.Len(t, contents, 5)
	for i := 1; i < len(contents); i += 2 {
		require.NotNil(t, contents[i].Parts[0].FunctionCall, "unit %d must be a call", i)
		require.NotNil(t, contents[i+1].Parts[0].FunctionResponse, "unit %d must be a result", i+1)
		require.Equal(t, contents[i].Parts[0].FunctionCall.Name, contents[i+1].Parts[0].FunctionResponse.Name)
	}
}

func TestToOpenAIMessagesPairsCallIDs(t *testing.T) {
	contents := BuildInitialContents(nil, "datos")
	contents = AppendFunctionExchange(contents, "save_contact",
		map[string]any{"name": "Ana"}, map[string]any{"success": true})

	messages := toOpenAIMessages(contents)
	require.Len(t, messages, 3)

	require.Equal(t, "assistant", messages[1].Role)
	require.Len(t, messages[1].ToolCalls, 1)
	require.Equal(t, "tool", messages[2].Role)
	require.Equal(t, messages[1].ToolCalls[0].ID, messages[2].ToolCallID)
}
