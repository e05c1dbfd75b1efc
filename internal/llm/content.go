package llm

// TextContent builds a single-part text content unit.
func TextContent(role, text string) Content {
	return Content{Role: role, Parts: []Part{{Text: text}}}
}

// BuildInitialContents converts stored history into provider content and
// appends the pending user message as the final unit. Stored "user"
// messages map to the user role, everything else to the model role.
func BuildInitialContents(history []ChatMessage, userMessage string) []Content {
	contents := make([]Content, 0, len(history)+1)
	for _, msg := range history {
		role := RoleModel
		if msg.Role == "user" {
			role = RoleUser
		}
		contents = append(contents, TextContent(role, msg.Content))
	}
	return append(contents, TextContent(RoleUser, userMessage))
}

// AppendFunctionExchange appends a model-role unit for the tool invocation
// immediately followed by a user-role unit carrying its result. The pair is
// always appended atomically: the provider requires this strict alternation
// to keep the accumulated context valid.
func AppendFunctionExchange(contents []Content, name string, args, result map[string]any) []Content {
	contents = append(contents, Content{
		Role:  RoleModel,
		Parts: []Part{{FunctionCall: &FunctionCall{Name: name, Args: args}}},
	})
	return append(contents, Content{
		Role:  RoleUser,
		Parts: []Part{{FunctionResponse: &FunctionResponse{Name: name, Response: result}}},
	})
}
