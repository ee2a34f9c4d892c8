package out

import "context"

// CompletionProvider is the remote chat-completion API.
type CompletionProvider interface {
	// CompleteJSON sends a system and a user message and asks for a JSON
	// object reply. It returns the first choice's message content verbatim.
	CompleteJSON(ctx context.Context, systemPrompt, userPrompt string) (string, error)
}
