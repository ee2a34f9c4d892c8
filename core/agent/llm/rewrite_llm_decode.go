package llm

import (
	"fmt"

	"rewrite_server/core/domain"

	"github.com/goccy/go-json"
)

var rewriteKeys = [...]string{"subject", "original_greeting", "rewritten_body", "original_signature"}

// DecodeRewrite parses the provider's message content, itself a JSON document,
// into a RewriteResult. Every one of the four keys must be present and hold a
// string; anything else wraps ErrMalformedCompletion. Extra keys are dropped.
func DecodeRewrite(content string) (*domain.RewriteResult, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal([]byte(content), &raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedCompletion, err)
	}
	if raw == nil {
		return nil, fmt.Errorf("%w: not a JSON object", ErrMalformedCompletion)
	}

	values := make(map[string]string, len(rewriteKeys))
	for _, key := range rewriteKeys {
		v, ok := raw[key]
		if !ok {
			return nil, fmt.Errorf("%w: missing key %q", ErrMalformedCompletion, key)
		}
		var s string
		if err := json.Unmarshal(v, &s); err != nil || string(v) == "null" {
			return nil, fmt.Errorf("%w: key %q is not a string", ErrMalformedCompletion, key)
		}
		values[key] = s
	}

	return &domain.RewriteResult{
		Subject:           values["subject"],
		OriginalGreeting:  values["original_greeting"],
		RewrittenBody:     values["rewritten_body"],
		OriginalSignature: values["original_signature"],
	}, nil
}
