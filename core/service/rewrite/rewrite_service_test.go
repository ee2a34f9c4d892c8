package rewrite

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"testing"

	"rewrite_server/core/agent/llm"
	"rewrite_server/core/domain"
	"rewrite_server/pkg/apperr"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeProvider struct {
	calls   int
	content string
	err     error
	system  string
	user    string
}

func (f *fakeProvider) CompleteJSON(_ context.Context, systemPrompt, userPrompt string) (string, error) {
	f.calls++
	f.system = systemPrompt
	f.user = userPrompt
	return f.content, f.err
}

var configured = domain.ProviderConfig{APIKey: "sk-test", Model: "gpt-4o", Temperature: 0.5}

const validContent = `{"subject":"Q3 Numbers Request","original_greeting":"Hi Jane,","rewritten_body":"Hope all is well.\nPlease send the Q3 figures by Friday.","original_signature":"Thanks,\nFred"}`

func TestService_Rewrite_Success(t *testing.T) {
	p := &fakeProvider{content: validContent}
	svc := NewService(p, configured)
	email := "Hi Jane,\nPlease send the Q3 numbers by Friday.\nThanks,\nFred"

	got, err := svc.Rewrite(context.Background(), email)
	require.NoError(t, err)

	assert.Equal(t, &domain.RewriteResult{
		Subject:           "Q3 Numbers Request",
		OriginalGreeting:  "Hi Jane,",
		RewrittenBody:     "Hope all is well.\nPlease send the Q3 figures by Friday.",
		OriginalSignature: "Thanks,\nFred",
	}, got)
	assert.Equal(t, 1, p.calls)
	assert.Equal(t, llm.BuildRewritePrompt(email), p.system)
	assert.Equal(t, email, p.user)
}

func TestService_Rewrite_MissingKeyBeatsValidation(t *testing.T) {
	p := &fakeProvider{content: validContent}
	svc := NewService(p, domain.ProviderConfig{})

	for _, text := range []string{"", "some email"} {
		_, err := svc.Rewrite(context.Background(), text)
		appErr := apperr.AsAppError(err)
		assert.Equal(t, http.StatusInternalServerError, appErr.Status)
		assert.Equal(t, apperr.MsgMissingAPIKey, appErr.Message)
	}
	assert.Zero(t, p.calls)
	assert.False(t, svc.Ready())
}

func TestService_Rewrite_EmptyText(t *testing.T) {
	p := &fakeProvider{content: validContent}
	svc := NewService(p, configured)

	_, err := svc.Rewrite(context.Background(), "")
	appErr := apperr.AsAppError(err)
	assert.Equal(t, http.StatusBadRequest, appErr.Status)
	assert.Equal(t, "emailText is required", appErr.Message)
	assert.Zero(t, p.calls)
	assert.True(t, svc.Ready())
}

func TestService_Rewrite_Failures(t *testing.T) {
	tests := []struct {
		name     string
		provider *fakeProvider
		cause    error
	}{
		{
			name:     "provider error",
			provider: &fakeProvider{err: errors.New("error, status code: 429, message: Rate limit reached")},
		},
		{
			name:     "no choices",
			provider: &fakeProvider{err: fmt.Errorf("%w: no choices", llm.ErrMalformedCompletion)},
			cause:    llm.ErrMalformedCompletion,
		},
		{
			name:     "invalid json content",
			provider: &fakeProvider{content: `{"subject": "unterminated`},
			cause:    llm.ErrMalformedCompletion,
		},
		{
			name:     "missing key",
			provider: &fakeProvider{content: `{"subject":"S","original_greeting":"","rewritten_body":"B"}`},
			cause:    llm.ErrMalformedCompletion,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewService(tt.provider, configured)

			got, err := svc.Rewrite(context.Background(), "hello")
			require.Error(t, err)
			assert.Nil(t, got)

			appErr := apperr.AsAppError(err)
			assert.Equal(t, http.StatusInternalServerError, appErr.Status)
			assert.Equal(t, apperr.MsgProcessingFailed, appErr.Message)
			assert.False(t, strings.Contains(appErr.Message, "429"))
			if tt.cause != nil {
				assert.ErrorIs(t, err, tt.cause)
			}
			assert.Equal(t, 1, tt.provider.calls)
		})
	}
}

func TestService_Rewrite_Idempotent(t *testing.T) {
	p := &fakeProvider{content: validContent}
	svc := NewService(p, configured)

	first, err := svc.Rewrite(context.Background(), "same text")
	require.NoError(t, err)
	second, err := svc.Rewrite(context.Background(), "same text")
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, 2, p.calls)
}
