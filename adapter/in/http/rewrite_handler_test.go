package http

import (
	"context"
	"errors"
	"io"
	nethttp "net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"rewrite_server/core/domain"
	"rewrite_server/core/service/rewrite"
	"rewrite_server/infra/middleware"
	"rewrite_server/pkg/apperr"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingProvider struct {
	calls   int
	content string
	err     error
}

func (p *countingProvider) CompleteJSON(_ context.Context, _, _ string) (string, error) {
	p.calls++
	return p.content, p.err
}

const q3Result = `{"subject":"Q3 Numbers Request","original_greeting":"Hi Jane,","rewritten_body":"Hope all is well.\nPlease send the Q3 figures by Friday.","original_signature":"Thanks,\nFred"}`

func newTestApp(p *countingProvider, apiKey string) *fiber.App {
	app := fiber.New(fiber.Config{
		ErrorHandler:          middleware.ErrorHandler(),
		DisableStartupMessage: true,
	})
	svc := rewrite.NewService(p, domain.ProviderConfig{APIKey: apiKey, Model: "gpt-4o", Temperature: 0.5})
	NewRewriteHandler(svc).Register(app)
	NewHealthHandler(svc).Register(app)
	return app
}

func call(t *testing.T, app *fiber.App, method, body string) (int, string) {
	t.Helper()
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, RewritePath, r)
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, string(raw)
}

func TestRewrite_NonPostMethods(t *testing.T) {
	p := &countingProvider{content: q3Result}
	app := newTestApp(p, "sk-test")

	for _, method := range []string{
		nethttp.MethodGet, nethttp.MethodPut, nethttp.MethodPatch,
		nethttp.MethodDelete, nethttp.MethodOptions,
	} {
		t.Run(method, func(t *testing.T) {
			status, body := call(t, app, method, `{"emailText":"hello"}`)
			assert.Equal(t, nethttp.StatusMethodNotAllowed, status)
			assert.JSONEq(t, `{"error":"Method not allowed"}`, body)
		})
	}
	assert.Zero(t, p.calls)
}

func TestRewrite_MissingEmailText(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"no body", ""},
		{"empty object", `{}`},
		{"empty string", `{"emailText":""}`},
		{"null", `{"emailText":null}`},
		{"number", `{"emailText":42}`},
		{"array", `{"emailText":["a"]}`},
		{"not json", `emailText=hello`},
		{"wrong key", `{"email":"hello"}`},
	}

	p := &countingProvider{content: q3Result}
	app := newTestApp(p, "sk-test")

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, body := call(t, app, nethttp.MethodPost, tt.body)
			assert.Equal(t, nethttp.StatusBadRequest, status)
			assert.JSONEq(t, `{"error":"emailText is required"}`, body)
		})
	}
	assert.Zero(t, p.calls)
}

func TestRewrite_MissingAPIKey(t *testing.T) {
	p := &countingProvider{content: q3Result}
	app := newTestApp(p, "")

	for _, body := range []string{`{"emailText":"hello"}`, `{}`, ``, `garbage`} {
		status, got := call(t, app, nethttp.MethodPost, body)
		assert.Equal(t, nethttp.StatusInternalServerError, status)
		assert.JSONEq(t, `{"error":"API key is not configured on the server."}`, got)
	}
	assert.Zero(t, p.calls, "no network call without a credential")
}

func TestRewrite_ProviderFailureIsOpaque(t *testing.T) {
	leak := `error, status code: 401, message: Incorrect API key provided: sk-live-abc`
	p := &countingProvider{err: errors.New(leak)}
	app := newTestApp(p, "sk-test")

	status, body := call(t, app, nethttp.MethodPost, `{"emailText":"hello"}`)

	assert.Equal(t, nethttp.StatusInternalServerError, status)
	assert.JSONEq(t, `{"error":"An error occurred while processing your request."}`, body)
	assert.NotContains(t, body, "sk-live-abc")
	assert.NotContains(t, body, "401")
	assert.Equal(t, 1, p.calls)
}

func TestRewrite_MalformedProviderContent(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"invalid json", `{"subject":"S",`},
		{"missing signature", `{"subject":"S","original_greeting":"","rewritten_body":"B"}`},
		{"missing subject", `{"original_greeting":"","rewritten_body":"B","original_signature":""}`},
		{"plain text", `Hope all is well.`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := &countingProvider{content: tt.content}
			app := newTestApp(p, "sk-test")

			status, body := call(t, app, nethttp.MethodPost, `{"emailText":"hello"}`)
			assert.Equal(t, nethttp.StatusInternalServerError, status)
			assert.JSONEq(t, `{"error":"`+apperr.MsgProcessingFailed+`"}`, body)
			assert.Equal(t, 1, p.calls)
		})
	}
}

func TestRewrite_PassThrough(t *testing.T) {
	p := &countingProvider{content: q3Result}
	app := newTestApp(p, "sk-test")

	status, body := call(t, app, nethttp.MethodPost,
		`{"emailText":"Hi Jane,\nPlease send the Q3 numbers by Friday.\nThanks,\nFred"}`)

	assert.Equal(t, nethttp.StatusOK, status)
	assert.JSONEq(t, q3Result, body)
	assert.Equal(t, 1, p.calls)
}

func TestRewrite_EmptyPartsStayPresent(t *testing.T) {
	content := `{"subject":"Update","original_greeting":"","rewritten_body":"Hope all is well.","original_signature":""}`
	p := &countingProvider{content: content}
	app := newTestApp(p, "sk-test")

	status, body := call(t, app, nethttp.MethodPost, `{"emailText":"quick update"}`)

	assert.Equal(t, nethttp.StatusOK, status)
	assert.JSONEq(t, content, body)
}

func TestRewrite_Idempotent(t *testing.T) {
	p := &countingProvider{content: q3Result}
	app := newTestApp(p, "sk-test")

	s1, b1 := call(t, app, nethttp.MethodPost, `{"emailText":"same"}`)
	s2, b2 := call(t, app, nethttp.MethodPost, `{"emailText":"same"}`)

	assert.Equal(t, nethttp.StatusOK, s1)
	assert.Equal(t, s1, s2)
	assert.JSONEq(t, b1, b2)
	assert.Equal(t, 2, p.calls)
}

func TestHealth(t *testing.T) {
	tests := []struct {
		name   string
		apiKey string
		path   string
		status int
		want   string
	}{
		{"health", "", "/health", nethttp.StatusOK, `"status":"ok"`},
		{"ready configured", "sk-test", "/ready", nethttp.StatusOK, `"provider":"configured"`},
		{"ready missing key", "", "/ready", nethttp.StatusServiceUnavailable, `"provider":"not configured"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := newTestApp(&countingProvider{}, tt.apiKey)

			resp, err := app.Test(httptest.NewRequest(nethttp.MethodGet, tt.path, nil), -1)
			require.NoError(t, err)
			raw, err := io.ReadAll(resp.Body)
			require.NoError(t, err)

			assert.Equal(t, tt.status, resp.StatusCode)
			assert.Contains(t, string(raw), tt.want)
			assert.NotContains(t, string(raw), "sk-test")
		})
	}
}
