package http

import (
	"rewrite_server/core/domain"
	"rewrite_server/core/port/in"
	"rewrite_server/pkg/apperr"
	"rewrite_server/pkg/metrics"
	"rewrite_server/pkg/response"

	"github.com/goccy/go-json"
	"github.com/gofiber/fiber/v2"
)

// RewritePath is the single rewrite endpoint.
const RewritePath = "/api/rewrite"

type RewriteHandler struct {
	service in.RewriteService
}

func NewRewriteHandler(service in.RewriteService) *RewriteHandler {
	return &RewriteHandler{service: service}
}

// Register binds the endpoint for every method; non-POST requests are
// rejected inside the handler so they get the relay's own 405 body.
func (h *RewriteHandler) Register(app fiber.Router) {
	app.All(RewritePath, h.Rewrite)
}

// Rewrite handles POST /api/rewrite
// Body: { "emailText": "..." }
func (h *RewriteHandler) Rewrite(c *fiber.Ctx) error {
	if c.Method() != fiber.MethodPost {
		return h.fail(apperr.MethodNotAllowed(c.Method()))
	}

	result, err := h.service.Rewrite(c.UserContext(), emailText(c.Body()))
	if err != nil {
		return h.fail(err)
	}

	metrics.RecordRewrite(fiber.StatusOK)
	return response.OK(c, result)
}

func (h *RewriteHandler) fail(err error) error {
	metrics.RecordRewrite(apperr.GetHTTPStatus(err))
	return err
}

// emailText pulls emailText out of the body. A body that is not JSON, or an
// emailText that is not a string, yields "" and fails validation downstream.
func emailText(body []byte) string {
	var req domain.RewriteRequest
	if err := json.Unmarshal(body, &req); err != nil {
		return ""
	}
	return req.EmailText
}
