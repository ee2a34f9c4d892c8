package in

import (
	"context"

	"rewrite_server/core/domain"
)

// RewriteService turns raw email text into a rewrite suggestion.
type RewriteService interface {
	// Rewrite returns the structured suggestion for emailText. Errors are
	// *apperr.AppError carrying the caller-facing status and message.
	Rewrite(ctx context.Context, emailText string) (*domain.RewriteResult, error)

	// Ready reports whether the provider credential is configured.
	Ready() bool
}
