package rewrite

import (
	"context"
	"errors"
	"time"

	"rewrite_server/core/agent/llm"
	"rewrite_server/core/domain"
	"rewrite_server/core/port/out"
	"rewrite_server/pkg/apperr"
	"rewrite_server/pkg/logger"
	"rewrite_server/pkg/metrics"
)

const providerName = "openai"

type Service struct {
	provider out.CompletionProvider
	cfg      domain.ProviderConfig
}

func NewService(provider out.CompletionProvider, cfg domain.ProviderConfig) *Service {
	return &Service{
		provider: provider,
		cfg:      cfg,
	}
}

// Ready reports whether the provider credential is configured.
func (s *Service) Ready() bool {
	return s.cfg.Configured()
}

// Rewrite checks configuration, then input, then makes exactly one provider
// call and decodes its content. Configuration is checked first so a server
// without a credential answers 500 whatever the body holds.
func (s *Service) Rewrite(ctx context.Context, emailText string) (*domain.RewriteResult, error) {
	if !s.cfg.Configured() {
		return nil, apperr.ErrMissingAPIKey
	}
	if emailText == "" {
		return nil, apperr.MissingField("emailText")
	}

	log := logger.WithContext(ctx).WithField("model", s.cfg.Model)

	start := time.Now()
	content, err := s.provider.CompleteJSON(ctx, llm.BuildRewritePrompt(emailText), emailText)
	if err != nil {
		outcome := metrics.OutcomeProviderError
		if errors.Is(err, llm.ErrMalformedCompletion) {
			outcome = metrics.OutcomeDecodeError
		}
		metrics.RecordProviderCall(outcome, time.Since(start))
		log.WithError(err).
			WithField("provider_status", llm.StatusCode(err)).
			WithDuration(time.Since(start)).
			Error("completion provider request failed")
		return nil, apperr.ExternalError(providerName, err)
	}

	result, err := llm.DecodeRewrite(content)
	if err != nil {
		metrics.RecordProviderCall(metrics.OutcomeDecodeError, time.Since(start))
		log.WithError(err).
			WithField("content_length", len(content)).
			Error("completion provider returned unusable content")
		return nil, apperr.ExternalError(providerName, err)
	}

	metrics.RecordProviderCall(metrics.OutcomeOK, time.Since(start))
	log.WithDuration(time.Since(start)).Debug("rewrite completed")
	return result, nil
}
