package bootstrap

import (
	"rewrite_server/config"
	"rewrite_server/core/agent/llm"
	"rewrite_server/core/domain"
	"rewrite_server/core/port/out"
	"rewrite_server/core/service/rewrite"
	"rewrite_server/pkg/logger"
)

type Dependencies struct {
	Config *config.Config

	// Provider
	ProviderConfig domain.ProviderConfig
	LLMClient      out.CompletionProvider

	// Services
	RewriteService *rewrite.Service
}

// NewDependencies wires the service graph. A missing API key is not fatal:
// the relay still starts and answers every rewrite with the config error.
func NewDependencies(cfg *config.Config) (*Dependencies, func(), error) {
	deps := &Dependencies{Config: cfg}

	deps.ProviderConfig = domain.ProviderConfig{
		APIKey:         cfg.OpenAIAPIKey,
		BaseURL:        cfg.OpenAIBaseURL,
		Model:          cfg.LLMModel,
		Temperature:    float32(cfg.LLMTemperature),
		CircuitBreaker: cfg.LLMCircuitBreaker,
	}

	if !deps.ProviderConfig.Configured() {
		logger.Warn("OPENAI_API_KEY is not set; rewrite requests will fail until it is configured")
	}

	deps.LLMClient = llm.NewClientWithConfig(llm.ClientConfig{
		Provider: deps.ProviderConfig,
		Timeout:  cfg.LLMTimeout,
	})
	logger.Info("LLM client initialized: %s", deps.ProviderConfig)

	deps.RewriteService = rewrite.NewService(deps.LLMClient, deps.ProviderConfig)

	cleanup := func() {
		logger.Info("Dependencies released")
	}
	return deps, cleanup, nil
}
