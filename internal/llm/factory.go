package llm

import (
	"context"
	"fmt"
	"log/slog"
)

// NewProvider creates a Provider from configuration. The base provider is
// wrapped as caller → retry → logging → base, so every attempt is journaled.
// A nil journal disables event recording.
func NewProvider(ctx context.Context, cfg Config, journal EventSink, logger *slog.Logger) (Provider, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	var base Provider
	var err error
	switch cfg.Provider {
	case ProviderAnthropic:
		base, err = NewAnthropicProvider(cfg.Anthropic)
	case ProviderOpenAI:
		base, err = NewOpenAIProvider(cfg.OpenAI)
	case ProviderGemini:
		base, err = NewGeminiProvider(ctx, cfg.Gemini)
	case ProviderOpenRouter:
		base, err = NewOpenRouterProvider(cfg.OpenRouter)
	case ProviderOllama:
		base, err = NewOllamaProvider(cfg.Ollama)
	case ProviderMock:
		base = NewMockProvider()
	default:
		return nil, fmt.Errorf("unknown LLM provider: %q", cfg.Provider)
	}
	if err != nil {
		return nil, fmt.Errorf("initializing %s provider: %w", cfg.Provider, err)
	}

	retryCfg := cfg.Retry
	retryCfg.Timeout = cfg.Timeout
	logged := WithLogging(base, journal, logger)
	return WithRetry(logged, retryCfg), nil
}

// NewProviderFromEnv resolves configuration from the environment and builds
// the decorated provider.
func NewProviderFromEnv(ctx context.Context, journal EventSink, logger *slog.Logger) (Provider, Config, error) {
	cfg, err := ResolveConfig()
	if err != nil {
		return nil, Config{}, err
	}
	p, err := NewProvider(ctx, cfg, journal, logger)
	if err != nil {
		return nil, Config{}, err
	}
	return p, cfg, nil
}
