package translator

import (
	"github.com/valpere/llmtranslate/internal/config"
)

// FromConfig builds the adapter named by cfg.Provider. Unknown names were
// already resolved to the OpenAI adapter by config.Load; ResolveProvider is
// applied again so hand-built configs behave the same way.
func FromConfig(cfg *config.Config) Provider {
	name, _ := config.ResolveProvider(cfg.Provider)

	switch name {
	case config.ProviderAnthropic:
		return NewAnthropicService(cfg.Anthropic.APIKey, cfg.Anthropic.Model, cfg.Anthropic.BaseURL, cfg.Timeout)
	case config.ProviderGoogle:
		return NewGoogleService(cfg.Google.Credentials)
	default:
		return NewOpenAIService(cfg.OpenAI.APIKey, cfg.OpenAI.Model, cfg.OpenAI.BaseURL, cfg.Timeout)
	}
}
