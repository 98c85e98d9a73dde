package translator

import (
	"context"
	"errors"
)

// MaxOutputTokens caps the completion length requested from LLM providers.
const MaxOutputTokens = 2048

// ErrProviderUnavailable is returned when a provider cannot be called at all,
// e.g. its API key is missing or its client could not be built. Callers treat
// it as a soft failure.
var ErrProviderUnavailable = errors.New("translation provider unavailable")

// Prompt is the provider-agnostic instruction payload for one request.
type Prompt struct {
	// System is the fixed translator instruction.
	System string
	// User is the JSON serialization of source_lang, target_langs and text.
	User string

	SourceLang  string
	TargetLangs []string
	Text        string
}

// Provider sends a prompt to one upstream API and returns its unparsed reply.
type Provider interface {
	Name() string
	TranslateRaw(ctx context.Context, prompt Prompt) (string, error)
}
