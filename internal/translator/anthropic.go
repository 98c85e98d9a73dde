package translator

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
)

const anthropicVersion = "2023-06-01"

// AnthropicService calls the Anthropic messages API.
type AnthropicService struct {
	apiKey string
	model  string
	client *resty.Client
}

func NewAnthropicService(apiKey, model, baseURL string, timeout time.Duration) *AnthropicService {
	return &AnthropicService{
		apiKey: apiKey,
		model:  model,
		client: newRESTClient(baseURL, timeout),
	}
}

func (s *AnthropicService) Name() string {
	return "anthropic"
}

type anthropicMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type anthropicRequest struct {
	Model     string             `json:"model"`
	MaxTokens int                `json:"max_tokens"`
	System    string             `json:"system,omitempty"`
	Messages  []anthropicMessage `json:"messages"`
}

type anthropicResponse struct {
	Content []json.RawMessage `json:"content"`
}

func (s *AnthropicService) TranslateRaw(ctx context.Context, prompt Prompt) (string, error) {
	if s.apiKey == "" {
		return "", fmt.Errorf("%s: ANTHROPIC_API_KEY not set: %w", s.Name(), ErrProviderUnavailable)
	}
	if s.client == nil {
		return "", fmt.Errorf("%s: client not configured: %w", s.Name(), ErrProviderUnavailable)
	}

	body := anthropicRequest{
		Model:     s.model,
		MaxTokens: MaxOutputTokens,
		System:    prompt.System,
		Messages: []anthropicMessage{
			{Role: "user", Content: prompt.User},
		},
	}

	var parsed anthropicResponse
	resp, err := s.client.R().
		SetContext(ctx).
		SetHeader("x-api-key", s.apiKey).
		SetHeader("anthropic-version", anthropicVersion).
		SetBody(body).
		SetResult(&parsed).
		Post("/messages")
	if err != nil {
		return "", fmt.Errorf("%s: request failed: %w", s.Name(), err)
	}
	if resp.IsError() {
		return "", statusError(s.Name(), resp)
	}

	if len(parsed.Content) == 0 {
		return "", nil
	}
	return contentBlockText(parsed.Content[0]), nil
}

// contentBlockText reads the text of one content block. Blocks normally are
// objects with a "text" field; a bare JSON string is accepted as well.
func contentBlockText(block json.RawMessage) string {
	var typed struct {
		Text *string `json:"text"`
	}
	if err := json.Unmarshal(block, &typed); err == nil && typed.Text != nil {
		return *typed.Text
	}

	var plain string
	if err := json.Unmarshal(block, &plain); err == nil {
		return plain
	}
	return ""
}
