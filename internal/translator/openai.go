package translator

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
)

const openAITemperature = 0.2

// OpenAIService calls an OpenAI-compatible chat completions endpoint.
type OpenAIService struct {
	apiKey string
	model  string
	client *resty.Client
}

func NewOpenAIService(apiKey, model, baseURL string, timeout time.Duration) *OpenAIService {
	return &OpenAIService{
		apiKey: apiKey,
		model:  model,
		client: newRESTClient(baseURL, timeout),
	}
}

func (s *OpenAIService) Name() string {
	return "openai"
}

type openAIMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type openAIResponseFormat struct {
	Type string `json:"type"`
}

type openAIRequest struct {
	Model               string               `json:"model"`
	Messages            []openAIMessage      `json:"messages"`
	Temperature         float64              `json:"temperature"`
	MaxCompletionTokens int                  `json:"max_completion_tokens"`
	ResponseFormat      openAIResponseFormat `json:"response_format"`
}

type openAIResponse struct {
	Choices []struct {
		Message struct {
			Content *string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

func (s *OpenAIService) TranslateRaw(ctx context.Context, prompt Prompt) (string, error) {
	if s.apiKey == "" {
		return "", fmt.Errorf("%s: OPENAI_API_KEY not set: %w", s.Name(), ErrProviderUnavailable)
	}
	if s.client == nil {
		return "", fmt.Errorf("%s: client not configured: %w", s.Name(), ErrProviderUnavailable)
	}

	body := openAIRequest{
		Model: s.model,
		Messages: []openAIMessage{
			{Role: "system", Content: prompt.System},
			{Role: "user", Content: prompt.User},
		},
		Temperature:         openAITemperature,
		MaxCompletionTokens: MaxOutputTokens,
		ResponseFormat:      openAIResponseFormat{Type: "json_object"},
	}

	var parsed openAIResponse
	resp, err := s.client.R().
		SetContext(ctx).
		SetAuthToken(s.apiKey).
		SetBody(body).
		SetResult(&parsed).
		Post("/chat/completions")
	if err != nil {
		return "", fmt.Errorf("%s: request failed: %w", s.Name(), err)
	}
	if resp.IsError() {
		return "", statusError(s.Name(), resp)
	}

	if len(parsed.Choices) == 0 || parsed.Choices[0].Message.Content == nil {
		return "", nil
	}
	return *parsed.Choices[0].Message.Content, nil
}
