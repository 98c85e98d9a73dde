package translator

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	translate "cloud.google.com/go/translate"
	"golang.org/x/sync/errgroup"
	"golang.org/x/text/language"
	"google.golang.org/api/option"
)

// googleClient is the subset of *translate.Client used by GoogleService.
type googleClient interface {
	Translate(ctx context.Context, inputs []string, target language.Tag, opts *translate.Options) ([]translate.Translation, error)
	Close() error
}

type googleClientFactory func(ctx context.Context, opts ...option.ClientOption) (googleClient, error)

func newGoogleClient(ctx context.Context, opts ...option.ClientOption) (googleClient, error) {
	client, err := translate.NewClient(ctx, opts...)
	if err != nil {
		return nil, err
	}
	return client, nil
}

// GoogleService translates through the Cloud Translation API. It ignores the
// instruction text and answers with a JSON object in the same shape the LLM
// providers are asked for, so replies share one parser.
type GoogleService struct {
	credentials string
	newClient   googleClientFactory
}

func NewGoogleService(credentials string) *GoogleService {
	return &GoogleService{
		credentials: credentials,
		newClient:   newGoogleClient,
	}
}

func (s *GoogleService) Name() string {
	return "google"
}

func (s *GoogleService) TranslateRaw(ctx context.Context, prompt Prompt) (string, error) {
	if s.newClient == nil {
		return "", fmt.Errorf("%s: client not configured: %w", s.Name(), ErrProviderUnavailable)
	}

	opts := []option.ClientOption{}
	if s.credentials != "" {
		opts = append(opts, option.WithCredentialsFile(s.credentials))
	}

	client, err := s.newClient(ctx, opts...)
	if err != nil {
		return "", fmt.Errorf("%s: failed to create client: %v: %w", s.Name(), err, ErrProviderUnavailable)
	}
	defer client.Close()

	translateOpts := &translate.Options{Format: translate.Text}
	if source := strings.TrimSpace(prompt.SourceLang); source != "" && !strings.EqualFold(source, "auto") {
		if tag, err := language.Parse(source); err == nil {
			translateOpts.Source = tag
		}
	}

	results := make([]string, len(prompt.TargetLangs))
	g, gctx := errgroup.WithContext(ctx)
	for i, target := range prompt.TargetLangs {
		tag, err := language.Parse(target)
		if err != nil {
			// Unknown codes stay empty, like a language the model skipped.
			continue
		}
		g.Go(func() error {
			translations, err := client.Translate(gctx, []string{prompt.Text}, tag, translateOpts)
			if err != nil {
				return fmt.Errorf("%s: translate to %s: %w", s.Name(), target, err)
			}
			if len(translations) > 0 {
				results[i] = translations[0].Text
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return "", err
	}

	reply := make(map[string]string, len(results))
	for i, target := range prompt.TargetLangs {
		if _, seen := reply[target]; !seen || results[i] != "" {
			reply[target] = results[i]
		}
	}

	encoded, err := json.Marshal(reply)
	if err != nil {
		return "", fmt.Errorf("%s: encode reply: %w", s.Name(), err)
	}
	return string(encoded), nil
}
