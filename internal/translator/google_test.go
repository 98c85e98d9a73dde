package translator

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"

	translate "cloud.google.com/go/translate"
	"golang.org/x/text/language"
	"google.golang.org/api/option"
)

type fakeGoogleClient struct {
	mu      sync.Mutex
	targets []language.Tag
	opts    *translate.Options
	fail    map[string]error
	closed  bool
}

func (f *fakeGoogleClient) Translate(ctx context.Context, inputs []string, target language.Tag, opts *translate.Options) ([]translate.Translation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.targets = append(f.targets, target)
	f.opts = opts
	if err := f.fail[target.String()]; err != nil {
		return nil, err
	}
	return []translate.Translation{{Text: inputs[0] + "@" + target.String()}}, nil
}

func (f *fakeGoogleClient) Close() error {
	f.closed = true
	return nil
}

func newFakeGoogleService(client *fakeGoogleClient) *GoogleService {
	return &GoogleService{
		newClient: func(ctx context.Context, opts ...option.ClientOption) (googleClient, error) {
			return client, nil
		},
	}
}

func TestGoogleService_TranslateRaw_Success(t *testing.T) {
	client := &fakeGoogleClient{}
	svc := newFakeGoogleService(client)

	prompt := testPrompt()
	prompt.TargetLangs = []string{"ru", "not a tag!", "uk"}

	raw, err := svc.TranslateRaw(context.Background(), prompt)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var got map[string]string
	if err := json.Unmarshal([]byte(raw), &got); err != nil {
		t.Fatalf("reply is not a JSON object: %v", err)
	}
	want := map[string]string{"ru": "Hello@ru", "uk": "Hello@uk", "not a tag!": ""}
	for lang, text := range want {
		if got[lang] != text {
			t.Errorf("expected %s=%q, got %q", lang, text, got[lang])
		}
	}

	if len(client.targets) != 2 {
		t.Errorf("expected 2 upstream calls, got %d", len(client.targets))
	}
	if client.opts == nil || client.opts.Source.String() != "en" || client.opts.Format != translate.Text {
		t.Errorf("unexpected options %+v", client.opts)
	}
	if !client.closed {
		t.Error("expected client to be closed")
	}
}

func TestGoogleService_TranslateRaw_AutoSourceLang(t *testing.T) {
	client := &fakeGoogleClient{}
	svc := newFakeGoogleService(client)

	prompt := testPrompt()
	prompt.SourceLang = "auto"
	prompt.TargetLangs = []string{"de"}

	if _, err := svc.TranslateRaw(context.Background(), prompt); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if client.opts.Source.String() != "und" {
		t.Errorf("expected undetermined source, got %v", client.opts.Source)
	}
}

func TestGoogleService_TranslateRaw_UpstreamError(t *testing.T) {
	client := &fakeGoogleClient{fail: map[string]error{"uk": errors.New("quota exceeded")}}
	svc := newFakeGoogleService(client)

	_, err := svc.TranslateRaw(context.Background(), testPrompt())
	if err == nil {
		t.Fatal("expected error when one language fails")
	}
	if errors.Is(err, ErrProviderUnavailable) {
		t.Error("upstream errors must not be reported as unavailable")
	}
}

func TestGoogleService_TranslateRaw_ClientUnavailable(t *testing.T) {
	svc := &GoogleService{
		newClient: func(ctx context.Context, opts ...option.ClientOption) (googleClient, error) {
			return nil, errors.New("could not find default credentials")
		},
	}

	_, err := svc.TranslateRaw(context.Background(), testPrompt())
	if !errors.Is(err, ErrProviderUnavailable) {
		t.Fatalf("expected ErrProviderUnavailable, got %v", err)
	}
}

func TestGoogleService_Name(t *testing.T) {
	svc := NewGoogleService("")

	if svc.Name() != "google" {
		t.Errorf("expected 'google', got %q", svc.Name())
	}
}
