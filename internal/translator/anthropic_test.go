package translator

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestAnthropicService_TranslateRaw_NoAPIKey(t *testing.T) {
	svc := NewAnthropicService("", "claude-sonnet-4", "http://127.0.0.1:0", time.Second)

	raw, err := svc.TranslateRaw(context.Background(), testPrompt())
	if !errors.Is(err, ErrProviderUnavailable) {
		t.Fatalf("expected ErrProviderUnavailable, got %v", err)
	}
	if raw != "" {
		t.Errorf("expected empty raw reply, got %q", raw)
	}
}

func TestAnthropicService_TranslateRaw_Success(t *testing.T) {
	var got anthropicRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/messages" {
			t.Errorf("expected /messages, got %s", r.URL.Path)
		}
		if key := r.Header.Get("x-api-key"); key != "test-key" {
			t.Errorf("expected x-api-key header, got %q", key)
		}
		if version := r.Header.Get("anthropic-version"); version != anthropicVersion {
			t.Errorf("expected anthropic-version %s, got %q", anthropicVersion, version)
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Fatalf("failed to decode request: %v", err)
		}

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"content":[{"type":"text","text":"{\"ru\":\"X\"}"},{"type":"text","text":"ignored"}]}`))
	}))
	defer server.Close()

	svc := NewAnthropicService("test-key", "claude-test", server.URL, time.Second)

	raw, err := svc.TranslateRaw(context.Background(), testPrompt())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if raw != `{"ru":"X"}` {
		t.Errorf("unexpected raw reply %q", raw)
	}

	if got.Model != "claude-test" {
		t.Errorf("expected model claude-test, got %q", got.Model)
	}
	if got.MaxTokens != 2048 {
		t.Errorf("expected max_tokens 2048, got %d", got.MaxTokens)
	}
	if got.System != "system instruction" {
		t.Errorf("expected system parameter, got %q", got.System)
	}
	if len(got.Messages) != 1 || got.Messages[0].Role != "user" {
		t.Fatalf("expected a single user message, got %+v", got.Messages)
	}
}

func TestAnthropicService_TranslateRaw_ContentShapes(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{name: "no content", body: `{"content":[]}`, want: ""},
		{name: "missing content", body: `{}`, want: ""},
		{name: "string block", body: `{"content":["{\"ru\":\"X\"}"]}`, want: `{"ru":"X"}`},
		{name: "block without text", body: `{"content":[{"type":"tool_use","id":"t1"}]}`, want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				w.Write([]byte(tt.body))
			}))
			defer server.Close()

			svc := NewAnthropicService("test-key", "claude-test", server.URL, time.Second)

			raw, err := svc.TranslateRaw(context.Background(), testPrompt())
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if raw != tt.want {
				t.Errorf("expected %q, got %q", tt.want, raw)
			}
		})
	}
}

func TestAnthropicService_TranslateRaw_APIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte("overloaded"))
	}))
	defer server.Close()

	svc := NewAnthropicService("test-key", "claude-test", server.URL, time.Second)

	if _, err := svc.TranslateRaw(context.Background(), testPrompt()); err == nil {
		t.Fatal("expected error for non-OK status")
	}
}

func TestAnthropicService_Name(t *testing.T) {
	svc := NewAnthropicService("", "", "", time.Second)

	if svc.Name() != "anthropic" {
		t.Errorf("expected 'anthropic', got %q", svc.Name())
	}
}
