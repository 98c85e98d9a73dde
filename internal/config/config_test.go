package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(viper.New())
	require.NoError(t, err)

	assert.Equal(t, ProviderOpenAI, cfg.Provider)
	assert.Equal(t, DefaultOpenAIModel, cfg.OpenAI.Model)
	assert.Equal(t, DefaultAnthropicModel, cfg.Anthropic.Model)
	assert.Equal(t, DefaultOpenAIBaseURL, cfg.OpenAI.BaseURL)
	assert.Equal(t, DefaultTimeout, cfg.Timeout)
	assert.Equal(t, "/api", cfg.Server.Prefix)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "http/protobuf", cfg.Telemetry.Protocol)
	assert.Equal(t, 1.0, cfg.Telemetry.SamplingRate)
	assert.False(t, cfg.ProviderFellBack())
}

func TestLoad_ExplicitValues(t *testing.T) {
	v := viper.New()
	v.Set("provider", " Anthropic ")
	v.Set("anthropic.api_key", "sk-ant")
	v.Set("anthropic.model", "claude-test")
	v.Set("timeout", "5s")
	v.Set("server.prefix", "/v1/")

	cfg, err := Load(v)
	require.NoError(t, err)

	assert.Equal(t, ProviderAnthropic, cfg.Provider)
	assert.Equal(t, "sk-ant", cfg.Anthropic.APIKey)
	assert.Equal(t, "claude-test", cfg.Anthropic.Model)
	assert.Equal(t, 5*time.Second, cfg.Timeout)
	assert.Equal(t, "/v1", cfg.Server.Prefix)
}

func TestLoad_ReadsEnvironment(t *testing.T) {
	t.Setenv("LLM_TRANSLATE_PROVIDER", "anthropic")
	t.Setenv("OPENAI_API_KEY", "sk-openai")
	t.Setenv("LLM_OPENAI_MODEL", "gpt-test")
	t.Setenv("OTEL_EXPORTER_OTLP_ENDPOINT", "http://collector:4318")
	t.Setenv("OTEL_TRACES_SAMPLER_ARG", "0.25")

	cfg, err := Load(nil)
	require.NoError(t, err)

	assert.Equal(t, ProviderAnthropic, cfg.Provider)
	assert.Equal(t, "sk-openai", cfg.OpenAI.APIKey)
	assert.Equal(t, "gpt-test", cfg.OpenAI.Model)
	assert.Equal(t, "http://collector:4318", cfg.Telemetry.Endpoint)
	assert.Equal(t, 0.25, cfg.Telemetry.SamplingRate)
}

func TestLoad_UnknownProviderFallsBackToOpenAI(t *testing.T) {
	v := viper.New()
	v.Set("provider", "mistral")

	cfg, err := Load(v)
	require.NoError(t, err)

	assert.Equal(t, ProviderOpenAI, cfg.Provider)
	assert.Equal(t, "mistral", cfg.RequestedProvider)
	assert.True(t, cfg.ProviderFellBack())
}

func TestLoad_BlankModelUsesDefault(t *testing.T) {
	v := viper.New()
	v.Set("openai.model", "   ")

	cfg, err := Load(v)
	require.NoError(t, err)
	assert.Equal(t, DefaultOpenAIModel, cfg.OpenAI.Model)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value any
	}{
		{name: "zero timeout", key: "timeout", value: "0s"},
		{name: "port too large", key: "server.port", value: 70000},
		{name: "relative prefix", key: "server.prefix", value: "api"},
		{name: "sampling rate above one", key: "telemetry.sampling_rate", value: 1.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := viper.New()
			v.Set(tt.key, tt.value)

			_, err := Load(v)
			assert.Error(t, err)
		})
	}
}

func TestResolveProvider(t *testing.T) {
	tests := []struct {
		raw       string
		wantName  string
		wantKnown bool
	}{
		{raw: "openai", wantName: ProviderOpenAI, wantKnown: true},
		{raw: "ANTHROPIC", wantName: ProviderAnthropic, wantKnown: true},
		{raw: "google", wantName: ProviderGoogle, wantKnown: true},
		{raw: "", wantName: ProviderOpenAI, wantKnown: false},
		{raw: "cohere", wantName: ProviderOpenAI, wantKnown: false},
	}

	for _, tt := range tests {
		name, known := ResolveProvider(tt.raw)
		assert.Equal(t, tt.wantName, name, "raw=%q", tt.raw)
		assert.Equal(t, tt.wantKnown, known, "raw=%q", tt.raw)
	}
}

func TestCORSAllowedOriginsList(t *testing.T) {
	cfg := &Config{Server: ServerSettings{CORSAllowedOrigins: " https://a.example, ,https://b.example,https://a.example"}}
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORSAllowedOriginsList())
}
