// Package config resolves the process-wide configuration once at startup.
//
// Values come from the environment (optionally pre-populated from a .env file)
// and from command-line flags bound into the same viper instance. The returned
// Config is treated as read-only for the lifetime of the process.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const (
	ProviderOpenAI    = "openai"
	ProviderAnthropic = "anthropic"
	ProviderGoogle    = "google"

	DefaultProvider       = ProviderOpenAI
	DefaultOpenAIModel    = "gpt-4o-mini"
	DefaultAnthropicModel = "claude-sonnet-4"
	DefaultOpenAIBaseURL  = "https://api.openai.com/v1"
	DefaultAnthropicURL   = "https://api.anthropic.com/v1"
	DefaultTimeout        = 60 * time.Second
)

// envBindings maps viper keys to the environment variables that feed them.
var envBindings = map[string]string{
	"environment":                 "ENVIRONMENT",
	"log_level":                   "LOG_LEVEL",
	"provider":                    "LLM_TRANSLATE_PROVIDER",
	"timeout":                     "LLM_TRANSLATE_TIMEOUT",
	"openai.api_key":              "OPENAI_API_KEY",
	"openai.model":                "LLM_OPENAI_MODEL",
	"openai.base_url":             "OPENAI_BASE_URL",
	"anthropic.api_key":           "ANTHROPIC_API_KEY",
	"anthropic.model":             "LLM_ANTHROPIC_MODEL",
	"anthropic.base_url":          "ANTHROPIC_BASE_URL",
	"google.credentials":          "GOOGLE_APPLICATION_CREDENTIALS",
	"server.host":                 "HTTP_HOST",
	"server.port":                 "HTTP_PORT",
	"server.prefix":               "API_PREFIX",
	"server.cors_allowed_origins": "CORS_ALLOWED_ORIGINS",
	"telemetry.endpoint":          "OTEL_EXPORTER_OTLP_ENDPOINT",
	"telemetry.protocol":          "OTEL_EXPORTER_OTLP_PROTOCOL",
	"telemetry.sampling_rate":     "OTEL_TRACES_SAMPLER_ARG",
}

// ProviderSettings holds the credentials and model of one LLM provider.
type ProviderSettings struct {
	APIKey  string
	Model   string
	BaseURL string
}

type GoogleSettings struct {
	Credentials string
}

type ServerSettings struct {
	Host               string
	Port               int
	Prefix             string
	CORSAllowedOrigins string
}

// TelemetrySettings configures trace export; an empty Endpoint disables it.
type TelemetrySettings struct {
	Endpoint     string
	Protocol     string
	SamplingRate float64
}

type Config struct {
	Environment string
	LogLevel    string

	// Provider is the resolved adapter name. RequestedProvider keeps the raw
	// value so callers can report a fallback.
	Provider          string
	RequestedProvider string
	Timeout           time.Duration

	OpenAI    ProviderSettings
	Anthropic ProviderSettings
	Google    GoogleSettings
	Server    ServerSettings
	Telemetry TelemetrySettings
}

// SetDefaults registers default values and environment bindings on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("environment", "local")
	v.SetDefault("log_level", "info")
	v.SetDefault("provider", DefaultProvider)
	v.SetDefault("timeout", DefaultTimeout)
	v.SetDefault("openai.model", DefaultOpenAIModel)
	v.SetDefault("openai.base_url", DefaultOpenAIBaseURL)
	v.SetDefault("anthropic.model", DefaultAnthropicModel)
	v.SetDefault("anthropic.base_url", DefaultAnthropicURL)
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.prefix", "/api")
	v.SetDefault("server.cors_allowed_origins", "")
	v.SetDefault("telemetry.protocol", "http/protobuf")
	v.SetDefault("telemetry.sampling_rate", 1.0)

	for key, env := range envBindings {
		_ = v.BindEnv(key, env)
	}
}

// Load reads the configuration from v. A nil v reads from the environment only.
func Load(v *viper.Viper) (*Config, error) {
	if v == nil {
		v = viper.New()
	}
	SetDefaults(v)

	requested := v.GetString("provider")
	provider, _ := ResolveProvider(requested)

	cfg := &Config{
		Environment:       strings.TrimSpace(v.GetString("environment")),
		LogLevel:          strings.TrimSpace(v.GetString("log_level")),
		Provider:          provider,
		RequestedProvider: strings.TrimSpace(requested),
		Timeout:           v.GetDuration("timeout"),
		OpenAI: ProviderSettings{
			APIKey:  strings.TrimSpace(v.GetString("openai.api_key")),
			Model:   orDefault(v.GetString("openai.model"), DefaultOpenAIModel),
			BaseURL: orDefault(v.GetString("openai.base_url"), DefaultOpenAIBaseURL),
		},
		Anthropic: ProviderSettings{
			APIKey:  strings.TrimSpace(v.GetString("anthropic.api_key")),
			Model:   orDefault(v.GetString("anthropic.model"), DefaultAnthropicModel),
			BaseURL: orDefault(v.GetString("anthropic.base_url"), DefaultAnthropicURL),
		},
		Google: GoogleSettings{
			Credentials: strings.TrimSpace(v.GetString("google.credentials")),
		},
		Server: ServerSettings{
			Host:               strings.TrimSpace(v.GetString("server.host")),
			Port:               v.GetInt("server.port"),
			Prefix:             strings.TrimRight(strings.TrimSpace(v.GetString("server.prefix")), "/"),
			CORSAllowedOrigins: v.GetString("server.cors_allowed_origins"),
		},
		Telemetry: TelemetrySettings{
			Endpoint:     strings.TrimSpace(v.GetString("telemetry.endpoint")),
			Protocol:     strings.TrimSpace(v.GetString("telemetry.protocol")),
			SamplingRate: v.GetFloat64("telemetry.sampling_rate"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if c.Timeout <= 0 {
		return fmt.Errorf("LLM_TRANSLATE_TIMEOUT must be > 0")
	}
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("HTTP_PORT must be between 1 and 65535")
	}
	if c.Server.Prefix != "" && !strings.HasPrefix(c.Server.Prefix, "/") {
		return fmt.Errorf("API_PREFIX must start with /")
	}
	if c.Telemetry.SamplingRate < 0 || c.Telemetry.SamplingRate > 1 {
		return fmt.Errorf("OTEL_TRACES_SAMPLER_ARG must be between 0 and 1")
	}
	return nil
}

// ProviderFellBack reports whether the requested provider was unrecognized
// and the default was used instead.
func (c *Config) ProviderFellBack() bool {
	if c == nil {
		return false
	}
	_, known := ResolveProvider(c.RequestedProvider)
	return !known && c.RequestedProvider != ""
}

func (c *Config) CORSAllowedOriginsList() []string {
	if c == nil {
		return nil
	}

	parts := strings.Split(c.Server.CORSAllowedOrigins, ",")
	origins := make([]string, 0, len(parts))
	seen := make(map[string]struct{}, len(parts))
	for _, part := range parts {
		origin := strings.TrimSpace(part)
		if origin == "" {
			continue
		}
		if _, exists := seen[origin]; exists {
			continue
		}
		seen[origin] = struct{}{}
		origins = append(origins, origin)
	}
	return origins
}

// ResolveProvider maps a raw provider name onto a known adapter. Unknown and
// empty names resolve to the OpenAI adapter; known reports whether raw named
// a supported provider.
func ResolveProvider(raw string) (name string, known bool) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case ProviderOpenAI:
		return ProviderOpenAI, true
	case ProviderAnthropic:
		return ProviderAnthropic, true
	case ProviderGoogle:
		return ProviderGoogle, true
	default:
		return DefaultProvider, false
	}
}

func orDefault(value, fallback string) string {
	if trimmed := strings.TrimSpace(value); trimmed != "" {
		return trimmed
	}
	return fallback
}
