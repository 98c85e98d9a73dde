// Package service runs one translation request end to end: it builds the
// instruction payload, calls the configured provider and parses the reply.
package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/text/unicode/norm"

	"github.com/valpere/llmtranslate/internal"
	"github.com/valpere/llmtranslate/internal/config"
	"github.com/valpere/llmtranslate/internal/detector"
	"github.com/valpere/llmtranslate/internal/postprocess"
	"github.com/valpere/llmtranslate/internal/translator"
)

const tracerName = "github.com/valpere/llmtranslate/internal/service"

type Service struct {
	provider translator.Provider
	detector *detector.Detector
	timeout  time.Duration
	logger   zerolog.Logger
	tracer   trace.Tracer
}

type Option func(*Service)

// WithProvider replaces the adapter selected from the configuration.
func WithProvider(p translator.Provider) Option {
	return func(s *Service) {
		s.provider = p
	}
}

func WithDetector(d *detector.Detector) Option {
	return func(s *Service) {
		s.detector = d
	}
}

func WithTracer(t trace.Tracer) Option {
	return func(s *Service) {
		s.tracer = t
	}
}

func New(cfg *config.Config, logger zerolog.Logger, opts ...Option) *Service {
	s := &Service{
		timeout: cfg.Timeout,
		logger:  logger,
		tracer:  otel.Tracer(tracerName),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.provider == nil {
		s.provider = translator.FromConfig(cfg)
	}
	if s.detector == nil {
		s.detector = detector.New()
	}
	if s.timeout <= 0 {
		s.timeout = config.DefaultTimeout
	}
	return s
}

func (s *Service) ProviderName() string {
	return s.provider.Name()
}

// Translate returns one entry per target language. Provider unavailability
// and malformed replies degrade to empty strings; any other failure is
// returned as an error.
func (s *Service) Translate(ctx context.Context, text, sourceLang string, targetLangs []string) (result map[string]string, err error) {
	targets := internal.NormalizeLangs(targetLangs)
	if len(targets) == 0 {
		return map[string]string{}, nil
	}

	ctx, span := s.tracer.Start(ctx, "translation.translate", trace.WithAttributes(
		attribute.String("translation.provider", s.provider.Name()),
		attribute.Int("translation.target_count", len(targets)),
		attribute.Int("translation.text_length", len(text)),
	))
	defer func() { finishSpan(span, err) }()

	text = norm.NFC.String(text)
	sourceLang = s.detector.ResolveSource(sourceLang, text)
	span.SetAttributes(attribute.String("translation.source_lang", sourceLang))

	prompt, err := buildPrompt(text, sourceLang, targets)
	if err != nil {
		return nil, err
	}

	callCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	started := time.Now()
	raw, err := s.provider.TranslateRaw(callCtx, prompt)
	latency := time.Since(started)
	if err != nil {
		if errors.Is(err, translator.ErrProviderUnavailable) {
			s.logger.Warn().
				Err(err).
				Str("provider", s.provider.Name()).
				Msg("translation provider unavailable; returning empty translations")
			return postprocess.EmptyResult(targets), nil
		}
		return nil, fmt.Errorf("translate via %s: %w", s.provider.Name(), err)
	}

	result, parseErr := postprocess.ParseTranslations(raw, targets)
	if parseErr != nil {
		s.logger.Warn().
			Err(parseErr).
			Str("provider", s.provider.Name()).
			Int("raw_length", len(raw)).
			Msg("failed to parse provider response as JSON")
		span.AddEvent("malformed provider response")
	}

	s.logger.Debug().
		Str("provider", s.provider.Name()).
		Str("source_lang", sourceLang).
		Strs("target_langs", targets).
		Dur("latency", latency).
		Msg("translation completed")

	return result, nil
}

func finishSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}
