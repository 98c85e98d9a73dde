/*
Copyright © 2025 Valentyn Solomko <valentyn.solomko@gmail.com>

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"github.com/valpere/llmtranslate/internal/config"
	"github.com/valpere/llmtranslate/internal/logging"
	"github.com/valpere/llmtranslate/internal/telemetry"
)

// loadEnvFile fills unset environment variables from path. A missing file is
// only an error when the path was given explicitly.
func loadEnvFile(path string, explicit bool) error {
	if path == "" {
		return nil
	}
	err := godotenv.Load(path)
	if err == nil {
		return nil
	}
	if errors.Is(err, fs.ErrNotExist) && !explicit {
		return nil
	}
	return fmt.Errorf("failed to load env file %s: %w", path, err)
}

// loadRuntime resolves configuration and logging shared by every command.
// Logs go to logOut so commands that print results can keep stdout clean.
func loadRuntime(logOut io.Writer) (*config.Config, zerolog.Logger, error) {
	cfg, err := config.Load(settings)
	if err != nil {
		return nil, zerolog.Nop(), err
	}

	logger, err := logging.NewWithWriter(logOut, cfg.Environment, cfg.LogLevel)
	if err != nil {
		return nil, zerolog.Nop(), fmt.Errorf("failed to initialize logger: %w", err)
	}

	if cfg.ProviderFellBack() {
		logger.Warn().
			Str("requested", cfg.RequestedProvider).
			Str("provider", cfg.Provider).
			Msg("unknown translation provider; falling back to default")
	}
	return cfg, logger, nil
}

// setupTracing installs the OTLP exporter when configured. The returned func
// flushes pending spans and never fails the command.
func setupTracing(ctx context.Context, cfg *config.Config, logger zerolog.Logger) func() {
	shutdown, err := telemetry.Setup(ctx, telemetry.Settings{
		ServiceName:    "llmtranslate",
		ServiceVersion: version,
		Endpoint:       cfg.Telemetry.Endpoint,
		Protocol:       cfg.Telemetry.Protocol,
		SamplingRate:   cfg.Telemetry.SamplingRate,
	})
	if err != nil {
		logger.Warn().Err(err).Msg("tracing disabled")
	}
	return func() {
		flushCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdown(flushCtx); err != nil {
			logger.Warn().Err(err).Msg("failed to flush traces")
		}
	}
}
