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
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/valpere/llmtranslate/internal/detector"
	"github.com/valpere/llmtranslate/internal/httpapi"
	"github.com/valpere/llmtranslate/internal/service"
)

// writeTimeoutMargin leaves room to encode and send the reply after the
// provider call has used its whole timeout.
const writeTimeoutMargin = 30 * time.Second

var (
	readTimeout     time.Duration
	writeTimeout    time.Duration
	shutdownTimeout time.Duration
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the translation HTTP API",
	Long: `Serve POST <prefix>/translate and GET <prefix>/health.

The prefix defaults to /api and is set with API_PREFIX. The server stops
gracefully on SIGINT or SIGTERM.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, logger, err := loadRuntime(os.Stdout)
		if err != nil {
			return err
		}

		effectiveWriteTimeout, err := resolveWriteTimeout(writeTimeout, cfg.Timeout)
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		flush := setupTracing(ctx, cfg, logger)
		defer flush()

		det := detector.New()
		go func() {
			started := time.Now()
			det.Preload()
			logger.Info().Dur("elapsed", time.Since(started)).Msg("language detector ready")
		}()

		svc := service.New(cfg, logger, service.WithDetector(det))
		server := httpapi.NewServer(svc, logger, httpapi.Options{
			Host:            cfg.Server.Host,
			Port:            cfg.Server.Port,
			Prefix:          cfg.Server.Prefix,
			ReadTimeout:     readTimeout,
			WriteTimeout:    effectiveWriteTimeout,
			ShutdownTimeout: shutdownTimeout,
			AllowedOrigins:  cfg.CORSAllowedOriginsList(),
		})
		return server.Start(ctx)
	},
}

// resolveWriteTimeout derives the HTTP write timeout from the provider timeout
// when none is given, and rejects explicit values the provider call could outlive.
func resolveWriteTimeout(explicit, providerTimeout time.Duration) (time.Duration, error) {
	if explicit <= 0 {
		return providerTimeout + writeTimeoutMargin, nil
	}
	if explicit <= providerTimeout {
		return 0, fmt.Errorf("--write-timeout (%s) must exceed LLM_TRANSLATE_TIMEOUT (%s)", explicit, providerTimeout)
	}
	return explicit, nil
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().String("host", "", "Address to listen on (default from HTTP_HOST or 0.0.0.0)")
	serveCmd.Flags().Int("port", 0, "Port to listen on (default from HTTP_PORT or 8080)")
	serveCmd.Flags().DurationVar(&readTimeout, "read-timeout", 10*time.Second, "HTTP read timeout")
	serveCmd.Flags().DurationVar(&writeTimeout, "write-timeout", 0, "HTTP write timeout (default LLM_TRANSLATE_TIMEOUT + 30s; must exceed it)")
	serveCmd.Flags().DurationVar(&shutdownTimeout, "shutdown-timeout", 10*time.Second, "Graceful shutdown timeout")

	_ = settings.BindPFlag("server.host", serveCmd.Flags().Lookup("host"))
	_ = settings.BindPFlag("server.port", serveCmd.Flags().Lookup("port"))
}
