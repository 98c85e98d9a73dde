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
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/valpere/llmtranslate/internal"
	"github.com/valpere/llmtranslate/internal/service"
)

var (
	inputText   string
	inputFile   string
	outputFile  string
	sourceLang  string
	targetLangs []string
)

var translateCmd = &cobra.Command{
	Use:   "translate",
	Short: "Translate text into one or more languages",
	Long: `Translate text with the configured provider and print a JSON object
mapping every target language to its translation.

Text comes from --text, or from --input ("-" reads stdin).
Pass several targets as --target ru,uk or repeat the flag.
Use --source auto to detect the source language.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if inputText != "" && inputFile != "" {
			return fmt.Errorf("--text and --input are mutually exclusive")
		}
		if inputFile != "" && inputFile == outputFile {
			return fmt.Errorf("input file and output file cannot be the same")
		}

		text, err := readSourceText(cmd.InOrStdin(), inputText, inputFile)
		if err != nil {
			return err
		}

		req, err := internal.TranslationRequest{
			SourceLang:  sourceLang,
			TargetLangs: targetLangs,
			Text:        text,
		}.Normalize()
		if err != nil {
			return err
		}

		cfg, logger, err := loadRuntime(cmd.ErrOrStderr())
		if err != nil {
			return err
		}

		ctx := context.Background()
		flush := setupTracing(ctx, cfg, logger)
		defer flush()

		svc := service.New(cfg, logger)
		result, err := svc.Translate(ctx, req.Text, req.SourceLang, req.TargetLangs)
		if err != nil {
			return fmt.Errorf("translation failed: %w", err)
		}

		if outputFile == "" {
			return writeResult(cmd.OutOrStdout(), result)
		}

		if err := os.MkdirAll(filepath.Dir(outputFile), 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
		f, err := os.Create(outputFile)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer f.Close()
		if err := writeResult(f, result); err != nil {
			return err
		}

		fmt.Fprintf(cmd.ErrOrStderr(), "Translated %s into %d language(s) via %s\n", req.SourceLang, len(result), svc.ProviderName())
		return nil
	},
}

func readSourceText(stdin io.Reader, text, path string) (string, error) {
	switch path {
	case "":
		return text, nil
	case "-":
		data, err := io.ReadAll(stdin)
		if err != nil {
			return "", fmt.Errorf("failed to read stdin: %w", err)
		}
		return string(data), nil
	default:
		data, err := os.ReadFile(path)
		if err != nil {
			return "", fmt.Errorf("failed to read input file: %w", err)
		}
		return string(data), nil
	}
}

// writeResult prints the mapping as indented JSON with non-ASCII text verbatim.
func writeResult(w io.Writer, result map[string]string) error {
	var buf bytes.Buffer
	encoder := json.NewEncoder(&buf)
	encoder.SetEscapeHTML(false)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(result); err != nil {
		return fmt.Errorf("failed to encode result: %w", err)
	}
	if _, err := w.Write(buf.Bytes()); err != nil {
		return fmt.Errorf("failed to write result: %w", err)
	}
	return nil
}

func init() {
	rootCmd.AddCommand(translateCmd)

	translateCmd.Flags().StringVarP(&inputText, "text", "x", "", "Text to translate")
	translateCmd.Flags().StringVarP(&inputFile, "input", "i", "", "Input file to translate (- for stdin)")
	translateCmd.Flags().StringVarP(&outputFile, "output", "o", "", "Output file for the JSON result (default stdout)")
	translateCmd.Flags().StringVarP(&sourceLang, "source", "s", internal.DefaultSourceLang, "Source language code, or auto")
	translateCmd.Flags().StringSliceVarP(&targetLangs, "target", "t", nil, "Target language codes (required)")

	translateCmd.MarkFlagRequired("target")
}
