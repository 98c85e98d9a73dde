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
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var version = "0.1.0"

const defaultEnvFile = ".env"

var (
	envFile string

	// settings collects environment bindings and command flags for config.Load.
	settings = viper.New()
)

var rootCmd = &cobra.Command{
	Use:   "llmtranslate",
	Short: "Multi-language translation through an LLM provider",
	Long: `llmtranslate forwards text and a list of target language codes to an LLM
provider in a single request and returns a JSON object mapping every
requested code to its translation.

Providers: openai (default), anthropic, google
Select one with LLM_TRANSLATE_PROVIDER; credentials come from the environment.

Use "llmtranslate serve" to run the HTTP API and
"llmtranslate translate --help" for one-off translations.`,
	Version:       version,
	SilenceUsage:  true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return loadEnvFile(envFile, cmd.Flags().Changed("env"))
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&envFile, "env", defaultEnvFile, "Path to the .env file")
}
