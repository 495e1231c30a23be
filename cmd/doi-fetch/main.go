// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the doi-fetch CLI.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/doi-fetch/internal/logger"
	"github.com/pdiddy/doi-fetch/internal/secrets"
	"github.com/pdiddy/doi-fetch/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// loadedSecrets holds registry credentials loaded from .secrets/ at startup.
var loadedSecrets map[string]string

// rootCmd is the base command for the doi-fetch CLI.
var rootCmd = &cobra.Command{
	Use:   "doi-fetch",
	Short: "Fetch and normalize bibliographic metadata for DOIs",
	Long: `doi-fetch resolves DOIs against the CrossRef registry and normalizes the
registry metadata into canonical bibliographic records: titles, identifiers,
dates, contributors, place of publication, relations, extent, and series.

Records are written as YAML (default), JSON, or CSL-YAML.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		level, _ := cmd.Flags().GetString("log-level")
		jsonLogs, _ := cmd.Flags().GetBool("log-json")
		logCfg := logger.DefaultConfig()
		logCfg.Level = logger.LogLevel(level)
		logCfg.JSON = jsonLogs
		log := logger.NewLogger(logCfg)
		cmd.SetContext(logger.ContextWithLogger(cmd.Context(), log))

		secretsDir, _ := cmd.Flags().GetString("secrets-dir")
		s, err := secrets.Load(secretsDir, log)
		if err != nil {
			return err
		}
		loadedSecrets = s
		if len(s) > 0 {
			keys := make([]string, 0, len(s))
			for k := range s {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			log.Debug("loaded secrets", "keys", keys)
		}
		if f := viper.ConfigFileUsed(); f != "" {
			log.Debug("using config file", "path", f)
		}
		return nil
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./doi-fetch.yaml or ~/.config/doi-fetch/doi-fetch.yaml)")
	rootCmd.PersistentFlags().String("secrets-dir", ".secrets/", "directory of credential files")
	rootCmd.PersistentFlags().String("log-level", "info", "log level: debug, info, warn, error, disabled")
	rootCmd.PersistentFlags().Bool("log-json", false, "emit logs as JSON")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("doi-fetch")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "doi-fetch"))
		}
	}

	setDefaults(types.DefaultConfig())
	viper.SetEnvPrefix("DOI_FETCH")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			fmt.Fprintln(os.Stderr, "Error reading config file:", err)
		}
	}
}

// setDefaults registers every config key so environment variables and
// flags can override them.
func setDefaults(d types.Config) {
	viper.SetDefault("registry.timeout", d.Registry.Timeout)
	viper.SetDefault("registry.user_agent", d.Registry.UserAgent)
	viper.SetDefault("registry.base_url", d.Registry.BaseURL)
	viper.SetDefault("registry.max_retries", d.Registry.MaxRetries)
	viper.SetDefault("registry.mailto", d.Registry.Mailto)
	viper.SetDefault("registry.plus_token", d.Registry.PlusToken)
	viper.SetDefault("resolve.relation_concurrency", d.Resolve.RelationConcurrency)
	viper.SetDefault("resolve.delay", d.Resolve.Delay)
	viper.SetDefault("output.format", string(d.Output.Format))
}

// loadConfig decodes the merged viper settings, fills credentials from
// secrets, and validates the result.
func loadConfig() (types.Config, error) {
	cfg := types.DefaultConfig()
	if err := viper.Unmarshal(&cfg); err != nil {
		return types.Config{}, fmt.Errorf("decoding config: %w", err)
	}
	secrets.Apply(&cfg.Registry, loadedSecrets)
	if err := cfg.Validate(); err != nil {
		return types.Config{}, err
	}
	return cfg, nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
