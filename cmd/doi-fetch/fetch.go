// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/doi-fetch/internal/crossref"
	"github.com/pdiddy/doi-fetch/internal/logger"
	"github.com/pdiddy/doi-fetch/internal/render"
	"github.com/pdiddy/doi-fetch/internal/resolve"
	"github.com/pdiddy/doi-fetch/pkg/types"
)

var fetchCmd = &cobra.Command{
	Use:   "fetch [identifiers...]",
	Short: "Resolve DOIs into normalized bibliographic records",
	Long: `Fetch looks up each DOI in the CrossRef registry, normalizes the metadata,
and writes the resulting records. Identifiers may carry a "doi:" prefix or be
given as doi.org URLs. Unknown DOIs are reported but are not failures.

Per-identifier status and a summary go to stderr; records go to stdout or
the --output file.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runFetch,
}

func init() {
	fetchCmd.Flags().StringP("format", "f", "", "output format: yaml, json, csl (default yaml)")
	fetchCmd.Flags().StringP("output", "o", "", "write records to file instead of stdout")
	fetchCmd.Flags().Duration("timeout", 0, "HTTP request timeout (default 30s)")
	fetchCmd.Flags().Duration("delay", 0, "delay between consecutive identifiers")
	fetchCmd.Flags().Int("max-retries", 0, "retries after a failed registry request (default 2)")
	fetchCmd.Flags().String("mailto", "", "contact address for the CrossRef polite pool")

	bind := map[string]string{
		"output.format":        "format",
		"registry.timeout":     "timeout",
		"resolve.delay":        "delay",
		"registry.max_retries": "max-retries",
		"registry.mailto":      "mailto",
	}
	for key, flag := range bind {
		_ = viper.BindPFlag(key, fetchCmd.Flags().Lookup(flag))
	}

	rootCmd.AddCommand(fetchCmd)
}

func runFetch(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	log := logger.FromContext(cmd.Context())

	client := crossref.NewClient(cfg.Registry, nil, log)
	resolver := resolve.New(client, cfg.Resolve, log)
	result := resolver.ResolveBatch(cmd.Context(), args, os.Stderr)

	if len(result.Records) > 0 {
		if err := writeRecords(cmd, cfg.Output.Format, result.Records); err != nil {
			return err
		}
	}
	if result.HasFailures() {
		return fmt.Errorf("%d identifier(s) failed", result.Failed)
	}
	return nil
}

func writeRecords(cmd *cobra.Command, format types.OutputFormat, records []types.Record) error {
	var w io.Writer = cmd.OutOrStdout()
	if path, _ := cmd.Flags().GetString("output"); path != "" {
		f, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("creating output file: %w", err)
		}
		defer f.Close()
		w = f
	}
	return render.Write(w, format, records)
}
