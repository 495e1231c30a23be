// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package resolve turns identifiers into records: it fetches the registry
// message, normalizes it, and dispatches the record flavor.
package resolve

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	charmlog "github.com/charmbracelet/log"

	"github.com/pdiddy/doi-fetch/internal/flavor"
	"github.com/pdiddy/doi-fetch/internal/normalize"
	"github.com/pdiddy/doi-fetch/pkg/types"
)

// resolverPrefixes are URL forms of a DOI accepted in place of the bare DOI.
var resolverPrefixes = []string{
	"https://doi.org/",
	"http://doi.org/",
	"https://dx.doi.org/",
	"http://dx.doi.org/",
}

// Strip returns the bare DOI: surrounding whitespace, a case-insensitive
// "doi:" scheme, and a doi.org resolver prefix are removed.
func Strip(identifier string) string {
	id := strings.TrimSpace(identifier)
	if len(id) >= 4 && strings.EqualFold(id[:4], "doi:") {
		id = strings.TrimSpace(id[4:])
	}
	for _, p := range resolverPrefixes {
		if len(id) >= len(p) && strings.EqualFold(id[:len(p)], p) {
			return id[len(p):]
		}
	}
	return id
}

// Resolver resolves DOIs against one registry.
type Resolver struct {
	registry normalize.Fetcher
	engine   *normalize.Engine
	logger   *charmlog.Logger

	// Delay is the pause between consecutive identifiers in a batch.
	Delay time.Duration
}

// New builds a resolver whose primary and secondary lookups go through
// registry. A nil logger discards output.
func New(registry normalize.Fetcher, cfg types.ResolveConfig, logger *charmlog.Logger) *Resolver {
	if logger == nil {
		logger = charmlog.New(io.Discard)
	}
	return &Resolver{
		registry: registry,
		engine:   normalize.NewEngine(registry, logger, normalize.WithRelationConcurrency(cfg.RelationConcurrency)),
		logger:   logger,
		Delay:    cfg.Delay,
	}
}

// Resolve fetches and normalizes one identifier. found is false when the
// registry does not know the DOI.
func (r *Resolver) Resolve(ctx context.Context, identifier string) (rec types.Record, found bool, err error) {
	doi := Strip(identifier)
	if doi == "" {
		return types.Record{}, false, fmt.Errorf("empty identifier %q", identifier)
	}

	r.logger.Info("fetching", "doi", doi)
	raw, found, err := r.registry.Fetch(ctx, doi)
	if err != nil {
		return types.Record{}, false, fmt.Errorf("fetching %s: %w", doi, err)
	}
	if !found {
		r.logger.Info("not found", "doi", doi)
		return types.Record{}, false, nil
	}

	item := r.engine.Normalize(ctx, doi, raw)
	rec = flavor.Dispatch(doi, item)
	r.logger.Info("found", "doi", doi, "type", item.Type, "flavor", rec.Flavor)
	return rec, true, nil
}

// BatchResult holds the outcome of a batch resolution run.
type BatchResult struct {
	Found    int
	NotFound int
	Failed   int
	Records  []types.Record
}

// Total returns the total number of identifiers processed.
func (b BatchResult) Total() int {
	return b.Found + b.NotFound + b.Failed
}

// HasFailures reports whether any identifier failed.
func (b BatchResult) HasFailures() bool {
	return b.Failed > 0
}

// ResolveBatch resolves several identifiers, printing per-item status to w
// and returning a summary. It continues after individual failures and
// pauses for Delay between consecutive identifiers. Cancelling ctx stops
// the batch; the remaining identifiers count as failed.
func (r *Resolver) ResolveBatch(ctx context.Context, identifiers []string, w io.Writer) BatchResult {
	var result BatchResult
	for i, id := range identifiers {
		if i > 0 && r.Delay > 0 {
			select {
			case <-ctx.Done():
			case <-time.After(r.Delay):
			}
		}
		if err := ctx.Err(); err != nil {
			fmt.Fprintf(w, "failed:    %s (%v)\n", id, err)
			result.Failed++
			continue
		}

		rec, found, err := r.Resolve(ctx, id)
		switch {
		case err != nil:
			fmt.Fprintf(w, "failed:    %s (%v)\n", id, err)
			result.Failed++
		case !found:
			fmt.Fprintf(w, "not found: %s\n", id)
			result.NotFound++
		default:
			fmt.Fprintf(w, "found:     %s (%s, %s)\n", rec.DOI, rec.Item.Type, rec.Flavor)
			result.Found++
			result.Records = append(result.Records, rec)
		}
	}
	fmt.Fprintf(w, "\nBatch summary: %d found, %d not found, %d failed (total: %d)\n",
		result.Found, result.NotFound, result.Failed, result.Total())
	return result
}
