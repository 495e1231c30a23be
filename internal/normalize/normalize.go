// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package normalize turns a CrossRef work message into a canonical
// bibliographic item.
//
// Normalization never fails. Every field resolver treats a missing key or an
// unexpected shape as an absent value. Some fields need secondary registry
// lookups (parent container contributors, place of publication, titles of
// related works); those go through the Fetcher given to the Engine and are
// best effort: a failed lookup leaves the enriched value out.
package normalize

import (
	"context"
	"io"
	"sync"
	"time"

	charmlog "github.com/charmbracelet/log"

	"github.com/pdiddy/doi-fetch/internal/metadata"
	"github.com/pdiddy/doi-fetch/internal/vocab"
	"github.com/pdiddy/doi-fetch/pkg/types"
)

// Fetcher is the registry capability the engine needs for secondary lookups.
// *crossref.Client implements it.
type Fetcher interface {
	Fetch(ctx context.Context, doi string) (metadata.Raw, bool, error)
	Search(ctx context.Context, query string, filterTypes []string) ([]metadata.Raw, error)
}

const defaultRelationConcurrency = 4

// Engine normalizes registry metadata. It holds no per-document state, so
// one Engine may serve concurrent Normalize calls.
type Engine struct {
	fetcher             Fetcher
	logger              *charmlog.Logger
	now                 func() time.Time
	relationConcurrency int
}

// Option configures an Engine.
type Option func(*Engine)

// WithClock sets the clock used for the fetched date.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

// WithRelationConcurrency bounds parallel related-work lookups.
func WithRelationConcurrency(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.relationConcurrency = n
		}
	}
}

// NewEngine returns an engine that issues secondary lookups through f.
// A nil logger discards output.
func NewEngine(f Fetcher, logger *charmlog.Logger, opts ...Option) *Engine {
	if logger == nil {
		logger = charmlog.New(io.Discard)
	}
	e := &Engine{
		fetcher:             f,
		logger:              logger,
		now:                 time.Now,
		relationConcurrency: defaultRelationConcurrency,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// pass carries the state of one Normalize call.
type pass struct {
	*Engine
	ctx    context.Context
	doi    string
	src    metadata.Raw
	crType string
	typ    string

	parentOnce sync.Once
	parent     metadata.Raw
}

// Normalize builds the canonical item for doi from its registry message.
// Fields are resolved in order because the place lookup depends on the
// resolved title.
func (e *Engine) Normalize(ctx context.Context, doi string, src metadata.Raw) *types.BibItem {
	crType, _ := src.Str("type")
	p := &pass{
		Engine: e,
		ctx:    ctx,
		doi:    doi,
		src:    src,
		crType: crType,
		typ:    vocab.DocumentType(crType),
	}

	item := &types.BibItem{
		Type:    p.typ,
		Fetched: e.now().Format(time.DateOnly),
		DocType: crType,
	}
	item.Titles = p.titles()
	item.DocIDs = p.docIDs()
	item.Dates = p.dates()
	item.Links = p.links()
	item.Abstract = p.abstract()
	item.Contributors = p.contributors()
	item.Places = p.places(item.MainTitle())
	item.Relations = p.relations()
	item.Extent = p.extent()
	item.Series = p.series()
	item.Medium = p.medium()
	return item
}

// TitleOnly builds the partial item used for related works: main titles and
// a DOI identifier.
func (e *Engine) TitleOnly(doi string, src metadata.Raw) types.BibItem {
	p := &pass{Engine: e, src: src}
	item := types.BibItem{
		DocIDs: []types.DocumentID{{Type: "DOI", ID: doi}},
	}
	for _, t := range src.Strings("title") {
		item.Titles = append(item.Titles, p.title(t, types.TitleMain))
	}
	return item
}

// year returns the first date component of published, approved, or created.
func (p *pass) year() string {
	for _, key := range []string{"published", "approved", "created"} {
		parts := p.src.Path(key, "date-parts").Items()
		if len(parts) == 0 {
			continue
		}
		if comps := parts[0].AsStrings(); len(comps) > 0 {
			return comps[0]
		}
	}
	return ""
}
