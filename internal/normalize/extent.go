// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package normalize

import (
	"strings"

	"github.com/pdiddy/doi-fetch/internal/vocab"
	"github.com/pdiddy/doi-fetch/pkg/types"
)

func (p *pass) extent() []types.Locality {
	var out []types.Locality
	for _, key := range []string{"volume", "issue"} {
		if v, ok := p.src.Str(key); ok && v != "" {
			out = append(out, types.Locality{Type: key, From: v})
		}
	}
	if page, ok := p.src.Str("page"); ok && page != "" {
		from, to, _ := strings.Cut(page, "-")
		out = append(out, types.Locality{Type: "page", From: from, To: to})
	}
	return out
}

// series derives series from the container titles. Chapters and papers
// are skipped since their container is an includedIn relation. Without an
// own title only the last container title names the series.
func (p *pass) series() []types.Series {
	ct := p.containerTitles()
	if len(ct) == 0 || vocab.SeriesSuppressed(p.typ, p.crType) {
		return nil
	}

	var out []types.Series
	switch {
	case p.hasOwnTitle():
		for _, t := range ct {
			out = append(out, types.Series{Title: t})
		}
	case len(ct) > 1:
		s := types.Series{Title: ct[len(ct)-1]}
		if sct := p.src.Strings("short-container-title"); len(sct) > 0 {
			s.Abbreviation = sct[len(sct)-1]
		}
		out = append(out, s)
	}
	return out
}

func (p *pass) medium() *types.Medium {
	if genre := firstStr(p.src, "degree"); genre != "" {
		return &types.Medium{Genre: genre}
	}
	return nil
}
