// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package normalize

import (
	"slices"
	"strings"
	"unicode"

	"github.com/pdiddy/doi-fetch/internal/vocab"
	"github.com/pdiddy/doi-fetch/pkg/types"
)

// places resolves the place of publication. Without a publisher-location
// the registry is searched for a chapter of the same book that carries one.
func (p *pass) places(title string) []types.Place {
	loc, _ := p.src.Str("publisher-location")
	if loc == "" {
		loc = p.fetchLocation(title)
	}
	if loc == "" {
		return nil
	}
	return splitPlace(loc)
}

// splitPlace reads the first two comma-separated parts of loc and
// classifies the second as a country, a region, a duplicate, or another
// city. Further parts are ignored.
func splitPlace(loc string) []types.Place {
	parts := strings.Split(loc, ",")
	first, second := cleanup(parts[0]), ""
	if len(parts) > 1 {
		second = cleanup(parts[1])
	}

	switch {
	case second == "" || second == first:
		return []types.Place{{City: first}}
	case vocab.IsCountry(second):
		return []types.Place{{City: first, Countries: []string{second}}}
	case isUpper(second):
		return []types.Place{{City: first, Regions: []string{second}}}
	default:
		return []types.Place{{City: first}, {City: second}}
	}
}

// isUpper reports whether s has at least one letter and no lower-case ones.
func isUpper(s string) bool {
	cased := false
	for _, r := range s {
		if unicode.IsLower(r) {
			return false
		}
		if unicode.IsUpper(r) {
			cased = true
		}
	}
	return cased
}

func (p *pass) fetchLocation(title string) string {
	if title == "" || p.fetcher == nil {
		return ""
	}
	publisher, _ := p.src.Str("publisher")
	query := joinNonEmpty(" ", title, p.year(), publisher)
	items, err := p.fetcher.Search(p.ctx, query, vocab.PlaceSearchTypes)
	if err != nil {
		p.logger.Warn("place lookup failed", "doi", p.doi, "err", err)
		return ""
	}
	for _, it := range items {
		loc, _ := it.Str("publisher-location")
		if loc != "" && slices.Contains(it.Strings("container-title"), title) {
			return loc
		}
	}
	return ""
}
