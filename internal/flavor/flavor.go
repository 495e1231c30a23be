// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package flavor picks the record variant for a resolved DOI. Registries
// publish under distinct DOI prefixes, so an ordered list of patterns is
// enough; the first match wins and anything else is generic.
package flavor

import (
	"regexp"

	"github.com/pdiddy/doi-fetch/pkg/types"
)

type rule struct {
	pattern *regexp.Regexp
	flavor  types.Flavor
}

var rules = []rule{
	{regexp.MustCompile(`(?i)/nist`), types.FlavorNIST},
	{regexp.MustCompile(`(?i)/rfc\d+`), types.FlavorIETF},
	{regexp.MustCompile(`(?i)/0026-1394/`), types.FlavorBIPM},
	{regexp.MustCompile(`(?i)/ieee`), types.FlavorIEEE},
}

// Of returns the flavor for doi.
func Of(doi string) types.Flavor {
	for _, r := range rules {
		if r.pattern.MatchString(doi) {
			return r.flavor
		}
	}
	return types.FlavorGeneric
}

// Dispatch wraps item in the record variant selected by doi.
func Dispatch(doi string, item *types.BibItem) types.Record {
	return types.Record{DOI: doi, Flavor: Of(doi), Item: item}
}
