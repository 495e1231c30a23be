// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package vocab holds the static tables that map CrossRef vocabulary onto
// canonical bibliographic vocabulary: document types, relation predicates,
// and the fixed type sets that drive enrichment decisions.
package vocab

import "slices"

// documentTypes maps CrossRef work types to canonical document types.
var documentTypes = map[string]string{
	"book-chapter":        "inbook",
	"book-part":           "inbook",
	"book-section":        "inbook",
	"book-series":         "book",
	"book-set":            "book",
	"book-track":          "inbook",
	"component":           "misc",
	"database":            "dataset",
	"dissertation":        "thesis",
	"edited-book":         "book",
	"grant":               "misc",
	"journal-article":     "article",
	"journal-issue":       "article",
	"journal-volume":      "journal",
	"monograph":           "book",
	"other":               "misc",
	"peer-review":         "article",
	"posted-content":      "dataset",
	"proceedings-article": "inproceedings",
	"proceedings-series":  "proceedings",
	"reference-book":      "book",
	"reference-entry":     "inbook",
	"report-component":    "techreport",
	"report-series":       "techreport",
	"report":              "techreport",
}

// relationTypes maps CrossRef relation predicates to canonical relation names.
var relationTypes = map[string]string{
	"is-cited-by":         "isCitedIn",
	"belongs-to":          "related",
	"is-child-of":         "includedIn",
	"is-expression-of":    "expressionOf",
	"has-expression":      "hasExpression",
	"is-manifestation-of": "manifestationOf",
	"is-manuscript-of":    "draftOf",
	"has-manuscript":      "hasDraft",
	"is-preprint-of":      "draftOf",
	"has-preprint":        "hasDraft",
	"is-replaced-by":      "obsoletedBy",
	"replaces":            "obsoletes",
	"is-translation-of":   "translatedFrom",
	"has-translation":     "hasTranslation",
	"is-version-of":       "editionOf",
	"has-version":         "hasEdition",
	"is-based-on":         "updates",
	"is-basis-for":        "updatedBy",
	"is-comment-on":       "commentaryOf",
	"has-comment":         "hasCommentary",
	"is-continued-by":     "hasSuccessor",
	"continues":           "successorOf",
	"is-derived-from":     "derives",
	"has-derivation":      "derivedFrom",
	"is-documented-by":    "describedBy",
	"documents":           "describes",
	"is-part-of":          "partOf",
	"has-part":            "hasPart",
	"is-review-of":        "reviewOf",
	"has-review":          "hasReview",
	"references":          "cites",
	"is-referenced-by":    "isCitedIn",
	"requires":            "hasComplement",
	"is-required-by":      "complementOf",
	"is-supplement-to":    "complementOf",
	"is-supplemented-by":  "hasComplement",
}

// RelatedType is the catch-all relation name for unmapped predicates.
const RelatedType = "related"

// DocumentType returns the canonical type for a CrossRef work type. Unknown
// types pass through unchanged.
func DocumentType(crType string) string {
	if t, ok := documentTypes[crType]; ok {
		return t
	}
	return crType
}

// RelationType returns the canonical relation name for a CrossRef predicate.
// An unmapped predicate becomes RelatedType with the predicate itself as the
// description; mapped predicates have no description.
func RelationType(predicate string) (name, description string) {
	if t, ok := relationTypes[predicate]; ok {
		return t, ""
	}
	return RelatedType, predicate
}

var (
	// parentEnrichedTypes are canonical types whose missing authors or
	// editors are recovered from the parent container.
	parentEnrichedTypes = []string{"inbook", "inproceedings", "dataset"}

	// includedInTypes are CrossRef types whose container-title describes a
	// containing document.
	includedInTypes = []string{
		"book", "book-chapter", "book-part", "book-section", "book-track",
		"dataset", "journal-issue", "journal-value", "proceedings-article",
		"reference-entry", "report-component",
	}

	// seriesSuppressedTypes are canonical types whose container is already
	// described by an includedIn relation.
	seriesSuppressedTypes = []string{"inbook", "incollection", "inproceedings"}

	// ParentSearchTypes filter the parent-container search.
	ParentSearchTypes = []string{"book", "book-set", "edited-book", "monograph", "reference-book"}

	// PlaceSearchTypes filter the place-of-publication search.
	PlaceSearchTypes = []string{"book-chapter", "book-part", "book-section", "book-track"}

	// countries lists second place components recognized as countries.
	countries = []string{"USA"}
)

// ParentEnriched reports whether contributors of the canonical type may be
// borrowed from the parent container.
func ParentEnriched(canonicalType string) bool {
	return slices.Contains(parentEnrichedTypes, canonicalType)
}

// IncludedIn reports whether the CrossRef type yields includedIn relations
// from its container titles.
func IncludedIn(crType string) bool {
	return slices.Contains(includedInTypes, crType)
}

// SeriesSuppressed reports whether series output is skipped for a document.
func SeriesSuppressed(canonicalType, crType string) bool {
	return slices.Contains(seriesSuppressedTypes, canonicalType) || crType == "report-component"
}

// IsCountry reports whether a place component names a country.
func IsCountry(s string) bool {
	return slices.Contains(countries, s)
}
