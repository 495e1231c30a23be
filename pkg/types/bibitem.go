// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines the shared data structures of doi-fetch: the
// canonical bibliographic item produced by normalization, the resolved
// record handed to renderers, and the configuration.
package types

// TitleType classifies a title within a BibItem. Main titles precede
// subtitles, which precede short titles.
type TitleType string

const (
	TitleMain     TitleType = "main"
	TitleSubtitle TitleType = "subtitle"
	TitleShort    TitleType = "short"
)

// Title is one typed title string.
type Title struct {
	Type    TitleType `json:"type,omitempty" yaml:"type,omitempty"`
	Content string    `json:"content" yaml:"content"`
	Script  string    `json:"script,omitempty" yaml:"script,omitempty"`
}

// DocumentID is an identifier of a document (DOI, ISBN, ISSN).
type DocumentID struct {
	// Type is the identifier scheme, e.g. "DOI", "ISBN", "issn.print".
	Type string `json:"type" yaml:"type"`

	// ID is the identifier value as returned by the registry.
	ID string `json:"id" yaml:"id"`

	// Primary marks the DOI used for the top-level fetch.
	Primary bool `json:"primary,omitempty" yaml:"primary,omitempty"`
}

// BibDate is a typed date with components joined by "-".
type BibDate struct {
	Type string `json:"type" yaml:"type"`
	On   string `json:"on" yaml:"on"`
}

// Link is a typed URI: "DOI", "pdf", or "src".
type Link struct {
	Type string `json:"type" yaml:"type"`
	URL  string `json:"url" yaml:"url"`
}

// Abstract holds the document abstract verbatim.
type Abstract struct {
	Content  string `json:"content" yaml:"content"`
	Format   string `json:"format" yaml:"format"`
	Language string `json:"language,omitempty" yaml:"language,omitempty"`
	Script   string `json:"script,omitempty" yaml:"script,omitempty"`
}

// RoleType is the closed vocabulary of contributor roles.
type RoleType string

const (
	RoleAuthor     RoleType = "author"
	RoleEditor     RoleType = "editor"
	RoleTranslator RoleType = "translator"
	RolePublisher  RoleType = "publisher"
	RoleAuthorizer RoleType = "authorizer"
	RoleEnabler    RoleType = "enabler"
)

// Role is a contributor role with an optional free-text description
// (e.g. "lead investigator").
type Role struct {
	Type        RoleType `json:"type" yaml:"type"`
	Description string   `json:"description,omitempty" yaml:"description,omitempty"`
}

// Organization is a corporate contributor or an affiliation.
type Organization struct {
	Name         string `json:"name" yaml:"name"`
	Abbreviation string `json:"abbreviation,omitempty" yaml:"abbreviation,omitempty"`
}

// FullName is a structured personal name.
type FullName struct {
	Surname   string   `json:"surname,omitempty" yaml:"surname,omitempty"`
	Forenames []string `json:"forenames,omitempty" yaml:"forenames,omitempty"`
	Prefix    []string `json:"prefix,omitempty" yaml:"prefix,omitempty"`
	Addition  []string `json:"addition,omitempty" yaml:"addition,omitempty"`

	// Complete is the display name when the registry supplies one.
	Complete string `json:"complete,omitempty" yaml:"complete,omitempty"`
}

// PersonID is an external identifier of a person, such as an ORCID.
type PersonID struct {
	Type  string `json:"type" yaml:"type"`
	Value string `json:"value" yaml:"value"`
}

// Person is an individual contributor.
type Person struct {
	Name         FullName       `json:"name" yaml:"name"`
	Affiliations []Organization `json:"affiliations,omitempty" yaml:"affiliations,omitempty"`
	Identifiers  []PersonID     `json:"identifiers,omitempty" yaml:"identifiers,omitempty"`
}

// Contributor links a person or an organization to a document through a
// role. Exactly one of Person and Organization is set.
type Contributor struct {
	Person       *Person       `json:"person,omitempty" yaml:"person,omitempty"`
	Organization *Organization `json:"organization,omitempty" yaml:"organization,omitempty"`
	Role         Role          `json:"role" yaml:"role"`
}

// Place is a place of publication.
type Place struct {
	City      string   `json:"city" yaml:"city"`
	Regions   []string `json:"regions,omitempty" yaml:"regions,omitempty"`
	Countries []string `json:"countries,omitempty" yaml:"countries,omitempty"`
}

// Relation is a typed link from a document to another document. Item is
// partially populated (title and identifier) and is never expanded for its
// own relations.
type Relation struct {
	Type        string  `json:"type" yaml:"type"`
	Description string  `json:"description,omitempty" yaml:"description,omitempty"`
	Item        BibItem `json:"bibitem" yaml:"bibitem"`
}

// Locality is one extent entry: volume, issue, or page range.
type Locality struct {
	Type string `json:"type" yaml:"type"`
	From string `json:"from" yaml:"from"`
	To   string `json:"to,omitempty" yaml:"to,omitempty"`
}

// Series is a series the document belongs to.
type Series struct {
	Title        string `json:"title" yaml:"title"`
	Abbreviation string `json:"abbreviation,omitempty" yaml:"abbreviation,omitempty"`
}

// Medium describes the physical or academic form of the document.
type Medium struct {
	Genre string `json:"genre" yaml:"genre"`
}

// BibItem is the canonical bibliographic record produced by normalization.
// It is built once per resolution and not modified afterwards.
type BibItem struct {
	// Type is the canonical document type (e.g. "article", "inbook").
	Type string `json:"type,omitempty" yaml:"type,omitempty"`

	// Fetched is the normalization date in YYYY-MM-DD format.
	Fetched string `json:"fetched,omitempty" yaml:"fetched,omitempty"`

	Titles       []Title       `json:"titles,omitempty" yaml:"titles,omitempty"`
	DocIDs       []DocumentID  `json:"docids,omitempty" yaml:"docids,omitempty"`
	Dates        []BibDate     `json:"dates,omitempty" yaml:"dates,omitempty"`
	Links        []Link        `json:"links,omitempty" yaml:"links,omitempty"`
	Abstract     *Abstract     `json:"abstract,omitempty" yaml:"abstract,omitempty"`
	Contributors []Contributor `json:"contributors,omitempty" yaml:"contributors,omitempty"`
	Places       []Place       `json:"places,omitempty" yaml:"places,omitempty"`

	// DocType is the registry-native document type (e.g. "journal-article").
	DocType string `json:"doctype,omitempty" yaml:"doctype,omitempty"`

	Relations []Relation `json:"relations,omitempty" yaml:"relations,omitempty"`
	Extent    []Locality `json:"extent,omitempty" yaml:"extent,omitempty"`
	Series    []Series   `json:"series,omitempty" yaml:"series,omitempty"`
	Medium    *Medium    `json:"medium,omitempty" yaml:"medium,omitempty"`
}

// PrimaryID returns the primary identifier, or an empty string.
func (b *BibItem) PrimaryID() string {
	for _, id := range b.DocIDs {
		if id.Primary {
			return id.ID
		}
	}
	return ""
}

// MainTitle returns the first title content, or an empty string.
func (b *BibItem) MainTitle() string {
	if len(b.Titles) == 0 {
		return ""
	}
	return b.Titles[0].Content
}

// HasRole reports whether any contributor carries the given role.
func (b *BibItem) HasRole(role RoleType) bool {
	return HasRole(b.Contributors, role)
}

// HasRole reports whether any contributor in cs carries the given role.
func HasRole(cs []Contributor, role RoleType) bool {
	for _, c := range cs {
		if c.Role.Type == role {
			return true
		}
	}
	return false
}
