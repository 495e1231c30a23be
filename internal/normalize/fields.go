// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package normalize

import (
	"regexp"
	"strings"

	"github.com/pdiddy/doi-fetch/internal/metadata"
	"github.com/pdiddy/doi-fetch/pkg/types"
)

var (
	trailingJunk = regexp.MustCompile(`[,/\s]+$`)
	trailingColon = regexp.MustCompile(`\s:$`)
)

// cleanup trims whitespace and trailing commas, slashes, and " :".
func cleanup(s string) string {
	s = strings.TrimSpace(s)
	s = trailingJunk.ReplaceAllString(s, "")
	return trailingColon.ReplaceAllString(s, "")
}

func (p *pass) title(content string, typ types.TitleType) types.Title {
	return types.Title{Type: typ, Content: cleanup(content), Script: "Latn"}
}

// titles prefers the work's own titles, then project titles, then all but
// the last container title (the last one names the series or journal).
func (p *pass) titles() []types.Title {
	if len(p.src.Strings("title")) > 0 {
		return p.mainSubTitles()
	}
	if len(p.src.List("project")) > 0 {
		return p.projectTitles()
	}
	if ct := p.src.Strings("container-title"); len(ct) > 1 {
		var out []types.Title
		for _, t := range ct[:len(ct)-1] {
			out = append(out, p.title(t, types.TitleMain))
		}
		return out
	}
	return nil
}

func (p *pass) mainSubTitles() []types.Title {
	var out []types.Title
	for _, t := range p.src.Strings("title") {
		out = append(out, p.title(t, types.TitleMain))
	}
	for _, t := range p.src.Strings("subtitle") {
		out = append(out, p.title(t, types.TitleSubtitle))
	}
	for _, t := range p.src.Strings("short-title") {
		out = append(out, p.title(t, types.TitleShort))
	}
	return out
}

func (p *pass) projectTitles() []types.Title {
	var out []types.Title
	for _, proj := range p.src.List("project") {
		for _, pt := range proj.List("project-title") {
			if t, ok := pt.Str("title"); ok {
				out = append(out, p.title(t, types.TitleMain))
			}
		}
	}
	return out
}

// docIDs lists DOI, ISBN, and ISSN identifiers. Exactly one DOI, the one the
// item was fetched by, is primary.
func (p *pass) docIDs() []types.DocumentID {
	var out []types.DocumentID

	dois := p.src.Strings("DOI")
	if len(dois) == 0 && p.doi != "" {
		dois = []string{p.doi}
	}
	primary := 0
	for i, d := range dois {
		if strings.EqualFold(d, p.doi) {
			primary = i
			break
		}
	}
	for i, d := range dois {
		out = append(out, types.DocumentID{Type: "DOI", ID: d, Primary: i == primary})
	}

	for _, id := range p.src.Strings("ISBN") {
		out = append(out, types.DocumentID{Type: "ISBN", ID: id})
	}
	for _, id := range p.src.Strings("ISSN") {
		out = append(out, types.DocumentID{Type: p.issnType(id), ID: id})
	}
	return out
}

// issnType qualifies an ISSN with its issn-type entry, e.g. "issn.print".
func (p *pass) issnType(id string) string {
	for _, it := range p.src.List("issn-type") {
		if v, _ := it.Str("value"); v == id {
			if t, ok := it.Str("type"); ok && t != "" {
				return "issn." + t
			}
		}
	}
	return "issn"
}

// dates emits issued, published, and approved dates; when none of them is
// present it falls back to the created date.
func (p *pass) dates() []types.BibDate {
	var out []types.BibDate
	for _, key := range []string{"issued", "published", "approved"} {
		if on := p.dateOn(key); on != "" {
			out = append(out, types.BibDate{Type: key, On: on})
		}
	}
	if len(out) == 0 {
		if on := p.dateOn("created"); on != "" {
			out = append(out, types.BibDate{Type: "created", On: on})
		}
	}
	return out
}

// dateOn joins the first date-parts entry of key with "-", padding each
// component to two digits.
func (p *pass) dateOn(key string) string {
	parts := p.src.Path(key, "date-parts").Items()
	if len(parts) == 0 {
		return ""
	}
	comps := parts[0].AsStrings()
	if len(comps) == 0 {
		return ""
	}
	for i, c := range comps {
		if len(c) < 2 {
			comps[i] = strings.Repeat("0", 2-len(c)) + c
		}
	}
	return strings.Join(comps, "-")
}

// auxiliaryLinks are registry artifacts rather than citable resources.
var auxiliaryLinks = map[string]bool{
	"similarity-checking": true,
	"text-mining":         true,
}

func (p *pass) links() []types.Link {
	var out []types.Link
	if u, ok := p.src.Str("URL"); ok && u != "" {
		out = append(out, types.Link{Type: "DOI", URL: u})
	}

	candidates := p.src.List("link")
	candidates = append(candidates, p.src.Path("resource", "primary").AsList()...)
	for _, l := range candidates {
		if app, _ := l.Str("intended-application"); auxiliaryLinks[app] {
			continue
		}
		u, ok := l.Str("URL")
		if !ok || u == "" {
			continue
		}
		typ := "src"
		if strings.HasSuffix(u, ".pdf") {
			typ = "pdf"
		}
		out = append(out, types.Link{Type: typ, URL: u})
	}
	return out
}

func (p *pass) abstract() *types.Abstract {
	content, ok := p.src.Str("abstract")
	if !ok || content == "" {
		return nil
	}
	return &types.Abstract{Content: content, Format: "text/html", Language: "en", Script: "Latn"}
}

// containerTitles returns the container-title list.
func (p *pass) containerTitles() []string {
	return p.src.Strings("container-title")
}

// hasOwnTitle reports whether the work has a title independent of its
// container: its own title or a project title.
func (p *pass) hasOwnTitle() bool {
	return len(p.src.Strings("title")) > 0 || len(p.projectTitles()) > 0
}

func firstStr(r metadata.Raw, key string) string {
	if s := r.Strings(key); len(s) > 0 {
		return s[0]
	}
	return ""
}
