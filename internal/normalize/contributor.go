// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package normalize

import (
	"slices"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/pdiddy/doi-fetch/internal/metadata"
	"github.com/pdiddy/doi-fetch/internal/vocab"
	"github.com/pdiddy/doi-fetch/pkg/types"
)

// contributors resolves contributors in a fixed order: investigators,
// direct authors/editors/translators, roles borrowed from the parent
// container, publisher, authorizer, enablers.
func (p *pass) contributors() []types.Contributor {
	cs := p.investigators()
	cs = append(cs, p.direct()...)
	cs = append(cs, p.fromParent(cs)...)
	if c, ok := p.publisher(); ok {
		cs = append(cs, c)
	}
	if c, ok := p.authorizer(); ok {
		cs = append(cs, c)
	}
	return append(cs, p.enablers()...)
}

func (p *pass) investigators() []types.Contributor {
	var out []types.Contributor
	for _, proj := range p.src.List("project") {
		for _, key := range []string{"lead-investigator", "investigator"} {
			desc := strings.ReplaceAll(key, "-", " ")
			for _, inv := range proj.List(key) {
				out = append(out, types.Contributor{
					Person: person(inv),
					Role:   types.Role{Type: types.RoleAuthor, Description: desc},
				})
			}
		}
	}
	return out
}

func (p *pass) direct() []types.Contributor {
	var out []types.Contributor
	for _, role := range []types.RoleType{types.RoleAuthor, types.RoleEditor, types.RoleTranslator} {
		for _, c := range p.src.List(string(role)) {
			if _, ok := c.Str("family"); ok {
				out = append(out, types.Contributor{Person: person(c), Role: types.Role{Type: role}})
				continue
			}
			name, _ := c.Str("name")
			if name = cleanup(name); name == "" {
				continue
			}
			out = append(out, types.Contributor{
				Organization: &types.Organization{Name: name},
				Role:         types.Role{Type: role},
			})
		}
	}
	return out
}

// fromParent borrows authors and editors missing from cs from the parent
// container of a chapter, paper, or dataset.
func (p *pass) fromParent(cs []types.Contributor) []types.Contributor {
	if !vocab.ParentEnriched(p.typ) || len(p.containerTitles()) == 0 {
		return nil
	}
	hasAuthors := types.HasRole(cs, types.RoleAuthor)
	hasEditors := types.HasRole(cs, types.RoleEditor)
	if hasAuthors && hasEditors {
		return nil
	}

	var out []types.Contributor
	if !hasAuthors {
		out = append(out, p.parentPersons(types.RoleAuthor)...)
	}
	if !hasEditors {
		out = append(out, p.parentPersons(types.RoleEditor)...)
	}
	return out
}

// parentPersons returns the parent container's contributors of one role.
func (p *pass) parentPersons(role types.RoleType) []types.Contributor {
	parent := p.parentItem()
	if !parent.Exists() {
		return nil
	}
	var out []types.Contributor
	for _, c := range parent.List(string(role)) {
		out = append(out, types.Contributor{Person: person(c), Role: types.Role{Type: role}})
	}
	return out
}

// parentItem searches the registry once per pass for the book that
// contains this document. The zero Raw means no parent was found.
func (p *pass) parentItem() metadata.Raw {
	p.parentOnce.Do(func() {
		ct := p.containerTitles()
		if len(ct) == 0 || p.fetcher == nil {
			return
		}
		query := joinNonEmpty(" ", ct[0], p.year())
		items, err := p.fetcher.Search(p.ctx, query, vocab.ParentSearchTypes)
		if err != nil {
			p.logger.Warn("parent lookup failed", "doi", p.doi, "err", err)
			return
		}
		for _, it := range items {
			if slices.Contains(it.Strings("title"), ct[0]) {
				p.parent = it
				return
			}
		}
		p.logger.Debug("no parent matched", "doi", p.doi, "container", ct[0])
	})
	return p.parent
}

// publisher emits the publisher organization, recovering its acronym from
// the institution list.
func (p *pass) publisher() (types.Contributor, bool) {
	name, ok := p.src.Str("publisher")
	if !ok || name == "" {
		return types.Contributor{}, false
	}
	org := &types.Organization{Name: cleanup(name)}
	for _, inst := range p.src.List("institution") {
		iname, _ := inst.Str("name")
		if iname == "" {
			continue
		}
		if strings.Contains(name, iname) || strings.Contains(iname, name) {
			org.Abbreviation = firstStr(inst, "acronym")
			break
		}
	}
	return types.Contributor{Organization: org, Role: types.Role{Type: types.RolePublisher}}, true
}

func (p *pass) authorizer() (types.Contributor, bool) {
	body := p.src.Get("standards-body")
	name, ok := body.Str("name")
	if !ok || name == "" {
		return types.Contributor{}, false
	}
	acronym, _ := body.Str("acronym")
	return types.Contributor{
		Organization: &types.Organization{Name: name, Abbreviation: acronym},
		Role:         types.Role{Type: types.RoleAuthorizer},
	}, true
}

// enablers lists project funders followed by top-level funders.
func (p *pass) enablers() []types.Contributor {
	var names []string
	for _, proj := range p.src.List("project") {
		for _, f := range proj.List("funding") {
			names = append(names, f.Path("funder", "name").String())
		}
	}
	for _, f := range p.src.List("funder") {
		n, _ := f.Str("name")
		names = append(names, n)
	}

	var out []types.Contributor
	for _, n := range names {
		if n == "" {
			continue
		}
		out = append(out, types.Contributor{
			Organization: &types.Organization{Name: n},
			Role:         types.Role{Type: types.RoleEnabler},
		})
	}
	return out
}

func person(src metadata.Raw) *types.Person {
	family, _ := src.Str("family")
	pr := &types.Person{
		Name: types.FullName{Surname: titlecase(family)},
	}
	if given, ok := src.Str("given"); ok && given != "" {
		pr.Name.Forenames = []string{titlecase(given)}
	}
	if prefix, ok := src.Str("prefix"); ok && prefix != "" {
		pr.Name.Prefix = []string{prefix}
	}
	if suffix, ok := src.Str("suffix"); ok && suffix != "" {
		pr.Name.Addition = []string{suffix}
	}
	pr.Name.Complete, _ = src.Str("name")

	for _, a := range src.List("affiliation") {
		if n, ok := a.Str("name"); ok && n != "" {
			pr.Affiliations = append(pr.Affiliations, types.Organization{Name: n})
		}
	}
	if orcid, ok := src.Str("ORCID"); ok && orcid != "" {
		pr.Identifiers = []types.PersonID{{Type: "orcid", Value: orcid}}
	}
	return pr
}

// titlecase capitalizes words longer than two letters that are written
// entirely in upper case, leaving initials and dotted abbreviations alone.
func titlecase(s string) string {
	words := strings.Fields(s)
	caser := cases.Title(language.Und)
	for i, w := range words {
		if len([]rune(w)) > 2 && strings.ToUpper(w) == w && !strings.Contains(w, ".&") {
			words[i] = caser.String(w)
		}
	}
	return strings.Join(words, " ")
}

func joinNonEmpty(sep string, parts ...string) string {
	var keep []string
	for _, s := range parts {
		if s != "" {
			keep = append(keep, s)
		}
	}
	return strings.Join(keep, sep)
}
