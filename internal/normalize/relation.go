// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package normalize

import (
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/pdiddy/doi-fetch/internal/metadata"
	"github.com/pdiddy/doi-fetch/internal/vocab"
	"github.com/pdiddy/doi-fetch/pkg/types"
)

// relations lists includedIn relations built from the container titles,
// followed by the registry-declared relations in registry order.
func (p *pass) relations() []types.Relation {
	return append(p.includedIn(), p.declared()...)
}

func (p *pass) includedIn() []types.Relation {
	ct := p.containerTitles()
	if len(ct) == 0 || !vocab.IncludedIn(p.crType) {
		return nil
	}
	editors := p.parentPersons(types.RoleEditor)
	out := make([]types.Relation, 0, len(ct))
	for _, t := range ct {
		out = append(out, types.Relation{
			Type: "includedIn",
			Item: types.BibItem{
				Titles:       []types.Title{{Type: types.TitleMain, Content: t}},
				Contributors: editors,
			},
		})
	}
	return out
}

// target is one registry-declared related identifier.
type target struct {
	name, desc string
	id, idType string
}

// declared fetches every related DOI concurrently and keeps results in
// registry order. A failed or missing fetch yields a relation without title.
func (p *pass) declared() []types.Relation {
	var targets []target
	p.src.Get("relation").Each(func(predicate string, v metadata.Raw) {
		name, desc := vocab.RelationType(predicate)
		for _, r := range v.AsList() {
			id, _ := r.Str("id")
			if id == "" {
				continue
			}
			idType, _ := r.Str("id-type")
			targets = append(targets, target{name: name, desc: desc, id: id, idType: idType})
		}
	})
	if len(targets) == 0 {
		return nil
	}

	out := make([]types.Relation, len(targets))
	var g errgroup.Group
	g.SetLimit(p.relationConcurrency)
	for i, t := range targets {
		i, t := i, t
		g.Go(func() error {
			out[i] = types.Relation{Type: t.name, Description: t.desc, Item: p.relatedItem(t)}
			return nil
		})
	}
	_ = g.Wait()
	return out
}

func (p *pass) relatedItem(t target) types.BibItem {
	stub := types.BibItem{DocIDs: []types.DocumentID{{Type: idScheme(t.idType), ID: t.id}}}
	if !strings.EqualFold(t.idType, "doi") && t.idType != "" {
		return stub
	}
	if p.fetcher == nil {
		return stub
	}
	src, found, err := p.fetcher.Fetch(p.ctx, t.id)
	switch {
	case err != nil:
		p.logger.Warn("related lookup failed", "doi", p.doi, "related", t.id, "err", err)
		return stub
	case !found:
		p.logger.Debug("related work not found", "doi", p.doi, "related", t.id)
		return stub
	}
	return p.TitleOnly(t.id, src)
}

// idScheme maps a registry id-type to an identifier type; DOIs are the
// default.
func idScheme(idType string) string {
	if idType == "" || strings.EqualFold(idType, "doi") {
		return "DOI"
	}
	return idType
}
