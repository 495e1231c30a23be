// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package render

import (
	"strconv"
	"strings"

	"github.com/pdiddy/doi-fetch/pkg/types"
)

// CSLItem is a bibliographic entry in CSL (Citation Style Language) form.
// Field names follow the CSL-JSON/CSL-YAML schema so the output is
// consumable by Pandoc and reference managers.
type CSLItem struct {
	ID             string    `yaml:"id" json:"id"`
	Type           string    `yaml:"type" json:"type"`
	Title          string    `yaml:"title,omitempty" json:"title,omitempty"`
	Author         []CSLName `yaml:"author,omitempty" json:"author,omitempty"`
	Editor         []CSLName `yaml:"editor,omitempty" json:"editor,omitempty"`
	ContainerTitle string    `yaml:"container-title,omitempty" json:"container-title,omitempty"`
	Publisher      string    `yaml:"publisher,omitempty" json:"publisher,omitempty"`
	PublisherPlace string    `yaml:"publisher-place,omitempty" json:"publisher-place,omitempty"`
	Volume         string    `yaml:"volume,omitempty" json:"volume,omitempty"`
	Issue          string    `yaml:"issue,omitempty" json:"issue,omitempty"`
	Page           string    `yaml:"page,omitempty" json:"page,omitempty"`
	Abstract       string    `yaml:"abstract,omitempty" json:"abstract,omitempty"`
	Issued         *CSLDate  `yaml:"issued,omitempty" json:"issued,omitempty"`
	DOI            string    `yaml:"DOI,omitempty" json:"DOI,omitempty"`
	ISBN           string    `yaml:"ISBN,omitempty" json:"ISBN,omitempty"`
	ISSN           string    `yaml:"ISSN,omitempty" json:"ISSN,omitempty"`
	URL            string    `yaml:"URL,omitempty" json:"URL,omitempty"`
}

// CSLName is a name in CSL form.
type CSLName struct {
	Family  string `yaml:"family,omitempty" json:"family,omitempty"`
	Given   string `yaml:"given,omitempty" json:"given,omitempty"`
	Literal string `yaml:"literal,omitempty" json:"literal,omitempty"`
}

// CSLDate is a date in CSL date-parts form.
type CSLDate struct {
	DateParts [][]int `yaml:"date-parts" json:"date-parts"`
}

// cslTypes maps canonical document types to CSL item types.
var cslTypes = map[string]string{
	"article":       "article-journal",
	"book":          "book",
	"dataset":       "dataset",
	"inbook":        "chapter",
	"inproceedings": "paper-conference",
	"journal":       "periodical",
	"proceedings":   "book",
	"standard":      "standard",
	"techreport":    "report",
	"thesis":        "thesis",
}

// ToCSL converts a record to a CSL item.
func ToCSL(rec types.Record) CSLItem {
	item := CSLItem{ID: rec.DOI, Type: "document", DOI: rec.DOI}
	b := rec.Item
	if b == nil {
		return item
	}
	if t, ok := cslTypes[b.Type]; ok {
		item.Type = t
	}
	item.Title = b.MainTitle()

	for _, c := range b.Contributors {
		switch c.Role.Type {
		case types.RoleAuthor:
			item.Author = append(item.Author, cslName(c))
		case types.RoleEditor:
			item.Editor = append(item.Editor, cslName(c))
		case types.RolePublisher:
			if item.Publisher == "" && c.Organization != nil {
				item.Publisher = c.Organization.Name
			}
		}
	}

	for _, r := range b.Relations {
		if r.Type == "includedIn" {
			item.ContainerTitle = r.Item.MainTitle()
			break
		}
	}
	if item.ContainerTitle == "" && len(b.Series) > 0 {
		item.ContainerTitle = b.Series[0].Title
	}

	if len(b.Places) > 0 {
		item.PublisherPlace = b.Places[0].City
	}

	for _, l := range b.Extent {
		switch l.Type {
		case "volume":
			item.Volume = l.From
		case "issue":
			item.Issue = l.From
		case "page":
			item.Page = l.From
			if l.To != "" {
				item.Page += "-" + l.To
			}
		}
	}

	if b.Abstract != nil {
		item.Abstract = b.Abstract.Content
	}
	item.Issued = cslDate(b.Dates)

	for _, id := range b.DocIDs {
		switch {
		case id.Type == "ISBN" && item.ISBN == "":
			item.ISBN = id.ID
		case strings.HasPrefix(id.Type, "issn") && item.ISSN == "":
			item.ISSN = id.ID
		}
	}
	for _, l := range b.Links {
		if l.Type == "DOI" {
			item.URL = l.URL
			break
		}
	}
	return item
}

func cslName(c types.Contributor) CSLName {
	if c.Person != nil {
		return CSLName{
			Family: c.Person.Name.Surname,
			Given:  strings.Join(c.Person.Name.Forenames, " "),
		}
	}
	if c.Organization != nil {
		return CSLName{Literal: c.Organization.Name}
	}
	return CSLName{}
}

// cslDate picks the issued date, else the first date, and converts its
// components to integers. Unparsable components end the date.
func cslDate(dates []types.BibDate) *CSLDate {
	if len(dates) == 0 {
		return nil
	}
	d := dates[0]
	for _, cand := range dates {
		if cand.Type == "issued" {
			d = cand
			break
		}
	}
	var parts []int
	for _, s := range strings.Split(d.On, "-") {
		n, err := strconv.Atoi(s)
		if err != nil {
			break
		}
		parts = append(parts, n)
	}
	if len(parts) == 0 {
		return nil
	}
	return &CSLDate{DateParts: [][]int{parts}}
}
