// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// Flavor identifies the registry-specific record variant chosen for a DOI.
type Flavor string

const (
	FlavorGeneric Flavor = "generic"
	FlavorNIST    Flavor = "nist"
	FlavorIETF    Flavor = "ietf"
	FlavorBIPM    Flavor = "bipm"
	FlavorIEEE    Flavor = "ieee"
)

// Record is the resolved output for one identifier: the canonical item
// tagged with the flavor the downstream serializer should build.
type Record struct {
	// DOI is the identifier the record was resolved from, without a scheme prefix.
	DOI string `json:"doi" yaml:"doi"`

	// Flavor selects the downstream record variant.
	Flavor Flavor `json:"flavor" yaml:"flavor"`

	// Item is the normalized bibliographic item.
	Item *BibItem `json:"bibitem" yaml:"bibitem"`
}
