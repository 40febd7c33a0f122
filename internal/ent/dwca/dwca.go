// Package dwca describes the parts of a Darwin Core Archive used by the
// reports: dataset directories, the meta.xml descriptor and taxon records.
package dwca

import "path/filepath"

// Names of files inside of a dataset directory.
const (
	MetaFile      = "meta.xml"
	TaxonFile     = "taxon.txt"
	ReferenceFile = "reference.txt"
	TypesFile     = "typesandspecimen.txt"
)

// Term URIs used by the reports.
const (
	TermIdentifier      = "http://purl.org/dc/terms/identifier"
	TermScientificName  = "http://rs.tdwg.org/dwc/terms/scientificName"
	TermTaxonRank       = "http://rs.tdwg.org/dwc/terms/taxonRank"
	TermInstitutionCode = "http://rs.tdwg.org/dwc/terms/institutionCode"
)

// RowCore selects the core table instead of an extension.
const RowCore = ""

// Markers that select an extension by a substring of its row type.
const (
	RowReference = "Reference"
	RowTypes     = "TypesAndSpecimen"
)

// Dataset is one unpacked archive. Its identity is the directory name.
type Dataset struct {
	// Name is the base name of the dataset directory.
	Name string

	// Dir is the path to the dataset directory.
	Dir string
}

// Path returns the path to a file of the dataset.
func (d Dataset) Path(file string) string {
	return filepath.Join(d.Dir, file)
}

// Taxon is a row of the core taxon table.
type Taxon struct {
	// ID is the value of the first column, the join key for extensions.
	ID string

	// ScientificName is the name-string as given by the dataset.
	ScientificName string

	// TaxonRank is the rank as given by the dataset.
	TaxonRank string

	// Dataset is the name of the dataset the taxon came from.
	Dataset string

	// Canonical is the simple canonical form of the ScientificName,
	// it is empty unless names are parsed.
	Canonical string

	// NameID is UUID v5 generated from the ScientificName, it is empty
	// unless names are parsed.
	NameID string
}
