// Package report contains results of dwcacheck reports.
package report

import (
	"cmp"
	"math"
	"slices"

	"github.com/gnames/dwcacheck/internal/ent/dwca"
	"github.com/gnames/dwcacheck/internal/ent/ident"
	"github.com/gnames/dwcacheck/internal/ent/institution"
)

// Percent returns part/total in percents rounded to one decimal, 0 for
// an empty total.
func Percent(part, total int) float64 {
	if total == 0 {
		return 0
	}
	return math.Round(1000*float64(part)/float64(total)) / 10
}

// Count is a number of occurrences of a key.
type Count struct {
	Key   string
	Count int
}

// SortCounts converts a map to counts ordered by count descending, ties by
// key.
func SortCounts(m map[string]int) []Count {
	res := make([]Count, 0, len(m))
	for k, v := range m {
		res = append(res, Count{Key: k, Count: v})
	}
	slices.SortFunc(res, func(a, b Count) int {
		if a.Count != b.Count {
			return b.Count - a.Count
		}
		return cmp.Compare(a.Key, b.Key)
	})
	return res
}

// Taxa lists taxa of all datasets sorted by scientific name.
type Taxa struct {
	Taxa []dwca.Taxon
	Path string
}

// Check is the resolution report of one dataset.
type Check struct {
	Dataset string
	Results []ident.Result
	Counts  ident.Counts
}

// DomainCounts are resolution counts of one domain.
type DomainCounts struct {
	Domain string
	ident.Counts
}

// CheckAll is the resolution report of all datasets.
type CheckAll struct {
	DatasetsNum int
	WithIDs     int
	WithoutIDs  int

	// Counts summarize results of all unique identifiers.
	Counts ident.Counts

	// Domains are sorted by total descending.
	Domains []DomainCounts

	ResultsPath string
	DomainsPath string
}

// OA is the open access report of DOIs from all datasets.
type OA struct {
	Total  int
	Open   int
	Closed int
	Errors int

	// Statuses count successful lookups by OA status label.
	Statuses []Count

	ResultsPath string
	SummaryPath string
}

// DomainIDs are identifiers of one domain.
type DomainIDs struct {
	Domain      string
	Identifiers []string
}

// Classify groups identifiers of one dataset by domain.
type Classify struct {
	Dataset string
	Total   int

	// Domains are sorted by the number of identifiers descending,
	// identifiers are sorted alphabetically.
	Domains []DomainIDs
}

// DatasetDomains are domain counts of one dataset.
type DatasetDomains struct {
	Name string

	// HasField is false if the dataset has no identifier column.
	HasField bool

	Count   int
	Domains []Count
}

// ClassifyAll groups identifiers of all datasets by domain.
type ClassifyAll struct {
	DatasetsNum int
	WithIDs     int
	WithoutIDs  int
	Total       int

	Domains    []Count
	PerDataset []DatasetDomains

	IdentifiersPath string
	DomainsPath     string
}

// RefCounts are reference counts of one dataset.
type RefCounts struct {
	Dataset   string
	Total     int
	With      int
	Without   int
	HasColumn bool
}

// Refs reports references without identifiers.
type Refs struct {
	DatasetsNum int
	Datasets    []RefCounts

	Total   int
	With    int
	Without int

	NoColumn    int
	AllHave     int
	SomeMissing int

	Path string
}

// NoRefsDataset lists taxa without references of one dataset.
type NoRefsDataset struct {
	Name    string
	Total   int
	Missing []dwca.Taxon
}

// Without returns the number of taxa without references.
func (d NoRefsDataset) Without() int {
	return len(d.Missing)
}

// With returns the number of taxa with references.
func (d NoRefsDataset) With() int {
	return d.Total - len(d.Missing)
}

// NoRefs reports taxa without references.
type NoRefs struct {
	DatasetsNum int
	Total       int
	With        int
	Without     int
	Datasets    []NoRefsDataset

	// Path is empty when the report covers one dataset.
	Path string
}

// TypesDataset are type information counts of one dataset.
type TypesDataset struct {
	Name         string
	Total        int
	Without      int
	HasExtension bool
}

// Types reports type specimens, their institutions and taxa without type
// information.
type Types struct {
	DatasetsNum int
	WithExt     int
	WithoutExt  int
	Rows        int

	// Institutions are raw institutionCode values.
	Institutions []Count

	// Acronyms are institutions grouped by extracted acronym.
	Acronyms []institution.Group

	// EmptyInstitutions is the number of rows without institutionCode.
	EmptyInstitutions int

	TotalTaxa    int
	WithTypes    int
	WithoutTypes int
	PerDataset   []TypesDataset

	InstitutionsPath string
	NormalisedPath   string
	TaxaPath         string
}
