package dwcacheck

import (
	"context"

	"github.com/gnames/dwcacheck/internal/ent/doi"
	"github.com/gnames/dwcacheck/internal/ent/dwca"
	"github.com/gnames/dwcacheck/internal/ent/export"
	"github.com/gnames/dwcacheck/internal/ent/ident"
	"github.com/gnames/dwcacheck/pkg/ent/report"
)

// DwCACheck is an interface for reports about Darwin Core Archive datasets.
type DwCACheck interface {
	// Datasets returns all datasets of the base directory.
	Datasets() ([]dwca.Dataset, error)

	// Dataset returns a dataset by its directory name.
	Dataset(name string) (dwca.Dataset, error)

	// AllTaxa collects taxa of all datasets and saves them to all_taxa.tsv.
	AllTaxa() (report.Taxa, error)

	// ExportTaxa saves taxa to an external storage.
	ExportTaxa(ctx context.Context, ex export.Exporter, taxa []dwca.Taxon) error

	// CheckIdentifiers resolves unique identifiers of one dataset. The bool
	// is false if the dataset has no identifier column.
	CheckIdentifiers(
		ctx context.Context,
		r ident.Resolver,
		ds dwca.Dataset,
	) (report.Check, bool, error)

	// CheckAll resolves unique identifiers of all datasets once and saves
	// results and domain summary to TSV files.
	CheckAll(ctx context.Context, r ident.Resolver) (report.CheckAll, error)

	// CheckOA looks up open access status of DOIs of all datasets and saves
	// results and summary to TSV files.
	CheckOA(ctx context.Context, c doi.OAChecker) (report.OA, error)

	// Classify groups identifiers of one dataset by domain. The bool is
	// false if the dataset has no identifier column.
	Classify(ds dwca.Dataset) (report.Classify, bool)

	// ClassifyAll groups identifiers of all datasets by domain and saves
	// them to TSV files.
	ClassifyAll() (report.ClassifyAll, error)

	// RefsWithoutIDs counts references without identifiers and saves
	// counts to a TSV file.
	RefsWithoutIDs() (report.Refs, error)

	// TaxaWithoutRefs finds taxa that have no references. Results are saved
	// to a TSV file only if save is true.
	TaxaWithoutRefs(dss []dwca.Dataset, save bool) (report.NoRefs, error)

	// TypeSpecimens reports institutions of type specimens and taxa without
	// type information, saving them to TSV files.
	TypeSpecimens() (report.Types, error)
}
