package dwcacheck

import (
	"log/slog"
	"slices"
	"strconv"

	"github.com/gnames/dwcacheck/internal/ent/dwca"
	"github.com/gnames/dwcacheck/internal/io/dwcaio"
	"github.com/gnames/dwcacheck/internal/io/tsvio"
	"github.com/gnames/dwcacheck/pkg/ent/report"
)

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

// RefsWithoutIDs counts reference rows with and without identifiers.
func (d *dwcacheck) RefsWithoutIDs() (report.Refs, error) {
	var res report.Refs
	dss, err := d.Datasets()
	if err != nil {
		return res, err
	}
	res.DatasetsNum = len(dss)

	w, err := tsvio.Create(d.cfg.OutputDir,
		"references_without_identifiers.tsv",
		"dataset", "total_references", "with_identifier",
		"without_identifier", "has_identifier_column",
	)
	if err != nil {
		return res, err
	}
	res.Path = w.Path()
	defer w.Close()

	for _, ds := range dss {
		if !dwcaio.Exists(ds, dwca.ReferenceFile) {
			continue
		}
		rc := countRefs(ds)

		err = w.Write(ds.Name, strconv.Itoa(rc.Total), strconv.Itoa(rc.With),
			strconv.Itoa(rc.Without), yesNo(rc.HasColumn))
		if err != nil {
			return res, err
		}

		res.Total += rc.Total
		res.With += rc.With
		res.Without += rc.Without
		switch {
		case !rc.HasColumn:
			res.NoColumn++
		case rc.Without > 0:
			res.SomeMissing++
		default:
			res.AllHave++
		}
		res.Datasets = append(res.Datasets, rc)
	}
	return res, w.Close()
}

// countRefs counts reference rows of a dataset. Without an identifier
// column every row counts as a row without identifier.
func countRefs(ds dwca.Dataset) report.RefCounts {
	res := report.RefCounts{Dataset: ds.Name}
	col, ok := dwcaio.Column(ds, dwca.RowReference, dwca.TermIdentifier)
	res.HasColumn = ok

	err := dwcaio.Rows(ds.Path(dwca.ReferenceFile), func(fields []string) {
		res.Total++
		if ok && dwcaio.Field(fields, col) != "" {
			res.With++
		} else {
			res.Without++
		}
	})
	if err != nil {
		slog.Warn("Cannot read references", "dataset", ds.Name, "error", err)
	}
	return res
}

// TaxaWithoutRefs finds taxa whose id does not appear in the coreid column
// of reference.txt.
func (d *dwcacheck) TaxaWithoutRefs(
	dss []dwca.Dataset,
	save bool,
) (report.NoRefs, error) {
	res := report.NoRefs{DatasetsNum: len(dss)}

	for _, ds := range dss {
		if !dwcaio.Exists(ds, dwca.TaxonFile) {
			continue
		}
		nr := taxaWithoutRefs(ds)
		res.Total += nr.Total
		res.With += nr.With()
		res.Without += nr.Without()
		res.Datasets = append(res.Datasets, nr)
	}

	if !save {
		return res, nil
	}

	w, err := tsvio.Create(d.cfg.OutputDir, "taxa_without_references.tsv",
		"dataset", "taxon_id", "scientificName", "taxonRank")
	if err != nil {
		return res, err
	}
	res.Path = w.Path()
	defer w.Close()

	for _, nr := range res.Datasets {
		for _, t := range nr.Missing {
			err = w.Write(nr.Name, t.ID, t.ScientificName, t.TaxonRank)
			if err != nil {
				return res, err
			}
		}
	}
	return res, w.Close()
}

// coreIDs returns non-empty values of the first column of a file.
func coreIDs(path string) map[string]struct{} {
	res := make(map[string]struct{})
	err := dwcaio.Rows(path, func(fields []string) {
		if id := dwcaio.Field(fields, 0); id != "" {
			res[id] = struct{}{}
		}
	})
	if err != nil {
		slog.Debug("No core ids", "path", path, "error", err)
	}
	return res
}

// taxaWithoutRefs takes scientificName and taxonRank columns from the
// header of taxon.txt. Rows without id are ignored.
func taxaWithoutRefs(ds dwca.Dataset) report.NoRefsDataset {
	res := report.NoRefsDataset{Name: ds.Name}
	refs := coreIDs(ds.Path(dwca.ReferenceFile))

	path := ds.Path(dwca.TaxonFile)
	header, err := dwcaio.Header(path)
	if err != nil {
		slog.Warn("Cannot read taxa", "dataset", ds.Name, "error", err)
		return res
	}
	nameCol := slices.Index(header, "scientificName")
	rankCol := slices.Index(header, "taxonRank")

	err = dwcaio.Rows(path, func(fields []string) {
		id := dwcaio.Field(fields, 0)
		if id == "" {
			return
		}
		res.Total++
		if _, ok := refs[id]; ok {
			return
		}
		res.Missing = append(res.Missing, dwca.Taxon{
			ID:             id,
			ScientificName: dwcaio.Field(fields, nameCol),
			TaxonRank:      dwcaio.Field(fields, rankCol),
			Dataset:        ds.Name,
		})
	})
	if err != nil {
		slog.Warn("Cannot read taxa", "dataset", ds.Name, "error", err)
	}
	return res
}
