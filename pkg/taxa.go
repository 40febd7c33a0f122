package dwcacheck

import (
	"log/slog"
	"slices"
	"strings"

	"github.com/gnames/dwcacheck/internal/ent/dwca"
	"github.com/gnames/dwcacheck/internal/io/dwcaio"
	"github.com/gnames/dwcacheck/internal/io/tsvio"
	"github.com/gnames/dwcacheck/pkg/ent/report"
	"github.com/gnames/gnparser"
	"github.com/gnames/gnuuid"
)

// AllTaxa reads taxon.txt of every dataset and saves taxa sorted by
// scientific name.
func (d *dwcacheck) AllTaxa() (report.Taxa, error) {
	var res report.Taxa
	dss, err := d.Datasets()
	if err != nil {
		return res, err
	}

	for _, ds := range dss {
		if !dwcaio.Exists(ds, dwca.TaxonFile) {
			continue
		}
		res.Taxa = append(res.Taxa, readTaxa(ds)...)
	}

	slices.SortStableFunc(res.Taxa, func(a, b dwca.Taxon) int {
		return strings.Compare(a.ScientificName, b.ScientificName)
	})

	if d.cfg.WithCanonical {
		parseTaxa(res.Taxa)
	}

	header := []string{"id", "scientificName", "dataset"}
	if d.cfg.WithCanonical {
		header = append(header, "canonical", "name_id")
	}
	w, err := tsvio.Create(d.cfg.OutputDir, "all_taxa.tsv", header...)
	if err != nil {
		return res, err
	}
	res.Path = w.Path()

	for _, t := range res.Taxa {
		row := []string{t.ID, t.ScientificName, t.Dataset}
		if d.cfg.WithCanonical {
			row = append(row, t.Canonical, t.NameID)
		}
		if err = w.Write(row...); err != nil {
			w.Close()
			return res, err
		}
	}
	return res, w.Close()
}

// readTaxa reads taxon.txt with columns from the core table of meta.xml.
// The id is always the first column.
func readTaxa(ds dwca.Dataset) []dwca.Taxon {
	var res []dwca.Taxon
	meta := dwcaio.Meta(ds)
	nameCol, hasName := meta.Column(dwca.RowCore, dwca.TermScientificName)
	rankCol, hasRank := meta.Column(dwca.RowCore, dwca.TermTaxonRank)

	err := dwcaio.Rows(ds.Path(dwca.TaxonFile), func(fields []string) {
		t := dwca.Taxon{ID: dwcaio.Field(fields, 0), Dataset: ds.Name}
		if hasName {
			t.ScientificName = dwcaio.Field(fields, nameCol)
		}
		if hasRank {
			t.TaxonRank = dwcaio.Field(fields, rankCol)
		}
		res = append(res, t)
	})
	if err != nil {
		slog.Warn("Cannot read taxa", "dataset", ds.Name, "error", err)
	}
	return res
}

// parseTaxa adds canonical forms and name-string UUIDs.
func parseTaxa(taxa []dwca.Taxon) {
	gnp := gnparser.New(gnparser.NewConfig())
	for i := range taxa {
		name := taxa[i].ScientificName
		if name == "" {
			continue
		}
		taxa[i].NameID = gnuuid.New(name).String()
		p := gnp.ParseName(name)
		if p.Parsed {
			taxa[i].Canonical = p.Canonical.Simple
		}
	}
}
