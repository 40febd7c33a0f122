package dwcacheck

import (
	"log/slog"
	"strconv"
	"strings"

	"github.com/gnames/dwcacheck/internal/ent/dwca"
	"github.com/gnames/dwcacheck/internal/ent/institution"
	"github.com/gnames/dwcacheck/internal/io/dwcaio"
	"github.com/gnames/dwcacheck/internal/io/tsvio"
	"github.com/gnames/dwcacheck/pkg/ent/report"
)

// TypeSpecimens counts institutions holding type specimens and finds taxa
// without type information.
func (d *dwcacheck) TypeSpecimens() (report.Types, error) {
	var res report.Types
	dss, err := d.Datasets()
	if err != nil {
		return res, err
	}
	res.DatasetsNum = len(dss)

	raw := make(map[string]int)
	groups := institution.NewGroups()
	withTypes := make(map[string]map[string]struct{})

	for _, ds := range dss {
		meta := dwcaio.Meta(ds)
		_, hasExt := meta.Extension(dwca.RowTypes)
		if !hasExt || !dwcaio.Exists(ds, dwca.TypesFile) {
			res.WithoutExt++
			continue
		}
		res.WithExt++

		ids := make(map[string]struct{})
		withTypes[ds.Name] = ids
		instCol, hasInst := meta.Column(dwca.RowTypes, dwca.TermInstitutionCode)

		err = dwcaio.Rows(ds.Path(dwca.TypesFile), func(fields []string) {
			res.Rows++
			if id := dwcaio.Field(fields, 0); id != "" {
				ids[id] = struct{}{}
			}

			var inst string
			if hasInst {
				inst = dwcaio.Field(fields, instCol)
			}
			if inst == "" {
				res.EmptyInstitutions++
				return
			}
			raw[inst]++
			groups.Add(inst)
		})
		if err != nil {
			slog.Warn("Cannot read types", "dataset", ds.Name, "error", err)
		}
	}
	res.Institutions = report.SortCounts(raw)
	res.Acronyms = groups.Sorted()

	res.InstitutionsPath, err = d.saveCounts(
		"type_specimens_institutions.tsv", res.Institutions,
		"institutionCode", "count",
	)
	if err != nil {
		return res, err
	}

	if res.NormalisedPath, err = d.saveAcronyms(res.Acronyms); err != nil {
		return res, err
	}

	err = d.taxaWithoutTypes(dss, withTypes, &res)
	return res, err
}

func (d *dwcacheck) saveAcronyms(grs []institution.Group) (string, error) {
	w, err := tsvio.Create(d.cfg.OutputDir, "type_specimens_normalised.tsv",
		"acronym", "count", "variants")
	if err != nil {
		return "", err
	}
	defer w.Close()

	for _, v := range grs {
		err = w.Write(v.Acronym, strconv.Itoa(v.Count),
			strings.Join(v.Variants, " | "))
		if err != nil {
			return "", err
		}
	}
	return w.Path(), w.Close()
}

// taxaWithoutTypes saves taxa which ids are absent from type specimen
// coreids of their dataset.
func (d *dwcacheck) taxaWithoutTypes(
	dss []dwca.Dataset,
	withTypes map[string]map[string]struct{},
	res *report.Types,
) error {
	w, err := tsvio.Create(d.cfg.OutputDir, "taxa_without_types.tsv",
		"dataset", "taxon_id", "scientificName", "taxonRank",
		"has_types_extension")
	if err != nil {
		return err
	}
	res.TaxaPath = w.Path()
	defer w.Close()

	for _, ds := range dss {
		if !dwcaio.Exists(ds, dwca.TaxonFile) {
			continue
		}
		meta := dwcaio.Meta(ds)
		_, hasExt := meta.Extension(dwca.RowTypes)
		ids := withTypes[ds.Name]
		td := report.TypesDataset{Name: ds.Name, HasExtension: hasExt}

		for _, t := range readTaxa(ds) {
			td.Total++
			if _, ok := ids[t.ID]; ok && hasExt {
				res.WithTypes++
				continue
			}
			res.WithoutTypes++
			td.Without++
			err = w.Write(ds.Name, t.ID, t.ScientificName, t.TaxonRank,
				yesNo(hasExt))
			if err != nil {
				return err
			}
		}
		res.TotalTaxa += td.Total
		res.PerDataset = append(res.PerDataset, td)
	}
	return w.Close()
}
