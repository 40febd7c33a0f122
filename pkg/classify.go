package dwcacheck

import (
	"slices"
	"strconv"
	"strings"

	"github.com/gnames/dwcacheck/internal/ent/dwca"
	"github.com/gnames/dwcacheck/internal/ent/ident"
	"github.com/gnames/dwcacheck/internal/io/dwcaio"
	"github.com/gnames/dwcacheck/internal/io/tsvio"
	"github.com/gnames/dwcacheck/pkg/ent/report"
)

// domainOf returns the host of an identifier after scheme normalization.
func domainOf(id string) string {
	return ident.Domain(ident.EnsureScheme(id))
}

// Classify groups identifiers of a dataset by domain. The bool is false
// if the dataset has no identifier column.
func (d *dwcacheck) Classify(ds dwca.Dataset) (report.Classify, bool) {
	res := report.Classify{Dataset: ds.Name}
	ids, ok := dwcaio.Identifiers(ds)
	if !ok {
		return res, false
	}
	res.Total = len(ids)

	byDomain := make(map[string][]string)
	for _, v := range ids {
		dom := domainOf(v)
		byDomain[dom] = append(byDomain[dom], v)
	}

	for k, v := range byDomain {
		slices.Sort(v)
		res.Domains = append(res.Domains, report.DomainIDs{
			Domain:      k,
			Identifiers: v,
		})
	}
	slices.SortFunc(res.Domains, func(a, b report.DomainIDs) int {
		if len(a.Identifiers) != len(b.Identifiers) {
			return len(b.Identifiers) - len(a.Identifiers)
		}
		return strings.Compare(a.Domain, b.Domain)
	})
	return res, true
}

// ClassifyAll groups identifiers of all datasets by domain and saves
// per-identifier and per-domain reports.
func (d *dwcacheck) ClassifyAll() (report.ClassifyAll, error) {
	var res report.ClassifyAll
	dss, err := d.Datasets()
	if err != nil {
		return res, err
	}
	res.DatasetsNum = len(dss)

	w, err := tsvio.Create(d.cfg.OutputDir, "classify_all_identifiers.tsv",
		"identifier", "domain", "dataset")
	if err != nil {
		return res, err
	}
	res.IdentifiersPath = w.Path()
	defer w.Close()

	global := make(map[string]int)
	for _, ds := range dss {
		dd := report.DatasetDomains{Name: ds.Name}
		var ids []string
		ids, dd.HasField = dwcaio.Identifiers(ds)
		dd.Count = len(ids)
		if dd.Count == 0 {
			res.WithoutIDs++
			res.PerDataset = append(res.PerDataset, dd)
			continue
		}
		res.WithIDs++
		res.Total += dd.Count

		local := make(map[string]int)
		for _, v := range ids {
			dom := domainOf(v)
			global[dom]++
			local[dom]++
			if err = w.Write(v, dom, ds.Name); err != nil {
				return res, err
			}
		}
		dd.Domains = report.SortCounts(local)
		res.PerDataset = append(res.PerDataset, dd)
	}
	if err = w.Close(); err != nil {
		return res, err
	}

	res.Domains = report.SortCounts(global)
	res.DomainsPath, err = d.saveCounts(
		"classify_all_domains.tsv", res.Domains, "domain", "count",
	)
	return res, err
}

// saveCounts writes counts to a two-column file.
func (d *dwcacheck) saveCounts(
	name string,
	counts []report.Count,
	header ...string,
) (string, error) {
	w, err := tsvio.Create(d.cfg.OutputDir, name, header...)
	if err != nil {
		return "", err
	}
	defer w.Close()

	for _, v := range counts {
		if err = w.Write(v.Key, strconv.Itoa(v.Count)); err != nil {
			return "", err
		}
	}
	return w.Path(), w.Close()
}
