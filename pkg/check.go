package dwcacheck

import (
	"context"
	"log/slog"
	"slices"
	"strconv"
	"strings"
	"sync"

	"github.com/dustin/go-humanize"
	"github.com/gnames/dwcacheck/internal/ent/dwca"
	"github.com/gnames/dwcacheck/internal/ent/ident"
	"github.com/gnames/dwcacheck/internal/io/dwcaio"
	"github.com/gnames/dwcacheck/internal/io/tsvio"
	"github.com/gnames/dwcacheck/pkg/ent/report"
	"golang.org/x/sync/errgroup"
)

// sources is an identifier with the datasets it was found in.
type sources struct {
	value    string
	datasets []string
}

// collection keeps identifiers of many datasets without duplicates.
type collection struct {
	idx  map[string]int
	vals []sources
}

func newCollection() *collection {
	return &collection{idx: make(map[string]int)}
}

// add registers a value for a dataset, every dataset is listed once.
func (c *collection) add(val, dataset string) {
	i, ok := c.idx[val]
	if !ok {
		i = len(c.vals)
		c.idx[val] = i
		c.vals = append(c.vals, sources{value: val})
	}
	if !slices.Contains(c.vals[i].datasets, dataset) {
		c.vals[i].datasets = append(c.vals[i].datasets, dataset)
	}
}

// CheckIdentifiers resolves identifiers of one dataset.
func (d *dwcacheck) CheckIdentifiers(
	ctx context.Context,
	r ident.Resolver,
	ds dwca.Dataset,
) (report.Check, bool, error) {
	res := report.Check{Dataset: ds.Name}
	ids, ok := dwcaio.Identifiers(ds)
	if !ok {
		return res, false, nil
	}

	srcs := make([]sources, len(ids))
	for i, v := range ids {
		srcs[i] = sources{value: v, datasets: []string{ds.Name}}
	}

	err := d.resolve(ctx, r, srcs, func(ir ident.Result) error {
		res.Results = append(res.Results, ir)
		res.Counts.Add(ir.Status)
		return nil
	})
	return res, true, err
}

// CheckAll resolves every unique identifier of all datasets once.
func (d *dwcacheck) CheckAll(
	ctx context.Context,
	r ident.Resolver,
) (report.CheckAll, error) {
	var res report.CheckAll
	dss, err := d.Datasets()
	if err != nil {
		return res, err
	}
	res.DatasetsNum = len(dss)

	coll := newCollection()
	for _, ds := range dss {
		ids, _ := dwcaio.Identifiers(ds)
		if len(ids) == 0 {
			res.WithoutIDs++
			continue
		}
		res.WithIDs++
		for _, v := range ids {
			coll.add(v, ds.Name)
		}
	}
	slog.Info("Checking identifiers",
		"datasets", res.DatasetsNum,
		"identifiers", humanize.Comma(int64(len(coll.vals))),
	)

	w, err := tsvio.Create(d.cfg.OutputDir, "check_all_results.tsv",
		"identifier", "http_code", "final_url", "status", "datasets")
	if err != nil {
		return res, err
	}
	res.ResultsPath = w.Path()

	domains := make(map[string]*ident.Counts)
	total := int64(len(coll.vals))
	err = d.resolve(ctx, r, coll.vals, func(ir ident.Result) error {
		res.Counts.Add(ir.Status)
		dom := ident.Domain(ir.URL)
		if _, ok := domains[dom]; !ok {
			domains[dom] = &ident.Counts{}
		}
		domains[dom].Add(ir.Status)

		err := w.Write(ir.Identifier, strconv.Itoa(ir.Code), ir.FinalURL,
			string(ir.Status), strings.Join(ir.Datasets, ", "))
		if err != nil {
			return err
		}
		if n := int64(res.Counts.Total); n%progressStep == 0 {
			slog.Info("Checked identifiers",
				"checked", humanize.Comma(n), "total", humanize.Comma(total))
		}
		return w.Flush()
	})
	if cerr := w.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return res, err
	}

	res.Domains = sortDomains(domains)
	res.DomainsPath, err = d.saveDomains(res.Domains)
	return res, err
}

func sortDomains(m map[string]*ident.Counts) []report.DomainCounts {
	res := make([]report.DomainCounts, 0, len(m))
	for k, v := range m {
		res = append(res, report.DomainCounts{Domain: k, Counts: *v})
	}
	slices.SortFunc(res, func(a, b report.DomainCounts) int {
		if a.Total != b.Total {
			return b.Total - a.Total
		}
		return strings.Compare(a.Domain, b.Domain)
	})
	return res
}

func (d *dwcacheck) saveDomains(doms []report.DomainCounts) (string, error) {
	w, err := tsvio.Create(d.cfg.OutputDir, "check_all_domains.tsv",
		"domain", "total", "ok", "redirect", "not_found", "error")
	if err != nil {
		return "", err
	}
	for _, v := range doms {
		err = w.Write(v.Domain, strconv.Itoa(v.Total), strconv.Itoa(v.OK),
			strconv.Itoa(v.Redirect), strconv.Itoa(v.NotFound),
			strconv.Itoa(v.Error))
		if err != nil {
			w.Close()
			return "", err
		}
	}
	return w.Path(), w.Close()
}

// resolve runs JobsNum resolvers concurrently and hands results to fn in
// the order of srcs, so the output does not depend on JobsNum.
func (d *dwcacheck) resolve(
	ctx context.Context,
	r ident.Resolver,
	srcs []sources,
	fn func(ident.Result) error,
) error {
	type job struct {
		idx int
		src sources
	}
	type done struct {
		idx int
		res ident.Result
	}

	chIn := make(chan job)
	chOut := make(chan done)
	var wg sync.WaitGroup

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		defer close(chIn)
		for i, v := range srcs {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case chIn <- job{idx: i, src: v}:
			}
		}
		return nil
	})

	for range d.cfg.JobsNum {
		wg.Add(1)
		g.Go(func() error {
			defer wg.Done()
			for j := range chIn {
				res := r.Resolve(ctx, j.src.value)
				if err := ctx.Err(); err != nil {
					return err
				}
				res.Datasets = j.src.datasets
				select {
				case <-ctx.Done():
					return ctx.Err()
				case chOut <- done{idx: j.idx, res: res}:
				}
			}
			return nil
		})
	}

	go func() {
		wg.Wait()
		close(chOut)
	}()

	g.Go(func() error {
		pending := make(map[int]ident.Result)
		next := 0
		for v := range chOut {
			pending[v.idx] = v.res
			for {
				res, ok := pending[next]
				if !ok {
					break
				}
				delete(pending, next)
				next++
				if err := fn(res); err != nil {
					return err
				}
			}
		}
		return nil
	})

	return g.Wait()
}
