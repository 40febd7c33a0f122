package dwcacheck

import (
	"context"
	"log/slog"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/gnames/dwcacheck/internal/ent/doi"
	"github.com/gnames/dwcacheck/internal/io/dwcaio"
	"github.com/gnames/dwcacheck/internal/io/tsvio"
	"github.com/gnames/dwcacheck/pkg/ent/report"
)

// CheckOA finds DOIs among identifiers of all datasets and checks their
// open access status. Files are not written if there are no DOIs.
func (d *dwcacheck) CheckOA(
	ctx context.Context,
	c doi.OAChecker,
) (report.OA, error) {
	var res report.OA
	dss, err := d.Datasets()
	if err != nil {
		return res, err
	}

	coll := newCollection()
	for _, ds := range dss {
		ids, _ := dwcaio.Identifiers(ds)
		for _, v := range ids {
			if id, ok := doi.Extract(v); ok {
				coll.add(id, ds.Name)
			}
		}
	}
	res.Total = len(coll.vals)
	if res.Total == 0 {
		return res, nil
	}
	slog.Info("Checking open access status",
		"dois", humanize.Comma(int64(res.Total)))

	w, err := tsvio.Create(d.cfg.OutputDir, "check_oa_results.tsv",
		"doi", "is_oa", "oa_status", "journal", "publisher", "datasets")
	if err != nil {
		return res, err
	}
	res.ResultsPath = w.Path()
	defer w.Close()

	statuses := make(map[string]int)
	for i, v := range coll.vals {
		if err = ctx.Err(); err != nil {
			return res, err
		}

		oa := c.Check(ctx, v.value)
		oa.Datasets = v.datasets
		names := strings.Join(oa.Datasets, ", ")
		if oa.Err != nil {
			slog.Warn("Cannot check DOI", "doi", v.value, "error", oa.Err)
			res.Errors++
			err = w.Write(v.value, "", "error", "", "", names)
		} else {
			if oa.IsOA {
				res.Open++
			} else {
				res.Closed++
			}
			statuses[oa.Status]++
			err = w.Write(v.value, strconv.FormatBool(oa.IsOA), oa.Status,
				oa.Journal, oa.Publisher, names)
		}
		if err != nil {
			return res, err
		}
		if err = w.Flush(); err != nil {
			return res, err
		}

		if n := i + 1; n%progressStep == 0 {
			slog.Info("Checked DOIs",
				"checked", humanize.Comma(int64(n)),
				"total", humanize.Comma(int64(res.Total)),
			)
		}
	}
	if err = w.Close(); err != nil {
		return res, err
	}

	res.Statuses = report.SortCounts(statuses)
	res.SummaryPath, err = d.saveOASummary(res)
	return res, err
}

func (d *dwcacheck) saveOASummary(res report.OA) (string, error) {
	w, err := tsvio.Create(d.cfg.OutputDir, "check_oa_summary.tsv",
		"oa_status", "count")
	if err != nil {
		return "", err
	}
	defer w.Close()

	for _, v := range res.Statuses {
		if err = w.Write(v.Key, strconv.Itoa(v.Count)); err != nil {
			return "", err
		}
	}
	if res.Errors > 0 {
		if err = w.Write("error", strconv.Itoa(res.Errors)); err != nil {
			return "", err
		}
	}
	return w.Path(), w.Close()
}
