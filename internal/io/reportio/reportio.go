// Package reportio prints console summaries of reports.
package reportio

import (
	"fmt"
	"io"
	"strconv"

	"github.com/fatih/color"
	"github.com/gnames/dwcacheck/internal/ent/ident"
	"github.com/gnames/dwcacheck/internal/io/tsvio"
	"github.com/gnames/dwcacheck/internal/str"
	"github.com/gnames/dwcacheck/pkg/ent/report"
)

var (
	title   = color.New(color.FgGreen, color.Bold)
	section = color.New(color.FgCyan, color.Bold)
	warn    = color.New(color.FgYellow)
)

func banner(w io.Writer, s string) {
	title.Fprintln(w, str.Line(61))
	title.Fprintln(w, "  "+s)
	title.Fprintln(w, str.Line(61))
	fmt.Fprintln(w)
}

func heading(w io.Writer, s string) {
	fmt.Fprintln(w)
	section.Fprintf(w, "=== %s ===\n", s)
}

// line prints a label padded to a fixed width and a value.
func line(w io.Writer, label string, val any) {
	fmt.Fprintf(w, "%s%v\n", str.Pad(label, 36), val)
}

func withPct(n, total int) string {
	return fmt.Sprintf("%d (%s)", n, str.Pct(report.Percent(n, total)))
}

func files(w io.Writer, paths ...string) {
	fmt.Fprintln(w)
	fmt.Fprintln(w, "TSV files written to:")
	for _, v := range paths {
		if v != "" {
			fmt.Fprintf(w, "  %s\n", v)
		}
	}
}

// Taxa prints the number of collected taxa.
func Taxa(w io.Writer, r report.Taxa) {
	fmt.Fprintf(w, "Total taxa: %d\n", len(r.Taxa))
	fmt.Fprintf(w, "TSV written to: %s\n", r.Path)
}

// CheckRows prints resolution results of one dataset as tab-separated rows.
func CheckRows(w io.Writer, r report.Check) error {
	tw := tsvio.New(w)
	err := tw.Write("identifier", "http_code", "final_url", "status")
	if err != nil {
		return err
	}
	for _, v := range r.Results {
		err = tw.Write(v.Identifier, strconv.Itoa(v.Code), v.FinalURL,
			string(v.Status))
		if err != nil {
			return err
		}
	}
	return tw.Flush()
}

func counts(w io.Writer, c ident.Counts) {
	line(w, "OK (200, no redirect):", c.OK)
	line(w, "Redirected:", c.Redirect)
	line(w, "Not found (404):", c.NotFound)
	line(w, "Other errors:", c.Error)
	line(w, "Total:", c.Total)
}

// Check prints the summary of one dataset resolution.
func Check(w io.Writer, r report.Check) {
	heading(w, "Summary")
	counts(w, r.Counts)
}

// CheckAll prints the summary of resolution of all datasets.
func CheckAll(w io.Writer, r report.CheckAll) {
	banner(w, "IDENTIFIER URL RESOLUTION CHECK ACROSS ALL DATASETS")
	line(w, "Datasets scanned:", r.DatasetsNum)
	line(w, "Datasets with identifiers:", r.WithIDs)
	line(w, "Datasets without identifiers:", r.WithoutIDs)

	heading(w, "Overall Summary")
	counts(w, r.Counts)

	heading(w, "Results by domain")
	fmt.Fprintln(w)
	fmt.Fprintln(w, str.Pad("Domain", 45)+str.Pad("Total", 8)+
		str.Pad("OK", 8)+str.Pad("Redir", 8)+str.Pad("404", 8)+"Error")
	fmt.Fprintln(w, str.Line(85))
	for _, v := range r.Domains {
		fmt.Fprintln(w, str.Pad(v.Domain, 45)+
			str.Pad(strconv.Itoa(v.Total), 8)+
			str.Pad(strconv.Itoa(v.OK), 8)+
			str.Pad(strconv.Itoa(v.Redirect), 8)+
			str.Pad(strconv.Itoa(v.NotFound), 8)+
			strconv.Itoa(v.Error))
	}
	files(w, r.ResultsPath, r.DomainsPath)
}

// OA prints the summary of open access lookups.
func OA(w io.Writer, r report.OA) {
	banner(w, "OPEN ACCESS CHECK VIA UNPAYWALL")
	line(w, "Total unique DOIs found:", r.Total)
	if r.Total == 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, "No DOIs to check.")
		return
	}

	heading(w, "Summary")
	line(w, "Total DOIs checked:", r.Total)
	line(w, "Open access:", withPct(r.Open, r.Total))
	line(w, "Closed:", r.Closed)
	line(w, "Errors:", r.Errors)

	heading(w, "By OA status")
	fmt.Fprintln(w, str.Pad("Status", 21)+"Count")
	fmt.Fprintln(w, str.Line(30))
	for _, v := range r.Statuses {
		fmt.Fprintln(w, str.Pad(v.Key, 21)+strconv.Itoa(v.Count))
	}
	if r.Errors > 0 {
		fmt.Fprintln(w, str.Pad("error", 21)+strconv.Itoa(r.Errors))
	}
	files(w, r.ResultsPath, r.SummaryPath)
}

func domainTable(w io.Writer, cs []report.Count) {
	fmt.Fprintln(w, str.Pad("Domain", 50)+"Count")
	fmt.Fprintln(w, str.Line(60))
	for _, v := range cs {
		fmt.Fprintln(w, str.Pad(v.Key, 50)+strconv.Itoa(v.Count))
	}
}

// Classify prints identifiers of one dataset grouped by domain.
func Classify(w io.Writer, r report.Classify) {
	fmt.Fprintf(w, "Dataset: %s\n", r.Dataset)
	fmt.Fprintf(w, "Unique identifiers: %d\n", r.Total)

	cs := make([]report.Count, len(r.Domains))
	for i, v := range r.Domains {
		cs[i] = report.Count{Key: v.Domain, Count: len(v.Identifiers)}
	}
	heading(w, "Summary by domain")
	domainTable(w, cs)

	heading(w, "Identifiers by domain")
	for _, v := range r.Domains {
		fmt.Fprintf(w, "\n[%s] (%d)\n", v.Domain, len(v.Identifiers))
		for _, id := range v.Identifiers {
			fmt.Fprintf(w, "  %s\n", id)
		}
	}
}

// ClassifyAll prints domains of identifiers of all datasets.
func ClassifyAll(w io.Writer, r report.ClassifyAll) {
	banner(w, "IDENTIFIER CLASSIFICATION ACROSS ALL DATASETS")
	line(w, "Datasets scanned:", r.DatasetsNum)
	line(w, "Datasets with identifiers:", r.WithIDs)
	line(w, "Datasets without identifiers:", r.WithoutIDs)
	line(w, "Total unique identifiers:", r.Total)

	heading(w, "Global domain summary")
	domainTable(w, r.Domains)
	fmt.Fprintln(w, str.Line(60))
	fmt.Fprintln(w, str.Pad("TOTAL", 50)+strconv.Itoa(r.Total))

	heading(w, "Per-dataset breakdown")
	for _, v := range r.PerDataset {
		switch {
		case !v.HasField:
			fmt.Fprintf(w, "%s: no identifier field\n", v.Name)
		case v.Count == 0:
			fmt.Fprintf(w, "%s: 0 identifiers\n", v.Name)
		default:
			fmt.Fprintf(w, "%s (%d identifiers)\n", v.Name, v.Count)
			for _, d := range v.Domains {
				fmt.Fprintf(w, "  %s%d\n", str.Pad(d.Key, 48), d.Count)
			}
		}
	}
	files(w, r.IdentifiersPath, r.DomainsPath)
}

// Refs prints counts of references without identifiers.
func Refs(w io.Writer, r report.Refs) {
	for _, v := range r.Datasets {
		switch {
		case !v.HasColumn:
			warn.Fprintf(w, "  %s: NO identifier column (%d references)\n",
				v.Dataset, v.Total)
		case v.Without > 0:
			fmt.Fprintf(w, "  %s: %d/%d references lack identifiers\n",
				v.Dataset, v.Without, v.Total)
		}
	}

	heading(w, "Summary")
	line(w, "Total datasets:", r.DatasetsNum)
	line(w, "  With identifier column:", r.AllHave+r.SomeMissing)
	line(w, "    All references have id:", r.AllHave)
	line(w, "    Some references missing id:", r.SomeMissing)
	line(w, "  Without identifier column:", r.NoColumn)
	fmt.Fprintln(w)
	line(w, "Total reference rows:", r.Total)
	line(w, "  With identifier:", withPct(r.With, r.Total))
	line(w, "  Without identifier:", withPct(r.Without, r.Total))
	files(w, r.Path)
}

// NoRefs prints taxa without references.
func NoRefs(w io.Writer, r report.NoRefs) {
	banner(w, "TAXA WITHOUT REFERENCES")
	line(w, "Datasets scanned:", r.DatasetsNum)
	line(w, "Total taxa:", r.Total)
	line(w, "Taxa with references:", r.With)
	line(w, "Taxa without references:", r.Without)
	if r.Total > 0 {
		line(w, "Percentage missing:", str.Pct(report.Percent(r.Without, r.Total)))
	}
	if r.Path != "" {
		fmt.Fprintf(w, "\nDetailed results saved to: %s\n", r.Path)
	}

	heading(w, "Per-dataset breakdown")
	fmt.Fprintln(w)
	fmt.Fprintln(w, str.Pad("Dataset", 40)+str.Pad("Total", 8)+
		str.Pad("With", 8)+str.Pad("Without", 8)+"%")
	fmt.Fprintln(w, str.Line(72))
	for _, v := range r.Datasets {
		fmt.Fprintln(w, str.Pad(v.Name, 40)+
			str.Pad(strconv.Itoa(v.Total), 8)+
			str.Pad(strconv.Itoa(v.With()), 8)+
			str.Pad(strconv.Itoa(v.Without()), 8)+
			str.Pct(report.Percent(v.Without(), v.Total)))
	}

	if r.Without == 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, "All taxa have at least one reference.")
		return
	}
	heading(w, "Taxa without references (details)")
	for _, v := range r.Datasets {
		if v.Without() == 0 {
			continue
		}
		fmt.Fprintf(w, "\n%s (%d taxa without references):\n",
			v.Name, v.Without())
		for _, t := range v.Missing {
			fmt.Fprintf(w, "  %s", t.ScientificName)
			if t.TaxonRank != "" {
				fmt.Fprintf(w, " [%s]", t.TaxonRank)
			}
			fmt.Fprintln(w)
		}
	}
}

// Types prints type specimen institutions and taxa without types.
func Types(w io.Writer, r report.Types) {
	heading(w, "Normalised institution summary (by acronym)")
	fmt.Fprintf(w, "%-20s %6s  %s\n", "Acronym", "Types", "Variants")
	fmt.Fprintln(w, str.Line(90))
	for _, v := range r.Acronyms {
		var note string
		if n := len(v.Variants); n > 1 {
			note = fmt.Sprintf("(%d variants)", n)
		}
		fmt.Fprintf(w, "%-20s %6d  %s\n", str.ShortTitle(v.Acronym, 20),
			v.Count, note)
	}
	if r.EmptyInstitutions > 0 {
		fmt.Fprintf(w, "%-20s %6d\n", "(empty/missing)", r.EmptyInstitutions)
	}

	heading(w, "Type specimen overview")
	line(w, "Total datasets:", r.DatasetsNum)
	line(w, "  With TypesAndSpecimen extension:", r.WithExt)
	line(w, "  Without:", r.WithoutExt)
	line(w, "Total type specimen rows:", r.Rows)
	line(w, "Distinct raw institution strings:", len(r.Institutions))
	line(w, "Distinct acronyms (normalised):", len(r.Acronyms))

	heading(w, "Taxa with/without type information")
	line(w, "Total taxa:", r.TotalTaxa)
	line(w, "  With type info:", withPct(r.WithTypes, r.TotalTaxa))
	line(w, "  Without type info:", withPct(r.WithoutTypes, r.TotalTaxa))

	heading(w, "Per-dataset breakdown")
	fmt.Fprintf(w, "%-40s %7s %7s %7s %s\n",
		"Dataset", "Total", "With", "Without", "Has ext?")
	fmt.Fprintln(w, str.Line(80))
	for _, v := range r.PerDataset {
		ext := "no"
		if v.HasExtension {
			ext = "yes"
		}
		fmt.Fprintf(w, "%-40s %7d %7d %7d %s\n", str.ShortTitle(v.Name, 40),
			v.Total, v.Total-v.Without, v.Without, ext)
	}
	files(w, r.InstitutionsPath, r.NormalisedPath, r.TaxaPath)
}
