package dwcacheck_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"

	"github.com/gnames/dwcacheck/internal/ent/doi"
	"github.com/gnames/dwcacheck/internal/ent/dwca"
	"github.com/gnames/dwcacheck/internal/ent/ident"
	dwcacheck "github.com/gnames/dwcacheck/pkg"
	"github.com/gnames/dwcacheck/pkg/config"
	"github.com/gnames/dwcacheck/pkg/ent/report"
)

const metaXML = `<?xml version="1.0" encoding="UTF-8"?>
<archive xmlns="http://rs.tdwg.org/dwc/text/">
  <core rowType="http://rs.tdwg.org/dwc/terms/Taxon">
    <id index="0"/>
    <field index="1" term="http://rs.tdwg.org/dwc/terms/scientificName"/>
    <field index="2" term="http://rs.tdwg.org/dwc/terms/taxonRank"/>
  </core>
  <extension rowType="http://rs.gbif.org/terms/1.0/Reference">
    <coreid index="0"/>
    <field index="1" term="http://purl.org/dc/terms/identifier"/>
  </extension>
  <extension rowType="http://rs.gbif.org/terms/1.0/TypesAndSpecimen">
    <coreid index="0"/>
    <field index="1" term="http://rs.tdwg.org/dwc/terms/institutionCode"/>
  </extension>
</archive>
`

const metaNoIDs = `<?xml version="1.0" encoding="UTF-8"?>
<archive xmlns="http://rs.tdwg.org/dwc/text/">
  <core rowType="http://rs.tdwg.org/dwc/terms/Taxon">
    <id index="0"/>
    <field index="1" term="http://rs.tdwg.org/dwc/terms/scientificName"/>
  </core>
  <extension rowType="http://rs.gbif.org/terms/1.0/Reference">
    <coreid index="0"/>
  </extension>
</archive>
`

func writeFile(path, content string) {
	Expect(os.MkdirAll(filepath.Dir(path), 0755)).To(Succeed())
	Expect(os.WriteFile(path, []byte(content), 0644)).To(Succeed())
}

func readFile(path string) string {
	data, err := os.ReadFile(path)
	Expect(err).ToNot(HaveOccurred())
	return string(data)
}

// resolver counts requests by identifier.
type resolver struct {
	mu    sync.Mutex
	calls map[string]int
}

func (r *resolver) Resolve(_ context.Context, id string) ident.Result {
	r.mu.Lock()
	r.calls[id]++
	r.mu.Unlock()

	u := ident.EnsureScheme(id)
	res := ident.Result{Identifier: id, URL: u, FinalURL: u, Code: 200}
	if strings.Contains(id, "missing") {
		res.Code = 404
	}
	res.Status = ident.Classify(u, res.Code, res.FinalURL, nil)
	return res
}

// interrupter cancels the run while resolving identifiers with "missing"
// and returns what an aborted request gives.
type interrupter struct {
	cancel context.CancelFunc
}

func (r *interrupter) Resolve(_ context.Context, id string) ident.Result {
	u := ident.EnsureScheme(id)
	if strings.Contains(id, "missing") {
		r.cancel()
		err := context.Canceled
		return ident.Result{Identifier: id, URL: u, FinalURL: u,
			Status: ident.Classify(u, 0, u, err)}
	}
	return ident.Result{Identifier: id, URL: u, FinalURL: u, Code: 200,
		Status: ident.Classify(u, 200, u, nil)}
}

// checker returns gold for DOIs ending with "a" and errors for "err".
type checker struct {
	calls []string
}

func (c *checker) Check(_ context.Context, d string) doi.OA {
	c.calls = append(c.calls, d)
	res := doi.OA{DOI: d}
	switch {
	case strings.HasSuffix(d, "err"):
		res.Err = errors.New("bad response")
	case strings.HasSuffix(d, "a"):
		res.IsOA, res.Status = true, "gold"
	default:
		res.Status = "closed"
	}
	return res
}

var _ = Describe("DwCACheck", func() {
	var (
		base, out string
		gnd       dwcacheck.DwCACheck
	)

	BeforeEach(func() {
		var err error
		base, err = os.MkdirTemp("", "dwcacheck")
		Expect(err).ToNot(HaveOccurred())
		out = filepath.Join(base, "out")

		one := filepath.Join(base, "one")
		writeFile(filepath.Join(one, "meta.xml"), metaXML)
		writeFile(filepath.Join(one, "taxon.txt"),
			"id\tscientificName\ttaxonRank\n"+
				"1\tBus cus\tspecies\n"+
				"2\tAus bus\tspecies\n"+
				"3\tAus\tgenus\n"+
				"4\tCus dus\tspecies\n"+
				"5\tDus eus\tspecies\n")
		writeFile(filepath.Join(one, "reference.txt"),
			"coreid\tidentifier\n"+
				"1\tdoi.org/10.1234/a\n"+
				"2\tdoi.org/10.1234/a\n"+
				"3\thttps://example.org/missing\n")
		writeFile(filepath.Join(one, "typesandspecimen.txt"),
			"coreid\tinstitutionCode\n"+
				"1\tBMNH - The Natural History Museum, London\n"+
				"1\tBMNH The Natural History Museum\n"+
				"2\tSmithsonian Institution (USNM)\n"+
				"4\t\n")

		two := filepath.Join(base, "two")
		writeFile(filepath.Join(two, "meta.xml"), metaXML)
		writeFile(filepath.Join(two, "taxon.txt"),
			"id\tscientificName\ttaxonRank\n"+
				"a1\tAus aus\tspecies\n")
		writeFile(filepath.Join(two, "reference.txt"),
			"coreid\tidentifier\n"+
				"a1\tdoi.org/10.1234/a\n"+
				"a1\t\n"+
				"a1\t10.5555/b\n"+
				"a1\t10.5555/err\n")

		three := filepath.Join(base, "three")
		writeFile(filepath.Join(three, "meta.xml"), metaNoIDs)
		writeFile(filepath.Join(three, "taxon.txt"),
			"id\tscientificName\n"+
				"t1\tEus fus\n")
		writeFile(filepath.Join(three, "reference.txt"),
			"coreid\ttitle\n"+
				"t1\tA title\n")

		cfg := config.New(
			config.OptBaseDir(base),
			config.OptOutputDir(out),
			config.OptJobsNum(3),
		)
		gnd = dwcacheck.New(cfg)
	})

	AfterEach(func() {
		Expect(os.RemoveAll(base)).To(Succeed())
	})

	Describe("Datasets", func() {
		It("finds datasets", func() {
			dss, err := gnd.Datasets()
			Expect(err).ToNot(HaveOccurred())
			Expect(dss).To(HaveLen(3))
			Expect(dss[0].Name).To(Equal("one"))
		})

		It("fails for unknown dataset", func() {
			_, err := gnd.Dataset("four")
			Expect(err).To(HaveOccurred())
		})
	})

	Describe("AllTaxa", func() {
		It("collects taxa sorted by name", func() {
			res, err := gnd.AllTaxa()
			Expect(err).ToNot(HaveOccurred())
			Expect(res.Taxa).To(HaveLen(7))
			Expect(res.Taxa[0].ScientificName).To(Equal("Aus"))
			Expect(res.Taxa[1].ScientificName).To(Equal("Aus aus"))
			Expect(res.Taxa[1].Dataset).To(Equal("two"))
			Expect(res.Taxa[0].Canonical).To(BeEmpty())

			tsv := readFile(filepath.Join(out, "all_taxa.tsv"))
			Expect(tsv).To(HavePrefix("id\tscientificName\tdataset\n3\tAus\tone\n"))
		})

		It("adds canonical forms", func() {
			gnd = dwcacheck.New(config.New(
				config.OptBaseDir(base),
				config.OptOutputDir(out),
				config.OptWithCanonical(true),
			))
			res, err := gnd.AllTaxa()
			Expect(err).ToNot(HaveOccurred())
			Expect(res.Taxa[1].Canonical).To(Equal("Aus aus"))
			Expect(res.Taxa[1].NameID).To(HaveLen(36))

			tsv := readFile(res.Path)
			Expect(tsv).To(HavePrefix(
				"id\tscientificName\tdataset\tcanonical\tname_id\n"))
		})
	})

	Describe("CheckIdentifiers", func() {
		It("resolves identifiers of a dataset", func() {
			r := &resolver{calls: make(map[string]int)}
			ds, err := gnd.Dataset("one")
			Expect(err).ToNot(HaveOccurred())

			res, ok, err := gnd.CheckIdentifiers(context.Background(), r, ds)
			Expect(err).ToNot(HaveOccurred())
			Expect(ok).To(BeTrue())
			Expect(res.Results).To(HaveLen(2))
			Expect(res.Results[0].URL).To(Equal("https://doi.org/10.1234/a"))
			Expect(res.Counts).To(Equal(ident.Counts{OK: 1, NotFound: 1, Total: 2}))
		})

		It("reports datasets without identifier column", func() {
			r := &resolver{calls: make(map[string]int)}
			ds, _ := gnd.Dataset("three")
			_, ok, err := gnd.CheckIdentifiers(context.Background(), r, ds)
			Expect(err).ToNot(HaveOccurred())
			Expect(ok).To(BeFalse())
			Expect(r.calls).To(BeEmpty())
		})
	})

	Describe("CheckAll", func() {
		It("resolves every identifier once", func() {
			r := &resolver{calls: make(map[string]int)}
			res, err := gnd.CheckAll(context.Background(), r)
			Expect(err).ToNot(HaveOccurred())
			Expect(res.DatasetsNum).To(Equal(3))
			Expect(res.WithIDs).To(Equal(2))
			Expect(res.WithoutIDs).To(Equal(1))
			Expect(res.Counts.Total).To(Equal(4))
			Expect(r.calls["doi.org/10.1234/a"]).To(Equal(1))

			tsv := readFile(res.ResultsPath)
			lines := strings.Split(strings.TrimSpace(tsv), "\n")
			Expect(lines).To(HaveLen(5))
			Expect(lines[1]).To(Equal("doi.org/10.1234/a\t200\t" +
				"https://doi.org/10.1234/a\tok\tone, two"))
			Expect(lines[2]).To(HavePrefix("https://example.org/missing\t404\t"))

			Expect(res.Domains[0].Domain).To(Equal("10.5555"))
			Expect(res.Domains[0].Total).To(Equal(2))
			doms := readFile(res.DomainsPath)
			Expect(doms).To(HavePrefix(
				"domain\ttotal\tok\tredirect\tnot_found\terror\n" +
					"10.5555\t2\t2\t0\t0\t0\n"))
		})
	})

	Describe("CheckAll interrupted", func() {
		It("does not save identifiers cut short by cancellation", func() {
			for range 20 {
				ctx, cancel := context.WithCancel(context.Background())
				res, err := gnd.CheckAll(ctx, &interrupter{cancel: cancel})
				cancel()
				Expect(err).To(MatchError(context.Canceled))

				tsv := readFile(res.ResultsPath)
				Expect(tsv).ToNot(ContainSubstring("missing"))
				Expect(tsv).ToNot(ContainSubstring("\terror\t"))
				Expect(res.Counts.Error).To(Equal(0))
			}
		})
	})

	Describe("CheckOA", func() {
		It("checks every DOI once", func() {
			c := &checker{}
			res, err := gnd.CheckOA(context.Background(), c)
			Expect(err).ToNot(HaveOccurred())
			Expect(c.calls).To(Equal([]string{
				"10.1234/a", "10.5555/b", "10.5555/err",
			}))
			Expect(res.Total).To(Equal(3))
			Expect(res.Open).To(Equal(1))
			Expect(res.Closed).To(Equal(1))
			Expect(res.Errors).To(Equal(1))

			tsv := readFile(res.ResultsPath)
			Expect(tsv).To(ContainSubstring(
				"10.1234/a\ttrue\tgold\t\t\tone, two\n"))
			Expect(tsv).To(ContainSubstring(
				"10.5555/err\t\terror\t\t\ttwo\n"))

			Expect(readFile(res.SummaryPath)).To(Equal(
				"oa_status\tcount\nclosed\t1\ngold\t1\nerror\t1\n"))
		})

		It("does not write files without DOIs", func() {
			Expect(os.RemoveAll(filepath.Join(base, "one"))).To(Succeed())
			Expect(os.RemoveAll(filepath.Join(base, "two"))).To(Succeed())
			res, err := gnd.CheckOA(context.Background(), &checker{})
			Expect(err).ToNot(HaveOccurred())
			Expect(res.Total).To(Equal(0))
			_, err = os.Stat(filepath.Join(out, "check_oa_results.tsv"))
			Expect(err).To(HaveOccurred())
		})
	})

	Describe("Classify", func() {
		It("groups identifiers of a dataset by domain", func() {
			ds, _ := gnd.Dataset("two")
			res, ok := gnd.Classify(ds)
			Expect(ok).To(BeTrue())
			Expect(res.Total).To(Equal(3))
			Expect(res.Domains[0].Domain).To(Equal("10.5555"))
			Expect(res.Domains[0].Identifiers).To(Equal([]string{
				"10.5555/b", "10.5555/err",
			}))
			Expect(res.Domains[1].Domain).To(Equal("doi.org"))
		})

		It("groups identifiers of all datasets", func() {
			res, err := gnd.ClassifyAll()
			Expect(err).ToNot(HaveOccurred())
			Expect(res.Total).To(Equal(5))
			Expect(res.WithIDs).To(Equal(2))
			Expect(res.WithoutIDs).To(Equal(1))
			Expect(res.PerDataset[1].Name).To(Equal("three"))
			Expect(res.PerDataset[1].HasField).To(BeFalse())
			Expect(res.Domains).To(Equal([]report.Count{
				{Key: "10.5555", Count: 2},
				{Key: "doi.org", Count: 2},
				{Key: "example.org", Count: 1},
			}))

			tsv := readFile(res.IdentifiersPath)
			Expect(tsv).To(ContainSubstring(
				"doi.org/10.1234/a\tdoi.org\tone\n"))
			Expect(tsv).To(ContainSubstring(
				"doi.org/10.1234/a\tdoi.org\ttwo\n"))
		})
	})

	Describe("RefsWithoutIDs", func() {
		It("counts references without identifiers", func() {
			res, err := gnd.RefsWithoutIDs()
			Expect(err).ToNot(HaveOccurred())
			Expect(res.Total).To(Equal(8))
			Expect(res.With).To(Equal(6))
			Expect(res.Without).To(Equal(2))
			Expect(res.AllHave).To(Equal(1))
			Expect(res.SomeMissing).To(Equal(1))
			Expect(res.NoColumn).To(Equal(1))

			tsv := readFile(res.Path)
			Expect(tsv).To(ContainSubstring("three\t1\t0\t1\tno\n"))
			Expect(tsv).To(ContainSubstring("two\t4\t3\t1\tyes\n"))
		})
	})

	Describe("TaxaWithoutRefs", func() {
		It("finds taxa missing from reference coreids", func() {
			ds, _ := gnd.Dataset("one")
			res, err := gnd.TaxaWithoutRefs([]dwca.Dataset{ds}, false)
			Expect(err).ToNot(HaveOccurred())
			Expect(res.Total).To(Equal(5))
			Expect(res.Without).To(Equal(2))
			Expect(res.Datasets[0].Missing[0].ScientificName).To(Equal("Cus dus"))
			Expect(res.Datasets[0].Missing[1].TaxonRank).To(Equal("species"))
			Expect(res.Path).To(BeEmpty())
		})

		It("saves taxa of all datasets", func() {
			dss, _ := gnd.Datasets()
			res, err := gnd.TaxaWithoutRefs(dss, true)
			Expect(err).ToNot(HaveOccurred())
			Expect(res.Total).To(Equal(7))
			Expect(res.Without).To(Equal(2))
			Expect(readFile(res.Path)).To(Equal(
				"dataset\ttaxon_id\tscientificName\ttaxonRank\n" +
					"one\t4\tCus dus\tspecies\n" +
					"one\t5\tDus eus\tspecies\n"))
		})
	})

	Describe("TypeSpecimens", func() {
		It("reports institutions and taxa without types", func() {
			res, err := gnd.TypeSpecimens()
			Expect(err).ToNot(HaveOccurred())
			Expect(res.WithExt).To(Equal(1))
			Expect(res.WithoutExt).To(Equal(2))
			Expect(res.Rows).To(Equal(4))
			Expect(res.EmptyInstitutions).To(Equal(1))
			Expect(res.Institutions).To(HaveLen(3))
			Expect(res.Acronyms[0].Acronym).To(Equal("BMNH"))
			Expect(res.Acronyms[0].Count).To(Equal(2))

			Expect(res.TotalTaxa).To(Equal(7))
			Expect(res.WithTypes).To(Equal(3))
			Expect(res.WithoutTypes).To(Equal(4))

			norm := readFile(res.NormalisedPath)
			Expect(norm).To(ContainSubstring("BMNH\t2\t" +
				"BMNH - The Natural History Museum, London | " +
				"BMNH The Natural History Museum\n"))

			taxa := readFile(res.TaxaPath)
			Expect(taxa).To(ContainSubstring("one\t5\tDus eus\tspecies\tyes\n"))
			Expect(taxa).To(ContainSubstring("two\ta1\tAus aus\tspecies\tyes\n"))
			Expect(taxa).To(ContainSubstring("three\tt1\tEus fus\t\tno\n"))
		})
	})
})
