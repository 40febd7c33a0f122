package unpaywallio_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"time"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"

	"github.com/gnames/dwcacheck/internal/io/unpaywallio"
	"github.com/gnames/dwcacheck/pkg/config"
)

var _ = Describe("Unpaywallio", func() {
	var (
		srv   *httptest.Server
		mu    sync.Mutex
		paths []string
		query []string
	)

	BeforeEach(func() {
		paths, query = nil, nil
		srv = httptest.NewServer(http.HandlerFunc(
			func(w http.ResponseWriter, r *http.Request) {
				mu.Lock()
				paths = append(paths, r.URL.Path)
				query = append(query, r.URL.Query().Get("email"))
				mu.Unlock()

				switch r.URL.Path {
				case "/v2/10.1234/abc":
					w.Write([]byte(`{"doi":"10.1234/abc","is_oa":true,
						"oa_status":"gold","journal_name":"ZooKeys",
						"publisher":"Pensoft"}`))
				case "/v2/10.1234/closed":
					w.Write([]byte(`{"is_oa":false,"oa_status":"closed",
						"journal_name":null}`))
				case "/v2/10.1234/nofield":
					w.Write([]byte(`{"oa_status":"gold"}`))
				case "/v2/10.1234/empty":
					w.WriteHeader(http.StatusOK)
				case "/v2/10.1234/broken":
					w.Write([]byte(`{"is_oa":`))
				default:
					http.NotFound(w, r)
				}
			}))
	})

	AfterEach(func() {
		srv.Close()
	})

	cfg := func(delay time.Duration) config.Config {
		return config.New(
			config.OptOAURL(srv.URL+"/v2/"),
			config.OptOAEmail("test@example.org"),
			config.OptOADelay(delay),
		)
	}

	It("reads open access data for lower-cased DOI", func() {
		c := unpaywallio.New(cfg(0))
		res := c.Check(context.Background(), "10.1234/ABC")
		Expect(res.Err).ToNot(HaveOccurred())
		Expect(res.DOI).To(Equal("10.1234/ABC"))
		Expect(res.IsOA).To(BeTrue())
		Expect(res.Status).To(Equal("gold"))
		Expect(res.Journal).To(Equal("ZooKeys"))
		Expect(res.Publisher).To(Equal("Pensoft"))
		Expect(paths).To(Equal([]string{"/v2/10.1234/abc"}))
		Expect(query).To(Equal([]string{"test@example.org"}))
	})

	It("reads closed access with missing fields", func() {
		res := unpaywallio.New(cfg(0)).Check(context.Background(), "10.1234/closed")
		Expect(res.Err).ToNot(HaveOccurred())
		Expect(res.IsOA).To(BeFalse())
		Expect(res.Status).To(Equal("closed"))
		Expect(res.Journal).To(Equal(""))
		Expect(res.Publisher).To(Equal(""))
	})

	It("treats bad responses as errors", func() {
		c := unpaywallio.New(cfg(0))
		for _, d := range []string{
			"10.1234/nofield", "10.1234/empty", "10.1234/broken",
			"10.1234/missing",
		} {
			res := c.Check(context.Background(), d)
			Expect(res.Err).To(HaveOccurred(), d)
			Expect(res.IsOA).To(BeFalse())
		}
	})

	It("waits between requests", func() {
		c := unpaywallio.New(cfg(50 * time.Millisecond))
		start := time.Now()
		c.Check(context.Background(), "10.1234/abc")
		c.Check(context.Background(), "10.1234/abc")
		c.Check(context.Background(), "10.1234/abc")
		Expect(time.Since(start)).To(BeNumerically(">=", 100*time.Millisecond))
	})
})
