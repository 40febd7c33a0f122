package ident_test

import (
	"errors"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"

	. "github.com/gnames/dwcacheck/internal/ent/ident"
)

var _ = Describe("Ident", func() {
	Describe("EnsureScheme", func() {
		It("adds https to identifiers without scheme", func() {
			Expect(EnsureScheme("doi.org/10.1/abc")).
				To(Equal("https://doi.org/10.1/abc"))
			Expect(EnsureScheme("localhost:8080/x")).
				To(Equal("https://localhost:8080/x"))
		})

		It("keeps existing scheme", func() {
			Expect(EnsureScheme("http://example.org")).To(Equal("http://example.org"))
			Expect(EnsureScheme("urn:lsid:zoobank.org:pub:1")).
				To(Equal("urn:lsid:zoobank.org:pub:1"))
		})
	})

	Describe("Candidates", func() {
		It("adds http twin for https", func() {
			Expect(Candidates("https://a.org/x?y=1")).
				To(Equal([]string{"https://a.org/x?y=1", "http://a.org/x?y=1"}))
		})

		It("does not add anything for http", func() {
			Expect(Candidates("http://a.org")).To(Equal([]string{"http://a.org"}))
		})
	})

	Describe("Classify", func() {
		u := "https://a.org/x"

		It("classifies transport errors first", func() {
			err := errors.New("timeout")
			Expect(Classify(u, 200, u, err)).To(Equal(StatusError))
		})

		It("distinguishes direct and redirected success", func() {
			Expect(Classify(u, 200, u, nil)).To(Equal(StatusOK))
			Expect(Classify(u, 200, "https://b.org/y", nil)).
				To(Equal(StatusRedirectOK))
			Expect(Classify(u, 200, "http://a.org/x", nil)).
				To(Equal(StatusRedirectOK))
		})

		It("classifies other codes", func() {
			for _, code := range []int{301, 302, 303, 307, 308} {
				Expect(Classify(u, code, u, nil)).To(Equal(StatusRedirect))
			}
			Expect(Classify(u, 404, u, nil)).To(Equal(StatusNotFound))
			Expect(Classify(u, 503, u, nil)).To(Equal(Status("http_503")))
			Expect(Classify(u, 405, u, nil)).To(Equal(StatusHTTP(405)))
		})
	})

	Describe("Domain", func() {
		It("returns host", func() {
			Expect(Domain("https://doi.org/10.1/abc")).To(Equal("doi.org"))
			Expect(Domain("http://Example.org:8080/x")).To(Equal("Example.org"))
		})

		It("returns sentinel for URLs without host", func() {
			Expect(Domain("urn:lsid:x")).To(Equal(UnknownDomain))
			Expect(Domain("https://%zz")).To(Equal(UnknownDomain))
		})
	})

	Describe("Counts", func() {
		It("aggregates statuses into buckets", func() {
			var c Counts
			for _, s := range []Status{
				StatusOK, StatusRedirect, StatusRedirectOK, StatusNotFound,
				StatusError, StatusHTTP(500),
			} {
				c.Add(s)
			}
			Expect(c).To(Equal(Counts{
				OK: 1, Redirect: 2, NotFound: 1, Error: 2, Total: 6,
			}))
		})
	})
})
