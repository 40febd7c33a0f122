package institution_test

import (
	. "github.com/onsi/ginkgo"
	. "github.com/onsi/ginkgo/extensions/table"
	. "github.com/onsi/gomega"

	"github.com/gnames/dwcacheck/internal/ent/institution"
)

var _ = Describe("Institution", func() {
	DescribeTable("Acronym",
		func(raw, acr string) {
			Expect(institution.Acronym(raw)).To(Equal(acr))
		},
		Entry("code with dash",
			"BMNH - The Natural History Museum, London", "BMNH"),
		Entry("code without dash",
			"BMNH The Natural History Museum, London", "BMNH"),
		Entry("code in parentheses",
			"Smithsonian Institution (USNM)", "USNM"),
		Entry("mixed case code",
			"Instituto Alexander von Humboldt (IAvH)", "IAvH"),
		Entry("accented code",
			"Universidad del Quindío (UniQuindío)", "UniQuindío"),
		Entry("quoted", `"MNHN - Muséum national"`, "MNHN"),
		Entry("no pattern", "Museo Nacional", "Museo Nacional"),
		Entry("no pattern with spaces", "  Museo Nacional ", "Museo Nacional"),
	)

	Describe("Groups", func() {
		It("groups variants by acronym", func() {
			g := institution.NewGroups()
			g.Add("BMNH - The Natural History Museum, London")
			g.Add("Smithsonian Institution (USNM)")
			g.Add("BMNH The Natural History Museum")
			g.Add("BMNH - The Natural History Museum, London")
			Expect(g.Len()).To(Equal(2))

			res := g.Sorted()
			Expect(res[0].Acronym).To(Equal("BMNH"))
			Expect(res[0].Count).To(Equal(3))
			Expect(res[0].Variants).To(Equal([]string{
				"BMNH - The Natural History Museum, London",
				"BMNH The Natural History Museum",
			}))
			Expect(res[1]).To(Equal(institution.Group{
				Acronym:  "USNM",
				Count:    1,
				Variants: []string{"Smithsonian Institution (USNM)"},
			}))
		})
	})
})
