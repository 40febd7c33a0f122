package str_test

import (
	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"

	"github.com/gnames/dwcacheck/internal/str"
)

var _ = Describe("Str", func() {
	It("shortens long strings", func() {
		Expect(str.ShortTitle("short", 10)).To(Equal("short"))
		Expect(str.ShortTitle("Museo Nacional", 10)).To(Equal("Museo N..."))
		Expect(str.ShortTitle("Quindío", 3)).To(Equal("Qui"))
	})

	It("pads strings to a column", func() {
		Expect(str.Pad("ab", 5)).To(Equal("ab   "))
		Expect(str.Pad("abcdefgh", 6)).To(Equal("abcdefgh "))
		Expect(str.Pad("abcde", 5)).To(Equal("abcde "))
		Expect(str.Pad("íí", 4)).To(Equal("íí  "))
	})

	It("formats percents", func() {
		Expect(str.Pct(40)).To(Equal("40.0%"))
	})
})
