package sim

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Naming", func() {
	It("should accept hierarchical CamelCase names", func() {
		Expect(func() { NameMustBeValid("Tfoil") }).NotTo(Panic())
		Expect(func() { NameMustBeValid("Tfoil.CRG.PLL4X") }).NotTo(Panic())
	})

	It("should refuse empty elements", func() {
		Expect(func() { NameMustBeValid("A..B") }).To(Panic())
		Expect(func() { NameMustBeValid("A.B.") }).To(Panic())
	})

	It("should refuse elements that do not start with a capital", func() {
		Expect(func() { NameMustBeValid("A.b") }).To(Panic())
		Expect(func() { NameMustBeValid("4X") }).To(Panic())
	})

	It("should refuse separator and quote characters in elements", func() {
		Expect(func() { NameMustBeValid("Has_Underscore") }).To(Panic())
		Expect(func() { NameMustBeValid("Has-Dash") }).To(Panic())
		Expect(func() { NameMustBeValid("Has[0]") }).To(Panic())
	})

	It("should build dotted names, treating an empty parent as the root",
		func() {
			Expect(BuildName("", "Tfoil")).To(Equal("Tfoil"))
			Expect(BuildName("Tfoil.CRG", "PLL")).To(Equal("Tfoil.CRG.PLL"))
		})
})
