package sim

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Freq", func() {
	It("should get period", func() {
		var f = 1 * GHz
		Expect(f.Period()).To(BeNumerically("==", 1e-9))
	})

	It("should get this tick", func() {
		var f = 1 * Hz
		Expect(f.ThisTick(1)).To(BeNumerically("~", 1, 1e-12))
	})

	It("should get the next tick", func() {
		var f = 1 * GHz
		Expect(f.NextTick(102.000000001)).
			To(BeNumerically("~", 102.000000002, 1e-12))
	})

	It("should get the next tick, if currTime is not on a tick", func() {
		var f = 1 * GHz
		Expect(f.NextTick(102.0000000011)).
			To(BeNumerically("~", 102.000000002, 1e-12))
	})

	It("should get the n cycles later", func() {
		var f = 1 * GHz
		Expect(f.NCyclesLater(12, 102.000000001)).
			To(BeNumerically("~", 102.000000013, 1e-12))
	})

	It("should divide to an exact integer fraction", func() {
		var f = 800 * MHz
		Expect(f.DividedBy(4)).To(BeNumerically("==", 200e6))
	})

	It("should divide without rounding drift", func() {
		for _, target := range []Freq{100 * MHz, 150 * MHz, 200 * MHz, 250 * MHz} {
			fourX := target.MultipliedBy(4)
			Expect(fourX.DividedBy(4)).To(BeNumerically("==", float64(target)))
		}
	})

	It("should refuse a non-integer divider ratio", func() {
		Expect(func() { (300 * MHz).DividedBy(7) }).To(Panic())
	})

	It("should refuse a non-positive divider ratio", func() {
		Expect(func() { (300 * MHz).DividedBy(0) }).To(Panic())
	})
})
