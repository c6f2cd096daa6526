package clock

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/tfoil/hw/signal"
	"github.com/sarchlab/tfoil/sim"
)

var _ = Describe("Domain", func() {
	It("should derive an exact integer fraction", func() {
		parent := NewResetLessDomain("PLL4X", 800*sim.MHz)
		child := parent.Derive("Sys", 4)

		Expect(child.Freq()).To(BeNumerically("==", 200e6))
		Expect(child.ResetLess()).To(BeFalse())
	})

	It("should derive exactly for all supported system frequencies", func() {
		for _, target := range []sim.Freq{100, 125, 150, 200, 250} {
			fourX := NewResetLessDomain("PLL4X", (target * sim.MHz).MultipliedBy(4))
			sys := fourX.Derive("Sys", 4)
			Expect(sys.Freq()).To(BeNumerically("==", float64(target*sim.MHz)))
		}
	})

	It("should refuse a non-integer divider", func() {
		parent := NewResetLessDomain("PLL4X", 100*sim.MHz)
		Expect(func() { parent.Derive("Sys", 3) }).To(Panic())
	})

	It("should allow exactly one reset source", func() {
		d := NewDomain("Sys", 200*sim.MHz)
		d.AttachReset(signal.NewWire(true))

		Expect(func() { d.AttachReset(signal.NewWire(true)) }).To(Panic())
	})

	It("should refuse a reset on a reset-less domain", func() {
		d := NewResetLessDomain("Sys4X", 800*sim.MHz)
		Expect(func() { d.AttachReset(signal.NewWire(true)) }).To(Panic())
	})

	It("should refuse reading an unattached managed reset", func() {
		d := NewDomain("Sys", 200*sim.MHz)
		Expect(func() { d.Reset() }).To(Panic())
	})

	It("should report a constant low reset for reset-less domains", func() {
		d := NewResetLessDomain("Sys4X", 800*sim.MHz)
		Expect(d.Reset().Get()).To(BeFalse())
	})
})
