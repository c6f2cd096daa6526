package clock

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/tfoil/hw/signal"
	"github.com/sarchlab/tfoil/sim"
)

var _ = Describe("PLL", func() {
	var (
		engine *sim.SerialEngine
		reset  *signal.Wire
		pll    *PLL
	)

	BeforeEach(func() {
		engine = sim.NewSerialEngine()
		reset = signal.NewWire(true)
		pll = MakePLLBuilder().
			WithEngine(engine).
			WithRefClk("clk300", 300*sim.MHz).
			WithResetInput(reset).
			WithLockLatency(8).
			Build(nil, "PLL")
		pll.TickNow()
	})

	It("should not lock while held in reset", func() {
		Expect(engine.Run()).To(Succeed())
		Expect(pll.Locked().Get()).To(BeFalse())
	})

	It("should lock after the reset clears", func() {
		Expect(engine.Run()).To(Succeed())

		reset.Set(false)
		Expect(engine.Run()).To(Succeed())

		Expect(pll.Locked().Get()).To(BeTrue())
	})

	It("should drop lock in the same evaluation as reset assertion", func() {
		reset.Set(false)
		Expect(engine.Run()).To(Succeed())
		Expect(pll.Locked().Get()).To(BeTrue())

		observed := []bool{}
		pll.Locked().OnChange(func() {
			observed = append(observed, pll.Locked().Get())
		})

		reset.Set(true)

		Expect(pll.Locked().Get()).To(BeFalse())
		Expect(observed).To(Equal([]bool{false}))
	})

	It("should re-acquire lock after a reset pulse", func() {
		reset.Set(false)
		Expect(engine.Run()).To(Succeed())

		reset.Set(true)
		reset.Set(false)
		Expect(pll.Locked().Get()).To(BeFalse())

		Expect(engine.Run()).To(Succeed())
		Expect(pll.Locked().Get()).To(BeTrue())
	})

	It("should refuse elaboration without a reference clock", func() {
		Expect(func() {
			MakePLLBuilder().
				WithEngine(engine).
				WithResetInput(reset).
				Build(nil, "BadPLL")
		}).To(Panic())
	})
})
