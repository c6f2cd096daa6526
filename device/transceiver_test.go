package device_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/tfoil/device"
	"github.com/sarchlab/tfoil/hw/signal"
	"github.com/sarchlab/tfoil/sim"
	"github.com/sarchlab/tfoil/stream"
)

var _ = Describe("Transceiver", func() {
	var (
		engine *sim.SerialEngine
		locked *signal.Wire
		xcvr   *device.Transceiver
	)

	BeforeEach(func() {
		engine = sim.NewSerialEngine()
		locked = signal.NewWire(false)
		xcvr = device.MakeTransceiverBuilder().
			WithEngine(engine).
			WithFreerunClk(125 * sim.MHz).
			WithLane("gty121").
			WithRefClk("mgtrefclk121").
			WithDataWidth(256).
			WithTrainingCycles(4).
			WithInitClkLocked(locked).
			Build(nil, "Serdes")
	})

	It("should stay idle while the init clock is unlocked", func() {
		xcvr.TickLater()

		Expect(engine.Run()).To(Succeed())

		Expect(xcvr.State()).To(Equal(device.LinkIdle))
	})

	It("should train to link up once the init clock locks", func() {
		locked.Set(true)

		Expect(engine.Run()).To(Succeed())

		Expect(xcvr.State()).To(Equal(device.LinkUp))
	})

	It("should drop to idle within the same evaluation on lock loss", func() {
		locked.Set(true)
		Expect(engine.Run()).To(Succeed())
		Expect(xcvr.State()).To(Equal(device.LinkUp))

		locked.Set(false)

		Expect(xcvr.State()).To(Equal(device.LinkIdle))
	})

	It("should retrain from scratch after a lock glitch", func() {
		locked.Set(true)
		Expect(engine.Run()).To(Succeed())

		locked.Set(false)
		locked.Set(true)

		Expect(xcvr.State()).NotTo(Equal(device.LinkUp))
		Expect(engine.Run()).To(Succeed())
		Expect(xcvr.State()).To(Equal(device.LinkUp))
	})

	It("should hold received line traffic until the link is up", func() {
		xcvr.InjectLineRx(stream.NewBeat().
			Set(stream.FieldPayload, make([]byte, 32)).
			SetFlag(stream.FieldSOF, true).
			SetFlag(stream.FieldEOF, true).
			SetUint(stream.FieldValid, 1))

		Expect(engine.Run()).To(Succeed())
		Expect(xcvr.UserRx().Pending()).To(Equal(0))

		locked.Set(true)
		Expect(engine.Run()).To(Succeed())

		Expect(xcvr.State()).To(Equal(device.LinkUp))
		Expect(xcvr.UserRx().Pending()).To(Equal(1))
	})

	It("should frame user transmit traffic when up", func() {
		locked.Set(true)
		Expect(engine.Run()).To(Succeed())

		xcvr.UserTx().Push(stream.NewBeat().
			Set(stream.FieldPayload, make([]byte, 32)).
			SetUint(stream.FieldLength, 32))
		Expect(engine.Run()).To(Succeed())

		Expect(xcvr.FramedTx()).To(HaveLen(1))
	})

	It("should refuse to build without the lock input", func() {
		Expect(func() {
			device.MakeTransceiverBuilder().
				WithEngine(engine).
				WithFreerunClk(125 * sim.MHz).
				Build(nil, "Bad")
		}).To(Panic())
	})
})
