package soc_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/tfoil/device"
	"github.com/sarchlab/tfoil/hw/clock"
	"github.com/sarchlab/tfoil/sim"
	"github.com/sarchlab/tfoil/soc"
	"github.com/sarchlab/tfoil/stream"
)

var _ = Describe("SoC", func() {
	var (
		engine *sim.SerialEngine
		s      *soc.SoC
	)

	BeforeEach(func() {
		engine = sim.NewSerialEngine()
		s = soc.MakeBuilder().
			WithEngine(engine).
			WithLockLatency(4).
			Build("Tfoil")
	})

	It("should lock, release the resets, and bring the link up", func() {
		Expect(engine.Run()).To(Succeed())

		Expect(s.CRG().Locked().Get()).To(BeTrue())
		Expect(s.CRG().Sys.Reset().Get()).To(BeFalse())
		Expect(s.CRG().IDelay.Reset().Get()).To(BeFalse())
		Expect(s.CRG().Clk125.Reset().Get()).To(BeFalse())
		Expect(s.TransceiverLocked().Get()).To(BeTrue())
		Expect(s.Transceiver().State()).To(Equal(device.LinkUp))
	})

	It("should keep the transceiver idle while an external reset holds", func() {
		s.CPUResetN().Set(false)

		Expect(engine.Run()).To(Succeed())

		Expect(s.CRG().Locked().Get()).To(BeFalse())
		Expect(s.Transceiver().State()).To(Equal(device.LinkIdle))

		s.CPUResetN().Set(true)
		Expect(engine.Run()).To(Succeed())

		Expect(s.Transceiver().State()).To(Equal(device.LinkUp))
	})

	It("should abort the link within the same evaluation on reset", func() {
		Expect(engine.Run()).To(Succeed())
		Expect(s.Transceiver().State()).To(Equal(device.LinkUp))

		s.CPUResetN().Set(false)

		Expect(s.CRG().Locked().Get()).To(BeFalse())
		Expect(s.CRG().Sys.Reset().Get()).To(BeTrue())
		Expect(s.Transceiver().State()).To(Equal(device.LinkIdle))
	})

	It("should deliver line traffic to the core without the omit set", func() {
		Expect(engine.Run()).To(Succeed())

		s.Transceiver().InjectLineRx(stream.NewBeat().
			Set(stream.FieldPayload, make([]byte, 32)).
			SetFlag(stream.FieldSOF, true).
			SetFlag(stream.FieldEOF, true).
			SetUint(stream.FieldValid, 1).
			SetUint(stream.FieldDstPort, 50000).
			SetUint(stream.FieldSrcPort, 50000).
			SetUint(stream.FieldIPAddress, 0x0a000001).
			SetUint(stream.FieldLength, 32))
		Expect(engine.Run()).To(Succeed())

		received := s.PacketCore().ReceivedData()
		Expect(received).To(HaveLen(1))
		Expect(received[0].Has(stream.FieldPayload)).To(BeTrue())
		for _, omitted := range stream.DataPlaneOmitSet() {
			Expect(received[0].Has(omitted)).To(BeFalse())
		}
	})

	It("should frame core transmit traffic through the bridge", func() {
		Expect(engine.Run()).To(Succeed())

		s.PacketCore().SendPacket(make([]byte, 32))
		Expect(engine.Run()).To(Succeed())

		Expect(s.Transceiver().FramedTx()).To(HaveLen(1))
	})

	It("should inject control traffic independent of the data plane", func() {
		s.PacketGen().Emit(2)

		Expect(engine.Run()).To(Succeed())

		Expect(s.Ctrl().Conn().OmitSet()).To(BeEmpty())
		Expect(s.PacketCore().ReceivedCtrl()).To(HaveLen(2))
		Expect(s.PacketCore().ReceivedData()).To(BeEmpty())
	})

	It("should deliver a probe burst larger than the control buffer", func() {
		s.PacketGen().Emit(17)

		Expect(engine.Run()).To(Succeed())

		Expect(s.PacketGen().Backlog()).To(Equal(0))
		Expect(s.PacketCore().ReceivedCtrl()).To(HaveLen(17))
	})

	It("should request each pad it consumes exactly once", func() {
		Expect(s.Platform().Requested("clk300", 0)).To(BeTrue())
		Expect(s.Platform().Requested("clk125", 0)).To(BeTrue())
		Expect(s.Platform().Requested("cpu_resetn", 0)).To(BeTrue())
		Expect(s.Platform().Requested("ddram", 0)).To(BeTrue())
		Expect(s.Platform().Requested("gty121", 0)).To(BeTrue())
		Expect(s.Platform().Requested("mgtrefclk121", 0)).To(BeTrue())
		Expect(s.Platform().Requested("i2c_tca9555", 6)).To(BeTrue())
	})

	It("should elaborate without SDRAM on request", func() {
		lean := soc.MakeBuilder().
			WithEngine(sim.NewSerialEngine()).
			WithoutSDRAM().
			Build("Lean")

		Expect(lean.DRAM()).To(BeNil())
		Expect(lean.Platform().Requested("ddram", 0)).To(BeFalse())
	})

	It("should expose thirteen I2C ports", func() {
		Expect(s.I2C().PortCount()).To(Equal(13))
	})
})

var _ = Describe("ElaborationReport", func() {
	It("should summarize the elaborated topology", func() {
		engine := sim.NewSerialEngine()
		s := soc.MakeBuilder().
			WithEngine(engine).
			Build("Tfoil")

		r := s.ElaborationReport()

		Expect(r.Name).To(Equal("Tfoil"))
		Expect(r.SysClkFreqMHz).To(Equal(200.0))
		Expect(r.DataWidth).To(Equal(256))

		Expect(r.Domains).To(HaveLen(5))
		Expect(r.Domains[0].Name).To(Equal("Tfoil.CRG.PLL4X"))
		Expect(r.Domains[0].FreqMHz).To(Equal(800.0))
		Expect(r.Domains[0].ResetLess).To(BeTrue())
		Expect(r.Domains[1].Name).To(Equal("Tfoil.CRG.Sys"))
		Expect(r.Domains[1].FreqMHz).To(Equal(200.0))

		Expect(r.ResetEdges).To(HaveLen(4))
		Expect(r.FalsePaths).To(ContainElement(
			clock.FalsePath{From: "Tfoil.CRG.Sys", To: "clk300"}))

		Expect(r.DataPlaneFields).To(Equal(
			[]string{"eof", "payload", "sof", "valid"}))
		Expect(r.DataPlaneOmit).To(Equal([]string{
			"dst_port", "error", "ip_address",
			"last_be", "length", "src_port",
		}))
		Expect(r.ControlFields).To(Equal(
			[]string{"eof", "payload", "sof", "valid"}))

		Expect(r.Components).To(ContainElement("Tfoil.CRG.PLL"))
		Expect(r.Components).To(ContainElement("Tfoil.Link.Rx"))
		Expect(r.Components).To(ContainElement("Tfoil.Ctrl.Ctrl"))
	})
})
