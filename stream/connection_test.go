package stream

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/tfoil/sim"
)

var _ = Describe("Connection", func() {
	var (
		engine *sim.SerialEngine
		src    *Endpoint
		dst    *Endpoint
	)

	BeforeEach(func() {
		engine = sim.NewSerialEngine()
		src = NewSource("Rx", TransceiverLayout(256), 8)
		dst = NewSink("PacketRx", PacketCoreLayout(256), 8)
	})

	connect := func() *Connection {
		return MakeConnectionBuilder().
			WithEngine(engine).
			WithFreq(200 * sim.MHz).
			WithSource(src).
			WithSink(dst).
			WithOmit(DataPlaneOmitSet()...).
			Build(nil, "RxLink")
	}

	It("should realize exactly the vocabulary minus the omit set", func() {
		conn := connect()

		Expect(conn.Realized().EqualSet(PacketCoreLayout(256))).To(BeTrue())
		Expect(conn.Realized().Has(FieldPayload)).To(BeTrue())
		for _, omitted := range DataPlaneOmitSet() {
			Expect(conn.Realized().Has(omitted)).To(BeFalse())
		}
	})

	It("should drop omitted fields structurally", func() {
		connect()

		beat := NewBeat().
			Set(FieldPayload, make([]byte, 32)).
			SetFlag(FieldSOF, true).
			SetFlag(FieldEOF, true).
			SetUint(FieldValid, 1).
			SetUint(FieldDstPort, 50000).
			SetUint(FieldIPAddress, 0x0a000001).
			SetUint(FieldLength, 32)
		src.Push(beat)

		Expect(engine.Run()).To(Succeed())

		delivered := dst.Retrieve()
		Expect(delivered).NotTo(BeNil())
		Expect(delivered.Has(FieldPayload)).To(BeTrue())
		Expect(delivered.Flag(FieldSOF)).To(BeTrue())
		for _, omitted := range DataPlaneOmitSet() {
			Expect(delivered.Has(omitted)).To(BeFalse())
		}
	})

	It("should forward beats in order", func() {
		connect()

		for i := uint64(1); i <= 3; i++ {
			src.Push(NewBeat().
				Set(FieldPayload, make([]byte, 32)).
				SetFlag(FieldSOF, i == 1).
				SetFlag(FieldEOF, i == 3).
				SetUint(FieldValid, i))
		}

		Expect(engine.Run()).To(Succeed())

		Expect(dst.Pending()).To(Equal(3))
		Expect(dst.Retrieve().Uint(FieldValid)).To(Equal(uint64(1)))
		Expect(dst.Retrieve().Uint(FieldValid)).To(Equal(uint64(2)))
		Expect(dst.Retrieve().Uint(FieldValid)).To(Equal(uint64(3)))
	})

	It("should refuse a width mismatch outside the omit set", func() {
		narrow := NewSink("PacketRx", PacketCoreLayout(128), 8)

		Expect(func() {
			MakeConnectionBuilder().
				WithEngine(engine).
				WithFreq(200 * sim.MHz).
				WithSource(src).
				WithSink(narrow).
				WithOmit(DataPlaneOmitSet()...).
				Build(nil, "BadLink")
		}).To(Panic())
	})

	It("should refuse a missing field outside the omit set", func() {
		missing := NewSink("PacketRx",
			NewLayout(
				Field{Name: FieldPayload, Width: 256},
				Field{Name: FieldSOF, Width: 1},
				Field{Name: FieldEOF, Width: 1},
			), 8)

		Expect(func() {
			MakeConnectionBuilder().
				WithEngine(engine).
				WithFreq(200 * sim.MHz).
				WithSource(src).
				WithSink(missing).
				WithOmit(DataPlaneOmitSet()...).
				Build(nil, "BadLink")
		}).To(Panic())
	})

	It("should refuse a sink field the source never produces", func() {
		extra := NewSink("PacketRx",
			NewLayout(
				Field{Name: FieldPayload, Width: 256},
				Field{Name: FieldSOF, Width: 1},
				Field{Name: FieldEOF, Width: 1},
				Field{Name: FieldValid, Width: 1},
				Field{Name: "checksum", Width: 16},
			), 8)

		Expect(func() {
			MakeConnectionBuilder().
				WithEngine(engine).
				WithFreq(200 * sim.MHz).
				WithSource(src).
				WithSink(extra).
				WithOmit(DataPlaneOmitSet()...).
				Build(nil, "BadLink")
		}).To(Panic())
	})

	It("should carry narrow traffic into a wide sink with the omit set", func() {
		wide := NewSink("UserTx", TransceiverLayout(256), 8)
		coreTx := NewSource("PacketTx", PacketCoreLayout(256), 8)

		conn := MakeConnectionBuilder().
			WithEngine(engine).
			WithFreq(200 * sim.MHz).
			WithSource(coreTx).
			WithSink(wide).
			WithOmit(DataPlaneOmitSet()...).
			Build(nil, "TxLink")

		Expect(conn.Realized().EqualSet(PacketCoreLayout(256))).To(BeTrue())

		coreTx.Push(NewBeat().
			Set(FieldPayload, make([]byte, 32)).
			SetFlag(FieldSOF, true).
			SetFlag(FieldEOF, true).
			SetUint(FieldValid, 1))
		Expect(engine.Run()).To(Succeed())

		delivered := wide.Retrieve()
		Expect(delivered).NotTo(BeNil())
		for _, omitted := range DataPlaneOmitSet() {
			Expect(delivered.Has(omitted)).To(BeFalse())
		}
	})

	It("should refuse omitting a field neither endpoint defines", func() {
		Expect(func() {
			MakeConnectionBuilder().
				WithEngine(engine).
				WithFreq(200 * sim.MHz).
				WithSource(src).
				WithSink(dst).
				WithOmit("no_such_field").
				Build(nil, "BadLink")
		}).To(Panic())
	})

	It("should refuse a reversed direction", func() {
		Expect(func() {
			MakeConnectionBuilder().
				WithEngine(engine).
				WithFreq(200 * sim.MHz).
				WithSource(dst).
				WithSink(src).
				Build(nil, "BadLink")
		}).To(Panic())
	})

	It("should respect sink backpressure", func() {
		tiny := NewSink("PacketRx", PacketCoreLayout(256), 1)
		MakeConnectionBuilder().
			WithEngine(engine).
			WithFreq(200 * sim.MHz).
			WithSource(src).
			WithSink(tiny).
			WithOmit(DataPlaneOmitSet()...).
			Build(nil, "TinyLink")

		src.Push(NewBeat().Set(FieldPayload, make([]byte, 32)))
		src.Push(NewBeat().Set(FieldPayload, make([]byte, 32)))

		Expect(engine.Run()).To(Succeed())

		Expect(tiny.Pending()).To(Equal(1))
		Expect(src.Pending()).To(Equal(1))

		tiny.Retrieve()
		Expect(engine.Run()).To(Succeed())

		Expect(tiny.Pending()).To(Equal(1))
		Expect(src.Pending()).To(Equal(0))
	})

	It("should pass control traffic through unmodified", func() {
		ctrlSrc := NewSource("Ctrl", ControlLayout(256), 4)
		ctrlDst := NewSink("TesterCtrl", ControlLayout(256), 4)

		conn := MakeConnectionBuilder().
			WithEngine(engine).
			WithFreq(200 * sim.MHz).
			WithSource(ctrlSrc).
			WithSink(ctrlDst).
			Build(nil, "CtrlLink")

		Expect(conn.OmitSet()).To(BeEmpty())
		Expect(conn.Realized().EqualSet(ControlLayout(256))).To(BeTrue())
	})
})
