package device

import (
	"github.com/sarchlab/tfoil/sim"
	"github.com/sarchlab/tfoil/stream"
)

// A PacketCore models the packet-processing core's stream surface: a data
// sink fed by the transceiver, a data source back to it, and a separate
// tester-control sink. The core defines only the narrow data-plane
// vocabulary; routing fields never appear on its interfaces.
type PacketCore struct {
	*sim.ComponentBase

	dataWidth int

	sinkPacketRx   *stream.Endpoint
	sourcePacketTx *stream.Endpoint
	sinkTesterCtrl *stream.Endpoint

	receivedData []*stream.Beat
	receivedCtrl []*stream.Beat
	txBacklog    []*stream.Beat
}

// PacketCoreBuilder can build packet cores.
type PacketCoreBuilder struct {
	dataWidth int
}

// MakePacketCoreBuilder creates a PacketCoreBuilder with defaults.
func MakePacketCoreBuilder() PacketCoreBuilder {
	return PacketCoreBuilder{dataWidth: 256}
}

// WithDataWidth sets the data width of the core's stream interfaces in bits.
func (b PacketCoreBuilder) WithDataWidth(width int) PacketCoreBuilder {
	b.dataWidth = width
	return b
}

// Build creates the PacketCore.
func (b PacketCoreBuilder) Build(
	parent sim.Component,
	elemName string,
) *PacketCore {
	if b.dataWidth < 8 {
		panic("packet core data width must be at least 8 bits")
	}

	c := &PacketCore{dataWidth: b.dataWidth}
	c.ComponentBase = sim.NewComponentBase(parent, elemName)

	c.sinkPacketRx = stream.NewSink(
		c.Name()+".PacketRx", stream.PacketCoreLayout(b.dataWidth), 16)
	c.sourcePacketTx = stream.NewSource(
		c.Name()+".PacketTx", stream.PacketCoreLayout(b.dataWidth), 16)
	c.sinkTesterCtrl = stream.NewSink(
		c.Name()+".TesterCtrl", stream.ControlLayout(b.dataWidth), 16)

	c.sinkPacketRx.OnPush(func() {
		c.receivedData = append(c.receivedData, c.sinkPacketRx.Retrieve())
	})
	c.sinkTesterCtrl.OnPush(func() {
		c.receivedCtrl = append(c.receivedCtrl, c.sinkTesterCtrl.Retrieve())
	})
	c.sourcePacketTx.OnRetrieve(c.drainTx)

	return c
}

// DataWidth returns the stream data width in bits.
func (c *PacketCore) DataWidth() int {
	return c.dataWidth
}

// SinkPacketRx returns the data-plane receive sink.
func (c *PacketCore) SinkPacketRx() *stream.Endpoint {
	return c.sinkPacketRx
}

// SourcePacketTx returns the data-plane transmit source.
func (c *PacketCore) SourcePacketTx() *stream.Endpoint {
	return c.sourcePacketTx
}

// SinkTesterCtrl returns the tester control sink.
func (c *PacketCore) SinkTesterCtrl() *stream.Endpoint {
	return c.sinkTesterCtrl
}

// SendPacket queues a single-beat packet on the transmit source. Packets
// beyond the source buffer capacity stay in the core's backlog until the
// connection makes room.
func (c *PacketCore) SendPacket(payload []byte) {
	c.txBacklog = append(c.txBacklog, stream.NewBeat().
		Set(stream.FieldPayload, payload).
		SetFlag(stream.FieldSOF, true).
		SetFlag(stream.FieldEOF, true).
		SetUint(stream.FieldValid, 1))

	c.drainTx()
}

func (c *PacketCore) drainTx() {
	for len(c.txBacklog) > 0 && c.sourcePacketTx.CanPush() {
		b := c.txBacklog[0]
		c.txBacklog = c.txBacklog[1:]
		c.sourcePacketTx.Push(b)
	}
}

// ReceivedData returns the data-plane beats the core has consumed.
func (c *PacketCore) ReceivedData() []*stream.Beat {
	return c.receivedData
}

// ReceivedCtrl returns the control beats the core has consumed.
func (c *PacketCore) ReceivedCtrl() []*stream.Beat {
	return c.receivedCtrl
}
