package device

import (
	"github.com/sarchlab/tfoil/sim"
	"github.com/sarchlab/tfoil/stream"
)

// A PacketGen produces control traffic for the packet core's tester
// interface. It emits probe beats on demand; scheduling of the emission is
// left to the caller so that control-plane tests can drive it directly.
// Bursts larger than the source buffer are held back and released as the
// connection drains the buffer.
type PacketGen struct {
	*sim.ComponentBase

	dataWidth  int
	sourceCtrl *stream.Endpoint
	seq        uint64
	backlog    []*stream.Beat
}

// PacketGenBuilder can build packet generators.
type PacketGenBuilder struct {
	dataWidth int
}

// MakePacketGenBuilder creates a PacketGenBuilder with defaults.
func MakePacketGenBuilder() PacketGenBuilder {
	return PacketGenBuilder{dataWidth: 256}
}

// WithDataWidth sets the control stream data width in bits.
func (b PacketGenBuilder) WithDataWidth(width int) PacketGenBuilder {
	b.dataWidth = width
	return b
}

// Build creates the PacketGen.
func (b PacketGenBuilder) Build(
	parent sim.Component,
	elemName string,
) *PacketGen {
	if b.dataWidth < 8 {
		panic("packet generator data width must be at least 8 bits")
	}

	g := &PacketGen{dataWidth: b.dataWidth}
	g.ComponentBase = sim.NewComponentBase(parent, elemName)
	g.sourceCtrl = stream.NewSource(
		g.Name()+".Ctrl", stream.ControlLayout(b.dataWidth), 16)
	g.sourceCtrl.OnRetrieve(g.drain)

	return g
}

// SourceCtrl returns the control stream source.
func (g *PacketGen) SourceCtrl() *stream.Endpoint {
	return g.sourceCtrl
}

// Emit queues n probe beats on the control source. Each probe is a
// single-beat packet carrying its sequence number in the payload. Probes
// beyond the source buffer capacity stay in the generator's backlog until the
// connection makes room.
func (g *PacketGen) Emit(n int) {
	for i := 0; i < n; i++ {
		g.seq++

		payload := make([]byte, g.dataWidth/8)
		for j, v := 0, g.seq; v > 0 && j < len(payload); j, v = j+1, v>>8 {
			payload[j] = byte(v)
		}

		g.backlog = append(g.backlog, stream.NewBeat().
			Set(stream.FieldPayload, payload).
			SetFlag(stream.FieldSOF, true).
			SetFlag(stream.FieldEOF, true).
			SetUint(stream.FieldValid, g.seq))
	}

	g.drain()
}

func (g *PacketGen) drain() {
	for len(g.backlog) > 0 && g.sourceCtrl.CanPush() {
		b := g.backlog[0]
		g.backlog = g.backlog[1:]
		g.sourceCtrl.Push(b)
	}
}

// Emitted returns how many probes the generator has produced so far.
func (g *PacketGen) Emitted() uint64 {
	return g.seq
}

// Backlog returns the number of probes held back by a full source buffer.
func (g *PacketGen) Backlog() int {
	return len(g.backlog)
}
