// Package soc composes the board-level design: the clock/reset generator,
// the memory and I2C peripherals, the serial transceiver, the packet core,
// and the stream bridges between them. Everything here is elaborated once
// into a static component tree; a contract violation refuses to elaborate.
package soc

import (
	"github.com/sarchlab/tfoil/device"
	"github.com/sarchlab/tfoil/sim"
	"github.com/sarchlab/tfoil/stream"
)

// A LinkBridge binds the transceiver's user streams to the packet core's
// data-plane streams in both directions. The two vocabularies differ by
// exactly the omit set: routing and framing metadata the core does not use
// in this configuration never crosses the bridge, in either direction.
type LinkBridge struct {
	*sim.ComponentBase

	rx *stream.Connection
	tx *stream.Connection
}

// LinkBridgeBuilder can build link bridges.
type LinkBridgeBuilder struct {
	engine sim.Engine
	freq   sim.Freq
	xcvr   *device.Transceiver
	core   *device.PacketCore
	omit   []string
}

// MakeLinkBridgeBuilder creates a LinkBridgeBuilder with the data-plane
// omit set.
func MakeLinkBridgeBuilder() LinkBridgeBuilder {
	return LinkBridgeBuilder{
		omit: stream.DataPlaneOmitSet(),
	}
}

// WithEngine sets the event engine that drives the bridge.
func (b LinkBridgeBuilder) WithEngine(engine sim.Engine) LinkBridgeBuilder {
	b.engine = engine
	return b
}

// WithFreq sets the rate at which the bridge forwards beats.
func (b LinkBridgeBuilder) WithFreq(freq sim.Freq) LinkBridgeBuilder {
	b.freq = freq
	return b
}

// WithTransceiver sets the transceiver side of the bridge.
func (b LinkBridgeBuilder) WithTransceiver(
	xcvr *device.Transceiver,
) LinkBridgeBuilder {
	b.xcvr = xcvr
	return b
}

// WithPacketCore sets the packet core side of the bridge.
func (b LinkBridgeBuilder) WithPacketCore(
	core *device.PacketCore,
) LinkBridgeBuilder {
	b.core = core
	return b
}

// WithOmit overrides the omit set.
func (b LinkBridgeBuilder) WithOmit(names ...string) LinkBridgeBuilder {
	b.omit = names
	return b
}

// Build validates both directions and creates the LinkBridge.
func (b LinkBridgeBuilder) Build(
	parent sim.Component,
	elemName string,
) *LinkBridge {
	if b.xcvr == nil || b.core == nil {
		panic("link bridge requires a transceiver and a packet core")
	}

	l := &LinkBridge{}
	l.ComponentBase = sim.NewComponentBase(parent, elemName)

	l.rx = stream.MakeConnectionBuilder().
		WithEngine(b.engine).
		WithFreq(b.freq).
		WithSource(b.xcvr.UserRx()).
		WithSink(b.core.SinkPacketRx()).
		WithOmit(b.omit...).
		Build(l, "Rx")
	l.Adopt(l.rx)

	l.tx = stream.MakeConnectionBuilder().
		WithEngine(b.engine).
		WithFreq(b.freq).
		WithSource(b.core.SourcePacketTx()).
		WithSink(b.xcvr.UserTx()).
		WithOmit(b.omit...).
		Build(l, "Tx")
	l.Adopt(l.tx)

	return l
}

// Rx returns the transceiver-to-core connection.
func (l *LinkBridge) Rx() *stream.Connection {
	return l.rx
}

// Tx returns the core-to-transceiver connection.
func (l *LinkBridge) Tx() *stream.Connection {
	return l.tx
}
