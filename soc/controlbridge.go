package soc

import (
	"github.com/sarchlab/tfoil/device"
	"github.com/sarchlab/tfoil/sim"
	"github.com/sarchlab/tfoil/stream"
)

// A ControlPlaneBridge binds the control packet generator directly into the
// packet core's control ingress. Both ends share the control vocabulary by
// construction, so no field is translated or omitted; control traffic never
// touches the data-plane path.
type ControlPlaneBridge struct {
	*sim.ComponentBase

	conn *stream.Connection
}

// ControlPlaneBridgeBuilder can build control-plane bridges.
type ControlPlaneBridgeBuilder struct {
	engine sim.Engine
	freq   sim.Freq
	gen    *device.PacketGen
	core   *device.PacketCore
}

// MakeControlPlaneBridgeBuilder creates a ControlPlaneBridgeBuilder.
func MakeControlPlaneBridgeBuilder() ControlPlaneBridgeBuilder {
	return ControlPlaneBridgeBuilder{}
}

// WithEngine sets the event engine that drives the bridge.
func (b ControlPlaneBridgeBuilder) WithEngine(
	engine sim.Engine,
) ControlPlaneBridgeBuilder {
	b.engine = engine
	return b
}

// WithFreq sets the rate at which the bridge forwards beats.
func (b ControlPlaneBridgeBuilder) WithFreq(
	freq sim.Freq,
) ControlPlaneBridgeBuilder {
	b.freq = freq
	return b
}

// WithPacketGen sets the generator side of the bridge.
func (b ControlPlaneBridgeBuilder) WithPacketGen(
	gen *device.PacketGen,
) ControlPlaneBridgeBuilder {
	b.gen = gen
	return b
}

// WithPacketCore sets the packet core side of the bridge.
func (b ControlPlaneBridgeBuilder) WithPacketCore(
	core *device.PacketCore,
) ControlPlaneBridgeBuilder {
	b.core = core
	return b
}

// Build validates the control path and creates the ControlPlaneBridge.
func (b ControlPlaneBridgeBuilder) Build(
	parent sim.Component,
	elemName string,
) *ControlPlaneBridge {
	if b.gen == nil || b.core == nil {
		panic("control-plane bridge requires a generator and a packet core")
	}

	c := &ControlPlaneBridge{}
	c.ComponentBase = sim.NewComponentBase(parent, elemName)

	c.conn = stream.MakeConnectionBuilder().
		WithEngine(b.engine).
		WithFreq(b.freq).
		WithSource(b.gen.SourceCtrl()).
		WithSink(b.core.SinkTesterCtrl()).
		Build(c, "Ctrl")
	c.Adopt(c.conn)

	return c
}

// Conn returns the control connection.
func (c *ControlPlaneBridge) Conn() *stream.Connection {
	return c.conn
}
