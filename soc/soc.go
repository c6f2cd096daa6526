package soc

import (
	"github.com/sarchlab/tfoil/board"
	"github.com/sarchlab/tfoil/device"
	"github.com/sarchlab/tfoil/hw/clock"
	"github.com/sarchlab/tfoil/hw/signal"
	"github.com/sarchlab/tfoil/sim"
)

// The default build-time parameters of this configuration.
const (
	DefaultSysClkFreq = 200 * sim.MHz
	DefaultDataWidth  = 256
)

// SoC is the composition root of the board design. It requests every pad it
// consumes from the platform, elaborates the clock/reset generator, the
// peripherals, the serial link, and the stream bridges, and owns the whole
// component tree.
type SoC struct {
	*sim.ComponentBase

	engine   sim.Engine
	platform *board.Platform

	cpuResetN *signal.Wire
	lolbWires []*signal.Wire

	crg      *clock.CRG
	dram     *device.DDR4Controller
	i2c      *device.I2CMaster
	sideband *device.GPIOOut
	statusIn *device.GPIOIn
	leds     *device.LEDChaser
	xcvr     *device.Transceiver
	core     *device.PacketCore
	gen      *device.PacketGen
	link     *LinkBridge
	ctrl     *ControlPlaneBridge

	xcvrLocked signal.Signal
}

// Builder can build SoCs.
type Builder struct {
	engine sim.Engine

	sysFreq     sim.Freq
	dataWidth   int
	lockLatency int
	resetDepth  int

	withSDRAM bool
}

// MakeBuilder creates a Builder with the board defaults.
func MakeBuilder() Builder {
	return Builder{
		sysFreq:     DefaultSysClkFreq,
		dataWidth:   DefaultDataWidth,
		lockLatency: 8,
		resetDepth:  2,
		withSDRAM:   true,
	}
}

// WithEngine sets the event engine that drives the design.
func (b Builder) WithEngine(engine sim.Engine) Builder {
	b.engine = engine
	return b
}

// WithSysClkFreq sets the target system clock frequency.
func (b Builder) WithSysClkFreq(freq sim.Freq) Builder {
	b.sysFreq = freq
	return b
}

// WithDataWidth sets the packet-path data width in bits.
func (b Builder) WithDataWidth(width int) Builder {
	b.dataWidth = width
	return b
}

// WithLockLatency sets the PLL lock latency in reference cycles.
func (b Builder) WithLockLatency(cycles int) Builder {
	b.lockLatency = cycles
	return b
}

// WithResetDepth sets the synchronized de-assertion depth of every managed
// reset.
func (b Builder) WithResetDepth(depth int) Builder {
	b.resetDepth = depth
	return b
}

// WithoutSDRAM elaborates the design without the DDR4 controller.
func (b Builder) WithoutSDRAM() Builder {
	b.withSDRAM = false
	return b
}

// Build elaborates the whole design as a composition root.
func (b Builder) Build(name string) *SoC {
	if b.engine == nil {
		panic("SoC requires an engine")
	}

	s := &SoC{
		engine:    b.engine,
		platform:  board.NewTfoilPlatform(),
		cpuResetN: signal.NewWire(true),
	}
	s.ComponentBase = sim.NewComponentBase(nil, name)

	b.buildClocking(s)
	b.buildPeripherals(s)
	b.buildPacketPath(s)

	return s
}

func (b Builder) buildClocking(s *SoC) {
	refName, refFreq := s.platform.DefaultClk()
	s.platform.Request(refName)
	s.platform.Request("clk125")
	s.platform.Request("cpu_resetn")

	s.crg = clock.MakeCRGBuilder().
		WithEngine(b.engine).
		WithRefClk(refName, refFreq).
		WithFreerunClk("clk125", 125*sim.MHz).
		WithSysClkFreq(b.sysFreq).
		WithCPUResetN(s.cpuResetN).
		WithLockLatency(b.lockLatency).
		WithResetDepth(b.resetDepth).
		Build(s, "CRG")
	s.Adopt(s.crg)
}

func (b Builder) buildPeripherals(s *SoC) {
	if b.withSDRAM {
		s.platform.Request("ddram")
		s.dram = device.MakeDDR4ControllerBuilder().
			WithSysDomain(s.crg.Sys).
			WithCalibDomain(s.crg.IDelay).
			Build(s, "DRAM")
		s.Adopt(s.dram)
	}

	var i2cGroups []string
	for _, group := range []string{
		"i2c_tca9555", "i2c_tca9548", "i2c_si5341",
	} {
		for _, pad := range s.platform.RequestAll(group) {
			i2cGroups = append(i2cGroups, pad.FullName())
		}
	}
	s.i2c = device.NewI2CMaster(s, "SharedI2C", i2cGroups)
	s.Adopt(s.i2c)

	// Sideband outputs, in bit order: the mux reset, the clock generator
	// input select, sync, and reset.
	for _, name := range []string{
		"tca9548_reset_n", "si5341_in_sel_0", "si5341_syncb", "si5341_rstb",
	} {
		s.platform.Request(name)
	}
	s.sideband = device.NewGPIOOut(s, "Sideband", 4)
	s.Adopt(s.sideband)

	lolb := s.platform.RequestAll("si5341_lolb")
	inputs := make([]signal.Signal, len(lolb))
	for i := range lolb {
		w := signal.NewWire(true)
		s.lolbWires = append(s.lolbWires, w)
		inputs[i] = w
	}
	s.statusIn = device.NewGPIOIn(s, "ClkGenStatus", inputs)
	s.Adopt(s.statusIn)

	leds := s.platform.RequestAll("user_led")
	s.leds = device.NewLEDChaser(s, "Leds", len(leds))
	s.Adopt(s.leds)
}

func (b Builder) buildPacketPath(s *SoC) {
	lane := s.platform.Request("gty121")
	refClk := s.platform.Request("mgtrefclk121")

	// The lock indication crosses into the free-running domain through a
	// synchronizer: loss of lock reaches the transceiver within the same
	// evaluation, lock gain only after the synchronization depth elapses.
	notLockedSynced := s.crg.Sequencer().SynchronizeSignal(
		s.crg.Clk125.Freq(),
		signal.Not(s.crg.Locked()),
		"PLL.Locked",
		s.crg.Clk125.Name(),
		"XcvrLockSync")
	s.xcvrLocked = signal.Not(notLockedSynced)

	s.xcvr = device.MakeTransceiverBuilder().
		WithEngine(b.engine).
		WithFreerunClk(s.crg.Clk125.Freq()).
		WithLane(lane.FullName()).
		WithRefClk(refClk.FullName()).
		WithDataWidth(b.dataWidth).
		WithInitClkLocked(s.xcvrLocked).
		Build(s, "Serdes")
	s.Adopt(s.xcvr)

	s.core = device.MakePacketCoreBuilder().
		WithDataWidth(b.dataWidth).
		Build(s, "Tester")
	s.Adopt(s.core)

	s.gen = device.MakePacketGenBuilder().
		WithDataWidth(b.dataWidth).
		Build(s, "Probe")
	s.Adopt(s.gen)

	s.link = MakeLinkBridgeBuilder().
		WithEngine(b.engine).
		WithFreq(b.sysFreq).
		WithTransceiver(s.xcvr).
		WithPacketCore(s.core).
		Build(s, "Link")
	s.Adopt(s.link)

	s.ctrl = MakeControlPlaneBridgeBuilder().
		WithEngine(b.engine).
		WithFreq(b.sysFreq).
		WithPacketGen(s.gen).
		WithPacketCore(s.core).
		Build(s, "Ctrl")
	s.Adopt(s.ctrl)
}

// Platform returns the pad table the design was elaborated against.
func (s *SoC) Platform() *board.Platform {
	return s.platform
}

// CRG returns the clock/reset generator.
func (s *SoC) CRG() *clock.CRG {
	return s.crg
}

// CPUResetN returns the external active-low reset request wire.
func (s *SoC) CPUResetN() *signal.Wire {
	return s.cpuResetN
}

// DRAM returns the DDR4 controller, nil when the design was elaborated
// without SDRAM.
func (s *SoC) DRAM() *device.DDR4Controller {
	return s.dram
}

// I2C returns the shared multi-port I2C master.
func (s *SoC) I2C() *device.I2CMaster {
	return s.i2c
}

// Sideband returns the clock-tree sideband output group.
func (s *SoC) Sideband() *device.GPIOOut {
	return s.sideband
}

// ClkGenStatus returns the clock generator status input group.
func (s *SoC) ClkGenStatus() *device.GPIOIn {
	return s.statusIn
}

// Leds returns the user LED chaser.
func (s *SoC) Leds() *device.LEDChaser {
	return s.leds
}

// Transceiver returns the serial transceiver.
func (s *SoC) Transceiver() *device.Transceiver {
	return s.xcvr
}

// PacketCore returns the packet-processing core.
func (s *SoC) PacketCore() *device.PacketCore {
	return s.core
}

// PacketGen returns the control packet generator.
func (s *SoC) PacketGen() *device.PacketGen {
	return s.gen
}

// Link returns the data-plane link bridge.
func (s *SoC) Link() *LinkBridge {
	return s.link
}

// Ctrl returns the control-plane bridge.
func (s *SoC) Ctrl() *ControlPlaneBridge {
	return s.ctrl
}

// TransceiverLocked returns the synchronized lock indication the transceiver
// is gated on.
func (s *SoC) TransceiverLocked() signal.Signal {
	return s.xcvrLocked
}
