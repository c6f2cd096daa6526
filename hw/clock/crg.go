package clock

import (
	"github.com/sarchlab/tfoil/hw/resetsync"
	"github.com/sarchlab/tfoil/hw/signal"
	"github.com/sarchlab/tfoil/sim"
)

// A FalsePath records a timing exception between a clock and another clock
// input. The paths recorded here are structural artifacts, not real data
// dependencies, and must be excluded from timing analysis. They are never an
// error.
type FalsePath struct {
	From string
	To   string
}

// CRG is the clock/reset generator of the board. It derives the named clock
// domains of the design from one reference oscillator and one independent
// free-running input, owns the single authoritative lock signal, and wires
// every managed reset through the reset sequencer.
//
// Domain topology, leaves first:
//
//	PLL4X  4x the system rate, PLL output, reset-less intermediate
//	Sys    PLL4X divided by 4 exactly, managed reset
//	Sys4X  full-rate sibling of PLL4X for domain-crossing logic, reset-less
//	IDelay fixed calibration rate, managed reset
//	Clk125 free-running from the independent input, managed reset derived
//	       from the inverse of the lock signal
type CRG struct {
	*sim.ComponentBase

	pll       *PLL
	sequencer *resetsync.Sequencer
	softReset *signal.Wire

	PLL4X  *Domain
	Sys    *Domain
	Sys4X  *Domain
	IDelay *Domain
	Clk125 *Domain

	falsePaths []FalsePath
}

// CRGBuilder can build CRGs.
type CRGBuilder struct {
	engine sim.Engine

	refClkName string
	refFreq    sim.Freq

	freerunClkName string
	freerunFreq    sim.Freq

	sysFreq    sim.Freq
	idelayFreq sim.Freq

	cpuResetN   signal.Signal
	lockLatency int
	resetDepth  int
}

// MakeCRGBuilder creates a CRGBuilder with the board defaults: a 300 MHz
// reference, a 125 MHz free-running input, a 200 MHz system clock, and a
// 400 MHz calibration clock.
func MakeCRGBuilder() CRGBuilder {
	return CRGBuilder{
		refClkName:     "clk300",
		refFreq:        300 * sim.MHz,
		freerunClkName: "clk125",
		freerunFreq:    125 * sim.MHz,
		sysFreq:        200 * sim.MHz,
		idelayFreq:     400 * sim.MHz,
		lockLatency:    8,
		resetDepth:     2,
	}
}

// WithEngine sets the event engine that drives the CRG.
func (b CRGBuilder) WithEngine(engine sim.Engine) CRGBuilder {
	b.engine = engine
	return b
}

// WithRefClk sets the reference oscillator input.
func (b CRGBuilder) WithRefClk(name string, freq sim.Freq) CRGBuilder {
	b.refClkName = name
	b.refFreq = freq
	return b
}

// WithFreerunClk sets the independent free-running clock input.
func (b CRGBuilder) WithFreerunClk(name string, freq sim.Freq) CRGBuilder {
	b.freerunClkName = name
	b.freerunFreq = freq
	return b
}

// WithSysClkFreq sets the target system clock frequency.
func (b CRGBuilder) WithSysClkFreq(freq sim.Freq) CRGBuilder {
	b.sysFreq = freq
	return b
}

// WithIDelayClkFreq sets the calibration clock frequency.
func (b CRGBuilder) WithIDelayClkFreq(freq sim.Freq) CRGBuilder {
	b.idelayFreq = freq
	return b
}

// WithCPUResetN sets the external active-low reset request.
func (b CRGBuilder) WithCPUResetN(resetN signal.Signal) CRGBuilder {
	b.cpuResetN = resetN
	return b
}

// WithLockLatency sets the PLL lock latency in reference cycles.
func (b CRGBuilder) WithLockLatency(cycles int) CRGBuilder {
	b.lockLatency = cycles
	return b
}

// WithResetDepth sets the synchronized de-assertion depth for every managed
// reset.
func (b CRGBuilder) WithResetDepth(depth int) CRGBuilder {
	b.resetDepth = depth
	return b
}

// Build elaborates the CRG.
func (b CRGBuilder) Build(parent sim.Component, elemName string) *CRG {
	b.parametersMustBeValid()

	c := &CRG{
		softReset: signal.NewWire(false),
	}
	c.ComponentBase = sim.NewComponentBase(parent, elemName)

	// The PLL cannot be held out of reset while a higher-level reset is
	// asserted: its reset input is the OR of the inverted external request
	// and the internal soft reset.
	pllReset := signal.Or(signal.Not(b.cpuResetN), c.softReset)

	c.pll = MakePLLBuilder().
		WithEngine(b.engine).
		WithRefClk(b.refClkName, b.refFreq).
		WithResetInput(pllReset).
		WithLockLatency(b.lockLatency).
		Build(c, "PLL")
	c.Adopt(c.pll)

	fourX := b.sysFreq.MultipliedBy(4)
	c.PLL4X = NewResetLessDomain(sim.BuildName(c.Name(), "PLL4X"), fourX)
	c.Sys = c.PLL4X.Derive(sim.BuildName(c.Name(), "Sys"), 4)
	c.Sys4X = c.PLL4X.DeriveResetLess(sim.BuildName(c.Name(), "Sys4X"), 1)
	c.IDelay = NewDomain(sim.BuildName(c.Name(), "IDelay"), b.idelayFreq)
	c.Clk125 = NewDomain(sim.BuildName(c.Name(), "Clk125"), b.freerunFreq)

	c.sequencer = resetsync.MakeSequencerBuilder().
		WithEngine(b.engine).
		WithDepth(b.resetDepth).
		Build(c, "ResetSeq")
	c.Adopt(c.sequencer)

	// Every managed reset derives asynchronously from the inverse of the
	// lock signal and is resynchronized into its own domain before use.
	notLocked := signal.Not(c.pll.Locked())
	c.sequencer.Synchronize(c.Sys, notLocked, "PLL.Locked", "SysSync")
	c.sequencer.Synchronize(c.IDelay, notLocked, "PLL.Locked", "IDelaySync")
	c.sequencer.Synchronize(c.Clk125, notLocked, "PLL.Locked", "Clk125Sync")

	// The reset path can influence the PLL input, which creates a spurious
	// timing relationship between the system clock and the PLL's own input
	// clock. Declare it false rather than letting analysis flag it.
	c.AddFalsePath(c.Sys.Name(), b.refClkName)

	c.pll.TickNow()

	return c
}

func (b CRGBuilder) parametersMustBeValid() {
	if b.engine == nil {
		panic("CRG requires an engine")
	}

	if b.cpuResetN == nil {
		panic("CRG requires the external reset request input")
	}

	if b.sysFreq == 0 {
		panic("CRG requires a target system frequency")
	}
}

// PLL returns the locking stage of the CRG.
func (c *CRG) PLL() *PLL {
	return c.pll
}

// Locked returns the single authoritative lock signal of the design.
func (c *CRG) Locked() signal.Signal {
	return c.pll.Locked()
}

// Sequencer returns the reset sequencer owned by the CRG.
func (c *CRG) Sequencer() *resetsync.Sequencer {
	return c.sequencer
}

// SoftReset returns the internal soft reset request wire.
func (c *CRG) SoftReset() *signal.Wire {
	return c.softReset
}

// Domains returns all the clock domains of the CRG, dependency order.
func (c *CRG) Domains() []*Domain {
	return []*Domain{c.PLL4X, c.Sys, c.Sys4X, c.IDelay, c.Clk125}
}

// AddFalsePath declares a timing exception between two clocks.
func (c *CRG) AddFalsePath(from, to string) {
	c.falsePaths = append(c.falsePaths, FalsePath{From: from, To: to})
}

// FalsePaths returns the timing exceptions declared on the CRG.
func (c *CRG) FalsePaths() []FalsePath {
	return c.falsePaths
}
