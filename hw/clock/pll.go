package clock

import (
	"github.com/sarchlab/tfoil/hw/signal"
	"github.com/sarchlab/tfoil/sim"
)

// A PLL models the locking behavior of the system's phase-locked loop. It
// acquires lock a fixed number of reference cycles after its reset input
// clears, and it drops lock immediately, within the same evaluation, when the
// reset input asserts. There is no debounce at this layer.
type PLL struct {
	*sim.TickingComponent

	refClkName string
	refFreq    sim.Freq

	reset       signal.Signal
	locked      *signal.Wire
	lockLatency int
	cyclesLeft  int
}

// PLLBuilder can build PLLs.
type PLLBuilder struct {
	engine      sim.Engine
	refClkName  string
	refFreq     sim.Freq
	reset       signal.Signal
	lockLatency int
}

// MakePLLBuilder creates a PLLBuilder with default parameters.
func MakePLLBuilder() PLLBuilder {
	return PLLBuilder{
		lockLatency: 8,
	}
}

// WithEngine sets the event engine that drives the PLL.
func (b PLLBuilder) WithEngine(engine sim.Engine) PLLBuilder {
	b.engine = engine
	return b
}

// WithRefClk registers the reference clock input of the PLL.
func (b PLLBuilder) WithRefClk(name string, freq sim.Freq) PLLBuilder {
	b.refClkName = name
	b.refFreq = freq
	return b
}

// WithResetInput sets the reset input of the PLL.
func (b PLLBuilder) WithResetInput(reset signal.Signal) PLLBuilder {
	b.reset = reset
	return b
}

// WithLockLatency sets the number of reference cycles between reset clearing
// and lock assertion.
func (b PLLBuilder) WithLockLatency(cycles int) PLLBuilder {
	b.lockLatency = cycles
	return b
}

// Build creates the PLL.
func (b PLLBuilder) Build(parent sim.Component, elemName string) *PLL {
	b.parametersMustBeValid()

	p := &PLL{
		refClkName:  b.refClkName,
		refFreq:     b.refFreq,
		reset:       b.reset,
		locked:      signal.NewWire(false),
		lockLatency: b.lockLatency,
		cyclesLeft:  b.lockLatency,
	}
	p.TickingComponent = sim.NewTickingComponent(
		parent, elemName, b.engine, b.refFreq, p)

	// Lock loss is asynchronous: it is observable in the same evaluation
	// that asserts the reset input.
	b.reset.OnChange(func() {
		if p.reset.Get() {
			p.locked.Set(false)
			p.cyclesLeft = p.lockLatency
		}
		p.TickLater()
	})

	return p
}

func (b PLLBuilder) parametersMustBeValid() {
	if b.engine == nil {
		panic("PLL requires an engine")
	}

	if b.refClkName == "" || b.refFreq == 0 {
		panic("PLL requires a reference clock input")
	}

	if b.reset == nil {
		panic("PLL requires a reset input")
	}

	if b.lockLatency < 1 {
		panic("PLL lock latency must be at least 1 cycle")
	}
}

// RefClkName returns the name of the reference clock input.
func (p *PLL) RefClkName() string {
	return p.refClkName
}

// RefFreq returns the frequency of the reference clock input.
func (p *PLL) RefFreq() sim.Freq {
	return p.refFreq
}

// Locked returns the lock signal of the PLL. It is the single authoritative
// lock indication for everything derived from this PLL.
func (p *PLL) Locked() signal.Signal {
	return p.locked
}

// Tick advances the lock acquisition state by one reference cycle.
func (p *PLL) Tick() bool {
	if p.reset.Get() {
		if p.cyclesLeft != p.lockLatency {
			p.cyclesLeft = p.lockLatency
			return true
		}

		return false
	}

	if p.cyclesLeft > 0 {
		p.cyclesLeft--
		if p.cyclesLeft == 0 {
			p.locked.Set(true)
		}

		return true
	}

	return false
}
