// Package clock models clock domains and the clock/reset generation topology
// of a board. All the structure here is fixed at elaboration time; only the
// lock and reset levels evolve during simulation.
package clock

import (
	"github.com/sarchlab/tfoil/hw/signal"
	"github.com/sarchlab/tfoil/sim"
)

// A Domain is a region of logic that shares one clock and one reset.
type Domain struct {
	name      string
	freq      sim.Freq
	resetLess bool
	reset     signal.Signal
}

// NewDomain creates a domain with a managed reset. The reset source is
// attached later by the reset sequencer.
func NewDomain(name string, freq sim.Freq) *Domain {
	sim.NameMustBeValid(name)

	return &Domain{name: name, freq: freq}
}

// NewResetLessDomain creates a domain without a managed reset. The caller is
// responsible for any reset behavior, typically because the domain is gated
// purely by lock state.
func NewResetLessDomain(name string, freq sim.Freq) *Domain {
	sim.NameMustBeValid(name)

	return &Domain{name: name, freq: freq, resetLess: true}
}

// Name returns the name of the domain.
func (d *Domain) Name() string {
	return d.name
}

// Freq returns the clock frequency of the domain.
func (d *Domain) Freq() sim.Freq {
	return d.freq
}

// ResetLess tells if the domain has no managed reset.
func (d *Domain) ResetLess() bool {
	return d.resetLess
}

// AttachReset wires the domain's reset to the given source. A non-reset-less
// domain has exactly one reset source at any time; attaching a second source,
// or attaching to a reset-less domain, is a configuration error.
func (d *Domain) AttachReset(reset signal.Signal) {
	if d.resetLess {
		panic("domain " + d.name + " is reset-less, cannot attach a reset")
	}

	if d.reset != nil {
		panic("domain " + d.name + " already has a reset source")
	}

	d.reset = reset
}

// Reset returns the reset signal of the domain. Reading the reset of a
// managed domain before a source is attached is a configuration error.
func (d *Domain) Reset() signal.Signal {
	if d.resetLess {
		return signal.Low
	}

	if d.reset == nil {
		panic("domain " + d.name + " has no reset source attached")
	}

	return d.reset
}

// Derive creates a managed-reset child domain whose clock is an exact
// integer fraction of d's clock. A non-integer ratio panics.
func (d *Domain) Derive(name string, ratio int) *Domain {
	return NewDomain(name, d.freq.DividedBy(ratio))
}

// DeriveResetLess creates a reset-less child domain whose clock is an exact
// integer fraction of d's clock.
func (d *Domain) DeriveResetLess(name string, ratio int) *Domain {
	return NewResetLessDomain(name, d.freq.DividedBy(ratio))
}
