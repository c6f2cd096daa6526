package resetsync

import (
	"github.com/sarchlab/tfoil/hw/signal"
	"github.com/sarchlab/tfoil/sim"
)

// A Domain is the part of a clock domain the sequencer needs: its identity,
// its clock rate, and a single attachment point for the managed reset.
type Domain interface {
	Name() string
	Freq() sim.Freq
	AttachReset(reset signal.Signal)
}

// An Edge records that a dependent domain's reset is derived asynchronously
// from a source and resynchronized into the dependent domain's clock.
type Edge struct {
	Source    string
	Dependent string
	Depth     int
}

// A Sequencer owns the reset synchronizers of a design and the reset domain
// edges they realize.
type Sequencer struct {
	*sim.ComponentBase

	engine sim.Engine
	depth  int

	edges []Edge
	syncs []*Synchronizer
}

// SequencerBuilder can build reset sequencers.
type SequencerBuilder struct {
	engine sim.Engine
	depth  int
}

// MakeSequencerBuilder creates a SequencerBuilder with the default
// de-assertion depth of 2 local clock edges.
func MakeSequencerBuilder() SequencerBuilder {
	return SequencerBuilder{
		depth: 2,
	}
}

// WithEngine sets the event engine that drives the synchronizers.
func (b SequencerBuilder) WithEngine(engine sim.Engine) SequencerBuilder {
	b.engine = engine
	return b
}

// WithDepth sets the number of local clock edges a reset stays asserted
// after its trigger clears.
func (b SequencerBuilder) WithDepth(depth int) SequencerBuilder {
	b.depth = depth
	return b
}

// Build creates the Sequencer.
func (b SequencerBuilder) Build(
	parent sim.Component,
	elemName string,
) *Sequencer {
	if b.engine == nil {
		panic("reset sequencer requires an engine")
	}

	if b.depth < 1 {
		panic("reset sequencer depth must be at least 1")
	}

	s := &Sequencer{
		engine: b.engine,
		depth:  b.depth,
	}
	s.ComponentBase = sim.NewComponentBase(parent, elemName)

	return s
}

// Synchronize attaches a synchronized, glitch-free reset to the target
// domain, derived from the given asynchronous source. sourceName identifies
// the source domain or signal in the reset domain edge record. The returned
// signal is the domain-local reset.
func (s *Sequencer) Synchronize(
	target Domain,
	async signal.Signal,
	sourceName string,
	elemName string,
) signal.Signal {
	sync := newSynchronizer(s, elemName, s.engine, target.Freq(), async, s.depth)
	s.Adopt(sync)

	target.AttachReset(sync.Output())

	s.edges = append(s.edges, Edge{
		Source:    sourceName,
		Dependent: target.Name(),
		Depth:     s.depth,
	})
	s.syncs = append(s.syncs, sync)

	sync.TickLater()

	return sync.Output()
}

// SynchronizeSignal creates a synchronizer for a signal that is not a domain
// reset, such as a lock indication crossing into a foreign clock domain. No
// reset is attached anywhere; the caller borrows the output.
func (s *Sequencer) SynchronizeSignal(
	localFreq sim.Freq,
	async signal.Signal,
	sourceName string,
	dependentName string,
	elemName string,
) signal.Signal {
	sync := newSynchronizer(s, elemName, s.engine, localFreq, async, s.depth)
	s.Adopt(sync)

	s.edges = append(s.edges, Edge{
		Source:    sourceName,
		Dependent: dependentName,
		Depth:     s.depth,
	})
	s.syncs = append(s.syncs, sync)

	sync.TickLater()

	return sync.Output()
}

// Edges returns the reset domain edges registered so far.
func (s *Sequencer) Edges() []Edge {
	return s.edges
}

// Depth returns the configured de-assertion depth.
func (s *Sequencer) Depth() int {
	return s.depth
}
