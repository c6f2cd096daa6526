// Package resetsync provides asynchronous-assert, synchronous-de-assert
// reset crossing between clock domains.
package resetsync

import (
	"github.com/sarchlab/tfoil/hw/signal"
	"github.com/sarchlab/tfoil/sim"
)

// A Synchronizer brings an asynchronous reset source into a target clock
// domain. Its output asserts in the same evaluation as the source, and
// de-asserts only after the source has been low for depth consecutive edges
// of the target domain's clock. The output can therefore never pulse shorter
// than one local clock period.
type Synchronizer struct {
	*sim.TickingComponent

	async signal.Signal
	depth int

	stagesLeft int
	lastLevel  bool
	observers  []func()
}

func newSynchronizer(
	parent sim.Component,
	elemName string,
	engine sim.Engine,
	localFreq sim.Freq,
	async signal.Signal,
	depth int,
) *Synchronizer {
	if depth < 1 {
		panic("reset synchronizer depth must be at least 1")
	}

	s := &Synchronizer{
		async:      async,
		depth:      depth,
		stagesLeft: depth,
		lastLevel:  true,
	}
	s.TickingComponent = sim.NewTickingComponent(
		parent, elemName, engine, localFreq, s)

	async.OnChange(func() {
		if s.async.Get() {
			s.stagesLeft = s.depth
		}
		s.notifyIfChanged()
		s.TickLater()
	})

	return s
}

// Output returns the domain-local reset signal.
func (s *Synchronizer) Output() signal.Signal {
	return syncOutput{s: s}
}

// Depth returns the number of local clock edges required for de-assertion.
func (s *Synchronizer) Depth() int {
	return s.depth
}

// Tick observes one edge of the local clock.
func (s *Synchronizer) Tick() bool {
	if s.async.Get() {
		if s.stagesLeft != s.depth {
			s.stagesLeft = s.depth
			return true
		}

		return false
	}

	if s.stagesLeft > 0 {
		s.stagesLeft--
		s.notifyIfChanged()
		return true
	}

	return false
}

func (s *Synchronizer) level() bool {
	return s.async.Get() || s.stagesLeft > 0
}

func (s *Synchronizer) notifyIfChanged() {
	level := s.level()
	if level == s.lastLevel {
		return
	}

	s.lastLevel = level
	for _, f := range s.observers {
		f()
	}
}

type syncOutput struct {
	s *Synchronizer
}

func (o syncOutput) Get() bool {
	return o.s.level()
}

func (o syncOutput) OnChange(f func()) {
	o.s.observers = append(o.s.observers, f)
}
