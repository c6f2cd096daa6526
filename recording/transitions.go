package recording

import (
	"github.com/sarchlab/tfoil/hw/signal"
	"github.com/sarchlab/tfoil/sim"
)

// SignalTransition is one recorded level change of a watched signal.
type SignalTransition struct {
	Time   float64
	Signal string
	Level  int
}

const transitionTable = "signal_transitions"

// A TransitionLogger records every level change of the signals it watches,
// stamped with the simulation time of the change.
type TransitionLogger struct {
	recorder Recorder
	engine   sim.Engine
	last     map[string]bool
}

// NewTransitionLogger creates a TransitionLogger writing into the given
// recorder.
func NewTransitionLogger(
	recorder Recorder,
	engine sim.Engine,
) *TransitionLogger {
	recorder.CreateTable(transitionTable, SignalTransition{})

	return &TransitionLogger{
		recorder: recorder,
		engine:   engine,
		last:     make(map[string]bool),
	}
}

// Watch records the initial level of the named signal and every change from
// then on. Derived signals can notify without an actual level change; those
// notifications are filtered out.
func (l *TransitionLogger) Watch(name string, s signal.Signal) {
	l.record(name, s.Get())

	s.OnChange(func() {
		if l.last[name] == s.Get() {
			return
		}

		l.record(name, s.Get())
	})
}

func (l *TransitionLogger) record(name string, level bool) {
	l.last[name] = level

	levelInt := 0
	if level {
		levelInt = 1
	}

	l.recorder.InsertData(transitionTable, SignalTransition{
		Time:   float64(l.engine.CurrentTime()),
		Signal: name,
		Level:  levelInt,
	})
}
