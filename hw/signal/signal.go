// Package signal models single-bit levels and the combinational paths
// between them. Derived signals are computed on read, so a change at a source
// wire is observable downstream within the same evaluation, which is how
// asynchronous assertion paths behave in hardware.
package signal

// A Signal is a single-bit level that can be read and observed.
type Signal interface {
	Get() bool

	// OnChange registers a callback that fires whenever the level of the
	// signal may have changed. Derived signals forward the registration to
	// their sources.
	OnChange(f func())
}

// A Wire is a settable signal. Wires are the leaves of the combinational
// graph; everything else derives from them.
type Wire struct {
	level     bool
	observers []func()
}

// NewWire creates a wire at the given initial level.
func NewWire(level bool) *Wire {
	return &Wire{level: level}
}

// Get returns the current level of the wire.
func (w *Wire) Get() bool {
	return w.level
}

// Set drives the wire to the given level. Observers fire only on an actual
// level change.
func (w *Wire) Set(level bool) {
	if w.level == level {
		return
	}

	w.level = level
	for _, f := range w.observers {
		f()
	}
}

// OnChange registers a change observer.
func (w *Wire) OnChange(f func()) {
	w.observers = append(w.observers, f)
}

type constant bool

func (c constant) Get() bool       { return bool(c) }
func (c constant) OnChange(func()) {}

// High is a signal that is always asserted.
var High Signal = constant(true)

// Low is a signal that is always de-asserted.
var Low Signal = constant(false)

type notSignal struct {
	in Signal
}

func (s notSignal) Get() bool {
	return !s.in.Get()
}

func (s notSignal) OnChange(f func()) {
	s.in.OnChange(f)
}

// Not derives the inverse of a signal.
func Not(in Signal) Signal {
	return notSignal{in: in}
}

type orSignal struct {
	ins []Signal
}

func (s orSignal) Get() bool {
	for _, in := range s.ins {
		if in.Get() {
			return true
		}
	}

	return false
}

func (s orSignal) OnChange(f func()) {
	for _, in := range s.ins {
		in.OnChange(f)
	}
}

// Or derives the logical OR of the given signals.
func Or(ins ...Signal) Signal {
	return orSignal{ins: ins}
}

type andSignal struct {
	ins []Signal
}

func (s andSignal) Get() bool {
	for _, in := range s.ins {
		if !in.Get() {
			return false
		}
	}

	return true
}

func (s andSignal) OnChange(f func()) {
	for _, in := range s.ins {
		in.OnChange(f)
	}
}

// And derives the logical AND of the given signals.
func And(ins ...Signal) Signal {
	return andSignal{ins: ins}
}

// A Probe observes a signal and keeps the history of its levels. Derived
// signals can notify without an actual change; the probe filters those out.
type Probe struct {
	sig    Signal
	levels []bool
}

// NewProbe creates a probe on the given signal, sampling its current level.
func NewProbe(sig Signal) *Probe {
	p := &Probe{
		sig:    sig,
		levels: []bool{sig.Get()},
	}

	sig.OnChange(func() {
		if p.levels[len(p.levels)-1] != sig.Get() {
			p.levels = append(p.levels, sig.Get())
		}
	})

	return p
}

// Level returns the last observed level.
func (p *Probe) Level() bool {
	return p.levels[len(p.levels)-1]
}

// Transitions returns how many level changes the probe has observed.
func (p *Probe) Transitions() int {
	return len(p.levels) - 1
}

// History returns every observed level, starting with the initial sample.
func (p *Probe) History() []bool {
	return append([]bool{}, p.levels...)
}
