// Package device models the external collaborator blocks of the board:
// the serial transceiver, the packet-processing core, the control packet
// generator, and the DDR4/I2C/GPIO peripherals. Only the structural
// contracts are modeled; the internals of these blocks live elsewhere.
package device

import (
	"github.com/sarchlab/tfoil/hw/signal"
	"github.com/sarchlab/tfoil/sim"
	"github.com/sarchlab/tfoil/stream"
)

// LinkState is the state of the transceiver's link-training state machine.
type LinkState int

// The transceiver link states.
const (
	LinkIdle LinkState = iota
	LinkTraining
	LinkUp
)

func (s LinkState) String() string {
	switch s {
	case LinkIdle:
		return "idle"
	case LinkTraining:
		return "training"
	case LinkUp:
		return "up"
	default:
		return "unknown"
	}
}

// A Transceiver models the 64b/66b serial link's user-facing contract: a
// deframed receive stream, a framed transmit stream, and a training state
// machine that runs in the free-running clock domain. Training is gated on
// the init-clock-locked input and never begins while it is low; a drop on
// that input returns the link to idle in the same evaluation.
type Transceiver struct {
	*sim.TickingComponent

	laneName   string
	refClkName string

	initClkLocked signal.Signal

	state          LinkState
	trainingCycles int
	trainLeft      int

	userRx *stream.Endpoint
	userTx *stream.Endpoint

	lineRx   []*stream.Beat
	framedTx []*stream.Beat
}

// TransceiverBuilder can build transceivers.
type TransceiverBuilder struct {
	engine         sim.Engine
	freerunFreq    sim.Freq
	laneName       string
	refClkName     string
	dataWidth      int
	trainingCycles int
	initClkLocked  signal.Signal
}

// MakeTransceiverBuilder creates a TransceiverBuilder with defaults.
func MakeTransceiverBuilder() TransceiverBuilder {
	return TransceiverBuilder{
		dataWidth:      256,
		trainingCycles: 16,
	}
}

// WithEngine sets the event engine that drives the transceiver.
func (b TransceiverBuilder) WithEngine(engine sim.Engine) TransceiverBuilder {
	b.engine = engine
	return b
}

// WithFreerunClk sets the free-running clock rate the training state machine
// runs at before the system PLL locks.
func (b TransceiverBuilder) WithFreerunClk(freq sim.Freq) TransceiverBuilder {
	b.freerunFreq = freq
	return b
}

// WithLane sets the transceiver lane pad name.
func (b TransceiverBuilder) WithLane(name string) TransceiverBuilder {
	b.laneName = name
	return b
}

// WithRefClk sets the transceiver reference clock pad name.
func (b TransceiverBuilder) WithRefClk(name string) TransceiverBuilder {
	b.refClkName = name
	return b
}

// WithDataWidth sets the user stream data width in bits.
func (b TransceiverBuilder) WithDataWidth(width int) TransceiverBuilder {
	b.dataWidth = width
	return b
}

// WithTrainingCycles sets how many free-running cycles link training takes.
func (b TransceiverBuilder) WithTrainingCycles(n int) TransceiverBuilder {
	b.trainingCycles = n
	return b
}

// WithInitClkLocked wires the lock indication that gates link training.
func (b TransceiverBuilder) WithInitClkLocked(
	locked signal.Signal,
) TransceiverBuilder {
	b.initClkLocked = locked
	return b
}

// Build creates the Transceiver.
func (b TransceiverBuilder) Build(
	parent sim.Component,
	elemName string,
) *Transceiver {
	b.parametersMustBeValid()

	t := &Transceiver{
		laneName:       b.laneName,
		refClkName:     b.refClkName,
		initClkLocked:  b.initClkLocked,
		state:          LinkIdle,
		trainingCycles: b.trainingCycles,
		trainLeft:      b.trainingCycles,
	}
	t.TickingComponent = sim.NewTickingComponent(
		parent, elemName, b.engine, b.freerunFreq, t)

	t.userRx = stream.NewSource(
		t.Name()+".UserRx", stream.TransceiverLayout(b.dataWidth), 16)
	t.userTx = stream.NewSink(
		t.Name()+".UserTx", stream.TransceiverLayout(b.dataWidth), 16)

	t.userTx.OnPush(t.TickLater)

	// Loss of the init lock aborts the link within the same evaluation.
	b.initClkLocked.OnChange(func() {
		if !t.initClkLocked.Get() {
			t.state = LinkIdle
			t.trainLeft = t.trainingCycles
		}
		t.TickLater()
	})

	return t
}

func (b TransceiverBuilder) parametersMustBeValid() {
	if b.engine == nil {
		panic("transceiver requires an engine")
	}

	if b.freerunFreq == 0 {
		panic("transceiver requires a free-running clock")
	}

	if b.initClkLocked == nil {
		panic("transceiver requires the init-clock-locked input")
	}

	if b.trainingCycles < 1 {
		panic("transceiver training must take at least 1 cycle")
	}
}

// UserRx returns the deframed receive stream endpoint.
func (t *Transceiver) UserRx() *stream.Endpoint {
	return t.userRx
}

// UserTx returns the framed transmit stream endpoint.
func (t *Transceiver) UserTx() *stream.Endpoint {
	return t.userTx
}

// State returns the current link-training state.
func (t *Transceiver) State() LinkState {
	return t.state
}

// LaneName returns the transceiver lane pad name.
func (t *Transceiver) LaneName() string {
	return t.laneName
}

// RefClkName returns the transceiver reference clock pad name.
func (t *Transceiver) RefClkName() string {
	return t.refClkName
}

// InjectLineRx queues a deframed beat as if it arrived from the line side.
func (t *Transceiver) InjectLineRx(b *stream.Beat) {
	t.lineRx = append(t.lineRx, b)
	t.TickLater()
}

// FramedTx returns the beats the transceiver has framed for transmission.
func (t *Transceiver) FramedTx() []*stream.Beat {
	return t.framedTx
}

// Tick advances the link state machine by one free-running cycle.
func (t *Transceiver) Tick() bool {
	if !t.initClkLocked.Get() {
		if t.state != LinkIdle {
			t.state = LinkIdle
			t.trainLeft = t.trainingCycles
			return true
		}

		return false
	}

	switch t.state {
	case LinkIdle:
		t.state = LinkTraining
		t.trainLeft = t.trainingCycles
		return true

	case LinkTraining:
		t.trainLeft--
		if t.trainLeft == 0 {
			t.state = LinkUp
		}
		return true

	case LinkUp:
		return t.moveStreams()
	}

	return false
}

func (t *Transceiver) moveStreams() bool {
	madeProgress := false

	for len(t.lineRx) > 0 && t.userRx.CanPush() {
		t.userRx.Push(t.lineRx[0])
		t.lineRx = t.lineRx[1:]
		madeProgress = true
	}

	for t.userTx.Pending() > 0 {
		t.framedTx = append(t.framedTx, t.userTx.Retrieve())
		madeProgress = true
	}

	return madeProgress
}
