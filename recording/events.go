package recording

import (
	"reflect"

	"github.com/sarchlab/tfoil/sim"
)

// EventRecord is one handled engine event.
type EventRecord struct {
	Time float64
	Kind string
}

const eventTable = "engine_events"

// An EventLogger is a sim.Hook that records every event the engine handles,
// with its simulation time and concrete type.
type EventLogger struct {
	recorder Recorder
}

// NewEventLogger creates an EventLogger writing into the given recorder. It
// must be registered on the engine with AcceptHook to receive events.
func NewEventLogger(recorder Recorder) *EventLogger {
	recorder.CreateTable(eventTable, EventRecord{})

	return &EventLogger{recorder: recorder}
}

// Func records the event when the engine is about to handle it.
func (l *EventLogger) Func(ctx sim.HookCtx) {
	if ctx.Pos != sim.HookPosBeforeEvent {
		return
	}

	evt := ctx.Item.(sim.Event)
	l.recorder.InsertData(eventTable, EventRecord{
		Time: float64(evt.Time()),
		Kind: reflect.TypeOf(evt).String(),
	})
}
