package stream

// Direction tells which way beats flow through an endpoint.
type Direction int

// The two endpoint directions.
const (
	Source Direction = iota
	Sink
)

// An Endpoint is one end of a stream connection: a named field vocabulary
// plus a beat buffer. Source endpoints are filled by the component that owns
// them; sink endpoints are filled by a connection.
type Endpoint struct {
	name     string
	dir      Direction
	layout   Layout
	capacity int

	buf        []*Beat
	onPush     []func()
	onRetrieve []func()
}

// NewSource creates a source endpoint.
func NewSource(name string, layout Layout, capacity int) *Endpoint {
	return newEndpoint(name, Source, layout, capacity)
}

// NewSink creates a sink endpoint.
func NewSink(name string, layout Layout, capacity int) *Endpoint {
	return newEndpoint(name, Sink, layout, capacity)
}

func newEndpoint(
	name string,
	dir Direction,
	layout Layout,
	capacity int,
) *Endpoint {
	if capacity < 1 {
		panic("endpoint " + name + " must have a positive capacity")
	}

	return &Endpoint{
		name:     name,
		dir:      dir,
		layout:   layout,
		capacity: capacity,
	}
}

// Name returns the name of the endpoint.
func (e *Endpoint) Name() string {
	return e.name
}

// Direction returns the direction of the endpoint.
func (e *Endpoint) Direction() Direction {
	return e.dir
}

// Layout returns the field vocabulary of the endpoint.
func (e *Endpoint) Layout() Layout {
	return e.layout
}

// CanPush tells if the endpoint buffer has room for another beat.
func (e *Endpoint) CanPush() bool {
	return len(e.buf) < e.capacity
}

// Push adds a beat to the endpoint. Beats may only carry fields the
// endpoint's vocabulary defines; anything else is a configuration error in
// the producing component.
func (e *Endpoint) Push(b *Beat) {
	if !e.CanPush() {
		panic("endpoint " + e.name + " overflow")
	}

	for _, name := range b.FieldNames() {
		if !e.layout.Has(name) {
			panic("beat carries field " + name +
				" that endpoint " + e.name + " does not define")
		}
	}

	e.buf = append(e.buf, b)
	for _, f := range e.onPush {
		f()
	}
}

// Peek returns the first buffered beat without removing it, nil if empty.
func (e *Endpoint) Peek() *Beat {
	if len(e.buf) == 0 {
		return nil
	}

	return e.buf[0]
}

// Retrieve removes and returns the first buffered beat, nil if empty.
func (e *Endpoint) Retrieve() *Beat {
	if len(e.buf) == 0 {
		return nil
	}

	b := e.buf[0]
	e.buf = e.buf[1:]
	for _, f := range e.onRetrieve {
		f()
	}

	return b
}

// Pending returns the number of buffered beats.
func (e *Endpoint) Pending() int {
	return len(e.buf)
}

// OnPush registers an observer fired whenever a beat is pushed.
func (e *Endpoint) OnPush(f func()) {
	e.onPush = append(e.onPush, f)
}

// OnRetrieve registers an observer fired whenever a beat is retrieved.
func (e *Endpoint) OnRetrieve(f func()) {
	e.onRetrieve = append(e.onRetrieve, f)
}
