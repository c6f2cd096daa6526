package stream

import (
	"sort"

	"github.com/sarchlab/tfoil/sim"
)

// A Connection is a directional binding from a source endpoint to a sink
// endpoint with an explicit omit set. Both vocabularies minus the omit set
// must be exactly equal; anything else refuses to elaborate. Omitted fields
// are dropped structurally: no value for them ever crosses the connection,
// whichever side defines them.
type Connection struct {
	*sim.TickingComponent

	src      *Endpoint
	dst      *Endpoint
	omit     []string
	realized Layout
}

// ConnectionBuilder can build stream connections.
type ConnectionBuilder struct {
	engine sim.Engine
	freq   sim.Freq
	src    *Endpoint
	dst    *Endpoint
	omit   []string
}

// MakeConnectionBuilder creates a ConnectionBuilder.
func MakeConnectionBuilder() ConnectionBuilder {
	return ConnectionBuilder{}
}

// WithEngine sets the event engine that drives the connection.
func (b ConnectionBuilder) WithEngine(engine sim.Engine) ConnectionBuilder {
	b.engine = engine
	return b
}

// WithFreq sets the rate at which the connection forwards beats.
func (b ConnectionBuilder) WithFreq(freq sim.Freq) ConnectionBuilder {
	b.freq = freq
	return b
}

// WithSource sets the producing endpoint.
func (b ConnectionBuilder) WithSource(src *Endpoint) ConnectionBuilder {
	b.src = src
	return b
}

// WithSink sets the consuming endpoint.
func (b ConnectionBuilder) WithSink(dst *Endpoint) ConnectionBuilder {
	b.dst = dst
	return b
}

// WithOmit declares source fields that are never transferred because the
// sink does not define them.
func (b ConnectionBuilder) WithOmit(names ...string) ConnectionBuilder {
	b.omit = append(b.omit, names...)
	return b
}

// Build validates the connection contract and creates the Connection.
func (b ConnectionBuilder) Build(
	parent sim.Component,
	elemName string,
) *Connection {
	b.parametersMustBeValid()

	drop := make(map[string]bool, len(b.omit))
	for _, n := range b.omit {
		if !b.src.Layout().Has(n) && !b.dst.Layout().Has(n) {
			panic("cannot omit field " + n +
				": neither endpoint of " + elemName + " defines it")
		}
		drop[n] = true
	}

	realized := b.src.Layout().subtract(drop)
	if !realized.EqualSet(b.dst.Layout().subtract(drop)) {
		panic("stream connection " + elemName + " field mismatch:" +
			" source minus omit set is {" + realized.Describe() + "}," +
			" sink minus omit set is {" +
			b.dst.Layout().subtract(drop).Describe() + "}")
	}

	c := &Connection{
		src:      b.src,
		dst:      b.dst,
		omit:     append([]string{}, b.omit...),
		realized: realized,
	}
	c.TickingComponent = sim.NewSecondaryTickingComponent(
		parent, elemName, b.engine, b.freq, c)

	b.src.OnPush(c.TickLater)
	b.dst.OnRetrieve(c.TickLater)

	return c
}

func (b ConnectionBuilder) parametersMustBeValid() {
	if b.engine == nil {
		panic("stream connection requires an engine")
	}

	if b.freq == 0 {
		panic("stream connection requires a frequency")
	}

	if b.src == nil || b.dst == nil {
		panic("stream connection requires a source and a sink")
	}

	if b.src.Direction() != Source {
		panic("endpoint " + b.src.Name() + " is not a source")
	}

	if b.dst.Direction() != Sink {
		panic("endpoint " + b.dst.Name() + " is not a sink")
	}
}

// Realized returns the field set that actually transfers.
func (c *Connection) Realized() Layout {
	return c.realized
}

// OmitSet returns the omitted field names, sorted.
func (c *Connection) OmitSet() []string {
	names := append([]string{}, c.omit...)
	sort.Strings(names)
	return names
}

// Source returns the producing endpoint.
func (c *Connection) Source() *Endpoint {
	return c.src
}

// Sink returns the consuming endpoint.
func (c *Connection) Sink() *Endpoint {
	return c.dst
}

// Tick forwards as many beats as the sink can take this cycle.
func (c *Connection) Tick() bool {
	madeProgress := false

	for c.src.Pending() > 0 && c.dst.CanPush() {
		beat := c.src.Retrieve()
		c.dst.Push(beat.project(c.realized))
		madeProgress = true
	}

	return madeProgress
}
