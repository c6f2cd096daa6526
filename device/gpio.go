package device

import (
	"fmt"

	"github.com/sarchlab/tfoil/hw/signal"
	"github.com/sarchlab/tfoil/sim"
)

// A GPIOOut drives a group of output pads from a value latch.
type GPIOOut struct {
	*sim.ComponentBase

	width int
	value uint64
}

// NewGPIOOut creates a GPIOOut over width pads.
func NewGPIOOut(parent sim.Component, elemName string, width int) *GPIOOut {
	if width < 1 || width > 64 {
		panic("GPIO output width must be between 1 and 64")
	}

	g := &GPIOOut{width: width}
	g.ComponentBase = sim.NewComponentBase(parent, elemName)

	return g
}

// Width returns the number of pads in the group.
func (g *GPIOOut) Width() int {
	return g.width
}

// Set latches a new output value. Bits beyond the pad group width are a
// configuration error in the caller.
func (g *GPIOOut) Set(value uint64) {
	if g.width < 64 && value>>uint(g.width) != 0 {
		panic(fmt.Sprintf(
			"value %#x does not fit the %d-bit output group %s",
			value, g.width, g.Name()))
	}

	g.value = value
}

// Value returns the latched output value.
func (g *GPIOOut) Value() uint64 {
	return g.value
}

// A GPIOIn samples a group of input pads.
type GPIOIn struct {
	*sim.ComponentBase

	inputs []signal.Signal
}

// NewGPIOIn creates a GPIOIn over the given input signals, LSB first.
func NewGPIOIn(
	parent sim.Component,
	elemName string,
	inputs []signal.Signal,
) *GPIOIn {
	if len(inputs) == 0 || len(inputs) > 64 {
		panic("GPIO input width must be between 1 and 64")
	}

	g := &GPIOIn{inputs: append([]signal.Signal{}, inputs...)}
	g.ComponentBase = sim.NewComponentBase(parent, elemName)

	return g
}

// Width returns the number of pads in the group.
func (g *GPIOIn) Width() int {
	return len(g.inputs)
}

// Read samples all the inputs and packs them into one value, LSB first.
func (g *GPIOIn) Read() uint64 {
	var v uint64
	for i, in := range g.inputs {
		if in.Get() {
			v |= 1 << uint(i)
		}
	}

	return v
}
