package device

import "github.com/sarchlab/tfoil/sim"

// An LEDChaser rotates a single lit bit across the user LEDs. It does not
// self-schedule; whoever owns the slow-blink timebase calls Step.
type LEDChaser struct {
	*sim.ComponentBase

	width   int
	pattern uint64
}

// NewLEDChaser creates an LEDChaser over width LEDs, lighting the first one.
func NewLEDChaser(parent sim.Component, elemName string, width int) *LEDChaser {
	if width < 1 || width > 64 {
		panic("LED chaser width must be between 1 and 64")
	}

	c := &LEDChaser{width: width, pattern: 1}
	c.ComponentBase = sim.NewComponentBase(parent, elemName)

	return c
}

// Width returns the number of LEDs.
func (c *LEDChaser) Width() int {
	return c.width
}

// Pattern returns the current LED pattern.
func (c *LEDChaser) Pattern() uint64 {
	return c.pattern
}

// Step rotates the lit LED by n positions.
func (c *LEDChaser) Step(n int) {
	for i := 0; i < n; i++ {
		c.pattern <<= 1
		if c.pattern>>uint(c.width) != 0 {
			c.pattern = 1
		}
	}
}
