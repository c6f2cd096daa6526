package device

import (
	"strconv"

	"github.com/sarchlab/tfoil/sim"
)

// An I2CMaster models the shared multi-port I2C master. Each port maps to one
// pad group on the platform; the port order is the addressing order the
// firmware uses.
type I2CMaster struct {
	*sim.ComponentBase

	padGroups []string
}

// NewI2CMaster creates an I2CMaster over the given pad groups, in port order.
func NewI2CMaster(
	parent sim.Component,
	elemName string,
	padGroups []string,
) *I2CMaster {
	if len(padGroups) == 0 {
		panic("I2C master requires at least one pad group")
	}

	seen := map[string]bool{}
	for _, g := range padGroups {
		if seen[g] {
			panic("I2C master pad group " + g + " listed twice")
		}
		seen[g] = true
	}

	m := &I2CMaster{padGroups: append([]string{}, padGroups...)}
	m.ComponentBase = sim.NewComponentBase(parent, elemName)

	return m
}

// PortCount returns the number of I2C ports.
func (m *I2CMaster) PortCount() int {
	return len(m.padGroups)
}

// PadGroups returns the pad group names in port order.
func (m *I2CMaster) PadGroups() []string {
	return append([]string{}, m.padGroups...)
}

// PadGroup returns the pad group name behind the given port.
func (m *I2CMaster) PadGroup(port int) string {
	if port < 0 || port >= len(m.padGroups) {
		panic("I2C master has no port " + strconv.Itoa(port))
	}

	return m.padGroups[port]
}
