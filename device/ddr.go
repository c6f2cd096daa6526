package device

import (
	"fmt"

	"github.com/sarchlab/tfoil/hw/clock"
	"github.com/sarchlab/tfoil/sim"
)

// CalibClkFreq is the delay-calibration clock frequency the DDR4 PHY
// requires. Elaborating a controller with any other calibration clock is a
// configuration error.
const CalibClkFreq = 400 * sim.MHz

// A DDR4Controller models the structural contract of the DDR4 memory
// controller: its module geometry, the system domain it runs in, and the
// fixed-frequency calibration domain the PHY depends on.
type DDR4Controller struct {
	*sim.ComponentBase

	moduleName  string
	rate        string
	sizeBytes   uint64
	l2CacheSize uint64

	sysDomain   *clock.Domain
	calibDomain *clock.Domain
}

// DDR4ControllerBuilder can build DDR4 controllers.
type DDR4ControllerBuilder struct {
	moduleName  string
	rate        string
	sizeBytes   uint64
	l2CacheSize uint64
	sysDomain   *clock.Domain
	calibDomain *clock.Domain
}

// MakeDDR4ControllerBuilder creates a DDR4ControllerBuilder with the board's
// default memory module.
func MakeDDR4ControllerBuilder() DDR4ControllerBuilder {
	return DDR4ControllerBuilder{
		moduleName:  "MT40A1G8",
		rate:        "1:4",
		sizeBytes:   0x40000000,
		l2CacheSize: 8192,
	}
}

// WithModule sets the memory module part name.
func (b DDR4ControllerBuilder) WithModule(name string) DDR4ControllerBuilder {
	b.moduleName = name
	return b
}

// WithSize sets the usable memory size in bytes.
func (b DDR4ControllerBuilder) WithSize(bytes uint64) DDR4ControllerBuilder {
	b.sizeBytes = bytes
	return b
}

// WithL2CacheSize sets the controller's L2 cache size in bytes.
func (b DDR4ControllerBuilder) WithL2CacheSize(
	bytes uint64,
) DDR4ControllerBuilder {
	b.l2CacheSize = bytes
	return b
}

// WithSysDomain sets the clock domain the controller core runs in.
func (b DDR4ControllerBuilder) WithSysDomain(
	d *clock.Domain,
) DDR4ControllerBuilder {
	b.sysDomain = d
	return b
}

// WithCalibDomain sets the delay-calibration clock domain.
func (b DDR4ControllerBuilder) WithCalibDomain(
	d *clock.Domain,
) DDR4ControllerBuilder {
	b.calibDomain = d
	return b
}

// Build creates the DDR4Controller.
func (b DDR4ControllerBuilder) Build(
	parent sim.Component,
	elemName string,
) *DDR4Controller {
	if b.sysDomain == nil || b.calibDomain == nil {
		panic("DDR4 controller requires a system and a calibration domain")
	}

	if b.calibDomain.Freq() != CalibClkFreq {
		panic(fmt.Sprintf(
			"DDR4 calibration domain %s runs at %.0f MHz, the PHY requires %.0f MHz",
			b.calibDomain.Name(),
			float64(b.calibDomain.Freq()/sim.MHz),
			float64(CalibClkFreq/sim.MHz)))
	}

	c := &DDR4Controller{
		moduleName:  b.moduleName,
		rate:        b.rate,
		sizeBytes:   b.sizeBytes,
		l2CacheSize: b.l2CacheSize,
		sysDomain:   b.sysDomain,
		calibDomain: b.calibDomain,
	}
	c.ComponentBase = sim.NewComponentBase(parent, elemName)

	return c
}

// ModuleName returns the memory module part name.
func (c *DDR4Controller) ModuleName() string {
	return c.moduleName
}

// Rate returns the controller to PHY clock ratio.
func (c *DDR4Controller) Rate() string {
	return c.rate
}

// Size returns the usable memory size in bytes.
func (c *DDR4Controller) Size() uint64 {
	return c.sizeBytes
}

// L2CacheSize returns the L2 cache size in bytes.
func (c *DDR4Controller) L2CacheSize() uint64 {
	return c.l2CacheSize
}

// SysDomain returns the domain the controller core runs in.
func (c *DDR4Controller) SysDomain() *clock.Domain {
	return c.sysDomain
}

// CalibDomain returns the delay-calibration domain.
func (c *DDR4Controller) CalibDomain() *clock.Domain {
	return c.calibDomain
}
