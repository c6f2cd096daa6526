// Package board describes the physical platform: the pads the carrier
// exposes and the request discipline that hands each pad to exactly one
// consumer.
package board

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/sarchlab/tfoil/sim"
)

// A Pad is one requestable pad group instance, such as clk300 or
// i2c_tca9555[3]. The signal names are the individual wires in the group.
type Pad struct {
	name    string
	index   int
	signals []string
}

// Name returns the pad group name without the index.
func (p *Pad) Name() string {
	return p.name
}

// Index returns the instance index within the pad group.
func (p *Pad) Index() int {
	return p.index
}

// FullName returns the indexed pad name, such as i2c_tca9555[3].
func (p *Pad) FullName() string {
	return p.name + "[" + strconv.Itoa(p.index) + "]"
}

// Signals returns the wire names inside the pad group.
func (p *Pad) Signals() []string {
	return append([]string{}, p.signals...)
}

type padEntry struct {
	pad       *Pad
	requested bool
}

// A Platform is the pad table of one carrier board. Every pad can be
// requested at most once; requesting an unknown pad or one that is already
// taken is a configuration error.
type Platform struct {
	name string

	entries map[string][]*padEntry

	defaultClkName string
	defaultClkFreq sim.Freq
}

var i2cSignals = []string{"scl", "sda"}

var ddramSignals = []string{
	"a", "ba", "bg", "ras_n", "cas_n", "we_n", "cs_n", "act_n",
	"dm", "dq", "dqs_p", "dqs_n", "clk_p", "clk_n",
	"cke", "odt", "reset_n",
}

// NewTfoilPlatform creates the pad table of the tfoil carrier.
func NewTfoilPlatform() *Platform {
	p := &Platform{
		name:           "tfoil",
		entries:        map[string][]*padEntry{},
		defaultClkName: "clk300",
		defaultClkFreq: 300 * sim.MHz,
	}

	p.add("clk300", 1, []string{"p", "n"})
	p.add("clk125", 1, []string{"p", "n"})
	p.add("cpu_resetn", 1, nil)

	p.add("ddram", 1, ddramSignals)

	p.add("i2c_tca9555", 7, i2cSignals)
	p.add("i2c_tca9548", 4, i2cSignals)
	p.add("i2c_si5341", 2, i2cSignals)

	p.add("tca9548_reset_n", 1, nil)
	p.add("si5341_in_sel_0", 1, nil)
	p.add("si5341_syncb", 1, nil)
	p.add("si5341_rstb", 1, nil)
	p.add("si5341_lolb", 2, nil)

	p.add("user_led", 4, nil)

	p.add("gty121", 1, []string{"tx_p", "tx_n", "rx_p", "rx_n"})
	p.add("mgtrefclk121", 1, []string{"p", "n"})

	return p
}

func (p *Platform) add(name string, count int, signals []string) {
	entries := make([]*padEntry, count)
	for i := 0; i < count; i++ {
		entries[i] = &padEntry{
			pad: &Pad{name: name, index: i, signals: signals},
		}
	}

	p.entries[name] = entries
}

// Name returns the platform name.
func (p *Platform) Name() string {
	return p.name
}

// DefaultClk returns the name and frequency of the platform's default clock
// input.
func (p *Platform) DefaultClk() (string, sim.Freq) {
	return p.defaultClkName, p.defaultClkFreq
}

// Request hands out instance 0 of the named pad group.
func (p *Platform) Request(name string) *Pad {
	return p.RequestWithIndex(name, 0)
}

// RequestWithIndex hands out one instance of the named pad group.
func (p *Platform) RequestWithIndex(name string, index int) *Pad {
	entries, found := p.entries[name]
	if !found {
		panic(fmt.Sprintf(
			"platform %s has no pad group %s, available pad groups are %v",
			p.name, name, p.padGroupNames()))
	}

	if index < 0 || index >= len(entries) {
		panic(fmt.Sprintf(
			"pad group %s has %d instances, cannot request index %d",
			name, len(entries), index))
	}

	e := entries[index]
	if e.requested {
		panic("pad " + e.pad.FullName() + " is already requested")
	}

	e.requested = true
	return e.pad
}

// RequestAll hands out every remaining instance of the named pad group, in
// index order. Requesting a group with no instances left is a configuration
// error.
func (p *Platform) RequestAll(name string) []*Pad {
	entries, found := p.entries[name]
	if !found {
		panic(fmt.Sprintf(
			"platform %s has no pad group %s, available pad groups are %v",
			p.name, name, p.padGroupNames()))
	}

	var pads []*Pad
	for _, e := range entries {
		if e.requested {
			continue
		}

		e.requested = true
		pads = append(pads, e.pad)
	}

	if len(pads) == 0 {
		panic("pad group " + name + " has no instances left to request")
	}

	return pads
}

// Requested tells if the given instance of a pad group has been handed out.
func (p *Platform) Requested(name string, index int) bool {
	entries, found := p.entries[name]
	if !found || index < 0 || index >= len(entries) {
		return false
	}

	return entries[index].requested
}

func (p *Platform) padGroupNames() []string {
	names := make([]string, 0, len(p.entries))
	for name := range p.entries {
		names = append(names, name)
	}

	sort.Strings(names)
	return names
}
