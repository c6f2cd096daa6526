package soc

import (
	"sort"

	"github.com/sarchlab/tfoil/hw/clock"
	"github.com/sarchlab/tfoil/hw/resetsync"
	"github.com/sarchlab/tfoil/sim"
)

// DomainInfo describes one clock domain in an elaboration report.
type DomainInfo struct {
	Name      string
	FreqMHz   float64
	ResetLess bool
}

// A Report is the structural summary of one elaborated design: the domain
// topology, the reset edges, the timing exceptions, the realized stream
// vocabularies, and the full component tree.
type Report struct {
	Name          string
	SysClkFreqMHz float64
	DataWidth     int

	Domains    []DomainInfo
	ResetEdges []resetsync.Edge
	FalsePaths []clock.FalsePath

	DataPlaneFields []string
	DataPlaneOmit   []string
	ControlFields   []string

	Components []string
}

// ElaborationReport summarizes the elaborated design.
func (s *SoC) ElaborationReport() Report {
	r := Report{
		Name:          s.Name(),
		SysClkFreqMHz: float64(s.crg.Sys.Freq() / sim.MHz),
		DataWidth:     s.core.DataWidth(),
		ResetEdges:    s.crg.Sequencer().Edges(),
		FalsePaths:    s.crg.FalsePaths(),
		DataPlaneOmit: s.link.Rx().OmitSet(),
	}

	for _, d := range s.crg.Domains() {
		r.Domains = append(r.Domains, DomainInfo{
			Name:      d.Name(),
			FreqMHz:   float64(d.Freq() / sim.MHz),
			ResetLess: d.ResetLess(),
		})
	}

	r.DataPlaneFields = s.link.Rx().Realized().FieldNames()
	sort.Strings(r.DataPlaneFields)
	r.ControlFields = s.ctrl.Conn().Realized().FieldNames()
	sort.Strings(r.ControlFields)

	sim.Walk(s, func(c sim.Component) {
		r.Components = append(r.Components, c.Name())
	})

	return r
}
