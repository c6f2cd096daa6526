// Package monitoring turns an elaborated design into a small web server so
// that the domain topology, the component tree, and the live signal levels
// can be inspected from a browser.
package monitoring

import (
	"encoding/json"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/pkg/browser"
	"github.com/shirou/gopsutil/process"

	"github.com/sarchlab/tfoil/sim"
	"github.com/sarchlab/tfoil/soc"
)

// Monitor serves the state of one elaborated design over HTTP.
type Monitor struct {
	engine sim.Engine
	design *soc.SoC

	portNumber int
	url        string
}

// NewMonitor creates a new Monitor.
func NewMonitor() *Monitor {
	return &Monitor{}
}

// WithPortNumber sets the port number of the monitor.
func (m *Monitor) WithPortNumber(portNumber int) *Monitor {
	if portNumber < 1000 {
		fmt.Fprintf(os.Stderr,
			"Port number %d is assigned to the monitoring server, "+
				"which is not allowed. Using a random port instead.\n",
			portNumber)
		portNumber = 0
	}

	m.portNumber = portNumber

	return m
}

// RegisterEngine registers the engine that drives the design.
func (m *Monitor) RegisterEngine(e sim.Engine) {
	m.engine = e
}

// RegisterSoC registers the design to monitor.
func (m *Monitor) RegisterSoC(s *soc.SoC) {
	m.design = s
}

// StartServer starts the monitor as a web server.
func (m *Monitor) StartServer() {
	r := mux.NewRouter()

	r.HandleFunc("/api/now", m.now)
	r.HandleFunc("/api/components", m.listComponents)
	r.HandleFunc("/api/component/{name}", m.componentDetails)
	r.HandleFunc("/api/report", m.report)
	r.HandleFunc("/api/domains", m.listDomains)
	r.HandleFunc("/api/signals", m.signals)
	r.HandleFunc("/api/resources", m.listResources)

	actualPort := ":0"
	if m.portNumber > 1000 {
		actualPort = ":" + strconv.Itoa(m.portNumber)
	}

	listener, err := net.Listen("tcp", actualPort)
	dieOnErr(err)

	m.url = fmt.Sprintf("http://localhost:%d",
		listener.Addr().(*net.TCPAddr).Port)
	fmt.Fprintf(os.Stderr, "Monitoring the design with %s\n", m.url)

	go func() {
		err = http.Serve(listener, r)
		dieOnErr(err)
	}()
}

// OpenBrowser opens the monitoring page in the local browser. StartServer
// must have been called first.
func (m *Monitor) OpenBrowser() {
	if m.url == "" {
		panic("the monitoring server is not started")
	}

	err := browser.OpenURL(m.url)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to open browser: %s\n", err)
	}
}

func (m *Monitor) now(w http.ResponseWriter, _ *http.Request) {
	fmt.Fprintf(w, "{\"now\":%.10f}", m.engine.CurrentTime())
}

func (m *Monitor) listComponents(w http.ResponseWriter, _ *http.Request) {
	var names []string
	sim.Walk(m.design, func(c sim.Component) {
		names = append(names, c.Name())
	})

	writeJSON(w, names)
}

type componentRsp struct {
	Name     string   `json:"name"`
	Parent   string   `json:"parent,omitempty"`
	Children []string `json:"children,omitempty"`
}

func (m *Monitor) componentDetails(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["name"]

	comp := m.findComponentOr404(w, name)
	if comp == nil {
		return
	}

	rsp := componentRsp{Name: comp.Name()}
	if comp.Parent() != nil {
		rsp.Parent = comp.Parent().Name()
	}
	for _, child := range comp.Children() {
		rsp.Children = append(rsp.Children, child.Name())
	}

	writeJSON(w, rsp)
}

func (m *Monitor) report(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, m.design.ElaborationReport())
}

type domainRsp struct {
	Name      string  `json:"name"`
	FreqMHz   float64 `json:"freq_mhz"`
	ResetLess bool    `json:"reset_less"`
	Reset     bool    `json:"reset"`
}

func (m *Monitor) listDomains(w http.ResponseWriter, _ *http.Request) {
	var rsp []domainRsp
	for _, d := range m.design.CRG().Domains() {
		rsp = append(rsp, domainRsp{
			Name:      d.Name(),
			FreqMHz:   float64(d.Freq() / sim.MHz),
			ResetLess: d.ResetLess(),
			Reset:     d.Reset().Get(),
		})
	}

	writeJSON(w, rsp)
}

type signalRsp struct {
	Locked            bool   `json:"locked"`
	TransceiverLocked bool   `json:"transceiver_locked"`
	SysReset          bool   `json:"sys_reset"`
	IDelayReset       bool   `json:"idelay_reset"`
	Clk125Reset       bool   `json:"clk125_reset"`
	LinkState         string `json:"link_state"`
}

func (m *Monitor) signals(w http.ResponseWriter, _ *http.Request) {
	crg := m.design.CRG()

	writeJSON(w, signalRsp{
		Locked:            crg.Locked().Get(),
		TransceiverLocked: m.design.TransceiverLocked().Get(),
		SysReset:          crg.Sys.Reset().Get(),
		IDelayReset:       crg.IDelay.Reset().Get(),
		Clk125Reset:       crg.Clk125.Reset().Get(),
		LinkState:         m.design.Transceiver().State().String(),
	})
}

func (m *Monitor) findComponentOr404(
	w http.ResponseWriter,
	name string,
) sim.Component {
	var component sim.Component
	sim.Walk(m.design, func(c sim.Component) {
		if c.Name() == name {
			component = c
		}
	})

	if component == nil {
		w.WriteHeader(http.StatusNotFound)
		_, err := w.Write([]byte("Component not found"))
		dieOnErr(err)
	}

	return component
}

type resourceRsp struct {
	CPUPercent float64 `json:"cpu_percent"`
	MemorySize uint64  `json:"memory_size"`
}

func (m *Monitor) listResources(w http.ResponseWriter, _ *http.Request) {
	pid := os.Getpid()
	proc, err := process.NewProcess(int32(pid))
	dieOnErr(err)

	cpuPercent, err := proc.CPUPercent()
	dieOnErr(err)

	memorySize, err := proc.MemoryInfo()
	dieOnErr(err)

	writeJSON(w, resourceRsp{
		CPUPercent: cpuPercent,
		MemorySize: memorySize.RSS,
	})
}

func writeJSON(w http.ResponseWriter, v any) {
	bytes, err := json.Marshal(v)
	dieOnErr(err)

	w.Header().Set("Content-Type", "application/json")
	_, err = w.Write(bytes)
	dieOnErr(err)
}

func dieOnErr(err error) {
	if err != nil {
		log.Panic(err)
	}
}
