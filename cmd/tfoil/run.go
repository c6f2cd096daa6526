package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sarchlab/tfoil/monitoring"
	"github.com/sarchlab/tfoil/recording"
	"github.com/sarchlab/tfoil/sim"
)

var (
	probes      int
	recordPath  string
	withMonitor bool
	monitorPort int
	openBrowser bool
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Simulate the bring-up sequence of the design",
	Long: `run elaborates the design, releases the external reset, waits for
the PLL to lock and the link to train up, and then injects control probes
through the control-plane bridge.`,
	RunE: func(_ *cobra.Command, _ []string) error {
		engine := sim.NewSerialEngine()
		design := buildDesign(engine)

		if recordPath != "" {
			rec := recording.New(recordPath)
			engine.AcceptHook(recording.NewEventLogger(rec))

			logger := recording.NewTransitionLogger(rec, engine)

			crg := design.CRG()
			logger.Watch("PLL.Locked", crg.Locked())
			logger.Watch("Serdes.InitClkLocked", design.TransceiverLocked())
			logger.Watch("Sys.Reset", crg.Sys.Reset())
			logger.Watch("IDelay.Reset", crg.IDelay.Reset())
			logger.Watch("Clk125.Reset", crg.Clk125.Reset())
		}

		if withMonitor {
			monitor := monitoring.NewMonitor()
			monitor.RegisterEngine(engine)
			monitor.RegisterSoC(design)
			monitor.WithPortNumber(monitorPort)
			monitor.StartServer()

			if openBrowser {
				monitor.OpenBrowser()
			}
		}

		if err := engine.Run(); err != nil {
			return err
		}

		design.PacketGen().Emit(probes)
		if err := engine.Run(); err != nil {
			return err
		}

		fmt.Printf("locked:         %t\n", design.CRG().Locked().Get())
		fmt.Printf("link state:     %s\n", design.Transceiver().State())
		fmt.Printf("control probes: %d received\n",
			len(design.PacketCore().ReceivedCtrl()))
		fmt.Printf("simulated time: %.9fs\n", float64(engine.CurrentTime()))

		return nil
	},
}

func init() {
	runCmd.Flags().IntVar(&probes, "probes", 4,
		"number of control probes to inject after link up")
	runCmd.Flags().StringVar(&recordPath, "record", "",
		"record signal transitions into a SQLite database at this path")
	runCmd.Flags().BoolVar(&withMonitor, "monitor", false,
		"serve the design state over HTTP while running")
	runCmd.Flags().IntVar(&monitorPort, "monitor-port",
		envInt("TFOIL_MONITOR_PORT", 0),
		"port for the monitoring server, 0 picks a free one")
	runCmd.Flags().BoolVar(&openBrowser, "open-browser", false,
		"open the monitoring page in the local browser")

	rootCmd.AddCommand(runCmd)
}
