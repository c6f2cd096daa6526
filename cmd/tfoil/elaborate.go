package main

import (
	"encoding/json"
	"os"

	"github.com/spf13/cobra"

	"github.com/sarchlab/tfoil/sim"
	"github.com/sarchlab/tfoil/soc"
)

var elaborateCmd = &cobra.Command{
	Use:   "elaborate",
	Short: "Elaborate the design and print the structural report",
	RunE: func(_ *cobra.Command, _ []string) error {
		design := buildDesign(sim.NewSerialEngine())

		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")

		return enc.Encode(design.ElaborationReport())
	},
}

func buildDesign(engine sim.Engine) *soc.SoC {
	b := soc.MakeBuilder().
		WithEngine(engine).
		WithSysClkFreq(sim.Freq(sysClkFreqMHz) * sim.MHz).
		WithDataWidth(dataWidth)

	if noSDRAM {
		b = b.WithoutSDRAM()
	}

	return b.Build("Tfoil")
}

func init() {
	rootCmd.AddCommand(elaborateCmd)
}
