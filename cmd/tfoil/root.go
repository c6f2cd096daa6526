package main

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/tebeka/atexit"
)

var (
	sysClkFreqMHz float64
	dataWidth     int
	noSDRAM       bool
)

var rootCmd = &cobra.Command{
	Use:   "tfoil",
	Short: "Elaborate and simulate the tfoil board design",
	Long: `tfoil elaborates the clock/reset topology, the packet path, and
the peripherals of the tfoil board, and can simulate the bring-up sequence
from external reset release to link up.`,
	SilenceUsage: true,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		atexit.Exit(1)
	}

	atexit.Exit(0)
}

func init() {
	// A .env file can override the defaults; explicit flags win over both.
	_ = godotenv.Load()

	rootCmd.PersistentFlags().Float64Var(&sysClkFreqMHz, "sys-clk-freq",
		envFloat("TFOIL_SYS_CLK_FREQ", 200),
		"target system clock frequency in MHz")
	rootCmd.PersistentFlags().IntVar(&dataWidth, "data-width",
		envInt("TFOIL_DATA_WIDTH", 256),
		"packet path data width in bits")
	rootCmd.PersistentFlags().BoolVar(&noSDRAM, "no-sdram", false,
		"elaborate without the DDR4 controller")
}

func envFloat(key string, def float64) float64 {
	s := os.Getenv(key)
	if s == "" {
		return def
	}

	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return def
	}

	return v
}

func envInt(key string, def int) int {
	s := os.Getenv(key)
	if s == "" {
		return def
	}

	v, err := strconv.Atoi(s)
	if err != nil {
		return def
	}

	return v
}
