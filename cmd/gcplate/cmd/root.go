// Package cmd provides CLI command implementations
package cmd

import (
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/sverdin/gcplate/internal/peaks"
)

var logger = logrus.New()

var (
	// Persistent flags
	verbose bool
	dbPath  string

	// Peak detection flags
	scanRate        float64
	minHeight       float64
	promFactor      float64
	minWidth        float64
	traceProminence float64
)

var rootCmd = &cobra.Command{
	Use:   "gcplate",
	Short: "gcplate - GC screening plate quantification tool",
	Long: `gcplate detects chromatographic peaks in GC-MS and GC-FID screening
data and quantifies reaction outcomes across microtiter plates.

MS runs are read from mzML files, FID chromatograms from two-column
CSV files. Product yields are quantified against an internal standard
on the FID trace after MS identification, or estimated qualitatively
from MS data alone.`,
	Version: "1.0.0",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if verbose {
			logger.SetLevel(logrus.DebugLevel)
		}
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug diagnostics")
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "Write results to a SQLite database at this path")

	rootCmd.PersistentFlags().Float64Var(&scanRate, "scan-rate", 0, "Acquisition rate in minutes per sample (0 = derive from data)")
	rootCmd.PersistentFlags().Float64Var(&minHeight, "min-height", 0, "Minimum peak height (0 = 50x the smallest positive intensity)")
	rootCmd.PersistentFlags().Float64Var(&promFactor, "prominence-factor", 0, "Prominence threshold as a multiple of the median intensity (0 = 1)")
	rootCmd.PersistentFlags().Float64Var(&minWidth, "min-width", 0, "Minimum peak width in samples")
	rootCmd.PersistentFlags().Float64Var(&traceProminence, "trace-prominence", 0, "Minimum ion trace prominence for spectrum extraction (0 = 220)")

	rootCmd.AddCommand(yieldCmd)
	rootCmd.AddCommand(conversionCmd)
	rootCmd.AddCommand(msonlyCmd)
	rootCmd.AddCommand(peaksCmd)
}

func detectionSettings() peaks.Settings {
	return peaks.Settings{
		ScanRate:         scanRate,
		MinHeight:        minHeight,
		ProminenceFactor: promFactor,
		MinWidth:         minWidth,
		TraceProminence:  traceProminence,
	}
}
