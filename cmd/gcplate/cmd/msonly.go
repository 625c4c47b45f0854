package cmd

import (
	"github.com/spf13/cobra"

	"github.com/sverdin/gcplate/internal/analysis"
)

var (
	msonlyMode  string
	msonlyBasis string
	relativeTo  string
	layoutRows  int
	layoutCols  int
)

func init() {
	msonlyCmd.Flags().StringVar(&msDir, "ms", "", "Directory with mzML runs of the MS sequence (required)")
	msonlyCmd.Flags().StringVar(&layoutPath, "layout", "", "Plate layout CSV: well,role,label,mz (required)")
	msonlyCmd.Flags().IntVar(&layoutRows, "rows", 8, "Plate rows")
	msonlyCmd.Flags().IntVar(&layoutCols, "cols", 12, "Plate columns")
	msonlyCmd.Flags().StringVar(&msonlyMode, "mode", "yield", "Estimated property: yield or conversion")
	msonlyCmd.Flags().StringVar(&msonlyBasis, "basis", "area", "Peak attribute to compare: area or height")
	msonlyCmd.Flags().StringVar(&relativeTo, "relative-to", "standard", "Ratio reference: standard or all")
	msonlyCmd.Flags().Float64Var(&standardRT, "standard-rt", 0, "Retention time of the internal standard on the TIC (required with --relative-to standard)")
	msonlyCmd.Flags().IntVar(&substrateIndex, "substrate-index", 0, "Which of the well's substrates to track in conversion mode")
	msonlyCmd.Flags().StringVarP(&outPath, "out", "o", "", "Report CSV path (default: stdout)")
	msonlyCmd.MarkFlagRequired("ms")
	msonlyCmd.MarkFlagRequired("layout")
}

var msonlyCmd = &cobra.Command{
	Use:   "msonly",
	Short: "Estimate reaction outcomes from MS data alone",
	Long: `Estimate reaction outcomes qualitatively from the MS sequence alone,
for reaction discovery or to reduce FID measurements. The matched
peak's area or height is compared against the internal standard or
against all peaks and classified from "trace" to "excellent".

Example:
  gcplate msonly --ms runs/ms --layout plate.csv --standard-rt 1.52 --basis height -o estimate.csv`,
	RunE: runMSOnly,
}

func runMSOnly(cmd *cobra.Command, args []string) error {
	// Validate mode flags before touching any data.
	mode, err := analysis.ParseMode(msonlyMode)
	if err != nil {
		return err
	}
	basis, err := analysis.ParseBasis(msonlyBasis)
	if err != nil {
		return err
	}
	reference, err := analysis.ParseReference(relativeTo)
	if err != nil {
		return err
	}

	layout, err := loadLayout(layoutPath, layoutRows, layoutCols)
	if err != nil {
		return err
	}
	ms, err := loadMSSequence(msDir, nil, standardRT)
	if err != nil {
		return err
	}

	opts := analysis.Options{
		Mode:           mode,
		SubstrateIndex: substrateIndex,
		Basis:          basis,
		Reference:      reference,
		Logger:         logger,
	}
	grid, err := analysis.EstimatePlate(ms, layout, opts)
	if err != nil {
		return err
	}

	if err := writeReport(grid, mode.EstimateHeader()); err != nil {
		return err
	}
	return persist(grid, "msonly-"+mode.String(), ms)
}
