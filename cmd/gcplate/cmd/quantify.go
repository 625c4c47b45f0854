package cmd

import (
	"io"
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/sverdin/gcplate/internal/analysis"
	"github.com/sverdin/gcplate/internal/gcdata"
	"github.com/sverdin/gcplate/internal/plate"
	"github.com/sverdin/gcplate/internal/resultdb"
)

const (
	plateRows = 8
	plateCols = 12
)

var (
	msDir          string
	fidDir         string
	layoutPath     string
	ladderPath     string
	standardRT     float64
	substrateIndex int
	outPath        string
)

func init() {
	for _, c := range []*cobra.Command{yieldCmd, conversionCmd} {
		c.Flags().StringVar(&msDir, "ms", "", "Directory with mzML runs of the MS sequence (required)")
		c.Flags().StringVar(&fidDir, "fid", "", "Directory with CSV chromatograms of the FID sequence (required)")
		c.Flags().StringVar(&layoutPath, "layout", "", "Plate layout CSV: well,role,label,mz (required)")
		c.Flags().StringVar(&ladderPath, "ladder", "", "Alkane ladder CSV: rt,ri (required)")
		c.Flags().Float64Var(&standardRT, "standard-rt", 0, "Retention time of the internal standard on the FID trace (required)")
		c.Flags().StringVarP(&outPath, "out", "o", "", "Report CSV path (default: stdout)")
		c.MarkFlagRequired("ms")
		c.MarkFlagRequired("fid")
		c.MarkFlagRequired("layout")
		c.MarkFlagRequired("ladder")
		c.MarkFlagRequired("standard-rt")
	}
	conversionCmd.Flags().IntVar(&substrateIndex, "substrate-index", 0, "Which of the well's substrates to track")
}

var yieldCmd = &cobra.Command{
	Use:   "yield",
	Short: "Quantify product yields across a plate",
	Long: `Quantify product yields across an 8x12 plate. Products are identified
on the MS sequence by their m/z, confirmed on the FID sequence via
retention index, and quantified against the internal standard.

Example:
  gcplate yield --ms runs/ms --fid runs/fid --layout plate.csv --ladder alkanes.csv --standard-rt 1.52 -o yields.csv`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runQuantify(analysis.ModeYield)
	},
}

var conversionCmd = &cobra.Command{
	Use:   "conversion",
	Short: "Quantify substrate conversion across a plate",
	Long: `Quantify substrate conversion across an 8x12 plate. The remaining
substrate is identified and quantified like a product; conversion is
its complement against 100.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runQuantify(analysis.ModeConversion)
	},
}

func runQuantify(mode analysis.Mode) error {
	layout, err := loadLayout(layoutPath, plateRows, plateCols)
	if err != nil {
		return err
	}
	ladder, err := loadLadder(ladderPath)
	if err != nil {
		return err
	}
	ms, err := loadMSSequence(msDir, ladder, 0)
	if err != nil {
		return err
	}
	fid, err := loadFIDSequence(fidDir, ladder, standardRT)
	if err != nil {
		return err
	}

	opts := analysis.Options{
		Mode:           mode,
		SubstrateIndex: substrateIndex,
		Logger:         logger,
	}
	grid, err := analysis.QuantifyPlate(ms, fid, layout, opts)
	if err != nil {
		return err
	}

	if err := writeReport(grid, mode.QuantityHeader()); err != nil {
		return err
	}
	return persist(grid, mode.String(), ms, fid)
}

func writeReport(grid *plate.Grid, header string) error {
	var w io.Writer = os.Stdout
	if outPath != "" {
		f, err := os.Create(outPath)
		if err != nil {
			return errors.Wrap(err, "creating report")
		}
		defer f.Close()
		w = f
	}
	return grid.WriteReport(w, header)
}

// persist writes the sequences and the grid to the results database when
// --db is given.
func persist(grid *plate.Grid, mode string, seqs ...*gcdata.Sequence) error {
	if dbPath == "" {
		return nil
	}
	w, err := resultdb.NewWriter(dbPath)
	if err != nil {
		return err
	}
	for _, seq := range seqs {
		if err := w.WriteSequence(seq); err != nil {
			w.Close()
			return err
		}
	}
	if err := w.WriteGrid(mode, grid); err != nil {
		w.Close()
		return err
	}
	return w.Finalize()
}
