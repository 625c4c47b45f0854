package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/sverdin/gcplate/internal/gcdata"
)

var peaksCmd = &cobra.Command{
	Use:   "peaks [file]",
	Short: "Detect and list the peaks of a single run",
	Long: `Detect chromatographic peaks in a single run and list their retention
times, heights, borders and areas. mzML files are treated as MS runs
(peaks get mass spectra attached), CSV files as FID chromatograms.`,
	Args: cobra.ExactArgs(1),
	RunE: runPeaks,
}

func runPeaks(cmd *cobra.Command, args []string) error {
	path := args[0]
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return errors.Errorf("input file does not exist: %s", path)
	}

	var (
		inj *gcdata.Injection
		err error
	)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".mzml":
		inj, err = loadMSInjection(path, nil, 0)
	case ".csv":
		inj, err = loadFIDInjection(path, nil, 0)
	default:
		return errors.Errorf("cannot detect run type from extension %q, expected .mzML or .csv", filepath.Ext(path))
	}
	if err != nil {
		return err
	}

	fmt.Printf("%-10s %-12s %-10s %-10s %-10s %-12s %s\n",
		"RT [min]", "Height", "Left", "Right", "Width", "Area", "Ions")
	for _, p := range inj.Peaks.All() {
		ions := make([]string, 0, len(p.Spectrum))
		for _, line := range p.Spectrum {
			ions = append(ions, fmt.Sprintf("%.0f", line.Mz))
		}
		fmt.Printf("%-10.3f %-12.1f %-10.3f %-10.3f %-10.3f %-12.1f %s\n",
			p.RT, p.Height, p.LeftBorder, p.RightBorder, p.Width, p.Area, strings.Join(ions, " "))
	}
	return nil
}
