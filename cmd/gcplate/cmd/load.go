package cmd

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/pkg/errors"

	"github.com/sverdin/gcplate/internal/gcdata"
	"github.com/sverdin/gcplate/internal/mzdata"
	"github.com/sverdin/gcplate/internal/peaks"
	"github.com/sverdin/gcplate/internal/plate"
)

// platePosFromName extracts the plate position from a sample name like
// "screen_run1_B3". Names without a trailing well token yield an empty
// position, making downstream lookups fall back to the sample name.
func platePosFromName(name string) string {
	tokens := strings.Split(name, "_")
	last := tokens[len(tokens)-1]
	if row, col, err := plate.ParseWell(last); err == nil {
		return plate.FormatWell(row, col)
	}
	return ""
}

func sampleName(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

func sequenceFiles(dir, ext string) ([]string, error) {
	files, err := filepath.Glob(filepath.Join(dir, "*"+ext))
	if err != nil {
		return nil, errors.Wrapf(err, "listing %s files in %s", ext, dir)
	}
	if len(files) == 0 {
		return nil, errors.Errorf("no %s files in %s", ext, dir)
	}
	sort.Strings(files)
	return files, nil
}

// loadMSSequence reads every mzML file in dir, detects peaks on the TIC
// with mass spectra attached from the ion traces, and assembles the
// injections into an MS sequence.
func loadMSSequence(dir string, ladder []gcdata.RIAnchor, standardRT float64) (*gcdata.Sequence, error) {
	files, err := sequenceFiles(dir, ".mzML")
	if err != nil {
		return nil, err
	}
	seq := gcdata.NewSequence(gcdata.ModalityMS)
	for _, path := range files {
		inj, err := loadMSInjection(path, ladder, standardRT)
		if err != nil {
			return nil, err
		}
		seq.Add(inj)
	}
	return seq, nil
}

func loadMSInjection(path string, ladder []gcdata.RIAnchor, standardRT float64) (*gcdata.Injection, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "opening run")
	}
	defer f.Close()

	run, err := mzdata.Read(f)
	if err != nil {
		return nil, errors.Wrapf(err, "reading %s", path)
	}
	sig, err := run.TIC()
	if err != nil {
		return nil, errors.Wrapf(err, "assembling TIC of %s", path)
	}
	traces, err := run.IonTraces(0)
	if err != nil {
		return nil, errors.Wrapf(err, "assembling ion traces of %s", path)
	}

	settings := detectionSettings()
	if settings.ScanRate == 0 {
		if settings.ScanRate, err = run.ScanRate(); err != nil {
			return nil, errors.Wrapf(err, "deriving scan rate of %s", path)
		}
	}

	set := peaks.Detect(sig, traces, settings)
	name := sampleName(path)
	logger.WithFields(map[string]interface{}{
		"sample": name,
		"peaks":  set.Len(),
	}).Debug("detected MS peaks")

	inj := gcdata.NewInjection(name, platePosFromName(name), set)
	if len(ladder) > 0 {
		if err := inj.SetLadder(ladder); err != nil {
			return nil, errors.Wrapf(err, "setting ladder of %s", name)
		}
	}
	if standardRT > 0 {
		if _, ok := inj.FlagPeak(standardRT, peaks.StandardFlag, nil); !ok {
			logger.WithField("sample", name).Warn("no peak at the standard retention time")
		}
	}
	return inj, nil
}

// loadFIDSequence reads every two-column CSV chromatogram in dir, detects
// peaks and assembles the injections into a FID sequence.
func loadFIDSequence(dir string, ladder []gcdata.RIAnchor, standardRT float64) (*gcdata.Sequence, error) {
	files, err := sequenceFiles(dir, ".csv")
	if err != nil {
		return nil, err
	}
	seq := gcdata.NewSequence(gcdata.ModalityFID)
	for _, path := range files {
		inj, err := loadFIDInjection(path, ladder, standardRT)
		if err != nil {
			return nil, err
		}
		seq.Add(inj)
	}
	return seq, nil
}

func loadFIDInjection(path string, ladder []gcdata.RIAnchor, standardRT float64) (*gcdata.Injection, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "opening chromatogram")
	}
	defer f.Close()

	sig, err := gcdata.ReadFIDSignal(f)
	if err != nil {
		return nil, errors.Wrapf(err, "reading %s", path)
	}

	settings := detectionSettings()
	if settings.ScanRate == 0 && sig.Len() > 1 {
		settings.ScanRate = sig.Times[1] - sig.Times[0]
	}

	set := peaks.Detect(sig, nil, settings)
	name := sampleName(path)
	logger.WithFields(map[string]interface{}{
		"sample": name,
		"peaks":  set.Len(),
	}).Debug("detected FID peaks")

	inj := gcdata.NewInjection(name, platePosFromName(name), set)
	if len(ladder) > 0 {
		if err := inj.SetLadder(ladder); err != nil {
			return nil, errors.Wrapf(err, "setting ladder of %s", name)
		}
	}
	if standardRT > 0 {
		if _, ok := inj.FlagPeak(standardRT, peaks.StandardFlag, nil); !ok {
			logger.WithField("sample", name).Warn("no peak at the standard retention time")
		}
	}
	return inj, nil
}

func loadLadder(path string) ([]gcdata.RIAnchor, error) {
	if path == "" {
		return nil, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "opening ladder")
	}
	defer f.Close()
	return gcdata.ReadLadderCSV(f)
}

func loadLayout(path string, rows, cols int) (*plate.Layout, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "opening layout")
	}
	defer f.Close()
	return plate.LoadLayoutCSV(f, rows, cols)
}
