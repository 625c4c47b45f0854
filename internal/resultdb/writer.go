// Package resultdb persists detected peaks and plate results to a SQLite
// database for downstream querying.
package resultdb

import (
	"database/sql"
	"encoding/binary"
	"math"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/pkg/errors"

	"github.com/sverdin/gcplate/internal/gcdata"
	"github.com/sverdin/gcplate/internal/peaks"
	"github.com/sverdin/gcplate/internal/plate"
)

const creationDateFormat = "2006-01-02"

// Writer handles writing sequences and plate grids to a SQLite file.
type Writer struct {
	db            *sql.DB
	outputPath    string
	injectionStmt *sql.Stmt
	peakStmt      *sql.Stmt
	wellStmt      *sql.Stmt
	injectionID   int
	peakID        int
}

// NewWriter opens (or creates) the database at outputPath and prepares
// the schema.
func NewWriter(outputPath string) (*Writer, error) {
	db, err := sql.Open("sqlite3", outputPath)
	if err != nil {
		return nil, errors.Wrap(err, "resultdb: opening database")
	}

	w := &Writer{
		db:          db,
		outputPath:  outputPath,
		injectionID: 1,
		peakID:      1,
	}

	if err := w.createTables(); err != nil {
		db.Close()
		return nil, err
	}
	if err := w.prepareStatements(); err != nil {
		db.Close()
		return nil, err
	}
	return w, nil
}

func (w *Writer) createTables() error {
	schema := `
	CREATE TABLE IF NOT EXISTS InjectionTable (
		InjectionId INTEGER PRIMARY KEY,
		SampleName TEXT,
		PlatePosition TEXT,
		Modality TEXT
	);

	CREATE TABLE IF NOT EXISTS PeakTable (
		PeakId INTEGER PRIMARY KEY,
		InjectionId INTEGER REFERENCES InjectionTable(InjectionId),
		RetentionTime DOUBLE,
		Height DOUBLE,
		Width DOUBLE,
		LeftBorder DOUBLE,
		RightBorder DOUBLE,
		Area DOUBLE,
		Flag TEXT,
		Analyte TEXT,
		blobMass BLOB,
		blobIntensity BLOB
	);

	CREATE TABLE IF NOT EXISTS WellTable (
		Well TEXT,
		Mode TEXT,
		Quantity DOUBLE,
		Class TEXT,
		RetentionTimeMS DOUBLE,
		RetentionTimeFID DOUBLE,
		Analyte TEXT
	);

	CREATE TABLE IF NOT EXISTS HeaderTable (
		version INTEGER NOT NULL DEFAULT 0,
		CreationDate TEXT
	);
	`
	_, err := w.db.Exec(schema)
	return errors.Wrap(err, "resultdb: creating tables")
}

func (w *Writer) prepareStatements() error {
	var err error

	w.injectionStmt, err = w.db.Prepare(`
		INSERT INTO InjectionTable (InjectionId, SampleName, PlatePosition, Modality)
		VALUES (?, ?, ?, ?)
	`)
	if err != nil {
		return errors.Wrap(err, "resultdb: preparing injection statement")
	}

	w.peakStmt, err = w.db.Prepare(`
		INSERT INTO PeakTable (
			PeakId, InjectionId, RetentionTime, Height, Width,
			LeftBorder, RightBorder, Area, Flag, Analyte,
			blobMass, blobIntensity
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return errors.Wrap(err, "resultdb: preparing peak statement")
	}

	w.wellStmt, err = w.db.Prepare(`
		INSERT INTO WellTable (Well, Mode, Quantity, Class, RetentionTimeMS, RetentionTimeFID, Analyte)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`)
	return errors.Wrap(err, "resultdb: preparing well statement")
}

// WriteSequence writes every injection of a sequence together with its
// detected peaks. Mass spectra are stored as parallel little-endian
// float64 blobs.
func (w *Writer) WriteSequence(seq *gcdata.Sequence) error {
	for _, name := range seq.Names() {
		inj, _ := seq.Get(name)
		if _, err := w.injectionStmt.Exec(
			w.injectionID,
			inj.SampleName,
			inj.PlatePos,
			seq.Modality.String(),
		); err != nil {
			return errors.Wrapf(err, "resultdb: inserting injection %s", inj.SampleName)
		}
		for _, p := range inj.Peaks.All() {
			if err := w.writePeak(p); err != nil {
				return errors.Wrapf(err, "resultdb: inserting peaks of %s", inj.SampleName)
			}
		}
		w.injectionID++
	}
	return nil
}

func (w *Writer) writePeak(p *peaks.Peak) error {
	mzBlob := encodeSpectrumFloat64(p.Spectrum, true)
	intBlob := encodeSpectrumFloat64(p.Spectrum, false)

	_, err := w.peakStmt.Exec(
		w.peakID,
		w.injectionID,
		p.RT,
		p.Height,
		p.Width,
		p.LeftBorder,
		p.RightBorder,
		p.Area,
		p.Flag,
		p.Analyte,
		mzBlob,
		intBlob,
	)
	if err != nil {
		return err
	}
	w.peakID++
	return nil
}

// WriteGrid writes every resolved well of a plate grid. NaN values are
// stored as NULL.
func (w *Writer) WriteGrid(mode string, g *plate.Grid) error {
	rows, cols := g.Shape()
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			res, ok := g.At(r, c)
			if !ok {
				continue
			}
			if _, err := w.wellStmt.Exec(
				plate.FormatWell(r, c),
				mode,
				nullable(res.Quantity),
				res.Class,
				nullable(res.RTMS),
				nullable(res.RTFID),
				res.Analyte,
			); err != nil {
				return errors.Wrapf(err, "resultdb: inserting well %s", plate.FormatWell(r, c))
			}
		}
	}
	return nil
}

func nullable(v float64) interface{} {
	if math.IsNaN(v) {
		return nil
	}
	return v
}

// encodeSpectrumFloat64 encodes one spectrum axis as a little-endian
// float64 blob.
func encodeSpectrumFloat64(spectrum []peaks.SpectrumLine, useMz bool) []byte {
	buf := make([]byte, len(spectrum)*8)
	for i, line := range spectrum {
		value := line.Intens
		if useMz {
			value = line.Mz
		}
		binary.LittleEndian.PutUint64(buf[i*8:], math.Float64bits(value))
	}
	return buf
}

// Finalize writes the header table, closes the prepared statements and
// the database.
func (w *Writer) Finalize() error {
	_, err := w.db.Exec(`
		INSERT INTO HeaderTable (version, CreationDate) VALUES (?, ?)
	`, 1, time.Now().Format(creationDateFormat))
	if err != nil {
		return errors.Wrap(err, "resultdb: inserting header")
	}

	if w.injectionStmt != nil {
		w.injectionStmt.Close()
	}
	if w.peakStmt != nil {
		w.peakStmt.Close()
	}
	if w.wellStmt != nil {
		w.wellStmt.Close()
	}
	return errors.Wrap(w.db.Close(), "resultdb: closing database")
}

// Close closes the database connection (alias for Finalize).
func (w *Writer) Close() error {
	return w.Finalize()
}
