package resultdb

import (
	"database/sql"
	"encoding/binary"
	"math"
	"path/filepath"
	"testing"

	"github.com/sverdin/gcplate/internal/gcdata"
	"github.com/sverdin/gcplate/internal/peaks"
	"github.com/sverdin/gcplate/internal/plate"
)

func testSequence() *gcdata.Sequence {
	set := peaks.NewSet()
	set.Insert(&peaks.Peak{RT: 1.5, Height: 500, Area: 1000, Flag: peaks.StandardFlag})
	set.Insert(&peaks.Peak{
		RT: 2.5, Height: 420, Area: 825, Analyte: "biphenyl",
		Spectrum: []peaks.SpectrumLine{
			{Mz: 91, Intens: 200, RelIntens: 40},
			{Mz: 120, Intens: 500, RelIntens: 100},
		},
	})
	seq := gcdata.NewSequence(gcdata.ModalityMS)
	seq.Add(gcdata.NewInjection("s1", "A1", set))
	return seq
}

func TestWriteSequence(t *testing.T) {
	path := filepath.Join(t.TempDir(), "results.db")
	w, err := NewWriter(path)
	if err != nil {
		t.Fatalf("NewWriter: %v", err)
	}
	if err := w.WriteSequence(testSequence()); err != nil {
		t.Fatalf("WriteSequence: %v", err)
	}
	if err := w.Finalize(); err != nil {
		t.Fatalf("Finalize: %v", err)
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer db.Close()

	var name, pos, modality string
	err = db.QueryRow(`SELECT SampleName, PlatePosition, Modality FROM InjectionTable`).
		Scan(&name, &pos, &modality)
	if err != nil {
		t.Fatalf("querying injection: %v", err)
	}
	if name != "s1" || pos != "A1" || modality != "MS" {
		t.Errorf("unexpected injection row: %s %s %s", name, pos, modality)
	}

	var count int
	if err := db.QueryRow(`SELECT COUNT(*) FROM PeakTable`).Scan(&count); err != nil {
		t.Fatalf("counting peaks: %v", err)
	}
	if count != 2 {
		t.Errorf("expected 2 peaks, got %d", count)
	}

	var blob []byte
	err = db.QueryRow(`SELECT blobMass FROM PeakTable WHERE Analyte = 'biphenyl'`).Scan(&blob)
	if err != nil {
		t.Fatalf("querying spectrum blob: %v", err)
	}
	if len(blob) != 16 {
		t.Fatalf("expected 2 masses in blob, got %d bytes", len(blob))
	}
	mz0 := math.Float64frombits(binary.LittleEndian.Uint64(blob))
	mz1 := math.Float64frombits(binary.LittleEndian.Uint64(blob[8:]))
	if mz0 != 91 || mz1 != 120 {
		t.Errorf("unexpected masses %f, %f", mz0, mz1)
	}
}

func TestWriteGrid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "results.db")
	w, err := NewWriter(path)
	if err != nil {
		t.Fatalf("NewWriter: %v", err)
	}

	g, err := plate.NewGrid(8, 12)
	if err != nil {
		t.Fatalf("NewGrid: %v", err)
	}
	if err := g.Set("A1", plate.WellResult{Quantity: 82.5, RTMS: 2.5, RTFID: 2.5, Analyte: "biphenyl"}); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if err := g.Set("A2", plate.MissingResult()); err != nil {
		t.Fatalf("Set: %v", err)
	}

	if err := w.WriteGrid("yield", g); err != nil {
		t.Fatalf("WriteGrid: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer db.Close()

	var quantity sql.NullFloat64
	if err := db.QueryRow(`SELECT Quantity FROM WellTable WHERE Well = 'A1'`).Scan(&quantity); err != nil {
		t.Fatalf("querying A1: %v", err)
	}
	if !quantity.Valid || quantity.Float64 != 82.5 {
		t.Errorf("unexpected A1 quantity: %+v", quantity)
	}

	if err := db.QueryRow(`SELECT Quantity FROM WellTable WHERE Well = 'A2'`).Scan(&quantity); err != nil {
		t.Fatalf("querying A2: %v", err)
	}
	if quantity.Valid {
		t.Errorf("expected NULL quantity for the missing well, got %f", quantity.Float64)
	}

	var count int
	if err := db.QueryRow(`SELECT COUNT(*) FROM WellTable`).Scan(&count); err != nil {
		t.Fatalf("counting wells: %v", err)
	}
	if count != 2 {
		t.Errorf("expected 2 well rows, got %d", count)
	}
}
