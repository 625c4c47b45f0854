package gcdata

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/sverdin/gcplate/internal/peaks"
)

func TestReadFIDSignal(t *testing.T) {
	src := `time,intensity
0.00,3.1
0.01,4.2
0.02,3.9
`
	sig, err := ReadFIDSignal(strings.NewReader(src))
	if err != nil {
		t.Fatalf("ReadFIDSignal: %v", err)
	}
	want := peaks.Signal{
		Times:  []float64{0, 0.01, 0.02},
		Intens: []float64{3.1, 4.2, 3.9},
	}
	if diff := cmp.Diff(want, sig); diff != "" {
		t.Errorf("signal mismatch (-want +got):\n%s", diff)
	}
}

func TestReadFIDSignalNoHeader(t *testing.T) {
	sig, err := ReadFIDSignal(strings.NewReader("0.00,3.1\n0.01,4.2\n"))
	if err != nil {
		t.Fatalf("ReadFIDSignal: %v", err)
	}
	if sig.Len() != 2 {
		t.Errorf("expected 2 samples, got %d", sig.Len())
	}
}

func TestReadFIDSignalEmpty(t *testing.T) {
	if _, err := ReadFIDSignal(strings.NewReader("time,intensity\n")); err == nil {
		t.Error("expected error for empty signal")
	}
}

func TestReadFIDSignalBadValue(t *testing.T) {
	if _, err := ReadFIDSignal(strings.NewReader("0.00,3.1\n0.01,low\n")); err == nil {
		t.Error("expected error for non-numeric intensity")
	}
}

func TestReadLadderCSV(t *testing.T) {
	src := `rt,ri
1.0,800
5.0,1200
`
	anchors, err := ReadLadderCSV(strings.NewReader(src))
	if err != nil {
		t.Fatalf("ReadLadderCSV: %v", err)
	}
	want := []RIAnchor{{RT: 1.0, RI: 800}, {RT: 5.0, RI: 1200}}
	if diff := cmp.Diff(want, anchors); diff != "" {
		t.Errorf("ladder mismatch (-want +got):\n%s", diff)
	}
}
