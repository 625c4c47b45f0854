package plate

import (
	"bytes"
	"math"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/sverdin/gcplate/internal/gcdata"
)

func TestParseWell(t *testing.T) {
	cases := []struct {
		key      string
		row, col int
	}{
		{"A1", 0, 0},
		{"a1", 0, 0},
		{"H12", 7, 11},
		{"Z26", 25, 25},
	}
	for _, c := range cases {
		row, col, err := ParseWell(c.key)
		if err != nil {
			t.Errorf("ParseWell(%q): %v", c.key, err)
			continue
		}
		if row != c.row || col != c.col {
			t.Errorf("ParseWell(%q): expected (%d,%d), got (%d,%d)", c.key, c.row, c.col, row, col)
		}
	}
	for _, bad := range []string{"", "1A", "A0", "A", "?4", "Ax"} {
		if _, _, err := ParseWell(bad); err == nil {
			t.Errorf("ParseWell(%q): expected error", bad)
		}
	}
}

func TestFormatWell(t *testing.T) {
	if got := FormatWell(7, 11); got != "H12" {
		t.Errorf("expected H12, got %s", got)
	}
}

func TestLayoutLookup(t *testing.T) {
	l, err := NewLayout(8, 12)
	if err != nil {
		t.Fatalf("NewLayout: %v", err)
	}
	if err := l.SetProduct("B3", gcdata.Analyte{Label: "prod", Mz: 120}); err != nil {
		t.Fatalf("SetProduct: %v", err)
	}
	if err := l.AddSubstrate("B3", gcdata.Analyte{Label: "sub0", Mz: 94}); err != nil {
		t.Fatalf("AddSubstrate: %v", err)
	}
	if err := l.AddSubstrate("B3", gcdata.Analyte{Label: "sub1", Mz: 108}); err != nil {
		t.Fatalf("AddSubstrate: %v", err)
	}

	if an, ok := l.Product("B3"); !ok || an.Label != "prod" {
		t.Errorf("unexpected product: %+v ok=%v", an, ok)
	}
	if an, ok := l.Substrate("B3", 1); !ok || an.Label != "sub1" {
		t.Errorf("unexpected substrate 1: %+v ok=%v", an, ok)
	}
	if _, ok := l.Substrate("B3", 2); ok {
		t.Error("expected no substrate at index 2")
	}
	if _, ok := l.Product("C4"); ok {
		t.Error("expected no product for unassigned well")
	}
	if err := l.SetProduct("J1", gcdata.Analyte{}); err == nil {
		t.Error("expected out-of-bounds error for row J on an 8-row layout")
	}
}

func TestNewLayoutBounds(t *testing.T) {
	if _, err := NewLayout(27, 1); err == nil {
		t.Error("expected error above 26 rows")
	}
	if _, err := NewLayout(0, 5); err == nil {
		t.Error("expected error for zero rows")
	}
}

func TestLoadLayoutCSV(t *testing.T) {
	src := `well,role,label,mz
A1,product,biphenyl,154
A1,substrate,bromobenzene,156
A1,substrate,phenylboronic acid,122
B2,product,styrene,104
`
	l, err := LoadLayoutCSV(strings.NewReader(src), 8, 12)
	if err != nil {
		t.Fatalf("LoadLayoutCSV: %v", err)
	}
	if an, ok := l.Product("A1"); !ok || an.Mz != 154 {
		t.Errorf("unexpected A1 product: %+v ok=%v", an, ok)
	}
	if an, ok := l.Substrate("A1", 1); !ok || an.Label != "phenylboronic acid" {
		t.Errorf("unexpected A1 substrate 1: %+v ok=%v", an, ok)
	}
	if an, ok := l.Product("B2"); !ok || an.Label != "styrene" {
		t.Errorf("unexpected B2 product: %+v ok=%v", an, ok)
	}
}

func TestLoadLayoutCSVBadRole(t *testing.T) {
	if _, err := LoadLayoutCSV(strings.NewReader("A1,catalyst,pd,106\n"), 8, 12); err == nil {
		t.Error("expected error for unknown role")
	}
}

func TestGridMissingWells(t *testing.T) {
	g, err := NewGrid(8, 12)
	if err != nil {
		t.Fatalf("NewGrid: %v", err)
	}
	if err := g.Set("A1", WellResult{Quantity: 82.5, RTMS: 1.2, RTFID: 2.3, Analyte: "p"}); err != nil {
		t.Fatalf("Set: %v", err)
	}

	res, ok := g.At(0, 0)
	if !ok || res.Quantity != 82.5 {
		t.Errorf("unexpected A1 result: %+v ok=%v", res, ok)
	}
	res, ok = g.At(3, 5)
	if ok {
		t.Error("expected D6 to be unset")
	}
	if !math.IsNaN(res.Quantity) || !math.IsNaN(res.RTMS) || !math.IsNaN(res.RTFID) || res.Analyte != "" {
		t.Errorf("unset well must be the missing-value cell, got %+v", res)
	}

	table := g.Table()
	if len(table) != 8 || len(table[0]) != 12 {
		t.Fatalf("unexpected table shape %dx%d", len(table), len(table[0]))
	}
	if table[0][0].Quantity != 82.5 {
		t.Errorf("expected table A1 quantity 82.5, got %f", table[0][0].Quantity)
	}
	if !math.IsNaN(table[7][11].Quantity) {
		t.Errorf("expected NaN in unset cell, got %f", table[7][11].Quantity)
	}
}

func TestGridSetBounds(t *testing.T) {
	g, _ := NewGrid(8, 12)
	if err := g.Set("H13", WellResult{}); err == nil {
		t.Error("expected error for column 13 on a 12-column grid")
	}
}

func TestWriteReport(t *testing.T) {
	g, _ := NewGrid(8, 12)
	if err := g.Set("B2", WellResult{Quantity: 17.5, RTMS: 1.234, RTFID: 2.345, Analyte: "prod"}); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if err := g.Set("A10", MissingResult()); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if err := g.Set("A2", WellResult{Class: "good", Quantity: math.NaN(), RTMS: 3.1, RTFID: math.NaN(), Analyte: "p2"}); err != nil {
		t.Fatalf("Set: %v", err)
	}

	var buf bytes.Buffer
	if err := g.WriteReport(&buf, HeaderConversion); err != nil {
		t.Fatalf("WriteReport: %v", err)
	}
	want := strings.Join([]string{
		",Conversion [%],RT-MS [min],RT-FID [min],Analyte",
		"A2,good,3.1,,p2",
		"A10,,,,",
		"B2,17.5,1.234,2.345,prod",
		"",
	}, "\n")
	if diff := cmp.Diff(want, buf.String()); diff != "" {
		t.Errorf("report mismatch (-want +got):\n%s", diff)
	}
}
