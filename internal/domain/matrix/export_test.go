package matrix

import (
	"encoding/csv"
	"strings"
	"testing"
)

func TestFlattenShape(t *testing.T) {
	m := Build(demoDataset(), DefaultBuildOptions())
	sd := Flatten(m, Summarize(m, DefaultThresholds()))

	// 4 fixed columns + 3 per vendor.
	if len(sd.Headers) != 4+3*2 {
		t.Fatalf("headers len = %d, want 10", len(sd.Headers))
	}
	if sd.Headers[4] != "Acme Corp Score" {
		t.Fatalf("headers[4] = %q", sd.Headers[4])
	}
	if len(sd.Rows) != 3 {
		t.Fatalf("rows len = %d, want one per requirement", len(sd.Rows))
	}
	for _, row := range sd.Rows {
		if len(row) != len(sd.Headers) {
			t.Fatalf("row width %d != header width %d", len(row), len(sd.Headers))
		}
	}
	if len(sd.SummaryRows) != 3 {
		t.Fatalf("summary rows len = %d, want header + 2 vendors", len(sd.SummaryRows))
	}
}

func TestFlattenCellValues(t *testing.T) {
	m := Build(demoDataset(), DefaultBuildOptions())
	sd := Flatten(m, Summarize(m, DefaultThresholds()))

	reqA := sd.Rows[0]
	if reqA[1] != "REQ-A" {
		t.Fatalf("rows[0] code = %q", reqA[1])
	}
	if reqA[4] != "4.00" || reqA[5] != "green" || reqA[6] != "1" {
		t.Fatalf("acme triple = %q %q %q", reqA[4], reqA[5], reqA[6])
	}
	// Unscored cells serialize as empty score with RAG none.
	if reqA[7] != "" || reqA[8] != "none" || reqA[9] != "0" {
		t.Fatalf("zeta triple = %q %q %q", reqA[7], reqA[8], reqA[9])
	}
}

func TestCSVRoundTrip(t *testing.T) {
	tricky := `Acme, "Inc"`
	sd := SheetData{
		Headers: []string{"Vendor", "Note"},
		Rows:    [][]string{{tricky, "line1\nline2"}},
	}
	text, err := ToCSV(sd)
	if err != nil {
		t.Fatalf("ToCSV() error = %v", err)
	}
	if !strings.Contains(text, `"Acme, ""Inc"""`) {
		t.Fatalf("quoting missing in %q", text)
	}

	records, err := csv.NewReader(strings.NewReader(text)).ReadAll()
	if err != nil {
		t.Fatalf("re-parse error = %v", err)
	}
	if records[1][0] != tricky {
		t.Fatalf("round trip = %q, want %q", records[1][0], tricky)
	}
	if records[1][1] != "line1\nline2" {
		t.Fatalf("newline round trip = %q", records[1][1])
	}
}
