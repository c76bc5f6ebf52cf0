package matrix

import (
	"encoding/csv"
	"strconv"
	"strings"
)

// SheetData is the flattened tabular form of a matrix and its summary, for
// CSV serialization or direct spreadsheet writers.
type SheetData struct {
	Headers     []string
	Rows        [][]string
	SummaryRows [][]string
}

// Flatten produces one row per requirement with a (score, RAG, evidence)
// column triple per vendor, plus a vendor summary sheet.
func Flatten(m Matrix, s Summary) SheetData {
	sd := SheetData{
		Headers: []string{"Category", "Code", "Requirement", "Priority"},
	}
	for _, vendor := range m.Vendors {
		sd.Headers = append(sd.Headers,
			vendor.Name+" Score",
			vendor.Name+" RAG",
			vendor.Name+" Evidence",
		)
	}

	for _, row := range m.Rows {
		if row.Kind != RowRequirement {
			continue
		}
		out := []string{
			row.CategoryName,
			row.Requirement.Code,
			row.Requirement.Title,
			strconv.Itoa(row.Requirement.Priority),
		}
		for _, cell := range row.Cells {
			out = append(out,
				formatScore(cell.Value),
				string(cell.RAG),
				strconv.Itoa(cell.EvidenceCount),
			)
		}
		sd.Rows = append(sd.Rows, out)
	}

	sd.SummaryRows = append(sd.SummaryRows, []string{"Vendor", "Average", "Weighted", "RAG", "Rank", "Progress %"})
	for _, vs := range s.Vendors {
		sd.SummaryRows = append(sd.SummaryRows, []string{
			vs.VendorName,
			strconv.FormatFloat(vs.AverageScore, 'f', 2, 64),
			strconv.FormatFloat(vs.WeightedScore, 'f', 2, 64),
			string(vs.Overall),
			strconv.Itoa(vs.Rank),
			strconv.FormatFloat(vs.Progress, 'f', 1, 64),
		})
	}

	return sd
}

// ToCSV serializes sheet data as RFC-4180 text: matrix table, a blank
// line, then the summary table. encoding/csv handles quoting of values
// containing delimiters, quotes or newlines.
func ToCSV(sd SheetData) (string, error) {
	var b strings.Builder
	w := csv.NewWriter(&b)

	if err := w.Write(sd.Headers); err != nil {
		return "", err
	}
	for _, row := range sd.Rows {
		if err := w.Write(row); err != nil {
			return "", err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return "", err
	}

	b.WriteString("\n")

	for _, row := range sd.SummaryRows {
		if err := w.Write(row); err != nil {
			return "", err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return "", err
	}

	return b.String(), nil
}

func formatScore(value *float64) string {
	if value == nil {
		return ""
	}
	return strconv.FormatFloat(*value, 'f', 2, 64)
}
