package matrix

// DefaultGapDisplayCap bounds how many gap entries a vendor coverage block
// lists for display. Counts are never capped.
const DefaultGapDisplayCap = 10

// CategoryCoverage rolls vendor coverage up by category.
type CategoryCoverage struct {
	CategoryID     string
	CategoryName   string
	Requirements   int
	Scored         int
	EvidenceBacked int
}

// VendorCoverage describes one vendor's scoring and evidence completeness.
type VendorCoverage struct {
	VendorID    string
	VendorName  string
	ScoredCount int
	// MissingCount is the full number of requirements without a resolved
	// score; MissingRequirements is the display list, capped.
	MissingCount        int
	MissingRequirements []string // requirement codes
	EvidenceBacked      int
	ByCategory          []CategoryCoverage
}

// CoverageReport is the independent re-walk of a built matrix. The identity
// ScoredCells + UnscoredCells == RequirementCount * VendorCount always
// holds, including for empty matrices.
type CoverageReport struct {
	RequirementCount int
	VendorCount      int
	ScoredCells      int
	UnscoredCells    int
	GapDisplayCap    int
	Vendors          []VendorCoverage
}

// Analyze computes coverage per vendor and category. An empty requirement
// list yields an all-zero report, never an error.
func Analyze(m Matrix, gapDisplayCap int) CoverageReport {
	if gapDisplayCap <= 0 {
		gapDisplayCap = DefaultGapDisplayCap
	}

	report := CoverageReport{
		RequirementCount: m.RequirementCount,
		VendorCount:      len(m.Vendors),
		GapDisplayCap:    gapDisplayCap,
		Vendors:          make([]VendorCoverage, 0, len(m.Vendors)),
	}

	for vi, vendor := range m.Vendors {
		vc := VendorCoverage{
			VendorID:   vendor.ID,
			VendorName: vendor.Name,
		}

		categoryIndex := make(map[string]int)
		for _, row := range m.Rows {
			if row.Kind == RowCategory {
				categoryIndex[row.CategoryID] = len(vc.ByCategory)
				vc.ByCategory = append(vc.ByCategory, CategoryCoverage{
					CategoryID:   row.CategoryID,
					CategoryName: row.CategoryName,
				})
				continue
			}

			cell := row.Cells[vi]
			ci := categoryIndex[row.CategoryID]
			vc.ByCategory[ci].Requirements++

			if cell.Kind != CellNoScore {
				vc.ScoredCount++
				vc.ByCategory[ci].Scored++
				report.ScoredCells++
			} else {
				vc.MissingCount++
				report.UnscoredCells++
				if len(vc.MissingRequirements) < gapDisplayCap {
					vc.MissingRequirements = append(vc.MissingRequirements, row.Requirement.Code)
				}
			}

			if cell.EvidenceCount > 0 {
				vc.EvidenceBacked++
				vc.ByCategory[ci].EvidenceBacked++
			}
		}

		report.Vendors = append(report.Vendors, vc)
	}

	return report
}
