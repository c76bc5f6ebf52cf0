package matrix

import "sort"

// VendorSummary is one vendor's aggregate standing across the whole matrix.
type VendorSummary struct {
	VendorID      string
	VendorName    string
	AverageScore  float64
	WeightedScore float64
	Overall       RAG
	Rank          int
	ScoredCount   int
	// Progress is the share of requirements this vendor has a resolved
	// score for, in percent.
	Progress float64
}

// Summary is the derived aggregate view over a built matrix.
type Summary struct {
	Vendors []VendorSummary // matrix vendor order; Rank carries the ranking
	// OverallProgress is scored cells over all cells, in percent. A scored
	// cell is any cell whose kind is not NoScore.
	OverallProgress float64
	ScoredCells     int
	TotalCells      int
}

// Summarize derives per-vendor aggregates, ranks and overall completion
// from a built matrix. All divisions are guarded: empty inputs produce
// zeroes, never errors.
func Summarize(m Matrix, thresholds Thresholds) Summary {
	s := Summary{
		Vendors:    make([]VendorSummary, 0, len(m.Vendors)),
		TotalCells: m.RequirementCount * len(m.Vendors),
	}

	for i, vendor := range m.Vendors {
		totals := m.Totals[i]

		vs := VendorSummary{
			VendorID:    vendor.ID,
			VendorName:  vendor.Name,
			ScoredCount: totals.ScoredCount,
		}
		if totals.ScoredCount > 0 {
			vs.AverageScore = totals.TotalScore / float64(totals.ScoredCount)
		}
		if totals.TotalWeight > 0 {
			vs.WeightedScore = totals.WeightedScore / totals.TotalWeight
		}
		weighted := vs.WeightedScore
		vs.Overall = thresholds.Classify(&weighted)
		if totals.ScoredCount == 0 {
			vs.Overall = RAGNone
		}
		if m.RequirementCount > 0 {
			vs.Progress = float64(totals.ScoredCount) / float64(m.RequirementCount) * 100
		}
		s.Vendors = append(s.Vendors, vs)
	}

	rankVendors(s.Vendors)

	s.ScoredCells = countScoredCells(m)
	if s.TotalCells > 0 {
		s.OverallProgress = float64(s.ScoredCells) / float64(s.TotalCells) * 100
	}

	return s
}

// rankVendors assigns 1-based ranks by weighted score descending, breaking
// ties by vendor name ascending.
func rankVendors(vendors []VendorSummary) {
	order := make([]int, len(vendors))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		va, vb := vendors[order[a]], vendors[order[b]]
		if va.WeightedScore != vb.WeightedScore {
			return va.WeightedScore > vb.WeightedScore
		}
		return va.VendorName < vb.VendorName
	})
	for rank, idx := range order {
		vendors[idx].Rank = rank + 1
	}
}

func countScoredCells(m Matrix) int {
	count := 0
	for _, row := range m.Rows {
		if row.Kind != RowRequirement {
			continue
		}
		for _, cell := range row.Cells {
			if cell.Kind != CellNoScore {
				count++
			}
		}
	}
	return count
}
