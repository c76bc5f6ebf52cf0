package matrix

import "testing"

func TestSummarizeZeroDivisionSafety(t *testing.T) {
	m := Build(demoDataset(), DefaultBuildOptions())
	s := Summarize(m, DefaultThresholds())

	// Zeta has no scores at all.
	zeta := s.Vendors[1]
	if zeta.VendorID != "v-zeta" {
		t.Fatalf("vendors[1] = %s", zeta.VendorID)
	}
	if zeta.AverageScore != 0 || zeta.WeightedScore != 0 {
		t.Fatalf("unscored vendor average=%v weighted=%v, want zeroes", zeta.AverageScore, zeta.WeightedScore)
	}
	if zeta.Overall != RAGNone {
		t.Fatalf("unscored vendor overall = %q, want %q", zeta.Overall, RAGNone)
	}
	if zeta.Progress != 0 {
		t.Fatalf("unscored vendor progress = %v, want 0", zeta.Progress)
	}
}

func TestSummarizeRanks(t *testing.T) {
	m := Build(demoDataset(), DefaultBuildOptions())
	s := Summarize(m, DefaultThresholds())

	acme := s.Vendors[0]
	if acme.Rank != 1 {
		t.Fatalf("acme rank = %d, want 1", acme.Rank)
	}
	if s.Vendors[1].Rank != 2 {
		t.Fatalf("zeta rank = %d, want 2", s.Vendors[1].Rank)
	}
	if acme.WeightedScore != 4.0 {
		t.Fatalf("acme weighted = %v, want 4.0", acme.WeightedScore)
	}
	if acme.Overall != RAGGreen {
		t.Fatalf("acme overall = %q, want %q", acme.Overall, RAGGreen)
	}
}

func TestSummarizeOverallProgress(t *testing.T) {
	m := Build(demoDataset(), DefaultBuildOptions())
	s := Summarize(m, DefaultThresholds())

	// 3 requirements x 2 vendors, Acme scored 2 cells.
	if s.TotalCells != 6 {
		t.Fatalf("TotalCells = %d, want 6", s.TotalCells)
	}
	if s.ScoredCells != 2 {
		t.Fatalf("ScoredCells = %d, want 2", s.ScoredCells)
	}
	want := float64(2) / 6 * 100
	if s.OverallProgress != want {
		t.Fatalf("OverallProgress = %v, want %v", s.OverallProgress, want)
	}
}

func TestSummarizeEmptyMatrix(t *testing.T) {
	s := Summarize(Build(Dataset{}, DefaultBuildOptions()), DefaultThresholds())

	if s.OverallProgress != 0 || s.TotalCells != 0 || len(s.Vendors) != 0 {
		t.Fatalf("empty summary = %+v", s)
	}
}
