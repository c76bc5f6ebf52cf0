package matrix

import "testing"

func TestValidateDatasetClean(t *testing.T) {
	if warnings := ValidateDataset(demoDataset()); len(warnings) != 0 {
		t.Fatalf("clean dataset warnings = %+v", warnings)
	}
}

func TestValidateCategoryWeights(t *testing.T) {
	ds := demoDataset()
	ds.Categories[0].Weight = 50 // 50 + 40 != 100

	warnings := ValidateDataset(ds)
	if len(warnings) != 1 || warnings[0].Code != WarnCategoryWeights {
		t.Fatalf("warnings = %+v, want one %s", warnings, WarnCategoryWeights)
	}
}

func TestValidateScoreBounds(t *testing.T) {
	ds := demoDataset()
	ds.Scores[0].Value = 7
	ds.ConsensusScores = []ConsensusScore{{VendorID: "v-acme", CriterionID: "crit-sso", Value: -1}}

	warnings := ValidateDataset(ds)
	var codes []string
	for _, w := range warnings {
		codes = append(codes, w.Code)
	}
	if len(warnings) != 2 {
		t.Fatalf("warnings = %v, want two %s", codes, WarnScoreOutOfBounds)
	}
	for _, w := range warnings {
		if w.Code != WarnScoreOutOfBounds {
			t.Fatalf("warning code = %s", w.Code)
		}
	}
}

func TestValidateDanglingLinks(t *testing.T) {
	ds := demoDataset()
	ds.Requirements[0].CriterionIDs = append(ds.Requirements[0].CriterionIDs, "crit-ghost")

	warnings := ValidateDataset(ds)
	if len(warnings) != 1 || warnings[0].Code != WarnDanglingLink || warnings[0].EntityID != "req-a" {
		t.Fatalf("warnings = %+v", warnings)
	}
}

func TestValidateEmptyDataset(t *testing.T) {
	// Zero categories is incomplete setup, not a violation.
	if warnings := ValidateDataset(Dataset{}); len(warnings) != 0 {
		t.Fatalf("empty dataset warnings = %+v", warnings)
	}
}
