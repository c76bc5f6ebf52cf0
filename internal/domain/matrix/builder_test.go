package matrix

import (
	"reflect"
	"testing"
)

// demoDataset is a small two-category, two-vendor snapshot shared by the
// builder, summary, and coverage tests.
func demoDataset() Dataset {
	return Dataset{
		ProjectID: "proj-1",
		Categories: []Category{
			{ID: "cat-sec", Name: "Security", Weight: 60, SortOrder: 1},
			{ID: "cat-ops", Name: "Operations", Weight: 40, SortOrder: 2},
		},
		Criteria: []Criterion{
			{ID: "crit-sso", CategoryID: "cat-sec", Name: "SSO", Weight: 2},
			{ID: "crit-enc", CategoryID: "cat-sec", Name: "Encryption", Weight: 4},
			{ID: "crit-sla", CategoryID: "cat-ops", Name: "SLA", Weight: 1},
		},
		Requirements: []Requirement{
			{ID: "req-a", Code: "REQ-A", Title: "Identity", Priority: 2, CategoryID: "cat-sec", CriterionIDs: []string{"crit-sso", "crit-enc"}},
			{ID: "req-b", Code: "REQ-B", Title: "Uptime", Priority: 1, CategoryID: "cat-ops", CriterionIDs: []string{"crit-sla"}},
			{ID: "req-c", Code: "REQ-C", Title: "Orphan need", Priority: 3},
		},
		Vendors: []Vendor{
			{ID: "v-zeta", Name: "Zeta Systems", Status: "shortlisted"},
			{ID: "v-acme", Name: "Acme Corp", Status: "shortlisted"},
		},
		Scores: []Score{
			{VendorID: "v-acme", CriterionID: "crit-sso", EvaluatorID: "e1", Value: 3, Submitted: true},
			{VendorID: "v-acme", CriterionID: "crit-enc", EvaluatorID: "e1", Value: 5, Submitted: true},
			{VendorID: "v-acme", CriterionID: "crit-sla", EvaluatorID: "e1", Value: 4, Submitted: true},
		},
		Evidence: []Evidence{
			{ID: "ev-1", VendorID: "v-acme", Type: "document", Summary: "SOC2 report", RequirementIDs: []string{"req-a"}},
		},
	}
}

func TestBuildRowOrdering(t *testing.T) {
	m := Build(demoDataset(), DefaultBuildOptions())

	var got []string
	for _, row := range m.Rows {
		if row.Kind == RowCategory {
			got = append(got, "cat:"+row.CategoryID)
			continue
		}
		got = append(got, row.Requirement.Code)
	}
	want := []string{"cat:cat-sec", "REQ-A", "cat:cat-ops", "REQ-B", "cat:uncategorized", "REQ-C"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("row order = %v, want %v", got, want)
	}
}

func TestBuildVendorOrderByName(t *testing.T) {
	m := Build(demoDataset(), DefaultBuildOptions())

	if len(m.Vendors) != 2 {
		t.Fatalf("vendors len = %d", len(m.Vendors))
	}
	if m.Vendors[0].ID != "v-acme" || m.Vendors[1].ID != "v-zeta" {
		t.Fatalf("vendor order = %s, %s", m.Vendors[0].ID, m.Vendors[1].ID)
	}
}

func TestBuildPriorityDescendingWithinCategory(t *testing.T) {
	ds := demoDataset()
	ds.Requirements = append(ds.Requirements, Requirement{
		ID: "req-d", Code: "REQ-D", Title: "Audit log", Priority: 5, CategoryID: "cat-sec",
	})
	m := Build(ds, DefaultBuildOptions())

	if m.Rows[1].Requirement.Code != "REQ-D" || m.Rows[2].Requirement.Code != "REQ-A" {
		t.Fatalf("security rows = %s, %s, want REQ-D then REQ-A", m.Rows[1].Requirement.Code, m.Rows[2].Requirement.Code)
	}
}

func TestBuildWeightedRollup(t *testing.T) {
	// REQ-A: criterion weights [2,4], scores [3,5] -> value 4, avg weight 3.
	// REQ-B: criterion weight [1], score [4] -> value 4, weight 1.
	// Weighted score for Acme = (4*3 + 4*1) / (3+1) = 4.0.
	m := Build(demoDataset(), DefaultBuildOptions())

	totals := m.Totals[0] // v-acme after name sort
	if totals.VendorID != "v-acme" {
		t.Fatalf("totals[0] vendor = %s", totals.VendorID)
	}
	if totals.ScoredCount != 2 {
		t.Fatalf("ScoredCount = %d, want 2", totals.ScoredCount)
	}
	if totals.TotalWeight != 4 {
		t.Fatalf("TotalWeight = %v, want 4", totals.TotalWeight)
	}
	if got := totals.WeightedScore / totals.TotalWeight; got != 4.0 {
		t.Fatalf("weighted score = %v, want 4.0", got)
	}
}

func TestBuildDeterminism(t *testing.T) {
	first := Build(demoDataset(), DefaultBuildOptions())
	second := Build(demoDataset(), DefaultBuildOptions())

	if !reflect.DeepEqual(first, second) {
		t.Fatalf("two builds over identical input differ")
	}

	csvA, err := ToCSV(Flatten(first, Summarize(first, DefaultThresholds())))
	if err != nil {
		t.Fatalf("ToCSV() error = %v", err)
	}
	csvB, err := ToCSV(Flatten(second, Summarize(second, DefaultThresholds())))
	if err != nil {
		t.Fatalf("ToCSV() error = %v", err)
	}
	if csvA != csvB {
		t.Fatalf("serialized builds differ")
	}
}

func TestBuildEmptyDataset(t *testing.T) {
	m := Build(Dataset{ProjectID: "proj-empty"}, DefaultBuildOptions())

	if len(m.Rows) != 0 || len(m.Vendors) != 0 || m.RequirementCount != 0 {
		t.Fatalf("empty dataset produced rows=%d vendors=%d requirements=%d", len(m.Rows), len(m.Vendors), m.RequirementCount)
	}
}
