package matrix

import (
	"math"
	"testing"
)

func ruleInput(ds Dataset) RuleInput {
	m := Build(ds, DefaultBuildOptions())
	return RuleInput{
		Matrix:   m,
		Summary:  Summarize(m, DefaultThresholds()),
		Coverage: Analyze(m, 0),
		Config:   DefaultRuleConfig(),
	}
}

// scoredPair yields one requirement scored for two vendors at the given
// values via consensus, so individual-score rules stay quiet.
func scoredPair(a, b float64) Dataset {
	return Dataset{
		ProjectID: "proj-r",
		Criteria:  []Criterion{{ID: "crit-1", Weight: 1}},
		Requirements: []Requirement{
			{ID: "req-1", Code: "REQ-001", Title: "Throughput", CriterionIDs: []string{"crit-1"}},
		},
		Vendors: []Vendor{
			{ID: "v1", Name: "Alpha"},
			{ID: "v2", Name: "Beta"},
		},
		ConsensusScores: []ConsensusScore{
			{VendorID: "v1", CriterionID: "crit-1", Value: a},
			{VendorID: "v2", CriterionID: "crit-1", Value: b},
		},
	}
}

func findInsights(insights []Insight, typ InsightType) []Insight {
	var out []Insight
	for _, insight := range insights {
		if insight.Type == typ {
			out = append(out, insight)
		}
	}
	return out
}

func TestProgressRulePriorities(t *testing.T) {
	in := ruleInput(demoDataset()) // 2 of 6 cells scored, ~33%
	insights := progressRule{}.Evaluate(in)
	if len(insights) != 1 {
		t.Fatalf("insights len = %d, want 1", len(insights))
	}
	if insights[0].Priority != PriorityMedium {
		t.Fatalf("priority = %q, want medium below 50%%", insights[0].Priority)
	}

	in = ruleInput(scoredPair(4, 4)) // fully scored
	if got := (progressRule{}).Evaluate(in); len(got) != 0 {
		t.Fatalf("fully scored matrix emitted %d progress insights", len(got))
	}
}

func TestProgressRuleLowPriorityAboveFloor(t *testing.T) {
	ds := scoredPair(4, 4)
	ds.Requirements = append(ds.Requirements, Requirement{
		ID: "req-2", Code: "REQ-002", Title: "Unscored", CriterionIDs: []string{"crit-1"},
	})
	// 2 of 4 cells scored = 50%, at the floor -> low priority.
	insights := progressRule{}.Evaluate(ruleInput(ds))
	if len(insights) != 1 || insights[0].Priority != PriorityLow {
		t.Fatalf("insights = %+v, want one low-priority progress update", insights)
	}
}

func TestCoverageGapRuleThresholds(t *testing.T) {
	ds := demoDataset()
	insights := coverageGapRule{}.Evaluate(ruleInput(ds))

	// Acme misses 1/3 (~33%) -> medium; Zeta misses 3/3 -> high.
	if len(insights) != 2 {
		t.Fatalf("insights len = %d, want 2", len(insights))
	}
	if insights[0].VendorID != "v-acme" || insights[0].Priority != PriorityMedium {
		t.Fatalf("first gap insight = %+v", insights[0])
	}
	if insights[1].VendorID != "v-zeta" || insights[1].Priority != PriorityHigh {
		t.Fatalf("second gap insight = %+v", insights[1])
	}
}

func TestCategoryLeaderRule(t *testing.T) {
	insights := categoryLeaderRule{}.Evaluate(ruleInput(demoDataset()))

	// Acme averages 4.0 in both scored categories.
	if len(insights) != 2 {
		t.Fatalf("insights len = %d, want 2", len(insights))
	}
	for _, insight := range insights {
		if insight.VendorID != "v-acme" {
			t.Fatalf("leader = %s, want v-acme", insight.VendorID)
		}
	}
}

func TestCategoryLeaderTieBreakVendorOrder(t *testing.T) {
	insights := categoryLeaderRule{}.Evaluate(ruleInput(scoredPair(4.5, 4.5)))

	if len(insights) != 1 {
		t.Fatalf("insights len = %d, want 1", len(insights))
	}
	// Alpha precedes Beta in name order and wins the tie.
	if insights[0].VendorID != "v1" {
		t.Fatalf("tied leader = %s, want v1", insights[0].VendorID)
	}
}

func TestCategoryLeaderBelowFloor(t *testing.T) {
	if insights := (categoryLeaderRule{}).Evaluate(ruleInput(scoredPair(3.5, 3.9))); len(insights) != 0 {
		t.Fatalf("below-floor category produced %d leader insights", len(insights))
	}
}

func TestConsensusNeededTrigger(t *testing.T) {
	ds := Dataset{
		ProjectID: "proj-c",
		Criteria:  []Criterion{{ID: "crit-1", Weight: 1}},
		Requirements: []Requirement{
			{ID: "req-1", Code: "REQ-001", Title: "Latency", CriterionIDs: []string{"crit-1"}},
		},
		Vendors: []Vendor{{ID: "v1", Name: "Alpha"}},
		Scores: []Score{
			{VendorID: "v1", CriterionID: "crit-1", EvaluatorID: "e1", Value: 2, Submitted: true},
			{VendorID: "v1", CriterionID: "crit-1", EvaluatorID: "e2", Value: 5, Submitted: true},
		},
	}
	insights := consensusNeededRule{}.Evaluate(ruleInput(ds))

	if len(insights) != 1 {
		t.Fatalf("insights len = %d, want 1", len(insights))
	}
	insight := insights[0]
	if insight.RequirementID != "req-1" || insight.VendorID != "v1" {
		t.Fatalf("insight refs = %s/%s, want req-1/v1", insight.RequirementID, insight.VendorID)
	}
	if insight.Priority != PriorityHigh {
		t.Fatalf("priority = %q, want high", insight.Priority)
	}
	if got := insight.Supporting["stddev"].(float64); got != 1.5 {
		t.Fatalf("stddev = %v, want 1.5", got)
	}
}

func TestConsensusNeededQuietCases(t *testing.T) {
	ds := Dataset{
		ProjectID: "proj-c",
		Criteria:  []Criterion{{ID: "crit-1", Weight: 1}},
		Requirements: []Requirement{
			{ID: "req-1", Code: "REQ-001", Title: "Latency", CriterionIDs: []string{"crit-1"}},
		},
		Vendors: []Vendor{{ID: "v1", Name: "Alpha"}},
		Scores: []Score{
			{VendorID: "v1", CriterionID: "crit-1", EvaluatorID: "e1", Value: 3, Submitted: true},
			{VendorID: "v1", CriterionID: "crit-1", EvaluatorID: "e2", Value: 4, Submitted: true},
		},
	}
	if insights := (consensusNeededRule{}).Evaluate(ruleInput(ds)); len(insights) != 0 {
		t.Fatalf("stddev 0.5 emitted %d insights", len(insights))
	}

	// An existing consensus silences the rule even when evaluators diverge.
	ds.Scores[1].Value = 5
	ds.ConsensusScores = []ConsensusScore{{VendorID: "v1", CriterionID: "crit-1", Value: 4}}
	if insights := (consensusNeededRule{}).Evaluate(ruleInput(ds)); len(insights) != 0 {
		t.Fatalf("consensus-backed cell emitted %d insights", len(insights))
	}
}

func TestRiskAreaTrigger(t *testing.T) {
	insights := riskAreaRule{}.Evaluate(ruleInput(scoredPair(1, 2)))

	if len(insights) != 1 {
		t.Fatalf("insights len = %d, want 1", len(insights))
	}
	if insights[0].RequirementID != "req-1" {
		t.Fatalf("insight requirement = %s, want req-1", insights[0].RequirementID)
	}
	if got := insights[0].Supporting["average"].(float64); got != 1.5 {
		t.Fatalf("supporting average = %v, want 1.5", got)
	}
}

func TestRiskAreaQuietCases(t *testing.T) {
	if insights := (riskAreaRule{}).Evaluate(ruleInput(scoredPair(2, 3))); len(insights) != 0 {
		t.Fatalf("one vendor at ceiling emitted %d risk insights", len(insights))
	}

	// A single scored vendor is never a market signal.
	ds := scoredPair(1, 2)
	ds.ConsensusScores = ds.ConsensusScores[:1]
	if insights := (riskAreaRule{}).Evaluate(ruleInput(ds)); len(insights) != 0 {
		t.Fatalf("single scored vendor emitted %d risk insights", len(insights))
	}
}

func TestGenerateKeepsRuleOrder(t *testing.T) {
	insights := Generate(ruleInput(demoDataset()), DefaultRules())

	if len(insights) == 0 {
		t.Fatalf("no insights generated")
	}
	if insights[0].Type != InsightProgressUpdate {
		t.Fatalf("first insight = %q, want progress_update", insights[0].Type)
	}
	lastRank := 0
	rank := map[InsightType]int{
		InsightProgressUpdate:  1,
		InsightCoverageGap:     2,
		InsightCategoryLeader:  3,
		InsightConsensusNeeded: 4,
		InsightRiskArea:        5,
	}
	for _, insight := range insights {
		if rank[insight.Type] < lastRank {
			t.Fatalf("insight order violates rule order: %q after rank %d", insight.Type, lastRank)
		}
		lastRank = rank[insight.Type]
	}
}

func TestPopulationStdDev(t *testing.T) {
	if got := populationStdDev([]float64{2, 5}); got != 1.5 {
		t.Fatalf("populationStdDev([2 5]) = %v, want 1.5", got)
	}
	if got := populationStdDev([]float64{3, 4}); got != 0.5 {
		t.Fatalf("populationStdDev([3 4]) = %v, want 0.5", got)
	}
	if got := populationStdDev([]float64{4}); got != 0 {
		t.Fatalf("populationStdDev single = %v, want 0", got)
	}
	if got := populationStdDev([]float64{1, 2, 3}); math.Abs(got-math.Sqrt(2.0/3.0)) > 1e-12 {
		t.Fatalf("populationStdDev([1 2 3]) = %v", got)
	}
}
