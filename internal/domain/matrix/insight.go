package matrix

// InsightType identifies the rule family that produced a finding.
type InsightType string

const (
	InsightProgressUpdate  InsightType = "progress_update"
	InsightCoverageGap     InsightType = "coverage_gap"
	InsightCategoryLeader  InsightType = "category_leader"
	InsightConsensusNeeded InsightType = "consensus_needed"
	InsightRiskArea        InsightType = "risk_area"
)

// InsightPriority orders findings for display.
type InsightPriority string

const (
	PriorityLow    InsightPriority = "low"
	PriorityMedium InsightPriority = "medium"
	PriorityHigh   InsightPriority = "high"
)

// Insight is one derived analytical finding. Supporting carries the raw
// numeric basis of the claim (scores, counts, percentages) so a finding is
// explainable without re-running the engine.
type Insight struct {
	Type          InsightType
	Title         string
	Description   string
	Priority      InsightPriority
	VendorID      string
	CategoryID    string
	RequirementID string
	Supporting    map[string]any
}
