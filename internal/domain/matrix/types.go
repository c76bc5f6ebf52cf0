// Package matrix implements the traceability matrix computation: cell
// evaluation, category-grouped matrix assembly, vendor summaries, coverage
// analysis, rule-based insights, drilldown chains and tabular export.
//
// Everything in this package is a pure transformation of an in-memory
// Dataset snapshot. Persistence and I/O live behind ports.
package matrix

// Score value bounds for the evaluation scale.
const (
	ScoreMin = 0.0
	ScoreMax = 5.0
)

// CategoryWeightTotal is the required sum of non-deleted category weights
// for a fully configured project.
const CategoryWeightTotal = 100.0

// Requirement is a client need to be satisfied, linked to zero or more
// scorable criteria.
type Requirement struct {
	ID              string
	Code            string
	Title           string
	Priority        int
	CategoryID      string // empty means uncategorized
	StakeholderArea string
	SourceDocument  string
	CriterionIDs    []string
}

// Category is a weighted grouping of criteria.
type Category struct {
	ID        string
	Name      string
	Weight    float64
	SortOrder int
}

// Criterion is a scorable sub-unit of a category.
type Criterion struct {
	ID         string
	CategoryID string
	Name       string
	Weight     float64
}

// Vendor is a competing supplier under evaluation. Only vendors in an
// evaluatable status reach the Dataset.
type Vendor struct {
	ID     string
	Name   string
	Status string
}

// Score is one evaluator's rating of one vendor against one criterion.
type Score struct {
	VendorID    string
	CriterionID string
	EvaluatorID string
	Value       float64
	Rationale   string
	Submitted   bool
}

// ConsensusScore is the reconciled single score for a (vendor, criterion)
// pair. It supersedes individual scores during aggregation.
type ConsensusScore struct {
	VendorID    string
	CriterionID string
	Value       float64
	Rationale   string
}

// Evidence is a fact supporting scoring, linked to requirements and/or
// criteria through link records.
type Evidence struct {
	ID             string
	VendorID       string
	Type           string
	Summary        string
	RequirementIDs []string
	CriterionIDs   []string
}

// Dataset is one complete input snapshot for a single evaluation project.
// All slices keep persisted order; the builder applies its own sorting
// rules on top.
type Dataset struct {
	ProjectID       string
	Categories      []Category // display sort order
	Criteria        []Criterion
	Requirements    []Requirement
	Vendors         []Vendor
	Scores          []Score
	ConsensusScores []ConsensusScore
	Evidence        []Evidence
}
