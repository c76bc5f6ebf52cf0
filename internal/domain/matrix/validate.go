package matrix

import (
	"fmt"
	"math"
)

// Warning reports an invariant violation found during validation. Matrices
// may legitimately be built during incomplete setup, so violations are
// surfaced as warnings, never hard failures.
type Warning struct {
	Code     string
	EntityID string
	Message  string
}

const (
	WarnCategoryWeights  = "category_weights_sum"
	WarnScoreOutOfBounds = "score_out_of_bounds"
	WarnDanglingLink     = "dangling_criterion_link"
)

// ValidateDataset checks the setup invariants of one dataset snapshot:
// category weights summing to 100, score values inside the scale, and
// requirement criterion links resolving to known criteria.
func ValidateDataset(ds Dataset) []Warning {
	var warnings []Warning

	if len(ds.Categories) > 0 {
		var sum float64
		for _, category := range ds.Categories {
			sum += category.Weight
		}
		if math.Abs(sum-CategoryWeightTotal) > 1e-9 {
			warnings = append(warnings, Warning{
				Code:    WarnCategoryWeights,
				Message: fmt.Sprintf("category weights sum to %.2f, expected %.0f", sum, CategoryWeightTotal),
			})
		}
	}

	for _, score := range ds.Scores {
		if score.Value < ScoreMin || score.Value > ScoreMax {
			warnings = append(warnings, Warning{
				Code:     WarnScoreOutOfBounds,
				EntityID: score.CriterionID,
				Message:  fmt.Sprintf("score %.2f by %s for vendor %s is outside [%.0f, %.0f]", score.Value, score.EvaluatorID, score.VendorID, ScoreMin, ScoreMax),
			})
		}
	}
	for _, consensus := range ds.ConsensusScores {
		if consensus.Value < ScoreMin || consensus.Value > ScoreMax {
			warnings = append(warnings, Warning{
				Code:     WarnScoreOutOfBounds,
				EntityID: consensus.CriterionID,
				Message:  fmt.Sprintf("consensus score %.2f for vendor %s is outside [%.0f, %.0f]", consensus.Value, consensus.VendorID, ScoreMin, ScoreMax),
			})
		}
	}

	known := make(map[string]struct{}, len(ds.Criteria))
	for _, criterion := range ds.Criteria {
		known[criterion.ID] = struct{}{}
	}
	for _, req := range ds.Requirements {
		for _, criterionID := range req.CriterionIDs {
			if _, ok := known[criterionID]; !ok {
				warnings = append(warnings, Warning{
					Code:     WarnDanglingLink,
					EntityID: req.ID,
					Message:  fmt.Sprintf("requirement %s links unknown criterion %s", req.Code, criterionID),
				})
			}
		}
	}

	return warnings
}
