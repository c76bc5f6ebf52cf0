package matrix

import (
	"fmt"
	"math"
)

// RuleConfig carries the numeric policies of the insight rules.
type RuleConfig struct {
	// ProgressLowFloor: scored percentage at or above which a progress
	// update is low priority instead of medium.
	ProgressLowFloor float64
	// CoverageGapMedium / CoverageGapHigh: unscored fractions above which a
	// vendor gets a medium / high coverage gap finding.
	CoverageGapMedium float64
	CoverageGapHigh   float64
	// LeaderMinAverage: category average a vendor must reach to be named
	// leader.
	LeaderMinAverage float64
	// DisagreementStdDev: population standard deviation over a cell's
	// individual scores above which consensus is requested.
	DisagreementStdDev float64
	// RiskScoreCeiling / RiskAverageCeiling: a requirement is a risk area
	// when every scored vendor is below the score ceiling and the
	// cross-vendor average is below the average ceiling.
	RiskScoreCeiling   float64
	RiskAverageCeiling float64
}

// DefaultRuleConfig returns the standard rule policies.
func DefaultRuleConfig() RuleConfig {
	return RuleConfig{
		ProgressLowFloor:   50,
		CoverageGapMedium:  0.2,
		CoverageGapHigh:    0.5,
		LeaderMinAverage:   4,
		DisagreementStdDev: 1.0,
		RiskScoreCeiling:   3,
		RiskAverageCeiling: 2.5,
	}
}

// RuleInput is the shared read-only input of every rule.
type RuleInput struct {
	Matrix   Matrix
	Summary  Summary
	Coverage CoverageReport
	Config   RuleConfig
}

// Rule is one independent insight generator. Rules never mutate their
// input; emission order within a rule is the rule's own walk order.
type Rule interface {
	Name() string
	Evaluate(in RuleInput) []Insight
}

// DefaultRules returns the rule chain in its fixed application order.
// Findings keep emission order and are never re-sorted.
func DefaultRules() []Rule {
	return []Rule{
		progressRule{},
		coverageGapRule{},
		categoryLeaderRule{},
		consensusNeededRule{},
		riskAreaRule{},
	}
}

// Generate applies the rules in order and concatenates their findings.
func Generate(in RuleInput, rules []Rule) []Insight {
	var out []Insight
	for _, rule := range rules {
		out = append(out, rule.Evaluate(in)...)
	}
	return out
}

type progressRule struct{}

func (progressRule) Name() string { return string(InsightProgressUpdate) }

func (progressRule) Evaluate(in RuleInput) []Insight {
	pct := in.Summary.OverallProgress
	if pct >= 100 {
		return nil
	}

	priority := PriorityMedium
	if pct >= in.Config.ProgressLowFloor {
		priority = PriorityLow
	}

	return []Insight{{
		Type:        InsightProgressUpdate,
		Title:       "Evaluation in progress",
		Description: fmt.Sprintf("%.1f%% of the matrix is scored (%d of %d cells)", pct, in.Summary.ScoredCells, in.Summary.TotalCells),
		Priority:    priority,
		Supporting: map[string]any{
			"scored_cells":   in.Summary.ScoredCells,
			"total_cells":    in.Summary.TotalCells,
			"scored_percent": pct,
		},
	}}
}

type coverageGapRule struct{}

func (coverageGapRule) Name() string { return string(InsightCoverageGap) }

func (coverageGapRule) Evaluate(in RuleInput) []Insight {
	if in.Coverage.RequirementCount == 0 {
		return nil
	}

	var out []Insight
	for _, vc := range in.Coverage.Vendors {
		fraction := float64(vc.MissingCount) / float64(in.Coverage.RequirementCount)
		if fraction <= in.Config.CoverageGapMedium {
			continue
		}

		priority := PriorityMedium
		if fraction > in.Config.CoverageGapHigh {
			priority = PriorityHigh
		}

		out = append(out, Insight{
			Type:        InsightCoverageGap,
			Title:       fmt.Sprintf("Scoring gap for %s", vc.VendorName),
			Description: fmt.Sprintf("%s has no score for %d of %d requirements (%.1f%%)", vc.VendorName, vc.MissingCount, in.Coverage.RequirementCount, fraction*100),
			Priority:    priority,
			VendorID:    vc.VendorID,
			Supporting: map[string]any{
				"missing_count":        vc.MissingCount,
				"requirement_count":    in.Coverage.RequirementCount,
				"missing_percent":      fraction * 100,
				"missing_requirements": vc.MissingRequirements,
			},
		})
	}
	return out
}

type categoryLeaderRule struct{}

func (categoryLeaderRule) Name() string { return string(InsightCategoryLeader) }

// Evaluate names, per category, the vendor with the highest category
// average at or above the leader floor. Ties go to the first vendor in
// matrix vendor order; that is a policy choice, not a fairness property.
func (categoryLeaderRule) Evaluate(in RuleInput) []Insight {
	type bucket struct {
		name  string
		sums  []float64
		cells []int
	}

	var order []string
	buckets := make(map[string]*bucket)

	for _, row := range in.Matrix.Rows {
		if row.Kind == RowCategory {
			order = append(order, row.CategoryID)
			buckets[row.CategoryID] = &bucket{
				name:  row.CategoryName,
				sums:  make([]float64, len(in.Matrix.Vendors)),
				cells: make([]int, len(in.Matrix.Vendors)),
			}
			continue
		}
		b := buckets[row.CategoryID]
		for vi, cell := range row.Cells {
			if cell.Value == nil {
				continue
			}
			b.sums[vi] += *cell.Value
			b.cells[vi]++
		}
	}

	var out []Insight
	for _, categoryID := range order {
		b := buckets[categoryID]

		leader := -1
		var leaderAvg float64
		for vi := range in.Matrix.Vendors {
			if b.cells[vi] == 0 {
				continue
			}
			avg := b.sums[vi] / float64(b.cells[vi])
			if avg < in.Config.LeaderMinAverage {
				continue
			}
			if leader == -1 || avg > leaderAvg {
				leader = vi
				leaderAvg = avg
			}
		}
		if leader == -1 {
			continue
		}

		vendor := in.Matrix.Vendors[leader]
		out = append(out, Insight{
			Type:        InsightCategoryLeader,
			Title:       fmt.Sprintf("%s leads %s", vendor.Name, b.name),
			Description: fmt.Sprintf("%s averages %.2f across scored requirements in %s", vendor.Name, leaderAvg, b.name),
			Priority:    PriorityMedium,
			VendorID:    vendor.ID,
			CategoryID:  categoryID,
			Supporting: map[string]any{
				"average":      leaderAvg,
				"scored_cells": b.cells[leader],
				"min_average":  in.Config.LeaderMinAverage,
			},
		})
	}
	return out
}

type consensusNeededRule struct{}

func (consensusNeededRule) Name() string { return string(InsightConsensusNeeded) }

func (consensusNeededRule) Evaluate(in RuleInput) []Insight {
	var out []Insight
	for _, row := range in.Matrix.Rows {
		if row.Kind != RowRequirement {
			continue
		}
		for vi, cell := range row.Cells {
			if cell.Kind == CellConsensus || len(cell.Individual) < 2 {
				continue
			}
			stddev := populationStdDev(cell.Individual)
			if stddev <= in.Config.DisagreementStdDev {
				continue
			}

			vendor := in.Matrix.Vendors[vi]
			out = append(out, Insight{
				Type:          InsightConsensusNeeded,
				Title:         fmt.Sprintf("Evaluators disagree on %s for %s", row.Requirement.Code, vendor.Name),
				Description:   fmt.Sprintf("Individual scores for %q diverge (stddev %.2f over %d scores); a consensus score is needed", row.Requirement.Title, stddev, len(cell.Individual)),
				Priority:      PriorityHigh,
				VendorID:      vendor.ID,
				RequirementID: row.Requirement.ID,
				Supporting: map[string]any{
					"scores":           cell.Individual,
					"stddev":           stddev,
					"stddev_threshold": in.Config.DisagreementStdDev,
				},
			})
		}
	}
	return out
}

type riskAreaRule struct{}

func (riskAreaRule) Name() string { return string(InsightRiskArea) }

func (riskAreaRule) Evaluate(in RuleInput) []Insight {
	var out []Insight
	for _, row := range in.Matrix.Rows {
		if row.Kind != RowRequirement {
			continue
		}

		var values []float64
		allBelow := true
		for _, cell := range row.Cells {
			if cell.Value == nil {
				continue
			}
			values = append(values, *cell.Value)
			if *cell.Value >= in.Config.RiskScoreCeiling {
				allBelow = false
			}
		}
		if len(values) < 2 || !allBelow {
			continue
		}
		avg := mean(values)
		if avg >= in.Config.RiskAverageCeiling {
			continue
		}

		out = append(out, Insight{
			Type:          InsightRiskArea,
			Title:         fmt.Sprintf("No vendor meets %s", row.Requirement.Code),
			Description:   fmt.Sprintf("All %d scored vendors rate below %.1f on %q (average %.2f); market gap or over-strict requirement", len(values), in.Config.RiskScoreCeiling, row.Requirement.Title, avg),
			Priority:      PriorityHigh,
			RequirementID: row.Requirement.ID,
			Supporting: map[string]any{
				"scores":          values,
				"average":         avg,
				"score_ceiling":   in.Config.RiskScoreCeiling,
				"average_ceiling": in.Config.RiskAverageCeiling,
			},
		})
	}
	return out
}

// populationStdDev is sqrt(mean((x - mean)^2)), the population form rather
// than the sample form.
func populationStdDev(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	m := mean(values)
	var sum float64
	for _, v := range values {
		d := v - m
		sum += d * d
	}
	return math.Sqrt(sum / float64(len(values)))
}
