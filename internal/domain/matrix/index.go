package matrix

// ScoreKey addresses score buckets by (vendor, criterion). A struct key
// avoids the id-delimiter collisions a concatenated string key would allow.
type ScoreKey struct {
	VendorID    string
	CriterionID string
}

// EvidenceKey addresses evidence counts by (vendor, requirement).
type EvidenceKey struct {
	VendorID      string
	RequirementID string
}

// Index holds the typed lookups the cell evaluator consumes. Individual
// score buckets contain submitted scores only; draft scores stay visible in
// drilldowns but never enter aggregation.
type Index struct {
	Scores        map[ScoreKey][]Score
	Consensus     map[ScoreKey]ConsensusScore
	EvidenceCount map[EvidenceKey]int
	Criteria      map[string]Criterion
}

// BuildIndex precomputes lookups over one dataset snapshot.
func BuildIndex(ds Dataset) Index {
	idx := Index{
		Scores:        make(map[ScoreKey][]Score, len(ds.Scores)),
		Consensus:     make(map[ScoreKey]ConsensusScore, len(ds.ConsensusScores)),
		EvidenceCount: make(map[EvidenceKey]int, len(ds.Evidence)),
		Criteria:      make(map[string]Criterion, len(ds.Criteria)),
	}

	for _, criterion := range ds.Criteria {
		idx.Criteria[criterion.ID] = criterion
	}

	for _, score := range ds.Scores {
		if !score.Submitted {
			continue
		}
		key := ScoreKey{VendorID: score.VendorID, CriterionID: score.CriterionID}
		idx.Scores[key] = append(idx.Scores[key], score)
	}

	for _, consensus := range ds.ConsensusScores {
		key := ScoreKey{VendorID: consensus.VendorID, CriterionID: consensus.CriterionID}
		idx.Consensus[key] = consensus
	}

	for _, evidence := range ds.Evidence {
		for _, requirementID := range evidence.RequirementIDs {
			key := EvidenceKey{VendorID: evidence.VendorID, RequirementID: requirementID}
			idx.EvidenceCount[key]++
		}
	}

	return idx
}
