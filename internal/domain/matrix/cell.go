package matrix

// CellKind states which reduction produced a cell value.
type CellKind string

const (
	CellConsensus CellKind = "consensus"
	CellScored    CellKind = "scored"
	CellNoScore   CellKind = "no_score"
)

// ConsensusSelection decides the cell value when a requirement links
// multiple criteria and more than one carries a consensus score.
type ConsensusSelection string

const (
	// SelectFirst takes the consensus of the first linked criterion that
	// has one, in the requirement's criterion order.
	SelectFirst ConsensusSelection = "first"
	// SelectMean averages all consensus scores present across the linked
	// criteria.
	SelectMean ConsensusSelection = "mean"
)

// Cell is the resolved fitness value for one (requirement, vendor) pair.
// RAG is always derived from Value at evaluation time and never stored
// independently of it.
type Cell struct {
	RequirementID string
	VendorID      string
	Kind          CellKind
	Value         *float64
	RAG           RAG
	// Individual keeps the raw submitted score values across all linked
	// criteria, for variance-based rules. Populated regardless of Kind.
	Individual    []float64
	EvidenceCount int
}

// EvaluateCell reduces all scores for a requirement's linked criteria into
// one cell. Consensus on any linked criterion wins over individual scores;
// otherwise the cell value is the mean of all submitted individual scores;
// with neither, the cell carries no value. Pure function, no side effects.
func EvaluateCell(req Requirement, vendorID string, idx Index, thresholds Thresholds, selection ConsensusSelection) Cell {
	cell := Cell{
		RequirementID: req.ID,
		VendorID:      vendorID,
		Kind:          CellNoScore,
		EvidenceCount: idx.EvidenceCount[EvidenceKey{VendorID: vendorID, RequirementID: req.ID}],
	}

	var consensusValues []float64
	for _, criterionID := range req.CriterionIDs {
		key := ScoreKey{VendorID: vendorID, CriterionID: criterionID}
		if consensus, ok := idx.Consensus[key]; ok {
			consensusValues = append(consensusValues, consensus.Value)
		}
		for _, score := range idx.Scores[key] {
			cell.Individual = append(cell.Individual, score.Value)
		}
	}

	switch {
	case len(consensusValues) > 0:
		cell.Kind = CellConsensus
		value := consensusValues[0]
		if selection == SelectMean {
			value = mean(consensusValues)
		}
		cell.Value = &value
	case len(cell.Individual) > 0:
		cell.Kind = CellScored
		value := mean(cell.Individual)
		cell.Value = &value
	}

	cell.RAG = thresholds.Classify(cell.Value)
	return cell
}

func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}
