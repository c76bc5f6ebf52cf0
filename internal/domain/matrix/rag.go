package matrix

import "fmt"

// RAG is the three-tier fitness classification of a resolved score.
type RAG string

const (
	RAGNone  RAG = "none"
	RAGRed   RAG = "red"
	RAGAmber RAG = "amber"
	RAGGreen RAG = "green"
)

// Thresholds holds the RAG classification boundaries. They are injected
// into every computation so one profile governs a whole build.
type Thresholds struct {
	Green float64
	Amber float64
}

// DefaultThresholds returns the standard 0-5 scale boundaries.
func DefaultThresholds() Thresholds {
	return Thresholds{Green: 4, Amber: 3}
}

// Validate rejects threshold pairs that cannot classify consistently.
func (t Thresholds) Validate() error {
	if t.Green < t.Amber {
		return fmt.Errorf("invalid thresholds: green %.2f below amber %.2f", t.Green, t.Amber)
	}
	return nil
}

// Classify maps a resolved cell value to its RAG status. A nil value means
// the cell has no score at all.
func (t Thresholds) Classify(value *float64) RAG {
	switch {
	case value == nil:
		return RAGNone
	case *value >= t.Green:
		return RAGGreen
	case *value >= t.Amber:
		return RAGAmber
	default:
		return RAGRed
	}
}
