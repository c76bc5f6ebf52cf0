package ports

import (
	"context"
	"errors"
)

var ErrInsightNotFound = errors.New("insight not found")

// InsightRecord is a persisted analytical finding. Dismissal is a soft
// state change; records are never deleted.
type InsightRecord struct {
	InsightID      uint64
	ProjectID      string
	BatchID        string
	Type           string
	Title          string
	Description    string
	Priority       string
	VendorID       string
	CategoryID     string
	RequirementID  string
	SupportingJSON string
	GeneratedAt    string
	Dismissed      bool
	DismissedAt    *string
}

// InsightCreate is the write form of one finding inside a batch.
type InsightCreate struct {
	ProjectID      string
	BatchID        string
	Type           string
	Title          string
	Description    string
	Priority       string
	VendorID       string
	CategoryID     string
	RequirementID  string
	SupportingJSON string
	GeneratedAt    string
}

// InsightRepository persists generated insight batches and their dismissal
// state.
type InsightRepository interface {
	SaveBatch(ctx context.Context, inserts []InsightCreate) error
	ListInsights(ctx context.Context, projectID string, includeDismissed bool) ([]InsightRecord, error)
	DismissInsight(ctx context.Context, insightID uint64, dismissedAt string) error
}
