package ports

import (
	"context"
	"errors"

	"tracematrix/internal/domain/matrix"
)

var (
	ErrProjectNotFound     = errors.New("evaluation project not found")
	ErrRequirementNotFound = errors.New("requirement not found")
	ErrVendorNotFound      = errors.New("vendor not found")
)

// Project is the evaluation container every read is scoped to.
type Project struct {
	ID        string
	Name      string
	Status    string
	CreatedAt string
}

// RequirementFilter narrows matrix builds to a category slice. Soft-deleted
// requirements are always excluded.
type RequirementFilter struct {
	CategoryID string
}

// DatasetImport is one complete evaluation dataset written atomically,
// typically from a seed file.
type DatasetImport struct {
	Project         Project
	Categories      []matrix.Category
	Criteria        []matrix.Criterion
	Requirements    []matrix.Requirement
	Vendors         []matrix.Vendor
	Scores          []matrix.Score
	ConsensusScores []matrix.ConsensusScore
	Evidence        []matrix.Evidence
}

// EvaluationReadRepository is the upstream read contract of the engine.
// Every listing is project-scoped; implementations must keep persisted
// order stable so builds stay deterministic.
type EvaluationReadRepository interface {
	GetProject(ctx context.Context, projectID string) (Project, error)
	ListRequirements(ctx context.Context, projectID string, filter RequirementFilter) ([]matrix.Requirement, error)
	// ListEligibleVendors returns only vendors whose status is in the
	// evaluatable allow-list.
	ListEligibleVendors(ctx context.Context, projectID string, statuses []string) ([]matrix.Vendor, error)
	ListCategories(ctx context.Context, projectID string) ([]matrix.Category, error)
	ListCriteria(ctx context.Context, projectID string) ([]matrix.Criterion, error)
	ListScores(ctx context.Context, projectID string) ([]matrix.Score, error)
	ListConsensusScores(ctx context.Context, projectID string) ([]matrix.ConsensusScore, error)
	ListEvidence(ctx context.Context, projectID string) ([]matrix.Evidence, error)
}

// EvaluationRepository adds the dataset import used by seeding.
type EvaluationRepository interface {
	EvaluationReadRepository
	// ImportDataset writes one dataset. With replace set, existing rows of
	// the project are removed first. Runs inside the caller's transaction
	// context.
	ImportDataset(ctx context.Context, imp DatasetImport, replace bool) error
}
