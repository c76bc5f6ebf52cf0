package evaluation

import (
	"context"

	"tracematrix/internal/domain/matrix"
	"tracematrix/internal/ports"
)

// Coverage rebuilds the matrix and walks it independently for completeness
// accounting. An empty project yields an all-zero report, not an error.
func (s *Service) Coverage(ctx context.Context, projectID string) (matrix.CoverageReport, error) {
	_, ds, err := s.loadDataset(ctx, projectID, ports.RequirementFilter{})
	if err != nil {
		return matrix.CoverageReport{}, err
	}

	m := matrix.Build(ds, matrix.BuildOptions{
		Thresholds: s.cfg.Thresholds,
		Consensus:  s.cfg.Consensus,
	})
	return matrix.Analyze(m, s.cfg.GapDisplayCap), nil
}

// Validate surfaces dataset invariant warnings without failing. It is the
// read side of `matrix validate`.
func (s *Service) Validate(ctx context.Context, projectID string) ([]matrix.Warning, error) {
	_, ds, err := s.loadDataset(ctx, projectID, ports.RequirementFilter{})
	if err != nil {
		return nil, err
	}
	return matrix.ValidateDataset(ds), nil
}
