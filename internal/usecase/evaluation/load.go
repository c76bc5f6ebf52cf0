package evaluation

import (
	"context"

	"golang.org/x/sync/errgroup"

	"tracematrix/internal/domain/matrix"
	"tracematrix/internal/errs"
	"tracematrix/internal/ports"
)

// loadDataset reads one complete project snapshot. The project lookup runs
// first so a missing project fails fast; the remaining sources load
// concurrently and all must succeed. Any failure aborts the whole load so a
// partial matrix is never built.
func (s *Service) loadDataset(ctx context.Context, projectID string, filter ports.RequirementFilter) (ports.Project, matrix.Dataset, error) {
	project, err := s.repo.GetProject(ctx, projectID)
	if err != nil {
		return ports.Project{}, matrix.Dataset{}, errs.Wrapf(err, "load project %s", projectID)
	}

	ds := matrix.Dataset{ProjectID: projectID}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		items, err := s.repo.ListRequirements(gctx, projectID, filter)
		if err != nil {
			return errs.Wrapf(err, "load requirements for %s", projectID)
		}
		ds.Requirements = items
		return nil
	})
	g.Go(func() error {
		items, err := s.repo.ListEligibleVendors(gctx, projectID, s.cfg.EligibleStatuses)
		if err != nil {
			return errs.Wrapf(err, "load vendors for %s", projectID)
		}
		ds.Vendors = items
		return nil
	})
	g.Go(func() error {
		items, err := s.repo.ListCategories(gctx, projectID)
		if err != nil {
			return errs.Wrapf(err, "load categories for %s", projectID)
		}
		ds.Categories = items
		return nil
	})
	g.Go(func() error {
		items, err := s.repo.ListCriteria(gctx, projectID)
		if err != nil {
			return errs.Wrapf(err, "load criteria for %s", projectID)
		}
		ds.Criteria = items
		return nil
	})
	g.Go(func() error {
		items, err := s.repo.ListScores(gctx, projectID)
		if err != nil {
			return errs.Wrapf(err, "load scores for %s", projectID)
		}
		ds.Scores = items
		return nil
	})
	g.Go(func() error {
		items, err := s.repo.ListConsensusScores(gctx, projectID)
		if err != nil {
			return errs.Wrapf(err, "load consensus scores for %s", projectID)
		}
		ds.ConsensusScores = items
		return nil
	})
	g.Go(func() error {
		items, err := s.repo.ListEvidence(gctx, projectID)
		if err != nil {
			return errs.Wrapf(err, "load evidence for %s", projectID)
		}
		ds.Evidence = items
		return nil
	})

	if err := g.Wait(); err != nil {
		return ports.Project{}, matrix.Dataset{}, err
	}
	return project, ds, nil
}
