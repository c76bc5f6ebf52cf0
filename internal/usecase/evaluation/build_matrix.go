package evaluation

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"tracematrix/internal/bootstrap/logging"
	"tracematrix/internal/domain/matrix"
	"tracematrix/internal/errs"
	"tracematrix/internal/ports"
)

// MatrixResult is one complete build: the matrix itself, the derived vendor
// summary, and any invariant warnings found in the input data.
type MatrixResult struct {
	Project  ports.Project
	Matrix   matrix.Matrix
	Summary  matrix.Summary
	Warnings []matrix.Warning
}

// BuildMatrixInput narrows and tunes one build. Zero value uses the
// service defaults.
type BuildMatrixInput struct {
	ProjectID  string
	CategoryID string
	// Profile overrides thresholds and consensus policy when set.
	Profile *Profile
}

// BuildMatrix loads the project snapshot and computes the full matrix.
// Warnings never fail the build; they accompany the result.
func (s *Service) BuildMatrix(ctx context.Context, in BuildMatrixInput) (MatrixResult, error) {
	project, ds, err := s.loadDataset(ctx, in.ProjectID, ports.RequirementFilter{CategoryID: in.CategoryID})
	if err != nil {
		return MatrixResult{}, err
	}

	opts := matrix.BuildOptions{
		Thresholds: s.cfg.Thresholds,
		Consensus:  s.cfg.Consensus,
	}
	if in.Profile != nil {
		opts.Thresholds = in.Profile.Thresholds
		opts.Consensus = in.Profile.Consensus
	}

	m := matrix.Build(ds, opts)
	result := MatrixResult{
		Project:  project,
		Matrix:   m,
		Summary:  matrix.Summarize(m, opts.Thresholds),
		Warnings: matrix.ValidateDataset(ds),
	}
	for _, warning := range result.Warnings {
		logging.Warn(ctx, "dataset invariant violated",
			slog.String("project_id", in.ProjectID),
			slog.String("code", warning.Code),
			slog.String("entity_id", warning.EntityID),
			slog.String("detail", warning.Message))
	}

	s.cacheSnapshot(ctx, in.ProjectID, result)
	return result, nil
}

// Snapshot is the compact build summary kept in the cache per project.
// LoadSnapshot reads it back without touching the repositories.
type Snapshot struct {
	ProjectID    string                 `json:"projectId"`
	Requirements int                    `json:"requirements"`
	Vendors      int                    `json:"vendors"`
	Progress     float64                `json:"progress"`
	Ranking      []matrix.VendorSummary `json:"ranking"`
	GeneratedAt  string                 `json:"generatedAt"`
}

// ErrNoSnapshot reports that no cached snapshot exists for the project.
var ErrNoSnapshot = errors.New("no cached matrix snapshot")

func snapshotKey(projectID string) string {
	return "matrix:" + projectID
}

// LoadSnapshot returns the snapshot written by the most recent successful
// build, or ErrNoSnapshot if the project has never been built.
func (s *Service) LoadSnapshot(ctx context.Context, projectID string) (Snapshot, error) {
	if s.cache == nil {
		return Snapshot{}, ErrNoSnapshot
	}
	raw, found, err := s.cache.Get(ctx, snapshotKey(projectID))
	if err != nil {
		return Snapshot{}, errs.Wrapf(err, "load matrix snapshot for %s", projectID)
	}
	if !found {
		return Snapshot{}, ErrNoSnapshot
	}

	var snapshot Snapshot
	if err := json.Unmarshal([]byte(raw), &snapshot); err != nil {
		return Snapshot{}, errs.Wrapf(err, "decode matrix snapshot for %s", projectID)
	}
	return snapshot, nil
}

// cacheSnapshot stores the latest summary for LoadSnapshot readers.
// Failures are logged and ignored; the cache is an optimization only.
func (s *Service) cacheSnapshot(ctx context.Context, projectID string, result MatrixResult) {
	if s.cache == nil {
		return
	}

	snapshot := Snapshot{
		ProjectID:    projectID,
		Requirements: result.Matrix.RequirementCount,
		Vendors:      len(result.Matrix.Vendors),
		Progress:     result.Summary.OverallProgress,
		Ranking:      result.Summary.Vendors,
		GeneratedAt:  time.Now().UTC().Format(time.RFC3339Nano),
	}

	payload, err := json.Marshal(snapshot)
	if err != nil {
		logging.Warn(ctx, "marshal matrix snapshot failed",
			slog.String("project_id", projectID),
			slog.Any("err", errs.Loggable(err)))
		return
	}
	if err := s.cache.Set(ctx, snapshotKey(projectID), string(payload), 0); err != nil {
		logging.Warn(ctx, "cache matrix snapshot failed",
			slog.String("project_id", projectID),
			slog.Any("err", errs.Loggable(err)))
	}
}
