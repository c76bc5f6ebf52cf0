package evaluation

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"tracematrix/internal/bootstrap/logging"
	"tracematrix/internal/domain/matrix"
	"tracematrix/internal/errs"
	"tracematrix/internal/ports"
)

// InsightBatch is one generation run. Persisted reports whether the batch
// reached storage; the findings themselves are always returned.
type InsightBatch struct {
	ProjectID   string
	BatchID     string
	GeneratedAt string
	Insights    []matrix.Insight
	Persisted   bool
}

// GenerateInsightsInput tunes one generation run.
type GenerateInsightsInput struct {
	ProjectID string
	Profile   *Profile
}

// GenerateInsights builds the matrix, runs the rule chain, and saves the
// findings as a batch. A storage failure is logged and reported through
// the Persisted flag; it never hides the computed insights.
func (s *Service) GenerateInsights(ctx context.Context, in GenerateInsightsInput) (InsightBatch, error) {
	_, ds, err := s.loadDataset(ctx, in.ProjectID, ports.RequirementFilter{})
	if err != nil {
		return InsightBatch{}, err
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
	input := matrix.RuleInput{
		Matrix:   m,
		Summary:  matrix.Summarize(m, opts.Thresholds),
		Coverage: matrix.Analyze(m, s.cfg.GapDisplayCap),
		Config:   s.cfg.Rules,
	}

	batch := InsightBatch{
		ProjectID:   in.ProjectID,
		BatchID:     uuid.NewString(),
		GeneratedAt: time.Now().UTC().Format(time.RFC3339Nano),
		Insights:    matrix.Generate(input, in.Profile.rules()),
	}
	batch.Persisted = s.persistBatch(ctx, batch)
	return batch, nil
}

func (s *Service) persistBatch(ctx context.Context, batch InsightBatch) bool {
	if s.insights == nil || len(batch.Insights) == 0 {
		return false
	}

	inserts := make([]ports.InsightCreate, 0, len(batch.Insights))
	for _, insight := range batch.Insights {
		supporting, err := json.Marshal(insight.Supporting)
		if err != nil {
			logging.Warn(ctx, "marshal insight supporting data failed",
				slog.String("project_id", batch.ProjectID),
				slog.String("type", string(insight.Type)),
				slog.Any("err", errs.Loggable(err)))
			supporting = []byte("{}")
		}
		inserts = append(inserts, ports.InsightCreate{
			ProjectID:      batch.ProjectID,
			BatchID:        batch.BatchID,
			Type:           string(insight.Type),
			Title:          insight.Title,
			Description:    insight.Description,
			Priority:       string(insight.Priority),
			VendorID:       insight.VendorID,
			CategoryID:     insight.CategoryID,
			RequirementID:  insight.RequirementID,
			SupportingJSON: string(supporting),
			GeneratedAt:    batch.GeneratedAt,
		})
	}

	if err := s.insights.SaveBatch(ctx, inserts); err != nil {
		logging.Error(ctx, "persist insight batch failed",
			slog.String("project_id", batch.ProjectID),
			slog.String("batch_id", batch.BatchID),
			slog.Any("err", errs.Loggable(err)))
		return false
	}
	return true
}

// ListInsights returns stored findings for a project, oldest first.
func (s *Service) ListInsights(ctx context.Context, projectID string, includeDismissed bool) ([]ports.InsightRecord, error) {
	return s.insights.ListInsights(ctx, projectID, includeDismissed)
}

// DismissInsight soft-dismisses one finding.
func (s *Service) DismissInsight(ctx context.Context, insightID uint64) error {
	return s.insights.DismissInsight(ctx, insightID, time.Now().UTC().Format(time.RFC3339Nano))
}
