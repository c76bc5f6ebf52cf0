package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"tracematrix/internal/errs"
	"tracematrix/internal/infrastructure/persistence/sqlite/model"
	"tracematrix/internal/ports"
)

// InsightRepository implements ports.InsightRepository over SQLite.
type InsightRepository struct {
	db *gorm.DB
}

func NewInsightRepository(db *gorm.DB) *InsightRepository {
	return &InsightRepository{db: db}
}

func (r *InsightRepository) dbFromContext(ctx context.Context) (*gorm.DB, error) {
	if ctx == nil {
		return nil, errors.New("context is required")
	}

	tx := ports.TxFromContext(ctx)
	if tx == nil {
		return r.db.WithContext(ctx), nil
	}

	gormTx, ok := tx.(*gorm.DB)
	if !ok || gormTx == nil {
		return nil, fmt.Errorf("invalid tx in context: %T", tx)
	}
	return gormTx.WithContext(ctx), nil
}

func (r *InsightRepository) SaveBatch(ctx context.Context, inserts []ports.InsightCreate) error {
	if len(inserts) == 0 {
		return nil
	}

	db, err := r.dbFromContext(ctx)
	if err != nil {
		return err
	}

	rows := make([]model.Insight, 0, len(inserts))
	for _, insert := range inserts {
		rows = append(rows, model.Insight{
			ProjectID:      insert.ProjectID,
			BatchID:        insert.BatchID,
			Type:           insert.Type,
			Title:          insert.Title,
			Description:    insert.Description,
			Priority:       insert.Priority,
			VendorID:       insert.VendorID,
			CategoryID:     insert.CategoryID,
			RequirementID:  insert.RequirementID,
			SupportingJSON: insert.SupportingJSON,
			GeneratedAt:    insert.GeneratedAt,
		})
	}

	if err := db.Create(&rows).Error; err != nil {
		return errs.Wrapf(err, "insert insight batch of %d", len(rows))
	}
	return nil
}

func (r *InsightRepository) ListInsights(ctx context.Context, projectID string, includeDismissed bool) ([]ports.InsightRecord, error) {
	db, err := r.dbFromContext(ctx)
	if err != nil {
		return nil, err
	}

	query := db.Model(&model.Insight{}).Where("project_id = ?", projectID)
	if !includeDismissed {
		query = query.Where("dismissed = ?", false)
	}

	var rows []model.Insight
	if err := query.Order("insight_id asc").Find(&rows).Error; err != nil {
		return nil, errs.Wrapf(err, "query insights for project %s", projectID)
	}

	items := make([]ports.InsightRecord, 0, len(rows))
	for _, row := range rows {
		items = append(items, ports.InsightRecord{
			InsightID:      row.InsightID,
			ProjectID:      row.ProjectID,
			BatchID:        row.BatchID,
			Type:           row.Type,
			Title:          row.Title,
			Description:    row.Description,
			Priority:       row.Priority,
			VendorID:       row.VendorID,
			CategoryID:     row.CategoryID,
			RequirementID:  row.RequirementID,
			SupportingJSON: row.SupportingJSON,
			GeneratedAt:    row.GeneratedAt,
			Dismissed:      row.Dismissed,
			DismissedAt:    row.DismissedAt,
		})
	}
	return items, nil
}

func (r *InsightRepository) DismissInsight(ctx context.Context, insightID uint64, dismissedAt string) error {
	db, err := r.dbFromContext(ctx)
	if err != nil {
		return err
	}

	result := db.Model(&model.Insight{}).
		Where("insight_id = ?", insightID).
		Updates(map[string]any{
			"dismissed":    true,
			"dismissed_at": dismissedAt,
		})
	if result.Error != nil {
		return errs.Wrapf(result.Error, "dismiss insight %d", insightID)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("insight %d: %w", insightID, ports.ErrInsightNotFound)
	}
	return nil
}
