package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"tracematrix/internal/domain/matrix"
	"tracematrix/internal/errs"
	"tracematrix/internal/infrastructure/persistence/sqlite/model"
	"tracematrix/internal/ports"
)

// EvaluationRepository implements ports.EvaluationRepository over SQLite.
// All listings apply deterministic ordering so matrix builds are
// reproducible across runs.
type EvaluationRepository struct {
	db *gorm.DB
}

func NewEvaluationRepository(db *gorm.DB) *EvaluationRepository {
	return &EvaluationRepository{db: db}
}

func (r *EvaluationRepository) dbFromContext(ctx context.Context) (*gorm.DB, error) {
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

func (r *EvaluationRepository) GetProject(ctx context.Context, projectID string) (ports.Project, error) {
	db, err := r.dbFromContext(ctx)
	if err != nil {
		return ports.Project{}, err
	}

	var row model.Project
	if err := db.Where("project_id = ?", projectID).Take(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ports.Project{}, fmt.Errorf("project %s: %w", projectID, ports.ErrProjectNotFound)
		}
		return ports.Project{}, errs.Wrapf(err, "query project %s", projectID)
	}

	return ports.Project{
		ID:        row.ProjectID,
		Name:      row.Name,
		Status:    row.Status,
		CreatedAt: row.CreatedAt,
	}, nil
}

func (r *EvaluationRepository) ListRequirements(ctx context.Context, projectID string, filter ports.RequirementFilter) ([]matrix.Requirement, error) {
	db, err := r.dbFromContext(ctx)
	if err != nil {
		return nil, err
	}

	query := db.Model(&model.Requirement{}).
		Where("project_id = ?", projectID).
		Where("deleted = ?", false)
	if categoryID := strings.TrimSpace(filter.CategoryID); categoryID != "" {
		query = query.Where("category_id = ?", categoryID)
	}

	var rows []model.Requirement
	if err := query.Order("code asc").Find(&rows).Error; err != nil {
		return nil, errs.Wrapf(err, "query requirements for project %s", projectID)
	}

	links, err := r.criterionLinks(db, projectID)
	if err != nil {
		return nil, err
	}

	items := make([]matrix.Requirement, 0, len(rows))
	for _, row := range rows {
		items = append(items, matrix.Requirement{
			ID:              row.RequirementID,
			Code:            row.Code,
			Title:           row.Title,
			Priority:        row.Priority,
			CategoryID:      row.CategoryID,
			StakeholderArea: row.StakeholderArea,
			SourceDocument:  row.SourceDocument,
			CriterionIDs:    links[row.RequirementID],
		})
	}
	return items, nil
}

// criterionLinks loads the requirement->criteria join for one project in
// link order.
func (r *EvaluationRepository) criterionLinks(db *gorm.DB, projectID string) (map[string][]string, error) {
	var rows []model.RequirementCriterion
	if err := db.Model(&model.RequirementCriterion{}).
		Where("requirement_id IN (?)", db.Session(&gorm.Session{NewDB: true}).
			Model(&model.Requirement{}).
			Select("requirement_id").
			Where("project_id = ?", projectID)).
		Order("requirement_id asc, position asc").
		Find(&rows).Error; err != nil {
		return nil, errs.Wrapf(err, "query requirement criteria for project %s", projectID)
	}

	links := make(map[string][]string, len(rows))
	for _, row := range rows {
		links[row.RequirementID] = append(links[row.RequirementID], row.CriterionID)
	}
	return links, nil
}

func (r *EvaluationRepository) ListEligibleVendors(ctx context.Context, projectID string, statuses []string) ([]matrix.Vendor, error) {
	db, err := r.dbFromContext(ctx)
	if err != nil {
		return nil, err
	}

	query := db.Model(&model.Vendor{}).Where("project_id = ?", projectID)
	if len(statuses) > 0 {
		query = query.Where("status IN ?", statuses)
	}

	var rows []model.Vendor
	if err := query.Order("name asc").Find(&rows).Error; err != nil {
		return nil, errs.Wrapf(err, "query vendors for project %s", projectID)
	}

	items := make([]matrix.Vendor, 0, len(rows))
	for _, row := range rows {
		items = append(items, matrix.Vendor{
			ID:     row.VendorID,
			Name:   row.Name,
			Status: row.Status,
		})
	}
	return items, nil
}

func (r *EvaluationRepository) ListCategories(ctx context.Context, projectID string) ([]matrix.Category, error) {
	db, err := r.dbFromContext(ctx)
	if err != nil {
		return nil, err
	}

	var rows []model.Category
	if err := db.Model(&model.Category{}).
		Where("project_id = ?", projectID).
		Where("deleted = ?", false).
		Order("sort_order asc").
		Find(&rows).Error; err != nil {
		return nil, errs.Wrapf(err, "query categories for project %s", projectID)
	}

	items := make([]matrix.Category, 0, len(rows))
	for _, row := range rows {
		items = append(items, matrix.Category{
			ID:        row.CategoryID,
			Name:      row.Name,
			Weight:    row.Weight,
			SortOrder: row.SortOrder,
		})
	}
	return items, nil
}

func (r *EvaluationRepository) ListCriteria(ctx context.Context, projectID string) ([]matrix.Criterion, error) {
	db, err := r.dbFromContext(ctx)
	if err != nil {
		return nil, err
	}

	var rows []model.Criterion
	if err := db.Model(&model.Criterion{}).
		Where("project_id = ?", projectID).
		Order("criterion_id asc").
		Find(&rows).Error; err != nil {
		return nil, errs.Wrapf(err, "query criteria for project %s", projectID)
	}

	items := make([]matrix.Criterion, 0, len(rows))
	for _, row := range rows {
		items = append(items, matrix.Criterion{
			ID:         row.CriterionID,
			CategoryID: row.CategoryID,
			Name:       row.Name,
			Weight:     row.Weight,
		})
	}
	return items, nil
}

func (r *EvaluationRepository) ListScores(ctx context.Context, projectID string) ([]matrix.Score, error) {
	db, err := r.dbFromContext(ctx)
	if err != nil {
		return nil, err
	}

	var rows []model.Score
	if err := db.Model(&model.Score{}).
		Where("project_id = ?", projectID).
		Order("score_id asc").
		Find(&rows).Error; err != nil {
		return nil, errs.Wrapf(err, "query scores for project %s", projectID)
	}

	items := make([]matrix.Score, 0, len(rows))
	for _, row := range rows {
		items = append(items, matrix.Score{
			VendorID:    row.VendorID,
			CriterionID: row.CriterionID,
			EvaluatorID: row.EvaluatorID,
			Value:       row.Value,
			Rationale:   row.Rationale,
			Submitted:   row.Submitted,
		})
	}
	return items, nil
}

func (r *EvaluationRepository) ListConsensusScores(ctx context.Context, projectID string) ([]matrix.ConsensusScore, error) {
	db, err := r.dbFromContext(ctx)
	if err != nil {
		return nil, err
	}

	var rows []model.ConsensusScore
	if err := db.Model(&model.ConsensusScore{}).
		Where("project_id = ?", projectID).
		Order("consensus_id asc").
		Find(&rows).Error; err != nil {
		return nil, errs.Wrapf(err, "query consensus scores for project %s", projectID)
	}

	items := make([]matrix.ConsensusScore, 0, len(rows))
	for _, row := range rows {
		items = append(items, matrix.ConsensusScore{
			VendorID:    row.VendorID,
			CriterionID: row.CriterionID,
			Value:       row.Value,
			Rationale:   row.Rationale,
		})
	}
	return items, nil
}

func (r *EvaluationRepository) ListEvidence(ctx context.Context, projectID string) ([]matrix.Evidence, error) {
	db, err := r.dbFromContext(ctx)
	if err != nil {
		return nil, err
	}

	var rows []model.Evidence
	if err := db.Model(&model.Evidence{}).
		Where("project_id = ?", projectID).
		Order("evidence_id asc").
		Find(&rows).Error; err != nil {
		return nil, errs.Wrapf(err, "query evidence for project %s", projectID)
	}

	var links []model.EvidenceLink
	if err := db.Model(&model.EvidenceLink{}).
		Where("evidence_id IN (?)", db.Session(&gorm.Session{NewDB: true}).
			Model(&model.Evidence{}).
			Select("evidence_id").
			Where("project_id = ?", projectID)).
		Order("link_id asc").
		Find(&links).Error; err != nil {
		return nil, errs.Wrapf(err, "query evidence links for project %s", projectID)
	}

	requirementLinks := make(map[string][]string)
	criterionLinks := make(map[string][]string)
	for _, link := range links {
		if link.RequirementID != "" {
			requirementLinks[link.EvidenceID] = append(requirementLinks[link.EvidenceID], link.RequirementID)
		}
		if link.CriterionID != "" {
			criterionLinks[link.EvidenceID] = append(criterionLinks[link.EvidenceID], link.CriterionID)
		}
	}

	items := make([]matrix.Evidence, 0, len(rows))
	for _, row := range rows {
		items = append(items, matrix.Evidence{
			ID:             row.EvidenceID,
			VendorID:       row.VendorID,
			Type:           row.Type,
			Summary:        row.Summary,
			RequirementIDs: requirementLinks[row.EvidenceID],
			CriterionIDs:   criterionLinks[row.EvidenceID],
		})
	}
	return items, nil
}

// ImportDataset writes one complete dataset. With replace set, all rows of
// the project are removed first. Intended to run inside a unit of work.
func (r *EvaluationRepository) ImportDataset(ctx context.Context, imp ports.DatasetImport, replace bool) error {
	db, err := r.dbFromContext(ctx)
	if err != nil {
		return err
	}

	projectID := imp.Project.ID
	if strings.TrimSpace(projectID) == "" {
		return errors.New("project id is required")
	}

	if replace {
		if err := r.deleteProjectRows(db, projectID); err != nil {
			return err
		}
	}

	if err := db.Create(&model.Project{
		ProjectID: projectID,
		Name:      imp.Project.Name,
		Status:    imp.Project.Status,
		CreatedAt: imp.Project.CreatedAt,
	}).Error; err != nil {
		return errs.Wrapf(err, "insert project %s", projectID)
	}

	for _, category := range imp.Categories {
		if err := db.Create(&model.Category{
			CategoryID: category.ID,
			ProjectID:  projectID,
			Name:       category.Name,
			Weight:     category.Weight,
			SortOrder:  category.SortOrder,
		}).Error; err != nil {
			return errs.Wrapf(err, "insert category %s", category.ID)
		}
	}

	for _, criterion := range imp.Criteria {
		if err := db.Create(&model.Criterion{
			CriterionID: criterion.ID,
			ProjectID:   projectID,
			CategoryID:  criterion.CategoryID,
			Name:        criterion.Name,
			Weight:      criterion.Weight,
		}).Error; err != nil {
			return errs.Wrapf(err, "insert criterion %s", criterion.ID)
		}
	}

	for _, req := range imp.Requirements {
		if err := db.Create(&model.Requirement{
			RequirementID:   req.ID,
			ProjectID:       projectID,
			Code:            req.Code,
			Title:           req.Title,
			Priority:        req.Priority,
			CategoryID:      req.CategoryID,
			StakeholderArea: req.StakeholderArea,
			SourceDocument:  req.SourceDocument,
			CreatedAt:       imp.Project.CreatedAt,
		}).Error; err != nil {
			return errs.Wrapf(err, "insert requirement %s", req.ID)
		}
		for position, criterionID := range req.CriterionIDs {
			if err := db.Create(&model.RequirementCriterion{
				RequirementID: req.ID,
				CriterionID:   criterionID,
				Position:      position,
			}).Error; err != nil {
				return errs.Wrapf(err, "link requirement %s to criterion %s", req.ID, criterionID)
			}
		}
	}

	for _, vendor := range imp.Vendors {
		if err := db.Create(&model.Vendor{
			VendorID:  vendor.ID,
			ProjectID: projectID,
			Name:      vendor.Name,
			Status:    vendor.Status,
			CreatedAt: imp.Project.CreatedAt,
		}).Error; err != nil {
			return errs.Wrapf(err, "insert vendor %s", vendor.ID)
		}
	}

	for _, score := range imp.Scores {
		if err := db.Create(&model.Score{
			ProjectID:   projectID,
			VendorID:    score.VendorID,
			CriterionID: score.CriterionID,
			EvaluatorID: score.EvaluatorID,
			Value:       score.Value,
			Rationale:   score.Rationale,
			Submitted:   score.Submitted,
		}).Error; err != nil {
			return errs.Wrapf(err, "insert score for vendor %s criterion %s", score.VendorID, score.CriterionID)
		}
	}

	for _, consensus := range imp.ConsensusScores {
		if err := db.Create(&model.ConsensusScore{
			ProjectID:   projectID,
			VendorID:    consensus.VendorID,
			CriterionID: consensus.CriterionID,
			Value:       consensus.Value,
			Rationale:   consensus.Rationale,
		}).Error; err != nil {
			return errs.Wrapf(err, "insert consensus for vendor %s criterion %s", consensus.VendorID, consensus.CriterionID)
		}
	}

	for _, evidence := range imp.Evidence {
		if err := db.Create(&model.Evidence{
			EvidenceID: evidence.ID,
			ProjectID:  projectID,
			VendorID:   evidence.VendorID,
			Type:       evidence.Type,
			Summary:    evidence.Summary,
			CreatedAt:  imp.Project.CreatedAt,
		}).Error; err != nil {
			return errs.Wrapf(err, "insert evidence %s", evidence.ID)
		}
		for _, requirementID := range evidence.RequirementIDs {
			if err := db.Create(&model.EvidenceLink{
				EvidenceID:    evidence.ID,
				RequirementID: requirementID,
			}).Error; err != nil {
				return errs.Wrapf(err, "link evidence %s to requirement %s", evidence.ID, requirementID)
			}
		}
		for _, criterionID := range evidence.CriterionIDs {
			if err := db.Create(&model.EvidenceLink{
				EvidenceID:  evidence.ID,
				CriterionID: criterionID,
			}).Error; err != nil {
				return errs.Wrapf(err, "link evidence %s to criterion %s", evidence.ID, criterionID)
			}
		}
	}

	return nil
}

func (r *EvaluationRepository) deleteProjectRows(db *gorm.DB, projectID string) error {
	requirementIDs := db.Session(&gorm.Session{NewDB: true}).
		Model(&model.Requirement{}).
		Select("requirement_id").
		Where("project_id = ?", projectID)
	if err := db.Where("requirement_id IN (?)", requirementIDs).Delete(&model.RequirementCriterion{}).Error; err != nil {
		return errs.Wrapf(err, "delete requirement links for project %s", projectID)
	}

	evidenceIDs := db.Session(&gorm.Session{NewDB: true}).
		Model(&model.Evidence{}).
		Select("evidence_id").
		Where("project_id = ?", projectID)
	if err := db.Where("evidence_id IN (?)", evidenceIDs).Delete(&model.EvidenceLink{}).Error; err != nil {
		return errs.Wrapf(err, "delete evidence links for project %s", projectID)
	}

	for _, target := range []any{
		&model.Score{}, &model.ConsensusScore{}, &model.Evidence{},
		&model.Requirement{}, &model.Criterion{}, &model.Category{},
		&model.Vendor{}, &model.Project{},
	} {
		if err := db.Where("project_id = ?", projectID).Delete(target).Error; err != nil {
			return errs.Wrapf(err, "delete project rows for %s", projectID)
		}
	}
	return nil
}
