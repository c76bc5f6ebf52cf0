package repository

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	gormsqlite "github.com/glebarez/sqlite"
	"gorm.io/gorm"

	"tracematrix/internal/domain/matrix"
	"tracematrix/internal/infrastructure/persistence/sqlite/model"
	"tracematrix/internal/ports"
)

func setupEvaluationRepository(t *testing.T) *EvaluationRepository {
	t.Helper()

	dsn := filepath.Join(t.TempDir(), "matrix.sqlite")
	db, err := gorm.Open(gormsqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("get sql db: %v", err)
	}
	t.Cleanup(func() {
		_ = sqlDB.Close()
	})
	if err := db.AutoMigrate(
		&model.Project{}, &model.Category{}, &model.Criterion{},
		&model.Requirement{}, &model.RequirementCriterion{},
		&model.Vendor{}, &model.Score{}, &model.ConsensusScore{},
		&model.Evidence{}, &model.EvidenceLink{},
	); err != nil {
		t.Fatalf("auto migrate: %v", err)
	}
	return NewEvaluationRepository(db)
}

func sampleImport(now string) ports.DatasetImport {
	return ports.DatasetImport{
		Project: ports.Project{ID: "p1", Name: "CRM Selection", Status: "active", CreatedAt: now},
		Categories: []matrix.Category{
			{ID: "cat-sec", Name: "Security", Weight: 60, SortOrder: 1},
			{ID: "cat-ops", Name: "Operations", Weight: 40, SortOrder: 2},
		},
		Criteria: []matrix.Criterion{
			{ID: "crit-enc", CategoryID: "cat-sec", Name: "Encryption", Weight: 4},
			{ID: "crit-sso", CategoryID: "cat-sec", Name: "Single sign-on", Weight: 2},
		},
		Requirements: []matrix.Requirement{
			{ID: "req-a", Code: "REQ-001", Title: "Data at rest encryption", Priority: 3, CategoryID: "cat-sec", CriterionIDs: []string{"crit-sso", "crit-enc"}},
			{ID: "req-b", Code: "REQ-002", Title: "Audit export", Priority: 1, CategoryID: "cat-ops"},
		},
		Vendors: []matrix.Vendor{
			{ID: "v-acme", Name: "Acme Corp", Status: "evaluating"},
			{ID: "v-late", Name: "Latecomer", Status: "shortlisted"},
		},
		Scores: []matrix.Score{
			{VendorID: "v-acme", CriterionID: "crit-enc", EvaluatorID: "e1", Value: 4, Submitted: true},
			{VendorID: "v-acme", CriterionID: "crit-sso", EvaluatorID: "e1", Value: 2, Submitted: false},
		},
		ConsensusScores: []matrix.ConsensusScore{
			{VendorID: "v-acme", CriterionID: "crit-enc", Value: 5, Rationale: "agreed in review"},
		},
		Evidence: []matrix.Evidence{
			{ID: "ev-1", VendorID: "v-acme", Type: "demo", Summary: "live demo notes", RequirementIDs: []string{"req-a"}, CriterionIDs: []string{"crit-enc"}},
		},
	}
}

func TestImportDatasetRoundTrip(t *testing.T) {
	repo := setupEvaluationRepository(t)
	ctx := context.Background()
	now := time.Now().UTC().Format(time.RFC3339Nano)

	if err := repo.ImportDataset(ctx, sampleImport(now), false); err != nil {
		t.Fatalf("ImportDataset() error = %v", err)
	}

	project, err := repo.GetProject(ctx, "p1")
	if err != nil {
		t.Fatalf("GetProject() error = %v", err)
	}
	if project.Name != "CRM Selection" || project.Status != "active" {
		t.Fatalf("GetProject() = %+v", project)
	}

	reqs, err := repo.ListRequirements(ctx, "p1", ports.RequirementFilter{})
	if err != nil {
		t.Fatalf("ListRequirements() error = %v", err)
	}
	if len(reqs) != 2 {
		t.Fatalf("ListRequirements() len = %d", len(reqs))
	}
	if reqs[0].Code != "REQ-001" || reqs[1].Code != "REQ-002" {
		t.Fatalf("requirement order = %s, %s", reqs[0].Code, reqs[1].Code)
	}
	if len(reqs[0].CriterionIDs) != 2 || reqs[0].CriterionIDs[0] != "crit-sso" || reqs[0].CriterionIDs[1] != "crit-enc" {
		t.Fatalf("criterion link order = %v", reqs[0].CriterionIDs)
	}

	scores, err := repo.ListScores(ctx, "p1")
	if err != nil {
		t.Fatalf("ListScores() error = %v", err)
	}
	if len(scores) != 2 {
		t.Fatalf("ListScores() len = %d", len(scores))
	}
	if !scores[0].Submitted || scores[1].Submitted {
		t.Fatalf("submitted flags = %v, %v", scores[0].Submitted, scores[1].Submitted)
	}

	consensus, err := repo.ListConsensusScores(ctx, "p1")
	if err != nil {
		t.Fatalf("ListConsensusScores() error = %v", err)
	}
	if len(consensus) != 1 || consensus[0].Value != 5 {
		t.Fatalf("ListConsensusScores() = %+v", consensus)
	}

	evidence, err := repo.ListEvidence(ctx, "p1")
	if err != nil {
		t.Fatalf("ListEvidence() error = %v", err)
	}
	if len(evidence) != 1 {
		t.Fatalf("ListEvidence() len = %d", len(evidence))
	}
	if len(evidence[0].RequirementIDs) != 1 || evidence[0].RequirementIDs[0] != "req-a" {
		t.Fatalf("evidence requirement links = %v", evidence[0].RequirementIDs)
	}
	if len(evidence[0].CriterionIDs) != 1 || evidence[0].CriterionIDs[0] != "crit-enc" {
		t.Fatalf("evidence criterion links = %v", evidence[0].CriterionIDs)
	}
}

func TestGetProjectNotFound(t *testing.T) {
	repo := setupEvaluationRepository(t)

	_, err := repo.GetProject(context.Background(), "missing")
	if !errors.Is(err, ports.ErrProjectNotFound) {
		t.Fatalf("GetProject() error = %v", err)
	}
}

func TestListRequirementsCategoryFilter(t *testing.T) {
	repo := setupEvaluationRepository(t)
	ctx := context.Background()
	now := time.Now().UTC().Format(time.RFC3339Nano)

	if err := repo.ImportDataset(ctx, sampleImport(now), false); err != nil {
		t.Fatalf("ImportDataset() error = %v", err)
	}

	reqs, err := repo.ListRequirements(ctx, "p1", ports.RequirementFilter{CategoryID: "cat-ops"})
	if err != nil {
		t.Fatalf("ListRequirements() error = %v", err)
	}
	if len(reqs) != 1 || reqs[0].ID != "req-b" {
		t.Fatalf("ListRequirements(cat-ops) = %+v", reqs)
	}
}

func TestListEligibleVendorsFiltersStatus(t *testing.T) {
	repo := setupEvaluationRepository(t)
	ctx := context.Background()
	now := time.Now().UTC().Format(time.RFC3339Nano)

	if err := repo.ImportDataset(ctx, sampleImport(now), false); err != nil {
		t.Fatalf("ImportDataset() error = %v", err)
	}

	vendors, err := repo.ListEligibleVendors(ctx, "p1", []string{"evaluating"})
	if err != nil {
		t.Fatalf("ListEligibleVendors() error = %v", err)
	}
	if len(vendors) != 1 || vendors[0].ID != "v-acme" {
		t.Fatalf("ListEligibleVendors() = %+v", vendors)
	}

	all, err := repo.ListEligibleVendors(ctx, "p1", nil)
	if err != nil {
		t.Fatalf("ListEligibleVendors(nil) error = %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("ListEligibleVendors(nil) len = %d", len(all))
	}
}

func TestImportDatasetReplace(t *testing.T) {
	repo := setupEvaluationRepository(t)
	ctx := context.Background()
	now := time.Now().UTC().Format(time.RFC3339Nano)

	if err := repo.ImportDataset(ctx, sampleImport(now), false); err != nil {
		t.Fatalf("first import: %v", err)
	}

	second := sampleImport(now)
	second.Project.Name = "CRM Selection v2"
	second.Vendors = second.Vendors[:1]
	second.Scores = nil
	if err := repo.ImportDataset(ctx, second, true); err != nil {
		t.Fatalf("replace import: %v", err)
	}

	project, err := repo.GetProject(ctx, "p1")
	if err != nil {
		t.Fatalf("GetProject() error = %v", err)
	}
	if project.Name != "CRM Selection v2" {
		t.Fatalf("project name = %s", project.Name)
	}

	vendors, err := repo.ListEligibleVendors(ctx, "p1", nil)
	if err != nil {
		t.Fatalf("ListEligibleVendors() error = %v", err)
	}
	if len(vendors) != 1 {
		t.Fatalf("vendor count after replace = %d", len(vendors))
	}

	scores, err := repo.ListScores(ctx, "p1")
	if err != nil {
		t.Fatalf("ListScores() error = %v", err)
	}
	if len(scores) != 0 {
		t.Fatalf("score count after replace = %d", len(scores))
	}
}
