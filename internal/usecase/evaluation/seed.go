package evaluation

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"tracematrix/internal/bootstrap/logging"
	"tracematrix/internal/domain/matrix"
	"tracematrix/internal/errs"
	"tracematrix/internal/ports"
)

// seedFile is the YAML shape of one evaluation dataset.
type seedFile struct {
	Project struct {
		ID     string `yaml:"id"`
		Name   string `yaml:"name"`
		Status string `yaml:"status"`
	} `yaml:"project"`
	Categories []struct {
		ID        string  `yaml:"id"`
		Name      string  `yaml:"name"`
		Weight    float64 `yaml:"weight"`
		SortOrder int     `yaml:"sort_order"`
	} `yaml:"categories"`
	Criteria []struct {
		ID       string  `yaml:"id"`
		Category string  `yaml:"category"`
		Name     string  `yaml:"name"`
		Weight   float64 `yaml:"weight"`
	} `yaml:"criteria"`
	Requirements []struct {
		ID              string   `yaml:"id"`
		Code            string   `yaml:"code"`
		Title           string   `yaml:"title"`
		Priority        int      `yaml:"priority"`
		Category        string   `yaml:"category"`
		StakeholderArea string   `yaml:"stakeholder_area"`
		SourceDocument  string   `yaml:"source_document"`
		Criteria        []string `yaml:"criteria"`
	} `yaml:"requirements"`
	Vendors []struct {
		ID     string `yaml:"id"`
		Name   string `yaml:"name"`
		Status string `yaml:"status"`
	} `yaml:"vendors"`
	Scores []struct {
		Vendor    string  `yaml:"vendor"`
		Criterion string  `yaml:"criterion"`
		Evaluator string  `yaml:"evaluator"`
		Value     float64 `yaml:"value"`
		Rationale string  `yaml:"rationale"`
		Submitted bool    `yaml:"submitted"`
	} `yaml:"scores"`
	Consensus []struct {
		Vendor    string  `yaml:"vendor"`
		Criterion string  `yaml:"criterion"`
		Value     float64 `yaml:"value"`
		Rationale string  `yaml:"rationale"`
	} `yaml:"consensus"`
	Evidence []struct {
		ID           string   `yaml:"id"`
		Vendor       string   `yaml:"vendor"`
		Type         string   `yaml:"type"`
		Summary      string   `yaml:"summary"`
		Requirements []string `yaml:"requirements"`
		Criteria     []string `yaml:"criteria"`
	} `yaml:"evidence"`
}

// SeedResult reports what one import wrote.
type SeedResult struct {
	ProjectID    string
	Requirements int
	Vendors      int
	Scores       int
}

// Seed imports one dataset file inside a single transaction. With replace
// set, the project's existing rows are removed first.
func (s *Service) Seed(ctx context.Context, path string, replace bool) (SeedResult, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return SeedResult{}, errs.Wrapf(err, "read dataset %s", path)
	}

	var file seedFile
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return SeedResult{}, errs.Wrapf(err, "parse dataset %s", path)
	}

	imp, defaultedWeights, err := buildImport(file)
	if err != nil {
		return SeedResult{}, errs.Wrapf(err, "validate dataset %s", path)
	}
	for _, id := range defaultedWeights {
		logging.Warn(ctx, "criterion weight missing, defaulting to 1",
			slog.String("criterion_id", id))
	}

	err = s.uow.WithTx(ctx, func(ctx context.Context) error {
		return s.repo.ImportDataset(ctx, imp, replace)
	})
	if err != nil {
		return SeedResult{}, errs.Wrapf(err, "import dataset %s", path)
	}

	logging.Info(ctx, "dataset imported",
		slog.String("project_id", imp.Project.ID),
		slog.Int("requirements", len(imp.Requirements)),
		slog.Int("vendors", len(imp.Vendors)),
		slog.Int("scores", len(imp.Scores)))

	return SeedResult{
		ProjectID:    imp.Project.ID,
		Requirements: len(imp.Requirements),
		Vendors:      len(imp.Vendors),
		Scores:       len(imp.Scores),
	}, nil
}

// buildImport validates the decoded file and maps it onto the repository
// import shape. The second return lists criteria whose missing weight was
// defaulted to 1 so the caller can surface the substitution.
func buildImport(file seedFile) (ports.DatasetImport, []string, error) {
	if file.Project.ID == "" {
		return ports.DatasetImport{}, nil, fmt.Errorf("project id is required")
	}
	if file.Project.Status == "" {
		file.Project.Status = "active"
	}

	imp := ports.DatasetImport{
		Project: ports.Project{
			ID:        file.Project.ID,
			Name:      file.Project.Name,
			Status:    file.Project.Status,
			CreatedAt: time.Now().UTC().Format(time.RFC3339Nano),
		},
	}

	var defaultedWeights []string
	criterionIDs := make(map[string]bool, len(file.Criteria))
	for _, c := range file.Criteria {
		if criterionIDs[c.ID] {
			return ports.DatasetImport{}, nil, fmt.Errorf("duplicate criterion id %s", c.ID)
		}
		criterionIDs[c.ID] = true
		weight := c.Weight
		if weight == 0 {
			weight = 1
			defaultedWeights = append(defaultedWeights, c.ID)
		}
		imp.Criteria = append(imp.Criteria, matrix.Criterion{
			ID:         c.ID,
			CategoryID: c.Category,
			Name:       c.Name,
			Weight:     weight,
		})
	}

	for _, c := range file.Categories {
		imp.Categories = append(imp.Categories, matrix.Category{
			ID:        c.ID,
			Name:      c.Name,
			Weight:    c.Weight,
			SortOrder: c.SortOrder,
		})
	}

	requirementIDs := make(map[string]bool, len(file.Requirements))
	for _, r := range file.Requirements {
		if requirementIDs[r.ID] {
			return ports.DatasetImport{}, nil, fmt.Errorf("duplicate requirement id %s", r.ID)
		}
		requirementIDs[r.ID] = true
		for _, criterionID := range r.Criteria {
			if !criterionIDs[criterionID] {
				return ports.DatasetImport{}, nil, fmt.Errorf("requirement %s links unknown criterion %s", r.ID, criterionID)
			}
		}
		imp.Requirements = append(imp.Requirements, matrix.Requirement{
			ID:              r.ID,
			Code:            r.Code,
			Title:           r.Title,
			Priority:        r.Priority,
			CategoryID:      r.Category,
			StakeholderArea: r.StakeholderArea,
			SourceDocument:  r.SourceDocument,
			CriterionIDs:    r.Criteria,
		})
	}

	vendorIDs := make(map[string]bool, len(file.Vendors))
	for _, v := range file.Vendors {
		if vendorIDs[v.ID] {
			return ports.DatasetImport{}, nil, fmt.Errorf("duplicate vendor id %s", v.ID)
		}
		vendorIDs[v.ID] = true
		status := v.Status
		if status == "" {
			status = "evaluating"
		}
		imp.Vendors = append(imp.Vendors, matrix.Vendor{
			ID:     v.ID,
			Name:   v.Name,
			Status: status,
		})
	}

	for _, score := range file.Scores {
		if !vendorIDs[score.Vendor] {
			return ports.DatasetImport{}, nil, fmt.Errorf("score references unknown vendor %s", score.Vendor)
		}
		if !criterionIDs[score.Criterion] {
			return ports.DatasetImport{}, nil, fmt.Errorf("score references unknown criterion %s", score.Criterion)
		}
		if score.Value < matrix.ScoreMin || score.Value > matrix.ScoreMax {
			return ports.DatasetImport{}, nil, fmt.Errorf("score for vendor %s criterion %s out of bounds: %g", score.Vendor, score.Criterion, score.Value)
		}
		imp.Scores = append(imp.Scores, matrix.Score{
			VendorID:    score.Vendor,
			CriterionID: score.Criterion,
			EvaluatorID: score.Evaluator,
			Value:       score.Value,
			Rationale:   score.Rationale,
			Submitted:   score.Submitted,
		})
	}

	for _, consensus := range file.Consensus {
		if !vendorIDs[consensus.Vendor] {
			return ports.DatasetImport{}, nil, fmt.Errorf("consensus references unknown vendor %s", consensus.Vendor)
		}
		if !criterionIDs[consensus.Criterion] {
			return ports.DatasetImport{}, nil, fmt.Errorf("consensus references unknown criterion %s", consensus.Criterion)
		}
		if consensus.Value < matrix.ScoreMin || consensus.Value > matrix.ScoreMax {
			return ports.DatasetImport{}, nil, fmt.Errorf("consensus for vendor %s criterion %s out of bounds: %g", consensus.Vendor, consensus.Criterion, consensus.Value)
		}
		imp.ConsensusScores = append(imp.ConsensusScores, matrix.ConsensusScore{
			VendorID:    consensus.Vendor,
			CriterionID: consensus.Criterion,
			Value:       consensus.Value,
			Rationale:   consensus.Rationale,
		})
	}

	for _, ev := range file.Evidence {
		if !vendorIDs[ev.Vendor] {
			return ports.DatasetImport{}, nil, fmt.Errorf("evidence %s references unknown vendor %s", ev.ID, ev.Vendor)
		}
		for _, requirementID := range ev.Requirements {
			if !requirementIDs[requirementID] {
				return ports.DatasetImport{}, nil, fmt.Errorf("evidence %s links unknown requirement %s", ev.ID, requirementID)
			}
		}
		for _, criterionID := range ev.Criteria {
			if !criterionIDs[criterionID] {
				return ports.DatasetImport{}, nil, fmt.Errorf("evidence %s links unknown criterion %s", ev.ID, criterionID)
			}
		}
		imp.Evidence = append(imp.Evidence, matrix.Evidence{
			ID:             ev.ID,
			VendorID:       ev.Vendor,
			Type:           ev.Type,
			Summary:        ev.Summary,
			RequirementIDs: ev.Requirements,
			CriterionIDs:   ev.Criteria,
		})
	}

	return imp, defaultedWeights, nil
}
