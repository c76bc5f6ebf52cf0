package evaluation

import (
	"context"

	"tracematrix/internal/domain/matrix"
	"tracematrix/internal/errs"
)

// ExportSheet builds the matrix and flattens it into tabular sheet form.
func (s *Service) ExportSheet(ctx context.Context, in BuildMatrixInput) (matrix.SheetData, error) {
	result, err := s.BuildMatrix(ctx, in)
	if err != nil {
		return matrix.SheetData{}, err
	}
	return matrix.Flatten(result.Matrix, result.Summary), nil
}

// ExportCSV renders the flattened matrix as RFC-4180 CSV text.
func (s *Service) ExportCSV(ctx context.Context, in BuildMatrixInput) (string, error) {
	sheet, err := s.ExportSheet(ctx, in)
	if err != nil {
		return "", err
	}

	out, err := matrix.ToCSV(sheet)
	if err != nil {
		return "", errs.Wrapf(err, "render csv for project %s", in.ProjectID)
	}
	return out, nil
}
