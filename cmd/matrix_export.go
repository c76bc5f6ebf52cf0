package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"tracematrix/internal/bootstrap"
	"tracematrix/internal/bootstrap/logging"
	"tracematrix/internal/errs"
	"tracematrix/internal/usecase/evaluation"
)

var matrixExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the matrix as CSV or sheet JSON",
	RunE: withApp(func(cmd *cobra.Command, _ *bootstrap.App, svc *evaluation.Service) error {
		ctx := logging.WithAttrs(cmd.Context(), slog.String("command", cmd.CommandPath()))

		projectID, _ := cmd.Flags().GetString("project")
		categoryID, _ := cmd.Flags().GetString("category")
		format, _ := cmd.Flags().GetString("format")
		outPath, _ := cmd.Flags().GetString("out")
		if projectID == "" {
			return errors.New("--project is required")
		}

		profile, err := loadProfileFlag(cmd)
		if err != nil {
			return err
		}
		in := evaluation.BuildMatrixInput{
			ProjectID:  projectID,
			CategoryID: categoryID,
			Profile:    profile,
		}

		var payload string
		switch format {
		case "csv", "":
			payload, err = svc.ExportCSV(ctx, in)
			if err != nil {
				logging.Error(ctx, "csv export failed", slog.Any("err", errs.Loggable(err)))
				return errs.Wrap(err, "export csv")
			}
		case "sheet":
			sheet, err := svc.ExportSheet(ctx, in)
			if err != nil {
				logging.Error(ctx, "sheet export failed", slog.Any("err", errs.Loggable(err)))
				return errs.Wrap(err, "export sheet")
			}
			encoded, err := json.MarshalIndent(sheet, "", "  ")
			if err != nil {
				return errs.Wrap(err, "encode sheet json")
			}
			payload = string(encoded) + "\n"
		default:
			return fmt.Errorf("unsupported export format %q", format)
		}

		if outPath != "" {
			if err := os.WriteFile(outPath, []byte(payload), 0o644); err != nil {
				return errs.Wrapf(err, "write export file %s", outPath)
			}
			logging.Info(ctx, "matrix exported",
				slog.String("project_id", projectID),
				slog.String("format", format),
				slog.String("out", outPath))
			_, err := fmt.Fprintf(cmd.OutOrStdout(), "exported to %s\n", outPath)
			return errs.Wrap(err, "write export confirmation")
		}

		_, err = fmt.Fprint(cmd.OutOrStdout(), payload)
		return errs.Wrap(err, "write export output")
	}),
}

func init() {
	matrixCmd.AddCommand(matrixExportCmd)

	matrixExportCmd.Flags().String("format", "csv", "Export format: csv or sheet")
	matrixExportCmd.Flags().String("out", "", "Write to file instead of stdout")
}
