package cmd

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"tracematrix/internal/bootstrap"
	"tracematrix/internal/bootstrap/logging"
	"tracematrix/internal/errs"
	"tracematrix/internal/usecase/evaluation"
)

var matrixValidateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Report dataset invariant violations as warnings",
	RunE: withApp(func(cmd *cobra.Command, _ *bootstrap.App, svc *evaluation.Service) error {
		ctx := logging.WithAttrs(cmd.Context(), slog.String("command", cmd.CommandPath()))

		projectID, _ := cmd.Flags().GetString("project")
		if projectID == "" {
			return errors.New("--project is required")
		}

		warnings, err := svc.Validate(ctx, projectID)
		if err != nil {
			logging.Error(ctx, "validate dataset failed", slog.Any("err", errs.Loggable(err)))
			return errs.Wrap(err, "validate dataset")
		}

		out := cmd.OutOrStdout()
		if len(warnings) == 0 {
			_, err := fmt.Fprintln(out, "no invariant violations")
			return errs.Wrap(err, "write validate output")
		}
		for _, warning := range warnings {
			if _, err := fmt.Fprintf(out, "%s %s: %s\n", warning.Code, warning.EntityID, warning.Message); err != nil {
				return errs.Wrap(err, "write warning")
			}
		}
		return nil
	}),
}

func init() {
	matrixCmd.AddCommand(matrixValidateCmd)
}
