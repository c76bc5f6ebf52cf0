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

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Import an evaluation dataset from a YAML file",
	RunE: withApp(func(cmd *cobra.Command, _ *bootstrap.App, svc *evaluation.Service) error {
		ctx := logging.WithAttrs(cmd.Context(), slog.String("command", cmd.CommandPath()))

		file, _ := cmd.Flags().GetString("file")
		replace, _ := cmd.Flags().GetBool("replace")
		if file == "" {
			return errors.New("--file is required")
		}

		result, err := svc.Seed(ctx, file, replace)
		if err != nil {
			logging.Error(ctx, "seed dataset failed", slog.Any("err", errs.Loggable(err)))
			return errs.Wrap(err, "seed dataset")
		}

		if _, err := fmt.Fprintf(cmd.OutOrStdout(), "imported project %s: %d requirements, %d vendors, %d scores\n",
			result.ProjectID, result.Requirements, result.Vendors, result.Scores); err != nil {
			return errs.Wrap(err, "write seed output")
		}
		return nil
	}),
}

func init() {
	rootCmd.AddCommand(seedCmd)

	seedCmd.Flags().String("file", "", "Dataset YAML file path")
	seedCmd.Flags().Bool("replace", false, "Replace existing project rows before import")
}
