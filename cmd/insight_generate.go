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

var insightGenerateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Run the insight rules and persist the findings",
	RunE: withApp(func(cmd *cobra.Command, _ *bootstrap.App, svc *evaluation.Service) error {
		ctx := logging.WithAttrs(cmd.Context(), slog.String("command", cmd.CommandPath()))

		projectID, _ := cmd.Flags().GetString("project")
		if projectID == "" {
			return errors.New("--project is required")
		}

		profile, err := loadProfileFlag(cmd)
		if err != nil {
			return err
		}

		batch, err := svc.GenerateInsights(ctx, evaluation.GenerateInsightsInput{
			ProjectID: projectID,
			Profile:   profile,
		})
		if err != nil {
			logging.Error(ctx, "generate insights failed", slog.Any("err", errs.Loggable(err)))
			return errs.Wrap(err, "generate insights")
		}

		out := cmd.OutOrStdout()
		saved := "saved"
		if !batch.Persisted {
			saved = "not saved"
		}
		if _, err := fmt.Fprintf(out, "batch %s: %d insights (%s)\n", batch.BatchID, len(batch.Insights), saved); err != nil {
			return errs.Wrap(err, "write insight batch header")
		}
		for _, insight := range batch.Insights {
			if _, err := fmt.Fprintf(out, "- [%s/%s] %s: %s\n",
				insight.Type, insight.Priority, insight.Title, insight.Description); err != nil {
				return errs.Wrap(err, "write insight")
			}
		}
		return nil
	}),
}

func init() {
	insightCmd.AddCommand(insightGenerateCmd)

	insightGenerateCmd.Flags().String("project", "", "Project id")
	insightGenerateCmd.Flags().String("profile", "", "Scoring profile TOML file")
}
