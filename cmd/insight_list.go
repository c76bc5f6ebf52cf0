package cmd

import (
	"errors"
	"fmt"
	"log/slog"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"tracematrix/internal/bootstrap"
	"tracematrix/internal/bootstrap/logging"
	"tracematrix/internal/errs"
	"tracematrix/internal/usecase/evaluation"
)

var insightListCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored insights for a project",
	RunE: withApp(func(cmd *cobra.Command, _ *bootstrap.App, svc *evaluation.Service) error {
		ctx := logging.WithAttrs(cmd.Context(), slog.String("command", cmd.CommandPath()))

		projectID, _ := cmd.Flags().GetString("project")
		includeDismissed, _ := cmd.Flags().GetBool("include-dismissed")
		if projectID == "" {
			return errors.New("--project is required")
		}

		items, err := svc.ListInsights(ctx, projectID, includeDismissed)
		if err != nil {
			logging.Error(ctx, "list insights failed", slog.Any("err", errs.Loggable(err)))
			return errs.Wrap(err, "list insights")
		}

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
		if _, err := fmt.Fprintln(w, "id\ttype\tpriority\ttitle\tdismissed"); err != nil {
			return errs.Wrap(err, "write insight list header")
		}
		for _, item := range items {
			dismissed := "-"
			if item.Dismissed {
				dismissed = "yes"
			}
			if _, err := fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\n",
				item.InsightID, item.Type, item.Priority, item.Title, dismissed); err != nil {
				return errs.Wrap(err, "write insight list row")
			}
		}
		return errs.Wrap(w.Flush(), "flush insight list")
	}),
}

func init() {
	insightCmd.AddCommand(insightListCmd)

	insightListCmd.Flags().String("project", "", "Project id")
	insightListCmd.Flags().Bool("include-dismissed", false, "Include dismissed insights")
}
